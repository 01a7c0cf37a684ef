package init

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/open-cli-collective/statblock-cli/internal/config"
	"github.com/open-cli-collective/statblock-cli/internal/printer"
)

func TestParseWidth(t *testing.T) {
	tests := []struct {
		input   string
		want    int
		wantErr bool
	}{
		{"", 0, false},
		{"  ", 0, false},
		{"42", 42, false},
		{" 32 ", 32, false},
		{"10", 10, false},
		{"9", 0, true},
		{"wide", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := parseWidth(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseWidth_TooNarrow(t *testing.T) {
	_, err := parseWidth("4")
	assert.True(t, errors.Is(err, config.ErrInvalidWidth))
}

func TestAnswers_Config(t *testing.T) {
	cfg, err := answers{Profile: "TM-P20", Font: "a", Width: "", Printer: " 10.0.0.5 ", Details: true}.config()
	require.NoError(t, err)
	assert.Equal(t, &config.Config{Profile: "TM-P20", Font: "a", Printer: "10.0.0.5", Details: true}, cfg)
}

func TestAnswers_Config_Invalid(t *testing.T) {
	_, err := answers{Profile: "TM-NOPE", Font: "b"}.config()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown printer profile")

	_, err = answers{Profile: "TM-P20", Font: "c"}.config()
	require.Error(t, err)
}

func TestProfileOptions(t *testing.T) {
	opts := profileOptions([]printer.Profile{
		{Name: "TM-P20", Vendor: "Epson", Columns: map[string]int{"a": 32, "b": 42}},
	})
	require.Len(t, opts, 1)
	assert.Equal(t, "TM-P20 (Epson, 32/42 columns)", opts[0].Key)
	assert.Equal(t, "TM-P20", opts[0].Value)
}
