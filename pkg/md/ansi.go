package md

// SGR sequences emitted by the terminal renderer. Only attributes a receipt
// printer can reproduce are used; no colours.
const (
	Reset     = "\033[0m"
	Bold      = "\033[1m"
	Italic    = "\033[3m"
	Underline = "\033[4m"
)

// Styled wraps s in style and a trailing reset.
func Styled(style, s string) string {
	if s == "" {
		return ""
	}
	return style + s + Reset
}
