// Package printer provides printer capability profiles and transports that
// deliver ESC/POS bytes.
package printer

import (
	_ "embed"
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/open-cli-collective/statblock-cli/pkg/escpos"
)

// DefaultProfile is used when no profile is configured.
const DefaultProfile = "TM-T88II"

//go:embed profiles.yml
var profilesYAML []byte

// Profile describes a printer model.
type Profile struct {
	Name    string         `yaml:"-"`
	Vendor  string         `yaml:"vendor"`
	Columns map[string]int `yaml:"columns"`
}

// ColumnsFor returns the line width in characters for font.
func (p Profile) ColumnsFor(font escpos.Font) (int, error) {
	cols, ok := p.Columns[font.String()]
	if !ok || cols <= 0 {
		return 0, fmt.Errorf("profile %s has no column count for font %s", p.Name, font)
	}
	return cols, nil
}

// Profiles returns every known profile sorted by name.
func Profiles() ([]Profile, error) {
	byName, err := loadProfiles()
	if err != nil {
		return nil, err
	}

	profiles := make([]Profile, 0, len(byName))
	for _, p := range byName {
		profiles = append(profiles, p)
	}
	sort.Slice(profiles, func(i, j int) bool {
		return profiles[i].Name < profiles[j].Name
	})
	return profiles, nil
}

// LookupProfile returns the named profile.
func LookupProfile(name string) (Profile, error) {
	byName, err := loadProfiles()
	if err != nil {
		return Profile{}, err
	}
	p, ok := byName[name]
	if !ok {
		return Profile{}, fmt.Errorf("unknown printer profile %q (run 'sbp profiles' to list them)", name)
	}
	return p, nil
}

func loadProfiles() (map[string]Profile, error) {
	var byName map[string]Profile
	if err := yaml.Unmarshal(profilesYAML, &byName); err != nil {
		return nil, fmt.Errorf("failed to parse printer profiles: %w", err)
	}
	for name, p := range byName {
		p.Name = name
		byName[name] = p
	}
	return byName, nil
}
