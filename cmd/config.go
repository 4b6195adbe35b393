package cmd

import (
	"fmt"

	"github.com/spf13/viper"
)

type Profile struct {
	Name     string `mapstructure:"name"`
	Dir      string `mapstructure:"dir"`
	Output   string `mapstructure:"output"`
	FKPrefix string `mapstructure:"fk_prefix"`
	Active   bool   `mapstructure:"active"`
}

// GetActiveProfile returns the currently active scan profile.
func GetActiveProfile() (*Profile, error) {
	var profiles []Profile

	if err := viper.UnmarshalKey("profiles", &profiles); err != nil {
		return nil, fmt.Errorf("failed to parse profiles config: %w", err)
	}

	var activeProfile *Profile
	count := 0

	for i := range profiles {
		if profiles[i].Active {
			activeProfile = &profiles[i]
			count++
		}
	}

	if count == 0 {
		return nil, fmt.Errorf("no active profile found in config (set active: true)")
	}
	if count > 1 {
		return nil, fmt.Errorf("multiple active profiles found (only one can be active)")
	}

	return activeProfile, nil
}
