// Package config loads the CLI settings from environment variables with
// built-in defaults. Flags override the result at the command layer.
package config

import (
	"strings"

	"github.com/spf13/viper"

	"github.com/cfmerge/cfmerge/pkg/schema"
)

const (
	envPrefix = "CFMERGE"

	defaultLogsLevel = "info"
	defaultIndent    = 2
)

// Load returns the settings resolved from defaults and CFMERGE_* environment
// variables (e.g. CFMERGE_LOGS_LEVEL, CFMERGE_INDENT).
func Load() (*schema.Settings, error) {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("logs.level", defaultLogsLevel)
	v.SetDefault("indent", defaultIndent)

	var settings schema.Settings
	if err := v.Unmarshal(&settings); err != nil {
		return nil, err
	}
	return &settings, nil
}
