// Package schema defines the configuration types shared across the CLI.
package schema

// Settings holds the runtime configuration, populated from defaults,
// CFMERGE_* environment variables and command-line flags.
type Settings struct {
	Logs   LogsSettings `mapstructure:"logs"`
	Indent int          `mapstructure:"indent"`
}

// LogsSettings configures logging.
type LogsSettings struct {
	Level string `mapstructure:"level"`
}
