package cmd

import (
	"errors"

	log "github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/cfmerge/cfmerge/pkg/config"
	"github.com/cfmerge/cfmerge/pkg/schema"
)

var settings *schema.Settings

// RootCmd represents the base command when called without any subcommands.
var RootCmd = &cobra.Command{
	Use:           "cfmerge",
	Short:         "Merge CloudFormation template fragments into a single template",
	Long:          `cfmerge combines a base CloudFormation template with one or more fragment templates, taking the union of the Parameters, Conditions, Resources and Outputs sections and failing on any duplicate item name. Intrinsic tags (!Ref, !Sub, !GetAtt, ...) and key order are preserved.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		settings, err = config.Load()
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("logs-level") {
			settings.Logs.Level, _ = cmd.Flags().GetString("logs-level")
		}

		level, err := log.ParseLevel(settings.Logs.Level)
		if err != nil {
			return err
		}
		log.SetLevel(level)
		log.SetReportTimestamp(false)
		return nil
	},
}

// Execute adds all child commands to the root command and runs it. This is
// called once by main.main().
func Execute() error {
	err := RootCmd.Execute()
	if err != nil && errors.Is(err, pflag.ErrHelp) {
		return nil
	}
	return err
}

func init() {
	RootCmd.PersistentFlags().String("logs-level", "", "Log level (debug, info, warn, error). Overrides CFMERGE_LOGS_LEVEL")
}
