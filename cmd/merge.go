package cmd

import (
	"github.com/spf13/cobra"

	e "github.com/cfmerge/cfmerge/internal/exec"
)

// mergeCmd merges a base template with one or more fragments.
var mergeCmd = &cobra.Command{
	Use:   "merge",
	Short: "Merge a base template with one or more fragment templates",
	Long: `Merge a base CloudFormation template with fragment templates, applied in the
order given. The Parameters, Conditions, Resources and Outputs sections are
combined; any other top-level key is taken from the base only. An item name
defined by two inputs in the same section fails the merge.`,
	Example: `Merge two fragments into a base template:
cfmerge merge --base template.yaml --fragments storage.yaml --fragments outputs.yaml --out merged.yaml

Print the merged template to stdout:
cfmerge merge --base template.yaml --fragments storage.yaml --out -`,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := &e.MergeOptions{}
		opts.BasePath, _ = cmd.Flags().GetString("base")
		opts.FragmentPaths, _ = cmd.Flags().GetStringSlice("fragments")
		opts.OutputPath, _ = cmd.Flags().GetString("out")
		return e.ExecuteMerge(settings, opts)
	},
}

func init() {
	mergeCmd.Flags().String("base", "", "Path to the base template (required)")
	mergeCmd.Flags().StringSlice("fragments", nil, "Fragment template paths, applied in order (required)")
	mergeCmd.Flags().String("out", "", "Destination path for the merged template, or - for stdout (required)")
	mergeCmd.MarkFlagRequired("base")
	mergeCmd.MarkFlagRequired("fragments")
	mergeCmd.MarkFlagRequired("out")
	RootCmd.AddCommand(mergeCmd)
}
