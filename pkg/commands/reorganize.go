package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/kioku/pkg/runner/reorganize"
)

func addReorganize(topLevel *cobra.Command) {
	var groupBy []string
	var outDir string
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "reorganize [file]",
		Short: "Split a document into per-group documents with lifted defaults.",
		Example: `
kioku reorganize n5.json --group-by level
kioku reorganize n5.json --group-by level,lesson --out out/
kioku reorganize n5.json --group-by level --dry-run
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r := reorganize.Reorganize{
				Path:    args[0],
				GroupBy: groupBy,
				OutDir:  outDir,
				DryRun:  dryRun,
			}
			err := r.Do(context.Background())
			return output.HandleError(err)
		},
	}

	cmd.Flags().StringSliceVar(&groupBy, "group-by", nil, "Fields that form the group key.")
	cmd.Flags().StringVar(&outDir, "out", "", "Directory for the group documents. Defaults to the source document's directory.")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Report the groups, write nothing.")

	topLevel.AddCommand(cmd)
}
