package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/kioku/pkg/runner/ingest"
	"tableflip.dev/kioku/pkg/store"
)

func addImport(topLevel *cobra.Command) {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "import [file...]",
		Short: "Import collection documents into the store.",
		Example: `
kioku import n5.json
kioku import data/*.json --dry-run
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := store.Load(nil)
			if err != nil {
				return err
			}
			n := ingest.Ingest{
				Paths:       args,
				DryRun:      dryRun,
				Persistence: p,
			}
			err = n.Do(context.Background())
			return output.HandleError(err)
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Validate only, write nothing.")

	topLevel.AddCommand(cmd)
}
