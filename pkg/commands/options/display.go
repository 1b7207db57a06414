package options

import (
	"github.com/spf13/cobra"
)

// DisplayOptions controls how card tables render.
type DisplayOptions struct {
	ShowIndex bool
	Fields    []string
}

// AddDisplayArgs wires rendering flags on the provided command.
func AddDisplayArgs(cmd *cobra.Command, o *DisplayOptions) {
	cmd.Flags().BoolVar(&o.ShowIndex, "index", false,
		"Show each card's original position.")
	cmd.Flags().StringSliceVar(&o.Fields, "fields", nil,
		"Restrict table columns to these fields.")
}
