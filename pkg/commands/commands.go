package commands

import (
	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/kioku/pkg/commands/options"
)

var (
	output = &options.OutputOptions{}
)

func New() *cobra.Command {

	cmd := &cobra.Command{
		Use:   "kioku",
		Short: base.Wrap80("Flashcard collections on the command line."),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	options.AddOutputArg(cmd, output)
	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addGet(topLevel)
	addAdd(topLevel)
	addCategory(topLevel)
	addShuffle(topLevel)
	addFilter(topLevel)
	addLearn(topLevel)
	addFocus(topLevel)
	addStudy(topLevel)
	addImport(topLevel)
	addExport(topLevel)
	addCheck(topLevel)
	addReorganize(topLevel)
	addInfo(topLevel)
	addServe(topLevel)
	addVersion(topLevel)
}
