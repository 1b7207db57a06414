package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/kioku/pkg/runner/serve"
	"tableflip.dev/kioku/pkg/store"
)

func addServe(topLevel *cobra.Command) {
	var addr, static string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the collections over HTTP.",
		Example: `
kioku serve
kioku serve --addr :8351 --static ./web
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := store.Load(nil)
			if err != nil {
				return err
			}
			s := serve.Serve{
				Addr:        addr,
				StaticDir:   static,
				Persistence: p,
			}
			err = s.Do(cmd.Context())
			return output.HandleError(err)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8351", "Listen address.")
	cmd.Flags().StringVar(&static, "static", "", "Directory to host at /app.")

	topLevel.AddCommand(cmd)
}
