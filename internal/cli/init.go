package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KennelyRay/E-Commerce-Website-sub000/pkg/sigctx"
)

// NewInitCommand creates the init command.
func NewInitCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create and seed the local store",
		Long: `Create the data directory, open the catalog database, and seed it
with the bundled starter catalog and the Administrator account.

Safe to run repeatedly: seeding happens exactly once.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := sigctx.NotifyContext()
			defer stop()

			app, err := openApp(rootOpts)
			if err != nil {
				return err
			}
			defer app.Close()

			if err := app.Store.Seed(ctx); err != nil {
				return WrapExitError(ExitCommandError, "failed to seed store", err)
			}

			count, err := app.Store.CountProducts(ctx)
			if err != nil {
				return WrapExitError(ExitCommandError, "failed to count products", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "store ready: %d products\n", count)
			return nil
		},
	}
}
