package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KennelyRay/E-Commerce-Website-sub000/internal/enrich"
	"github.com/KennelyRay/E-Commerce-Website-sub000/pkg/sigctx"
)

// NewEnrichCommand creates the enrich command.
func NewEnrichCommand(rootOpts *RootOptions) *cobra.Command {
	var apply bool

	cmd := &cobra.Command{
		Use:   "enrich",
		Short: "Fetch external hardware-spec data",
		Long: `Fetch hardware-spec datasets from the configured external sources.
Each source gets one attempt with a fixed timeout; failures are skipped.
When nothing usable comes back, generated sample data stands in.

With --apply, the gathered products are upserted into the catalog.`,
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

			fetcher := enrich.NewFetcher(nil)

			// One pass over the sources: the summary and the applied
			// set come from the same settled results.
			results := fetcher.FetchAll(ctx, app.Config.Enrichment)
			for _, res := range results {
				if res.Err != nil {
					fmt.Fprintf(cmd.OutOrStdout(), "%s: failed (%v)\n", res.Source, res.Err)
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %d products\n", res.Source, len(res.Products))
			}

			products := enrich.CatalogFromResults(results)
			fmt.Fprintf(cmd.OutOrStdout(), "gathered %d products\n", len(products))

			if !apply {
				return nil
			}

			for _, p := range products {
				if err := app.Store.UpsertProduct(ctx, p); err != nil {
					return WrapExitError(ExitCommandError, "failed to store product", err)
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "applied %d products to the catalog\n", len(products))
			return nil
		},
	}

	cmd.Flags().BoolVar(&apply, "apply", false, "upsert gathered products into the catalog")

	return cmd
}
