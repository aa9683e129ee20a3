package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/KennelyRay/E-Commerce-Website-sub000/internal/domain"
	"github.com/KennelyRay/E-Commerce-Website-sub000/pkg/sigctx"
)

// NewOrdersCommand creates the orders command.
func NewOrdersCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "orders",
		Short:         "List the logged-in user's orders",
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

			user, ok := app.Auth.CurrentUser()
			if !ok {
				return NewExitError(ExitFailure, "login required (vertix login)")
			}

			orders, err := app.Store.ListOrdersByUser(ctx, user.ID)
			if err != nil {
				return WrapExitError(ExitCommandError, "failed to list orders", err)
			}

			out := &OutputFormatter{Format: rootOpts.Format, Writer: cmd.OutOrStdout()}
			return out.Success(orders, func(w io.Writer) {
				renderOrders(w, orders)
			})
		},
	}
}

func renderOrders(w io.Writer, orders []domain.Order) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ORDER\tPLACED\tLINES\tTOTAL")
	for _, o := range orders {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%.2f\n",
			o.ID, o.CreatedAt.Format("2006-01-02 15:04"), len(o.Items), o.Total)
	}
	tw.Flush()
	fmt.Fprintf(w, "%d orders\n", len(orders))
}
