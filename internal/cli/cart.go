package cli

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/KennelyRay/E-Commerce-Website-sub000/internal/domain"
	"github.com/KennelyRay/E-Commerce-Website-sub000/pkg/sigctx"
)

// NewCartCommand creates the cart command group.
func NewCartCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cart",
		Short: "Manage the shopping cart",
	}

	cmd.AddCommand(newCartShowCommand(rootOpts))
	cmd.AddCommand(newCartAddCommand(rootOpts))
	cmd.AddCommand(newCartRemoveCommand(rootOpts))
	cmd.AddCommand(newCartSetQtyCommand(rootOpts))
	cmd.AddCommand(newCartClearCommand(rootOpts))
	cmd.AddCommand(newCartCheckoutCommand(rootOpts))

	return cmd
}

func newCartShowCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "show",
		Short:         "Show the current cart",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := openApp(rootOpts)
			if err != nil {
				return err
			}
			defer app.Close()

			items := app.Cart.Items()
			out := &OutputFormatter{Format: rootOpts.Format, Writer: cmd.OutOrStdout()}
			return out.Success(items, func(w io.Writer) {
				renderCart(w, items, app.Cart.Count(), app.Cart.Total())
			})
		},
	}
}

func newCartAddCommand(rootOpts *RootOptions) *cobra.Command {
	var quantity int

	cmd := &cobra.Command{
		Use:           "add <product-id>",
		Short:         "Add a product to the cart",
		Args:          cobra.ExactArgs(1),
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

			p, err := app.Store.GetProduct(ctx, args[0])
			if err != nil {
				return WrapExitError(ExitFailure, "product not found", err)
			}

			if err := app.Cart.Add(p, quantity); err != nil {
				return WrapExitError(ExitFailure, "failed to add to cart", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "added %d x %s (cart: %d items)\n",
				quantity, p.Name, app.Cart.Count())
			return nil
		},
	}

	cmd.Flags().IntVarP(&quantity, "quantity", "q", 1, "quantity to add")

	return cmd
}

func newCartRemoveCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "remove <product-id>",
		Short:         "Remove a line from the cart",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := openApp(rootOpts)
			if err != nil {
				return err
			}
			defer app.Close()

			if err := app.Cart.Remove(args[0]); err != nil {
				return WrapExitError(ExitCommandError, "failed to update cart", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "removed %s (cart: %d items)\n",
				args[0], app.Cart.Count())
			return nil
		},
	}
}

func newCartSetQtyCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "set-qty <product-id> <quantity>",
		Short:         "Set a line's quantity (0 removes the line)",
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			quantity, err := strconv.Atoi(args[1])
			if err != nil {
				return WrapExitError(ExitFailure, "quantity must be an integer", err)
			}

			app, err := openApp(rootOpts)
			if err != nil {
				return err
			}
			defer app.Close()

			if err := app.Cart.SetQuantity(args[0], quantity); err != nil {
				return WrapExitError(ExitCommandError, "failed to update cart", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "cart: %d items, total %.2f\n",
				app.Cart.Count(), app.Cart.Total())
			return nil
		},
	}
}

func newCartClearCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "clear",
		Short:         "Empty the cart",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := openApp(rootOpts)
			if err != nil {
				return err
			}
			defer app.Close()

			if err := app.Cart.Clear(); err != nil {
				return WrapExitError(ExitCommandError, "failed to clear cart", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), "cart cleared")
			return nil
		},
	}
}

func newCartCheckoutCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "checkout",
		Short: "Check out the cart",
		Long: `Check out the cart for the logged-in user. Payment is simulated
with a short processing delay; the order is recorded and the cart
cleared on success.`,
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

			fmt.Fprintln(cmd.OutOrStdout(), "processing payment...")
			order, err := app.Cart.Checkout(ctx, user)
			if err != nil {
				return WrapExitError(ExitFailure, "checkout failed", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "order %s placed, total %.2f\n",
				order.ID, order.Total)
			return nil
		},
	}
}

func renderCart(w io.Writer, items []domain.CartItem, count int, total float64) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "PRODUCT\tNAME\tQTY\tPRICE\tSUBTOTAL")
	for _, item := range items {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%.2f\t%.2f\n",
			item.Product.ID, item.Product.Name, item.Quantity,
			item.Product.Price, item.Subtotal())
	}
	tw.Flush()
	fmt.Fprintf(w, "%d items, total %.2f\n", count, total)
}
