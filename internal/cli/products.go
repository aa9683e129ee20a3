package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/KennelyRay/E-Commerce-Website-sub000/internal/catalog"
	"github.com/KennelyRay/E-Commerce-Website-sub000/internal/domain"
	"github.com/KennelyRay/E-Commerce-Website-sub000/internal/schema"
	"github.com/KennelyRay/E-Commerce-Website-sub000/pkg/sigctx"
)

// ProductFlags holds the shared add/update field flags.
type ProductFlags struct {
	Name          string
	Description   string
	Price         float64
	OriginalPrice float64
	Image         string
	Category      string
	Stock         int
	Rating        float64
	Reviews       int
	Featured      bool
	Tags          []string
	Specs         []string // key=value pairs
}

// NewProductsCommand creates the products command group.
func NewProductsCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "products",
		Short: "Browse and manage the product catalog",
	}

	cmd.AddCommand(newProductsListCommand(rootOpts))
	cmd.AddCommand(newProductsGetCommand(rootOpts))
	cmd.AddCommand(newProductsAddCommand(rootOpts))
	cmd.AddCommand(newProductsUpdateCommand(rootOpts))
	cmd.AddCommand(newProductsDeleteCommand(rootOpts))
	cmd.AddCommand(newProductsSearchCommand(rootOpts))

	return cmd
}

func newProductsListCommand(rootOpts *RootOptions) *cobra.Command {
	var (
		category string
		featured bool
		sortBy   string
	)

	cmd := &cobra.Command{
		Use:           "list",
		Short:         "List catalog products",
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

			products := catalog.Apply(catalog.Load(ctx, app.Store), catalog.Query{
				Category:     category,
				FeaturedOnly: featured,
				Sort:         catalog.Sort(sortBy),
			})

			out := &OutputFormatter{Format: rootOpts.Format, Writer: cmd.OutOrStdout()}
			return out.Success(products, func(w io.Writer) {
				renderProducts(w, products)
			})
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "filter by exact category")
	cmd.Flags().BoolVar(&featured, "featured", false, "featured products only")
	cmd.Flags().StringVar(&sortBy, "sort", "name", "sort order (name|price-asc|price-desc|rating)")

	return cmd
}

func newProductsGetCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "get <id>",
		Short:         "Show one product",
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

			out := &OutputFormatter{Format: rootOpts.Format, Writer: cmd.OutOrStdout()}
			return out.Success(p, func(w io.Writer) {
				renderProductDetail(w, p)
			})
		},
	}
}

func newProductsAddCommand(rootOpts *RootOptions) *cobra.Command {
	var flags ProductFlags

	cmd := &cobra.Command{
		Use:           "add",
		Short:         "Add a product to the catalog",
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

			p := flags.toProduct(uuid.NewString())
			if err := validateProduct(p); err != nil {
				return WrapExitError(ExitFailure, "invalid product", err)
			}

			if err := app.Store.UpsertProduct(ctx, p); err != nil {
				return WrapExitError(ExitCommandError, "failed to add product", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "added %s (%s)\n", p.Name, p.ID)
			return nil
		},
	}

	flags.register(cmd)
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("price")

	return cmd
}

func newProductsUpdateCommand(rootOpts *RootOptions) *cobra.Command {
	var flags ProductFlags

	cmd := &cobra.Command{
		Use:           "update <id>",
		Short:         "Replace a product's fields",
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

			existing, err := app.Store.GetProduct(ctx, args[0])
			if err != nil {
				return WrapExitError(ExitFailure, "product not found", err)
			}

			p := flags.toProduct(existing.ID)
			p.CreatedAt = existing.CreatedAt
			if err := validateProduct(p); err != nil {
				return WrapExitError(ExitFailure, "invalid product", err)
			}

			if err := app.Store.UpsertProduct(ctx, p); err != nil {
				return WrapExitError(ExitCommandError, "failed to update product", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "updated %s\n", p.ID)
			return nil
		},
	}

	flags.register(cmd)
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("price")

	return cmd
}

func newProductsDeleteCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "delete <id>",
		Short:         "Remove a product from the catalog",
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

			if err := app.Store.DeleteProduct(ctx, args[0]); err != nil {
				return WrapExitError(ExitFailure, "failed to delete product", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", args[0])
			return nil
		},
	}
}

func newProductsSearchCommand(rootOpts *RootOptions) *cobra.Command {
	var category string

	cmd := &cobra.Command{
		Use:           "search <term>",
		Short:         "Search products by name, description, or tags",
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

			products, err := app.Store.SearchProducts(ctx, args[0], category)
			if err != nil {
				return WrapExitError(ExitCommandError, "search failed", err)
			}

			out := &OutputFormatter{Format: rootOpts.Format, Writer: cmd.OutOrStdout()}
			return out.Success(products, func(w io.Writer) {
				renderProducts(w, products)
			})
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "filter by exact category")

	return cmd
}

func (f *ProductFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.Name, "name", "", "product name (required)")
	cmd.Flags().StringVar(&f.Description, "description", "", "product description")
	cmd.Flags().Float64Var(&f.Price, "price", 0, "price (required)")
	cmd.Flags().Float64Var(&f.OriginalPrice, "original-price", 0, "pre-discount price")
	cmd.Flags().StringVar(&f.Image, "image", "", "primary image URI")
	cmd.Flags().StringVar(&f.Category, "category", "", "category label")
	cmd.Flags().IntVar(&f.Stock, "stock", 0, "units in stock")
	cmd.Flags().Float64Var(&f.Rating, "rating", 0, "rating (0-5)")
	cmd.Flags().IntVar(&f.Reviews, "reviews", 0, "review count")
	cmd.Flags().BoolVar(&f.Featured, "featured", false, "featured flag")
	cmd.Flags().StringSliceVar(&f.Tags, "tag", nil, "free-text tag (repeatable)")
	cmd.Flags().StringSliceVar(&f.Specs, "spec", nil, "specification key=value (repeatable)")
}

func (f *ProductFlags) toProduct(id string) domain.Product {
	p := domain.Product{
		ID:          id,
		Name:        f.Name,
		Description: f.Description,
		Price:       f.Price,
		Image:       f.Image,
		Category:    f.Category,
		Stock:       f.Stock,
		Rating:      f.Rating,
		Reviews:     f.Reviews,
		Featured:    f.Featured,
		Tags:        f.Tags,
	}
	if f.OriginalPrice > 0 {
		p.OriginalPrice = &f.OriginalPrice
	}
	if len(f.Specs) > 0 {
		p.Specifications = make(map[string]string, len(f.Specs))
		for _, kv := range f.Specs {
			key, value, _ := strings.Cut(kv, "=")
			p.Specifications[key] = value
		}
	}
	return p
}

// validateProduct runs admin input through the same schema gate as
// external records.
func validateProduct(p domain.Product) error {
	validator, err := schema.NewValidator()
	if err != nil {
		return err
	}
	return validator.ValidateProduct(p)
}

func renderProducts(w io.Writer, products []domain.Product) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tCATEGORY\tPRICE\tSTOCK")
	for _, p := range products {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%.2f\t%d\n",
			p.ID, p.Name, p.Category, p.Price, p.Stock)
	}
	tw.Flush()
	fmt.Fprintf(w, "%d products\n", len(products))
}

func renderProductDetail(w io.Writer, p domain.Product) {
	fmt.Fprintf(w, "%s\n", p.Name)
	fmt.Fprintf(w, "  id:       %s\n", p.ID)
	fmt.Fprintf(w, "  category: %s\n", p.Category)
	fmt.Fprintf(w, "  price:    %.2f\n", p.Price)
	if p.OriginalPrice != nil {
		fmt.Fprintf(w, "  was:      %.2f\n", *p.OriginalPrice)
	}
	fmt.Fprintf(w, "  stock:    %d\n", p.Stock)
	fmt.Fprintf(w, "  rating:   %.1f (%d reviews)\n", p.Rating, p.Reviews)
	if len(p.Tags) > 0 {
		fmt.Fprintf(w, "  tags:     %s\n", strings.Join(p.Tags, ", "))
	}
	if p.Description != "" {
		fmt.Fprintf(w, "  %s\n", p.Description)
	}
}
