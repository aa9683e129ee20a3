package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/KennelyRay/E-Commerce-Website-sub000/internal/pcbuild"
	"github.com/KennelyRay/E-Commerce-Website-sub000/pkg/sigctx"
)

// NewBuildCommand creates the build command group (PC-builder
// configurator).
func NewBuildCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Configure a PC build",
		Long: `Configure a PC build slot by slot. A build is complete when the six
required slots (cpu, motherboard, ram, gpu, storage, psu) are filled.
One build can be saved at a time; saving replaces the previous one.`,
	}

	cmd.AddCommand(newBuildShowCommand(rootOpts))
	cmd.AddCommand(newBuildSetCommand(rootOpts))
	cmd.AddCommand(newBuildRemoveCommand(rootOpts))
	cmd.AddCommand(newBuildClearCommand(rootOpts))

	return cmd
}

func newBuildShowCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "show",
		Short:         "Show the saved build",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := openApp(rootOpts)
			if err != nil {
				return err
			}
			defer app.Close()

			b := pcbuild.Load(app.KV)
			out := &OutputFormatter{Format: rootOpts.Format, Writer: cmd.OutOrStdout()}
			return out.Success(b, func(w io.Writer) {
				renderBuild(w, b)
			})
		},
	}
}

func newBuildSetCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "set <slot> <product-id>",
		Short:         "Place a product in a slot",
		Args:          cobra.ExactArgs(2),
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

			slot, err := pcbuild.ParseSlot(args[0])
			if err != nil {
				return WrapExitError(ExitFailure, "invalid slot", err)
			}

			p, err := app.Store.GetProduct(ctx, args[1])
			if err != nil {
				return WrapExitError(ExitFailure, "product not found", err)
			}

			b := pcbuild.Load(app.KV)
			if err := b.Set(slot, p); err != nil {
				return WrapExitError(ExitFailure, "failed to set slot", err)
			}
			if err := b.Save(app.KV); err != nil {
				return WrapExitError(ExitCommandError, "failed to save build", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s (%d%% complete)\n",
				slot, p.Name, b.Completion())
			return nil
		},
	}
}

func newBuildRemoveCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "remove <slot>",
		Short:         "Clear a slot",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := openApp(rootOpts)
			if err != nil {
				return err
			}
			defer app.Close()

			slot, err := pcbuild.ParseSlot(args[0])
			if err != nil {
				return WrapExitError(ExitFailure, "invalid slot", err)
			}

			b := pcbuild.Load(app.KV)
			b.Remove(slot)
			if err := b.Save(app.KV); err != nil {
				return WrapExitError(ExitCommandError, "failed to save build", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s cleared (%d%% complete)\n",
				slot, b.Completion())
			return nil
		},
	}
}

func newBuildClearCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "clear",
		Short:         "Discard the saved build",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := openApp(rootOpts)
			if err != nil {
				return err
			}
			defer app.Close()

			if err := pcbuild.New().Save(app.KV); err != nil {
				return WrapExitError(ExitCommandError, "failed to clear build", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), "build cleared")
			return nil
		},
	}
}

func renderBuild(w io.Writer, b *pcbuild.Build) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "SLOT\tCOMPONENT\tPRICE")
	for _, slot := range pcbuild.Slots {
		p, ok := b.Component(slot)
		if !ok {
			fmt.Fprintf(tw, "%s\t-\t\n", slot)
			continue
		}
		fmt.Fprintf(tw, "%s\t%s\t%.2f\n", slot, p.Name, p.Price)
	}
	tw.Flush()
	fmt.Fprintf(w, "%d%% complete, total %.2f\n", b.Completion(), b.Total())
	if !b.Complete() {
		fmt.Fprintln(w, "fill all required slots (cpu, motherboard, ram, gpu, storage, psu) to proceed")
	}
}
