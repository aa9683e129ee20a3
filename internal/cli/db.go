package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/KennelyRay/E-Commerce-Website-sub000/pkg/sigctx"
)

// NewDBCommand creates the db command group: reset, export, import.
func NewDBCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "db",
		Short: "Back up, restore, or reset the catalog database",
	}

	cmd.AddCommand(newDBResetCommand(rootOpts))
	cmd.AddCommand(newDBExportCommand(rootOpts))
	cmd.AddCommand(newDBImportCommand(rootOpts))

	return cmd
}

func newDBResetCommand(rootOpts *RootOptions) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Drop everything and re-seed the bundled catalog",
		Long: `Drop all tables, recreate the schema, and re-seed the bundled
catalog and Administrator account. Irreversible; prompts for
confirmation unless --yes is given.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := sigctx.NotifyContext()
			defer stop()

			if !yes && !confirm(cmd, "reset the store and lose all changes? [y/N] ") {
				fmt.Fprintln(cmd.OutOrStdout(), "aborted")
				return nil
			}

			app, err := openApp(rootOpts)
			if err != nil {
				return err
			}
			defer app.Close()

			if err := app.Store.Reset(ctx); err != nil {
				return WrapExitError(ExitCommandError, "reset failed", err)
			}

			count, err := app.Store.CountProducts(ctx)
			if err != nil {
				return WrapExitError(ExitCommandError, "failed to count products", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "store reset: %d products\n", count)
			return nil
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "skip the confirmation prompt")

	return cmd
}

func newDBExportCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "export <file>",
		Short:         "Write a full database snapshot to a file",
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

			snapshot, err := app.Store.Export(ctx)
			if err != nil {
				return WrapExitError(ExitCommandError, "export failed", err)
			}

			if err := os.WriteFile(args[0], snapshot, 0o600); err != nil {
				return WrapExitError(ExitCommandError, "failed to write snapshot", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "exported %d bytes to %s\n", len(snapshot), args[0])
			return nil
		},
	}
}

func newDBImportCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Replace the database with a snapshot file",
		Long: `Replace the catalog database with a previously exported snapshot.
The snapshot is validated before anything is replaced; an invalid file
leaves the current database untouched.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := sigctx.NotifyContext()
			defer stop()

			snapshot, err := os.ReadFile(args[0])
			if err != nil {
				return WrapExitError(ExitCommandError, "failed to read snapshot", err)
			}

			app, err := openApp(rootOpts)
			if err != nil {
				return err
			}
			defer app.Close()

			if err := app.Store.Import(ctx, snapshot); err != nil {
				return WrapExitError(ExitFailure, "import failed", err)
			}

			count, err := app.Store.CountProducts(ctx)
			if err != nil {
				return WrapExitError(ExitCommandError, "failed to count products", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "imported: %d products\n", count)
			return nil
		},
	}
}

func confirm(cmd *cobra.Command, prompt string) bool {
	fmt.Fprint(cmd.OutOrStdout(), prompt)
	reader := bufio.NewReader(cmd.InOrStdin())
	line, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}
