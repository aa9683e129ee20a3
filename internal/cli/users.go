package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/KennelyRay/E-Commerce-Website-sub000/internal/domain"
)

// NewUsersCommand creates the users command group (admin surface over
// the registered-account lists).
func NewUsersCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "Manage registered accounts",
	}

	cmd.AddCommand(newUsersListCommand(rootOpts))
	cmd.AddCommand(newUsersBanCommand(rootOpts, true))
	cmd.AddCommand(newUsersBanCommand(rootOpts, false))

	return cmd
}

func newUsersListCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "list",
		Short:         "List registered accounts",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := openApp(rootOpts)
			if err != nil {
				return err
			}
			defer app.Close()

			if err := requireAdmin(app); err != nil {
				return err
			}

			users := app.Auth.Users()
			out := &OutputFormatter{Format: rootOpts.Format, Writer: cmd.OutOrStdout()}
			return out.Success(users, func(w io.Writer) {
				renderUsers(w, users)
			})
		},
	}
}

func newUsersBanCommand(rootOpts *RootOptions, ban bool) *cobra.Command {
	use, short := "ban <username>", "Ban an account"
	if !ban {
		use, short = "unban <username>", "Lift an account ban"
	}

	return &cobra.Command{
		Use:           use,
		Short:         short,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := openApp(rootOpts)
			if err != nil {
				return err
			}
			defer app.Close()

			if err := requireAdmin(app); err != nil {
				return err
			}

			if err := app.Auth.SetBanned(args[0], ban); err != nil {
				return WrapExitError(ExitFailure, "failed to update account", err)
			}

			state := "banned"
			if !ban {
				state = "unbanned"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", state, args[0])
			return nil
		},
	}
}

// requireAdmin gates admin commands on the current session.
func requireAdmin(app *App) error {
	user, ok := app.Auth.CurrentUser()
	if !ok || !user.IsAdmin {
		return NewExitError(ExitFailure, "admin session required (vertix login)")
	}
	return nil
}

func renderUsers(w io.Writer, users []domain.User) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "USERNAME\tNAME\tEMAIL\tBANNED")
	for _, u := range users {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%v\n", u.Username, u.Name, u.Email, u.IsBanned)
	}
	tw.Flush()
	fmt.Fprintf(w, "%d accounts\n", len(users))
}
