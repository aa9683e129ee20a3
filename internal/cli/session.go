package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewLoginCommand creates the login command.
func NewLoginCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "login <username> <password>",
		Short:         "Log in and persist the session",
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := openApp(rootOpts)
			if err != nil {
				return err
			}
			defer app.Close()

			user, err := app.Auth.Login(args[0], args[1])
			if err != nil {
				return WrapExitError(ExitFailure, "login failed", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "logged in as %s", user.Username)
			if user.IsAdmin {
				fmt.Fprint(cmd.OutOrStdout(), " (admin)")
			}
			fmt.Fprintln(cmd.OutOrStdout())
			return nil
		},
	}
}

// NewLogoutCommand creates the logout command.
func NewLogoutCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "logout",
		Short:         "Clear the persisted session",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := openApp(rootOpts)
			if err != nil {
				return err
			}
			defer app.Close()

			if err := app.Auth.Logout(); err != nil {
				return WrapExitError(ExitCommandError, "logout failed", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), "logged out")
			return nil
		},
	}
}

// NewRegisterCommand creates the register command.
func NewRegisterCommand(rootOpts *RootOptions) *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:           "register <username> <email> <password>",
		Short:         "Register a new account",
		Args:          cobra.ExactArgs(3),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := openApp(rootOpts)
			if err != nil {
				return err
			}
			defer app.Close()

			displayName := name
			if displayName == "" {
				displayName = args[0]
			}

			user, err := app.Auth.Register(displayName, args[0], args[1], args[2])
			if err != nil {
				return WrapExitError(ExitFailure, "registration failed", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "registered %s (%s)\n", user.Username, user.Email)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "display name (defaults to username)")

	return cmd
}

// NewWhoamiCommand creates the whoami command.
func NewWhoamiCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "whoami",
		Short:         "Show the current session",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := openApp(rootOpts)
			if err != nil {
				return err
			}
			defer app.Close()

			user, ok := app.Auth.CurrentUser()
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), "not logged in")
				return nil
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s <%s>", user.Username, user.Email)
			if user.IsAdmin {
				fmt.Fprint(cmd.OutOrStdout(), " (admin)")
			}
			fmt.Fprintln(cmd.OutOrStdout())
			return nil
		},
	}
}
