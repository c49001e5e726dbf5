package cli

import (
	"github.com/spf13/cobra"
)

// NewLogoutCommand creates the logout command.
func NewLogoutCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "logout",
		Short:         "Clear the persisted session token",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(rootOpts)
			if err != nil {
				return err
			}
			defer app.Close()

			if err := app.session.Logout(); err != nil {
				return WrapExitError(ExitCommandError, "failed to clear session", err)
			}

			out := &OutputFormatter{Format: rootOpts.Format, Writer: cmd.OutOrStdout(), Verbose: rootOpts.Verbose}
			if rootOpts.Format == "json" {
				return out.Success(map[string]any{"logged_out": true})
			}
			return out.Success("logged out")
		},
	}
}
