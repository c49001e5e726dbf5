package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/paujie/brocode/internal/api"
)

// LoginOptions holds flags for the login command.
type LoginOptions struct {
	*RootOptions
	Password string
}

// NewLoginCommand creates the login command.
func NewLoginCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &LoginOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "login <email-or-phone>",
		Short: "Authenticate and persist the session token",
		Long: `Authenticate with an email address or phone number. On success the
session token is stored and later invocations resume the session.

Example:
  brocode login hi@paujie.com --password secret`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLogin(cmd, opts, args[0])
		},
	}

	cmd.Flags().StringVar(&opts.Password, "password", "", "account password (required)")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}

func runLogin(cmd *cobra.Command, opts *LoginOptions, identifier string) error {
	app, err := newApp(opts.RootOptions)
	if err != nil {
		return err
	}
	defer app.Close()

	out := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout(), Verbose: opts.Verbose}
	ctx := cmd.Context()

	if err := app.session.Resolve(ctx); err != nil {
		return WrapExitError(ExitCommandError, "failed to resolve session", err)
	}

	profile, err := app.session.Login(ctx, identifier, opts.Password)
	if err != nil {
		var serr *api.Error
		if errors.As(err, &serr) {
			_ = out.Error(string(serr.Code), serr.Message)
			return WrapExitError(ExitFailure, "login failed", err)
		}
		return WrapExitError(ExitCommandError, "login failed", err)
	}

	if opts.Format == "json" {
		return out.Success(map[string]any{
			"user_id": profile.ID,
			"name":    profile.Name,
			"email":   profile.Email,
			"role":    profile.Role,
		})
	}
	return out.Success(fmt.Sprintf("logged in as %s <%s> (%s)", profile.Name, profile.Email, profile.ID))
}
