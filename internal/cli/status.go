package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/paujie/brocode/internal/session"
)

// NewStatusCommand creates the status command.
func NewStatusCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "status",
		Short:         "Show the resolved session state",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStatus(cmd, rootOpts)
		},
	}
}

func runStatus(cmd *cobra.Command, rootOpts *RootOptions) error {
	app, err := newApp(rootOpts)
	if err != nil {
		return err
	}
	defer app.Close()

	ctx := cmd.Context()
	if err := app.session.Resolve(ctx); err != nil {
		return WrapExitError(ExitCommandError, "failed to resolve session", err)
	}

	out := &OutputFormatter{Format: rootOpts.Format, Writer: cmd.OutOrStdout(), Verbose: rootOpts.Verbose}
	state := app.session.State()

	if state != session.StateAuthenticated {
		if rootOpts.Format == "json" {
			return out.Success(map[string]any{"state": state})
		}
		return out.Success(fmt.Sprintf("session: %s", state))
	}

	profile := app.session.Profile()
	spot, err := app.api.UpcomingSpot(ctx)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read upcoming spot", err)
	}

	if rootOpts.Format == "json" {
		data := map[string]any{
			"state":   state,
			"user_id": profile.ID,
			"name":    profile.Name,
		}
		if spot != nil {
			data["upcoming_spot"] = map[string]any{
				"id":       spot.ID,
				"location": spot.Location,
				"date":     spot.Date,
			}
		}
		return out.Success(data)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "session: %s\nuser: %s (%s)\n", state, profile.Name, profile.ID)
	if spot != nil {
		fmt.Fprintf(cmd.OutOrStdout(), "next spot: %s at %s, %s\n", spot.Location, spot.Timing, spot.Date.Format("Mon Jan 2"))
	}
	return nil
}
