package cli

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/paujie/brocode/internal/clock"
	"github.com/paujie/brocode/internal/feed"
	"github.com/paujie/brocode/internal/session"
	"github.com/paujie/brocode/internal/simulator"
)

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Start the live session with push simulators",
		Long: `Start an authenticated live session. The chat and notification push
simulators inject events on their configured cadences and each event is
printed as it arrives, along with the running unread counts.

Requires a persisted session; run "brocode login" first.

Example:
  brocode run
  brocode run --config ./brocode.yaml --verbose`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLive(cmd, rootOpts)
		},
	}
}

func runLive(cmd *cobra.Command, rootOpts *RootOptions) error {
	app, err := newApp(rootOpts)
	if err != nil {
		return err
	}
	defer app.Close()

	parentCtx := cmd.Context()
	if parentCtx == nil {
		parentCtx = context.Background()
	}
	ctx, cancel := context.WithCancel(parentCtx)
	defer cancel()

	if err := app.session.Resolve(ctx); err != nil {
		return WrapExitError(ExitCommandError, "failed to resolve session", err)
	}
	if app.session.State() != session.StateAuthenticated {
		return WrapExitError(ExitFailure, `no active session (run "brocode login" first)`, nil)
	}
	viewer := app.session.Identity().UserID

	chatFeed := feed.NewChatFeed(app.api, viewer, app.log)
	if err := chatFeed.Load(ctx); err != nil {
		return WrapExitError(ExitCommandError, "failed to load chat", err)
	}
	notifFeed := feed.NewNotificationFeed(app.api, app.log)
	if err := notifFeed.Load(ctx); err != nil {
		return WrapExitError(ExitCommandError, "failed to load notifications", err)
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	chatSim := simulator.NewChat(app.api, clock.System{}, rng, viewer, app.cfg.ChatInterval.Std(), app.log)
	notifSim := simulator.NewNotifications(app.api, clock.System{}, rng, app.cfg.NotificationInterval.Std(), app.log)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		chatSim.Run(ctx)
	}()
	go func() {
		defer wg.Done()
		notifSim.Run(ctx)
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	go func() {
		select {
		case sig := <-sigChan:
			app.log.Info("received signal, shutting down", "signal", sig)
			cancel()
		case <-ctx.Done():
		}
	}()

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Live session for %s. Press Ctrl-C to stop.\n", viewer)

	chatEvents := chatSim.Events()
	notifEvents := notifSim.Events()
	for chatEvents != nil || notifEvents != nil {
		select {
		case msg, ok := <-chatEvents:
			if !ok {
				chatEvents = nil
				continue
			}
			if err := chatFeed.HandleIncoming(ctx); err != nil {
				app.log.Warn("chat refresh failed", "error", err)
				continue
			}
			fmt.Fprintf(out, "[chat] %s: %s (unread: %d)\n", msg.Author.Name, msg.Text, chatFeed.UnreadCount())
		case n, ok := <-notifEvents:
			if !ok {
				notifEvents = nil
				continue
			}
			if err := notifFeed.HandleIncoming(ctx); err != nil {
				app.log.Warn("notification refresh failed", "error", err)
				continue
			}
			fmt.Fprintf(out, "[notification] %s: %s (unread: %d)\n", n.Title, n.Message, notifFeed.UnreadCount())
		}
	}

	wg.Wait()
	fmt.Fprintln(out, "Session ended.")
	return nil
}
