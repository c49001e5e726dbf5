// Package harness executes YAML conformance scenarios against the mock
// service layer. Each scenario runs over a fresh seeded store with a
// manual clock and sequential ids, so the emitted trace is fully
// deterministic and can be compared against golden files.
package harness

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/paujie/brocode/internal/api"
	"github.com/paujie/brocode/internal/feed"
	"github.com/paujie/brocode/internal/ids"
	"github.com/paujie/brocode/internal/model"
	"github.com/paujie/brocode/internal/store"
	"github.com/paujie/brocode/internal/testutil"
)

// RefTime is the fixed instant every scenario starts at. Seed data and
// clock both derive from it.
var RefTime = time.Date(2030, 6, 1, 12, 0, 0, 0, time.UTC)

// Result holds the trace and any expectation failures.
type Result struct {
	Trace  []string
	Errors []string
}

// Passed reports whether every step met its expectation.
func (r *Result) Passed() bool { return len(r.Errors) == 0 }

// TraceBytes renders the trace for golden comparison.
func (r *Result) TraceBytes() []byte {
	return []byte(strings.Join(r.Trace, "\n") + "\n")
}

// runner executes one scenario.
type runner struct {
	api   *api.API
	clock *testutil.ManualClock
}

// Run executes a scenario and returns its result. Each scenario gets a
// fresh seeded store, a manual clock at RefTime, sequential ids with an
// "sc-" prefix and zero latency.
func Run(sc *Scenario) (*Result, error) {
	st := store.New()
	store.Seed(st, RefTime)

	clk := testutil.NewManualClock(RefTime)
	a := api.New(st,
		api.WithClock(clk),
		api.WithIDs(ids.NewSeqGenerator("sc-")),
		api.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	)

	r := &runner{api: a, clock: clk}
	result := &Result{Trace: []string{"scenario: " + sc.Name}}
	ctx := context.Background()

	for i, step := range sc.Steps {
		line := fmt.Sprintf("%d. %s", i+1, step.Op)
		if rendered := renderArgs(step.Args); rendered != "" {
			line += " " + rendered
		}
		result.Trace = append(result.Trace, line)

		summary, err := r.execute(ctx, step)
		if err != nil {
			code := errorCode(err)
			result.Trace = append(result.Trace, "   error "+code)
			if step.Expect == nil || step.Expect.Error != code {
				result.Errors = append(result.Errors, fmt.Sprintf("step %d (%s): unexpected error %v", i+1, step.Op, err))
			}
			continue
		}
		result.Trace = append(result.Trace, "   ok "+summary)
		if step.Expect != nil && step.Expect.Error != "" {
			result.Errors = append(result.Errors, fmt.Sprintf("step %d (%s): expected error %s, got success", i+1, step.Op, step.Expect.Error))
		}
	}
	return result, nil
}

// execute dispatches one step to the service layer and returns a short
// deterministic summary of the outcome.
func (r *runner) execute(ctx context.Context, step Step) (string, error) {
	args := step.Args
	switch step.Op {
	case "advance":
		d, err := time.ParseDuration(str(args, "by"))
		if err != nil {
			return "", fmt.Errorf("advance: %w", err)
		}
		r.clock.Set(r.clock.Now().Add(d))
		return "now=" + r.clock.Now().UTC().Format(time.RFC3339), nil

	case "login":
		identity, _, err := r.api.Login(ctx, str(args, "identifier"), str(args, "password"))
		if err != nil {
			return "", err
		}
		return "user=" + identity.UserID, nil

	case "upcoming_spot":
		spot, err := r.api.UpcomingSpot(ctx)
		if err != nil {
			return "", err
		}
		if spot == nil {
			return "none", nil
		}
		return "spot=" + spot.ID, nil

	case "past_spots":
		spots, err := r.api.PastSpots(ctx)
		if err != nil {
			return "", err
		}
		spotIDs := make([]string, len(spots))
		for i, s := range spots {
			spotIDs[i] = s.ID
		}
		return "spots=[" + strings.Join(spotIDs, ",") + "]", nil

	case "create_spot":
		date, err := time.Parse(time.RFC3339, str(args, "date"))
		if err != nil {
			return "", fmt.Errorf("create_spot: %w", err)
		}
		spot, err := r.api.CreateSpot(ctx, api.NewSpot{
			Location:  str(args, "location"),
			Date:      date,
			Timing:    str(args, "timing"),
			Budget:    num(args, "budget"),
			CreatedBy: str(args, "created_by"),
		})
		if err != nil {
			return "", err
		}
		return "spot=" + spot.ID, nil

	case "invitations":
		invs, err := r.api.Invitations(ctx, str(args, "spot_id"))
		if err != nil {
			return "", err
		}
		parts := make([]string, len(invs))
		for i, inv := range invs {
			parts[i] = inv.ID + ":" + string(inv.Status)
		}
		return "[" + strings.Join(parts, " ") + "]", nil

	case "invite_user":
		inv, err := r.api.InviteUserToSpot(ctx, str(args, "spot_id"), str(args, "user_id"))
		if err != nil {
			return "", err
		}
		return "invitation=" + inv.ID, nil

	case "update_invitation":
		inv, err := r.api.UpdateInvitationStatus(ctx, str(args, "id"), model.InvitationStatus(str(args, "status")))
		if err != nil {
			return "", err
		}
		return "invitation=" + inv.ID + " status=" + string(inv.Status), nil

	case "payments":
		pays, err := r.api.Payments(ctx, str(args, "spot_id"))
		if err != nil {
			return "", err
		}
		parts := make([]string, len(pays))
		for i, p := range pays {
			parts[i] = p.ID + ":" + string(p.Status)
		}
		return "[" + strings.Join(parts, " ") + "]", nil

	case "update_payment":
		pay, err := r.api.UpdatePaymentStatus(ctx, str(args, "id"), model.PaymentStatus(str(args, "status")))
		if err != nil {
			return "", err
		}
		return "payment=" + pay.ID + " status=" + string(pay.Status), nil

	case "suggest_drink":
		drink, err := r.api.SuggestDrink(ctx, api.NewDrink{
			SpotID:      str(args, "spot_id"),
			Name:        str(args, "name"),
			SuggestedBy: str(args, "suggested_by"),
		})
		if err != nil {
			return "", err
		}
		return "drink=" + drink.ID, nil

	case "toggle_vote":
		drink, err := r.api.ToggleVote(ctx, str(args, "drink_id"), str(args, "user_id"))
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("votes=%d", drink.Votes), nil

	case "rank_drinks":
		drinks, err := r.api.Drinks(ctx, str(args, "spot_id"))
		if err != nil {
			return "", err
		}
		ranked := feed.RankDrinks(drinks)
		parts := make([]string, len(ranked))
		for i, d := range ranked {
			parts[i] = fmt.Sprintf("%s:%d", d.Name, d.Votes)
		}
		return "[" + strings.Join(parts, " | ") + "]", nil

	case "send_message":
		msg, err := r.api.SendMessage(ctx, str(args, "user_id"), str(args, "text"), strs(args, "image_urls"))
		if err != nil {
			return "", err
		}
		return "message=" + msg.ID, nil

	case "toggle_reaction":
		msg, err := r.api.ToggleReaction(ctx, str(args, "message_id"), str(args, "emoji"), str(args, "user_id"))
		if err != nil {
			return "", err
		}
		return "reactions=" + renderReactions(msg.Reactions), nil

	default:
		return "", fmt.Errorf("unknown op %q", step.Op)
	}
}

// errorCode extracts the service error code, or "UNEXPECTED".
func errorCode(err error) string {
	switch {
	case api.IsAuthFailed(err):
		return string(api.ErrCodeAuthFailed)
	case api.IsNotFound(err):
		return string(api.ErrCodeNotFound)
	case api.IsDuplicateInvitation(err):
		return string(api.ErrCodeDuplicateInvitation)
	case api.IsValidation(err):
		return string(api.ErrCodeValidation)
	default:
		return "UNEXPECTED"
	}
}

// renderArgs produces "k=v" pairs sorted by key.
func renderArgs(args map[string]any) string {
	if len(args) == 0 {
		return ""
	}
	keys := make([]string, 0, len(args))
	for k := range args {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s=%v", k, args[k])
	}
	return strings.Join(parts, " ")
}

// renderReactions produces "{emoji:count ...}" sorted by emoji.
func renderReactions(reactions map[string][]string) string {
	if len(reactions) == 0 {
		return "{}"
	}
	keys := make([]string, 0, len(reactions))
	for k := range reactions {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s:%d", k, len(reactions[k]))
	}
	return "{" + strings.Join(parts, " ") + "}"
}

func str(args map[string]any, key string) string {
	v, _ := args[key].(string)
	return v
}

func num(args map[string]any, key string) float64 {
	switch v := args[key].(type) {
	case int:
		return float64(v)
	case float64:
		return v
	default:
		return 0
	}
}

func strs(args map[string]any, key string) []string {
	raw, ok := args[key].([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
