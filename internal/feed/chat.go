// Package feed derives presentation-ready views from the service layer:
// unread counters, sorted rankings and optimistic local mutations with
// rollback. Feeds never mutate canonical entities — they hold their own
// snapshots and re-read full lists when other write sources are active,
// rather than merging incremental patches.
package feed

import (
	"context"
	"log/slog"
	"sync"

	"github.com/paujie/brocode/internal/api"
	"github.com/paujie/brocode/internal/model"
)

// ChatFeed is the viewer's reactive view of the group chat: the message
// list, plus an unread counter that accumulates while the chat view is
// not focused and resets on focus.
type ChatFeed struct {
	api      *api.API
	viewerID string
	log      *slog.Logger

	mu       sync.Mutex
	messages []*model.ChatMessage
	unread   int
	active   bool
	loaded   bool
}

// NewChatFeed creates a feed for the given viewer. Call Load before
// wiring simulator events in.
func NewChatFeed(a *api.API, viewerID string, log *slog.Logger) *ChatFeed {
	if log == nil {
		log = slog.Default()
	}
	return &ChatFeed{api: a, viewerID: viewerID, log: log}
}

// Load fetches the initial message list.
func (f *ChatFeed) Load(ctx context.Context) error {
	msgs, err := f.api.Messages(ctx)
	if err != nil {
		return err
	}
	f.mu.Lock()
	f.messages = msgs
	f.loaded = true
	f.mu.Unlock()
	return nil
}

// Loaded reports whether the initial list has been fetched. Simulators
// must not be started before this is true.
func (f *ChatFeed) Loaded() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.loaded
}

// HandleIncoming reacts to a simulator-injected message by re-reading
// the full list from the store. A full re-read rather than a local append
// keeps this view consistent when the viewer's own sends race the
// simulator: the store's order wins.
func (f *ChatFeed) HandleIncoming(ctx context.Context) error {
	msgs, err := f.api.Messages(ctx)
	if err != nil {
		return err
	}
	f.mu.Lock()
	f.messages = msgs
	if !f.active {
		f.unread++
	}
	f.mu.Unlock()
	return nil
}

// SetActive marks the chat view focused or unfocused. Gaining focus
// resets the unread counter.
func (f *ChatFeed) SetActive(active bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.active = active
	if active {
		f.unread = 0
	}
}

// UnreadCount returns messages received while the view was unfocused
// since the last focus reset.
func (f *ChatFeed) UnreadCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.unread
}

// Messages returns a deep copy of the current view.
func (f *ChatFeed) Messages() []*model.ChatMessage {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*model.ChatMessage, len(f.messages))
	for i, m := range f.messages {
		out[i] = m.Clone()
	}
	return out
}

// Send posts a message as the viewer and appends the stored result to
// the local view.
func (f *ChatFeed) Send(ctx context.Context, text string, imageURLs []string) (*model.ChatMessage, error) {
	msg, err := f.api.SendMessage(ctx, f.viewerID, text, imageURLs)
	if err != nil {
		return nil, err
	}
	f.mu.Lock()
	f.messages = append(f.messages, msg.Clone())
	f.mu.Unlock()
	return msg, nil
}

// ToggleReaction applies the viewer's reaction toggle optimistically:
// the local view updates before the service call, and on failure the
// previous snapshot is restored exactly and the error returned.
func (f *ChatFeed) ToggleReaction(ctx context.Context, messageID, emoji string) error {
	f.mu.Lock()
	snapshot := f.messages
	updated := make([]*model.ChatMessage, len(f.messages))
	found := false
	for i, m := range f.messages {
		if m.ID == messageID {
			c := m.Clone()
			toggleReaction(c, emoji, f.viewerID)
			updated[i] = c
			found = true
		} else {
			updated[i] = m
		}
	}
	if !found {
		f.mu.Unlock()
		return api.NewNotFoundError("message", messageID)
	}
	f.messages = updated
	f.mu.Unlock()

	if _, err := f.api.ToggleReaction(ctx, messageID, emoji, f.viewerID); err != nil {
		f.log.Error("reaction failed, rolling back", "message", messageID, "error", err)
		f.mu.Lock()
		f.messages = snapshot
		f.mu.Unlock()
		return err
	}
	return nil
}

// toggleReaction mirrors the service-side toggle on a local copy: flip
// membership, delete the emoji entry when its set empties.
func toggleReaction(m *model.ChatMessage, emoji, userID string) {
	if m.Reactions == nil {
		m.Reactions = make(map[string][]string)
	}
	users := m.Reactions[emoji]
	for i, id := range users {
		if id == userID {
			users = append(users[:i], users[i+1:]...)
			if len(users) == 0 {
				delete(m.Reactions, emoji)
			} else {
				m.Reactions[emoji] = users
			}
			if len(m.Reactions) == 0 {
				m.Reactions = nil
			}
			return
		}
	}
	m.Reactions[emoji] = append(users, userID)
}
