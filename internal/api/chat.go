package api

import (
	"context"
	"strings"

	"github.com/paujie/brocode/internal/model"
	"github.com/paujie/brocode/internal/store"
)

// Messages returns the full chat history in creation order.
//
// Author snapshots are captured at send time and can go stale when a
// profile changes; this read is the explicit re-sync hook — it refreshes
// each message's author picture from the live profile before returning.
func (a *API) Messages(ctx context.Context) ([]*model.ChatMessage, error) {
	if err := a.wait(ctx); err != nil {
		return nil, err
	}
	var msgs []*model.ChatMessage
	a.store.Update(func(d *store.Data) {
		for _, m := range d.Messages {
			if u := d.Users[m.UserID]; u != nil {
				m.Author.ProfilePicURL = u.ProfilePicURL
			}
			msgs = append(msgs, m.Clone())
		}
	})
	return msgs, nil
}

// SendMessage appends a message to the chat. A message must carry text,
// images, or both.
func (a *API) SendMessage(ctx context.Context, userID, text string, imageURLs []string) (*model.ChatMessage, error) {
	if err := a.wait(ctx); err != nil {
		return nil, err
	}
	if strings.TrimSpace(text) == "" && len(imageURLs) == 0 {
		return nil, NewValidationError("message must have text or images")
	}

	var msg *model.ChatMessage
	a.store.Update(func(d *store.Data) {
		author := d.Users[userID]
		if author == nil {
			return
		}
		msg = &model.ChatMessage{
			ID:        a.ids.NewID("msg"),
			UserID:    userID,
			Text:      text,
			ImageURLs: append([]string(nil), imageURLs...),
			CreatedAt: a.clock.Now(),
			Author:    author.Snapshot(),
		}
		d.Messages = append(d.Messages, msg)
		msg = msg.Clone()
	})
	if msg == nil {
		return nil, NewNotFoundError("user", userID)
	}
	return msg, nil
}

// ToggleReaction flips the user's membership in the message's reaction
// set for the emoji. When the last reactor leaves, the emoji entry is
// deleted entirely — no empty sets survive.
func (a *API) ToggleReaction(ctx context.Context, messageID, emoji, userID string) (*model.ChatMessage, error) {
	if err := a.wait(ctx); err != nil {
		return nil, err
	}
	var msg *model.ChatMessage
	a.store.Update(func(d *store.Data) {
		m := d.FindMessage(messageID)
		if m == nil {
			return
		}
		if m.Reactions == nil {
			m.Reactions = make(map[string][]string)
		}
		users := m.Reactions[emoji]
		removed := false
		for i, id := range users {
			if id == userID {
				users = append(users[:i], users[i+1:]...)
				removed = true
				break
			}
		}
		if removed {
			if len(users) == 0 {
				delete(m.Reactions, emoji)
			} else {
				m.Reactions[emoji] = users
			}
		} else {
			m.Reactions[emoji] = append(users, userID)
		}
		if len(m.Reactions) == 0 {
			m.Reactions = nil
		}
		msg = m.Clone()
	})
	if msg == nil {
		return nil, NewNotFoundError("message", messageID)
	}
	return msg, nil
}
