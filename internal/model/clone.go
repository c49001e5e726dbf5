package model

// Clone returns a deep copy of the profile.
func (p *UserProfile) Clone() *UserProfile {
	if p == nil {
		return nil
	}
	c := *p
	if p.LiveLocation != nil {
		loc := *p.LiveLocation
		c.LiveLocation = &loc
	}
	return &c
}

// Clone returns a deep copy of the spot.
func (s *Spot) Clone() *Spot {
	if s == nil {
		return nil
	}
	c := *s
	if s.Coords != nil {
		co := *s.Coords
		c.Coords = &co
	}
	return &c
}

// Clone returns a deep copy of the drink, including its voter list.
func (d *Drink) Clone() *Drink {
	if d == nil {
		return nil
	}
	c := *d
	c.VotedBy = append([]string(nil), d.VotedBy...)
	return &c
}

// Clone returns a copy of the invitation.
func (i *Invitation) Clone() *Invitation {
	if i == nil {
		return nil
	}
	c := *i
	return &c
}

// Clone returns a copy of the payment.
func (p *Payment) Clone() *Payment {
	if p == nil {
		return nil
	}
	c := *p
	return &c
}

// Clone returns a deep copy of the message, including image list and
// reaction sets.
func (m *ChatMessage) Clone() *ChatMessage {
	if m == nil {
		return nil
	}
	c := *m
	if m.ImageURLs != nil {
		c.ImageURLs = append([]string(nil), m.ImageURLs...)
	}
	if m.Reactions != nil {
		c.Reactions = make(map[string][]string, len(m.Reactions))
		for emoji, users := range m.Reactions {
			c.Reactions[emoji] = append([]string(nil), users...)
		}
	}
	return &c
}

// Clone returns a copy of the moment.
func (m *Moment) Clone() *Moment {
	if m == nil {
		return nil
	}
	c := *m
	return &c
}

// Clone returns a copy of the notification.
func (n *Notification) Clone() *Notification {
	if n == nil {
		return nil
	}
	c := *n
	return &c
}
