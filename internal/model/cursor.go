package model

import "time"

// Cursor is a keyset pagination cursor over (created_at, id).
type Cursor struct {
	CreatedAt time.Time
	ID        string
}

func (c Cursor) IsZero() bool {
	return c.ID == ""
}
