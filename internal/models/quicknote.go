package models

import "time"

// QuickNote is a short sticky note.
type QuickNote struct {
	ID        string    `json:"id" db:"id"`
	UserID    string    `json:"userId" db:"user_id"`
	Content   string    `json:"content" db:"content"`
	Color     string    `json:"color" db:"color"`
	Pinned    bool      `json:"pinned" db:"pinned"`
	Archived  bool      `json:"archived" db:"archived"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

type QuickNoteInput struct {
	Content string `json:"content" validate:"required,max=5000"`
	Color   string `json:"color"`
	Pinned  bool   `json:"pinned"`
}

type QuickNotePatch struct {
	Content  *string `json:"content" validate:"omitempty,min=1,max=5000"`
	Color    *string `json:"color"`
	Pinned   *bool   `json:"pinned"`
	Archived *bool   `json:"archived"`
}
