package models

import "time"

// StudyNote is a long-form note attached to a subject.
type StudyNote struct {
	ID        string    `json:"id" db:"id"`
	UserID    string    `json:"userId" db:"user_id"`
	Title     string    `json:"title" db:"title"`
	Content   string    `json:"content" db:"content"`
	Subject   string    `json:"subject" db:"subject"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

type StudyNoteInput struct {
	Title   string `json:"title" validate:"required,max=200"`
	Content string `json:"content"`
	Subject string `json:"subject" validate:"max=100"`
}

type StudyNotePatch struct {
	Title   *string `json:"title" validate:"omitempty,min=1,max=200"`
	Content *string `json:"content"`
	Subject *string `json:"subject" validate:"omitempty,max=100"`
}

// StudyTask is a to-do item such as an assignment or exam.
type StudyTask struct {
	ID          string     `json:"id" db:"id"`
	UserID      string     `json:"userId" db:"user_id"`
	Title       string     `json:"title" db:"title"`
	Description string     `json:"description" db:"description"`
	Subject     string     `json:"subject" db:"subject"`
	DueDate     *time.Time `json:"dueDate" db:"due_date"`
	Priority    string     `json:"priority" db:"priority"`
	Completed   bool       `json:"completed" db:"completed"`
	CreatedAt   time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time  `json:"updatedAt" db:"updated_at"`
}

type StudyTaskInput struct {
	Title       string     `json:"title" validate:"required,max=200"`
	Description string     `json:"description"`
	Subject     string     `json:"subject" validate:"max=100"`
	DueDate     *Timestamp `json:"dueDate"`
	Priority    string     `json:"priority" validate:"omitempty,oneof=low medium high"`
}

// StudyTaskPatch is a partial task update; a null dueDate clears it.
type StudyTaskPatch struct {
	Title       *string       `json:"title" validate:"omitempty,min=1,max=200"`
	Description *string       `json:"description"`
	Subject     *string       `json:"subject" validate:"omitempty,max=100"`
	DueDate     NullTimestamp `json:"dueDate"`
	Priority    *string       `json:"priority" validate:"omitempty,oneof=low medium high"`
	Completed   *bool         `json:"completed"`
}
