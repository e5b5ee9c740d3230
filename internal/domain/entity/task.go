package entity

import "time"

// Task belongs to exactly one user; ownership is set at creation and
// never transferred.
type Task struct {
	ID           int64
	UserID       int64
	Title        string
	Description  string
	Completed    bool
	DueDate      *time.Time
	ReminderTime *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
