package repository

import (
	"context"
	"time"

	"github.com/tydev/todoapp/internal/domain/entity"
)

// TaskUpdate carries only the fields a task edit may overwrite. Handlers
// never bind the persisted entity directly.
type TaskUpdate struct {
	Title        string
	Description  string
	Completed    bool
	DueDate      *time.Time
	ReminderTime *time.Time
}

// TaskRepository defines the interface for task persistence.
type TaskRepository interface {
	Create(ctx context.Context, t *entity.Task) error
	GetByID(ctx context.Context, id int64) (*entity.Task, error)
	Update(ctx context.Context, id int64, upd TaskUpdate) (*entity.Task, error)
	Delete(ctx context.Context, id int64) error
	ListByOwner(ctx context.Context, ownerID int64) ([]*entity.Task, error)
	ListByOwnerOrdered(ctx context.Context, ownerID int64) ([]*entity.Task, error)
	ListByOwnerAndCompleted(ctx context.Context, ownerID int64, completed bool) ([]*entity.Task, error)
	ListUpcoming(ctx context.Context, ownerID int64) ([]*entity.Task, error)
	ListDueReminders(ctx context.Context, now time.Time) ([]*entity.Task, error)
}
