package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tydev/todoapp/internal/domain/entity"
	"github.com/tydev/todoapp/internal/domain/repository"
)

const taskColumns = `id, user_id, title, description, completed, due_date, reminder_time, created_at, updated_at`

type TaskRepository struct {
	pool *pgxpool.Pool
}

func NewTaskRepository(pool *pgxpool.Pool) *TaskRepository {
	return &TaskRepository{pool: pool}
}

func scanTask(row pgx.Row) (*entity.Task, error) {
	t := &entity.Task{}
	if err := row.Scan(&t.ID, &t.UserID, &t.Title, &t.Description, &t.Completed,
		&t.DueDate, &t.ReminderTime, &t.CreatedAt, &t.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return t, nil
}

func collectTasks(rows pgx.Rows) ([]*entity.Task, error) {
	defer rows.Close()
	tasks := make([]*entity.Task, 0)
	for rows.Next() {
		t := &entity.Task{}
		if err := rows.Scan(&t.ID, &t.UserID, &t.Title, &t.Description, &t.Completed,
			&t.DueDate, &t.ReminderTime, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func (r *TaskRepository) Create(ctx context.Context, t *entity.Task) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO tasks (user_id, title, description, completed, due_date, reminder_time)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`, t.UserID, t.Title, t.Description, t.Completed, t.DueDate, t.ReminderTime)

	return row.Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
}

func (r *TaskRepository) GetByID(ctx context.Context, id int64) (*entity.Task, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+taskColumns+`
		FROM tasks
		WHERE id = $1
	`, id)
	return scanTask(row)
}

// Update overwrites the editable fields and refreshes updated_at in a single
// transaction, so a failure mid-update never persists a partial edit.
// created_at and user_id are never touched. Last writer wins; there is no
// version check.
func (r *TaskRepository) Update(ctx context.Context, id int64, upd repository.TaskUpdate) (*entity.Task, error) {
	var updated *entity.Task
	err := pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		row := tx.QueryRow(ctx, `
			UPDATE tasks
			SET title = $1, description = $2, completed = $3, due_date = $4, reminder_time = $5, updated_at = $6
			WHERE id = $7
			RETURNING `+taskColumns+`
		`, upd.Title, upd.Description, upd.Completed, upd.DueDate, upd.ReminderTime, time.Now(), id)

		t, err := scanTask(row)
		if err != nil {
			return err
		}
		updated = t
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (r *TaskRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.pool.Exec(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *TaskRepository) ListByOwner(ctx context.Context, ownerID int64) ([]*entity.Task, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+taskColumns+`
		FROM tasks
		WHERE user_id = $1
	`, ownerID)
	if err != nil {
		return nil, err
	}
	return collectTasks(rows)
}

func (r *TaskRepository) ListByOwnerOrdered(ctx context.Context, ownerID int64) ([]*entity.Task, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+taskColumns+`
		FROM tasks
		WHERE user_id = $1
		ORDER BY created_at DESC
	`, ownerID)
	if err != nil {
		return nil, err
	}
	return collectTasks(rows)
}

func (r *TaskRepository) ListByOwnerAndCompleted(ctx context.Context, ownerID int64, completed bool) ([]*entity.Task, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+taskColumns+`
		FROM tasks
		WHERE user_id = $1 AND completed = $2
	`, ownerID, completed)
	if err != nil {
		return nil, err
	}
	return collectTasks(rows)
}

func (r *TaskRepository) ListUpcoming(ctx context.Context, ownerID int64) ([]*entity.Task, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+taskColumns+`
		FROM tasks
		WHERE user_id = $1 AND due_date IS NOT NULL
		ORDER BY due_date ASC
	`, ownerID)
	if err != nil {
		return nil, err
	}
	return collectTasks(rows)
}

// ListDueReminders is intentionally not scoped to an owner; see the
// reminder endpoint for the rationale.
func (r *TaskRepository) ListDueReminders(ctx context.Context, now time.Time) ([]*entity.Task, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+taskColumns+`
		FROM tasks
		WHERE reminder_time < $1 AND completed = false
	`, now)
	if err != nil {
		return nil, err
	}
	return collectTasks(rows)
}

var _ repository.TaskRepository = (*TaskRepository)(nil)
