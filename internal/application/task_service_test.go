package application

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tydev/todoapp/internal/domain/entity"
	repo "github.com/tydev/todoapp/internal/domain/repository"
)

// fakeTaskRepo is an in-memory TaskRepository with the same timestamp
// behavior as the Postgres implementation.
type fakeTaskRepo struct {
	nextID int64
	tasks  map[int64]*entity.Task
}

func newFakeTaskRepo() *fakeTaskRepo {
	return &fakeTaskRepo{nextID: 1, tasks: map[int64]*entity.Task{}}
}

func (f *fakeTaskRepo) Create(_ context.Context, t *entity.Task) error {
	t.ID = f.nextID
	f.nextID++
	now := time.Now()
	t.CreatedAt = now
	t.UpdatedAt = now
	cp := *t
	f.tasks[t.ID] = &cp
	return nil
}

func (f *fakeTaskRepo) GetByID(_ context.Context, id int64) (*entity.Task, error) {
	t, ok := f.tasks[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	cp := *t
	return &cp, nil
}

func (f *fakeTaskRepo) Update(_ context.Context, id int64, upd repo.TaskUpdate) (*entity.Task, error) {
	t, ok := f.tasks[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	t.Title = upd.Title
	t.Description = upd.Description
	t.Completed = upd.Completed
	t.DueDate = upd.DueDate
	t.ReminderTime = upd.ReminderTime
	t.UpdatedAt = time.Now()
	cp := *t
	return &cp, nil
}

func (f *fakeTaskRepo) Delete(_ context.Context, id int64) error {
	if _, ok := f.tasks[id]; !ok {
		return repo.ErrNotFound
	}
	delete(f.tasks, id)
	return nil
}

func (f *fakeTaskRepo) ListByOwner(_ context.Context, ownerID int64) ([]*entity.Task, error) {
	var out []*entity.Task
	for _, t := range f.tasks {
		if t.UserID == ownerID {
			cp := *t
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeTaskRepo) ListByOwnerOrdered(ctx context.Context, ownerID int64) ([]*entity.Task, error) {
	out, _ := f.ListByOwner(ctx, ownerID)
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (f *fakeTaskRepo) ListByOwnerAndCompleted(ctx context.Context, ownerID int64, completed bool) ([]*entity.Task, error) {
	all, _ := f.ListByOwner(ctx, ownerID)
	var out []*entity.Task
	for _, t := range all {
		if t.Completed == completed {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeTaskRepo) ListUpcoming(ctx context.Context, ownerID int64) ([]*entity.Task, error) {
	all, _ := f.ListByOwner(ctx, ownerID)
	var out []*entity.Task
	for _, t := range all {
		if t.DueDate != nil {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DueDate.Before(*out[j].DueDate) })
	return out, nil
}

func (f *fakeTaskRepo) ListDueReminders(_ context.Context, now time.Time) ([]*entity.Task, error) {
	var out []*entity.Task
	for _, t := range f.tasks {
		if !t.Completed && t.ReminderTime != nil && t.ReminderTime.Before(now) {
			cp := *t
			out = append(out, &cp)
		}
	}
	return out, nil
}

var _ repo.TaskRepository = (*fakeTaskRepo)(nil)

func newTaskService() (*TaskService, *fakeTaskRepo) {
	f := newFakeTaskRepo()
	return NewTaskService(f, nil, nil, ""), f
}

func timePtr(t time.Time) *time.Time { return &t }

func TestCreateTaskDefaults(t *testing.T) {
	svc, _ := newTaskService()
	ctx := context.Background()

	due := time.Now().Add(24 * time.Hour)
	task, err := svc.Create(ctx, 1, CreateTaskInput{Title: "write report", DueDate: timePtr(due)})
	require.NoError(t, err)

	assert.NotZero(t, task.ID)
	assert.Equal(t, int64(1), task.UserID)
	assert.False(t, task.Completed)
	assert.False(t, task.CreatedAt.IsZero())
	assert.False(t, task.UpdatedAt.IsZero())
	require.NotNil(t, task.DueDate)
	assert.True(t, task.DueDate.Equal(due))
	assert.Nil(t, task.ReminderTime)
}

func TestCreateTaskRejectsBlankTitle(t *testing.T) {
	svc, _ := newTaskService()
	ctx := context.Background()

	for _, title := range []string{"", "   ", "\t\n"} {
		_, err := svc.Create(ctx, 1, CreateTaskInput{Title: title})
		assert.ErrorIs(t, err, ErrEmptyTitle, "title %q", title)
	}
}

func TestAuthorizedTaskDistinguishesMissingFromForeign(t *testing.T) {
	svc, _ := newTaskService()
	ctx := context.Background()

	task, err := svc.Create(ctx, 1, CreateTaskInput{Title: "mine"})
	require.NoError(t, err)

	_, err = svc.AuthorizedTask(ctx, 1, 999)
	assert.ErrorIs(t, err, ErrTaskNotFound)

	_, err = svc.AuthorizedTask(ctx, 2, task.ID)
	assert.ErrorIs(t, err, ErrAccessDenied)

	got, err := svc.AuthorizedTask(ctx, 1, task.ID)
	require.NoError(t, err)
	assert.Equal(t, task.ID, got.ID)
}

func TestMutationsDeniedForForeignOwner(t *testing.T) {
	svc, f := newTaskService()
	ctx := context.Background()

	task, err := svc.Create(ctx, 1, CreateTaskInput{Title: "mine"})
	require.NoError(t, err)

	_, err = svc.Update(ctx, 2, task.ID, UpdateTaskInput{Title: "stolen"})
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = svc.ToggleCompleted(ctx, 2, task.ID)
	assert.ErrorIs(t, err, ErrAccessDenied)

	err = svc.Delete(ctx, 2, task.ID)
	assert.ErrorIs(t, err, ErrAccessDenied)

	// the task is untouched
	stored, err := f.GetByID(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, "mine", stored.Title)
	assert.False(t, stored.Completed)
}

func TestToggleCompletedRoundTrip(t *testing.T) {
	svc, _ := newTaskService()
	ctx := context.Background()

	due := time.Now().Add(time.Hour)
	task, err := svc.Create(ctx, 1, CreateTaskInput{Title: "flip me", DueDate: timePtr(due)})
	require.NoError(t, err)
	created := task.UpdatedAt

	time.Sleep(5 * time.Millisecond)

	task, err = svc.ToggleCompleted(ctx, 1, task.ID)
	require.NoError(t, err)
	assert.True(t, task.Completed)
	assert.True(t, task.UpdatedAt.After(created))
	require.NotNil(t, task.DueDate)
	assert.True(t, task.DueDate.Equal(due), "toggle must preserve the due date")

	task, err = svc.ToggleCompleted(ctx, 1, task.ID)
	require.NoError(t, err)
	assert.False(t, task.Completed)
}

func TestUpdatePreservesCreatedAt(t *testing.T) {
	svc, _ := newTaskService()
	ctx := context.Background()

	task, err := svc.Create(ctx, 1, CreateTaskInput{Title: "first"})
	require.NoError(t, err)
	createdAt := task.CreatedAt

	time.Sleep(5 * time.Millisecond)

	updated, err := svc.Update(ctx, 1, task.ID, UpdateTaskInput{Title: "second", Description: "edited"})
	require.NoError(t, err)
	assert.Equal(t, "second", updated.Title)
	assert.True(t, updated.CreatedAt.Equal(createdAt))
	assert.True(t, updated.UpdatedAt.After(createdAt))
}

func TestUpdateRejectsBlankTitle(t *testing.T) {
	svc, _ := newTaskService()
	ctx := context.Background()

	task, err := svc.Create(ctx, 1, CreateTaskInput{Title: "keep me"})
	require.NoError(t, err)

	_, err = svc.Update(ctx, 1, task.ID, UpdateTaskInput{Title: "  "})
	assert.ErrorIs(t, err, ErrEmptyTitle)
}

func TestDeleteRemovesTask(t *testing.T) {
	svc, _ := newTaskService()
	ctx := context.Background()

	task, err := svc.Create(ctx, 1, CreateTaskInput{Title: "gone soon"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, 1, task.ID))

	_, err = svc.GetByID(ctx, task.ID)
	assert.ErrorIs(t, err, ErrTaskNotFound)

	err = svc.Delete(ctx, 1, task.ID)
	assert.ErrorIs(t, err, ErrTaskNotFound)
}

func TestListForOwnerScopedAndOrdered(t *testing.T) {
	svc, _ := newTaskService()
	ctx := context.Background()

	for i, title := range []string{"a", "b", "c"} {
		owner := int64(1)
		if i == 2 {
			owner = 2
		}
		_, err := svc.Create(ctx, owner, CreateTaskInput{Title: title})
		require.NoError(t, err)
		time.Sleep(2 * time.Millisecond)
	}

	mine, err := svc.ListForOwner(ctx, 1)
	require.NoError(t, err)
	require.Len(t, mine, 2)
	// newest first
	assert.Equal(t, "b", mine[0].Title)
	assert.Equal(t, "a", mine[1].Title)
}

func TestListUpcomingOrdersByDueDate(t *testing.T) {
	svc, _ := newTaskService()
	ctx := context.Background()
	now := time.Now()

	_, err := svc.Create(ctx, 1, CreateTaskInput{Title: "later", DueDate: timePtr(now.Add(48 * time.Hour))})
	require.NoError(t, err)
	_, err = svc.Create(ctx, 1, CreateTaskInput{Title: "no due date"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, 1, CreateTaskInput{Title: "sooner", DueDate: timePtr(now.Add(time.Hour))})
	require.NoError(t, err)

	up, err := svc.ListUpcoming(ctx, 1)
	require.NoError(t, err)
	require.Len(t, up, 2)
	assert.Equal(t, "sooner", up[0].Title)
	assert.Equal(t, "later", up[1].Title)
}

func TestListByCompletion(t *testing.T) {
	svc, _ := newTaskService()
	ctx := context.Background()

	done, err := svc.Create(ctx, 1, CreateTaskInput{Title: "done"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, 1, CreateTaskInput{Title: "pending"})
	require.NoError(t, err)
	_, err = svc.ToggleCompleted(ctx, 1, done.ID)
	require.NoError(t, err)

	completed, err := svc.ListByCompletion(ctx, 1, true)
	require.NoError(t, err)
	require.Len(t, completed, 1)
	assert.Equal(t, "done", completed[0].Title)

	pending, err := svc.ListByCompletion(ctx, 1, false)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "pending", pending[0].Title)
}

func TestDueRemindersSpansOwnersAndSkipsCompleted(t *testing.T) {
	svc, _ := newTaskService()
	ctx := context.Background()
	now := time.Now()

	_, err := svc.Create(ctx, 1, CreateTaskInput{Title: "overdue mine", ReminderTime: timePtr(now.Add(-time.Hour))})
	require.NoError(t, err)
	_, err = svc.Create(ctx, 2, CreateTaskInput{Title: "overdue theirs", ReminderTime: timePtr(now.Add(-time.Minute))})
	require.NoError(t, err)
	snoozed, err := svc.Create(ctx, 1, CreateTaskInput{Title: "done already", ReminderTime: timePtr(now.Add(-time.Hour))})
	require.NoError(t, err)
	_, err = svc.ToggleCompleted(ctx, 1, snoozed.ID)
	require.NoError(t, err)
	_, err = svc.Create(ctx, 1, CreateTaskInput{Title: "future", ReminderTime: timePtr(now.Add(time.Hour))})
	require.NoError(t, err)

	due, err := svc.DueReminders(ctx, now)
	require.NoError(t, err)
	require.Len(t, due, 2)

	titles := map[string]bool{}
	for _, task := range due {
		titles[task.Title] = true
	}
	assert.True(t, titles["overdue mine"])
	assert.True(t, titles["overdue theirs"])
}
