package application

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/sirupsen/logrus"

	"github.com/tydev/todoapp/internal/domain/entity"
	repo "github.com/tydev/todoapp/internal/domain/repository"
)

// TaskService owns task CRUD and the reminder query. Every operation that
// acts on an existing task goes through the ownership gate; handlers never
// compare owner ids themselves.
type TaskService struct {
	Repo         repo.TaskRepository
	Logger       *logrus.Logger
	ES           *elasticsearch.Client
	ESTasksIndex string
}

func NewTaskService(r repo.TaskRepository, logger *logrus.Logger, es *elasticsearch.Client, esTasksIndex string) *TaskService {
	return &TaskService{Repo: r, Logger: logger, ES: es, ESTasksIndex: esTasksIndex}
}

type CreateTaskInput struct {
	Title        string
	Description  string
	DueDate      *time.Time
	ReminderTime *time.Time
}

type UpdateTaskInput struct {
	Title        string
	Description  string
	Completed    bool
	DueDate      *time.Time
	ReminderTime *time.Time
}

// Create persists a new task for ownerID with completed=false and both
// timestamps assigned by the store.
func (s *TaskService) Create(ctx context.Context, ownerID int64, in CreateTaskInput) (*entity.Task, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, ErrEmptyTitle
	}
	t := &entity.Task{
		UserID:       ownerID,
		Title:        in.Title,
		Description:  in.Description,
		Completed:    false,
		DueDate:      in.DueDate,
		ReminderTime: in.ReminderTime,
	}
	if err := s.Repo.Create(ctx, t); err != nil {
		return nil, err
	}
	s.indexTask(ctx, t)
	return t, nil
}

// AuthorizedTask is the single ownership gate. It resolves the task and
// verifies the caller owns it, distinguishing a missing task from a foreign
// one so the boundary can answer with the right outcome.
func (s *TaskService) AuthorizedTask(ctx context.Context, ownerID, taskID int64) (*entity.Task, error) {
	t, err := s.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if t.UserID != ownerID {
		if s.Logger != nil {
			s.Logger.WithFields(logrus.Fields{"task_id": taskID, "owner_id": t.UserID, "caller_id": ownerID}).
				Warn("task access denied")
		}
		return nil, ErrAccessDenied
	}
	return t, nil
}

func (s *TaskService) GetByID(ctx context.Context, id int64) (*entity.Task, error) {
	t, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}
	return t, nil
}

// Update overwrites the editable fields of an owned task and refreshes
// updated_at. created_at and the owner are never touched.
func (s *TaskService) Update(ctx context.Context, ownerID, taskID int64, in UpdateTaskInput) (*entity.Task, error) {
	if _, err := s.AuthorizedTask(ctx, ownerID, taskID); err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.Title) == "" {
		return nil, ErrEmptyTitle
	}
	t, err := s.Repo.Update(ctx, taskID, repo.TaskUpdate{
		Title:        in.Title,
		Description:  in.Description,
		Completed:    in.Completed,
		DueDate:      in.DueDate,
		ReminderTime: in.ReminderTime,
	})
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}
	s.indexTask(ctx, t)
	return t, nil
}

// ToggleCompleted flips the completed flag of an owned task. Toggling twice
// restores the original value.
func (s *TaskService) ToggleCompleted(ctx context.Context, ownerID, taskID int64) (*entity.Task, error) {
	t, err := s.AuthorizedTask(ctx, ownerID, taskID)
	if err != nil {
		return nil, err
	}
	return s.Update(ctx, ownerID, taskID, UpdateTaskInput{
		Title:        t.Title,
		Description:  t.Description,
		Completed:    !t.Completed,
		DueDate:      t.DueDate,
		ReminderTime: t.ReminderTime,
	})
}

// Delete removes an owned task permanently.
func (s *TaskService) Delete(ctx context.Context, ownerID, taskID int64) error {
	if _, err := s.AuthorizedTask(ctx, ownerID, taskID); err != nil {
		return err
	}
	if err := s.Repo.Delete(ctx, taskID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrTaskNotFound
		}
		return err
	}
	s.deleteTaskIndex(ctx, taskID)
	return nil
}

// ListForOwner returns the owner's tasks newest first.
func (s *TaskService) ListForOwner(ctx context.Context, ownerID int64) ([]*entity.Task, error) {
	return s.Repo.ListByOwnerOrdered(ctx, ownerID)
}

// ListUpcoming returns the owner's tasks that carry a due date, soonest first.
func (s *TaskService) ListUpcoming(ctx context.Context, ownerID int64) ([]*entity.Task, error) {
	return s.Repo.ListUpcoming(ctx, ownerID)
}

// ListByCompletion filters the owner's tasks by completion state.
func (s *TaskService) ListByCompletion(ctx context.Context, ownerID int64, completed bool) ([]*entity.Task, error) {
	return s.Repo.ListByOwnerAndCompleted(ctx, ownerID, completed)
}

// DueReminders returns every incomplete task whose reminder time lies
// strictly before now, across all users. The global scope matches the
// reminder endpoint it feeds.
func (s *TaskService) DueReminders(ctx context.Context, now time.Time) ([]*entity.Task, error) {
	return s.Repo.ListDueReminders(ctx, now)
}

func (s *TaskService) indexTask(ctx context.Context, t *entity.Task) {
	if s.ES == nil || s.ESTasksIndex == "" {
		return
	}
	doc := map[string]any{
		"id":          t.ID,
		"user_id":     t.UserID,
		"title":       t.Title,
		"description": t.Description,
		"completed":   t.Completed,
		"created_at":  t.CreatedAt.Format(time.RFC3339Nano),
		"updated_at":  t.UpdatedAt.Format(time.RFC3339Nano),
	}
	b, _ := json.Marshal(doc)
	req := esapi.IndexRequest{
		Index:      s.ESTasksIndex,
		DocumentID: strconv.FormatInt(t.ID, 10),
		Body:       strings.NewReader(string(b)),
		Refresh:    "false",
	}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("task_id", t.ID).Warn("es index failed")
		}
		return
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && s.Logger != nil {
		s.Logger.WithField("status", res.Status()).WithField("task_id", t.ID).Warn("es index response error")
	}
}

func (s *TaskService) deleteTaskIndex(ctx context.Context, taskID int64) {
	if s.ES == nil || s.ESTasksIndex == "" {
		return
	}
	req := esapi.DeleteRequest{Index: s.ESTasksIndex, DocumentID: strconv.FormatInt(taskID, 10)}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("task_id", taskID).Warn("es delete failed")
		}
		return
	}
	_ = res.Body.Close()
}

// Search performs a multi_match query over title and description, scoped to
// the owner via a term filter.
func (s *TaskService) Search(ctx context.Context, ownerID int64, q string, size int) ([]map[string]any, error) {
	if s.ES == nil || s.ESTasksIndex == "" {
		return []map[string]any{}, nil
	}
	if size <= 0 || size > 50 {
		size = 10
	}
	query := map[string]any{
		"query": map[string]any{
			"bool": map[string]any{
				"must": map[string]any{
					"multi_match": map[string]any{
						"query":  q,
						"fields": []string{"title^2", "description"},
					},
				},
				"filter": map[string]any{
					"term": map[string]any{"user_id": ownerID},
				},
			},
		},
		"size": size,
	}
	b, _ := json.Marshal(query)

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := s.ES.Search(
		s.ES.Search.WithContext(c),
		s.ES.Search.WithIndex(s.ESTasksIndex),
		s.ES.Search.WithBody(strings.NewReader(string(b))),
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID     string         `json:"_id"`
				Source map[string]any `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	out := make([]map[string]any, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.Source)
	}
	return out, nil
}
