package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/tydev/todoapp/internal/application"
	"github.com/tydev/todoapp/internal/domain/entity"
	"github.com/tydev/todoapp/internal/interface/middleware"
	"github.com/tydev/todoapp/pkg/helpers"
	"github.com/tydev/todoapp/pkg/response"
)

// TaskHandler drives the task form flow. All routes here sit behind the
// session middleware; ownership itself is enforced by the service gate.
type TaskHandler struct {
	Svc     *application.TaskService
	Logger  *logrus.Logger
	Cookies *helpers.CookieManager
}

func NewTaskHandler(svc *application.TaskService, logger *logrus.Logger, cookieDomain string, cookieSecure bool) *TaskHandler {
	return &TaskHandler{Svc: svc, Logger: logger, Cookies: helpers.NewCookie(cookieDomain, cookieSecure)}
}

type taskForm struct {
	Title        string `form:"title" json:"title"`
	Description  string `form:"description" json:"description"`
	Completed    bool   `form:"completed" json:"completed"`
	DueDate      string `form:"due_date" json:"due_date"`
	ReminderTime string `form:"reminder_time" json:"reminder_time"`
}

type taskView struct {
	ID           int64      `json:"id"`
	Title        string     `json:"title"`
	Description  string     `json:"description,omitempty"`
	Completed    bool       `json:"completed"`
	DueDate      *time.Time `json:"due_date,omitempty"`
	ReminderTime *time.Time `json:"reminder_time,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

func toTaskView(t *entity.Task) taskView {
	return taskView{
		ID:           t.ID,
		Title:        t.Title,
		Description:  t.Description,
		Completed:    t.Completed,
		DueDate:      t.DueDate,
		ReminderTime: t.ReminderTime,
		CreatedAt:    t.CreatedAt,
		UpdatedAt:    t.UpdatedAt,
	}
}

func toTaskViews(tasks []*entity.Task) []taskView {
	out := make([]taskView, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, toTaskView(t))
	}
	return out
}

// parseOptionalTime applies the lenient datetime policy: a malformed value
// is logged and dropped, never fatal to the request.
func (h *TaskHandler) parseOptionalTime(field, raw string) *time.Time {
	t, err := application.OptionalLocalDateTime(raw)
	if err != nil && h.Logger != nil {
		h.Logger.WithFields(logrus.Fields{"field": field, "value": raw}).Warn("dropping unparseable datetime")
	}
	return t
}

func taskID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// redirectTaskErr maps a task-domain error onto the flash + redirect the
// form flow expects.
func (h *TaskHandler) redirectTaskErr(c *gin.Context, err error, target string) {
	switch {
	case errors.Is(err, application.ErrAccessDenied):
		h.Cookies.FlashError(c, "Access denied")
	case errors.Is(err, application.ErrTaskNotFound):
		h.Cookies.FlashError(c, "Task not found")
	case errors.Is(err, application.ErrEmptyTitle):
		h.Cookies.FlashError(c, "Title is required")
	default:
		if h.Logger != nil {
			h.Logger.WithError(err).Error("task operation failed")
		}
		h.Cookies.FlashError(c, "Something went wrong, please try again")
	}
	c.Redirect(http.StatusSeeOther, target)
}

// Home GET / and GET /tasks — the owner's tasks, newest first, plus the
// current time for the view.
func (h *TaskHandler) Home(c *gin.Context) {
	uid := middleware.UserID(c)
	tasks, err := h.Svc.ListForOwner(c.Request.Context(), uid)
	if err != nil {
		if h.Logger != nil {
			h.Logger.WithError(err).WithField("user_id", uid).Error("list tasks failed")
		}
		resp := response.Error[any](c, http.StatusInternalServerError, "error loading tasks", nil)
		c.JSON(resp.Status, resp)
		return
	}
	flash := h.Cookies.ConsumeFlash(c)
	resp := response.Success(c, http.StatusOK, gin.H{
		"tasks":        toTaskViews(tasks),
		"current_date": time.Now(),
		"flash":        flash,
	}, "tasks", nil)
	c.JSON(resp.Status, resp)
}

// Create POST /tasks
func (h *TaskHandler) Create(c *gin.Context) {
	uid := middleware.UserID(c)
	var form taskForm
	if err := c.ShouldBind(&form); err != nil {
		h.Cookies.FlashError(c, "Invalid form submission")
		c.Redirect(http.StatusSeeOther, "/")
		return
	}

	task, err := h.Svc.Create(c.Request.Context(), uid, application.CreateTaskInput{
		Title:        form.Title,
		Description:  form.Description,
		DueDate:      h.parseOptionalTime("due_date", form.DueDate),
		ReminderTime: h.parseOptionalTime("reminder_time", form.ReminderTime),
	})
	if err != nil {
		h.redirectTaskErr(c, err, "/")
		return
	}

	h.Cookies.FlashSuccess(c, "Task '"+task.Title+"' created successfully!")
	c.Redirect(http.StatusSeeOther, "/")
}

// ToggleComplete POST /tasks/:id/complete
func (h *TaskHandler) ToggleComplete(c *gin.Context) {
	uid := middleware.UserID(c)
	id, ok := taskID(c)
	if !ok {
		h.Cookies.FlashError(c, "Task not found")
		c.Redirect(http.StatusSeeOther, "/")
		return
	}

	task, err := h.Svc.ToggleCompleted(c.Request.Context(), uid, id)
	if err != nil {
		h.redirectTaskErr(c, err, "/")
		return
	}

	if task.Completed {
		h.Cookies.FlashSuccess(c, "Task marked as completed!")
	} else {
		h.Cookies.FlashSuccess(c, "Task marked as pending!")
	}
	c.Redirect(http.StatusSeeOther, "/")
}

// Delete POST /tasks/:id/delete
func (h *TaskHandler) Delete(c *gin.Context) {
	uid := middleware.UserID(c)
	id, ok := taskID(c)
	if !ok {
		h.Cookies.FlashError(c, "Task not found")
		c.Redirect(http.StatusSeeOther, "/")
		return
	}

	task, err := h.Svc.AuthorizedTask(c.Request.Context(), uid, id)
	if err != nil {
		h.redirectTaskErr(c, err, "/")
		return
	}
	if err := h.Svc.Delete(c.Request.Context(), uid, id); err != nil {
		h.redirectTaskErr(c, err, "/")
		return
	}

	h.Cookies.FlashSuccess(c, "Task '"+task.Title+"' deleted successfully!")
	c.Redirect(http.StatusSeeOther, "/")
}

// EditForm GET /tasks/:id/edit
func (h *TaskHandler) EditForm(c *gin.Context) {
	uid := middleware.UserID(c)
	id, ok := taskID(c)
	if !ok {
		h.Cookies.FlashError(c, "Task not found")
		c.Redirect(http.StatusSeeOther, "/tasks")
		return
	}

	task, err := h.Svc.AuthorizedTask(c.Request.Context(), uid, id)
	if err != nil {
		h.redirectTaskErr(c, err, "/tasks")
		return
	}

	flash := h.Cookies.ConsumeFlash(c)
	resp := response.Success(c, http.StatusOK, gin.H{"task": toTaskView(task), "flash": flash}, "edit task", nil)
	c.JSON(resp.Status, resp)
}

// Edit POST /tasks/:id/edit
func (h *TaskHandler) Edit(c *gin.Context) {
	uid := middleware.UserID(c)
	id, ok := taskID(c)
	if !ok {
		h.Cookies.FlashError(c, "Task not found")
		c.Redirect(http.StatusSeeOther, "/tasks")
		return
	}

	var form taskForm
	if err := c.ShouldBind(&form); err != nil {
		h.Cookies.FlashError(c, "Invalid form submission")
		c.Redirect(http.StatusSeeOther, "/tasks")
		return
	}

	_, err := h.Svc.Update(c.Request.Context(), uid, id, application.UpdateTaskInput{
		Title:        form.Title,
		Description:  form.Description,
		Completed:    form.Completed,
		DueDate:      h.parseOptionalTime("due_date", form.DueDate),
		ReminderTime: h.parseOptionalTime("reminder_time", form.ReminderTime),
	})
	if err != nil {
		h.redirectTaskErr(c, err, "/tasks")
		return
	}

	h.Cookies.FlashSuccess(c, "Task updated successfully!")
	c.Redirect(http.StatusSeeOther, "/tasks")
}

// Upcoming GET /tasks/upcoming — owner tasks that carry a due date,
// soonest first.
func (h *TaskHandler) Upcoming(c *gin.Context) {
	uid := middleware.UserID(c)
	tasks, err := h.Svc.ListUpcoming(c.Request.Context(), uid)
	if err != nil {
		resp := response.Error[any](c, http.StatusInternalServerError, "error loading tasks", nil)
		c.JSON(resp.Status, resp)
		return
	}
	resp := response.Success(c, http.StatusOK, gin.H{"tasks": toTaskViews(tasks)}, "upcoming tasks", nil)
	c.JSON(resp.Status, resp)
}

// Search GET /tasks/search?q=
func (h *TaskHandler) Search(c *gin.Context) {
	uid := middleware.UserID(c)
	q := c.Query("q")
	if q == "" {
		resp := response.Error[any](c, http.StatusBadRequest, "missing query", nil)
		c.JSON(resp.Status, resp)
		return
	}
	size, _ := strconv.Atoi(c.DefaultQuery("size", "10"))
	hits, err := h.Svc.Search(c.Request.Context(), uid, q, size)
	if err != nil {
		resp := response.Error[any](c, http.StatusInternalServerError, "search failed", nil)
		c.JSON(resp.Status, resp)
		return
	}
	resp := response.Success(c, http.StatusOK, gin.H{"results": hits}, "search results", nil)
	c.JSON(resp.Status, resp)
}
