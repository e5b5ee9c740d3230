package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/tydev/todoapp/internal/application"
	"github.com/tydev/todoapp/pkg/helpers"
	"github.com/tydev/todoapp/pkg/mailer"
	"github.com/tydev/todoapp/pkg/response"
)

// ReminderHandler serves the due-reminders feed and the pull-triggered
// email dispatch. Both endpoints are deliberately unauthenticated: the
// feed spans all users, and dispatch is meant to be hit by a cron-style
// external caller.
type ReminderHandler struct {
	Tasks  *application.TaskService
	Auth   *application.AuthService
	Rabbit *helpers.RabbitPublisher
	Logger *logrus.Logger
}

func NewReminderHandler(tasks *application.TaskService, auth *application.AuthService, rabbit *helpers.RabbitPublisher, logger *logrus.Logger) *ReminderHandler {
	return &ReminderHandler{Tasks: tasks, Auth: auth, Rabbit: rabbit, Logger: logger}
}

// Due GET /reminders/due — every incomplete task whose reminder time has
// passed, across all users, as a raw JSON array.
func (h *ReminderHandler) Due(c *gin.Context) {
	tasks, err := h.Tasks.DueReminders(c.Request.Context(), time.Now())
	if err != nil {
		if h.Logger != nil {
			h.Logger.WithError(err).Error("due reminders query failed")
		}
		resp := response.Error[any](c, http.StatusInternalServerError, "error loading reminders", nil)
		c.JSON(resp.Status, resp)
		return
	}
	c.JSON(http.StatusOK, toTaskViews(tasks))
}

// Dispatch POST /reminders/dispatch — enqueue one email job per due
// reminder whose owner has an email address. Owners without an email are
// counted as skipped, not failed.
func (h *ReminderHandler) Dispatch(c *gin.Context) {
	if h.Rabbit == nil {
		resp := response.Error[any](c, http.StatusServiceUnavailable, "reminder queue unavailable", nil)
		c.JSON(resp.Status, resp)
		return
	}

	ctx := c.Request.Context()
	tasks, err := h.Tasks.DueReminders(ctx, time.Now())
	if err != nil {
		resp := response.Error[any](c, http.StatusInternalServerError, "error loading reminders", nil)
		c.JSON(resp.Status, resp)
		return
	}

	var queued, skipped, failed int
	for _, t := range tasks {
		owner, err := h.Auth.FindByID(ctx, t.UserID)
		if err != nil {
			if h.Logger != nil {
				h.Logger.WithError(err).WithField("user_id", t.UserID).Warn("reminder owner lookup failed")
			}
			failed++
			continue
		}
		if owner.Email == "" {
			skipped++
			continue
		}
		job := mailer.ReminderJob{
			To:           owner.Email,
			Username:     owner.Username,
			TaskID:       t.ID,
			TaskTitle:    t.Title,
			Description:  t.Description,
			DueDate:      t.DueDate,
			ReminderTime: *t.ReminderTime,
		}
		if err := h.Rabbit.PublishJSON(ctx, job); err != nil {
			if h.Logger != nil {
				h.Logger.WithError(err).WithField("task_id", t.ID).Error("reminder publish failed")
			}
			failed++
			continue
		}
		queued++
	}

	resp := response.Success(c, http.StatusOK, gin.H{
		"due":     len(tasks),
		"queued":  queued,
		"skipped": skipped,
		"failed":  failed,
	}, "reminders dispatched", nil)
	c.JSON(resp.Status, resp)
}
