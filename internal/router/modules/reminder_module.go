package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tydev/todoapp/internal/container"
	handlers "github.com/tydev/todoapp/internal/interface/http"
	"github.com/tydev/todoapp/internal/interface/middleware"
)

// ReminderModule exposes the cross-user reminder feed and dispatch trigger.
// No session here; callers are polling clients and cron hooks.
type ReminderModule struct {
	Handler *handlers.ReminderHandler
}

func NewReminderModule(h *handlers.ReminderHandler) *ReminderModule {
	return &ReminderModule{Handler: h}
}

func (m *ReminderModule) Register(rg *gin.RouterGroup) {
	rl := middleware.RateLimit(container.GetRedis(), 60, time.Minute, middleware.KeyByIP(), middleware.AllowPrivateIP())
	rg.GET("/reminders/due", rl, m.Handler.Due)
	rg.POST("/reminders/dispatch", rl, m.Handler.Dispatch)
}
