package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tydev/todoapp/internal/container"
	handlers "github.com/tydev/todoapp/internal/interface/http"
	"github.com/tydev/todoapp/internal/interface/middleware"
)

// TaskModule wires the task form flow. Every route requires a live session;
// the home page doubles as the task list.
type TaskModule struct {
	Handler *handlers.TaskHandler
}

func NewTaskModule(h *handlers.TaskHandler) *TaskModule {
	return &TaskModule{Handler: h}
}

func (m *TaskModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/")
	auth.Use(middleware.Session(container.GetRedis(), container.GetJWT(), cookieManager()))
	auth.Use(middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUserID(), nil))
	{
		auth.GET("/", m.Handler.Home)
		auth.GET("/tasks", m.Handler.Home)
		auth.POST("/tasks", m.Handler.Create)
		auth.GET("/tasks/upcoming", m.Handler.Upcoming)
		auth.GET("/tasks/search", m.Handler.Search)
		auth.GET("/tasks/:id/edit", m.Handler.EditForm)
		auth.POST("/tasks/:id/edit", m.Handler.Edit)
		auth.POST("/tasks/:id/complete", m.Handler.ToggleComplete)
		auth.POST("/tasks/:id/delete", m.Handler.Delete)
	}
}
