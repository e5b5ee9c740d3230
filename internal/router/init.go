package router

import (
	"github.com/tydev/todoapp/internal/application"
	"github.com/tydev/todoapp/internal/container"
	pginfra "github.com/tydev/todoapp/internal/infrastructure/postgres"
	handlers "github.com/tydev/todoapp/internal/interface/http"
	"github.com/tydev/todoapp/internal/router/modules"
)

// InitModules constructs every feature module from the container singletons
// and registers it with the router registry. Called once at startup.
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	logger := container.GetLogger()

	userRepo := pginfra.NewUserRepository(container.GetPGPool())
	taskRepo := pginfra.NewTaskRepository(container.GetPGPool())

	authSvc := application.NewAuthService(
		userRepo,
		container.GetJWT(),
		container.GetRedis(),
		logger,
		container.GetGCS(),
		cfg.GCSBucket,
	)
	taskSvc := application.NewTaskService(
		taskRepo,
		logger,
		container.GetES(),
		cfg.ESTasksIndex,
	)

	authHandler := handlers.NewAuthHandler(authSvc, logger, cfg.CookieDomain, cfg.CookieSecure)
	taskHandler := handlers.NewTaskHandler(taskSvc, logger, cfg.CookieDomain, cfg.CookieSecure)
	profileHandler := handlers.NewProfileHandler(authSvc, logger)
	reminderHandler := handlers.NewReminderHandler(taskSvc, authSvc, container.GetRabbitPub(), logger)

	r.Add(modules.NewAuthModule(authHandler))
	r.Add(modules.NewTaskModule(taskHandler))
	r.Add(modules.NewProfileModule(profileHandler))
	r.Add(modules.NewReminderModule(reminderHandler))
	if cfg.DebugMetricsEnabled {
		r.Add(modules.NewDebugModule())
	}
}
