package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tydev/todoapp/internal/container"
	handlers "github.com/tydev/todoapp/internal/interface/http"
	"github.com/tydev/todoapp/internal/interface/middleware"
)

type AuthModule struct {
	Handler *handlers.AuthHandler
}

func NewAuthModule(h *handlers.AuthHandler) *AuthModule {
	return &AuthModule{Handler: h}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	// Credential endpoints get tight per-IP limits to slow brute forcing
	loginLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIP(), nil)
	signupLimiter := middleware.RateLimit(container.GetRedis(), 5, time.Minute, middleware.KeyByIP(), nil)
	refreshLimiter := middleware.RateLimit(container.GetRedis(), 60, time.Minute, middleware.KeyByIP(), nil)

	rg.GET("/auth/login", m.Handler.LoginForm)
	rg.POST("/auth/login", loginLimiter, m.Handler.Login)
	rg.GET("/auth/signup", m.Handler.SignupForm)
	rg.POST("/auth/signup", signupLimiter, m.Handler.Signup)
	rg.POST("/auth/refresh", refreshLimiter, m.Handler.Refresh)

	// Logout needs the resolved identity to drop the server-side session.
	auth := rg.Group("/")
	auth.Use(middleware.Session(container.GetRedis(), container.GetJWT(), cookieManager()))
	{
		auth.GET("/auth/logout", m.Handler.Logout)
	}
}
