package modules

import (
	"github.com/tydev/todoapp/internal/container"
	"github.com/tydev/todoapp/pkg/helpers"
)

func cookieManager() *helpers.CookieManager {
	cfg := container.GetConfig()
	return helpers.NewCookie(cfg.CookieDomain, cfg.CookieSecure)
}
