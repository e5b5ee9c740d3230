package helpers

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
)

const (
	flashSuccessCookie = "flash_success"
	flashErrorCookie   = "flash_error"
	flashMaxAge        = 60 // seconds; a flash only has to survive one redirect
)

// Flash carries the one-time messages consumed by the next rendered page.
type Flash struct {
	Success string `json:"success,omitempty"`
	Error   string `json:"error,omitempty"`
}

// FlashSuccess stores a one-time success message that survives the redirect.
func (m *CookieManager) FlashSuccess(c *gin.Context, msg string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(flashSuccessCookie, url.QueryEscape(msg), flashMaxAge, "/", m.Domain, m.Secure, true)
}

// FlashError stores a one-time error message that survives the redirect.
func (m *CookieManager) FlashError(c *gin.Context, msg string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(flashErrorCookie, url.QueryEscape(msg), flashMaxAge, "/", m.Domain, m.Secure, true)
}

// ConsumeFlash reads and clears any pending flash messages.
func (m *CookieManager) ConsumeFlash(c *gin.Context) Flash {
	var f Flash
	if v, err := c.Cookie(flashSuccessCookie); err == nil && v != "" {
		if s, uerr := url.QueryUnescape(v); uerr == nil {
			f.Success = s
		}
		c.SetCookie(flashSuccessCookie, "", -1, "/", m.Domain, m.Secure, true)
	}
	if v, err := c.Cookie(flashErrorCookie); err == nil && v != "" {
		if s, uerr := url.QueryUnescape(v); uerr == nil {
			f.Error = s
		}
		c.SetCookie(flashErrorCookie, "", -1, "/", m.Domain, m.Secure, true)
	}
	return f
}
