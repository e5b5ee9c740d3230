package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/tydev/todoapp/internal/application"
	"github.com/tydev/todoapp/internal/interface/middleware"
	"github.com/tydev/todoapp/pkg/helpers"
	"github.com/tydev/todoapp/pkg/response"
	"github.com/tydev/todoapp/pkg/validation"
)

// AuthHandler translates the signup/login/logout form flow into service
// calls. Outcomes are redirects carrying a one-time flash message; the
// rendered pages themselves are produced elsewhere from the view models
// returned by the GET endpoints.
type AuthHandler struct {
	Svc     *application.AuthService
	Logger  *logrus.Logger
	Cookies *helpers.CookieManager
}

func NewAuthHandler(svc *application.AuthService, logger *logrus.Logger, cookieDomain string, cookieSecure bool) *AuthHandler {
	return &AuthHandler{Svc: svc, Logger: logger, Cookies: helpers.NewCookie(cookieDomain, cookieSecure)}
}

type signupRequest struct {
	Username string `form:"username" json:"username" binding:"required,uname"`
	Password string `form:"password" json:"password" binding:"required,pwd"`
	Email    string `form:"email" json:"email" binding:"omitempty,email"`
}

type loginRequest struct {
	Username string `form:"username" json:"username" binding:"required"`
	Password string `form:"password" json:"password" binding:"required"`
}

// LoginForm GET /auth/login
func (h *AuthHandler) LoginForm(c *gin.Context) {
	flash := h.Cookies.ConsumeFlash(c)
	resp := response.Success(c, http.StatusOK, gin.H{"view": "login", "flash": flash}, "login form", nil)
	c.JSON(resp.Status, resp)
}

// SignupForm GET /auth/signup
func (h *AuthHandler) SignupForm(c *gin.Context) {
	flash := h.Cookies.ConsumeFlash(c)
	resp := response.Success(c, http.StatusOK, gin.H{"view": "signup", "flash": flash}, "signup form", nil)
	c.JSON(resp.Status, resp)
}

// Signup POST /auth/signup
func (h *AuthHandler) Signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBind(&req); err != nil {
		h.Cookies.FlashError(c, firstDetail(validation.ToDetails(err)))
		c.Redirect(http.StatusSeeOther, "/auth/signup")
		return
	}

	if _, err := h.Svc.Register(c.Request.Context(), req.Username, req.Password, req.Email); err != nil {
		switch err {
		case application.ErrDuplicateUsername:
			h.Cookies.FlashError(c, "Username already taken")
		default:
			if h.Logger != nil {
				h.Logger.WithError(err).Error("signup failed")
			}
			h.Cookies.FlashError(c, "Registration failed, please try again")
		}
		c.Redirect(http.StatusSeeOther, "/auth/signup")
		return
	}

	h.Cookies.FlashSuccess(c, "Registration successful! Please login.")
	c.Redirect(http.StatusSeeOther, "/auth/login")
}

// Login POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBind(&req); err != nil {
		h.Cookies.FlashError(c, "Username and password are required")
		c.Redirect(http.StatusSeeOther, "/auth/login")
		return
	}

	u, err := h.Svc.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		h.Cookies.FlashError(c, "Invalid username or password")
		c.Redirect(http.StatusSeeOther, "/auth/login")
		return
	}

	pair, err := h.Svc.IssueTokens(c.Request.Context(), u)
	if err != nil {
		h.Cookies.FlashError(c, "Login failed, please try again")
		c.Redirect(http.StatusSeeOther, "/auth/login")
		return
	}

	h.Cookies.SetPair(c, pair.AccessToken, pair.AccessTokenExpiry, pair.RefreshToken, pair.RefreshTokenExpiry)
	c.Redirect(http.StatusSeeOther, "/")
}

// Refresh POST /auth/refresh
func (h *AuthHandler) Refresh(c *gin.Context) {
	refresh, err := c.Cookie("refresh_token")
	if err != nil || refresh == "" {
		resp := response.Error[any](c, http.StatusUnauthorized, "missing refresh token", nil)
		c.JSON(resp.Status, resp)
		return
	}
	pair, _, err := h.Svc.Refresh(c.Request.Context(), refresh)
	if err != nil {
		resp := response.Error[any](c, http.StatusUnauthorized, "invalid refresh token", nil)
		c.JSON(resp.Status, resp)
		return
	}
	h.Cookies.SetPair(c, pair.AccessToken, pair.AccessTokenExpiry, pair.RefreshToken, pair.RefreshTokenExpiry)
	resp := response.Success[any](c, http.StatusOK, gin.H{"refreshed": true}, "token refreshed", nil)
	c.JSON(resp.Status, resp)
}

// Logout GET /auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	if uid := middleware.UserID(c); uid != 0 {
		h.Svc.Logout(c.Request.Context(), uid)
	}
	h.Cookies.Clear(c)
	c.Redirect(http.StatusSeeOther, "/auth/login")
}

func firstDetail(details map[string]string) string {
	for field, msg := range details {
		return field + " " + msg
	}
	return "invalid input"
}
