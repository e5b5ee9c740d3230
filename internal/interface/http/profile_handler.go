package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/tydev/todoapp/internal/application"
	"github.com/tydev/todoapp/internal/domain/entity"
	"github.com/tydev/todoapp/internal/interface/middleware"
	"github.com/tydev/todoapp/pkg/response"
	"github.com/tydev/todoapp/pkg/validation"
)

const maxAvatarSize = 5 << 20 // 5 MiB

type ProfileHandler struct {
	Svc    *application.AuthService
	Logger *logrus.Logger
}

func NewProfileHandler(svc *application.AuthService, logger *logrus.Logger) *ProfileHandler {
	return &ProfileHandler{Svc: svc, Logger: logger}
}

type profileView struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email,omitempty"`
	AvatarURL string `json:"avatar_url,omitempty"`
}

func toProfileView(u *entity.User) profileView {
	return profileView{ID: u.ID, Username: u.Username, Email: u.Email, AvatarURL: u.AvatarURL}
}

type updateProfileRequest struct {
	Email    string `form:"email" json:"email" binding:"omitempty,email"`
	Password string `form:"password" json:"password" binding:"omitempty,pwd"`
}

// GetProfile GET /profile
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	u, err := h.Svc.FindByID(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		resp := response.Error[any](c, http.StatusNotFound, "user not found", nil)
		c.JSON(resp.Status, resp)
		return
	}
	resp := response.Success(c, http.StatusOK, toProfileView(u), "profile", nil)
	c.JSON(resp.Status, resp)
}

// UpdateProfile POST /profile — applies the provided fields only.
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	var req updateProfileRequest
	if err := c.ShouldBind(&req); err != nil {
		resp := response.Error[any](c, http.StatusBadRequest, "validation failed", validation.ToDetails(err))
		c.JSON(resp.Status, resp)
		return
	}

	u, err := h.Svc.UpdateProfile(c.Request.Context(), middleware.UserID(c), application.UpdateProfileInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		if h.Logger != nil {
			h.Logger.WithError(err).Error("profile update failed")
		}
		resp := response.Error[any](c, http.StatusInternalServerError, "profile update failed", nil)
		c.JSON(resp.Status, resp)
		return
	}
	resp := response.Success(c, http.StatusOK, toProfileView(u), "profile updated", nil)
	c.JSON(resp.Status, resp)
}

// UploadAvatar POST /profile/avatar — multipart field "avatar".
func (h *ProfileHandler) UploadAvatar(c *gin.Context) {
	fh, err := c.FormFile("avatar")
	if err != nil {
		resp := response.Error[any](c, http.StatusBadRequest, "missing avatar file", nil)
		c.JSON(resp.Status, resp)
		return
	}
	if fh.Size > maxAvatarSize {
		resp := response.Error[any](c, http.StatusRequestEntityTooLarge, "avatar too large", nil)
		c.JSON(resp.Status, resp)
		return
	}

	f, err := fh.Open()
	if err != nil {
		resp := response.Error[any](c, http.StatusBadRequest, "unreadable avatar file", nil)
		c.JSON(resp.Status, resp)
		return
	}
	defer func() { _ = f.Close() }()

	url, err := h.Svc.UploadAvatar(c.Request.Context(), middleware.UserID(c), f, fh.Filename, fh.Header.Get("Content-Type"))
	if err != nil {
		if h.Logger != nil {
			h.Logger.WithError(err).Error("avatar upload failed")
		}
		resp := response.Error[any](c, http.StatusInternalServerError, "avatar upload failed", nil)
		c.JSON(resp.Status, resp)
		return
	}
	resp := response.Success(c, http.StatusOK, gin.H{"avatar_url": url}, "avatar uploaded", nil)
	c.JSON(resp.Status, resp)
}
