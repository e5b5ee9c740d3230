package helpers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestFlashSurvivesOneRedirect(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := NewCookie("localhost", false)

	// first response carries the flash cookie
	w1 := httptest.NewRecorder()
	c1, _ := gin.CreateTestContext(w1)
	c1.Request = httptest.NewRequest(http.MethodPost, "/tasks", nil)
	m.FlashSuccess(c1, "Task 'Buy milk' created successfully!")

	var flash *http.Cookie
	for _, ck := range w1.Result().Cookies() {
		if ck.Name == "flash_success" {
			flash = ck
		}
	}
	if assert.NotNil(t, flash) {
		assert.Positive(t, flash.MaxAge)
	}

	// next request presents the cookie and consumes it
	w2 := httptest.NewRecorder()
	c2, _ := gin.CreateTestContext(w2)
	c2.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c2.Request.AddCookie(flash)

	got := m.ConsumeFlash(c2)
	assert.Equal(t, "Task 'Buy milk' created successfully!", got.Success)
	assert.Empty(t, got.Error)

	// consuming expires the cookie
	for _, ck := range w2.Result().Cookies() {
		if ck.Name == "flash_success" {
			assert.Negative(t, ck.MaxAge)
		}
	}
}

func TestConsumeFlashEmpty(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := NewCookie("localhost", false)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	got := m.ConsumeFlash(c)
	assert.Empty(t, got.Success)
	assert.Empty(t, got.Error)
}
