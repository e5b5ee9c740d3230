package middleware

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/tydev/todoapp/pkg/helpers"
)

const (
	// CtxUserIDKey is where the authenticated identity lives for the
	// remainder of the request. Handlers read it instead of consulting any
	// ambient session state.
	CtxUserIDKey   = "userID"
	CtxUsernameKey = "username"
)

// Session validates the access-token cookie and ensures an active session
// exists in Redis, then injects the numeric user id into the Gin context.
// Requests without a valid session are redirected to the login page, which
// is what a browser-facing form flow expects.
func Session(rdb *redis.Client, jwt *helpers.JWTManager, cookies *helpers.CookieManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := resolveSession(c, rdb, jwt)
		if !ok {
			if cookies != nil {
				cookies.FlashError(c, "Please log in to continue")
			}
			c.Redirect(http.StatusSeeOther, "/auth/login")
			c.Abort()
			return
		}
		c.Set(CtxUserIDKey, claims.UserID)
		c.Next()
	}
}

func resolveSession(c *gin.Context, rdb *redis.Client, jwt *helpers.JWTManager) (*helpers.Claims, bool) {
	token, err := c.Cookie("access_token")
	if err != nil || token == "" {
		return nil, false
	}
	claims, err := jwt.ParseAccessToken(token)
	if err != nil {
		return nil, false
	}

	// The session record must still exist and carry the same session id;
	// logout or rotation invalidates older tokens.
	key := "user:session:" + strconv.FormatInt(claims.UserID, 10)
	data, err := rdb.HGetAll(c.Request.Context(), key).Result()
	if err != nil || len(data) == 0 || data["sid"] != claims.SessionID {
		return nil, false
	}
	if name := data["username"]; name != "" {
		c.Set(CtxUsernameKey, name)
	}
	return claims, true
}

// UserID returns the authenticated identity placed in the context by Session.
func UserID(c *gin.Context) int64 {
	return c.GetInt64(CtxUserIDKey)
}
