package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"civicconnect/internal/modules/auth"
	"civicconnect/internal/pkg/jwt"
	"civicconnect/internal/pkg/response"
	"civicconnect/internal/session"
)

// SessionAuth validates the session cookie and loads the server-side session.
// A token that no longer maps to a live session is treated as unauthenticated,
// which is how logout takes effect before the cookie expires.
//
// Unauthenticated GETs are redirected to the landing page; everything else
// gets a JSON 403.
func SessionAuth(tokens *jwt.Service, sessions session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(auth.SessionCookie)
		if err != nil || token == "" {
			reject(c)
			return
		}

		claims, err := tokens.ValidateToken(token)
		if err != nil {
			c.SetCookie(auth.SessionCookie, "", -1, "/", "", false, true)
			reject(c)
			return
		}

		sess, err := sessions.Get(c.Request.Context(), claims.SessionID)
		if err != nil {
			c.SetCookie(auth.SessionCookie, "", -1, "/", "", false, true)
			reject(c)
			return
		}

		c.Set("user_id", sess.UserID)
		c.Set("role", string(sess.Role))
		c.Set("session_id", sess.ID)
		c.Next()
	}
}

func reject(c *gin.Context) {
	if c.Request.Method == http.MethodGet {
		c.Redirect(http.StatusFound, "/")
		c.Abort()
		return
	}
	response.Error(c, http.StatusForbidden, "UNAUTHENTICATED", "authentication required")
	c.Abort()
}
