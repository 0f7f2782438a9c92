package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"mothwallet/pkg/utils"
)

const (
	// PrincipalKey holds the authenticated username in the gin context.
	PrincipalKey = "principal"
	// SessionCookieName is the cookie carrying the session token for the HTML surface.
	SessionCookieName = "session"
	LoginPath         = "/login"
)

type TokenValidator interface {
	ValidateToken(tokenString string) (string, error)
}

// SessionAuthMiddleware guards the server-rendered pages. Requests without a
// valid session cookie are redirected to the login page.
func SessionAuthMiddleware(tokens TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		cookie, err := c.Cookie(SessionCookieName)
		if err != nil || cookie == "" {
			c.Redirect(http.StatusFound, LoginPath)
			c.Abort()
			return
		}

		principal, err := tokens.ValidateToken(cookie)
		if err != nil {
			ClearSessionCookie(c, false)
			c.Redirect(http.StatusFound, LoginPath)
			c.Abort()
			return
		}

		c.Set(PrincipalKey, principal)
		c.Next()
	}
}

// JWTAuthMiddleware guards the JSON API with a bearer token.
func JWTAuthMiddleware(tokens TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			utils.RespondError(c, http.StatusUnauthorized, "Authorization header missing or invalid")
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		principal, err := tokens.ValidateToken(tokenString)
		if err != nil {
			utils.RespondError(c, http.StatusUnauthorized, "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set(PrincipalKey, principal)
		c.Next()
	}
}

func Principal(c *gin.Context) string {
	return c.GetString(PrincipalKey)
}

func SetSessionCookie(c *gin.Context, token string, maxAge int, secure bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookieName, token, maxAge, "/", "", secure, true)
}

func ClearSessionCookie(c *gin.Context, secure bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookieName, "", -1, "/", "", secure, true)
}
