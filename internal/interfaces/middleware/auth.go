package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Andtit4/site-database-sub001/pkg/auth"
	"github.com/Andtit4/site-database-sub001/pkg/constants"
	"github.com/Andtit4/site-database-sub001/pkg/errors"
)

// TokenValidator resolves a bearer token into a session
type TokenValidator interface {
	ValidateToken(token string) (*auth.UserSession, error)
}

func abort(c *gin.Context, status int, title, message, code string) {
	c.JSON(status, gin.H{
		constants.ResponseError: title,
		constants.FieldMessage:  message,
		"code":                  code,
		"data":                  nil,
	})
	c.Abort()
}

// RequireAuth is a middleware that validates JWT tokens
func RequireAuth(validator TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader(constants.HeaderAuthorization)
		if authHeader == "" {
			abort(c, http.StatusUnauthorized, "Unauthorized", "No authorization token provided", "UNAUTHORIZED")
			return
		}

		// Format: "Bearer <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
			abort(c, http.StatusUnauthorized, "Unauthorized", "Invalid authorization header format", "UNAUTHORIZED")
			return
		}

		tokenString := parts[1]
		session, err := validator.ValidateToken(tokenString)
		if err != nil {
			// Only typed auth failures carry a message meant for the client
			message := "Invalid or expired token"
			if errors.IsUnauthorized(err) {
				message = err.Error()
			}
			abort(c, http.StatusUnauthorized, "Unauthorized", message, "UNAUTHORIZED")
			return
		}

		c.Set(constants.ContextKeyUser, *session)
		c.Set(constants.ContextKeyToken, tokenString)

		c.Next()
	}
}

// RequireAdmin checks that the user may change specifications
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		value, exists := c.Get(constants.ContextKeyUser)
		if !exists {
			abort(c, http.StatusUnauthorized, "Unauthorized", "User not authenticated", "UNAUTHORIZED")
			return
		}

		user, ok := value.(auth.UserSession)
		if !ok || !user.IsAdmin() {
			denied := errors.NewPermissionError(c.Request.Method, c.FullPath())
			abort(c, denied.HTTPStatus(), "Forbidden", denied.Error(), denied.Code())
			return
		}

		c.Next()
	}
}
