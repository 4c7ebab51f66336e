package rest

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Andtit4/site-database-sub001/pkg/auth"
	"github.com/Andtit4/site-database-sub001/pkg/errors"
)

type AuthHandler struct {
	auth AuthService
}

func NewAuthHandler(auth AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// LoginRequest represents login request body
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse represents login response
type LoginResponse struct {
	Success   bool              `json:"success"`
	Token     string            `json:"token"`
	User      *auth.UserSession `json:"user"`
	ExpiresAt string            `json:"expires_at"`
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if !BindJSON(c, &req) {
		return
	}

	if !auth.IsValidEmail(req.Email) {
		RespondAppError(c, errors.NewValidationError("email", "Invalid email format"))
		return
	}

	result, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		RespondAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, LoginResponse{
		Success:   true,
		Token:     result.Token,
		User:      &result.User,
		ExpiresAt: result.ExpiresAt.Format(time.RFC3339),
	})
}

// GetMe handles GET /api/auth/me
func (h *AuthHandler) GetMe(c *gin.Context) {
	user := GetUserFromContext(c)
	if user == nil {
		RespondAppError(c, errors.NewUnauthorizedError("User not found"))
		return
	}

	// The token may outlive a role change, so read the stored profile.
	HandleGetEnvelope(c, "user", func() (interface{}, error) {
		return h.auth.GetUserByID(c.Request.Context(), user.ID)
	})
}
