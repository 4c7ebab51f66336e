package services

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/Andtit4/site-database-sub001/internal/domain/models"
	"github.com/Andtit4/site-database-sub001/internal/domain/ports"
	"github.com/Andtit4/site-database-sub001/pkg/auth"
	"github.com/Andtit4/site-database-sub001/pkg/constants"
	"github.com/Andtit4/site-database-sub001/pkg/errors"
	"github.com/Andtit4/site-database-sub001/pkg/utils"
)

// LoginResult is returned by a successful login
type LoginResult struct {
	Token     string           `json:"token"`
	ExpiresAt time.Time        `json:"expiresAt"`
	User      auth.UserSession `json:"user"`
}

// AuthService handles authentication
type AuthService struct {
	users  ports.UserStore
	tokens *auth.TokenIssuer
}

// NewAuthService creates a new AuthService
func NewAuthService(users ports.UserStore, tokens *auth.TokenIssuer) *AuthService {
	return &AuthService{users: users, tokens: tokens}
}

// Login checks credentials and issues a session token
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, errors.NewValidationError("credentials", "email and password are required")
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}
	if user == nil || !auth.VerifyPassword(password, user.PasswordHash) {
		return nil, errors.NewUnauthorizedError("Invalid email or password")
	}

	session := toSession(user)
	token, expiresAt, err := s.tokens.GenerateToken(session)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	log.Printf("🔑 User %s logged in", user.Email)
	return &LoginResult{Token: token, ExpiresAt: expiresAt, User: session}, nil
}

// ValidateToken returns the session carried by a bearer token
func (s *AuthService) ValidateToken(token string) (*auth.UserSession, error) {
	claims, err := s.tokens.ValidateToken(token)
	if err != nil {
		return nil, errors.NewUnauthorizedError("Invalid or expired token")
	}
	return &claims.User, nil
}

// GetUserByID returns the current profile of a user
func (s *AuthService) GetUserByID(ctx context.Context, id string) (*auth.UserSession, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	session := toSession(user)
	return &session, nil
}

// EnsureAdmin creates the bootstrap admin when no user exists yet.
// It reports whether a user was created.
func (s *AuthService) EnsureAdmin(ctx context.Context, email, password string) (bool, error) {
	count, err := s.users.CountUsers(ctx)
	if err != nil {
		return false, err
	}
	if count > 0 {
		return false, nil
	}

	email = strings.ToLower(strings.TrimSpace(email))
	if !auth.IsValidEmail(email) {
		return false, errors.NewValidationError("ADMIN_EMAIL", "a valid admin email is required to bootstrap the first user")
	}
	if err := auth.ValidatePasswordStrength(password); err != nil {
		return false, errors.NewValidationError("ADMIN_PASSWORD", err.Error())
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return false, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		ID:           utils.GenerateID(),
		Email:        email,
		Name:         "Administrator",
		PasswordHash: hash,
		Role:         constants.RoleAdmin,
	}
	if err := s.users.Insert(ctx, user); err != nil {
		// Another instance seeded first
		if errors.IsConflict(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func toSession(u *models.User) auth.UserSession {
	return auth.UserSession{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role}
}
