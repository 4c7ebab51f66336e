package persistence

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Andtit4/site-database-sub001/internal/domain/models"
	"github.com/Andtit4/site-database-sub001/internal/domain/ports"
	"github.com/Andtit4/site-database-sub001/pkg/constants"
	appErrors "github.com/Andtit4/site-database-sub001/pkg/errors"
)

// UserRepository handles user-related database operations
type UserRepository struct {
	db *sql.DB
}

var _ ports.UserStore = (*UserRepository)(nil)

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

var userSelect = fmt.Sprintf("SELECT %s, %s, %s, %s, %s, %s, %s FROM %s",
	constants.FieldID, constants.FieldUser_Email, constants.FieldName, constants.FieldUser_PasswordHash,
	constants.FieldUser_Role, constants.FieldCreatedAt, constants.FieldUpdatedAt, constants.TableUser)

// CheckUserExistsByEmail checks if a user with the given email exists
func (r *UserRepository) CheckUserExistsByEmail(ctx context.Context, email string) (bool, error) {
	query := fmt.Sprintf("SELECT EXISTS(SELECT 1 FROM %s WHERE %s = ?)", constants.TableUser, constants.FieldUser_Email)
	var exists bool
	if err := r.db.QueryRowContext(ctx, query, email).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check user email: %w", err)
	}
	return exists, nil
}

// CountUsers returns the number of accounts, used to decide whether to seed an admin
func (r *UserRepository) CountUsers(ctx context.Context) (int, error) {
	query := fmt.Sprintf("SELECT COUNT(*) FROM %s", constants.TableUser)
	var n int
	if err := r.db.QueryRowContext(ctx, query).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return n, nil
}

// Insert creates a new user. A duplicate email is a ConflictError.
func (r *UserRepository) Insert(ctx context.Context, u *models.User) error {
	query := fmt.Sprintf("INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s) VALUES (?, ?, ?, ?, ?, NOW(), NOW())",
		constants.TableUser, constants.FieldID, constants.FieldUser_Email, constants.FieldName,
		constants.FieldUser_PasswordHash, constants.FieldUser_Role, constants.FieldCreatedAt, constants.FieldUpdatedAt)

	if _, err := r.db.ExecContext(ctx, query, u.ID, u.Email, u.Name, u.PasswordHash, u.Role); err != nil {
		if isDuplicateEntry(err) {
			return appErrors.NewConflictError("User", "email", u.Email)
		}
		return fmt.Errorf("failed to insert user: %w", err)
	}
	return nil
}

// FindByEmail returns the user including the password hash, or nil if not found
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	query := userSelect + fmt.Sprintf(" WHERE %s = ? LIMIT 1", constants.FieldUser_Email)
	u, err := scanUser(r.db.QueryRowContext(ctx, query, email))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return u, err
}

// FindByID returns the user or a NotFoundError
func (r *UserRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	query := userSelect + fmt.Sprintf(" WHERE %s = ? LIMIT 1", constants.FieldID)
	u, err := scanUser(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, appErrors.NewNotFoundError("User", id)
	}
	return u, err
}

func scanUser(row rowScanner) (*models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Email, &u.Name, &u.PasswordHash, &u.Role, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan user: %w", err)
	}
	return &u, nil
}
