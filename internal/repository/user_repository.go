package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/lemusAndy13/kanban-academico/internal/models"
)

// UserRepository provides database access for accounts, profiles and
// refresh token sessions.
type UserRepository struct {
	db *sqlx.DB
}

// NewUserRepository creates a new instance of UserRepository.
func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

// FindByUsername returns a user by username.
func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	const query = `SELECT id, username, email, password_hash, is_staff, is_superuser, created_at FROM users WHERE username = $1 LIMIT 1`
	var user models.User
	if err := r.db.GetContext(ctx, &user, query, username); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find user by username: %w", err)
	}
	return &user, nil
}

// FindByID returns a user by identifier.
func (r *UserRepository) FindByID(ctx context.Context, id int64) (*models.User, error) {
	const query = `SELECT id, username, email, password_hash, is_staff, is_superuser, created_at FROM users WHERE id = $1 LIMIT 1`
	var user models.User
	if err := r.db.GetContext(ctx, &user, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find user by id: %w", err)
	}
	return &user, nil
}

// RoleOf returns the profile role for a user, defaulting to student when the
// profile row is missing.
func (r *UserRepository) RoleOf(ctx context.Context, userID int64) (models.Role, error) {
	const query = `SELECT role FROM profiles WHERE user_id = $1 LIMIT 1`
	var role models.Role
	if err := r.db.GetContext(ctx, &role, query, userID); err != nil {
		if err == sql.ErrNoRows {
			return models.RoleStudent, nil
		}
		return "", fmt.Errorf("find profile role: %w", err)
	}
	return role, nil
}

// Create inserts a user together with its profile role.
func (r *UserRepository) Create(ctx context.Context, user *models.User, role models.Role) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin create user: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}

	const insertUser = `INSERT INTO users (username, email, password_hash, is_staff, is_superuser, created_at) VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	if err := tx.GetContext(ctx, &user.ID, insertUser, user.Username, user.Email, user.PasswordHash, user.IsStaff, user.IsSuperuser, user.CreatedAt); err != nil {
		return fmt.Errorf("create user: %w", err)
	}

	const insertProfile = `INSERT INTO profiles (user_id, role) VALUES ($1, $2)`
	if _, err := tx.ExecContext(ctx, insertProfile, user.ID, role); err != nil {
		return fmt.Errorf("create profile: %w", err)
	}

	return tx.Commit()
}

// Update updates the mutable user columns.
func (r *UserRepository) Update(ctx context.Context, user *models.User) error {
	const query = `UPDATE users SET username = :username, email = :email, is_staff = :is_staff, is_superuser = :is_superuser WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, user); err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	return nil
}

// UpdatePassword updates the stored password hash.
func (r *UserRepository) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	const query = `UPDATE users SET password_hash = $2 WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id, passwordHash); err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	return nil
}

// SetRole upserts the profile role for a user.
func (r *UserRepository) SetRole(ctx context.Context, userID int64, role models.Role) error {
	const query = `INSERT INTO profiles (user_id, role) VALUES ($1, $2) ON CONFLICT (user_id) DO UPDATE SET role = EXCLUDED.role`
	if _, err := r.db.ExecContext(ctx, query, userID, role); err != nil {
		return fmt.Errorf("set profile role: %w", err)
	}
	return nil
}

// Delete removes a user; related rows cascade at the database level and
// activity actors become null.
func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM users WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}

// ListAdmin returns every account with its effective role for the staff API.
func (r *UserRepository) ListAdmin(ctx context.Context) ([]models.AdminUser, error) {
	const query = `SELECT u.id, u.username, u.email, u.is_staff, u.is_superuser, COALESCE(p.role, 'student') AS role, u.created_at
FROM users u
LEFT JOIN profiles p ON p.user_id = u.id
ORDER BY u.id`
	users := []models.AdminUser{}
	if err := r.db.SelectContext(ctx, &users, query); err != nil {
		return nil, fmt.Errorf("list admin users: %w", err)
	}
	return users, nil
}

// GetAdmin returns one account with its effective role.
func (r *UserRepository) GetAdmin(ctx context.Context, id int64) (*models.AdminUser, error) {
	const query = `SELECT u.id, u.username, u.email, u.is_staff, u.is_superuser, COALESCE(p.role, 'student') AS role, u.created_at
FROM users u
LEFT JOIN profiles p ON p.user_id = u.id
WHERE u.id = $1
LIMIT 1`
	var user models.AdminUser
	if err := r.db.GetContext(ctx, &user, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("get admin user: %w", err)
	}
	return &user, nil
}

// CreateRefreshToken persists a refresh token entry.
func (r *UserRepository) CreateRefreshToken(ctx context.Context, token *models.RefreshToken) error {
	if token.ID == "" {
		token.ID = uuid.NewString()
	}
	if token.CreatedAt.IsZero() {
		token.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO refresh_tokens (id, user_id, token, expires_at, created_at, revoked, revoked_at) VALUES (:id, :user_id, :token, :expires_at, :created_at, :revoked, :revoked_at)`
	if _, err := r.db.NamedExecContext(ctx, query, token); err != nil {
		return fmt.Errorf("create refresh token: %w", err)
	}
	return nil
}

// FindRefreshToken returns a refresh token by token string.
func (r *UserRepository) FindRefreshToken(ctx context.Context, token string) (*models.RefreshToken, error) {
	const query = `SELECT id, user_id, token, expires_at, created_at, revoked, revoked_at FROM refresh_tokens WHERE token = $1 LIMIT 1`
	var rt models.RefreshToken
	if err := r.db.GetContext(ctx, &rt, query, token); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find refresh token: %w", err)
	}
	return &rt, nil
}

// RevokeRefreshToken marks a token as revoked.
func (r *UserRepository) RevokeRefreshToken(ctx context.Context, id string, revokedAt time.Time) error {
	const query = `UPDATE refresh_tokens SET revoked = TRUE, revoked_at = $2 WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id, revokedAt); err != nil {
		return fmt.Errorf("revoke refresh token: %w", err)
	}
	return nil
}

// RevokeUserRefreshTokens revokes all refresh tokens for a user.
func (r *UserRepository) RevokeUserRefreshTokens(ctx context.Context, userID int64) error {
	const query = `UPDATE refresh_tokens SET revoked = TRUE, revoked_at = $2 WHERE user_id = $1 AND revoked = FALSE`
	if _, err := r.db.ExecContext(ctx, query, userID, time.Now().UTC()); err != nil {
		return fmt.Errorf("revoke user refresh tokens: %w", err)
	}
	return nil
}
