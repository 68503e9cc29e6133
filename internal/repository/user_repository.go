package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"blogapi/internal/apperror"
	"blogapi/internal/database"
	"blogapi/internal/models"
	"blogapi/internal/query"
)

const (
	userColumns       = `id, username, email, password, created_at, updated_at`
	publicUserColumns = `id, username, email, created_at, updated_at`
)

var userSortColumns = map[string]string{
	"id":         "id",
	"username":   "username",
	"created_at": "created_at",
	"updated_at": "updated_at",
}

type userRepository struct {
	db database.DBTX
}

func NewUserRepository(db database.DBTX) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) WithTx(tx database.DBTX) UserRepository {
	return &userRepository{db: tx}
}

func (r *userRepository) CreateUser(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (username, email, password)
		VALUES ($1, $2, $3)
		RETURNING ` + userColumns

	err := r.db.GetContext(ctx, user, query, user.Username, user.Email, user.Password)
	if err != nil {
		if isUniqueViolation(err) {
			return conflict("Username or email already taken", err)
		}
		return fmt.Errorf("create user: %w", err)
	}

	return nil
}

func (r *userRepository) GetUserByID(ctx context.Context, userID int64) (*models.User, error) {
	var user models.User

	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	err := r.db.GetContext(ctx, &user, query, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFound("User not found")
		}
		return nil, fmt.Errorf("get user by id: %w", err)
	}

	return &user, nil
}

func (r *userRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User

	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`

	err := r.db.GetContext(ctx, &user, query, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFound("User not found")
		}
		return nil, fmt.Errorf("get user by email: %w", err)
	}

	return &user, nil
}

func userConditions(d query.Descriptor) ([]string, []interface{}) {
	if d.Search == nil {
		return nil, nil
	}
	return []string{"username ILIKE ?"}, []interface{}{containsPattern(*d.Search)}
}

func (r *userRepository) ListUsers(ctx context.Context, d query.Descriptor) ([]models.User, error) {
	conds, args := userConditions(d)

	q := `SELECT ` + publicUserColumns + ` FROM users` +
		where(conds) +
		orderBy(userSortColumns, "id", d.Sort, d.Order) +
		` LIMIT ? OFFSET ?`
	args = append(args, d.Size, d.Skip)

	users := []models.User{}
	if err := r.db.SelectContext(ctx, &users, rebind(q), args...); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	return users, nil
}

func (r *userRepository) CountUsers(ctx context.Context, d query.Descriptor) (int, error) {
	conds, args := userConditions(d)

	q := `SELECT COUNT(*) FROM users` + where(conds)

	var total int
	if err := r.db.GetContext(ctx, &total, rebind(q), args...); err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}

	return total, nil
}

func (r *userRepository) UpdateUser(ctx context.Context, userID int64, patch UserPatch) (*models.User, error) {
	query := `
		UPDATE users SET
			username = COALESCE($1, username),
			email = COALESCE($2, email),
			password = COALESCE($3, password),
			updated_at = NOW()
		WHERE id = $4
		RETURNING ` + userColumns

	var user models.User
	err := r.db.GetContext(ctx, &user, query, patch.Username, patch.Email, patch.Password, userID)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, apperror.NotFound("User not found")
		case isUniqueViolation(err):
			return nil, conflict("Username or email already taken", err)
		}
		return nil, fmt.Errorf("update user: %w", err)
	}

	return &user, nil
}

// DeleteUser removes the user; their posts and images go with it through
// ON DELETE CASCADE.
func (r *userRepository) DeleteUser(ctx context.Context, userID int64) (*models.User, error) {
	query := `DELETE FROM users WHERE id = $1 RETURNING ` + userColumns

	var user models.User
	err := r.db.GetContext(ctx, &user, query, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFound("User not found")
		}
		return nil, fmt.Errorf("delete user: %w", err)
	}

	return &user, nil
}
