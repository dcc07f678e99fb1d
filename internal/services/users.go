package services

import (
	"context"
	"database/sql"

	"github.com/AnshRaj112/moodlog-backend/internal/models"
	"github.com/AnshRaj112/moodlog-backend/pkg/utils"
)

// UserService manages accounts in Postgres. Privacy-first: a row is a
// username and an Argon2id hash, nothing else.
type UserService struct {
	DB *sql.DB
}

func NewUserService(db *sql.DB) *UserService {
	return &UserService{DB: db}
}

// Register creates an account. Returns (nil, nil) when the username is
// already taken.
func (s *UserService) Register(ctx context.Context, username, password string) (*models.User, error) {
	if err := utils.ValidateUsername(username); err != nil {
		return nil, errValidation(err.Error())
	}
	if len(password) < 8 {
		return nil, errValidation("Password must be at least 8 characters")
	}
	username = utils.NormalizeUsername(username)

	var exists bool
	err := s.DB.QueryRowContext(ctx, `
		SELECT EXISTS(SELECT 1 FROM users WHERE username = $1)
	`, username).Scan(&exists)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, nil
	}

	passwordHash, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := models.User{Username: username, IsActive: true}
	err = s.DB.QueryRowContext(ctx, `
		INSERT INTO users (username, password_hash)
		VALUES ($1, $2)
		RETURNING id, created_at
	`, username, passwordHash).Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		return nil, err
	}

	return &user, nil
}

// Authenticate verifies credentials. Returns (nil, nil) for an unknown
// username, an inactive account, or a wrong password; the three cases are
// indistinguishable to the caller.
func (s *UserService) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	username = utils.NormalizeUsername(username)

	var user models.User
	var passwordHash string
	err := s.DB.QueryRowContext(ctx, `
		SELECT id, username, password_hash, created_at, is_active
		FROM users WHERE username = $1 AND is_active = TRUE
	`, username).Scan(&user.ID, &user.Username, &passwordHash, &user.CreatedAt, &user.IsActive)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	ok, err := utils.VerifyPassword(password, passwordHash)
	if err != nil || !ok {
		return nil, nil
	}
	return &user, nil
}

// GetByID returns (nil, nil) when the user does not exist or is inactive.
func (s *UserService) GetByID(ctx context.Context, userID string) (*models.User, error) {
	var user models.User
	err := s.DB.QueryRowContext(ctx, `
		SELECT id, username, created_at, is_active
		FROM users WHERE id = $1 AND is_active = TRUE
	`, userID).Scan(&user.ID, &user.Username, &user.CreatedAt, &user.IsActive)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}
