package auth

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/monster-math/backend/internal/models"
)

var (
	ErrUsernameTaken = errors.New("username already exists")
	ErrUserNotFound  = errors.New("user not found")
)

// Store is the persistence surface the auth handlers need. The SQL
// implementation lives below; tests swap in an in-memory fake.
type Store interface {
	// CreateUser inserts a new account and returns it without the password
	// hash. The password must already be hashed. A taken username yields
	// ErrUsernameTaken.
	CreateUser(username, hashedPassword string) (models.User, error)
	// GetUserByUsername returns the account including its password hash,
	// or ErrUserNotFound.
	GetUserByUsername(username string) (models.User, error)
	// GetUserByID returns the account without the password hash, or
	// ErrUserNotFound.
	GetUserByID(id int64) (models.User, error)
}

type sqlStore struct {
	db *sql.DB
}

func NewStore(db *sql.DB) Store {
	return &sqlStore{db: db}
}

func (s *sqlStore) CreateUser(username, hashedPassword string) (models.User, error) {
	var user models.User
	err := s.db.QueryRow(
		`INSERT INTO users (username, password, created_at, updated_at)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, username, created_at, updated_at`,
		username, hashedPassword, time.Now(), time.Now(),
	).Scan(&user.ID, &user.Username, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return models.User{}, ErrUsernameTaken
		}
		return models.User{}, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

func (s *sqlStore) GetUserByUsername(username string) (models.User, error) {
	var user models.User
	err := s.db.QueryRow(
		`SELECT id, username, password, created_at, updated_at FROM users WHERE username = $1`,
		username,
	).Scan(&user.ID, &user.Username, &user.Password, &user.CreatedAt, &user.UpdatedAt)
	if err == sql.ErrNoRows {
		return models.User{}, ErrUserNotFound
	}
	if err != nil {
		return models.User{}, fmt.Errorf("get user by username: %w", err)
	}
	return user, nil
}

func (s *sqlStore) GetUserByID(id int64) (models.User, error) {
	var user models.User
	err := s.db.QueryRow(
		`SELECT id, username, created_at, updated_at FROM users WHERE id = $1`,
		id,
	).Scan(&user.ID, &user.Username, &user.CreatedAt, &user.UpdatedAt)
	if err == sql.ErrNoRows {
		return models.User{}, ErrUserNotFound
	}
	if err != nil {
		return models.User{}, fmt.Errorf("get user by id: %w", err)
	}
	return user, nil
}
