package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"docshelf/internal/auth"
	"docshelf/internal/model"
	"docshelf/internal/repository"
)

// MinPasswordLength is the minimum accepted password length on registration.
const MinPasswordLength = 8

// UserService handles account registration, login, and lookup of the
// authenticated caller.
type UserService interface {
	// Register creates an account and returns it with a freshly signed token.
	Register(ctx context.Context, name, email, password string) (*model.User, string, error)

	// Login verifies credentials and returns a signed token.
	// Wrong email and wrong password are not distinguished.
	Login(ctx context.Context, email, password string) (string, error)

	// Get returns a user by ID.
	Get(ctx context.Context, id string) (*model.User, error)
}

type userService struct {
	users     repository.UserRepository
	jwtSecret string
	tokenTTL  time.Duration
}

// NewUserService constructs a new UserService.
func NewUserService(users repository.UserRepository, jwtSecret string, tokenTTL time.Duration) UserService {
	return &userService{users: users, jwtSecret: jwtSecret, tokenTTL: tokenTTL}
}

func (s *userService) Register(ctx context.Context, name, email, password string) (*model.User, string, error) {
	if ve := validateRegistration(name, email, password); len(ve) > 0 {
		return nil, "", ve
	}

	if existing, err := s.users.FindByEmail(ctx, email); err == nil && existing != nil {
		return nil, "", ErrEmailTaken
	} else if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		ID:           uuid.New().String(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}
	stored, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, "", fmt.Errorf("create user: %w", err)
	}

	token, err := auth.GenerateToken(stored.ID, stored.Email, s.jwtSecret, s.tokenTTL)
	if err != nil {
		return nil, "", err
	}
	return stored, token, nil
}

func (s *userService) Login(ctx context.Context, email, password string) (string, error) {
	if email == "" || password == "" {
		return "", ErrInvalidCredentials
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	return auth.GenerateToken(user.ID, user.Email, s.jwtSecret, s.tokenTTL)
}

func (s *userService) Get(ctx context.Context, id string) (*model.User, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return user, nil
}

func validateRegistration(name, email, password string) ValidationErrors {
	ve := ValidationErrors{}
	if name == "" {
		ve["name"] = "name is required"
	} else if len(name) > MaxNameLength {
		ve["name"] = "name may not be longer than 255 characters"
	}
	if email == "" {
		ve["email"] = "email is required"
	} else if len(email) > MaxNameLength {
		ve["email"] = "email may not be longer than 255 characters"
	}
	if len(password) < MinPasswordLength {
		ve["password"] = "password must be at least 8 characters"
	}
	return ve
}
