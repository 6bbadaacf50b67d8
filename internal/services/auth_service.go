package services

import (
	"errors"
	"fmt"

	"github.com/taxfolio/backend/internal/auth"
	"github.com/taxfolio/backend/internal/models"
	"github.com/taxfolio/backend/internal/storage"
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrMissingCredentials = errors.New("email and password are required")
	// ErrInvalidCredentials covers both "no such user" and "wrong password" so
	// the response never reveals which check failed.
	ErrInvalidCredentials = errors.New("incorrect email or password")
	ErrUnauthenticated    = errors.New("could not validate credentials")
)

type AuthService struct {
	users  storage.UserStore
	tokens *auth.TokenManager
}

func NewAuthService(users storage.UserStore, tokens *auth.TokenManager) *AuthService {
	return &AuthService{users: users, tokens: tokens}
}

// Register creates a user with a bcrypt-hashed password. The pre-check keeps
// the common case friendly; the unique index decides races.
func (s *AuthService) Register(email, password string) (*models.User, error) {
	if email == "" || password == "" {
		return nil, ErrMissingCredentials
	}

	if _, err := s.users.FindByEmail(email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{
		Email:        email,
		PasswordHash: hash,
	}

	if err := s.users.Create(&user); err != nil {
		if errors.Is(err, storage.ErrDuplicate) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return &user, nil
}

// Login verifies the credentials and issues an access token bound to the
// user's email.
func (s *AuthService) Login(email, password string) (string, error) {
	user, err := s.users.FindByEmail(email)
	if err != nil {
		return "", ErrInvalidCredentials
	}

	if !auth.CheckPassword(password, user.PasswordHash) {
		return "", ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.Email)
	if err != nil {
		return "", fmt.Errorf("failed to issue token: %w", err)
	}

	return token, nil
}

// Authenticate resolves a verified token subject back to a user. The token
// itself has already been checked by the protection middleware.
func (s *AuthService) Authenticate(subject string) (*models.User, error) {
	user, err := s.users.FindByEmail(subject)
	if err != nil {
		return nil, ErrUnauthenticated
	}
	return user, nil
}
