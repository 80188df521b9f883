package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"petspotter/internal/logging"
	"petspotter/internal/metrics"
	"petspotter/internal/model"
)

const (
	minPasswordLength = 8
	maxPasswordLength = 72
)

// CredentialStore holds users. Lookups return (nil, nil) when no record matches.
type CredentialStore interface {
	Create(ctx context.Context, user *model.User) error
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	GetByAccessToken(ctx context.Context, token string) (*model.User, error)
}

type AuthService struct {
	users      CredentialStore
	bcryptCost int
	newToken   TokenGenerator
}

type RegisterInput struct {
	Username string
	Password string
}

type LoginInput struct {
	Username string
	Password string
}

type AuthResult struct {
	UserID      string
	Username    string
	AccessToken string
}

func NewAuthService(users CredentialStore, bcryptCost int) *AuthService {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &AuthService{
		users:      users,
		bcryptCost: bcryptCost,
		newToken:   NewAccessToken,
	}
}

func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	username := strings.TrimSpace(input.Username)
	if username == "" || len(input.Password) < minPasswordLength || len(input.Password) > maxPasswordLength {
		metrics.AuthAttempts.WithLabelValues("register", "invalid").Inc()
		return nil, ErrValidation
	}

	existing, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		metrics.AuthAttempts.WithLabelValues("register", "duplicate").Inc()
		return nil, &DuplicateKeyError{Fields: map[string]string{"username": username}}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password failed: %w", err)
	}
	token, err := s.newToken()
	if err != nil {
		return nil, err
	}

	user := &model.User{
		ID:           uuid.NewString(),
		Username:     username,
		PasswordHash: string(hash),
		AccessToken:  token,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if dup, ok := asDuplicateKey(err); ok {
			metrics.AuthAttempts.WithLabelValues("register", "duplicate").Inc()
			return nil, dup
		}
		return nil, err
	}

	metrics.AuthAttempts.WithLabelValues("register", "success").Inc()
	logging.With("auth").Info().Str("user_id", user.ID).Str("username", user.Username).Msg("user registered")
	return &AuthResult{UserID: user.ID, Username: user.Username, AccessToken: user.AccessToken}, nil
}

// Login returns ErrNotFound both for unknown users and for wrong passwords.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*AuthResult, error) {
	username := strings.TrimSpace(input.Username)
	if username == "" || input.Password == "" {
		metrics.AuthAttempts.WithLabelValues("login", "invalid").Inc()
		return nil, ErrValidation
	}

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		metrics.AuthAttempts.WithLabelValues("login", "rejected").Inc()
		return nil, ErrNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		metrics.AuthAttempts.WithLabelValues("login", "rejected").Inc()
		return nil, ErrNotFound
	}

	metrics.AuthAttempts.WithLabelValues("login", "success").Inc()
	return &AuthResult{UserID: user.ID, Username: user.Username, AccessToken: user.AccessToken}, nil
}

// Authenticate resolves an access token to its user. A store failure is
// reported as ErrStoreUnavailable so callers can tell it apart from a bad token.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*model.User, error) {
	if token == "" {
		return nil, ErrUnauthenticated
	}
	user, err := s.users.GetByAccessToken(ctx, token)
	if err != nil {
		return nil, errors.Join(ErrStoreUnavailable, err)
	}
	if user == nil {
		return nil, ErrUnauthenticated
	}
	return user, nil
}
