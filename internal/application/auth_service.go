package application

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/kotobukicho/kotobuki/internal/domain/entity"
	"github.com/kotobukicho/kotobuki/internal/domain/repository"
	"github.com/kotobukicho/kotobuki/pkg/apperr"
	"github.com/kotobukicho/kotobuki/pkg/helpers"
)

// Unknown email and wrong password must surface the byte-identical error so
// responses cannot be used to enumerate accounts.
var errInvalidCredentials = apperr.New(apperr.KindAuth, "Invalid email or password")

const (
	minPasswordLen = 6
	// bcrypt rejects inputs over 72 bytes, so the bound is surfaced as a
	// validation error instead of a hash failure.
	maxPasswordLen = 72
)

// AuthService authenticates users by credentials and mints the bearer
// session tokens presented on every authenticated request.
type AuthService struct {
	Repo   repository.UserRepository
	JWT    *helpers.JWTManager
	Logger *logrus.Logger
}

func NewAuthService(repo repository.UserRepository, jwt *helpers.JWTManager, logger *logrus.Logger) *AuthService {
	return &AuthService{Repo: repo, JWT: jwt, Logger: logger}
}

// AuthResult is returned from both sign-up and sign-in.
type AuthResult struct {
	User  *entity.User
	Token string
}

// SignUp registers a new account and returns it with a fresh token.
func (s *AuthService) SignUp(ctx context.Context, email, password string) (*AuthResult, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, apperr.New(apperr.KindValidation, "Email and password are required")
	}
	if len(password) < minPasswordLen {
		return nil, apperr.New(apperr.KindValidation, "Password must be at least 6 characters")
	}
	if len(password) > maxPasswordLen {
		return nil, apperr.New(apperr.KindValidation, "Password must be at most 72 characters")
	}

	if existing, err := s.Repo.GetByEmail(ctx, email); err == nil && existing != nil {
		return nil, apperr.New(apperr.KindConflict, "User already exists")
	} else if err != nil && !apperr.Is(err, apperr.KindNotFound) {
		return nil, err
	}

	hash, err := helpers.HashPassword(password)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "Internal server error", err)
	}

	u := &entity.User{Email: email, PasswordHash: hash}
	if err := s.Repo.Create(ctx, u); err != nil {
		// The unique constraint also reports a concurrent duplicate as a conflict.
		return nil, err
	}

	token, _, err := s.JWT.Generate(u.ID, u.Email)
	if err != nil {
		s.Logger.WithError(err).WithField("user_id", u.ID).Error("token generation failed")
		return nil, apperr.Wrap(apperr.KindInternal, "Internal server error", err)
	}
	return &AuthResult{User: u, Token: token}, nil
}

// SignIn validates credentials and returns the user with a fresh token.
func (s *AuthService) SignIn(ctx context.Context, email, password string) (*AuthResult, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, apperr.New(apperr.KindValidation, "Email and password are required")
	}

	u, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		if apperr.Is(err, apperr.KindNotFound) {
			return nil, errInvalidCredentials
		}
		return nil, err
	}
	if !helpers.CheckPassword(u.PasswordHash, password) {
		return nil, errInvalidCredentials
	}

	token, _, err := s.JWT.Generate(u.ID, u.Email)
	if err != nil {
		s.Logger.WithError(err).WithField("user_id", u.ID).Error("token generation failed")
		return nil, apperr.Wrap(apperr.KindInternal, "Internal server error", err)
	}
	return &AuthResult{User: u, Token: token}, nil
}

// Verify checks a bearer token and resolves it to the current user record.
func (s *AuthService) Verify(ctx context.Context, token string) (*entity.User, error) {
	if token == "" {
		return nil, apperr.New(apperr.KindAuth, "No token provided")
	}
	claims, err := s.JWT.Parse(token)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindAuth, "Invalid or expired token", err)
	}
	// The token is self-contained, but the decoded user must still exist.
	u, err := s.Repo.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}
	return u, nil
}
