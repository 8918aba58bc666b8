package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/marcelofalero/swse-architech/internal/auth"
	"github.com/marcelofalero/swse-architech/internal/domain"
)

// AccountService handles registration, login, and federated sign-in.
type AccountService struct {
	users    domain.UserRepository
	creds    auth.CredentialStore
	tokens   *auth.TokenService
	secret   string
	audience string
	logger   *slog.Logger
}

// NewAccountService creates an AccountService. secret signs local session
// tokens; audience is the expected aud claim of federated identity tokens.
func NewAccountService(users domain.UserRepository, tokens *auth.TokenService, secret, audience string, logger *slog.Logger) *AccountService {
	return &AccountService{
		users:    users,
		tokens:   tokens,
		secret:   secret,
		audience: audience,
		logger:   logger,
	}
}

// Register creates a new account. A duplicate email conflicts.
func (s *AccountService) Register(ctx context.Context, email, password, name string) (*domain.User, error) {
	if email == "" || password == "" {
		return nil, domain.ErrValidation("email and password are required")
	}

	_, err := s.users.GetByEmail(ctx, email)
	if err == nil {
		return nil, domain.ErrConflict("user already exists")
	}
	if !errors.As(err, new(*domain.NotFoundError)) {
		return nil, err
	}

	hash, err := s.creds.Hash(password)
	if err != nil {
		return nil, err
	}
	return s.users.Create(ctx, &domain.User{Email: email, Name: name, PasswordHash: hash})
}

// Login verifies credentials and issues a session token. Unknown email
// and wrong password are indistinguishable to the caller.
func (s *AccountService) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if errors.As(err, new(*domain.NotFoundError)) {
		return "", domain.ErrUnauthorized("invalid credentials")
	}
	if err != nil {
		return "", err
	}
	if !s.creds.Verify(user.PasswordHash, password) {
		return "", domain.ErrUnauthorized("invalid credentials")
	}
	return s.issueSession(user)
}

// FederatedLogin verifies an externally issued identity token and
// exchanges it for a local session token, provisioning the account on
// first sign-in. An account already registered under the same email is
// reused rather than duplicated.
func (s *AccountService) FederatedLogin(ctx context.Context, idToken string) (string, error) {
	claims, err := s.tokens.VerifyFederated(ctx, idToken, s.audience)
	if err != nil {
		s.logger.Debug("federated token rejected", "error", err)
		return "", domain.ErrUnauthorized("invalid token")
	}

	user, err := s.users.GetByID(ctx, claims.Sub)
	if errors.As(err, new(*domain.NotFoundError)) {
		user, err = s.users.GetByEmail(ctx, claims.Email)
		if errors.As(err, new(*domain.NotFoundError)) {
			user, err = s.users.Create(ctx, &domain.User{
				ID:    claims.Sub,
				Email: claims.Email,
				Name:  claims.Name,
			})
		}
	}
	if err != nil {
		return "", err
	}
	return s.issueSession(user)
}

func (s *AccountService) issueSession(user *domain.User) (string, error) {
	return s.tokens.IssueLocal(domain.Claims{
		Sub:   user.ID,
		Email: user.Email,
		Name:  user.Name,
		Exp:   time.Now().Add(auth.LocalTokenLifetime).Unix(),
	}, s.secret)
}
