package auth

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	domainuser "camperhub/internal/domain/user"
)

var (
	ErrInvalidCredentials = errors.New("auth: invalid credentials")
	ErrPasswordTooShort   = errors.New("auth: password must be at least 8 characters")
	ErrAccountSuspended   = errors.New("auth: account suspended")
)

type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

// TokenIssuer mints a signed bearer token for an authenticated admin.
type TokenIssuer interface {
	Issue(userID string, isAdmin bool) (string, error)
}

type Service struct {
	Users     domainuser.Repository
	Passwords PasswordHasher
	Tokens    TokenIssuer
	Logger    *slog.Logger
}

type LoginParams struct {
	Email    string
	Password string
}

type CreateAdminParams struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
}

type AuthResult struct {
	User  *domainuser.User
	Token string
}

// Login authenticates an admin account. Unknown emails, wrong passwords and
// non-admin accounts all collapse into ErrInvalidCredentials so the response
// does not leak which accounts exist or hold admin rights.
func (s *Service) Login(ctx context.Context, params LoginParams) (*AuthResult, error) {
	if err := s.ensureDependencies(); err != nil {
		return nil, err
	}
	email := domainuser.NormalizeEmail(params.Email)
	if email == "" {
		return nil, ErrInvalidCredentials
	}
	account, err := s.Users.ByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domainuser.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !account.IsAdmin {
		return nil, ErrInvalidCredentials
	}
	if account.AccountStatus != domainuser.StatusActive {
		return nil, ErrAccountSuspended
	}
	if err := s.Passwords.Compare(account.PasswordHash, params.Password); err != nil {
		return nil, ErrInvalidCredentials
	}
	token, err := s.Tokens.Issue(string(account.ID), true)
	if err != nil {
		return nil, err
	}
	if s.Logger != nil {
		s.Logger.Info("admin authenticated", "user_id", account.ID)
	}
	return &AuthResult{User: account, Token: token}, nil
}

// CreateAdmin provisions a new admin account with a verified email and an
// active status, mirroring the onboarding path of the public marketplace.
func (s *Service) CreateAdmin(ctx context.Context, params CreateAdminParams) (*domainuser.User, error) {
	if err := s.ensureDependencies(); err != nil {
		return nil, err
	}
	email := domainuser.NormalizeEmail(params.Email)
	if email == "" {
		return nil, domainuser.ErrEmailRequired
	}
	if err := s.validatePassword(params.Password); err != nil {
		return nil, err
	}
	if existing, err := s.Users.ByEmail(ctx, email); err == nil && existing != nil {
		return nil, domainuser.ErrEmailAlreadyUsed
	} else if err != nil && !errors.Is(err, domainuser.ErrNotFound) {
		return nil, err
	}
	hash, err := s.Passwords.Hash(params.Password)
	if err != nil {
		return nil, err
	}
	account, err := domainuser.New(domainuser.CreateParams{
		ID:            domainuser.ID(uuid.NewString()),
		Email:         email,
		FirstName:     strings.TrimSpace(params.FirstName),
		LastName:      strings.TrimSpace(params.LastName),
		PasswordHash:  hash,
		IsAdmin:       true,
		EmailVerified: true,
		CreatedAt:     time.Now(),
	})
	if err != nil {
		return nil, err
	}
	if err := s.Users.Save(ctx, account); err != nil {
		return nil, err
	}
	if s.Logger != nil {
		s.Logger.Info("admin account created", "user_id", account.ID, "email", account.Email)
	}
	return account, nil
}

// Resolve loads the account behind a verified token subject. The middleware
// calls it on every authenticated request so revoked or suspended accounts
// drop out immediately rather than at token expiry.
func (s *Service) Resolve(ctx context.Context, userID string) (*domainuser.User, error) {
	if s.Users == nil {
		return nil, errors.New("auth: user repository required")
	}
	account, err := s.Users.ByID(ctx, domainuser.ID(userID))
	if err != nil {
		return nil, err
	}
	if account.AccountStatus != domainuser.StatusActive {
		return nil, ErrAccountSuspended
	}
	return account, nil
}

func (s *Service) validatePassword(password string) error {
	if utf8.RuneCountInString(password) < 8 {
		return ErrPasswordTooShort
	}
	return nil
}

func (s *Service) ensureDependencies() error {
	switch {
	case s.Users == nil:
		return errors.New("auth: user repository required")
	case s.Passwords == nil:
		return errors.New("auth: password hasher required")
	case s.Tokens == nil:
		return errors.New("auth: token issuer required")
	default:
		return nil
	}
}
