package user

import (
	"context"
	"errors"
	"strings"
	"time"
)

var (
	ErrIDRequired          = errors.New("user: id is required")
	ErrEmailRequired       = errors.New("user: email is required")
	ErrPasswordHashMissing = errors.New("user: password hash is required")
	ErrNameRequired        = errors.New("user: first and last name are required")
	ErrInvalidStatus       = errors.New("user: invalid account status")
	ErrEmailAlreadyUsed    = errors.New("user: email already used")
	ErrNotFound            = errors.New("user: not found")
)

type ID string

type AccountStatus string

const (
	StatusActive    AccountStatus = "active"
	StatusSuspended AccountStatus = "suspended"
	StatusDeleted   AccountStatus = "deleted"
)

func ValidStatus(s AccountStatus) bool {
	switch s {
	case StatusActive, StatusSuspended, StatusDeleted:
		return true
	}
	return false
}

type User struct {
	ID            ID
	Email         string
	FirstName     string
	LastName      string
	PasswordHash  string
	IsAdmin       bool
	EmailVerified bool
	AccountStatus AccountStatus
	CreatedAt     time.Time
	UpdatedAt     time.Time
	Version       int64
}

// FullName joins first and last name the way the admin UI displays users.
func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// Role is used by filtering and token claims; there are only two.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

func (u *User) Role() Role {
	if u.IsAdmin {
		return RoleAdmin
	}
	return RoleUser
}

// ListFilter narrows the user list; zero values mean "no constraint".
type ListFilter struct {
	Role   Role
	Status AccountStatus
	Search string
}

type Repository interface {
	ByID(ctx context.Context, id ID) (*User, error)
	ByEmail(ctx context.Context, email string) (*User, error)
	Save(ctx context.Context, user *User) error
	List(ctx context.Context, filter ListFilter) ([]*User, error)
}

type CreateParams struct {
	ID            ID
	Email         string
	FirstName     string
	LastName      string
	PasswordHash  string
	IsAdmin       bool
	EmailVerified bool
	CreatedAt     time.Time
}

func New(params CreateParams) (*User, error) {
	id := strings.TrimSpace(string(params.ID))
	if id == "" {
		return nil, ErrIDRequired
	}
	email := NormalizeEmail(params.Email)
	if email == "" {
		return nil, ErrEmailRequired
	}
	if strings.TrimSpace(params.PasswordHash) == "" {
		return nil, ErrPasswordHashMissing
	}
	first := strings.TrimSpace(params.FirstName)
	last := strings.TrimSpace(params.LastName)
	if first == "" || last == "" {
		return nil, ErrNameRequired
	}

	now := params.CreatedAt
	if now.IsZero() {
		now = time.Now()
	}
	now = now.UTC()

	return &User{
		ID:            ID(id),
		Email:         email,
		FirstName:     first,
		LastName:      last,
		PasswordHash:  params.PasswordHash,
		IsAdmin:       params.IsAdmin,
		EmailVerified: params.EmailVerified,
		AccountStatus: StatusActive,
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

func (u *User) SetAccountStatus(status AccountStatus, now time.Time) error {
	if !ValidStatus(status) {
		return ErrInvalidStatus
	}
	u.AccountStatus = status
	u.UpdatedAt = now.UTC()
	return nil
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
