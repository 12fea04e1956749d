package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authsvc "camperhub/internal/app/services/auth"
	domainuser "camperhub/internal/domain/user"
	"camperhub/internal/infra/security"
	"camperhub/internal/infra/storage/memory"
)

func newService(t *testing.T) (*authsvc.Service, *memory.UserRepository) {
	t.Helper()
	users := memory.NewUserRepository()
	service := &authsvc.Service{
		Users:     users,
		Passwords: security.BcryptHasher{Cost: 4},
		Tokens:    security.NewJWTManager([]byte("test-secret"), time.Hour),
	}
	return service, users
}

func seedAdmin(t *testing.T, service *authsvc.Service, email, password string) *domainuser.User {
	t.Helper()
	account, err := service.CreateAdmin(context.Background(), authsvc.CreateAdminParams{
		Email:     email,
		Password:  password,
		FirstName: "Grace",
		LastName:  "Hopper",
	})
	require.NoError(t, err)
	return account
}

func TestLoginIssuesToken(t *testing.T) {
	service, _ := newService(t)
	seedAdmin(t, service, "grace@example.com", "correct horse")

	result, err := service.Login(context.Background(), authsvc.LoginParams{
		Email:    "Grace@Example.com",
		Password: "correct horse",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)
	assert.Equal(t, "grace@example.com", result.User.Email)
	assert.True(t, result.User.IsAdmin)
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	service, _ := newService(t)
	seedAdmin(t, service, "grace@example.com", "correct horse")

	_, err := service.Login(context.Background(), authsvc.LoginParams{
		Email:    "grace@example.com",
		Password: "wrong horse",
	})
	assert.ErrorIs(t, err, authsvc.ErrInvalidCredentials)
}

func TestLoginRejectsUnknownEmail(t *testing.T) {
	service, _ := newService(t)
	_, err := service.Login(context.Background(), authsvc.LoginParams{
		Email:    "nobody@example.com",
		Password: "whatever1",
	})
	assert.ErrorIs(t, err, authsvc.ErrInvalidCredentials)
}

func TestLoginRejectsNonAdmin(t *testing.T) {
	service, users := newService(t)
	hash, err := security.BcryptHasher{Cost: 4}.Hash("password1")
	require.NoError(t, err)
	regular, err := domainuser.New(domainuser.CreateParams{
		ID:           "u1",
		Email:        "user@example.com",
		FirstName:    "Regular",
		LastName:     "User",
		PasswordHash: hash,
	})
	require.NoError(t, err)
	require.NoError(t, users.Save(context.Background(), regular))

	_, err = service.Login(context.Background(), authsvc.LoginParams{
		Email:    "user@example.com",
		Password: "password1",
	})
	assert.ErrorIs(t, err, authsvc.ErrInvalidCredentials)
}

func TestLoginRejectsSuspendedAccount(t *testing.T) {
	service, users := newService(t)
	account := seedAdmin(t, service, "grace@example.com", "correct horse")

	require.NoError(t, account.SetAccountStatus(domainuser.StatusSuspended, time.Now()))
	require.NoError(t, users.Save(context.Background(), account))

	_, err := service.Login(context.Background(), authsvc.LoginParams{
		Email:    "grace@example.com",
		Password: "correct horse",
	})
	assert.ErrorIs(t, err, authsvc.ErrAccountSuspended)
}

func TestCreateAdminEnforcesPasswordLength(t *testing.T) {
	service, _ := newService(t)
	_, err := service.CreateAdmin(context.Background(), authsvc.CreateAdminParams{
		Email:     "grace@example.com",
		Password:  "short",
		FirstName: "Grace",
		LastName:  "Hopper",
	})
	assert.ErrorIs(t, err, authsvc.ErrPasswordTooShort)
}

func TestCreateAdminRejectsDuplicateEmail(t *testing.T) {
	service, _ := newService(t)
	seedAdmin(t, service, "grace@example.com", "correct horse")

	_, err := service.CreateAdmin(context.Background(), authsvc.CreateAdminParams{
		Email:     "grace@example.com",
		Password:  "another pass",
		FirstName: "Grace",
		LastName:  "Hopper",
	})
	assert.ErrorIs(t, err, domainuser.ErrEmailAlreadyUsed)
}

func TestResolveDropsSuspendedAccounts(t *testing.T) {
	service, users := newService(t)
	account := seedAdmin(t, service, "grace@example.com", "correct horse")

	resolved, err := service.Resolve(context.Background(), string(account.ID))
	require.NoError(t, err)
	assert.Equal(t, account.ID, resolved.ID)

	require.NoError(t, account.SetAccountStatus(domainuser.StatusDeleted, time.Now()))
	require.NoError(t, users.Save(context.Background(), account))

	_, err = service.Resolve(context.Background(), string(account.ID))
	assert.ErrorIs(t, err, authsvc.ErrAccountSuspended)
}
