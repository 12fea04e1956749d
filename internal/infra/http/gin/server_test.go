package ginserver_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"camperhub/internal/app/services/adminusers"
	authsvc "camperhub/internal/app/services/auth"
	campersvc "camperhub/internal/app/services/campers"
	"camperhub/internal/app/services/ownerstats"
	"camperhub/internal/app/services/quotes"
	"camperhub/internal/domain/booking"
	"camperhub/internal/domain/camper"
	domainpricing "camperhub/internal/domain/pricing"
	"camperhub/internal/domain/shared/daterange"
	"camperhub/internal/domain/shared/money"
	domainuser "camperhub/internal/domain/user"
	"camperhub/internal/infra/config"
	ginserver "camperhub/internal/infra/http/gin"
	"camperhub/internal/infra/obs"
	"camperhub/internal/infra/security"
	"camperhub/internal/infra/storage/memory"
)

type testEnv struct {
	handler  http.Handler
	auth     *authsvc.Service
	users    *memory.UserRepository
	campers  *memory.CamperRepository
	bookings *memory.BookingRepository
}

func newEnv(t *testing.T) *testEnv {
	t.Helper()
	users := memory.NewUserRepository()
	campers := memory.NewCamperRepository()
	bookings := memory.NewBookingRepository()
	tokens := security.NewJWTManager([]byte("test-secret"), time.Hour)

	authService := &authsvc.Service{
		Users:     users,
		Passwords: security.BcryptHasher{Cost: 4},
		Tokens:    tokens,
	}
	adminService := &adminusers.Service{Users: users, Campers: campers, Bookings: bookings}
	statsService := &ownerstats.Service{
		Source: &memory.StatsSource{Users: users, Campers: campers, Bookings: bookings},
	}
	quoteService := &quotes.Service{
		Campers:  campers,
		Bookings: bookings,
		Engine:   domainpricing.Engine{},
	}

	cfg := config.Config{Env: "test", HTTPAddr: ":0"}
	server := ginserver.NewServer(cfg, obs.Middleware{}, obs.HealthHandlers{}, ginserver.Handlers{
		Auth:  ginserver.AuthHandler{Service: authService},
		Admin: ginserver.AdminHandler{Users: adminService, Stats: statsService},
		Camper: ginserver.CamperHandler{
			Service: &campersvc.Service{Campers: campers},
			Quotes:  quoteService,
		},
		AuthMiddleware: ginserver.AuthMiddleware{Tokens: tokens, Service: authService}.Handle,
	})

	return &testEnv{
		handler:  server.Handler,
		auth:     authService,
		users:    users,
		campers:  campers,
		bookings: bookings,
	}
}

func (e *testEnv) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)
	return rec
}

func (e *testEnv) adminToken(t *testing.T) string {
	t.Helper()
	_, err := e.auth.CreateAdmin(context.Background(), authsvc.CreateAdminParams{
		Email:     "admin@example.com",
		Password:  "admin pass 1",
		FirstName: "Admin",
		LastName:  "Account",
	})
	require.NoError(t, err)
	result, err := e.auth.Login(context.Background(), authsvc.LoginParams{
		Email:    "admin@example.com",
		Password: "admin pass 1",
	})
	require.NoError(t, err)
	return result.Token
}

func (e *testEnv) seedCamper(t *testing.T) {
	t.Helper()
	c, err := camper.New(camper.CreateParams{
		ID:                "van-1",
		Owner:             "owner-1",
		Name:              "Coastal Van",
		StandardPrice:     money.Must(10000, "EUR"),
		MinimumRentalDays: 1,
		CleaningFee:       money.Must(4000, "EUR"),
		Deposit:           money.Must(50000, "EUR"),
		Now:               time.Now(),
	})
	require.NoError(t, err)
	require.NoError(t, e.campers.Save(context.Background(), c))
}

func TestLoginAndListUsers(t *testing.T) {
	env := newEnv(t)
	token := env.adminToken(t)

	rec := env.do(t, http.MethodGet, "/api/v1/admin/users?sortBy=joinDate&sortOrder=asc", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var payload struct {
		Data []struct {
			Email string `json:"email"`
			Role  string `json:"role"`
		} `json:"data"`
		Pagination struct {
			Total int `json:"total"`
		} `json:"pagination"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	require.Equal(t, 1, payload.Pagination.Total)
	assert.Equal(t, "admin@example.com", payload.Data[0].Email)
	assert.Equal(t, "admin", payload.Data[0].Role)
}

func TestAdminRoutesRequireAuth(t *testing.T) {
	env := newEnv(t)

	rec := env.do(t, http.MethodGet, "/api/v1/admin/users", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = env.do(t, http.MethodGet, "/api/v1/admin/stats/owners", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	env := newEnv(t)
	env.adminToken(t)

	rec := env.do(t, http.MethodPost, "/api/v1/admin/login", "", map[string]string{
		"email":    "admin@example.com",
		"password": "nope nope",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestUpdateUserStatus(t *testing.T) {
	env := newEnv(t)
	token := env.adminToken(t)

	target, err := domainuser.New(domainuser.CreateParams{
		ID:           "u2",
		Email:        "renter@example.com",
		FirstName:    "Ren",
		LastName:     "Ter",
		PasswordHash: "x",
	})
	require.NoError(t, err)
	require.NoError(t, env.users.Save(context.Background(), target))

	rec := env.do(t, http.MethodPatch, "/api/v1/admin/users/u2/status", token, map[string]string{"status": "suspended"})
	require.Equal(t, http.StatusOK, rec.Code)

	updated, err := env.users.ByID(context.Background(), "u2")
	require.NoError(t, err)
	assert.Equal(t, domainuser.StatusSuspended, updated.AccountStatus)

	rec = env.do(t, http.MethodPatch, "/api/v1/admin/users/u2/status", token, map[string]string{"status": "banned"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestQuoteEndpoint(t *testing.T) {
	env := newEnv(t)
	env.seedCamper(t)

	rec := env.do(t, http.MethodPost, "/api/v1/campers/van-1/quote", "", map[string]any{
		"startDate": "2026-06-01T00:00:00Z",
		"endDate":   "2026-06-04T00:00:00Z",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var payload struct {
		Booking struct {
			TotalDays int `json:"totalDays"`
		} `json:"booking"`
		Pricing struct {
			Summary struct {
				GrandTotal struct {
					Amount int64 `json:"amount"`
				} `json:"grandTotal"`
			} `json:"summary"`
		} `json:"pricing"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.Equal(t, 3, payload.Booking.TotalDays)
	assert.Equal(t, int64(84000), payload.Pricing.Summary.GrandTotal.Amount)
}

func TestQuoteConflictReturns409(t *testing.T) {
	env := newEnv(t)
	env.seedCamper(t)

	dr, err := daterange.New(
		time.Date(2026, 6, 2, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 6, 5, 0, 0, 0, 0, time.UTC),
	)
	require.NoError(t, err)
	confirmed, err := booking.New(booking.CreateParams{
		ID:        "bk-1",
		UserID:    "guest-1",
		CamperID:  "van-1",
		Range:     dr,
		Status:    booking.StatusConfirmed,
		CreatedAt: time.Now(),
	})
	require.NoError(t, err)
	require.NoError(t, env.bookings.Save(context.Background(), confirmed))

	rec := env.do(t, http.MethodPost, "/api/v1/campers/van-1/quote", "", map[string]any{
		"startDate": "2026-06-01T00:00:00Z",
		"endDate":   "2026-06-04T00:00:00Z",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "bk-1")
}

func TestAvailabilityEndpoint(t *testing.T) {
	env := newEnv(t)
	env.seedCamper(t)

	path := fmt.Sprintf("/api/v1/campers/van-1/availability?from=%s&to=%s", "2026-06-01", "2026-06-04")
	rec := env.do(t, http.MethodGet, path, "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"available":true`)

	rec = env.do(t, http.MethodGet, "/api/v1/campers/van-1/availability?from=2026-06-04", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestQuoteUnknownCamperReturns404(t *testing.T) {
	env := newEnv(t)
	rec := env.do(t, http.MethodPost, "/api/v1/campers/ghost/quote", "", map[string]any{
		"startDate": "2026-06-01T00:00:00Z",
		"endDate":   "2026-06-04T00:00:00Z",
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
