package ownerstats_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"camperhub/internal/app/services/ownerstats"
	"camperhub/internal/domain/booking"
	"camperhub/internal/domain/camper"
	"camperhub/internal/domain/shared/daterange"
	"camperhub/internal/domain/shared/money"
	domainuser "camperhub/internal/domain/user"
	"camperhub/internal/infra/storage/memory"
)

type fakeCache struct {
	rows     []ownerstats.Row
	setCalls int
	getErr   error
}

func (c *fakeCache) Get(ctx context.Context) ([]ownerstats.Row, error) {
	if c.getErr != nil {
		return nil, c.getErr
	}
	return c.rows, nil
}

func (c *fakeCache) Set(ctx context.Context, rows []ownerstats.Row, ttl time.Duration) error {
	c.rows = rows
	c.setCalls++
	return nil
}

type fixture struct {
	users    *memory.UserRepository
	campers  *memory.CamperRepository
	bookings *memory.BookingRepository
	source   *memory.StatsSource
}

func newFixture() *fixture {
	f := &fixture{
		users:    memory.NewUserRepository(),
		campers:  memory.NewCamperRepository(),
		bookings: memory.NewBookingRepository(),
	}
	f.source = &memory.StatsSource{Users: f.users, Campers: f.campers, Bookings: f.bookings}
	return f
}

func (f *fixture) addUser(t *testing.T, id, first, last, email string) {
	t.Helper()
	u, err := domainuser.New(domainuser.CreateParams{
		ID:           domainuser.ID(id),
		Email:        email,
		FirstName:    first,
		LastName:     last,
		PasswordHash: "x",
		CreatedAt:    time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	require.NoError(t, f.users.Save(context.Background(), u))
}

func (f *fixture) addCamper(t *testing.T, id, owner string) {
	t.Helper()
	c, err := camper.New(camper.CreateParams{
		ID:                camper.CamperID(id),
		Owner:             camper.OwnerID(owner),
		Name:              "Van " + id,
		StandardPrice:     money.Must(9000, "EUR"),
		MinimumRentalDays: 1,
		Now:               time.Now(),
	})
	require.NoError(t, err)
	require.NoError(t, f.campers.Save(context.Background(), c))
}

func (f *fixture) addBooking(t *testing.T, id, userID, camperID string, status booking.Status) {
	t.Helper()
	dr, err := daterange.New(
		time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 8, 5, 0, 0, 0, 0, time.UTC),
	)
	require.NoError(t, err)
	b, err := booking.New(booking.CreateParams{
		ID:        booking.BookingID(id),
		UserID:    domainuser.ID(userID),
		CamperID:  camper.CamperID(camperID),
		Range:     dr,
		Status:    status,
		CreatedAt: time.Now(),
	})
	require.NoError(t, err)
	require.NoError(t, f.bookings.Save(context.Background(), b))
}

func TestOwnersCountsPerStatus(t *testing.T) {
	f := newFixture()
	f.addUser(t, "u1", "Ada", "Lovelace", "ada@example.com")
	f.addUser(t, "u2", "Bram", "Moolenaar", "bram@example.com")
	f.addCamper(t, "c1", "u1")
	f.addCamper(t, "c2", "u1")
	f.addBooking(t, "b1", "u2", "c1", booking.StatusConfirmed)
	f.addBooking(t, "b2", "u2", "c1", booking.StatusPending)
	f.addBooking(t, "b3", "u2", "c2", booking.StatusCancelled)

	svc := &ownerstats.Service{Source: f.source}
	rows, err := svc.Owners(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 2)

	byID := map[string]ownerstats.Row{}
	for _, r := range rows {
		byID[r.OwnerID] = r
	}
	ada := byID["u1"]
	assert.Equal(t, "Ada Lovelace", ada.OwnerName)
	assert.Equal(t, int64(2), ada.TotalCampers)
	assert.Equal(t, int64(3), ada.TotalBookings)
	assert.Equal(t, int64(1), ada.Confirmed)
	assert.Equal(t, int64(1), ada.Pending)
	assert.Equal(t, int64(1), ada.Cancelled)
	assert.Equal(t, int64(0), ada.Completed)
}

func TestOwnersIncludesUsersWithoutCampers(t *testing.T) {
	f := newFixture()
	f.addUser(t, "u1", "Ada", "Lovelace", "ada@example.com")

	svc := &ownerstats.Service{Source: f.source}
	rows, err := svc.Owners(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, int64(0), rows[0].TotalCampers)
	assert.Equal(t, int64(0), rows[0].TotalBookings)
}

func TestOwnersWritesThroughCache(t *testing.T) {
	f := newFixture()
	f.addUser(t, "u1", "Ada", "Lovelace", "ada@example.com")

	cache := &fakeCache{}
	svc := &ownerstats.Service{Source: f.source, Cache: cache, CacheTTL: time.Minute}

	rows, err := svc.Owners(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, cache.setCalls)

	// Second call is served from the cache even after the source changes.
	f.addUser(t, "u2", "Bram", "Moolenaar", "bram@example.com")
	cached, err := svc.Owners(context.Background())
	require.NoError(t, err)
	assert.Equal(t, rows, cached)
	assert.Equal(t, 1, cache.setCalls)
}

func TestOwnersFallsBackWhenCacheFails(t *testing.T) {
	f := newFixture()
	f.addUser(t, "u1", "Ada", "Lovelace", "ada@example.com")

	cache := &fakeCache{getErr: errors.New("redis: connection refused")}
	svc := &ownerstats.Service{Source: f.source, Cache: cache}

	rows, err := svc.Owners(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 1)
}

func TestOwnersRequiresSource(t *testing.T) {
	svc := &ownerstats.Service{}
	_, err := svc.Owners(context.Background())
	require.Error(t, err)
}
