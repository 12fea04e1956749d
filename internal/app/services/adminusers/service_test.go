package adminusers_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"camperhub/internal/app/services/adminusers"
	"camperhub/internal/domain/booking"
	"camperhub/internal/domain/camper"
	"camperhub/internal/domain/shared/daterange"
	"camperhub/internal/domain/shared/money"
	domainuser "camperhub/internal/domain/user"
	"camperhub/internal/infra/storage/memory"
)

type fixture struct {
	users    *memory.UserRepository
	campers  *memory.CamperRepository
	bookings *memory.BookingRepository
	service  *adminusers.Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		users:    memory.NewUserRepository(),
		campers:  memory.NewCamperRepository(),
		bookings: memory.NewBookingRepository(),
	}
	f.service = &adminusers.Service{
		Users:    f.users,
		Campers:  f.campers,
		Bookings: f.bookings,
	}
	return f
}

func (f *fixture) addUser(t *testing.T, id, first, last, email string, admin bool, joined time.Time) {
	t.Helper()
	u, err := domainuser.New(domainuser.CreateParams{
		ID:           domainuser.ID(id),
		Email:        email,
		FirstName:    first,
		LastName:     last,
		PasswordHash: "x",
		IsAdmin:      admin,
		CreatedAt:    joined,
	})
	require.NoError(t, err)
	require.NoError(t, f.users.Save(context.Background(), u))
}

func (f *fixture) addCamper(t *testing.T, id string, owner string) {
	t.Helper()
	c, err := camper.New(camper.CreateParams{
		ID:                camper.CamperID(id),
		Owner:             camper.OwnerID(owner),
		Name:              "Van " + id,
		StandardPrice:     money.Must(10000, "EUR"),
		MinimumRentalDays: 1,
		Now:               time.Now(),
	})
	require.NoError(t, err)
	require.NoError(t, f.campers.Save(context.Background(), c))
}

func (f *fixture) addBooking(t *testing.T, id, userID, camperID string) {
	t.Helper()
	dr, err := daterange.New(
		time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 7, 4, 0, 0, 0, 0, time.UTC),
	)
	require.NoError(t, err)
	b, err := booking.New(booking.CreateParams{
		ID:        booking.BookingID(id),
		UserID:    domainuser.ID(userID),
		CamperID:  camper.CamperID(camperID),
		Range:     dr,
		Status:    booking.StatusConfirmed,
		CreatedAt: time.Now(),
	})
	require.NoError(t, err)
	require.NoError(t, f.bookings.Save(context.Background(), b))
}

func day(d int) time.Time {
	return time.Date(2026, 1, d, 0, 0, 0, 0, time.UTC)
}

func TestListEnrichesWithDerivedCounts(t *testing.T) {
	f := newFixture(t)
	f.addUser(t, "u1", "Ada", "Lovelace", "ada@example.com", false, day(1))
	f.addUser(t, "u2", "Bram", "Moolenaar", "bram@example.com", false, day(2))
	f.addCamper(t, "c1", "u1")
	f.addCamper(t, "c2", "u1")
	f.addBooking(t, "b1", "u2", "c1")

	page, err := f.service.List(context.Background(), adminusers.ListParams{})
	require.NoError(t, err)
	require.Len(t, page.Items, 2)

	byID := map[domainuser.ID]adminusers.Entry{}
	for _, e := range page.Items {
		byID[e.ID] = e
	}
	assert.Equal(t, int64(2), byID["u1"].CampersUploaded)
	assert.Equal(t, int64(0), byID["u1"].TimesBooked)
	assert.Equal(t, int64(0), byID["u2"].CampersUploaded)
	assert.Equal(t, int64(1), byID["u2"].TimesBooked)
	assert.Equal(t, "Ada Lovelace", byID["u1"].Name)
}

func TestListSortsOnDerivedColumns(t *testing.T) {
	f := newFixture(t)
	f.addUser(t, "u1", "Ada", "Lovelace", "ada@example.com", false, day(1))
	f.addUser(t, "u2", "Bram", "Moolenaar", "bram@example.com", false, day(2))
	f.addUser(t, "u3", "Carol", "Shaw", "carol@example.com", false, day(3))
	f.addCamper(t, "c1", "u2")
	f.addCamper(t, "c2", "u2")
	f.addCamper(t, "c3", "u3")

	page, err := f.service.List(context.Background(), adminusers.ListParams{
		SortBy:    adminusers.SortByCampersUploaded,
		SortOrder: "desc",
	})
	require.NoError(t, err)
	require.Len(t, page.Items, 3)
	assert.Equal(t, domainuser.ID("u2"), page.Items[0].ID)
	assert.Equal(t, domainuser.ID("u3"), page.Items[1].ID)
	assert.Equal(t, domainuser.ID("u1"), page.Items[2].ID)
}

func TestListPaginatesAfterSorting(t *testing.T) {
	f := newFixture(t)
	for i, name := range []string{"Ada", "Bram", "Carol", "Dana", "Erik"} {
		f.addUser(t, name, name, "Tester", name+"@example.com", false, day(i+1))
	}

	page, err := f.service.List(context.Background(), adminusers.ListParams{
		Page:      2,
		Limit:     2,
		SortBy:    adminusers.SortByJoinDate,
		SortOrder: "asc",
	})
	require.NoError(t, err)
	assert.Equal(t, 5, page.Total)
	assert.Equal(t, 3, page.Pages)
	require.Len(t, page.Items, 2)
	assert.Equal(t, "Carol Tester", page.Items[0].Name)
	assert.Equal(t, "Dana Tester", page.Items[1].Name)
}

func TestListFilters(t *testing.T) {
	f := newFixture(t)
	f.addUser(t, "u1", "Ada", "Lovelace", "ada@example.com", true, day(1))
	f.addUser(t, "u2", "Bram", "Moolenaar", "bram@example.com", false, day(2))
	f.addUser(t, "u3", "Carol", "Shaw", "carol@example.com", false, day(3))

	page, err := f.service.List(context.Background(), adminusers.ListParams{Role: domainuser.RoleAdmin})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, domainuser.ID("u1"), page.Items[0].ID)

	page, err = f.service.List(context.Background(), adminusers.ListParams{Search: "bra"})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, domainuser.ID("u2"), page.Items[0].ID)
}

func TestListRejectsUnknownSortKey(t *testing.T) {
	f := newFixture(t)
	_, err := f.service.List(context.Background(), adminusers.ListParams{SortBy: "height"})
	assert.ErrorIs(t, err, adminusers.ErrInvalidSortKey)
}

func TestUpdateStatus(t *testing.T) {
	f := newFixture(t)
	f.addUser(t, "u1", "Ada", "Lovelace", "ada@example.com", false, day(1))
	outbox := memory.NewOutbox()
	f.service.Outbox = outbox

	err := f.service.UpdateStatus(context.Background(), "u1", domainuser.StatusSuspended)
	require.NoError(t, err)

	updated, err := f.users.ByID(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, domainuser.StatusSuspended, updated.AccountStatus)

	records := outbox.Records()
	require.Len(t, records, 1)
	assert.Equal(t, "user.account_status_changed", records[0].Name)
}

func TestUpdateStatusRejectsUnknownStatus(t *testing.T) {
	f := newFixture(t)
	f.addUser(t, "u1", "Ada", "Lovelace", "ada@example.com", false, day(1))

	err := f.service.UpdateStatus(context.Background(), "u1", "banned")
	assert.ErrorIs(t, err, domainuser.ErrInvalidStatus)
}

func TestUpdateStatusUnknownUser(t *testing.T) {
	f := newFixture(t)
	err := f.service.UpdateStatus(context.Background(), "ghost", domainuser.StatusActive)
	assert.ErrorIs(t, err, domainuser.ErrNotFound)
}
