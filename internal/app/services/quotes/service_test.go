package quotes_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"camperhub/internal/app/services/quotes"
	"camperhub/internal/domain/booking"
	"camperhub/internal/domain/camper"
	domainpricing "camperhub/internal/domain/pricing"
	"camperhub/internal/domain/shared/daterange"
	"camperhub/internal/domain/shared/money"
	domainuser "camperhub/internal/domain/user"
	"camperhub/internal/infra/storage/memory"
)

func day(d int) time.Time {
	return time.Date(2026, 6, d, 0, 0, 0, 0, time.UTC)
}

func newService(t *testing.T) (*quotes.Service, *memory.CamperRepository, *memory.BookingRepository) {
	t.Helper()
	campers := memory.NewCamperRepository()
	bookings := memory.NewBookingRepository()
	service := &quotes.Service{
		Campers:  campers,
		Bookings: bookings,
		Engine:   domainpricing.Engine{},
	}
	return service, campers, bookings
}

func seedCamper(t *testing.T, campers *memory.CamperRepository) *camper.Camper {
	t.Helper()
	c, err := camper.New(camper.CreateParams{
		ID:                "van-1",
		Owner:             "owner-1",
		Name:              "Coastal Van",
		StandardPrice:     money.Must(10000, "EUR"),
		MinimumRentalDays: 2,
		CleaningFee:       money.Must(4000, "EUR"),
		Deposit:           money.Must(50000, "EUR"),
		Now:               time.Now(),
	})
	require.NoError(t, err)
	require.NoError(t, campers.Save(context.Background(), c))
	return c
}

func confirmBooking(t *testing.T, bookings *memory.BookingRepository, id string, from, to time.Time) {
	t.Helper()
	dr, err := daterange.New(from, to)
	require.NoError(t, err)
	b, err := booking.New(booking.CreateParams{
		ID:        booking.BookingID(id),
		UserID:    domainuser.ID("guest-1"),
		CamperID:  "van-1",
		Range:     dr,
		Status:    booking.StatusConfirmed,
		CreatedAt: time.Now(),
	})
	require.NoError(t, err)
	require.NoError(t, bookings.Save(context.Background(), b))
}

func TestQuoteForFreeRange(t *testing.T) {
	service, campers, _ := newService(t)
	seedCamper(t, campers)

	quote, err := service.Quote(context.Background(), "van-1", day(1), day(4), nil)
	require.NoError(t, err)
	assert.Equal(t, 3, quote.Stay.TotalDays)
	assert.Equal(t, int64(30000), quote.DailyRates.Subtotal.Amount)
	assert.Equal(t, int64(34000), quote.Summary.Total.Amount)
	assert.Equal(t, int64(84000), quote.Summary.GrandTotal.Amount)
}

func TestQuoteConflictsWithConfirmedBooking(t *testing.T) {
	service, campers, bookings := newService(t)
	seedCamper(t, campers)
	confirmBooking(t, bookings, "bk-1", day(3), day(6))

	_, err := service.Quote(context.Background(), "van-1", day(5), day(8), nil)
	var conflict *domainpricing.ConflictError
	require.ErrorAs(t, err, &conflict)
	require.Len(t, conflict.Conflicts, 1)
	assert.Equal(t, "bk-1", conflict.Conflicts[0].Reference)
}

func TestQuoteIgnoresPendingBookings(t *testing.T) {
	service, campers, bookings := newService(t)
	seedCamper(t, campers)

	dr, err := daterange.New(day(3), day(6))
	require.NoError(t, err)
	pending, err := booking.New(booking.CreateParams{
		ID:        "bk-pending",
		UserID:    "guest-1",
		CamperID:  "van-1",
		Range:     dr,
		Status:    booking.StatusPending,
		CreatedAt: time.Now(),
	})
	require.NoError(t, err)
	require.NoError(t, bookings.Save(context.Background(), pending))

	quote, err := service.Quote(context.Background(), "van-1", day(4), day(6), nil)
	require.NoError(t, err)
	assert.Equal(t, 2, quote.Stay.TotalDays)
}

func TestQuoteFillsExtraCurrencyFromCamper(t *testing.T) {
	service, campers, _ := newService(t)
	seedCamper(t, campers)

	price := money.Money{Amount: 1500}
	quote, err := service.Quote(context.Background(), "van-1", day(1), day(3), []domainpricing.ExtraSelection{
		{Name: "Bike rack", Price: &price, PriceType: "perday"},
	})
	require.NoError(t, err)
	require.Len(t, quote.Extras.Breakdown, 1)
	assert.Equal(t, "EUR", quote.Extras.Breakdown[0].Total.Currency)
	assert.Equal(t, int64(3000), quote.Extras.Total.Amount)
}

func TestQuoteUnknownCamper(t *testing.T) {
	service, _, _ := newService(t)
	_, err := service.Quote(context.Background(), "ghost", day(1), day(3), nil)
	assert.ErrorIs(t, err, camper.ErrNotFound)
}

func TestAvailability(t *testing.T) {
	service, campers, bookings := newService(t)
	seedCamper(t, campers)
	confirmBooking(t, bookings, "bk-1", day(10), day(12))

	availability, err := service.Availability(context.Background(), "van-1", day(1), day(4))
	require.NoError(t, err)
	assert.True(t, availability.Available)

	availability, err = service.Availability(context.Background(), "van-1", day(11), day(14))
	require.NoError(t, err)
	assert.False(t, availability.Available)
	require.Len(t, availability.Conflicts, 1)
	assert.Equal(t, "bk-1", availability.Conflicts[0].Reference)
}
