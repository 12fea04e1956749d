package quotes

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"camperhub/internal/domain/booking"
	"camperhub/internal/domain/camper"
	"camperhub/internal/domain/pricing"
)

// Service snapshots a camper and its confirmed bookings and runs the pricing
// engine over the snapshot. The read and any later booking write are not
// atomic; the booking-persistence path holds the exclusion constraint that
// settles concurrent quote-then-book races.
type Service struct {
	Campers  camper.Repository
	Bookings booking.Repository
	Engine   pricing.Engine
	Logger   *slog.Logger
}

func (s *Service) Quote(ctx context.Context, id camper.CamperID, start, end time.Time, extras []pricing.ExtraSelection) (*pricing.Quote, error) {
	snapshot, reservations, err := s.snapshot(ctx, id, start, end)
	if err != nil {
		return nil, err
	}
	extras = normalizeCurrency(extras, snapshot.StandardPrice.Currency)
	quote, err := s.Engine.BuildQuote(snapshot, reservations, start, end, extras)
	if err != nil {
		return nil, err
	}
	if s.Logger != nil {
		s.Logger.Debug("quote computed", "camper_id", id, "days", quote.Stay.TotalDays, "grand_total", quote.Summary.GrandTotal)
	}
	return quote, nil
}

func (s *Service) Availability(ctx context.Context, id camper.CamperID, start, end time.Time) (pricing.Availability, error) {
	snapshot, reservations, err := s.snapshot(ctx, id, start, end)
	if err != nil {
		return pricing.Availability{}, err
	}
	return s.Engine.CheckAvailability(snapshot, reservations, start, end)
}

// normalizeCurrency stamps the camper's currency onto extras that arrived
// without one, so engine arithmetic stays in a single currency.
func normalizeCurrency(extras []pricing.ExtraSelection, currency string) []pricing.ExtraSelection {
	out := make([]pricing.ExtraSelection, len(extras))
	copy(out, extras)
	for i := range out {
		if out[i].Price != nil && out[i].Price.Currency == "" {
			price := *out[i].Price
			price.Currency = currency
			out[i].Price = &price
		}
	}
	return out
}

func (s *Service) snapshot(ctx context.Context, id camper.CamperID, start, end time.Time) (*camper.Camper, []pricing.Reservation, error) {
	if s.Campers == nil || s.Bookings == nil {
		return nil, nil, errors.New("quotes: repositories required")
	}
	c, err := s.Campers.ByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	// The repository narrows to confirmed bookings whose range touches the
	// request; the engine re-applies the exact comparison over the snapshot.
	confirmed, err := s.Bookings.FindConfirmedOverlapping(ctx, id, start, end)
	if err != nil {
		return nil, nil, err
	}
	reservations := make([]pricing.Reservation, 0, len(confirmed))
	for _, b := range confirmed {
		reservations = append(reservations, pricing.Reservation{
			ID:   string(b.ID),
			From: b.Range.From,
			To:   b.Range.To,
		})
	}
	return c, reservations, nil
}
