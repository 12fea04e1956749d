package memory

import (
	"context"
	"sync"
	"time"

	domainbooking "camperhub/internal/domain/booking"
	domaincamper "camperhub/internal/domain/camper"
	"camperhub/internal/domain/shared/events"
	domainuser "camperhub/internal/domain/user"
)

// BookingRepository is an in-memory implementation for tests and local runs.
type BookingRepository struct {
	mu    sync.RWMutex
	items map[domainbooking.BookingID]*domainbooking.Booking
}

func NewBookingRepository() *BookingRepository {
	return &BookingRepository{
		items: make(map[domainbooking.BookingID]*domainbooking.Booking),
	}
}

func (r *BookingRepository) ByID(ctx context.Context, id domainbooking.BookingID) (*domainbooking.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	b, ok := r.items[id]
	if !ok {
		return nil, domainbooking.ErrNotFound
	}
	return cloneBooking(b), nil
}

func (r *BookingRepository) Save(ctx context.Context, b *domainbooking.Booking) error {
	if b == nil || b.ID == "" {
		return domainbooking.ErrIDRequired
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[b.ID] = cloneBooking(b)
	return nil
}

// FindConfirmedOverlapping matches the inclusive comparison used by the
// availability checks: dateFrom <= end AND dateTo >= start.
func (r *BookingRepository) FindConfirmedOverlapping(ctx context.Context, id domaincamper.CamperID, start, end time.Time) ([]*domainbooking.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var result []*domainbooking.Booking
	for _, b := range r.items {
		if b.CamperID != id || b.Status != domainbooking.StatusConfirmed {
			continue
		}
		if !b.Range.From.After(end) && !b.Range.To.Before(start) {
			result = append(result, cloneBooking(b))
		}
	}
	return result, nil
}

func (r *BookingRepository) CountByUser(ctx context.Context, id domainuser.ID) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var n int64
	for _, b := range r.items {
		if b.UserID == id {
			n++
		}
	}
	return n, nil
}

func (r *BookingRepository) CountByCamper(ctx context.Context, id domaincamper.CamperID) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var n int64
	for _, b := range r.items {
		if b.CamperID == id {
			n++
		}
	}
	return n, nil
}

// All returns every stored booking. Used by the in-memory stats source.
func (r *BookingRepository) All(ctx context.Context) []*domainbooking.Booking {
	r.mu.RLock()
	defer r.mu.RUnlock()
	result := make([]*domainbooking.Booking, 0, len(r.items))
	for _, b := range r.items {
		result = append(result, cloneBooking(b))
	}
	return result
}

func cloneBooking(b *domainbooking.Booking) *domainbooking.Booking {
	if b == nil {
		return nil
	}
	copyBooking := *b
	copyBooking.EventRecorder = events.EventRecorder{}
	return &copyBooking
}
