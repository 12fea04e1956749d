package booking

import (
	"context"
	"errors"
	"time"

	"camperhub/internal/domain/camper"
	"camperhub/internal/domain/shared/daterange"
	"camperhub/internal/domain/shared/events"
	"camperhub/internal/domain/user"
)

var (
	ErrIDRequired    = errors.New("booking: id is required")
	ErrInvalidStatus = errors.New("booking: invalid status")
	ErrNotFound      = errors.New("booking: not found")
)

type BookingID string

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
	StatusCompleted Status = "completed"
)

// Booking occupies a date range on a camper. Only confirmed bookings block
// new availability; pending, cancelled and completed ones do not.
type Booking struct {
	ID        BookingID
	UserID    user.ID
	CamperID  camper.CamperID
	Range     daterange.DateRange
	Status    Status
	CreatedAt time.Time
	UpdatedAt time.Time
	Version   int64
	events.EventRecorder
}

type Repository interface {
	ByID(ctx context.Context, id BookingID) (*Booking, error)
	Save(ctx context.Context, b *Booking) error
	// FindConfirmedOverlapping returns confirmed bookings whose range
	// intersects [start, end] under the marketplace's inclusive comparison
	// (dateFrom <= end AND dateTo >= start).
	FindConfirmedOverlapping(ctx context.Context, id camper.CamperID, start, end time.Time) ([]*Booking, error)
	CountByUser(ctx context.Context, id user.ID) (int64, error)
	CountByCamper(ctx context.Context, id camper.CamperID) (int64, error)
}

type CreateParams struct {
	ID        BookingID
	UserID    user.ID
	CamperID  camper.CamperID
	Range     daterange.DateRange
	Status    Status
	CreatedAt time.Time
}

func New(params CreateParams) (*Booking, error) {
	if params.ID == "" {
		return nil, errors.New("booking: id is required")
	}
	if params.UserID == "" {
		return nil, errors.New("booking: user id is required")
	}
	if params.CamperID == "" {
		return nil, errors.New("booking: camper id is required")
	}
	if err := params.Range.Validate(); err != nil {
		return nil, err
	}
	status := params.Status
	if status == "" {
		status = StatusPending
	}
	if !validStatus(status) {
		return nil, ErrInvalidStatus
	}
	now := params.CreatedAt.UTC()
	return &Booking{
		ID:        params.ID,
		UserID:    params.UserID,
		CamperID:  params.CamperID,
		Range:     params.Range,
		Status:    status,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

func (b *Booking) Confirm(now time.Time) error {
	if b.Status != StatusPending {
		return ErrInvalidStatus
	}
	b.Status = StatusConfirmed
	b.UpdatedAt = now.UTC()
	b.Record(BookingConfirmed{BookingID: b.ID, CamperID: b.CamperID, Range: b.Range, At: b.UpdatedAt})
	return nil
}

func (b *Booking) Cancel(now time.Time) error {
	if b.Status != StatusPending && b.Status != StatusConfirmed {
		return ErrInvalidStatus
	}
	b.Status = StatusCancelled
	b.UpdatedAt = now.UTC()
	b.Record(BookingCancelled{BookingID: b.ID, CamperID: b.CamperID, At: b.UpdatedAt})
	return nil
}

func (b *Booking) Complete(now time.Time) error {
	if b.Status != StatusConfirmed {
		return ErrInvalidStatus
	}
	b.Status = StatusCompleted
	b.UpdatedAt = now.UTC()
	return nil
}

func validStatus(s Status) bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted:
		return true
	}
	return false
}
