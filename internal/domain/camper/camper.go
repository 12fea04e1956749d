package camper

import (
	"context"
	"errors"
	"strings"
	"time"

	"camperhub/internal/domain/shared/events"
	"camperhub/internal/domain/shared/money"
)

var (
	ErrIDRequired       = errors.New("camper: id is required")
	ErrOwnerRequired    = errors.New("camper: owner is required")
	ErrNameRequired     = errors.New("camper: name is required")
	ErrNegativePrice    = errors.New("camper: standard price must be positive")
	ErrNegativeFee      = errors.New("camper: cleaning fee and deposit must be non-negative")
	ErrMinRentalDays    = errors.New("camper: minimum rental days must be at least 1")
	ErrInvalidStatus    = errors.New("camper: invalid status")
	ErrExtraNameMissing = errors.New("camper: extra name is required")
	ErrNotFound         = errors.New("camper: not found")
)

type CamperID string
type OwnerID string

type Status string

const (
	StatusPending Status = "pending"
	StatusActive  Status = "active"
	StatusSold    Status = "sold"
)

type PriceType string

const (
	PerDay     PriceType = "perday"
	PerPackage PriceType = "perpackage"
)

// Extra is an optional add-on offered with the camper, priced either per
// rental day or as a flat package charge.
type Extra struct {
	Name      string
	Price     money.Money
	PriceType PriceType
}

type Camper struct {
	ID                 CamperID
	Owner              OwnerID
	Name               string
	Description        string
	Status             Status
	LicensePlate       string
	StandardPrice      money.Money
	MinimumRentalDays  int
	CleaningFee        money.Money
	Deposit            money.Money
	RateWindows        []RateWindow
	Extras             []Extra
	Available          bool
	ThumbnailURL       string
	Photos             []string
	SleepingPlaces     int
	CreatedAt          time.Time
	UpdatedAt          time.Time
	Version            int64
	events.EventRecorder
}

type Repository interface {
	ByID(ctx context.Context, id CamperID) (*Camper, error)
	Save(ctx context.Context, c *Camper) error
	CountByOwner(ctx context.Context, owner OwnerID) (int64, error)
}

type CreateParams struct {
	ID                CamperID
	Owner             OwnerID
	Name              string
	Description       string
	LicensePlate      string
	StandardPrice     money.Money
	MinimumRentalDays int
	CleaningFee       money.Money
	Deposit           money.Money
	RateWindows       []RateWindow
	Extras            []Extra
	ThumbnailURL      string
	SleepingPlaces    int
	Now               time.Time
}

func New(params CreateParams) (*Camper, error) {
	if strings.TrimSpace(string(params.ID)) == "" {
		return nil, ErrIDRequired
	}
	if strings.TrimSpace(string(params.Owner)) == "" {
		return nil, ErrOwnerRequired
	}
	if strings.TrimSpace(params.Name) == "" {
		return nil, ErrNameRequired
	}
	if err := validatePricing(params.StandardPrice, params.MinimumRentalDays, params.CleaningFee, params.Deposit); err != nil {
		return nil, err
	}
	if err := ValidateRateWindows(params.RateWindows); err != nil {
		return nil, err
	}
	for _, extra := range params.Extras {
		if strings.TrimSpace(extra.Name) == "" {
			return nil, ErrExtraNameMissing
		}
	}

	now := params.Now
	if now.IsZero() {
		now = time.Now()
	}
	now = now.UTC()

	c := &Camper{
		ID:                params.ID,
		Owner:             params.Owner,
		Name:              strings.TrimSpace(params.Name),
		Description:       strings.TrimSpace(params.Description),
		Status:            StatusActive,
		LicensePlate:      strings.TrimSpace(params.LicensePlate),
		StandardPrice:     params.StandardPrice,
		MinimumRentalDays: params.MinimumRentalDays,
		CleaningFee:       params.CleaningFee,
		Deposit:           params.Deposit,
		RateWindows:       append([]RateWindow(nil), params.RateWindows...),
		Extras:            append([]Extra(nil), params.Extras...),
		Available:         true,
		ThumbnailURL:      strings.TrimSpace(params.ThumbnailURL),
		SleepingPlaces:    params.SleepingPlaces,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	c.Record(CamperCreated{CamperID: c.ID, Owner: c.Owner, At: now})
	return c, nil
}

// UpdatePricing replaces the pricing block in one step so the rate window set
// is always validated against the candidate state, never a partial one.
type UpdatePricingParams struct {
	StandardPrice     money.Money
	MinimumRentalDays int
	CleaningFee       money.Money
	Deposit           money.Money
	RateWindows       []RateWindow
	Now               time.Time
}

func (c *Camper) UpdatePricing(params UpdatePricingParams) error {
	if err := validatePricing(params.StandardPrice, params.MinimumRentalDays, params.CleaningFee, params.Deposit); err != nil {
		return err
	}
	if err := ValidateRateWindows(params.RateWindows); err != nil {
		return err
	}
	c.StandardPrice = params.StandardPrice
	c.MinimumRentalDays = params.MinimumRentalDays
	c.CleaningFee = params.CleaningFee
	c.Deposit = params.Deposit
	c.RateWindows = append([]RateWindow(nil), params.RateWindows...)
	c.UpdatedAt = params.Now.UTC()
	c.Record(CamperPricingUpdated{CamperID: c.ID, At: c.UpdatedAt})
	return nil
}

func (c *Camper) AddPhoto(url string, now time.Time) {
	url = strings.TrimSpace(url)
	if url == "" {
		return
	}
	c.Photos = append(c.Photos, url)
	if c.ThumbnailURL == "" {
		c.ThumbnailURL = url
	}
	c.UpdatedAt = now.UTC()
}

func (c *Camper) SetStatus(status Status, now time.Time) error {
	switch status {
	case StatusPending, StatusActive, StatusSold:
	default:
		return ErrInvalidStatus
	}
	c.Status = status
	c.UpdatedAt = now.UTC()
	return nil
}

func validatePricing(price money.Money, minDays int, cleaningFee, deposit money.Money) error {
	if price.Amount <= 0 {
		return ErrNegativePrice
	}
	if minDays < 1 {
		return ErrMinRentalDays
	}
	if cleaningFee.Amount < 0 || deposit.Amount < 0 {
		return ErrNegativeFee
	}
	return nil
}
