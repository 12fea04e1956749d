package campers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	appoutbox "camperhub/internal/app/outbox"
	"camperhub/internal/domain/camper"
	"camperhub/internal/domain/shared/money"
)

var ErrNotOwner = errors.New("campers: camper belongs to another owner")

// Uploader stores binary content and returns a public URL; the S3 client
// implements it, tests stub it.
type Uploader interface {
	Upload(ctx context.Context, key string, reader io.Reader, contentType string) (string, error)
}

type Service struct {
	Campers camper.Repository
	Uploads Uploader
	Outbox  appoutbox.Outbox
	Encoder appoutbox.EventEncoder
	Logger  *slog.Logger
}

type CreateParams struct {
	Owner             camper.OwnerID
	Name              string
	Description       string
	LicensePlate      string
	StandardPrice     int64
	Currency          string
	MinimumRentalDays int
	CleaningFee       int64
	Deposit           int64
	RateWindows       []camper.RateWindow
	Extras            []camper.Extra
	SleepingPlaces    int
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*camper.Camper, error) {
	if s.Campers == nil {
		return nil, errors.New("campers: repository required")
	}
	currency := params.Currency
	if currency == "" {
		currency = "EUR"
	}
	price, err := moneyOf(params.StandardPrice, currency)
	if err != nil {
		return nil, err
	}
	cleaningFee, err := moneyOf(params.CleaningFee, currency)
	if err != nil {
		return nil, err
	}
	deposit, err := moneyOf(params.Deposit, currency)
	if err != nil {
		return nil, err
	}

	c, err := camper.New(camper.CreateParams{
		ID:                camper.CamperID(uuid.NewString()),
		Owner:             params.Owner,
		Name:              params.Name,
		Description:       params.Description,
		LicensePlate:      params.LicensePlate,
		StandardPrice:     price,
		MinimumRentalDays: params.MinimumRentalDays,
		CleaningFee:       cleaningFee,
		Deposit:           deposit,
		RateWindows:       params.RateWindows,
		Extras:            params.Extras,
		SleepingPlaces:    params.SleepingPlaces,
		Now:               time.Now(),
	})
	if err != nil {
		return nil, err
	}
	if err := s.Campers.Save(ctx, c); err != nil {
		return nil, err
	}
	s.drainEvents(ctx, c)
	if s.Logger != nil {
		s.Logger.Info("camper created", "camper_id", c.ID, "owner", c.Owner)
	}
	return c, nil
}

// UpdatePricing replaces a camper's pricing block. The rate window set is
// validated as a whole before anything is persisted.
func (s *Service) UpdatePricing(ctx context.Context, id camper.CamperID, actor camper.OwnerID, isAdmin bool, params camper.UpdatePricingParams) (*camper.Camper, error) {
	if s.Campers == nil {
		return nil, errors.New("campers: repository required")
	}
	c, err := s.Campers.ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !isAdmin && c.Owner != actor {
		return nil, ErrNotOwner
	}
	if params.Now.IsZero() {
		params.Now = time.Now()
	}
	if err := c.UpdatePricing(params); err != nil {
		return nil, err
	}
	if err := s.Campers.Save(ctx, c); err != nil {
		return nil, err
	}
	s.drainEvents(ctx, c)
	return c, nil
}

// AttachPhoto uploads the image and appends its public URL to the camper.
func (s *Service) AttachPhoto(ctx context.Context, id camper.CamperID, actor camper.OwnerID, isAdmin bool, filename string, reader io.Reader, contentType string) (string, error) {
	if s.Campers == nil {
		return "", errors.New("campers: repository required")
	}
	if s.Uploads == nil {
		return "", errors.New("campers: uploader not configured")
	}
	c, err := s.Campers.ByID(ctx, id)
	if err != nil {
		return "", err
	}
	if !isAdmin && c.Owner != actor {
		return "", ErrNotOwner
	}
	key := fmt.Sprintf("campers/%s/%s%s", id, uuid.NewString(), strings.ToLower(path.Ext(filename)))
	url, err := s.Uploads.Upload(ctx, key, reader, contentType)
	if err != nil {
		return "", err
	}
	now := time.Now()
	c.AddPhoto(url, now)
	if err := s.Campers.Save(ctx, c); err != nil {
		return "", err
	}
	if s.Logger != nil {
		s.Logger.Info("camper photo attached", "camper_id", id, "key", key)
	}
	return url, nil
}

func (s *Service) drainEvents(ctx context.Context, c *camper.Camper) {
	if err := appoutbox.RecordDomainEvents(ctx, s.Outbox, s.Encoder, c.PendingEvents()); err != nil && s.Logger != nil {
		s.Logger.Error("camper events not recorded", "camper_id", c.ID, "error", err)
	}
	c.ClearEvents()
}

func moneyOf(amount int64, currency string) (money.Money, error) {
	return money.New(amount, currency)
}
