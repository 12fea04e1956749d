package ownerstats

import (
	"context"
	"errors"
	"log/slog"
	"time"
)

// Row is one owner's camper and booking tally. The Mongo implementation
// produces it with a $lookup aggregation; the memory one counts in Go.
type Row struct {
	OwnerID       string `json:"ownerId" bson:"ownerId"`
	OwnerName     string `json:"ownerName" bson:"ownerName"`
	TotalCampers  int64  `json:"totalCampers" bson:"totalCampers"`
	TotalBookings int64  `json:"totalBookings" bson:"totalBookings"`
	Pending       int64  `json:"pending" bson:"pending"`
	Confirmed     int64  `json:"confirmed" bson:"confirmed"`
	Cancelled     int64  `json:"cancelled" bson:"cancelled"`
	Completed     int64  `json:"completed" bson:"completed"`
}

type Source interface {
	OwnerStats(ctx context.Context) ([]Row, error)
}

// Cache is an optional read-through cache in front of the aggregation; the
// pipeline walks every user, camper and booking, so a short TTL pays off on
// dashboard refreshes.
type Cache interface {
	Get(ctx context.Context) ([]Row, error)
	Set(ctx context.Context, rows []Row, ttl time.Duration) error
}

type Service struct {
	Source   Source
	Cache    Cache
	CacheTTL time.Duration
	Logger   *slog.Logger
}

func (s *Service) Owners(ctx context.Context) ([]Row, error) {
	if s.Source == nil {
		return nil, errors.New("ownerstats: source required")
	}
	if s.Cache != nil {
		if rows, err := s.Cache.Get(ctx); err == nil && rows != nil {
			return rows, nil
		}
	}
	rows, err := s.Source.OwnerStats(ctx)
	if err != nil {
		return nil, err
	}
	if s.Cache != nil {
		if err := s.Cache.Set(ctx, rows, s.cacheTTL()); err != nil && s.Logger != nil {
			s.Logger.Warn("owner stats cache write failed", "error", err)
		}
	}
	return rows, nil
}

func (s *Service) cacheTTL() time.Duration {
	if s.CacheTTL > 0 {
		return s.CacheTTL
	}
	return time.Minute
}
