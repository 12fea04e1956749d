package adminusers

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"strings"
	"time"

	appoutbox "camperhub/internal/app/outbox"
	"camperhub/internal/domain/booking"
	"camperhub/internal/domain/camper"
	"camperhub/internal/domain/shared/events"
	domainuser "camperhub/internal/domain/user"
)

var ErrInvalidSortKey = errors.New("adminusers: invalid sort key")

const (
	SortByName            = "name"
	SortByEmail           = "email"
	SortByJoinDate        = "joinDate"
	SortByCampersUploaded = "campersUploaded"
	SortByTimesBooked     = "timesBooked"
)

// Entry is one admin-facing user row enriched with counts derived from the
// camper and booking collections.
type Entry struct {
	ID              domainuser.ID
	Name            string
	Email           string
	Role            domainuser.Role
	Status          domainuser.AccountStatus
	Verified        bool
	JoinDate        time.Time
	CampersUploaded int64
	TimesBooked     int64
}

type Page struct {
	Items []Entry
	Total int
	Page  int
	Limit int
	Pages int
}

type ListParams struct {
	Page      int
	Limit     int
	Search    string
	Role      domainuser.Role
	Status    domainuser.AccountStatus
	SortBy    string
	SortOrder string
}

type Service struct {
	Users    domainuser.Repository
	Campers  camper.Repository
	Bookings booking.Repository
	Outbox   appoutbox.Outbox
	Encoder  appoutbox.EventEncoder
	Logger   *slog.Logger
}

// List filters users, enriches every row with derived counts, sorts on the
// requested column and only then paginates. Sorting must happen after
// enrichment because two of the sortable columns are the derived counts.
func (s *Service) List(ctx context.Context, params ListParams) (Page, error) {
	if s.Users == nil {
		return Page{}, errors.New("adminusers: user repository required")
	}
	params = params.normalized()
	if !validSortKey(params.SortBy) {
		return Page{}, ErrInvalidSortKey
	}

	users, err := s.Users.List(ctx, domainuser.ListFilter{
		Role:   params.Role,
		Status: params.Status,
		Search: params.Search,
	})
	if err != nil {
		return Page{}, err
	}

	entries := make([]Entry, 0, len(users))
	for _, u := range users {
		entry := Entry{
			ID:       u.ID,
			Name:     u.FullName(),
			Email:    u.Email,
			Role:     u.Role(),
			Status:   u.AccountStatus,
			Verified: u.EmailVerified,
			JoinDate: u.CreatedAt,
		}
		if s.Campers != nil {
			count, err := s.Campers.CountByOwner(ctx, camper.OwnerID(u.ID))
			if err != nil {
				return Page{}, err
			}
			entry.CampersUploaded = count
		}
		if s.Bookings != nil {
			count, err := s.Bookings.CountByUser(ctx, u.ID)
			if err != nil {
				return Page{}, err
			}
			entry.TimesBooked = count
		}
		entries = append(entries, entry)
	}

	sortEntries(entries, params.SortBy, params.SortOrder)

	total := len(entries)
	start := (params.Page - 1) * params.Limit
	if start > total {
		start = total
	}
	end := start + params.Limit
	if end > total {
		end = total
	}

	pages := total / params.Limit
	if total%params.Limit != 0 {
		pages++
	}

	return Page{
		Items: entries[start:end],
		Total: total,
		Page:  params.Page,
		Limit: params.Limit,
		Pages: pages,
	}, nil
}

// UpdateStatus changes the account status of one user and records the change
// for downstream consumers.
func (s *Service) UpdateStatus(ctx context.Context, id domainuser.ID, status domainuser.AccountStatus) error {
	if s.Users == nil {
		return errors.New("adminusers: user repository required")
	}
	account, err := s.Users.ByID(ctx, id)
	if err != nil {
		return err
	}
	now := time.Now()
	if err := account.SetAccountStatus(status, now); err != nil {
		return err
	}
	if err := s.Users.Save(ctx, account); err != nil {
		return err
	}
	event := domainuser.AccountStatusChanged{UserID: account.ID, Status: status, At: now.UTC()}
	if err := appoutbox.RecordDomainEvents(ctx, s.Outbox, s.Encoder, []events.DomainEvent{event}); err != nil {
		if s.Logger != nil {
			s.Logger.Error("status change event not recorded", "user_id", id, "error", err)
		}
	}
	if s.Logger != nil {
		s.Logger.Info("account status updated", "user_id", id, "status", status)
	}
	return nil
}

func (p ListParams) normalized() ListParams {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 {
		p.Limit = 10
	}
	if p.SortBy == "" {
		p.SortBy = SortByJoinDate
	}
	if p.SortOrder != "asc" {
		p.SortOrder = "desc"
	}
	p.Search = strings.TrimSpace(p.Search)
	return p
}

func validSortKey(key string) bool {
	switch key {
	case SortByName, SortByEmail, SortByJoinDate, SortByCampersUploaded, SortByTimesBooked:
		return true
	}
	return false
}

func sortEntries(entries []Entry, sortBy, order string) {
	less := func(a, b Entry) bool {
		switch sortBy {
		case SortByName:
			return strings.ToLower(a.Name) < strings.ToLower(b.Name)
		case SortByEmail:
			return strings.ToLower(a.Email) < strings.ToLower(b.Email)
		case SortByCampersUploaded:
			return a.CampersUploaded < b.CampersUploaded
		case SortByTimesBooked:
			return a.TimesBooked < b.TimesBooked
		default:
			return a.JoinDate.Before(b.JoinDate)
		}
	}
	sort.SliceStable(entries, func(i, j int) bool {
		if order == "asc" {
			return less(entries[i], entries[j])
		}
		return less(entries[j], entries[i])
	})
}
