package pricing

import (
	"log/slog"
	"strings"
	"time"

	"camperhub/internal/domain/camper"
	"camperhub/internal/domain/shared/daterange"
	"camperhub/internal/domain/shared/money"
)

// Engine computes quotes and availability over an immutable snapshot of a
// camper and its confirmed reservations. It is stateless and safe for
// concurrent use; every call performs its own day-by-day walk bounded by the
// rental length. Read consistency is as-of-call: the caller takes the
// reservation snapshot, and the booking-persistence path is responsible for
// the final overbooking arbitration.
type Engine struct {
	Logger *slog.Logger

	// StrictExtras turns malformed extras entries into errors instead of
	// skipping them with a log line.
	StrictExtras bool
}

// CheckAvailability validates the range, enforces the minimum stay, and scans
// the snapshot for conflicts. Reservations are compared with the inclusive
// dateFrom <= end AND dateTo >= start test; blackout windows use the
// inclusive-inclusive window rule. Both semantics are load-bearing and differ
// on edge days.
func (e Engine) CheckAvailability(c *camper.Camper, reservations []Reservation, start, end time.Time) (Availability, error) {
	dr, err := daterange.New(start, end)
	if err != nil {
		return Availability{}, ErrInvalidRange
	}
	if days := dr.Days(); days < c.MinimumRentalDays {
		return Availability{}, &MinStayError{RequiredDays: c.MinimumRentalDays}
	}

	var conflicts []Conflict
	for _, r := range reservations {
		if !r.From.After(dr.To) && !r.To.Before(dr.From) {
			conflicts = append(conflicts, Conflict{
				Kind:      ConflictReservation,
				From:      r.From,
				To:        r.To,
				Reference: r.ID,
			})
		}
	}
	for _, w := range c.RateWindows {
		if !w.Available && w.Intersects(dr.From, dr.To) {
			conflicts = append(conflicts, Conflict{
				Kind: ConflictBlackout,
				From: w.From,
				To:   w.To,
			})
		}
	}
	return Availability{Available: len(conflicts) == 0, Conflicts: conflicts}, nil
}

// BuildQuote runs the full pricing sequence: availability (fail fast), daily
// rate resolution, extras, then composition. Identical inputs yield identical
// quotes; on any failure no partial quote is returned.
func (e Engine) BuildQuote(c *camper.Camper, reservations []Reservation, start, end time.Time, extras []ExtraSelection) (*Quote, error) {
	availability, err := e.CheckAvailability(c, reservations, start, end)
	if err != nil {
		return nil, err
	}
	if !availability.Available {
		return nil, &ConflictError{Conflicts: availability.Conflicts}
	}

	dr, err := daterange.New(start, end)
	if err != nil {
		return nil, ErrInvalidRange
	}
	totalDays := dr.Days()
	currency := c.StandardPrice.Currency

	breakdown, subtotal := e.resolveDailyRates(c, dr)
	extrasBreakdown, err := e.priceExtras(extras, totalDays, currency)
	if err != nil {
		return nil, err
	}
	fees := resolveFees(c, dr)

	total := subtotal.Amount + fees.CleaningFee.Amount + extrasBreakdown.Total.Amount
	grandTotal := total + fees.Deposit.Amount

	return &Quote{
		Stay: Stay{TotalDays: totalDays, Start: dr.From, End: dr.To},
		DailyRates: DailyRates{
			Breakdown: breakdown,
			Subtotal:  subtotal,
		},
		Extras: extrasBreakdown,
		Fees:   fees,
		Summary: Summary{
			RentalSubtotal: subtotal,
			ExtrasTotal:    extrasBreakdown.Total,
			CleaningFee:    fees.CleaningFee,
			Total:          money.Money{Amount: total, Currency: currency},
			Deposit:        fees.Deposit,
			GrandTotal:     money.Money{Amount: grandTotal, Currency: currency},
		},
	}, nil
}

// resolveDailyRates walks every charged day in [from, to). The return day is
// not charged. The first available window covering a day wins; the no-overlap
// invariant makes multiple matches impossible, but stored order is the
// explicit tie-break if the set was persisted before validation existed.
func (e Engine) resolveDailyRates(c *camper.Camper, dr daterange.DateRange) ([]DailyRate, money.Money) {
	var (
		breakdown []DailyRate
		subtotal  int64
	)
	for day := dr.From; day.Before(dr.To); day = day.AddDate(0, 0, 1) {
		price := c.StandardPrice
		special := false
		for _, w := range c.RateWindows {
			if w.Available && w.Covers(day) {
				price = w.StandardPrice
				special = true
				break
			}
		}
		subtotal += price.Amount
		breakdown = append(breakdown, DailyRate{Date: day, Price: price, IsSpecialRate: special})
	}
	return breakdown, money.Money{Amount: subtotal, Currency: c.StandardPrice.Currency}
}

// resolveFees applies the whole-period override: when a single available
// window contains the full stay including the return day, its fee overrides
// take precedence over the camper-level fees.
func resolveFees(c *camper.Camper, dr daterange.DateRange) Fees {
	fees := Fees{CleaningFee: c.CleaningFee, Deposit: c.Deposit}
	for _, w := range c.RateWindows {
		if !w.Available {
			continue
		}
		if !dr.From.Before(w.From) && !dr.To.After(w.To) {
			if w.CleaningFee != nil {
				fees.CleaningFee = *w.CleaningFee
			}
			if w.Deposit != nil {
				fees.Deposit = *w.Deposit
			}
			break
		}
	}
	return fees
}

func (e Engine) priceExtras(selection []ExtraSelection, totalDays int, currency string) (ExtrasBreakdown, error) {
	result := ExtrasBreakdown{
		Breakdown: []ExtraCharge{},
		Total:     money.Money{Currency: currency},
	}
	for i, sel := range selection {
		if reason := invalidExtraReason(sel); reason != "" {
			if e.StrictExtras {
				return ExtrasBreakdown{}, &ExtraSelectionError{Index: i, Reason: reason}
			}
			if e.Logger != nil {
				e.Logger.Warn("skipping malformed extras entry", "index", i, "reason", reason)
			}
			continue
		}

		charge := ExtraCharge{
			Name:  strings.TrimSpace(sel.Name),
			Price: *sel.Price,
		}
		switch strings.ToLower(strings.TrimSpace(sel.PriceType)) {
		case string(camper.PerDay):
			charge.PriceType = camper.PerDay
			charge.Quantity = totalDays
			charge.Total = sel.Price.Multiply(int64(totalDays))
		default:
			// Package pricing is the default for absent or unknown types.
			charge.PriceType = camper.PerPackage
			charge.Quantity = 1
			charge.Total = *sel.Price
		}
		result.Breakdown = append(result.Breakdown, charge)
		result.Total.Amount += charge.Total.Amount
	}
	return result, nil
}

func invalidExtraReason(sel ExtraSelection) string {
	if strings.TrimSpace(sel.Name) == "" {
		return "name missing"
	}
	if sel.Price == nil {
		return "price missing"
	}
	if sel.Price.Amount < 0 {
		return "price negative"
	}
	return ""
}
