package dto

import (
	"time"

	"camperhub/internal/domain/pricing"
)

type MoneyAmount struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

type DailyRateEntry struct {
	Date          time.Time   `json:"date"`
	Price         MoneyAmount `json:"price"`
	IsSpecialRate bool        `json:"isSpecialRate"`
}

type ExtraChargeEntry struct {
	Name      string      `json:"name"`
	Price     MoneyAmount `json:"price"`
	PriceType string      `json:"priceType"`
	Quantity  int         `json:"quantity"`
	Total     MoneyAmount `json:"total"`
}

type QuoteStay struct {
	TotalDays int       `json:"totalDays"`
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`
}

type QuoteDailyRates struct {
	Breakdown []DailyRateEntry `json:"breakdown"`
	Subtotal  MoneyAmount      `json:"subtotal"`
}

type QuoteExtras struct {
	Breakdown []ExtraChargeEntry `json:"breakdown"`
	Total     MoneyAmount        `json:"total"`
}

type QuoteFees struct {
	CleaningFee MoneyAmount `json:"cleaningFee"`
	Deposit     MoneyAmount `json:"deposit"`
}

type QuoteSummary struct {
	RentalSubtotal MoneyAmount `json:"rentalSubtotal"`
	ExtrasTotal    MoneyAmount `json:"extrasTotal"`
	CleaningFee    MoneyAmount `json:"cleaningFee"`
	Total          MoneyAmount `json:"total"`
	Deposit        MoneyAmount `json:"deposit"`
	GrandTotal     MoneyAmount `json:"grandTotal"`
}

type QuotePricing struct {
	DailyRates QuoteDailyRates `json:"dailyRates"`
	Extras     QuoteExtras     `json:"extras"`
	Fees       QuoteFees       `json:"fees"`
	Summary    QuoteSummary    `json:"summary"`
}

type QuoteResponse struct {
	Booking QuoteStay    `json:"booking"`
	Pricing QuotePricing `json:"pricing"`
}

type AvailabilityConflict struct {
	Kind      string    `json:"kind"`
	From      time.Time `json:"from"`
	To        time.Time `json:"to"`
	Reference string    `json:"reference,omitempty"`
}

type AvailabilityResponse struct {
	Available bool                   `json:"available"`
	Conflicts []AvailabilityConflict `json:"conflicts"`
}

func NewQuoteResponse(q *pricing.Quote) QuoteResponse {
	if q == nil {
		return QuoteResponse{}
	}
	daily := make([]DailyRateEntry, 0, len(q.DailyRates.Breakdown))
	for _, rate := range q.DailyRates.Breakdown {
		daily = append(daily, DailyRateEntry{
			Date:          rate.Date,
			Price:         MoneyAmount{Amount: rate.Price.Amount, Currency: rate.Price.Currency},
			IsSpecialRate: rate.IsSpecialRate,
		})
	}
	extras := make([]ExtraChargeEntry, 0, len(q.Extras.Breakdown))
	for _, charge := range q.Extras.Breakdown {
		extras = append(extras, ExtraChargeEntry{
			Name:      charge.Name,
			Price:     MoneyAmount{Amount: charge.Price.Amount, Currency: charge.Price.Currency},
			PriceType: string(charge.PriceType),
			Quantity:  charge.Quantity,
			Total:     MoneyAmount{Amount: charge.Total.Amount, Currency: charge.Total.Currency},
		})
	}
	return QuoteResponse{
		Booking: QuoteStay{
			TotalDays: q.Stay.TotalDays,
			StartDate: q.Stay.Start,
			EndDate:   q.Stay.End,
		},
		Pricing: QuotePricing{
			DailyRates: QuoteDailyRates{
				Breakdown: daily,
				Subtotal:  MoneyAmount{Amount: q.DailyRates.Subtotal.Amount, Currency: q.DailyRates.Subtotal.Currency},
			},
			Extras: QuoteExtras{
				Breakdown: extras,
				Total:     MoneyAmount{Amount: q.Extras.Total.Amount, Currency: q.Extras.Total.Currency},
			},
			Fees: QuoteFees{
				CleaningFee: MoneyAmount{Amount: q.Fees.CleaningFee.Amount, Currency: q.Fees.CleaningFee.Currency},
				Deposit:     MoneyAmount{Amount: q.Fees.Deposit.Amount, Currency: q.Fees.Deposit.Currency},
			},
			Summary: QuoteSummary{
				RentalSubtotal: MoneyAmount{Amount: q.Summary.RentalSubtotal.Amount, Currency: q.Summary.RentalSubtotal.Currency},
				ExtrasTotal:    MoneyAmount{Amount: q.Summary.ExtrasTotal.Amount, Currency: q.Summary.ExtrasTotal.Currency},
				CleaningFee:    MoneyAmount{Amount: q.Summary.CleaningFee.Amount, Currency: q.Summary.CleaningFee.Currency},
				Total:          MoneyAmount{Amount: q.Summary.Total.Amount, Currency: q.Summary.Total.Currency},
				Deposit:        MoneyAmount{Amount: q.Summary.Deposit.Amount, Currency: q.Summary.Deposit.Currency},
				GrandTotal:     MoneyAmount{Amount: q.Summary.GrandTotal.Amount, Currency: q.Summary.GrandTotal.Currency},
			},
		},
	}
}

func NewAvailabilityResponse(a pricing.Availability) AvailabilityResponse {
	conflicts := make([]AvailabilityConflict, 0, len(a.Conflicts))
	for _, c := range a.Conflicts {
		conflicts = append(conflicts, AvailabilityConflict{
			Kind:      string(c.Kind),
			From:      c.From,
			To:        c.To,
			Reference: c.Reference,
		})
	}
	return AvailabilityResponse{Available: a.Available, Conflicts: conflicts}
}
