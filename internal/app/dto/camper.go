package dto

import (
	"time"

	"camperhub/internal/domain/camper"
)

type RateWindowEntry struct {
	From          time.Time    `json:"from"`
	To            time.Time    `json:"to"`
	StandardPrice MoneyAmount  `json:"standardPrice"`
	Available     bool         `json:"available"`
	CleaningFee   *MoneyAmount `json:"cleaningFee,omitempty"`
	Deposit       *MoneyAmount `json:"deposit,omitempty"`
}

type ExtraEntry struct {
	Name      string      `json:"name"`
	Price     MoneyAmount `json:"price"`
	PriceType string      `json:"priceType"`
}

type CamperResponse struct {
	ID                string            `json:"id"`
	Owner             string            `json:"owner"`
	Name              string            `json:"name"`
	Description       string            `json:"description"`
	Status            string            `json:"status"`
	LicensePlate      string            `json:"licensePlate"`
	StandardPrice     MoneyAmount       `json:"standardPrice"`
	MinimumRentalDays int               `json:"minimumRentalDays"`
	CleaningFee       MoneyAmount       `json:"cleaningFee"`
	Deposit           MoneyAmount       `json:"deposit"`
	RateWindows       []RateWindowEntry `json:"rateWindows"`
	Extras            []ExtraEntry      `json:"extras"`
	Available         bool              `json:"available"`
	ThumbnailURL      string            `json:"thumbnailUrl"`
	Photos            []string          `json:"photos"`
	SleepingPlaces    int               `json:"sleepingPlaces"`
	CreatedAt         time.Time         `json:"createdAt"`
	UpdatedAt         time.Time         `json:"updatedAt"`
}

func NewCamperResponse(c *camper.Camper) CamperResponse {
	if c == nil {
		return CamperResponse{}
	}
	windows := make([]RateWindowEntry, 0, len(c.RateWindows))
	for _, w := range c.RateWindows {
		entry := RateWindowEntry{
			From:          w.From,
			To:            w.To,
			StandardPrice: MoneyAmount{Amount: w.StandardPrice.Amount, Currency: w.StandardPrice.Currency},
			Available:     w.Available,
		}
		if w.CleaningFee != nil {
			entry.CleaningFee = &MoneyAmount{Amount: w.CleaningFee.Amount, Currency: w.CleaningFee.Currency}
		}
		if w.Deposit != nil {
			entry.Deposit = &MoneyAmount{Amount: w.Deposit.Amount, Currency: w.Deposit.Currency}
		}
		windows = append(windows, entry)
	}
	extras := make([]ExtraEntry, 0, len(c.Extras))
	for _, extra := range c.Extras {
		extras = append(extras, ExtraEntry{
			Name:      extra.Name,
			Price:     MoneyAmount{Amount: extra.Price.Amount, Currency: extra.Price.Currency},
			PriceType: string(extra.PriceType),
		})
	}
	return CamperResponse{
		ID:                string(c.ID),
		Owner:             string(c.Owner),
		Name:              c.Name,
		Description:       c.Description,
		Status:            string(c.Status),
		LicensePlate:      c.LicensePlate,
		StandardPrice:     MoneyAmount{Amount: c.StandardPrice.Amount, Currency: c.StandardPrice.Currency},
		MinimumRentalDays: c.MinimumRentalDays,
		CleaningFee:       MoneyAmount{Amount: c.CleaningFee.Amount, Currency: c.CleaningFee.Currency},
		Deposit:           MoneyAmount{Amount: c.Deposit.Amount, Currency: c.Deposit.Currency},
		RateWindows:       windows,
		Extras:            extras,
		Available:         c.Available,
		ThumbnailURL:      c.ThumbnailURL,
		Photos:            append([]string(nil), c.Photos...),
		SleepingPlaces:    c.SleepingPlaces,
		CreatedAt:         c.CreatedAt,
		UpdatedAt:         c.UpdatedAt,
	}
}
