package camper

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"camperhub/internal/domain/shared/money"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func window(from, to time.Time) RateWindow {
	return RateWindow{From: from, To: to, StandardPrice: money.Must(8000, "EUR"), Available: true}
}

func TestValidateRateWindows(t *testing.T) {
	t.Run("empty set is valid", func(t *testing.T) {
		assert.NoError(t, ValidateRateWindows(nil))
	})

	t.Run("disjoint windows are valid", func(t *testing.T) {
		windows := []RateWindow{
			window(day(2026, 6, 1), day(2026, 6, 10)),
			window(day(2026, 6, 12), day(2026, 6, 20)),
			window(day(2026, 7, 1), day(2026, 7, 5)),
		}
		assert.NoError(t, ValidateRateWindows(windows))
	})

	t.Run("end before start", func(t *testing.T) {
		windows := []RateWindow{window(day(2026, 6, 10), day(2026, 6, 1))}
		var orderErr WindowOrderError
		require.ErrorAs(t, ValidateRateWindows(windows), &orderErr)
		assert.Equal(t, 0, orderErr.Index)
	})

	t.Run("end equal to start", func(t *testing.T) {
		windows := []RateWindow{window(day(2026, 6, 1), day(2026, 6, 1))}
		var orderErr WindowOrderError
		assert.ErrorAs(t, ValidateRateWindows(windows), &orderErr)
	})

	t.Run("overlapping pair is named", func(t *testing.T) {
		windows := []RateWindow{
			window(day(2026, 6, 1), day(2026, 6, 10)),
			window(day(2026, 7, 1), day(2026, 7, 10)),
			window(day(2026, 6, 8), day(2026, 6, 15)),
		}
		var overlapErr WindowOverlapError
		require.ErrorAs(t, ValidateRateWindows(windows), &overlapErr)
		assert.Equal(t, 0, overlapErr.First)
		assert.Equal(t, 2, overlapErr.Second)
	})

	t.Run("shared boundary day counts as overlap", func(t *testing.T) {
		// Inclusive-inclusive comparison: a window ending June 10 collides
		// with one starting June 10.
		windows := []RateWindow{
			window(day(2026, 6, 1), day(2026, 6, 10)),
			window(day(2026, 6, 10), day(2026, 6, 20)),
		}
		var overlapErr WindowOverlapError
		assert.ErrorAs(t, ValidateRateWindows(windows), &overlapErr)
	})

	t.Run("adjacent non-touching windows are valid", func(t *testing.T) {
		windows := []RateWindow{
			window(day(2026, 6, 1), day(2026, 6, 10)),
			window(day(2026, 6, 11), day(2026, 6, 20)),
		}
		assert.NoError(t, ValidateRateWindows(windows))
	})
}

func TestRateWindowCovers(t *testing.T) {
	w := window(day(2026, 6, 5), day(2026, 6, 10))

	assert.True(t, w.Covers(day(2026, 6, 5)), "start day is covered")
	assert.True(t, w.Covers(day(2026, 6, 10)), "end day is covered")
	assert.True(t, w.Covers(day(2026, 6, 7)))
	assert.False(t, w.Covers(day(2026, 6, 4)))
	assert.False(t, w.Covers(day(2026, 6, 11)))
}

func TestCamperPricingValidation(t *testing.T) {
	params := CreateParams{
		ID:                "cmp-1",
		Owner:             "own-1",
		Name:              "Hymer Free 540",
		StandardPrice:     money.Must(11000, "EUR"),
		MinimumRentalDays: 2,
		CleaningFee:       money.Must(4500, "EUR"),
		Deposit:           money.Must(60000, "EUR"),
	}

	t.Run("valid camper", func(t *testing.T) {
		c, err := New(params)
		require.NoError(t, err)
		assert.Equal(t, StatusActive, c.Status)
		assert.True(t, c.Available)
		require.Len(t, c.PendingEvents(), 1)
		assert.Equal(t, "camper.created", c.PendingEvents()[0].EventName())
	})

	t.Run("zero price rejected", func(t *testing.T) {
		p := params
		p.StandardPrice = money.Money{Currency: "EUR"}
		_, err := New(p)
		assert.ErrorIs(t, err, ErrNegativePrice)
	})

	t.Run("minimum rental days below one rejected", func(t *testing.T) {
		p := params
		p.MinimumRentalDays = 0
		_, err := New(p)
		assert.ErrorIs(t, err, ErrMinRentalDays)
	})

	t.Run("overlapping windows rejected on create", func(t *testing.T) {
		p := params
		p.RateWindows = []RateWindow{
			window(day(2026, 6, 1), day(2026, 6, 10)),
			window(day(2026, 6, 5), day(2026, 6, 15)),
		}
		_, err := New(p)
		var overlapErr WindowOverlapError
		assert.ErrorAs(t, err, &overlapErr)
	})

	t.Run("update pricing revalidates windows", func(t *testing.T) {
		c, err := New(params)
		require.NoError(t, err)
		update := UpdatePricingParams{
			StandardPrice:     money.Must(12000, "EUR"),
			MinimumRentalDays: 3,
			CleaningFee:       c.CleaningFee,
			Deposit:           c.Deposit,
			RateWindows: []RateWindow{
				window(day(2026, 8, 1), day(2026, 8, 10)),
				window(day(2026, 8, 10), day(2026, 8, 20)),
			},
			Now: time.Now(),
		}
		var overlapErr WindowOverlapError
		assert.ErrorAs(t, c.UpdatePricing(update), &overlapErr)
		// Aggregate untouched on rejection.
		assert.Equal(t, money.Must(11000, "EUR"), c.StandardPrice)
		assert.Empty(t, c.RateWindows)
	})
}
