package daterange

import (
	"errors"
	"time"
)

var ErrInvalidRange = errors.New("daterange: end must be after start")

// DateRange represents a half-open rental interval [From, To).
// The return day is not part of the stay.
type DateRange struct {
	From time.Time
	To   time.Time
}

func New(from, to time.Time) (DateRange, error) {
	dr := DateRange{From: from.UTC(), To: to.UTC()}
	if err := dr.Validate(); err != nil {
		return DateRange{}, err
	}
	return dr, nil
}

func (dr DateRange) Validate() error {
	if dr.From.IsZero() || dr.To.IsZero() {
		return ErrInvalidRange
	}
	if !dr.To.After(dr.From) {
		return ErrInvalidRange
	}
	return nil
}

// Days returns the whole-day length of the range, rounding partial days up.
func (dr DateRange) Days() int {
	hours := dr.To.Sub(dr.From).Hours()
	days := int(hours / 24)
	if float64(days)*24 < hours {
		days++
	}
	return days
}

func (dr DateRange) Overlaps(other DateRange) bool {
	return dr.From.Before(other.To) && other.From.Before(dr.To)
}

func (dr DateRange) Contains(other DateRange) bool {
	return !dr.From.After(other.From) && !dr.To.Before(other.To)
}

func (dr DateRange) ContainsDate(t time.Time) bool {
	t = t.UTC()
	return !t.Before(dr.From) && t.Before(dr.To)
}
