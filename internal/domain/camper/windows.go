package camper

import (
	"fmt"
	"time"

	"camperhub/internal/domain/shared/money"
)

// RateWindow overrides the nightly rate for an inclusive date span [From, To].
// A window flagged unavailable blacks the span out instead of repricing it.
// CleaningFee and Deposit, when set, replace the camper-level fees for stays
// that fall entirely inside the window.
type RateWindow struct {
	From          time.Time
	To            time.Time
	StandardPrice money.Money
	Available     bool
	CleaningFee   *money.Money
	Deposit       *money.Money
}

// Covers reports whether the day falls inside the window. Both boundary days
// count: windows are inclusive on both ends, unlike booking ranges.
func (w RateWindow) Covers(day time.Time) bool {
	day = day.UTC()
	return !day.Before(w.From) && !day.After(w.To)
}

// Intersects applies the same inclusive-inclusive comparison to another span.
// Windows sharing a single boundary day are treated as overlapping; this is a
// deliberate conservative rule and must not be relaxed to half-open semantics.
func (w RateWindow) Intersects(from, to time.Time) bool {
	return !w.From.After(to) && !w.To.Before(from)
}

// WindowOrderError reports a window whose end does not follow its start.
type WindowOrderError struct {
	Index int
}

func (e WindowOrderError) Error() string {
	return fmt.Sprintf("camper: rate window %d: end date must be after start date", e.Index)
}

// WindowOverlapError names the offending pair of overlapping windows.
type WindowOverlapError struct {
	First  int
	Second int
}

func (e WindowOverlapError) Error() string {
	return fmt.Sprintf("camper: rate windows %d and %d overlap", e.First, e.Second)
}

// ValidateRateWindows checks every window is chronological and that the set is
// pairwise disjoint under the inclusive boundary rule. The slice is left
// untouched: invalid windows are reported, never dropped or reordered.
func ValidateRateWindows(windows []RateWindow) error {
	for i, w := range windows {
		if !w.To.After(w.From) {
			return WindowOrderError{Index: i}
		}
		for j := i + 1; j < len(windows); j++ {
			if w.Intersects(windows[j].From, windows[j].To) {
				return WindowOverlapError{First: i, Second: j}
			}
		}
	}
	return nil
}
