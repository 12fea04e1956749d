package pricing

import (
	"errors"
	"fmt"
)

var ErrInvalidRange = errors.New("pricing: end date must be after start date")

// MinStayError rejects ranges shorter than the camper's minimum rental period.
type MinStayError struct {
	RequiredDays int
}

func (e *MinStayError) Error() string {
	return fmt.Sprintf("pricing: minimum rental period is %d days", e.RequiredDays)
}

// ConflictError carries every reservation or blackout window the requested
// range collided with. No partial quote accompanies it.
type ConflictError struct {
	Conflicts []Conflict
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("pricing: requested dates conflict with %d existing block(s)", len(e.Conflicts))
}

// ExtraSelectionError is returned instead of a silent skip when the engine
// runs with StrictExtras enabled.
type ExtraSelectionError struct {
	Index  int
	Reason string
}

func (e *ExtraSelectionError) Error() string {
	return fmt.Sprintf("pricing: extras selection entry %d invalid: %s", e.Index, e.Reason)
}
