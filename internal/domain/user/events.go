package user

import "time"

type AccountStatusChanged struct {
	UserID ID
	Status AccountStatus
	At     time.Time
}

func (e AccountStatusChanged) EventName() string     { return "user.account_status_changed" }
func (e AccountStatusChanged) AggregateID() string   { return string(e.UserID) }
func (e AccountStatusChanged) OccurredAt() time.Time { return e.At }
