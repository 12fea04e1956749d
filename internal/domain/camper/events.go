package camper

import "time"

type CamperCreated struct {
	CamperID CamperID
	Owner    OwnerID
	At       time.Time
}

func (e CamperCreated) EventName() string     { return "camper.created" }
func (e CamperCreated) AggregateID() string   { return string(e.CamperID) }
func (e CamperCreated) OccurredAt() time.Time { return e.At }

type CamperPricingUpdated struct {
	CamperID CamperID
	At       time.Time
}

func (e CamperPricingUpdated) EventName() string     { return "camper.pricing_updated" }
func (e CamperPricingUpdated) AggregateID() string   { return string(e.CamperID) }
func (e CamperPricingUpdated) OccurredAt() time.Time { return e.At }
