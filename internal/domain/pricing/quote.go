package pricing

import (
	"time"

	"camperhub/internal/domain/camper"
	"camperhub/internal/domain/shared/money"
)

// Reservation is an immutable snapshot of a confirmed booking, taken by the
// caller at quote time. The engine never reads storage itself.
type Reservation struct {
	ID   string
	From time.Time
	To   time.Time
}

type ConflictKind string

const (
	ConflictReservation ConflictKind = "reservation"
	ConflictBlackout    ConflictKind = "blackout"
)

type Conflict struct {
	Kind      ConflictKind
	From      time.Time
	To        time.Time
	Reference string
}

type Availability struct {
	Available bool
	Conflicts []Conflict
}

// ExtraSelection is one requested add-on. Price is a pointer so the engine
// can tell "omitted by the client" apart from an explicit zero.
type ExtraSelection struct {
	Name      string
	Price     *money.Money
	PriceType string
}

type ExtraCharge struct {
	Name      string
	Price     money.Money
	PriceType camper.PriceType
	Quantity  int
	Total     money.Money
}

type DailyRate struct {
	Date          time.Time
	Price         money.Money
	IsSpecialRate bool
}

type Stay struct {
	TotalDays int
	Start     time.Time
	End       time.Time
}

type DailyRates struct {
	Breakdown []DailyRate
	Subtotal  money.Money
}

type ExtrasBreakdown struct {
	Breakdown []ExtraCharge
	Total     money.Money
}

type Fees struct {
	CleaningFee money.Money
	Deposit     money.Money
}

type Summary struct {
	RentalSubtotal money.Money
	ExtrasTotal    money.Money
	CleaningFee    money.Money
	Total          money.Money
	Deposit        money.Money
	GrandTotal     money.Money
}

// Quote is the full price breakdown for a proposed rental. It is ephemeral:
// computed per request, owned by the caller, never persisted here.
type Quote struct {
	Stay       Stay
	DailyRates DailyRates
	Extras     ExtrasBreakdown
	Fees       Fees
	Summary    Summary
}
