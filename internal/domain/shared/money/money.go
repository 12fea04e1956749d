package money

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidCurrency  = errors.New("money: invalid currency code")
	ErrCurrencyMismatch = errors.New("money: currency mismatch")
)

// Money is an amount in integer minor units (cents) paired with an ISO 4217
// currency code. Arithmetic never crosses currencies; Add and Sub fail on a
// mismatch instead of guessing a conversion.
type Money struct {
	Amount   int64
	Currency string
}

// New validates the currency code and uppercases it. Amounts may be negative;
// whether that is meaningful is the caller's concern.
func New(amount int64, currency string) (Money, error) {
	if len(currency) != 3 {
		return Money{}, ErrInvalidCurrency
	}
	return Money{Amount: amount, Currency: strings.ToUpper(currency)}, nil
}

// Must is New for fixtures and tests; it panics on an invalid currency.
func Must(amount int64, currency string) Money {
	m, err := New(amount, currency)
	if err != nil {
		panic(err)
	}
	return m
}

func (m Money) Add(other Money) (Money, error) {
	if err := m.sameCurrency(other); err != nil {
		return Money{}, err
	}
	return Money{Amount: m.Amount + other.Amount, Currency: m.Currency}, nil
}

func (m Money) Sub(other Money) (Money, error) {
	if err := m.sameCurrency(other); err != nil {
		return Money{}, err
	}
	return Money{Amount: m.Amount - other.Amount, Currency: m.Currency}, nil
}

// Multiply scales the amount, e.g. a nightly rate times a number of nights.
func (m Money) Multiply(times int64) Money {
	return Money{Amount: m.Amount * times, Currency: m.Currency}
}

func (m Money) IsZero() bool {
	return m.Amount == 0
}

// IsPositive reports whether the amount is strictly above zero.
func (m Money) IsPositive() bool {
	return m.Amount > 0
}

// String renders the amount with two decimal places, e.g. "120.50 EUR".
func (m Money) String() string {
	units, cents := m.Amount/100, m.Amount%100
	if cents < 0 {
		cents = -cents
	}
	return fmt.Sprintf("%d.%02d %s", units, cents, m.Currency)
}

func (m Money) sameCurrency(other Money) error {
	if m.Currency == "" || other.Currency == "" {
		return ErrInvalidCurrency
	}
	if m.Currency != other.Currency {
		return ErrCurrencyMismatch
	}
	return nil
}
