package model

import (
	"database/sql"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// FundraisingEvent is the parent entity: one cause-wide fundraising
// event mirrored from the remote source.
type FundraisingEvent struct {
	ID   uuid.UUID `db:"id"`
	Name string    `db:"name"`
	Slug string    `db:"slug"`

	AmountRaisedCurrency string          `db:"amount_raised_currency"`
	AmountRaisedValue    decimal.Decimal `db:"amount_raised_value"`
	GoalCurrency         string          `db:"goal_currency"`
	GoalValue            decimal.Decimal `db:"goal_value"`

	Colors      ColorList      `db:"colors"`
	Description sql.NullString `db:"description"`

	CausePublicID int64  `db:"cause_public_id"`
	CauseName     string `db:"cause_name"`
	CauseSlug     string `db:"cause_slug"`
}

// NullFundraisingEvent ...
type NullFundraisingEvent struct {
	Valid bool
	Event FundraisingEvent
}

// AmountRaised ...
func (e FundraisingEvent) AmountRaised() Money {
	return Money{Currency: e.AmountRaisedCurrency, Value: e.AmountRaisedValue}
}

// Goal ...
func (e FundraisingEvent) Goal() Money {
	return Money{Currency: e.GoalCurrency, Value: e.GoalValue}
}

// Equal reports whether two events hold the same field values.
// Identity is excluded: two rows with equal fields are "unchanged"
// for diffing purposes.
func (e FundraisingEvent) Equal(other FundraisingEvent) bool {
	return e.Name == other.Name &&
		e.Slug == other.Slug &&
		e.AmountRaisedCurrency == other.AmountRaisedCurrency &&
		e.AmountRaisedValue.Equal(other.AmountRaisedValue) &&
		e.GoalCurrency == other.GoalCurrency &&
		e.GoalValue.Equal(other.GoalValue) &&
		e.Colors.Equal(other.Colors) &&
		e.Description == other.Description &&
		e.CausePublicID == other.CausePublicID &&
		e.CauseName == other.CauseName &&
		e.CauseSlug == other.CauseSlug
}
