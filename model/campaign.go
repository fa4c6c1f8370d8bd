package model

import (
	"bytes"
	"database/sql"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Campaign is the child entity: a single fundraiser published under a
// FundraisingEvent.
type Campaign struct {
	ID   uuid.UUID `db:"id"`
	Name string    `db:"name"`
	Slug string    `db:"slug"`

	Avatar      sql.NullString `db:"avatar"`
	Status      sql.NullString `db:"status"`
	Description []byte         `db:"description"`

	GoalCurrency        string          `db:"goal_currency"`
	GoalValue           decimal.Decimal `db:"goal_value"`
	TotalRaisedCurrency string          `db:"total_raised_currency"`
	TotalRaisedValue    decimal.Decimal `db:"total_raised_value"`

	Username string `db:"username"`
	UserSlug string `db:"user_slug"`

	FundraisingEventID uuid.UUID `db:"fundraising_event_id"`
}

// NullCampaign ...
type NullCampaign struct {
	Valid    bool
	Campaign Campaign
}

// Goal ...
func (c Campaign) Goal() Money {
	return Money{Currency: c.GoalCurrency, Value: c.GoalValue}
}

// TotalRaised ...
func (c Campaign) TotalRaised() Money {
	return Money{Currency: c.TotalRaisedCurrency, Value: c.TotalRaisedValue}
}

// Equal reports whether two campaigns hold the same field values,
// identity excluded.
func (c Campaign) Equal(other Campaign) bool {
	return c.Name == other.Name &&
		c.Slug == other.Slug &&
		c.Avatar == other.Avatar &&
		c.Status == other.Status &&
		bytes.Equal(c.Description, other.Description) &&
		c.GoalCurrency == other.GoalCurrency &&
		c.GoalValue.Equal(other.GoalValue) &&
		c.TotalRaisedCurrency == other.TotalRaisedCurrency &&
		c.TotalRaisedValue.Equal(other.TotalRaisedValue) &&
		c.Username == other.Username &&
		c.UserSlug == other.UserSlug &&
		c.FundraisingEventID == other.FundraisingEventID
}
