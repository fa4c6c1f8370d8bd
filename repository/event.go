package repository

import (
	"context"
	"database/sql"
	"errors"
	"github.com/google/uuid"
	"github.com/tiltwatch/tiltwatch/model"
)

// Event ...
type Event interface {
	Save(ctx context.Context, event model.FundraisingEvent) error
	FindByID(ctx context.Context, id uuid.UUID) (model.NullFundraisingEvent, error)
	FindBySlugs(ctx context.Context, slug string, causeSlug string) (model.NullFundraisingEvent, error)
	UpdateColumns(ctx context.Context, id uuid.UUID, changes []Change) error
}

type eventImpl struct {
}

// NewEvent ...
func NewEvent() Event {
	return &eventImpl{}
}

const eventColumns = `
id, name, slug,
	amount_raised_currency, amount_raised_value,
	goal_currency, goal_value,
	colors, description,
	cause_public_id, cause_name, cause_slug
`

// Save inserts or, when a row with the same id exists, replaces its
// columns. Conflicts on any other unique key still fail, so a colliding
// (slug, cause_slug) pair never destroys the existing row.
func (e *eventImpl) Save(ctx context.Context, event model.FundraisingEvent) error {
	query := `
INSERT INTO fundraising_event (` + eventColumns + `) VALUES (
	:id, :name, :slug,
	:amount_raised_currency, :amount_raised_value,
	:goal_currency, :goal_value,
	:colors, :description,
	:cause_public_id, :cause_name, :cause_slug
)
ON CONFLICT(id) DO UPDATE SET
	name = excluded.name,
	slug = excluded.slug,

	amount_raised_currency = excluded.amount_raised_currency,
	amount_raised_value = excluded.amount_raised_value,
	goal_currency = excluded.goal_currency,
	goal_value = excluded.goal_value,

	colors = excluded.colors,
	description = excluded.description,

	cause_public_id = excluded.cause_public_id,
	cause_name = excluded.cause_name,
	cause_slug = excluded.cause_slug
`
	_, err := GetTx(ctx).NamedExecContext(ctx, query, event)
	return wrapError(err)
}

// FindByID ...
func (e *eventImpl) FindByID(ctx context.Context, id uuid.UUID) (model.NullFundraisingEvent, error) {
	query := `SELECT ` + eventColumns + ` FROM fundraising_event WHERE id = ?`

	var result model.FundraisingEvent
	err := GetReadonly(ctx).GetContext(ctx, &result, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return model.NullFundraisingEvent{}, nil
	}
	if err != nil {
		return model.NullFundraisingEvent{}, err
	}
	return model.NullFundraisingEvent{Valid: true, Event: result}, nil
}

// FindBySlugs looks up an event by its business-unique key pair
func (e *eventImpl) FindBySlugs(
	ctx context.Context, slug string, causeSlug string,
) (model.NullFundraisingEvent, error) {
	query := `SELECT ` + eventColumns + ` FROM fundraising_event WHERE slug = ? AND cause_slug = ?`

	var result model.FundraisingEvent
	err := GetReadonly(ctx).GetContext(ctx, &result, query, slug, causeSlug)
	if errors.Is(err, sql.ErrNoRows) {
		return model.NullFundraisingEvent{}, nil
	}
	if err != nil {
		return model.NullFundraisingEvent{}, err
	}
	return model.NullFundraisingEvent{Valid: true, Event: result}, nil
}

// UpdateColumns ...
func (e *eventImpl) UpdateColumns(ctx context.Context, id uuid.UUID, changes []Change) error {
	return updateColumns(ctx, "fundraising_event", id, changes)
}
