package repository

import (
	"context"
	"database/sql"
	"errors"
	"github.com/google/uuid"
	"github.com/tiltwatch/tiltwatch/model"
)

// Campaign ...
type Campaign interface {
	Save(ctx context.Context, campaign model.Campaign) error
	FindByID(ctx context.Context, id uuid.UUID) (model.NullCampaign, error)
	FindBySlugs(ctx context.Context, slug string, userSlug string) (model.NullCampaign, error)
	ListByEvent(ctx context.Context, eventID uuid.UUID) ([]model.Campaign, error)
	UpdateColumns(ctx context.Context, id uuid.UUID, changes []Change) error
}

type campaignImpl struct {
}

// NewCampaign ...
func NewCampaign() Campaign {
	return &campaignImpl{}
}

const campaignColumns = `
id, name, slug,
	avatar, status, description,
	goal_currency, goal_value,
	total_raised_currency, total_raised_value,
	username, user_slug,
	fundraising_event_id
`

// Save inserts or replaces by primary key only, see Event.Save
func (c *campaignImpl) Save(ctx context.Context, campaign model.Campaign) error {
	query := `
INSERT INTO campaign (` + campaignColumns + `) VALUES (
	:id, :name, :slug,
	:avatar, :status, :description,
	:goal_currency, :goal_value,
	:total_raised_currency, :total_raised_value,
	:username, :user_slug,
	:fundraising_event_id
)
ON CONFLICT(id) DO UPDATE SET
	name = excluded.name,
	slug = excluded.slug,

	avatar = excluded.avatar,
	status = excluded.status,
	description = excluded.description,

	goal_currency = excluded.goal_currency,
	goal_value = excluded.goal_value,
	total_raised_currency = excluded.total_raised_currency,
	total_raised_value = excluded.total_raised_value,

	username = excluded.username,
	user_slug = excluded.user_slug,

	fundraising_event_id = excluded.fundraising_event_id
`
	_, err := GetTx(ctx).NamedExecContext(ctx, query, campaign)
	return wrapError(err)
}

// FindByID ...
func (c *campaignImpl) FindByID(ctx context.Context, id uuid.UUID) (model.NullCampaign, error) {
	query := `SELECT ` + campaignColumns + ` FROM campaign WHERE id = ?`

	var result model.Campaign
	err := GetReadonly(ctx).GetContext(ctx, &result, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return model.NullCampaign{}, nil
	}
	if err != nil {
		return model.NullCampaign{}, err
	}
	return model.NullCampaign{Valid: true, Campaign: result}, nil
}

// FindBySlugs looks up a campaign by its business-unique key pair
func (c *campaignImpl) FindBySlugs(
	ctx context.Context, slug string, userSlug string,
) (model.NullCampaign, error) {
	query := `SELECT ` + campaignColumns + ` FROM campaign WHERE slug = ? AND user_slug = ?`

	var result model.Campaign
	err := GetReadonly(ctx).GetContext(ctx, &result, query, slug, userSlug)
	if errors.Is(err, sql.ErrNoRows) {
		return model.NullCampaign{}, nil
	}
	if err != nil {
		return model.NullCampaign{}, err
	}
	return model.NullCampaign{Valid: true, Campaign: result}, nil
}

// ListByEvent returns all campaigns under the given event, no ordering
// guarantee
func (c *campaignImpl) ListByEvent(ctx context.Context, eventID uuid.UUID) ([]model.Campaign, error) {
	query := `SELECT ` + campaignColumns + ` FROM campaign WHERE fundraising_event_id = ?`

	var result []model.Campaign
	err := GetReadonly(ctx).SelectContext(ctx, &result, query, eventID)
	return result, err
}

// UpdateColumns ...
func (c *campaignImpl) UpdateColumns(ctx context.Context, id uuid.UUID, changes []Change) error {
	return updateColumns(ctx, "campaign", id, changes)
}
