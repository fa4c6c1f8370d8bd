package repository

import (
	"context"
	"errors"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/tiltwatch/tiltwatch/model"
	"github.com/tiltwatch/tiltwatch/pkg/integration"
	"testing"
)

type campaignTest struct {
	tc       *integration.TestCase
	provider Provider
	events   Event
}

func newCampaignTest() *campaignTest {
	tc := integration.NewTestCase()
	tc.Truncate("campaign")
	tc.Truncate("fundraising_event")
	return &campaignTest{
		tc:       tc,
		provider: NewProvider(tc.DB),
		events:   NewEvent(),
	}
}

func (ct *campaignTest) insertEvent(t *testing.T, event model.FundraisingEvent) {
	err := ct.provider.Transact(newContext(), func(ctx context.Context) error {
		return ct.events.Save(ctx, event)
	})
	assert.Equal(t, nil, err)
}

func assertStoredCampaign(t *testing.T, expected model.Campaign, stored model.NullCampaign) {
	t.Helper()
	assert.Equal(t, true, stored.Valid)
	assert.Equal(t, expected.ID, stored.Campaign.ID)
	assert.Equal(t, true, stored.Campaign.Equal(expected))
}

const campaignID01 = "9b8f6f50-3c40-4d32-8d9e-51d3a97c2b01"
const campaignID02 = "9b8f6f50-3c40-4d32-8d9e-51d3a97c2b02"

func newCampaign01(eventID uuid.UUID) model.Campaign {
	return model.Campaign{
		ID:   uuid.MustParse(campaignID01),
		Name: "Podcastathon",
		Slug: "podcastathon",

		Avatar:      newNullString("https://assets.example.com/avatar01.png"),
		Status:      newNullString("published"),
		Description: []byte("24 hours of podcasts"),

		GoalCurrency:        "USD",
		GoalValue:           newDecimal("500.00"),
		TotalRaisedCurrency: "USD",
		TotalRaisedValue:    newDecimal("120.50"),

		Username: "myke",
		UserSlug: "myke",

		FundraisingEventID: eventID,
	}
}

func TestCampaign(t *testing.T) {
	ct := newCampaignTest()
	repo := NewCampaign()

	event01 := newEvent01()
	ct.insertEvent(t, event01)

	readCtx := ct.provider.Readonly(newContext())

	// Get 1
	nullCampaign, err := repo.FindByID(readCtx, uuid.MustParse(campaignID01))
	assert.Equal(t, nil, err)
	assert.Equal(t, model.NullCampaign{}, nullCampaign)

	campaign01 := newCampaign01(event01.ID)

	// Insert
	err = ct.provider.Transact(newContext(), func(ctx context.Context) error {
		return repo.Save(ctx, campaign01)
	})
	assert.Equal(t, nil, err)

	// Get 2
	nullCampaign, err = repo.FindByID(readCtx, campaign01.ID)
	assert.Equal(t, nil, err)
	assertStoredCampaign(t, campaign01, nullCampaign)

	// Get by slugs
	nullCampaign, err = repo.FindBySlugs(readCtx, campaign01.Slug, campaign01.UserSlug)
	assert.Equal(t, nil, err)
	assertStoredCampaign(t, campaign01, nullCampaign)

	// List by event
	campaigns, err := repo.ListByEvent(readCtx, event01.ID)
	assert.Equal(t, nil, err)
	assert.Equal(t, 1, len(campaigns))
	assertStoredCampaign(t, campaign01, model.NullCampaign{Valid: true, Campaign: campaigns[0]})

	// Upsert
	campaign01.Name = "Podcastathon IX"
	campaign01.TotalRaisedValue = newDecimal("220.75")

	err = ct.provider.Transact(newContext(), func(ctx context.Context) error {
		return repo.Save(ctx, campaign01)
	})
	assert.Equal(t, nil, err)

	// Get 3
	nullCampaign, err = repo.FindByID(readCtx, campaign01.ID)
	assert.Equal(t, nil, err)
	assertStoredCampaign(t, campaign01, nullCampaign)
}

func TestCampaign_Save_MissingEvent(t *testing.T) {
	ct := newCampaignTest()
	repo := NewCampaign()

	// no fundraising_event row exists at all
	campaign01 := newCampaign01(uuid.MustParse(eventID02))

	err := ct.provider.Transact(newContext(), func(ctx context.Context) error {
		return repo.Save(ctx, campaign01)
	})
	assert.Equal(t, true, errors.Is(err, ErrConstraintViolation))
}

func TestCampaign_Save_UniqueSlugPair(t *testing.T) {
	ct := newCampaignTest()
	repo := NewCampaign()

	event01 := newEvent01()
	ct.insertEvent(t, event01)

	campaign01 := newCampaign01(event01.ID)

	err := ct.provider.Transact(newContext(), func(ctx context.Context) error {
		return repo.Save(ctx, campaign01)
	})
	assert.Equal(t, nil, err)

	// different identity, same (slug, user_slug) pair
	campaign02 := newCampaign01(event01.ID)
	campaign02.ID = uuid.MustParse(campaignID02)

	err = ct.provider.Transact(newContext(), func(ctx context.Context) error {
		return repo.Save(ctx, campaign02)
	})
	assert.Equal(t, true, errors.Is(err, ErrConstraintViolation))

	readCtx := ct.provider.Readonly(newContext())
	nullCampaign, err := repo.FindByID(readCtx, campaign01.ID)
	assert.Equal(t, nil, err)
	assertStoredCampaign(t, campaign01, nullCampaign)
}

func TestCampaign_UpdateColumns_NotFound(t *testing.T) {
	ct := newCampaignTest()
	repo := NewCampaign()

	err := ct.provider.Transact(newContext(), func(ctx context.Context) error {
		return repo.UpdateColumns(ctx, uuid.MustParse(campaignID02), []Change{
			{Column: "name", Value: "vanished"},
		})
	})
	assert.Equal(t, true, errors.Is(err, ErrNotFound))
}
