package refresh

import (
	"database/sql"
	"fmt"
	"github.com/google/uuid"
	"github.com/tiltwatch/tiltwatch/model"
	"github.com/tiltwatch/tiltwatch/tiltify"
)

// mergeEvent folds the remote representation over the cached one.
// Remote wins for every field it supplies; identity is immutable once
// created, so an existing cached row keeps its id.
func mergeEvent(cached model.NullFundraisingEvent, data tiltify.EventData) (model.FundraisingEvent, error) {
	event := cached.Event
	if !cached.Valid {
		event.ID = data.ID
	}

	amountRaised, err := model.MoneyFromString(data.AmountRaised.Currency, data.AmountRaised.Value)
	if err != nil {
		return model.FundraisingEvent{}, fmt.Errorf("%w: parse amountRaised: %v", tiltify.ErrRemoteUnavailable, err)
	}
	goal, err := model.MoneyFromString(data.Goal.Currency, data.Goal.Value)
	if err != nil {
		return model.FundraisingEvent{}, fmt.Errorf("%w: parse goal: %v", tiltify.ErrRemoteUnavailable, err)
	}

	event.Name = data.Name
	event.Slug = data.Slug

	event.AmountRaisedCurrency = amountRaised.Currency
	event.AmountRaisedValue = amountRaised.Value
	event.GoalCurrency = goal.Currency
	event.GoalValue = goal.Value

	if data.Colors != nil {
		event.Colors = colorsFromWire(data.Colors)
	}
	if data.Description != nil {
		event.Description = sql.NullString{Valid: true, String: *data.Description}
	}

	event.CausePublicID = data.CausePublicID
	event.CauseName = data.CauseName
	event.CauseSlug = data.CauseSlug

	return event, nil
}

// mergeCampaign is the campaign counterpart of mergeEvent. eventID is
// the already-committed parent identity the campaign must reference.
func mergeCampaign(
	existing model.NullCampaign, data tiltify.CampaignData, eventID uuid.UUID,
) (model.Campaign, error) {
	campaign := existing.Campaign
	if !existing.Valid {
		campaign.ID = data.ID
	}

	goal, err := model.MoneyFromString(data.Goal.Currency, data.Goal.Value)
	if err != nil {
		return model.Campaign{}, fmt.Errorf("%w: parse goal: %v", tiltify.ErrRemoteUnavailable, err)
	}
	totalRaised, err := model.MoneyFromString(data.TotalRaised.Currency, data.TotalRaised.Value)
	if err != nil {
		return model.Campaign{}, fmt.Errorf("%w: parse totalAmountRaised: %v", tiltify.ErrRemoteUnavailable, err)
	}

	campaign.Name = data.Name
	campaign.Slug = data.Slug

	if data.Avatar != nil {
		campaign.Avatar = sql.NullString{Valid: true, String: *data.Avatar}
	}
	if data.Status != nil {
		campaign.Status = sql.NullString{Valid: true, String: *data.Status}
	}
	if data.Description != nil {
		campaign.Description = []byte(*data.Description)
	}

	campaign.GoalCurrency = goal.Currency
	campaign.GoalValue = goal.Value
	campaign.TotalRaisedCurrency = totalRaised.Currency
	campaign.TotalRaisedValue = totalRaised.Value

	campaign.Username = data.User.Username
	campaign.UserSlug = data.User.Slug

	campaign.FundraisingEventID = eventID

	return campaign, nil
}

func colorsFromWire(colors []tiltify.Color) model.ColorList {
	result := make(model.ColorList, 0, len(colors))
	for _, c := range colors {
		result = append(result, model.Color{R: c.R, G: c.G, B: c.B})
	}
	return result
}
