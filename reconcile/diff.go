package reconcile

import (
	"bytes"
	"github.com/tiltwatch/tiltwatch/model"
	"github.com/tiltwatch/tiltwatch/repository"
)

// DiffEvent compares every persisted column pairwise and returns the
// changes next introduces over prev. Identity never participates.
//
// The column set here must stay total over the table schema: a column
// missing from this function silently masks remote updates, and a
// comparison done on formatting instead of value (decimals in
// particular) would report a change on every pass.
func DiffEvent(prev model.FundraisingEvent, next model.FundraisingEvent) []repository.Change {
	var changes []repository.Change

	if next.Name != prev.Name {
		changes = append(changes, repository.Change{Column: "name", Value: next.Name})
	}
	if next.Slug != prev.Slug {
		changes = append(changes, repository.Change{Column: "slug", Value: next.Slug})
	}

	if next.AmountRaisedCurrency != prev.AmountRaisedCurrency {
		changes = append(changes, repository.Change{Column: "amount_raised_currency", Value: next.AmountRaisedCurrency})
	}
	if !next.AmountRaisedValue.Equal(prev.AmountRaisedValue) {
		changes = append(changes, repository.Change{Column: "amount_raised_value", Value: next.AmountRaisedValue})
	}
	if next.GoalCurrency != prev.GoalCurrency {
		changes = append(changes, repository.Change{Column: "goal_currency", Value: next.GoalCurrency})
	}
	if !next.GoalValue.Equal(prev.GoalValue) {
		changes = append(changes, repository.Change{Column: "goal_value", Value: next.GoalValue})
	}

	if !next.Colors.Equal(prev.Colors) {
		changes = append(changes, repository.Change{Column: "colors", Value: next.Colors})
	}
	if next.Description != prev.Description {
		changes = append(changes, repository.Change{Column: "description", Value: next.Description})
	}

	if next.CausePublicID != prev.CausePublicID {
		changes = append(changes, repository.Change{Column: "cause_public_id", Value: next.CausePublicID})
	}
	if next.CauseName != prev.CauseName {
		changes = append(changes, repository.Change{Column: "cause_name", Value: next.CauseName})
	}
	if next.CauseSlug != prev.CauseSlug {
		changes = append(changes, repository.Change{Column: "cause_slug", Value: next.CauseSlug})
	}

	return changes
}

// DiffCampaign is the campaign counterpart of DiffEvent
func DiffCampaign(prev model.Campaign, next model.Campaign) []repository.Change {
	var changes []repository.Change

	if next.Name != prev.Name {
		changes = append(changes, repository.Change{Column: "name", Value: next.Name})
	}
	if next.Slug != prev.Slug {
		changes = append(changes, repository.Change{Column: "slug", Value: next.Slug})
	}

	if next.Avatar != prev.Avatar {
		changes = append(changes, repository.Change{Column: "avatar", Value: next.Avatar})
	}
	if next.Status != prev.Status {
		changes = append(changes, repository.Change{Column: "status", Value: next.Status})
	}
	if !bytes.Equal(next.Description, prev.Description) {
		changes = append(changes, repository.Change{Column: "description", Value: next.Description})
	}

	if next.GoalCurrency != prev.GoalCurrency {
		changes = append(changes, repository.Change{Column: "goal_currency", Value: next.GoalCurrency})
	}
	if !next.GoalValue.Equal(prev.GoalValue) {
		changes = append(changes, repository.Change{Column: "goal_value", Value: next.GoalValue})
	}
	if next.TotalRaisedCurrency != prev.TotalRaisedCurrency {
		changes = append(changes, repository.Change{Column: "total_raised_currency", Value: next.TotalRaisedCurrency})
	}
	if !next.TotalRaisedValue.Equal(prev.TotalRaisedValue) {
		changes = append(changes, repository.Change{Column: "total_raised_value", Value: next.TotalRaisedValue})
	}

	if next.Username != prev.Username {
		changes = append(changes, repository.Change{Column: "username", Value: next.Username})
	}
	if next.UserSlug != prev.UserSlug {
		changes = append(changes, repository.Change{Column: "user_slug", Value: next.UserSlug})
	}

	if next.FundraisingEventID != prev.FundraisingEventID {
		changes = append(changes, repository.Change{Column: "fundraising_event_id", Value: next.FundraisingEventID})
	}

	return changes
}
