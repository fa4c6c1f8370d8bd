// Package tiltify is the boundary to the remote fundraising API. The
// cache never pushes anything upstream: every call here is a read, and
// any failure means "remote unavailable, keep serving the cache".
package tiltify

import (
	"context"
	"errors"
	"github.com/google/uuid"
)

//go:generate moq -out client_mocks.go . Client

// ErrRemoteUnavailable wraps every transport or decode failure
var ErrRemoteUnavailable = errors.New("tiltify: remote unavailable")

// Money is an exact amount as it appears on the wire: currency code
// plus a decimal string, never a float.
type Money struct {
	Currency string `json:"currency"`
	Value    string `json:"value"`
}

// Color ...
type Color struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// UserData ...
type UserData struct {
	Username string `json:"username"`
	Slug     string `json:"slug"`
}

// EventData holds the remote attributes of the tracked fundraising
// event, denormalized with its parent cause.
type EventData struct {
	ID           uuid.UUID `json:"publicId"`
	Name         string    `json:"name"`
	Slug         string    `json:"slug"`
	AmountRaised Money     `json:"amountRaised"`
	Goal         Money     `json:"goal"`
	Colors       []Color   `json:"colors"`
	Description  *string   `json:"description"`

	CausePublicID int64  `json:"causePublicId"`
	CauseName     string `json:"causeName"`
	CauseSlug     string `json:"causeSlug"`
}

// CampaignData holds the remote attributes of one published campaign.
// Nil pointers mean the remote did not supply the field.
type CampaignData struct {
	ID          uuid.UUID `json:"publicId"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Avatar      *string   `json:"avatar"`
	Status      *string   `json:"status"`
	Description *string   `json:"description"`

	Goal        Money `json:"originalGoal"`
	TotalRaised Money `json:"totalAmountRaised"`

	User UserData `json:"user"`
}

// CauseResponse ...
type CauseResponse struct {
	Event     EventData
	Campaigns []CampaignData
}

// Client fetches the current remote representation of the tracked
// cause. Implementations must wrap failures in ErrRemoteUnavailable.
type Client interface {
	FetchCause(ctx context.Context) (CauseResponse, error)
	FetchCampaign(ctx context.Context, ownerSlug string, campaignSlug string) (CampaignData, error)
}
