package tiltify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"github.com/google/uuid"
	"github.com/tiltwatch/tiltwatch/config"
	"net/http"
	"strings"
)

type clientImpl struct {
	conf   config.TiltifyConfig
	client *http.Client
}

// NewClient returns the HTTP implementation of Client, posting
// GraphQL-shaped queries against conf.BaseURL
func NewClient(conf config.TiltifyConfig) Client {
	return &clientImpl{
		conf: conf,
		client: &http.Client{
			Timeout: conf.Timeout(),
		},
	}
}

const causeQuery = `
query FundraisingEvent($causeSlug: String!, $eventSlug: String!) {
	fundraisingEvent(causeSlug: $causeSlug, slug: $eventSlug) {
		publicId name slug
		amountRaised { currency value }
		goal { currency value }
		colors { r g b }
		description
		cause { publicId name slug }
		publishedCampaigns {
			edges {
				node {
					publicId name slug
					avatar { src }
					status description
					originalGoal { currency value }
					totalAmountRaised { currency value }
					user { username slug }
				}
			}
		}
	}
}
`

const campaignQuery = `
query Campaign($userSlug: String!, $campaignSlug: String!) {
	campaign(userSlug: $userSlug, slug: $campaignSlug) {
		publicId name slug
		avatar { src }
		status description
		originalGoal { currency value }
		totalAmountRaised { currency value }
		user { username slug }
	}
}
`

type graphqlRequest struct {
	Query     string                 `json:"query"`
	Variables map[string]interface{} `json:"variables"`
}

type graphqlEnvelope struct {
	Data   json.RawMessage `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

type causePayload struct {
	PublicID int64  `json:"publicId"`
	Name     string `json:"name"`
	Slug     string `json:"slug"`
}

type avatarPayload struct {
	Src string `json:"src"`
}

type campaignNode struct {
	PublicID    uuid.UUID      `json:"publicId"`
	Name        string         `json:"name"`
	Slug        string         `json:"slug"`
	Avatar      *avatarPayload `json:"avatar"`
	Status      *string        `json:"status"`
	Description *string        `json:"description"`

	OriginalGoal      Money `json:"originalGoal"`
	TotalAmountRaised Money `json:"totalAmountRaised"`

	User UserData `json:"user"`
}

type eventPayload struct {
	PublicID     uuid.UUID `json:"publicId"`
	Name         string    `json:"name"`
	Slug         string    `json:"slug"`
	AmountRaised Money     `json:"amountRaised"`
	Goal         Money     `json:"goal"`
	Colors       []Color   `json:"colors"`
	Description  *string   `json:"description"`

	Cause causePayload `json:"cause"`

	PublishedCampaigns struct {
		Edges []struct {
			Node campaignNode `json:"node"`
		} `json:"edges"`
	} `json:"publishedCampaigns"`
}

// FetchCause ...
func (c *clientImpl) FetchCause(ctx context.Context) (CauseResponse, error) {
	variables := map[string]interface{}{
		"causeSlug": c.conf.CauseSlug,
		"eventSlug": c.conf.EventSlug,
	}

	var data struct {
		FundraisingEvent *eventPayload `json:"fundraisingEvent"`
	}
	if err := c.post(ctx, causeQuery, variables, &data); err != nil {
		return CauseResponse{}, err
	}
	if data.FundraisingEvent == nil {
		return CauseResponse{}, fmt.Errorf("%w: fundraising event missing from response", ErrRemoteUnavailable)
	}

	payload := data.FundraisingEvent
	resp := CauseResponse{
		Event: EventData{
			ID:           payload.PublicID,
			Name:         payload.Name,
			Slug:         payload.Slug,
			AmountRaised: payload.AmountRaised,
			Goal:         payload.Goal,
			Colors:       payload.Colors,
			Description:  payload.Description,

			CausePublicID: payload.Cause.PublicID,
			CauseName:     payload.Cause.Name,
			CauseSlug:     payload.Cause.Slug,
		},
	}
	for _, edge := range payload.PublishedCampaigns.Edges {
		resp.Campaigns = append(resp.Campaigns, campaignFromNode(edge.Node))
	}
	return resp, nil
}

// FetchCampaign ...
func (c *clientImpl) FetchCampaign(
	ctx context.Context, ownerSlug string, campaignSlug string,
) (CampaignData, error) {
	variables := map[string]interface{}{
		"userSlug":     ownerSlug,
		"campaignSlug": campaignSlug,
	}

	var data struct {
		Campaign *campaignNode `json:"campaign"`
	}
	if err := c.post(ctx, campaignQuery, variables, &data); err != nil {
		return CampaignData{}, err
	}
	if data.Campaign == nil {
		return CampaignData{}, fmt.Errorf("%w: campaign missing from response", ErrRemoteUnavailable)
	}
	return campaignFromNode(*data.Campaign), nil
}

func campaignFromNode(node campaignNode) CampaignData {
	result := CampaignData{
		ID:          node.PublicID,
		Name:        node.Name,
		Slug:        node.Slug,
		Status:      node.Status,
		Description: node.Description,

		Goal:        node.OriginalGoal,
		TotalRaised: node.TotalAmountRaised,

		User: node.User,
	}
	if node.Avatar != nil {
		result.Avatar = &node.Avatar.Src
	}
	return result
}

func (c *clientImpl) post(
	ctx context.Context, query string, variables map[string]interface{}, dest interface{},
) error {
	payload, err := json.Marshal(graphqlRequest{
		Query:     query,
		Variables: variables,
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRemoteUnavailable, err)
	}

	endpoint := strings.TrimSuffix(c.conf.BaseURL, "/") + "/api/graphql"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRemoteUnavailable, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRemoteUnavailable, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: unexpected status %d", ErrRemoteUnavailable, resp.StatusCode)
	}

	var envelope graphqlEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return fmt.Errorf("%w: decode: %v", ErrRemoteUnavailable, err)
	}
	if len(envelope.Errors) > 0 {
		return fmt.Errorf("%w: %s", ErrRemoteUnavailable, envelope.Errors[0].Message)
	}

	if err := json.Unmarshal(envelope.Data, dest); err != nil {
		return fmt.Errorf("%w: decode: %v", ErrRemoteUnavailable, err)
	}
	return nil
}
