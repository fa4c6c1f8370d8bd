// Package refresh drives the end-to-end refresh flow: read the cache,
// fetch the current remote state, reconcile every returned entity and
// hand the merged view back to the presentation layer.
package refresh

import (
	"context"
	"errors"
	"fmt"
	"github.com/google/uuid"
	"github.com/tiltwatch/tiltwatch/config"
	"github.com/tiltwatch/tiltwatch/model"
	"github.com/tiltwatch/tiltwatch/reconcile"
	"github.com/tiltwatch/tiltwatch/repository"
	"github.com/tiltwatch/tiltwatch/tiltify"
	"go.uber.org/zap"
	"sync"
)

// ErrEventNotCached when a single-campaign refresh runs before the
// parent event was ever cached
var ErrEventNotCached = errors.New("refresh: fundraising event not cached yet")

// Result is the merged view returned to the caller. Campaigns that
// failed to persist still appear in Campaigns in their merged
// in-memory form; the write failures are recorded in PersistErrors so
// the caller can log them or schedule another pass.
type Result struct {
	Event         model.FundraisingEvent
	Campaigns     []model.Campaign
	PersistErrors []error
}

// Orchestrator ...
type Orchestrator struct {
	provider   repository.Provider
	events     repository.Event
	campaigns  repository.Campaign
	reconciler *reconcile.Reconciler
	client     tiltify.Client
	conf       config.TiltifyConfig
	logger     *zap.Logger
}

// NewOrchestrator ...
func NewOrchestrator(
	provider repository.Provider,
	events repository.Event,
	campaigns repository.Campaign,
	reconciler *reconcile.Reconciler,
	client tiltify.Client,
	conf config.TiltifyConfig,
	logger *zap.Logger,
) *Orchestrator {
	return &Orchestrator{
		provider:   provider,
		events:     events,
		campaigns:  campaigns,
		reconciler: reconciler,
		client:     client,
		conf:       conf,
		logger:     logger,
	}
}

// Refresh performs one full refresh pass. A remote failure aborts with
// the cache untouched; the error is returned for logging and the
// caller keeps serving cached values.
func (o *Orchestrator) Refresh(ctx context.Context) (Result, error) {
	result, err := o.refresh(ctx)
	if err != nil {
		refreshTotal.WithLabelValues("error").Inc()
		return Result{}, err
	}
	if len(result.PersistErrors) > 0 {
		refreshTotal.WithLabelValues("partial").Inc()
	} else {
		refreshTotal.WithLabelValues("ok").Inc()
	}
	return result, nil
}

func (o *Orchestrator) refresh(ctx context.Context) (Result, error) {
	readCtx := o.provider.Readonly(ctx)
	cached, err := o.events.FindBySlugs(readCtx, o.conf.EventSlug, o.conf.CauseSlug)
	if err != nil {
		return Result{}, err
	}

	resp, err := o.client.FetchCause(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("refresh: fetch cause: %w", err)
	}

	event, err := mergeEvent(cached, resp.Event)
	if err != nil {
		return Result{}, err
	}

	// the parent must be committed before any child insert that
	// references its identity
	eventResult, err := o.reconciler.ReconcileEvent(ctx, event)
	if err != nil {
		return Result{}, err
	}
	reconcileOutcomeTotal.WithLabelValues("fundraising_event", eventResult.Outcome.String()).Inc()

	campaigns, persistErrs := o.reconcileCampaigns(ctx, event.ID, resp.Campaigns)

	return Result{
		Event:         event,
		Campaigns:     campaigns,
		PersistErrors: persistErrs,
	}, nil
}

// reconcileCampaigns dispatches the per-campaign reconciliations
// concurrently: each targets a distinct identity and the writer role
// serializes the actual writes. One campaign failing never stops the
// others.
func (o *Orchestrator) reconcileCampaigns(
	ctx context.Context, eventID uuid.UUID, items []tiltify.CampaignData,
) ([]model.Campaign, []error) {
	merged := make([]model.NullCampaign, len(items))
	errs := make([]error, len(items))

	var wg sync.WaitGroup
	for i := range items {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			merged[i], errs[i] = o.reconcileCampaign(ctx, eventID, items[i])
		}(i)
	}
	wg.Wait()

	campaigns := make([]model.Campaign, 0, len(items))
	var persistErrs []error
	for i := range items {
		if merged[i].Valid {
			campaigns = append(campaigns, merged[i].Campaign)
		}
		if errs[i] != nil {
			o.logger.Warn("campaign reconciliation failed",
				zap.String("slug", items[i].Slug),
				zap.Error(errs[i]))
			persistErrs = append(persistErrs, errs[i])
		}
	}
	return campaigns, persistErrs
}

// reconcileCampaign returns the merged in-memory campaign even when
// the write failed, so the caller still sees fresh data. Only a merge
// failure (undecodable remote item) yields no campaign at all.
func (o *Orchestrator) reconcileCampaign(
	ctx context.Context, eventID uuid.UUID, item tiltify.CampaignData,
) (model.NullCampaign, error) {
	readCtx := o.provider.Readonly(ctx)
	existing, err := o.campaigns.FindByID(readCtx, item.ID)
	if err != nil {
		return model.NullCampaign{}, err
	}

	campaign, err := mergeCampaign(existing, item, eventID)
	if err != nil {
		return model.NullCampaign{}, err
	}

	result, err := o.reconciler.ReconcileCampaign(ctx, campaign)
	if err != nil {
		return model.NullCampaign{Valid: true, Campaign: campaign}, err
	}
	reconcileOutcomeTotal.WithLabelValues("campaign", result.Outcome.String()).Inc()

	return model.NullCampaign{Valid: true, Campaign: campaign}, nil
}

// RefreshCampaign is the narrower refresh path used by the
// presentation layer for a single campaign, bypassing the full cause
// fetch.
func (o *Orchestrator) RefreshCampaign(
	ctx context.Context, ownerSlug string, campaignSlug string,
) (model.Campaign, error) {
	item, err := o.client.FetchCampaign(ctx, ownerSlug, campaignSlug)
	if err != nil {
		return model.Campaign{}, fmt.Errorf("refresh: fetch campaign: %w", err)
	}

	readCtx := o.provider.Readonly(ctx)
	existing, err := o.campaigns.FindByID(readCtx, item.ID)
	if err != nil {
		return model.Campaign{}, err
	}

	eventID := existing.Campaign.FundraisingEventID
	if !existing.Valid {
		cached, err := o.events.FindBySlugs(readCtx, o.conf.EventSlug, o.conf.CauseSlug)
		if err != nil {
			return model.Campaign{}, err
		}
		if !cached.Valid {
			return model.Campaign{}, ErrEventNotCached
		}
		eventID = cached.Event.ID
	}

	campaign, err := mergeCampaign(existing, item, eventID)
	if err != nil {
		return model.Campaign{}, err
	}

	result, err := o.reconciler.ReconcileCampaign(ctx, campaign)
	if err != nil {
		// optimistic: the merged value is still fresh data
		o.logger.Warn("campaign reconciliation failed",
			zap.String("slug", campaignSlug),
			zap.Error(err))
		return campaign, nil
	}
	reconcileOutcomeTotal.WithLabelValues("campaign", result.Outcome.String()).Inc()

	return campaign, nil
}
