// Package reconcile merges freshly fetched entities into the local
// store using minimal-diff updates: only columns whose values actually
// changed are written.
package reconcile

import (
	"context"
	"github.com/tiltwatch/tiltwatch/model"
	"github.com/tiltwatch/tiltwatch/repository"
	"go.uber.org/zap"
)

// Outcome of a single reconciliation.
type Outcome int

const (
	// OutcomeCreated when no previous row existed and a full insert ran
	OutcomeCreated Outcome = 1

	// OutcomeUpdated when at least one column changed
	OutcomeUpdated Outcome = 2

	// OutcomeUnchanged when the stored value already matched, zero writes
	OutcomeUnchanged Outcome = 3
)

// String ...
func (o Outcome) String() string {
	switch o {
	case OutcomeCreated:
		return "created"
	case OutcomeUpdated:
		return "updated"
	case OutcomeUnchanged:
		return "unchanged"
	default:
		return "unknown"
	}
}

// Result ...
type Result struct {
	Outcome Outcome
	Changed []string
}

// CommitListener is poked after a transaction that wrote rows has
// committed. The observer registry implements it.
type CommitListener interface {
	WriteCommitted()
}

// Reconciler ...
type Reconciler struct {
	provider  repository.Provider
	events    repository.Event
	campaigns repository.Campaign
	listener  CommitListener
	logger    *zap.Logger
}

// NewReconciler ...
func NewReconciler(
	provider repository.Provider,
	events repository.Event,
	campaigns repository.Campaign,
	listener CommitListener,
	logger *zap.Logger,
) *Reconciler {
	return &Reconciler{
		provider:  provider,
		events:    events,
		campaigns: campaigns,
		listener:  listener,
		logger:    logger,
	}
}

// ReconcileEvent runs the whole compare-then-write sequence as one
// serialized writer operation, so two reconcilers can never diff
// against the same stale baseline.
func (r *Reconciler) ReconcileEvent(ctx context.Context, event model.FundraisingEvent) (Result, error) {
	var result Result
	err := r.provider.Transact(ctx, func(ctx context.Context) error {
		existing, err := r.events.FindByID(ctx, event.ID)
		if err != nil {
			return err
		}

		if !existing.Valid {
			if err := r.events.Save(ctx, event); err != nil {
				return err
			}
			result = Result{Outcome: OutcomeCreated}
			return nil
		}

		changes := DiffEvent(existing.Event, event)
		if len(changes) == 0 {
			result = Result{Outcome: OutcomeUnchanged}
			return nil
		}

		if err := r.events.UpdateColumns(ctx, event.ID, changes); err != nil {
			return err
		}
		result = Result{Outcome: OutcomeUpdated, Changed: columnNames(changes)}
		return nil
	})
	if err != nil {
		return Result{}, err
	}

	r.logResult("fundraising_event", event.ID.String(), result)
	if result.Outcome != OutcomeUnchanged {
		r.notifyCommitted()
	}
	return result, nil
}

// ReconcileCampaign is the campaign counterpart of ReconcileEvent
func (r *Reconciler) ReconcileCampaign(ctx context.Context, campaign model.Campaign) (Result, error) {
	var result Result
	err := r.provider.Transact(ctx, func(ctx context.Context) error {
		existing, err := r.campaigns.FindByID(ctx, campaign.ID)
		if err != nil {
			return err
		}

		if !existing.Valid {
			if err := r.campaigns.Save(ctx, campaign); err != nil {
				return err
			}
			result = Result{Outcome: OutcomeCreated}
			return nil
		}

		changes := DiffCampaign(existing.Campaign, campaign)
		if len(changes) == 0 {
			result = Result{Outcome: OutcomeUnchanged}
			return nil
		}

		if err := r.campaigns.UpdateColumns(ctx, campaign.ID, changes); err != nil {
			return err
		}
		result = Result{Outcome: OutcomeUpdated, Changed: columnNames(changes)}
		return nil
	})
	if err != nil {
		return Result{}, err
	}

	r.logResult("campaign", campaign.ID.String(), result)
	if result.Outcome != OutcomeUnchanged {
		r.notifyCommitted()
	}
	return result, nil
}

func (r *Reconciler) notifyCommitted() {
	if r.listener != nil {
		r.listener.WriteCommitted()
	}
}

func (r *Reconciler) logResult(entity string, id string, result Result) {
	r.logger.Debug("reconciled",
		zap.String("entity", entity),
		zap.String("id", id),
		zap.Stringer("outcome", result.Outcome),
		zap.Strings("changed", result.Changed),
	)
}

func columnNames(changes []repository.Change) []string {
	names := make([]string, 0, len(changes))
	for _, change := range changes {
		names = append(names, change.Column)
	}
	return names
}
