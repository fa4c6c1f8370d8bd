package reconcile

import (
	"context"
	"github.com/stretchr/testify/assert"
	"github.com/tiltwatch/tiltwatch/model"
	"github.com/tiltwatch/tiltwatch/pkg/integration"
	"github.com/tiltwatch/tiltwatch/repository"
	"go.uber.org/zap"
	"testing"
)

type countingListener struct {
	count int
}

func (l *countingListener) WriteCommitted() {
	l.count++
}

type reconcilerTest struct {
	tc       *integration.TestCase
	provider repository.Provider
	events   repository.Event
	listener *countingListener
	rec      *Reconciler
}

func newReconcilerTest() *reconcilerTest {
	tc := integration.NewTestCase()
	tc.Truncate("campaign")
	tc.Truncate("fundraising_event")

	provider := repository.NewProvider(tc.DB)
	events := repository.NewEvent()
	campaigns := repository.NewCampaign()
	listener := &countingListener{}

	return &reconcilerTest{
		tc:       tc,
		provider: provider,
		events:   events,
		listener: listener,
		rec:      NewReconciler(provider, events, campaigns, listener, zap.NewNop()),
	}
}

func newContext() context.Context {
	return context.Background()
}

// stored decimals round-trip through TEXT, compare by value
func assertStoredEvent(t *testing.T, expected model.FundraisingEvent, stored model.NullFundraisingEvent) {
	t.Helper()
	assert.Equal(t, true, stored.Valid)
	assert.Equal(t, expected.ID, stored.Event.ID)
	assert.Equal(t, true, stored.Event.Equal(expected))
}

func TestReconcileEvent_Created(t *testing.T) {
	rt := newReconcilerTest()

	event := testEvent()
	result, err := rt.rec.ReconcileEvent(newContext(), event)
	assert.Equal(t, nil, err)
	assert.Equal(t, Result{Outcome: OutcomeCreated}, result)
	assert.Equal(t, 1, rt.listener.count)

	readCtx := rt.provider.Readonly(newContext())
	stored, err := rt.events.FindByID(readCtx, event.ID)
	assert.Equal(t, nil, err)
	assertStoredEvent(t, event, stored)
}

func TestReconcileEvent_Unchanged(t *testing.T) {
	rt := newReconcilerTest()

	event := testEvent()
	_, err := rt.rec.ReconcileEvent(newContext(), event)
	assert.Equal(t, nil, err)
	assert.Equal(t, 1, rt.listener.count)

	// same values again: zero writes, no notification
	result, err := rt.rec.ReconcileEvent(newContext(), testEvent())
	assert.Equal(t, nil, err)
	assert.Equal(t, Result{Outcome: OutcomeUnchanged}, result)
	assert.Equal(t, 1, rt.listener.count)
}

func TestReconcileEvent_Updated_MinimalDiff(t *testing.T) {
	rt := newReconcilerTest()

	event := testEvent()
	_, err := rt.rec.ReconcileEvent(newContext(), event)
	assert.Equal(t, nil, err)

	next := testEvent()
	next.AmountRaisedValue = newDecimal("300.00")

	result, err := rt.rec.ReconcileEvent(newContext(), next)
	assert.Equal(t, nil, err)
	assert.Equal(t, Result{
		Outcome: OutcomeUpdated,
		Changed: []string{"amount_raised_value"},
	}, result)
	assert.Equal(t, 2, rt.listener.count)

	// every untouched field survives byte-for-byte
	readCtx := rt.provider.Readonly(newContext())
	stored, err := rt.events.FindByID(readCtx, event.ID)
	assert.Equal(t, nil, err)
	assertStoredEvent(t, next, stored)
}

func TestReconcileCampaign(t *testing.T) {
	rt := newReconcilerTest()

	event := testEvent()
	_, err := rt.rec.ReconcileEvent(newContext(), event)
	assert.Equal(t, nil, err)

	campaign := testCampaign()
	result, err := rt.rec.ReconcileCampaign(newContext(), campaign)
	assert.Equal(t, nil, err)
	assert.Equal(t, Result{Outcome: OutcomeCreated}, result)

	// unchanged pass
	result, err = rt.rec.ReconcileCampaign(newContext(), testCampaign())
	assert.Equal(t, nil, err)
	assert.Equal(t, Result{Outcome: OutcomeUnchanged}, result)

	// minimal update
	next := testCampaign()
	next.TotalRaisedValue = newDecimal("220.75")

	result, err = rt.rec.ReconcileCampaign(newContext(), next)
	assert.Equal(t, nil, err)
	assert.Equal(t, Result{
		Outcome: OutcomeUpdated,
		Changed: []string{"total_raised_value"},
	}, result)
}
