package observer

import (
	"context"
	"database/sql"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/tiltwatch/tiltwatch/model"
	"github.com/tiltwatch/tiltwatch/pkg/integration"
	"github.com/tiltwatch/tiltwatch/reconcile"
	"github.com/tiltwatch/tiltwatch/repository"
	"go.uber.org/zap"
	"testing"
	"time"
)

type observerTest struct {
	tc       *integration.TestCase
	provider repository.Provider
	registry *Registry
	rec      *reconcile.Reconciler
}

func newObserverTest() *observerTest {
	tc := integration.NewTestCase()
	tc.Truncate("campaign")
	tc.Truncate("fundraising_event")

	provider := repository.NewProvider(tc.DB)
	events := repository.NewEvent()
	campaigns := repository.NewCampaign()

	registry := NewRegistry(provider, events, zap.NewNop())

	return &observerTest{
		tc:       tc,
		provider: provider,
		registry: registry,
		rec:      reconcile.NewReconciler(provider, events, campaigns, registry, zap.NewNop()),
	}
}

func newDecimal(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func newEvent() model.FundraisingEvent {
	return model.FundraisingEvent{
		ID:   uuid.MustParse("75c5cd60-1b7f-4b6b-9a60-0ad6ec081a01"),
		Name: "Relay FM for St. Jude 2024",
		Slug: "relay-fm-for-st-jude-2024",

		AmountRaisedCurrency: "USD",
		AmountRaisedValue:    newDecimal("250.00"),
		GoalCurrency:         "USD",
		GoalValue:            newDecimal("1000.00"),

		Colors:      model.ColorList{{R: 255, G: 0, B: 0}},
		Description: sql.NullString{Valid: true, String: "annual fundraiser"},

		CausePublicID: 4747,
		CauseName:     "St. Jude",
		CauseSlug:     "st-jude",
	}
}

func newCampaign(eventID uuid.UUID) model.Campaign {
	return model.Campaign{
		ID:   uuid.MustParse("9b8f6f50-3c40-4d32-8d9e-51d3a97c2b01"),
		Name: "Podcastathon",
		Slug: "podcastathon",

		GoalCurrency:        "USD",
		GoalValue:           newDecimal("500.00"),
		TotalRaisedCurrency: "USD",
		TotalRaisedValue:    newDecimal("120.50"),

		Username: "myke",
		UserSlug: "myke",

		FundraisingEventID: eventID,
	}
}

func waitEvent(t *testing.T, ch chan model.FundraisingEvent) model.FundraisingEvent {
	t.Helper()
	select {
	case event := <-ch:
		return event
	case <-time.After(2 * time.Second):
		t.Fatal("expected a notification, got none")
		return model.FundraisingEvent{}
	}
}

func expectNoEvent(t *testing.T, ch chan model.FundraisingEvent) {
	t.Helper()
	select {
	case event := <-ch:
		t.Fatal("unexpected notification:", event.Name)
	case <-time.After(300 * time.Millisecond):
	}
}

func TestRegistry_FiresExactlyOnChange(t *testing.T) {
	ot := newObserverTest()
	defer ot.registry.Close()

	event := newEvent()
	_, err := ot.rec.ReconcileEvent(context.Background(), event)
	assert.Equal(t, nil, err)

	ch := make(chan model.FundraisingEvent, 10)
	cancel := ot.registry.SubscribeEvent(event.Slug, event.CauseSlug,
		func(e model.FundraisingEvent) {
			ch <- e
		})
	defer cancel()

	// (a) unrelated campaign write: observer stays silent
	_, err = ot.rec.ReconcileCampaign(context.Background(), newCampaign(event.ID))
	assert.Equal(t, nil, err)
	expectNoEvent(t, ch)

	// (b) a real field change: notified exactly once with the new value
	next := newEvent()
	next.AmountRaisedValue = newDecimal("300.00")
	_, err = ot.rec.ReconcileEvent(context.Background(), next)
	assert.Equal(t, nil, err)

	got := waitEvent(t, ch)
	assert.Equal(t, true, got.AmountRaisedValue.Equal(newDecimal("300.00")))
	expectNoEvent(t, ch)
}

func TestRegistry_UnchangedReconcileDoesNotFire(t *testing.T) {
	ot := newObserverTest()
	defer ot.registry.Close()

	event := newEvent()
	_, err := ot.rec.ReconcileEvent(context.Background(), event)
	assert.Equal(t, nil, err)

	ch := make(chan model.FundraisingEvent, 10)
	cancel := ot.registry.SubscribeEvent(event.Slug, event.CauseSlug,
		func(e model.FundraisingEvent) {
			ch <- e
		})
	defer cancel()

	_, err = ot.rec.ReconcileEvent(context.Background(), newEvent())
	assert.Equal(t, nil, err)
	expectNoEvent(t, ch)
}

func TestRegistry_CancelIsIdempotent(t *testing.T) {
	ot := newObserverTest()

	event := newEvent()
	_, err := ot.rec.ReconcileEvent(context.Background(), event)
	assert.Equal(t, nil, err)

	ch := make(chan model.FundraisingEvent, 10)
	cancel := ot.registry.SubscribeEvent(event.Slug, event.CauseSlug,
		func(e model.FundraisingEvent) {
			ch <- e
		})

	cancel()
	cancel()

	next := newEvent()
	next.AmountRaisedValue = newDecimal("999.00")
	_, err = ot.rec.ReconcileEvent(context.Background(), next)
	assert.Equal(t, nil, err)
	expectNoEvent(t, ch)

	// cancel after teardown must also be safe
	ot.registry.Close()
	cancel()
}

func TestRegistry_SubscribeAfterClose(t *testing.T) {
	ot := newObserverTest()
	ot.registry.Close()

	cancel := ot.registry.SubscribeEvent("slug", "cause", func(model.FundraisingEvent) {})
	cancel()
}
