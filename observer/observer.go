// Package observer lets presentation layers react to store mutations
// without polling. Each subscription tracks one read query and its
// last-seen result; after a committed write the registry re-runs the
// tracked queries and pushes only the ones whose result value changed.
package observer

import (
	"context"
	"github.com/tiltwatch/tiltwatch/model"
	"github.com/tiltwatch/tiltwatch/repository"
	"go.uber.org/zap"
	"sync"
)

// Registry ...
type Registry struct {
	provider repository.Provider
	events   repository.Event
	logger   *zap.Logger

	mut    sync.Mutex
	subs   map[int64]*subscription
	nextID int64
	closed bool

	wakeCh chan struct{}
	stopCh chan struct{}
	doneCh chan struct{}
}

type subscription struct {
	slug      string
	causeSlug string

	// last is read and written only on the delivery goroutine
	last     model.NullFundraisingEvent
	callback func(model.FundraisingEvent)
}

// NewRegistry starts the delivery goroutine. Callbacks run serialized
// on that single goroutine, so subscribers never need their own
// locking and a slow subscriber never blocks a writer.
func NewRegistry(provider repository.Provider, events repository.Event, logger *zap.Logger) *Registry {
	r := &Registry{
		provider: provider,
		events:   events,
		logger:   logger,

		subs: map[int64]*subscription{},

		wakeCh: make(chan struct{}, 1),
		stopCh: make(chan struct{}),
		doneCh: make(chan struct{}),
	}
	go r.run()
	return r
}

// SubscribeEvent registers interest in the event matching the given
// key pair. The callback fires only when the query result actually
// changes value, never on unrelated writes. The returned cancel func
// is safe to call repeatedly and after Close.
func (r *Registry) SubscribeEvent(
	slug string, causeSlug string, callback func(model.FundraisingEvent),
) func() {
	// snapshot the current result as the baseline, so subscribing
	// against an unchanged store never fires
	ctx := r.provider.Readonly(context.Background())
	baseline, err := r.events.FindBySlugs(ctx, slug, causeSlug)
	if err != nil {
		r.logger.Error("observer baseline query failed", zap.Error(err))
	}

	r.mut.Lock()
	defer r.mut.Unlock()

	if r.closed {
		return func() {}
	}

	r.nextID++
	id := r.nextID
	r.subs[id] = &subscription{
		slug:      slug,
		causeSlug: causeSlug,
		last:      baseline,
		callback:  callback,
	}

	return func() {
		r.mut.Lock()
		delete(r.subs, id)
		r.mut.Unlock()
	}
}

// WriteCommitted wakes the delivery goroutine. Signals coalesce: many
// commits before the goroutine runs cause a single evaluation pass.
func (r *Registry) WriteCommitted() {
	select {
	case r.wakeCh <- struct{}{}:
	default:
	}
}

// Close stops delivery. An in-flight evaluation pass finishes first.
func (r *Registry) Close() {
	r.mut.Lock()
	if r.closed {
		r.mut.Unlock()
		return
	}
	r.closed = true
	r.mut.Unlock()

	close(r.stopCh)
	<-r.doneCh
}

func (r *Registry) run() {
	defer close(r.doneCh)
	for {
		select {
		case <-r.stopCh:
			return
		case <-r.wakeCh:
			r.deliver()
		}
	}
}

func (r *Registry) deliver() {
	ctx := r.provider.Readonly(context.Background())

	r.mut.Lock()
	ids := make([]int64, 0, len(r.subs))
	for id := range r.subs {
		ids = append(ids, id)
	}
	r.mut.Unlock()

	for _, id := range ids {
		r.mut.Lock()
		sub, ok := r.subs[id]
		r.mut.Unlock()
		if !ok {
			// cancelled while this pass was running
			continue
		}

		current, err := r.events.FindBySlugs(ctx, sub.slug, sub.causeSlug)
		if err != nil {
			r.logger.Error("observer query failed",
				zap.String("slug", sub.slug),
				zap.String("causeSlug", sub.causeSlug),
				zap.Error(err))
			continue
		}

		if !resultChanged(sub.last, current) {
			continue
		}
		sub.last = current

		if current.Valid {
			sub.callback(current.Event)
		}
	}
}

func resultChanged(prev model.NullFundraisingEvent, next model.NullFundraisingEvent) bool {
	if prev.Valid != next.Valid {
		return true
	}
	if !prev.Valid {
		return false
	}
	return !prev.Event.Equal(next.Event)
}
