package client

import (
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/c360/networkhd/protocol"
)

// NotificationHandler receives parsed unsolicited events for one category.
// Handlers run on the dispatcher goroutine and must not block; hand off to
// a channel or goroutine for slow work.
type NotificationHandler func(protocol.Notification)

// Subscription is the capability token returned by Subscribe. Only the
// holder of the token can cancel the registration; there is no lookup by
// category or handler identity.
type Subscription struct {
	id       uuid.UUID
	category string
}

// Category returns the notification category the subscription covers.
func (s Subscription) Category() string { return s.category }

type subscriber struct {
	id      uuid.UUID
	handler NotificationHandler
}

// router fans parsed notifications out to registered handlers. Handlers for
// a category are invoked in registration order.
type router struct {
	mu     sync.RWMutex
	subs   map[string][]subscriber
	logger *slog.Logger
}

func newRouter(logger *slog.Logger) *router {
	return &router{
		subs:   make(map[string][]subscriber),
		logger: logger,
	}
}

// register adds a handler for a category and returns its cancellation token.
func (r *router) register(category string, handler NotificationHandler) Subscription {
	sub := Subscription{id: uuid.New(), category: category}
	r.mu.Lock()
	r.subs[category] = append(r.subs[category], subscriber{id: sub.id, handler: handler})
	r.mu.Unlock()
	return sub
}

// unregister removes the handler identified by the token. A stale or
// duplicate cancellation is logged, not fatal.
func (r *router) unregister(sub Subscription) {
	r.mu.Lock()
	defer r.mu.Unlock()
	list := r.subs[sub.category]
	for i, s := range list {
		if s.id == sub.id {
			r.subs[sub.category] = append(list[:i], list[i+1:]...)
			return
		}
	}
	r.logger.Warn("cancelling unknown notification subscription",
		"category", sub.category,
		"id", sub.id.String())
}

// dispatch parses a notification line and invokes every handler registered
// for its category. The subscriber list is snapshotted before iteration so
// handlers may subscribe or unsubscribe without deadlocking, and each
// handler runs under panic isolation so one bad callback cannot kill the
// dispatcher.
func (r *router) dispatch(line string) (string, error) {
	event, err := protocol.ParseNotification(line)
	if err != nil {
		return "", err
	}
	category := event.Category()

	r.mu.RLock()
	snapshot := make([]subscriber, len(r.subs[category]))
	copy(snapshot, r.subs[category])
	r.mu.RUnlock()

	for _, s := range snapshot {
		r.invoke(s, event)
	}
	return category, nil
}

func (r *router) invoke(s subscriber, event protocol.Notification) {
	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Error("notification handler panicked",
				"category", event.Category(),
				"id", s.id.String(),
				"panic", rec)
		}
	}()
	s.handler(event)
}
