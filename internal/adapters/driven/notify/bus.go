// Package notify fans fragment change events out to observers such as the
// CLI printer, the TUI toast and the metrics collector.
package notify

import (
	"sync"

	"github.com/custodia-labs/fragments-cli/internal/core/domain"
	"github.com/custodia-labs/fragments-cli/internal/core/ports/driven"
	"github.com/custodia-labs/fragments-cli/internal/core/ports/driving"
	"github.com/custodia-labs/fragments-cli/internal/logger"
)

// Ensure Bus implements the interfaces.
var (
	_ driven.Notifier    = (*Bus)(nil)
	_ driving.ChangeFeed = (*Bus)(nil)
)

// Handler receives a change event. Handlers run synchronously on the
// goroutine that completed the mutation and must not block.
type Handler = func(domain.ChangeEvent)

type subscription struct {
	id      uint64
	handler Handler
}

// Bus is an in-memory, synchronous publish/subscribe hub for change events.
type Bus struct {
	mu     sync.RWMutex
	subs   []subscription
	nextID uint64
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{}
}

// Subscribe registers a handler and returns a function that removes it.
func (b *Bus) Subscribe(h Handler) (unsubscribe func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	id := b.nextID
	b.subs = append(b.subs, subscription{id: id, handler: h})

	var once sync.Once
	return func() {
		once.Do(func() { b.remove(id) })
	}
}

// Len returns the number of subscribed handlers.
func (b *Bus) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}

// Notify delivers the event to every handler in subscription order.
// A panicking handler is logged and does not stop the others.
func (b *Bus) Notify(event domain.ChangeEvent) {
	b.mu.RLock()
	subs := append([]subscription(nil), b.subs...)
	b.mu.RUnlock()

	for _, s := range subs {
		deliver(s.handler, event)
	}
}

func (b *Bus) remove(id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, s := range b.subs {
		if s.id == id {
			b.subs = append(b.subs[:i], b.subs[i+1:]...)
			return
		}
	}
}

func deliver(h Handler, event domain.ChangeEvent) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("change handler panicked on %s %s: %v", event.Kind, event.Fragment.ID, r)
		}
	}()
	h(event)
}

// LogHandler writes every event to the verbose log.
func LogHandler(event domain.ChangeEvent) {
	logger.Info("%s: %s (%s)", event.Title(), event.Fragment.Title, event.Fragment.ID)
}
