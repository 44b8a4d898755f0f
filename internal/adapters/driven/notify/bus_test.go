package notify

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/custodia-labs/fragments-cli/internal/core/domain"
	"github.com/custodia-labs/fragments-cli/internal/logger"
)

func event(kind domain.ChangeKind, id string) domain.ChangeEvent {
	return domain.ChangeEvent{Kind: kind, Fragment: domain.Fragment{ID: id, Title: "Title " + id}}
}

func TestBus_DeliversInOrder(t *testing.T) {
	bus := NewBus()

	var got []string
	bus.Subscribe(func(e domain.ChangeEvent) { got = append(got, "a:"+e.Fragment.ID) })
	bus.Subscribe(func(e domain.ChangeEvent) { got = append(got, "b:"+e.Fragment.ID) })

	bus.Notify(event(domain.ChangeCreated, "f1"))

	assert.Equal(t, []string{"a:f1", "b:f1"}, got)
}

func TestBus_Unsubscribe(t *testing.T) {
	bus := NewBus()

	count := 0
	unsubscribe := bus.Subscribe(func(domain.ChangeEvent) { count++ })
	assert.Equal(t, 1, bus.Len())

	bus.Notify(event(domain.ChangeUpdated, "f1"))
	unsubscribe()
	unsubscribe()
	bus.Notify(event(domain.ChangeUpdated, "f1"))

	assert.Equal(t, 1, count)
	assert.Equal(t, 0, bus.Len())
}

func TestBus_PanickingHandlerIsIsolated(t *testing.T) {
	var buf bytes.Buffer
	logger.SetOutput(&buf)
	t.Cleanup(func() { logger.SetOutput(os.Stderr) })

	bus := NewBus()
	delivered := false
	bus.Subscribe(func(domain.ChangeEvent) { panic("boom") })
	bus.Subscribe(func(domain.ChangeEvent) { delivered = true })

	assert.NotPanics(t, func() { bus.Notify(event(domain.ChangeDeleted, "f2")) })
	assert.True(t, delivered)
	assert.Contains(t, buf.String(), "[ERROR] change handler panicked on deleted f2: boom")
}

func TestLogHandler(t *testing.T) {
	var buf bytes.Buffer
	logger.SetOutput(&buf)
	logger.SetVerbose(true)
	t.Cleanup(func() {
		logger.SetVerbose(false)
		logger.SetOutput(os.Stderr)
	})

	LogHandler(event(domain.ChangeCreated, "f9"))

	assert.Equal(t, "[INFO] Fragment created: Title f9 (f9)\n", buf.String())
}
