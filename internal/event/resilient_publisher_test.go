package event

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// failingBus fails the first failures publishes, then succeeds
type failingBus struct {
	mu       sync.Mutex
	failures int
	calls    int
}

func (b *failingBus) Publish(ctx context.Context, event Event) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.calls++
	if b.calls <= b.failures {
		return errors.New("bus unavailable")
	}
	return nil
}

func (b *failingBus) Subscribe(eventType Type, handler Handler) {}

func (b *failingBus) callCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.calls
}

func TestResilientPublisher_SuccessFirstTry(t *testing.T) {
	bus := &failingBus{failures: 0}
	pub := NewResilientPublisher(bus, ResilientConfig{MaxRetries: 3, RetryDelay: time.Millisecond})

	err := pub.Publish(context.Background(), Event{Version: "1.0", Type: "test"})

	require.NoError(t, err)
	assert.Equal(t, 1, bus.callCount())
}

func TestResilientPublisher_RetriesUntilSuccess(t *testing.T) {
	bus := &failingBus{failures: 2}
	pub := NewResilientPublisher(bus, ResilientConfig{MaxRetries: 5, RetryDelay: time.Millisecond})

	err := pub.Publish(context.Background(), Event{Version: "1.0", Type: "test"})
	require.NoError(t, err, "Publish should accept the event even when the first attempt fails")

	// Wait for the background retry loop to drain
	assert.Eventually(t, func() bool {
		return bus.callCount() == 3
	}, time.Second, 5*time.Millisecond, "expected initial attempt plus two retries")
}

func TestResilientPublisher_DeadLetterAfterExhaustion(t *testing.T) {
	deadLetterPath := filepath.Join(t.TempDir(), "dead_letter.jsonl")
	bus := &failingBus{failures: 100}
	pub := NewResilientPublisher(bus, ResilientConfig{
		MaxRetries:     2,
		RetryDelay:     time.Millisecond,
		DeadLetterPath: deadLetterPath,
	})

	err := pub.Publish(context.Background(), Event{Version: "1.0", Type: "doomed"})
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		_, statErr := os.Stat(deadLetterPath)
		return statErr == nil
	}, time.Second, 5*time.Millisecond, "dead letter file should appear")

	data, err := os.ReadFile(deadLetterPath)
	require.NoError(t, err)

	var entry struct {
		Timestamp time.Time `json:"timestamp"`
		Event     Event     `json:"event"`
	}
	require.NoError(t, json.Unmarshal(data, &entry))
	assert.Equal(t, Type("doomed"), entry.Event.Type)
	assert.False(t, entry.Timestamp.IsZero())
}
