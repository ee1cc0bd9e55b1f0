package feed

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/softpaws/bazaar/internal/domain"
	"github.com/softpaws/bazaar/internal/event"
	"github.com/softpaws/bazaar/internal/logger"
)

// Broadcaster is the SSE-facing side of the feed
type Broadcaster interface {
	Broadcast(eventType string, payload interface{})
}

// RedisPublisher is the subset of the redis client the feed uses. Nil-able:
// single-process deployments run without Redis fanout.
type RedisPublisher interface {
	Publish(ctx context.Context, channel string, message interface{}) *redis.IntCmd
}

// Config controls coalescing and the optional cross-process fanout channel.
type Config struct {
	// DebounceWindow folds bursts of mutations into one signal. Zero means
	// every mutation emits immediately.
	DebounceWindow time.Duration
	// RedisChannel is the pub/sub channel for cross-process fanout. Empty
	// disables Redis publishing.
	RedisChannel string
}

// DefaultConfig returns the production feed configuration
func DefaultConfig() Config {
	return Config{
		DebounceWindow: DefaultDebounceWindow,
		RedisChannel:   DefaultRedisChannel,
	}
}

// Feed turns every exchange mutation into a coarse, payload-free
// listings-changed signal. Subscribers treat it as an invalidation trigger
// and refetch; the feed never says what changed. Delivery is at-least-once
// and bursts are coalesced into a single signal per debounce window.
type Feed struct {
	bus          event.Bus
	hub          Broadcaster
	redis        RedisPublisher
	cfg          Config
	invalidators []func()

	trigger  chan struct{}
	shutdown chan struct{}
	wg       sync.WaitGroup
}

// New creates a change feed. hub and redisClient may be nil; invalidators
// run before any broadcast so a refetching client never sees a stale cache.
func New(bus event.Bus, hub Broadcaster, redisClient RedisPublisher, cfg Config, invalidators ...func()) *Feed {
	return &Feed{
		bus:          bus,
		hub:          hub,
		redis:        redisClient,
		cfg:          cfg,
		invalidators: invalidators,
		trigger:      make(chan struct{}, 1),
		shutdown:     make(chan struct{}),
	}
}

// Subscribe registers the feed against every exchange event type
func (f *Feed) Subscribe() {
	for _, t := range event.ExchangeTypes {
		f.bus.Subscribe(t, f.handle)
	}
	logger.Info(LogMsgSubscribed, "types", len(event.ExchangeTypes))
}

// Start launches the coalescing loop
func (f *Feed) Start() {
	f.wg.Add(1)
	go f.run()
}

// Stop shuts the coalescing loop down. A signal pending inside the debounce
// window is emitted before Stop returns.
func (f *Feed) Stop() {
	close(f.shutdown)
	f.wg.Wait()
}

// handle is the bus handler for every exchange event. It only arms the
// trigger; the single-slot buffer is the first stage of coalescing.
func (f *Feed) handle(_ context.Context, _ event.Event) error {
	select {
	case f.trigger <- struct{}{}:
	default:
		// A trigger is already pending; this mutation rides along with it
	}
	return nil
}

func (f *Feed) run() {
	defer f.wg.Done()

	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case <-f.trigger:
			if f.cfg.DebounceWindow <= 0 {
				f.emit()
				continue
			}
			if timer == nil {
				timer = time.NewTimer(f.cfg.DebounceWindow)
				fire = timer.C
			}
			// An armed timer keeps running; triggers inside the window
			// coalesce into the pending emit

		case <-fire:
			timer = nil
			fire = nil
			f.emit()

		case <-f.shutdown:
			pending := timer != nil
			if timer != nil {
				timer.Stop()
			}
			select {
			case <-f.trigger:
				pending = true
			default:
			}
			if pending {
				f.emit()
			}
			return
		}
	}
}

// emit pushes one listings-changed signal to every sink
func (f *Feed) emit() {
	ctx := context.Background()

	for _, invalidate := range f.invalidators {
		invalidate()
	}

	if f.hub != nil {
		f.hub.Broadcast(domain.EventTypeListingsChanged, nil)
	}

	if f.redis != nil && f.cfg.RedisChannel != "" {
		if err := f.redis.Publish(ctx, f.cfg.RedisChannel, domain.EventTypeListingsChanged).Err(); err != nil {
			logger.Warn(LogMsgRedisPublishFailed, "channel", f.cfg.RedisChannel, "error", err)
		}
	}

	logger.Info(LogMsgSignalEmitted)
}
