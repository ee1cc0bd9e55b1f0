package feed

import "time"

// Coalescing defaults
const (
	// DefaultDebounceWindow folds mutation bursts into one signal. Sized for
	// human-speed market refreshes, not throughput.
	DefaultDebounceWindow = 250 * time.Millisecond

	// DefaultRedisChannel is the pub/sub channel for cross-process fanout
	DefaultRedisChannel = "bazaar:listings-changed"
)

// Log messages
const (
	LogMsgSubscribed         = "Change feed subscribed to exchange events"
	LogMsgSignalEmitted      = "Listings-changed signal emitted"
	LogMsgRedisPublishFailed = "Failed to publish change signal to Redis"
)
