package playback

import "time"

const (
	// DefaultPollInterval is how often a runner samples the surface time
	DefaultPollInterval = 100 * time.Millisecond
	// DefaultMaxLoadAttempts bounds load retries per surface lifetime
	DefaultMaxLoadAttempts = 2
	// DefaultRetryBackoff is the fixed delay between load attempts
	DefaultRetryBackoff = 2 * time.Second
	// DefaultEventBuffer is the capacity of the outbound event channel
	DefaultEventBuffer = 64
	// DefaultCommandBuffer is the capacity of each runner's command queue
	DefaultCommandBuffer = 16
)

// Config tunes the bridge and its runners
type Config struct {
	PollInterval    time.Duration
	MaxLoadAttempts int
	RetryBackoff    time.Duration
	EventBuffer     int
	CommandBuffer   int
}

// DefaultConfig returns the production tuning
func DefaultConfig() Config {
	return Config{
		PollInterval:    DefaultPollInterval,
		MaxLoadAttempts: DefaultMaxLoadAttempts,
		RetryBackoff:    DefaultRetryBackoff,
		EventBuffer:     DefaultEventBuffer,
		CommandBuffer:   DefaultCommandBuffer,
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.PollInterval <= 0 {
		c.PollInterval = d.PollInterval
	}
	if c.MaxLoadAttempts <= 0 {
		c.MaxLoadAttempts = d.MaxLoadAttempts
	}
	if c.RetryBackoff < 0 {
		c.RetryBackoff = 0
	}
	if c.EventBuffer <= 0 {
		c.EventBuffer = d.EventBuffer
	}
	if c.CommandBuffer <= 0 {
		c.CommandBuffer = d.CommandBuffer
	}
	return c
}
