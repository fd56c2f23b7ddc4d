package tasks

import "time"

// Config tunes the background queue. Workers, ReleaseAfter and
// CleanupInterval feed the backlite client; MaxRetries, RetryDelay,
// TaskTimeout and RetentionDuration feed the sync queue itself.
type Config struct {
	// Concurrent task workers
	Workers int

	// Attempts before a task is abandoned
	MaxRetries int

	// Wait between attempts
	RetryDelay time.Duration

	// Per-attempt execution deadline
	TaskTimeout time.Duration

	// Stuck tasks go back on the queue after this long
	ReleaseAfter time.Duration

	// How often finished tasks are swept
	CleanupInterval time.Duration

	// How long finished tasks stay queryable
	RetentionDuration time.Duration
}

// DefaultConfig returns the tuning used when nothing is configured.
func DefaultConfig() Config {
	return Config{
		Workers:           2,
		MaxRetries:        3,
		RetryDelay:        1 * time.Minute,
		TaskTimeout:       5 * time.Minute,
		ReleaseAfter:      15 * time.Minute,
		CleanupInterval:   1 * time.Hour,
		RetentionDuration: 24 * time.Hour,
	}
}

// withDefaults fills any unset field from DefaultConfig, so a partially
// populated Config never produces a zero timeout or a queue with no workers.
func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.Workers <= 0 {
		c.Workers = def.Workers
	}
	if c.MaxRetries <= 0 {
		c.MaxRetries = def.MaxRetries
	}
	if c.RetryDelay <= 0 {
		c.RetryDelay = def.RetryDelay
	}
	if c.TaskTimeout <= 0 {
		c.TaskTimeout = def.TaskTimeout
	}
	if c.ReleaseAfter <= 0 {
		c.ReleaseAfter = def.ReleaseAfter
	}
	if c.CleanupInterval <= 0 {
		c.CleanupInterval = def.CleanupInterval
	}
	if c.RetentionDuration <= 0 {
		c.RetentionDuration = def.RetentionDuration
	}
	return c
}
