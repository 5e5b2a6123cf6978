package worker

import "time"

// Options tunes the worker loop.
type Options struct {
	// ReadBackoff is how long the job processor sleeps after a failed
	// read before trying again.
	ReadBackoff time.Duration
}

// DefaultOptions returns the default worker options.
func DefaultOptions() *Options {
	return &Options{
		ReadBackoff: 100 * time.Millisecond,
	}
}
