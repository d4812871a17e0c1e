// Package cache holds the Redis connection and the rate limiters used to
// protect the public forms.
package cache

import "time"

// Decision is the outcome of one rate limit check.
type Decision struct {
	Allowed    bool
	Limit      int
	Remaining  int
	RetryAfter time.Duration
}
