package engine

import (
	"time"

	"github.com/cenkalti/backoff/v5"
)

const (
	backoffBase       = 1 * time.Second
	backoffMultiplier = 2.0
	backoffMaxDelay   = 60 * time.Second
	backoffJitter     = 0.25
)

// newAttemptBackOff builds an exponential backoff generator matching the
// normative schedule: base 1s, multiplier 2 (1, 2, 4, 8, ... capped at
// 60s), with up to 25% jitter when enabled.
func newAttemptBackOff(jitterEnabled bool) *backoff.ExponentialBackOff {
	jitter := 0.0
	if jitterEnabled {
		jitter = backoffJitter
	}
	b := &backoff.ExponentialBackOff{
		InitialInterval:     backoffBase,
		RandomizationFactor: jitter,
		Multiplier:          backoffMultiplier,
		MaxInterval:         backoffMaxDelay,
	}
	b.Reset()
	return b
}

// delayForAttempt returns the delay to sleep before the next retry and
// advances bo's internal state one step, so the first call on a fresh bo
// gives the delay after attempt 1 failed, the second after attempt 2, and
// so on.
func delayForAttempt(bo *backoff.ExponentialBackOff) time.Duration {
	return bo.NextBackOff()
}
