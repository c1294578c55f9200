package service

import (
	"math/rand"
	"time"

	"paygate/internal/domain"
)

// Sleeper lets tests run the retry loop without real delays.
type Sleeper interface {
	Sleep(d time.Duration)
}

type realSleeper struct{}

func (realSleeper) Sleep(d time.Duration) {
	time.Sleep(d)
}

// BackoffDelay yields min(2^(attempt-1)*base + rand(0,jitter), max).
// Roughly 1s, 2s, 4s... capped, jittered against synchronized retry storms.
func BackoffDelay(cfg domain.RetryConfig, attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}

	maxDelay := time.Duration(cfg.MaxDelayMs) * time.Millisecond

	// shift saturates well before the cap matters
	shift := attempt - 1
	if shift > 30 {
		shift = 30
	}

	delay := time.Duration(cfg.BaseDelayMs) * time.Millisecond << shift

	if cfg.JitterMs > 0 {
		delay += time.Duration(rand.Int63n(int64(cfg.JitterMs)+1)) * time.Millisecond
	}

	if delay > maxDelay {
		return maxDelay
	}
	return delay
}
