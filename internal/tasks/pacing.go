package tasks

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// Pacer models a mandatory inter-call delay as a rate-limiter capability:
// Wait blocks until the next call is permitted. The pipeline acquires from the
// pacer before every paced remote call, so a token-bucket or adaptive backoff
// implementation can be swapped in without touching pipeline logic.
type Pacer interface {
	Wait(ctx context.Context) error
}

type limiterPacer struct {
	limiter *rate.Limiter
}

// NewPacer returns a [Pacer] that permits one call per interval, backed by a
// [rate.Limiter] with burst 1. The first Wait returns immediately; subsequent
// waits are spaced by at least interval.
func NewPacer(interval time.Duration) Pacer {
	return &limiterPacer{limiter: rate.NewLimiter(rate.Every(interval), 1)}
}

func (p *limiterPacer) Wait(ctx context.Context) error {
	return p.limiter.Wait(ctx)
}
