package debounce

import (
	"time"

	"golang.org/x/time/rate"
)

// ClickGuard drops repeated taps that arrive within the interval of the previous accepted one.
type ClickGuard struct {
	limiter *rate.Limiter
}

func NewClickGuard(interval time.Duration) *ClickGuard {
	return &ClickGuard{limiter: rate.NewLimiter(rate.Every(interval), 1)}
}

func (g *ClickGuard) Allow() bool {
	return g.limiter.Allow()
}
