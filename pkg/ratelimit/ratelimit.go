// Package ratelimit paces bulk command registration against the Discord API.
// A Pacer wraps a token bucket that backs off when the API answers 429 and
// creeps back up after a quiet stretch of successes, so a large sync neither
// hammers the API nor crawls forever at the floor rate.
package ratelimit

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"
	"golang.org/x/time/rate"
)

// Pacer is a self-adjusting rate limiter. Safe for concurrent use.
type Pacer struct {
	mu       sync.Mutex
	limiter  *rate.Limiter
	min      rate.Limit
	max      rate.Limit
	lastSlow time.Time
}

// recoveryQuiet is how long after a slow-down the pacer waits before
// speeding back up on success.
const recoveryQuiet = 10 * time.Second

// NewPacer returns a Pacer starting at initial requests per second, bounded
// by min and max.
func NewPacer(initial, min, max rate.Limit) *Pacer {
	if initial < min {
		initial = min
	}
	if initial > max {
		initial = max
	}
	return &Pacer{
		limiter: rate.NewLimiter(initial, 1),
		min:     min,
		max:     max,
	}
}

// Wait blocks until the next call may proceed or ctx ends.
func (p *Pacer) Wait(ctx context.Context) error {
	return p.limiter.Wait(ctx)
}

// Observe adjusts the pace from the outcome of the call that Wait admitted:
// rate-limit errors halve it, success nudges it back up once the API has been
// quiet for a while. Other errors leave the pace alone.
func (p *Pacer) Observe(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	switch {
	case err == nil:
		if time.Since(p.lastSlow) > recoveryQuiet {
			p.set(p.limiter.Limit() + p.min)
		}
	case IsRateLimited(err):
		p.lastSlow = time.Now()
		p.set(p.limiter.Limit() / 2)
	}
}

// Limit returns the current requests per second.
func (p *Pacer) Limit() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return float64(p.limiter.Limit())
}

func (p *Pacer) set(l rate.Limit) {
	if l > p.max {
		l = p.max
	}
	if l < p.min {
		l = p.min
	}
	if l != p.limiter.Limit() {
		p.limiter.SetLimit(l)
	}
}

// IsRateLimited reports whether err is a Discord 429 response.
func IsRateLimited(err error) bool {
	var rl *discordgo.RateLimitError
	if errors.As(err, &rl) {
		return true
	}
	var rest *discordgo.RESTError
	if errors.As(err, &rest) && rest.Response != nil {
		return rest.Response.StatusCode == http.StatusTooManyRequests
	}
	return false
}
