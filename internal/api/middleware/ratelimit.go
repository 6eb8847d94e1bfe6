package middleware

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// Allower decides whether another attempt from the given key may proceed.
// Implementations: SlidingWindow (in-memory) and the redis fixed-window
// limiter in internal/infrastructure/db/redis.
type Allower interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// Throttle gates a route per source IP. Excess attempts receive a uniform
// 429 without reaching the handler. A failing limiter backend fails open.
func Throttle(limiter Allower, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ok, err := limiter.Allow(c.Request().Context(), c.RealIP())
			if err != nil {
				log.Warn().Err(err).Str("ip", c.RealIP()).Msg("throttle check failed, allowing request")
				return next(c)
			}
			if !ok {
				return echo.NewHTTPError(http.StatusTooManyRequests, "too many attempts, please wait")
			}
			return next(c)
		}
	}
}

// SlidingWindow is an in-memory Allower that tracks attempt timestamps per
// key over a rolling window. An attempt is allowed while fewer than limit
// attempts happened within the trailing window. Denied attempts count too,
// so a client that keeps hammering stays blocked until it backs off for a
// full window.
type SlidingWindow struct {
	limit  int
	window time.Duration
	now    func() time.Time

	mu      sync.Mutex
	history map[string][]time.Time
}

func NewSlidingWindow(limit int, window time.Duration) *SlidingWindow {
	return &SlidingWindow{
		limit:   limit,
		window:  window,
		now:     time.Now,
		history: make(map[string][]time.Time),
	}
}

func (w *SlidingWindow) Allow(_ context.Context, key string) (bool, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	now := w.now()
	cutoff := now.Add(-w.window)

	kept := w.history[key][:0]
	for _, t := range w.history[key] {
		if t.After(cutoff) {
			kept = append(kept, t)
		}
	}

	allowed := len(kept) < w.limit
	w.history[key] = append(kept, now)
	return allowed, nil
}
