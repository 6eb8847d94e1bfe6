package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

func TestSlidingWindow_AllowsUpToLimit(t *testing.T) {
	w := NewSlidingWindow(5, time.Minute)

	for i := 0; i < 5; i++ {
		ok, err := w.Allow(context.Background(), "1.2.3.4")
		if err != nil || !ok {
			t.Fatalf("attempt %d: expected allowed, got ok=%v err=%v", i+1, ok, err)
		}
	}
	if ok, _ := w.Allow(context.Background(), "1.2.3.4"); ok {
		t.Fatalf("sixth attempt must be denied")
	}
}

func TestSlidingWindow_KeysAreIndependent(t *testing.T) {
	w := NewSlidingWindow(1, time.Minute)

	if ok, _ := w.Allow(context.Background(), "1.1.1.1"); !ok {
		t.Fatalf("first key should be allowed")
	}
	if ok, _ := w.Allow(context.Background(), "2.2.2.2"); !ok {
		t.Fatalf("second key must not share the first key's budget")
	}
}

func TestSlidingWindow_RollsOver(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	w := NewSlidingWindow(2, time.Minute)
	w.now = func() time.Time { return now }

	w.Allow(context.Background(), "ip")
	w.Allow(context.Background(), "ip")
	if ok, _ := w.Allow(context.Background(), "ip"); ok {
		t.Fatalf("expected denial at the limit")
	}

	// 61 seconds later both recorded attempts have left the window.
	now = now.Add(61 * time.Second)
	if ok, _ := w.Allow(context.Background(), "ip"); !ok {
		t.Fatalf("expected allowance after the window rolled past")
	}
}

func TestSlidingWindow_DeniedAttemptsExtendTheBlock(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	w := NewSlidingWindow(2, time.Minute)
	w.now = func() time.Time { return now }

	w.Allow(context.Background(), "ip")
	w.Allow(context.Background(), "ip")

	// Hammering every 20 seconds: each denial counts as an attempt, so the
	// window never drains below the limit.
	for i := 0; i < 4; i++ {
		now = now.Add(20 * time.Second)
		if ok, _ := w.Allow(context.Background(), "ip"); ok {
			t.Fatalf("attempt while hammering must stay denied (step %d)", i+1)
		}
	}

	// Backing off for a full window clears the slate.
	now = now.Add(61 * time.Second)
	if ok, _ := w.Allow(context.Background(), "ip"); !ok {
		t.Fatalf("expected allowance after a quiet window")
	}
}

func TestThrottle_DeniesWith429(t *testing.T) {
	e := echo.New()
	mw := Throttle(NewSlidingWindow(1, time.Minute), zerolog.Nop())

	handler := mw(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	codes := make([]int, 0, 2)
	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/login", nil)
		req.RemoteAddr = "9.9.9.9:1234"
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		if err := handler(c); err != nil {
			e.HTTPErrorHandler(err, c)
		}
		codes = append(codes, rec.Code)
	}

	if codes[0] != http.StatusOK || codes[1] != http.StatusTooManyRequests {
		t.Fatalf("expected [200 429], got %v", codes)
	}
}

type failingAllower struct{}

func (failingAllower) Allow(context.Context, string) (bool, error) {
	return false, errors.New("backend down")
}

func TestThrottle_FailsOpen(t *testing.T) {
	e := echo.New()
	mw := Throttle(failingAllower{}, zerolog.Nop())

	handler := mw(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodPost, "/api/login", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected fail-open 200, got %d", rec.Code)
	}
}
