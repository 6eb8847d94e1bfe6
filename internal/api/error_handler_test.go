package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/voteflow/poll-system/internal/core/domain"
)

// serveFailing runs a request through an Echo instance whose handler returns
// the given error, so the response reflects the central error handler alone.
func serveFailing(t *testing.T, err error) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	e.HTTPErrorHandler = NewHTTPErrorHandler(zerolog.Nop())
	e.GET("/boom", func(c echo.Context) error { return err })

	req := httptest.NewRequest(http.MethodGet, "/boom", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var resp errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("response is not the error envelope: %v (%s)", err, rec.Body.String())
	}
	return resp.Error
}

func TestHTTPErrorHandler_DomainErrors(t *testing.T) {
	cases := []struct {
		name     string
		err      error
		wantCode int
		wantMsg  string
	}{
		{"invalid input", domain.ErrInvalidInput, http.StatusBadRequest, domain.ErrInvalidInput.Error()},
		{"invalid username", domain.ErrInvalidUsername, http.StatusBadRequest, domain.ErrInvalidUsername.Error()},
		{"weak password", domain.ErrWeakPassword, http.StatusBadRequest, domain.ErrWeakPassword.Error()},
		{"unauthenticated", domain.ErrUnauthenticated, http.StatusUnauthorized, domain.ErrUnauthenticated.Error()},
		{"auth failed", domain.ErrAuthFailed, http.StatusUnauthorized, "login failed"},
		{"forbidden", domain.ErrForbidden, http.StatusForbidden, "only the creator may delete this poll"},
		{"poll not found", domain.ErrPollNotFound, http.StatusNotFound, "poll not found"},
		{"email taken", domain.ErrEmailTaken, http.StatusConflict, domain.ErrEmailTaken.Error()},
		{"username taken", domain.ErrUsernameTaken, http.StatusConflict, domain.ErrUsernameTaken.Error()},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := serveFailing(t, tc.err)
			if rec.Code != tc.wantCode {
				t.Fatalf("expected %d, got %d", tc.wantCode, rec.Code)
			}
			if msg := decodeError(t, rec); msg != tc.wantMsg {
				t.Fatalf("expected message %q, got %q", tc.wantMsg, msg)
			}
		})
	}
}

func TestHTTPErrorHandler_WrappedDomainError(t *testing.T) {
	rec := serveFailing(t, errors.Join(errors.New("loading poll"), domain.ErrPollNotFound))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for wrapped not-found, got %d", rec.Code)
	}
}

func TestHTTPErrorHandler_EchoErrorPassthrough(t *testing.T) {
	rec := serveFailing(t, echo.NewHTTPError(http.StatusTooManyRequests, "too many attempts, please wait"))
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", rec.Code)
	}
	if msg := decodeError(t, rec); msg != "too many attempts, please wait" {
		t.Fatalf("unexpected message: %q", msg)
	}
}

func TestHTTPErrorHandler_UnexpectedErrorIsOpaque(t *testing.T) {
	rec := serveFailing(t, errors.New("disk on fire"))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if msg := decodeError(t, rec); msg != "internal server error" {
		t.Fatalf("internal detail leaked to the client: %q", msg)
	}
}
