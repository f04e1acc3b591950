package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/irsalhamdi/e-commerce-shop/api/web"
	"github.com/irsalhamdi/e-commerce-shop/api/weberr"
	"github.com/irsalhamdi/e-commerce-shop/core/claims"
	"github.com/irsalhamdi/e-commerce-shop/metrics"
	"github.com/irsalhamdi/e-commerce-shop/rate"
	"github.com/sirupsen/logrus"
)

func quietLog() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func serve(h web.Handler, r *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	_ = h(r.Context(), w, r)
	return w
}

func TestRequestID(t *testing.T) {
	var seen string
	h := RequestID()(func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		seen = ContextRequestID(ctx)
		return nil
	})

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	w := serve(h, r)
	if seen == "" || w.Header().Get(RequestIDHeader) != seen {
		t.Fatalf("expected generated id echoed back, got ctx %q header %q", seen, w.Header().Get(RequestIDHeader))
	}

	r = httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set(RequestIDHeader, strings.Repeat("a", 200))
	serve(h, r)
	if len(seen) != requestIDLengthLimit {
		t.Fatalf("expected id truncated to %d, got %d", requestIDLengthLimit, len(seen))
	}
}

func TestErrors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		msg    string
	}{
		{"response error", weberr.NotFound(errors.New("no row")), http.StatusNotFound, "the resource could not be found"},
		{"wrapped response error", weberr.Invalid(errors.New("quantity must be greater than 0")), http.StatusBadRequest, "quantity must be greater than 0"},
		{"plain error", errors.New("db down"), http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			h := Errors(quietLog())(func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
				return tc.err
			})

			w := serve(h, httptest.NewRequest(http.MethodGet, "/", nil))
			if w.Code != tc.status {
				t.Fatalf("expected status %d, got %d", tc.status, w.Code)
			}

			var body weberr.ErrorResponse
			if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
				t.Fatal(err)
			}
			if body.Error != tc.msg {
				t.Fatalf("expected message %q, got %q", tc.msg, body.Error)
			}
		})
	}
}

func TestPanics(t *testing.T) {
	h := Errors(quietLog())(Panics()(func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		panic("boom")
	}))

	w := serve(h, httptest.NewRequest(http.MethodGet, "/", nil))
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 after panic, got %d", w.Code)
	}
}

func TestRateLimit(t *testing.T) {
	lim := rate.NewLimiter(1, 1, 0.0001)
	defer lim.Stop()

	h := Errors(quietLog())(RateLimit(lim)(func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		return web.Respond(ctx, w, nil, http.StatusNoContent)
	}))

	req := func(user string) *http.Request {
		r := httptest.NewRequest(http.MethodPost, "/cart/items", nil)
		ctx := claims.Set(r.Context(), claims.Claims{UserID: user})
		return r.WithContext(ctx)
	}

	if w := serve(h, req("a")); w.Code != http.StatusNoContent {
		t.Fatalf("first request: expected 204, got %d", w.Code)
	}
	if w := serve(h, req("a")); w.Code != http.StatusTooManyRequests {
		t.Fatalf("second request: expected 429, got %d", w.Code)
	}
	if w := serve(h, req("b")); w.Code != http.StatusNoContent {
		t.Fatalf("other user: expected 204, got %d", w.Code)
	}
}

func TestMetrics(t *testing.T) {
	m := metrics.New("middleware_test")
	h := Metrics(m, "GET /cart")(Errors(quietLog())(func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		return weberr.NotFound(errors.New("no cart"))
	}))

	serve(h, httptest.NewRequest(http.MethodGet, "/cart", nil))

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if !strings.Contains(rec.Body.String(), `shop_middleware_test_http_requests_total{handler="GET /cart",status="404"} 1`) {
		t.Fatalf("expected request counted with status 404:\n%s", rec.Body.String())
	}
}
