package http

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

type recordedRequest struct {
	method   string
	status   int
	duration time.Duration
}

type requestRecorderStub struct {
	observed []recordedRequest
}

func (r *requestRecorderStub) ObserveRequest(method string, status int, duration time.Duration) {
	r.observed = append(r.observed, recordedRequest{method: method, status: status, duration: duration})
}

func TestRequestMetrics(t *testing.T) {
	t.Parallel()

	t.Run("records the written status", func(t *testing.T) {
		t.Parallel()
		recorder := &requestRecorderStub{}
		handler := RequestMetrics(recorder)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/sessions/nope", nil))

		if len(recorder.observed) != 1 {
			t.Fatalf("expected one observation, got %d", len(recorder.observed))
		}
		got := recorder.observed[0]
		if got.method != http.MethodGet || got.status != http.StatusNotFound {
			t.Fatalf("unexpected observation: %+v", got)
		}
	})

	t.Run("defaults to 200 when the handler never writes a header", func(t *testing.T) {
		t.Parallel()
		recorder := &requestRecorderStub{}
		handler := RequestMetrics(recorder)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("ok"))
		}))

		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/healthz", nil))

		if recorder.observed[0].status != http.StatusOK {
			t.Fatalf("expected implicit 200, got %d", recorder.observed[0].status)
		}
	})

	t.Run("nil recorder passes the handler through untouched", func(t *testing.T) {
		t.Parallel()
		called := false
		inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { called = true })
		handler := RequestMetrics(nil)(inner)

		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
		if !called {
			t.Fatal("expected the wrapped handler to run")
		}
	})
}

func TestRequestLogger(t *testing.T) {
	t.Parallel()

	logger := slog.New(slog.DiscardHandler)
	var seen *slog.Logger
	handler := RequestLogger(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = LoggerFromContext(r.Context())
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/sessions", nil))

	if seen == nil {
		t.Fatal("expected a request-scoped logger in the context")
	}
}

func TestRouterAppliesMiddlewareInOrder(t *testing.T) {
	t.Parallel()

	var order []string
	tag := func(name string) func(http.Handler) http.Handler {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	router := NewRouter(RouterConfig{Middleware: []func(http.Handler) http.Handler{tag("outer"), tag("inner")}})
	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if len(order) != 2 || order[0] != "outer" || order[1] != "inner" {
		t.Fatalf("unexpected middleware order: %v", order)
	}
}
