package middleware_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	pnet "clipscout/internal/platform/net"
	"clipscout/internal/platform/net/middleware"
)

func TestAccessLogPassThrough(t *testing.T) {
	mw := middleware.AccessLogZerolog(middleware.AccessLogOptions{})

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
		_, _ = io.WriteString(w, "queued")
	})

	rr := httptest.NewRecorder()
	mw(next).ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/analysis/async", nil))

	if rr.Code != http.StatusAccepted {
		t.Fatalf("status = %d", rr.Code)
	}
	if rr.Body.String() != "queued" {
		t.Fatalf("body = %q", rr.Body.String())
	}
}

func TestAccessLogSlowMarkDoesNotAffectResponse(t *testing.T) {
	mw := middleware.AccessLogZerolog(middleware.AccessLogOptions{Slow: time.Nanosecond})

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(50 * time.Microsecond)
		_, _ = io.WriteString(w, "done")
	})

	rr := httptest.NewRecorder()
	mw(next).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/reports", nil))

	if rr.Code != http.StatusOK || rr.Body.String() != "done" {
		t.Fatalf("status %d body %q", rr.Code, rr.Body.String())
	}
}

func TestRequestContextPassThrough(t *testing.T) {
	var seen string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = pnet.RequestID(r.Context())
		_, _ = io.WriteString(w, "ok")
	})

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req = req.WithContext(pnet.WithRequest(req.Context(), "req-42"))
	rr := httptest.NewRecorder()
	middleware.RequestContext(next).ServeHTTP(rr, req)

	if seen != "req-42" {
		t.Fatalf("request id = %q, want req-42", seen)
	}
	if rr.Code != http.StatusOK || rr.Body.String() != "ok" {
		t.Fatalf("status %d body %q", rr.Code, rr.Body.String())
	}
}

func TestRequestContextWithoutID(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "ok")
	})

	rr := httptest.NewRecorder()
	middleware.RequestContext(next).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/x", nil))

	if rr.Code != http.StatusOK || rr.Body.String() != "ok" {
		t.Fatalf("status %d body %q", rr.Code, rr.Body.String())
	}
}

func TestRecoverJSONTurnsPanicInto500(t *testing.T) {
	next := http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("kaboom")
	})

	rr := httptest.NewRecorder()
	middleware.RecoverJSON(next).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/x", nil))

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", rr.Code)
	}
	var env map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &env); err != nil {
		t.Fatalf("body is not a JSON envelope: %s", rr.Body.String())
	}
	if env["error"] == "" {
		t.Fatalf("envelope missing error: %v", env)
	}
}

func TestRecoverJSONLeavesNormalRequestsAlone(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "fine")
	})

	rr := httptest.NewRecorder()
	middleware.RecoverJSON(next).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/x", nil))

	if rr.Code != http.StatusOK || rr.Body.String() != "fine" {
		t.Fatalf("status %d body %q", rr.Code, rr.Body.String())
	}
}
