package ratelimit

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestMiddleware(t *testing.T) {
	handler := Middleware(WithLimit(time.Hour, 2))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	do := func(remoteAddr string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/chat", nil)
		req.RemoteAddr = remoteAddr
		res := httptest.NewRecorder()
		handler.ServeHTTP(res, req)
		return res
	}

	for i := range 2 {
		if e, g := http.StatusNoContent, do("10.0.0.1:1234").Code; e != g {
			t.Fatalf("request #%d: expected status %d, got %d", i, e, g)
		}
	}

	res := do("10.0.0.1:4321")
	if e, g := http.StatusTooManyRequests, res.Code; e != g {
		t.Fatalf("expected status %d, got %d", e, g)
	}

	if res.Header().Get("Retry-After") == "" {
		t.Errorf("expected Retry-After header to be set")
	}

	// Other clients keep their own budget
	if e, g := http.StatusNoContent, do("10.0.0.2:1234").Code; e != g {
		t.Errorf("expected status %d, got %d", e, g)
	}
}

func TestRemoteAddrOf(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "192.168.0.1:5000"
	req.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")

	if e, g := "192.168.0.1", remoteAddrOf(req, false); e != g {
		t.Errorf("remoteAddrOf(): expected '%s', got '%s'", e, g)
	}

	if e, g := "203.0.113.7", remoteAddrOf(req, true); e != g {
		t.Errorf("remoteAddrOf(): expected '%s', got '%s'", e, g)
	}
}
