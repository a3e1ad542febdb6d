package http

import (
	"context"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/pkg/errors"
)

func TestServerMounts(t *testing.T) {
	api := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, r.URL.Path)
	})

	server := NewServer(
		WithBaseURL("/chatten/"),
		WithMount("/api/", api),
	)

	handler := server.Handler()

	req := httptest.NewRequest(http.MethodGet, "/chatten/api/files", nil)
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if e, g := http.StatusOK, res.Code; e != g {
		t.Fatalf("res.Code: expected %d, got %d", e, g)
	}

	if e, g := "/files", res.Body.String(); e != g {
		t.Errorf("res.Body: expected '%s', got '%s'", e, g)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/files", nil)
	res = httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if e, g := http.StatusNotFound, res.Code; e != g {
		t.Errorf("res.Code: expected %d, got %d", e, g)
	}
}

func TestServerBasicAuth(t *testing.T) {
	server := NewServer(
		WithBasicAuth("reader", "secret"),
		WithMount("/api/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		})),
	)

	handler := server.Handler()

	req := httptest.NewRequest(http.MethodGet, "/api/tasks", nil)
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if e, g := http.StatusUnauthorized, res.Code; e != g {
		t.Errorf("res.Code: expected %d, got %d", e, g)
	}

	if e, g := `Basic realm="chatten", charset="UTF-8"`, res.Header().Get("WWW-Authenticate"); e != g {
		t.Errorf("WWW-Authenticate: expected '%s', got '%s'", e, g)
	}

	if e, g := "application/json", res.Header().Get("Content-Type"); e != g {
		t.Errorf("Content-Type: expected '%s', got '%s'", e, g)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/tasks", nil)
	req.SetBasicAuth("reader", "wrong")
	res = httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if e, g := http.StatusUnauthorized, res.Code; e != g {
		t.Errorf("res.Code: expected %d, got %d", e, g)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/tasks", nil)
	req.SetBasicAuth("reader", "secret")
	res = httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if e, g := http.StatusNoContent, res.Code; e != g {
		t.Errorf("res.Code: expected %d, got %d", e, g)
	}
}

func TestServerServe(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	server := NewServer(
		WithShutdownTimeout(time.Second),
		WithMount("/api/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			io.WriteString(w, "pong")
		})),
	)

	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error)
	go func() {
		done <- server.Serve(ctx, listener)
	}()

	res, err := http.Get("http://" + listener.Addr().String() + "/api/ping")
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	body, err := io.ReadAll(res.Body)
	res.Body.Close()
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if e, g := "pong", string(body); e != g {
		t.Errorf("body: expected '%s', got '%s'", e, g)
	}

	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("%+v", errors.WithStack(err))
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("server did not shut down")
	}
}
