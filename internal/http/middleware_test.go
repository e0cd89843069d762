package http

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestHeaderAuthMiddleware(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   int64
	}{
		{"valid id", "42", 42},
		{"missing header", "", 0},
		{"garbage header", "not-a-number", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got int64
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				got = getUserIDFromContext(r.Context())
			})

			recorder := httptest.NewRecorder()
			request := httptest.NewRequest("GET", "/", nil)
			if tt.header != "" {
				request.Header.Set("X-User-ID", tt.header)
			}

			HeaderAuthMiddleware(next).ServeHTTP(recorder, request)

			if got != tt.want {
				t.Errorf("Expected user id %d, got %d", tt.want, got)
			}
		})
	}
}

func TestRequestIDMiddleware(t *testing.T) {
	var got string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = getRequestID(r.Context())
	})

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest("GET", "/", nil)
	request.Header.Set("X-Request-ID", "req-abc")

	RequestIDMiddleware(next).ServeHTTP(recorder, request)

	if got != "req-abc" {
		t.Errorf("Expected propagated request id, got %q", got)
	}
	if recorder.Header().Get("X-Request-ID") != "req-abc" {
		t.Error("Expected request id echoed in response header")
	}
}

func TestRequestIDMiddleware_GeneratesWhenMissing(t *testing.T) {
	var got string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = getRequestID(r.Context())
	})

	recorder := httptest.NewRecorder()
	RequestIDMiddleware(next).ServeHTTP(recorder, httptest.NewRequest("GET", "/", nil))

	if got == "" {
		t.Error("Expected a generated request id")
	}
}
