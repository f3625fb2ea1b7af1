package httpserver

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestResponseRecorder_DefaultsAndByteCount(t *testing.T) {
	rec := &responseRecorder{ResponseWriter: httptest.NewRecorder()}

	n, err := rec.Write([]byte("hello"))
	if err != nil || n != 5 {
		t.Fatalf("write: n=%d err=%v", n, err)
	}
	if rec.Status() != http.StatusOK {
		t.Fatalf("implicit status = %d", rec.Status())
	}
	if rec.bytes != 5 {
		t.Fatalf("bytes = %d", rec.bytes)
	}
}

func TestResponseRecorder_KeepsFirstStatus(t *testing.T) {
	rec := &responseRecorder{ResponseWriter: httptest.NewRecorder()}
	rec.WriteHeader(http.StatusBadGateway)
	rec.WriteHeader(http.StatusOK)
	if rec.Status() != http.StatusBadGateway {
		t.Fatalf("status = %d", rec.Status())
	}
}

func TestRemoteIPPrecedence(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	r.RemoteAddr = "10.0.0.9:1234"
	if got := remoteIP(r); got != "10.0.0.9" {
		t.Fatalf("remote addr host: %q", got)
	}

	r.Header.Set("X-Real-IP", "2.2.2.2")
	if got := remoteIP(r); got != "2.2.2.2" {
		t.Fatalf("x-real-ip: %q", got)
	}

	r.Header.Set("X-Forwarded-For", "1.1.1.1, 9.9.9.9")
	if got := remoteIP(r); got != "1.1.1.1" {
		t.Fatalf("xff first hop: %q", got)
	}
}
