package server

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger(t *testing.T) {
	req, err := http.NewRequest("GET", "/api/v1/params", http.NoBody)
	require.NoError(t, err)
	req.RemoteAddr = "127.0.0.1:12345"

	rr := httptest.NewRecorder()
	out := bytes.Buffer{}
	l := lgr.New(lgr.Out(&out), lgr.Debug)
	testHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	handler := Logger(l, "test-secret", 4)(testHandler)
	handler.ServeHTTP(rr, req)
	t.Log(out.String())
	assert.Contains(t, out.String(), "DEBUG GET - /api/v1/params - ")
	assert.Contains(t, out.String(), "- 200")
	assert.NotContains(t, out.String(), "127.0.0.1") // IP should be hashed
}

func TestLoggerMasking(t *testing.T) {
	req, err := http.NewRequest("GET", "/api/v1/validate/QLMM-J46Q-46RT", http.NoBody)
	require.NoError(t, err)
	req.RemoteAddr = "192.168.1.1:54321"

	rr := httptest.NewRecorder()
	out := bytes.Buffer{}
	l := lgr.New(lgr.Out(&out), lgr.Debug)
	testHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	handler := RequestID(Logger(l, "test-secret", 4)(testHandler))
	handler.ServeHTTP(rr, req)
	t.Log(out.String())
	assert.Contains(t, out.String(), "DEBUG GET - /api/v1/validate/QLMM-***** -")
	assert.Contains(t, out.String(), "- 404")
	assert.NotContains(t, out.String(), "J46Q")
	assert.Contains(t, out.String(), rr.Header().Get("X-Request-ID"))
	assert.NotContains(t, out.String(), "192.168.1.1")
}

func TestMaskURL(t *testing.T) {
	tests := []struct {
		in         string
		partLength int
		out        string
	}{
		{"/api/v1/params", 4, "/api/v1/params"},
		{"/api/v1/validate/QLMM-J46Q-46RT", 4, "/api/v1/validate/QLMM-*****"},
		{"/api/v1/validate/QLMMJ46Q46RT", 4, "/api/v1/validate/QLMM*****"},
		{"/api/v1/validate/QL", 4, "/api/v1/validate/QL*****"},
		{"/api/v1/validate/ABCDEF-GHJKLM", 6, "/api/v1/validate/ABCDEF-*****"},
		{"/api/v1/validate/ABCDEFGHJKLM", 6, "/api/v1/validate/ABCDEF*****"},
		{"/api/v1/validate/ABCDEFGHJKLM", 2, "/api/v1/validate/AB*****"},
		{"/api/v1/generate?seed=123456890", 4, "/api/v1/generate?seed=*****"},
		{"/api/v1/generate?count=5", 4, "/api/v1/generate?count=5"},
		{"/api/v1/generate?count=1&seed=abc", 4, "/api/v1/generate?count=1&seed=*****"},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s/%d", tt.in, tt.partLength), func(t *testing.T) {
			u, err := url.Parse(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.out, maskURL(u, tt.partLength))
		})
	}
}

func TestHashIP(t *testing.T) {
	h1 := hashIP("192.168.1.1", "secret")
	h2 := hashIP("192.168.1.1", "secret")
	assert.Equal(t, h1, h2)
	assert.Len(t, h1, 12)

	assert.NotEqual(t, h1, hashIP("192.168.1.2", "secret"))
	assert.NotEqual(t, h1, hashIP("192.168.1.1", "other-secret"))
}

func TestClientIP(t *testing.T) {
	assert.Equal(t, "10.0.0.1", clientIP("10.0.0.1:8080"))
	assert.Equal(t, "10.0.0.1", clientIP("10.0.0.1"))
	assert.Equal(t, "::1", clientIP("[::1]:8080"))
}

func TestRequestID(t *testing.T) {
	var seen string
	handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetRequestID(r)
	}))

	req := httptest.NewRequest("GET", "/", http.NoBody)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	assert.Len(t, seen, 36)
	assert.Equal(t, seen, rr.Header().Get("X-Request-ID"))

	req = httptest.NewRequest("GET", "/", http.NoBody)
	req.Header.Set("X-Request-ID", "req-123")
	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	assert.Equal(t, "req-123", seen)
	assert.Equal(t, "req-123", rr.Header().Get("X-Request-ID"))

	assert.Equal(t, "-", GetRequestID(httptest.NewRequest("GET", "/", http.NoBody)))
}

func TestStripSlashes(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		expected string
	}{
		{"root path unchanged", "/", "/"},
		{"path without slash unchanged", "/api/v1/params", "/api/v1/params"},
		{"trailing slash removed", "/api/v1/params/", "/api/v1/params"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got string
			handler := StripSlashes(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				got = r.URL.Path
			}))
			handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", tt.path, http.NoBody))
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestTimeout(t *testing.T) {
	handler := Timeout(10 * time.Millisecond)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(100 * time.Millisecond)
	}))
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest("GET", "/", http.NoBody))
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
	assert.Equal(t, "Request timeout", rr.Body.String())
}

func TestSecurityHeaders(t *testing.T) {
	handler := SecurityHeaders(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest("GET", "/", http.NoBody))
	assert.Equal(t, "DENY", rr.Header().Get("X-Frame-Options"))
	assert.Equal(t, "nosniff", rr.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "no-store", rr.Header().Get("Cache-Control"))
}
