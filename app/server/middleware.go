package server

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	log "github.com/go-pkgz/lgr"
	"github.com/google/uuid"
)

type ctxKey string

const requestIDKey ctxKey = "requestID"

// RequestID middleware keeps X-Request-ID of the request or makes a new one,
// and sets it on the response and in the request context.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" || len(id) > 64 {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", id)
		ctx := context.WithValue(r.Context(), requestIDKey, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetRequestID retrieves request id from context
func GetRequestID(r *http.Request) string {
	if id, ok := r.Context().Value(requestIDKey).(string); ok {
		return id
	}
	return "-"
}

// Logger middleware logs requests with anonymized client IP. Codes in the path and
// seeds in the query are masked, a seed reproduces its code. Undashed codes keep partLength symbols.
// Must run after rest.RealIP middleware which sets r.RemoteAddr to the client IP.
func Logger(l log.L, secret string, partLength int) func(http.Handler) http.Handler {
	return func(h http.Handler) http.Handler {
		fn := func(w http.ResponseWriter, r *http.Request) {
			ww := &statusWriter{ResponseWriter: w, status: http.StatusOK}
			start := time.Now()

			h.ServeHTTP(ww, r)

			ip := "-"
			if r.RemoteAddr != "" {
				ip = hashIP(clientIP(r.RemoteAddr), secret)
			}
			l.Logf("[DEBUG] %s - %s - %s - %s - %d - %v", r.Method, maskURL(r.URL, partLength), ip,
				GetRequestID(r), ww.status, time.Since(start))
		}
		return http.HandlerFunc(fn)
	}
}

// maskURL hides everything but the first part of a code in /validate/{code} paths
// and the value of seed query parameter
func maskURL(u *url.URL, partLength int) string {
	path := u.Path
	if idx := strings.Index(path, "/validate/"); idx >= 0 {
		code := path[idx+len("/validate/"):]
		if first, _, found := strings.Cut(code, "-"); found {
			code = first + "-"
		} else if len(code) > partLength {
			code = code[:partLength]
		}
		path = path[:idx] + "/validate/" + code + "*****"
	}

	query := u.Query()
	if query.Has("seed") {
		query.Set("seed", "*****")
	}
	if len(query) == 0 {
		return path
	}
	q := query.Encode()
	if qun, err := url.QueryUnescape(q); err == nil {
		q = qun
	}
	return path + "?" + q
}

func clientIP(remoteAddr string) string {
	if host, _, err := net.SplitHostPort(remoteAddr); err == nil {
		return host
	}
	return remoteAddr
}

// hashIP returns first 12 chars of HMAC-SHA256 hash for IP anonymization
func hashIP(ip, secret string) string {
	h := hmac.New(sha256.New, []byte(secret))
	h.Write([]byte(ip))
	return hex.EncodeToString(h.Sum(nil))[:12]
}

// statusWriter wraps http.ResponseWriter to capture status code
type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

// StripSlashes removes trailing slashes from URLs
func StripSlashes(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" && strings.HasSuffix(r.URL.Path, "/") {
			r.URL.Path = strings.TrimSuffix(r.URL.Path, "/")
		}
		next.ServeHTTP(w, r)
	})
}

// Timeout creates a timeout middleware
func Timeout(timeout time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.TimeoutHandler(next, timeout, "Request timeout")
	}
}

// SecurityHeaders adds security headers to all responses, the api serves json only
func SecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("Referrer-Policy", "no-referrer")
		w.Header().Set("Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'")
		w.Header().Set("Cache-Control", "no-store")
		next.ServeHTTP(w, r)
	})
}
