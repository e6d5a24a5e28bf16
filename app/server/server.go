// Package server provides rest-like api to generate, validate and normalize coupon codes
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/didip/tollbooth/v8"
	"github.com/didip/tollbooth/v8/limiter"
	log "github.com/go-pkgz/lgr"
	"github.com/go-pkgz/rest"
	"github.com/go-pkgz/routegroup"

	"github.com/umputun/coupons/app/coupon"
	"github.com/umputun/coupons/app/server/validator"
)

//go:generate moq -out coder_mock.go -fmt goimports . Coder

// maxCodeSize limits code and seed fields of requests
const maxCodeSize = 256

// Config is a configuration for the server
type Config struct {
	Listen    string  // address to listen on, like :8080
	MaxBatch  int     // max codes per generate request
	RateLimit float64 // requests per second per client
	IPSecret  string  // secret for client IP hashing in logs
}

// Server is a rest api over coupon coder
type Server struct {
	coder   Coder
	cfg     Config
	version string
}

// Coder makes, checks and normalizes codes
type Coder interface {
	GenerateFromSeed(seed []byte) (string, error)
	GenerateBatch(n int) ([]string, error)
	Parse(code string) (string, error)
	Normalize(code string) string
	Params() coupon.Params
}

// New creates a new server, zero config values replaced with defaults
func New(c Coder, version string, cfg Config) Server {
	if cfg.Listen == "" {
		cfg.Listen = ":8080"
	}
	if cfg.MaxBatch <= 0 {
		cfg.MaxBatch = 100
	}
	if cfg.RateLimit <= 0 {
		cfg.RateLimit = 10
	}
	return Server{coder: c, cfg: cfg, version: version}
}

// Run the listener and request's router, activate rest server
func (s Server) Run(ctx context.Context) error {
	log.Printf("[INFO] activate rest server on %s", s.cfg.Listen)

	httpServer := &http.Server{
		Addr:              s.cfg.Listen,
		Handler:           s.routes(),
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       30 * time.Second,
	}

	go func() {
		<-ctx.Done()
		if clsErr := httpServer.Close(); clsErr != nil {
			log.Printf("[ERROR] failed to close http server, %v", clsErr)
		}
	}()

	err := httpServer.ListenAndServe()
	log.Printf("[WARN] http server terminated, %s", err)

	if !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

func (s Server) routes() http.Handler {
	router := routegroup.New(http.NewServeMux())

	router.Use(rest.Recoverer(log.Default()), RequestID, rest.RealIP, rest.Throttle(1000), Timeout(30*time.Second))
	router.Use(rest.AppInfo("coupons", "umputun", s.version), rest.Ping, rest.SizeLimit(16*1024))
	router.Use(SecurityHeaders, StripSlashes, Logger(log.Default(), s.cfg.IPSecret, s.coder.Params().PartLength), s.limiter())

	router.Mount("/api/v1").Route(func(api *routegroup.Bundle) {
		api.HandleFunc("GET /generate", s.generateCtrl)
		api.HandleFunc("POST /validate", s.validateCtrl)
		api.HandleFunc("GET /validate/{code}", s.validateCtrl)
		api.HandleFunc("POST /normalize", s.normalizeCtrl)
		api.HandleFunc("GET /params", s.paramsCtrl)
	})

	router.HandleFunc("GET /robots.txt", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("User-agent: *\nDisallow: /api/\n"))
	})

	return router
}

// limiter makes per-client rate limiting middleware
func (s Server) limiter() func(http.Handler) http.Handler {
	lmt := tollbooth.NewLimiter(s.cfg.RateLimit, nil)
	lmt.SetIPLookup(limiter.IPLookup{Name: "RemoteAddr"})
	lmt.SetMessageContentType("application/json; charset=utf-8")
	lmt.SetMessage(`{"error":"rate limit exceeded"}`)
	return func(next http.Handler) http.Handler {
		return tollbooth.LimitHandler(lmt, next)
	}
}

// GET /api/v1/generate?count=N&seed=S
func (s Server) generateCtrl(w http.ResponseWriter, r *http.Request) {
	countParam, seed := r.URL.Query().Get("count"), r.URL.Query().Get("seed")

	v := validator.Validator{}
	count := 1
	if countParam != "" {
		v.CheckField(validator.IsNumber(countParam), "count", "count should be a number")
		v.CheckField(validator.InRange(countParam, 1, s.cfg.MaxBatch), "count",
			fmt.Sprintf("count should be between 1 and %d", s.cfg.MaxBatch))
		count, _ = strconv.Atoi(countParam)
	}
	if seed != "" {
		v.CheckField(validator.MaxChars(seed, maxCodeSize), "seed", "seed is too long")
		if count > 1 {
			v.AddNonFieldError("seed can't be used with count above 1")
		}
	}
	if !v.Valid() || len(v.NonFieldErrors) > 0 {
		rest.SendErrorJSON(w, r, log.Default(), http.StatusBadRequest, errors.New(v.Error()), v.Error())
		return
	}

	var codes []string
	var err error
	if seed != "" {
		var code string
		code, err = s.coder.GenerateFromSeed([]byte(seed))
		codes = []string{code}
	} else {
		codes, err = s.coder.GenerateBatch(count)
	}
	if err != nil {
		rest.SendErrorJSON(w, r, log.Default(), http.StatusInternalServerError, err, "can't generate code")
		return
	}
	rest.RenderJSON(w, rest.JSON{"codes": codes})
}

// POST /api/v1/validate {"code": "..."} or GET /api/v1/validate/{code}
func (s Server) validateCtrl(w http.ResponseWriter, r *http.Request) {
	code, ok := s.codeFromRequest(w, r)
	if !ok {
		return
	}

	canonical, err := s.coder.Parse(code)
	if err != nil {
		log.Printf("[DEBUG] invalid code, %v", err)
		rest.RenderJSON(w, rest.JSON{"code": s.coder.Normalize(code), "valid": false, "reason": err.Error()})
		return
	}
	rest.RenderJSON(w, rest.JSON{"code": canonical, "valid": true})
}

// POST /api/v1/normalize {"code": "..."}
func (s Server) normalizeCtrl(w http.ResponseWriter, r *http.Request) {
	code, ok := s.codeFromRequest(w, r)
	if !ok {
		return
	}
	rest.RenderJSON(w, rest.JSON{"code": s.coder.Normalize(code)})
}

// GET /api/v1/params
func (s Server) paramsCtrl(w http.ResponseWriter, _ *http.Request) {
	params := s.coder.Params()
	rest.RenderJSON(w, struct {
		Parts      int `json:"parts"`
		PartLength int `json:"part_length"`
		MaxBatch   int `json:"max_batch"`
	}{
		Parts:      params.Parts,
		PartLength: params.PartLength,
		MaxBatch:   s.cfg.MaxBatch,
	})
}

// codeFromRequest gets code from path or json body, sends error response if code is missing or bad
func (s Server) codeFromRequest(w http.ResponseWriter, r *http.Request) (code string, ok bool) {
	code = r.PathValue("code")
	if code == "" && r.Method == http.MethodPost {
		request := struct {
			Code string `json:"code"`
		}{}
		if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
			rest.SendErrorJSON(w, r, log.Default(), http.StatusBadRequest, err, "can't decode request")
			return "", false
		}
		code = request.Code
	}

	v := validator.Validator{}
	v.CheckField(validator.NotBlank(code), "code", "code is required")
	v.CheckField(validator.MaxChars(code, maxCodeSize), "code", "code is too long")
	if !v.Valid() {
		rest.SendErrorJSON(w, r, log.Default(), http.StatusBadRequest, errors.New(v.Error()), v.Error())
		return "", false
	}
	return code, true
}
