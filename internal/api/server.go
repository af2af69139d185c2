package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/cors"
	"github.com/rs/zerolog"

	"logoped/internal/availability"
	"logoped/internal/database"
)

// Options configures the HTTP server.
type Options struct {
	AdminAPIKey    string
	HorizonDays    int
	AllowedOrigins []string
	RatePerSecond  float64
	RateBurst      int
}

// HTTPServer serves the public booking API and the admin back office.
type HTTPServer struct {
	db      *database.DB
	logger  *zerolog.Logger
	opts    Options
	limiter *ipLimiter

	cache    *redis.Client
	cacheTTL time.Duration

	// now is the clock; tests override it for date-sensitive handlers.
	now func() time.Time
}

// NewHTTPServer constructs the server.
func NewHTTPServer(db *database.DB, logger *zerolog.Logger, opts Options) *HTTPServer {
	if opts.HorizonDays <= 0 {
		opts.HorizonDays = availability.DefaultHorizonDays
	}
	return &HTTPServer{
		db:      db,
		logger:  logger,
		opts:    opts,
		limiter: newIPLimiter(opts.RatePerSecond, opts.RateBurst),
		now:     time.Now,
	}
}

// UseRedisCache configures optional Redis caching for availability reads.
func (s *HTTPServer) UseRedisCache(client *redis.Client, ttl time.Duration) {
	s.cache = client
	s.cacheTTL = ttl
}

// Handler builds the route table, wrapped with CORS for the browser client.
func (s *HTTPServer) Handler() http.Handler {
	mux := http.NewServeMux()

	// Public surface
	mux.HandleFunc("POST /api/v1/applications", s.rateLimited(s.handleCreateApplication))
	mux.HandleFunc("GET /api/v1/schedule", s.handleSchedule)
	mux.HandleFunc("GET /api/v1/availability", s.handleAvailabilityMonth)
	mux.HandleFunc("GET /api/v1/availability/day", s.handleAvailabilityDay)

	// Admin surface
	mux.HandleFunc("GET /api/v1/admin/applications", s.requireAdmin(s.handleListApplications))
	mux.HandleFunc("GET /api/v1/admin/applications/export", s.requireAdmin(s.handleExportApplications))
	mux.HandleFunc("POST /api/v1/admin/applications/{id}/status", s.requireAdmin(s.handleUpdateStatus))
	mux.HandleFunc("POST /api/v1/admin/applications/{id}/comment", s.requireAdmin(s.handleUpdateComment))
	mux.HandleFunc("PUT /api/v1/admin/schedule", s.requireAdmin(s.handleUpdateSchedule))
	mux.HandleFunc("GET /api/v1/admin/settings/{channel}", s.requireAdmin(s.handleGetSettings))
	mux.HandleFunc("PUT /api/v1/admin/settings/{channel}", s.requireAdmin(s.handleUpdateSettings))

	c := cors.New(cors.Options{
		AllowedOrigins: s.opts.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut},
		AllowedHeaders: []string{"Content-Type", "X-API-Key"},
	})
	return c.Handler(mux)
}

// requireAdmin rejects requests without the configured X-API-Key.
func (s *HTTPServer) requireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.opts.AdminAPIKey == "" || r.Header.Get("X-API-Key") != s.opts.AdminAPIKey {
			writeError(w, http.StatusUnauthorized, "invalid or missing API key")
			return
		}
		next(w, r)
	}
}

// engineState is the immutable-per-request snapshot the availability engine
// computes from: the weekly schedule and the booked-slot index.
type engineState struct {
	schedule availability.Schedule
	booked   map[string][]string
}

func (s *HTTPServer) loadEngineState(ctx context.Context) (*engineState, error) {
	rules, err := s.db.ListSchedule(ctx)
	if err != nil {
		return nil, err
	}
	preferred, err := s.db.ListPreferredTimes(ctx)
	if err != nil {
		return nil, err
	}
	return &engineState{
		schedule: availability.NewSchedule(rules),
		booked:   availability.BuildBookedIndex(preferred),
	}, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
