package api

import (
	"context"
	"encoding/json"

	"logoped/internal/metrics"
)

// readCache loads a cached JSON value. Cache failures degrade to a miss.
func (s *HTTPServer) readCache(ctx context.Context, key string, out any) bool {
	if s.cache == nil || s.cacheTTL <= 0 {
		return false
	}
	val, err := s.cache.Get(ctx, key).Result()
	if err != nil {
		metrics.IncAvailabilityCache("miss")
		return false
	}
	if err := json.Unmarshal([]byte(val), out); err != nil {
		metrics.IncAvailabilityCache("miss")
		return false
	}
	metrics.IncAvailabilityCache("hit")
	return true
}

func (s *HTTPServer) writeCache(ctx context.Context, key string, val any) {
	if s.cache == nil || s.cacheTTL <= 0 {
		return
	}
	data, err := json.Marshal(val)
	if err != nil {
		return
	}
	_ = s.cache.Set(ctx, key, data, s.cacheTTL).Err()
}

func (s *HTTPServer) deleteCache(ctx context.Context, keys ...string) {
	if s.cache == nil || len(keys) == 0 {
		return
	}
	_ = s.cache.Del(ctx, keys...).Err()
}
