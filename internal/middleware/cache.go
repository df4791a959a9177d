package middleware

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/stockroomlabs/stockroom/pkg/logger"
)

// CacheConfig holds cache configuration
type CacheConfig struct {
	DefaultTTL      time.Duration // Default cache TTL
	CacheableStatus []int         // HTTP status codes to cache
}

// DefaultCacheConfig returns default cache configuration
func DefaultCacheConfig() CacheConfig {
	return CacheConfig{
		DefaultTTL:      5 * time.Minute,
		CacheableStatus: []int{200, 203, 300, 301, 404, 410},
	}
}

// cacheRecorder buffers the response so it can be stored after the handler runs
type cacheRecorder struct {
	http.ResponseWriter
	statusCode int
	body       bytes.Buffer
}

func (rec *cacheRecorder) WriteHeader(code int) {
	rec.statusCode = code
	rec.ResponseWriter.WriteHeader(code)
}

func (rec *cacheRecorder) Write(b []byte) (int, error) {
	rec.body.Write(b)
	return rec.ResponseWriter.Write(b)
}

// CacheMiddleware caches GET responses in Redis
func CacheMiddleware(redisClient *redis.Client, config CacheConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Skip caching if Redis is not available
			if redisClient == nil || r.Method != http.MethodGet {
				next.ServeHTTP(w, r)
				return
			}

			cacheKey := generateCacheKey(r)
			ctx := r.Context()

			cached, err := redisClient.Get(ctx, cacheKey).Bytes()
			if err == nil && len(cached) > 0 {
				logger.Logger.Debug().
					Str("path", r.URL.Path).
					Str("cache_key", cacheKey).
					Msg("Cache hit")

				w.Header().Set("X-Cache", "HIT")
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusOK)
				w.Write(cached)
				return
			}

			w.Header().Set("X-Cache", "MISS")
			rec := &cacheRecorder{ResponseWriter: w, statusCode: http.StatusOK}
			next.ServeHTTP(rec, r)

			if isStatusCacheable(rec.statusCode, config.CacheableStatus) {
				if err := redisClient.Set(ctx, cacheKey, rec.body.Bytes(), config.DefaultTTL).Err(); err != nil {
					logger.Logger.Warn().
						Err(err).
						Str("cache_key", cacheKey).
						Msg("Failed to cache response")
				}
			}
		})
	}
}

// generateCacheKey generates a unique cache key for the request
func generateCacheKey(r *http.Request) string {
	keyComponents := fmt.Sprintf("%s:%s:%s:%s",
		r.Method,
		r.URL.Path,
		r.URL.RawQuery,
		r.Header.Get("Authorization"),
	)

	hash := sha256.Sum256([]byte(keyComponents))
	return fmt.Sprintf("cache:%s", hex.EncodeToString(hash[:]))
}

// isStatusCacheable checks if status code is cacheable
func isStatusCacheable(status int, cacheableStatus []int) bool {
	for _, s := range cacheableStatus {
		if s == status {
			return true
		}
	}
	return false
}

// InvalidateCache removes cached responses matching the key pattern
func InvalidateCache(redisClient *redis.Client, pattern string) error {
	if redisClient == nil {
		return nil
	}
	ctx := context.Background()

	iter := redisClient.Scan(ctx, 0, pattern, 0).Iterator()

	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}

	if len(keys) > 0 {
		if err := redisClient.Del(ctx, keys...).Err(); err != nil {
			return err
		}

		logger.Logger.Info().
			Int("count", len(keys)).
			Str("pattern", pattern).
			Msg("Cache invalidated")
	}

	return nil
}
