package version

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// cacheKey is the store key holding the last successful check
const cacheKey = "updateCheck"

// cacheTTL is how long a check result is reused
const cacheTTL = 6 * time.Hour

// Store is the key-value store the cache lives in
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}

// CacheEntry is a remembered check result
type CacheEntry struct {
	LatestVersion  string    `json:"latest_version"`
	CurrentVersion string    `json:"current_version"`
	CheckedAt      time.Time `json:"checked_at"`
	HasUpdate      bool      `json:"has_update"`
}

// LoadCache returns the cached entry, or nil when there is none
func LoadCache(ctx context.Context, s Store) (*CacheEntry, error) {
	raw, ok, err := s.Get(ctx, cacheKey)
	if err != nil || !ok {
		return nil, err
	}
	var e CacheEntry
	if err := json.Unmarshal([]byte(raw), &e); err != nil {
		return nil, fmt.Errorf("decode update cache: %w", err)
	}
	return &e, nil
}

// SaveCache stores e
func SaveCache(ctx context.Context, s Store, e *CacheEntry) error {
	data, err := json.Marshal(e)
	if err != nil {
		return err
	}
	return s.Set(ctx, cacheKey, string(data))
}

// IsCacheValid reports whether e can answer a check for currentVersion at now
func IsCacheValid(e *CacheEntry, currentVersion string, now time.Time) bool {
	if e == nil || e.CurrentVersion != currentVersion {
		return false
	}
	return now.Sub(e.CheckedAt) < cacheTTL
}

// CheckCached answers from the cache when it is fresh and otherwise asks c.
// Only successful checks are cached.
func CheckCached(ctx context.Context, s Store, c *Checker, currentVersion string) CheckResult {
	now := time.Now()
	if cached, err := LoadCache(ctx, s); err == nil && IsCacheValid(cached, currentVersion, now) {
		return CheckResult{
			CurrentVersion: currentVersion,
			LatestVersion:  cached.LatestVersion,
			HasUpdate:      cached.HasUpdate,
		}
	}

	result := c.Check(ctx, currentVersion)
	if result.Error == nil && !IsDevelopmentVersion(currentVersion) {
		_ = SaveCache(ctx, s, &CacheEntry{
			LatestVersion:  result.LatestVersion,
			CurrentVersion: currentVersion,
			CheckedAt:      now,
			HasUpdate:      result.HasUpdate,
		})
	}
	return result
}
