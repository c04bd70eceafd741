package version

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

type mapStore map[string]string

func (m mapStore) Get(_ context.Context, key string) (string, bool, error) {
	v, ok := m[key]
	return v, ok, nil
}

func (m mapStore) Set(_ context.Context, key, value string) error {
	m[key] = value
	return nil
}

func releaseServer(t *testing.T, tag string, hits *int32) *Checker {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(hits, 1)
		json.NewEncoder(w).Encode(Release{TagName: tag, HTMLURL: "https://example.com/" + tag})
	}))
	t.Cleanup(srv.Close)
	return &Checker{URL: srv.URL, HTTP: srv.Client()}
}

func TestIsNewer(t *testing.T) {
	tests := []struct {
		latest, current string
		want            bool
	}{
		{"v1.2.0", "v1.1.9", true},
		{"1.2.0", "v1.2.0", false},
		{"v1.10.0", "v1.9.0", true},
		{"v1.0.0", "v1.0.0-beta", true},
		{"v1.0.0-beta", "v1.0.0", false},
		{"garbage", "v1.0.0", false},
	}
	for _, tt := range tests {
		if got := IsNewer(tt.latest, tt.current); got != tt.want {
			t.Errorf("IsNewer(%q, %q) = %v, want %v", tt.latest, tt.current, got, tt.want)
		}
	}
}

func TestIsDevelopmentVersion(t *testing.T) {
	for _, v := range []string{"", "dev", "devel", "unknown", "devel+abc123+dirty"} {
		if !IsDevelopmentVersion(v) {
			t.Errorf("IsDevelopmentVersion(%q) = false", v)
		}
	}
	if IsDevelopmentVersion("v1.0.0") {
		t.Error("v1.0.0 treated as development")
	}
}

func TestUpdateCommandRejectsInvalid(t *testing.T) {
	if UpdateCommand("v1.2.3; rm -rf /") != "" {
		t.Error("invalid version produced a command")
	}
	if UpdateCommand("v1.2.3") == "" {
		t.Error("valid version produced no command")
	}
}

func TestCheckSkipsDevelopmentBuilds(t *testing.T) {
	var hits int32
	c := releaseServer(t, "v9.9.9", &hits)
	if r := c.Check(context.Background(), "dev"); r.HasUpdate || r.Error != nil {
		t.Errorf("dev check = %+v", r)
	}
	if atomic.LoadInt32(&hits) != 0 {
		t.Errorf("dev build hit the network %d times", hits)
	}
}

func TestCheckCachedUsesStore(t *testing.T) {
	var hits int32
	c := releaseServer(t, "v1.5.0", &hits)
	store := mapStore{}
	ctx := context.Background()

	r := CheckCached(ctx, store, c, "v1.0.0")
	if !r.HasUpdate || r.LatestVersion != "v1.5.0" {
		t.Fatalf("first check = %+v", r)
	}

	r = CheckCached(ctx, store, c, "v1.0.0")
	if !r.HasUpdate || atomic.LoadInt32(&hits) != 1 {
		t.Fatalf("second check = %+v, hits = %d", r, hits)
	}

	// An upgrade invalidates the cached answer
	r = CheckCached(ctx, store, c, "v1.5.0")
	if r.HasUpdate || atomic.LoadInt32(&hits) != 2 {
		t.Fatalf("after upgrade = %+v, hits = %d", r, hits)
	}
}

func TestIsCacheValid(t *testing.T) {
	now := time.Now()
	fresh := &CacheEntry{CurrentVersion: "v1.0.0", CheckedAt: now.Add(-time.Hour)}
	stale := &CacheEntry{CurrentVersion: "v1.0.0", CheckedAt: now.Add(-7 * time.Hour)}

	if !IsCacheValid(fresh, "v1.0.0", now) {
		t.Error("fresh entry rejected")
	}
	if IsCacheValid(stale, "v1.0.0", now) {
		t.Error("stale entry accepted")
	}
	if IsCacheValid(fresh, "v1.1.0", now) {
		t.Error("entry for another version accepted")
	}
	if IsCacheValid(nil, "v1.0.0", now) {
		t.Error("nil entry accepted")
	}
}
