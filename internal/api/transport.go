package api

import (
	"net/http"
	"time"

	"github.com/gregjones/httpcache"
	"github.com/gregjones/httpcache/diskcache"
)

// NewCachingHTTPClient creates an HTTP client with disk-based caching.
// Result images never change once generated, so the backend marks the
// /contents/{id}/image responses cacheable and repeat downloads are served
// locally. Non-GET requests pass through the cache untouched.
func NewCachingHTTPClient(cacheDir string, timeout time.Duration) *http.Client {
	if cacheDir == "" {
		// Use in-memory cache if no cache directory specified
		return &http.Client{
			Transport: httpcache.NewTransport(httpcache.NewMemoryCache()),
			Timeout:   timeout,
		}
	}

	// Use disk-based cache for persistence across runs
	cache := diskcache.New(cacheDir)
	transport := httpcache.NewTransport(cache)

	return &http.Client{
		Transport: transport,
		Timeout:   timeout,
	}
}

// NewInMemoryCachingHTTPClient creates an HTTP client with in-memory caching
// only. Suitable for testing or when disk caching is not desired.
func NewInMemoryCachingHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Transport: httpcache.NewTransport(httpcache.NewMemoryCache()),
		Timeout:   timeout,
	}
}
