// Package caching is a file-based TTL cache for raw endpoint bodies, so a
// refresh with --max-age can replay recent payloads instead of hitting the
// network.
package caching

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Entry is one cached HTTP exchange.
type Entry struct {
	Status      int    `json:"status"`
	ContentType string `json:"content_type,omitempty"`
	Body        string `json:"body"`
}

// Cache stores entries keyed by URL hash under a single directory.
type Cache struct {
	path string
	ttl  time.Duration
}

// NewCache creates the cache directory if needed. A zero ttl disables reads
// (every Get misses) while writes still happen, matching --force-fetch.
func NewCache(path string, ttl time.Duration) (*Cache, error) {
	if err := os.MkdirAll(path, 0755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}
	return &Cache{path: path, ttl: ttl}, nil
}

func (c *Cache) key(url string) string {
	hash := sha256.Sum256([]byte(url))
	return fmt.Sprintf("%x.json", hash)
}

// Get retrieves a cached entry for url if present and not expired.
func (c *Cache) Get(url string) (Entry, bool) {
	if c.ttl <= 0 {
		return Entry{}, false
	}
	filePath := filepath.Join(c.path, c.key(url))

	info, err := os.Stat(filePath)
	if os.IsNotExist(err) || err != nil {
		return Entry{}, false
	}
	if time.Since(info.ModTime()) > c.ttl {
		return Entry{}, false
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return Entry{}, false
	}
	var entry Entry
	if err := json.Unmarshal(data, &entry); err != nil {
		return Entry{}, false
	}
	return entry, true
}

// Set stores an entry for url.
func (c *Cache) Set(url string, entry Entry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal cache entry: %w", err)
	}
	filePath := filepath.Join(c.path, c.key(url))
	if err := os.WriteFile(filePath, data, 0644); err != nil {
		return fmt.Errorf("failed to write to cache: %w", err)
	}
	return nil
}
