package cache

import (
	"crypto/md5"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mserban/scena/internal/logger"
	"github.com/mserban/scena/internal/metrics"
)

const (
	// TTL is the validity window for an entry, measured against the file's
	// modification time. Expired entries are treated as misses at read
	// time; nothing sweeps them.
	TTL = time.Hour

	fileSuffix = ".json"
)

// Cache persists JSON payloads keyed by (namespace, key) as one file per entry
type Cache struct {
	dir string
}

// New creates a Cache rooted at dir, creating the directory if needed
func New(dir string) (*Cache, error) {
	if strings.HasPrefix(dir, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dir = filepath.Join(home, dir[2:])
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating cache directory: %w", err)
	}

	return &Cache{dir: dir}, nil
}

// fileName derives the entry's file name: the namespace as a literal prefix,
// then the content hash of the key alone. Equal keys always collide on
// purpose; a cross-key hash collision merely causes a wrong hit, recoverable
// with ClearAll.
func fileName(namespace, key string) string {
	return fmt.Sprintf("%s_%x%s", namespace, md5.Sum([]byte(key)), fileSuffix)
}

// Get loads the entry for (namespace, key) into out and reports whether a
// valid entry existed. Missing files, unreadable files, undecodable payloads,
// and entries older than TTL are all misses. An expired entry is left on
// disk untouched.
func (c *Cache) Get(namespace, key string, out interface{}) bool {
	path := filepath.Join(c.dir, fileName(namespace, key))

	info, err := os.Stat(path)
	if err != nil {
		metrics.CacheRequests.WithLabelValues(namespace, "miss").Inc()
		return false
	}
	if time.Since(info.ModTime()) >= TTL {
		metrics.CacheRequests.WithLabelValues(namespace, "miss").Inc()
		return false
	}

	data, err := os.ReadFile(path)
	if err != nil {
		metrics.CacheRequests.WithLabelValues(namespace, "miss").Inc()
		return false
	}
	if err := json.Unmarshal(data, out); err != nil {
		metrics.CacheRequests.WithLabelValues(namespace, "miss").Inc()
		return false
	}

	metrics.CacheRequests.WithLabelValues(namespace, "hit").Inc()
	return true
}

// Put writes or overwrites the entry for (namespace, key). Caching is
// best-effort: failures are logged and swallowed so the caller's result is
// never blocked on a cache write.
func (c *Cache) Put(namespace, key string, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		logger.Warn("Failed to encode cache payload", logger.Fields{
			"namespace": namespace,
			"key":       key,
			"error":     err.Error(),
		})
		return
	}

	path := filepath.Join(c.dir, fileName(namespace, key))
	if err := os.WriteFile(path, data, 0644); err != nil {
		logger.Warn("Failed to write cache entry", logger.Fields{
			"namespace": namespace,
			"key":       key,
			"error":     err.Error(),
		})
	}
}

// ClearAll removes every persisted entry regardless of TTL and returns the
// number removed. Individual removal failures are logged and skipped; only
// a failure to list the cache directory is returned as an error. A missing
// directory means there is nothing to clear.
func (c *Cache) ClearAll() (int, error) {
	entries, err := os.ReadDir(c.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("listing cache directory: %w", err)
	}

	removed := 0
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), fileSuffix) {
			continue
		}
		if err := os.Remove(filepath.Join(c.dir, entry.Name())); err != nil {
			logger.Warn("Failed to remove cache entry", logger.Fields{
				"file":  entry.Name(),
				"error": err.Error(),
			})
			continue
		}
		removed++
	}

	return removed, nil
}
