package cache

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/cespare/xxhash/v2"
)

const cacheRoot = "cache"

// Path returns the cache file path for a rendered article response.
// The table name ("articles" or "kb") namespaces the two slug spaces.
func Path(table, slug string) string {
	hash := xxhash.Sum64String(table + "/" + slug)
	return filepath.Join(cacheRoot, table, fmt.Sprintf("%s_%016x.json", slug, hash))
}

// Write stores a rendered JSON response for a published article.
func Write(table, slug string, body []byte) error {
	path := Path(table, slug)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, body, 0o644)
}

// Read returns a cached response when present and younger than maxAge.
func Read(table, slug string, maxAge time.Duration) ([]byte, bool) {
	path := Path(table, slug)

	info, err := os.Stat(path)
	if err != nil {
		return nil, false
	}
	if time.Since(info.ModTime()) > maxAge {
		return nil, false
	}

	body, err := os.ReadFile(path)
	if err != nil {
		return nil, false
	}
	return body, true
}

// Clear removes the cached response for one slug. Called whenever an
// admin saves or deletes the row behind it.
func Clear(table, slug string) error {
	err := os.Remove(Path(table, slug))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// ClearOld removes cache files older than maxAge; wired to run at startup.
func ClearOld(maxAge time.Duration) error {
	return filepath.Walk(cacheRoot, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			return err
		}
		if info.IsDir() || filepath.Ext(path) != ".json" {
			return nil
		}
		if time.Since(info.ModTime()) > maxAge {
			os.Remove(path)
		}
		return nil
	})
}
