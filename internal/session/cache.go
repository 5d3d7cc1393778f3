package session

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

// ScanCache persists parsed records keyed by file path and mtime, so
// repeated runs only re-parse session files that changed. It is a plain
// JSON file; a missing or corrupt cache is treated as empty, never fatal.
type ScanCache struct {
	path    string
	entries map[string]cacheEntry
	dirty   bool
}

type cacheEntry struct {
	ModTime time.Time `json:"mod_time"`
	Record  Record    `json:"record"`
}

func LoadScanCache(path string) *ScanCache {
	c := &ScanCache{path: path, entries: map[string]cacheEntry{}}
	data, err := os.ReadFile(path)
	if err != nil {
		return c
	}
	if json.Unmarshal(data, &c.entries) != nil {
		c.entries = map[string]cacheEntry{}
	}
	return c
}

func (c *ScanCache) Get(path string, mtime time.Time) (Record, bool) {
	entry, ok := c.entries[path]
	if !ok || !entry.ModTime.Equal(mtime) {
		return Record{}, false
	}
	return entry.Record, true
}

func (c *ScanCache) Set(path string, mtime time.Time, rec Record) {
	c.entries[path] = cacheEntry{ModTime: mtime, Record: rec}
	c.dirty = true
}

// Prune drops entries for files that no longer exist on disk.
func (c *ScanCache) Prune(validPaths map[string]bool) {
	for path := range c.entries {
		if !validPaths[path] {
			delete(c.entries, path)
			c.dirty = true
		}
	}
}

// Save writes the cache back if anything changed.
func (c *ScanCache) Save() error {
	if !c.dirty {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(c.path), 0o755); err != nil {
		return err
	}
	data, err := json.Marshal(c.entries)
	if err != nil {
		return err
	}
	return os.WriteFile(c.path, data, 0o644)
}
