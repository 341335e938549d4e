package cache

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// ErrMiss is returned when a key is absent from the manifest or its backing
// file no longer exists.
var ErrMiss = errors.New("cache miss")

const manifestName = "manifest.json"

// FileCache maps asset-usage keys to downloaded filenames. The mapping is a
// flat dictionary persisted wholesale to manifest.json on every mutation.
// There is no TTL, no size bound, and no eviction; Clear is the only
// invalidation.
type FileCache struct {
	dir          string
	manifestPath string

	mu      sync.RWMutex
	entries map[string]string // key → filename (relative to dir)
	loaded  bool
}

// New creates a cache rooted at dir, creating the directory if needed
func New(dir string) (*FileCache, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}

	return &FileCache{
		dir:          dir,
		manifestPath: filepath.Join(dir, manifestName),
		entries:      make(map[string]string),
	}, nil
}

// Dir returns the cache directory
func (c *FileCache) Dir() string {
	return c.dir
}

// load reads the manifest from disk. Callers must hold the write lock.
func (c *FileCache) load() error {
	if c.loaded {
		return nil
	}

	data, err := os.ReadFile(c.manifestPath)
	if err != nil {
		if os.IsNotExist(err) {
			c.loaded = true
			return nil
		}
		return fmt.Errorf("failed to read cache manifest: %w", err)
	}

	if err := json.Unmarshal(data, &c.entries); err != nil {
		return fmt.Errorf("failed to parse cache manifest: %w", err)
	}

	c.loaded = true
	return nil
}

// flush writes the full manifest to disk. Callers must hold at least the
// read lock.
func (c *FileCache) flush() error {
	data, err := json.MarshalIndent(c.entries, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal cache manifest: %w", err)
	}

	if err := os.WriteFile(c.manifestPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write cache manifest: %w", err)
	}

	return nil
}

// Path resolves a key to the absolute path of its stored file
func (c *FileCache) Path(key string) (string, error) {
	c.mu.Lock()
	if err := c.load(); err != nil {
		c.mu.Unlock()
		return "", err
	}
	filename, ok := c.entries[key]
	c.mu.Unlock()

	if !ok {
		return "", fmt.Errorf("%w: %s", ErrMiss, key)
	}

	path := filepath.Join(c.dir, filename)
	if _, err := os.Stat(path); err != nil {
		// Manifest entry survived but the file is gone; treat as a miss.
		return "", fmt.Errorf("%w: %s", ErrMiss, key)
	}

	return path, nil
}

// Contains reports whether the key resolves to an existing file
func (c *FileCache) Contains(key string) bool {
	_, err := c.Path(key)
	return err == nil
}

// Store writes data to the cache under a filename derived from the key,
// records the mapping, and persists the manifest synchronously
func (c *FileCache) Store(key string, data []byte, ext string) (string, error) {
	filename := sanitizeFilename(key) + ext
	path := filepath.Join(c.dir, filename)

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write cached file: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.load(); err != nil {
		return "", err
	}

	c.entries[key] = filename
	if err := c.flush(); err != nil {
		return "", err
	}

	return path, nil
}

// Keys returns every key currently in the manifest
func (c *FileCache) Keys() []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.load(); err != nil {
		return nil
	}

	keys := make([]string, 0, len(c.entries))
	for k := range c.entries {
		keys = append(keys, k)
	}
	return keys
}

// Len returns the number of manifest entries
func (c *FileCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.load(); err != nil {
		return 0
	}
	return len(c.entries)
}

// Size returns the total bytes of all stored files
func (c *FileCache) Size() (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.load(); err != nil {
		return 0, err
	}

	var total int64
	for _, filename := range c.entries {
		info, err := os.Stat(filepath.Join(c.dir, filename))
		if err != nil {
			continue
		}
		total += info.Size()
	}
	return total, nil
}

// Verify checks every manifest entry against the filesystem and returns the
// keys whose backing files are missing
func (c *FileCache) Verify() ([]string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.load(); err != nil {
		return nil, err
	}

	var missing []string
	for key, filename := range c.entries {
		if _, err := os.Stat(filepath.Join(c.dir, filename)); err != nil {
			missing = append(missing, key)
		}
	}
	return missing, nil
}

// Clear removes every stored file and resets the manifest
func (c *FileCache) Clear() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.load(); err != nil {
		return err
	}

	for _, filename := range c.entries {
		if err := os.Remove(filepath.Join(c.dir, filename)); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove cached file %s: %w", filename, err)
		}
	}

	c.entries = make(map[string]string)
	return c.flush()
}

// sanitizeFilename makes a cache key safe to use as a filename
func sanitizeFilename(key string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '-' || r == '_' || r == '.':
			return r
		default:
			return '_'
		}
	}, key)
}
