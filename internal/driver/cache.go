package driver

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/vmihailenco/msgpack/v5"

	"luamend/internal/project"
)

// Bump when the payload format changes so stale entries are ignored.
const cacheSchemaVersion uint16 = 1

// Digest is a sha256 cache key.
type Digest [sha256.Size]byte

// DiskCache stores processed outputs keyed by a digest of the input
// content and the run configuration. Safe for concurrent use.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// CachePayload is one cached processing result.
type CachePayload struct {
	Schema uint16
	Output string
}

// OpenDiskCache initializes a cache under XDG_CACHE_HOME (or
// ~/.cache) for the named application.
func OpenDiskCache(app string) (*DiskCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	dir := filepath.Join(base, app)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

func (c *DiskCache) pathFor(key Digest) string {
	return filepath.Join(c.dir, "out", hex.EncodeToString(key[:])+".mp")
}

// Put writes a payload atomically.
func (c *DiskCache) Put(key Digest, payload *CachePayload) error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	name := f.Name()
	if err := msgpack.NewEncoder(f).Encode(payload); err != nil {
		_ = f.Close()
		_ = os.Remove(name)
		return err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(name)
		return err
	}
	return os.Rename(name, p)
}

// Get reads a payload; ok is false on a miss or a schema mismatch.
func (c *DiskCache) Get(key Digest) (*CachePayload, bool, error) {
	if c == nil {
		return nil, false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, err
	}
	defer func() { _ = f.Close() }()
	var payload CachePayload
	if err := msgpack.NewDecoder(f).Decode(&payload); err != nil {
		return nil, false, err
	}
	if payload.Schema != cacheSchemaVersion {
		return nil, false, nil
	}
	return &payload, true, nil
}

// DropAll removes every cached entry.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return os.RemoveAll(filepath.Join(c.dir, "out"))
}

// cacheKey digests the file content together with everything that
// influences the output, so any config or option change misses.
func cacheKey(src string, config *project.Config, opts Options) Digest {
	h := sha256.New()
	h.Write([]byte(src))
	h.Write([]byte{0})
	fmt.Fprintf(h, "hold=%t lenient=%t\n", opts.HoldTokenData, opts.LenientStatements)
	for _, rule := range config.Rules {
		fmt.Fprintf(h, "rule %s", rule.Name)
		keys := make([]string, 0, len(rule.Properties))
		for key := range rule.Properties {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			fmt.Fprintf(h, " %s=%v", key, rule.Properties[key])
		}
		h.Write([]byte{'\n'})
	}
	var key Digest
	h.Sum(key[:0])
	return key
}
