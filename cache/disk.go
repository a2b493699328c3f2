package cache

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
)

// Disk caches values as one file per key under a directory, so entries
// can be shared between processes. Readers and writers coordinate
// through advisory file locks; expiry is judged from the file's
// modification time.
type Disk struct {
	dir        string
	defaultTTL time.Duration
}

var _ Cache = (*Disk)(nil)

// NewDisk creates a disk cache rooted at dir, creating the directory
// if needed.
func NewDisk(dir string, defaultTTL time.Duration) (*Disk, error) {
	if dir == "" {
		return nil, fmt.Errorf("cache: directory is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("cache: create directory %q: %w", dir, err)
	}
	return &Disk{dir: dir, defaultTTL: defaultTTL}, nil
}

// entryPath hashes the key so arbitrary strings map to safe file names.
func (d *Disk) entryPath(key string) string {
	sum := sha1.Sum([]byte(key))
	return filepath.Join(d.dir, hex.EncodeToString(sum[:])+".cache")
}

func (d *Disk) withLock(path string, fn func() error) error {
	lock := flock.New(path + ".lock")
	if err := lock.Lock(); err != nil {
		return fmt.Errorf("cache: lock %q: %w", path, err)
	}
	defer func() {
		_ = lock.Unlock()
	}()
	return fn()
}

func (d *Disk) Get(key string) ([]byte, bool, error) {
	path := d.entryPath(key)
	var value []byte
	var found bool
	err := d.withLock(path, func() error {
		info, err := os.Stat(path)
		if os.IsNotExist(err) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("cache: stat %q: %w", path, err)
		}
		if d.expired(info.ModTime()) {
			_ = os.Remove(path)
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("cache: read %q: %w", path, err)
		}
		value = data
		found = true
		return nil
	})
	return value, found, err
}

func (d *Disk) Set(key string, value []byte, ttl time.Duration) error {
	if ttl == 0 {
		ttl = d.defaultTTL
	}
	path := d.entryPath(key)
	return d.withLock(path, func() error {
		if err := os.WriteFile(path, value, 0o644); err != nil {
			return fmt.Errorf("cache: write %q: %w", path, err)
		}
		// Expiry is stored as the mtime: stamp the moment the entry
		// should die, minus the default window applied on read.
		deadline := time.Now().Add(ttl - d.defaultTTL)
		return os.Chtimes(path, deadline, deadline)
	})
}

func (d *Disk) Delete(key string) error {
	path := d.entryPath(key)
	return d.withLock(path, func() error {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("cache: remove %q: %w", path, err)
		}
		return nil
	})
}

// Flush removes every cache entry and lock file under the directory.
func (d *Disk) Flush() error {
	entries, err := os.ReadDir(d.dir)
	if err != nil {
		return fmt.Errorf("cache: read directory %q: %w", d.dir, err)
	}
	for _, entry := range entries {
		ext := filepath.Ext(entry.Name())
		if ext != ".cache" && ext != ".lock" {
			continue
		}
		if err := os.Remove(filepath.Join(d.dir, entry.Name())); err != nil && !os.IsNotExist(err) {
			return err
		}
	}
	return nil
}

// Purge removes only the entries that have expired.
func (d *Disk) Purge() error {
	entries, err := os.ReadDir(d.dir)
	if err != nil {
		return fmt.Errorf("cache: read directory %q: %w", d.dir, err)
	}
	for _, entry := range entries {
		if filepath.Ext(entry.Name()) != ".cache" {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if d.expired(info.ModTime()) {
			_ = os.Remove(filepath.Join(d.dir, entry.Name()))
		}
	}
	return nil
}

func (d *Disk) expired(mtime time.Time) bool {
	if d.defaultTTL <= 0 {
		return false
	}
	return time.Since(mtime) > d.defaultTTL
}
