package cache

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"time"
)

// entryMagic starts every file cache entry. It is followed by the expiry as
// big-endian Unix nanoseconds (zero never expires) and then the raw value,
// so binary artifacts such as workbooks are stored without re-encoding.
var entryMagic = []byte("HCE1")

const entryHeaderLen = 4 + 8

// FileCache stores one file per key under a directory. It backs the CLI,
// where a single user owns the directory.
type FileCache struct {
	dir string
}

// NewFileCache opens a cache rooted at dir, creating it if needed.
func NewFileCache(dir string) (*FileCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &FileCache{dir: dir}, nil
}

// Dir returns the cache directory.
func (c *FileCache) Dir() string {
	return c.dir
}

// Get reads the entry for key. Corrupt and expired entries are removed and
// reported as misses.
func (c *FileCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	path := c.path(key)
	raw, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	value, expires, ok := decodeEntry(raw)
	if !ok || (!expires.IsZero() && time.Now().After(expires)) {
		_ = os.Remove(path)
		return nil, false, nil
	}
	return value, true, nil
}

// Set writes the entry for key. A non-positive ttl never expires. The entry
// is written to a temporary sibling and renamed into place, so concurrent
// readers see either the old or the new value.
func (c *FileCache) Set(_ context.Context, key string, data []byte, ttl time.Duration) error {
	var expires time.Time
	if ttl > 0 {
		expires = time.Now().Add(ttl)
	}

	path := c.path(key)
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, ".entry-*")
	if err != nil {
		return err
	}
	_, err = tmp.Write(encodeEntry(data, expires))
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// Delete removes the entry for key. Missing entries are not an error.
func (c *FileCache) Delete(_ context.Context, key string) error {
	if err := os.Remove(c.path(key)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

// Usage counts the entries under the cache directory and their total size
// in bytes. Temporary files from interrupted writes are not counted.
func (c *FileCache) Usage() (entries int, size int64, err error) {
	err = filepath.WalkDir(c.dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || d.Name()[0] == '.' {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		entries++
		size += info.Size()
		return nil
	})
	return entries, size, err
}

// Clear removes every entry and recreates the empty directory.
func (c *FileCache) Clear() error {
	if err := os.RemoveAll(c.dir); err != nil {
		return err
	}
	return os.MkdirAll(c.dir, 0o755)
}

func (c *FileCache) Close() error { return nil }

// path shards entries into 256 subdirectories by the first byte of the
// key's hash.
func (c *FileCache) path(key string) string {
	sum := Hash([]byte(key))
	return filepath.Join(c.dir, sum[:2], sum[2:])
}

func encodeEntry(value []byte, expires time.Time) []byte {
	buf := make([]byte, entryHeaderLen, entryHeaderLen+len(value))
	copy(buf, entryMagic)
	if !expires.IsZero() {
		binary.BigEndian.PutUint64(buf[len(entryMagic):], uint64(expires.UnixNano()))
	}
	return append(buf, value...)
}

func decodeEntry(raw []byte) (value []byte, expires time.Time, ok bool) {
	if len(raw) < entryHeaderLen || !bytes.HasPrefix(raw, entryMagic) {
		return nil, time.Time{}, false
	}
	if ns := binary.BigEndian.Uint64(raw[len(entryMagic):entryHeaderLen]); ns != 0 {
		expires = time.Unix(0, int64(ns))
	}
	return raw[entryHeaderLen:], expires, true
}

var _ Cache = (*FileCache)(nil)
