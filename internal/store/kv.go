package store

import (
	"os"
	"path/filepath"
	"strings"

	gocache "github.com/patrickmn/go-cache"
	"github.com/pkg/errors"
)

// KV is the durable string key-value storage the client persists into. It
// mirrors the web storage contract: string keys, string values, absent keys
// are not an error.
type KV interface {
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
	Delete(key string) error
}

// FileKV stores one file per key under a root directory.
type FileKV struct {
	Dir string
}

func NewFileKV(dir string) (*FileKV, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrap(err, "could not create storage directory")
	}
	return &FileKV{Dir: dir}, nil
}

func (o *FileKV) path(key string) string {
	// Keys may carry user identities (emails); strip anything that would
	// escape the storage directory.
	replacer := strings.NewReplacer("/", "_", "\\", "_", "..", "_")
	return filepath.Join(o.Dir, replacer.Replace(key))
}

func (o *FileKV) Get(key string) (string, bool, error) {
	content, err := os.ReadFile(o.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return "", false, nil
		}
		return "", false, errors.Wrapf(err, "could not read key %s", key)
	}
	return string(content), true, nil
}

func (o *FileKV) Set(key, value string) error {
	if err := os.WriteFile(o.path(key), []byte(value), 0o644); err != nil {
		return errors.Wrapf(err, "could not write key %s", key)
	}
	return nil
}

func (o *FileKV) Delete(key string) error {
	if err := os.Remove(o.path(key)); err != nil && !os.IsNotExist(err) {
		return errors.Wrapf(err, "could not delete key %s", key)
	}
	return nil
}

// MemoryKV is a volatile store used for guests and tests. Entries never
// expire; the process lifetime bounds them.
type MemoryKV struct {
	cache *gocache.Cache
}

func NewMemoryKV() *MemoryKV {
	return &MemoryKV{cache: gocache.New(gocache.NoExpiration, 0)}
}

func (o *MemoryKV) Get(key string) (string, bool, error) {
	v, ok := o.cache.Get(key)
	if !ok {
		return "", false, nil
	}
	return v.(string), true, nil
}

func (o *MemoryKV) Set(key, value string) error {
	o.cache.Set(key, value, gocache.NoExpiration)
	return nil
}

func (o *MemoryKV) Delete(key string) error {
	o.cache.Delete(key)
	return nil
}
