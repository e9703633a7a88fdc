// Package filestore keeps each document as <root>/<collection>/<id>.json and
// replaces it through a temporary file and an atomic rename.
package filestore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"iter"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/charmbracelet/log"
	gonanoid "github.com/matoous/go-nanoid/v2"

	"github.com/vncsmyrnk/slotpoll/internal/core/domain"
	"github.com/vncsmyrnk/slotpoll/internal/core/ports"
)

const (
	documentExt = ".json"
	tmpExt      = ".tmp"
	suffixChars = "0123456789abcdef"
	suffixLen   = 12

	dirPerm  = 0o755
	filePerm = 0o644
)

type RecordStore struct {
	root   string
	logger *log.Logger

	// swapped in tests to simulate a crash between write and rename
	rename func(oldpath, newpath string) error
}

func NewRecordStore(root string, logger *log.Logger) ports.RecordStore {
	return newRecordStore(root, logger)
}

func newRecordStore(root string, logger *log.Logger) *RecordStore {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &RecordStore{
		root:   root,
		logger: logger,
		rename: os.Rename,
	}
}

func (s *RecordStore) Put(ctx context.Context, collection, id string, document []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	dir, path, err := s.paths(collection, id)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return fmt.Errorf("%w: failed to create collection directory: %v", domain.ErrStorageUnavailable, err)
	}

	suffix, err := gonanoid.Generate(suffixChars, suffixLen)
	if err != nil {
		return fmt.Errorf("%w: failed to generate temp suffix: %v", domain.ErrStorageUnavailable, err)
	}
	tmp := path + "." + suffix + tmpExt

	if err := writeSynced(tmp, document); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("%w: failed to write %s/%s: %v", domain.ErrStorageUnavailable, collection, id, err)
	}

	if err := s.rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("%w: failed to replace %s/%s: %v", domain.ErrStorageUnavailable, collection, id, err)
	}

	if err := syncDir(dir); err != nil {
		s.logger.Debug("directory sync failed", "dir", dir, "err", err)
	}
	return nil
}

func (s *RecordStore) Get(ctx context.Context, collection, id string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	_, path, err := s.paths(collection, id)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s/%s", domain.ErrNotFound, collection, id)
		}
		return nil, fmt.Errorf("%w: failed to read %s/%s: %v", domain.ErrStorageUnavailable, collection, id, err)
	}
	return data, nil
}

func (s *RecordStore) List(ctx context.Context, collection string) iter.Seq2[ports.Record, error] {
	return func(yield func(ports.Record, error) bool) {
		if err := validateSegment("collection", collection); err != nil {
			yield(ports.Record{}, err)
			return
		}
		dir := filepath.Join(s.root, collection)

		entries, err := os.ReadDir(dir)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return
			}
			yield(ports.Record{}, fmt.Errorf("%w: failed to list %s: %v", domain.ErrStorageUnavailable, collection, err))
			return
		}

		ids := make([]string, 0, len(entries))
		for _, e := range entries {
			name := e.Name()
			if e.IsDir() || !strings.HasSuffix(name, documentExt) {
				continue
			}
			ids = append(ids, strings.TrimSuffix(name, documentExt))
		}
		sort.Strings(ids)

		for _, id := range ids {
			if err := ctx.Err(); err != nil {
				yield(ports.Record{}, err)
				return
			}
			data, err := os.ReadFile(filepath.Join(dir, id+documentExt))
			if err != nil {
				// removed between ReadDir and ReadFile
				if errors.Is(err, fs.ErrNotExist) {
					continue
				}
				err = fmt.Errorf("%w: failed to read %s/%s: %v", domain.ErrStorageUnavailable, collection, id, err)
				if !yield(ports.Record{ID: id}, err) {
					return
				}
				continue
			}
			if !yield(ports.Record{ID: id, Data: data}, nil) {
				return
			}
		}
	}
}

func (s *RecordStore) Delete(ctx context.Context, collection, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, path, err := s.paths(collection, id)
	if err != nil {
		return err
	}

	if err := os.Remove(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s/%s", domain.ErrNotFound, collection, id)
		}
		return fmt.Errorf("%w: failed to delete %s/%s: %v", domain.ErrStorageUnavailable, collection, id, err)
	}
	return nil
}

func (s *RecordStore) paths(collection, id string) (dir, path string, err error) {
	if err := validateSegment("collection", collection); err != nil {
		return "", "", err
	}
	if err := validateSegment("id", id); err != nil {
		return "", "", err
	}
	dir = filepath.Join(s.root, collection)
	return dir, filepath.Join(dir, id+documentExt), nil
}

// validateSegment keeps ids and collection names from escaping their directory.
func validateSegment(kind, value string) error {
	if value == "" || value == "." || value == ".." ||
		strings.ContainsAny(value, `/\`) || strings.ContainsRune(value, 0) {
		return fmt.Errorf("%w: invalid %s %q", domain.ErrValidation, kind, value)
	}
	return nil
}

func writeSynced(path string, data []byte) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, filePerm)
	if err != nil {
		return err
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return err
	}
	if err := f.Sync(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func syncDir(dir string) error {
	d, err := os.Open(dir)
	if err != nil {
		return err
	}
	defer d.Close()
	return d.Sync()
}
