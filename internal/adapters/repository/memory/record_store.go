// Package memory is an in-process RecordStore used by tests and local runs
// that do not need durability.
package memory

import (
	"bytes"
	"context"
	"fmt"
	"iter"
	"sort"
	"sync"

	"github.com/vncsmyrnk/slotpoll/internal/core/domain"
	"github.com/vncsmyrnk/slotpoll/internal/core/ports"
)

type RecordStore struct {
	mu          sync.RWMutex
	collections map[string]map[string][]byte
}

func NewRecordStore() *RecordStore {
	return &RecordStore{collections: make(map[string]map[string][]byte)}
}

func (s *RecordStore) Put(ctx context.Context, collection, id string, document []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if collection == "" || id == "" {
		return fmt.Errorf("%w: collection and id are required", domain.ErrValidation)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	docs, ok := s.collections[collection]
	if !ok {
		docs = make(map[string][]byte)
		s.collections[collection] = docs
	}
	docs[id] = bytes.Clone(document)
	return nil
}

func (s *RecordStore) Get(ctx context.Context, collection, id string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.collections[collection][id]
	if !ok {
		return nil, fmt.Errorf("%w: %s/%s", domain.ErrNotFound, collection, id)
	}
	return bytes.Clone(data), nil
}

// List ranges over a snapshot taken when iteration starts.
func (s *RecordStore) List(ctx context.Context, collection string) iter.Seq2[ports.Record, error] {
	return func(yield func(ports.Record, error) bool) {
		s.mu.RLock()
		records := make([]ports.Record, 0, len(s.collections[collection]))
		for id, data := range s.collections[collection] {
			records = append(records, ports.Record{ID: id, Data: bytes.Clone(data)})
		}
		s.mu.RUnlock()

		sort.Slice(records, func(i, j int) bool { return records[i].ID < records[j].ID })
		for _, rec := range records {
			if err := ctx.Err(); err != nil {
				yield(ports.Record{}, err)
				return
			}
			if !yield(rec, nil) {
				return
			}
		}
	}
}

func (s *RecordStore) Delete(ctx context.Context, collection, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.collections[collection][id]; !ok {
		return fmt.Errorf("%w: %s/%s", domain.ErrNotFound, collection, id)
	}
	delete(s.collections[collection], id)
	return nil
}
