package ports

import (
	"context"
	"iter"
)

// Record is one raw stored document. ID is always set for per-entry failures
// yielded by RecordStore.List; a listing-wide failure yields an empty ID.
type Record struct {
	ID   string
	Data []byte
}

// RecordStore persists one JSON document per id inside a named collection.
// Put must be atomic: readers observe either the previous document or the new
// one, never a partial write.
type RecordStore interface {
	Put(ctx context.Context, collection, id string, document []byte) error
	Get(ctx context.Context, collection, id string) ([]byte, error)
	// List is lazy and restartable: each range re-reads the collection.
	List(ctx context.Context, collection string) iter.Seq2[Record, error]
	Delete(ctx context.Context, collection, id string) error
}
