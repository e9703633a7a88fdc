// Package document maps domain entities onto a ports.RecordStore. Documents
// are validated on every read so a malformed file surfaces as
// domain.ErrCorrupt instead of leaking into the services.
package document

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"iter"
	"sync/atomic"

	"github.com/charmbracelet/log"

	"github.com/vncsmyrnk/slotpoll/internal/core/domain"
	"github.com/vncsmyrnk/slotpoll/internal/core/ports"
)

const (
	PollsCollection      = "polls"
	OrganizersCollection = "organizers"
)

type collection[T any] struct {
	store    ports.RecordStore
	name     string
	validate func(id string, doc *T) error
	logger   *log.Logger
	skipped  atomic.Uint64
}

func newCollection[T any](store ports.RecordStore, name string, logger *log.Logger, validate func(string, *T) error) *collection[T] {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &collection[T]{
		store:    store,
		name:     name,
		validate: validate,
		logger:   logger.With("collection", name),
	}
}

func (c *collection[T]) put(ctx context.Context, id string, doc *T) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode %s/%s: %w", c.name, id, err)
	}
	return c.store.Put(ctx, c.name, id, data)
}

func (c *collection[T]) get(ctx context.Context, id string) (*T, error) {
	data, err := c.store.Get(ctx, c.name, id)
	if err != nil {
		return nil, err
	}
	return c.decode(id, data)
}

func (c *collection[T]) decode(id string, data []byte) (*T, error) {
	var doc T
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %s/%s: %v", domain.ErrCorrupt, c.name, id, err)
	}
	if err := c.validate(id, &doc); err != nil {
		return nil, fmt.Errorf("%w: %s/%s: %v", domain.ErrCorrupt, c.name, id, err)
	}
	return &doc, nil
}

// all yields every well-formed document. Unreadable and malformed entries are
// logged, counted and skipped; a failure of the listing itself ends the
// sequence with that error.
func (c *collection[T]) all(ctx context.Context) iter.Seq2[*T, error] {
	return func(yield func(*T, error) bool) {
		for rec, err := range c.store.List(ctx, c.name) {
			if err != nil {
				if rec.ID == "" {
					yield(nil, err)
					return
				}
				c.skip(rec.ID, err)
				continue
			}
			doc, err := c.decode(rec.ID, rec.Data)
			if err != nil {
				c.skip(rec.ID, err)
				continue
			}
			if !yield(doc, nil) {
				return
			}
		}
	}
}

func (c *collection[T]) skip(id string, err error) {
	c.skipped.Add(1)
	c.logger.Warn("skipping unreadable record", "id", id, "err", err)
}

func (c *collection[T]) delete(ctx context.Context, id string) error {
	return c.store.Delete(ctx, c.name, id)
}

// notFound rewraps a store-level ErrNotFound as the entity specific sentinel.
func notFound(err error, sentinel error, id string) error {
	if errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("%w: %s", sentinel, id)
	}
	return err
}
