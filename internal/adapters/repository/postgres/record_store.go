package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"iter"

	"github.com/jmoiron/sqlx"

	"github.com/vncsmyrnk/slotpoll/internal/core/domain"
	"github.com/vncsmyrnk/slotpoll/internal/core/ports"
)

// recordStore keeps documents in a single JSONB table. Each Put is one
// upsert statement, which gives the same all-or-nothing visibility as the
// filesystem rename.
type recordStore struct {
	db *sqlx.DB
}

func NewRecordStore(db *sqlx.DB) ports.RecordStore {
	return &recordStore{
		db: db,
	}
}

func (r *recordStore) Put(ctx context.Context, collection, id string, document []byte) error {
	query := `
		INSERT INTO records (collection, id, document, updated_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (collection, id) DO UPDATE
		SET document = EXCLUDED.document,
		    updated_at = NOW()
	`
	_, err := r.db.ExecContext(ctx, query, collection, id, string(document))
	if err != nil {
		return fmt.Errorf("%w: failed to save %s/%s: %v", domain.ErrStorageUnavailable, collection, id, err)
	}
	return nil
}

func (r *recordStore) Get(ctx context.Context, collection, id string) ([]byte, error) {
	query := `SELECT document FROM records WHERE collection = $1 AND id = $2`

	var document []byte
	err := r.db.GetContext(ctx, &document, query, collection, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s/%s", domain.ErrNotFound, collection, id)
		}
		return nil, fmt.Errorf("%w: failed to get %s/%s: %v", domain.ErrStorageUnavailable, collection, id, err)
	}
	return document, nil
}

func (r *recordStore) List(ctx context.Context, collection string) iter.Seq2[ports.Record, error] {
	return func(yield func(ports.Record, error) bool) {
		query := `SELECT id, document FROM records WHERE collection = $1 ORDER BY id`

		rows, err := r.db.QueryxContext(ctx, query, collection)
		if err != nil {
			yield(ports.Record{}, fmt.Errorf("%w: failed to list %s: %v", domain.ErrStorageUnavailable, collection, err))
			return
		}
		defer rows.Close()

		for rows.Next() {
			var rec ports.Record
			if err := rows.Scan(&rec.ID, &rec.Data); err != nil {
				yield(ports.Record{}, fmt.Errorf("%w: failed to scan %s: %v", domain.ErrStorageUnavailable, collection, err))
				return
			}
			if !yield(rec, nil) {
				return
			}
		}
		if err := rows.Err(); err != nil {
			yield(ports.Record{}, fmt.Errorf("%w: error iterating %s: %v", domain.ErrStorageUnavailable, collection, err))
		}
	}
}

func (r *recordStore) Delete(ctx context.Context, collection, id string) error {
	query := `DELETE FROM records WHERE collection = $1 AND id = $2`

	res, err := r.db.ExecContext(ctx, query, collection, id)
	if err != nil {
		return fmt.Errorf("%w: failed to delete %s/%s: %v", domain.ErrStorageUnavailable, collection, id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: failed to delete %s/%s: %v", domain.ErrStorageUnavailable, collection, id, err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s/%s", domain.ErrNotFound, collection, id)
	}
	return nil
}
