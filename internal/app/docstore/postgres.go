package docstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"gamevault/internal/app/db"
	"gamevault/internal/pkg/logx"
)

// txMaxAttempts bounds retries when two transactions race to create the same
// document and one loses on the primary-key conflict.
const txMaxAttempts = 3

// Postgres is the production Store implementation, one JSONB row per document.
type Postgres struct {
	pool   *pgxpool.Pool
	broker *broker
	logger zerolog.Logger
}

// NewPostgres returns a Store backed by the documents table.
func NewPostgres(pool *pgxpool.Pool) *Postgres {
	return &Postgres{
		pool:   pool,
		broker: newBroker(),
		logger: logx.Logger().With().Str("component", "docstore").Logger(),
	}
}

// Get performs a point read of one document.
func (s *Postgres) Get(ctx context.Context, collection, id string) (Snapshot, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT data FROM documents WHERE collection = $1 AND doc_id = $2`,
		collection, id,
	)

	var data []byte
	if err := row.Scan(&data); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Snapshot{}, nil
		}
		return Snapshot{}, fmt.Errorf("failed to read document %s/%s: %w", collection, id, err)
	}

	return Snapshot{Exists: true, Data: data}, nil
}

// Set performs a full-document upsert and notifies watchers.
func (s *Postgres) Set(ctx context.Context, collection, id string, doc any) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to encode document %s/%s: %w", collection, id, err)
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO documents (collection, doc_id, data)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (collection, doc_id)
		 DO UPDATE SET data = EXCLUDED.data, updated_at = now()`,
		collection, id, data,
	)
	if err != nil {
		return fmt.Errorf("failed to write document %s/%s: %w", collection, id, err)
	}

	s.broker.publish(collection, id, Snapshot{Exists: true, Data: data})
	return nil
}

// Tx runs fn with the document row locked (SELECT ... FOR UPDATE), writes the
// replacement document fn returns, and notifies watchers after commit.
// Concurrent read-modify-write cycles on the same document serialize on the
// row lock instead of losing updates.
func (s *Postgres) Tx(ctx context.Context, collection, id string, fn func(Snapshot) (any, error)) error {
	var lastErr error
	for attempt := 1; attempt <= txMaxAttempts; attempt++ {
		lastErr = s.runTx(ctx, collection, id, fn)
		if lastErr == nil {
			return nil
		}
		if !db.IsUniqueViolation(lastErr) {
			return lastErr
		}
		// Lost a creation race; the row exists now, retake it under the lock.
		s.logger.Warn().
			Str("collection", collection).
			Str("doc_id", id).
			Int("attempt", attempt).
			Msg("Document creation conflict, retrying transaction.")
	}
	return lastErr
}

func (s *Postgres) runTx(ctx context.Context, collection, id string, fn func(Snapshot) (any, error)) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin document transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	row := tx.QueryRow(ctx,
		`SELECT data FROM documents WHERE collection = $1 AND doc_id = $2 FOR UPDATE`,
		collection, id,
	)

	snap := Snapshot{}
	var data []byte
	if err := row.Scan(&data); err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("failed to read document %s/%s for update: %w", collection, id, err)
		}
	} else {
		snap = Snapshot{Exists: true, Data: data}
	}

	doc, err := fn(snap)
	if err != nil {
		return err
	}

	newData, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to encode document %s/%s: %w", collection, id, err)
	}

	if _, err := tx.Exec(ctx,
		`INSERT INTO documents (collection, doc_id, data)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (collection, doc_id)
		 DO UPDATE SET data = EXCLUDED.data, updated_at = now()`,
		collection, id, newData,
	); err != nil {
		return fmt.Errorf("failed to write document %s/%s: %w", collection, id, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit document %s/%s: %w", collection, id, err)
	}

	s.broker.publish(collection, id, Snapshot{Exists: true, Data: newData})
	return nil
}

// Watch subscribes to a document via the in-process broker.
func (s *Postgres) Watch(collection, id string) (<-chan Snapshot, func()) {
	return s.broker.watch(collection, id)
}
