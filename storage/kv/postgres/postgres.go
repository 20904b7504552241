// Package pgkv backs the storage substrate with Postgres: one row per
// collection in the collections table, records held as a jsonb array.
// Collection semantics stay whole-document read/write; the database only
// buys durability and visibility to external tooling.
package pgkv

import (
	"database/sql"
	"encoding/json"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/pkg/errors"

	"madaris/core"
)

type backend struct {
	db *sqlx.DB
}

var _ core.Backend = (*backend)(nil)

// Open connects to the database named by conf.DatabaseURL and waits for it
// to be ready. Waits 100ms longer between each attempt.
func Open(conf *core.Config) (*sqlx.DB, error) {
	db, err := sqlx.Open("postgres", conf.DatabaseURL)
	if err != nil {
		return nil, errors.Wrap(err, "opening DB")
	}

	maxAttempts := 30
	for attempts := 1; attempts <= maxAttempts; attempts++ {
		if err = db.Ping(); err == nil {
			break
		}
		time.Sleep(time.Duration(attempts) * 100 * time.Millisecond)
	}
	if err != nil {
		return nil, errors.Wrap(err, "DB ping timeout")
	}
	return db, nil
}

func NewBackend(db *sqlx.DB) core.Backend {
	return &backend{db: db}
}

func (b *backend) ReadCollection(name string) ([]json.RawMessage, error) {
	var data []byte
	err := b.db.Get(&data, "SELECT data FROM collections WHERE name = $1", name)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, errors.Wrapf(err, "reading collection %s", name)
	}

	var recs []json.RawMessage
	if err := json.Unmarshal(data, &recs); err != nil {
		return nil, errors.Wrapf(err, "decoding collection %s", name)
	}
	return recs, nil
}

func (b *backend) WriteCollection(name string, records []json.RawMessage) error {
	if records == nil {
		records = []json.RawMessage{}
	}
	data, err := json.Marshal(records)
	if err != nil {
		return errors.Wrapf(err, "encoding collection %s", name)
	}

	_, err = b.db.Exec(
		`INSERT INTO collections (name, data, updated_at) VALUES ($1, $2, now())
		 ON CONFLICT (name) DO UPDATE SET data = EXCLUDED.data, updated_at = now()`,
		name, data,
	)
	return errors.Wrapf(err, "writing collection %s", name)
}
