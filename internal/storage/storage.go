// Package storage selects the record-store backend at startup.
package storage

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"voice_courier/internal/config"
	"voice_courier/internal/service"
	"voice_courier/internal/storage/postgres"
	"voice_courier/internal/storage/sqlite"
	"voice_courier/internal/storage/txn"
)

// Stores is the data-access set handed to the services.
type Stores struct {
	Backend    string
	Accounts   service.AccountStore
	Sentences  service.SentenceStore
	Recordings service.RecordingStore
	TxManager  service.TransactionManager

	db *sqlx.DB
}

func Open(ctx context.Context, cfg config.StorageConfig) (*Stores, error) {
	var (
		db  *sqlx.DB
		err error
	)

	switch cfg.Backend {
	case config.BackendSQLite:
		db, err = sqlite.Open(ctx, cfg.SQLite.Path)
		if err != nil {
			return nil, err
		}
		return &Stores{
			Backend:    cfg.Backend,
			Accounts:   sqlite.NewAccountStore(db),
			Sentences:  sqlite.NewSentenceStore(db),
			Recordings: sqlite.NewRecordingStore(db),
			TxManager:  txn.NewManager(db),
			db:         db,
		}, nil

	case config.BackendPostgres:
		db, err = postgres.Open(ctx, cfg.Postgres.DSN())
		if err != nil {
			return nil, err
		}
		return &Stores{
			Backend:    cfg.Backend,
			Accounts:   postgres.NewAccountStore(db),
			Sentences:  postgres.NewSentenceStore(db),
			Recordings: postgres.NewRecordingStore(db),
			TxManager:  txn.NewManager(db),
			db:         db,
		}, nil
	}

	return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
}

func (s *Stores) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Stores) Close() error {
	return s.db.Close()
}
