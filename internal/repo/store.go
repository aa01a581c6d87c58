package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// Tx exposes the repositories bound to one unit of work.
type Tx interface {
	Products() ProductRepository
	Movements() MovementRepository
}

// Store owns the database handle and hands out repositories over it.
type Store struct {
	db *sqlx.DB
}

func NewStore(db *sqlx.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Products() ProductRepository {
	return NewSQLProductRepository(s.db)
}

func (s *Store) Movements() MovementRepository {
	return NewSQLMovementRepository(s.db)
}

func (s *Store) Metrics() MetricsRepository {
	return NewSQLMetricsRepository(s.db)
}

// WithTx runs txFunc inside a database transaction. The transaction is
// committed when txFunc returns nil and rolled back otherwise.
func (s *Store) WithTx(ctx context.Context, txFunc func(Tx) error) (err error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			rbErr := tx.Rollback()
			if rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
				err = errors.Join(err, rbErr)
			}
		}
	}()

	if err = txFunc(txRepos{tx: tx}); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		err = fmt.Errorf("commit transaction: %w", err)
	}
	return err
}

type txRepos struct {
	tx *sqlx.Tx
}

func (t txRepos) Products() ProductRepository {
	return NewSQLProductRepository(t.tx)
}

func (t txRepos) Movements() MovementRepository {
	return NewSQLMovementRepository(t.tx)
}
