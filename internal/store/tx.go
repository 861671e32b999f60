package store

import (
	"context"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
	"github.com/jmoiron/sqlx"
)

// Queries runs statements against the database or an open transaction.
type Queries struct {
	ext     sqlx.ExtContext
	dialect string
}

func (q *Queries) builder() *entsql.DialectBuilder {
	return entsql.Dialect(q.dialect)
}

// exec runs a rendered statement and returns the number of affected rows.
func (q *Queries) exec(ctx context.Context, b entsql.Querier) (int64, error) {
	query, args := b.Query()
	res, err := q.ext.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (q *Queries) get(ctx context.Context, dest any, b entsql.Querier) error {
	query, args := b.Query()
	return sqlx.GetContext(ctx, q.ext, dest, query, args...)
}

func (q *Queries) selectAll(ctx context.Context, dest any, b entsql.Querier) error {
	query, args := b.Query()
	return sqlx.SelectContext(ctx, q.ext, dest, query, args...)
}

// Tx is a running transaction. Every statement issued through it commits or
// rolls back together.
type Tx struct {
	*Queries
	tx *sqlx.Tx
}

// InTx runs fn in a transaction. The transaction commits when fn returns nil
// and rolls back otherwise; fn's error is returned unchanged.
func (s *Store) InTx(ctx context.Context, fn func(tx *Tx) error) error {
	sqlTx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return &PersistenceError{Op: "begin transaction", Err: err}
	}

	tx := &Tx{
		Queries: &Queries{ext: sqlTx, dialect: s.dialect},
		tx:      sqlTx,
	}

	if err := fn(tx); err != nil {
		if rbErr := sqlTx.Rollback(); rbErr != nil {
			return fmt.Errorf("%w (rollback: %v)", err, rbErr)
		}
		return err
	}

	if err := sqlTx.Commit(); err != nil {
		return &PersistenceError{Op: "commit transaction", Err: err}
	}
	return nil
}
