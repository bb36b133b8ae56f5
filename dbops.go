package sqlscript

import (
	"context"
)

// withTx runs f inside a transaction, committing if f succeeds and
// rolling back otherwise
func withTx(ctx context.Context, dbc DB, f func(x execer) error) error {
	tx, err := dbc.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	err = f(tx)
	if err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}
