package reconcile

import (
	"context"
	"errors"
)

// ApplyFlags executes the soft-delete and reactivation parts of a result.
// Deletions run first, then reactivations; each is an independent statement
// that commits on its own. The returned counts are the sizes of the sets that
// were applied successfully.
func ApplyFlags(ctx context.Context, store Store, table string, res Result) (deleted, reactivated int, err error) {
	if err := store.MarkDeleted(ctx, table, res.ToDelete); err != nil {
		return 0, 0, asTransactionError(table, err)
	}
	deleted = res.ToDelete.Len()

	if err := store.Reactivate(ctx, table, res.ToReactivate); err != nil {
		return deleted, 0, asTransactionError(table, err)
	}
	reactivated = res.ToReactivate.Len()

	return deleted, reactivated, nil
}

// asTransactionError keeps an existing classification and tags anything
// else as a transaction failure.
func asTransactionError(table string, err error) error {
	var te *TableError
	if errors.As(err, &te) {
		return err
	}
	return NewTableError(ErrTransaction, table, err)
}
