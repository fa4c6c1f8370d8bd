package repository

import (
	"context"
	"fmt"
	"github.com/google/uuid"
	"strings"
)

// Change is one changed column produced by a field-by-field diff,
// paired with the value to persist.
type Change struct {
	Column string
	Value  interface{}
}

func buildUpdate(table string, changes []Change) (string, []interface{}) {
	var b strings.Builder
	args := make([]interface{}, 0, len(changes)+1)

	b.WriteString("UPDATE ")
	b.WriteString(table)
	b.WriteString(" SET ")
	for i, change := range changes {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(change.Column)
		b.WriteString(" = ?")
		args = append(args, change.Value)
	}
	b.WriteString(" WHERE id = ?")

	return b.String(), args
}

// updateColumns issues a single UPDATE touching exactly the given
// columns. Returns ErrNotFound when the target row no longer exists.
func updateColumns(ctx context.Context, table string, id uuid.UUID, changes []Change) error {
	query, args := buildUpdate(table, changes)
	args = append(args, id)

	result, err := GetTx(ctx).ExecContext(ctx, query, args...)
	if err != nil {
		return wrapError(err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s id=%s", ErrNotFound, table, id)
	}
	return nil
}
