package postgresql

import (
	"context"
	"fmt"
	"strings"

	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/database"
)

// liveRows is the predicate that hides soft-deleted rows of alias.
func liveRows(alias string) string {
	if alias == "" {
		return "deleted_at IS NULL"
	}
	return alias + ".deleted_at IS NULL"
}

// softDelete marks one live row of table as deleted. A missing or already
// deleted row yields notFound.
func softDelete(ctx context.Context, q database.Querier, table, keyColumn string, key any, notFound error) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET deleted_at = NOW(), updated_at = NOW()
		WHERE %s = $1 AND deleted_at IS NULL
	`, table, keyColumn)

	tag, err := q.Exec(ctx, query, key)
	if err != nil {
		return fmt.Errorf("failed to soft delete from %s: %w", table, err)
	}
	if tag.RowsAffected() == 0 {
		return notFound
	}
	return nil
}

// whereClause accumulates AND-ed conditions with positional arguments.
// Conditions use ? for placeholders; they are numbered in order of addition.
type whereClause struct {
	conds []string
	args  []any
}

func (w *whereClause) add(cond string, args ...any) {
	for _, arg := range args {
		w.args = append(w.args, arg)
		cond = strings.Replace(cond, "?", fmt.Sprintf("$%d", len(w.args)), 1)
	}
	w.conds = append(w.conds, cond)
}

// live hides soft-deleted rows of alias unless includeDeleted is set.
func (w *whereClause) live(alias string, includeDeleted bool) {
	if !includeDeleted {
		w.conds = append(w.conds, liveRows(alias))
	}
}

// placeholder reserves the next positional argument.
func (w *whereClause) placeholder(arg any) string {
	w.args = append(w.args, arg)
	return fmt.Sprintf("$%d", len(w.args))
}

func (w *whereClause) String() string {
	if len(w.conds) == 0 {
		return ""
	}
	return "WHERE " + strings.Join(w.conds, " AND ")
}
