package repository

import (
	"errors"
	"fmt"
	"strings"

	"blogapi/internal/apperror"

	"github.com/jackc/pgerrcode"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds an ILIKE pattern matching s anywhere, with LIKE
// wildcards in s taken literally.
func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}

// orderBy renders an ORDER BY clause from a whitelisted sort key. Unknown keys
// sort by idColumn. A non-id sort gets idColumn as secondary key so equal
// values still page deterministically.
func orderBy(columns map[string]string, idColumn, sort, order string) string {
	col, ok := columns[sort]
	if !ok {
		col = idColumn
	}

	dir := "DESC"
	if strings.EqualFold(order, "asc") {
		dir = "ASC"
	}

	if col == idColumn {
		return fmt.Sprintf(" ORDER BY %s %s", col, dir)
	}
	return fmt.Sprintf(" ORDER BY %s %s, %s %s", col, dir, idColumn, dir)
}

// where joins conditions written with '?' placeholders.
func where(conds []string) string {
	if len(conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(conds, " AND ")
}

func rebind(q string) string {
	return sqlx.Rebind(sqlx.DOLLAR, q)
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == pgerrcode.UniqueViolation
}

func isForeignKeyViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == pgerrcode.ForeignKeyViolation
}

func conflict(message string, cause error) error {
	return apperror.Wrap(apperror.ErrConflict, message, cause)
}
