package postgres

import (
	"database/sql"

	"github.com/lib/pq"
)

func isNotFound(err error) bool {
	return err == sql.ErrNoRows
}

// insertStringArray keeps array columns NOT NULL friendly for nil slices.
func insertStringArray(values []string) pq.StringArray {
	if values == nil {
		return pq.StringArray{}
	}
	return pq.StringArray(values)
}
