package postgresql

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWhereClause(t *testing.T) {
	var w whereClause
	w.live("e", false)
	w.add("e.department_id = ?", "d1")
	w.add("e.created_at BETWEEN ? AND ?", "from", "to")

	assert.Equal(t, "WHERE e.deleted_at IS NULL AND e.department_id = $1 AND e.created_at BETWEEN $2 AND $3", w.String())
	assert.Equal(t, []any{"d1", "from", "to"}, w.args)
	assert.Equal(t, "$4", w.placeholder(20))
}

func TestWhereClause_IncludeDeleted(t *testing.T) {
	var w whereClause
	w.live("", true)
	assert.Equal(t, "", w.String())

	w.live("", false)
	assert.Equal(t, "WHERE deleted_at IS NULL", w.String())
}
