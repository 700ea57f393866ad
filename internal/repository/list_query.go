package repository

import (
	"fmt"

	"github.com/Raymond9734/crm-backend/internal/models"
)

// listQuery builds a filtered SELECT and its COUNT twin, keeping positional
// arguments in sync between the two. The count query must be executed before
// Paginate is called, since pagination arguments apply to the select only.
type listQuery struct {
	query      string
	countQuery string
	args       []any
}

func newListQuery(query, countQuery string) *listQuery {
	return &listQuery{query: query, countQuery: countQuery}
}

// Filter appends an AND clause to both queries. The clause must contain a
// single %d verb for the argument position, e.g. "email = $%d".
func (q *listQuery) Filter(clause string, value any) {
	q.args = append(q.args, value)
	clause = fmt.Sprintf(clause, len(q.args))
	q.query += " AND " + clause
	q.countQuery += " AND " + clause
}

// GroupBy appends a GROUP BY clause to the select query
func (q *listQuery) GroupBy(clause string) {
	q.query += " GROUP BY " + clause
}

// OrderBy appends an ORDER BY clause to the select query
func (q *listQuery) OrderBy(clause string) {
	q.query += " ORDER BY " + clause
}

// Paginate appends LIMIT/OFFSET to the select query when a page size is set.
// A page size of 0 leaves the query unbounded so the full collection is
// returned.
func (q *listQuery) Paginate(page, pageSize int) {
	if pageSize <= 0 {
		return
	}
	q.query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(q.args)+1, len(q.args)+2)
	q.args = append(q.args, pageSize, models.CalculateOffset(page, pageSize))
}
