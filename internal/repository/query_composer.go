package repository

import (
	"fmt"
	"strings"

	"github.com/noah-isme/hostel-api/internal/access"
)

// Pagination bounds for list endpoints.
const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// NormalizePage clamps caller supplied page and limit values.
func NormalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return page, limit
}

// scopeColumns names the SQL expressions a resource query exposes for each scope dimension.
// An empty column means the query cannot be narrowed on that dimension.
type scopeColumns struct {
	Block   string
	Student string
	Room    string
}

// composer accumulates WHERE conditions with positional arguments. Scope conditions
// and caller conditions are always ANDed; nothing can remove a condition once added.
type composer struct {
	conditions []string
	args       []interface{}
}

// where appends a condition. Each "?" in cond is bound to the next value.
func (c *composer) where(cond string, values ...interface{}) {
	var b strings.Builder
	next := 0
	for _, r := range cond {
		if r == '?' && next < len(values) {
			c.args = append(c.args, values[next])
			fmt.Fprintf(&b, "$%d", len(c.args))
			next++
			continue
		}
		b.WriteRune(r)
	}
	c.conditions = append(c.conditions, b.String())
}

// scope applies an access filter. A dimension the query cannot express denies every row.
func (c *composer) scope(f access.Filter, cols scopeColumns) {
	if f.StudentID != "" {
		c.restrict(cols.Student, f.StudentID, false)
	}
	if f.RoomID != "" {
		c.restrict(cols.Room, f.RoomID, false)
	}
	if f.RestrictBlock {
		c.restrict(cols.Block, f.BlockID, f.IncludeUnassigned || f.IncludeGlobal)
	}
}

func (c *composer) restrict(column, value string, orNull bool) {
	switch {
	case column == "":
		c.where("FALSE")
	case value == "" && orNull:
		c.where(column + " IS NULL")
	case value == "":
		c.where("FALSE")
	case orNull:
		c.where(fmt.Sprintf("(%s = ? OR %s IS NULL)", column, column), value)
	default:
		c.where(column+" = ?", value)
	}
}

// clause renders the WHERE clause, or an empty string when unconditioned.
func (c *composer) clause() string {
	if len(c.conditions) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(c.conditions, " AND ")
}

// page renders LIMIT/OFFSET for normalized paging values.
func (c *composer) page(page, limit int) string {
	page, limit = NormalizePage(page, limit)
	return fmt.Sprintf(" LIMIT %d OFFSET %d", limit, (page-1)*limit)
}
