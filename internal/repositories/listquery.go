package repositories

import (
	"strings"
)

// DefaultPageSize matches the page size the admin frontend assumes.
const DefaultPageSize = 50

// ListParams carries the query state of a list call: page-number pagination,
// free-text search, ordering keys and exact-match filters.
type ListParams struct {
	Page     int
	PageSize int
	Search   string
	Ordering string
	Filters  map[string]string
}

// Normalized clamps page and page size to sane values.
func (p ListParams) Normalized() ListParams {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize <= 0 {
		p.PageSize = DefaultPageSize
	}
	return p
}

// ListSpec describes how a resource maps onto SQL: which columns are
// searchable, which ordering keys and filters are accepted and how they
// translate. Every list endpoint builds its query through one of these so the
// pagination contract stays uniform across resources.
type ListSpec struct {
	Table   string
	Columns string
	// SearchColumns are OR-matched with LIKE against the search term.
	SearchColumns []string
	// OrderingFields maps exposed ordering keys to SQL expressions. A leading
	// "-" on the key requests descending order; unknown keys are ignored.
	OrderingFields map[string]string
	// FilterFields maps exposed filter names to columns (exact match).
	FilterFields    map[string]string
	DefaultOrdering string
	// BaseWhere/BaseArgs apply unconditionally (joins, scoping).
	BaseWhere []string
	BaseArgs  []any
}

// BuildSelect returns the paged SELECT and its args for the given params.
func (s ListSpec) BuildSelect(p ListParams) (string, []any) {
	p = p.Normalized()
	where, args := s.buildWhere(p)

	var b strings.Builder
	b.WriteString("SELECT ")
	b.WriteString(s.Columns)
	b.WriteString(" FROM ")
	b.WriteString(s.Table)
	if where != "" {
		b.WriteString(" WHERE ")
		b.WriteString(where)
	}
	if order := s.orderClause(p.Ordering); order != "" {
		b.WriteString(" ORDER BY ")
		b.WriteString(order)
	}
	b.WriteString(" LIMIT ? OFFSET ?")
	args = append(args, p.PageSize, (p.Page-1)*p.PageSize)
	return b.String(), args
}

// BuildCount returns the COUNT query for the same filters, ignoring paging.
func (s ListSpec) BuildCount(p ListParams) (string, []any) {
	where, args := s.buildWhere(p)
	q := "SELECT COUNT(*) FROM " + s.Table
	if where != "" {
		q += " WHERE " + where
	}
	return q, args
}

func (s ListSpec) buildWhere(p ListParams) (string, []any) {
	conds := append([]string{}, s.BaseWhere...)
	args := append([]any{}, s.BaseArgs...)

	if term := strings.TrimSpace(p.Search); term != "" && len(s.SearchColumns) > 0 {
		likes := make([]string, 0, len(s.SearchColumns))
		for _, col := range s.SearchColumns {
			likes = append(likes, col+" LIKE ?")
			args = append(args, "%"+term+"%")
		}
		conds = append(conds, "("+strings.Join(likes, " OR ")+")")
	}

	for name, col := range s.FilterFields {
		val, ok := p.Filters[name]
		if !ok || strings.TrimSpace(val) == "" {
			continue
		}
		conds = append(conds, col+" = ?")
		args = append(args, normalizeFilterValue(val))
	}

	return strings.Join(conds, " AND "), args
}

// orderClause translates the comma-separated ordering keys, skipping any key
// not present in the whitelist. With no valid key the default ordering holds.
func (s ListSpec) orderClause(ordering string) string {
	parts := []string{}
	for _, key := range strings.Split(ordering, ",") {
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		desc := strings.HasPrefix(key, "-")
		key = strings.TrimPrefix(key, "-")
		expr, ok := s.OrderingFields[key]
		if !ok {
			continue
		}
		if desc {
			expr += " DESC"
		}
		parts = append(parts, expr)
	}
	if len(parts) == 0 {
		return s.orderDefault()
	}
	return strings.Join(parts, ", ")
}

func (s ListSpec) orderDefault() string {
	if s.DefaultOrdering == "" {
		return ""
	}
	// The default may itself use the "-key" notation.
	parts := []string{}
	for _, key := range strings.Split(s.DefaultOrdering, ",") {
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		desc := strings.HasPrefix(key, "-")
		key = strings.TrimPrefix(key, "-")
		expr, ok := s.OrderingFields[key]
		if !ok {
			continue
		}
		if desc {
			expr += " DESC"
		}
		parts = append(parts, expr)
	}
	return strings.Join(parts, ", ")
}

// normalizeFilterValue lets boolean filters accept true/false alongside 1/0.
func normalizeFilterValue(v string) any {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "true":
		return 1
	case "false":
		return 0
	default:
		return strings.TrimSpace(v)
	}
}
