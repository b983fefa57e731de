// Package query parses list-endpoint query parameters (pagination, sorting,
// keyword search and range filters) into values the repositories can bind
// into SQL. Sortable and filterable fields are whitelisted per endpoint so
// client input never reaches the query text.
package query

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"shopcore/internal/model"
)

const (
	DefaultPage  = 1
	DefaultLimit = 5
	MaxLimit     = 100
)

// Range is a numeric filter such as price[gte]=100.
type Range struct {
	Column string
	Op     string // one of >=, >, <=, <
	Value  float64
}

// Params holds parsed list parameters.
type Params struct {
	Page    int
	Limit   int
	SortCol string
	Desc    bool
	Keyword string
	Ranges  []Range
}

// Options declares what a given endpoint allows.
type Options struct {
	// SortFields maps exposed field names to column names.
	SortFields map[string]string
	// DefaultSort is the column used when no sort parameter is given.
	DefaultSort string
	// RangeFields maps exposed field names to numeric columns that accept
	// gte/gt/lte/lt filters.
	RangeFields map[string]string
}

var rangeOps = map[string]string{
	"gte": ">=",
	"gt":  ">",
	"lte": "<=",
	"lt":  "<",
}

// Parse extracts list parameters from the URL query.
func Parse(values url.Values, opts Options) (Params, error) {
	p := Params{
		Page:    DefaultPage,
		Limit:   DefaultLimit,
		SortCol: opts.DefaultSort,
		Desc:    true,
		Keyword: strings.TrimSpace(values.Get("keyword")),
	}

	if raw := values.Get("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil || page < 1 {
			return Params{}, model.ValidationError("page must be a positive integer")
		}
		p.Page = page
	}

	if raw := values.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 1 {
			return Params{}, model.ValidationError("limit must be a positive integer")
		}
		if limit > MaxLimit {
			limit = MaxLimit
		}
		p.Limit = limit
	}

	if raw := values.Get("sort"); raw != "" {
		field := raw
		if strings.HasPrefix(field, "-") {
			field = field[1:]
		} else {
			p.Desc = false
		}
		col, ok := opts.SortFields[field]
		if !ok {
			return Params{}, model.ValidationError(fmt.Sprintf("cannot sort by %q", field))
		}
		p.SortCol = col
	}

	for key, vals := range values {
		// price[gte]=100 arrives as key "price[gte]"
		open := strings.IndexByte(key, '[')
		if open < 0 || !strings.HasSuffix(key, "]") || len(vals) == 0 {
			continue
		}
		field, opName := key[:open], key[open+1:len(key)-1]
		col, ok := opts.RangeFields[field]
		if !ok {
			continue
		}
		op, ok := rangeOps[opName]
		if !ok {
			continue
		}
		value, err := strconv.ParseFloat(vals[0], 64)
		if err != nil {
			return Params{}, model.ValidationError(fmt.Sprintf("%s must be numeric", key))
		}
		p.Ranges = append(p.Ranges, Range{Column: col, Op: op, Value: value})
	}

	return p, nil
}

// Offset returns the row offset for the current page.
func (p Params) Offset() int {
	return (p.Page - 1) * p.Limit
}

// OrderBy returns the ORDER BY clause body for the validated sort column.
func (p Params) OrderBy() string {
	if p.Desc {
		return p.SortCol + " DESC"
	}
	return p.SortCol + " ASC"
}
