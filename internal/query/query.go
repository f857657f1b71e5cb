// Package query applies PostgREST-style query strings to GORM queries:
// <column>=eq.<value> filters, order=<column>.asc|desc, limit=<n> and
// select=<columns>. Columns are checked against a caller-supplied
// allow-list; values always travel as bind parameters.
package query

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"gorm.io/gorm"
)

const (
	opPrefix      = "eq."
	maxLimit      = 500
	reservedOrder = "order"
	reservedLimit = "limit"
	reservedSel   = "select"
)

// Options is the parsed form of a tabular query string.
type Options struct {
	Filters map[string]string
	OrderBy string
	Desc    bool
	Limit   int
	Select  []string
}

// Parse reads filter/order/limit/select params, rejecting any column not
// in allowed.
func Parse(values url.Values, allowed map[string]bool) (*Options, error) {
	opts := &Options{Filters: map[string]string{}}

	for key, vals := range values {
		if len(vals) == 0 || vals[0] == "" {
			continue
		}
		value := vals[0]

		switch key {
		case reservedOrder:
			column := value
			desc := false
			if strings.HasSuffix(column, ".desc") {
				column = strings.TrimSuffix(column, ".desc")
				desc = true
			} else {
				column = strings.TrimSuffix(column, ".asc")
			}
			if !allowed[column] {
				return nil, fmt.Errorf("cannot order by %q", column)
			}
			opts.OrderBy = column
			opts.Desc = desc
		case reservedLimit:
			limit, err := strconv.Atoi(value)
			if err != nil || limit < 1 {
				return nil, fmt.Errorf("invalid limit %q", value)
			}
			if limit > maxLimit {
				limit = maxLimit
			}
			opts.Limit = limit
		case reservedSel:
			for _, column := range strings.Split(value, ",") {
				column = strings.TrimSpace(column)
				if column == "" {
					continue
				}
				if !allowed[column] {
					return nil, fmt.Errorf("cannot select %q", column)
				}
				opts.Select = append(opts.Select, column)
			}
		default:
			if !allowed[key] {
				return nil, fmt.Errorf("cannot filter by %q", key)
			}
			if !strings.HasPrefix(value, opPrefix) {
				return nil, fmt.Errorf("unsupported operator in %q=%q", key, value)
			}
			opts.Filters[key] = strings.TrimPrefix(value, opPrefix)
		}
	}

	return opts, nil
}

// Apply chains the parsed options onto a GORM query.
func (o *Options) Apply(db *gorm.DB) *gorm.DB {
	for column, value := range o.Filters {
		db = db.Where(fmt.Sprintf("%s = ?", column), value)
	}
	if o.OrderBy != "" {
		direction := "ASC"
		if o.Desc {
			direction = "DESC"
		}
		db = db.Order(fmt.Sprintf("%s %s", o.OrderBy, direction))
	}
	if o.Limit > 0 {
		db = db.Limit(o.Limit)
	}
	if len(o.Select) > 0 {
		db = db.Select(o.Select)
	}
	return db
}
