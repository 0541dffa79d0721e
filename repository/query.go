package repository

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"gorm.io/gorm"

	"github.com/2110503-CEDT68/be-project-68-group7/utils"
)

const (
	defaultPage  = 1
	defaultLimit = 25
)

// Filter is a single parsed query condition. Op is a SQL comparison
// operator, or "IN" with Value holding a slice.
type Filter struct {
	Column string
	Op     string
	Value  any
}

// ListOptions carries the query features every listing endpoint supports:
// field projection, sorting, pagination and operator filters.
type ListOptions struct {
	Selects []string
	Order   string
	Page    int
	Limit   int
	Filters []Filter
}

var reservedParams = map[string]bool{
	"select": true,
	"sort":   true,
	"page":   true,
	"limit":  true,
}

var comparisonOps = map[string]string{
	"gt":  ">",
	"gte": ">=",
	"lt":  "<",
	"lte": "<=",
}

// ParseListOptions reads select/sort/page/limit plus arbitrary field filters
// from the query string. fields maps exposed API field names to columns;
// anything not in the map is dropped, which keeps user input out of the SQL
// fragment entirely. Filter operators use the field[op]=value form, e.g.
// year[gte]=2015 or fuelType[in]=Electric,Hybrid.
func ParseListOptions(values url.Values, fields map[string]string) ListOptions {
	opts := ListOptions{Page: defaultPage, Limit: defaultLimit}

	if v, err := strconv.Atoi(values.Get("page")); err == nil && v > 0 {
		opts.Page = v
	}
	if v, err := strconv.Atoi(values.Get("limit")); err == nil && v > 0 {
		opts.Limit = v
	}

	if sel := values.Get("select"); sel != "" {
		for _, f := range strings.Split(sel, ",") {
			if col, ok := fields[strings.TrimSpace(f)]; ok {
				opts.Selects = append(opts.Selects, col)
			}
		}
	}

	var orders []string
	if sort := values.Get("sort"); sort != "" {
		for _, f := range strings.Split(sort, ",") {
			f = strings.TrimSpace(f)
			dir := "ASC"
			if strings.HasPrefix(f, "-") {
				f = f[1:]
				dir = "DESC"
			}
			if col, ok := fields[f]; ok {
				orders = append(orders, col+" "+dir)
			}
		}
	}
	if len(orders) == 0 {
		orders = []string{"created_at DESC"}
	}
	opts.Order = strings.Join(orders, ", ")

	for key, vals := range values {
		if reservedParams[key] || len(vals) == 0 {
			continue
		}
		field, op := key, ""
		if i := strings.IndexByte(key, '['); i >= 0 && strings.HasSuffix(key, "]") {
			field, op = key[:i], key[i+1:len(key)-1]
		}
		col, ok := fields[field]
		if !ok {
			continue
		}
		switch {
		case op == "":
			opts.Filters = append(opts.Filters, Filter{Column: col, Op: "=", Value: vals[0]})
		case op == "in":
			opts.Filters = append(opts.Filters, Filter{Column: col, Op: "IN", Value: strings.Split(vals[0], ",")})
		default:
			if sqlOp, ok := comparisonOps[op]; ok {
				opts.Filters = append(opts.Filters, Filter{Column: col, Op: sqlOp, Value: vals[0]})
			}
		}
	}

	return opts
}

// WithKeys forces the given columns into an active projection. Repos pass
// their primary and foreign keys so a narrow select= still produces rows
// with ids and working preloads, the way the reference API always keeps
// _id in projected results.
func (o ListOptions) WithKeys(cols ...string) ListOptions {
	if len(o.Selects) == 0 {
		return o
	}
	have := map[string]bool{}
	for _, c := range o.Selects {
		have[c] = true
	}
	selects := make([]string, len(o.Selects), len(o.Selects)+len(cols))
	copy(selects, o.Selects)
	for _, c := range cols {
		if !have[c] {
			selects = append(selects, c)
		}
	}
	o.Selects = selects
	return o
}

// Apply attaches the filters, projection and ordering to a query.
func (o ListOptions) Apply(q *gorm.DB) *gorm.DB {
	for _, f := range o.Filters {
		if f.Op == "IN" {
			q = q.Where(f.Column+" IN ?", f.Value)
			continue
		}
		q = q.Where(fmt.Sprintf("%s %s ?", f.Column, f.Op), f.Value)
	}
	if len(o.Selects) > 0 {
		q = q.Select(o.Selects)
	}
	return q.Order(o.Order)
}

func (o ListOptions) Offset() int {
	return (o.Page - 1) * o.Limit
}

// PageHints computes next/prev hints against the total record count,
// mirroring the startIndex/endIndex arithmetic of the reference API.
func (o ListOptions) PageHints(total int64) utils.Pagination {
	var p utils.Pagination
	if int64(o.Page*o.Limit) < total {
		p.Next = &utils.PageHint{Page: o.Page + 1, Limit: o.Limit}
	}
	if o.Offset() > 0 {
		p.Prev = &utils.PageHint{Page: o.Page - 1, Limit: o.Limit}
	}
	return p
}
