// Package query assembles the aggregate queries sent to the analytical
// engine. Dimension specs are fixed per endpoint; user input never
// reaches a column position.
package query

import (
	"fmt"
	"sort"
	"strings"

	sq "github.com/Masterminds/squirrel"

	"github.com/siteglow/trafficlens/internal/timewin"
)

// Dimension is a fixed grouping definition for one endpoint.
type Dimension struct {
	Name    string   // endpoint identity, also part of the cache key
	Columns []string // raw engine columns grouped by

	// FilterParams maps accepted query parameters to the raw column
	// they filter on. Only these params become predicates.
	FilterParams map[string]string
}

var (
	TypeChannel    = Dimension{Name: "type-channel", Columns: []string{"trf_type", "trf_channel"}}
	CampaignDevice = Dimension{Name: "campaign-device", Columns: []string{"utm_campaign", "device"}, FilterParams: map[string]string{"campaign": "utm_campaign"}}
	CampaignURL    = Dimension{Name: "campaign-url", Columns: []string{"utm_campaign", "path"}, FilterParams: map[string]string{"campaign": "utm_campaign"}}
	Campaign       = Dimension{Name: "campaign", Columns: []string{"utm_campaign"}}
)

const aggAlias = "a"

// Builder renders the two-stage aggregate query: a min_totals pre-filter
// keeping dimension combinations above the pageview floor, then the
// metric projection with p70 percentiles.
type Builder struct {
	Table string
}

// Build returns a single query string. Values are inlined because the
// engine takes one opaque string; siteID and filter values are escaped,
// everything else is numeric or fixed.
func (b Builder) Build(siteID string, w timewin.Window, dim Dimension, minPageviews int64, limit int, filters map[string]string) (string, error) {
	if b.Table == "" {
		return "", fmt.Errorf("query: table not configured")
	}

	outer := sq.Select(projectedColumns(dim)...).
		Columns(
			"CAST(SUM("+aggAlias+".pageviews) AS BIGINT) AS pageviews",
			"SUM("+aggAlias+".pageviews) * 1.0 / SUM(SUM("+aggAlias+".pageviews)) OVER () AS pct_pageviews",
			"SUM("+aggAlias+".clicked) * 1.0 / COUNT(*) AS click_rate",
			"SUM("+aggAlias+".engaged) * 1.0 / COUNT(*) AS engagement_rate",
			"1 - SUM("+aggAlias+".engaged) * 1.0 / COUNT(*) AS bounce_rate",
			"APPROX_PERCENTILE("+aggAlias+".lcp, 0.70) AS p70_lcp",
			"APPROX_PERCENTILE("+aggAlias+".cls, 0.70) AS p70_cls",
			"APPROX_PERCENTILE("+aggAlias+".inp, 0.70) AS p70_inp",
		).
		From(b.Table + " " + aggAlias).
		Where(baseFilter(aggAlias+".", siteID, w, dim, filters)).
		GroupBy(dim.Columns...).
		OrderBy("pageviews DESC")

	if minPageviews > 0 {
		inner := sq.Select(dim.Columns...).
			From(b.Table).
			Where(baseFilter("", siteID, w, dim, filters)).
			GroupBy(dim.Columns...).
			Having(fmt.Sprintf("SUM(pageviews) >= %d", minPageviews))
		innerSQL, _, err := inner.ToSql()
		if err != nil {
			return "", fmt.Errorf("query: min_totals stage: %w", err)
		}
		outer = outer.
			Prefix("WITH min_totals AS (" + innerSQL + ")").
			JoinClause("JOIN min_totals mt ON " + joinCondition(dim))
	}
	if limit > 0 {
		outer = outer.Limit(uint64(limit))
	}

	sqlStr, _, err := outer.ToSql()
	if err != nil {
		return "", fmt.Errorf("query: %w", err)
	}
	return sqlStr, nil
}

// projectedColumns emits dimension columns prefixed with the aggregation
// alias but aliased back to their bare names, matching the GROUP BY.
func projectedColumns(dim Dimension) []string {
	out := make([]string, 0, len(dim.Columns))
	for _, c := range dim.Columns {
		out = append(out, aggAlias+"."+c+" AS "+c)
	}
	return out
}

func joinCondition(dim Dimension) string {
	conds := make([]string, 0, len(dim.Columns))
	for _, c := range dim.Columns {
		conds = append(conds, aggAlias+"."+c+" = mt."+c)
	}
	return strings.Join(conds, " AND ")
}

// baseFilter is shared by both stages: site scope, the unconditional
// consent filter, the resolved window months, and any dimension filters.
func baseFilter(prefix, siteID string, w timewin.Window, dim Dimension, filters map[string]string) sq.Sqlizer {
	and := sq.And{
		sq.Expr(prefix + "siteid = " + quote(siteID)),
		sq.Expr(prefix + "consent IN ('show', 'hidden')"),
		monthPredicate(prefix, w.Months),
	}
	for _, col := range sortedValues(dim.FilterParams) {
		if v, ok := filters[col]; ok {
			and = append(and, sq.Expr(prefix+col+" = "+quote(v)))
		}
	}
	return and
}

// monthPredicate ORs one (year, month) equality pair per resolved month.
func monthPredicate(prefix string, months []timewin.Month) sq.Sqlizer {
	or := make(sq.Or, 0, len(months))
	for _, m := range months {
		or = append(or, sq.Expr(fmt.Sprintf("(%syear = %d AND %smonth = %d)", prefix, m.Year, prefix, m.Month)))
	}
	return or
}

func quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

func sortedValues(m map[string]string) []string {
	out := make([]string, 0, len(m))
	for _, v := range m {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
