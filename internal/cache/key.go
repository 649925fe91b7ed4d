package cache

import (
	"fmt"
	"sort"
	"strings"

	"github.com/siteglow/trafficlens/internal/timewin"
)

// Key derives the object-store key for one logical request. Every input
// that changes the query result is part of the key: site, endpoint,
// resolved window, and any dimension filters (in sorted order so the
// same request always maps to the same key).
func Key(siteID, endpoint string, w timewin.Window, filters map[string]string) string {
	parts := []string{
		"paid-traffic",
		siteID,
		endpoint,
		fmt.Sprintf("%d", w.Year),
		fmt.Sprintf("w%02d", w.Week),
	}
	names := make([]string, 0, len(filters))
	for k := range filters {
		names = append(names, k)
	}
	sort.Strings(names)
	for _, k := range names {
		parts = append(parts, k+"="+filters[k])
	}
	return strings.Join(parts, "/") + ".json.gz"
}
