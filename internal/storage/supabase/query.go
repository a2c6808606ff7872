package supabase

import (
	"fmt"
	"net/http"
	neturl "net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/LaunchLens/analysis_layer/internal/search"
)

// encodeCriteria translates an immutable Criteria into PostgREST filter
// parameters in one step. Parameters come out in a deterministic order so
// generated URLs are stable and testable.
func encodeCriteria(c search.Criteria) []string {
	var params []string

	equals := c.Equals()
	for _, field := range sortedKeys(equals) {
		params = append(params, fmt.Sprintf("%s=eq.%s", field, neturl.QueryEscape(equals[field])))
	}

	ranges := c.Ranges()
	for _, field := range sortedKeys(ranges) {
		r := ranges[field]
		if r.Min != nil {
			params = append(params, fmt.Sprintf("%s=gte.%s", field, formatNumber(*r.Min)))
		}
		if r.Max != nil {
			params = append(params, fmt.Sprintf("%s=lte.%s", field, formatNumber(*r.Max)))
		}
	}

	times := c.TimeRanges()
	for _, field := range sortedKeys(times) {
		r := times[field]
		if r.From != nil {
			params = append(params, fmt.Sprintf("%s=gte.%s", field, neturl.QueryEscape(r.From.UTC().Format(time.RFC3339))))
		}
		if r.To != nil {
			params = append(params, fmt.Sprintf("%s=lte.%s", field, neturl.QueryEscape(r.To.UTC().Format(time.RFC3339))))
		}
	}

	contains := c.Contains()
	for _, field := range sortedKeys(contains) {
		params = append(params, fmt.Sprintf("%s=ilike.%s", field, neturl.QueryEscape("*"+contains[field]+"*")))
	}

	flags := c.Flags()
	for _, field := range sortedKeys(flags) {
		params = append(params, fmt.Sprintf("%s=is.%t", field, flags[field]))
	}

	return params
}

// encodeSelect builds the full query string for a page read: filters,
// order with the created-time tie-break, and the window.
func encodeSelect(c search.Criteria, spec search.Sort, limit, offset int) string {
	params := append([]string{"select=*"}, encodeCriteria(c)...)
	params = append(params, "order="+encodeOrder(spec))
	params = append(params, fmt.Sprintf("limit=%d", limit), fmt.Sprintf("offset=%d", offset))
	return strings.Join(params, "&")
}

// encodeCount builds the query string for a count read. PostgREST reports
// the exact total in the Content-Range header; the single-row window keeps
// the payload negligible.
func encodeCount(c search.Criteria) string {
	params := append([]string{"select=id"}, encodeCriteria(c)...)
	params = append(params, "limit=1")
	return strings.Join(params, "&")
}

func encodeOrder(spec search.Sort) string {
	dir := "asc"
	if spec.Descending {
		dir = "desc"
	}
	order := spec.Field + "." + dir
	if spec.Field != "created_at" {
		// Stable secondary key so pagination over duplicate sort values is
		// deterministic across calls.
		order += ",created_at.desc"
	}
	return order
}

func formatNumber(n float64) string {
	return strconv.FormatFloat(n, 'f', -1, 64)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// parseContentRange extracts the total from a PostgREST Content-Range
// header, e.g. "0-0/57" or "*/0".
func parseContentRange(h http.Header) (int, error) {
	cr := h.Get("Content-Range")
	if cr == "" {
		return 0, fmt.Errorf("missing Content-Range header")
	}
	slash := strings.LastIndex(cr, "/")
	if slash < 0 || slash == len(cr)-1 {
		return 0, fmt.Errorf("malformed Content-Range: %q", cr)
	}
	total, err := strconv.Atoi(cr[slash+1:])
	if err != nil {
		return 0, fmt.Errorf("malformed Content-Range: %q", cr)
	}
	return total, nil
}
