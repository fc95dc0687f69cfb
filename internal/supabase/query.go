package supabase

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/mesh-intelligence/foodlog/pkg/types"
)

// clientInfo identifies this client to the Supabase gateway.
const clientInfo = "foodlog-go"

// encodeQuery renders filters as column=op.value parameters and the
// ordering as a single order=col.dir,... parameter. The query must already
// be validated.
func encodeQuery(q types.Query) url.Values {
	params := url.Values{}
	for _, f := range q.Filters {
		params.Add(f.Column, encodeFilter(f))
	}
	if len(q.Order) > 0 {
		parts := make([]string, len(q.Order))
		for i, o := range q.Order {
			dir := "asc"
			if o.Descending {
				dir = "desc"
			}
			parts[i] = o.Column + "." + dir
		}
		params.Set("order", strings.Join(parts, ","))
	}
	return params
}

// encodeFilter renders one filter value. A nil value compares with IS.
func encodeFilter(f types.Filter) string {
	switch v := f.Value.(type) {
	case nil:
		if f.Op == types.OpNeq {
			return "not.is.null"
		}
		return "is.null"
	case time.Time:
		return f.Op + "." + v.UTC().Format(time.RFC3339Nano)
	case *time.Time:
		if v == nil {
			return "is.null"
		}
		return f.Op + "." + v.UTC().Format(time.RFC3339Nano)
	default:
		return fmt.Sprintf("%s.%v", f.Op, v)
	}
}
