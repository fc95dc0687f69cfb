package supabase

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/mesh-intelligence/foodlog/pkg/types"
)

func TestEncodeQuery(t *testing.T) {
	at := time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)
	tests := []struct {
		name  string
		query types.Query
		want  string
	}{
		{name: "empty", query: types.Query{}, want: ""},
		{
			name:  "eq and order",
			query: types.Where(types.Eq("user_id", "u1")).OrderBy(types.Desc("created_at")),
			want:  "order=created_at.desc&user_id=eq.u1",
		},
		{
			name:  "multiple orders",
			query: types.Query{Order: []types.Order{types.Desc("created_at"), types.Asc("id")}},
			want:  "order=created_at.desc%2Cid.asc",
		},
		{
			name:  "nil compares with is",
			query: types.Where(types.Eq("deleted_at", nil)),
			want:  "deleted_at=is.null",
		},
		{
			name:  "time rendered in UTC",
			query: types.Where(types.Filter{Column: "created_at", Op: types.OpGte, Value: at}),
			want:  "created_at=gte.2025-03-01T08%3A00%3A00Z",
		},
		{
			name:  "numbers",
			query: types.Where(types.Filter{Column: "calories", Op: types.OpLt, Value: 250}),
			want:  "calories=lt.250",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, encodeQuery(tt.query).Encode())
		})
	}
}
