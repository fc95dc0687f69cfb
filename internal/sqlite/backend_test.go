package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/foodlog/pkg/types"
)

// setupBackend attaches a Backend to a fresh temp dir and detaches it when
// the test ends.
func setupBackend(t *testing.T) *Backend {
	t.Helper()
	b := NewBackend()
	config := types.Config{
		Backend: types.BackendSQLite,
		DataDir: t.TempDir(),
	}
	require.NoError(t, b.Attach(config))
	t.Cleanup(func() { b.Detach() })
	return b
}

// foodLogs returns the food log collection of b.
func foodLogs(t *testing.T, b *Backend) types.Collection {
	t.Helper()
	coll, err := b.From(types.FoodLogsCollection)
	require.NoError(t, err)
	return coll
}

func TestBackend_Attach(t *testing.T) {
	tests := []struct {
		name    string
		config  types.Config
		wantErr error
	}{
		{name: "valid sqlite config", config: types.Config{Backend: types.BackendSQLite}},
		{name: "empty backend", config: types.Config{}, wantErr: types.ErrBackendEmpty},
		{name: "unknown backend", config: types.Config{Backend: "redis"}, wantErr: types.ErrBackendUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.config.DataDir = t.TempDir()
			b := NewBackend()
			err := b.Attach(tt.config)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			defer b.Detach()
			assert.ErrorIs(t, b.Attach(tt.config), types.ErrAlreadyAttached)
		})
	}
}

func TestBackend_Detach(t *testing.T) {
	b := NewBackend()
	require.NoError(t, b.Attach(types.Config{Backend: types.BackendSQLite, DataDir: t.TempDir()}))
	coll, err := b.From(types.FoodLogsCollection)
	require.NoError(t, err)

	require.NoError(t, b.Detach())
	require.NoError(t, b.Detach(), "Detach is idempotent")

	_, err = b.From(types.FoodLogsCollection)
	assert.ErrorIs(t, err, types.ErrHandleDetached)
	_, err = coll.Select(context.Background(), types.Query{})
	assert.ErrorIs(t, err, types.ErrHandleDetached)
	_, err = coll.Insert(context.Background(), types.Row{"user_id": "u1"})
	assert.ErrorIs(t, err, types.ErrHandleDetached)
}

func TestBackend_From(t *testing.T) {
	b := setupBackend(t)

	_, err := b.From("user_food_logs")
	assert.NoError(t, err)
	_, err = b.From("../etc/passwd")
	assert.ErrorIs(t, err, types.ErrInvalidCollection)
	_, err = b.From("")
	assert.ErrorIs(t, err, types.ErrInvalidCollection)
}

func TestCollection_InsertAssignsID(t *testing.T) {
	coll := foodLogs(t, setupBackend(t))
	ctx := context.Background()

	row, err := coll.Insert(ctx, types.Row{"user_id": "u1", "food_name": "apple", "calories": 95})
	require.NoError(t, err)

	id := types.RowID(row)
	require.NotEmpty(t, id)
	assert.Len(t, id, 36, "UUID string form")
	assert.Equal(t, "apple", row["food_name"])
	assert.Equal(t, float64(95), row["calories"])

	explicit, err := coll.Insert(ctx, types.Row{"id": "fixed", "user_id": "u1"})
	require.NoError(t, err)
	assert.Equal(t, "fixed", explicit["id"])

	_, err = coll.Insert(ctx, types.Row{"id": "fixed", "user_id": "u2"})
	assert.ErrorIs(t, err, types.ErrDuplicateID)
}

func TestCollection_InsertDoesNotMutateArgument(t *testing.T) {
	coll := foodLogs(t, setupBackend(t))

	in := types.Row{"user_id": "u1"}
	_, err := coll.Insert(context.Background(), in)
	require.NoError(t, err)
	assert.NotContains(t, in, "id")
}

func TestCollection_SelectFiltersAndOrders(t *testing.T) {
	coll := foodLogs(t, setupBackend(t))
	ctx := context.Background()

	for _, r := range []types.Row{
		{"id": "t1", "user_id": "u1", "created_at": "2025-03-01T08:00:00.000Z"},
		{"id": "t3", "user_id": "u1", "created_at": "2025-03-03T08:00:00.000Z"},
		{"id": "other", "user_id": "u2", "created_at": "2025-03-04T08:00:00.000Z"},
		{"id": "t2", "user_id": "u1", "created_at": "2025-03-02T08:00:00.000Z"},
	} {
		_, err := coll.Insert(ctx, r)
		require.NoError(t, err)
	}

	rows, err := coll.Select(ctx, types.Where(types.Eq("user_id", "u1")).OrderBy(types.Desc("created_at")))
	require.NoError(t, err)
	ids := make([]string, len(rows))
	for i, r := range rows {
		ids[i] = types.RowID(r)
	}
	assert.Equal(t, []string{"t3", "t2", "t1"}, ids)

	rows, err = coll.Select(ctx, types.Where(types.Eq("user_id", "u1")).OrderBy(types.Asc("created_at")))
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "t1", rows[0]["id"])

	rows, err = coll.Select(ctx, types.Where(types.Eq("user_id", "nobody")))
	require.NoError(t, err)
	assert.NotNil(t, rows)
	assert.Empty(t, rows)
}

func TestCollection_SelectOrdersTimestampsByInstant(t *testing.T) {
	coll := foodLogs(t, setupBackend(t))
	ctx := context.Background()

	for _, r := range []types.Row{
		{"id": "a", "created_at": "2025-01-01T08:00:00Z", "calories": 90, "food_name": "pear"},
		{"id": "b", "created_at": "2025-01-01T08:00:00.500Z", "calories": 1000, "food_name": "apple"},
		{"id": "c", "created_at": "2025-01-01T12:30:00+05:00", "calories": 5, "food_name": "melon"},
	} {
		_, err := coll.Insert(ctx, r)
		require.NoError(t, err)
	}

	ids := func(rows []types.Row) []string {
		out := make([]string, len(rows))
		for i, r := range rows {
			out[i] = types.RowID(r)
		}
		return out
	}

	tests := []struct {
		name  string
		order types.Order
		want  []string
	}{
		{name: "timestamps newest first", order: types.Desc("created_at"), want: []string{"b", "a", "c"}},
		{name: "timestamps oldest first", order: types.Asc("created_at"), want: []string{"c", "a", "b"}},
		{name: "numbers", order: types.Desc("calories"), want: []string{"b", "a", "c"}},
		{name: "plain text", order: types.Asc("food_name"), want: []string{"b", "c", "a"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows, err := coll.Select(ctx, types.Query{}.OrderBy(tt.order))
			require.NoError(t, err)
			assert.Equal(t, tt.want, ids(rows))
		})
	}
}

func TestCollection_SelectOperators(t *testing.T) {
	coll := foodLogs(t, setupBackend(t))
	ctx := context.Background()

	for _, r := range []types.Row{
		{"id": "a", "calories": 100, "vegan": true},
		{"id": "b", "calories": 250, "vegan": false},
		{"id": "c", "calories": 400},
	} {
		_, err := coll.Insert(ctx, r)
		require.NoError(t, err)
	}

	tests := []struct {
		name   string
		filter types.Filter
		want   []string
	}{
		{name: "gt", filter: types.Filter{Column: "calories", Op: types.OpGt, Value: 100}, want: []string{"b", "c"}},
		{name: "lte", filter: types.Filter{Column: "calories", Op: types.OpLte, Value: 250.0}, want: []string{"a", "b"}},
		{name: "neq", filter: types.Filter{Column: "calories", Op: types.OpNeq, Value: 250}, want: []string{"a", "c"}},
		{name: "bool", filter: types.Eq("vegan", true), want: []string{"a"}},
		{name: "is null", filter: types.Eq("vegan", nil), want: []string{"c"}},
		{name: "not null", filter: types.Filter{Column: "vegan", Op: types.OpNeq, Value: nil}, want: []string{"a", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows, err := coll.Select(ctx, types.Where(tt.filter))
			require.NoError(t, err)
			var got []string
			for _, r := range rows {
				got = append(got, types.RowID(r))
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCollection_UpdateMergesValues(t *testing.T) {
	coll := foodLogs(t, setupBackend(t))
	ctx := context.Background()

	_, err := coll.Insert(ctx, types.Row{"id": "a", "x": 1, "y": 2})
	require.NoError(t, err)

	row, err := coll.Update(ctx, types.Where(types.Eq("id", "a")), types.Row{"y": 3})
	require.NoError(t, err)
	assert.Equal(t, types.Row{"id": "a", "x": float64(1), "y": float64(3)}, row)

	rows, err := coll.Select(ctx, types.Where(types.Eq("id", "a")))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, float64(3), rows[0]["y"])
}

func TestCollection_UpdateSingleRowContract(t *testing.T) {
	coll := foodLogs(t, setupBackend(t))
	ctx := context.Background()

	for _, id := range []string{"a", "b"} {
		_, err := coll.Insert(ctx, types.Row{"id": id, "user_id": "u1", "meal": "lunch"})
		require.NoError(t, err)
	}

	_, err := coll.Update(ctx, types.Where(types.Eq("id", "missing")), types.Row{"meal": "dinner"})
	assert.ErrorIs(t, err, types.ErrNotFound)

	_, err = coll.Update(ctx, types.Where(types.Eq("user_id", "u1")), types.Row{"meal": "dinner"})
	assert.ErrorIs(t, err, types.ErrMultipleRows)

	rows, err := coll.Select(ctx, types.Where(types.Eq("meal", "dinner")))
	require.NoError(t, err)
	assert.Empty(t, rows, "failed updates must not write")
}

func TestCollection_Delete(t *testing.T) {
	coll := foodLogs(t, setupBackend(t))
	ctx := context.Background()

	_, err := coll.Insert(ctx, types.Row{"id": "a", "user_id": "u1"})
	require.NoError(t, err)
	_, err = coll.Insert(ctx, types.Row{"id": "b", "user_id": "u1"})
	require.NoError(t, err)

	require.NoError(t, coll.Delete(ctx, types.Where(types.Eq("id", "a"))))
	require.NoError(t, coll.Delete(ctx, types.Where(types.Eq("id", "a"))), "deleting a missing id is a no-op")

	rows, err := coll.Select(ctx, types.Query{})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "b", rows[0]["id"])
}

func TestCollection_CollectionsAreIsolated(t *testing.T) {
	b := setupBackend(t)
	ctx := context.Background()

	logs := foodLogs(t, b)
	other, err := b.From("user_water_logs")
	require.NoError(t, err)

	_, err = logs.Insert(ctx, types.Row{"id": "a", "user_id": "u1"})
	require.NoError(t, err)

	rows, err := other.Select(ctx, types.Where(types.Eq("user_id", "u1")))
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestCollection_InvalidQuery(t *testing.T) {
	coll := foodLogs(t, setupBackend(t))

	_, err := coll.Select(context.Background(), types.Where(types.Eq("body') --", "x")))
	assert.ErrorIs(t, err, types.ErrInvalidColumn)
	_, err = coll.Update(context.Background(), types.Where(types.Filter{Column: "id", Op: "like", Value: "a%"}), types.Row{})
	assert.ErrorIs(t, err, types.ErrInvalidOperator)
}
