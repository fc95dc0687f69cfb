package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/samber/lo"

	"github.com/mesh-intelligence/foodlog/pkg/types"
)

// Compile-time interface check.
var _ types.Collection = (*collection)(nil)

// sqlOperators maps filter operators to SQL comparison operators.
var sqlOperators = map[string]string{
	types.OpEq:  "=",
	types.OpNeq: "!=",
	types.OpGt:  ">",
	types.OpGte: ">=",
	types.OpLt:  "<",
	types.OpLte: "<=",
}

// collection implements types.Collection for one named collection. Reads
// share the backend lock; writes hold it exclusively and rewrite the
// collection's JSONL file inside the same transaction.
type collection struct {
	backend *Backend
	name    string
}

// Select returns matching rows ordered by q.Order, ties broken by row id.
func (c *collection) Select(ctx context.Context, q types.Query) ([]types.Row, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}
	c.backend.mu.RLock()
	defer c.backend.mu.RUnlock()
	if !c.backend.attached {
		return nil, types.ErrHandleDetached
	}

	where, args := c.whereClause(q)
	query := "SELECT body FROM records WHERE " + where + orderClause(q)
	for _, o := range q.Order {
		path := jsonPath(o.Column)
		args = append(args, path, path, path)
	}

	rows, err := c.backend.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("selecting from %s: %w", c.name, err)
	}
	defer rows.Close()

	out := []types.Row{}
	for rows.Next() {
		var body string
		if err := rows.Scan(&body); err != nil {
			return nil, fmt.Errorf("scanning %s row: %w", c.name, err)
		}
		row, err := decodeBody(body)
		if err != nil {
			return nil, fmt.Errorf("decoding %s row: %w", c.name, err)
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating %s rows: %w", c.name, err)
	}
	return out, nil
}

// Insert stores one row, assigning a UUID v7 id when the row has none.
// Returns ErrDuplicateID if the id is taken.
func (c *collection) Insert(ctx context.Context, row types.Row) (types.Row, error) {
	row = lo.Assign(row)
	id := types.RowID(row)
	if id == "" {
		id = generateUUID()
	}
	row[types.ColumnID] = id

	body, err := json.Marshal(row)
	if err != nil {
		return nil, fmt.Errorf("encoding %s row: %w", c.name, err)
	}

	err = c.write(ctx, func(tx *sql.Tx) error {
		var exists bool
		err := tx.QueryRowContext(ctx,
			"SELECT 1 FROM records WHERE collection = ? AND row_id = ?", c.name, id,
		).Scan(&exists)
		if err == nil {
			return fmt.Errorf("inserting %s %s: %w", c.name, id, types.ErrDuplicateID)
		}
		if err != sql.ErrNoRows {
			return fmt.Errorf("checking %s existence: %w", c.name, err)
		}
		_, err = tx.ExecContext(ctx,
			"INSERT INTO records (collection, row_id, body) VALUES (?, ?, ?)",
			c.name, id, string(body),
		)
		if err != nil {
			return fmt.Errorf("inserting %s row: %w", c.name, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return decodeBody(string(body))
}

// Update merges values into the single row matching q. Zero matches return
// ErrNotFound, several return ErrMultipleRows; neither writes anything.
func (c *collection) Update(ctx context.Context, q types.Query, values types.Row) (types.Row, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	var updated []byte
	err := c.write(ctx, func(tx *sql.Tx) error {
		where, args := c.whereClause(q)
		rows, err := tx.QueryContext(ctx, "SELECT row_id, body FROM records WHERE "+where+" LIMIT 2", args...)
		if err != nil {
			return fmt.Errorf("selecting %s row: %w", c.name, err)
		}
		var matches []struct{ id, body string }
		for rows.Next() {
			var m struct{ id, body string }
			if err := rows.Scan(&m.id, &m.body); err != nil {
				rows.Close()
				return fmt.Errorf("scanning %s row: %w", c.name, err)
			}
			matches = append(matches, m)
		}
		rows.Close()
		if err := rows.Err(); err != nil {
			return fmt.Errorf("iterating %s rows: %w", c.name, err)
		}

		switch len(matches) {
		case 0:
			return fmt.Errorf("updating %s: %w", c.name, types.ErrNotFound)
		case 1:
		default:
			return fmt.Errorf("updating %s: %w", c.name, types.ErrMultipleRows)
		}

		current, err := decodeBody(matches[0].body)
		if err != nil {
			return fmt.Errorf("decoding %s row: %w", c.name, err)
		}
		merged := lo.Assign(current, values)
		newID := types.RowID(merged)
		if newID == "" {
			newID = matches[0].id
			merged[types.ColumnID] = newID
		}
		updated, err = json.Marshal(merged)
		if err != nil {
			return fmt.Errorf("encoding %s row: %w", c.name, err)
		}

		_, err = tx.ExecContext(ctx,
			"UPDATE records SET row_id = ?, body = ? WHERE collection = ? AND row_id = ?",
			newID, string(updated), c.name, matches[0].id,
		)
		if err != nil {
			return fmt.Errorf("updating %s row: %w", c.name, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return decodeBody(string(updated))
}

// Delete removes all matching rows. Matching nothing succeeds.
func (c *collection) Delete(ctx context.Context, q types.Query) error {
	if err := q.Validate(); err != nil {
		return err
	}
	return c.write(ctx, func(tx *sql.Tx) error {
		where, args := c.whereClause(q)
		if _, err := tx.ExecContext(ctx, "DELETE FROM records WHERE "+where, args...); err != nil {
			return fmt.Errorf("deleting from %s: %w", c.name, err)
		}
		return nil
	})
}

// write runs fn in a transaction under the exclusive backend lock, then
// rewrites the collection's JSONL file before committing. A failed file
// write rolls the database back, so both stay in step.
func (c *collection) write(ctx context.Context, fn func(tx *sql.Tx) error) error {
	c.backend.mu.Lock()
	defer c.backend.mu.Unlock()
	if !c.backend.attached {
		return types.ErrHandleDetached
	}

	tx, err := c.backend.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}
	if err := c.persistJSONL(ctx, tx); err != nil {
		return fmt.Errorf("persisting %s%s: %w", c.name, jsonlExt, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing %s: %w", c.name, err)
	}
	return nil
}

// persistJSONL writes every row of the collection, ordered by row id.
func (c *collection) persistJSONL(ctx context.Context, tx *sql.Tx) error {
	rows, err := tx.QueryContext(ctx,
		"SELECT body FROM records WHERE collection = ? ORDER BY row_id", c.name)
	if err != nil {
		return err
	}
	defer rows.Close()

	var records []json.RawMessage
	for rows.Next() {
		var body string
		if err := rows.Scan(&body); err != nil {
			return err
		}
		records = append(records, json.RawMessage(body))
	}
	if err := rows.Err(); err != nil {
		return err
	}
	return writeJSONL(c.backend.jsonlPath(c.name), records)
}

// whereClause renders the collection predicate plus q's filters. The query
// must already be validated, so column names are safe to embed in the
// JSON path argument.
func (c *collection) whereClause(q types.Query) (string, []any) {
	clauses := []string{"collection = ?"}
	args := []any{c.name}
	for _, f := range q.Filters {
		if f.Value == nil {
			if f.Op == types.OpNeq {
				clauses = append(clauses, "json_extract(body, ?) IS NOT NULL")
			} else {
				clauses = append(clauses, "json_extract(body, ?) IS NULL")
			}
			args = append(args, jsonPath(f.Column))
			continue
		}
		clauses = append(clauses, fmt.Sprintf("json_extract(body, ?) %s ?", sqlOperators[f.Op]))
		args = append(args, jsonPath(f.Column), sqlValue(f.Value))
	}
	return strings.Join(clauses, " AND "), args
}

// orderClause renders ORDER BY with three placeholders per ordering
// column. Text values are compared as instants first, so timestamps of any
// precision or offset order by time; numbers and text that julianday
// cannot parse fall back to their JSON value.
func orderClause(q types.Query) string {
	parts := make([]string, 0, 2*len(q.Order)+1)
	for _, o := range q.Order {
		dir := "ASC"
		if o.Descending {
			dir = "DESC"
		}
		parts = append(parts,
			"CASE WHEN json_type(body, ?) = 'text' THEN julianday(json_extract(body, ?)) END "+dir,
			"json_extract(body, ?) "+dir,
		)
	}
	parts = append(parts, "row_id")
	return " ORDER BY " + strings.Join(parts, ", ")
}

func jsonPath(column string) string {
	return "$." + column
}

// sqlValue converts a filter value to what json_extract yields for the
// same JSON value.
func sqlValue(v any) any {
	switch x := v.(type) {
	case time.Time:
		return x.UTC().Format(time.RFC3339Nano)
	case bool:
		if x {
			return 1
		}
		return 0
	case fmt.Stringer:
		return x.String()
	default:
		return v
	}
}

// decodeBody parses a stored JSON object.
func decodeBody(body string) (types.Row, error) {
	var row types.Row
	if err := json.Unmarshal([]byte(body), &row); err != nil {
		return nil, err
	}
	return row, nil
}
