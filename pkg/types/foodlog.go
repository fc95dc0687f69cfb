package types

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/samber/lo"
)

// FoodLogRecord is one food-intake event for one user.
type FoodLogRecord struct {
	ID        string         // Assigned by the store on creation.
	UserID    string         // Owning user (required).
	CreatedAt string         // ISO-8601 text, set by the client when absent.
	Fields    map[string]any // Caller-defined attributes, stored opaquely.
}

// timestampLayouts are the textual forms accepted by CreatedTime, most
// specific first. Stores without a zone render timestamps without offset.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999",
}

// CreatedTime parses CreatedAt.
func (r FoodLogRecord) CreatedTime() (time.Time, error) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, r.CreatedAt); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("parsing created_at %q: unrecognized timestamp", r.CreatedAt)
}

// Normalize moves id, user_id and created_at found in Fields into the
// struct fields, so a record built from a plain map behaves like one built
// field by field. Values already set on the struct win.
func (r FoodLogRecord) Normalize() FoodLogRecord {
	known := []string{ColumnID, ColumnUserID, ColumnCreatedAt}
	if !lo.SomeBy(known, func(col string) bool { _, ok := r.Fields[col]; return ok }) {
		return r
	}
	if r.ID == "" {
		r.ID = columnText(r.Fields[ColumnID])
	}
	if r.UserID == "" {
		r.UserID = columnText(r.Fields[ColumnUserID])
	}
	if r.CreatedAt == "" {
		r.CreatedAt = columnText(r.Fields[ColumnCreatedAt])
	}
	r.Fields = lo.OmitByKeys(r.Fields, known)
	return r
}

// Row flattens the record into a column map. Empty ID and CreatedAt are
// omitted so the store and the caller can fill them in.
func (r FoodLogRecord) Row() Row {
	row := lo.Assign(r.Fields)
	if r.ID != "" {
		row[ColumnID] = r.ID
	}
	if r.UserID != "" {
		row[ColumnUserID] = r.UserID
	}
	if r.CreatedAt != "" {
		row[ColumnCreatedAt] = r.CreatedAt
	}
	return row
}

// RecordFromRow builds a FoodLogRecord from a row returned by a store.
// Columns other than id, user_id and created_at land in Fields.
func RecordFromRow(row Row) FoodLogRecord {
	rec := FoodLogRecord{Fields: make(map[string]any, len(row))}
	for col, val := range row {
		switch col {
		case ColumnID:
			rec.ID = columnText(val)
		case ColumnUserID:
			rec.UserID = columnText(val)
		case ColumnCreatedAt:
			rec.CreatedAt = columnText(val)
		default:
			rec.Fields[col] = val
		}
	}
	return rec
}

// columnText renders identifier and timestamp columns as text. JSON numbers
// decode as float64, so integral ids are printed without an exponent.
func columnText(val any) string {
	switch v := val.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case json.Number:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}

// MarshalJSON encodes the record as a flat object.
func (r FoodLogRecord) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.Row())
}

// UnmarshalJSON decodes a flat object into the record.
func (r *FoodLogRecord) UnmarshalJSON(data []byte) error {
	var row Row
	if err := json.Unmarshal(data, &row); err != nil {
		return err
	}
	*r = RecordFromRow(row)
	return nil
}
