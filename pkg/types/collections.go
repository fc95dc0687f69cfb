package types

import "regexp"

// FoodLogsCollection is the remote collection holding food log records.
const FoodLogsCollection = "user_food_logs"

// Well-known columns of the food log collection.
const (
	ColumnID        = "id"
	ColumnUserID    = "user_id"
	ColumnCreatedAt = "created_at"
)

var identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// ValidIdentifier reports whether name is usable as a collection or column
// name: a letter or underscore followed by letters, digits or underscores.
func ValidIdentifier(name string) bool {
	return identifierPattern.MatchString(name)
}

// RowID returns the row's id column as text, or "" when absent.
func RowID(row Row) string {
	return columnText(row[ColumnID])
}
