// Package types defines the Handle and Collection interfaces, the
// FoodLogRecord entity, the query shapes passed to backends, and the
// standard errors for the food log data-access layer.
package types
