package foodlog

import (
	"log/slog"

	"github.com/mesh-intelligence/foodlog/pkg/types"
)

// Options configures a Service. The zero value is usable.
type Options struct {
	// Clock stamps records created without created_at (default: SystemClock).
	Clock Clock

	// Logger receives one error entry per failed operation
	// (default: slog.Default()).
	Logger *slog.Logger

	// Collection is the remote collection name (default: user_food_logs).
	Collection string
}

// withDefaults applies default values to Options.
func (o Options) withDefaults() Options {
	if o.Clock == nil {
		o.Clock = SystemClock
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	if o.Collection == "" {
		o.Collection = types.FoodLogsCollection
	}
	return o
}
