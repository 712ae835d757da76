package metrics

import (
	"context"
	"time"
)

// pollerFunction alias is private and should be used only here
type pollerFunction = func(ctx context.Context) error

// RecordPollerDuration wraps f so every run is observed under typ,
// split by outcome
func RecordPollerDuration(typ string, f pollerFunction) pollerFunction {
	return func(ctx context.Context) (err error) {
		defer func(start time.Time) {
			status := Success
			if err != nil {
				status = Error
			}
			pollerDurationHistogram.WithLabelValues(typ, status.String()).Observe(time.Since(start).Seconds())
		}(time.Now())

		return f(ctx)
	}
}
