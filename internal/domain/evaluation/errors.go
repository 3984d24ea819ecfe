package evaluation

import "errors"

var (
	// ErrConfiguration marks malformed role configuration: non-monotonic
	// thresholds, unknown directions, weights not summing to 100. Never
	// retried; the operator has to fix the config.
	ErrConfiguration = errors.New("invalid evaluation configuration")

	// ErrInsufficientData means every metric was no_data for the window.
	// The evaluation is a no-op, not a batch-aborting failure.
	ErrInsufficientData = errors.New("no metric data in evaluation window")
)
