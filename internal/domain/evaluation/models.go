package evaluation

import "time"

type Direction string

const (
	DirectionHigherIsBetter Direction = "higher_is_better"
	DirectionLowerIsBetter  Direction = "lower_is_better"
)

// Status is the band of a single metric's latest value.
type Status string

const (
	StatusGrowth   Status = "growth"
	StatusStable   Status = "stable"
	StatusWarning  Status = "warning"
	StatusCritical Status = "critical"
	StatusNoData   Status = "no_data"
)

// State is the employee-level aggregate of all metric bands. Exit is
// terminal and only ever reached through the sustained-critical rule.
type State string

const (
	StateGrowth   State = "growth"
	StateStable   State = "stable"
	StateWarning  State = "warning"
	StateCritical State = "critical"
	StateExit     State = "exit"
)

// Thresholds are the four directional bounds of one metric. For
// higher_is_better: growth > stable > warning > critical; for
// lower_is_better the ordering reverses.
type Thresholds struct {
	Growth   float64 `json:"growth"`
	Stable   float64 `json:"stable"`
	Warning  float64 `json:"warning"`
	Critical float64 `json:"critical"`
}

type Classification struct {
	Status Status `json:"status"`
	// DistanceToGrowth is how far the value is from the growth bound,
	// set for stable and warning bands.
	DistanceToGrowth *float64 `json:"distanceToGrowth,omitempty"`
	// DistanceToNextBand is how much more is needed to leave the
	// critical band, i.e. to reach the warning bound.
	DistanceToNextBand *float64 `json:"distanceToNextBand,omitempty"`
}

// MetricResult is one metric's full evaluation outcome, carried through
// to transitions and reports for explanation.
type MetricResult struct {
	MetricID   string     `json:"metricId"`
	Name       string     `json:"name"`
	Unit       string     `json:"unit"`
	Weight     float64    `json:"weight"`
	Direction  Direction  `json:"direction"`
	Thresholds Thresholds `json:"thresholds"`
	Value      *float64   `json:"value,omitempty"`
	Classification
}

// Sample is the ledger view the sampler works over.
type Sample struct {
	MetricKey   string
	Value       float64
	PeriodStart time.Time
	PeriodEnd   time.Time
	RecordedAt  time.Time
}

var statusRank = map[Status]int{
	StatusCritical: 0,
	StatusWarning:  1,
	StatusStable:   2,
	StatusGrowth:   3,
}

var stateRank = map[State]int{
	StateExit:     -1,
	StateCritical: 0,
	StateWarning:  1,
	StateStable:   2,
	StateGrowth:   3,
}

// StateRank orders states from worst to best; exit ranks below critical.
func StateRank(state State) int {
	return stateRank[state]
}

func ValidState(state State) bool {
	_, ok := stateRank[state]
	return ok
}
