package evaluation

import "fmt"

// ValidateThresholds rejects threshold sets that are not strictly
// ordered for their direction. Classification over unordered thresholds
// is undefined, so this fails loudly instead of misclassifying.
func ValidateThresholds(t Thresholds, direction Direction) error {
	switch direction {
	case DirectionHigherIsBetter:
		if !(t.Growth > t.Stable && t.Stable > t.Warning && t.Warning > t.Critical) {
			return fmt.Errorf("%w: thresholds must satisfy growth > stable > warning > critical, got %+v", ErrConfiguration, t)
		}
	case DirectionLowerIsBetter:
		if !(t.Growth < t.Stable && t.Stable < t.Warning && t.Warning < t.Critical) {
			return fmt.Errorf("%w: thresholds must satisfy growth < stable < warning < critical, got %+v", ErrConfiguration, t)
		}
	default:
		return fmt.Errorf("%w: unknown direction %q", ErrConfiguration, direction)
	}
	return nil
}

// Classify grades one recorded value against a metric's four thresholds.
// A nil value means no data in the window. Pure function, no I/O.
func Classify(value *float64, thresholds Thresholds, direction Direction) (Classification, error) {
	if err := ValidateThresholds(thresholds, direction); err != nil {
		return Classification{}, err
	}
	if value == nil {
		return Classification{Status: StatusNoData}, nil
	}

	v := *value
	switch direction {
	case DirectionHigherIsBetter:
		switch {
		case v >= thresholds.Growth:
			return Classification{Status: StatusGrowth}, nil
		case v >= thresholds.Stable:
			return Classification{Status: StatusStable, DistanceToGrowth: ptr(thresholds.Growth - v)}, nil
		case v >= thresholds.Warning:
			return Classification{Status: StatusWarning, DistanceToGrowth: ptr(thresholds.Growth - v)}, nil
		default:
			return Classification{Status: StatusCritical, DistanceToNextBand: ptr(thresholds.Warning - v)}, nil
		}
	default: // lower_is_better, validated above
		switch {
		case v <= thresholds.Growth:
			return Classification{Status: StatusGrowth}, nil
		case v <= thresholds.Stable:
			return Classification{Status: StatusStable, DistanceToGrowth: ptr(v - thresholds.Growth)}, nil
		case v <= thresholds.Warning:
			return Classification{Status: StatusWarning, DistanceToGrowth: ptr(v - thresholds.Growth)}, nil
		default:
			return Classification{Status: StatusCritical, DistanceToNextBand: ptr(v - thresholds.Warning)}, nil
		}
	}
}

func ptr(v float64) *float64 {
	return &v
}
