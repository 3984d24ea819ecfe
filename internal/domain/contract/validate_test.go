package contract

import (
	"errors"
	"testing"

	"pact/internal/domain/evaluation"
)

func validConfig() RoleConfig {
	return RoleConfig{
		Name:                 "Logistics Driver",
		Department:           "Operations",
		EvaluationPeriodDays: 30,
		Metrics: []MetricDefinition{
			{
				Name:      "on-time delivery rate",
				Unit:      "%",
				Weight:    60,
				Direction: evaluation.DirectionHigherIsBetter,
				Thresholds: evaluation.Thresholds{
					Growth: 95, Stable: 90, Warning: 85, Critical: 80,
				},
			},
			{
				Name:      "incident count",
				Unit:      "incidents",
				Weight:    40,
				Direction: evaluation.DirectionLowerIsBetter,
				Thresholds: evaluation.Thresholds{
					Growth: 0, Stable: 1, Warning: 3, Critical: 5,
				},
			},
		},
	}
}

func TestValidateAcceptsWellFormedConfig(t *testing.T) {
	if err := Validate(validConfig()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateRejectsWeightsNotSummingTo100(t *testing.T) {
	cfg := validConfig()
	cfg.Metrics[0].Weight = 50
	err := Validate(cfg)
	if !errors.Is(err, evaluation.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}

func TestValidateRejectsUnorderedThresholds(t *testing.T) {
	cfg := validConfig()
	cfg.Metrics[0].Thresholds = evaluation.Thresholds{Growth: 80, Stable: 90, Warning: 85, Critical: 70}
	err := Validate(cfg)
	if !errors.Is(err, evaluation.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}

func TestValidateRejectsDuplicateMetricNames(t *testing.T) {
	cfg := validConfig()
	cfg.Metrics[1].Name = cfg.Metrics[0].Name
	if err := Validate(cfg); !errors.Is(err, evaluation.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}

func TestValidateRejectsEmptyAndNonPositiveFields(t *testing.T) {
	cfg := validConfig()
	cfg.Name = "  "
	if err := Validate(cfg); !errors.Is(err, evaluation.ErrConfiguration) {
		t.Fatalf("expected configuration error for blank name, got %v", err)
	}

	cfg = validConfig()
	cfg.EvaluationPeriodDays = 0
	if err := Validate(cfg); !errors.Is(err, evaluation.ErrConfiguration) {
		t.Fatalf("expected configuration error for zero period, got %v", err)
	}

	cfg = validConfig()
	cfg.Metrics = nil
	if err := Validate(cfg); !errors.Is(err, evaluation.ErrConfiguration) {
		t.Fatalf("expected configuration error for empty metrics, got %v", err)
	}
}
