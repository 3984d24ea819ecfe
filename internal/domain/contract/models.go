package contract

import (
	"time"

	"pact/internal/domain/evaluation"
)

type RoleConfig struct {
	ID                   string             `json:"id"`
	Name                 string             `json:"name"`
	Department           string             `json:"department"`
	EvaluationPeriodDays int                `json:"evaluationPeriodDays"`
	Version              int                `json:"version"`
	Metrics              []MetricDefinition `json:"metrics"`
	CreatedAt            time.Time          `json:"createdAt"`
}

type MetricDefinition struct {
	ID         string                `json:"id"`
	Name       string                `json:"name"`
	Unit       string                `json:"unit"`
	Weight     float64               `json:"weight"`
	Direction  evaluation.Direction  `json:"direction"`
	Thresholds evaluation.Thresholds `json:"thresholds"`
}
