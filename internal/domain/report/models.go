package report

import (
	"fmt"
	"time"

	"pact/internal/domain/evaluation"
)

const (
	TypeSalaryAdjustment = "salary_adjustment"
	TypeRoleContinuation = "role_continuation"
	TypePactReport       = "pact_report"
)

const (
	StatusDraft     = "draft"
	StatusFinalized = "finalized"
	StatusDelivered = "delivered"
)

func ValidType(reportType string) bool {
	switch reportType {
	case TypeSalaryAdjustment, TypeRoleContinuation, TypePactReport:
		return true
	}
	return false
}

type Report struct {
	ID          string     `json:"id"`
	EmployeeID  string     `json:"employeeId"`
	Type        string     `json:"type"`
	Status      string     `json:"status"`
	PeriodStart time.Time  `json:"periodStart"`
	PeriodEnd   time.Time  `json:"periodEnd"`
	GeneratedAt time.Time  `json:"generatedAt"`
	FinalizedAt *time.Time `json:"finalizedAt,omitempty"`
	Content     Content    `json:"content"`
	FileURL     string     `json:"fileUrl,omitempty"`
}

// Content is the structured body shared by all report types. Which
// sections are populated depends on the type.
type Content struct {
	Summary                string        `json:"summary,omitempty"`
	Strengths              []string      `json:"strengths,omitempty"`
	ContinuationConditions []string      `json:"continuationConditions,omitempty"`
	ImprovementConditions  []string      `json:"improvementConditions,omitempty"`
	UnmetMetrics           []UnmetMetric `json:"unmetMetrics,omitempty"`
	ReemploymentSummary    string        `json:"reemploymentSummary,omitempty"`
}

type UnmetMetric struct {
	Name      string  `json:"name"`
	Threshold float64 `json:"threshold"`
	Actual    float64 `json:"actual"`
	Gap       float64 `json:"gap"`
	Band      string  `json:"band"`
}

// BuildContent renders the metric results of the evaluation that
// produced the report into the report body.
func BuildContent(reportType string, metrics []evaluation.MetricResult) Content {
	var content Content
	for _, metric := range metrics {
		switch metric.Status {
		case evaluation.StatusGrowth:
			content.Strengths = append(content.Strengths,
				fmt.Sprintf("%s reached the growth threshold", metric.Name))
		case evaluation.StatusWarning, evaluation.StatusCritical:
			if metric.Value == nil {
				continue
			}
			threshold := metric.Thresholds.Stable
			if metric.Status == evaluation.StatusCritical {
				threshold = metric.Thresholds.Warning
			}
			gap := threshold - *metric.Value
			if metric.Direction == evaluation.DirectionLowerIsBetter {
				gap = *metric.Value - threshold
			}
			content.UnmetMetrics = append(content.UnmetMetrics, UnmetMetric{
				Name:      metric.Name,
				Threshold: threshold,
				Actual:    *metric.Value,
				Gap:       gap,
				Band:      string(metric.Status),
			})
		}
	}

	switch reportType {
	case TypeSalaryAdjustment:
		content.Summary = "Sustained growth performance qualifies for a salary adjustment review."
	case TypeRoleContinuation:
		content.Summary = "Performance has recovered to a stable level."
		for _, unmet := range content.UnmetMetrics {
			content.ContinuationConditions = append(content.ContinuationConditions,
				fmt.Sprintf("keep %s at or above %.2f", unmet.Name, unmet.Threshold))
		}
	case TypePactReport:
		content.Summary = "Performance has not met the agreed thresholds."
		for _, unmet := range content.UnmetMetrics {
			content.ImprovementConditions = append(content.ImprovementConditions,
				fmt.Sprintf("bring %s back to at least %.2f (currently %.2f)", unmet.Name, unmet.Threshold, unmet.Actual))
		}
		if len(content.Strengths) > 0 {
			content.ReemploymentSummary = "Re-engagement remains possible given the strengths listed above."
		}
	}
	return content
}
