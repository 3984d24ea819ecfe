package employee

import (
	"time"

	"pact/internal/domain/evaluation"
)

type Employee struct {
	ID                   string           `json:"id"`
	UserID               string           `json:"userId,omitempty"`
	FirstName            string           `json:"firstName"`
	LastName             string           `json:"lastName"`
	Email                string           `json:"email"`
	RoleConfigID         string           `json:"roleConfigId"`
	CurrentState         evaluation.State `json:"currentState"`
	ConsecutiveCriticals int              `json:"consecutiveCriticals"`
	LastEvaluatedAt      *time.Time       `json:"lastEvaluatedAt,omitempty"`
	CreatedAt            time.Time        `json:"createdAt"`
}
