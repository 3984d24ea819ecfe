package employee

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"pact/internal/domain/contract"
	"pact/internal/domain/evaluation"
)

var ErrInvalidEmployee = errors.New("invalid employee")

type Service struct {
	Store     *Store
	Contracts *contract.Store
}

func NewService(store *Store, contracts *contract.Store) *Service {
	return &Service{Store: store, Contracts: contracts}
}

func (s *Service) Create(ctx context.Context, emp Employee) (Employee, error) {
	if strings.TrimSpace(emp.Email) == "" {
		return Employee{}, fmt.Errorf("%w: email is required", ErrInvalidEmployee)
	}
	if emp.RoleConfigID == "" {
		return Employee{}, fmt.Errorf("%w: role config id is required", ErrInvalidEmployee)
	}
	if _, err := s.Contracts.ByID(ctx, emp.RoleConfigID); err != nil {
		return Employee{}, err
	}
	return s.Store.Create(ctx, emp)
}

func (s *Service) Get(ctx context.Context, id string) (Employee, error) {
	return s.Store.ByID(ctx, id)
}

func (s *Service) List(ctx context.Context, state string) ([]Employee, error) {
	if state != "" && !evaluation.ValidState(evaluation.State(state)) {
		return nil, fmt.Errorf("%w: unknown state %q", ErrInvalidEmployee, state)
	}
	return s.Store.List(ctx, evaluation.State(state))
}
