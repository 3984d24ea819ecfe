package ledger

import (
	"context"
	"fmt"
	"strings"
)

type Service struct {
	Store *Store
}

func NewService(store *Store) *Service {
	return &Service{Store: store}
}

func (s *Service) Append(ctx context.Context, entry Entry) (Entry, error) {
	if err := validateEntry(entry); err != nil {
		return Entry{}, err
	}
	return s.Store.Append(ctx, entry)
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]Entry, error) {
	if filter.Limit <= 0 || filter.Limit > 200 {
		filter.Limit = 50
	}
	return s.Store.List(ctx, filter)
}

func (s *Service) Delete(ctx context.Context, id string) (Entry, error) {
	return s.Store.Delete(ctx, id)
}

func validateEntry(entry Entry) error {
	if entry.EmployeeID == "" {
		return fmt.Errorf("%w: employee id is required", ErrInvalidEntry)
	}
	if strings.TrimSpace(entry.MetricKey) == "" {
		return fmt.Errorf("%w: metric key is required", ErrInvalidEntry)
	}
	if entry.PeriodStart.IsZero() || entry.PeriodEnd.IsZero() {
		return fmt.Errorf("%w: period bounds are required", ErrInvalidEntry)
	}
	if entry.PeriodEnd.Before(entry.PeriodStart) {
		return fmt.Errorf("%w: period end before period start", ErrInvalidEntry)
	}
	if !ValidSource(entry.SourceType) {
		return fmt.Errorf("%w: unknown source type %q", ErrInvalidEntry, entry.SourceType)
	}
	return nil
}
