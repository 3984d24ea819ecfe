package report

import (
	"context"
	"fmt"
	"time"
)

type Service struct {
	Store  *Store
	Crypto Encryptor
}

// Encryptor guards report files at rest.
type Encryptor interface {
	Configured() bool
	Encrypt(plain []byte) ([]byte, error)
	Decrypt(ciphertext []byte) ([]byte, error)
}

func NewService(store *Store, crypto Encryptor) *Service {
	return &Service{Store: store, Crypto: crypto}
}

func (s *Service) Create(ctx context.Context, rep Report) (Report, error) {
	if !ValidType(rep.Type) {
		return Report{}, fmt.Errorf("%w: unknown report type %q", ErrInvalidReport, rep.Type)
	}
	if rep.EmployeeID == "" {
		return Report{}, fmt.Errorf("%w: employee id is required", ErrInvalidReport)
	}
	if rep.PeriodEnd.Before(rep.PeriodStart) {
		return Report{}, fmt.Errorf("%w: period end before period start", ErrInvalidReport)
	}
	return s.Store.Create(ctx, rep)
}

func (s *Service) Get(ctx context.Context, id string) (Report, error) {
	return s.Store.ByID(ctx, id)
}

func (s *Service) List(ctx context.Context, employeeID, reportType, status string) ([]Report, error) {
	return s.Store.List(ctx, employeeID, reportType, status)
}

func (s *Service) Finalize(ctx context.Context, id string) (Report, error) {
	return s.Store.Finalize(ctx, id, time.Now().UTC())
}
