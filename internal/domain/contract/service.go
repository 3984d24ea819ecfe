package contract

import "context"

type Service struct {
	Store *Store
}

func NewService(store *Store) *Service {
	return &Service{Store: store}
}

// Create validates and stores a role config as a fresh version. Reusing
// an existing name produces the next version rather than an overwrite.
func (s *Service) Create(ctx context.Context, cfg RoleConfig) (RoleConfig, error) {
	if err := Validate(cfg); err != nil {
		return RoleConfig{}, err
	}
	return s.Store.CreateVersion(ctx, cfg)
}

func (s *Service) Get(ctx context.Context, id string) (RoleConfig, error) {
	return s.Store.ByID(ctx, id)
}

func (s *Service) GetCurrent(ctx context.Context, name string) (RoleConfig, error) {
	return s.Store.CurrentByName(ctx, name)
}

func (s *Service) List(ctx context.Context) ([]RoleConfig, error) {
	return s.Store.List(ctx)
}
