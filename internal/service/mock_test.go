package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"guild-hub-api/internal/domain"
	"guild-hub-api/internal/dto"
	"guild-hub-api/internal/metrics"
	"guild-hub-api/internal/repository"
)

// Function-field mocks for the repository interfaces. Unset fields fall back
// to benign defaults so each test only wires what it asserts on.

type mockCompanyRepo struct {
	CreateFunc    func(ctx context.Context, company *domain.Company) error
	FindByIDFunc  func(ctx context.Context, id uuid.UUID) (*domain.Company, error)
	FindPagedFunc func(ctx context.Context, params dto.PaginationParams, userID *uuid.UUID) ([]*domain.Company, int64, error)
	UpdateFunc    func(ctx context.Context, company *domain.Company) error
	DeleteFunc    func(ctx context.Context, company *domain.Company) error
}

func (m *mockCompanyRepo) Create(ctx context.Context, company *domain.Company) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, company)
	}
	return nil
}

func (m *mockCompanyRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.Company, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockCompanyRepo) FindPaged(ctx context.Context, params dto.PaginationParams, userID *uuid.UUID) ([]*domain.Company, int64, error) {
	if m.FindPagedFunc != nil {
		return m.FindPagedFunc(ctx, params, userID)
	}
	return nil, 0, nil
}

func (m *mockCompanyRepo) Update(ctx context.Context, company *domain.Company) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, company)
	}
	return nil
}

func (m *mockCompanyRepo) Delete(ctx context.Context, company *domain.Company) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, company)
	}
	return nil
}

type mockGuildRepo struct {
	CreateFunc           func(ctx context.Context, guild *domain.Guild) error
	FindByIDFunc         func(ctx context.Context, id uuid.UUID) (*domain.Guild, error)
	FindPagedFunc        func(ctx context.Context, params dto.PaginationParams, userID *uuid.UUID) ([]*domain.Guild, int64, error)
	ExistsWithMasterFunc func(ctx context.Context, masterID uuid.UUID, excludeGuildID uuid.UUID) (bool, error)
	UpdateFunc           func(ctx context.Context, guild *domain.Guild) error
	DeleteFunc           func(ctx context.Context, guild *domain.Guild) error
}

func (m *mockGuildRepo) Create(ctx context.Context, guild *domain.Guild) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, guild)
	}
	return nil
}

func (m *mockGuildRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.Guild, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockGuildRepo) FindPaged(ctx context.Context, params dto.PaginationParams, userID *uuid.UUID) ([]*domain.Guild, int64, error) {
	if m.FindPagedFunc != nil {
		return m.FindPagedFunc(ctx, params, userID)
	}
	return nil, 0, nil
}

func (m *mockGuildRepo) ExistsWithMaster(ctx context.Context, masterID uuid.UUID, excludeGuildID uuid.UUID) (bool, error) {
	if m.ExistsWithMasterFunc != nil {
		return m.ExistsWithMasterFunc(ctx, masterID, excludeGuildID)
	}
	return false, nil
}

func (m *mockGuildRepo) Update(ctx context.Context, guild *domain.Guild) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, guild)
	}
	return nil
}

func (m *mockGuildRepo) Delete(ctx context.Context, guild *domain.Guild) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, guild)
	}
	return nil
}

type mockPlayerRepo struct {
	CreateFunc        func(ctx context.Context, player *domain.Player) error
	FindByIDFunc      func(ctx context.Context, id uuid.UUID) (*domain.Player, error)
	FindPagedFunc     func(ctx context.Context, params dto.PaginationParams, userID *uuid.UUID) ([]*domain.Player, int64, error)
	FindByGuildIDFunc func(ctx context.Context, guildID uuid.UUID) ([]*domain.Player, error)
	UpdateFunc        func(ctx context.Context, player *domain.Player) error
	DeleteFunc        func(ctx context.Context, player *domain.Player) error
}

func (m *mockPlayerRepo) Create(ctx context.Context, player *domain.Player) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, player)
	}
	return nil
}

func (m *mockPlayerRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.Player, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockPlayerRepo) FindPaged(ctx context.Context, params dto.PaginationParams, userID *uuid.UUID) ([]*domain.Player, int64, error) {
	if m.FindPagedFunc != nil {
		return m.FindPagedFunc(ctx, params, userID)
	}
	return nil, 0, nil
}

func (m *mockPlayerRepo) FindByGuildID(ctx context.Context, guildID uuid.UUID) ([]*domain.Player, error) {
	if m.FindByGuildIDFunc != nil {
		return m.FindByGuildIDFunc(ctx, guildID)
	}
	return nil, nil
}

func (m *mockPlayerRepo) Update(ctx context.Context, player *domain.Player) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, player)
	}
	return nil
}

func (m *mockPlayerRepo) Delete(ctx context.Context, player *domain.Player) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, player)
	}
	return nil
}

func newTestMetrics() *metrics.Metrics {
	return metrics.NewWithRegistry(prometheus.NewRegistry(), zap.NewNop())
}

func newTestDispatcher() *repository.EventDispatcher {
	return repository.NewEventDispatcher(repository.NewLoggingEventPublisher(zap.NewNop()), zap.NewNop())
}
