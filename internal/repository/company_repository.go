package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"guild-hub-api/internal/domain"
	"guild-hub-api/internal/dto"
)

// CompanyRepository defines the interface for company data access
type CompanyRepository interface {
	Create(ctx context.Context, company *domain.Company) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Company, error)
	FindPaged(ctx context.Context, params dto.PaginationParams, userID *uuid.UUID) ([]*domain.Company, int64, error)
	Update(ctx context.Context, company *domain.Company) error
	Delete(ctx context.Context, company *domain.Company) error
}

// companyRepositoryImpl is the GORM implementation of CompanyRepository
type companyRepositoryImpl struct {
	db *gorm.DB
}

// NewCompanyRepository creates a new instance of CompanyRepository
func NewCompanyRepository(db *gorm.DB) CompanyRepository {
	return &companyRepositoryImpl{db: db}
}

func (r *companyRepositoryImpl) Create(ctx context.Context, company *domain.Company) error {
	return r.db.WithContext(ctx).Create(company).Error
}

// FindByID returns the company or nil when it does not exist
func (r *companyRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*domain.Company, error) {
	var company domain.Company
	err := r.db.WithContext(ctx).First(&company, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &company, nil
}

// FindPaged returns one page of companies plus the total count, optionally
// filtered to those created by userID
func (r *companyRepositoryImpl) FindPaged(ctx context.Context, params dto.PaginationParams, userID *uuid.UUID) ([]*domain.Company, int64, error) {
	var scopes []func(*gorm.DB) *gorm.DB
	if userID != nil {
		scopes = append(scopes, createdBy(userID.String()))
	}
	return findPaged[domain.Company](ctx, r.db, params, "", scopes...)
}

// Update saves the full aggregate state
func (r *companyRepositoryImpl) Update(ctx context.Context, company *domain.Company) error {
	return r.db.WithContext(ctx).Save(company).Error
}

func (r *companyRepositoryImpl) Delete(ctx context.Context, company *domain.Company) error {
	return r.db.WithContext(ctx).Delete(company).Error
}
