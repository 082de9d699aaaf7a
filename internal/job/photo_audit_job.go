package job

import (
	"context"

	"go.uber.org/zap"

	"guild-hub-api/internal/client"
	"guild-hub-api/internal/domain"
	"guild-hub-api/internal/dto"
	"guild-hub-api/internal/repository"
	"guild-hub-api/internal/service"
)

// auditPageSize is how many companies are checked per page
const auditPageSize = 100

// PhotoAuditJob prunes photo keys whose backing object no longer exists in
// storage. Dangling keys appear when objects are deleted out of band or an
// upload is rolled back after the key was persisted.
type PhotoAuditJob struct {
	companyRepo repository.CompanyRepository
	storage     client.StorageClient
	resolver    service.PhotoResolver
	dispatcher  *repository.EventDispatcher
	logger      *zap.Logger
}

// NewPhotoAuditJob creates a new PhotoAuditJob instance
func NewPhotoAuditJob(
	companyRepo repository.CompanyRepository,
	storage client.StorageClient,
	resolver service.PhotoResolver,
	dispatcher *repository.EventDispatcher,
	logger *zap.Logger,
) *PhotoAuditJob {
	return &PhotoAuditJob{
		companyRepo: companyRepo,
		storage:     storage,
		resolver:    resolver,
		dispatcher:  dispatcher,
		logger:      logger,
	}
}

// Run walks all companies page by page and removes dangling photo keys
func (j *PhotoAuditJob) Run() {
	ctx := context.Background()

	j.logger.Info("Starting photo audit job")

	checked := 0
	pruned := 0

	params := dto.PaginationParams{PageNumber: 1, PageSize: auditPageSize}
	for {
		companies, total, err := j.companyRepo.FindPaged(ctx, params, nil)
		if err != nil {
			j.logger.Error("Failed to list companies for photo audit", zap.Error(err))
			return
		}

		for _, company := range companies {
			checked++
			pruned += j.auditCompany(ctx, company)
		}

		if int64(params.PageNumber*params.PageSize) >= total {
			break
		}
		params.PageNumber++
	}

	j.logger.Info("Photo audit job completed",
		zap.Int("companies_checked", checked),
		zap.Int("keys_pruned", pruned),
	)
}

// auditCompany removes the company's dangling keys and returns how many were
// pruned. Storage errors leave the key in place; only a definitive "object
// does not exist" prunes it.
func (j *PhotoAuditJob) auditCompany(ctx context.Context, company *domain.Company) int {
	if len(company.PhotoKeys) == 0 {
		return 0
	}

	live := make([]string, 0, len(company.PhotoKeys))
	for _, key := range company.PhotoKeys {
		exists, err := j.storage.ObjectExists(ctx, key)
		if err != nil {
			j.logger.Warn("Failed to check photo object, keeping key",
				zap.String("company_id", company.ID.String()),
				zap.String("object_key", key),
				zap.Error(err),
			)
			live = append(live, key)
			continue
		}
		if exists {
			live = append(live, key)
		} else {
			j.logger.Info("Pruning dangling photo key",
				zap.String("company_id", company.ID.String()),
				zap.String("object_key", key),
			)
		}
	}

	prunedCount := len(company.PhotoKeys) - len(live)
	if prunedCount == 0 {
		return 0
	}

	company.SetPhotoKeys(live)
	if err := j.companyRepo.Update(ctx, company); err != nil {
		j.logger.Error("Failed to persist pruned photo keys",
			zap.String("company_id", company.ID.String()),
			zap.Error(err),
		)
		return 0
	}

	j.dispatcher.Dispatch(ctx, company)

	// cached URLs for removed keys must not outlive them
	j.resolver.Evict(ctx, "company", company.ID)

	return prunedCount
}
