package service

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"guild-hub-api/internal/client"
	"guild-hub-api/internal/domain"
	"guild-hub-api/internal/dto"
	"guild-hub-api/internal/metrics"
	"guild-hub-api/internal/repository"
	"guild-hub-api/internal/response"
)

// companyResourceType keys the photo URL cache entries for companies
const companyResourceType = "company"

// PhotoUpload is one file received on a multipart write request
type PhotoUpload struct {
	FileName    string
	ContentType string
	Content     io.Reader
}

// CompanyService defines the interface for company business logic
type CompanyService interface {
	ListCompanies(ctx context.Context, params dto.PaginationParams, userID *uuid.UUID) ([]dto.CompanyResponse, *dto.PaginationMetadata, error)
	GetCompany(ctx context.Context, id uuid.UUID) (*dto.CompanyResponse, error)
	CreateCompany(ctx context.Context, userID uuid.UUID, req *dto.CreateCompanyRequest, photos []PhotoUpload) (*dto.CompanyResponse, error)
	UpdateCompany(ctx context.Context, userID, id uuid.UUID, req *dto.UpdateCompanyRequest, photos []PhotoUpload) (*dto.CompanyResponse, error)
	PatchCompany(ctx context.Context, userID, id uuid.UUID, req *dto.PatchCompanyRequest) (*dto.CompanyResponse, error)
	DeleteCompany(ctx context.Context, userID, id uuid.UUID) error
}

// companyServiceImpl is the implementation of CompanyService
type companyServiceImpl struct {
	companyRepo repository.CompanyRepository
	storage     client.StorageClient
	resolver    PhotoResolver
	dispatcher  *repository.EventDispatcher
	metrics     *metrics.Metrics
	logger      *zap.Logger
}

// NewCompanyService creates a new instance of CompanyService
func NewCompanyService(
	companyRepo repository.CompanyRepository,
	storage client.StorageClient,
	resolver PhotoResolver,
	dispatcher *repository.EventDispatcher,
	m *metrics.Metrics,
	logger *zap.Logger,
) CompanyService {
	return &companyServiceImpl{
		companyRepo: companyRepo,
		storage:     storage,
		resolver:    resolver,
		dispatcher:  dispatcher,
		metrics:     m,
		logger:      logger,
	}
}

// ListCompanies returns one page of companies with their photo URLs resolved
// through a single batched cache lookup
func (s *companyServiceImpl) ListCompanies(ctx context.Context, params dto.PaginationParams, userID *uuid.UUID) ([]dto.CompanyResponse, *dto.PaginationMetadata, error) {
	params.Normalize()

	companies, total, err := s.companyRepo.FindPaged(ctx, params, userID)
	if err != nil {
		return nil, nil, err
	}

	owners := make([]PhotoSet, len(companies))
	for i, c := range companies {
		owners[i] = PhotoSet{ID: c.ID, Keys: c.PhotoKeys}
	}
	urls := s.resolver.ResolveBatch(ctx, companyResourceType, owners)
	for i, c := range companies {
		c.PhotoURLs = urls[i]
	}

	meta := dto.NewPaginationMetadata(total, params)
	return dto.NewCompanyResponseList(companies), meta, nil
}

func (s *companyServiceImpl) GetCompany(ctx context.Context, id uuid.UUID) (*dto.CompanyResponse, error) {
	company, err := s.companyRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, response.NewNotFoundError(fmt.Sprintf("Company with ID %s was not found", id))
	}

	company.PhotoURLs = s.resolver.Resolve(ctx, companyResourceType, company.ID, company.PhotoKeys)

	resp := dto.NewCompanyResponse(company)
	return &resp, nil
}

func (s *companyServiceImpl) CreateCompany(ctx context.Context, userID uuid.UUID, req *dto.CreateCompanyRequest, photos []PhotoUpload) (*dto.CompanyResponse, error) {
	phone, err := buildPhoneNumber(req.PhoneNumber, req.CountryCode)
	if err != nil {
		return nil, err
	}
	address, err := buildAddress(req.Country, req.Department, req.City, req.StreetType, req.StreetNumber, req.CrossStreetNumber, req.PropertyNumber, req.ZipCode)
	if err != nil {
		return nil, err
	}
	schedule, err := buildSchedule(scheduleInput{
		workingDays: req.WorkingDays,
		openingHour: req.OpeningHour,
		closingHour: req.ClosingHour,
		lunchStart:  req.LunchStart,
		lunchEnd:    req.LunchEnd,
		allowLunch:  req.AllowAppointmentsDuringLunch,
		durationMin: req.AppointmentDurationMinutes,
	})
	if err != nil {
		return nil, err
	}

	company, err := domain.NewCompany(
		userID,
		req.Name, req.Slogan, req.Description,
		nil,
		address, phone, req.Website, schedule,
		req.WorksOnHolidays, req.FlexibleHours,
		domain.TimeZone(req.TimeZone),
		uuid.Nil,
	)
	if err != nil {
		return nil, response.NewValidationError(err.Error())
	}

	if len(photos) > 0 {
		company.SetPhotoKeys(s.uploadPhotos(ctx, company.ID, photos))
	}

	if err := s.companyRepo.Create(ctx, company); err != nil {
		return nil, err
	}
	s.dispatcher.Dispatch(ctx, company)
	s.metrics.IncrementCompanyCreated()

	company.PhotoURLs = s.resolver.Resolve(ctx, companyResourceType, company.ID, company.PhotoKeys)

	s.logger.Info("company created",
		zap.String("company_id", company.ID.String()),
		zap.Int("photos", len(company.PhotoKeys)))

	resp := dto.NewCompanyResponse(company)
	return &resp, nil
}

// UpdateCompany replaces the full company state. Attached photo files are
// added to the stored set, keys listed in photosToDelete are removed, and
// objects no longer referenced are deleted from storage best-effort after
// the row is saved.
func (s *companyServiceImpl) UpdateCompany(ctx context.Context, userID, id uuid.UUID, req *dto.UpdateCompanyRequest, photos []PhotoUpload) (*dto.CompanyResponse, error) {
	company, err := s.companyRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, response.NewNotFoundError(fmt.Sprintf("Company with ID %s was not found", id))
	}

	phone, err := buildPhoneNumber(req.PhoneNumber, req.CountryCode)
	if err != nil {
		return nil, err
	}
	address, err := buildAddress(req.Country, req.Department, req.City, req.StreetType, req.StreetNumber, req.CrossStreetNumber, req.PropertyNumber, req.ZipCode)
	if err != nil {
		return nil, err
	}
	schedule, err := buildSchedule(scheduleInput{
		workingDays: req.WorkingDays,
		openingHour: req.OpeningHour,
		closingHour: req.ClosingHour,
		lunchStart:  req.LunchStart,
		lunchEnd:    req.LunchEnd,
		allowLunch:  req.AllowAppointmentsDuringLunch,
		durationMin: req.AppointmentDurationMinutes,
	})
	if err != nil {
		return nil, err
	}

	if err := company.UpdateName(req.Name); err != nil {
		return nil, response.NewValidationError(err.Error())
	}
	if err := company.UpdateSlogan(req.Slogan); err != nil {
		return nil, response.NewValidationError(err.Error())
	}
	company.UpdateDescription(req.Description)
	company.UpdateWebsite(req.Website)
	if err := company.UpdateAddress(address); err != nil {
		return nil, response.NewValidationError(err.Error())
	}
	if err := company.UpdatePhoneNumber(phone); err != nil {
		return nil, response.NewValidationError(err.Error())
	}
	if err := company.UpdateSchedule(schedule); err != nil {
		return nil, response.NewValidationError(err.Error())
	}
	if err := company.UpdateTimeZone(domain.TimeZone(req.TimeZone)); err != nil {
		return nil, response.NewValidationError(err.Error())
	}
	company.SetWorksOnHolidays(req.WorksOnHolidays)
	company.SetFlexibleHours(req.FlexibleHours)
	if req.IsActive {
		company.Activate()
	} else {
		company.Deactivate()
	}

	oldKeys := append([]string(nil), company.PhotoKeys...)
	photosChanged := len(photos) > 0 || len(req.PhotosToDelete) > 0
	if photosChanged {
		keys := missingFrom(oldKeys, req.PhotosToDelete)
		if len(photos) > 0 {
			keys = append(keys, s.uploadPhotos(ctx, company.ID, photos)...)
		}
		company.SetPhotoKeys(keys)
	}

	company.SetAuditUpdate(userID)
	if err := s.companyRepo.Update(ctx, company); err != nil {
		return nil, err
	}
	s.dispatcher.Dispatch(ctx, company)

	if photosChanged {
		if removed := missingFrom(oldKeys, company.PhotoKeys); len(removed) > 0 {
			s.deletePhotos(ctx, company.ID, removed)
		}
		// the cached URL list may still reference the removed objects
		s.resolver.Evict(ctx, companyResourceType, company.ID)
	}
	s.refreshPhotoURLs(ctx, company)

	resp := dto.NewCompanyResponse(company)
	return &resp, nil
}

// PatchCompany merges provided fields over the current state, then
// re-validates each touched value object as a whole. A partial address change
// can therefore fail on a pre-existing field that a newly relevant rule
// rejects; this is intended.
func (s *companyServiceImpl) PatchCompany(ctx context.Context, userID, id uuid.UUID, req *dto.PatchCompanyRequest) (*dto.CompanyResponse, error) {
	company, err := s.companyRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, response.NewNotFoundError(fmt.Sprintf("Company with ID %s was not found", id))
	}

	phone, phoneProvided, err := patchPhone(req, company.PhoneNumber)
	if err != nil {
		return nil, err
	}
	address, addressProvided, err := patchAddress(req, company.Address)
	if err != nil {
		return nil, err
	}
	schedule, scheduleProvided, err := patchSchedule(req, company.Schedule)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if err := company.UpdateName(*req.Name); err != nil {
			return nil, response.NewValidationError(err.Error())
		}
	}
	if req.Slogan != nil {
		if err := company.UpdateSlogan(*req.Slogan); err != nil {
			return nil, response.NewValidationError(err.Error())
		}
	}
	if req.Description != nil {
		company.UpdateDescription(req.Description)
	}
	if req.Website != nil {
		company.UpdateWebsite(req.Website)
	}
	if phoneProvided {
		if err := company.UpdatePhoneNumber(phone); err != nil {
			return nil, response.NewValidationError(err.Error())
		}
	}
	if addressProvided {
		if err := company.UpdateAddress(address); err != nil {
			return nil, response.NewValidationError(err.Error())
		}
	}
	if scheduleProvided {
		if err := company.UpdateSchedule(schedule); err != nil {
			return nil, response.NewValidationError(err.Error())
		}
	}
	if req.WorksOnHolidays != nil {
		company.SetWorksOnHolidays(*req.WorksOnHolidays)
	}
	if req.FlexibleHours != nil {
		company.SetFlexibleHours(*req.FlexibleHours)
	}
	if req.TimeZone != nil {
		if err := company.UpdateTimeZone(domain.TimeZone(*req.TimeZone)); err != nil {
			return nil, response.NewValidationError(err.Error())
		}
	}
	if req.IsActive != nil {
		if *req.IsActive {
			company.Activate()
		} else {
			company.Deactivate()
		}
	}

	company.SetAuditUpdate(userID)
	if err := s.companyRepo.Update(ctx, company); err != nil {
		return nil, err
	}
	s.dispatcher.Dispatch(ctx, company)

	s.refreshPhotoURLs(ctx, company)

	resp := dto.NewCompanyResponse(company)
	return &resp, nil
}

// DeleteCompany removes a company. Only the creating user may delete it;
// stored photos are removed best-effort and the cache entry is evicted.
func (s *companyServiceImpl) DeleteCompany(ctx context.Context, userID, id uuid.UUID) error {
	company, err := s.companyRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if company == nil {
		return response.NewNotFoundError(fmt.Sprintf("Company with ID %s was not found", id))
	}
	if company.CreatedByID != userID {
		return response.NewForbiddenError("You do not have permission to delete this company")
	}

	if len(company.PhotoKeys) > 0 {
		s.deletePhotos(ctx, company.ID, company.PhotoKeys)
	}

	if err := s.companyRepo.Delete(ctx, company); err != nil {
		return err
	}
	s.resolver.Evict(ctx, companyResourceType, company.ID)
	s.dispatcher.Dispatch(ctx, company)

	s.logger.Info("company deleted", zap.String("company_id", id.String()))
	return nil
}

// refreshPhotoURLs re-resolves the URL list after a write, or evicts the
// cache entry when the final key list is empty
func (s *companyServiceImpl) refreshPhotoURLs(ctx context.Context, company *domain.Company) {
	if len(company.PhotoKeys) > 0 {
		company.PhotoURLs = s.resolver.Resolve(ctx, companyResourceType, company.ID, company.PhotoKeys)
		return
	}
	s.resolver.Evict(ctx, companyResourceType, company.ID)
	company.PhotoURLs = []string{}
}

// uploadPhotos stores all files concurrently, bounded to a few transfers in
// flight. A failed upload drops that photo and keeps the rest.
func (s *companyServiceImpl) uploadPhotos(ctx context.Context, companyID uuid.UUID, photos []PhotoUpload) []string {
	keys := make([]string, len(photos))
	sem := make(chan struct{}, maxConcurrentTransfers)
	var wg sync.WaitGroup

	for i, photo := range photos {
		wg.Add(1)
		go func(i int, photo PhotoUpload) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			key := s.storage.PhotoKey(companyID.String(), photo.FileName)
			err := s.storage.UploadObject(ctx, key, photo.Content, photo.ContentType)
			s.metrics.ObserveStorageOperation("upload", err)
			if err != nil {
				s.logger.Warn("failed to upload photo",
					zap.String("company_id", companyID.String()),
					zap.String("object_key", key),
					zap.Error(err))
				return
			}
			keys[i] = key
		}(i, photo)
	}
	wg.Wait()

	uploaded := make([]string, 0, len(keys))
	for _, k := range keys {
		if k != "" {
			uploaded = append(uploaded, k)
		}
	}
	return uploaded
}

// deletePhotos removes objects concurrently, best-effort
func (s *companyServiceImpl) deletePhotos(ctx context.Context, companyID uuid.UUID, keys []string) {
	sem := make(chan struct{}, maxConcurrentTransfers)
	var wg sync.WaitGroup

	for _, key := range keys {
		wg.Add(1)
		go func(key string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			err := s.storage.DeleteObject(ctx, key)
			s.metrics.ObserveStorageOperation("delete", err)
			if err != nil {
				s.logger.Warn("failed to delete photo",
					zap.String("company_id", companyID.String()),
					zap.String("object_key", key),
					zap.Error(err))
			}
		}(key)
	}
	wg.Wait()
}

// missingFrom returns the members of old not present in current
func missingFrom(old, current []string) []string {
	keep := make(map[string]bool, len(current))
	for _, k := range current {
		keep[k] = true
	}
	var gone []string
	for _, k := range old {
		if !keep[k] {
			gone = append(gone, k)
		}
	}
	return gone
}

// patchPhone merges the phone fields of a patch request over the current
// value. Phone number and country code must be provided together.
func patchPhone(req *dto.PatchCompanyRequest, current domain.PhoneNumber) (domain.PhoneNumber, bool, error) {
	hasPhone := req.PhoneNumber != nil
	hasCountry := req.CountryCode != nil
	if !hasPhone && !hasCountry {
		return current, false, nil
	}
	if hasPhone != hasCountry {
		return domain.PhoneNumber{}, false, response.NewValidationError("Phone number and country code must be provided together")
	}
	phone, err := buildPhoneNumber(*req.PhoneNumber, *req.CountryCode)
	if err != nil {
		return domain.PhoneNumber{}, false, err
	}
	return phone, true, nil
}

func patchAddress(req *dto.PatchCompanyRequest, current domain.Address) (domain.Address, bool, error) {
	if req.Country == nil && req.Department == nil && req.City == nil &&
		req.StreetType == nil && req.StreetNumber == nil && req.CrossStreetNumber == nil &&
		req.PropertyNumber == nil && req.ZipCode == nil {
		return current, false, nil
	}

	address, err := buildAddress(
		orCurrent(req.Country, current.Country),
		orCurrent(req.Department, current.Department),
		orCurrent(req.City, current.City),
		orCurrent(req.StreetType, current.StreetType),
		orCurrent(req.StreetNumber, current.StreetNumber),
		orCurrent(req.CrossStreetNumber, current.CrossStreetNumber),
		orCurrent(req.PropertyNumber, current.PropertyNumber),
		orCurrent(req.ZipCode, current.ZipCode),
	)
	if err != nil {
		return domain.Address{}, false, err
	}
	return address, true, nil
}

func patchSchedule(req *dto.PatchCompanyRequest, current domain.WorkSchedule) (domain.WorkSchedule, bool, error) {
	if req.WorkingDays == nil && req.OpeningHour == nil && req.ClosingHour == nil &&
		req.LunchStart == nil && req.LunchEnd == nil &&
		req.AllowAppointmentsDuringLunch == nil && req.AppointmentDurationMinutes == nil {
		return current, false, nil
	}

	days := req.WorkingDays
	if days == nil {
		days = weekdaysToInts(current.WorkingDays)
	}
	opening := current.OpeningHour.String()
	if req.OpeningHour != nil {
		opening = *req.OpeningHour
	}
	closing := current.ClosingHour.String()
	if req.ClosingHour != nil {
		closing = *req.ClosingHour
	}
	lunchStart := timeOfDayString(current.LunchStart)
	if req.LunchStart != nil {
		lunchStart = req.LunchStart
	}
	lunchEnd := timeOfDayString(current.LunchEnd)
	if req.LunchEnd != nil {
		lunchEnd = req.LunchEnd
	}
	allowLunch := current.AllowDuringLunch
	if req.AllowAppointmentsDuringLunch != nil {
		allowLunch = *req.AllowAppointmentsDuringLunch
	}
	duration := current.AppointmentDuration
	if req.AppointmentDurationMinutes != nil {
		duration = *req.AppointmentDurationMinutes
	}

	schedule, err := buildSchedule(scheduleInput{
		workingDays: days,
		openingHour: opening,
		closingHour: closing,
		lunchStart:  lunchStart,
		lunchEnd:    lunchEnd,
		allowLunch:  allowLunch,
		durationMin: duration,
	})
	if err != nil {
		return domain.WorkSchedule{}, false, err
	}
	return schedule, true, nil
}

func orCurrent(patch *string, current string) string {
	if patch != nil {
		return *patch
	}
	return current
}
