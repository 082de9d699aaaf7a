package dto

import (
	"time"

	"github.com/google/uuid"

	"guild-hub-api/internal/domain"
)

// CreateCompanyRequest represents the multipart request to create a company
// @Description Multipart form for creating a company. Photo files are read
// @Description from the "companyPhotos" form files; all other fields are plain form values.
// @Description Hour fields use the "HH:MM" format; workingDays are weekday numbers (0=Sunday).
type CreateCompanyRequest struct {
	Name              string  `form:"name" binding:"required,min=2,max=200" example:"Guild Hub HQ"`
	Slogan            string  `form:"slogan" binding:"required,max=300" example:"Your raid, our roof"`
	Description       *string `form:"description" binding:"omitempty,max=2000"`
	PhoneNumber       string  `form:"phoneNumber" binding:"required" example:"3001112233"`
	CountryCode       string  `form:"countryCode" binding:"required" example:"+57"`
	Country           string  `form:"country" binding:"required" example:"Colombia"`
	Department        string  `form:"department" binding:"required" example:"Cundinamarca"`
	City              string  `form:"city" binding:"required" example:"Bogotá"`
	StreetType        string  `form:"streetType" binding:"required" example:"Carrera"`
	StreetNumber      string  `form:"streetNumber" binding:"required" example:"7"`
	CrossStreetNumber string  `form:"crossStreetNumber" example:"12"`
	PropertyNumber    string  `form:"propertyNumber" binding:"required" example:"34"`
	ZipCode           string  `form:"zipCode" example:"110111"`
	Website           *string `form:"website" binding:"omitempty,url"`

	WorkingDays                  []int   `form:"workingDays" binding:"required,min=1" example:"1,2,3,4,5"`
	OpeningHour                  string  `form:"openingHour" binding:"required" example:"08:00"`
	ClosingHour                  string  `form:"closingHour" binding:"required" example:"17:00"`
	LunchStart                   *string `form:"lunchStart" example:"12:00"`
	LunchEnd                     *string `form:"lunchEnd" example:"13:00"`
	AllowAppointmentsDuringLunch bool    `form:"allowAppointmentsDuringLunch"`
	AppointmentDurationMinutes   int     `form:"appointmentDurationMinutes" binding:"required,min=1" example:"30"`

	WorksOnHolidays bool `form:"worksOnHolidays"`
	FlexibleHours   bool `form:"flexibleHours"`
	TimeZone        int  `form:"timeZone" example:"1"`
}

// UpdateCompanyRequest represents the full-replacement update of a company.
// Attached photo files are added to the stored set; keys listed in
// photosToDelete are removed from it and their objects deleted from storage.
type UpdateCompanyRequest struct {
	Name              string   `form:"name" binding:"required,min=2,max=200"`
	Slogan            string   `form:"slogan" binding:"required,max=300"`
	Description       *string  `form:"description" binding:"omitempty,max=2000"`
	PhotosToDelete    []string `form:"photosToDelete"`
	PhoneNumber       string   `form:"phoneNumber" binding:"required"`
	CountryCode       string   `form:"countryCode" binding:"required"`
	Country           string   `form:"country" binding:"required"`
	Department        string   `form:"department" binding:"required"`
	City              string   `form:"city" binding:"required"`
	StreetType        string   `form:"streetType" binding:"required"`
	StreetNumber      string   `form:"streetNumber" binding:"required"`
	CrossStreetNumber string   `form:"crossStreetNumber"`
	PropertyNumber    string   `form:"propertyNumber" binding:"required"`
	ZipCode           string   `form:"zipCode"`
	Website           *string  `form:"website" binding:"omitempty,url"`

	WorkingDays                  []int   `form:"workingDays" binding:"required,min=1"`
	OpeningHour                  string  `form:"openingHour" binding:"required"`
	ClosingHour                  string  `form:"closingHour" binding:"required"`
	LunchStart                   *string `form:"lunchStart"`
	LunchEnd                     *string `form:"lunchEnd"`
	AllowAppointmentsDuringLunch bool    `form:"allowAppointmentsDuringLunch"`
	AppointmentDurationMinutes   int     `form:"appointmentDurationMinutes" binding:"required,min=1"`

	WorksOnHolidays bool `form:"worksOnHolidays"`
	FlexibleHours   bool `form:"flexibleHours"`
	TimeZone        int  `form:"timeZone"`
	IsActive        bool `form:"isActive"`
}

// PatchCompanyRequest represents a partial update. Only provided fields are
// merged over the current state; the merged value objects are then fully
// re-validated.
type PatchCompanyRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=2,max=200"`
	Slogan      *string `json:"slogan" binding:"omitempty,max=300"`
	Description *string `json:"description" binding:"omitempty,max=2000"`

	PhoneNumber *string `json:"phoneNumber"`
	CountryCode *string `json:"countryCode"`

	Country           *string `json:"country"`
	Department        *string `json:"department"`
	City              *string `json:"city"`
	StreetType        *string `json:"streetType"`
	StreetNumber      *string `json:"streetNumber"`
	CrossStreetNumber *string `json:"crossStreetNumber"`
	PropertyNumber    *string `json:"propertyNumber"`
	ZipCode           *string `json:"zipCode"`

	Website *string `json:"website" binding:"omitempty,url"`

	WorkingDays                  []int   `json:"workingDays" binding:"omitempty,min=1"`
	OpeningHour                  *string `json:"openingHour"`
	ClosingHour                  *string `json:"closingHour"`
	LunchStart                   *string `json:"lunchStart"`
	LunchEnd                     *string `json:"lunchEnd"`
	AllowAppointmentsDuringLunch *bool   `json:"allowAppointmentsDuringLunch"`
	AppointmentDurationMinutes   *int    `json:"appointmentDurationMinutes" binding:"omitempty,min=1"`

	WorksOnHolidays *bool `json:"worksOnHolidays"`
	FlexibleHours   *bool `json:"flexibleHours"`
	TimeZone        *int  `json:"timeZone"`
	IsActive        *bool `json:"isActive"`
}

// CompanyResponse represents the company response
// @Description Company with resolved photo URLs. photoUrls are time-limited
// @Description signed links and may contain fewer entries than stored photos
// @Description when individual resolutions fail.
type CompanyResponse struct {
	ID              uuid.UUID           `json:"id" example:"539167fb-b599-41ba-9ead-344a6d0b3a2f"`
	Name            string              `json:"name" example:"Guild Hub HQ"`
	Slogan          string              `json:"slogan" example:"Your raid, our roof"`
	Description     *string             `json:"description,omitempty"`
	PhotoKeys       []string            `json:"photoKeys"`
	PhotoURLs       []string            `json:"photoUrls"`
	Address         domain.Address      `json:"address"`
	PhoneNumber     string              `json:"phoneNumber" example:"+573001112233"`
	Website         *string             `json:"website,omitempty"`
	Schedule        domain.WorkSchedule `json:"schedule"`
	WorksOnHolidays bool                `json:"worksOnHolidays"`
	FlexibleHours   bool                `json:"flexibleHours"`
	TimeZone        string              `json:"timeZone" example:"America/Bogota"`
	IsActive        bool                `json:"isActive"`
	CreatedAt       time.Time           `json:"createdAt"`
	CreatedByID     uuid.UUID           `json:"createdById"`
	UpdatedAt       *time.Time          `json:"updatedAt,omitempty"`
}

// NewCompanyResponse maps a company aggregate to its response shape
func NewCompanyResponse(c *domain.Company) CompanyResponse {
	photoURLs := c.PhotoURLs
	if photoURLs == nil {
		photoURLs = []string{}
	}
	photoKeys := c.PhotoKeys
	if photoKeys == nil {
		photoKeys = []string{}
	}
	return CompanyResponse{
		ID:              c.ID,
		Name:            c.Name,
		Slogan:          c.Slogan,
		Description:     c.Description,
		PhotoKeys:       photoKeys,
		PhotoURLs:       photoURLs,
		Address:         c.Address,
		PhoneNumber:     c.PhoneNumber.E164,
		Website:         c.Website,
		Schedule:        c.Schedule,
		WorksOnHolidays: c.WorksOnHolidays,
		FlexibleHours:   c.FlexibleHours,
		TimeZone:        c.TimeZone.String(),
		IsActive:        c.IsActive,
		CreatedAt:       c.CreatedAt,
		CreatedByID:     c.CreatedByID,
		UpdatedAt:       c.UpdatedAt,
	}
}

// NewCompanyResponseList maps a page of companies
func NewCompanyResponseList(companies []*domain.Company) []CompanyResponse {
	out := make([]CompanyResponse, 0, len(companies))
	for _, c := range companies {
		out = append(out, NewCompanyResponse(c))
	}
	return out
}
