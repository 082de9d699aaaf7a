package domain

import (
	"errors"
	"strings"

	"github.com/google/uuid"
)

// Validation errors for the Company aggregate
var (
	ErrCompanyNameRequired   = errors.New("company name cannot be empty")
	ErrCompanySloganRequired = errors.New("company slogan cannot be empty")
	ErrCompanyAddressZero    = errors.New("company address is required")
	ErrCompanyPhoneZero      = errors.New("company phone number is required")
	ErrCompanyScheduleZero   = errors.New("company work schedule is required")
	ErrInvalidTimeZone       = errors.New("invalid time zone")
)

// Company is the root aggregate for a business profile. PhotoKeys holds the
// opaque object-storage keys of the company's photos; PhotoURLs carries the
// resolved signed URLs and is never persisted.
type Company struct {
	BaseModel
	EventRecorder `gorm:"-" json:"-"`

	Name        string   `gorm:"type:varchar(200);not null" json:"name"`
	Slogan      string   `gorm:"type:varchar(300);not null" json:"slogan"`
	Description *string  `gorm:"type:text" json:"description,omitempty"`
	PhotoKeys   []string `gorm:"serializer:json;type:text" json:"photoKeys"`
	PhotoURLs   []string `gorm:"-" json:"photoUrls,omitempty"`

	Address     Address      `gorm:"embedded;embeddedPrefix:address_" json:"address"`
	PhoneNumber PhoneNumber  `gorm:"embedded;embeddedPrefix:phone_" json:"phoneNumber"`
	Website     *string      `gorm:"type:varchar(300)" json:"website,omitempty"`
	Schedule    WorkSchedule `gorm:"embedded;embeddedPrefix:schedule_" json:"schedule"`

	WorksOnHolidays bool     `gorm:"not null" json:"worksOnHolidays"`
	FlexibleHours   bool     `gorm:"not null" json:"flexibleHours"`
	TimeZone        TimeZone `gorm:"not null;default:0" json:"timeZone"`
	IsActive        bool     `gorm:"not null;default:true" json:"isActive"`
}

func (Company) TableName() string {
	return "companies"
}

// NewCompany builds a validated company. The embedded value objects must
// already be constructed through their own factories; this only checks the
// aggregate-level invariants. Pass uuid.Nil as id to generate one.
func NewCompany(
	createdBy uuid.UUID,
	name, slogan string,
	description *string,
	photoKeys []string,
	address Address,
	phone PhoneNumber,
	website *string,
	schedule WorkSchedule,
	worksOnHolidays, flexibleHours bool,
	timeZone TimeZone,
	id uuid.UUID,
) (*Company, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrCompanyNameRequired
	}
	if strings.TrimSpace(slogan) == "" {
		return nil, ErrCompanySloganRequired
	}
	if address.IsZero() {
		return nil, ErrCompanyAddressZero
	}
	if phone.IsZero() {
		return nil, ErrCompanyPhoneZero
	}
	if schedule.IsZero() {
		return nil, ErrCompanyScheduleZero
	}
	if !timeZone.IsValid() {
		return nil, ErrInvalidTimeZone
	}

	c := &Company{
		BaseModel:       newBaseModel(createdBy, id),
		Name:            strings.TrimSpace(name),
		Slogan:          strings.TrimSpace(slogan),
		Description:     description,
		PhotoKeys:       dedupNonBlank(photoKeys),
		Address:         address,
		PhoneNumber:     phone,
		Website:         website,
		Schedule:        schedule,
		WorksOnHolidays: worksOnHolidays,
		FlexibleHours:   flexibleHours,
		TimeZone:        timeZone,
		IsActive:        true,
	}
	c.Record(CompanyCreatedEvent{CompanyID: c.ID})
	return c, nil
}

func (c *Company) UpdateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrCompanyNameRequired
	}
	c.Name = strings.TrimSpace(name)
	return nil
}

func (c *Company) UpdateSlogan(slogan string) error {
	if strings.TrimSpace(slogan) == "" {
		return ErrCompanySloganRequired
	}
	c.Slogan = strings.TrimSpace(slogan)
	return nil
}

func (c *Company) UpdateDescription(description *string) {
	c.Description = description
}

func (c *Company) UpdateWebsite(website *string) {
	c.Website = website
}

func (c *Company) UpdateAddress(address Address) error {
	if address.IsZero() {
		return ErrCompanyAddressZero
	}
	c.Address = address
	return nil
}

func (c *Company) UpdatePhoneNumber(phone PhoneNumber) error {
	if phone.IsZero() {
		return ErrCompanyPhoneZero
	}
	c.PhoneNumber = phone
	return nil
}

func (c *Company) UpdateSchedule(schedule WorkSchedule) error {
	if schedule.IsZero() {
		return ErrCompanyScheduleZero
	}
	c.Schedule = schedule
	return nil
}

func (c *Company) UpdateTimeZone(timeZone TimeZone) error {
	if !timeZone.IsValid() {
		return ErrInvalidTimeZone
	}
	c.TimeZone = timeZone
	return nil
}

func (c *Company) SetWorksOnHolidays(v bool) { c.WorksOnHolidays = v }
func (c *Company) SetFlexibleHours(v bool)   { c.FlexibleHours = v }
func (c *Company) Activate()                 { c.IsActive = true }
func (c *Company) Deactivate()               { c.IsActive = false }

// SetPhotoKeys replaces the stored photo key list, dropping blanks and
// duplicates, and records a photos-changed event.
func (c *Company) SetPhotoKeys(keys []string) {
	c.PhotoKeys = dedupNonBlank(keys)
	c.Record(CompanyPhotosChangedEvent{CompanyID: c.ID})
}

func dedupNonBlank(values []string) []string {
	seen := make(map[string]bool, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}
