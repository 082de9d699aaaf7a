package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Validation errors for the Address value object
var (
	ErrAddressFieldRequired = errors.New("address field is required")
	ErrInvalidStreetType    = errors.New("invalid street type")
)

// colombianStreetTypes is the fixed set of street types accepted when the
// address country is Colombia. Matching is case-insensitive.
var colombianStreetTypes = map[string]struct{}{
	"carrera":  {},
	"calle":    {},
	"diagonal": {},
	"avenida":  {},
}

// Address is an immutable, validated postal address.
// Construct with NewAddress; the zero value is only meant for database
// hydration.
type Address struct {
	Country           string `gorm:"type:varchar(100)" json:"country"`
	Department        string `gorm:"type:varchar(100)" json:"department"`
	City              string `gorm:"type:varchar(100)" json:"city"`
	StreetType        string `gorm:"type:varchar(50)" json:"streetType"`
	StreetNumber      string `gorm:"type:varchar(20)" json:"streetNumber"`
	CrossStreetNumber string `gorm:"type:varchar(20)" json:"crossStreetNumber,omitempty"`
	PropertyNumber    string `gorm:"type:varchar(20)" json:"propertyNumber"`
	ZipCode           string `gorm:"type:varchar(20)" json:"zipCode,omitempty"`
}

// NewAddress validates and normalizes a postal address. Required fields must
// be non-blank; optional fields (crossStreetNumber, zipCode) normalize blank
// to empty. When the country is Colombia, the street type must belong to the
// fixed set of Colombian street types.
func NewAddress(country, department, city, streetType, streetNumber, crossStreetNumber, propertyNumber, zipCode string) (Address, error) {
	required := []struct {
		name  string
		value string
	}{
		{"country", country},
		{"department", department},
		{"city", city},
		{"streetType", streetType},
		{"streetNumber", streetNumber},
		{"propertyNumber", propertyNumber},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			return Address{}, fmt.Errorf("%w: %s", ErrAddressFieldRequired, f.name)
		}
	}

	if strings.EqualFold(strings.TrimSpace(country), "Colombia") {
		if _, ok := colombianStreetTypes[strings.ToLower(strings.TrimSpace(streetType))]; !ok {
			return Address{}, fmt.Errorf("%w: %q is not valid for Colombia", ErrInvalidStreetType, streetType)
		}
	}

	return Address{
		Country:           strings.TrimSpace(country),
		Department:        strings.TrimSpace(department),
		City:              strings.TrimSpace(city),
		StreetType:        strings.TrimSpace(streetType),
		StreetNumber:      strings.TrimSpace(streetNumber),
		CrossStreetNumber: strings.TrimSpace(crossStreetNumber),
		PropertyNumber:    strings.TrimSpace(propertyNumber),
		ZipCode:           strings.TrimSpace(zipCode),
	}, nil
}

// String renders the address in the conventional postal form, e.g.
// "Carrera 7 #12-34, Bogotá, Cundinamarca, Colombia, 110111"
func (a Address) String() string {
	cross := ""
	if a.CrossStreetNumber != "" {
		cross = a.CrossStreetNumber + "-"
	}
	zip := ""
	if a.ZipCode != "" {
		zip = ", " + a.ZipCode
	}
	return fmt.Sprintf("%s %s #%s%s, %s, %s, %s%s",
		a.StreetType, a.StreetNumber, cross, a.PropertyNumber, a.City, a.Department, a.Country, zip)
}

// IsZero reports whether the value object has not been initialized
func (a Address) IsZero() bool {
	return a.Country == ""
}
