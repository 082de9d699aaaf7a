package domain

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// Validation errors for the PhoneNumber value object
var (
	ErrPhoneRequired       = errors.New("phone number is required")
	ErrCountryCodeRequired = errors.New("country code is required")
	ErrUnsupportedCountry  = errors.New("unsupported country code")
	ErrInvalidPhoneFormat  = errors.New("invalid phone format")
)

// phonePatterns maps a country calling code to the pattern its national
// significant number must fully match. Length checks are folded into the
// patterns, so no separate length validation is needed.
var phonePatterns = map[string]*regexp.Regexp{
	"+57":  regexp.MustCompile(`^3\d{9}$`),           // CO: mobiles start with 3, 10 digits
	"+1":   regexp.MustCompile(`^[2-9]\d{9}$`),       // US/CA (NANP), 10 digits
	"+44":  regexp.MustCompile(`^7\d{9}$`),           // UK mobile
	"+49":  regexp.MustCompile(`^1[5-7]\d{8,9}$`),    // DE mobile
	"+34":  regexp.MustCompile(`^6\d{8}$`),           // ES mobile
	"+33":  regexp.MustCompile(`^(6|7)\d{8}$`),       // FR mobile
	"+55":  regexp.MustCompile(`^(?:\d{2})?9\d{8}$`), // BR mobile, with or without DDD
	"+52":  regexp.MustCompile(`^1?\d{10}$`),         // MX mobile, with or without 1
	"+91":  regexp.MustCompile(`^[789]\d{9}$`),       // IN
	"+61":  regexp.MustCompile(`^4\d{8}$`),           // AU
	"+81":  regexp.MustCompile(`^[789]\d{9}$`),       // JP
	"+7":   regexp.MustCompile(`^9\d{9}$`),           // RU
	"+39":  regexp.MustCompile(`^\d{9,10}$`),         // IT
	"+86":  regexp.MustCompile(`^1[3-9]\d{9}$`),      // CN
	"+82":  regexp.MustCompile(`^1[016789]\d{7,8}$`), // KR
	"+62":  regexp.MustCompile(`^8\d{9,10}$`),        // ID
	"+27":  regexp.MustCompile(`^7[1-9]\d{7}$`),      // ZA
	"+351": regexp.MustCompile(`^9[1236]\d{7}$`),     // PT
	"+31":  regexp.MustCompile(`^6\d{8}$`),           // NL
	"+63":  regexp.MustCompile(`^9\d{9}$`),           // PH
}

// PhoneNumber is an immutable, validated phone number normalized to E.164.
// Construct with NewPhoneNumber or PhoneNumberFromE164; the zero value is
// only meant for database hydration.
type PhoneNumber struct {
	E164           string `gorm:"column:e164;type:varchar(20)" json:"e164"`
	CountryCode    string `gorm:"type:varchar(5)" json:"countryCode"`
	NationalNumber string `gorm:"type:varchar(15)" json:"nationalNumber"`
}

// NewPhoneNumber validates rawValue against the pattern registered for
// countryCode and returns the canonical E.164 form. All non-digit characters
// in rawValue are stripped; countryCode is normalized to a leading "+".
func NewPhoneNumber(rawValue, countryCode string) (PhoneNumber, error) {
	if strings.TrimSpace(rawValue) == "" {
		return PhoneNumber{}, ErrPhoneRequired
	}
	if strings.TrimSpace(countryCode) == "" {
		return PhoneNumber{}, ErrCountryCodeRequired
	}

	cc := normalizeCountryCode(countryCode)
	national := digitsOnly(rawValue)

	pattern, ok := phonePatterns[cc]
	if !ok {
		return PhoneNumber{}, fmt.Errorf("%w: %q", ErrUnsupportedCountry, countryCode)
	}
	if !pattern.MatchString(national) {
		return PhoneNumber{}, fmt.Errorf("%w for country %s", ErrInvalidPhoneFormat, cc)
	}

	return PhoneNumber{
		E164:           cc + national,
		CountryCode:    cc,
		NationalNumber: national,
	}, nil
}

// TryNewPhoneNumber is the non-error-typed variant: it reports success and,
// on failure, a human-readable message.
func TryNewPhoneNumber(rawValue, countryCode string) (PhoneNumber, bool, string) {
	phone, err := NewPhoneNumber(rawValue, countryCode)
	if err != nil {
		return PhoneNumber{}, false, err.Error()
	}
	return phone, true, ""
}

// PhoneNumberFromE164 parses a canonical E.164 string by trying country-code
// prefixes of one to three digits against the known pattern table.
func PhoneNumberFromE164(e164 string) (PhoneNumber, error) {
	if strings.TrimSpace(e164) == "" {
		return PhoneNumber{}, ErrPhoneRequired
	}
	if e164[0] != '+' {
		return PhoneNumber{}, fmt.Errorf("%w: E.164 must start with '+'", ErrInvalidPhoneFormat)
	}

	for ccLen := 1; ccLen <= 3; ccLen++ {
		if len(e164) <= 1+ccLen {
			break
		}
		cc := e164[:1+ccLen]
		national := digitsOnly(e164[1+ccLen:])

		if pattern, ok := phonePatterns[cc]; ok && pattern.MatchString(national) {
			return PhoneNumber{
				E164:           cc + national,
				CountryCode:    cc,
				NationalNumber: national,
			}, nil
		}
	}

	return PhoneNumber{}, fmt.Errorf("%w: unsupported or invalid E.164 number %q", ErrInvalidPhoneFormat, e164)
}

func (p PhoneNumber) String() string {
	return p.E164
}

// IsZero reports whether the value object has not been initialized
func (p PhoneNumber) IsZero() bool {
	return p.E164 == ""
}

func digitsOnly(input string) string {
	var b strings.Builder
	b.Grow(len(input))
	for _, r := range input {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func normalizeCountryCode(input string) string {
	trimmed := strings.TrimSpace(input)
	if strings.HasPrefix(trimmed, "+") {
		return trimmed
	}
	return "+" + digitsOnly(trimmed)
}
