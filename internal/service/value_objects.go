package service

import (
	"time"

	"guild-hub-api/internal/domain"
	"guild-hub-api/internal/response"
)

// Value-object construction shared by the company create/update/patch paths.
// Validation short-circuits on the first failing group, phone before address
// before schedule, so a request with several bad groups reports only the
// first one.

func buildPhoneNumber(raw, countryCode string) (domain.PhoneNumber, error) {
	phone, err := domain.NewPhoneNumber(raw, countryCode)
	if err != nil {
		return domain.PhoneNumber{}, response.NewValidationError(err.Error())
	}
	return phone, nil
}

func buildAddress(country, department, city, streetType, streetNumber, crossStreetNumber, propertyNumber, zipCode string) (domain.Address, error) {
	address, err := domain.NewAddress(country, department, city, streetType, streetNumber, crossStreetNumber, propertyNumber, zipCode)
	if err != nil {
		return domain.Address{}, response.NewValidationError(err.Error())
	}
	return address, nil
}

// scheduleInput carries the raw schedule fields of a request. Hours are
// "HH:MM" strings; lunch bounds are optional.
type scheduleInput struct {
	workingDays []int
	openingHour string
	closingHour string
	lunchStart  *string
	lunchEnd    *string
	allowLunch  bool
	durationMin int
}

func buildSchedule(in scheduleInput) (domain.WorkSchedule, error) {
	opening, err := domain.ParseTimeOfDay(in.openingHour)
	if err != nil {
		return domain.WorkSchedule{}, response.NewValidationError(err.Error())
	}
	closing, err := domain.ParseTimeOfDay(in.closingHour)
	if err != nil {
		return domain.WorkSchedule{}, response.NewValidationError(err.Error())
	}

	var lunchStart, lunchEnd *domain.TimeOfDay
	if in.lunchStart != nil {
		t, err := domain.ParseTimeOfDay(*in.lunchStart)
		if err != nil {
			return domain.WorkSchedule{}, response.NewValidationError(err.Error())
		}
		lunchStart = &t
	}
	if in.lunchEnd != nil {
		t, err := domain.ParseTimeOfDay(*in.lunchEnd)
		if err != nil {
			return domain.WorkSchedule{}, response.NewValidationError(err.Error())
		}
		lunchEnd = &t
	}

	schedule, err := domain.NewWorkSchedule(
		toWeekdays(in.workingDays),
		opening, closing,
		lunchStart, lunchEnd,
		in.allowLunch,
		in.durationMin,
	)
	if err != nil {
		return domain.WorkSchedule{}, response.NewValidationError(err.Error())
	}
	return schedule, nil
}

func toWeekdays(days []int) []time.Weekday {
	out := make([]time.Weekday, 0, len(days))
	for _, d := range days {
		out = append(out, time.Weekday(d))
	}
	return out
}

func weekdaysToInts(days []time.Weekday) []int {
	out := make([]int, 0, len(days))
	for _, d := range days {
		out = append(out, int(d))
	}
	return out
}

func timeOfDayString(t *domain.TimeOfDay) *string {
	if t == nil {
		return nil
	}
	s := t.String()
	return &s
}
