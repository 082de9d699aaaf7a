package domain

import (
	"errors"
	"time"
)

// Validation errors for the WorkSchedule value object
var (
	ErrNoWorkingDays         = errors.New("at least one working day must be specified")
	ErrOpeningAfterClosing   = errors.New("opening hour must be before closing hour")
	ErrInvalidLunchWindow    = errors.New("lunch start must be before lunch end")
	ErrLunchOutsideWorkHours = errors.New("lunch window must be within working hours")
	ErrInvalidDuration       = errors.New("appointment duration must be greater than zero")
)

// WorkSchedule is an immutable weekly schedule with an optional lunch break.
// Construct with NewWorkSchedule; the zero value is only meant for database
// hydration.
type WorkSchedule struct {
	WorkingDays         []time.Weekday `gorm:"serializer:json;type:text" json:"workingDays"`
	OpeningHour         TimeOfDay      `gorm:"not null" json:"openingHour"`
	ClosingHour         TimeOfDay      `gorm:"not null" json:"closingHour"`
	LunchStart          *TimeOfDay     `json:"lunchStart,omitempty"`
	LunchEnd            *TimeOfDay     `json:"lunchEnd,omitempty"`
	AllowDuringLunch    bool           `json:"allowAppointmentsDuringLunch"`
	AppointmentDuration int            `gorm:"not null" json:"appointmentDurationMinutes"`
}

// NewWorkSchedule validates and builds a weekly schedule. Working days are
// deduplicated and must be non-empty; opening must precede closing; lunch
// bounds, when both present, must be ordered and fall within the working
// window; the appointment duration must be positive.
func NewWorkSchedule(
	workingDays []time.Weekday,
	openingHour, closingHour TimeOfDay,
	lunchStart, lunchEnd *TimeOfDay,
	allowDuringLunch bool,
	appointmentDurationMinutes int,
) (WorkSchedule, error) {
	days := dedupWeekdays(workingDays)
	if len(days) == 0 {
		return WorkSchedule{}, ErrNoWorkingDays
	}
	if openingHour >= closingHour {
		return WorkSchedule{}, ErrOpeningAfterClosing
	}
	if appointmentDurationMinutes <= 0 {
		return WorkSchedule{}, ErrInvalidDuration
	}
	if lunchStart != nil && lunchEnd != nil {
		if *lunchStart >= *lunchEnd {
			return WorkSchedule{}, ErrInvalidLunchWindow
		}
		if *lunchStart < openingHour || *lunchStart > closingHour {
			return WorkSchedule{}, ErrLunchOutsideWorkHours
		}
		if *lunchEnd < openingHour || *lunchEnd > closingHour {
			return WorkSchedule{}, ErrLunchOutsideWorkHours
		}
	}

	return WorkSchedule{
		WorkingDays:         days,
		OpeningHour:         openingHour,
		ClosingHour:         closingHour,
		LunchStart:          lunchStart,
		LunchEnd:            lunchEnd,
		AllowDuringLunch:    allowDuringLunch,
		AppointmentDuration: appointmentDurationMinutes,
	}, nil
}

// EffectiveMinutes is the total time available for appointments per working
// day: the working window minus the lunch window when appointments are not
// allowed during lunch, clamped to zero.
func (s WorkSchedule) EffectiveMinutes() int {
	total := s.ClosingHour.Minutes() - s.OpeningHour.Minutes()
	if !s.AllowDuringLunch && s.LunchStart != nil && s.LunchEnd != nil {
		total -= s.LunchEnd.Minutes() - s.LunchStart.Minutes()
	}
	if total < 0 {
		return 0
	}
	return total
}

// MaxAppointmentsPerDay is the number of appointments that fit into the
// effective working minutes of a single day.
func (s WorkSchedule) MaxAppointmentsPerDay() int {
	return s.EffectiveMinutes() / s.AppointmentDuration
}

// IsWithinWorkingHours reports whether the given day and time fall inside the
// schedule, excluding the lunch window [lunchStart, lunchEnd) when
// appointments during lunch are not allowed.
func (s WorkSchedule) IsWithinWorkingHours(day time.Weekday, t TimeOfDay) bool {
	if !s.worksOn(day) {
		return false
	}
	if t < s.OpeningHour || t > s.ClosingHour {
		return false
	}
	if !s.AllowDuringLunch && s.LunchStart != nil && s.LunchEnd != nil {
		if t >= *s.LunchStart && t < *s.LunchEnd {
			return false
		}
	}
	return true
}

// IsZero reports whether the value object has not been initialized
func (s WorkSchedule) IsZero() bool {
	return len(s.WorkingDays) == 0
}

func (s WorkSchedule) worksOn(day time.Weekday) bool {
	for _, d := range s.WorkingDays {
		if d == day {
			return true
		}
	}
	return false
}

func dedupWeekdays(days []time.Weekday) []time.Weekday {
	seen := make(map[time.Weekday]bool, len(days))
	out := make([]time.Weekday, 0, len(days))
	for _, d := range days {
		if !seen[d] {
			seen[d] = true
			out = append(out, d)
		}
	}
	return out
}
