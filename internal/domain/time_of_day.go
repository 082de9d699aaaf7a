package domain

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrInvalidTimeOfDay is returned for strings that do not parse as "HH:MM"
var ErrInvalidTimeOfDay = errors.New("invalid time of day, expected HH:MM")

// TimeOfDay is a wall-clock time expressed as minutes since midnight.
// It is stored as an integer column and rendered as "HH:MM" in JSON.
type TimeOfDay int

// ParseTimeOfDay parses a "HH:MM" string into a TimeOfDay
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	var hour, minute int
	if _, err := fmt.Sscanf(s, "%d:%d", &hour, &minute); err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeOfDay, s)
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeOfDay, s)
	}
	return TimeOfDay(hour*60 + minute), nil
}

// Minutes returns the value as minutes since midnight
func (t TimeOfDay) Minutes() int {
	return int(t)
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", int(t)/60, int(t)%60)
}

// MarshalJSON renders the time as a "HH:MM" string
func (t TimeOfDay) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

// UnmarshalJSON parses either a "HH:MM" string or a raw minute count,
// the latter for rows serialized before the string representation.
func (t *TimeOfDay) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		parsed, perr := ParseTimeOfDay(s)
		if perr != nil {
			return perr
		}
		*t = parsed
		return nil
	}
	var minutes int
	if err := json.Unmarshal(data, &minutes); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidTimeOfDay, string(data))
	}
	*t = TimeOfDay(minutes)
	return nil
}
