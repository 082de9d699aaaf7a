package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func timeOfDayPtr(t TimeOfDay) *TimeOfDay {
	return &t
}

func mustSchedule(t *testing.T) WorkSchedule {
	t.Helper()
	schedule, err := NewWorkSchedule(
		[]time.Weekday{time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday},
		TimeOfDay(9*60), TimeOfDay(18*60),
		timeOfDayPtr(TimeOfDay(12*60)), timeOfDayPtr(TimeOfDay(13*60)),
		false,
		30,
	)
	require.NoError(t, err)
	return schedule
}

func TestNewWorkSchedule_Valid(t *testing.T) {
	schedule := mustSchedule(t)
	assert.Len(t, schedule.WorkingDays, 5)
	assert.False(t, schedule.IsZero())
}

func TestNewWorkSchedule_DeduplicatesDays(t *testing.T) {
	schedule, err := NewWorkSchedule(
		[]time.Weekday{time.Monday, time.Monday, time.Friday, time.Monday},
		TimeOfDay(9*60), TimeOfDay(17*60),
		nil, nil, false, 60,
	)
	require.NoError(t, err)
	assert.Equal(t, []time.Weekday{time.Monday, time.Friday}, []time.Weekday(schedule.WorkingDays))
}

func TestNewWorkSchedule_Invalid(t *testing.T) {
	open := TimeOfDay(9 * 60)
	closing := TimeOfDay(18 * 60)
	days := []time.Weekday{time.Monday}

	tests := []struct {
		name    string
		build   func() (WorkSchedule, error)
		wantErr error
	}{
		{
			"no working days",
			func() (WorkSchedule, error) {
				return NewWorkSchedule(nil, open, closing, nil, nil, false, 30)
			},
			ErrNoWorkingDays,
		},
		{
			"opening after closing",
			func() (WorkSchedule, error) {
				return NewWorkSchedule(days, closing, open, nil, nil, false, 30)
			},
			ErrOpeningAfterClosing,
		},
		{
			"opening equals closing",
			func() (WorkSchedule, error) {
				return NewWorkSchedule(days, open, open, nil, nil, false, 30)
			},
			ErrOpeningAfterClosing,
		},
		{
			"zero duration",
			func() (WorkSchedule, error) {
				return NewWorkSchedule(days, open, closing, nil, nil, false, 0)
			},
			ErrInvalidDuration,
		},
		{
			"lunch start after lunch end",
			func() (WorkSchedule, error) {
				return NewWorkSchedule(days, open, closing,
					timeOfDayPtr(TimeOfDay(14*60)), timeOfDayPtr(TimeOfDay(13*60)), false, 30)
			},
			ErrInvalidLunchWindow,
		},
		{
			"lunch before opening",
			func() (WorkSchedule, error) {
				return NewWorkSchedule(days, open, closing,
					timeOfDayPtr(TimeOfDay(8*60)), timeOfDayPtr(TimeOfDay(13*60)), false, 30)
			},
			ErrLunchOutsideWorkHours,
		},
		{
			"lunch after closing",
			func() (WorkSchedule, error) {
				return NewWorkSchedule(days, open, closing,
					timeOfDayPtr(TimeOfDay(17*60)), timeOfDayPtr(TimeOfDay(19*60)), false, 30)
			},
			ErrLunchOutsideWorkHours,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.build()
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestWorkSchedule_EffectiveMinutes(t *testing.T) {
	schedule := mustSchedule(t)
	// 9h window minus 1h lunch
	assert.Equal(t, 480, schedule.EffectiveMinutes())

	schedule.AllowDuringLunch = true
	assert.Equal(t, 540, schedule.EffectiveMinutes())

	noLunch, err := NewWorkSchedule(
		[]time.Weekday{time.Saturday},
		TimeOfDay(10*60), TimeOfDay(14*60),
		nil, nil, false, 30,
	)
	require.NoError(t, err)
	assert.Equal(t, 240, noLunch.EffectiveMinutes())
}

func TestWorkSchedule_MaxAppointmentsPerDay(t *testing.T) {
	schedule := mustSchedule(t)
	assert.Equal(t, 16, schedule.MaxAppointmentsPerDay())

	schedule.AppointmentDuration = 45
	assert.Equal(t, 10, schedule.MaxAppointmentsPerDay())
}

func TestWorkSchedule_IsWithinWorkingHours(t *testing.T) {
	schedule := mustSchedule(t)

	assert.True(t, schedule.IsWithinWorkingHours(time.Monday, TimeOfDay(10*60)))
	assert.False(t, schedule.IsWithinWorkingHours(time.Sunday, TimeOfDay(10*60)))
	assert.False(t, schedule.IsWithinWorkingHours(time.Monday, TimeOfDay(8*60)))
	assert.False(t, schedule.IsWithinWorkingHours(time.Monday, TimeOfDay(19*60)))

	// lunch blocks [start, end): the end minute itself is bookable
	assert.False(t, schedule.IsWithinWorkingHours(time.Monday, TimeOfDay(12*60)))
	assert.False(t, schedule.IsWithinWorkingHours(time.Monday, TimeOfDay(12*60+30)))
	assert.True(t, schedule.IsWithinWorkingHours(time.Monday, TimeOfDay(13*60)))

	schedule.AllowDuringLunch = true
	assert.True(t, schedule.IsWithinWorkingHours(time.Monday, TimeOfDay(12*60+30)))
}

func TestWorkSchedule_IsZero(t *testing.T) {
	assert.True(t, WorkSchedule{}.IsZero())
}
