package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"guild-hub-api/internal/domain"
	"guild-hub-api/internal/response"
)

func TestBuildPhoneNumber(t *testing.T) {
	phone, err := buildPhoneNumber("3001112233", "+57")
	require.NoError(t, err)
	assert.Equal(t, "+573001112233", phone.E164)

	_, err = buildPhoneNumber("123", "+57")
	require.Error(t, err)
	assert.Equal(t, response.ErrCodeValidation, appErrorCode(t, err))
}

func TestBuildAddress(t *testing.T) {
	address, err := buildAddress("Colombia", "Cundinamarca", "Bogotá", "Carrera", "7", "", "34", "")
	require.NoError(t, err)
	assert.Equal(t, "Bogotá", address.City)

	_, err = buildAddress("Colombia", "Cundinamarca", "Bogotá", "Boulevard", "7", "", "34", "")
	require.Error(t, err)
	assert.Equal(t, response.ErrCodeValidation, appErrorCode(t, err))
}

func TestBuildSchedule(t *testing.T) {
	lunchStart := "12:00"
	lunchEnd := "13:00"
	schedule, err := buildSchedule(scheduleInput{
		workingDays: []int{1, 2, 3},
		openingHour: "08:30",
		closingHour: "17:00",
		lunchStart:  &lunchStart,
		lunchEnd:    &lunchEnd,
		durationMin: 30,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.TimeOfDay(8*60+30), schedule.OpeningHour)
	require.NotNil(t, schedule.LunchStart)
	assert.Equal(t, domain.TimeOfDay(12*60), *schedule.LunchStart)
	assert.Len(t, schedule.WorkingDays, 3)
}

func TestBuildScheduleRejectsBadInput(t *testing.T) {
	_, err := buildSchedule(scheduleInput{
		workingDays: []int{1},
		openingHour: "late",
		closingHour: "17:00",
		durationMin: 30,
	})
	require.Error(t, err)
	assert.Equal(t, response.ErrCodeValidation, appErrorCode(t, err))

	badLunch := "25:00"
	_, err = buildSchedule(scheduleInput{
		workingDays: []int{1},
		openingHour: "08:00",
		closingHour: "17:00",
		lunchStart:  &badLunch,
		durationMin: 30,
	})
	require.Error(t, err)
	assert.Equal(t, response.ErrCodeValidation, appErrorCode(t, err))

	// domain rules surface as validation errors too
	_, err = buildSchedule(scheduleInput{
		workingDays: []int{1},
		openingHour: "17:00",
		closingHour: "08:00",
		durationMin: 30,
	})
	require.Error(t, err)
	assert.Equal(t, response.ErrCodeValidation, appErrorCode(t, err))
}
