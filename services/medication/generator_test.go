package medication

import (
	"sort"
	"testing"
	"time"

	"medivault/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func activeMed(times []string, start time.Time, end *time.Time) models.Medication {
	return models.Medication{
		ID:        "med-1",
		UserID:    "user-1",
		Name:      "Metformin",
		Times:     times,
		StartDate: start,
		EndDate:   end,
		Status:    models.MedicationStatusActive,
	}
}

func TestGenerateSchedule_TwiceDailyWindow(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	med := activeMed([]string{"08:00", "20:00"}, now.AddDate(0, 0, -3), nil)

	got := GenerateSchedule(med, now, 7)

	// Today's 08:00 is already past; 20:00 today plus both slots on the
	// remaining six window days.
	require.Len(t, got, 13)
	assert.Equal(t, time.Date(2025, 3, 10, 20, 0, 0, 0, time.UTC), got[0])
	for _, ts := range got {
		assert.True(t, ts.After(now), "generated %v is not after now", ts)
	}
	assert.True(t, sort.SliceIsSorted(got, func(i, j int) bool { return got[i].Before(got[j]) }))
	last := got[len(got)-1]
	assert.True(t, last.Before(now.AddDate(0, 0, 7)), "generated %v is outside the window", last)
}

func TestGenerateSchedule_NoTimesMeansNoReminders(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	med := activeMed(nil, now, nil)
	assert.Empty(t, GenerateSchedule(med, now, 7))
}

func TestGenerateSchedule_InactiveMedication(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	med := activeMed([]string{"08:00"}, now.AddDate(0, 0, -1), nil)
	med.Status = models.MedicationStatusStopped
	assert.Empty(t, GenerateSchedule(med, now, 7))

	med.Status = models.MedicationStatusCompleted
	assert.Empty(t, GenerateSchedule(med, now, 7))
}

func TestGenerateSchedule_FutureStartDate(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	med := activeMed([]string{"08:00"}, now.AddDate(0, 0, 3), nil)

	got := GenerateSchedule(med, now, 7)

	// Days 3..6 of the window.
	require.Len(t, got, 4)
	assert.Equal(t, time.Date(2025, 3, 13, 8, 0, 0, 0, time.UTC), got[0])
}

func TestGenerateSchedule_EndDateBoundsWindow(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	end := time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC)
	med := activeMed([]string{"08:00"}, now.AddDate(0, 0, -10), &end)

	got := GenerateSchedule(med, now, 7)

	// Today's 08:00 is past, leaving the 11th and the 12th; the end date
	// itself still gets a reminder.
	require.Len(t, got, 2)
	assert.Equal(t, time.Date(2025, 3, 11, 8, 0, 0, 0, time.UTC), got[0])
	assert.Equal(t, time.Date(2025, 3, 12, 8, 0, 0, 0, time.UTC), got[1])
}

func TestGenerateSchedule_EndDateInThePast(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	end := now.AddDate(0, 0, -2)
	med := activeMed([]string{"08:00"}, now.AddDate(0, 0, -10), &end)
	assert.Empty(t, GenerateSchedule(med, now, 7))
}

func TestGenerateSchedule_StrictlyAfterNow(t *testing.T) {
	// now lands exactly on a slot; that slot must not be generated.
	now := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
	med := activeMed([]string{"08:00"}, now.AddDate(0, 0, -1), nil)

	got := GenerateSchedule(med, now, 2)
	require.Len(t, got, 1)
	assert.Equal(t, time.Date(2025, 3, 11, 8, 0, 0, 0, time.UTC), got[0])
}

func TestGenerateSchedule_DefaultWindow(t *testing.T) {
	now := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	med := activeMed([]string{"08:00"}, now.AddDate(0, 0, -1), nil)

	// A non-positive window falls back to the default.
	got := GenerateSchedule(med, now, 0)
	assert.Len(t, got, DefaultWindowDays)
}
