package medication

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"medivault/models"
)

// DefaultWindowDays is the rolling generation window: reminders are
// materialized this many calendar days ahead.
const DefaultWindowDays = 7

// GenerateSchedule expands a medication's resolved timing into concrete
// future timestamps within the window, bounded by the medication's active
// date range. The result is sorted ascending and strictly after now.
//
// Combined with ReminderRepository.ReplacePending, re-running generation
// with unchanged inputs at the same instant is idempotent: the pending set
// is recomputed, never accumulated.
func GenerateSchedule(med models.Medication, now time.Time, windowDays int) []time.Time {
	if med.Status != models.MedicationStatusActive {
		return nil
	}
	if len(med.Times) == 0 {
		// As-needed medications have no fixed schedule.
		return nil
	}
	if windowDays <= 0 {
		windowDays = DefaultWindowDays
	}

	loc := now.Location()
	start := dateOnly(med.StartDate.In(loc))
	var end time.Time
	if med.EndDate != nil {
		end = dateOnly(med.EndDate.In(loc))
	}

	var schedule []time.Time
	for offset := 0; offset < windowDays; offset++ {
		day := dateOnly(now).AddDate(0, 0, offset)
		if day.Before(start) {
			continue
		}
		if med.EndDate != nil && day.After(end) {
			break
		}
		for _, t := range med.Times {
			hour, minute, err := parseTimeOfDay(t)
			if err != nil {
				continue
			}
			ts := time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, loc)
			if ts.After(now) {
				schedule = append(schedule, ts)
			}
		}
	}
	return schedule
}

// dateOnly truncates a timestamp to midnight in its own location.
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func parseTimeOfDay(s string) (hour, minute int, err error) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid time of day %q", s)
	}
	hour, err = strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, fmt.Errorf("invalid hour in %q", s)
	}
	minute, err = strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("invalid minute in %q", s)
	}
	return hour, minute, nil
}
