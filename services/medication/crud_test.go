package medication

import (
	"fmt"
	"sync"
	"testing"
	"time"

	reminderRepo "medivault/database/repository/reminder"
	"medivault/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeMedicationRepo is an in-memory MedicationRepository.
type fakeMedicationRepo struct {
	mu   sync.Mutex
	meds map[string]models.Medication
}

func newFakeMedicationRepo() *fakeMedicationRepo {
	return &fakeMedicationRepo{meds: map[string]models.Medication{}}
}

func (r *fakeMedicationRepo) Create(med *models.Medication) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.meds[med.ID] = *med
	return nil
}

func (r *fakeMedicationRepo) Update(med *models.Medication) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.meds[med.ID]; !ok {
		return fmt.Errorf("medication not found")
	}
	r.meds[med.ID] = *med
	return nil
}

func (r *fakeMedicationRepo) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.meds, id)
	return nil
}

func (r *fakeMedicationRepo) GetByID(id string) (*models.Medication, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	med, ok := r.meds[id]
	if !ok {
		return nil, fmt.Errorf("medication not found")
	}
	return &med, nil
}

func (r *fakeMedicationRepo) GetByUserID(userID string) ([]models.Medication, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Medication
	for _, m := range r.meds {
		if m.UserID == userID {
			out = append(out, m)
		}
	}
	return out, nil
}

// fakeReminderRepo is an in-memory ReminderRepository mirroring the Mongo
// implementation's semantics: conditional status transitions and
// replace-pending regeneration.
type fakeReminderRepo struct {
	mu        sync.Mutex
	reminders map[string]models.Reminder
}

func newFakeReminderRepo() *fakeReminderRepo {
	return &fakeReminderRepo{reminders: map[string]models.Reminder{}}
}

func (r *fakeReminderRepo) Create(rem *models.Reminder) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reminders[rem.ID] = *rem
	return nil
}

func (r *fakeReminderRepo) GetByMedication(medicationID string) ([]models.Reminder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Reminder
	for _, rem := range r.reminders {
		if rem.MedicationID == medicationID {
			out = append(out, rem)
		}
	}
	return out, nil
}

func (r *fakeReminderRepo) ListDue(now time.Time) ([]models.Reminder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Reminder
	for _, rem := range r.reminders {
		if rem.Status == models.ReminderStatusPending && !rem.ScheduledTime.After(now) {
			out = append(out, rem)
		}
	}
	return out, nil
}

func (r *fakeReminderRepo) SetStatus(id, status string, sentAt *time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	rem, ok := r.reminders[id]
	if !ok || rem.Status != models.ReminderStatusPending {
		return reminderRepo.ErrNotPending
	}
	rem.Status = status
	rem.SentAt = sentAt
	r.reminders[id] = rem
	return nil
}

func (r *fakeReminderRepo) ReplacePending(medicationID string, fresh []models.Reminder) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, rem := range r.reminders {
		if rem.MedicationID == medicationID && rem.Status == models.ReminderStatusPending {
			delete(r.reminders, id)
		}
	}
	for _, rem := range fresh {
		r.reminders[rem.ID] = rem
	}
	return nil
}

func (r *fakeReminderRepo) DeleteByMedication(medicationID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, rem := range r.reminders {
		if rem.MedicationID == medicationID {
			delete(r.reminders, id)
		}
	}
	return nil
}

func (r *fakeReminderRepo) pendingSlots(medicationID string) map[time.Time]int {
	r.mu.Lock()
	defer r.mu.Unlock()
	slots := map[time.Time]int{}
	for _, rem := range r.reminders {
		if rem.MedicationID == medicationID && rem.Status == models.ReminderStatusPending {
			slots[rem.ScheduledTime]++
		}
	}
	return slots
}

func newTestService() (*DefaultMedicationService, *fakeMedicationRepo, *fakeReminderRepo) {
	meds := newFakeMedicationRepo()
	rems := newFakeReminderRepo()
	return &DefaultMedicationService{Repo: meds, Reminders: rems, WindowDays: 7}, meds, rems
}

func TestCreateMedication_GeneratesReminders(t *testing.T) {
	svc, _, rems := newTestService()

	med, err := svc.CreateMedication(CreateMedicationRequest{
		UserID:    "user-1",
		Name:      "Lisinopril",
		Dosage:    "10mg",
		Frequency: "twice daily",
		StartDate: time.Now().AddDate(0, 0, -1),
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"08:00", "20:00"}, med.Times)
	assert.Equal(t, models.MedicationStatusActive, med.Status)
	assert.Equal(t, models.MedicationSourceManual, med.Source)

	pending := rems.pendingSlots(med.ID)
	assert.NotEmpty(t, pending)
	for ts, count := range pending {
		assert.Equal(t, 1, count, "duplicate reminder at %v", ts)
		assert.True(t, ts.After(time.Now().Add(-time.Minute)))
	}
}

func TestCreateMedication_AsNeededHasNoSchedule(t *testing.T) {
	svc, _, rems := newTestService()

	med, err := svc.CreateMedication(CreateMedicationRequest{
		UserID:    "user-1",
		Name:      "Ibuprofen",
		Frequency: "as needed",
		StartDate: time.Now(),
	})
	require.NoError(t, err)
	assert.Empty(t, med.Times)
	assert.Empty(t, rems.pendingSlots(med.ID))
}

func TestCreateMedication_RejectsInvertedDateRange(t *testing.T) {
	svc, _, _ := newTestService()

	end := time.Now().AddDate(0, 0, -5)
	_, err := svc.CreateMedication(CreateMedicationRequest{
		UserID:    "user-1",
		Name:      "Amoxicillin",
		Frequency: "three times daily",
		StartDate: time.Now(),
		EndDate:   &end,
	})
	assert.Error(t, err)
}

func TestRegenerateReminders_Idempotent(t *testing.T) {
	svc, _, rems := newTestService()

	med, err := svc.CreateMedication(CreateMedicationRequest{
		UserID:    "user-1",
		Name:      "Metformin",
		Frequency: "twice daily",
		StartDate: time.Now().AddDate(0, 0, -1),
	})
	require.NoError(t, err)

	before := len(rems.pendingSlots(med.ID))
	require.NoError(t, svc.RegenerateReminders(med.ID))
	require.NoError(t, svc.RegenerateReminders(med.ID))

	after := rems.pendingSlots(med.ID)
	assert.Equal(t, before, len(after), "regeneration must not accumulate reminders")
	for ts, count := range after {
		assert.Equal(t, 1, count, "duplicate reminder at %v", ts)
	}
}

func TestRegenerateReminders_PreservesHistory(t *testing.T) {
	svc, _, rems := newTestService()

	med, err := svc.CreateMedication(CreateMedicationRequest{
		UserID:    "user-1",
		Name:      "Metformin",
		Frequency: "once daily",
		StartDate: time.Now().AddDate(0, 0, -1),
	})
	require.NoError(t, err)

	// Simulate a delivered reminder; it is history now.
	sentAt := time.Now()
	sent := models.Reminder{
		ID:            "sent-1",
		MedicationID:  med.ID,
		UserID:        med.UserID,
		ScheduledTime: time.Now().Add(-time.Hour),
		Status:        models.ReminderStatusSent,
		SentAt:        &sentAt,
	}
	require.NoError(t, rems.Create(&sent))

	require.NoError(t, svc.RegenerateReminders(med.ID))

	all, err := rems.GetByMedication(med.ID)
	require.NoError(t, err)
	var foundSent bool
	for _, r := range all {
		if r.ID == "sent-1" {
			foundSent = true
			assert.Equal(t, models.ReminderStatusSent, r.Status)
		}
	}
	assert.True(t, foundSent, "sent reminder must survive regeneration")
}

func TestUpdateMedication_StoppingClearsPending(t *testing.T) {
	svc, _, rems := newTestService()

	med, err := svc.CreateMedication(CreateMedicationRequest{
		UserID:    "user-1",
		Name:      "Metformin",
		Frequency: "twice daily",
		StartDate: time.Now().AddDate(0, 0, -1),
	})
	require.NoError(t, err)
	require.NotEmpty(t, rems.pendingSlots(med.ID))

	stopped := models.MedicationStatusStopped
	updated, err := svc.UpdateMedication(UpdateMedicationRequest{ID: med.ID, Status: &stopped})
	require.NoError(t, err)
	assert.Equal(t, models.MedicationStatusStopped, updated.Status)
	assert.Empty(t, rems.pendingSlots(med.ID), "stopping a medication must clear pending reminders")
}

func TestUpdateMedication_FrequencyChangeReschedules(t *testing.T) {
	svc, _, rems := newTestService()

	med, err := svc.CreateMedication(CreateMedicationRequest{
		UserID:    "user-1",
		Name:      "Metformin",
		Frequency: "once daily",
		StartDate: time.Now().AddDate(0, 0, -1),
	})
	require.NoError(t, err)
	onceCount := len(rems.pendingSlots(med.ID))

	freq := "three times daily"
	updated, err := svc.UpdateMedication(UpdateMedicationRequest{ID: med.ID, Frequency: &freq})
	require.NoError(t, err)
	assert.Equal(t, []string{"08:00", "14:00", "20:00"}, updated.Times)

	tidCount := len(rems.pendingSlots(med.ID))
	assert.Greater(t, tidCount, onceCount)
}

func TestUpdateMedication_CosmeticChangeKeepsSchedule(t *testing.T) {
	svc, _, rems := newTestService()

	med, err := svc.CreateMedication(CreateMedicationRequest{
		UserID:    "user-1",
		Name:      "Metformin",
		Frequency: "twice daily",
		StartDate: time.Now().AddDate(0, 0, -1),
	})
	require.NoError(t, err)
	before := rems.pendingSlots(med.ID)

	dosage := "500mg"
	_, err = svc.UpdateMedication(UpdateMedicationRequest{ID: med.ID, Dosage: &dosage})
	require.NoError(t, err)

	assert.Equal(t, before, rems.pendingSlots(med.ID), "a dosage edit must not touch the schedule")
}

func TestDeleteMedication_RemovesAllReminders(t *testing.T) {
	svc, meds, rems := newTestService()

	med, err := svc.CreateMedication(CreateMedicationRequest{
		UserID:    "user-1",
		Name:      "Metformin",
		Frequency: "twice daily",
		StartDate: time.Now().AddDate(0, 0, -1),
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteMedication(med.ID))

	all, err := rems.GetByMedication(med.ID)
	require.NoError(t, err)
	assert.Empty(t, all)
	_, err = meds.GetByID(med.ID)
	assert.Error(t, err)
}
