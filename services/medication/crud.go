package medication

import (
	"fmt"
	"time"

	"medivault/models"
	"medivault/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CreateMedication resolves the timing set, persists the medication and
// generates its initial reminders synchronously.
func (s *DefaultMedicationService) CreateMedication(req CreateMedicationRequest) (*models.Medication, error) {
	if req.UserID == "" {
		return nil, fmt.Errorf("create medication: missing user id")
	}
	if req.EndDate != nil && req.EndDate.Before(req.StartDate) {
		return nil, fmt.Errorf("create medication: end date before start date")
	}

	source := req.Source
	if source == "" {
		source = models.MedicationSourceManual
	}

	med := &models.Medication{
		ID:           uuid.NewString(),
		UserID:       req.UserID,
		Name:         req.Name,
		Dosage:       req.Dosage,
		Frequency:    req.Frequency,
		Times:        ResolveTiming(req.Frequency, req.Times),
		StartDate:    req.StartDate,
		EndDate:      req.EndDate,
		Status:       models.MedicationStatusActive,
		Instructions: req.Instructions,
		Source:       source,
		DocumentID:   req.DocumentID,
	}

	if err := s.Repo.Create(med); err != nil {
		return nil, err
	}
	if err := s.regenerate(med); err != nil {
		return nil, err
	}
	return med, nil
}

// UpdateMedication applies a partial update and regenerates reminders when a
// schedule-affecting field changed.
func (s *DefaultMedicationService) UpdateMedication(req UpdateMedicationRequest) (*models.Medication, error) {
	med, err := s.Repo.GetByID(req.ID)
	if err != nil {
		return nil, err
	}

	scheduleChanged := false

	if req.Name != nil {
		med.Name = *req.Name
	}
	if req.Dosage != nil {
		med.Dosage = *req.Dosage
	}
	if req.Instructions != nil {
		med.Instructions = *req.Instructions
	}
	if req.Frequency != nil || req.Times != nil {
		if req.Frequency != nil {
			med.Frequency = *req.Frequency
		}
		med.Times = ResolveTiming(med.Frequency, req.Times)
		scheduleChanged = true
	}
	if req.StartDate != nil {
		med.StartDate = *req.StartDate
		scheduleChanged = true
	}
	if req.ClearEndDate {
		med.EndDate = nil
		scheduleChanged = true
	} else if req.EndDate != nil {
		med.EndDate = req.EndDate
		scheduleChanged = true
	}
	if req.Status != nil && *req.Status != med.Status {
		switch *req.Status {
		case models.MedicationStatusActive, models.MedicationStatusStopped, models.MedicationStatusCompleted:
			med.Status = *req.Status
			scheduleChanged = true
		default:
			return nil, fmt.Errorf("update medication: invalid status %q", *req.Status)
		}
	}
	if med.EndDate != nil && med.EndDate.Before(med.StartDate) {
		return nil, fmt.Errorf("update medication: end date before start date")
	}

	if err := s.Repo.Update(med); err != nil {
		return nil, err
	}
	if scheduleChanged {
		if err := s.regenerate(med); err != nil {
			return nil, err
		}
	}
	return med, nil
}

// GetMedicationByID retrieves a single medication.
func (s *DefaultMedicationService) GetMedicationByID(id string) (*models.Medication, error) {
	return s.Repo.GetByID(id)
}

// GetMedicationsByUser retrieves all medications owned by a user.
func (s *DefaultMedicationService) GetMedicationsByUser(userID string) ([]models.Medication, error) {
	return s.Repo.GetByUserID(userID)
}

// DeleteMedication removes a medication and all its reminders, history
// included.
func (s *DefaultMedicationService) DeleteMedication(id string) error {
	if err := s.Reminders.DeleteByMedication(id); err != nil {
		return err
	}
	return s.Repo.Delete(id)
}

// RegenerateReminders recomputes the pending reminder set for a medication.
func (s *DefaultMedicationService) RegenerateReminders(medicationID string) error {
	med, err := s.Repo.GetByID(medicationID)
	if err != nil {
		return err
	}
	return s.regenerate(med)
}

func (s *DefaultMedicationService) regenerate(med *models.Medication) error {
	now := time.Now()
	schedule := GenerateSchedule(*med, now, s.WindowDays)

	fresh := make([]models.Reminder, 0, len(schedule))
	for _, ts := range schedule {
		fresh = append(fresh, models.Reminder{
			ID:            uuid.NewString(),
			MedicationID:  med.ID,
			UserID:        med.UserID,
			ScheduledTime: ts,
			Status:        models.ReminderStatusPending,
		})
	}

	if err := s.Reminders.ReplacePending(med.ID, fresh); err != nil {
		return fmt.Errorf("regenerate reminders for medication %s: %w", med.ID, err)
	}
	utils.GetLogger().Debug("Regenerated reminders",
		zap.String("medicationId", med.ID),
		zap.Int("pending", len(fresh)))
	return nil
}

// ListReminders returns all reminders for a medication, ascending by
// scheduled time.
func (s *DefaultMedicationService) ListReminders(medicationID string) ([]models.Reminder, error) {
	return s.Reminders.GetByMedication(medicationID)
}

// ListDueReminders returns currently due pending reminders.
func (s *DefaultMedicationService) ListDueReminders(now time.Time) ([]models.Reminder, error) {
	return s.Reminders.ListDue(now)
}
