package handlers

import (
	"net/http"
	"time"

	"medivault/services/medication"
	"medivault/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// MedicationHandler exposes medication and reminder endpoints.
type MedicationHandler struct {
	Service medication.MedicationService
}

func NewMedicationHandler(svc medication.MedicationService) *MedicationHandler {
	return &MedicationHandler{Service: svc}
}

// ownedMedication loads a medication and checks the caller owns it.
func (h *MedicationHandler) ownedMedication(c *gin.Context, id string) bool {
	med, err := h.Service.GetMedicationByID(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Medication not found"})
		return false
	}
	if med.UserID != c.GetString("userID") {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not your medication"})
		return false
	}
	return true
}

// CreateMedicationHandler handles POST /api/medications. Creation resolves
// the timing set and generates reminders synchronously.
func (h *MedicationHandler) CreateMedicationHandler(c *gin.Context) {
	logger := utils.GetLogger()
	var req medication.CreateMedicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	req.UserID = c.GetString("userID")

	med, err := h.Service.CreateMedication(req)
	if err != nil {
		logger.Error("Failed to create medication", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, med)
}

// UpdateMedicationHandler handles PATCH /api/medications/:id.
func (h *MedicationHandler) UpdateMedicationHandler(c *gin.Context) {
	logger := utils.GetLogger()
	id := c.Param("id")
	if !h.ownedMedication(c, id) {
		return
	}

	var req medication.UpdateMedicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	req.ID = id

	med, err := h.Service.UpdateMedication(req)
	if err != nil {
		logger.Error("Failed to update medication", zap.String("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, med)
}

// GetMedicationHandler handles GET /api/medications/:id.
func (h *MedicationHandler) GetMedicationHandler(c *gin.Context) {
	id := c.Param("id")
	if !h.ownedMedication(c, id) {
		return
	}
	med, err := h.Service.GetMedicationByID(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, med)
}

// ListMedicationsHandler handles GET /api/medications.
func (h *MedicationHandler) ListMedicationsHandler(c *gin.Context) {
	meds, err := h.Service.GetMedicationsByUser(c.GetString("userID"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, meds)
}

// DeleteMedicationHandler handles DELETE /api/medications/:id. Reminders go
// with the medication.
func (h *MedicationHandler) DeleteMedicationHandler(c *gin.Context) {
	logger := utils.GetLogger()
	id := c.Param("id")
	if !h.ownedMedication(c, id) {
		return
	}
	if err := h.Service.DeleteMedication(id); err != nil {
		logger.Error("Failed to delete medication", zap.String("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Medication deleted"})
}

// ListRemindersHandler handles GET /api/medications/:id/reminders.
func (h *MedicationHandler) ListRemindersHandler(c *gin.Context) {
	id := c.Param("id")
	if !h.ownedMedication(c, id) {
		return
	}
	reminders, err := h.Service.ListReminders(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, reminders)
}

// ListDueRemindersHandler handles GET /api/reminders/due.
func (h *MedicationHandler) ListDueRemindersHandler(c *gin.Context) {
	reminders, err := h.Service.ListDueReminders(time.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	// Scope the answer to the caller.
	userID := c.GetString("userID")
	own := reminders[:0]
	for _, r := range reminders {
		if r.UserID == userID {
			own = append(own, r)
		}
	}
	c.JSON(http.StatusOK, own)
}
