package handlers

import (
	"net/http"
	"os"
	"path/filepath"
	"time"

	documentRepo "medivault/database/repository/document"
	"medivault/models"
	"medivault/services/intelligence"
	"medivault/services/medication"
	"medivault/services/storage"
	"medivault/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DocumentHandler exposes health-document endpoints: upload, download URL,
// delete, and medication extraction.
type DocumentHandler struct {
	Repo       documentRepo.DocumentRepository
	Storage    storage.StorageService
	Extraction intelligence.ExtractionService
	Meds       medication.MedicationService
}

func NewDocumentHandler(repo documentRepo.DocumentRepository, store storage.StorageService, extraction intelligence.ExtractionService, meds medication.MedicationService) *DocumentHandler {
	return &DocumentHandler{Repo: repo, Storage: store, Extraction: extraction, Meds: meds}
}

func (h *DocumentHandler) ownedDocument(c *gin.Context, id string) *models.HealthDocument {
	doc, err := h.Repo.GetByID(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Document not found"})
		return nil
	}
	if doc.UserID != c.GetString("userID") {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not your document"})
		return nil
	}
	return doc
}

// UploadDocumentHandler handles POST /api/documents (multipart form with a
// "file" field and optional "title").
func (h *DocumentHandler) UploadDocumentHandler(c *gin.Context) {
	logger := utils.GetLogger()

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing file"})
		return
	}

	tmpPath := filepath.Join(os.TempDir(), uuid.NewString()+filepath.Ext(fileHeader.Filename))
	if err := c.SaveUploadedFile(fileHeader, tmpPath); err != nil {
		logger.Error("Failed to stage upload", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Upload failed"})
		return
	}
	defer os.Remove(tmpPath)

	userID := c.GetString("userID")
	publicID, err := h.Storage.UploadFile(c.Request.Context(), tmpPath, "documents/"+userID)
	if err != nil {
		logger.Error("Failed to upload document", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Upload failed"})
		return
	}

	title := c.PostForm("title")
	if title == "" {
		title = fileHeader.Filename
	}
	doc := &models.HealthDocument{
		ID:          uuid.NewString(),
		UserID:      userID,
		Title:       title,
		FileName:    fileHeader.Filename,
		PublicID:    publicID,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Size:        fileHeader.Size,
	}
	if err := h.Repo.Create(doc); err != nil {
		logger.Error("Failed to persist document metadata", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Upload failed"})
		return
	}
	c.JSON(http.StatusCreated, doc)
}

// ListDocumentsHandler handles GET /api/documents.
func (h *DocumentHandler) ListDocumentsHandler(c *gin.Context) {
	docs, err := h.Repo.GetByUserID(c.GetString("userID"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, docs)
}

// GetDownloadURLHandler handles GET /api/documents/:id/url.
func (h *DocumentHandler) GetDownloadURLHandler(c *gin.Context) {
	doc := h.ownedDocument(c, c.Param("id"))
	if doc == nil {
		return
	}
	url, err := h.Storage.GetDownloadURL(c.Request.Context(), doc.PublicID, 15*time.Minute)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": url})
}

// DeleteDocumentHandler handles DELETE /api/documents/:id.
func (h *DocumentHandler) DeleteDocumentHandler(c *gin.Context) {
	logger := utils.GetLogger()
	doc := h.ownedDocument(c, c.Param("id"))
	if doc == nil {
		return
	}
	if err := h.Storage.DeleteFile(c.Request.Context(), doc.PublicID); err != nil {
		logger.Warn("Failed to delete stored file", zap.String("publicId", doc.PublicID), zap.Error(err))
	}
	if err := h.Repo.Delete(doc.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Document deleted"})
}

// ExtractMedicationsHandler handles POST /api/documents/:id/extract. The
// client sends the document's OCR text; extracted medications are created
// with source=extracted, which resolves timing with the frequency fallback
// and generates reminders like any manual create.
func (h *DocumentHandler) ExtractMedicationsHandler(c *gin.Context) {
	logger := utils.GetLogger()
	doc := h.ownedDocument(c, c.Param("id"))
	if doc == nil {
		return
	}

	var req struct {
		Text      string    `json:"text" binding:"required"`
		StartDate time.Time `json:"startDate"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.StartDate.IsZero() {
		req.StartDate = time.Now()
	}

	drafts, err := h.Extraction.ExtractMedications(c.Request.Context(), req.Text)
	if err != nil {
		logger.Error("Extraction failed", zap.String("documentId", doc.ID), zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "Extraction failed"})
		return
	}

	var created []interface{}
	for _, d := range drafts {
		med, err := h.Meds.CreateMedication(medication.CreateMedicationRequest{
			UserID:       doc.UserID,
			Name:         d.Name,
			Dosage:       d.Dosage,
			Frequency:    d.Frequency,
			Times:        d.Times,
			StartDate:    req.StartDate,
			Instructions: d.Instructions,
			Source:       models.MedicationSourceExtracted,
			DocumentID:   doc.ID,
		})
		if err != nil {
			logger.Error("Failed to create extracted medication", zap.String("name", d.Name), zap.Error(err))
			continue
		}
		created = append(created, med)
	}

	doc.Extracted = true
	if err := h.Repo.Update(doc); err != nil {
		logger.Warn("Failed to flag document as extracted", zap.String("documentId", doc.ID), zap.Error(err))
	}

	c.JSON(http.StatusOK, gin.H{"medications": created})
}
