package intelligence

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"medivault/models"
	"medivault/utils"

	"go.uber.org/zap"
)

// contentGenerator is the slice of GeminiClient the extraction service needs.
type contentGenerator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

// ExtractionService pulls structured medication data out of document text.
type ExtractionService interface {
	ExtractMedications(ctx context.Context, documentText string) ([]models.MedicationDraft, error)
}

// DefaultExtractionService is the Gemini-backed implementation.
type DefaultExtractionService struct {
	Gen contentGenerator
}

func NewDefaultExtractionService(gen contentGenerator) *DefaultExtractionService {
	return &DefaultExtractionService{Gen: gen}
}

const extractionPrompt = `You are reading the text of a medical document.
Extract every prescribed medication as a JSON array. Each element must have
the keys "name", "dosage", "frequency" and optionally "times" (24h "HH:MM"
strings) and "instructions". Answer with the JSON array only, no prose.

Document text:
%s`

// ExtractMedications asks the model for a medication list and parses its
// answer. Drafts are returned as-is: timing resolution and its fail-open
// fallback happen when a draft is confirmed into a medication, so malformed
// times here never block anything.
func (s *DefaultExtractionService) ExtractMedications(ctx context.Context, documentText string) ([]models.MedicationDraft, error) {
	raw, err := s.Gen.GenerateContent(ctx, fmt.Sprintf(extractionPrompt, documentText))
	if err != nil {
		return nil, fmt.Errorf("extraction: %w", err)
	}

	drafts, err := parseDrafts(raw)
	if err != nil {
		utils.GetLogger().Warn("Extraction produced unparseable output", zap.Error(err))
		return nil, fmt.Errorf("extraction: %w", err)
	}
	return drafts, nil
}

// parseDrafts decodes the model output, tolerating markdown code fences.
func parseDrafts(raw string) ([]models.MedicationDraft, error) {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	cleaned = strings.TrimSpace(cleaned)

	var drafts []models.MedicationDraft
	if err := json.Unmarshal([]byte(cleaned), &drafts); err != nil {
		return nil, fmt.Errorf("failed to parse medication drafts: %w", err)
	}

	valid := drafts[:0]
	for _, d := range drafts {
		if strings.TrimSpace(d.Name) == "" {
			continue
		}
		valid = append(valid, d)
	}
	return valid, nil
}
