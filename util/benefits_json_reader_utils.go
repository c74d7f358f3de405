package util

import (
	"encoding/json"
	"fmt"
	"os"

	"benefits-server/logger"
	"benefits-server/models"
	"benefits-server/models/benefit"

	"go.uber.org/zap"
)

// ReadCatalogResponseFromJSON loads a CatalogResponse from JSON on disk.
func ReadCatalogResponseFromJSON(filePath string) (*models.CatalogResponse, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %q: %w", filePath, err)
	}
	var resp models.CatalogResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal CatalogResponse: %w", err)
	}
	return &resp, nil
}

// ReadBenefitFromJSON loads a single Benefit from JSON on disk.
func ReadBenefitFromJSON(filePath string) (*benefit.Benefit, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %q: %w", filePath, err)
	}
	var b benefit.Benefit
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("failed to unmarshal Benefit: %w", err)
	}
	return &b, nil
}

// LogCatalogResponsePartially logs a summary of the page and its first few
// benefits at debug level.
func LogCatalogResponsePartially(resp *models.CatalogResponse) {
	log := logger.Named("catalog")
	if resp == nil {
		log.Debug("Empty catalog response")
		return
	}

	log.Debug("Catalog page",
		zap.String("status", resp.Status),
		zap.Int("page", resp.Page),
		zap.Int("next_page", resp.NextPage),
		zap.Int("benefits_n", resp.BenefitsN),
	)
	for i, b := range resp.Benefits {
		if i == 3 {
			log.Debug("More benefits omitted", zap.Int("remaining", len(resp.Benefits)-i))
			break
		}
		log.Debug("Catalog benefit", zap.String("benefit", b.ToString()))
	}
}
