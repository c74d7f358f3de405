package catalog

import (
	"context"

	"benefits-server/config"
	"benefits-server/logger"
	"benefits-server/models"
	"benefits-server/models/benefit"
	"benefits-server/util"

	"go.uber.org/zap"
)

// CatalogApiClientMock serves the catalog from the JSON fixtures under
// resources/. Only page 1 has content.
type CatalogApiClientMock struct {
	catalogPath string
	benefitPath string
}

// NewCatalogApiClientMock creates a new instance of CatalogApiClientMock
func NewCatalogApiClientMock() *CatalogApiClientMock {
	return &CatalogApiClientMock{
		catalogPath: config.GetResourcePath(config.BENEFITS_CATALOG_RESOURCE),
		benefitPath: config.GetResourcePath(config.BENEFIT_STATIC_RESOURCE),
	}
}

func (c *CatalogApiClientMock) SetCredentials(apiKey string) {}

func (c *CatalogApiClientMock) GetBenefitsPage(ctx context.Context, page int) (*models.CatalogResponse, error) {
	if page != 1 {
		return &models.CatalogResponse{Status: "OK", Page: page, Benefits: []benefit.Benefit{}}, nil
	}

	response, err := util.ReadCatalogResponseFromJSON(c.catalogPath)
	if err != nil {
		logger.GetLogger().Error("Could not read catalog response from json", zap.Error(err))
		return nil, err
	}
	return response, nil
}

// GetBenefit always returns the static benefit fixture with the requested id.
func (c *CatalogApiClientMock) GetBenefit(ctx context.Context, benefitID string) (*benefit.Benefit, error) {
	response, err := util.ReadBenefitFromJSON(c.benefitPath)
	if err != nil {
		logger.GetLogger().Error("Could not read benefit from json", zap.Error(err))
		return nil, err
	}
	response.ID = benefitID
	return response, nil
}
