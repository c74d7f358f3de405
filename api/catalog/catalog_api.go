package catalog

import (
	"context"

	"benefits-server/models"
	"benefits-server/models/benefit"
)

// CatalogAPI defines the interface for interacting with the upstream benefits catalog
type CatalogAPI interface {
	GetBenefitsPage(ctx context.Context, page int) (*models.CatalogResponse, error)
	GetBenefit(ctx context.Context, benefitID string) (*benefit.Benefit, error)
	SetCredentials(apiKey string)
}
