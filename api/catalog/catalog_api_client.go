package catalog

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"benefits-server/api"
	"benefits-server/config"
	"benefits-server/models"
	"benefits-server/models/benefit"
)

const apiKeyHeader = "X-Api-Key"

// CatalogApiClient embeds the common HTTPClient
type CatalogApiClient struct {
	*api.HTTPClient
	apiKey string
}

// NewCatalogApiClient creates a new instance of CatalogApiClient
func NewCatalogApiClient(httpClient *api.HTTPClient) *CatalogApiClient {
	return &CatalogApiClient{
		HTTPClient: httpClient,
	}
}

func (c *CatalogApiClient) SetCredentials(apiKey string) {
	c.apiKey = apiKey
}

func (c *CatalogApiClient) headers() map[string]string {
	if c.apiKey == "" {
		return nil
	}
	return map[string]string{apiKeyHeader: c.apiKey}
}

// GetBenefitsPage retrieves one page of the catalog. Pages start at 1.
func (c *CatalogApiClient) GetBenefitsPage(ctx context.Context, page int) (*models.CatalogResponse, error) {
	if page < 1 {
		return nil, fmt.Errorf("invalid catalog page %d", page)
	}
	endpoint := "/benefits?page=" + strconv.Itoa(page) + "&page_size=" + strconv.Itoa(config.CATALOG_PAGE_SIZE_HINT)

	var response models.CatalogResponse
	if err := c.Request(ctx, http.MethodGet, endpoint, c.headers(), nil, &response); err != nil {
		return nil, err
	}
	if response.Page == 0 {
		response.Page = page
	}
	return &response, nil
}

// GetBenefit retrieves a single benefit given its catalog id
func (c *CatalogApiClient) GetBenefit(ctx context.Context, benefitID string) (*benefit.Benefit, error) {
	var response benefit.Benefit
	err := c.Request(ctx, http.MethodGet, "/benefits/"+url.PathEscape(benefitID), c.headers(), nil, &response)
	if err != nil {
		return nil, err
	}
	return &response, nil
}
