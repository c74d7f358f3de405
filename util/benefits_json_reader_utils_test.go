package util

import (
	"os"
	"path/filepath"
	"testing"

	"benefits-server/models"
	"benefits-server/models/benefit"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTempFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestReadCatalogResponseFromJSON(t *testing.T) {
	content := `{
		"status": "OK",
		"page": 1,
		"next_page": 2,
		"benefits_n": 1,
		"benefits": [
			{
				"id": "1",
				"merchant_name": "Test Merchant",
				"merchant_address": "Av. Corrientes 1234",
				"requisitos": "válido lunes y martes",
				"discount_percent": "25%"
			}
		]
	}`
	path := createTempFile(t, content)

	response, err := ReadCatalogResponseFromJSON(path)

	require.NoError(t, err)
	assert.Equal(t, "OK", response.Status)
	assert.Equal(t, 2, response.NextPage)
	require.Len(t, response.Benefits, 1)
	assert.Equal(t, "Test Merchant", response.Benefits[0].MerchantName)
	assert.Equal(t, []string{"válido lunes y martes"}, response.Benefits[0].Requisitos)
	assert.Equal(t, 25, response.Benefits[0].DiscountPercent)
}

func TestReadBenefitFromJSON(t *testing.T) {
	content := `{
		"id": "1",
		"merchant_name": "Test Merchant",
		"lat": -34.6037,
		"lng": -58.3816,
		"cuando": "todos los martes"
	}`
	path := createTempFile(t, content)

	response, err := ReadBenefitFromJSON(path)

	require.NoError(t, err)
	assert.Equal(t, "1", response.ID)
	assert.Equal(t, -34.6037, response.Lat)
	assert.Equal(t, -58.3816, response.Lon)
	assert.Equal(t, "todos los martes", response.Cuando)
}

func TestReadFromJSON_Errors(t *testing.T) {
	_, err := ReadCatalogResponseFromJSON(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	_, err = ReadBenefitFromJSON(createTempFile(t, `{"invalid_json`))
	assert.Error(t, err)
}

func TestLogCatalogResponsePartially(t *testing.T) {
	response := &models.CatalogResponse{
		Status:    "OK",
		BenefitsN: 5,
		Benefits:  make([]benefit.Benefit, 5),
	}

	assert.NotPanics(t, func() {
		LogCatalogResponsePartially(response)
		LogCatalogResponsePartially(nil)
	})
}
