package di

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"benefits-server/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewContainer_TestEnv(t *testing.T) {
	ctx := context.Background()
	cfg := config.Config{Env: "test", AppPort: "0", RateLimitPerMin: 1000, RateLimitBurst: 100}

	c, err := NewContainer(ctx, cfg)
	require.NoError(t, err)

	n, err := c.BenefitsRefresherService.RefreshBenefitsData(ctx)
	require.NoError(t, err)
	assert.Equal(t, 5, n)

	c.Router.RegisterRoutes()

	rr := httptest.NewRecorder()
	c.MuxRouter.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/v1/benefits/nearby?lat=-34.6037&lon=-58.3816&radius=5&day=domingo", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Café Tortoni")
	assert.NotContains(t, rr.Body.String(), "El Ateneo")
	assert.NotEmpty(t, rr.Header().Get("X-Request-ID"))

	rr = httptest.NewRecorder()
	c.MuxRouter.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/v1/days/parse", strings.NewReader(`{"text":"lunes a viernes"}`)))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"Viernes"`)
}

func TestNewContainer_RedisUnavailable(t *testing.T) {
	cfg := config.Config{Env: "development", RedisAddr: "127.0.0.1:1"}

	_, err := NewContainer(context.Background(), cfg)
	assert.Error(t, err)
}
