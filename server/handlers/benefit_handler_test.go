package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"benefits-server/dao/redis"
	"benefits-server/db"
	"benefits-server/models"
	"benefits-server/models/benefit"
	services "benefits-server/service"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var seedBenefits = []benefit.Benefit{
	{
		ID:              "b-1",
		MerchantName:    "Café Tortoni",
		MerchantAddress: "Av. de Mayo 825",
		Lat:             -34.608831,
		Lon:             -58.378780,
		Bank:            "Banco Nación",
		DiscountPercent: 20,
		Condicion:       "Válido solo fines de semana",
	},
	{
		ID:           "b-2",
		MerchantName: "El Ateneo",
		Lat:          -34.595950,
		Lon:          -58.394120,
		Requisitos:   []string{"Válido lunes y martes"},
	},
	{
		ID:           "b-3",
		MerchantName: "Cine Gaumont",
		Lat:          -34.609370,
		Lon:          -58.390810,
		Cuando:       "Consultar en sucursal",
	},
}

func newTestService(t *testing.T) *services.BenefitService {
	t.Helper()
	dao := redis.NewRedisBenefitDAO(db.NewMockRedisClient())
	for _, b := range seedBenefits {
		require.NoError(t, dao.UpsertBenefit(context.Background(), b))
	}
	return services.NewBenefitService(dao)
}

func newTestBenefitHandler(t *testing.T) *BenefitHandler {
	h := NewBenefitHandler(newTestService(t))
	// A Sunday.
	h.now = func() time.Time { return time.Date(2024, time.March, 17, 12, 0, 0, 0, time.UTC) }
	return h
}

func TestGetBenefitsNearby_Minified(t *testing.T) {
	h := newTestBenefitHandler(t)
	rr := httptest.NewRecorder()

	h.GetBenefitsNearby(rr, httptest.NewRequest(http.MethodGet, "/v1/benefits/nearby?lat=-34.6037&lon=-58.3816&radius=5", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	var got []MinifiedBenefit
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	require.Len(t, got, 3)

	byID := make(map[string]MinifiedBenefit)
	for _, b := range got {
		byID[b.ID] = b
	}
	assert.Equal(t, []string{"Sábado", "Domingo"}, byID["b-1"].Days)
	assert.Equal(t, 20, byID["b-1"].DiscountPercent)
	assert.Equal(t, []string{"Lunes", "Martes"}, byID["b-2"].Days)
	assert.Equal(t, []string{}, byID["b-3"].Days)
}

func TestGetBenefitsNearby_VerboseWithDay(t *testing.T) {
	h := newTestBenefitHandler(t)
	rr := httptest.NewRecorder()

	h.GetBenefitsNearby(rr, httptest.NewRequest(http.MethodGet, "/v1/benefits/nearby?lat=-34.6037&lon=-58.3816&radius=5&day=hoy&verbose=true", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	var got []models.BenefitWithDays
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "b-1", got[0].Benefit.ID)
	require.NotNil(t, got[0].Days)
	assert.True(t, got[0].Days.Sunday)
}

func TestGetBenefitsNearby_BadArgs(t *testing.T) {
	h := newTestBenefitHandler(t)

	for _, query := range []string{
		"lon=-58.3816&radius=5",
		"lat=abc&lon=-58.3816&radius=5",
		"lat=-34.6&lon=-190&radius=5",
		"lat=-34.6&lon=-58.3816&radius=0",
		"lat=-34.6&lon=-58.3816&radius=5&day=pronto",
	} {
		rr := httptest.NewRecorder()
		h.GetBenefitsNearby(rr, httptest.NewRequest(http.MethodGet, "/v1/benefits/nearby?"+query, nil))

		assert.Equal(t, http.StatusBadRequest, rr.Code, "query %q", query)
		var body ErrorResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
		assert.NotEmpty(t, body.Message)
		assert.NotEmpty(t, body.Details)
	}
}

func TestGetBenefitDays(t *testing.T) {
	h := newTestBenefitHandler(t)

	t.Run("found", func(t *testing.T) {
		req := mux.SetURLVars(httptest.NewRequest(http.MethodGet, "/v1/benefits/b-2/days", nil), map[string]string{"id": "b-2"})
		rr := httptest.NewRecorder()
		h.GetBenefitDays(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		var got models.BenefitWithDays
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
		assert.Equal(t, "El Ateneo", got.Benefit.MerchantName)
		assert.Equal(t, []string{"Lunes", "Martes"}, got.DayNames)
	})

	t.Run("not found", func(t *testing.T) {
		req := mux.SetURLVars(httptest.NewRequest(http.MethodGet, "/v1/benefits/nope/days", nil), map[string]string{"id": "nope"})
		rr := httptest.NewRecorder()
		h.GetBenefitDays(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
		assert.Contains(t, rr.Body.String(), "Benefit not found")
	})
}

func TestGetWeekdayCoverage(t *testing.T) {
	h := newTestBenefitHandler(t)
	rr := httptest.NewRecorder()

	h.GetWeekdayCoverage(rr, httptest.NewRequest(http.MethodGet, "/v1/benefits/coverage?lat=-34.6037&lon=-58.3816&radius=5", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "text/html; charset=utf-8", rr.Header().Get("Content-Type"))
	assert.Contains(t, rr.Body.String(), "3 beneficios en 5.0 km (1 sin días)")
}

func TestPing(t *testing.T) {
	rr := httptest.NewRecorder()
	NewBenefitHandler(nil).Ping(rr, httptest.NewRequest(http.MethodGet, "/ping", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status":"pong"}`, rr.Body.String())
}
