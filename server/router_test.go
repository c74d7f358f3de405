package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
)

// MockBenefitHandler is a mock implementation of BenefitHandler.
type MockBenefitHandler struct{}

func (h *MockBenefitHandler) GetBenefitsNearby(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"message": "benefits nearby"}`))
}

func (h *MockBenefitHandler) GetBenefitDays(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"message": "days of ` + mux.Vars(r)["id"] + `"}`))
}

func (h *MockBenefitHandler) GetWeekdayCoverage(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`<html>coverage</html>`))
}

func (h *MockBenefitHandler) Ping(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "pong"}`))
}

// MockDaysHandler is a mock implementation of DaysHandler.
type MockDaysHandler struct{}

func (h *MockDaysHandler) ParseDays(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"message": "parsed"}`))
}

func (h *MockDaysHandler) ResolveDays(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"message": "resolved"}`))
}

func TestRouter_RegisterRoutes(t *testing.T) {
	router := mux.NewRouter()
	appRouter := NewRouter(&MockBenefitHandler{}, &MockDaysHandler{}, router, RequestIDMiddleware)
	appRouter.RegisterRoutes()

	tests := []struct {
		name       string
		method     string
		path       string
		statusCode int
		response   string
	}{
		{
			name:       "Get Benefits Nearby",
			method:     http.MethodGet,
			path:       "/v1/benefits/nearby",
			statusCode: http.StatusOK,
			response:   `{"message": "benefits nearby"}`,
		},
		{
			name:       "Get Benefit Days",
			method:     http.MethodGet,
			path:       "/v1/benefits/b-123/days",
			statusCode: http.StatusOK,
			response:   `{"message": "days of b-123"}`,
		},
		{
			name:       "Get Coverage",
			method:     http.MethodGet,
			path:       "/v1/benefits/coverage",
			statusCode: http.StatusOK,
			response:   `<html>coverage</html>`,
		},
		{
			name:       "Parse Days",
			method:     http.MethodPost,
			path:       "/v1/days/parse",
			statusCode: http.StatusOK,
			response:   `{"message": "parsed"}`,
		},
		{
			name:       "Resolve Days",
			method:     http.MethodPost,
			path:       "/v1/days/resolve",
			statusCode: http.StatusOK,
			response:   `{"message": "resolved"}`,
		},
		{
			name:       "Ping Route",
			method:     http.MethodGet,
			path:       "/ping",
			statusCode: http.StatusOK,
			response:   `{"status": "pong"}`,
		},
		{
			name:       "Wrong Method",
			method:     http.MethodGet,
			path:       "/v1/days/parse",
			statusCode: http.StatusMethodNotAllowed,
		},
		{
			name:       "Invalid Route",
			method:     http.MethodGet,
			path:       "/invalid",
			statusCode: http.StatusNotFound,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			req := httptest.NewRequest(test.method, test.path, strings.NewReader(`{}`))
			rr := httptest.NewRecorder()

			router.ServeHTTP(rr, req)

			assert.Equal(t, test.statusCode, rr.Code)
			if test.response != "" {
				assert.Equal(t, test.response, rr.Body.String())
				assert.NotEmpty(t, rr.Header().Get(RequestIDHeader))
			}
		})
	}
}
