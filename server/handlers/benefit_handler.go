package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"benefits-server/db"
	"benefits-server/logger"
	"benefits-server/models"
	services "benefits-server/service"
	"benefits-server/util"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

const (
	LAT_QUERY_ARG     = "lat"
	LON_QUERY_ARG     = "lon"
	RADIUS_QUERY_ARG  = "radius"
	DAY_QUERY_ARG     = "day"
	VERBOSE_QUERY_ARG = "verbose"

	BENEFIT_ID_PATH_VAR = "id"
)

// MinifiedBenefit is the small form returned when verbose=false.
type MinifiedBenefit struct {
	ID              string   `json:"id"`
	MerchantName    string   `json:"merchant_name"`
	MerchantAddress string   `json:"merchant_address"`
	Bank            string   `json:"bank"`
	DiscountPercent int      `json:"discount_percent"`
	Days            []string `json:"days"`
}

type BenefitHandler struct {
	benefitService *services.BenefitService
	now            func() time.Time
	log            *zap.Logger
}

func NewBenefitHandler(benefitService *services.BenefitService) *BenefitHandler {
	return &BenefitHandler{
		benefitService: benefitService,
		now:            time.Now,
		log:            logger.Named("BenefitHandler"),
	}
}

// GetBenefitsNearby handles GET /v1/benefits/nearby.
func (h *BenefitHandler) GetBenefitsNearby(w http.ResponseWriter, r *http.Request) {
	vals := r.URL.Query()
	lat, lon, radius, ok := parseLocationArgs(vals, w)
	if !ok {
		return
	}

	day, err := util.ParseWeekdayParam(vals.Get(DAY_QUERY_ARG), h.now())
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid argument "+DAY_QUERY_ARG, err)
		return
	}

	verbose := false
	if v := vals.Get(VERBOSE_QUERY_ARG); v != "" {
		verbose, _ = strconv.ParseBool(v)
	}

	benefits, err := h.benefitService.GetBenefitsNearby(r.Context(), lat, lon, radius, day)
	if err != nil {
		h.log.Error("Error loading nearby benefits", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Internal server error", nil)
		return
	}

	writeJSON(w, http.StatusOK, h.transform(benefits, verbose))
}

// GetBenefitDays handles GET /v1/benefits/{id}/days.
func (h *BenefitHandler) GetBenefitDays(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)[BENEFIT_ID_PATH_VAR]

	result, err := h.benefitService.GetBenefitDays(r.Context(), id)
	if errors.Is(err, db.ErrNotFound) {
		writeError(w, http.StatusNotFound, "Benefit not found", fmt.Errorf("no benefit with id %q", id))
		return
	}
	if err != nil {
		h.log.Error("Error loading benefit", zap.String("benefit_id", id), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Internal server error", nil)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// GetWeekdayCoverage handles GET /v1/benefits/coverage and answers with an
// HTML bar chart.
func (h *BenefitHandler) GetWeekdayCoverage(w http.ResponseWriter, r *http.Request) {
	lat, lon, radius, ok := parseLocationArgs(r.URL.Query(), w)
	if !ok {
		return
	}

	coverage, err := h.benefitService.WeekdayCoverage(r.Context(), lat, lon, radius)
	if err != nil {
		h.log.Error("Error computing weekday coverage", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Internal server error", nil)
		return
	}

	var page bytes.Buffer
	title := fmt.Sprintf("%d beneficios en %.1f km (%d sin días)", coverage.Total, radius, coverage.Unknown)
	if err := util.RenderWeekdayCoverage(&page, title, coverage.Days); err != nil {
		h.log.Error("Error rendering weekday coverage", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Internal server error", nil)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(page.Bytes())
}

// Ping handles GET /ping
func (h *BenefitHandler) Ping(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "pong"})
}

func (h *BenefitHandler) transform(benefits []models.BenefitWithDays, verbose bool) interface{} {
	if verbose {
		return benefits
	}
	min := make([]MinifiedBenefit, 0, len(benefits))
	for _, b := range benefits {
		min = append(min, MinifiedBenefit{
			ID:              b.Benefit.ID,
			MerchantName:    b.Benefit.MerchantName,
			MerchantAddress: b.Benefit.MerchantAddress,
			Bank:            b.Benefit.Bank,
			DiscountPercent: b.Benefit.DiscountPercent,
			Days:            b.DayNames,
		})
	}
	return min
}

func parseLocationArgs(vals url.Values, w http.ResponseWriter) (lat, lon, radius float64, ok bool) {
	var err error

	lat, err = parseArgFloat64(vals, LAT_QUERY_ARG, -90, 90)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid argument "+LAT_QUERY_ARG, err)
		return
	}
	lon, err = parseArgFloat64(vals, LON_QUERY_ARG, -180, 180)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid argument "+LON_QUERY_ARG, err)
		return
	}
	radius, err = parseArgFloat64(vals, RADIUS_QUERY_ARG, 0, 500)
	if err == nil && radius == 0 {
		err = errors.New("radius must be positive")
	}
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid argument "+RADIUS_QUERY_ARG, err)
		return
	}
	ok = true
	return
}

func parseArgFloat64(vals url.Values, name string, lo, hi float64) (float64, error) {
	f, err := strconv.ParseFloat(vals.Get(name), 64)
	if err != nil {
		return 0, err
	}
	if f < lo || f > hi {
		return 0, fmt.Errorf("%s=%g out of range [%g, %g]", name, f, lo, hi)
	}
	return f, nil
}
