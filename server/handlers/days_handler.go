package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"benefits-server/models"
	services "benefits-server/service"
)

const maxDaysBodyBytes = 64 << 10

type DaysHandler struct {
	benefitService *services.BenefitService
}

func NewDaysHandler(benefitService *services.BenefitService) *DaysHandler {
	return &DaysHandler{benefitService: benefitService}
}

// ParseDays handles POST /v1/days/parse with a {"text": "..."} body.
func (h *DaysHandler) ParseDays(w http.ResponseWriter, r *http.Request) {
	var req models.ParseDaysRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxDaysBodyBytes)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	writeJSON(w, http.StatusOK, h.benefitService.ParseText(req.Text))
}

// ResolveDays handles POST /v1/days/resolve. The body is a benefit, or just
// its condicion, requisitos, cuando and textoAplicacion fields.
func (h *DaysHandler) ResolveDays(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxDaysBodyBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(body, &obj); err != nil || obj == nil {
		if err == nil {
			err = errors.New("expected a JSON object")
		}
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	writeJSON(w, http.StatusOK, h.benefitService.Resolve(json.RawMessage(body)))
}
