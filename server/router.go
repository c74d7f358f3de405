package server

import (
	"net/http"

	"github.com/gorilla/mux"
)

type BenefitHandler interface {
	GetBenefitsNearby(w http.ResponseWriter, r *http.Request)
	GetBenefitDays(w http.ResponseWriter, r *http.Request)
	GetWeekdayCoverage(w http.ResponseWriter, r *http.Request)
	Ping(w http.ResponseWriter, r *http.Request)
}

type DaysHandler interface {
	ParseDays(w http.ResponseWriter, r *http.Request)
	ResolveDays(w http.ResponseWriter, r *http.Request)
}

type Router struct {
	benefitHandler BenefitHandler
	daysHandler    DaysHandler
	router         *mux.Router
	middlewares    []mux.MiddlewareFunc
}

// NewRouter creates a router with the app’s routes. Middlewares run in the
// order given.
func NewRouter(
	benefitHandler BenefitHandler,
	daysHandler DaysHandler,
	router *mux.Router,
	middlewares ...mux.MiddlewareFunc) *Router {
	return &Router{
		benefitHandler: benefitHandler,
		daysHandler:    daysHandler,
		router:         router,
		middlewares:    middlewares,
	}
}

func (r *Router) RegisterRoutes() {
	r.router.Use(r.middlewares...)

	// expects ?lat={latitude(float)}&lon={longitude(float)}&radius={km(float)}[&day={weekday}][&verbose={bool}]
	r.router.HandleFunc("/v1/benefits/nearby", r.benefitHandler.GetBenefitsNearby).Methods(http.MethodGet)
	// expects ?lat={latitude(float)}&lon={longitude(float)}&radius={km(float)}
	r.router.HandleFunc("/v1/benefits/coverage", r.benefitHandler.GetWeekdayCoverage).Methods(http.MethodGet)
	r.router.HandleFunc("/v1/benefits/{id}/days", r.benefitHandler.GetBenefitDays).Methods(http.MethodGet)

	r.router.HandleFunc("/v1/days/parse", r.daysHandler.ParseDays).Methods(http.MethodPost)
	r.router.HandleFunc("/v1/days/resolve", r.daysHandler.ResolveDays).Methods(http.MethodPost)

	r.router.HandleFunc("/ping", r.benefitHandler.Ping).Methods(http.MethodGet)
}
