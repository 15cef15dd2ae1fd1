// Copyright (c) 2026 Sabha. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package dashboard

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/sabha/internal/core/attendance"
	"github.com/taibuivan/sabha/internal/platform/apperr"
	requestutil "github.com/taibuivan/sabha/internal/platform/request"
	"github.com/taibuivan/sabha/internal/platform/respond"
)

// Handler implements the HTTP layer for dashboards.
type Handler struct {
	engine *Engine
}

// NewHandler constructs a new dashboard [Handler].
func NewHandler(engine *Engine) *Handler {
	return &Handler{engine: engine}
}

// Routes returns a [chi.Router] with the dashboard endpoint.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Get("/{type}/{year}", handler.compute)
	return router
}

// LegacyRoutes registers the per-population dashboard paths of the existing console.
func (handler *Handler) LegacyRoutes(router chi.Router) {
	router.Get("/dashboard-data/{year}", handler.fixed(attendance.GeneralAssembly))
	router.Get("/dashboard-data-prant-pracharak-baithak/{year}", handler.fixed(attendance.ProvinceOrganizer))
	router.Get("/dashboard-data-karyakari-mandal/{year}", handler.fixed(attendance.WorkingCouncil))
}

func (handler *Handler) fixed(population attendance.Population) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		handler.serve(writer, request, population)
	}
}

/*
GET /api/v1/dashboard/{type}/{year}.

Description: The summary of one population for one year, as a flat object of
counts.

Request:
  - type: string (pratinidhi-sabha, prant-pracharak, karyakari-mandal)
  - year: int

Response:
  - 200: Summary
  - 400: Unknown type or malformed year
*/
func (handler *Handler) compute(writer http.ResponseWriter, request *http.Request) {
	population, ok := attendance.ParsePopulation(requestutil.Param(request, "type"))
	if !ok {
		respond.Error(writer, request, apperr.BadRequest("Invalid dashboard type"))
		return
	}
	handler.serve(writer, request, population)
}

func (handler *Handler) serve(writer http.ResponseWriter, request *http.Request, population attendance.Population) {
	year, err := requestutil.Year(request, "year")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	summary, err := handler.engine.Compute(request.Context(), population, year)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.JSON(writer, http.StatusOK, summary)
}
