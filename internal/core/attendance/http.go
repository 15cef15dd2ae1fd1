// Copyright (c) 2026 Sabha. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package attendance

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/sabha/internal/platform/apperr"
	requestutil "github.com/taibuivan/sabha/internal/platform/request"
	"github.com/taibuivan/sabha/internal/platform/respond"
)

// SaveResponse is the body returned by the add/update form.
type SaveResponse struct {
	Message string  `json:"message"`
	User    *Record `json:"user"`
}

// Handler implements the HTTP layer for attendance records.
type Handler struct {
	service *Service
}

// NewHandler constructs a new attendance [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] for the population-addressed endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Route("/{type}", func(populationRoute chi.Router) {
		populationRoute.Post("/", handler.save)
		populationRoute.Get("/year/{year}", handler.listByYear)
		populationRoute.Get("/prant/{id}", handler.listByPrant)
		populationRoute.Get("/sanghatan/{id}", handler.listBySanghatan)
		populationRoute.Get("/{id}", handler.get)
	})

	return router
}

// LegacyRoutes registers the per-population paths used by the existing console.
func (handler *Handler) LegacyRoutes(router chi.Router) {
	fixed := func(population Population, next http.HandlerFunc) http.HandlerFunc {
		return func(writer http.ResponseWriter, request *http.Request) {
			next(writer, request.WithContext(withPopulation(request.Context(), population)))
		}
	}

	router.Get("/all-users/{year}", fixed(GeneralAssembly, handler.listByYear))
	router.Get("/all-users-prant-pracharak/{year}", fixed(ProvinceOrganizer, handler.listByYear))
	router.Get("/all-abkm-users/{year}", fixed(WorkingCouncil, handler.listByYear))

	router.Get("/prant/{id}", fixed(GeneralAssembly, handler.listByPrant))
	router.Get("/sanghatan/{id}", fixed(GeneralAssembly, handler.listBySanghatan))

	router.Post("/add-pratinidhi-user", fixed(GeneralAssembly, handler.save))
	router.Post("/add-prant-pracharak-user", fixed(ProvinceOrganizer, handler.save))
	router.Post("/add-abkm-user", fixed(WorkingCouncil, handler.save))
}

// populationFromRequest reads the population fixed by a legacy route, or the {type} parameter.
func populationFromRequest(request *http.Request) (Population, error) {
	if population, ok := populationFromContext(request.Context()); ok {
		return population, nil
	}
	population, ok := ParsePopulation(requestutil.Param(request, "type"))
	if !ok {
		return "", apperr.BadRequest("Invalid population type")
	}
	return population, nil
}

/*
POST /api/v1/attendance/{type}.

Description: Adds a record, or replaces one when the body carries an id.
The record year is always the current calendar year.

Request (Body):
  - Input (flags as top-level keys)

Response:
  - 201: SaveResponse ("User added successfully")
  - 200: SaveResponse ("User updated successfully")
  - 400: Validation failure
  - 404: Unknown id
*/
func (handler *Handler) save(writer http.ResponseWriter, request *http.Request) {
	population, err := populationFromRequest(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input Input
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	record, created, err := handler.service.Save(request.Context(), population, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if created {
		respond.JSON(writer, http.StatusCreated, SaveResponse{Message: "User added successfully", User: record})
		return
	}
	respond.JSON(writer, http.StatusOK, SaveResponse{Message: "User updated successfully", User: record})
}

/*
GET /api/v1/attendance/{type}/{id}.

Response:
  - 200: Record
  - 404: Unknown id
*/
func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	population, err := populationFromRequest(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	id, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	record, err := handler.service.Get(request.Context(), population, id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, record)
}

/*
GET /api/v1/attendance/{type}/year/{year}.

Description: Every record of a year with reference names resolved.
The body is a bare array, which is what the console tables consume.

Response:
  - 200: []View
  - 400: Invalid year
*/
func (handler *Handler) listByYear(writer http.ResponseWriter, request *http.Request) {
	year, err := requestutil.Year(request, "year")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	handler.list(writer, request, ListQuery{Year: year})
}

/*
GET /api/v1/attendance/{type}/prant/{id}.
*/
func (handler *Handler) listByPrant(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	handler.list(writer, request, ListQuery{PrantID: id})
}

/*
GET /api/v1/attendance/{type}/sanghatan/{id}.
*/
func (handler *Handler) listBySanghatan(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	handler.list(writer, request, ListQuery{SanghatanID: id})
}

func (handler *Handler) list(writer http.ResponseWriter, request *http.Request, query ListQuery) {
	population, err := populationFromRequest(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	views, err := handler.service.List(request.Context(), population, query)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.JSON(writer, http.StatusOK, views)
}
