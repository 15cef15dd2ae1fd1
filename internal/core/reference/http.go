// Copyright (c) 2026 Sabha. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package reference

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/sabha/internal/platform/apperr"
	requestutil "github.com/taibuivan/sabha/internal/platform/request"
	"github.com/taibuivan/sabha/internal/platform/respond"
)

// Handler implements the HTTP layer for reference listings.
type Handler struct {
	service *Service
}

// NewHandler constructs a new reference [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] with the read-only reference endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/all", handler.dropdowns)
	router.Get("/{type}", handler.list)
	router.Get("/{type}/{id}", handler.get)

	return router
}

// LegacyRoutes registers the dropdown paths used by the existing console. They
// answer with bare payloads instead of the data envelope. The prant and
// sanghatan lists go on public; the all-dropdowns payload goes on private.
func (handler *Handler) LegacyRoutes(public, private chi.Router) {
	private.Get("/all-dropdowns", func(writer http.ResponseWriter, request *http.Request) {
		result, err := handler.service.Dropdowns(request.Context())
		if err != nil {
			respond.Error(writer, request, err)
			return
		}
		respond.JSON(writer, http.StatusOK, result)
	})
	public.Get("/prants", handler.legacyList(Prant))
	public.Get("/sanghatan", handler.legacyList(Sanghatan))
}

func (handler *Handler) legacyList(variant Variant) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		entities, err := handler.service.List(request.Context(), variant)
		if err != nil {
			respond.Error(writer, request, err)
			return
		}
		respond.JSON(writer, http.StatusOK, entities)
	}
}

func variantParam(request *http.Request) (Variant, error) {
	variant, ok := ParseVariant(requestutil.Param(request, "type"))
	if !ok {
		return "", apperr.BadRequest("Invalid reference type")
	}
	return variant, nil
}

/*
GET /api/v1/reference/all.

Description: Every row of all six tables with its active flag, keyed by plural name.

Response:
  - 200: map[string][]Entity
*/
func (handler *Handler) dropdowns(writer http.ResponseWriter, request *http.Request) {
	result, err := handler.service.Dropdowns(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, result)
}

/*
GET /api/v1/reference/{type}.

Description: Every row of one table, ordered by name.

Request:
  - type: string (star, stars, prakar, ...)

Response:
  - 200: []Entity
  - 400: Unknown type
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	variant, err := variantParam(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	entities, err := handler.service.List(request.Context(), variant)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, entities)
}

/*
GET /api/v1/reference/{type}/{id}.

Response:
  - 200: Entity
  - 400: Unknown type or malformed id
  - 404: No such row
*/
func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	variant, err := variantParam(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	id, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	entity, err := handler.service.Get(request.Context(), variant, id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, entity)
}
