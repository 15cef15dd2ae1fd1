// Copyright (c) 2026 Sabha. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package export

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/sabha/internal/platform/apperr"
	requestutil "github.com/taibuivan/sabha/internal/platform/request"
	"github.com/taibuivan/sabha/internal/platform/respond"
)

// Message bodies of the export endpoint, as shown by the console.
const (
	msgSent       = "मेल सफलतापूर्वक भेजा गया।"
	msgSendFailed = "मेल भेजने में त्रुटि हुई।"
	msgIncomplete = "All fields are required."
)

type messageResponse struct {
	Message string `json:"message"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Handler implements the HTTP layer for report export.
type Handler struct {
	service *Service
}

// NewHandler constructs a new export [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] with the export endpoint.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Post("/", handler.send)
	return router
}

// LegacyRoutes registers the export path of the existing console.
func (handler *Handler) LegacyRoutes(router chi.Router) {
	router.Post("/send-form", handler.send)
}

/*
POST /api/v1/export.

Description: Mails the posted rows as a CSV attachment.

Request (Body):
  - Request

Response:
  - 200: {message}
  - 400: {error} when name, rows, columns or keys are missing
  - 500: {error} when delivery fails
  - 503: {error} when mail is not configured
*/
func (handler *Handler) send(writer http.ResponseWriter, request *http.Request) {
	var body Request
	if err := requestutil.DecodeJSON(writer, request, &body); err != nil {
		respond.JSON(writer, http.StatusBadRequest, errorResponse{Error: msgIncomplete})
		return
	}

	err := handler.service.Send(request.Context(), body)
	switch {
	case err == nil:
		respond.JSON(writer, http.StatusOK, messageResponse{Message: msgSent})
	case apperr.IsAppError(err):
		respond.JSON(writer, http.StatusBadRequest, errorResponse{Error: msgIncomplete})
	case errors.Is(err, ErrSinkDisabled):
		respond.JSON(writer, http.StatusServiceUnavailable, errorResponse{Error: msgSendFailed})
	default:
		respond.Classify(request, err)
		respond.JSON(writer, http.StatusInternalServerError, errorResponse{Error: msgSendFailed})
	}
}
