// Copyright (c) 2026 Sabha. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package admin

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/sabha/internal/platform/middleware"
	requestutil "github.com/taibuivan/sabha/internal/platform/request"
	"github.com/taibuivan/sabha/internal/platform/respond"
	"github.com/taibuivan/sabha/internal/platform/sec"
)

type deletedResponse struct {
	Message string `json:"message"`
}

// Handler implements the HTTP layer for settings and submissions.
type Handler struct {
	service *Service
}

// NewHandler constructs a new admin [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Register mounts the endpoints on router. Setting mutations need the admin role.
func (handler *Handler) Register(router chi.Router) {
	router.Get("/setting", handler.listSettings)
	router.Group(func(adminOnly chi.Router) {
		adminOnly.Use(middleware.RequireRole(sec.RoleAdmin))
		adminOnly.Post("/setting", handler.createSetting)
		adminOnly.Put("/setting/{id}", handler.updateSetting)
		adminOnly.Delete("/setting/{id}", handler.deleteSetting)
	})

	router.Get("/submitted", handler.listSubmissions)
	router.Post("/submitted", handler.createSubmission)
}

/*
GET /setting.

Response:
  - 200: []Setting
*/
func (handler *Handler) listSettings(writer http.ResponseWriter, request *http.Request) {
	settings, err := handler.service.ListSettings(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.JSON(writer, http.StatusOK, settings)
}

/*
POST /setting.

Request (Body):
  - any JSON object, stored as is

Response:
  - 201: Setting
  - 400: Body is not a JSON object
  - 403: Caller is not an admin
*/
func (handler *Handler) createSetting(writer http.ResponseWriter, request *http.Request) {
	var value json.RawMessage
	if err := requestutil.DecodeJSON(writer, request, &value); err != nil {
		respond.Error(writer, request, err)
		return
	}

	setting, err := handler.service.CreateSetting(request.Context(), value)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.JSON(writer, http.StatusCreated, setting)
}

/*
PUT /setting/{id}.

Response:
  - 200: Setting
  - 404: Setting not found
*/
func (handler *Handler) updateSetting(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var value json.RawMessage
	if err := requestutil.DecodeJSON(writer, request, &value); err != nil {
		respond.Error(writer, request, err)
		return
	}

	setting, err := handler.service.UpdateSetting(request.Context(), id, value)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.JSON(writer, http.StatusOK, setting)
}

/*
DELETE /setting/{id}.

Response:
  - 200: {message}
  - 404: Setting not found
*/
func (handler *Handler) deleteSetting(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteSetting(request.Context(), id); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.JSON(writer, http.StatusOK, deletedResponse{Message: "Deleted successfully"})
}

/*
GET /submitted.

Response:
  - 200: []Submission
*/
func (handler *Handler) listSubmissions(writer http.ResponseWriter, request *http.Request) {
	submissions, err := handler.service.ListSubmissions(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.JSON(writer, http.StatusOK, submissions)
}

/*
POST /submitted.

Description: Appends to the submission log. When the body names no system
user, the authenticated caller is recorded.

Response:
  - 201: Submission
  - 400: Missing fields
*/
func (handler *Handler) createSubmission(writer http.ResponseWriter, request *http.Request) {
	var input SubmissionInput
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if input.SystemUserID == "" {
		if claims, err := requestutil.RequiredClaims(request); err == nil {
			input.SystemUserID = claims.UserID
		}
	}

	submission, err := handler.service.CreateSubmission(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.JSON(writer, http.StatusCreated, submission)
}
