// Copyright (c) 2026 Sabha. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package ingest

import (
	"errors"
	"mime"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/sabha/internal/core/attendance"
	"github.com/taibuivan/sabha/internal/platform/constants"
	requestutil "github.com/taibuivan/sabha/internal/platform/request"
	"github.com/taibuivan/sabha/internal/platform/respond"
)

// Response bodies of the upload endpoint. Clients match on these shapes.
type (
	uploadedResponse struct {
		Message string `json:"message"`
		Count   int    `json:"count"`
	}

	mismatchResponse struct {
		Message string `json:"message"`
		HeaderMismatch
	}

	invalidRowsResponse struct {
		Message string      `json:"message"`
		Errors  []RowIssues `json:"errors"`
	}

	failureResponse struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}

	requestErrorResponse struct {
		Error string `json:"error"`
	}
)

// csvMediaTypes are the content types browsers and spreadsheet tools send for CSV files.
var csvMediaTypes = []string{"text/csv", "application/csv", "text/plain", "application/vnd.ms-excel"}

// Handler implements the HTTP layer for uploads.
type Handler struct {
	pipeline *Pipeline
	maxBytes int64
}

// NewHandler constructs a new ingestion [Handler]. A non-positive maxBytes
// falls back to [constants.MaxUploadBytes].
func NewHandler(pipeline *Pipeline, maxBytes int64) *Handler {
	if maxBytes <= 0 {
		maxBytes = constants.MaxUploadBytes
	}
	return &Handler{pipeline: pipeline, maxBytes: maxBytes}
}

// Routes returns a [chi.Router] with the upload endpoint.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Post("/{type}", handler.upload)
	return router
}

/*
POST /api/v1/upload/{type}.

Description: Ingests a CSV file (multipart field "file") into one population.
Nothing is stored unless every row is valid.

Request:
  - type: string (pratinidhi-sabha, prant-pracharak, karyakari-mandal)

Response:
  - 201: {message, count}
  - 400: {message, missingHeaders, extraHeaders} on a header mismatch
  - 400: {message, errors: [{row, issues}]} when any row is invalid
  - 400: {error} for a missing file, a non-CSV file or an unknown type
  - 413: {error} when the file exceeds the upload limit
  - 500: {message, error}
*/
func (handler *Handler) upload(writer http.ResponseWriter, request *http.Request) {

	// ── 1. File ───────────────────────────────────────────────────────────
	request.Body = http.MaxBytesReader(writer, request.Body, handler.maxBytes+(1<<20))
	if err := request.ParseMultipartForm(handler.maxBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respond.JSON(writer, http.StatusRequestEntityTooLarge, requestErrorResponse{Error: "File exceeds the upload limit"})
			return
		}
		respond.JSON(writer, http.StatusBadRequest, requestErrorResponse{Error: "No file uploaded"})
		return
	}
	defer func() { _ = request.MultipartForm.RemoveAll() }()

	file, fileHeader, err := request.FormFile(constants.UploadFormField)
	if err != nil {
		respond.JSON(writer, http.StatusBadRequest, requestErrorResponse{Error: "No file uploaded"})
		return
	}
	defer file.Close()

	if fileHeader.Size > handler.maxBytes {
		respond.JSON(writer, http.StatusRequestEntityTooLarge, requestErrorResponse{Error: "File exceeds the upload limit"})
		return
	}
	if !isCSV(fileHeader.Filename, fileHeader.Header.Get("Content-Type")) {
		respond.JSON(writer, http.StatusBadRequest, requestErrorResponse{Error: "Only CSV files are allowed"})
		return
	}

	// ── 2. Population ─────────────────────────────────────────────────────
	population, ok := attendance.ParsePopulation(requestutil.Param(request, "type"))
	if !ok {
		respond.JSON(writer, http.StatusBadRequest, requestErrorResponse{Error: "Invalid upload type"})
		return
	}

	// ── 3. Pipeline ───────────────────────────────────────────────────────
	outcome, err := handler.pipeline.Run(request.Context(), population, file)
	if err != nil {
		appError := respond.Classify(request, err)
		respond.JSON(writer, http.StatusInternalServerError, failureResponse{
			Message: "Error processing CSV file",
			Error:   appError.Message,
		})
		return
	}

	switch {
	case outcome.Mismatch != nil:
		respond.JSON(writer, http.StatusBadRequest, mismatchResponse{
			Message:        "Meeting type mismatch. Uploaded CSV does not match selected meeting format.",
			HeaderMismatch: *outcome.Mismatch,
		})
	case outcome.State == Rejected:
		respond.JSON(writer, http.StatusBadRequest, invalidRowsResponse{
			Message: "Validation errors in CSV file",
			Errors:  outcome.Errors,
		})
	default:
		respond.JSON(writer, http.StatusCreated, uploadedResponse{
			Message: "Users uploaded successfully",
			Count:   outcome.Count,
		})
	}
}

func isCSV(filename, contentType string) bool {
	if strings.EqualFold(filepath.Ext(filename), ".csv") {
		return true
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	for _, allowed := range csvMediaTypes {
		if mediaType == allowed {
			return true
		}
	}
	return false
}
