// Copyright (c) 2026 Sabha. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package requestutil provides utilities for extracting data from HTTP requests.

It abstracts away the underlying router's parameter extraction and common
body decoding patterns, ensuring consistent error handling and type safety.
*/
package requestutil

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/sabha/internal/platform/apperr"
	"github.com/taibuivan/sabha/internal/platform/ctxutil"
	"github.com/taibuivan/sabha/internal/platform/sec"
	"github.com/taibuivan/sabha/internal/platform/validate"
	"github.com/taibuivan/sabha/pkg/convert"
	"github.com/taibuivan/sabha/pkg/uuidv7"
)

// maxJSONBody caps JSON payloads; the largest is an export of a full year.
const maxJSONBody = 4 << 20

/*
DecodeJSON reads the request body and decodes it into the target structure.

Parameters:
  - writer: http.ResponseWriter (needed by [http.MaxBytesReader])
  - request: *http.Request
  - target: any (pointer to the destination struct)

Returns:
  - error: validate.ErrInvalidJSON if decoding fails, otherwise nil
*/
func DecodeJSON(writer http.ResponseWriter, request *http.Request, target any) error {
	body := http.MaxBytesReader(writer, request.Body, maxJSONBody)
	if err := json.NewDecoder(body).Decode(target); err != nil {
		return validate.ErrInvalidJSON
	}
	return nil
}

/*
Param retrieves a named URL parameter from the request.
*/
func Param(request *http.Request, name string) string {
	return chi.URLParam(request, name)
}

/*
ID retrieves a named URL parameter and checks that it is a UUID.

Returns:
  - string: The identifier
  - error: apperr.BadRequest if malformed
*/
func ID(request *http.Request, name string) (string, error) {
	id := chi.URLParam(request, name)
	if !uuidv7.Valid(id) {
		return "", apperr.BadRequest("Invalid " + name)
	}
	return id, nil
}

/*
Year parses a named URL parameter as a calendar year.

Returns:
  - int: The year
  - error: apperr.BadRequest if the parameter is not an integer year
*/
func Year(request *http.Request, name string) (int, error) {
	year, err := convert.Year(chi.URLParam(request, name))
	if err != nil {
		return 0, apperr.BadRequest("Invalid year")
	}
	return year, nil
}

/*
RequiredClaims ensures the request is authenticated and returns the user claims.

Returns:
  - *sec.AuthClaims: The authenticated user claims
  - error: apperr.Unauthorized if the request is not authenticated
*/
func RequiredClaims(request *http.Request) (*sec.AuthClaims, error) {
	claims := ctxutil.GetAuthUser(request.Context())
	if claims == nil {
		return nil, apperr.Unauthorized("Authentication required")
	}
	return claims, nil
}
