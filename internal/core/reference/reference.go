// Copyright (c) 2026 Sabha. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package reference implements the Reference Directory: the six lookup tables that
attendance records point at (star, prakar, sanghatan, dayitva, kshetra, prant).

The tables are small and written only by migrations. The package exposes:

  - [Lookup]: exact-name resolution, backed by Postgres and optionally by Redis.
  - [Resolver]: a request-scoped memo over a [Lookup] used by ingestion and dashboards.
  - [Handler]: a read-only listing API for console dropdowns.
*/
package reference

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// # Variants

// Variant names one of the six reference tables.
type Variant string

const (
	Star      Variant = "star"
	Prakar    Variant = "prakar"
	Sanghatan Variant = "sanghatan"
	Dayitva   Variant = "dayitva"
	Kshetra   Variant = "kshetra"
	Prant     Variant = "prant"
)

// Variants lists every variant in the column order of an attendance record.
var Variants = []Variant{Star, Prakar, Sanghatan, Dayitva, Kshetra, Prant}

// ParseVariant accepts both the singular ("star") and plural ("stars") spelling.
func ParseVariant(s string) (Variant, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, variant := range Variants {
		if s == string(variant) || s == variant.Plural() {
			return variant, true
		}
	}
	return "", false
}

// Field is the attendance column referencing this variant (e.g. "star_id").
func (v Variant) Field() string {
	return string(v) + "_id"
}

// Plural is the route segment and JSON key used by the listing API.
func (v Variant) Plural() string {
	return string(v) + "s"
}

// # Entities

// Entity is one row of a reference table.
type Entity struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Active bool   `json:"active"`

	// KshetraID is only set for [Prant] rows.
	KshetraID string `json:"kshetra_id,omitempty"`
}

// Canonical returns the form under which names are stored and compared:
// surrounding whitespace removed and Unicode NFC applied, so that Devanagari
// typed with decomposed nukta sequences matches the seeded spelling.
func Canonical(name string) string {
	return norm.NFC.String(strings.TrimSpace(name))
}
