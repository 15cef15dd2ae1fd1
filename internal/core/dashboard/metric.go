// Copyright (c) 2026 Sabha. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package dashboard computes the per-year attendance summaries.

Every number on a dashboard is a [Metric]: a declarative description of which
records it counts, written in reference names rather than ids. The [Engine]
resolves the names through a request-scoped resolver and counts each metric
with its own query, concurrently. There is no per-metric code.

Names that do not resolve never fail a dashboard. A role set loses the missing
names, a star/prakar pair with a missing member counts zero, and each term of a
[Sum] degrades on its own.
*/
package dashboard

import "github.com/taibuivan/sabha/internal/core/attendance"

// Kind selects how a [Metric] builds its filter.
type Kind int

const (
	// KindTotal counts every record of the year.
	KindTotal Kind = iota
	// KindDayitvaSet counts records whose dayitva is one of a set of names.
	KindDayitvaSet
	// KindStar counts records of one star.
	KindStar
	// KindStarPrakar counts records of one (star, prakar) pair.
	KindStarPrakar
	// KindStarDayitva counts records of one (star, dayitva) pair.
	KindStarDayitva
	// KindGender counts records of one gender.
	KindGender
	// KindFlagAny counts records with at least one of a set of meeting flags.
	KindFlagAny
	// KindSum adds the counts of independently evaluated terms.
	KindSum
)

// Metric is one named number of a dashboard.
type Metric struct {
	Key  string
	Kind Kind

	Dayitvas []string
	Star     string
	Prakar   string
	Dayitva  string
	Gender   attendance.Gender
	Flags    []string
	Terms    []Metric
}

// Total counts the records of the year.
func Total(key string) Metric {
	return Metric{Key: key, Kind: KindTotal}
}

// DayitvaSet counts records holding any of the named roles.
func DayitvaSet(key string, dayitvas ...string) Metric {
	return Metric{Key: key, Kind: KindDayitvaSet, Dayitvas: dayitvas}
}

// Star counts records of one star.
func Star(key, star string) Metric {
	return Metric{Key: key, Kind: KindStar, Star: star}
}

// StarPrakar counts records of one star and prakar.
func StarPrakar(key, star, prakar string) Metric {
	return Metric{Key: key, Kind: KindStarPrakar, Star: star, Prakar: prakar}
}

// StarDayitva counts records of one star holding one role.
func StarDayitva(key, star, dayitva string) Metric {
	return Metric{Key: key, Kind: KindStarDayitva, Star: star, Dayitva: dayitva}
}

// GenderCount counts records of one gender.
func GenderCount(key string, gender attendance.Gender) Metric {
	return Metric{Key: key, Kind: KindGender, Gender: gender}
}

// FlagAny counts records that attended at least one of the named meetings.
func FlagAny(key string, flags ...string) Metric {
	return Metric{Key: key, Kind: KindFlagAny, Flags: flags}
}

// Sum adds independently counted terms. Term keys are only used in logs.
func Sum(key string, terms ...Metric) Metric {
	return Metric{Key: key, Kind: KindSum, Terms: terms}
}
