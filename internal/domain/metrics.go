package domain

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Band is the qualitative tier derived from a percentage. It is
// presentational metadata only and never participates in filtering or
// sorting.
type Band string

const (
	BandGood   Band = "good"
	BandMedium Band = "medium"
	BandLow    Band = "low"
)

// Percent carries a percentage-correct value rounded to one decimal place.
// Valid is false when no percentage applies (zero or absent question count),
// which callers must render distinctly from a genuine 0.0%.
type Percent struct {
	Value float64
	Valid bool
}

// ComputePercent derives the percentage of correct answers from the raw
// count fields. Unparsable counts behave as zero, so a record with garbage
// in its question column yields the not-applicable sentinel rather than an
// error.
func ComputePercent(correct, questions string) Percent {
	total := parseCount(questions)
	if total <= 0 {
		return Percent{}
	}
	value := float64(parseCount(correct)) / float64(total) * 100
	return Percent{Value: math.Round(value*10) / 10, Valid: true}
}

// Band places the percentage into its qualitative tier. The zero Percent has
// no band.
func (p Percent) Band() Band {
	switch {
	case !p.Valid:
		return ""
	case p.Value >= 70:
		return BandGood
	case p.Value >= 50:
		return BandMedium
	default:
		return BandLow
	}
}

// String renders "72.5%" for valid percentages and the "-" placeholder
// otherwise, matching how absent attributes display in the listing.
func (p Percent) String() string {
	if !p.Valid {
		return "-"
	}
	return fmt.Sprintf("%.1f%%", p.Value)
}

func parseCount(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0
	}
	return n
}
