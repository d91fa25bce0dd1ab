package scoring

import (
	"fmt"
	"math"
	"strings"

	"github.com/ajharbinger/comps-mao-pipeline/internal/models"
)

// Penalty weights for the similarity formula. Each term is subtracted
// from a ceiling of 100.
const (
	recencyWeight  = 20.0
	recencyCapDays = 365.0
	sizeWeight     = 30.0
	bedWeight      = 8.0
	bathWeight     = 10.0
	yearWeight     = 10.0
	yearCapDiff    = 60.0
)

// Rationale flag thresholds
const (
	nearSizeTolerance = 0.10
	recentSaleDays    = 45
)

// Engine computes similarity scores between a subject property and
// comparable sales
type Engine struct{}

// NewEngine creates a new scoring engine instance
func NewEngine() *Engine {
	return &Engine{}
}

// Score returns an integer similarity score in [0, 100]. An identical
// comparable sold on the evaluation date scores exactly 100; the floor at
// zero is the only clamp applied.
func (e *Engine) Score(subject models.Subject, comp models.Comparable) int {
	days := float64(comp.DaysSinceSale)
	bedDiff := math.Abs(float64(comp.Beds - subject.Beds))
	bathDiff := math.Abs(comp.Baths - subject.Baths)

	yearDiff := 0.0
	if subject.Year != 0 && comp.Year != 0 {
		yearDiff = math.Abs(float64(comp.Year - subject.Year))
	}

	// max(1, sqft) on both operands guards log-of-zero
	compSqFt := float64(comp.SqFt)
	if compSqFt < 1 {
		compSqFt = 1
	}
	subjSqFt := float64(subject.SqFt)
	if subjSqFt < 1 {
		subjSqFt = 1
	}
	sizeTerm := math.Abs(math.Log(compSqFt / subjSqFt))

	score := 100 -
		recencyWeight*math.Min(days, recencyCapDays)/recencyCapDays -
		sizeWeight*sizeTerm -
		bedWeight*bedDiff -
		bathWeight*bathDiff -
		yearWeight*math.Min(yearDiff, yearCapDiff)/yearCapDiff

	rounded := int(math.RoundToEven(score))
	if rounded < 0 {
		return 0
	}
	return rounded
}

// Rationale returns up to three qualitative flags, evaluated in fixed
// priority order and joined with a bullet separator.
func (e *Engine) Rationale(subject models.Subject, comp models.Comparable) string {
	var flags []string
	if subject.SqFt > 0 && comp.SqFt > 0 &&
		math.Abs(float64(comp.SqFt-subject.SqFt))/float64(subject.SqFt) <= nearSizeTolerance {
		flags = append(flags, "near-size match")
	}
	if comp.Beds == subject.Beds {
		flags = append(flags, "same bed count")
	}
	if comp.Baths == subject.Baths {
		flags = append(flags, "same bath count")
	}
	if comp.DaysSinceSale <= recentSaleDays {
		flags = append(flags, fmt.Sprintf("%d-day recent sale", comp.DaysSinceSale))
	}
	if len(flags) > 3 {
		flags = flags[:3]
	}
	return strings.Join(flags, " • ")
}

// Annotate fills Score and Why for each comparable, preserving order
func (e *Engine) Annotate(subject models.Subject, comps []models.Comparable) []models.Comparable {
	out := make([]models.Comparable, len(comps))
	for i, c := range comps {
		c.Score = e.Score(subject, c)
		c.Why = e.Rationale(subject, c)
		out[i] = c
	}
	return out
}
