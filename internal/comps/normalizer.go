package comps

import (
	"time"

	"github.com/ajharbinger/comps-mao-pipeline/internal/errors"
	"github.com/ajharbinger/comps-mao-pipeline/internal/models"
)

// soldDateLayouts are the accepted sold-date formats, tried in order
var soldDateLayouts = []string{
	"2006-01-02",
	"01/02/2006",
	"January 2, 2006",
	time.RFC3339,
}

// Normalizer augments raw comparable sales with derived fields. Now is
// injectable so tests can pin the evaluation date; it defaults to the
// current UTC time.
type Normalizer struct {
	Now func() time.Time
}

// NewNormalizer creates a normalizer using the real clock
func NewNormalizer() *Normalizer {
	return &Normalizer{Now: func() time.Time { return time.Now().UTC() }}
}

// Normalize fills in DaysSinceSale and PricePerSqFt for each comparable.
// Input order is preserved and no other fields are touched. A sold date
// that cannot be interpreted aborts the whole batch with a ParseError.
func (n *Normalizer) Normalize(comps []models.Comparable) ([]models.Comparable, error) {
	out := make([]models.Comparable, len(comps))
	for i, c := range comps {
		days, err := n.DaysSince(c.SoldDate)
		if err != nil {
			return nil, err
		}
		c.DaysSinceSale = days
		if c.SqFt > 0 {
			c.PricePerSqFt = c.SoldPrice / float64(c.SqFt)
		}
		out[i] = c
	}
	return out, nil
}

// DaysSince returns the non-negative number of calendar days between the
// sold date and the current UTC date.
func (n *Normalizer) DaysSince(soldDate string) (int, error) {
	sold, err := parseSoldDate(soldDate)
	if err != nil {
		return 0, err
	}
	today := truncateToDate(n.Now().UTC())
	days := int(today.Sub(sold).Hours() / 24)
	if days < 0 {
		days = 0
	}
	return days, nil
}

func parseSoldDate(value string) (time.Time, error) {
	var lastErr error
	for _, layout := range soldDateLayouts {
		t, err := time.Parse(layout, value)
		if err == nil {
			return truncateToDate(t), nil
		}
		lastErr = err
	}
	return time.Time{}, errors.ParseError("cannot parse sold date "+value, lastErr)
}

func truncateToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
