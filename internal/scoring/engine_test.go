package scoring

import (
	"testing"

	"github.com/ajharbinger/comps-mao-pipeline/internal/models"
)

var testSubject = models.Subject{
	Address: "17155 Ventana Dr, Boca Raton, FL 33487",
	Beds:    3,
	Baths:   2,
	SqFt:    1627,
	Year:    1992,
}

// identicalComp matches the subject on every scored dimension
func identicalComp() models.Comparable {
	return models.Comparable{
		Address:       "17267 Ventana Dr, Boca Raton, FL 33487",
		SoldPrice:     650000,
		Beds:          3,
		Baths:         2,
		SqFt:          1627,
		Year:          1992,
		DaysSinceSale: 0,
	}
}

func TestScoreIdenticalComp(t *testing.T) {
	engine := NewEngine()

	if got := engine.Score(testSubject, identicalComp()); got != 100 {
		t.Errorf("Expected identical comp sold today to score 100, got %d", got)
	}
}

func TestScorePenalties(t *testing.T) {
	engine := NewEngine()

	tests := []struct {
		name   string
		mutate func(*models.Comparable)
		want   int
	}{
		{"year old sale", func(c *models.Comparable) { c.DaysSinceSale = 365 }, 80},
		{"recency penalty capped at a year", func(c *models.Comparable) { c.DaysSinceSale = 900 }, 80},
		{"one extra bedroom", func(c *models.Comparable) { c.Beds = 4 }, 92},
		{"half bath difference", func(c *models.Comparable) { c.Baths = 2.5 }, 95},
		{"thirty years newer", func(c *models.Comparable) { c.Year = 2022 }, 95},
		{"year penalty capped at sixty", func(c *models.Comparable) { c.Year = 1900 }, 90},
		{"unknown comp year skips year term", func(c *models.Comparable) { c.Year = 0 }, 100},
		{"double the size", func(c *models.Comparable) { c.SqFt = 3254 }, 79},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			comp := identicalComp()
			tt.mutate(&comp)
			if got := engine.Score(testSubject, comp); got != tt.want {
				t.Errorf("Score = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestScoreFlooredAtZero(t *testing.T) {
	engine := NewEngine()

	comp := identicalComp()
	comp.Beds = 20
	comp.Baths = 12
	comp.DaysSinceSale = 900

	if got := engine.Score(testSubject, comp); got != 0 {
		t.Errorf("Expected dissimilar comp to floor at 0, got %d", got)
	}
}

func TestScoreUnknownSubjectYear(t *testing.T) {
	engine := NewEngine()

	subject := testSubject
	subject.Year = 0
	comp := identicalComp()
	comp.Year = 1900 // would cost 10 points if both years were known

	if got := engine.Score(subject, comp); got != 100 {
		t.Errorf("Expected no year penalty when subject year unknown, got %d", got)
	}
}

func TestRationaleFlags(t *testing.T) {
	engine := NewEngine()

	tests := []struct {
		name   string
		mutate func(*models.Comparable)
		want   string
	}{
		{
			"all four applicable keeps first three",
			func(c *models.Comparable) {},
			"near-size match • same bed count • same bath count",
		},
		{
			"recent sale shows day count",
			func(c *models.Comparable) { c.Beds = 4; c.SqFt = 2200; c.DaysSinceSale = 10 },
			"same bath count • 10-day recent sale",
		},
		{
			"size within ten percent",
			func(c *models.Comparable) { c.SqFt = 1750; c.Beds = 4; c.Baths = 3; c.DaysSinceSale = 100 },
			"near-size match",
		},
		{
			"size just over ten percent",
			func(c *models.Comparable) { c.SqFt = 1800; c.Beds = 4; c.Baths = 3; c.DaysSinceSale = 100 },
			"",
		},
		{
			"forty-six day sale is not recent",
			func(c *models.Comparable) { c.SqFt = 2200; c.Beds = 4; c.Baths = 3; c.DaysSinceSale = 46 },
			"",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			comp := identicalComp()
			tt.mutate(&comp)
			if got := engine.Rationale(testSubject, comp); got != tt.want {
				t.Errorf("Rationale = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestAnnotatePreservesOrder(t *testing.T) {
	engine := NewEngine()

	comps := []models.Comparable{
		{Address: "A", SqFt: 1627, Beds: 3, Baths: 2, Year: 1992},
		{Address: "B", SqFt: 2304, Beds: 3, Baths: 2.5, Year: 1992, DaysSinceSale: 39},
	}

	out := engine.Annotate(testSubject, comps)
	if len(out) != 2 {
		t.Fatalf("Expected 2 comps, got %d", len(out))
	}
	if out[0].Address != "A" || out[1].Address != "B" {
		t.Error("Annotate must preserve input order")
	}
	for _, c := range out {
		if c.Score < 0 || c.Score > 100 {
			t.Errorf("Score %d for %s out of [0,100]", c.Score, c.Address)
		}
	}
}
