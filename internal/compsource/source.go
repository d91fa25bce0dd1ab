package compsource

import (
	"context"

	"github.com/ajharbinger/comps-mao-pipeline/internal/models"
)

// Source supplies raw comparable sales for an address. Implementations may
// be a static fixture or a live portal lookup; derived fields are left for
// the normalizer.
type Source interface {
	FetchComparables(ctx context.Context, address string) ([]models.Comparable, error)
	Kind() string
}

// FixtureSource serves a fixed set of sold records so the flow works
// without portal credentials.
type FixtureSource struct{}

// NewFixtureSource creates the static comp source
func NewFixtureSource() *FixtureSource {
	return &FixtureSource{}
}

// Kind identifies the source in health output
func (s *FixtureSource) Kind() string { return "fixture" }

// FetchComparables returns the stub records regardless of address
func (s *FixtureSource) FetchComparables(ctx context.Context, address string) ([]models.Comparable, error) {
	return []models.Comparable{
		{
			Address:   "17267 Ventana Dr, Boca Raton, FL 33487",
			SoldPrice: 650000,
			SoldDate:  "2025-06-30",
			Beds:      3,
			Baths:     2,
			SqFt:      1820,
			Year:      1992,
		},
		{
			Address:   "17165 Balboa Point Way, Boca Raton, FL 33487",
			SoldPrice: 800000,
			SoldDate:  "2025-07-07",
			Beds:      3,
			Baths:     2.5,
			SqFt:      2304,
			Year:      1992,
		},
		{
			Address:   "17357 Balboa Point Way, Boca Raton, FL 33487",
			SoldPrice: 735000,
			SoldDate:  "2025-03-07",
			Beds:      4,
			Baths:     2,
			SqFt:      2013,
			Year:      1992,
		},
	}, nil
}
