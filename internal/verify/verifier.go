package verify

import (
	"context"

	"github.com/ajharbinger/comps-mao-pipeline/internal/models"
)

// Cash-sale verification statuses. The valuation core treats the tag as
// opaque metadata passed through to the report.
const (
	StatusPending   = "Pending"
	StatusConfirmed = "Confirmed"
)

// Verifier checks whether a comparable was a true cash sale
type Verifier interface {
	VerifyCashSale(ctx context.Context, comp models.Comparable) (string, error)
}

// PendingVerifier is the deed/mortgage-check hook. A real implementation
// would query county clerk records; until then every comp is Pending.
type PendingVerifier struct{}

// NewPendingVerifier creates the stub verifier
func NewPendingVerifier() *PendingVerifier {
	return &PendingVerifier{}
}

// VerifyCashSale always reports Pending
func (v *PendingVerifier) VerifyCashSale(ctx context.Context, comp models.Comparable) (string, error) {
	return StatusPending, nil
}

// Apply tags each comparable with its verification status
func Apply(ctx context.Context, verifier Verifier, comps []models.Comparable) ([]models.Comparable, error) {
	out := make([]models.Comparable, len(comps))
	for i, c := range comps {
		status, err := verifier.VerifyCashSale(ctx, c)
		if err != nil {
			return nil, err
		}
		c.CashStatus = status
		out[i] = c
	}
	return out, nil
}
