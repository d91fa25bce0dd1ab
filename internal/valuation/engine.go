package valuation

import (
	"fmt"
	"math"
	"sort"
	"strconv"

	"github.com/ajharbinger/comps-mao-pipeline/internal/errors"
	"github.com/ajharbinger/comps-mao-pipeline/internal/models"
)

// Tier is one maximum-allowable-offer assumption
type Tier struct {
	Name string
	Pct  float64
}

// Config holds the valuation tables. It is injected at construction time
// so tests can substitute alternate rates and tiers.
type Config struct {
	RehabRates       map[string]float64 // $/sqft keyed by condition
	DefaultCondition string
	Tiers            []Tier // ordered; first tier is the fallback highlight
	CashDiscount     float64
}

// DefaultConfig returns the production rehab rates, MAO tiers and cash
// discount.
func DefaultConfig() Config {
	return Config{
		RehabRates: map[string]float64{
			"excellent": 20.0,
			"fair":      42.5,
			"poor":      85.0,
		},
		DefaultCondition: "fair",
		Tiers: []Tier{
			{Name: "aggressive", Pct: 0.65},
			{Name: "standard", Pct: 0.70},
			{Name: "hot", Pct: 0.75},
		},
		CashDiscount: 0.95,
	}
}

// Engine aggregates scored comparables into an ARV estimate, rehab cost,
// MAO tiers and a cash-disposition price
type Engine struct {
	cfg Config
}

// NewEngine creates a valuation engine with the given tables
func NewEngine(cfg Config) *Engine {
	return &Engine{cfg: cfg}
}

// Result holds the output of a valuation run
type Result struct {
	Comps          []models.Comparable
	Condition      string // condition actually applied (after defaulting)
	ARV            int64
	RehabCost      int64
	MAORows        []models.MAORow
	DispoPrice     int64
	HighlightTier  string // tier name actually applied
	HighlightLabel string // e.g. "65%"
	HighlightMAO   int64
}

// Run filters and ranks the comparables, derives ARV from the median
// $/sqft, applies the condition-keyed rehab table and computes each MAO
// tier plus the cash-disposition price. Comparables without a computable
// $/sqft never contribute; if none survive the run fails with an
// InsufficientData error rather than producing a degenerate ARV.
func (e *Engine) Run(subject models.Subject, comps []models.Comparable, condition string, assignmentFee int64, highlightTier string) (*Result, error) {
	survivors := make([]models.Comparable, 0, len(comps))
	for _, c := range comps {
		if c.HasPricePerSqFt() {
			survivors = append(survivors, c)
		}
	}
	if len(survivors) == 0 {
		return nil, errors.InsufficientData("no comparables with a computable $/sqft for " + subject.Address)
	}

	// Score descending, more recent sales first among equal scores
	sort.SliceStable(survivors, func(i, j int) bool {
		if survivors[i].Score != survivors[j].Score {
			return survivors[i].Score > survivors[j].Score
		}
		return survivors[i].DaysSinceSale < survivors[j].DaysSinceSale
	})

	medianPPSF := medianOf(survivors)
	arv := roundDollars(medianPPSF * float64(subject.SqFt))

	cond := condition
	rate, ok := e.cfg.RehabRates[cond]
	if !ok {
		cond = e.cfg.DefaultCondition
		rate = e.cfg.RehabRates[cond]
	}
	rehabCost := roundDollars(rate * float64(subject.SqFt))

	rows := make([]models.MAORow, 0, len(e.cfg.Tiers))
	for _, t := range e.cfg.Tiers {
		buyerMax := roundDollars(float64(arv)*t.Pct - float64(rehabCost))
		rows = append(rows, models.MAORow{
			Tier:        tierLabel(t),
			BuyerMax:    buyerMax,
			InvestorMAO: buyerMax - assignmentFee,
		})
	}

	dispoPrice := roundDollars(medianPPSF * e.cfg.CashDiscount * float64(subject.SqFt))

	// Unrecognized highlight names fall back to the first tier
	highlightIdx := 0
	applied := e.cfg.Tiers[0].Name
	for i, t := range e.cfg.Tiers {
		if t.Name == highlightTier {
			highlightIdx = i
			applied = t.Name
			break
		}
	}

	return &Result{
		Comps:          survivors,
		Condition:      cond,
		ARV:            arv,
		RehabCost:      rehabCost,
		MAORows:        rows,
		DispoPrice:     dispoPrice,
		HighlightTier:  applied,
		HighlightLabel: rows[highlightIdx].Tier,
		HighlightMAO:   rows[highlightIdx].InvestorMAO,
	}, nil
}

// Summary renders the one-line report text
func (r *Result) Summary() string {
	return fmt.Sprintf("ARV %s • Rehab (%s) %s • %s MAO %s • Dispo %s",
		FormatDollars(r.ARV), r.Condition, FormatDollars(r.RehabCost),
		r.HighlightLabel, FormatDollars(r.HighlightMAO), FormatDollars(r.DispoPrice))
}

func tierLabel(t Tier) string {
	return strconv.Itoa(int(math.RoundToEven(t.Pct*100))) + "%"
}

func medianOf(comps []models.Comparable) float64 {
	rates := make([]float64, len(comps))
	for i, c := range comps {
		rates[i] = c.PricePerSqFt
	}
	sort.Float64s(rates)
	mid := len(rates) / 2
	if len(rates)%2 == 0 {
		return (rates[mid-1] + rates[mid]) / 2
	}
	return rates[mid]
}

// roundDollars applies round-half-to-even, the rounding rule used on every
// final dollar figure. Intermediate ratios keep full precision.
func roundDollars(v float64) int64 {
	return int64(math.RoundToEven(v))
}

// FormatDollars renders a currency amount with thousands separators,
// e.g. -1234567 -> "$-1,234,567"
func FormatDollars(v int64) string {
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}
	digits := strconv.FormatInt(v, 10)
	var out []byte
	for i, d := range []byte(digits) {
		if i > 0 && (len(digits)-i)%3 == 0 {
			out = append(out, ',')
		}
		out = append(out, d)
	}
	return "$" + sign + string(out)
}
