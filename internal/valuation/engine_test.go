package valuation

import (
	"testing"

	"github.com/ajharbinger/comps-mao-pipeline/internal/errors"
	"github.com/ajharbinger/comps-mao-pipeline/internal/models"
)

var testSubject = models.Subject{
	Address: "17155 Ventana Dr, Boca Raton, FL 33487",
	Beds:    3,
	Baths:   2,
	SqFt:    1627,
	Year:    1992,
}

// threeComps yields a $/sqft median of exactly 357.66
func threeComps() []models.Comparable {
	return []models.Comparable{
		{Address: "low", SoldPrice: 30000, SqFt: 100, PricePerSqFt: 300.00, Score: 90, DaysSinceSale: 40},
		{Address: "mid", SoldPrice: 35766, SqFt: 100, PricePerSqFt: 357.66, Score: 85, DaysSinceSale: 50},
		{Address: "high", SoldPrice: 40000, SqFt: 100, PricePerSqFt: 400.00, Score: 80, DaysSinceSale: 60},
	}
}

func TestRunFairCondition(t *testing.T) {
	engine := NewEngine(DefaultConfig())

	result, err := engine.Run(testSubject, threeComps(), "fair", 20000, "aggressive")
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	// median 357.66 * 1627 = 581912.82
	if result.ARV != 581913 {
		t.Errorf("Expected ARV 581913, got %d", result.ARV)
	}
	// 42.5 * 1627 = 69147.5, banker's rounding to the even neighbor
	if result.RehabCost != 69148 {
		t.Errorf("Expected rehab cost 69148, got %d", result.RehabCost)
	}
	// 357.66 * 0.95 * 1627
	if result.DispoPrice != 552817 {
		t.Errorf("Expected dispo price 552817, got %d", result.DispoPrice)
	}

	if len(result.MAORows) != 3 {
		t.Fatalf("Expected 3 MAO rows, got %d", len(result.MAORows))
	}

	wantRows := []models.MAORow{
		{Tier: "65%", BuyerMax: 309095, InvestorMAO: 289095},
		{Tier: "70%", BuyerMax: 338191, InvestorMAO: 318191},
		{Tier: "75%", BuyerMax: 367287, InvestorMAO: 347287},
	}
	for i, want := range wantRows {
		got := result.MAORows[i]
		if got != want {
			t.Errorf("MAO row %d = %+v, want %+v", i, got, want)
		}
	}

	if result.HighlightLabel != "65%" || result.HighlightMAO != 289095 {
		t.Errorf("Expected 65%% highlight MAO 289095, got %s / %d", result.HighlightLabel, result.HighlightMAO)
	}

	wantSummary := "ARV $581,913 • Rehab (fair) $69,148 • 65% MAO $289,095 • Dispo $552,817"
	if result.Summary() != wantSummary {
		t.Errorf("Summary = %q, want %q", result.Summary(), wantSummary)
	}
}

func TestRunExcludesCompsWithoutPPSF(t *testing.T) {
	engine := NewEngine(DefaultConfig())

	comps := threeComps()
	comps = append(comps, models.Comparable{Address: "no-area", SoldPrice: 900000, Score: 100})

	result, err := engine.Run(testSubject, comps, "fair", 20000, "aggressive")
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if len(result.Comps) != 3 {
		t.Fatalf("Expected the area-less comp to be excluded, got %d survivors", len(result.Comps))
	}
	// ARV unchanged by the excluded record
	if result.ARV != 581913 {
		t.Errorf("Expected ARV 581913, got %d", result.ARV)
	}
}

func TestRunInsufficientData(t *testing.T) {
	engine := NewEngine(DefaultConfig())

	comps := []models.Comparable{
		{Address: "no-area-1", SoldPrice: 500000},
		{Address: "no-area-2", SoldPrice: 600000},
	}

	_, err := engine.Run(testSubject, comps, "fair", 20000, "aggressive")
	if err == nil {
		t.Fatal("Expected InsufficientData error when no comps survive filtering")
	}
	if !errors.IsCode(err, errors.ErrCodeInsufficientData) {
		t.Errorf("Expected INSUFFICIENT_DATA code, got %s", errors.CodeOf(err))
	}
}

func TestRunSortsByScoreThenRecency(t *testing.T) {
	engine := NewEngine(DefaultConfig())

	comps := []models.Comparable{
		{Address: "old-high", PricePerSqFt: 300, Score: 90, DaysSinceSale: 30},
		{Address: "low", PricePerSqFt: 310, Score: 70, DaysSinceSale: 5},
		{Address: "new-high", PricePerSqFt: 320, Score: 90, DaysSinceSale: 10},
	}

	result, err := engine.Run(testSubject, comps, "fair", 20000, "aggressive")
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	wantOrder := []string{"new-high", "old-high", "low"}
	for i, addr := range wantOrder {
		if result.Comps[i].Address != addr {
			t.Errorf("Expected comp %d to be %s, got %s", i, addr, result.Comps[i].Address)
		}
	}
}

func TestRunConditionDefaults(t *testing.T) {
	engine := NewEngine(DefaultConfig())

	fair, err := engine.Run(testSubject, threeComps(), "fair", 20000, "aggressive")
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	luxury, err := engine.Run(testSubject, threeComps(), "luxury", 20000, "aggressive")
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	if luxury.RehabCost != fair.RehabCost {
		t.Errorf("Unrecognized condition should use the fair rate: got %d, want %d", luxury.RehabCost, fair.RehabCost)
	}
	if luxury.Condition != "fair" {
		t.Errorf("Expected applied condition to echo as fair, got %s", luxury.Condition)
	}
}

func TestRunRehabMonotonicInCondition(t *testing.T) {
	engine := NewEngine(DefaultConfig())

	var costs []int64
	for _, condition := range []string{"excellent", "fair", "poor"} {
		result, err := engine.Run(testSubject, threeComps(), condition, 20000, "aggressive")
		if err != nil {
			t.Fatalf("Run(%s) returned error: %v", condition, err)
		}
		costs = append(costs, result.RehabCost)
	}
	if !(costs[0] < costs[1] && costs[1] < costs[2]) {
		t.Errorf("Expected excellent < fair < poor rehab cost, got %v", costs)
	}
}

func TestRunBuyerMaxMonotonicInTier(t *testing.T) {
	engine := NewEngine(DefaultConfig())

	result, err := engine.Run(testSubject, threeComps(), "fair", 20000, "aggressive")
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	for i := 1; i < len(result.MAORows); i++ {
		if result.MAORows[i].BuyerMax <= result.MAORows[i-1].BuyerMax {
			t.Errorf("Expected buyer max to increase with tier percentage: %+v", result.MAORows)
		}
	}
}

func TestRunARVScalesWithSubjectArea(t *testing.T) {
	engine := NewEngine(DefaultConfig())

	comps := []models.Comparable{
		{Address: "only", PricePerSqFt: 300, Score: 90},
	}

	small := testSubject
	small.SqFt = 1000
	large := testSubject
	large.SqFt = 2000

	smallResult, err := engine.Run(small, comps, "fair", 20000, "aggressive")
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	largeResult, err := engine.Run(large, comps, "fair", 20000, "aggressive")
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	if largeResult.ARV != 2*smallResult.ARV {
		t.Errorf("Expected doubling area to double ARV: %d vs %d", smallResult.ARV, largeResult.ARV)
	}
}

func TestRunHighlightTierFallback(t *testing.T) {
	engine := NewEngine(DefaultConfig())

	tests := []struct {
		tier      string
		wantName  string
		wantLabel string
	}{
		{"aggressive", "aggressive", "65%"},
		{"standard", "standard", "70%"},
		{"hot", "hot", "75%"},
		{"unknown", "aggressive", "65%"},
		{"", "aggressive", "65%"},
	}

	for _, tt := range tests {
		t.Run(tt.tier, func(t *testing.T) {
			result, err := engine.Run(testSubject, threeComps(), "fair", 20000, tt.tier)
			if err != nil {
				t.Fatalf("Run returned error: %v", err)
			}
			if result.HighlightTier != tt.wantName || result.HighlightLabel != tt.wantLabel {
				t.Errorf("Highlight for %q = %s/%s, want %s/%s",
					tt.tier, result.HighlightTier, result.HighlightLabel, tt.wantName, tt.wantLabel)
			}
		})
	}
}

func TestRunWithCustomTables(t *testing.T) {
	cfg := Config{
		RehabRates:       map[string]float64{"any": 10.0},
		DefaultCondition: "any",
		Tiers:            []Tier{{Name: "only", Pct: 0.5}},
		CashDiscount:     0.9,
	}
	engine := NewEngine(cfg)

	subject := models.Subject{Address: "x", SqFt: 1000}
	comps := []models.Comparable{{Address: "c", PricePerSqFt: 200, Score: 50}}

	result, err := engine.Run(subject, comps, "any", 0, "only")
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if result.ARV != 200000 {
		t.Errorf("Expected ARV 200000, got %d", result.ARV)
	}
	if result.RehabCost != 10000 {
		t.Errorf("Expected rehab 10000, got %d", result.RehabCost)
	}
	if result.MAORows[0].Tier != "50%" || result.MAORows[0].BuyerMax != 90000 {
		t.Errorf("Unexpected tier row: %+v", result.MAORows[0])
	}
	if result.DispoPrice != 180000 {
		t.Errorf("Expected dispo 180000, got %d", result.DispoPrice)
	}
}

func TestMedianEvenCount(t *testing.T) {
	engine := NewEngine(DefaultConfig())

	subject := models.Subject{Address: "x", SqFt: 100}
	comps := []models.Comparable{
		{Address: "a", PricePerSqFt: 300, Score: 1},
		{Address: "b", PricePerSqFt: 400, Score: 2},
	}

	result, err := engine.Run(subject, comps, "fair", 0, "aggressive")
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	// median of {300, 400} is 350
	if result.ARV != 35000 {
		t.Errorf("Expected ARV 35000, got %d", result.ARV)
	}
}

func TestRoundDollarsHalfToEven(t *testing.T) {
	tests := []struct {
		in   float64
		want int64
	}{
		{69147.5, 69148},
		{69148.5, 69148},
		{2.5, 2},
		{3.5, 4},
		{-2.5, -2},
	}
	for _, tt := range tests {
		if got := roundDollars(tt.in); got != tt.want {
			t.Errorf("roundDollars(%v) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestFormatDollars(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "$0"},
		{999, "$999"},
		{1000, "$1,000"},
		{289095, "$289,095"},
		{1234567, "$1,234,567"},
		{-20000, "$-20,000"},
	}
	for _, tt := range tests {
		if got := FormatDollars(tt.in); got != tt.want {
			t.Errorf("FormatDollars(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
