package models

import "time"

// Subject represents the property being valued
type Subject struct {
	Address string  `json:"address"`
	Beds    int     `json:"beds"`
	Baths   float64 `json:"baths"`
	SqFt    int     `json:"sqft"`
	Year    int     `json:"year,omitempty"`
}

// Comparable represents a comparable sale record. The raw fields come from
// the comp source; DaysSinceSale, PricePerSqFt, Score, Why and CashStatus
// are filled in by the normalizer, scorer and verifier.
type Comparable struct {
	Address   string  `json:"address"`
	SoldPrice float64 `json:"sold_price"`
	SoldDate  string  `json:"sold_date"`
	Beds      int     `json:"beds"`
	Baths     float64 `json:"baths"`
	SqFt      int     `json:"sqft"`
	Year      int     `json:"year,omitempty"`

	DaysSinceSale int     `json:"days_since_sale"`
	PricePerSqFt  float64 `json:"ppsf"` // 0 means not computable
	Score         int     `json:"score"`
	Why           string  `json:"why"`
	CashStatus    string  `json:"cash_status"`
}

// HasPricePerSqFt reports whether the $/sqft figure could be computed.
// Sold prices are required positive, so zero is unambiguous.
func (c *Comparable) HasPricePerSqFt() bool {
	return c.PricePerSqFt > 0
}

// MAORow is one maximum-allowable-offer tier result
type MAORow struct {
	Tier        string `json:"tier"`
	BuyerMax    int64  `json:"buyer_max"`
	InvestorMAO int64  `json:"your_mao"`
}

// CompPacket is the full valuation result returned to callers and handed
// to the report renderer
type CompPacket struct {
	Subject       Subject      `json:"subject"`
	Condition     string       `json:"condition"`
	AssignmentFee int64        `json:"assignment_fee"`
	HighlightTier string       `json:"highlight_tier"`
	Comps         []Comparable `json:"comps"`
	ARV           int64        `json:"arv"`
	RehabCost     int64        `json:"rehab_cost"`
	MAORows       []MAORow     `json:"mao_rows"`
	DispoPrice    int64        `json:"dispo_price"`
	HighlightMAO  int64        `json:"highlight_mao"`
	Summary       string       `json:"summary"`
	GeneratedAt   time.Time    `json:"generated_at"`
}
