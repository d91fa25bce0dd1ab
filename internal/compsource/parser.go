package compsource

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/ajharbinger/comps-mao-pipeline/internal/models"
)

// Parser extracts sold-listing records from portal result pages. Portals
// shuffle their markup regularly, so extraction works from card text with
// regex patterns rather than brittle deep selectors.
type Parser struct{}

// NewParser creates a new parser instance
func NewParser() *Parser {
	return &Parser{}
}

var (
	pricePattern = regexp.MustCompile(`\$([\d,]+)`)
	soldPattern  = regexp.MustCompile(`(?i)sold[:\s]+(\d{4}-\d{2}-\d{2}|\d{2}/\d{2}/\d{4}|[A-Z][a-z]+ \d{1,2}, \d{4})`)
	bedsPattern  = regexp.MustCompile(`(?i)(\d+)\s*(?:bd|bds|bed|beds)\b`)
	bathsPattern = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*(?:ba|bath|baths)\b`)
	sqftPattern  = regexp.MustCompile(`(?i)([\d,]+)\s*(?:sqft|sq\.?\s*ft)`)
	yearPattern  = regexp.MustCompile(`(?i)(?:built|yr)\s*[: ]?\s*(\d{4})`)
)

// cardSelectors are tried in order until one matches anything
var cardSelectors = []string{
	"[data-testid='sold-card']",
	".sold-card",
	".property-card",
	"li.result",
	"article",
}

// ParseSoldListings extracts comparable sales from a search-results page.
// Cards missing a price or address are skipped; missing beds/baths/sqft
// default to zero and are handled downstream.
func (p *Parser) ParseSoldListings(doc *goquery.Document) []models.Comparable {
	var comps []models.Comparable

	for _, selector := range cardSelectors {
		sel := doc.Find(selector)
		if sel.Length() == 0 {
			continue
		}
		sel.Each(func(i int, s *goquery.Selection) {
			if comp, ok := p.parseCard(s); ok {
				comps = append(comps, comp)
			}
		})
		break
	}
	return comps
}

func (p *Parser) parseCard(s *goquery.Selection) (models.Comparable, bool) {
	text := strings.Join(strings.Fields(s.Text()), " ")

	address := strings.TrimSpace(s.Find("address, .address, [data-testid='address']").First().Text())
	if address == "" {
		return models.Comparable{}, false
	}

	m := pricePattern.FindStringSubmatch(text)
	if m == nil {
		return models.Comparable{}, false
	}
	price, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", ""), 64)
	if err != nil || price <= 0 {
		return models.Comparable{}, false
	}

	comp := models.Comparable{
		Address:   address,
		SoldPrice: price,
	}

	if m := soldPattern.FindStringSubmatch(text); m != nil {
		comp.SoldDate = m[1]
	}
	if m := bedsPattern.FindStringSubmatch(text); m != nil {
		comp.Beds, _ = strconv.Atoi(m[1])
	}
	if m := bathsPattern.FindStringSubmatch(text); m != nil {
		comp.Baths, _ = strconv.ParseFloat(m[1], 64)
	}
	if m := sqftPattern.FindStringSubmatch(text); m != nil {
		comp.SqFt, _ = strconv.Atoi(strings.ReplaceAll(m[1], ",", ""))
	}
	if m := yearPattern.FindStringSubmatch(text); m != nil {
		comp.Year, _ = strconv.Atoi(m[1])
	}

	// A card with no sold date cannot produce a days-since-sale figure
	if comp.SoldDate == "" {
		return models.Comparable{}, false
	}
	return comp, true
}
