package compsource

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
)

const sampleResultsHTML = `
<html><body>
<div class="sold-card">
  <address>17267 Ventana Dr, Boca Raton, FL 33487</address>
  <span>Sold: 2025-06-30</span>
  <span>$650,000</span>
  <span>3 bd 2 ba 1,820 sqft Built 1992</span>
</div>
<div class="sold-card">
  <address>17165 Balboa Point Way, Boca Raton, FL 33487</address>
  <span>Sold: 07/07/2025</span>
  <span>$800,000</span>
  <span>3 bd 2.5 ba 2,304 sqft Built 1992</span>
</div>
<div class="sold-card">
  <span>No address on this card</span>
  <span>Sold: 2025-03-07 $735,000</span>
</div>
<div class="sold-card">
  <address>No sold date here</address>
  <span>$500,000 3 bd 2 ba 1,500 sqft</span>
</div>
</body></html>`

func TestParseSoldListings(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(sampleResultsHTML))
	if err != nil {
		t.Fatalf("Failed to build document: %v", err)
	}

	parser := NewParser()
	comps := parser.ParseSoldListings(doc)

	// Cards missing an address or sold date are skipped
	if len(comps) != 2 {
		t.Fatalf("Expected 2 parsed comps, got %d", len(comps))
	}

	first := comps[0]
	if first.Address != "17267 Ventana Dr, Boca Raton, FL 33487" {
		t.Errorf("Unexpected address: %q", first.Address)
	}
	if first.SoldPrice != 650000 {
		t.Errorf("Expected price 650000, got %f", first.SoldPrice)
	}
	if first.SoldDate != "2025-06-30" {
		t.Errorf("Expected sold date 2025-06-30, got %q", first.SoldDate)
	}
	if first.Beds != 3 || first.Baths != 2 || first.SqFt != 1820 || first.Year != 1992 {
		t.Errorf("Unexpected attributes: %+v", first)
	}

	second := comps[1]
	if second.Baths != 2.5 {
		t.Errorf("Expected 2.5 baths, got %f", second.Baths)
	}
	if second.SqFt != 2304 {
		t.Errorf("Expected 2304 sqft, got %d", second.SqFt)
	}
	if second.SoldDate != "07/07/2025" {
		t.Errorf("Expected slash date preserved, got %q", second.SoldDate)
	}
}

func TestParseSoldListingsEmptyPage(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader("<html><body><p>No results</p></body></html>"))
	if err != nil {
		t.Fatalf("Failed to build document: %v", err)
	}

	parser := NewParser()
	if comps := parser.ParseSoldListings(doc); len(comps) != 0 {
		t.Errorf("Expected no comps from empty page, got %d", len(comps))
	}
}
