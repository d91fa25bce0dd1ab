package main

import (
	"context"
	"fmt"
	"log"

	"github.com/ajharbinger/comps-mao-pipeline/internal/comps"
	"github.com/ajharbinger/comps-mao-pipeline/internal/compsource"
	"github.com/ajharbinger/comps-mao-pipeline/internal/models"
	"github.com/ajharbinger/comps-mao-pipeline/internal/scoring"
	"github.com/ajharbinger/comps-mao-pipeline/internal/valuation"
)

func main() {
	fmt.Println("🏠 Comp Packet Valuation Engine Test")
	fmt.Println("====================================")

	subject := models.Subject{
		Address: "17155 Ventana Dr, Boca Raton, FL 33487",
		Beds:    3,
		Baths:   2,
		SqFt:    1627,
		Year:    1992,
	}

	source := compsource.NewFixtureSource()
	raw, err := source.FetchComparables(context.Background(), subject.Address)
	if err != nil {
		log.Fatalf("Error fetching comps: %v", err)
	}

	normalizer := comps.NewNormalizer()
	normalized, err := normalizer.Normalize(raw)
	if err != nil {
		log.Fatalf("Error normalizing comps: %v", err)
	}

	scorer := scoring.NewEngine()
	annotated := scorer.Annotate(subject, normalized)

	fmt.Println("\n🔹 Scored Comparables")
	fmt.Println("=====================")
	for _, c := range annotated {
		fmt.Printf("Score %3d | %s | sold %s (%d days) | $%.0f/sf | %s\n",
			c.Score, c.Address, c.SoldDate, c.DaysSinceSale, c.PricePerSqFt, c.Why)
	}

	engine := valuation.NewEngine(valuation.DefaultConfig())

	for _, condition := range []string{"excellent", "fair", "poor"} {
		result, err := engine.Run(subject, annotated, condition, 20000, "aggressive")
		if err != nil {
			log.Fatalf("Error running valuation: %v", err)
		}

		fmt.Printf("\n🔸 Condition: %s\n", condition)
		fmt.Printf("ARV: %s\n", valuation.FormatDollars(result.ARV))
		fmt.Printf("Rehab: %s\n", valuation.FormatDollars(result.RehabCost))
		fmt.Printf("Dispo: %s\n", valuation.FormatDollars(result.DispoPrice))
		for _, row := range result.MAORows {
			fmt.Printf("  %s tier: buyer max %s, investor MAO %s\n",
				row.Tier, valuation.FormatDollars(row.BuyerMax), valuation.FormatDollars(row.InvestorMAO))
		}
		fmt.Printf("Summary: %s\n", result.Summary())
	}

	fmt.Println("\n✅ Valuation engine test complete")
}
