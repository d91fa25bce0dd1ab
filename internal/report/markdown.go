package report

import (
	"fmt"
	"strings"

	"github.com/ajharbinger/comps-mao-pipeline/internal/models"
	"github.com/ajharbinger/comps-mao-pipeline/internal/valuation"
)

// BuildMarkdown renders a comp packet as GitHub-flavored markdown. The
// PDF renderer converts this to HTML; the same text is readable as-is in
// chat clients that show markdown.
func BuildMarkdown(p *models.CompPacket) string {
	var b strings.Builder

	b.WriteString("# Comp Packet\n\n")
	b.WriteString("## " + p.Subject.Address + "\n\n")

	year := "—"
	if p.Subject.Year != 0 {
		year = fmt.Sprintf("%d", p.Subject.Year)
	}
	b.WriteString(fmt.Sprintf("%d bd • %s ba • %s sqft • Yr %s\n\n",
		p.Subject.Beds, formatBaths(p.Subject.Baths), formatThousands(int64(p.Subject.SqFt)), year))
	b.WriteString(fmt.Sprintf("Condition: **%s** • Assignment Fee: **%s**\n\n",
		titleCase(p.Condition), valuation.FormatDollars(p.AssignmentFee)))
	b.WriteString(fmt.Sprintf("### ARV: %s • Rehab: %s • Dispo Ask: %s\n\n",
		valuation.FormatDollars(p.ARV), valuation.FormatDollars(p.RehabCost), valuation.FormatDollars(p.DispoPrice)))

	b.WriteString("### Comps\n\n")
	b.WriteString("| Score | Address | Sold | Price | $/sf | Beds | Baths | Sqft | Why | Cash? |\n")
	b.WriteString("|---|---|---|---|---|---|---|---|---|---|\n")
	for _, c := range p.Comps {
		b.WriteString(fmt.Sprintf("| %d | %s | %s | %s | %s | %d | %s | %s | %s | %s |\n",
			c.Score,
			c.Address,
			c.SoldDate,
			valuation.FormatDollars(int64(c.SoldPrice)),
			fmt.Sprintf("$%.0f", c.PricePerSqFt),
			c.Beds,
			formatBaths(c.Baths),
			formatThousands(int64(c.SqFt)),
			c.Why,
			c.CashStatus))
	}

	b.WriteString(fmt.Sprintf("\n### MAO Tiers (%s)\n\n", titleCase(p.Condition)))
	b.WriteString("| Tier | Buyer Max | Your MAO (fee in) |\n")
	b.WriteString("|---|---|---|\n")
	for _, row := range p.MAORows {
		b.WriteString(fmt.Sprintf("| %s | %s | %s |\n",
			row.Tier, valuation.FormatDollars(row.BuyerMax), valuation.FormatDollars(row.InvestorMAO)))
	}

	return b.String()
}

func formatBaths(v float64) string {
	if v == float64(int64(v)) {
		return fmt.Sprintf("%.0f", v)
	}
	return fmt.Sprintf("%.1f", v)
}

func formatThousands(v int64) string {
	s := valuation.FormatDollars(v)
	return strings.TrimPrefix(s, "$")
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
