package finbook

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

func nullString(d decimal.NullDecimal) string {
	if !d.Valid {
		return "-"
	}
	return d.Decimal.String()
}

// ProjectStat renders one project's aggregates, derived metrics and records
// as a markdown document.
func ProjectStat(b *Book, p *Project) string {
	var sb strings.Builder
	cur := b.Home()
	if a, ok := b.Account(p.Account); ok {
		cur = a.Currency
	}

	fmt.Fprintf(&sb, "# %s\n\n", p.Name)
	if p.Code != "" {
		fmt.Fprintf(&sb, "- Code: %s\n", p.Code)
	}
	fmt.Fprintf(&sb, "- Account: %s\n", p.Account)
	fmt.Fprintf(&sb, "- Category: %s\n", p.Category)
	if p.Risk != "" {
		fmt.Fprintf(&sb, "- Risk: %s\n", p.Risk)
	}
	status := "closed"
	if p.Open {
		status = "open"
	}
	fmt.Fprintf(&sb, "- Status: %s\n", status)
	if !p.Start.IsZero() {
		fmt.Fprintf(&sb, "- Start: %s (%d days)\n", p.Start, p.Duration())
	}
	if !p.End.IsZero() {
		fmt.Fprintf(&sb, "- End: %s\n", p.End)
	}

	fmt.Fprintf(&sb, "\n## Position\n\n")
	fmt.Fprintf(&sb, "- Bought: %s for %s", Q(p.BuyAmount), M(p.BuyValue, cur))
	if price, ok := p.BuyPrice(); ok {
		fmt.Fprintf(&sb, " (avg %s)", price.Round(4))
	}
	fmt.Fprintf(&sb, "\n- Sold: %s for %s", Q(p.SellAmount), M(p.SellValue, cur))
	if price, ok := p.SellPrice(); ok {
		fmt.Fprintf(&sb, " (avg %s)", price.Round(4))
	}
	fmt.Fprintf(&sb, "\n- Dividends: %s\n", M(p.Dividends, cur))
	fmt.Fprintf(&sb, "- Held: %s, net cost %s", Q(p.Amount), M(p.Value, cur))
	if price, ok := p.AvgPrice(); ok {
		fmt.Fprintf(&sb, " (avg %s)", price.Round(4))
	}
	fmt.Fprintf(&sb, "\n")
	if p.CurrentPrice.Valid {
		fmt.Fprintf(&sb, "- Current price: %s\n", p.CurrentPrice.Decimal)
	}

	fmt.Fprintf(&sb, "\n## Result\n\n")
	fmt.Fprintf(&sb, "- Net value: %s\n", M(p.NetValue(), cur).SignedString())
	if rate, ok := p.NetValueRate(); ok {
		fmt.Fprintf(&sb, "- Net value rate: %s\n", rate.SignedString())
	}
	if rate, ok := p.BuySellRate(); ok {
		fmt.Fprintf(&sb, "- Buy/sell rate: %s\n", rate)
	}
	if p.IRR.Valid {
		fmt.Fprintf(&sb, "- IRR: %s%%\n", p.IRR.Decimal)
	}
	if p.LocalIRR.Valid {
		fmt.Fprintf(&sb, "- IRR (%s): %s%%\n", b.Home(), p.LocalIRR.Decimal)
	}

	recs := b.ProjectRecords(p.Name)
	if len(recs) > 0 {
		fmt.Fprintf(&sb, "\n## Records\n\n")
		fmt.Fprintf(&sb, "| Date | Kind | Amount | Price | Value | Commission |\n")
		fmt.Fprintf(&sb, "| --- | --- | --: | --: | --: | --: |\n")
		for _, r := range recs {
			fmt.Fprintf(&sb, "| %s | %s | %s | %s | %s | %s |\n",
				r.Date, r.Kind, r.Amount,
				nullString(r.Price), nullString(r.Value), nullString(r.Commission))
		}
	}
	return sb.String()
}

// ProjectList renders a summary table over projects, open ones first by
// invested value, closed ones after.
func ProjectList(b *Book, openOnly bool) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# Projects\n\n")
	fmt.Fprintf(&sb, "| Project | Category | Held | Net cost | Net value | Rate | IRR |\n")
	fmt.Fprintf(&sb, "| --- | --- | --: | --: | --: | --: | --: |\n")
	for p := range b.AllProjects() {
		if openOnly && !p.Open {
			continue
		}
		cur := b.Home()
		if a, ok := b.Account(p.Account); ok {
			cur = a.Currency
		}
		rate := "-"
		if r, ok := p.NetValueRate(); ok {
			rate = r.SignedString()
		}
		irr := "-"
		if p.IRR.Valid {
			irr = p.IRR.Decimal.String() + "%"
		}
		fmt.Fprintf(&sb, "| %s | %s | %s | %s | %s | %s | %s |\n",
			p.Name, p.Category, Q(p.Amount), M(p.Value, cur),
			M(p.NetValue(), cur).SignedString(), rate, irr)
	}
	return sb.String()
}
