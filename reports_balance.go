package finbook

import (
	"fmt"
	"slices"
	"strings"

	"github.com/shopspring/decimal"
)

// BalanceRow is one category's balances by currency, plus its home-currency
// total.
type BalanceRow struct {
	Category string
	Class    CategoryClass
	ByCur    map[string]decimal.Decimal
	Total    decimal.Decimal
}

// BalanceSheet is the category x currency balance matrix of a book at a
// point in time, with per-class subtotals and the usual ratios.
type BalanceSheet struct {
	Date       Date
	Home       string
	Currencies []string
	Rows       []BalanceRow

	ClassTotal  map[CategoryClass]decimal.Decimal
	Assets      decimal.Decimal
	Liabilities decimal.Decimal
	Equity      decimal.Decimal

	// LiquidityRatio is the worst current-assets over current-liabilities
	// quotient across currencies, -1 when no currency carries current
	// liabilities. DebtAssetRatio is the worst liabilities over assets
	// percentage across currencies.
	LiquidityRatio float64
	DebtAssetRatio Percent
}

// NewBalanceSheet computes the balance sheet of the book as of today.
// Account balances land in their account's category and currency; open
// projects add their invested value on top, in their account's currency.
func NewBalanceSheet(b *Book) *BalanceSheet {
	s := &BalanceSheet{
		Date:       Today(),
		Home:       b.Home(),
		ClassTotal: make(map[CategoryClass]decimal.Decimal),
	}

	byCat := make(map[string]map[string]decimal.Decimal)
	add := func(category, currency string, v decimal.Decimal) {
		m, ok := byCat[category]
		if !ok {
			m = make(map[string]decimal.Decimal)
			byCat[category] = m
		}
		m[currency] = m[currency].Add(v)
		if !slices.Contains(s.Currencies, currency) {
			s.Currencies = append(s.Currencies, currency)
		}
	}

	for a := range b.AllAccounts() {
		add(a.Category, a.Currency, a.Balance)
	}
	for p := range b.AllProjects() {
		if !p.Open {
			continue
		}
		if a, ok := b.Account(p.Account); ok {
			add(p.Category, a.Currency, p.Value)
		}
	}
	slices.Sort(s.Currencies)

	curAssets := make(map[string]decimal.Decimal)
	curLiabilities := make(map[string]decimal.Decimal)
	assetsByCur := make(map[string]decimal.Decimal)
	liabilitiesByCur := make(map[string]decimal.Decimal)

	for c := range b.AllCategories() {
		byCur, ok := byCat[c.Name]
		if !ok {
			continue
		}
		row := BalanceRow{Category: c.Name, Class: c.Class, ByCur: byCur}
		for cur, v := range byCur {
			row.Total = row.Total.Add(v.Mul(b.Rate(cur)))
			if c.Class.IsAsset() {
				assetsByCur[cur] = assetsByCur[cur].Add(v)
			} else {
				liabilitiesByCur[cur] = liabilitiesByCur[cur].Add(v)
			}
			switch c.Class {
			case CurrentAsset:
				curAssets[cur] = curAssets[cur].Add(v)
			case CurrentLiability:
				curLiabilities[cur] = curLiabilities[cur].Add(v)
			}
		}
		s.Rows = append(s.Rows, row)
		s.ClassTotal[c.Class] = s.ClassTotal[c.Class].Add(row.Total)
		if c.Class.IsAsset() {
			s.Assets = s.Assets.Add(row.Total)
		} else {
			s.Liabilities = s.Liabilities.Add(row.Total)
		}
	}
	s.Equity = s.Assets.Sub(s.Liabilities)

	// group rows per balance-sheet class
	slices.SortStableFunc(s.Rows, func(a, b BalanceRow) int {
		if a.Class != b.Class {
			return int(a.Class) - int(b.Class)
		}
		return strings.Compare(a.Category, b.Category)
	})

	s.LiquidityRatio = -1
	for cur, liab := range curLiabilities {
		if liab.IsZero() {
			continue
		}
		q, _ := curAssets[cur].Div(liab).Float64()
		if s.LiquidityRatio < 0 || q < s.LiquidityRatio {
			s.LiquidityRatio = q
		}
	}
	for cur, liab := range liabilitiesByCur {
		assets := assetsByCur[cur]
		if assets.IsZero() {
			continue
		}
		q, _ := liab.Div(assets).Float64()
		if r := Percent(100 * q); r > s.DebtAssetRatio {
			s.DebtAssetRatio = r
		}
	}
	return s
}

// Markdown renders the balance sheet as a markdown document.
func (s *BalanceSheet) Markdown() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# Balance Sheet %s\n\n", s.Date)

	fmt.Fprintf(&sb, "| Category |")
	for _, cur := range s.Currencies {
		fmt.Fprintf(&sb, " %s |", cur)
	}
	fmt.Fprintf(&sb, " Total (%s) |\n", s.Home)
	fmt.Fprintf(&sb, "| --- |%s --: |\n", strings.Repeat(" --: |", len(s.Currencies)))

	class := CategoryClass(0)
	for _, row := range s.Rows {
		if row.Class != class {
			class = row.Class
			fmt.Fprintf(&sb, "| **%s** |%s %s |\n",
				class,
				strings.Repeat("  |", len(s.Currencies)),
				M(s.ClassTotal[class], s.Home))
		}
		fmt.Fprintf(&sb, "| %s |", row.Category)
		for _, cur := range s.Currencies {
			if v, ok := row.ByCur[cur]; ok {
				fmt.Fprintf(&sb, " %s |", M(v, cur))
			} else {
				fmt.Fprintf(&sb, "  |")
			}
		}
		fmt.Fprintf(&sb, " %s |\n", M(row.Total, s.Home))
	}

	fmt.Fprintf(&sb, "\n- Assets: %s\n", M(s.Assets, s.Home))
	fmt.Fprintf(&sb, "- Liabilities: %s\n", M(s.Liabilities, s.Home))
	fmt.Fprintf(&sb, "- Equity: %s\n", M(s.Equity, s.Home))
	if s.LiquidityRatio < 0 {
		fmt.Fprintf(&sb, "- Liquidity ratio: -\n")
	} else {
		fmt.Fprintf(&sb, "- Liquidity ratio: %.2f\n", s.LiquidityRatio)
	}
	fmt.Fprintf(&sb, "- Debt/asset ratio: %s\n", s.DebtAssetRatio)
	return sb.String()
}
