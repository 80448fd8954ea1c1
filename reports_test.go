package finbook

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func TestBalanceSheet(t *testing.T) {
	b := newTestBook(t)
	// moutai holds 500 CNY of invested value
	b.Apply(NewRecord("moutai", MustParse("2026-01-10"), Buy, d("50")).WithPrice(d("10")).WithCommission(d("0")))

	s := NewBalanceSheet(b)

	// cash: 9500 CNY (10000 - 500 buy) + 2000 USD; stock: 500 CNY
	var cash, stock *BalanceRow
	for i := range s.Rows {
		switch s.Rows[i].Category {
		case "cash":
			cash = &s.Rows[i]
		case "stock":
			stock = &s.Rows[i]
		}
	}
	if cash == nil || stock == nil {
		t.Fatalf("rows = %+v", s.Rows)
	}
	if !cash.ByCur["CNY"].Equal(d("9500")) || !cash.ByCur["USD"].Equal(d("2000")) {
		t.Errorf("cash row = %+v", cash.ByCur)
	}
	if !stock.ByCur["CNY"].Equal(d("500")) {
		t.Errorf("stock row = %+v", stock.ByCur)
	}

	// home totals with USD at 7.1
	wantCash := d("9500").Add(d("2000").Mul(d("7.1")))
	if !cash.Total.Equal(wantCash) {
		t.Errorf("cash total = %s, want %s", cash.Total, wantCash)
	}

	wantAssets := wantCash.Add(d("500"))
	if !s.Assets.Equal(wantAssets) || !s.Liabilities.IsZero() {
		t.Errorf("assets = %s, liabilities = %s", s.Assets, s.Liabilities)
	}
	if !s.Equity.Equal(wantAssets) {
		t.Errorf("equity = %s", s.Equity)
	}
	// no current liabilities anywhere
	if s.LiquidityRatio != -1 {
		t.Errorf("liquidity ratio = %v, want -1", s.LiquidityRatio)
	}

	md := s.Markdown()
	for _, want := range []string{"cash", "stock", "Equity"} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown misses %q", want)
		}
	}
}

func TestBalanceSheetRatios(t *testing.T) {
	b := newTestBook(t)
	if err := b.AddCategory(&Category{Name: "loans", Class: CurrentLiability}); err != nil {
		t.Fatal(err)
	}
	if err := b.AddAccount(&Account{Bank: "icbc", Name: "card", Currency: "CNY", Category: "loans", Balance: decimal.NewFromInt(5000)}); err != nil {
		t.Fatal(err)
	}

	s := NewBalanceSheet(b)
	// CNY current assets 10000 over current liabilities 5000
	if s.LiquidityRatio != 2 {
		t.Errorf("liquidity ratio = %v, want 2", s.LiquidityRatio)
	}
	if s.DebtAssetRatio <= 0 {
		t.Errorf("debt/asset ratio = %v, want > 0", s.DebtAssetRatio)
	}
	if !s.Equity.Equal(s.Assets.Sub(s.Liabilities)) {
		t.Error("equity != assets - liabilities")
	}
}

func TestIncomeSheet(t *testing.T) {
	b := newTestBook(t)
	ref := MustParse("2026-09-01")

	b.ApplyFlow(&FlowRecord{ID: "s1", Date: MustParse("2026-03-01"), Category: "salary", Value: d("10000")})
	b.ApplyFlow(&FlowRecord{ID: "s2", Date: MustParse("2026-08-01"), Category: "salary", Value: d("10000")})
	b.ApplyFlow(&FlowRecord{ID: "e1", Date: MustParse("2026-08-15"), Category: "food", Value: d("4000")})
	// outside the window
	b.ApplyFlow(&FlowRecord{ID: "old", Date: MustParse("2024-01-01"), Category: "salary", Value: d("999")})

	// a project closed in the window with a 200 CNY gain
	b.Apply(NewRecord("moutai", MustParse("2026-01-10"), Buy, d("100")).WithPrice(d("10")).WithCommission(d("0")))
	b.Apply(NewRecord("moutai", MustParse("2026-06-10"), Sell, d("100")).WithPrice(d("12")).WithCommission(d("0")))
	p, _ := b.Project("moutai")
	p.Open = false
	if err := b.Recompute(p); err != nil {
		t.Fatal(err)
	}

	s := NewIncomeSheet(b, ref)

	if !s.InvestmentIncome.Equal(d("200")) {
		t.Errorf("investment income = %s, want 200", s.InvestmentIncome)
	}
	if !s.TotalIncome.Equal(d("20200")) {
		t.Errorf("total income = %s, want 20200", s.TotalIncome)
	}
	if !s.TotalOutgoing.Equal(d("4000")) {
		t.Errorf("total outgoing = %s, want 4000", s.TotalOutgoing)
	}
	if !s.PortfolioIRR.Valid {
		t.Error("no portfolio IRR over a closed profitable project")
	}
	// (20200 - 4000) / 20200
	if !s.SavingsRate.Equal(Percent(100 * 16200.0 / 20200.0)) {
		t.Errorf("savings rate = %v", s.SavingsRate)
	}
}

func TestMonthlyDetails(t *testing.T) {
	b := newTestBook(t)
	b.ApplyFlow(&FlowRecord{ID: "s1", Date: MustParse("2026-03-01"), Category: "salary", Value: d("10000")})
	b.ApplyFlow(&FlowRecord{ID: "s2", Date: MustParse("2026-03-15"), Category: "salary", Value: d("500")})
	b.ApplyFlow(&FlowRecord{ID: "s3", Date: MustParse("2026-04-01"), Category: "salary", Value: d("10000")})
	b.ApplyFlow(&FlowRecord{ID: "e1", Date: MustParse("2026-03-02"), Category: "food", Value: d("300")})

	in := NewMonthlyDetails(b, Income, MustParse("2026-01-01"), MustParse("2026-12-31"))
	if len(in.Months) != 2 {
		t.Fatalf("months = %v", in.Months)
	}
	if !in.Cells["2026-03"]["salary"].Equal(d("10500")) {
		t.Errorf("march salary = %s", in.Cells["2026-03"]["salary"])
	}
	if !in.Totals["2026-04"].Equal(d("10000")) {
		t.Errorf("april total = %s", in.Totals["2026-04"])
	}
	// expense flows stay out of the income pivot
	for _, c := range in.Categories {
		if c == "food" {
			t.Error("income pivot contains an expense category")
		}
	}

	out := NewMonthlyDetails(b, Expense, MustParse("2026-01-01"), MustParse("2026-12-31"))
	if !out.Totals["2026-03"].Equal(d("300")) {
		t.Errorf("march outgoing = %s", out.Totals["2026-03"])
	}
}

func TestProjectStatMarkdown(t *testing.T) {
	b := newTestBook(t)
	b.Apply(NewRecord("moutai", MustParse("2026-01-10"), Buy, d("100")).WithPrice(d("10")).WithCommission(d("0")))
	p, _ := b.Project("moutai")
	p.CurrentPrice = n(d("12"))
	b.Recompute(p)

	md := ProjectStat(b, p)
	for _, want := range []string{"# moutai", "Net value", "Records", "2026-01-10"} {
		if !strings.Contains(md, want) {
			t.Errorf("stat misses %q", want)
		}
	}

	list := ProjectList(b, true)
	if !strings.Contains(list, "moutai") {
		t.Error("project list misses moutai")
	}
}
