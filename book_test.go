package finbook

import (
	"testing"

	"github.com/shopspring/decimal"
)

// newTestBook builds a book with one bank, a cash and an investment
// category, a CNY account and a USD account, and an open project on each.
func newTestBook(t *testing.T) *Book {
	t.Helper()
	b := NewBook("CNY")

	must := func(err error) {
		t.Helper()
		if err != nil {
			t.Fatal(err)
		}
	}
	must(b.AddCurrency(&Currency{Code: "CNY", Rate: d("1")}))
	must(b.AddCurrency(&Currency{Code: "USD", Rate: d("7.1")}))
	must(b.AddBank(&Bank{Name: "icbc"}))
	must(b.AddRisk(&Risk{Name: "high"}))
	must(b.AddCategory(&Category{Name: "cash", Class: CurrentAsset}))
	must(b.AddCategory(&Category{Name: "stock", Class: Investment, Driver: "sina"}))
	must(b.AddAccount(&Account{Bank: "icbc", Name: "main", Currency: "CNY", Category: "cash", Balance: d("10000")}))
	must(b.AddAccount(&Account{Bank: "icbc", Name: "usd", Currency: "USD", Category: "cash", Balance: d("2000")}))
	must(b.AddFlowCategory(&FlowCategory{Name: "salary", Direction: Income}))
	must(b.AddFlowCategory(&FlowCategory{Name: "food", Direction: Expense}))
	must(b.AddProject(&Project{Name: "moutai", Account: "icbc-main", Category: "stock", Risk: "high", Open: true}))
	must(b.AddProject(&Project{Name: "aapl", Account: "icbc-usd", Category: "stock", Open: true}))
	return b
}

func TestApplyMovesCash(t *testing.T) {
	b := newTestBook(t)
	a, _ := b.Account("icbc-main")

	buy := NewRecord("moutai", MustParse("2026-01-10"), Buy, d("100")).
		WithPrice(d("10")).WithCommission(d("0"))
	if err := b.Apply(buy); err != nil {
		t.Fatal(err)
	}
	if !a.Balance.Equal(d("9000")) {
		t.Errorf("balance after buy = %s, want 9000", a.Balance)
	}

	sell := NewRecord("moutai", MustParse("2026-02-10"), Sell, d("40")).
		WithPrice(d("12")).WithCommission(d("0"))
	if err := b.Apply(sell); err != nil {
		t.Fatal(err)
	}
	if !a.Balance.Equal(d("9480")) {
		t.Errorf("balance after sell = %s, want 9480", a.Balance)
	}

	div := NewRecord("moutai", MustParse("2026-03-01"), Dividend, decimal.Zero).
		WithValue(d("20"))
	if err := b.Apply(div); err != nil {
		t.Fatal(err)
	}
	if !a.Balance.Equal(d("9500")) {
		t.Errorf("balance after dividend = %s, want 9500", a.Balance)
	}

	if err := b.Retract(sell.ID); err != nil {
		t.Fatal(err)
	}
	if !a.Balance.Equal(d("9020")) {
		t.Errorf("balance after retract = %s, want 9020", a.Balance)
	}
}

func TestApplyRejects(t *testing.T) {
	b := newTestBook(t)
	unknown := NewRecord("nope", MustParse("2026-01-10"), Buy, d("1")).WithValue(d("10"))
	if err := b.Apply(unknown); err == nil {
		t.Error("record on unknown project accepted")
	}

	incomplete := NewRecord("moutai", MustParse("2026-01-10"), Buy, d("1"))
	if err := b.Apply(incomplete); err == nil {
		t.Error("record with only amount accepted")
	}

	dup := NewRecord("moutai", MustParse("2026-01-10"), Buy, d("1")).WithValue(d("10")).WithPrice(d("10"))
	if err := b.Apply(dup); err != nil {
		t.Fatal(err)
	}
	if err := b.Apply(dup); err == nil {
		t.Error("same record applied twice")
	}
}

func TestRecomputeAggregates(t *testing.T) {
	b := newTestBook(t)
	p, _ := b.Project("moutai")

	apply := func(r *Record) {
		t.Helper()
		if err := b.Apply(r); err != nil {
			t.Fatal(err)
		}
	}
	apply(NewRecord("moutai", MustParse("2026-01-10"), Buy, d("100")).WithPrice(d("10")).WithCommission(d("0")))
	apply(NewRecord("moutai", MustParse("2026-02-10"), Sell, d("40")).WithPrice(d("12")).WithCommission(d("0")))
	apply(NewRecord("moutai", MustParse("2026-03-01"), Dividend, decimal.Zero).WithValue(d("20")))

	if !p.BuyAmount.Equal(d("100")) || !p.SellAmount.Equal(d("40")) {
		t.Errorf("amounts = %s/%s", p.BuyAmount, p.SellAmount)
	}
	if !p.Amount.Equal(p.BuyAmount.Sub(p.SellAmount)) {
		t.Error("amount != buy - sell")
	}
	if !p.Value.Equal(p.BuyValue.Sub(p.SellValue).Sub(p.Dividends)) {
		t.Error("value != buy - sell - dividends")
	}
	if !p.Value.Equal(d("500")) {
		t.Errorf("value = %s, want 500", p.Value)
	}
	if p.Start.String() != "2026-01-10" {
		t.Errorf("start = %s", p.Start)
	}
	if !p.End.IsZero() {
		t.Errorf("open project has end = %s", p.End)
	}

	// Recompute is idempotent.
	before := *p
	if err := b.Recompute(p); err != nil {
		t.Fatal(err)
	}
	if !p.Value.Equal(before.Value) || !p.Amount.Equal(before.Amount) || p.Start != before.Start {
		t.Error("second recompute changed the aggregates")
	}
}

func TestRecomputeClosedProjectEnd(t *testing.T) {
	b := newTestBook(t)
	p, _ := b.Project("moutai")

	b.Apply(NewRecord("moutai", MustParse("2026-01-10"), Buy, d("100")).WithPrice(d("10")).WithCommission(d("0")))
	b.Apply(NewRecord("moutai", MustParse("2026-06-10"), Sell, d("100")).WithPrice(d("12")).WithCommission(d("0")))
	p.Open = false
	if err := b.Recompute(p); err != nil {
		t.Fatal(err)
	}
	if p.End.String() != "2026-06-10" {
		t.Errorf("end = %s, want 2026-06-10", p.End)
	}
	if !p.IRR.Valid {
		t.Error("closed profitable project has no IRR")
	}
}

func TestRecomputeSkipsDegenerateIRR(t *testing.T) {
	b := newTestBook(t)
	p, _ := b.Project("moutai")

	// Buys only, no price: the cash-flow table never changes sign.
	b.Apply(NewRecord("moutai", MustParse("2026-01-10"), Buy, d("100")).WithPrice(d("10")).WithCommission(d("0")))
	b.Apply(NewRecord("moutai", MustParse("2026-02-10"), Buy, d("50")).WithPrice(d("11")).WithCommission(d("0")))

	if p.IRR.Valid || p.LocalIRR.Valid {
		t.Errorf("degenerate table produced an IRR: %v %v", p.IRR, p.LocalIRR)
	}
}

func TestNetValueOpenProject(t *testing.T) {
	b := newTestBook(t)
	p, _ := b.Project("moutai")

	b.Apply(NewRecord("moutai", MustParse("2026-01-10"), Buy, d("100")).WithPrice(d("10")).WithCommission(d("0")))
	p.CurrentPrice = n(d("12"))
	if err := b.Recompute(p); err != nil {
		t.Fatal(err)
	}

	if !p.NetValue().Equal(d("200")) {
		t.Errorf("net value = %s, want 200", p.NetValue())
	}
	if rate, ok := p.NetValueRate(); !ok || !rate.Equal(20) {
		t.Errorf("net value rate = %v (%v), want 20%%", rate, ok)
	}
	if !p.IRR.Valid {
		t.Error("open priced project has no IRR")
	}
}

func TestApplyFlowMovesCash(t *testing.T) {
	b := newTestBook(t)
	a, _ := b.Account("icbc-main")

	income := &FlowRecord{ID: "f1", Account: "icbc-main", Date: MustParse("2026-03-01"), Category: "salary", Value: d("5000")}
	if err := b.ApplyFlow(income); err != nil {
		t.Fatal(err)
	}
	if !a.Balance.Equal(d("15000")) {
		t.Errorf("balance after income = %s, want 15000", a.Balance)
	}

	expense := &FlowRecord{ID: "f2", Account: "icbc-main", Date: MustParse("2026-03-02"), Category: "food", Value: d("300")}
	if err := b.ApplyFlow(expense); err != nil {
		t.Fatal(err)
	}
	if !a.Balance.Equal(d("14700")) {
		t.Errorf("balance after expense = %s, want 14700", a.Balance)
	}

	if err := b.RetractFlow("f2"); err != nil {
		t.Fatal(err)
	}
	if !a.Balance.Equal(d("15000")) {
		t.Errorf("balance after retract = %s, want 15000", a.Balance)
	}

	if err := b.ApplyFlow(&FlowRecord{ID: "f3", Date: MustParse("2026-03-03"), Category: "nope", Value: d("1")}); err == nil {
		t.Error("flow on unknown category accepted")
	}
}
