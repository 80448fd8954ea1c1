package finbook

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Project is an investment position: a thing bought and sold over time
// through records, held on one account, classified by category and risk.
//
// The declared fields are persisted; everything from Start down is an
// aggregate recomputed from the project's records whenever they change.
type Project struct {
	Name     string `json:"name"`
	Code     string `json:"code,omitempty"`
	URL      string `json:"url,omitempty"`
	Account  string `json:"account"`
	Category string `json:"category"`
	Risk     string `json:"risk,omitempty"`
	Open     bool   `json:"open"`
	QuoteID  string `json:"quote_id,omitempty"`
	Comment  string `json:"comment,omitempty"`

	// CurrentPrice is the latest fetched unit price, meaningful for open
	// projects only. It survives persistence so a book stays usable offline.
	CurrentPrice decimal.NullDecimal `json:"current_price"`

	Start Date `json:"-"`
	End   Date `json:"-"`

	BuyAmount  decimal.Decimal `json:"-"`
	SellAmount decimal.Decimal `json:"-"`
	Amount     decimal.Decimal `json:"-"` // BuyAmount - SellAmount
	BuyValue   decimal.Decimal `json:"-"`
	SellValue  decimal.Decimal `json:"-"`
	Dividends  decimal.Decimal `json:"-"`
	Value      decimal.Decimal `json:"-"` // BuyValue - SellValue - Dividends

	// IRR is annualized and computed over home-currency values, LocalIRR
	// over rate-converted local values. Either is unset when the project's
	// cash-flow table is degenerate or the solver gave up.
	IRR      decimal.NullDecimal `json:"-"`
	LocalIRR decimal.NullDecimal `json:"-"`
}

// NewProject creates an open project.
func NewProject(name, account, category string) *Project {
	return &Project{Name: name, Account: account, Category: category, Open: true}
}

// Validate checks the project's declared fields.
func (p *Project) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("project name is missing")
	}
	if p.Account == "" {
		return fmt.Errorf("project %q: account is missing", p.Name)
	}
	if p.Category == "" {
		return fmt.Errorf("project %q: category is missing", p.Name)
	}
	return nil
}

// BuyPrice is the average unit buy price. ok is false when nothing was bought.
func (p *Project) BuyPrice() (price decimal.Decimal, ok bool) {
	if p.BuyAmount.IsZero() {
		return decimal.Zero, false
	}
	return p.BuyValue.Div(p.BuyAmount), true
}

// SellPrice is the average unit sell price. ok is false when nothing was sold.
func (p *Project) SellPrice() (price decimal.Decimal, ok bool) {
	if p.SellAmount.IsZero() {
		return decimal.Zero, false
	}
	return p.SellValue.Div(p.SellAmount), true
}

// AvgPrice is the net cost per remaining unit. ok is false when the position
// is fully closed out.
func (p *Project) AvgPrice() (price decimal.Decimal, ok bool) {
	if p.Amount.IsZero() {
		return decimal.Zero, false
	}
	return p.Value.Div(p.Amount), true
}

// NetValue is the project's net result so far: realized proceeds and
// dividends minus cost, plus the marked-to-market value of what is still
// held when the project is open and priced.
func (p *Project) NetValue() decimal.Decimal {
	net := p.Value.Neg()
	if p.Open && p.CurrentPrice.Valid {
		net = net.Add(p.Amount.Mul(p.CurrentPrice.Decimal))
	}
	return net
}

// NetValueRate is NetValue relative to the money put in. ok is false when
// nothing was bought.
func (p *Project) NetValueRate() (rate Percent, ok bool) {
	if p.BuyValue.IsZero() {
		return 0, false
	}
	f, _ := p.NetValue().Div(p.BuyValue).Float64()
	return Percent(100 * f), true
}

// BuySellRate is the realized proceeds (sells plus dividends) relative to the
// money put in. ok is false when nothing was bought.
func (p *Project) BuySellRate() (rate Percent, ok bool) {
	if p.BuyValue.IsZero() {
		return 0, false
	}
	f, _ := p.SellValue.Add(p.Dividends).Div(p.BuyValue).Float64()
	return Percent(100 * f), true
}

// Duration is the project's lifetime in days, from its first record to its
// last for a closed project or to today for an open one. Zero without records.
func (p *Project) Duration() int {
	if p.Start.IsZero() {
		return 0
	}
	end := p.End
	if p.Open || end.IsZero() {
		end = Today()
	}
	return end.Sub(p.Start)
}

// MarshalJSON implements the json.Marshaler interface for Project. Only the
// declared fields are written; aggregates are recomputed at load time.
func (p Project) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("command", EntryProject)
	w.Append("name", p.Name)
	w.Optional("code", p.Code)
	w.Optional("url", p.URL)
	w.Append("account", p.Account)
	w.Append("category", p.Category)
	w.Optional("risk", p.Risk)
	w.Append("open", p.Open)
	w.Optional("quote_id", p.QuoteID)
	w.Optional("comment", p.Comment)
	if p.CurrentPrice.Valid {
		w.Append("current_price", p.CurrentPrice.Decimal)
	}
	return w.MarshalJSON()
}
