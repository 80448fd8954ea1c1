package finbook

import "github.com/shopspring/decimal"

// Cashflow builds the cash-flow table of a project against a reference date.
// Buys enter positive, sells and dividends negative, each at its distance in
// days before ref. An open project with a current price gets a terminal
// liquidation entry at day zero: the held amount marked at that price, with
// the opposite sign.
//
// With local set, per-record values are converted with each record's own
// captured rate (records without one stay unconverted) and the terminal
// entry with the project currency's book rate.
func (b *Book) Cashflow(p *Project, ref Date, local bool) []Flow {
	recs := b.ProjectRecords(p.Name)
	flows := make([]Flow, 0, len(recs)+1)
	for _, r := range recs {
		d, ok := r.CashValue()
		if !ok {
			continue
		}
		v, _ := d.Float64()
		if r.Kind != Buy {
			v = -v
		}
		if local && r.Rate.Valid {
			rate, _ := r.Rate.Decimal.Float64()
			v *= rate
		}
		flows = append(flows, Flow{Days: ref.Sub(r.Date), Value: v})
	}

	if p.Open && p.CurrentPrice.Valid {
		v, _ := p.Amount.Mul(p.CurrentPrice.Decimal).Float64()
		if local {
			rate, _ := b.projectRate(p).Float64()
			v *= rate
		}
		flows = append(flows, Flow{Days: 0, Value: -v})
	}
	return flows
}

// projectRate is the book rate of the currency the project trades in, i.e.
// its account's currency.
func (b *Book) projectRate(p *Project) decimal.Decimal {
	a, ok := b.accounts[p.Account]
	if !ok {
		return b.Rate(b.home)
	}
	return b.Rate(a.Currency)
}
