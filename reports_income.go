package finbook

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// CategoryLine is one flow or investment category's total within a report
// window.
type CategoryLine struct {
	Category string
	Value    decimal.Decimal
}

// IncomeSheet sums income and outgoing over the trailing 365 days before its
// reference date. Investment income comes from projects closed inside the
// window: their realized net value converted to home currency, grouped by
// investment category. PortfolioIRR is solved over the union of those
// projects' local cash-flow tables; it is unset when that table is
// degenerate.
type IncomeSheet struct {
	Date Date
	Home string

	Income     []CategoryLine
	Outgoing   []CategoryLine
	Investment []CategoryLine

	TotalIncome      decimal.Decimal // flows plus investment income
	TotalOutgoing    decimal.Decimal
	InvestmentIncome decimal.Decimal

	PortfolioIRR decimal.NullDecimal

	SavingsRate    Percent // (income - outgoing) / income
	InvestmentRate Percent // investment income / total income
}

// windowStart is the first day of the trailing 365-day window ending at ref.
func windowStart(ref Date) Date { return ref.Add(-364) }

// NewIncomeSheet computes the trailing-365-day income and outgoing sheet as
// of ref.
func NewIncomeSheet(b *Book, ref Date) *IncomeSheet {
	s := &IncomeSheet{Date: ref, Home: b.Home()}
	start := windowStart(ref)

	income := make(map[string]decimal.Decimal)
	outgoing := make(map[string]decimal.Decimal)
	for f := range b.Flows() {
		if f.Date.Before(start) || f.Date.After(ref) {
			continue
		}
		c, ok := b.FlowCategory(f.Category)
		if !ok {
			continue
		}
		if c.Direction == Income {
			income[f.Category] = income[f.Category].Add(f.Value)
		} else {
			outgoing[f.Category] = outgoing[f.Category].Add(f.Value)
		}
	}

	invest := make(map[string]decimal.Decimal)
	var closed []*Project
	for p := range b.AllProjects() {
		if p.Open || p.End.IsZero() || p.End.Before(start) || p.End.After(ref) {
			continue
		}
		closed = append(closed, p)
		v := p.NetValue().Mul(b.projectRate(p)).Round(2)
		invest[p.Category] = invest[p.Category].Add(v)
		s.InvestmentIncome = s.InvestmentIncome.Add(v)
	}

	s.Income = collectLines(income)
	s.Outgoing = collectLines(outgoing)
	s.Investment = collectLines(invest)

	for _, l := range s.Income {
		s.TotalIncome = s.TotalIncome.Add(l.Value)
	}
	s.TotalIncome = s.TotalIncome.Add(s.InvestmentIncome)
	for _, l := range s.Outgoing {
		s.TotalOutgoing = s.TotalOutgoing.Add(l.Value)
	}

	var flows []Flow
	for _, p := range closed {
		flows = append(flows, b.Cashflow(p, ref, true)...)
	}
	if HasSignChange(flows) {
		if r, err := SolveIRR(flows); err == nil {
			s.PortfolioIRR = n(decimal.NewFromFloat(float64(Annualize(r))).Round(2))
		}
	}

	if !s.TotalIncome.IsZero() {
		q, _ := s.TotalIncome.Sub(s.TotalOutgoing).Div(s.TotalIncome).Float64()
		s.SavingsRate = Percent(100 * q)
		q, _ = s.InvestmentIncome.Div(s.TotalIncome).Float64()
		s.InvestmentRate = Percent(100 * q)
	}
	return s
}

func collectLines(m map[string]decimal.Decimal) []CategoryLine {
	var lines []CategoryLine
	for name := range sortedKeys(m) {
		lines = append(lines, CategoryLine{Category: name, Value: m[name]})
	}
	return lines
}

// Markdown renders the income/outgoing sheet as a markdown document.
func (s *IncomeSheet) Markdown() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# Income and Outgoing, %s to %s\n\n", windowStart(s.Date), s.Date)

	fmt.Fprintf(&sb, "## Income\n\n| Category | Value |\n| --- | --: |\n")
	for _, l := range s.Income {
		fmt.Fprintf(&sb, "| %s | %s |\n", l.Category, M(l.Value, s.Home))
	}
	for _, l := range s.Investment {
		fmt.Fprintf(&sb, "| %s (investment) | %s |\n", l.Category, M(l.Value, s.Home))
	}
	fmt.Fprintf(&sb, "| **Total** | %s |\n", M(s.TotalIncome, s.Home))

	fmt.Fprintf(&sb, "\n## Outgoing\n\n| Category | Value |\n| --- | --: |\n")
	for _, l := range s.Outgoing {
		fmt.Fprintf(&sb, "| %s | %s |\n", l.Category, M(l.Value, s.Home))
	}
	fmt.Fprintf(&sb, "| **Total** | %s |\n", M(s.TotalOutgoing, s.Home))

	fmt.Fprintf(&sb, "\n- Savings rate: %s\n", s.SavingsRate)
	fmt.Fprintf(&sb, "- Investment income: %s (%s of income)\n",
		M(s.InvestmentIncome, s.Home), s.InvestmentRate)
	if s.PortfolioIRR.Valid {
		fmt.Fprintf(&sb, "- Portfolio IRR: %s%%\n", s.PortfolioIRR.Decimal)
	} else {
		fmt.Fprintf(&sb, "- Portfolio IRR: -\n")
	}
	return sb.String()
}
