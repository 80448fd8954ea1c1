package finbook

import (
	"fmt"
	"slices"
	"strings"

	"github.com/shopspring/decimal"
)

// MonthlyDetails is a month x category pivot of flows in one direction.
// For income it also folds in the realized net value of projects closed in
// each month, under their investment category. Months run oldest first.
type MonthlyDetails struct {
	Direction  FlowDirection
	Home       string
	Categories []string
	Months     []string // "2026-01"
	Cells      map[string]map[string]decimal.Decimal
	Totals     map[string]decimal.Decimal // per month
}

func monthKey(d Date) string { return fmt.Sprintf("%04d-%02d", d.Year(), d.Month()) }

// NewMonthlyDetails pivots the book's flows of one direction by month and
// category, between from and to inclusive.
func NewMonthlyDetails(b *Book, direction FlowDirection, from, to Date) *MonthlyDetails {
	d := &MonthlyDetails{
		Direction: direction,
		Home:      b.Home(),
		Cells:     make(map[string]map[string]decimal.Decimal),
		Totals:    make(map[string]decimal.Decimal),
	}
	add := func(month, category string, v decimal.Decimal) {
		row, ok := d.Cells[month]
		if !ok {
			row = make(map[string]decimal.Decimal)
			d.Cells[month] = row
			d.Months = append(d.Months, month)
		}
		row[category] = row[category].Add(v)
		d.Totals[month] = d.Totals[month].Add(v)
		if !slices.Contains(d.Categories, category) {
			d.Categories = append(d.Categories, category)
		}
	}

	for f := range b.Flows() {
		if f.Date.Before(from) || f.Date.After(to) {
			continue
		}
		c, ok := b.FlowCategory(f.Category)
		if !ok || c.Direction != direction {
			continue
		}
		add(monthKey(f.Date), f.Category, f.Value)
	}

	if direction == Income {
		for p := range b.AllProjects() {
			if p.Open || p.End.IsZero() || p.End.Before(from) || p.End.After(to) {
				continue
			}
			v := p.NetValue().Mul(b.projectRate(p)).Round(2)
			add(monthKey(p.End), p.Category, v)
		}
	}

	slices.Sort(d.Months)
	slices.Sort(d.Categories)
	return d
}

// Markdown renders the pivot as a markdown table, one row per month.
func (d *MonthlyDetails) Markdown() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# Monthly %s details\n\n", d.Direction)

	fmt.Fprintf(&sb, "| Month |")
	for _, c := range d.Categories {
		fmt.Fprintf(&sb, " %s |", c)
	}
	fmt.Fprintf(&sb, " Total |\n")
	fmt.Fprintf(&sb, "| --- |%s\n", strings.Repeat(" --: |", len(d.Categories)+1))

	for _, month := range d.Months {
		fmt.Fprintf(&sb, "| %s |", month)
		for _, c := range d.Categories {
			if v, ok := d.Cells[month][c]; ok {
				fmt.Fprintf(&sb, " %s |", M(v, d.Home))
			} else {
				fmt.Fprintf(&sb, "  |")
			}
		}
		fmt.Fprintf(&sb, " %s |\n", M(d.Totals[month], d.Home))
	}
	return sb.String()
}
