package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"
	"github.com/shellwx/finbook"
)

type balanceCmd struct{}

func (*balanceCmd) Name() string     { return "balance" }
func (*balanceCmd) Synopsis() string { return "show the balance sheet" }
func (*balanceCmd) Usage() string {
	return `fin balance

  Shows account balances and open project values by category and currency,
  with class subtotals, equity, and liquidity and debt/asset ratios.
`
}

func (c *balanceCmd) SetFlags(f *flag.FlagSet) {}

func (c *balanceCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	book, _, err := DecodeBook()
	if err != nil {
		return fail(err)
	}
	printMarkdown(finbook.NewBalanceSheet(book).Markdown())
	return subcommands.ExitSuccess
}

type iosCmd struct {
	date string
}

func (*iosCmd) Name() string     { return "ios" }
func (*iosCmd) Synopsis() string { return "show the trailing-year income and outgoing sheet" }
func (*iosCmd) Usage() string {
	return `fin ios [-d <date>]

  Sums income and outgoing over the trailing 365 days, including realized
  investment income from closed projects and the portfolio IRR over them.
`
}

func (c *iosCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", finbook.Today().String(), "Reference date of the sheet.")
}

func (c *iosCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ref, err := finbook.ParseDate(c.date)
	if err != nil {
		return fail(fmt.Errorf("bad date %q: %w", c.date, err))
	}
	book, _, err := DecodeBook()
	if err != nil {
		return fail(err)
	}
	printMarkdown(finbook.NewIncomeSheet(book, ref).Markdown())
	return subcommands.ExitSuccess
}

// monthlyFlags are shared by the income and outgoing detail commands.
type monthlyFlags struct {
	from string
	to   string
}

func (m *monthlyFlags) SetFlags(f *flag.FlagSet) {
	f.StringVar(&m.from, "from", "", "First date of the pivot (defaults to one year ago).")
	f.StringVar(&m.to, "to", finbook.Today().String(), "Last date of the pivot.")
}

func (m *monthlyFlags) window() (from, to finbook.Date, err error) {
	to, err = finbook.ParseDate(m.to)
	if err != nil {
		return from, to, fmt.Errorf("bad date %q: %w", m.to, err)
	}
	if m.from == "" {
		return to.Add(-364).StartOfMonth(), to, nil
	}
	from, err = finbook.ParseDate(m.from)
	if err != nil {
		return from, to, fmt.Errorf("bad date %q: %w", m.from, err)
	}
	return from, to, nil
}

func monthlyDetails(flags *monthlyFlags, direction finbook.FlowDirection) subcommands.ExitStatus {
	from, to, err := flags.window()
	if err != nil {
		return fail(err)
	}
	book, _, err := DecodeBook()
	if err != nil {
		return fail(err)
	}
	printMarkdown(finbook.NewMonthlyDetails(book, direction, from, to).Markdown())
	return subcommands.ExitSuccess
}

type incomeDetailsCmd struct{ monthlyFlags }

func (*incomeDetailsCmd) Name() string     { return "income-details" }
func (*incomeDetailsCmd) Synopsis() string { return "monthly income pivot by category" }
func (*incomeDetailsCmd) Usage() string {
	return `fin income-details [-from <date>] [-to <date>]

  Shows income per month and category, including the realized net value of
  projects closed in each month.
`
}

func (c *incomeDetailsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return monthlyDetails(&c.monthlyFlags, finbook.Income)
}

type outgoingDetailsCmd struct{ monthlyFlags }

func (*outgoingDetailsCmd) Name() string     { return "outgoing-details" }
func (*outgoingDetailsCmd) Synopsis() string { return "monthly outgoing pivot by category" }
func (*outgoingDetailsCmd) Usage() string {
	return `fin outgoing-details [-from <date>] [-to <date>]

  Shows outgoing per month and category.
`
}

func (c *outgoingDetailsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return monthlyDetails(&c.monthlyFlags, finbook.Expense)
}
