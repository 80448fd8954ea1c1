package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"
	"github.com/google/uuid"
	"github.com/shellwx/finbook"
	"github.com/shopspring/decimal"
)

type flowCmd struct {
	date     string
	account  string
	category string
	comment  string
}

func (*flowCmd) Name() string     { return "flow" }
func (*flowCmd) Synopsis() string { return "record an income or expense" }
func (*flowCmd) Usage() string {
	return `fin flow -cat <category> [-d <date>] [-account <key>] [-comment <text>] <value>

  Records an income or expense flow. The direction comes from the flow
  category. When an account is named, its balance moves accordingly.
`
}

func (c *flowCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", finbook.Today().String(), "Date of the flow (YYYY-MM-DD).")
	f.StringVar(&c.account, "account", "", "Account key (bank-name) the flow settles on.")
	f.StringVar(&c.category, "cat", "", "Flow category.")
	f.StringVar(&c.comment, "comment", "", "Free-form comment.")
}

func (c *flowCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		return fail(fmt.Errorf("usage: fin flow -cat <category> <value>"))
	}
	day, err := finbook.ParseDate(c.date)
	if err != nil {
		return fail(fmt.Errorf("bad date %q: %w", c.date, err))
	}
	value, err := decimal.NewFromString(f.Arg(0))
	if err != nil {
		return fail(fmt.Errorf("bad value %q: %w", f.Arg(0), err))
	}

	book, cfg, err := DecodeBook()
	if err != nil {
		return fail(err)
	}
	flow := &finbook.FlowRecord{
		ID:       uuid.NewString(),
		Account:  c.account,
		Date:     day,
		Category: c.category,
		Value:    value,
		Comment:  c.comment,
	}
	if err := book.ApplyFlow(flow); err != nil {
		return fail(err)
	}
	fmt.Printf("Applied flow %s\n", flow.ID)
	return EncodeBook(cfg, book)
}
