package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"
	"github.com/shellwx/finbook"
	"github.com/shopspring/decimal"
)

// recordFlags are the fields shared by buy, sell and dividend.
type recordFlags struct {
	date       string
	amount     string
	price      string
	value      string
	commission string
	rate       string
}

func (r *recordFlags) SetFlags(f *flag.FlagSet) {
	f.StringVar(&r.date, "d", finbook.Today().String(), "Date of the record (YYYY-MM-DD).")
	f.StringVar(&r.amount, "a", "0", "Amount of units.")
	f.StringVar(&r.price, "p", "", "Unit price, derived from value and commission when omitted.")
	f.StringVar(&r.value, "v", "", "Total value, derived from price and commission when omitted.")
	f.StringVar(&r.commission, "c", "", "Commission, derived from price and value when omitted.")
	f.StringVar(&r.rate, "rate", "", "Home currency rate captured at transaction time.")
}

func (r *recordFlags) build(project string, kind finbook.RecordKind) (*finbook.Record, error) {
	day, err := finbook.ParseDate(r.date)
	if err != nil {
		return nil, fmt.Errorf("bad date %q: %w", r.date, err)
	}
	amount, err := decimal.NewFromString(r.amount)
	if err != nil {
		return nil, fmt.Errorf("bad amount %q: %w", r.amount, err)
	}
	rec := finbook.NewRecord(project, day, kind, amount)
	set := func(name, s string, with func(decimal.Decimal) *finbook.Record) error {
		if s == "" {
			return nil
		}
		d, err := decimal.NewFromString(s)
		if err != nil {
			return fmt.Errorf("bad %s %q: %w", name, s, err)
		}
		with(d)
		return nil
	}
	if err := set("price", r.price, rec.WithPrice); err != nil {
		return nil, err
	}
	if err := set("value", r.value, rec.WithValue); err != nil {
		return nil, err
	}
	if err := set("commission", r.commission, rec.WithCommission); err != nil {
		return nil, err
	}
	if err := set("rate", r.rate, rec.WithRate); err != nil {
		return nil, err
	}
	return rec, nil
}

func applyRecord(f *flag.FlagSet, flags *recordFlags, kind finbook.RecordKind) subcommands.ExitStatus {
	if f.NArg() != 1 {
		return fail(fmt.Errorf("usage: fin %s [flags] <project>", kind))
	}
	book, cfg, err := DecodeBook()
	if err != nil {
		return fail(err)
	}
	rec, err := flags.build(f.Arg(0), kind)
	if err != nil {
		return fail(err)
	}
	if err := book.Apply(rec); err != nil {
		return fail(err)
	}
	fmt.Printf("Applied %s %s to %s\n", kind, rec.ID, rec.Project)
	return EncodeBook(cfg, book)
}

type buyCmd struct{ recordFlags }

func (*buyCmd) Name() string     { return "buy" }
func (*buyCmd) Synopsis() string { return "record a buy on a project" }
func (*buyCmd) Usage() string {
	return `fin buy -d <date> -a <amount> [-p <price>] [-v <value>] [-c <commission>] <project>

  Records a purchase. Give any two of price, value, commission; the third
  is derived from value = amount * price + commission. The project's account
  is debited by the value.
`
}

func (c *buyCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return applyRecord(f, &c.recordFlags, finbook.Buy)
}

type sellCmd struct{ recordFlags }

func (*sellCmd) Name() string     { return "sell" }
func (*sellCmd) Synopsis() string { return "record a sell on a project" }
func (*sellCmd) Usage() string {
	return `fin sell -d <date> -a <amount> [-p <price>] [-v <value>] [-c <commission>] <project>

  Records a sale. The project's account is credited by the value.
`
}

func (c *sellCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return applyRecord(f, &c.recordFlags, finbook.Sell)
}

type dividendCmd struct{ recordFlags }

func (*dividendCmd) Name() string     { return "dividend" }
func (*dividendCmd) Synopsis() string { return "record a dividend on a project" }
func (*dividendCmd) Usage() string {
	return `fin dividend -d <date> -v <value> <project>

  Records a dividend. Only the value matters; the project's account is
  credited by it.
`
}

func (c *dividendCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return applyRecord(f, &c.recordFlags, finbook.Dividend)
}

type retractCmd struct {
	flow bool
}

func (*retractCmd) Name() string     { return "retract" }
func (*retractCmd) Synopsis() string { return "remove a record or flow by id" }
func (*retractCmd) Usage() string {
	return `fin retract [-flow] <id>

  Removes a record (or, with -flow, an income/expense flow) and reverses
  its effect on the account balance. To edit a record, retract it and
  apply a new one.
`
}

func (c *retractCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.flow, "flow", false, "Retract an income/expense flow instead of a record.")
}

func (c *retractCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		return fail(fmt.Errorf("usage: fin retract [-flow] <id>"))
	}
	book, cfg, err := DecodeBook()
	if err != nil {
		return fail(err)
	}
	if c.flow {
		err = book.RetractFlow(f.Arg(0))
	} else {
		err = book.Retract(f.Arg(0))
	}
	if err != nil {
		return fail(err)
	}
	return EncodeBook(cfg, book)
}
