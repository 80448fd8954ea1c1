package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/shellwx/finbook"
)

type updateCmd struct {
	prices bool
	rates  bool
}

func (*updateCmd) Name() string     { return "update" }
func (*updateCmd) Synopsis() string { return "refresh project prices and currency rates" }
func (*updateCmd) Usage() string {
	return `fin update [-prices] [-rates]

  Fetches the current price of every open project whose category names a
  quote driver, and the home rate of every foreign currency. With no flag
  both are refreshed. Responses are cached on disk for the day. A source
  being down is reported but never blocks the rest.
`
}

func (c *updateCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.prices, "prices", false, "Refresh project prices only.")
	f.BoolVar(&c.rates, "rates", false, "Refresh currency rates only.")
}

func (c *updateCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	book, cfg, err := DecodeBook()
	if err != nil {
		return fail(err)
	}
	if err := cfg.Validate(book, finbook.DefaultRegistry()); err != nil {
		return fail(err)
	}

	client := finbook.Daily()
	client.Timeout = cfg.QuoteTimeout

	both := !c.prices && !c.rates
	var failed bool
	if c.rates || both {
		if err := book.UpdateRates(client); err != nil {
			fmt.Fprintln(os.Stderr, err)
			failed = true
		}
	}
	if c.prices || both {
		if err := book.UpdatePrices(finbook.DefaultRegistry(), client); err != nil {
			fmt.Fprintln(os.Stderr, err)
			failed = true
		}
	}

	if status := EncodeBook(cfg, book); status != subcommands.ExitSuccess {
		return status
	}
	if failed {
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
