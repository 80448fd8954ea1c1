package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"
)

type fmtCmd struct{}

func (*fmtCmd) Name() string { return "fmt" }
func (*fmtCmd) Synopsis() string {
	return "validates and formats the book file into a canonical form"
}
func (*fmtCmd) Usage() string {
	return `fin fmt

  Reads the whole book, validates every line, recomputes all project
  aggregates, and writes it back in canonical order: declarations first,
  then flows and records sorted by date.
`
}

func (c *fmtCmd) SetFlags(f *flag.FlagSet) {}

func (c *fmtCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	book, cfg, err := DecodeBook()
	if err != nil {
		return fail(err)
	}
	fmt.Printf("Formatting book %q\n", cfg.Book)
	return EncodeBook(cfg, book)
}
