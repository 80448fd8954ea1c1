package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"
	"github.com/shellwx/finbook"
)

type newProjectCmd struct {
	code     string
	url      string
	account  string
	category string
	risk     string
	quoteID  string
	comment  string
}

func (*newProjectCmd) Name() string     { return "new-project" }
func (*newProjectCmd) Synopsis() string { return "open a new investment project" }
func (*newProjectCmd) Usage() string {
	return `fin new-project -account <key> -category <name> [-code <code>] [-risk <risk>] [-quote <id>] <name>

  Opens an investment project held on an account. The quote id is what the
  category's quote driver needs to fetch a current price.
`
}

func (c *newProjectCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.account, "account", "", "Account key (bank-name) holding the project.")
	f.StringVar(&c.category, "category", "", "Investment category of the project.")
	f.StringVar(&c.code, "code", "", "Instrument code, for humans.")
	f.StringVar(&c.url, "url", "", "Reference URL.")
	f.StringVar(&c.risk, "risk", "", "Risk level.")
	f.StringVar(&c.quoteID, "quote", "", "Quote id for the category's driver.")
	f.StringVar(&c.comment, "comment", "", "Free-form comment.")
}

func (c *newProjectCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		return fail(fmt.Errorf("usage: fin new-project -account <key> -category <name> <name>"))
	}
	book, cfg, err := DecodeBook()
	if err != nil {
		return fail(err)
	}
	p := finbook.NewProject(f.Arg(0), c.account, c.category)
	p.Code = c.code
	p.URL = c.url
	p.Risk = c.risk
	p.QuoteID = c.quoteID
	p.Comment = c.comment
	if err := book.AddProject(p); err != nil {
		return fail(err)
	}
	return EncodeBook(cfg, book)
}

type closeProjectCmd struct{}

func (*closeProjectCmd) Name() string     { return "close-project" }
func (*closeProjectCmd) Synopsis() string { return "close an investment project" }
func (*closeProjectCmd) Usage() string {
	return `fin close-project <name>

  Marks a project closed. Its end date becomes the date of its last record
  and its realized result counts as investment income from then on.
`
}

func (c *closeProjectCmd) SetFlags(f *flag.FlagSet) {}

func (c *closeProjectCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		return fail(fmt.Errorf("usage: fin close-project <name>"))
	}
	book, cfg, err := DecodeBook()
	if err != nil {
		return fail(err)
	}
	p, ok := book.Project(f.Arg(0))
	if !ok {
		return fail(fmt.Errorf("unknown project %q", f.Arg(0)))
	}
	p.Open = false
	if err := book.Recompute(p); err != nil {
		return fail(err)
	}
	return EncodeBook(cfg, book)
}

type projectsCmd struct {
	all bool
}

func (*projectsCmd) Name() string     { return "projects" }
func (*projectsCmd) Synopsis() string { return "list projects and their results" }
func (*projectsCmd) Usage() string {
	return `fin projects [-all]

  Lists open projects with their position and result. -all includes closed ones.
`
}

func (c *projectsCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.all, "all", false, "Include closed projects.")
}

func (c *projectsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	book, _, err := DecodeBook()
	if err != nil {
		return fail(err)
	}
	printMarkdown(finbook.ProjectList(book, !c.all))
	return subcommands.ExitSuccess
}

type statCmd struct{}

func (*statCmd) Name() string     { return "stat" }
func (*statCmd) Synopsis() string { return "show one project in detail" }
func (*statCmd) Usage() string {
	return `fin stat <project>

  Shows a project's position, averages, result, IRRs and records.
`
}

func (c *statCmd) SetFlags(f *flag.FlagSet) {}

func (c *statCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		return fail(fmt.Errorf("usage: fin stat <project>"))
	}
	book, _, err := DecodeBook()
	if err != nil {
		return fail(err)
	}
	p, ok := book.Project(f.Arg(0))
	if !ok {
		return fail(fmt.Errorf("unknown project %q", f.Arg(0)))
	}
	printMarkdown(finbook.ProjectStat(book, p))
	return subcommands.ExitSuccess
}
