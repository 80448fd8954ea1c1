package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"
	"github.com/shellwx/finbook"
	"github.com/shopspring/decimal"
)

type initCmd struct {
	home string
}

func (*initCmd) Name() string     { return "init" }
func (*initCmd) Synopsis() string { return "create the configuration and an empty book" }
func (*initCmd) Usage() string {
	return `fin init [-home <currency>]

  Writes a finbook.toml and an empty book file next to it.
`
}

func (c *initCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.home, "home", "CNY", "Home currency of the book.")
}

func (c *initCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg := finbook.DefaultConfig()
	cfg.HomeCurrency = c.home
	if *bookFile != "" {
		cfg.Book = *bookFile
	}
	if err := finbook.SaveConfig(*configFile, cfg); err != nil {
		return fail(err)
	}

	book := finbook.NewBook(cfg.HomeCurrency)
	book.AddCurrency(&finbook.Currency{Code: cfg.HomeCurrency, Rate: decimal.NewFromInt(1)})
	fmt.Printf("Initialized book %q with home currency %s\n", cfg.Book, cfg.HomeCurrency)
	return EncodeBook(cfg, book)
}

type addCurrencyCmd struct {
	rate string
}

func (*addCurrencyCmd) Name() string     { return "add-currency" }
func (*addCurrencyCmd) Synopsis() string { return "declare a currency and its home rate" }
func (*addCurrencyCmd) Usage() string {
	return `fin add-currency [-rate <rate>] <code>

  Declares a currency. The rate is in home units per unit of this currency
  and can be refreshed later with 'fin update'.
`
}

func (c *addCurrencyCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.rate, "rate", "1", "Home currency units per unit of this currency.")
}

func (c *addCurrencyCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		return fail(fmt.Errorf("usage: fin add-currency [-rate <rate>] <code>"))
	}
	rate, err := decimal.NewFromString(c.rate)
	if err != nil {
		return fail(fmt.Errorf("bad rate %q: %w", c.rate, err))
	}

	book, cfg, err := DecodeBook()
	if err != nil {
		return fail(err)
	}
	if err := book.AddCurrency(&finbook.Currency{Code: f.Arg(0), Rate: rate}); err != nil {
		return fail(err)
	}
	return EncodeBook(cfg, book)
}

type addCategoryCmd struct {
	class  string
	driver string
}

func (*addCategoryCmd) Name() string     { return "add-category" }
func (*addCategoryCmd) Synopsis() string { return "declare an account/project category" }
func (*addCategoryCmd) Usage() string {
	return `fin add-category -class <class> [-driver <driver>] <name>

  Declares a balance-sheet category. Class is one of current-asset,
  current-liability, fixed-asset, long-term-liability, investment.
  Investment categories may name the quote driver for their projects.
`
}

func (c *addCategoryCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.class, "class", "", "Balance-sheet class of the category.")
	f.StringVar(&c.driver, "driver", "", "Quote driver for projects in this category.")
}

func (c *addCategoryCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		return fail(fmt.Errorf("usage: fin add-category -class <class> <name>"))
	}
	class, err := finbook.ParseCategoryClass(c.class)
	if err != nil {
		return fail(err)
	}
	if c.driver != "" {
		if _, ok := finbook.DefaultRegistry().Get(c.driver); !ok {
			return fail(fmt.Errorf("unknown quote driver %q (have %v)",
				c.driver, finbook.DefaultRegistry().Names()))
		}
	}

	book, cfg, err := DecodeBook()
	if err != nil {
		return fail(err)
	}
	if err := book.AddCategory(&finbook.Category{Name: f.Arg(0), Class: class, Driver: c.driver}); err != nil {
		return fail(err)
	}
	return EncodeBook(cfg, book)
}

type addBankCmd struct{}

func (*addBankCmd) Name() string     { return "add-bank" }
func (*addBankCmd) Synopsis() string { return "declare a bank" }
func (*addBankCmd) Usage() string {
	return `fin add-bank <name>
`
}

func (c *addBankCmd) SetFlags(f *flag.FlagSet) {}

func (c *addBankCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		return fail(fmt.Errorf("usage: fin add-bank <name>"))
	}
	book, cfg, err := DecodeBook()
	if err != nil {
		return fail(err)
	}
	if err := book.AddBank(&finbook.Bank{Name: f.Arg(0)}); err != nil {
		return fail(err)
	}
	return EncodeBook(cfg, book)
}

type addRiskCmd struct{}

func (*addRiskCmd) Name() string     { return "add-risk" }
func (*addRiskCmd) Synopsis() string { return "declare a risk level" }
func (*addRiskCmd) Usage() string {
	return `fin add-risk <name>
`
}

func (c *addRiskCmd) SetFlags(f *flag.FlagSet) {}

func (c *addRiskCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		return fail(fmt.Errorf("usage: fin add-risk <name>"))
	}
	book, cfg, err := DecodeBook()
	if err != nil {
		return fail(err)
	}
	if err := book.AddRisk(&finbook.Risk{Name: f.Arg(0)}); err != nil {
		return fail(err)
	}
	return EncodeBook(cfg, book)
}

type addAccountCmd struct {
	bank     string
	currency string
	category string
	balance  string
}

func (*addAccountCmd) Name() string     { return "add-account" }
func (*addAccountCmd) Synopsis() string { return "declare a bank account" }
func (*addAccountCmd) Usage() string {
	return `fin add-account -bank <bank> -currency <code> -category <name> [-balance <value>] <name>

  Declares an account. Its key within the book is "<bank>-<name>".
`
}

func (c *addAccountCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.bank, "bank", "", "Bank holding the account.")
	f.StringVar(&c.currency, "currency", "", "Currency of the account.")
	f.StringVar(&c.category, "category", "", "Balance-sheet category of the account.")
	f.StringVar(&c.balance, "balance", "0", "Opening balance.")
}

func (c *addAccountCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		return fail(fmt.Errorf("usage: fin add-account -bank <bank> -currency <code> -category <name> <name>"))
	}
	balance, err := decimal.NewFromString(c.balance)
	if err != nil {
		return fail(fmt.Errorf("bad balance %q: %w", c.balance, err))
	}

	book, cfg, err := DecodeBook()
	if err != nil {
		return fail(err)
	}
	account := &finbook.Account{
		Bank:     c.bank,
		Name:     f.Arg(0),
		Currency: c.currency,
		Category: c.category,
		Balance:  balance,
	}
	if err := book.AddAccount(account); err != nil {
		return fail(err)
	}
	return EncodeBook(cfg, book)
}

type addFlowCategoryCmd struct {
	direction string
}

func (*addFlowCategoryCmd) Name() string     { return "add-flow-category" }
func (*addFlowCategoryCmd) Synopsis() string { return "declare an income or expense category" }
func (*addFlowCategoryCmd) Usage() string {
	return `fin add-flow-category -direction <income|expense> <name>
`
}

func (c *addFlowCategoryCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.direction, "direction", "", "income or expense.")
}

func (c *addFlowCategoryCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		return fail(fmt.Errorf("usage: fin add-flow-category -direction <income|expense> <name>"))
	}
	direction, err := finbook.ParseFlowDirection(c.direction)
	if err != nil {
		return fail(err)
	}
	book, cfg, err := DecodeBook()
	if err != nil {
		return fail(err)
	}
	if err := book.AddFlowCategory(&finbook.FlowCategory{Name: f.Arg(0), Direction: direction}); err != nil {
		return fail(err)
	}
	return EncodeBook(cfg, book)
}
