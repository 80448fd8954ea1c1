// Package cmd implements the CLI application to manage a finance book.
package cmd

import (
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/shellwx/finbook"
)

// Register the subcommands.
// A main package calls Register() to declare them all, and Execute() on the
// user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&initCmd{}, "setup")
	c.Register(&addCurrencyCmd{}, "setup")
	c.Register(&addCategoryCmd{}, "setup")
	c.Register(&addBankCmd{}, "setup")
	c.Register(&addRiskCmd{}, "setup")
	c.Register(&addAccountCmd{}, "setup")
	c.Register(&addFlowCategoryCmd{}, "setup")
	c.Register(&newProjectCmd{}, "setup")
	c.Register(&closeProjectCmd{}, "setup")

	c.Register(&buyCmd{}, "transactions")
	c.Register(&sellCmd{}, "transactions")
	c.Register(&dividendCmd{}, "transactions")
	c.Register(&flowCmd{}, "transactions")
	c.Register(&retractCmd{}, "transactions")

	c.Register(&balanceCmd{}, "reports")
	c.Register(&iosCmd{}, "reports")
	c.Register(&incomeDetailsCmd{}, "reports")
	c.Register(&outgoingDetailsCmd{}, "reports")
	c.Register(&projectsCmd{}, "reports")
	c.Register(&statCmd{}, "reports")

	c.Register(&updateCmd{}, "maintenance")
	c.Register(&fmtCmd{}, "maintenance")
	c.Register(&topicCmd{}, "maintenance")
	c.Register(&assistCmd{}, "maintenance")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var configFile = flag.String("config", "finbook.toml", "Path to the configuration file")
var bookFile = flag.String("book", "", "Path to the book file (overrides configuration)")

func loadConfig() (*finbook.Config, error) {
	cfg, err := finbook.LoadConfig(*configFile)
	if err != nil {
		return nil, err
	}
	if *bookFile != "" {
		cfg.Book = *bookFile
	}
	return cfg, nil
}

// DecodeBook loads the configured book.
func DecodeBook() (*finbook.Book, *finbook.Config, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	book, err := finbook.LoadBook(cfg.Book, cfg.HomeCurrency)
	if err != nil {
		return nil, nil, err
	}
	return book, cfg, nil
}

// EncodeBook saves the book back to its configured file.
func EncodeBook(cfg *finbook.Config, book *finbook.Book) subcommands.ExitStatus {
	if err := finbook.SaveBook(cfg.Book, book); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving book %q: %v\n", cfg.Book, err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

// fail prints the error and returns the failure status.
func fail(err error) subcommands.ExitStatus {
	fmt.Fprintln(os.Stderr, err)
	return subcommands.ExitFailure
}
