package finbook

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// EntryType is a typed string identifying the kind of a book entry line.
type EntryType string

// Entry types used in the book's JSONL persistence.
const (
	EntryCurrency     EntryType = "currency"
	EntryCategory     EntryType = "category"
	EntryBank         EntryType = "bank"
	EntryRisk         EntryType = "risk"
	EntryAccount      EntryType = "account"
	EntryFlowCategory EntryType = "flow-category"
	EntryFlow         EntryType = "flow"
	EntryProject      EntryType = "project"
	EntryRecord       EntryType = "record"
)

// CategoryClass partitions categories into balance-sheet classes.
type CategoryClass int

const (
	CurrentAsset CategoryClass = iota + 1
	CurrentLiability
	FixedAsset
	LongTermLiability
	Investment
)

func (c CategoryClass) String() string {
	switch c {
	case CurrentAsset:
		return "current-asset"
	case CurrentLiability:
		return "current-liability"
	case FixedAsset:
		return "fixed-asset"
	case LongTermLiability:
		return "long-term-liability"
	case Investment:
		return "investment"
	default:
		return "unknown"
	}
}

// IsAsset reports whether the class counts toward assets on the balance sheet.
func (c CategoryClass) IsAsset() bool {
	return c == CurrentAsset || c == FixedAsset || c == Investment
}

// ParseCategoryClass parses a string into a CategoryClass.
func ParseCategoryClass(s string) (CategoryClass, error) {
	switch s {
	case "current-asset":
		return CurrentAsset, nil
	case "current-liability":
		return CurrentLiability, nil
	case "fixed-asset":
		return FixedAsset, nil
	case "long-term-liability":
		return LongTermLiability, nil
	case "investment":
		return Investment, nil
	default:
		return 0, fmt.Errorf("unknown category class: %q", s)
	}
}

func (c CategoryClass) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf("%q", c.String())), nil
}

func (c *CategoryClass) UnmarshalJSON(b []byte) error {
	s := string(b)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	class, err := ParseCategoryClass(s)
	if err != nil {
		return err
	}
	*c = class
	return nil
}

// FlowDirection tells whether a flow category is income or expense.
type FlowDirection string

const (
	Income  FlowDirection = "income"
	Expense FlowDirection = "expense"
)

// ParseFlowDirection parses a string into a FlowDirection.
func ParseFlowDirection(s string) (FlowDirection, error) {
	switch FlowDirection(s) {
	case Income, Expense:
		return FlowDirection(s), nil
	default:
		return "", fmt.Errorf("unknown flow direction: %q", s)
	}
}

// Currency is a currency the book knows about, with its home-relative rate
// (home currency units per one unit of this currency). The home currency
// itself carries a rate of 1 and is never fetched.
type Currency struct {
	Code string          `json:"code"`
	Rate decimal.Decimal `json:"rate"`
}

// MarshalJSON implements the json.Marshaler interface for Currency.
func (c Currency) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("command", EntryCurrency)
	w.Append("code", c.Code)
	w.Append("rate", c.Rate)
	return w.MarshalJSON()
}

// Category classifies accounts and projects for the balance sheet. Investment
// categories may name the quote driver used to refresh their projects' prices.
type Category struct {
	Name   string        `json:"name"`
	Class  CategoryClass `json:"class"`
	Driver string        `json:"driver,omitempty"`
}

// MarshalJSON implements the json.Marshaler interface for Category.
func (c Category) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("command", EntryCategory)
	w.Append("name", c.Name)
	w.Append("class", c.Class)
	w.Optional("driver", c.Driver)
	return w.MarshalJSON()
}

// Bank is a named institution holding accounts.
type Bank struct {
	Name string `json:"name"`
}

// MarshalJSON implements the json.Marshaler interface for Bank.
func (b Bank) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("command", EntryBank)
	w.Append("name", b.Name)
	return w.MarshalJSON()
}

// Risk is a named risk level assigned to projects.
type Risk struct {
	Name string `json:"name"`
}

// MarshalJSON implements the json.Marshaler interface for Risk.
func (r Risk) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("command", EntryRisk)
	w.Append("name", r.Name)
	return w.MarshalJSON()
}

// Account is a bank account with a balance in a single currency.
type Account struct {
	Bank     string          `json:"bank"`
	Name     string          `json:"name"`
	Currency string          `json:"currency"`
	Category string          `json:"category"`
	Balance  decimal.Decimal `json:"balance"`
}

// Key returns the unique identifier of the account within the book.
func (a *Account) Key() string { return a.Bank + "-" + a.Name }

// MarshalJSON implements the json.Marshaler interface for Account.
func (a Account) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("command", EntryAccount)
	w.Append("bank", a.Bank)
	w.Append("name", a.Name)
	w.Append("currency", a.Currency)
	w.Append("category", a.Category)
	w.Append("balance", a.Balance)
	return w.MarshalJSON()
}

// FlowCategory classifies income and expense flows.
type FlowCategory struct {
	Name      string        `json:"name"`
	Direction FlowDirection `json:"direction"`
}

// MarshalJSON implements the json.Marshaler interface for FlowCategory.
func (c FlowCategory) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("command", EntryFlowCategory)
	w.Append("name", c.Name)
	w.Append("direction", c.Direction)
	return w.MarshalJSON()
}

// FlowRecord is a dated income or expense entry against an account.
type FlowRecord struct {
	ID       string          `json:"id"`
	Account  string          `json:"account,omitempty"`
	Date     Date            `json:"date"`
	Category string          `json:"category"`
	Value    decimal.Decimal `json:"value"`
	Comment  string          `json:"comment,omitempty"`
}

// MarshalJSON implements the json.Marshaler interface for FlowRecord.
func (f FlowRecord) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("command", EntryFlow)
	w.Append("id", f.ID)
	w.Optional("account", f.Account)
	w.Append("date", f.Date)
	w.Append("category", f.Category)
	w.Append("value", f.Value)
	w.Optional("comment", f.Comment)
	return w.MarshalJSON()
}
