package finbook

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RecordKind is the kind of an investment record.
type RecordKind string

const (
	Buy      RecordKind = "buy"
	Sell     RecordKind = "sell"
	Dividend RecordKind = "dividend"
)

// ParseRecordKind parses a string into a RecordKind.
func ParseRecordKind(s string) (RecordKind, error) {
	switch RecordKind(s) {
	case Buy, Sell, Dividend:
		return RecordKind(s), nil
	default:
		return "", fmt.Errorf("unknown record kind: %q", s)
	}
}

// Record is a single buy, sell, or dividend transaction of a project.
//
// Price, Value, and Commission are nullable: at most one of them may be left
// unset and derived from the other two by AutoComplete. Rate is an optional
// per-record conversion rate (home currency per unit of project currency)
// captured at transaction time.
type Record struct {
	ID         string              `json:"id"`
	Project    string              `json:"project"`
	Date       Date                `json:"date"`
	Kind       RecordKind          `json:"kind"`
	Amount     decimal.Decimal     `json:"amount"`
	Price      decimal.NullDecimal `json:"price"`
	Value      decimal.NullDecimal `json:"value"`
	Commission decimal.NullDecimal `json:"commission"`
	Rate       decimal.NullDecimal `json:"rate"`
}

// NewRecord creates a record with a fresh identity.
func NewRecord(project string, day Date, kind RecordKind, amount decimal.Decimal) *Record {
	return &Record{
		ID:      uuid.NewString(),
		Project: project,
		Date:    day,
		Kind:    kind,
		Amount:  amount,
	}
}

func n(d decimal.Decimal) decimal.NullDecimal {
	return decimal.NullDecimal{Decimal: d, Valid: true}
}

// WithPrice sets the unit price.
func (r *Record) WithPrice(price decimal.Decimal) *Record {
	r.Price = n(price)
	return r
}

// WithValue sets the total value.
func (r *Record) WithValue(value decimal.Decimal) *Record {
	r.Value = n(value)
	return r
}

// WithCommission sets the commission.
func (r *Record) WithCommission(commission decimal.Decimal) *Record {
	r.Commission = n(commission)
	return r
}

// WithRate sets the per-record conversion rate.
func (r *Record) WithRate(rate decimal.Decimal) *Record {
	r.Rate = n(rate)
	return r
}

// AutoComplete derives the one missing field among price, value, and
// commission from the identity value = amount*price + commission.
//
// It is idempotent and never overwrites a field that is already set. With
// two or more fields missing it leaves the record as-is; validation catches
// that before the record enters a book. Dividend records are exempt: they
// carry a value only.
func (r *Record) AutoComplete() {
	if r.Kind == Dividend {
		return
	}
	switch {
	case r.Price.Valid && r.Value.Valid && !r.Commission.Valid:
		r.Commission = n(r.Value.Decimal.Sub(r.Amount.Mul(r.Price.Decimal)))
	case r.Price.Valid && !r.Value.Valid && r.Commission.Valid:
		r.Value = n(r.Commission.Decimal.Add(r.Amount.Mul(r.Price.Decimal)))
	case !r.Price.Valid && r.Value.Valid && r.Commission.Valid:
		if r.Amount.IsZero() {
			return // cannot divide, leave price unset
		}
		r.Price = n(r.Value.Decimal.Sub(r.Commission.Decimal).Div(r.Amount))
	}
}

// Validate checks that the record is complete enough to enter a book.
func (r *Record) Validate() error {
	if r.Project == "" {
		return fmt.Errorf("record project is missing")
	}
	if r.Date.IsZero() {
		return fmt.Errorf("record date is missing")
	}
	if _, err := ParseRecordKind(string(r.Kind)); err != nil {
		return err
	}
	if r.Kind == Dividend {
		if !r.Value.Valid {
			return fmt.Errorf("dividend record needs a value")
		}
		return nil
	}
	if !r.Value.Valid {
		return fmt.Errorf("record value is missing after auto-complete; set two of price, value, commission")
	}
	return nil
}

// CashValue returns the record's total value, or false when it is unset.
func (r *Record) CashValue() (decimal.Decimal, bool) {
	return r.Value.Decimal, r.Value.Valid
}

// MarshalJSON implements the json.Marshaler interface for Record.
func (r Record) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("command", EntryRecord)
	w.Append("id", r.ID)
	w.Append("project", r.Project)
	w.Append("date", r.Date)
	w.Append("kind", r.Kind)
	w.Append("amount", r.Amount)
	if r.Price.Valid {
		w.Append("price", r.Price.Decimal)
	}
	if r.Value.Valid {
		w.Append("value", r.Value.Decimal)
	}
	if r.Commission.Valid {
		w.Append("commission", r.Commission.Decimal)
	}
	if r.Rate.Valid {
		w.Append("rate", r.Rate.Decimal)
	}
	return w.MarshalJSON()
}
