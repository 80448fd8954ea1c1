package finbook

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"

	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// DecodeBook reads a book from a stream of JSONL lines, one entry per line,
// each carrying a "command" field naming its type. Declarations must precede
// the lines that reference them; the canonical encoding guarantees that.
// All project aggregates are recomputed after loading.
func DecodeBook(r io.Reader, home string) (*Book, error) {
	book := NewBook(home)
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	line := 0
	for scanner.Scan() {
		line++
		lineBytes := scanner.Bytes()
		if len(lineBytes) == 0 {
			continue
		}

		var identifier struct {
			Command EntryType `json:"command"`
		}
		if err := json.Unmarshal(lineBytes, &identifier); err != nil {
			return nil, fmt.Errorf("line %d: could not identify command: %w", line, err)
		}

		var err error
		switch identifier.Command {
		case EntryCurrency:
			var c Currency
			if err = json.Unmarshal(lineBytes, &c); err == nil {
				err = book.AddCurrency(&c)
			}
		case EntryCategory:
			var c Category
			if err = json.Unmarshal(lineBytes, &c); err == nil {
				err = book.AddCategory(&c)
			}
		case EntryBank:
			var bk Bank
			if err = json.Unmarshal(lineBytes, &bk); err == nil {
				err = book.AddBank(&bk)
			}
		case EntryRisk:
			var rk Risk
			if err = json.Unmarshal(lineBytes, &rk); err == nil {
				err = book.AddRisk(&rk)
			}
		case EntryAccount:
			var a Account
			if err = json.Unmarshal(lineBytes, &a); err == nil {
				err = book.AddAccount(&a)
			}
		case EntryFlowCategory:
			var c FlowCategory
			if err = json.Unmarshal(lineBytes, &c); err == nil {
				err = book.AddFlowCategory(&c)
			}
		case EntryProject:
			var p Project
			if err = json.Unmarshal(lineBytes, &p); err == nil {
				err = book.AddProject(&p)
			}
		case EntryRecord:
			// Appended raw: balances were already moved when the record was
			// first applied, and aggregates are rebuilt below.
			var rec Record
			if err = json.Unmarshal(lineBytes, &rec); err == nil {
				rec.AutoComplete()
				if err = rec.Validate(); err == nil {
					book.records = append(book.records, &rec)
				}
			}
		case EntryFlow:
			var f FlowRecord
			if err = json.Unmarshal(lineBytes, &f); err == nil {
				book.flows = append(book.flows, &f)
			}
		default:
			err = fmt.Errorf("unknown command %q", identifier.Command)
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading book: %w", err)
	}

	book.stableSort()
	if err := book.RecomputeAll(); err != nil {
		return nil, err
	}
	return book, nil
}

// EncodeEntry writes one entry as a single JSON line.
func EncodeEntry(w io.Writer, entry any) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal entry: %w", err)
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write entry: %w", err)
	}
	return nil
}

// EncodeBook writes the whole book in canonical order: declarations first
// (currencies, categories, banks, risks, accounts, flow categories,
// projects), then flows and records in date order.
func EncodeBook(w io.Writer, book *Book) error {
	decimal.MarshalJSONWithoutQuotes = true
	book.stableSort()

	for c := range book.AllCurrencies() {
		if err := EncodeEntry(w, c); err != nil {
			return err
		}
	}
	for c := range book.AllCategories() {
		if err := EncodeEntry(w, c); err != nil {
			return err
		}
	}
	for bk := range book.AllBanks() {
		if err := EncodeEntry(w, bk); err != nil {
			return err
		}
	}
	for rk := range book.AllRisks() {
		if err := EncodeEntry(w, rk); err != nil {
			return err
		}
	}
	for a := range book.AllAccounts() {
		if err := EncodeEntry(w, a); err != nil {
			return err
		}
	}
	for c := range book.AllFlowCategories() {
		if err := EncodeEntry(w, c); err != nil {
			return err
		}
	}
	for p := range book.AllProjects() {
		if err := EncodeEntry(w, p); err != nil {
			return err
		}
	}
	for f := range book.Flows() {
		if err := EncodeEntry(w, f); err != nil {
			return err
		}
	}
	for r := range book.Records() {
		if err := EncodeEntry(w, r); err != nil {
			return err
		}
	}
	return nil
}
