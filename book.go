package finbook

import (
	"fmt"
	"iter"
	"maps"
	"slices"
	"sort"

	"github.com/shopspring/decimal"
)

// Book holds the whole ledger: declared entities (currencies, categories,
// banks, risks, accounts, flow categories, projects) plus the dated record
// and flow lines. Records and flows are kept sorted by date.
type Book struct {
	home string

	currencies     map[string]*Currency
	categories     map[string]*Category
	banks          map[string]*Bank
	risks          map[string]*Risk
	accounts       map[string]*Account
	flowCategories map[string]*FlowCategory
	projects       map[string]*Project

	records []*Record
	flows   []*FlowRecord
}

// NewBook creates an empty book with the given home currency.
func NewBook(home string) *Book {
	return &Book{
		home:           home,
		currencies:     make(map[string]*Currency),
		categories:     make(map[string]*Category),
		banks:          make(map[string]*Bank),
		risks:          make(map[string]*Risk),
		accounts:       make(map[string]*Account),
		flowCategories: make(map[string]*FlowCategory),
		projects:       make(map[string]*Project),
	}
}

// Home returns the book's home currency code. Every currency rate in the
// book is expressed in home units per foreign unit.
func (b *Book) Home() string { return b.home }

// SetHome changes the home currency code.
func (b *Book) SetHome(code string) { b.home = code }

// AddCurrency declares a currency. The home currency is pinned to rate 1.
func (b *Book) AddCurrency(c *Currency) error {
	if c.Code == "" {
		return fmt.Errorf("currency code is missing")
	}
	if _, exists := b.currencies[c.Code]; exists {
		return fmt.Errorf("currency %q already declared", c.Code)
	}
	if c.Code == b.home {
		c.Rate = decimal.NewFromInt(1)
	}
	b.currencies[c.Code] = c
	return nil
}

// Currency looks up a declared currency by code.
func (b *Book) Currency(code string) (*Currency, bool) {
	c, ok := b.currencies[code]
	return c, ok
}

// Rate returns the home-relative rate of a currency code. The home currency
// and unknown currencies both resolve to 1: an undeclared currency is left
// unconverted rather than zeroed out.
func (b *Book) Rate(code string) decimal.Decimal {
	if code == b.home {
		return decimal.NewFromInt(1)
	}
	if c, ok := b.currencies[code]; ok {
		return c.Rate
	}
	return decimal.NewFromInt(1)
}

// AddCategory declares an account/project category.
func (b *Book) AddCategory(c *Category) error {
	if c.Name == "" {
		return fmt.Errorf("category name is missing")
	}
	if _, exists := b.categories[c.Name]; exists {
		return fmt.Errorf("category %q already declared", c.Name)
	}
	b.categories[c.Name] = c
	return nil
}

// Category looks up a declared category by name.
func (b *Book) Category(name string) (*Category, bool) {
	c, ok := b.categories[name]
	return c, ok
}

// AddBank declares a bank.
func (b *Book) AddBank(bank *Bank) error {
	if bank.Name == "" {
		return fmt.Errorf("bank name is missing")
	}
	if _, exists := b.banks[bank.Name]; exists {
		return fmt.Errorf("bank %q already declared", bank.Name)
	}
	b.banks[bank.Name] = bank
	return nil
}

// AddRisk declares a risk level.
func (b *Book) AddRisk(r *Risk) error {
	if r.Name == "" {
		return fmt.Errorf("risk name is missing")
	}
	if _, exists := b.risks[r.Name]; exists {
		return fmt.Errorf("risk %q already declared", r.Name)
	}
	b.risks[r.Name] = r
	return nil
}

// AddAccount declares a bank account. Its bank, currency and category must
// already be declared.
func (b *Book) AddAccount(a *Account) error {
	if a.Name == "" {
		return fmt.Errorf("account name is missing")
	}
	if _, ok := b.banks[a.Bank]; !ok {
		return fmt.Errorf("account %q: unknown bank %q", a.Name, a.Bank)
	}
	if _, ok := b.currencies[a.Currency]; !ok && a.Currency != b.home {
		return fmt.Errorf("account %q: unknown currency %q", a.Name, a.Currency)
	}
	if _, ok := b.categories[a.Category]; !ok {
		return fmt.Errorf("account %q: unknown category %q", a.Name, a.Category)
	}
	if _, exists := b.accounts[a.Key()]; exists {
		return fmt.Errorf("account %q already declared", a.Key())
	}
	b.accounts[a.Key()] = a
	return nil
}

// Account looks up an account by its bank-name key.
func (b *Book) Account(key string) (*Account, bool) {
	a, ok := b.accounts[key]
	return a, ok
}

// AddFlowCategory declares an income or expense category.
func (b *Book) AddFlowCategory(c *FlowCategory) error {
	if c.Name == "" {
		return fmt.Errorf("flow category name is missing")
	}
	if _, err := ParseFlowDirection(string(c.Direction)); err != nil {
		return fmt.Errorf("flow category %q: %w", c.Name, err)
	}
	if _, exists := b.flowCategories[c.Name]; exists {
		return fmt.Errorf("flow category %q already declared", c.Name)
	}
	b.flowCategories[c.Name] = c
	return nil
}

// FlowCategory looks up a declared flow category by name.
func (b *Book) FlowCategory(name string) (*FlowCategory, bool) {
	c, ok := b.flowCategories[name]
	return c, ok
}

// AddProject declares a project. Its account and category must exist.
func (b *Book) AddProject(p *Project) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if _, ok := b.accounts[p.Account]; !ok {
		return fmt.Errorf("project %q: unknown account %q", p.Name, p.Account)
	}
	if _, ok := b.categories[p.Category]; !ok {
		return fmt.Errorf("project %q: unknown category %q", p.Name, p.Category)
	}
	if p.Risk != "" {
		if _, ok := b.risks[p.Risk]; !ok {
			return fmt.Errorf("project %q: unknown risk %q", p.Name, p.Risk)
		}
	}
	if _, exists := b.projects[p.Name]; exists {
		return fmt.Errorf("project %q already declared", p.Name)
	}
	b.projects[p.Name] = p
	return nil
}

// Project looks up a project by name.
func (b *Book) Project(name string) (*Project, bool) {
	p, ok := b.projects[name]
	return p, ok
}

// AllCurrencies iterates over declared currencies in code order.
func (b *Book) AllCurrencies() iter.Seq[*Currency] {
	return sortedValues(b.currencies)
}

// AllCategories iterates over declared categories in name order.
func (b *Book) AllCategories() iter.Seq[*Category] {
	return sortedValues(b.categories)
}

// AllBanks iterates over declared banks in name order.
func (b *Book) AllBanks() iter.Seq[*Bank] {
	return sortedValues(b.banks)
}

// AllRisks iterates over declared risk levels in name order.
func (b *Book) AllRisks() iter.Seq[*Risk] {
	return sortedValues(b.risks)
}

// AllAccounts iterates over declared accounts in key order.
func (b *Book) AllAccounts() iter.Seq[*Account] {
	return sortedValues(b.accounts)
}

// AllFlowCategories iterates over declared flow categories in name order.
func (b *Book) AllFlowCategories() iter.Seq[*FlowCategory] {
	return sortedValues(b.flowCategories)
}

// AllProjects iterates over declared projects in name order.
func (b *Book) AllProjects() iter.Seq[*Project] {
	return sortedValues(b.projects)
}

func sortedValues[V any](m map[string]V) iter.Seq[V] {
	return func(yield func(V) bool) {
		for k := range sortedKeys(m) {
			if !yield(m[k]) {
				return
			}
		}
	}
}

func sortedKeys[V any](m map[string]V) iter.Seq[string] {
	return func(yield func(string) bool) {
		keys := slices.Collect(maps.Keys(m))
		slices.Sort(keys)
		for _, k := range keys {
			if !yield(k) {
				return
			}
		}
	}
}

// Records returns an iterator over all records in date order.
func (b *Book) Records() iter.Seq[*Record] {
	return slices.Values(b.records)
}

// Flows returns an iterator over all flow records in date order.
func (b *Book) Flows() iter.Seq[*FlowRecord] {
	return slices.Values(b.flows)
}

// ProjectRecords returns the records of one project in date order.
func (b *Book) ProjectRecords(project string) []*Record {
	var recs []*Record
	for _, r := range b.records {
		if r.Project == project {
			recs = append(recs, r)
		}
	}
	return recs
}

// Record looks up a record by id.
func (b *Book) Record(id string) (*Record, bool) {
	for _, r := range b.records {
		if r.ID == id {
			return r, true
		}
	}
	return nil, false
}

// Flow looks up a flow record by id.
func (b *Book) Flow(id string) (*FlowRecord, bool) {
	for _, f := range b.flows {
		if f.ID == id {
			return f, true
		}
	}
	return nil, false
}

// stableSort keeps records and flows in date order. Entries on the same day
// keep their original relative order.
func (b *Book) stableSort() {
	sort.SliceStable(b.records, func(i, j int) bool {
		return b.records[i].Date.Before(b.records[j].Date)
	})
	sort.SliceStable(b.flows, func(i, j int) bool {
		return b.flows[i].Date.Before(b.flows[j].Date)
	})
}

// Apply auto-completes, validates and appends a record, moves the cash on
// the project's account (buys debit it, sells and dividends credit it), and
// recomputes the project's aggregates.
func (b *Book) Apply(r *Record) error {
	p, ok := b.projects[r.Project]
	if !ok {
		return fmt.Errorf("record: unknown project %q", r.Project)
	}
	r.AutoComplete()
	if err := r.Validate(); err != nil {
		return err
	}
	if _, exists := b.Record(r.ID); exists {
		return fmt.Errorf("record %s already applied", r.ID)
	}

	b.records = append(b.records, r)
	b.stableSort()
	b.moveCash(p, r, false)
	return b.Recompute(p)
}

// Retract removes a record by id, reverses its cash movement, and recomputes
// the project's aggregates. Editing a record is retract then apply.
func (b *Book) Retract(id string) error {
	i := slices.IndexFunc(b.records, func(r *Record) bool { return r.ID == id })
	if i < 0 {
		return fmt.Errorf("record %s not found", id)
	}
	r := b.records[i]
	b.records = slices.Delete(b.records, i, i+1)

	p, ok := b.projects[r.Project]
	if !ok {
		return fmt.Errorf("record %s: unknown project %q", id, r.Project)
	}
	b.moveCash(p, r, true)
	return b.Recompute(p)
}

func (b *Book) moveCash(p *Project, r *Record, reverse bool) {
	a, ok := b.accounts[p.Account]
	if !ok {
		return
	}
	v, ok := r.CashValue()
	if !ok {
		return
	}
	if r.Kind == Buy {
		v = v.Neg()
	}
	if reverse {
		v = v.Neg()
	}
	a.Balance = a.Balance.Add(v)
}

// ApplyFlow validates and appends an income or expense flow and moves the
// cash on its account when one is named.
func (b *Book) ApplyFlow(f *FlowRecord) error {
	c, ok := b.flowCategories[f.Category]
	if !ok {
		return fmt.Errorf("flow: unknown category %q", f.Category)
	}
	if f.Date.IsZero() {
		return fmt.Errorf("flow date is missing")
	}
	if f.Account != "" {
		if _, ok := b.accounts[f.Account]; !ok {
			return fmt.Errorf("flow: unknown account %q", f.Account)
		}
	}
	if _, exists := b.Flow(f.ID); exists {
		return fmt.Errorf("flow %s already applied", f.ID)
	}

	b.flows = append(b.flows, f)
	b.stableSort()
	b.moveFlowCash(f, c, false)
	return nil
}

// RetractFlow removes a flow record by id and reverses its cash movement.
func (b *Book) RetractFlow(id string) error {
	i := slices.IndexFunc(b.flows, func(f *FlowRecord) bool { return f.ID == id })
	if i < 0 {
		return fmt.Errorf("flow %s not found", id)
	}
	f := b.flows[i]
	b.flows = slices.Delete(b.flows, i, i+1)
	if c, ok := b.flowCategories[f.Category]; ok {
		b.moveFlowCash(f, c, true)
	}
	return nil
}

func (b *Book) moveFlowCash(f *FlowRecord, c *FlowCategory, reverse bool) {
	if f.Account == "" {
		return
	}
	a, ok := b.accounts[f.Account]
	if !ok {
		return
	}
	v := f.Value
	if c.Direction == Expense {
		v = v.Neg()
	}
	if reverse {
		v = v.Neg()
	}
	a.Balance = a.Balance.Add(v)
}

// Recompute rebuilds a project's aggregates from its records: amounts,
// values, dividends, start and end dates, and both IRR figures. It is
// idempotent; every aggregate is derived from scratch on each call.
func (b *Book) Recompute(p *Project) error {
	p.BuyAmount, p.SellAmount, p.Amount = decimal.Zero, decimal.Zero, decimal.Zero
	p.BuyValue, p.SellValue, p.Value = decimal.Zero, decimal.Zero, decimal.Zero
	p.Dividends = decimal.Zero
	p.Start, p.End = Date{}, Date{}
	p.IRR, p.LocalIRR = decimal.NullDecimal{}, decimal.NullDecimal{}

	recs := b.ProjectRecords(p.Name)
	for _, r := range recs {
		v, ok := r.CashValue()
		if !ok {
			return fmt.Errorf("project %q: record %s on %s has no value", p.Name, r.ID, r.Date)
		}
		switch r.Kind {
		case Buy:
			p.BuyAmount = p.BuyAmount.Add(r.Amount)
			p.BuyValue = p.BuyValue.Add(v)
		case Sell:
			p.SellAmount = p.SellAmount.Add(r.Amount)
			p.SellValue = p.SellValue.Add(v)
		case Dividend:
			p.Dividends = p.Dividends.Add(v)
		}
	}
	p.Amount = p.BuyAmount.Sub(p.SellAmount)
	p.Value = p.BuyValue.Sub(p.SellValue).Sub(p.Dividends)

	if len(recs) > 0 {
		p.Start = recs[0].Date
		if !p.Open {
			p.End = recs[len(recs)-1].Date
		}
	}

	ref := b.irrReference(p, recs)
	if irr, ok := b.solveProjectIRR(p, ref, false); ok {
		p.IRR = n(irr)
	}
	if irr, ok := b.solveProjectIRR(p, ref, true); ok {
		p.LocalIRR = n(irr)
	}
	return nil
}

// irrReference picks the cash-flow reference date: today for an open priced
// project, else the date of the last record.
func (b *Book) irrReference(p *Project, recs []*Record) Date {
	if p.Open && p.CurrentPrice.Valid {
		return Today()
	}
	if len(recs) > 0 {
		return recs[len(recs)-1].Date
	}
	return Today()
}

func (b *Book) solveProjectIRR(p *Project, ref Date, local bool) (decimal.Decimal, bool) {
	flows := b.Cashflow(p, ref, local)
	if !HasSignChange(flows) {
		return decimal.Zero, false
	}
	r, err := SolveIRR(flows)
	if err != nil {
		return decimal.Zero, false
	}
	return decimal.NewFromFloat(float64(Annualize(r))).Round(2), true
}

// RecomputeAll rebuilds the aggregates of every project.
func (b *Book) RecomputeAll() error {
	for p := range b.AllProjects() {
		if err := b.Recompute(p); err != nil {
			return err
		}
	}
	return nil
}
