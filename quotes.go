package finbook

import (
	"fmt"
	"net/http"
	"slices"

	"github.com/shopspring/decimal"
)

// Quoter fetches the current unit price behind a quote id. Each driver
// defines what the id means: a sina symbol, an eastmoney fund code, a
// coingecko coin id, an SGE instrument name.
type Quoter func(client *http.Client, id string) (decimal.Decimal, error)

// Registry maps driver names to Quoters. Categories name their driver, and
// the name is resolved here, explicitly, when prices are updated or the
// configuration is validated.
type Registry struct {
	drivers map[string]Quoter
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{drivers: make(map[string]Quoter)}
}

// Register binds a driver name. Rebinding an existing name is an error.
func (r *Registry) Register(name string, q Quoter) error {
	if name == "" {
		return fmt.Errorf("driver name is missing")
	}
	if _, exists := r.drivers[name]; exists {
		return fmt.Errorf("driver %q already registered", name)
	}
	r.drivers[name] = q
	return nil
}

// Get resolves a driver name.
func (r *Registry) Get(name string) (Quoter, bool) {
	q, ok := r.drivers[name]
	return q, ok
}

// Names lists the registered driver names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.drivers))
	for name := range r.drivers {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// DefaultRegistry returns a registry with all built-in drivers bound.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register("sina", SinaQuote)
	r.Register("eastmoney", EastmoneyQuote)
	r.Register("coingecko", CoingeckoQuote)
	r.Register("sge", SGEQuote)
	return r
}
