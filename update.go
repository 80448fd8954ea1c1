package finbook

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/phuslu/log"
)

// UpdatePrices refreshes the current price of every open project whose
// category names a quote driver and which carries a quote id. Failures are
// collected, not fatal: a source being down leaves that project's last
// known price in place and the others still update.
func (b *Book) UpdatePrices(reg *Registry, client *http.Client) error {
	var errs error
	for p := range b.AllProjects() {
		if !p.Open || p.QuoteID == "" {
			continue
		}
		c, ok := b.Category(p.Category)
		if !ok || c.Driver == "" {
			continue
		}
		quote, ok := reg.Get(c.Driver)
		if !ok {
			errs = errors.Join(errs, fmt.Errorf("project %q: unknown driver %q", p.Name, c.Driver))
			continue
		}
		price, err := quote(client, p.QuoteID)
		if err != nil {
			errs = errors.Join(errs, fmt.Errorf("project %q: %w", p.Name, err))
			continue
		}
		log.Info().Str("project", p.Name).Str("driver", c.Driver).
			Str("price", price.String()).Msg("price updated")
		p.CurrentPrice = n(price)
		if err := b.Recompute(p); err != nil {
			errs = errors.Join(errs, err)
		}
	}
	return errs
}

// UpdateRates refreshes the home-relative rate of every declared currency
// except the home one. A failed fetch leaves that rate unchanged.
func (b *Book) UpdateRates(client *http.Client) error {
	var errs error
	for c := range b.AllCurrencies() {
		if c.Code == b.Home() {
			continue
		}
		rate, err := CurrencyRate(client, c.Code, b.Home())
		if err != nil {
			errs = errors.Join(errs, err)
			continue
		}
		log.Info().Str("currency", c.Code).Str("rate", rate.String()).Msg("rate updated")
		c.Rate = rate
	}
	return errs
}
