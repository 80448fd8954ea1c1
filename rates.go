package finbook

import (
	"fmt"
	"net/http"

	"github.com/PaesslerAG/jsonpath"
	"github.com/shopspring/decimal"
)

// CurrencyRate fetches how many units of the to currency one unit of the
// from currency buys, via a frankfurter-style JSON rates API.
func CurrencyRate(client *http.Client, from, to string) (decimal.Decimal, error) {
	addr := fmt.Sprintf("https://api.frankfurter.app/latest?from=%s&to=%s", from, to)
	var jobj any
	if err := jwget(client, addr, &jobj); err != nil {
		return decimal.Zero, fmt.Errorf("rate %s/%s: %w", from, to, err)
	}
	rate, err := parseRate(jobj, to)
	if err != nil {
		return decimal.Zero, fmt.Errorf("rate %s/%s: %w", from, to, err)
	}
	return rate, nil
}

func parseRate(jobj any, to string) (decimal.Decimal, error) {
	path := fmt.Sprintf("$.rates.%s", to)
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return decimal.Zero, fmt.Errorf("error parsing %q: %w", path, err)
	}
	val, ok := jval.(float64)
	if !ok {
		return decimal.Zero, fmt.Errorf("rate at %q is not a number: %v", path, jval)
	}
	return decimal.NewFromFloat(val), nil
}
