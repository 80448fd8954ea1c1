package finbook

import (
	"fmt"
	"net/http"

	"github.com/PaesslerAG/jsonpath"
	"github.com/shopspring/decimal"
)

// CoingeckoQuote fetches a coin's USD price from the coingecko simple price
// API. The id is the coingecko coin id, e.g. "bitcoin".
func CoingeckoQuote(client *http.Client, id string) (decimal.Decimal, error) {
	addr := fmt.Sprintf("https://api.coingecko.com/api/v3/simple/price?ids=%s&vs_currencies=usd", id)
	var jobj any
	if err := jwget(client, addr, &jobj); err != nil {
		return decimal.Zero, fmt.Errorf("coingecko %q: %w", id, err)
	}
	price, err := parseCoingecko(jobj, id)
	if err != nil {
		return decimal.Zero, fmt.Errorf("coingecko %q: %w", id, err)
	}
	return price, nil
}

func parseCoingecko(jobj any, id string) (decimal.Decimal, error) {
	path := fmt.Sprintf("$[%q].usd", id)
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return decimal.Zero, fmt.Errorf("error parsing %q: %w", path, err)
	}
	val, ok := jval.(float64)
	if !ok {
		return decimal.Zero, fmt.Errorf("price at %q is not a number: %v", path, jval)
	}
	return decimal.NewFromFloat(val), nil
}
