package finbook

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/shopspring/decimal"
)

// SinaQuote fetches a stock quote from the sina hq endpoint. The id is a
// prefixed symbol like "sh600000" or "sz000001".
//
// The response is a javascript assignment whose quoted payload is a
// comma-separated list; field 3 is the current price.
func SinaQuote(client *http.Client, id string) (decimal.Decimal, error) {
	body, err := wget(client, "http://hq.sinajs.cn/list="+id)
	if err != nil {
		return decimal.Zero, fmt.Errorf("sina %q: %w", id, err)
	}
	price, err := parseSina(body)
	if err != nil {
		return decimal.Zero, fmt.Errorf("sina %q: %w", id, err)
	}
	return price, nil
}

func parseSina(body []byte) (decimal.Decimal, error) {
	parts := strings.Split(string(body), `"`)
	if len(parts) < 2 {
		return decimal.Zero, fmt.Errorf("unexpected response %q", string(body))
	}
	fields := strings.Split(parts[1], ",")
	if len(fields) < 4 {
		return decimal.Zero, fmt.Errorf("quote payload too short: %q", parts[1])
	}
	price, err := decimal.NewFromString(fields[3])
	if err != nil {
		return decimal.Zero, fmt.Errorf("bad price field %q: %w", fields[3], err)
	}
	return price, nil
}
