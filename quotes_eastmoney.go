package finbook

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/PaesslerAG/jsonpath"
	"github.com/shopspring/decimal"
)

// EastmoneyQuote fetches a fund's unit net value from the eastmoney
// estimate endpoint. The id is the six-digit fund code.
//
// The response is JSONP: a jsonpgz(...) wrapper around a JSON object whose
// "dwjz" field carries the latest published unit value as a string.
func EastmoneyQuote(client *http.Client, id string) (decimal.Decimal, error) {
	addr := fmt.Sprintf("http://fundgz.1234567.com.cn/js/%s.js", id)
	body, err := wget(client, addr)
	if err != nil {
		return decimal.Zero, fmt.Errorf("eastmoney %q: %w", id, err)
	}
	price, err := parseEastmoney(body)
	if err != nil {
		return decimal.Zero, fmt.Errorf("eastmoney %q: %w", id, err)
	}
	return price, nil
}

func parseEastmoney(body []byte) (decimal.Decimal, error) {
	s := strings.TrimSpace(string(body))
	s = strings.TrimPrefix(s, "jsonpgz(")
	s = strings.TrimSuffix(s, ";")
	s = strings.TrimSuffix(s, ")")

	var jobj any
	if err := json.Unmarshal([]byte(s), &jobj); err != nil {
		return decimal.Zero, fmt.Errorf("bad jsonp payload: %w", err)
	}
	jval, err := jsonpath.Get("$.dwjz", jobj)
	if err != nil {
		return decimal.Zero, fmt.Errorf("no unit value in payload: %w", err)
	}
	str, ok := jval.(string)
	if !ok {
		return decimal.Zero, fmt.Errorf("unit value is not a string: %v", jval)
	}
	return decimal.NewFromString(str)
}
