package finbook

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/PaesslerAG/jsonpath"
	"github.com/shopspring/decimal"
)

// SGEQuote fetches a precious-metal instrument's latest price from the
// Shanghai Gold Exchange quotation graph feed. The id is the instrument
// name, e.g. "Au99.99".
//
// The feed returns {"times": [...], "data": [[ts, price], ...]}; the last
// data point carries the latest price.
func SGEQuote(client *http.Client, id string) (decimal.Decimal, error) {
	resp, err := client.PostForm("https://www.sge.com.cn/graph/quotations",
		url.Values{"instid": {id}})
	if err != nil {
		return decimal.Zero, fmt.Errorf("sge %q: %w", id, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != 200 {
		return decimal.Zero, fmt.Errorf("sge %q: %v", id, resp.Status)
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, resp.Body); err != nil {
		return decimal.Zero, fmt.Errorf("sge %q: %w", id, err)
	}

	var jobj any
	if err := json.Unmarshal(buf.Bytes(), &jobj); err != nil {
		return decimal.Zero, fmt.Errorf("sge %q: %w", id, err)
	}
	price, err := parseSGE(jobj)
	if err != nil {
		return decimal.Zero, fmt.Errorf("sge %q: %w", id, err)
	}
	return price, nil
}

func parseSGE(jobj any) (decimal.Decimal, error) {
	path := "$.data[-1:][1]"
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return decimal.Zero, fmt.Errorf("error parsing %q: %w", path, err)
	}
	// jsonpath may hand back a one-element list for a slice query
	if jlist, ok := jval.([]any); ok && len(jlist) > 0 {
		jval = jlist[0]
	}
	val, ok := jval.(float64)
	if !ok {
		return decimal.Zero, fmt.Errorf("price at %q is not a number: %v", path, jval)
	}
	return decimal.NewFromFloat(val), nil
}
