package finbook

import (
	"bytes"
	"strings"
	"testing"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	b := newTestBook(t)
	if err := b.Apply(NewRecord("moutai", MustParse("2026-01-10"), Buy, d("100")).
		WithPrice(d("10")).WithCommission(d("5"))); err != nil {
		t.Fatal(err)
	}
	if err := b.ApplyFlow(&FlowRecord{ID: "f1", Account: "icbc-main", Date: MustParse("2026-02-01"), Category: "salary", Value: d("5000"), Comment: "feb"}); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := EncodeBook(&buf, b); err != nil {
		t.Fatal(err)
	}

	got, err := DecodeBook(&buf, "CNY")
	if err != nil {
		t.Fatal(err)
	}

	a, ok := got.Account("icbc-main")
	if !ok {
		t.Fatal("account lost in round trip")
	}
	orig, _ := b.Account("icbc-main")
	if !a.Balance.Equal(orig.Balance) {
		t.Errorf("balance = %s, want %s", a.Balance, orig.Balance)
	}

	p, ok := got.Project("moutai")
	if !ok {
		t.Fatal("project lost in round trip")
	}
	if !p.BuyAmount.Equal(d("100")) || !p.BuyValue.Equal(d("1005")) {
		t.Errorf("aggregates not recomputed at load: %s %s", p.BuyAmount, p.BuyValue)
	}

	f, ok := got.Flow("f1")
	if !ok {
		t.Fatal("flow lost in round trip")
	}
	if f.Comment != "feb" || !f.Value.Equal(d("5000")) {
		t.Errorf("flow = %+v", f)
	}

	c, ok := got.Category("stock")
	if !ok || c.Driver != "sina" || c.Class != Investment {
		t.Errorf("category = %+v", c)
	}
}

func TestEncodeCanonicalOrder(t *testing.T) {
	b := newTestBook(t)
	b.Apply(NewRecord("moutai", MustParse("2026-01-10"), Buy, d("1")).WithPrice(d("10")).WithCommission(d("0")))

	var buf bytes.Buffer
	if err := EncodeBook(&buf, b); err != nil {
		t.Fatal(err)
	}

	// Declarations must precede the dated lines, and every line must open
	// with its command field.
	var sawRecord bool
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if !strings.HasPrefix(line, `{"command":`) {
			t.Fatalf("line does not open with command: %s", line)
		}
		if strings.HasPrefix(line, `{"command":"record"`) {
			sawRecord = true
			continue
		}
		if sawRecord && !strings.HasPrefix(line, `{"command":"record"`) {
			t.Fatalf("declaration after record line: %s", line)
		}
	}
	if !sawRecord {
		t.Fatal("no record line encoded")
	}
}

func TestDecodeRejectsUnknownCommand(t *testing.T) {
	in := strings.NewReader(`{"command":"mystery"}`)
	if _, err := DecodeBook(in, "CNY"); err == nil {
		t.Error("unknown command accepted")
	}
}

func TestDecodeSkipsEmptyLines(t *testing.T) {
	in := strings.NewReader("\n\n" + `{"command":"bank","name":"b"}` + "\n\n")
	b, err := DecodeBook(in, "CNY")
	if err != nil {
		t.Fatal(err)
	}
	count := 0
	for range b.AllBanks() {
		count++
	}
	if count != 1 {
		t.Errorf("got %d banks, want 1", count)
	}
}
