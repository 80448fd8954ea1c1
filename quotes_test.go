package finbook

import (
	"encoding/json"
	"testing"
)

func TestParseSina(t *testing.T) {
	body := []byte(`var hq_str_sh600519="贵州茅台,1700.00,1690.00,1712.50,1720.00,1688.00,1712.00,1712.50,1234567,2100000000.00";`)
	price, err := parseSina(body)
	if err != nil {
		t.Fatal(err)
	}
	if !price.Equal(d("1712.50")) {
		t.Errorf("price = %s, want 1712.50", price)
	}

	if _, err := parseSina([]byte("var hq_str_x=\"\";")); err == nil {
		t.Error("empty payload accepted")
	}
	if _, err := parseSina([]byte("garbage")); err == nil {
		t.Error("garbage accepted")
	}
}

func TestParseEastmoney(t *testing.T) {
	body := []byte(`jsonpgz({"fundcode":"110022","name":"易方达消费行业","jzrq":"2026-08-29","dwjz":"3.1415","gsz":"3.1500","gszzl":"0.27","gztime":"2026-09-01 15:00"});`)
	price, err := parseEastmoney(body)
	if err != nil {
		t.Fatal(err)
	}
	if !price.Equal(d("3.1415")) {
		t.Errorf("price = %s, want 3.1415", price)
	}

	if _, err := parseEastmoney([]byte(`jsonpgz({"name":"x"});`)); err == nil {
		t.Error("payload without unit value accepted")
	}
}

func TestParseCoingecko(t *testing.T) {
	var jobj any
	if err := json.Unmarshal([]byte(`{"bitcoin":{"usd":109321.17}}`), &jobj); err != nil {
		t.Fatal(err)
	}
	price, err := parseCoingecko(jobj, "bitcoin")
	if err != nil {
		t.Fatal(err)
	}
	if !price.Equal(d("109321.17")) {
		t.Errorf("price = %s, want 109321.17", price)
	}

	if _, err := parseCoingecko(jobj, "ethereum"); err == nil {
		t.Error("missing coin accepted")
	}
}

func TestParseSGE(t *testing.T) {
	var jobj any
	if err := json.Unmarshal([]byte(`{"times":[1,2,3],"data":[[1,779.50],[2,780.10],[3,781.30]]}`), &jobj); err != nil {
		t.Fatal(err)
	}
	price, err := parseSGE(jobj)
	if err != nil {
		t.Fatal(err)
	}
	if !price.Equal(d("781.3")) {
		t.Errorf("price = %s, want 781.3", price)
	}
}

func TestParseRate(t *testing.T) {
	var jobj any
	if err := json.Unmarshal([]byte(`{"base":"USD","rates":{"CNY":7.1132}}`), &jobj); err != nil {
		t.Fatal(err)
	}
	rate, err := parseRate(jobj, "CNY")
	if err != nil {
		t.Fatal(err)
	}
	if !rate.Equal(d("7.1132")) {
		t.Errorf("rate = %s, want 7.1132", rate)
	}
}

func TestRegistry(t *testing.T) {
	r := DefaultRegistry()
	for _, name := range []string{"sina", "eastmoney", "coingecko", "sge"} {
		if _, ok := r.Get(name); !ok {
			t.Errorf("driver %q not registered", name)
		}
	}
	if _, ok := r.Get("nope"); ok {
		t.Error("unknown driver resolved")
	}
	if err := r.Register("sina", SinaQuote); err == nil {
		t.Error("rebinding accepted")
	}
}
