package finbook

import "testing"

func TestMoneyString(t *testing.T) {
	tests := []struct {
		m    Money
		want string
	}{
		{M(1234.56, "EUR"), "€1,234.56"},
		{M(-1234.56, "EUR"), "-€1,234.56"},
		{M(0, "USD"), "$0.00"},
	}
	for _, tc := range tests {
		if got := tc.m.String(); got != tc.want {
			t.Errorf("String() = %q, want %q", got, tc.want)
		}
	}
}

func TestMoneyArithmetic(t *testing.T) {
	a := M(100, "CNY")
	b := M(25, "CNY")
	if got := a.Sub(b); !got.Equal(M(75, "CNY")) {
		t.Errorf("Sub = %v", got)
	}
	// the empty currency is weak
	if got := a.Add(M(1, "")); !got.Equal(M(101, "CNY")) {
		t.Errorf("Add weak = %v", got)
	}

	defer func() {
		if recover() == nil {
			t.Error("currency mismatch did not panic")
		}
	}()
	a.Add(M(1, "USD"))
}

func TestMoneyConvert(t *testing.T) {
	usd := M(100, "USD")
	cny := usd.Convert(d("7.1"), "CNY")
	if cny.Currency() != "CNY" || !cny.Decimal().Equal(d("710")) {
		t.Errorf("Convert = %v", cny)
	}
}

func TestMoneySignedString(t *testing.T) {
	if got := M(0, "EUR").SignedString(); got != "-" {
		t.Errorf("zero = %q, want -", got)
	}
	if got := M(10, "EUR").SignedString(); got != "+€10.00" {
		t.Errorf("positive = %q", got)
	}
}
