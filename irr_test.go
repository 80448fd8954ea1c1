package finbook

import (
	"errors"
	"math"
	"testing"
)

func TestSolveIRRZerosTheTable(t *testing.T) {
	tests := []struct {
		name  string
		flows []Flow
	}{
		{"flat year", []Flow{{Days: 365, Value: 1000}, {Days: 0, Value: -1000}}},
		{"20% gain over a year", []Flow{{Days: 365, Value: 1000}, {Days: 0, Value: -1200}}},
		{"loss over a year", []Flow{{Days: 365, Value: 1000}, {Days: 0, Value: -800}}},
		{"staged buys", []Flow{
			{Days: 365, Value: 1000},
			{Days: 180, Value: 500},
			{Days: 90, Value: -200},
			{Days: 0, Value: -1500},
		}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r, err := SolveIRR(tc.flows)
			if err != nil {
				t.Fatalf("SolveIRR: %v", err)
			}
			if f := npv(tc.flows, r); math.Abs(f) > 1e-4 {
				t.Errorf("f(%v) = %v, want ~0", r, f)
			}
		})
	}
}

func TestSolveIRRKnownRate(t *testing.T) {
	// 1000 held 365 days returning 1200 means r^365 = 1.2.
	flows := []Flow{{Days: 365, Value: 1000}, {Days: 0, Value: -1200}}
	r, err := SolveIRR(flows)
	if err != nil {
		t.Fatal(err)
	}
	want := math.Pow(1.2, 1.0/365)
	if math.Abs(r-want) > 1e-8 {
		t.Errorf("r = %v, want %v", r, want)
	}
	// Annualized: 365*100*(r-1)
	if got := Annualize(r); !got.Equal(Percent(365 * 100 * (want - 1))) {
		t.Errorf("Annualize(r) = %v", got)
	}
}

func TestSolveIRRSameSignFails(t *testing.T) {
	flows := []Flow{{Days: 365, Value: 1000}, {Days: 30, Value: 500}}
	if HasSignChange(flows) {
		t.Fatal("table should not have a sign change")
	}
	if _, err := SolveIRR(flows); !errors.Is(err, ErrNoConvergence) {
		t.Errorf("got %v, want ErrNoConvergence", err)
	}
}

func TestSolveIRREmptyTable(t *testing.T) {
	if _, err := SolveIRR(nil); err == nil {
		t.Error("empty table accepted")
	}
}

func TestHasSignChange(t *testing.T) {
	tests := []struct {
		flows []Flow
		want  bool
	}{
		{[]Flow{{0, 1}, {1, -1}}, true},
		{[]Flow{{0, 1}, {1, 1}}, false},
		{[]Flow{{0, -1}, {1, -1}}, false},
		{[]Flow{{0, 0}, {1, 0}}, false},
		{nil, false},
	}
	for _, tc := range tests {
		if got := HasSignChange(tc.flows); got != tc.want {
			t.Errorf("HasSignChange(%v) = %v, want %v", tc.flows, got, tc.want)
		}
	}
}

func TestAnnualize(t *testing.T) {
	if got := Annualize(1); got != 0 {
		t.Errorf("Annualize(1) = %v, want 0", got)
	}
	// one basis point per day
	if got := Annualize(1.0001); !got.Equal(Percent(3.65)) {
		t.Errorf("Annualize(1.0001) = %v, want 3.65%%", got)
	}
}
