package finbook

import (
	"testing"
	"time"
)

func TestDateSub(t *testing.T) {
	tests := []struct {
		d, x Date
		want int
	}{
		{NewDate(2026, time.January, 10), NewDate(2026, time.January, 1), 9},
		{NewDate(2026, time.January, 1), NewDate(2026, time.January, 1), 0},
		{NewDate(2026, time.March, 1), NewDate(2026, time.February, 28), 1},
		{NewDate(2025, time.December, 31), NewDate(2026, time.January, 1), -1},
		{NewDate(2027, time.January, 1), NewDate(2026, time.January, 1), 365},
	}
	for _, tc := range tests {
		if got := tc.d.Sub(tc.x); got != tc.want {
			t.Errorf("%s.Sub(%s) = %d, want %d", tc.d, tc.x, got, tc.want)
		}
	}
}

func TestDateAddNormalizes(t *testing.T) {
	d := NewDate(2026, time.January, 31).Add(1)
	if d.String() != "2026-02-01" {
		t.Errorf("got %s, want 2026-02-01", d)
	}
	if d := NewDate(2026, time.March, 1).Add(-1); d.String() != "2026-02-28" {
		t.Errorf("got %s, want 2026-02-28", d)
	}
}

func TestParseDateLenient(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"2026-09-01", "2026-09-01"},
		{"2026-9-1", "2026-09-01"},
		{" 2026-09-01 ", "2026-09-01"},
	}
	for _, tc := range tests {
		d, err := ParseDate(tc.in)
		if err != nil {
			t.Fatalf("ParseDate(%q): %v", tc.in, err)
		}
		if d.String() != tc.want {
			t.Errorf("ParseDate(%q) = %s, want %s", tc.in, d, tc.want)
		}
	}
	if _, err := ParseDate("not-a-date"); err == nil {
		t.Error("ParseDate accepted garbage")
	}
}

func TestStartOfMonth(t *testing.T) {
	d := NewDate(2026, time.September, 17).StartOfMonth()
	if d.String() != "2026-09-01" {
		t.Errorf("got %s, want 2026-09-01", d)
	}
}
