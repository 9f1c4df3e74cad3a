package validate_test

import (
	"testing"

	"autovitrine/internal/validate"
)

func TestYear(t *testing.T) {
	cases := []struct {
		in   string
		want int
		ok   bool
	}{
		{"2021", 2021, true},
		{" 1900 ", 1900, true},
		{"2100", 2100, true},
		{"1899", 0, false},
		{"2101", 0, false},
		{"abc", 0, false},
		{"", 0, false},
	}
	for _, tc := range cases {
		got, okYear := validate.Year(tc.in)
		if got != tc.want || okYear != tc.ok {
			t.Errorf("Year(%q) = (%d, %v), want (%d, %v)", tc.in, got, okYear, tc.want, tc.ok)
		}
	}
}

func TestPrice(t *testing.T) {
	cases := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"49.900,00", 49900, true},
		{"49.900", 49900, true},
		{"49900", 49900, true},
		{"1.234.567,89", 1234567.89, true},
		{"49900.50", 49900.50, true},
		{"R$ 35.000", 35000, true},
		{"49,9", 49.9, true},
		{"0", 0, false},
		{"-10", 0, false},
		{"abc", 0, false},
		{"", 0, false},
	}
	for _, tc := range cases {
		got, okPrice := validate.Price(tc.in)
		if got != tc.want || okPrice != tc.ok {
			t.Errorf("Price(%q) = (%v, %v), want (%v, %v)", tc.in, got, okPrice, tc.want, tc.ok)
		}
	}
}

func TestPassword(t *testing.T) {
	if validate.Password("12345") {
		t.Error("5 chars accepted")
	}
	if !validate.Password("123456") {
		t.Error("6 chars rejected")
	}
}

func TestSlug(t *testing.T) {
	if _, okSlug := validate.Slug("loja-a"); !okSlug {
		t.Error("valid slug rejected")
	}
	for _, bad := range []string{"", "Loja A", "-loja", "loja-", "loja--a", "loja_a"} {
		if _, okSlug := validate.Slug(bad); okSlug {
			t.Errorf("invalid slug accepted: %q", bad)
		}
	}
}

func TestBool(t *testing.T) {
	for _, yes := range []string{"1", "true", "on", "SIM", "Yes"} {
		if !validate.Bool(yes) {
			t.Errorf("Bool(%q) = false", yes)
		}
	}
	for _, no := range []string{"", "0", "false", "off", "nope"} {
		if validate.Bool(no) {
			t.Errorf("Bool(%q) = true", no)
		}
	}
}
