package core

import "testing"

func TestParseMoney(t *testing.T) {
	cases := []struct {
		in  string
		out string
		ok  bool
	}{
		{"", "0", true},
		{"   ", "0", true},
		{"1234", "1234", true},
		{"$1,234.56", "1234.56", true},
		{"-$45.00", "-45", true},
		{"$0.00", "0", true},
		{"$0.01", "0.01", true},
		{" $2.50 ", "2.5", true},
		{"USD 12.34", "12.34", true},
		{"$", "", false},
		{"abc", "", false},
		{"1.2.3", "", false},
		{"--5", "", false},
		{"-", "", false},
	}
	for _, tc := range cases {
		got, err := ParseMoney(tc.in)
		if tc.ok {
			if err != nil {
				t.Fatalf("%q: unexpected error %v", tc.in, err)
			}
			if got.String() != tc.out {
				t.Fatalf("%q: expected %s, got %s", tc.in, tc.out, got)
			}
		} else {
			if err == nil {
				t.Fatalf("%q: expected error, got %s", tc.in, got)
			}
		}
	}
}
