package scraper

import "testing"

func TestParsePrice(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
		ok   bool
	}{
		{"brl with thousands", "R$ 1.234,56", "1234.56", true},
		{"plain dot decimal", "1234.56", "1234.56", true},
		{"nbsp after symbol", "R$\u00a0 50,00", "50", true},
		{"comma only", "399,90", "399.9", true},
		{"integer", "1500", "1500", true},
		{"zero", "0,00", "", false},
		{"negative", "-10,00", "", false},
		{"empty", "", "", false},
		{"only symbol", "R$", "", false},
		{"garbage", "ver opções", "", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := ParsePrice(tc.in)
			if ok != tc.ok {
				t.Fatalf("ParsePrice(%q) ok = %v, want %v", tc.in, ok, tc.ok)
			}
			if ok && got.String() != tc.want {
				t.Errorf("ParsePrice(%q) = %s, want %s", tc.in, got.String(), tc.want)
			}
		})
	}
}
