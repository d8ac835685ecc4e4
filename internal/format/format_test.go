package format

import (
	"strings"
	"testing"
)

func TestDuration(t *testing.T) {
	tests := []struct {
		name string
		ms   int64
		want string
	}{
		{
			name: "zero",
			ms:   0,
			want: "00:00:00",
		},
		{
			name: "one of each field",
			ms:   3661000,
			want: "01:01:01",
		},
		{
			name: "sub-second remainder is truncated",
			ms:   999,
			want: "00:00:00",
		},
		{
			name: "minutes only",
			ms:   2116000,
			want: "00:35:16",
		},
		{
			name: "hours do not wrap at 24",
			ms:   100 * 3600 * 1000,
			want: "100:00:00",
		},
		{
			name: "negative clamps to zero",
			ms:   -5000,
			want: "00:00:00",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Duration(tt.ms); got != tt.want {
				t.Errorf("Duration(%d) = %q, want %q", tt.ms, got, tt.want)
			}
		})
	}
}

func TestCurrency(t *testing.T) {
	tests := []struct {
		name     string
		amount   float64
		code     string
		contains []string
	}{
		{
			name:     "USD has dollar symbol and grouping",
			amount:   1234.5,
			code:     "USD",
			contains: []string{"$", "1,234.50"},
		},
		{
			name:     "EUR symbol",
			amount:   99,
			code:     "EUR",
			contains: []string{"€", "99.00"},
		},
		{
			name:     "INR uses Indian grouping",
			amount:   123456.78,
			code:     "INR",
			contains: []string{"₹", "1,23,456.78"},
		},
		{
			name:     "unknown but valid ISO code falls back to code prefix",
			amount:   10,
			code:     "CHF",
			contains: []string{"CHF", "10.00"},
		},
		{
			name:     "garbage code never panics",
			amount:   1,
			code:     "???",
			contains: []string{"1.00"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Currency(tt.amount, tt.code)
			for _, want := range tt.contains {
				if !strings.Contains(got, want) {
					t.Errorf("Currency(%v, %q) = %q, want it to contain %q", tt.amount, tt.code, got, want)
				}
			}
		})
	}
}
