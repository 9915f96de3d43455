package folio

import "testing"

func TestNormalizeSymbol(t *testing.T) {
	testCases := []struct {
		input string
		want  Symbol
	}{
		{"abc", "ABC"},
		{"ABC", "ABC"},
		{" abc ", "ABC"},
		{"\t7203.t\n", "7203.T"},
		{"", ""},
	}
	for _, tc := range testCases {
		got := NormalizeSymbol(tc.input)
		if got != tc.want {
			t.Errorf("NormalizeSymbol(%q) = %q, want %q", tc.input, got, tc.want)
		}
		if again := NormalizeSymbol(string(got)); again != got {
			t.Errorf("NormalizeSymbol is not idempotent on %q: got %q", got, again)
		}
	}
}
