package utils

import "testing"

func TestStripDigitsLatin(t *testing.T) {
	got := StripDigits("call me at 0555 123")
	if got != "call me at  " {
		t.Errorf("unexpected result: %q", got)
	}
}

func TestStripDigitsArabicIndic(t *testing.T) {
	// Both the Arabic-Indic and Eastern Arabic-Indic ranges must be removed.
	got := StripDigits("رقمي ٠٥٥٥ و ۱۲۳ هنا")
	if ContainsDigits(got) {
		t.Errorf("digits survived stripping: %q", got)
	}
	if got != "رقمي  و  هنا" {
		t.Errorf("unexpected result: %q", got)
	}
}

func TestStripDigitsNoDigits(t *testing.T) {
	in := "şehir merkezi çok güzel"
	if got := StripDigits(in); got != in {
		t.Errorf("clean string changed: %q", got)
	}
}

func TestContainsDigits(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"hello", false},
		{"hello 5", true},
		{"العدد ٣", true},
		{"شارع ۷", true},
		{"", false},
	}
	for _, tc := range cases {
		if got := ContainsDigits(tc.in); got != tc.want {
			t.Errorf("ContainsDigits(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestTruncateRunesShort(t *testing.T) {
	if got := TruncateRunes("short", 42); got != "short" {
		t.Errorf("short string changed: %q", got)
	}
}

func TestTruncateRunesMultibyte(t *testing.T) {
	in := "شقة واسعة في مركز المدينة مع إطلالة رائعة على البحر"
	got := TruncateRunes(in, 42)
	if len([]rune(got)) != 42 {
		t.Errorf("expected 42 runes, got %d", len([]rune(got)))
	}
	// Result must be a prefix of the input, never a mangled cut.
	if in[:len(got)] != got {
		t.Errorf("truncation is not a prefix: %q", got)
	}
}

func TestTruncateRunesZero(t *testing.T) {
	if got := TruncateRunes("anything", 0); got != "" {
		t.Errorf("expected empty string, got %q", got)
	}
}
