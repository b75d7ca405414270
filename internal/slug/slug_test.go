package slug

import "testing"

func TestNormalizeStripsSymbolsAndCollapsesSeparators(t *testing.T) {
	cases := map[string]string{
		"Herbalife® Nutrition!!  2024": "herbalife-nutrition-2024",
		"  Acme MLM  ":                 "acme-mlm",
		"--Already--Hyphenated--":      "already-hyphenated",
		"Tabs\tand\nnewlines":          "tabs-and-newlines",
		"a - b":                        "a-b",
		"Amway & Co.":                  "amway-co",
		"":                             "",
		"!!!":                          "",
	}
	for input, want := range cases {
		if got := Normalize(input); got != want {
			t.Fatalf("Normalize(%q): expected %q, got %q", input, want, got)
		}
	}
}

func TestNormalizeTreatsUnicodeWhitespaceAsSeparator(t *testing.T) {
	cases := map[string]string{
		"Acme\u00a0Health":            "acme-health",
		"Ideal\u2003Wellness\u3000Co": "ideal-wellness-co",
		"Vertical\vTab":               "vertical-tab",
		"\u00a0Padded\u00a0":          "padded",
	}
	for input, want := range cases {
		if got := Normalize(input); got != want {
			t.Fatalf("Normalize(%q): expected %q, got %q", input, want, got)
		}
	}
}

func TestNormalizeIsIdempotent(t *testing.T) {
	inputs := []string{
		"Herbalife® Nutrition!!  2024",
		"Ünïcode Títle",
		"  -- weird -- spacing -- ",
		"UPPER lower 123",
	}
	for _, input := range inputs {
		once := Normalize(input)
		if twice := Normalize(once); twice != once {
			t.Fatalf("Normalize not idempotent for %q: %q then %q", input, once, twice)
		}
	}
}

func TestValidRejectsNonCanonicalValues(t *testing.T) {
	for _, value := range []string{"", "Acme", "acme mlm", "-acme", "acme--mlm"} {
		if Valid(value) {
			t.Fatalf("expected %q to be invalid", value)
		}
	}
}

func TestWithSuffix(t *testing.T) {
	if got := WithSuffix("acme", 1); got != "acme" {
		t.Fatalf("expected base for first attempt, got %q", got)
	}
	if got := WithSuffix("acme", 3); got != "acme-3" {
		t.Fatalf("expected acme-3, got %q", got)
	}
}
