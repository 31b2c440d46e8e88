package domain

import (
	"strings"
	"testing"
)

func TestClassify(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name string
		text string
		want Field
	}{
		{"plain email", "ada@lovelace.dev", FieldEmail},
		{"email wins over url shape", "sales@acme.co", FieldEmail},
		{"linkedin profile", "https://www.linkedin.com/in/ada-lovelace", FieldLinkedInURL},
		{"linkedin without scheme", "linkedin.com/in/ada", FieldLinkedInURL},
		{"phone with punctuation", "+1 (415) 555-0142", FieldNumber},
		{"bare digits", "4155550142", FieldNumber},
		{"too few digits", "12345", FieldNone},
		{"https url", "https://acme.example/pricing", FieldWebsiteLink},
		{"bare domain", "acme.example", FieldWebsiteLink},
		{"company keyword", "Acme Solutions Group", FieldCompanyName},
		{"company suffix with dot", "Lovelace Computing Ltd.", FieldCompanyName},
		{"short non-name phrase", "Duo3 Labs", FieldCompanyName},
		{"two word name", "Jane Doe", FieldName},
		{"four word name", "Ada King Countess Lovelace", FieldName},
		{"single short token", "Ada", FieldNone},
		{"long prose", "Jane Doe has a very long sentence about her background and experience", FieldAbout},
		{"empty", "", FieldNone},
		{"whitespace only", "   \n\t", FieldNone},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, ok := Classify(tc.text)
			if got != tc.want {
				t.Fatalf("Classify(%q)=%q want %q", tc.text, got, tc.want)
			}
			if ok != (tc.want != FieldNone) {
				t.Fatalf("Classify(%q) ok=%v", tc.text, ok)
			}
		})
	}
}

func TestClassifyOrderEmailBeforeCompanyKeyword(t *testing.T) {
	t.Parallel()
	// The keyword substring before the @ must not win.
	if got, _ := Classify("hello@acmetech.io"); got != FieldEmail {
		t.Fatalf("got %q", got)
	}
	if got, _ := Classify("ada@linkedin.com"); got != FieldEmail {
		t.Fatalf("got %q", got)
	}
}

func TestClassifyLengthRuleNeedsNameShapeToFail(t *testing.T) {
	t.Parallel()
	long := "Jane Doe Has A Very Long Sentence About Her Background And Experience That Exceeds Fifty Characters"
	if got, _ := Classify(long); got != FieldAbout {
		t.Fatalf("got %q", got)
	}
	if len(long) <= 50 {
		t.Fatal("fixture regression: text must exceed fifty characters")
	}
}

func TestClassifyTrimsBeforeMatching(t *testing.T) {
	t.Parallel()
	if got, _ := Classify("  ada@lovelace.dev \n"); got != FieldEmail {
		t.Fatalf("got %q", got)
	}
}

func TestClassifyMidLengthProseIsNotSuggested(t *testing.T) {
	t.Parallel()
	// Five words, under fifty runes: no rule applies.
	if got, ok := Classify("one two three four five"); ok || got != FieldNone {
		t.Fatalf("got %q ok=%v", got, ok)
	}
	if s := strings.Repeat("word ", 12); len(s) <= 50 {
		t.Fatal("fixture regression")
	}
}

func TestInfoForUnknownFallsBack(t *testing.T) {
	t.Parallel()
	if info := InfoFor(FieldEmail); info.Label != "Email" {
		t.Fatalf("email label %q", info.Label)
	}
	if info := InfoFor(Field("bogus")); info.Label != "About" {
		t.Fatalf("fallback label %q", info.Label)
	}
}
