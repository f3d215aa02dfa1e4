package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeText(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"plain text unchanged", "Fresh maize, grade 1.", "Fresh maize, grade 1."},
		{"surrounding whitespace stripped", "  Nakuru  ", "Nakuru"},
		{"markup removed", "<script>alert(1)</script>Maize", "alert1Maize"},
		{"nested markup removed", "<b><i>Rice</i></b>", "Rice"},
		{"unsafe characters removed", "Beans' & \"Rice\"!", "Beans  Rice"},
		{"dashes and periods kept", "Grade-A. Beans", "Grade-A. Beans"},
		{"unclosed tag loses bracket", "5 < 6", "5  6"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, SanitizeText(tc.input))
		})
	}
}

func TestSanitizeTextIsIdempotent(t *testing.T) {
	inputs := []string{
		"",
		"Maize",
		"<div>hello</div>",
		"  spaced out  ",
		"odd <chars> & symbols!",
		"a-b.c,d e",
	}
	for _, input := range inputs {
		once := SanitizeText(input)
		assert.Equal(t, once, SanitizeText(once), "input %q", input)
	}
}
