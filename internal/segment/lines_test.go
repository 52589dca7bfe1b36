package segment

import (
	"reflect"
	"testing"
)

// TestNormalizeLines verifies line break collapsing and trimming.
func TestNormalizeLines(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  []string
	}{
		{name: "empty", input: "", want: []string{""}},
		{name: "whitespace only", input: "   \t ", want: []string{""}},
		{name: "collapses runs", input: "a\n\n\nb", want: []string{"a", "b"}},
		{name: "crlf", input: "a\r\n\r\nb\rc", want: []string{"a", "b", "c"}},
		{name: "keeps space-only lines blank", input: "a\n   \nb", want: []string{"a", "", "b"}},
		{name: "trims", input: "  1. Q  \n\tb. x\t", want: []string{"1. Q", "b. x"}},
		{name: "trailing break", input: "a\n", want: []string{"a", ""}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := NormalizeLines(tc.input)
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}
