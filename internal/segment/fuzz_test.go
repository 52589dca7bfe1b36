package segment

import (
	"testing"

	"quizdoc/internal/question"
)

// FuzzParse checks structural invariants on arbitrary text.
// Run with: go test -fuzz=FuzzParse -fuzztime=30s ./internal/segment/...
func FuzzParse(f *testing.F) {
	seeds := []string{
		"",
		"Multiple Choice Questions:\n1. What is 2+2?\na. 3\nb. 4\nc. 5\nd. 6\n",
		"True or False:\n1. The sky is blue.\n2. Fish can fly.\n",
		"Short Answer\n\n\n1) Define\r\nLong Answer\r\n2 Discuss",
		"multiple choice\n1. a\n1. b\n2. c\n3. d\n4. e\na. f\n",
		"Text extraction failed for this document.",
	}
	for _, seed := range seeds {
		f.Add(seed)
	}
	p := NewParser()
	f.Fuzz(func(t *testing.T, text string) {
		res := p.Parse(text)
		sum := 0
		for _, span := range res.Sections {
			sum += span.Count
			if span.End < span.Start {
				t.Fatalf("section ends before it starts: %+v", span)
			}
		}
		if sum != res.Total() {
			t.Fatalf("section sum %d != total %d", sum, res.Total())
		}
		for _, q := range res.Questions {
			n := q.OptionCount()
			if n > question.MaxOptions {
				t.Fatalf("question %q has %d options", q.Prompt(), n)
			}
			if q.Kind() != question.KindMultipleChoice && n != 0 {
				t.Fatalf("%s question %q has options", q.Kind(), q.Prompt())
			}
		}
	})
}
