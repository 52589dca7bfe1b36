package render

import (
	"encoding/json"
	"io"

	"quizdoc/internal/question"
)

func writeJSON(w io.Writer, doc Document) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(question.NewSet(doc.title(), doc.Questions))
}
