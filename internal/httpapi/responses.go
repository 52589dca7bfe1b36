package httpapi

import (
	"encoding/json"
	"net/http"

	"quizdoc/internal/archive"
	"quizdoc/internal/extract"
	"quizdoc/internal/question"
	"quizdoc/internal/segment"
)

type errorResponse struct {
	Error  string `json:"error"`
	Detail string `json:"detail,omitempty"`
}

type extractionInfo struct {
	Format   extract.Format    `json:"format"`
	Strategy string            `json:"strategy,omitempty"`
	Chars    int               `json:"chars"`
	Failed   bool              `json:"failed"`
	Attempts []extract.Attempt `json:"attempts"`
	Quality  extract.Quality   `json:"quality"`
}

type parseResponse struct {
	Source     string                `json:"source"`
	Extraction *extractionInfo       `json:"extraction,omitempty"`
	Questions  []question.Question   `json:"questions"`
	Sections   []segment.SectionSpan `json:"sections"`
	Stats      segment.Stats         `json:"stats"`
	Run        *archive.RunSummary   `json:"run,omitempty"`
}

func writeError(w http.ResponseWriter, status int, code, detail string) {
	writeJSON(w, status, errorResponse{Error: code, Detail: detail})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		status = http.StatusInternalServerError
		data = []byte(`{"error":"internal"}`)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}
