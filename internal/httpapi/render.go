package httpapi

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"quizdoc/internal/question"
	"quizdoc/internal/render"
)

type renderRequest struct {
	Title     string              `json:"title"`
	Questions []question.Question `json:"questions"`
}

// handleRender turns a JSON question list into a document.
func (h *handler) handleRender(w http.ResponseWriter, r *http.Request) {
	format := h.defaultFormat
	if value := r.URL.Query().Get("format"); value != "" {
		parsed, err := render.ParseFormat(value)
		if err != nil {
			writeError(w, http.StatusBadRequest, "unsupported_format", err.Error())
			return
		}
		format = parsed
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.maxUpload))
	if err != nil {
		writeBodyError(w, err)
		return
	}
	var req renderRequest
	if err := json.Unmarshal(body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}
	title := req.Title
	if title == "" {
		title = h.title
	}

	var buf bytes.Buffer
	doc := render.Document{Title: title, Questions: req.Questions, NoColor: true}
	if err := render.Write(&buf, format, doc); err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, render.ErrUnknownFormat) {
			status = http.StatusBadRequest
		}
		writeError(w, status, "render_failed", err.Error())
		return
	}
	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Disposition", `attachment; filename="questionnaire`+format.Extension()+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}
