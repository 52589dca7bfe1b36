package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"quizdoc/internal/pipeline"
)

type parseRequest struct {
	Text   string `json:"text"`
	Source string `json:"source"`
}

// handleParse accepts {"text"} JSON or a text/plain body.
func (h *handler) handleParse(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.maxUpload))
	if err != nil {
		writeBodyError(w, err)
		return
	}
	req := parseRequest{Source: "request"}
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch mediaType {
	case "application/json":
		if err := json.Unmarshal(body, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
			return
		}
		if req.Source == "" {
			req.Source = "request"
		}
	case "", "text/plain":
		if !utf8.Valid(body) {
			writeError(w, http.StatusBadRequest, "invalid_request", "body is not valid UTF-8")
			return
		}
		req.Text = string(body)
	default:
		writeError(w, http.StatusUnsupportedMediaType, "unsupported_media_type", mediaType)
		return
	}

	out, err := h.pipeline.ProcessText(r.Context(), req.Source, req.Text)
	if err != nil {
		h.logger.Error("parse request failed", "err", err)
		writeError(w, http.StatusInternalServerError, "internal", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, toResponse(out, false))
}

// handleDocument accepts a multipart upload in the "file" field.
func (h *handler) handleDocument(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload)
	file, header, err := r.FormFile("file")
	if err != nil {
		writeBodyError(w, err)
		return
	}
	defer file.Close()

	dir, err := os.MkdirTemp("", "quizdoc-upload-*")
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal", err.Error())
		return
	}
	defer os.RemoveAll(dir)

	name := filepath.Base(header.Filename)
	if name == "." || name == string(filepath.Separator) || strings.TrimSpace(name) == "" {
		name = "upload.txt"
	}
	path := filepath.Join(dir, name)
	dst, err := os.Create(path)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal", err.Error())
		return
	}
	if _, err := io.Copy(dst, file); err != nil {
		dst.Close()
		writeBodyError(w, err)
		return
	}
	if err := dst.Close(); err != nil {
		writeError(w, http.StatusInternalServerError, "internal", err.Error())
		return
	}

	out, err := h.pipeline.Process(r.Context(), path)
	if err != nil {
		h.logger.Error("document request failed", "file", name, "err", err)
		writeError(w, http.StatusInternalServerError, "internal", err.Error())
		return
	}
	out.Source = name
	writeJSON(w, http.StatusOK, toResponse(out, true))
}

func toResponse(out pipeline.Outcome, withExtraction bool) parseResponse {
	resp := parseResponse{
		Source:    out.Source,
		Questions: out.Parse.Questions,
		Sections:  out.Parse.Sections,
		Stats:     out.Parse.Stats,
		Run:       out.Run,
	}
	if withExtraction {
		ex := out.Extraction
		resp.Extraction = &extractionInfo{
			Format:   ex.Format,
			Strategy: ex.Strategy,
			Chars:    utf8.RuneCountInString(ex.Text),
			Failed:   ex.Failed,
			Attempts: ex.Attempts,
			Quality:  ex.Quality,
		}
	}
	return resp
}

func writeBodyError(w http.ResponseWriter, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		writeError(w, http.StatusRequestEntityTooLarge, "too_large", err.Error())
		return
	}
	writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
}
