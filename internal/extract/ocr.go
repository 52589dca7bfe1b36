package extract

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// Recognizer turns a scanned document into text.
type Recognizer interface {
	Recognize(ctx context.Context, mimeType string, data []byte) (string, error)
}

// DefaultOCRModel is the Gemini model used when none is configured.
const DefaultOCRModel = "gemini-1.5-flash"

const ocrInstruction = `Transcribe all text of this document exactly as printed.
Keep every question, numbered item and lettered option on its own line.
Keep section headings such as "Multiple Choice" or "True or False" on their own lines.
Return plain text only, without commentary or markdown.`

// GeminiOCR recognizes documents with the Gemini multimodal API.
type GeminiOCR struct {
	APIKey string
	Model  string
}

// NewGeminiOCR creates a recognizer; an empty model selects DefaultOCRModel.
func NewGeminiOCR(apiKey, model string) *GeminiOCR {
	model = strings.TrimSpace(model)
	if model == "" {
		model = DefaultOCRModel
	}
	return &GeminiOCR{APIKey: strings.TrimSpace(apiKey), Model: model}
}

// Recognize sends the document bytes inline and returns the first text part.
func (g *GeminiOCR) Recognize(ctx context.Context, mimeType string, data []byte) (string, error) {
	if g.APIKey == "" {
		return "", errors.New("gemini api key is empty")
	}
	cl, err := genai.NewClient(ctx, option.WithAPIKey(g.APIKey))
	if err != nil {
		return "", fmt.Errorf("gemini client: %w", err)
	}
	defer cl.Close()

	m := cl.GenerativeModel(g.Model)
	m.GenerationConfig = genai.GenerationConfig{
		Temperature:      ptrFloat32(0),
		ResponseMIMEType: "text/plain",
	}
	resp, err := m.GenerateContent(ctx, genai.Text(ocrInstruction), &genai.Blob{MIMEType: mimeType, Data: data})
	if err != nil {
		return "", fmt.Errorf("gemini ocr: %w", err)
	}
	text := firstText(resp)
	if text == "" {
		return "", errors.New("gemini ocr: empty response")
	}
	return text, nil
}

func firstText(resp *genai.GenerateContentResponse) string {
	if resp == nil {
		return ""
	}
	for _, c := range resp.Candidates {
		if c.Content == nil {
			continue
		}
		for _, p := range c.Content.Parts {
			if t, ok := p.(genai.Text); ok {
				return string(t)
			}
		}
	}
	return ""
}

func ptrFloat32(v float32) *float32 { return &v }
