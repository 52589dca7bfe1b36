package question

import (
	"encoding/json"
	"fmt"
	"strings"
)

type optionRecord struct {
	Letter string `json:"letter" yaml:"letter"`
	Text   string `json:"text" yaml:"text"`
}

type questionRecord struct {
	Number  string         `json:"number" yaml:"number"`
	Text    string         `json:"text" yaml:"text"`
	Type    Kind           `json:"type" yaml:"type"`
	Options []optionRecord `json:"options" yaml:"options"`
}

// MarshalJSON encodes the option as {"letter","text"}.
func (o Option) MarshalJSON() ([]byte, error) {
	return json.Marshal(optionRecord{Letter: o.label, Text: o.Text()})
}

// UnmarshalJSON decodes an option; the label prefix is stripped from text.
func (o *Option) UnmarshalJSON(data []byte) error {
	var rec optionRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return err
	}
	*o = rec.option()
	return nil
}

// MarshalJSON encodes the question as {"number","text","type","options"}.
func (q Question) MarshalJSON() ([]byte, error) {
	return json.Marshal(q.record())
}

// UnmarshalJSON decodes a question and re-applies the constructor rules.
func (q *Question) UnmarshalJSON(data []byte) error {
	var rec questionRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return err
	}
	decoded, err := rec.question()
	if err != nil {
		return err
	}
	*q = decoded
	return nil
}

func (q Question) record() questionRecord {
	options := make([]optionRecord, 0, len(q.options))
	for _, opt := range q.options {
		options = append(options, optionRecord{Letter: opt.label, Text: opt.Text()})
	}
	return questionRecord{Number: q.number, Text: q.Prompt(), Type: q.kind, Options: options}
}

func (rec optionRecord) option() Option {
	label := strings.TrimSpace(rec.Letter)
	return NewOption(label, stripLabel(rec.Text, label))
}

func (rec questionRecord) question() (Question, error) {
	options := make([]Option, 0, len(rec.Options))
	for _, opt := range rec.Options {
		options = append(options, opt.option())
	}
	number := strings.TrimSpace(rec.Number)
	q, err := New(rec.Type, number, stripLabel(rec.Text, number), options...)
	if err != nil {
		return Question{}, fmt.Errorf("decode question: %w", err)
	}
	return q, nil
}

// stripLabel removes a leading "label. " prefix that Prompt and Text add.
func stripLabel(text, label string) string {
	text = strings.TrimSpace(text)
	if label == "" {
		return text
	}
	if rest, ok := strings.CutPrefix(text, label+"."); ok {
		return strings.TrimSpace(rest)
	}
	return text
}
