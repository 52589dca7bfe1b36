package question

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadSet reads, parses, and validates a question set file (JSON or YAML by extension).
func LoadSet(path string) (Set, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Set{}, fmt.Errorf("read question set: %w", err)
	}
	return ParseSet(data, path)
}

// ParseSet decodes set bytes; name selects the decoder by extension.
func ParseSet(data []byte, name string) (Set, error) {
	rec, err := parseSetRecord(data, name)
	if err != nil {
		return Set{}, err
	}
	return NormalizeSet(rec)
}

func parseSetRecord(data []byte, name string) (setRecord, error) {
	ext := strings.ToLower(filepath.Ext(name))
	if ext == ".json" {
		return parseJSONSet(data)
	}
	return parseYAMLSet(data)
}

func parseJSONSet(data []byte) (setRecord, error) {
	var rec setRecord
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&rec); err != nil {
		return setRecord{}, fmt.Errorf("parse json: %w", err)
	}
	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		if err == nil {
			return setRecord{}, fmt.Errorf("parse json: multiple documents are not supported")
		}
		return setRecord{}, fmt.Errorf("parse json: %w", err)
	}
	return rec, nil
}

func parseYAMLSet(data []byte) (setRecord, error) {
	var rec setRecord
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&rec); err != nil {
		return setRecord{}, fmt.Errorf("parse yaml: %w", err)
	}
	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		if err == nil {
			return setRecord{}, fmt.Errorf("parse yaml: multiple documents are not supported")
		}
		return setRecord{}, fmt.Errorf("parse yaml: %w", err)
	}
	return rec, nil
}

// WriteSet encodes a set as indented JSON.
func WriteSet(w io.Writer, set Set) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(set); err != nil {
		return fmt.Errorf("encode question set: %w", err)
	}
	return nil
}
