package archive

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"quizdoc/internal/question"
)

// CanonicalJSON returns the deterministic JSON form of a question list.
func CanonicalJSON(questions []question.Question) ([]byte, error) {
	if questions == nil {
		questions = []question.Question{}
	}
	data, err := json.Marshal(questions)
	if err != nil {
		return nil, fmt.Errorf("encode questions: %w", err)
	}
	return data, nil
}

// Fingerprint returns the SHA-256 hex digest of the canonical JSON.
func Fingerprint(questions []question.Question) (string, error) {
	data, err := CanonicalJSON(questions)
	if err != nil {
		return "", err
	}
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:]), nil
}
