package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sampleQuiz = `Midterm review

Multiple Choice Questions:
1. What is the capital of France?
a. Paris
b. Rome
c. Madrid
d. Berlin

True or False:
1. The earth orbits the sun.
2. Water boils at 50 degrees.

Short Answer Questions:
1. Name a primary colour.
`

// writeProject creates a config with a low extraction threshold and returns its path.
func writeProject(t *testing.T, extra string) (string, string) {
	t.Helper()
	root := t.TempDir()
	configPath := filepath.Join(root, ".quizdoc", "config.yml")
	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		t.Fatalf("mkdir config dir: %v", err)
	}
	body := "version: 1\nextraction:\n  min_chars: 10\nrender:\n  format: markdown\n" + extra
	if err := os.WriteFile(configPath, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return root, configPath
}

func writeFile(t *testing.T, path, content string) string {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

func runCLI(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var out, errOut bytes.Buffer
	code := Run(args, &out, &errOut)
	return code, out.String(), errOut.String()
}

func withStdin(t *testing.T, text string) {
	t.Helper()
	previous := stdin
	stdin = strings.NewReader(text)
	t.Cleanup(func() { stdin = previous })
}
