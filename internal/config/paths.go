package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

const (
	ConfigDirName  = ".quizdoc"
	ConfigFileName = "config.yml"
)

// configFileNames are tried in order inside each .quizdoc directory.
var configFileNames = []string{ConfigFileName, "config.yaml"}

// ErrConfigNotFound reports that no directory up to the filesystem root has a config.
var ErrConfigNotFound = errors.New("no quizdoc config found")

// ConfigPath returns the default config file location for a project root.
func ConfigPath(root string) string {
	return filepath.Join(root, ConfigDirName, ConfigFileName)
}

// RootFromConfigPath is the directory holding .quizdoc, or the config's own
// directory for a config kept elsewhere.
func RootFromConfigPath(configPath string) string {
	dir := filepath.Dir(configPath)
	if filepath.Base(dir) != ConfigDirName {
		return dir
	}
	return filepath.Dir(dir)
}

// ResolvePath anchors a relative path from the config (an archive DSN, say)
// at the project root.
func ResolvePath(configPath, value string) string {
	if configPath == "" || value == "" || filepath.IsAbs(value) {
		return value
	}
	return filepath.Join(RootFromConfigPath(configPath), value)
}

// FindConfigPath walks from startDir (default: the working directory) towards
// the root and returns the first .quizdoc/config.yml or config.yaml.
func FindConfigPath(startDir string) (string, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("resolve start directory: %w", err)
	}
	for {
		found, err := configIn(dir)
		if err != nil || found != "" {
			return found, err
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("%w in %s or its parents", ErrConfigNotFound, startDir)
		}
		dir = parent
	}
}

func configIn(dir string) (string, error) {
	for _, name := range configFileNames {
		candidate := filepath.Join(dir, ConfigDirName, name)
		info, err := os.Stat(candidate)
		switch {
		case err == nil && info.IsDir():
			return "", fmt.Errorf("config path %q is a directory", candidate)
		case err == nil:
			return candidate, nil
		case !os.IsNotExist(err):
			return "", fmt.Errorf("stat %s: %w", candidate, err)
		}
	}
	return "", nil
}
