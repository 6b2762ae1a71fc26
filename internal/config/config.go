package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the config file looked up in the working directory and the
// user config directory.
const FileName = ".conform.yaml"

// File is the on-disk configuration. Zero values mean "not set".
type File struct {
	Tests     string   `yaml:"tests,omitempty"`
	Validator string   `yaml:"validator,omitempty"`
	Draft     string   `yaml:"draft,omitempty"`
	Exclude   []string `yaml:"exclude,omitempty"`
	Format    string   `yaml:"format,omitempty"`
	Theme     string   `yaml:"theme,omitempty"`
	Verbose   bool     `yaml:"verbose,omitempty"`
	Parallel  int      `yaml:"parallel,omitempty"`
	NoColor   bool     `yaml:"no_color,omitempty"`
	Debug     bool     `yaml:"debug,omitempty"`
}

// LoadFile reads the config file. An explicit path must exist; with an empty
// path the default locations are searched and a missing file yields an empty
// File. Unknown keys are rejected so typos surface as errors.
func LoadFile(path string) (*File, string, error) {
	if path == "" {
		path = findPath()
		if path == "" {
			return &File{}, "", nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, path, fmt.Errorf("read config %s: %w", path, err)
	}

	var f File
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, path, fmt.Errorf("parse config %s: %w", path, err)
	}
	return &f, path, nil
}

// findPath returns the first existing config file: the working directory,
// then $XDG_CONFIG_HOME/conform (os.UserConfigDir).
func findPath() string {
	if _, err := os.Stat(FileName); err == nil {
		return FileName
	}
	configHome, err := os.UserConfigDir()
	if err != nil || configHome == "" || configHome == "/" {
		return ""
	}
	xdgPath := filepath.Join(configHome, "conform", FileName)
	if _, err := os.Stat(xdgPath); err == nil {
		return xdgPath
	}
	return ""
}
