package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/zephyrtronium/abacus"
)

// fileConfig is the format of the configuration file.
type fileConfig struct {
	abacus.Config `yaml:",inline"`
	// Timeout limits the time of each evaluation. Zero means no limit.
	Timeout time.Duration `yaml:"timeout"`
	// History is the file in which interactive sessions keep their history.
	History string `yaml:"history"`
}

// loadConfig reads a configuration file. An empty path gives the zero
// configuration.
func loadConfig(path string) (fileConfig, error) {
	var cfg fileConfig
	if path == "" {
		return cfg, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("reading %s: %w", path, err)
	}
	return cfg, nil
}
