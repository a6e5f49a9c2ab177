package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/printworks/cardpress/diag"
)

// Configuration file names probed by Discover, in order.
var discoverNames = []string{"config.json", "config.yaml", "config.yml"}

// Load reads a configuration file and applies it over the defaults.
// The format is chosen by extension: .json, .yaml or .yml.
//
// Load does not validate; callers run [Config.Validate] (the Generator
// does this itself) so rule violations are reported exactly once.
func Load(path string) (Config, []diag.Warning, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Default(), nil, fmt.Errorf("reading configuration: %w", err)
	}

	var raw map[string]any
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		if err := json.Unmarshal(data, &raw); err != nil {
			return Default(), nil, fmt.Errorf("parsing %s: %w", filepath.Base(path), err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return Default(), nil, fmt.Errorf("parsing %s: %w", filepath.Base(path), err)
		}
	default:
		return Default(), nil, fmt.Errorf("unsupported configuration format %q", filepath.Ext(path))
	}

	return Parse(raw)
}

// Discover returns the path of a configuration file in dir, trying
// config.json, config.yaml and config.yml in that order. The second
// return is false when none exists.
func Discover(dir string) (string, bool) {
	for _, name := range discoverNames {
		p := filepath.Join(dir, name)
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			return p, true
		}
	}
	return "", false
}
