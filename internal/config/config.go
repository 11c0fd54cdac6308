package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ProjectConfig holds project-level settings loaded from crosslink.yml.
type ProjectConfig struct {
	// Roots are the directories gathered across. Defaults to ".".
	Roots []string `yaml:"roots,omitempty"`
	// ExcludeDirs are directory names skipped during discovery.
	ExcludeDirs []string `yaml:"excludeDirs,omitempty"`
	// ExcludeGlobs are doublestar patterns skipped during discovery.
	ExcludeGlobs []string `yaml:"excludeGlobs,omitempty"`
	// Aliases map reference prefixes to replacement prefixes and feed the
	// reference-transform hook (e.g. "@app/" -> "./src/").
	Aliases map[string]string `yaml:"aliases,omitempty"`
	// BatchSize bounds gather concurrency. Defaults to 8.
	BatchSize int `yaml:"batchSize,omitempty"`
	// ModulesDir is where bare specifiers are resolved from.
	ModulesDir string `yaml:"modulesDir,omitempty"`
	// CacheDir enables the resolver's on-disk memo cache when set.
	CacheDir string `yaml:"cacheDir,omitempty"`
	// GraphDB is the KuzuDB path used by --persist.
	GraphDB string `yaml:"graphDB,omitempty"`
	Verbose bool   `yaml:"verbose,omitempty"`
}

// Load attempts to read crosslink.yml or crosslink.yaml from the given
// directory. Returns a zero-value config (not an error) if no config file
// exists.
func Load(dir string) (*ProjectConfig, error) {
	for _, name := range []string{"crosslink.yml", "crosslink.yaml"} {
		path := filepath.Join(dir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		var cfg ProjectConfig
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, err
		}
		return &cfg, nil
	}
	return &ProjectConfig{}, nil
}
