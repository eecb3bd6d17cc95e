package catalog

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Source describes one external catalog feed to import products from.
type Source struct {
	Name     string `yaml:"name"`
	URL      string `yaml:"url"`
	Currency string `yaml:"currency"`
	Category string `yaml:"category"`
	PostType string `yaml:"post_type"`
	Settings struct {
		MaxItems int `yaml:"max_items"`
		Timeout  int `yaml:"timeout"`
	} `yaml:"settings"`
}

func (s *Source) GetTimeout() time.Duration {
	if s.Settings.Timeout <= 0 {
		return 30 * time.Second
	}
	return time.Duration(s.Settings.Timeout) * time.Second
}

// SourceLoader loads catalog source definitions from a directory of YAML
// files.
type SourceLoader struct {
	sourcesDir string
}

func NewSourceLoader(sourcesDir string) *SourceLoader {
	return &SourceLoader{sourcesDir: sourcesDir}
}

// LoadAll reads every *.yml and *.yaml file in the sources directory. A
// missing directory yields an empty list, not an error.
func (l *SourceLoader) LoadAll() ([]*Source, error) {
	if _, err := os.Stat(l.sourcesDir); os.IsNotExist(err) {
		return nil, nil
	}

	files, err := filepath.Glob(filepath.Join(l.sourcesDir, "*.yaml"))
	if err != nil {
		return nil, fmt.Errorf("failed to find YAML files: %w", err)
	}
	ymlFiles, err := filepath.Glob(filepath.Join(l.sourcesDir, "*.yml"))
	if err != nil {
		return nil, fmt.Errorf("failed to find YML files: %w", err)
	}
	files = append(files, ymlFiles...)

	sources := make([]*Source, 0, len(files))
	for _, file := range files {
		source, err := l.loadFile(file)
		if err != nil {
			return nil, fmt.Errorf("error loading %s: %w", file, err)
		}
		if err := l.validate(source); err != nil {
			return nil, fmt.Errorf("invalid source %s: %w", file, err)
		}
		sources = append(sources, source)
	}

	return sources, nil
}

func (l *SourceLoader) loadFile(path string) (*Source, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	var source Source
	if err := yaml.Unmarshal(data, &source); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	l.setDefaults(&source)
	return &source, nil
}

func (l *SourceLoader) setDefaults(source *Source) {
	if source.Settings.MaxItems == 0 {
		source.Settings.MaxItems = 100
	}
	if source.Settings.Timeout == 0 {
		source.Settings.Timeout = 30
	}
	if source.PostType == "" {
		source.PostType = "product"
	}
}

func (l *SourceLoader) validate(source *Source) error {
	if source.URL == "" {
		return fmt.Errorf("source URL is required")
	}
	if source.Name == "" {
		return fmt.Errorf("source name is required")
	}
	return nil
}
