package config

import (
	"fmt"
	"os"
	"strings"

	"ncstfeed/types"

	"gopkg.in/yaml.v3"
)

// sourcesFile is the YAML layout accepted by SOURCES_FILE
type sourcesFile struct {
	Sources []sourceEntry `yaml:"sources"`
}

type sourceEntry struct {
	Kind        string            `yaml:"kind"`
	Name        string            `yaml:"name"`
	URL         string            `yaml:"url"`
	Headers     map[string]string `yaml:"headers"`
	Readability bool              `yaml:"readability"`
}

// DefaultSources returns the registry in fallback order: direct RSS, JSON proxy, HTML page.
// An empty proxyURL is derived from feedURL.
func DefaultSources(feedURL, proxyURL, pageURL string) []types.Source {
	if proxyURL == "" {
		proxyURL = ProxyURLFor(feedURL)
	}
	return []types.Source{
		{Kind: types.KindRSS, Name: "rsshub", URL: feedURL},
		{Kind: types.KindJSONProxy, Name: "rss2json", URL: proxyURL},
		{Kind: types.KindHTML, Name: "facebook-page", URL: pageURL},
	}
}

// LoadSourcesFile reads an ordered source list from YAML
func LoadSourcesFile(path string) ([]types.Source, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading sources file: %w", err)
	}
	return ParseSources(data)
}

// ParseSources decodes the YAML sources document
func ParseSources(data []byte) ([]types.Source, error) {
	var f sourcesFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing sources file: %w", err)
	}

	sources := make([]types.Source, 0, len(f.Sources))
	for i, e := range f.Sources {
		if strings.TrimSpace(e.URL) == "" {
			return nil, fmt.Errorf("source %d: url is required", i+1)
		}
		kind, err := types.ParseSourceKind(e.Kind)
		if err != nil {
			return nil, fmt.Errorf("source %d: %w", i+1, err)
		}
		sources = append(sources, types.Source{
			Kind:        kind,
			Name:        e.Name,
			URL:         strings.TrimSpace(e.URL),
			Headers:     e.Headers,
			Readability: e.Readability,
		})
	}
	return sources, nil
}
