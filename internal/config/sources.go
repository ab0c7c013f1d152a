package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/pders01/trss/internal/validation"
)

// Source is one configured feed: a display name and its address.
type Source struct {
	Name string `json:"name" toml:"name" yaml:"name"`
	URL  string `json:"url" toml:"url" yaml:"url"`
}

type tomlSources struct {
	Sources []Source `toml:"source"`
}

type yamlSources struct {
	Sources []Source `yaml:"sources"`
}

// LoadSources reads the sources file. The format follows the extension:
//
//	.toml        [[source]] tables with name and url
//	.yaml, .yml  a "sources" list of {name, url}
//	anything else JSON: an object of name -> url, or an array of URLs or
//	             {name, url} objects
//
// A missing file yields no sources and no error. Entries that fail
// validation are skipped; they are reported together in the returned error
// alongside the valid sources.
func LoadSources(path string, validator *validation.SourceValidator) ([]Source, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading sources: %w", err)
	}

	var raw []Source
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		var doc tomlSources
		if err := toml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
		raw = doc.Sources
	case ".yaml", ".yml":
		var doc yamlSources
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
		raw = doc.Sources
	default:
		raw, err = decodeJSONSources(data)
		if err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
	}

	return normalizeSources(raw, validator)
}

func normalizeSources(raw []Source, validator *validation.SourceValidator) ([]Source, error) {
	var (
		sources []Source
		errs    []error
	)
	seen := make(map[string]bool, len(raw))

	for _, src := range raw {
		u, err := validator.Normalize(src.URL)
		if errors.Is(err, validation.ErrPrivateHost) {
			errs = append(errs, fmt.Errorf("source %q: %w (see feed.allow_private_hosts)", src.Name, err))
			continue
		}
		if err != nil {
			errs = append(errs, fmt.Errorf("source %q: %w", src.Name, err))
			continue
		}
		if seen[u] {
			continue
		}
		seen[u] = true

		name := strings.TrimSpace(src.Name)
		if name == "" {
			name = validation.HostLabel(u)
		}
		sources = append(sources, Source{Name: name, URL: u})
	}

	return sources, errors.Join(errs...)
}

// decodeJSONSources keeps the key order of a name -> url object.
func decodeJSONSources(data []byte) ([]Source, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, nil
	}

	if data[0] == '[' {
		var entries []json.RawMessage
		if err := json.Unmarshal(data, &entries); err != nil {
			return nil, err
		}
		sources := make([]Source, 0, len(entries))
		for _, entry := range entries {
			var addr string
			if err := json.Unmarshal(entry, &addr); err == nil {
				sources = append(sources, Source{URL: addr})
				continue
			}
			var src Source
			if err := json.Unmarshal(entry, &src); err != nil {
				return nil, fmt.Errorf("source entry %s: %w", entry, err)
			}
			sources = append(sources, src)
		}
		return sources, nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("expected an object or array of sources")
	}

	var sources []Source
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		name, _ := keyTok.(string)

		var addr string
		if err := dec.Decode(&addr); err != nil {
			return nil, fmt.Errorf("source %q: %w", name, err)
		}
		sources = append(sources, Source{Name: name, URL: addr})
	}
	return sources, nil
}
