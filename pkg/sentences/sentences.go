// Package sentences provides the slips shipped with the card and loads
// replacement lists from YAML or JSON files.
package sentences

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed sentences.yaml
var embedded []byte

// ErrDuplicate is returned when a list repeats a sentence.
var ErrDuplicate = errors.New("duplicate sentence")

// ErrBlank is returned when a list contains an empty entry.
var ErrBlank = errors.New("blank sentence")

// File represents the structure of a sentences file.
type File struct {
	Sentences []string `yaml:"sentences" json:"sentences"`
}

var (
	defaultOnce sync.Once
	defaultList []string
)

// Default returns a copy of the embedded list.
func Default() []string {
	defaultOnce.Do(func() {
		list, err := Parse(embedded, ".yaml")
		if err != nil {
			panic(fmt.Sprintf("embedded sentences: %v", err))
		}
		defaultList = list
	})
	return append([]string(nil), defaultList...)
}

// Load reads a sentences file (YAML or JSON, by extension).
// An empty path returns the embedded list.
func Load(path string) ([]string, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read sentences: %w", err)
	}
	list, err := Parse(data, filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return list, nil
}

// Parse decodes data as JSON when ext is ".json", YAML otherwise.
// Both a {sentences: [...]} document and a bare list are accepted.
func Parse(data []byte, ext string) ([]string, error) {
	var f File
	var list []string

	if strings.EqualFold(ext, ".json") {
		if err := json.Unmarshal(data, &f); err != nil {
			if err2 := json.Unmarshal(data, &list); err2 != nil {
				return nil, fmt.Errorf("failed to parse sentences json: %w", err)
			}
			f.Sentences = list
		}
	} else {
		// Default to YAML
		var node yaml.Node
		if err := yaml.Unmarshal(data, &node); err != nil {
			return nil, fmt.Errorf("failed to parse sentences yaml: %w", err)
		}
		var err error
		switch {
		case len(node.Content) == 0:
			// Empty document
		case node.Content[0].Kind == yaml.SequenceNode:
			err = node.Content[0].Decode(&f.Sentences)
		default:
			err = node.Decode(&f)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse sentences yaml: %w", err)
		}
	}

	return Validate(f.Sentences)
}

// Validate trims entries and rejects blanks and duplicates.
func Validate(list []string) ([]string, error) {
	out := make([]string, 0, len(list))
	seen := make(map[string]int, len(list))
	for i, s := range list {
		s = strings.TrimSpace(s)
		if s == "" {
			return nil, fmt.Errorf("%w at index %d", ErrBlank, i)
		}
		if j, dup := seen[s]; dup {
			return nil, fmt.Errorf("%w at index %d (first at %d): %q", ErrDuplicate, i, j, s)
		}
		seen[s] = i
		out = append(out, s)
	}
	return out, nil
}
