// Package presetfile reads and writes presets as YAML documents so they can
// be kept in version control and loaded with `prompt-library presets import`.
//
//	presets:
//	  - name: webcontainer
//	    description: Bolt defaults
//	    working_directory: /home/project
//	    allowed_tags: [b, code, pre]
package presetfile

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Spec is one preset entry in a preset file.
type Spec struct {
	Name             string   `yaml:"name"`
	Description      string   `yaml:"description,omitempty"`
	WorkingDirectory string   `yaml:"working_directory"`
	AllowedTags      []string `yaml:"allowed_tags"`
}

type document struct {
	Presets []Spec `yaml:"presets"`
}

// Read decodes a preset file. Entries must have a name and names must be
// unique within the file; tag names are taken as written.
func Read(r io.Reader) ([]Spec, error) {
	var doc document
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return []Spec{}, nil
		}
		return nil, fmt.Errorf("decode preset file: %w", err)
	}

	seen := make(map[string]bool, len(doc.Presets))
	for i, s := range doc.Presets {
		if s.Name == "" {
			return nil, fmt.Errorf("preset %d: name is required", i+1)
		}
		if seen[s.Name] {
			return nil, fmt.Errorf("preset %q: duplicate name", s.Name)
		}
		seen[s.Name] = true
	}
	if doc.Presets == nil {
		doc.Presets = []Spec{}
	}
	return doc.Presets, nil
}

// Write encodes specs as a preset file.
func Write(w io.Writer, specs []Spec) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(document{Presets: specs}); err != nil {
		return fmt.Errorf("encode preset file: %w", err)
	}
	return enc.Close()
}
