package careers

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/abhisek/careerquest/internal/skills"
)

type catalogFile struct {
	Careers []Career `yaml:"careers"`
}

// LoadFile reads a YAML catalog and validates it.
func LoadFile(path string) (Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read career catalog: %w", err)
	}
	return Parse(data)
}

// Parse decodes a YAML catalog of the form `careers: [...]` and validates it.
func Parse(data []byte) (Catalog, error) {
	var f catalogFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("parse career catalog: %w", err)
	}
	c := Catalog(f.Careers)
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate checks IDs, titles, required skills and resource types.
func (c Catalog) Validate() error {
	if len(c) == 0 {
		return errors.New("career catalog is empty")
	}

	var errs []error
	seen := make(map[string]bool, len(c))
	for i, career := range c {
		if career.ID == "" {
			errs = append(errs, fmt.Errorf("career %d: empty id", i))
		} else if seen[career.ID] {
			errs = append(errs, fmt.Errorf("career %q: duplicate id", career.ID))
		}
		seen[career.ID] = true

		if strings.TrimSpace(career.Title) == "" {
			errs = append(errs, fmt.Errorf("career %q: empty title", career.ID))
		}
		for _, req := range career.RequiredSkills {
			if !skills.Exists(req) {
				errs = append(errs, fmt.Errorf("career %q: unknown required skill %q", career.ID, req))
			}
		}
		for _, r := range career.Resources {
			if !r.Type.Valid() {
				errs = append(errs, fmt.Errorf("career %q: resource %q has unknown type %q", career.ID, r.Title, r.Type))
			}
		}
	}
	return errors.Join(errs...)
}
