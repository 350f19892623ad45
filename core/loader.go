package core

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/nfi-health/assess/core/catalog"
	"github.com/nfi-health/assess/schema"
	"gopkg.in/yaml.v3"
)

// ResolveChecklist returns the checklist defined in file, or the built-in checklist id when file is empty.
func ResolveChecklist(id, file string) (*schema.Checklist, error) {
	if file != "" {
		return LoadChecklistFile(file)
	}
	if id == "" {
		return nil, errors.New("no checklist selected. Use --checklist or --checklist-file")
	}
	return catalog.Get(id)
}

// LoadChecklistFile reads a checklist definition from a YAML (or JSON) file and validates it.
func LoadChecklistFile(path string) (*schema.Checklist, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read checklist file: %w", err)
	}
	cl, err := ParseChecklist(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cl, nil
}

// ParseChecklist decodes a checklist definition and validates it. Unknown keys are rejected.
func ParseChecklist(data []byte) (*schema.Checklist, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var cl schema.Checklist
	if err := dec.Decode(&cl); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("checklist definition is empty")
		}
		return nil, fmt.Errorf("decode checklist: %w", err)
	}
	if err := ValidateChecklist(&cl); err != nil {
		return nil, err
	}
	return &cl, nil
}
