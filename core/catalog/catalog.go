// Package catalog has the built-in skills-assessment checklists.
package catalog

import (
	"fmt"
	"slices"
	"strings"

	"github.com/nfi-health/assess/schema"
)

// Built-in checklist IDs.
const (
	EENCID  = "eenc"
	IMNCIID = "imnci"
)

var builders = map[string]func() *schema.Checklist{
	EENCID:  EENC,
	IMNCIID: IMNCI,
}

// IDs returns the IDs of every built-in checklist in sorted order.
func IDs() []string {
	ids := make([]string, 0, len(builders))
	for id := range builders {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Get returns a fresh copy of the built-in checklist with the given ID.
func Get(id string) (*schema.Checklist, error) {
	build, ok := builders[strings.ToLower(strings.TrimSpace(id))]
	if !ok {
		return nil, fmt.Errorf("unknown checklist '%s'. must be one of %s", id, strings.Join(IDs(), ", "))
	}
	return build(), nil
}

// All returns fresh copies of every built-in checklist, sorted by ID.
func All() []*schema.Checklist {
	ids := IDs()
	out := make([]*schema.Checklist, len(ids))
	for i, id := range ids {
		out[i] = builders[id]()
	}
	return out
}

func item(key, label string) schema.Item {
	return schema.Item{Key: key, Label: label}
}

func option(key, label string) schema.Option {
	return schema.Option{Key: key, Label: label}
}
