package endpoints

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/jmespath/go-jmespath"
	"gopkg.in/yaml.v3"
)

// Package endpoints holds the catalogue of remote APIs a user can trigger.

const (
	TypeCollection = "collection"
	TypeLookup     = "lookup"
)

// Endpoint is one catalogue entry.
type Endpoint struct {
	ID     string        `json:"id" yaml:"id"`
	Name   string        `json:"name" yaml:"name"`
	Type   string        `json:"type" yaml:"type"`
	URL    string        `json:"url" yaml:"url"`
	Items  []string      `json:"items,omitempty" yaml:"items"`
	Layout *Layout       `json:"layout,omitempty" yaml:"layout"`
	Lookup *LookupLayout `json:"lookup,omitempty" yaml:"lookup"`
}

// Layout describes how collection items become records. Paths are JMESPath
// expressions evaluated against each item.
type Layout struct {
	HeadingLabel string      `json:"heading_label" yaml:"heading_label"`
	HeadingPath  string      `json:"heading_path" yaml:"heading_path"`
	Fields       []FieldSpec `json:"fields" yaml:"fields"`
}

// FieldSpec maps one labeled field to a JMESPath expression.
type FieldSpec struct {
	Label string `json:"label" yaml:"label"`
	Path  string `json:"path" yaml:"path"`
}

// LookupLayout describes how a single-resource payload becomes a sentence.
// Message may reference {name} (caller's parameter, original case) and {value}.
type LookupLayout struct {
	ValuePath string `json:"value_path" yaml:"value_path"`
	Message   string `json:"message" yaml:"message"`
}

type catalogueFile struct {
	Endpoints []Endpoint `json:"endpoints" yaml:"endpoints"`
}

// Registry is a loaded, validated endpoint catalogue.
type Registry struct {
	mu        sync.RWMutex
	endpoints []Endpoint
	idx       map[string]Endpoint
}

// LoadRegistry loads the catalogue from a YAML/JSON file.
func LoadRegistry(path string) (*Registry, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("endpoints file path is empty")
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open endpoints file: %w", err)
	}
	defer file.Close()

	raw, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("read endpoints file: %w", err)
	}

	cat, err := parseCatalogue(raw, filepath.Ext(path))
	if err != nil {
		return nil, err
	}
	return NewRegistry(cat.Endpoints)
}

// NewRegistry validates endpoints and indexes them by lowercased id.
func NewRegistry(eps []Endpoint) (*Registry, error) {
	if len(eps) == 0 {
		return nil, errors.New("endpoints catalogue contains no entries")
	}

	reg := &Registry{
		endpoints: make([]Endpoint, len(eps)),
		idx:       make(map[string]Endpoint, len(eps)),
	}
	for i := range eps {
		ep := sanitizeEndpoint(eps[i])
		if err := validateEndpoint(ep); err != nil {
			return nil, fmt.Errorf("endpoints[%d]: %w", i, err)
		}
		key := strings.ToLower(ep.ID)
		if _, exists := reg.idx[key]; exists {
			return nil, fmt.Errorf("duplicate endpoint id %q", ep.ID)
		}
		reg.endpoints[i] = ep
		reg.idx[key] = ep
	}
	return reg, nil
}

func parseCatalogue(data []byte, ext string) (catalogueFile, error) {
	ext = strings.ToLower(strings.TrimSpace(ext))

	decoders := []struct {
		name string
		ext  string
		fn   unmarshalFn
	}{
		{name: "yaml", ext: ".yaml", fn: yaml.Unmarshal},
		{name: "yaml", ext: ".yml", fn: yaml.Unmarshal},
		{name: "json", ext: ".json", fn: json.Unmarshal},
	}

	for _, d := range decoders {
		if ext != "" && ext != d.ext {
			continue
		}
		if cat, err := unmarshalCatalogue(d.name, data, d.fn); err == nil {
			return cat, nil
		}
	}

	return catalogueFile{}, errors.New("endpoints file format not recognized (expected YAML or JSON)")
}

type unmarshalFn func([]byte, any) error

func unmarshalCatalogue(name string, data []byte, fn unmarshalFn) (catalogueFile, error) {
	var cat catalogueFile
	if err := fn(data, &cat); err != nil {
		return catalogueFile{}, fmt.Errorf("decode %s endpoints: %w", name, err)
	}
	return cat, nil
}

func sanitizeEndpoint(ep Endpoint) Endpoint {
	ep.ID = strings.TrimSpace(ep.ID)
	ep.Name = strings.TrimSpace(ep.Name)
	ep.Type = strings.ToLower(strings.TrimSpace(ep.Type))
	ep.URL = strings.TrimSpace(ep.URL)

	items := make([]string, 0, len(ep.Items))
	for _, it := range ep.Items {
		if it = strings.TrimSpace(it); it != "" {
			items = append(items, it)
		}
	}
	ep.Items = items

	if ep.Name == "" {
		ep.Name = ep.ID
	}
	if ep.Type == TypeLookup && ep.Lookup != nil && strings.TrimSpace(ep.Lookup.Message) == "" {
		l := *ep.Lookup
		l.Message = "{name}: {value}"
		ep.Lookup = &l
	}
	return ep
}

func validateEndpoint(ep Endpoint) error {
	if ep.ID == "" {
		return errors.New("id is required")
	}
	if ep.URL == "" {
		return fmt.Errorf("url is required for endpoint %q", ep.ID)
	}

	switch ep.Type {
	case TypeCollection:
		if ep.Layout != nil {
			if err := compilePath(ep.Layout.HeadingPath); err != nil {
				return fmt.Errorf("endpoint %q heading_path: %w", ep.ID, err)
			}
			for _, f := range ep.Layout.Fields {
				if strings.TrimSpace(f.Label) == "" {
					return fmt.Errorf("endpoint %q has a field without label", ep.ID)
				}
				if err := compilePath(f.Path); err != nil {
					return fmt.Errorf("endpoint %q field %q: %w", ep.ID, f.Label, err)
				}
			}
		}
	case TypeLookup:
		if ep.Lookup == nil || strings.TrimSpace(ep.Lookup.ValuePath) == "" {
			return fmt.Errorf("lookup.value_path is required for endpoint %q", ep.ID)
		}
		if err := compilePath(ep.Lookup.ValuePath); err != nil {
			return fmt.Errorf("endpoint %q value_path: %w", ep.ID, err)
		}
	case "":
		return fmt.Errorf("type is required for endpoint %q", ep.ID)
	default:
		return fmt.Errorf("unsupported type %q for endpoint %q", ep.Type, ep.ID)
	}
	return nil
}

func compilePath(expr string) error {
	if strings.TrimSpace(expr) == "" {
		return nil
	}
	_, err := jmespath.Compile(expr)
	return err
}

// All returns the endpoints in catalogue order.
func (r *Registry) All() []Endpoint {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Endpoint, len(r.endpoints))
	copy(out, r.endpoints)
	return out
}

// ByID returns the endpoint with the given id (case-insensitive).
func (r *Registry) ByID(id string) (Endpoint, bool) {
	if r == nil {
		return Endpoint{}, false
	}
	id = strings.ToLower(strings.TrimSpace(id))
	if id == "" {
		return Endpoint{}, false
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	ep, ok := r.idx[id]
	return ep, ok
}

// IDs returns the sorted endpoint ids.
func (r *Registry) IDs() []string {
	all := r.All()
	ids := make([]string, 0, len(all))
	for _, ep := range all {
		ids = append(ids, ep.ID)
	}
	sort.Strings(ids)
	return ids
}

// IsLookup reports whether the endpoint needs a path parameter.
func (e Endpoint) IsLookup() bool { return e.Type == TypeLookup }
