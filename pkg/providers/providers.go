package providers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/samvad-hq/samvad-tech-digest/internal/domain"
)

// Package providers contains the news provider configs and fetchers.

const (
	TypeCurrents   = "currents"
	TypeMediastack = "mediastack"
	TypeNewsAPI    = "newsapi"

	defaultLanguage = "en"
	defaultCategory = "technology"
)

// Provider describes one upstream news API.
type Provider struct {
	ID        string         `json:"id" yaml:"id"`
	Name      string         `json:"name" yaml:"name"`
	Type      string         `json:"type" yaml:"type"`
	SourceURL string         `json:"source_url" yaml:"source_url"`
	Language  string         `json:"language" yaml:"language"`
	Category  string         `json:"category" yaml:"category"`
	Limit     int            `json:"limit" yaml:"limit"`
	Config    map[string]any `json:"config" yaml:"config"`
}

// Source maps the provider type to the label attached to its articles.
func (p Provider) Source() domain.Source {
	switch p.Type {
	case TypeCurrents:
		return domain.SourceCurrents
	case TypeMediastack:
		return domain.SourceMediastack
	case TypeNewsAPI:
		return domain.SourceNewsAPI
	default:
		return ""
	}
}

// DefaultProviders returns the built-in configuration for all three providers.
func DefaultProviders() []Provider {
	return []Provider{
		{
			ID:        TypeCurrents,
			Name:      string(domain.SourceCurrents),
			Type:      TypeCurrents,
			SourceURL: "https://api.currentsapi.services/v1/latest-news",
			Language:  defaultLanguage,
			Category:  defaultCategory,
			Config:    map[string]any{},
		},
		{
			ID:        TypeMediastack,
			Name:      string(domain.SourceMediastack),
			Type:      TypeMediastack,
			SourceURL: "http://api.mediastack.com/v1/news",
			Language:  defaultLanguage,
			Category:  defaultCategory,
			Limit:     10,
			Config:    map[string]any{},
		},
		{
			ID:        TypeNewsAPI,
			Name:      string(domain.SourceNewsAPI),
			Type:      TypeNewsAPI,
			SourceURL: "https://newsapi.org/v2/top-headlines",
			Language:  defaultLanguage,
			Category:  defaultCategory,
			Limit:     10,
			Config:    map[string]any{},
		},
	}
}

type registryFile struct {
	Providers []Provider `json:"providers" yaml:"providers"`
}

// Registry holds the validated provider configs.
type Registry struct {
	mu        sync.RWMutex
	providers []Provider
	idx       map[string]Provider
}

// NewRegistry validates cfgs and indexes them by id.
func NewRegistry(cfgs []Provider) (*Registry, error) {
	if len(cfgs) == 0 {
		return nil, errors.New("no providers configured")
	}

	reg := &Registry{
		providers: make([]Provider, len(cfgs)),
		idx:       make(map[string]Provider, len(cfgs)),
	}
	seenTypes := make(map[string]string, len(cfgs))
	for i := range cfgs {
		p := sanitizeProvider(cfgs[i])
		if err := validateProvider(p); err != nil {
			return nil, fmt.Errorf("provider[%d]: %w", i, err)
		}
		if _, exists := reg.idx[p.ID]; exists {
			return nil, fmt.Errorf("duplicate provider id %q", p.ID)
		}
		if other, exists := seenTypes[p.Type]; exists {
			return nil, fmt.Errorf("provider %q duplicates type %q already used by %q", p.ID, p.Type, other)
		}
		seenTypes[p.Type] = p.ID
		reg.providers[i] = p
		reg.idx[p.ID] = p
	}
	return reg, nil
}

// LoadRegistry loads providers from a YAML/JSON file. An empty path yields the
// built-in defaults.
func LoadRegistry(path string) (*Registry, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return NewRegistry(DefaultProviders())
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open providers file: %w", err)
	}
	defer file.Close()

	raw, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("read providers file: %w", err)
	}

	fileReg, err := parseRegistry(raw, filepath.Ext(path))
	if err != nil {
		return nil, err
	}
	if len(fileReg.Providers) == 0 {
		return nil, errors.New("providers file contains no providers entries")
	}
	return NewRegistry(fileReg.Providers)
}

// All returns a copy of the configured providers in file order.
func (r *Registry) All() []Provider {
	if r == nil {
		return nil
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Provider, len(r.providers))
	copy(out, r.providers)
	return out
}

// ByID returns the provider entry for the given id.
func (r *Registry) ByID(id string) (Provider, bool) {
	if r == nil {
		return Provider{}, false
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return Provider{}, false
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.idx[id]
	return p, ok
}

func parseRegistry(data []byte, ext string) (registryFile, error) {
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
		if reg, err := unmarshalRegistry(d.name, data, d.fn); err == nil {
			return reg, nil
		}
	}

	return registryFile{}, errors.New("providers file format not recognized (expected YAML or JSON)")
}

type unmarshalFn func([]byte, any) error

func unmarshalRegistry(name string, data []byte, fn unmarshalFn) (registryFile, error) {
	var reg registryFile
	if err := fn(data, &reg); err != nil {
		return registryFile{}, fmt.Errorf("decode %s providers: %w", name, err)
	}
	return reg, nil
}

func sanitizeProvider(p Provider) Provider {
	p.ID = strings.TrimSpace(p.ID)
	p.Name = strings.TrimSpace(p.Name)
	p.Type = strings.ToLower(strings.TrimSpace(p.Type))
	p.SourceURL = strings.TrimSpace(p.SourceURL)
	p.Language = strings.TrimSpace(p.Language)
	p.Category = strings.TrimSpace(p.Category)

	if p.Language == "" {
		p.Language = defaultLanguage
	}
	if p.Category == "" {
		p.Category = defaultCategory
	}
	if p.Limit < 0 {
		p.Limit = 0
	}
	if p.Name == "" {
		p.Name = string(p.Source())
	}
	if p.Config == nil {
		p.Config = map[string]any{}
	}
	return p
}

func validateProvider(p Provider) error {
	if p.ID == "" {
		return errors.New("id is required")
	}
	if p.Type == "" {
		return fmt.Errorf("type is required for provider %q", p.ID)
	}
	if p.Source() == "" {
		return fmt.Errorf("unsupported type %q for provider %q", p.Type, p.ID)
	}
	if p.SourceURL == "" {
		return fmt.Errorf("source_url is required for provider %q", p.ID)
	}
	return nil
}
