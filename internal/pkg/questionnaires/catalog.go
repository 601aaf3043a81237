package questionnaires

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"koos-service/internal/pkg/scoring"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

var (
	ErrEmptyCatalog     = errors.New("questionnaire catalog is empty")
	ErrInvalidCatalog   = errors.New("questionnaire catalog is invalid")
	ErrUnknownBandRange = errors.New("interpretation range must look like \"low-high\"")
)

var validate = validator.New()

// Catalog holds questionnaire configurations keyed by lower-case identifier.
// It is read-only once built.
type Catalog struct {
	entries map[string]*scoring.Config
}

func NewCatalog(entries map[string]*scoring.Config) (*Catalog, error) {
	if len(entries) == 0 {
		return nil, ErrEmptyCatalog
	}

	normalized := make(map[string]*scoring.Config, len(entries))
	for id, config := range entries {
		key := NormalizeID(id)
		if key == "" {
			return nil, fmt.Errorf("%w: empty questionnaire id", ErrInvalidCatalog)
		}
		if _, exists := normalized[key]; exists {
			return nil, fmt.Errorf("%w: duplicate questionnaire id %q", ErrInvalidCatalog, key)
		}
		if err := Validate(config); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrInvalidCatalog, key, err)
		}
		normalized[key] = config
	}
	return &Catalog{entries: normalized}, nil
}

func NormalizeID(id string) string {
	return strings.ToLower(strings.TrimSpace(id))
}

func (c *Catalog) Get(id string) (*scoring.Config, bool) {
	config, ok := c.entries[NormalizeID(id)]
	return config, ok
}

// IDs returns the questionnaire identifiers in sorted order.
func (c *Catalog) IDs() []string {
	ids := make([]string, 0, len(c.entries))
	for id := range c.entries {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (c *Catalog) Len() int {
	return len(c.entries)
}

// Validate checks what a catalog author can get wrong. Overlapping bands and
// gaps between bands are allowed.
func Validate(config *scoring.Config) error {
	if config == nil {
		return errors.New("configuration is missing")
	}
	if config.Sections == nil {
		return errors.New("sections are missing")
	}
	if config.Interpretation == nil {
		return errors.New("interpretation is missing")
	}
	seen := make(map[string]struct{}, len(config.Sections))
	for _, section := range config.Sections {
		if _, ok := seen[section.Name]; ok {
			return fmt.Errorf("duplicate section %q", section.Name)
		}
		seen[section.Name] = struct{}{}
	}
	return validate.Struct(config)
}

// ParseCatalog decodes a YAML catalog:
//
//	koos:
//	  name: KOOS
//	  sections:
//	    Symptoms: [S1, S2]
//	  interpretation:
//	    0-25: Severe problems
//
// Section and band order is taken from the document.
func ParseCatalog(data []byte) (*Catalog, error) {
	var document map[string]*yamlConfig
	if err := yaml.Unmarshal(data, &document); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
	}

	entries := make(map[string]*scoring.Config, len(document))
	for id, entry := range document {
		if entry == nil {
			return nil, fmt.Errorf("%w: %s: entry is empty", ErrInvalidCatalog, id)
		}
		entries[id] = &scoring.Config{
			Name:           entry.Name,
			Sections:       entry.Sections.sections,
			Interpretation: entry.Interpretation.bands,
		}
	}
	return NewCatalog(entries)
}

type yamlConfig struct {
	Name           string       `yaml:"name"`
	Sections       yamlSections `yaml:"sections"`
	Interpretation yamlBands    `yaml:"interpretation"`
}

type yamlSections struct {
	sections []scoring.Section
}

func (s *yamlSections) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: sections must be a mapping of section name to question ids", node.Line)
	}

	s.sections = make([]scoring.Section, 0, len(node.Content)/2)
	seen := make(map[string]struct{}, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		name := node.Content[i].Value
		if _, ok := seen[name]; ok {
			return fmt.Errorf("line %d: duplicate section %q", node.Content[i].Line, name)
		}
		seen[name] = struct{}{}

		var questions []string
		if err := node.Content[i+1].Decode(&questions); err != nil {
			return fmt.Errorf("line %d: section %q: %w", node.Content[i].Line, node.Content[i].Value, err)
		}
		s.sections = append(s.sections, scoring.Section{
			Name:      name,
			Questions: questions,
		})
	}
	return nil
}

type yamlBands struct {
	bands scoring.Bands
}

func (b *yamlBands) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: interpretation must be a mapping of \"low-high\" to description", node.Line)
	}

	b.bands = make(scoring.Bands, 0, len(node.Content)/2)
	seen := make(map[string]struct{}, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		key := node.Content[i].Value
		if _, ok := seen[key]; ok {
			return fmt.Errorf("line %d: duplicate interpretation range %q", node.Content[i].Line, key)
		}
		seen[key] = struct{}{}

		low, high, err := ParseRange(key)
		if err != nil {
			return fmt.Errorf("line %d: %w", node.Content[i].Line, err)
		}
		b.bands = append(b.bands, scoring.Band{
			Low:         low,
			High:        high,
			Description: node.Content[i+1].Value,
		})
	}
	return nil
}
