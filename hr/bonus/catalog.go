package bonus

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrUnknownPolicy is returned when a catalogue has no policy by that name.
var ErrUnknownPolicy = errors.New("bonus: unknown policy")

// Policy kinds understood by the catalogue file.
const (
	KindFixed      = "fixed"
	KindPercentage = "percentage"
)

// CatalogEntry is one named policy in a catalogue file.
//
//	policies:
//	  - name: fixed
//	    kind: fixed
//	    amount: 5000
//	  - name: percentage
//	    kind: percentage
//	    rate: 0.10
type CatalogEntry struct {
	Name   string  `yaml:"name"`
	Kind   string  `yaml:"kind"`
	Amount float64 `yaml:"amount,omitempty"`
	Rate   float64 `yaml:"rate,omitempty"`
}

type catalogFile struct {
	Policies []CatalogEntry `yaml:"policies"`
}

// Catalog is a set of named policies. It is not safe for concurrent
// mutation; build it once at start-up and only read from it afterwards.
type Catalog struct {
	names    []string
	policies map[string]Policy
}

// NewCatalog returns an empty catalogue.
func NewCatalog() *Catalog {
	return &Catalog{policies: make(map[string]Policy)}
}

// DefaultCatalog holds the two stock policies: +5000 and +10%.
func DefaultCatalog() *Catalog {
	c := NewCatalog()
	fixed, _ := NewFixed(5000)
	pct, _ := NewPercentage(0.10)
	_ = c.Add(KindFixed, fixed)
	_ = c.Add(KindPercentage, pct)
	return c
}

// LoadCatalog reads a YAML catalogue from path.
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("bonus: read catalogue: %w", err)
	}
	return ParseCatalog(data)
}

// ParseCatalog decodes a YAML catalogue.
func ParseCatalog(data []byte) (*Catalog, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("bonus: parse catalogue: %w", err)
	}

	c := NewCatalog()
	for i, entry := range file.Policies {
		p, err := entry.policy()
		if err != nil {
			return nil, fmt.Errorf("bonus: catalogue entry %d (%q): %w", i, entry.Name, err)
		}
		if err := c.Add(entry.Name, p); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func (e CatalogEntry) policy() (Policy, error) {
	switch strings.ToLower(e.Kind) {
	case KindFixed:
		return NewFixed(e.Amount)
	case KindPercentage:
		return NewPercentage(e.Rate)
	default:
		return nil, fmt.Errorf("unsupported kind %q", e.Kind)
	}
}

// Add registers p under name (case-insensitive).
func (c *Catalog) Add(name string, p Policy) error {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		return fmt.Errorf("bonus: empty policy name")
	}
	if p == nil {
		return fmt.Errorf("%w: nil policy %q", ErrInvalidValue, key)
	}
	if _, exists := c.policies[key]; exists {
		return fmt.Errorf("bonus: duplicate policy %q", key)
	}
	c.policies[key] = p
	c.names = append(c.names, key)
	return nil
}

// Lookup returns the policy registered under name.
func (c *Catalog) Lookup(name string) (Policy, error) {
	p, ok := c.policies[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPolicy, name)
	}
	return p, nil
}

// Names returns policy names in registration order.
func (c *Catalog) Names() []string {
	return append([]string(nil), c.names...)
}
