// Package wordsets loads named word-set catalogs from YAML and builds
// queries out of them.
//
// A catalog file looks like:
//
//	sets:
//	  female_terms: [female, woman, girl]
//	  male_terms: [male, man, boy]
//	  career: [executive, management, salary]
package wordsets

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/fairembed/fairembed/query"
)

var (
	ErrNoSets       = errors.New("catalog has no sets")
	ErrEmptySet     = errors.New("word set is empty")
	ErrDuplicateSet = errors.New("duplicate set name")
	ErrUnknownSet   = errors.New("unknown word set")
)

// Catalog is a named collection of word sets. It preserves the order the
// sets appear in the source document.
type Catalog struct {
	names []string
	sets  map[string][]string
}

type catalogFile struct {
	Sets yaml.Node `yaml:"sets"`
}

// Parse decodes a catalog from YAML.
func Parse(data []byte) (*Catalog, error) {
	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	if f.Sets.IsZero() {
		return nil, ErrNoSets
	}
	if f.Sets.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("parse catalog: sets must be a mapping of name to word list")
	}

	c := &Catalog{sets: make(map[string][]string)}
	for i := 0; i+1 < len(f.Sets.Content); i += 2 {
		name := f.Sets.Content[i].Value
		var words []string
		if err := f.Sets.Content[i+1].Decode(&words); err != nil {
			return nil, fmt.Errorf("set %q: %w", name, err)
		}
		if len(words) == 0 {
			return nil, fmt.Errorf("set %q: %w", name, ErrEmptySet)
		}
		if _, dup := c.sets[name]; dup {
			return nil, fmt.Errorf("set %q: %w", name, ErrDuplicateSet)
		}
		c.names = append(c.names, name)
		c.sets[name] = words
	}
	if len(c.names) == 0 {
		return nil, ErrNoSets
	}
	return c, nil
}

// Load reads and parses a catalog file.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return Parse(data)
}

// Names returns the set names in catalog order.
func (c *Catalog) Names() []string {
	return append([]string(nil), c.names...)
}

// Get returns a copy of the named word set.
func (c *Catalog) Get(name string) ([]string, bool) {
	words, ok := c.sets[name]
	if !ok {
		return nil, false
	}
	return append([]string(nil), words...), true
}

// Query builds a query from the named target and attribute sets, carrying
// the set names over as the query's set names.
func (c *Catalog) Query(targets, attributes []string) (*query.Query, error) {
	targetSets, err := c.collect(targets)
	if err != nil {
		return nil, err
	}
	attributeSets, err := c.collect(attributes)
	if err != nil {
		return nil, err
	}
	return query.New(targetSets, attributeSets,
		query.WithTargetNames(targets...),
		query.WithAttributeNames(attributes...),
	)
}

func (c *Catalog) collect(names []string) ([][]string, error) {
	sets := make([][]string, 0, len(names))
	for _, name := range names {
		words, ok := c.Get(name)
		if !ok {
			return nil, fmt.Errorf("%q: %w", name, ErrUnknownSet)
		}
		sets = append(sets, words)
	}
	return sets, nil
}
