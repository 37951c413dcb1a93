// Package query defines the immutable word-set bundles submitted for bias
// evaluation and the cardinality templates metrics use to accept or reject
// them.
package query

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Any is the wildcard template slot. A metric template using Any in a slot
// accepts any cardinality >= 1 there.
const Any = 0

// Template is the cardinality signature of a query: how many target sets
// and how many attribute sets it carries.
type Template struct {
	Targets    int
	Attributes int
}

func (t Template) String() string {
	return fmt.Sprintf("(%s, %s)", slot(t.Targets), slot(t.Attributes))
}

func slot(n int) string {
	if n == Any {
		return "n"
	}
	return strconv.Itoa(n)
}

// Matches reports whether the concrete template got satisfies t. Any slots
// always match.
func (t Template) Matches(got Template) bool {
	if t.Targets != Any && t.Targets != got.Targets {
		return false
	}
	if t.Attributes != Any && t.Attributes != got.Attributes {
		return false
	}
	return true
}

var (
	ErrNoTargetSets    = errors.New("query needs at least one target set")
	ErrNoAttributeSets = errors.New("query needs at least one attribute set")
	ErrEmptySet        = errors.New("word set is empty")
	ErrNameMismatch    = errors.New("set names do not align with sets")
)

// Query is an immutable bundle of named target and attribute word sets.
// Construct it with New; the zero value is not usable.
type Query struct {
	targetSets     [][]string
	attributeSets  [][]string
	targetNames    []string
	attributeNames []string
	template       Template
	name           string
}

// Option configures optional Query attributes at construction.
type Option func(*options)

type options struct {
	targetNames    []string
	attributeNames []string
}

// WithTargetNames names the target sets, aligned by position.
func WithTargetNames(names ...string) Option {
	return func(o *options) {
		o.targetNames = names
	}
}

// WithAttributeNames names the attribute sets, aligned by position.
func WithAttributeNames(names ...string) Option {
	return func(o *options) {
		o.attributeNames = names
	}
}

// New builds a Query from copies of the given word sets. Both arities must
// be at least one, no set may be empty, and names, when given, must align
// one to one with their sets. Unnamed sets get positional defaults
// ("Target set 0", "Attribute set 1", ...).
func New(targetSets, attributeSets [][]string, opts ...Option) (*Query, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	if len(targetSets) == 0 {
		return nil, ErrNoTargetSets
	}
	if len(attributeSets) == 0 {
		return nil, ErrNoAttributeSets
	}
	for i, set := range targetSets {
		if len(set) == 0 {
			return nil, fmt.Errorf("target set %d: %w", i, ErrEmptySet)
		}
	}
	for i, set := range attributeSets {
		if len(set) == 0 {
			return nil, fmt.Errorf("attribute set %d: %w", i, ErrEmptySet)
		}
	}
	if o.targetNames != nil && len(o.targetNames) != len(targetSets) {
		return nil, fmt.Errorf("%d target names for %d target sets: %w",
			len(o.targetNames), len(targetSets), ErrNameMismatch)
	}
	if o.attributeNames != nil && len(o.attributeNames) != len(attributeSets) {
		return nil, fmt.Errorf("%d attribute names for %d attribute sets: %w",
			len(o.attributeNames), len(attributeSets), ErrNameMismatch)
	}

	targetNames := o.targetNames
	if targetNames == nil {
		targetNames = defaultNames("Target set", len(targetSets))
	}
	attributeNames := o.attributeNames
	if attributeNames == nil {
		attributeNames = defaultNames("Attribute set", len(attributeSets))
	}

	q := &Query{
		targetSets:     copySets(targetSets),
		attributeSets:  copySets(attributeSets),
		targetNames:    append([]string(nil), targetNames...),
		attributeNames: append([]string(nil), attributeNames...),
		template:       Template{Targets: len(targetSets), Attributes: len(attributeSets)},
	}
	q.name = fmt.Sprintf("%s wrt %s", joinNames(q.targetNames), joinNames(q.attributeNames))
	return q, nil
}

// Name returns the derived display name, e.g. "Female terms and Male terms
// wrt Career".
func (q *Query) Name() string { return q.name }

// Template returns the cardinality signature fixed at construction.
func (q *Query) Template() Template { return q.template }

// TargetSets returns a copy of the target word sets.
func (q *Query) TargetSets() [][]string { return copySets(q.targetSets) }

// AttributeSets returns a copy of the attribute word sets.
func (q *Query) AttributeSets() [][]string { return copySets(q.attributeSets) }

// TargetNames returns a copy of the target set names.
func (q *Query) TargetNames() []string { return append([]string(nil), q.targetNames...) }

// AttributeNames returns a copy of the attribute set names.
func (q *Query) AttributeNames() []string { return append([]string(nil), q.attributeNames...) }

func defaultNames(prefix string, n int) []string {
	names := make([]string, n)
	for i := range names {
		names[i] = fmt.Sprintf("%s %d", prefix, i)
	}
	return names
}

func joinNames(names []string) string {
	switch len(names) {
	case 1:
		return names[0]
	case 2:
		return names[0] + " and " + names[1]
	default:
		return strings.Join(names[:len(names)-1], ", ") + " and " + names[len(names)-1]
	}
}

func copySets(sets [][]string) [][]string {
	out := make([][]string, len(sets))
	for i, set := range sets {
		out[i] = append([]string(nil), set...)
	}
	return out
}
