// Package model defines the capability contract metrics need from a word
// embedding backend, plus an in-memory implementation for callers that load
// vectors themselves.
package model

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned (wrapped) by Vector for out-of-vocabulary words.
var ErrNotFound = errors.New("word not found in vocabulary")

// Model wraps an embedding backend. Implementations must be safe for
// concurrent reads; metrics treat vectors as read-only and never mutate
// what Vector returns.
type Model interface {
	// Has reports whether word is in the vocabulary.
	Has(word string) bool

	// Vector returns the embedding for word. It fails with ErrNotFound
	// (wrapped) when the word is absent.
	Vector(word string) ([]float64, error)

	// Dimension returns the embedding dimensionality.
	Dimension() int

	// Len returns the number of vectors in the vocabulary.
	Len() int

	// Name identifies the model in diagnostics and warnings.
	Name() string
}

var _ Model = (*Dict)(nil)

// Dict is a map-backed in-memory Model. Populate it with Add before use;
// once shared with metrics it must not be modified.
type Dict struct {
	name      string
	dimension int
	vectors   map[string][]float64
}

// NewDict returns an empty Dict holding vectors of the given dimension.
func NewDict(name string, dimension int) *Dict {
	return &Dict{
		name:      name,
		dimension: dimension,
		vectors:   make(map[string][]float64),
	}
}

// Add stores a copy of vec under word, replacing any previous entry.
func (d *Dict) Add(word string, vec []float64) error {
	if len(vec) != d.dimension {
		return fmt.Errorf("dimension mismatch: expected %d, got %d", d.dimension, len(vec))
	}
	d.vectors[word] = append([]float64(nil), vec...)
	return nil
}

func (d *Dict) Has(word string) bool {
	_, ok := d.vectors[word]
	return ok
}

func (d *Dict) Vector(word string) ([]float64, error) {
	vec, ok := d.vectors[word]
	if !ok {
		return nil, fmt.Errorf("%q: %w", word, ErrNotFound)
	}
	return vec, nil
}

func (d *Dict) Dimension() int { return d.dimension }

func (d *Dict) Len() int { return len(d.vectors) }

func (d *Dict) Name() string { return d.name }
