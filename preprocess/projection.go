package preprocess

import (
	"errors"
	"fmt"

	"github.com/go-logr/logr"

	"github.com/fairembed/fairembed/internal/vecmath"
	"github.com/fairembed/fairembed/model"
	"github.com/fairembed/fairembed/query"
)

// DefaultThreshold is the default lost vocabulary threshold: a set may lose
// up to this fraction of its words before the whole projection is invalid.
const DefaultThreshold = 0.2

// ErrLostVocabulary signals that at least one set lost strictly more than
// the allowed fraction of words. Metrics translate it into a degraded
// (NaN) result rather than a failure.
var ErrLostVocabulary = errors.New("insufficient vocabulary coverage")

// Config carries the universal projection options shared by every metric.
type Config struct {
	// Threshold is the lost vocabulary threshold. Strictly exceeding it in
	// any set invalidates the projection.
	Threshold float64
	// Preprocessors are tried in order for each word. An empty list means
	// a single identity preprocessor.
	Preprocessors []Preprocessor
	// Strategy is First or All.
	Strategy Strategy
	// Normalize L2-normalizes every vector in the projection.
	Normalize bool
	// WarnNotFound logs each word that no preprocessor could resolve.
	WarnNotFound bool
	// Logger receives not-found warnings. Defaults to logr.Discard().
	Logger logr.Logger
}

// DefaultConfig returns a fresh Config with library defaults. A new value
// is constructed per call so callers never share preprocessor slices.
func DefaultConfig() Config {
	return Config{
		Threshold:     DefaultThreshold,
		Preprocessors: []Preprocessor{{}},
		Strategy:      First,
		Logger:        logr.Discard(),
	}
}

// WordVectors is an ordered word -> vector association for one set.
type WordVectors struct {
	words []string
	index map[string]int
	vecs  [][]float64
}

func newWordVectors() *WordVectors {
	return &WordVectors{index: make(map[string]int)}
}

// put inserts or overwrites. Re-inserting an existing word keeps its
// original position (last write wins for the vector).
func (wv *WordVectors) put(word string, vec []float64) {
	if i, ok := wv.index[word]; ok {
		wv.vecs[i] = vec
		return
	}
	wv.index[word] = len(wv.words)
	wv.words = append(wv.words, word)
	wv.vecs = append(wv.vecs, vec)
}

// Len returns the number of resolved words in the set.
func (wv *WordVectors) Len() int { return len(wv.words) }

// Words returns the resolved words in insertion order. The returned slice
// must not be modified.
func (wv *WordVectors) Words() []string { return wv.words }

// Vectors returns the vectors aligned with Words. The returned slices must
// not be modified.
func (wv *WordVectors) Vectors() [][]float64 { return wv.vecs }

// Vector returns the vector stored for word.
func (wv *WordVectors) Vector(word string) ([]float64, bool) {
	i, ok := wv.index[word]
	if !ok {
		return nil, false
	}
	return wv.vecs[i], true
}

// QueryEmbeddings is the resolved projection of a query, one WordVectors
// per target and attribute set, aligned by position.
type QueryEmbeddings struct {
	Targets    []*WordVectors
	Attributes []*WordVectors
}

// Project resolves every word of q against m and returns the per-set
// embeddings. If any set loses strictly more than cfg.Threshold of its
// words the whole projection is invalid and Project returns an error
// wrapping ErrLostVocabulary; there are no partial results.
func Project(q *query.Query, m model.Model, cfg Config) (*QueryEmbeddings, error) {
	switch cfg.Strategy {
	case First, All:
	default:
		return nil, fmt.Errorf("%w, got %q", ErrUnknownStrategy, cfg.Strategy)
	}
	if len(cfg.Preprocessors) == 0 {
		cfg.Preprocessors = []Preprocessor{{}}
	}

	emb := &QueryEmbeddings{}
	var lostErr error
	project := func(sets [][]string, names []string) []*WordVectors {
		out := make([]*WordVectors, len(sets))
		for i, set := range sets {
			wv, lost := projectSet(set, names[i], m, cfg)
			out[i] = wv
			fraction := float64(lost) / float64(len(set))
			if fraction > cfg.Threshold && lostErr == nil {
				lostErr = fmt.Errorf("set %q lost %d of %d words: %w",
					names[i], lost, len(set), ErrLostVocabulary)
			}
		}
		return out
	}
	emb.Targets = project(q.TargetSets(), q.TargetNames())
	emb.Attributes = project(q.AttributeSets(), q.AttributeNames())
	if lostErr != nil {
		return nil, lostErr
	}
	return emb, nil
}

func projectSet(words []string, setName string, m model.Model, cfg Config) (*WordVectors, int) {
	wv := newWordVectors()
	lost := 0
	for _, word := range words {
		added := false
		for _, form := range resolve(word, m, cfg.Preprocessors, cfg.Strategy) {
			vec, err := m.Vector(form)
			if err != nil {
				continue
			}
			if cfg.Normalize {
				vec = vecmath.Normalize(vec)
			}
			wv.put(form, vec)
			added = true
		}
		if !added {
			lost++
			if cfg.WarnNotFound {
				cfg.Logger.Info("word not found in vocabulary",
					"word", word,
					"set", setName,
					"preprocessors", describe(cfg.Preprocessors),
					"model", m.Name(),
				)
			}
		}
	}
	return wv, lost
}

// resolve applies the preprocessors in order and returns the transformed
// forms present in the vocabulary: only the first hit under First, every
// hit under All.
func resolve(word string, m model.Model, pps []Preprocessor, strategy Strategy) []string {
	var hits []string
	for _, pp := range pps {
		form := pp.Apply(word)
		if !m.Has(form) {
			continue
		}
		hits = append(hits, form)
		if strategy == First {
			break
		}
	}
	return hits
}

func describe(pps []Preprocessor) []string {
	out := make([]string, len(pps))
	for i, pp := range pps {
		out[i] = pp.String()
	}
	return out
}
