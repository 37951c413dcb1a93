// Package metrics implements the association statistics computed over
// projected queries: RND, WEAT, MAC and ECT, behind a shared Metric
// contract and a registry keyed by short name.
package metrics

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/go-logr/logr"

	"github.com/fairembed/fairembed/model"
	"github.com/fairembed/fairembed/preprocess"
	"github.com/fairembed/fairembed/query"
)

// Metric is one association statistic. Implementations are stateless and
// safe for concurrent use.
type Metric interface {
	// Name returns the full metric name.
	Name() string
	// ShortName returns the registry key, e.g. "RND".
	ShortName() string
	// Template returns the query cardinality this metric accepts. Slots
	// may be query.Any.
	Template() query.Template
	// Run evaluates the metric for q against m. Insufficient vocabulary
	// coverage is not an error: it yields a Result with a NaN score and
	// no per-word entries.
	Run(q *query.Query, m model.Model, opts ...Option) (Result, error)
}

// WordScore pairs a word with its metric-specific score.
type WordScore struct {
	Word  string
	Score float64
}

// Result is the outcome of one metric run.
type Result struct {
	// QueryName copies the query display name.
	QueryName string
	// Metric is the short name of the metric that produced the result.
	Metric string
	// Score is the association statistic. NaN when the run degraded on
	// insufficient vocabulary.
	Score float64
	// ByWord holds per-word diagnostics sorted ascending by score, ties
	// kept in insertion order. Empty when the run degraded.
	ByWord []WordScore
}

// Degraded reports whether the run hit the lost vocabulary threshold.
func (r Result) Degraded() bool { return math.IsNaN(r.Score) }

var (
	ErrNilQuery        = errors.New("query must not be nil")
	ErrNilModel        = errors.New("model must not be nil")
	ErrUnknownDistance = errors.New(`distance must be "norm" or "cos"`)
)

// TemplateMismatchError reports a query whose cardinality does not fit the
// metric it was submitted to.
type TemplateMismatchError struct {
	Metric    string
	QueryName string
	Required  query.Template
	Got       query.Template
}

func (e *TemplateMismatchError) Error() string {
	return fmt.Sprintf("query %q has template %s but %s requires %s",
		e.QueryName, e.Got, e.Metric, e.Required)
}

// checkInput guards the public boundary before any computation.
func checkInput(mt Metric, q *query.Query, m model.Model) error {
	if q == nil {
		return ErrNilQuery
	}
	if m == nil {
		return ErrNilModel
	}
	if !mt.Template().Matches(q.Template()) {
		return &TemplateMismatchError{
			Metric:    mt.Name(),
			QueryName: q.Name(),
			Required:  mt.Template(),
			Got:       q.Template(),
		}
	}
	return nil
}

func degraded(q *query.Query, shortName string) Result {
	return Result{QueryName: q.Name(), Metric: shortName, Score: math.NaN()}
}

func sortByScore(ws []WordScore) {
	sort.SliceStable(ws, func(i, j int) bool { return ws[i].Score < ws[j].Score })
}

// Distance types accepted by RND.
const (
	DistanceNorm = "norm"
	DistanceCos  = "cos"
)

// Option adjusts a metric run. Universal options apply to every metric;
// metric-specific options are ignored by metrics that do not use them.
type Option func(*runConfig)

type runConfig struct {
	proj preprocess.Config

	// RND
	distance         string
	averageDistances bool

	// WEAT
	effectSize bool
}

func newRunConfig(opts ...Option) runConfig {
	cfg := runConfig{
		proj:             preprocess.DefaultConfig(),
		distance:         DistanceNorm,
		averageDistances: true,
	}
	for _, o := range opts {
		o(&cfg)
	}
	return cfg
}

// WithLostVocabularyThreshold sets the fraction of words a set may lose
// before the whole run degrades to NaN. Default 0.2; the comparison is a
// strict inequality.
func WithLostVocabularyThreshold(t float64) Option {
	return func(c *runConfig) { c.proj.Threshold = t }
}

// WithPreprocessors sets the word transformations tried, in order, when
// resolving vocabulary. Default is a single identity preprocessor.
func WithPreprocessors(pps ...preprocess.Preprocessor) Option {
	return func(c *runConfig) { c.proj.Preprocessors = pps }
}

// WithStrategy selects preprocess.First or preprocess.All.
func WithStrategy(s preprocess.Strategy) Option {
	return func(c *runConfig) { c.proj.Strategy = s }
}

// WithNormalize L2-normalizes every embedding before computation.
func WithNormalize(normalize bool) Option {
	return func(c *runConfig) { c.proj.Normalize = normalize }
}

// WithWarnNotFoundWords logs every word that fails to resolve.
func WithWarnNotFoundWords(warn bool) Option {
	return func(c *runConfig) { c.proj.WarnNotFound = warn }
}

// WithLogger sets the logger receiving not-found warnings.
func WithLogger(l logr.Logger) Option {
	return func(c *runConfig) { c.proj.Logger = l }
}

// WithDistance selects the RND distance: DistanceNorm (euclidean distance
// to each centroid) or DistanceCos (absolute cosine similarity).
func WithDistance(d string) Option {
	return func(c *runConfig) { c.distance = d }
}

// WithAverageDistances toggles averaging the per-word RND distances into
// the score; false sums them instead. Default true.
func WithAverageDistances(average bool) Option {
	return func(c *runConfig) { c.averageDistances = average }
}

// WithEffectSize makes WEAT report the effect size instead of the raw
// test statistic.
func WithEffectSize(effectSize bool) Option {
	return func(c *runConfig) { c.effectSize = effectSize }
}

// projectOrDegrade runs the projection, translating insufficient coverage
// into a degraded result.
func projectOrDegrade(mt Metric, q *query.Query, m model.Model, cfg runConfig) (*preprocess.QueryEmbeddings, *Result, error) {
	emb, err := preprocess.Project(q, m, cfg.proj)
	if err != nil {
		if errors.Is(err, preprocess.ErrLostVocabulary) {
			r := degraded(q, mt.ShortName())
			return nil, &r, nil
		}
		return nil, nil, err
	}
	return emb, nil, nil
}
