package metrics

import (
	"fmt"
	"math"

	"github.com/fairembed/fairembed/internal/vecmath"
	"github.com/fairembed/fairembed/model"
	"github.com/fairembed/fairembed/query"
)

// RND is the Relative Norm Distance metric (Garg et al., 2018). It measures
// the relative strength of association of a set of attribute words with
// respect to two target groups: per attribute word, the distance to the
// first group's centroid minus the distance to the second group's centroid.
// Positive scores mean the word sits closer to the second group.
type RND struct{}

var _ Metric = RND{}

func (RND) Name() string { return "Relative Norm Distance" }

func (RND) ShortName() string { return "RND" }

func (RND) Template() query.Template {
	return query.Template{Targets: 2, Attributes: 1}
}

// Run computes RND. Options: WithDistance (DistanceNorm default, or
// DistanceCos for absolute cosine similarity), WithAverageDistances
// (default true; false sums), plus the universal options.
func (r RND) Run(q *query.Query, m model.Model, opts ...Option) (Result, error) {
	if err := checkInput(r, q, m); err != nil {
		return Result{}, err
	}
	cfg := newRunConfig(opts...)
	if cfg.distance != DistanceNorm && cfg.distance != DistanceCos {
		return Result{}, fmt.Errorf("%w, got %q", ErrUnknownDistance, cfg.distance)
	}

	emb, deg, err := projectOrDegrade(r, q, m, cfg)
	if err != nil {
		return Result{}, err
	}
	if deg != nil {
		return *deg, nil
	}
	attr := emb.Attributes[0]
	if emb.Targets[0].Len() == 0 || emb.Targets[1].Len() == 0 || attr.Len() == 0 {
		return degraded(q, r.ShortName()), nil
	}

	centroid0 := vecmath.Centroid(emb.Targets[0].Vectors())
	centroid1 := vecmath.Centroid(emb.Targets[1].Vectors())

	byWord := make([]WordScore, 0, attr.Len())
	sum := 0.0
	for i, word := range attr.Words() {
		vec := attr.Vectors()[i]
		d := distance(vec, centroid0, cfg.distance) - distance(vec, centroid1, cfg.distance)
		sum += d
		byWord = append(byWord, WordScore{Word: word, Score: d})
	}
	sortByScore(byWord)

	score := sum
	if cfg.averageDistances {
		score = sum / float64(len(byWord))
	}
	return Result{QueryName: q.Name(), Metric: r.ShortName(), Score: score, ByWord: byWord}, nil
}

func distance(vec, centroid []float64, distanceType string) float64 {
	if distanceType == DistanceCos {
		return math.Abs(vecmath.Cosine(vec, centroid))
	}
	return vecmath.Euclidean(vec, centroid)
}
