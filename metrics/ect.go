package metrics

import (
	"gonum.org/v1/gonum/stat"

	"github.com/fairembed/fairembed/internal/vecmath"
	"github.com/fairembed/fairembed/model"
	"github.com/fairembed/fairembed/query"
)

// ECT is the Embedding Coherence Test (Dev and Phillips, 2019). It computes
// the centroid of each of the two target sets, the cosine similarity of
// every attribute word to both centroids, and reports the Spearman rank
// correlation between the two similarity vectors. A score near 1 means both
// groups rank the attribute words the same way (less bias).
type ECT struct{}

var _ Metric = ECT{}

func (ECT) Name() string { return "Embedding Coherence Test" }

func (ECT) ShortName() string { return "ECT" }

func (ECT) Template() query.Template {
	return query.Template{Targets: 2, Attributes: 1}
}

// Run computes ECT. ByWord holds, per attribute word, the similarity to
// the first centroid minus the similarity to the second. With fewer than
// two resolved attribute words the correlation is undefined and the run
// degrades to NaN.
func (e ECT) Run(q *query.Query, m model.Model, opts ...Option) (Result, error) {
	if err := checkInput(e, q, m); err != nil {
		return Result{}, err
	}
	cfg := newRunConfig(opts...)

	emb, deg, err := projectOrDegrade(e, q, m, cfg)
	if err != nil {
		return Result{}, err
	}
	if deg != nil {
		return *deg, nil
	}
	attr := emb.Attributes[0]
	if emb.Targets[0].Len() == 0 || emb.Targets[1].Len() == 0 || attr.Len() < 2 {
		return degraded(q, e.ShortName()), nil
	}

	centroid0 := vecmath.Centroid(emb.Targets[0].Vectors())
	centroid1 := vecmath.Centroid(emb.Targets[1].Vectors())

	sims0 := make([]float64, attr.Len())
	sims1 := make([]float64, attr.Len())
	byWord := make([]WordScore, 0, attr.Len())
	for i, word := range attr.Words() {
		vec := attr.Vectors()[i]
		sims0[i] = vecmath.Cosine(vec, centroid0)
		sims1[i] = vecmath.Cosine(vec, centroid1)
		byWord = append(byWord, WordScore{Word: word, Score: sims0[i] - sims1[i]})
	}
	sortByScore(byWord)

	// Spearman: Pearson correlation over average ranks.
	score := stat.Correlation(vecmath.Ranks(sims0), vecmath.Ranks(sims1), nil)
	return Result{QueryName: q.Name(), Metric: e.ShortName(), Score: score, ByWord: byWord}, nil
}
