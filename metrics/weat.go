package metrics

import (
	"gonum.org/v1/gonum/stat"

	"github.com/fairembed/fairembed/internal/vecmath"
	"github.com/fairembed/fairembed/model"
	"github.com/fairembed/fairembed/query"
)

// WEAT is the Word Embedding Association Test (Caliskan et al., 2017). For
// each target word w it computes s(w) = mean cos(w, A) - mean cos(w, B)
// over the two attribute sets; the test statistic is the sum of s over the
// first target set minus the sum over the second. There is no permutation
// p-value: the computation stays deterministic.
type WEAT struct{}

var _ Metric = WEAT{}

func (WEAT) Name() string { return "Word Embedding Association Test" }

func (WEAT) ShortName() string { return "WEAT" }

func (WEAT) Template() query.Template {
	return query.Template{Targets: 2, Attributes: 2}
}

// Run computes WEAT. WithEffectSize(true) reports the effect size
// (difference of the target means of s, over the population standard
// deviation of s across both target sets) instead of the raw statistic.
// ByWord holds s(w) per target word.
func (w WEAT) Run(q *query.Query, m model.Model, opts ...Option) (Result, error) {
	if err := checkInput(w, q, m); err != nil {
		return Result{}, err
	}
	cfg := newRunConfig(opts...)

	emb, deg, err := projectOrDegrade(w, q, m, cfg)
	if err != nil {
		return Result{}, err
	}
	if deg != nil {
		return *deg, nil
	}
	target0, target1 := emb.Targets[0], emb.Targets[1]
	attrA, attrB := emb.Attributes[0], emb.Attributes[1]
	if target0.Len() == 0 || target1.Len() == 0 || attrA.Len() == 0 || attrB.Len() == 0 {
		return degraded(q, w.ShortName()), nil
	}

	assoc := func(vec []float64) float64 {
		return meanCosine(vec, attrA.Vectors()) - meanCosine(vec, attrB.Vectors())
	}

	var byWord []WordScore
	s0 := make([]float64, 0, target0.Len())
	for i, word := range target0.Words() {
		s := assoc(target0.Vectors()[i])
		s0 = append(s0, s)
		byWord = append(byWord, WordScore{Word: word, Score: s})
	}
	s1 := make([]float64, 0, target1.Len())
	for i, word := range target1.Words() {
		s := assoc(target1.Vectors()[i])
		s1 = append(s1, s)
		byWord = append(byWord, WordScore{Word: word, Score: s})
	}
	sortByScore(byWord)

	var score float64
	if cfg.effectSize {
		all := append(append([]float64(nil), s0...), s1...)
		score = (stat.Mean(s0, nil) - stat.Mean(s1, nil)) / stat.PopStdDev(all, nil)
	} else {
		for _, s := range s0 {
			score += s
		}
		for _, s := range s1 {
			score -= s
		}
	}
	return Result{QueryName: q.Name(), Metric: w.ShortName(), Score: score, ByWord: byWord}, nil
}

func meanCosine(vec []float64, vecs [][]float64) float64 {
	total := 0.0
	for _, v := range vecs {
		total += vecmath.Cosine(vec, v)
	}
	return total / float64(len(vecs))
}
