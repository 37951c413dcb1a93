package metrics

import (
	"github.com/fairembed/fairembed/internal/vecmath"
	"github.com/fairembed/fairembed/model"
	"github.com/fairembed/fairembed/query"
)

// MAC is the Mean Average Cosine similarity metric (Manzini et al., 2019).
// For a target word t and an attribute set A it computes S(t, A), the mean
// cosine distance (1 - cos) from t to the words of A; the score is the
// mean of S over every target word and attribute set pairing.
type MAC struct{}

var _ Metric = MAC{}

func (MAC) Name() string { return "Mean Average Cosine Similarity" }

func (MAC) ShortName() string { return "MAC" }

func (MAC) Template() query.Template {
	return query.Template{Targets: 1, Attributes: query.Any}
}

// Run computes MAC. ByWord holds, per target word, the mean of S across
// the attribute sets.
func (c MAC) Run(q *query.Query, m model.Model, opts ...Option) (Result, error) {
	if err := checkInput(c, q, m); err != nil {
		return Result{}, err
	}
	cfg := newRunConfig(opts...)

	emb, deg, err := projectOrDegrade(c, q, m, cfg)
	if err != nil {
		return Result{}, err
	}
	if deg != nil {
		return *deg, nil
	}
	target := emb.Targets[0]
	if target.Len() == 0 {
		return degraded(q, c.ShortName()), nil
	}

	total := 0.0
	pairs := 0
	byWord := make([]WordScore, 0, target.Len())
	for i, word := range target.Words() {
		vec := target.Vectors()[i]
		wordTotal := 0.0
		wordSets := 0
		for _, attr := range emb.Attributes {
			if attr.Len() == 0 {
				continue
			}
			s := 0.0
			for _, av := range attr.Vectors() {
				s += 1 - vecmath.Cosine(vec, av)
			}
			s /= float64(attr.Len())
			wordTotal += s
			wordSets++
			total += s
			pairs++
		}
		if wordSets > 0 {
			byWord = append(byWord, WordScore{Word: word, Score: wordTotal / float64(wordSets)})
		}
	}
	if pairs == 0 {
		return degraded(q, c.ShortName()), nil
	}
	sortByScore(byWord)

	return Result{QueryName: q.Name(), Metric: c.ShortName(), Score: total / float64(pairs), ByWord: byWord}, nil
}
