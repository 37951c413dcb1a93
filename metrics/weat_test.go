package metrics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWEATOrthogonalGroups(t *testing.T) {
	m := testModel(t, 2, map[string][]float64{
		"x": {1, 0}, "y": {0, 1},
		"a": {1, 0}, "b": {0, 1},
	})
	q := mustQuery(t, [][]string{{"x"}, {"y"}}, [][]string{{"a"}, {"b"}})

	res, err := WEAT{}.Run(q, m)
	require.NoError(t, err)
	// s(x) = cos(x,a) - cos(x,b) = 1, s(y) = -1, score = 1 - (-1)
	assert.InDelta(t, 2.0, res.Score, 1e-12)
	require.Len(t, res.ByWord, 2)
	assert.Equal(t, "y", res.ByWord[0].Word)
	assert.InDelta(t, -1.0, res.ByWord[0].Score, 1e-12)
	assert.Equal(t, "x", res.ByWord[1].Word)
	assert.InDelta(t, 1.0, res.ByWord[1].Score, 1e-12)
}

func TestWEATEffectSize(t *testing.T) {
	m := testModel(t, 2, map[string][]float64{
		"x": {1, 0}, "y": {0, 1},
		"a": {1, 0}, "b": {0, 1},
	})
	q := mustQuery(t, [][]string{{"x"}, {"y"}}, [][]string{{"a"}, {"b"}})

	res, err := WEAT{}.Run(q, m, WithEffectSize(true))
	require.NoError(t, err)
	// s values are {1} and {-1}: (1 - (-1)) / popstddev({1,-1}) = 2 / 1
	assert.InDelta(t, 2.0, res.Score, 1e-12)
}

func TestWEATSymmetricAttributesScoreZero(t *testing.T) {
	// both attribute sets are identical, so s(w) = 0 for every word
	m := testModel(t, 2, map[string][]float64{
		"x": {0.2, 0.9}, "y": {0.7, 0.1}, "a": {0.5, 0.5},
	})
	q := mustQuery(t, [][]string{{"x"}, {"y"}}, [][]string{{"a"}, {"a"}})

	res, err := WEAT{}.Run(q, m)
	require.NoError(t, err)
	assert.InDelta(t, 0.0, res.Score, 1e-12)
}

func TestWEATSwappedTargetsNegates(t *testing.T) {
	m := testModel(t, 2, map[string][]float64{
		"x": {0.9, 0.1}, "y": {0.1, 0.8},
		"a": {1, 0}, "b": {0, 1},
	})
	q := mustQuery(t, [][]string{{"x"}, {"y"}}, [][]string{{"a"}, {"b"}})
	swapped := mustQuery(t, [][]string{{"y"}, {"x"}}, [][]string{{"a"}, {"b"}})

	res, err := WEAT{}.Run(q, m)
	require.NoError(t, err)
	neg, err := WEAT{}.Run(swapped, m)
	require.NoError(t, err)
	assert.InDelta(t, -res.Score, neg.Score, 1e-12)
}

func TestWEATTemplate(t *testing.T) {
	m := testModel(t, 1, map[string][]float64{"a": {1}})
	q := mustQuery(t, [][]string{{"a"}, {"a"}}, [][]string{{"a"}})

	_, err := WEAT{}.Run(q, m)
	var mismatch *TemplateMismatchError
	assert.ErrorAs(t, err, &mismatch)
}

func TestWEATInsufficientVocabulary(t *testing.T) {
	m := testModel(t, 1, map[string][]float64{"a": {1}})
	q := mustQuery(t, [][]string{{"missing"}, {"a"}}, [][]string{{"a"}, {"a"}})

	res, err := WEAT{}.Run(q, m)
	require.NoError(t, err)
	assert.True(t, math.IsNaN(res.Score))
	assert.Empty(t, res.ByWord)
}
