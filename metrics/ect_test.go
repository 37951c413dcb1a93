package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestECTPerfectAgreement(t *testing.T) {
	// attribute words whose similarity ordering to both centroids agrees
	m := testModel(t, 3, map[string][]float64{
		"t0": {1, 0, 0}, "t1": {0, 1, 0},
		"a": {0.1, 0.1, 0.9}, "b": {0.2, 0.2, 0.8}, "c": {0.3, 0.3, 0.7},
	})
	q := mustQuery(t, [][]string{{"t0"}, {"t1"}}, [][]string{{"a", "b", "c"}})

	res, err := ECT{}.Run(q, m)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, res.Score, 1e-12)
}

func TestECTPerfectDisagreement(t *testing.T) {
	// similarity to t0 rises across the words while similarity to t1 falls
	m := testModel(t, 2, map[string][]float64{
		"t0": {1, 0}, "t1": {0, 1},
		"a": {0.2, 0.8}, "b": {0.5, 0.5}, "c": {0.8, 0.2},
	})
	q := mustQuery(t, [][]string{{"t0"}, {"t1"}}, [][]string{{"a", "b", "c"}})

	res, err := ECT{}.Run(q, m)
	require.NoError(t, err)
	assert.InDelta(t, -1.0, res.Score, 1e-12)
}

func TestECTByWordDifferences(t *testing.T) {
	m := testModel(t, 2, map[string][]float64{
		"t0": {1, 0}, "t1": {0, 1},
		"a": {1, 0}, "b": {0, 1},
	})
	q := mustQuery(t, [][]string{{"t0"}, {"t1"}}, [][]string{{"a", "b"}})

	res, err := ECT{}.Run(q, m)
	require.NoError(t, err)
	require.Len(t, res.ByWord, 2)
	// sorted ascending: b (0 - 1 = -1) before a (1 - 0 = 1)
	assert.Equal(t, "b", res.ByWord[0].Word)
	assert.InDelta(t, -1.0, res.ByWord[0].Score, 1e-12)
	assert.Equal(t, "a", res.ByWord[1].Word)
	assert.InDelta(t, 1.0, res.ByWord[1].Score, 1e-12)
}

func TestECTSingleAttributeWordDegrades(t *testing.T) {
	m := testModel(t, 2, map[string][]float64{
		"t0": {1, 0}, "t1": {0, 1}, "a": {1, 1},
	})
	q := mustQuery(t, [][]string{{"t0"}, {"t1"}}, [][]string{{"a"}})

	res, err := ECT{}.Run(q, m)
	require.NoError(t, err)
	assert.True(t, res.Degraded())
}

func TestECTInsufficientVocabulary(t *testing.T) {
	m := testModel(t, 1, map[string][]float64{"a": {1}})
	q := mustQuery(t, [][]string{{"missing"}, {"a"}}, [][]string{{"a", "a"}})

	res, err := ECT{}.Run(q, m)
	require.NoError(t, err)
	assert.True(t, res.Degraded())
}
