package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMACSingleTargetTwoAttributeSets(t *testing.T) {
	m := testModel(t, 2, map[string][]float64{
		"t": {1, 0}, "a": {1, 0}, "b": {0, 1},
	})
	q := mustQuery(t, [][]string{{"t"}}, [][]string{{"a"}, {"b"}})

	res, err := MAC{}.Run(q, m)
	require.NoError(t, err)
	// S(t, {a}) = 1 - cos(t,a) = 0, S(t, {b}) = 1 - cos(t,b) = 1
	assert.InDelta(t, 0.5, res.Score, 1e-12)
	require.Len(t, res.ByWord, 1)
	assert.Equal(t, "t", res.ByWord[0].Word)
	assert.InDelta(t, 0.5, res.ByWord[0].Score, 1e-12)
}

func TestMACWildcardAttributeArity(t *testing.T) {
	m := testModel(t, 2, map[string][]float64{
		"t": {1, 0}, "a": {1, 0}, "b": {0, 1}, "c": {1, 1},
	})

	for _, attrs := range [][][]string{
		{{"a"}},
		{{"a"}, {"b"}},
		{{"a"}, {"b"}, {"c"}},
	} {
		q := mustQuery(t, [][]string{{"t"}}, attrs)
		_, err := MAC{}.Run(q, m)
		assert.NoError(t, err)
	}
}

func TestMACRejectsTwoTargetSets(t *testing.T) {
	m := testModel(t, 1, map[string][]float64{"a": {1}})
	q := mustQuery(t, [][]string{{"a"}, {"a"}}, [][]string{{"a"}})

	_, err := MAC{}.Run(q, m)
	var mismatch *TemplateMismatchError
	assert.ErrorAs(t, err, &mismatch)
}

func TestMACIdenticalWordsScoreZero(t *testing.T) {
	m := testModel(t, 2, map[string][]float64{"t": {0.6, 0.8}})
	q := mustQuery(t, [][]string{{"t"}}, [][]string{{"t"}})

	res, err := MAC{}.Run(q, m)
	require.NoError(t, err)
	assert.InDelta(t, 0.0, res.Score, 1e-12)
}

func TestMACInsufficientVocabulary(t *testing.T) {
	m := testModel(t, 1, map[string][]float64{"t": {1}})
	q := mustQuery(t, [][]string{{"t"}}, [][]string{{"missing"}})

	res, err := MAC{}.Run(q, m)
	require.NoError(t, err)
	assert.True(t, res.Degraded())
}
