// Package fairembed measures social bias in word embedding models. It
// computes association statistics between groups of target words (social
// categories, e.g. gendered terms) and attribute words (concepts tested
// for biased association, e.g. career vs. family terms).
//
// Build a query, pick a metric, and run it against any model.Model:
//
//	q, _ := query.New(
//	    [][]string{{"female", "woman"}, {"male", "man"}},
//	    [][]string{{"executive", "salary", "office"}},
//	    query.WithTargetNames("Female terms", "Male terms"),
//	    query.WithAttributeNames("Career"),
//	)
//	res, err := fairembed.Evaluate(q, m, metrics.RND{})
//
// Loading embedding models, plotting and dataset downloads are out of
// scope; any backend satisfying model.Model plugs in.
package fairembed

import (
	"fmt"

	"github.com/fairembed/fairembed/metrics"
	"github.com/fairembed/fairembed/model"
	"github.com/fairembed/fairembed/query"
)

// Evaluate runs metric for q against m.
func Evaluate(q *query.Query, m model.Model, metric metrics.Metric, opts ...metrics.Option) (metrics.Result, error) {
	return metric.Run(q, m, opts...)
}

// EvaluateByName looks up a registered metric by short name ("RND",
// "WEAT", "MAC", "ECT", or anything added via metrics.Register) and runs it.
func EvaluateByName(shortName string, q *query.Query, m model.Model, opts ...metrics.Option) (metrics.Result, error) {
	metric, ok := metrics.Lookup(shortName)
	if !ok {
		return metrics.Result{}, fmt.Errorf("no metric registered as %q", shortName)
	}
	return metric.Run(q, m, opts...)
}
