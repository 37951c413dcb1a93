package metrics

import (
	"sort"
	"sync"
)

var (
	registryMu sync.RWMutex
	registry   = make(map[string]Metric)
)

func init() {
	Register(RND{})
	Register(WEAT{})
	Register(MAC{})
	Register(ECT{})
}

// Register makes a metric available under its short name. A later
// registration with the same short name replaces the earlier one.
func Register(m Metric) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[m.ShortName()] = m
}

// Lookup returns the metric registered under shortName.
func Lookup(shortName string) (Metric, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	m, ok := registry[shortName]
	return m, ok
}

// All returns the registered metrics sorted by short name.
func All() []Metric {
	registryMu.RLock()
	defer registryMu.RUnlock()
	out := make([]Metric, 0, len(registry))
	for _, m := range registry {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ShortName() < out[j].ShortName() })
	return out
}
