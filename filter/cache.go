package filter

import "sync"

// cache stores compiled filters keyed by their source expression, so
// repeated evaluations of the same preset skip recompilation.
type cache struct {
	mu      sync.RWMutex
	filters map[string]*Filter
}

var globalCache = &cache{
	filters: make(map[string]*Filter),
}

// Cached compiles an expression, reusing a previously compiled filter for
// the same expression when available.
func Cached(expression string) (*Filter, error) {
	globalCache.mu.RLock()
	f, ok := globalCache.filters[expression]
	globalCache.mu.RUnlock()
	if ok {
		return f, nil
	}

	f, err := Compile(expression)
	if err != nil {
		return nil, err
	}

	globalCache.mu.Lock()
	globalCache.filters[expression] = f
	globalCache.mu.Unlock()

	return f, nil
}
