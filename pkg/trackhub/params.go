package trackhub

import (
	"maps"
	"slices"
)

// Params is an ordered string mapping for free-form track settings.
// Keys keep the position of their first insertion; setting an existing key
// replaces its value in place, so the last write wins.
//
// The zero value is ready to use.
type Params struct {
	keys   []string
	values map[string]string
}

// Set stores value under key.
func (p *Params) Set(key, value string) {
	if p.values == nil {
		p.values = make(map[string]string)
	}
	if _, ok := p.values[key]; !ok {
		p.keys = append(p.keys, key)
	}
	p.values[key] = value
}

// Merge sets every entry of kv. Keys that are new to p are appended in
// sorted order so the result does not depend on map iteration.
func (p *Params) Merge(kv map[string]string) {
	for _, k := range slices.Sorted(maps.Keys(kv)) {
		p.Set(k, kv[k])
	}
}

// Get returns the value stored under key.
func (p *Params) Get(key string) (string, bool) {
	v, ok := p.values[key]
	return v, ok
}

// Delete removes key. Deleting a missing key is a no-op.
func (p *Params) Delete(key string) {
	if _, ok := p.values[key]; !ok {
		return
	}
	delete(p.values, key)
	p.keys = slices.DeleteFunc(p.keys, func(k string) bool { return k == key })
}

// Keys returns the keys in insertion order.
func (p *Params) Keys() []string { return slices.Clone(p.keys) }

// Len returns the number of entries.
func (p *Params) Len() int { return len(p.keys) }
