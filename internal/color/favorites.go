package color

import "strings"

// MaxFavorites is the number of samples a session can keep.
const MaxFavorites = 6

// Favorites is the bounded list of colors a customer sampled during a
// session. It is not safe for concurrent use.
type Favorites struct {
	items []Sample
}

// Add appends s. It returns false when the list is full. A sample whose hex
// is already present is not added twice; Add reports true for it.
func (f *Favorites) Add(s Sample) bool {
	if f.Contains(s.Hex) {
		return true
	}
	if len(f.items) >= MaxFavorites {
		return false
	}
	f.items = append(f.items, s)
	return true
}

// Remove deletes the sample with the given hex and reports whether it was
// present.
func (f *Favorites) Remove(hex string) bool {
	for i, s := range f.items {
		if strings.EqualFold(s.Hex, hex) {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return true
		}
	}
	return false
}

// Contains reports whether a sample with the given hex is in the list.
func (f *Favorites) Contains(hex string) bool {
	for _, s := range f.items {
		if strings.EqualFold(s.Hex, hex) {
			return true
		}
	}
	return false
}

// List returns a copy of the samples in insertion order.
func (f *Favorites) List() []Sample {
	out := make([]Sample, len(f.items))
	copy(out, f.items)
	return out
}

// Len returns the number of samples held.
func (f *Favorites) Len() int {
	return len(f.items)
}

// Full reports whether no more samples can be added.
func (f *Favorites) Full() bool {
	return len(f.items) >= MaxFavorites
}
