// Package differ provides change detection between successive observations
// of a peer bag.
package differ

import (
	"fmt"
	"sort"
)

// Delta classifies the keys of a freshly observed peer view against the
// previous snapshot. The three sets are pairwise disjoint and sorted for
// deterministic output.
type Delta struct {
	Added   []string // keys that appeared since the last observation
	Changed []string // keys that still exist but have new values
	Deleted []string // keys that disappeared since the last observation
}

// HasChanges returns true if the delta contains any changes.
func (d *Delta) HasChanges() bool {
	return len(d.Added)+len(d.Changed)+len(d.Deleted) > 0
}

// WasAdded reports whether the key first appeared in this observation.
func (d *Delta) WasAdded(key string) bool {
	return contains(d.Added, key)
}

// WasChanged reports whether the key's value changed in this observation.
func (d *Delta) WasChanged(key string) bool {
	return contains(d.Changed, key)
}

// WasDeleted reports whether the key disappeared in this observation.
func (d *Delta) WasDeleted(key string) bool {
	return contains(d.Deleted, key)
}

// Summary returns a one-line description for logging.
func (d *Delta) Summary() string {
	return fmt.Sprintf("%d added, %d changed, %d deleted",
		len(d.Added), len(d.Changed), len(d.Deleted))
}

func contains(keys []string, key string) bool {
	i := sort.SearchStrings(keys, key)
	return i < len(keys) && keys[i] == key
}
