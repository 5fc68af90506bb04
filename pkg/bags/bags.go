// Package bags defines the data model for per-relation key/value bags.
// Every relation between a provider and a requirer application carries two
// bags, one owned by each side. Only the owning side may mutate its own bag;
// the other side sees it read-only. The physical storage and replication of
// bags is supplied by the host runtime through the Accessor interface.
package bags

import (
	"sort"
	"strconv"
)

// RelationID identifies one peer-to-peer relation instance. IDs are assigned
// by the host runtime; this library only references them.
type RelationID int

// String returns the id in decimal form for logging.
func (id RelationID) String() string {
	return strconv.Itoa(int(id))
}

// Side selects which of a relation's two bags to address.
type Side string

const (
	// SideLocal is the bag owned by this application (the provider).
	SideLocal Side = "local"

	// SidePeer is the bag owned by the remote application (the requirer).
	SidePeer Side = "peer"
)

// View is a point-in-time reading of a bag's content.
type View map[string]string

// Clone returns an independent copy of the view.
func (v View) Clone() View {
	out := make(View, len(v))
	for k, val := range v {
		out[k] = val
	}
	return out
}

// Keys returns the view's keys in sorted order.
func (v View) Keys() []string {
	keys := make([]string, 0, len(v))
	for k := range v {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Without returns a copy of the view with the given keys removed.
func (v View) Without(keys ...string) View {
	out := v.Clone()
	for _, k := range keys {
		delete(out, k)
	}
	return out
}

// Accessor provides read and write access to relation bags. Implementations
// are supplied by the host runtime; pkg/bags/memory provides an in-memory
// implementation for tests and tooling.
//
// Update merges fields into the addressed bag per key; keys not named are
// left untouched. Both methods fail with a not-found error when the relation
// id is unknown.
type Accessor interface {
	// Get returns the current content of the addressed bag.
	Get(id RelationID, side Side) (View, error)

	// Update merges fields into the addressed bag.
	Update(id RelationID, side Side, fields View) error
}

// Enumerator lists the relations currently established for one relation name.
type Enumerator interface {
	// Relations returns the ids of all current relations.
	Relations() []RelationID
}
