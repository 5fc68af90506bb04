// Package snapshot persists the last-observed view of a peer bag so that
// diffs survive across independent change notifications. The snapshot lives
// inside the provider's own bag for the relation, under a reserved key, so it
// travels with the relation's lifecycle and needs no separate store.
package snapshot

import (
	"context"
	"encoding/json"

	"github.com/agentstation/databag/pkg/bags"
	"github.com/agentstation/databag/pkg/errors"
	"github.com/agentstation/databag/pkg/logging"
)

// Key is the reserved local-bag key holding the serialized snapshot.
// Peers must not interpret it, and it is filtered out of every view this
// library hands to callers.
const Key = "data"

// Store reads and writes per-relation snapshots.
type Store struct {
	bags bags.Accessor
}

// New creates a snapshot store backed by the given bag accessor.
func New(accessor bags.Accessor) *Store {
	return &Store{bags: accessor}
}

// Load returns the last-persisted snapshot for a relation, or an empty view
// if none exists yet (first observation). An unparseable snapshot is treated
// as empty with a warning rather than failing the notification pipeline;
// this favors availability of future diffs, at the cost that a legitimate
// delete after a corrupted snapshot is reported as an add.
func (s *Store) Load(ctx context.Context, id bags.RelationID) (bags.View, error) {
	local, err := s.bags.Get(id, bags.SideLocal)
	if err != nil {
		return nil, errors.WrapResource("load", "snapshot", id.String(), err)
	}

	raw, ok := local[Key]
	if !ok || raw == "" {
		return bags.View{}, nil
	}

	var view bags.View
	if err := json.Unmarshal([]byte(raw), &view); err != nil {
		logging.FromContext(ctx).Warn().
			Err(err).
			Str("relation_id", id.String()).
			Msg("Unparseable snapshot, treating as empty")
		return bags.View{}, nil
	}
	if view == nil {
		view = bags.View{}
	}
	return view, nil
}

// Save overwrites the stored snapshot for a relation with the given view.
func (s *Store) Save(ctx context.Context, id bags.RelationID, view bags.View) error {
	if view == nil {
		view = bags.View{}
	}
	payload, err := json.Marshal(view)
	if err != nil {
		return errors.WrapResource("save", "snapshot", id.String(), err)
	}

	if err := s.bags.Update(id, bags.SideLocal, bags.View{Key: string(payload)}); err != nil {
		return errors.WrapResource("save", "snapshot", id.String(), err)
	}

	logging.FromContext(ctx).Debug().
		Str("relation_id", id.String()).
		Int("keys", len(view)).
		Msg("Snapshot saved")
	return nil
}
