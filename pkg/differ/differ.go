package differ

import (
	"context"
	"sort"

	"github.com/agentstation/databag/pkg/bags"
	"github.com/agentstation/databag/pkg/snapshot"
)

// Engine computes deltas between the current peer view and the persisted
// snapshot, advancing the snapshot as part of the same logical operation.
//
// Compute is not safe for concurrent use on the same relation: the snapshot
// load and save are not atomic as a unit, so callers must serialize
// notifications per relation. Different relations are independent.
type Engine struct {
	snapshots *snapshot.Store
}

// New creates a diff engine backed by the given snapshot store.
func New(snapshots *snapshot.Store) *Engine {
	return &Engine{snapshots: snapshots}
}

// Compute classifies peerView against the last snapshot for the relation and
// commits peerView as the new snapshot, even when nothing changed, so an
// idempotent no-op diff still refreshes the baseline. Calling Compute twice
// in a row with the same view yields an empty delta the second time.
func (e *Engine) Compute(ctx context.Context, id bags.RelationID, peerView bags.View) (*Delta, error) {
	// The reserved snapshot key never participates in classification.
	view := peerView.Without(snapshot.Key)

	old, err := e.snapshots.Load(ctx, id)
	if err != nil {
		return nil, err
	}

	delta := classify(old, view)

	if err := e.snapshots.Save(ctx, id, view); err != nil {
		return nil, err
	}

	return delta, nil
}

// classify computes the three-way classification between two views.
func classify(old, current bags.View) *Delta {
	delta := &Delta{
		Added:   []string{},
		Changed: []string{},
		Deleted: []string{},
	}

	for key, value := range current {
		oldValue, exists := old[key]
		switch {
		case !exists:
			delta.Added = append(delta.Added, key)
		case oldValue != value:
			delta.Changed = append(delta.Changed, key)
		}
	}

	for key := range old {
		if _, exists := current[key]; !exists {
			delta.Deleted = append(delta.Deleted, key)
		}
	}

	// Sort for consistent output
	sort.Strings(delta.Added)
	sort.Strings(delta.Changed)
	sort.Strings(delta.Deleted)

	return delta
}
