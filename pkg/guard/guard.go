// Package guard enforces the single-writer invariant for the provider side
// of a relation. Leader election itself is owned by the host runtime; this
// package only consults it, on every call, and turns non-leader writes into
// silent no-ops so that all replicas can share uniform code paths.
package guard

import (
	"context"

	"github.com/agentstation/databag/pkg/bags"
	"github.com/agentstation/databag/pkg/logging"
)

// Oracle reports whether this replica currently holds leadership. It is
// consulted on every write and must never be cached: leadership can change
// between notifications.
type Oracle interface {
	IsLeader() bool
}

// OracleFunc adapts a function to the Oracle interface.
type OracleFunc func() bool

// IsLeader implements Oracle.
func (f OracleFunc) IsLeader() bool { return f() }

// Writer is the single chokepoint for provider-side bag mutations. Every
// capability accessor writes through it; none bypass it.
type Writer struct {
	bags   bags.Accessor
	oracle Oracle
}

// New creates a guarded writer over the given accessor and leadership oracle.
func New(accessor bags.Accessor, oracle Oracle) *Writer {
	return &Writer{bags: accessor, oracle: oracle}
}

// Update merges fields into the local bag of the relation if this replica is
// the leader. On a non-leader replica the call is a no-op, not an error:
// only one elected writer may exist per application, and the others may
// legitimately run the same code paths.
//
// A leadership change between the check and the write is not guarded
// against; that window is accepted and owned by the external election
// mechanism.
func (w *Writer) Update(ctx context.Context, id bags.RelationID, fields bags.View) error {
	if !w.oracle.IsLeader() {
		logging.FromContext(ctx).Debug().
			Str("relation_id", id.String()).
			Int("keys", len(fields)).
			Msg("Not leader, skipping bag write")
		return nil
	}
	return w.bags.Update(id, bags.SideLocal, fields)
}
