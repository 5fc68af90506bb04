// Package databag implements the provider side of a shared-state
// change-notification protocol. Two cooperating applications exchange string
// key/value data through per-relation bags; on every change notification the
// provider diffs the peer's bag against a persisted snapshot and raises
// typed events for keys whose first appearance signals a request (a new
// database, a Kafka topic, a ZooKeeper chroot).
//
// The host runtime owns relation lifecycle, leader election, and bag
// replication; it is injected through the interfaces in pkg/bags and
// pkg/guard. All provider-side writes pass through a single-writer guard
// that silently no-ops on non-leader replicas.
//
// Example usage, in the context of a database provider:
//
//	provider, err := databag.NewDatabase(accessor, oracle)
//	if err != nil {
//		return err
//	}
//	provider.OnDatabaseRequested(func(ev databag.Event) {
//		name, _ := ev.Database()
//		username, password := issueCredentials(name)
//		_ = provider.SetCredentials(ctx, ev.Relation, username, password)
//		_ = provider.SetEndpoints(ctx, ev.Relation, "h1:5432,h2:5432")
//	})
//
//	// On every bag-changed notification from the runtime:
//	_, err = provider.Changed(ctx, databag.Change{Relation: rel, App: app, Unit: unit})
//
// Subscribing to the typed event instead of raw bag changes means the
// provider reacts once to a new request, not to every subsequent edit of
// unrelated keys in the relation bag.
package databag
