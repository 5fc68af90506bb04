package differ_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/databag/pkg/bags"
	"github.com/agentstation/databag/pkg/bags/memory"
	"github.com/agentstation/databag/pkg/differ"
	"github.com/agentstation/databag/pkg/snapshot"
)

func newEngine(t *testing.T) *differ.Engine {
	t.Helper()
	backing, err := memory.New(memory.WithRelations(1))
	require.NoError(t, err)
	return differ.New(snapshot.New(backing))
}

func TestComputeClassification(t *testing.T) {
	engine := newEngine(t)
	ctx := context.Background()

	// New data added to the peer bag.
	delta, err := engine.Compute(ctx, 1, bags.View{"username": "test-username", "password": "test-password"})
	require.NoError(t, err)
	assert.Equal(t, []string{"password", "username"}, delta.Added)
	assert.Empty(t, delta.Changed)
	assert.Empty(t, delta.Deleted)

	// Same data again.
	delta, err = engine.Compute(ctx, 1, bags.View{"username": "test-username", "password": "test-password"})
	require.NoError(t, err)
	assert.False(t, delta.HasChanges())

	// Changed data.
	delta, err = engine.Compute(ctx, 1, bags.View{"username": "test-username-1", "password": "test-password"})
	require.NoError(t, err)
	assert.Empty(t, delta.Added)
	assert.Equal(t, []string{"username"}, delta.Changed)
	assert.Empty(t, delta.Deleted)

	// Deleted data.
	delta, err = engine.Compute(ctx, 1, bags.View{})
	require.NoError(t, err)
	assert.Empty(t, delta.Added)
	assert.Empty(t, delta.Changed)
	assert.Equal(t, []string{"password", "username"}, delta.Deleted)
}

func TestComputeIdempotence(t *testing.T) {
	engine := newEngine(t)
	ctx := context.Background()

	view := bags.View{"database": "app_db", "extra-user-roles": "CREATEDB"}

	delta, err := engine.Compute(ctx, 1, view)
	require.NoError(t, err)
	assert.True(t, delta.HasChanges())

	delta, err = engine.Compute(ctx, 1, view)
	require.NoError(t, err)
	assert.False(t, delta.HasChanges())
	assert.Equal(t, "0 added, 0 changed, 0 deleted", delta.Summary())
}

func TestComputePartitionCompleteness(t *testing.T) {
	engine := newEngine(t)
	ctx := context.Background()

	old := bags.View{"a": "1", "b": "2", "c": "3"}
	current := bags.View{"b": "2", "c": "changed", "d": "4"}

	_, err := engine.Compute(ctx, 1, old)
	require.NoError(t, err)
	delta, err := engine.Compute(ctx, 1, current)
	require.NoError(t, err)

	assert.Equal(t, []string{"d"}, delta.Added)
	assert.Equal(t, []string{"c"}, delta.Changed)
	assert.Equal(t, []string{"a"}, delta.Deleted)

	// The three sets are pairwise disjoint and, together with the unchanged
	// intersection, account for every key of both views.
	seen := map[string]int{}
	for _, k := range delta.Added {
		seen[k]++
	}
	for _, k := range delta.Changed {
		seen[k]++
	}
	for _, k := range delta.Deleted {
		seen[k]++
	}
	for k, n := range seen {
		assert.Equal(t, 1, n, "key %q classified more than once", k)
	}
	union := map[string]bool{}
	for k := range old {
		union[k] = true
	}
	for k := range current {
		union[k] = true
	}
	unchanged := 0
	for k := range old {
		if current[k] == old[k] {
			if _, ok := current[k]; ok {
				unchanged++
			}
		}
	}
	assert.Equal(t, len(union), len(seen)+unchanged)
}

func TestComputeIgnoresReservedKey(t *testing.T) {
	engine := newEngine(t)
	ctx := context.Background()

	delta, err := engine.Compute(ctx, 1, bags.View{snapshot.Key: `{"stale":"x"}`, "topic": "events"})
	require.NoError(t, err)
	assert.Equal(t, []string{"topic"}, delta.Added)
}

func TestComputeReAddTriggersAgain(t *testing.T) {
	engine := newEngine(t)
	ctx := context.Background()

	delta, err := engine.Compute(ctx, 1, bags.View{"database": "app_db"})
	require.NoError(t, err)
	assert.True(t, delta.WasAdded("database"))

	delta, err = engine.Compute(ctx, 1, bags.View{})
	require.NoError(t, err)
	assert.True(t, delta.WasDeleted("database"))

	// A deleted then re-added key enters Added again relative to the
	// snapshot at that time.
	delta, err = engine.Compute(ctx, 1, bags.View{"database": "app_db"})
	require.NoError(t, err)
	assert.True(t, delta.WasAdded("database"))
}

func TestComputeUnknownRelation(t *testing.T) {
	engine := newEngine(t)
	_, err := engine.Compute(context.Background(), 42, bags.View{"k": "v"})
	assert.Error(t, err)
}

func TestDeltaLookups(t *testing.T) {
	delta := &differ.Delta{
		Added:   []string{"chroot", "database"},
		Changed: []string{"topic"},
		Deleted: []string{"uris"},
	}

	assert.True(t, delta.WasAdded("database"))
	assert.False(t, delta.WasAdded("topic"))
	assert.True(t, delta.WasChanged("topic"))
	assert.True(t, delta.WasDeleted("uris"))
	assert.Equal(t, "2 added, 1 changed, 1 deleted", delta.Summary())
}
