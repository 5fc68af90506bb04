package databag_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/databag"
	"github.com/agentstation/databag/pkg/bags"
)

func TestTopicCreated(t *testing.T) {
	store := newStore(t, 1)
	provider, err := databag.NewKafka(store, leader)
	require.NoError(t, err)
	ctx := context.Background()

	var captured []databag.Event
	provider.OnTopicCreated(func(ev databag.Event) {
		captured = append(captured, ev)
	})

	require.NoError(t, store.Update(1, bags.SidePeer, bags.View{
		"topic":            "events",
		"extra-user-roles": "producer",
	}))

	events, err := provider.Changed(ctx, databag.Change{Relation: 1, App: "app"})
	require.NoError(t, err)
	require.Len(t, events, 1)
	require.Len(t, captured, 1)

	assert.Equal(t, databag.EventTopicCreated, captured[0].Kind)
	topic, ok := captured[0].Topic()
	require.True(t, ok)
	assert.Equal(t, "events", topic)
	roles, ok := captured[0].ExtraUserRoles()
	require.True(t, ok)
	assert.Equal(t, "producer", roles)
}

func TestKafkaDatabaseKeyDoesNotTrigger(t *testing.T) {
	store := newStore(t, 1)
	provider, err := databag.NewKafka(store, leader)
	require.NoError(t, err)

	// A kafka provider only reacts to its own trigger key.
	require.NoError(t, store.Update(1, bags.SidePeer, bags.View{"database": "app_db"}))
	events, err := provider.Changed(context.Background(), databag.Change{Relation: 1, App: "app"})
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestKafkaAccessors(t *testing.T) {
	store := newStore(t, 1)
	provider, err := databag.NewKafka(store, leader)
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, provider.SetCredentials(ctx, 1, "client", "secret"))
	require.NoError(t, provider.SetURIs(ctx, 1, "broker1:9092,broker2:9092"))
	require.NoError(t, provider.SetTLS(ctx, 1, true))

	local, err := store.Get(1, bags.SideLocal)
	require.NoError(t, err)
	assert.Equal(t, "broker1:9092,broker2:9092", local["uris"])
	assert.Equal(t, "True", local["tls"])
}
