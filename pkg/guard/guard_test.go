package guard_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/databag/pkg/bags"
	"github.com/agentstation/databag/pkg/bags/memory"
	pkgerrors "github.com/agentstation/databag/pkg/errors"
	"github.com/agentstation/databag/pkg/guard"
)

func TestLeaderWritesMerge(t *testing.T) {
	backing, err := memory.New(memory.WithRelations(1))
	require.NoError(t, err)
	writer := guard.New(backing, guard.OracleFunc(func() bool { return true }))
	ctx := context.Background()

	require.NoError(t, writer.Update(ctx, 1, bags.View{"username": "u1", "password": "p1"}))
	require.NoError(t, writer.Update(ctx, 1, bags.View{"endpoints": "h1:5432"}))

	// Merge, not replace: both writes are visible simultaneously.
	local, err := backing.Get(1, bags.SideLocal)
	require.NoError(t, err)
	assert.Equal(t, bags.View{
		"username":  "u1",
		"password":  "p1",
		"endpoints": "h1:5432",
	}, local)
}

func TestLeaderWriteTouchesOnlyGivenKeys(t *testing.T) {
	backing, err := memory.New(memory.WithRelations(1))
	require.NoError(t, err)
	require.NoError(t, backing.Update(1, bags.SideLocal, bags.View{"version": "14.1"}))

	writer := guard.New(backing, guard.OracleFunc(func() bool { return true }))
	require.NoError(t, writer.Update(context.Background(), 1, bags.View{"username": "u1"}))

	local, err := backing.Get(1, bags.SideLocal)
	require.NoError(t, err)
	assert.Equal(t, "14.1", local["version"])
	assert.Equal(t, "u1", local["username"])
}

func TestNonLeaderWriteIsSilentNoOp(t *testing.T) {
	backing, err := memory.New(memory.WithRelations(1))
	require.NoError(t, err)
	writer := guard.New(backing, guard.OracleFunc(func() bool { return false }))

	require.NoError(t, writer.Update(context.Background(), 1, bags.View{"username": "u1"}))

	local, err := backing.Get(1, bags.SideLocal)
	require.NoError(t, err)
	assert.Empty(t, local)
}

func TestOracleReEvaluatedPerCall(t *testing.T) {
	backing, err := memory.New(memory.WithRelations(1))
	require.NoError(t, err)

	leader := false
	writer := guard.New(backing, guard.OracleFunc(func() bool { return leader }))
	ctx := context.Background()

	require.NoError(t, writer.Update(ctx, 1, bags.View{"username": "u1"}))

	// Leadership gained between notifications.
	leader = true
	require.NoError(t, writer.Update(ctx, 1, bags.View{"username": "u2"}))

	local, err := backing.Get(1, bags.SideLocal)
	require.NoError(t, err)
	assert.Equal(t, "u2", local["username"])
}

func TestLeaderWriteUnknownRelation(t *testing.T) {
	backing, err := memory.New()
	require.NoError(t, err)
	writer := guard.New(backing, guard.OracleFunc(func() bool { return true }))

	err = writer.Update(context.Background(), 9, bags.View{"username": "u1"})
	assert.True(t, pkgerrors.IsNotFound(err))
}
