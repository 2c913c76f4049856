package denv

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSetGet(t *testing.T) {
	tbl := newTestTable(t)

	require.NoError(t, tbl.Set("FOO", "bar", 0))

	v, ok, err := tbl.Get("FOO")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "bar", v)
}

func TestGetMiss(t *testing.T) {
	tbl := newTestTable(t)

	_, ok, err := tbl.Get("MISSING")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestDeleteThenMiss(t *testing.T) {
	tbl := newTestTable(t)

	mustSet(t, tbl, "K", "v1")

	deleted, err := tbl.Delete("K")
	require.NoError(t, err)
	require.True(t, deleted)

	_, ok, err := tbl.Get("K")
	require.NoError(t, err)
	require.False(t, ok)

	// Re-set resurrects the tombstone.
	mustSet(t, tbl, "K", "v2")

	v, ok, err := tbl.Get("K")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "v2", v)
}

func TestReSetShorterAndLongerValue(t *testing.T) {
	tbl := newTestTable(t)

	mustSet(t, tbl, "K", "short")

	offAfterFirst, err := tbl.Stats()
	require.NoError(t, err)

	mustSet(t, tbl, "K", "a-much-longer-value-than-before")

	v, ok, err := tbl.Get("K")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "a-much-longer-value-than-before", v)

	offAfterSecond, err := tbl.Stats()
	require.NoError(t, err)
	require.Greater(t, offAfterSecond.DataOffsetWords, offAfterFirst.DataOffsetWords, "arena offset must grow")

	// Re-set back to something short enough to fit the reserved capacity:
	// this must rewrite in place, not grow the arena further.
	mustSet(t, tbl, "K", "tiny")

	offAfterThird, err := tbl.Stats()
	require.NoError(t, err)
	require.Equal(t, offAfterSecond.DataOffsetWords, offAfterThird.DataOffsetWords, "in-place rewrite must not move the arena cursor")
}

func TestCollidingNamesCoexist(t *testing.T) {
	tbl := newTestTable(t)

	a, b := collidingNames(t)

	mustSet(t, tbl, a, "x")
	mustSet(t, tbl, b, "y")

	va, ok, err := tbl.Get(a)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "x", va)

	vb, ok, err := tbl.Get(b)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "y", vb)

	deleted, err := tbl.Delete(a)
	require.NoError(t, err)
	require.True(t, deleted)

	_, ok, err = tbl.Get(a)
	require.NoError(t, err)
	require.False(t, ok, "deleted colliding name must miss")

	vb, ok, err = tbl.Get(b)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "y", vb, "deleting one colliding name must not disturb the other")
}

func TestSetStripsProtocolFlags(t *testing.T) {
	tbl := newTestTable(t)

	// A caller trying to sneak in FlagUsed/FlagFreed must not succeed;
	// only FlagIsEnv survives the mask.
	require.NoError(t, tbl.Set("X", "1", FlagIsEnv|FlagFreed|FlagUsed))

	e := tbl.find("X")
	require.NotNil(t, e)
	require.True(t, e.live(), "element should be live, not tombstoned, despite caller passing FlagFreed")
	require.True(t, e.has(FlagIsEnv), "FlagIsEnv should have been preserved")
}

func TestCollisionArrayExhaustion(t *testing.T) {
	tbl := newTestTable(t)

	a, b := collidingNames(t)

	h := bucketOf(a)
	require.NoError(t, tbl.Set(a, "v", 0))

	// Force collisionUsed to its ceiling directly; re-deriving elementCount
	// genuinely colliding names would be too slow for a unit test.
	tbl.Element.Array[h].set(FlagHasCollision)
	tbl.Element.CollisionUsed = elementCount

	err := tbl.Set(b, "v2", 0)
	require.ErrorIs(t, err, ErrFull)
}

func mustSet(t *testing.T, tbl *Table, name, value string) {
	t.Helper()

	require.NoError(t, tbl.Set(name, value, 0))
}
