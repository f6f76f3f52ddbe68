package table

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/blackjack-backend/internal/apperror"
)

func TestNormalizeAlias(t *testing.T) {
	assert.Equal(t, "ALICE", NormalizeAlias("alice"))
	assert.Equal(t, "ALICE", NormalizeAlias("  Alice "))
}

func TestRegistry_Add(t *testing.T) {
	t.Run("Duplicate alias is rejected and the registry is unchanged", func(t *testing.T) {
		// Given: a registry with one seat taken
		reg := newRegistry()
		require.NoError(t, reg.add("ALICE", "conn-1", 8))

		// When: seating the same alias again
		err := reg.add("ALICE", "conn-2", 8)

		// Then: it fails and the original binding survives
		assert.ErrorIs(t, err, apperror.ErrDuplicateAlias)
		assert.Equal(t, []string{"ALICE"}, reg.identities())

		identity, ok := reg.resolve("conn-1")
		require.True(t, ok)
		assert.Equal(t, "ALICE", identity)

		_, ok = reg.resolve("conn-2")
		assert.False(t, ok)
	})

	t.Run("A connection cannot be seated twice", func(t *testing.T) {
		// Given: a connection already bound to ALICE
		reg := newRegistry()
		require.NoError(t, reg.add("ALICE", "conn-1", 8))

		// When: the same connection claims a second alias
		err := reg.add("BOB", "conn-1", 8)

		// Then: it fails and the connection still resolves to ALICE
		assert.ErrorIs(t, err, apperror.ErrAlreadyJoined)
		assert.Equal(t, []string{"ALICE"}, reg.identities())

		identity, ok := reg.resolve("conn-1")
		require.True(t, ok)
		assert.Equal(t, "ALICE", identity)
	})

	t.Run("The dealer alias is reserved", func(t *testing.T) {
		reg := newRegistry()

		err := reg.add("DEALER", "conn-1", 8)

		assert.ErrorIs(t, err, apperror.ErrDuplicateAlias)
	})

	t.Run("A full table rejects new seats", func(t *testing.T) {
		// Given: a registry at its seat cap
		reg := newRegistry()
		for i := 0; i < 2; i++ {
			require.NoError(t, reg.add(fmt.Sprintf("P%d", i), fmt.Sprintf("conn-%d", i), 2))
		}

		// When: one more tries to sit down
		err := reg.add("LATE", "conn-late", 2)

		// Then: the table is full
		assert.ErrorIs(t, err, apperror.ErrTableFull)
	})
}

func TestRegistry_Remove(t *testing.T) {
	t.Run("Removing a mid-list identity keeps the others in join order", func(t *testing.T) {
		// Given: three seated players
		reg := newRegistry()
		require.NoError(t, reg.add("ALICE", "conn-1", 8))
		require.NoError(t, reg.add("BOB", "conn-2", 8))
		require.NoError(t, reg.add("CAROL", "conn-3", 8))

		// When: the middle one leaves
		reg.remove("BOB")

		// Then: the remaining order is untouched
		assert.Equal(t, []string{"ALICE", "CAROL"}, reg.identities())
		assert.Equal(t, []string{"conn-1", "conn-3"}, reg.connIDs())

		_, ok := reg.resolve("conn-2")
		assert.False(t, ok)
	})

	t.Run("Removing an absent identity is a no-op", func(t *testing.T) {
		reg := newRegistry()
		require.NoError(t, reg.add("ALICE", "conn-1", 8))

		reg.remove("GHOST")

		assert.Equal(t, 1, reg.count())
	})
}

func TestRegistry_Resolve(t *testing.T) {
	// Given: a seated player
	reg := newRegistry()
	require.NoError(t, reg.add("ALICE", "conn-1", 8))

	// Then: the connection maps back to the identity, unknown ones do not
	identity, ok := reg.resolve("conn-1")
	assert.True(t, ok)
	assert.Equal(t, "ALICE", identity)

	_, ok = reg.resolve("conn-unknown")
	assert.False(t, ok)
}
