// Package uuid exercises the ID generator.
package uuid

import (
	"testing"

	googleuuid "github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// TestNewIDIsUniqueAndParseable produces distinct, valid UUID strings.
func TestNewIDIsUniqueAndParseable(t *testing.T) {
	t.Parallel()

	gen := New()
	seen := make(map[string]struct{})
	for i := 0; i < 100; i++ {
		id, err := gen.NewID()
		require.NoError(t, err)
		_, err = googleuuid.Parse(id)
		require.NoError(t, err)
		_, dup := seen[id]
		require.False(t, dup, "duplicate id %s", id)
		seen[id] = struct{}{}
	}
}

// TestNewRawIDVersion emits version 7 UUIDs so IDs sort by creation time.
func TestNewRawIDVersion(t *testing.T) {
	t.Parallel()

	gen := New()
	id, err := gen.NewRawID()
	require.NoError(t, err)
	require.Equal(t, googleuuid.Version(7), id.Version())
}
