package identity

import (
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestFingerprintDeterministic returns the same value for the same author on
// every call.
func TestFingerprintDeterministic(t *testing.T) {
	t.Parallel()

	first := Fingerprint("Jane Doe")
	for i := 0; i < 10; i++ {
		require.Equal(t, first, Fingerprint("Jane Doe"))
	}
}

// TestFingerprintShape renders as the prefix plus a non-negative decimal.
func TestFingerprintShape(t *testing.T) {
	t.Parallel()

	for _, author := range []string{"Jane Doe", "a", "", "Łukasz Nowak", strings.Repeat("x", 64)} {
		got := Fingerprint(author)
		require.True(t, strings.HasPrefix(got, Prefix), "value %q", got)
		n, err := strconv.ParseInt(strings.TrimPrefix(got, Prefix), 10, 64)
		require.NoError(t, err, "value %q", got)
		require.GreaterOrEqual(t, n, int64(0))
	}
}

// TestFingerprintDistinguishesAuthors maps different names to different
// identities in the common case.
func TestFingerprintDistinguishesAuthors(t *testing.T) {
	t.Parallel()

	require.NotEqual(t, Fingerprint("Jane Doe"), Fingerprint("John Smith"))
	require.NotEqual(t, Fingerprint("Jane Doe"), Fingerprint("jane doe"))
}

// TestFingerprintEmptyAuthor hashes the empty string to zero.
func TestFingerprintEmptyAuthor(t *testing.T) {
	t.Parallel()

	require.Equal(t, Prefix+"0", Fingerprint(""))
}
