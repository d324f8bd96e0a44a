package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	t.Run("should produce an encoded argon2id hash", func(t *testing.T) {
		req := require.New(t)

		hash, err := HashPassword("Sup3rSecret")

		req.NoError(err)
		req.True(strings.HasPrefix(hash, "$argon2id$"))
		req.NotContains(hash, "Sup3rSecret")
	})

	t.Run("should salt every hash", func(t *testing.T) {
		req := require.New(t)

		first, err := HashPassword("Sup3rSecret")
		req.NoError(err)
		second, err := HashPassword("Sup3rSecret")
		req.NoError(err)

		req.NotEqual(first, second)
	})
}

func TestComparePassword(t *testing.T) {
	t.Run("should accept the original password", func(t *testing.T) {
		req := require.New(t)
		hash, err := HashPassword("Sup3rSecret")
		req.NoError(err)

		ok, err := ComparePassword("Sup3rSecret", hash)

		req.NoError(err)
		req.True(ok)
	})

	t.Run("should reject a wrong password", func(t *testing.T) {
		req := require.New(t)
		hash, err := HashPassword("Sup3rSecret")
		req.NoError(err)

		ok, err := ComparePassword("WrongSecret1", hash)

		req.NoError(err)
		req.False(ok)
	})

	t.Run("should fail on a malformed hash", func(t *testing.T) {
		req := require.New(t)

		_, err := ComparePassword("whatever", "not-a-hash")

		req.Error(err)
	})
}
