package unreader

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUnreader(t *testing.T) {
	var calls int
	source := func() ([]byte, error) {
		calls++
		return []byte("fetched"), nil
	}

	t.Run("no pending", func(t *testing.T) {
		u := new(Unreader)
		data, err := u.PendingOr(source)
		require.NoError(t, err)
		require.Equal(t, "fetched", string(data))
		require.Equal(t, 1, calls)
	})

	t.Run("pending first", func(t *testing.T) {
		calls = 0
		u := new(Unreader)
		u.Unread([]byte("hello"))
		require.Equal(t, "hello", string(u.Pending()))

		data, err := u.PendingOr(source)
		require.NoError(t, err)
		require.Equal(t, "hello", string(data))
		require.Zero(t, calls)
		require.Empty(t, u.Pending())

		data, err = u.PendingOr(source)
		require.NoError(t, err)
		require.Equal(t, "fetched", string(data))
		require.Equal(t, 1, calls)
	})

	t.Run("empty unread is ignored", func(t *testing.T) {
		calls = 0
		u := new(Unreader)
		u.Unread(nil)
		_, err := u.PendingOr(source)
		require.NoError(t, err)
		require.Equal(t, 1, calls)
	})

	t.Run("reset", func(t *testing.T) {
		u := new(Unreader)
		u.Unread([]byte("hello"))
		u.Reset()
		data, err := u.PendingOr(func() ([]byte, error) {
			return nil, errors.New("source")
		})
		require.EqualError(t, err, "source")
		require.Nil(t, data)
	})
}
