package buffer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func BenchmarkBuffer(b *testing.B) {
	buff := New(1024, 4096)
	smallString := []byte(strings.Repeat("a", 1023))
	bigString := []byte(strings.Repeat("a", 4095))

	b.Run("no overflow", func(b *testing.B) {
		b.ReportAllocs()
		b.SetBytes(int64(len(smallString)))
		b.ResetTimer()

		for i := 0; i < b.N; i++ {
			_ = buff.Append(smallString)
			buff.Clear()
		}
	})

	b.Run("with growth", func(b *testing.B) {
		b.ReportAllocs()
		b.SetBytes(int64(len(bigString)))
		b.ResetTimer()

		for i := 0; i < b.N; i++ {
			_ = buff.Append(bigString)
			buff.Clear()
			buff.memory = buff.memory[0:0:1024]
		}
	})
}

func TestBuffer(t *testing.T) {
	t.Run("no overflow", func(t *testing.T) {
		buff := New(10, 20)
		require.True(t, buff.Append([]byte("Hello")))
		require.True(t, buff.Append([]byte("Here")))
		require.Equal(t, "HelloHere", string(buff.Bytes()))
	})

	t.Run("with growth", func(t *testing.T) {
		buff := New(10, 20)
		// "Hello, World!" is 13 characters length, so it will force the Buffer
		// to grow an underlying slice
		require.True(t, buff.Append([]byte("Hello, ")))
		require.True(t, buff.Append([]byte("World!")))
		require.Equal(t, 13, buff.Len())
		require.Equal(t, "Hello, World!", string(buff.Bytes()))
	})

	t.Run("overflow over the limit", func(t *testing.T) {
		buff := New(10, 20)
		require.True(t, buff.Append([]byte("Hello, World!")))
		require.True(t, buff.Append([]byte("Lorem ")))
		// at this point, we have reached 19 elements in underlying slice
		require.False(t, buff.Append([]byte("overflow")))
		require.Equal(t, "Hello, World!Lorem ", string(buff.Bytes()))
	})

	t.Run("write", func(t *testing.T) {
		buff := New(4, 8)
		n, err := buff.Write([]byte("12345"))
		require.NoError(t, err)
		require.Equal(t, 5, n)

		n, err = buff.Write([]byte("6789"))
		require.ErrorIs(t, err, ErrOverflow)
		require.Zero(t, n)
		require.Equal(t, "12345", string(buff.Bytes()))
	})

	t.Run("capped bytes", func(t *testing.T) {
		buff := New(16, 16)
		require.True(t, buff.Append([]byte("Hello")))
		data := append(buff.Bytes(), "!!!"...)
		require.True(t, buff.Append([]byte(", world")))
		require.Equal(t, "Hello!!!", string(data))
		require.Equal(t, "Hello, world", string(buff.Bytes()))
	})

	t.Run("initial size over the limit", func(t *testing.T) {
		buff := New(64, 8)
		require.Equal(t, 8, cap(buff.memory))
	})
}
