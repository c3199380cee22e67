package bufreader

import (
	"bytes"
	"errors"
	"io"
	"strconv"
	"testing"

	"github.com/indigo-web/bufreader/config"
	"github.com/stretchr/testify/require"
)

func TestPeek(t *testing.T) {
	t.Run("within chunk", func(t *testing.T) {
		r := newTestReader(16)

		for _, tc := range []struct {
			n    int
			want string
		}{
			{0, ""}, {1, "1"}, {2, "12"},
			{16, line}, {17, line}, {32, line}, {-1, line},
		} {
			data, err := r.Peek(tc.n)
			require.NoError(t, err)
			require.Equal(t, tc.want, string(data))
		}

		data, err := r.Next(15)
		require.NoError(t, err)
		require.Equal(t, "123456789ABCDEF", string(data))

		for _, tc := range []struct {
			n    int
			want string
		}{
			{0, ""}, {1, "\n"}, {2, "\n1"},
			{16, "\n123456789ABCDEF"}, {17, "\n123456789ABCDEF"}, {32, "\n123456789ABCDEF"},
		} {
			data, err := r.Peek(tc.n)
			require.NoError(t, err)
			require.Equal(t, tc.want, string(data))
		}
	})

	t.Run("eof", func(t *testing.T) {
		source := bytes.NewReader([]byte("Hello, world!\n"))
		r := New(FromReader(source), int64(source.Len()-1))

		for _, n := range []int{0, 1, 2, 16, 32} {
			data, err := r.Peek(n)
			require.NoError(t, err)
			require.Equal(t, "Hello, world!"[:min(n, 13)], string(data))
		}

		rest, err := io.ReadAll(source)
		require.NoError(t, err)
		require.Equal(t, "\n", string(rest))
	})

	t.Run("does not advance", func(t *testing.T) {
		r := New(FromBytes([]byte("abc")), 3)
		_, err := r.Peek(2)
		require.NoError(t, err)
		data, err := r.Next(Unbounded)
		require.NoError(t, err)
		require.Equal(t, "abc", string(data))
		require.EqualValues(t, 3, r.Consumed())
	})
}

func TestNext(t *testing.T) {
	t.Run("bounded", func(t *testing.T) {
		source := bytes.NewReader([]byte("Hello, world!"))
		r := New(FromReader(source), int64(len("Hello, world")))
		data, err := r.Next(Unbounded)
		require.NoError(t, err)
		require.Equal(t, "Hello, world", string(data))

		rest, err := io.ReadAll(source)
		require.NoError(t, err)
		require.Equal(t, "!", string(rest))
	})

	t.Run("whole source at once", func(t *testing.T) {
		r := New(FromBytes([]byte("hello world")), 11)
		data, err := r.Next(Unbounded)
		require.NoError(t, err)
		require.Equal(t, "hello world", string(data))

		data, err = r.Next(1)
		require.NoError(t, err)
		require.Empty(t, data)
		require.True(t, r.EOF())
	})

	t.Run("ceiling below the source", func(t *testing.T) {
		j := new(journal)
		r := New(j.wrap(FromBytes(bytes.Repeat([]byte("x"), 100))), 5)
		data, err := r.Next(Unbounded)
		require.NoError(t, err)
		require.Equal(t, "xxxxx", string(data))
		require.Equal(t, 5, j.delivered)

		data, err = r.Next(Unbounded)
		require.NoError(t, err)
		require.Empty(t, data)
	})

	for _, size := range []int{0, 1, 2, 7, 62, 63, 64, 65, 126, 127, 128, 129, 1000, 10000} {
		t.Run("from buffer "+strconv.Itoa(size), func(t *testing.T) {
			r := newTestReader(64)
			_, err := r.Peek(64)
			require.NoError(t, err)

			data, err := r.Next(size)
			require.NoError(t, err)
			require.Equal(t, string(testData[:size]), string(data))

			data, err = r.Next(1)
			require.NoError(t, err)
			require.Equal(t, string(testData[size:size+1]), string(data))
		})
	}

	t.Run("short reads", func(t *testing.T) {
		r := New(fragmented(testData), int64(len(testData)), WithChunkSize(100))
		data, err := readAll(r, 777)
		require.NoError(t, err)
		require.Equal(t, testData, data)
	})

	t.Run("source shorter than ceiling", func(t *testing.T) {
		r := New(FromBytes([]byte("short")), 1024)
		data, err := r.Next(Unbounded)
		require.NoError(t, err)
		require.Equal(t, "short", string(data))
		require.True(t, r.EOF())
		require.Zero(t, r.Remaining())
	})

	t.Run("returned slices stay intact", func(t *testing.T) {
		r := New(FromBytes([]byte("0123456789abcdef")), 16, WithChunkSize(4))
		first, err := r.Next(3)
		require.NoError(t, err)
		_, err = readAll(r, 5)
		require.NoError(t, err)
		require.Equal(t, "012", string(first))
	})
}

func TestErrors(t *testing.T) {
	errBoom := errors.New("boom")
	failing := func(int) ([]byte, error) {
		return nil, errBoom
	}

	t.Run("transport error passes through", func(t *testing.T) {
		r := New(failing, 100)
		_, err := r.Next(10)
		require.ErrorIs(t, err, errBoom)
		_, err = r.Peek(10)
		require.ErrorIs(t, err, errBoom)
		_, err = r.ReadUntil([]byte("x"), Unbounded, false)
		require.ErrorIs(t, err, errBoom)
		require.ErrorIs(t, r.Exhaust(), errBoom)
	})

	t.Run("io.EOF along with data", func(t *testing.T) {
		r := New(func(n int) ([]byte, error) {
			return []byte("data"), io.EOF
		}, 100)

		data, err := r.Next(Unbounded)
		require.NoError(t, err)
		require.Equal(t, "data", string(data))
		require.True(t, r.EOF())
	})

	t.Run("pull returns more than asked", func(t *testing.T) {
		r := New(func(n int) ([]byte, error) {
			return []byte("0123456789"), nil
		}, 4)

		data, err := r.Next(Unbounded)
		require.NoError(t, err)
		require.Equal(t, "0123", string(data))
	})
}

func TestOptions(t *testing.T) {
	cfg := config.Default().Reader
	cfg.ChunkSize = 256
	r := NewFromConfig(FromBytes(nil), 0, cfg)
	require.Equal(t, 256, r.ChunkSize())

	r = New(FromBytes(nil), 0, WithChunkSize(-1), WithMaxJoinChunks(0), WithSearcher(nil))
	require.Equal(t, DefaultChunkSize, r.ChunkSize())
	require.Equal(t, DefaultMaxJoinChunks, r.maxJoinChunks)
	require.NotNil(t, r.searcher)
}

func TestFromReader(t *testing.T) {
	t.Run("zero reads", func(t *testing.T) {
		pull := FromReader(zeroReader{})
		_, err := pull(10)
		require.ErrorIs(t, err, io.ErrNoProgress)
	})

	t.Run("large request", func(t *testing.T) {
		pull := FromReader(bytes.NewReader(make([]byte, 1<<20)))
		chunk, err := pull(1 << 20)
		require.NoError(t, err)
		require.Len(t, chunk, maxPullSize)
	})
}

type zeroReader struct{}

func (zeroReader) Read([]byte) (int, error) {
	return 0, nil
}
