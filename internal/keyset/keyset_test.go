package keyset

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/tidydraws/errs"
)

func key(parts ...string) string {
	var b []byte
	for _, p := range parts {
		b = AppendPart(b, []byte(p))
	}

	return string(b)
}

func TestSet_Add(t *testing.T) {
	s := New(4)

	require.NoError(t, s.Add(key("0", "1", "mu")))
	require.NoError(t, s.Add(key("0", "1", "tau")))
	require.NoError(t, s.Add(key("1", "1", "mu")))
	require.Equal(t, 3, s.Len())
	require.False(t, s.HasCollision())

	err := s.Add(key("0", "1", "mu"))
	require.ErrorIs(t, err, errs.ErrDuplicateKey)
	require.ErrorIs(t, err, errs.ErrValidation)
	require.Contains(t, err.Error(), "(0, 1, mu)")
	require.Equal(t, 3, s.Len())
}

func TestKey_PartsAreNotAmbiguous(t *testing.T) {
	require.NotEqual(t, key("1", "23"), key("12", "3"))
	require.NotEqual(t, key("p\x1fq", "r"), key("p", "q\x1fr"))
	require.NotEqual(t, key("a:", "b"), key("a", ":b"))
	require.NotEqual(t, key("", ""), key(""))
	require.NotEqual(t, string(AppendNull(nil)), key("\x00"))
	require.NotEqual(t, string(AppendNull(nil)), key("-"))
	require.NotEqual(t, string(AppendNull(nil)), key(""))
	require.Equal(t, Hash(key("a", "b")), Hash(key("a", "b")))
}

func TestSet_DuplicateMessage(t *testing.T) {
	s := New(2)
	k := AppendNull([]byte(key("0", "p\x1fq")))

	require.NoError(t, s.AddBytes(k))

	err := s.AddBytes(k)
	require.ErrorIs(t, err, errs.ErrDuplicateKey)
	require.Contains(t, err.Error(), `(0, "p\x1fq", null)`)
}

func TestSet_Collision(t *testing.T) {
	s := New(2)

	// Force a collision by seeding the first-key map with a foreign key
	// under the hash of "b".
	s.first[Hash("b")] = "a"
	s.count = 1

	require.NoError(t, s.Add("b"))
	require.True(t, s.HasCollision())
	require.Equal(t, 2, s.Len())

	require.ErrorIs(t, s.Add("b"), errs.ErrDuplicateKey)
	require.ErrorIs(t, s.AddBytes([]byte("b")), errs.ErrDuplicateKey)
}

func TestSet_AddBytes(t *testing.T) {
	s := New(2)
	buf := []byte(key("0", "mu"))

	require.NoError(t, s.AddBytes(buf))

	// the set keeps its own copy
	buf[2] = '1'
	require.NoError(t, s.AddBytes(buf))
	require.Equal(t, 2, s.Len())

	err := s.Add(key("0", "mu"))
	require.ErrorIs(t, err, errs.ErrDuplicateKey)
	require.Contains(t, err.Error(), "(0, mu)")
	require.ErrorIs(t, s.AddBytes([]byte(key("1", "mu"))), errs.ErrDuplicateKey)
}

func TestSet_Reset(t *testing.T) {
	s := New(1)
	require.NoError(t, s.Add("x"))

	s.Reset()

	require.Equal(t, 0, s.Len())
	require.False(t, s.HasCollision())
	require.NoError(t, s.Add("x"))
}
