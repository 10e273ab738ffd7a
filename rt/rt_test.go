package rt_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/berku-oak/pegc/rt"
)

func TestMatchLiteralSuccess(t *testing.T) {
	pos, err := rt.MatchLiteral("hello world", 0, "hello", len("hello"))
	require.NoError(t, err)
	require.Equal(t, 5, pos)
}

func TestMatchLiteralFailure(t *testing.T) {
	_, err := rt.MatchLiteral("goodbye", 0, "hello", len("hello"))
	require.Error(t, err)
}

func TestAnySingleCharAdvancesByCodePoint(t *testing.T) {
	pos, err := rt.AnySingleChar("héllo", 0)
	require.NoError(t, err)
	require.Equal(t, 1, pos)
	pos, err = rt.AnySingleChar("héllo", pos)
	require.NoError(t, err)
	require.Equal(t, 3, pos, "é is a 2-byte code point")
}

func TestAnySingleCharAtEOF(t *testing.T) {
	_, err := rt.AnySingleChar("a", 1)
	require.Error(t, err)
}

func TestMatchClassUnion(t *testing.T) {
	ivs := []rt.Interval{{Lo: 'a', Hi: 'z'}, {Lo: '0', Hi: '9'}}
	pos, err := rt.MatchClass("9", 0, ivs)
	require.NoError(t, err)
	require.Equal(t, 1, pos)

	_, err = rt.MatchClass("!", 0, ivs)
	require.Error(t, err)
}

func TestMakeResultFullMatch(t *testing.T) {
	tail, err := rt.MakeResult("hello", 5, nil)
	require.NoError(t, err)
	require.Nil(t, tail)
}

func TestMakeResultPartialMatch(t *testing.T) {
	tail, err := rt.MakeResult("hello world", 5, nil)
	require.NoError(t, err)
	require.NotNil(t, tail)
	require.Equal(t, " world", *tail)
}

func TestMakeResultPropagatesError(t *testing.T) {
	tail, err := rt.MatchLiteral("abc", 0, "xyz", 3)
	result, resultErr := rt.MakeResult("abc", tail, err)
	require.Nil(t, result)
	require.Error(t, resultErr)
}
