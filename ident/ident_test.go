package ident_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/berku-oak/pegc/ident"
)

func TestInternAssignsStableIncreasingIDs(t *testing.T) {
	in := ident.NewInterner()
	a := in.Intern("a")
	b := in.Intern("b")
	require.Equal(t, a, in.Intern("a"))
	require.NotEqual(t, a, b)
	require.Less(t, int(a), int(b))
}

func TestLookupFindsOnlyInternedNames(t *testing.T) {
	in := ident.NewInterner()
	in.Intern("a")
	id, ok := in.Lookup("a")
	require.True(t, ok)
	require.Equal(t, "a", in.Name(id))

	_, ok = in.Lookup("missing")
	require.False(t, ok)
}

func TestLenCountsDistinctNames(t *testing.T) {
	in := ident.NewInterner()
	in.Intern("a")
	in.Intern("b")
	in.Intern("a")
	require.Equal(t, 2, in.Len())
}
