package span_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/berku-oak/pegc/span"
)

func TestPosString(t *testing.T) {
	require.Equal(t, "3:7", span.Pos{Line: 3, Col: 7, Offset: 20}.String())
}

func TestSpanStringCollapsesSamePosition(t *testing.T) {
	p := span.Pos{Line: 1, Col: 1}
	require.Equal(t, "1:1", span.Span{Start: p, End: p}.String())
}

func TestSpanStringRangeWhenDistinct(t *testing.T) {
	s := span.Span{Start: span.Pos{Line: 1, Col: 1}, End: span.Pos{Line: 1, Col: 5}}
	require.Equal(t, "1:1-1:5", s.String())
}

func TestJoinTakesOutermostBounds(t *testing.T) {
	a := span.Span{Start: span.Pos{Offset: 5}, End: span.Pos{Offset: 10}}
	b := span.Span{Start: span.Pos{Offset: 2}, End: span.Pos{Offset: 8}}
	j := span.Join(a, b)
	require.Equal(t, 2, j.Start.Offset)
	require.Equal(t, 10, j.End.Offset)
}
