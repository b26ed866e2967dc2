package spatial

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hupe1980/spatialgo/distance"
	"github.com/hupe1980/spatialgo/matrix"
	"github.com/hupe1980/spatialgo/testutil"
)

func benchWeights(b *testing.B, coords *matrix.Dense[int32], x *matrix.Dense[float64], lists *Lists, bilateral bool) []Weights {
	b.Helper()
	w := make([]Weights, lists.Len())
	for i := range w {
		off, err := Offsets(coords, lists.At(i), i)
		require.NoError(b, err)
		sub, err := x.SelectCols(lists.At(i))
		require.NoError(b, err)
		w[i], err = ComputeWeights(sub, off, 1.25, bilateral)
		require.NoError(b, err)
	}
	return w
}

func BenchmarkFindNeighbors(b *testing.B) {
	coords := testutil.Grid(64, 64)
	groups := make([]int32, coords.Rows())
	ctx := context.Background()

	b.ReportAllocs()
	for b.Loop() {
		_, err := FindNeighbors(ctx, coords, 2, groups, distance.MetricRadial)
		if err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkFilterBilateral(b *testing.B) {
	coords := testutil.Grid(64, 64)
	x := testutil.NewRNG(1).PatchFeatures(coords, 4, 8, 0.5)
	ctx := context.Background()

	lists, err := FindNeighbors(ctx, coords, 2, make([]int32, coords.Rows()), distance.MetricRadial)
	require.NoError(b, err)
	w := benchWeights(b, coords, x, lists, true)

	b.ReportAllocs()
	b.ResetTimer()
	for b.Loop() {
		if _, err := Filter(ctx, x, w, lists); err != nil {
			b.Fatal(err)
		}
	}
}

func TestFilterZeroRadiusGrid(t *testing.T) {
	coords := testutil.Grid(8, 8)
	x := testutil.NewRNG(9).PatchFeatures(coords, 2, 4, 0.3)
	ctx := context.Background()

	lists, err := FindNeighbors(ctx, coords, 0, make([]int32, coords.Rows()), distance.MetricChebyshev)
	require.NoError(t, err)

	w := make([]Weights, lists.Len())
	for i := range w {
		off, err := Offsets(coords, lists.At(i), i)
		require.NoError(t, err)
		w[i], err = ComputeWeights[float64](nil, off, 1, false)
		require.NoError(t, err)
	}

	out, err := Filter(ctx, x, w, lists)
	require.NoError(t, err)
	for k, v := range x.Data() {
		require.InDelta(t, v, out.Data()[k], 1e-12)
	}
}
