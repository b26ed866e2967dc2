package testutil

import (
	"math/rand"
	"sync"

	"github.com/hupe1980/spatialgo/matrix"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Float64 returns a pseudo-random number in [0.0,1.0).
func (r *RNG) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Float64()
}

// Grid returns the w*h integer coordinates of a w x h raster as an n x 2
// matrix, x varying fastest.
func Grid(w, h int) *matrix.Dense[int32] {
	m := matrix.Zeros[int32](w*h, 2)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := y*w + x
			m.Set(i, 0, int32(x))
			m.Set(i, 1, int32(y))
		}
	}
	return m
}

// UniformCoords returns n points with d coordinates uniform in [0, extent).
func (r *RNG) UniformCoords(n, d int, extent float64) *matrix.Dense[float64] {
	r.mu.Lock()
	defer r.mu.Unlock()

	m := matrix.Zeros[float64](n, d)
	for k := range m.Data() {
		m.Data()[k] = r.rand.Float64() * extent
	}
	return m
}

// UniformFeatures returns a features x n matrix with values in [0, 1).
func (r *RNG) UniformFeatures(features, n int) *matrix.Dense[float32] {
	r.mu.Lock()
	defer r.mu.Unlock()

	m := matrix.Zeros[float32](features, n)
	for k := range m.Data() {
		m.Data()[k] = r.rand.Float32()
	}
	return m
}

// Groups assigns each of n points one of k group labels at random.
func (r *RNG) Groups(n, k int) []int32 {
	r.mu.Lock()
	defer r.mu.Unlock()

	g := make([]int32, n)
	for i := range g {
		g[i] = int32(r.rand.Intn(k))
	}
	return g
}

// PatchFeatures returns a features x n matrix for 2-D coords in which the
// plane is cut into square patches of the given size. Every point in a patch
// shares a random level per feature, plus Gaussian noise with the given
// standard deviation.
func (r *RNG) PatchFeatures(coords *matrix.Dense[int32], features, patch int, noise float64) *matrix.Dense[float64] {
	r.mu.Lock()
	defer r.mu.Unlock()

	type cell struct{ x, y int32 }
	levels := make(map[cell][]float64)

	n := coords.Rows()
	m := matrix.Zeros[float64](features, n)
	for i := 0; i < n; i++ {
		c := cell{coords.At(i, 0) / int32(patch), coords.At(i, 1) / int32(patch)}
		lv, ok := levels[c]
		if !ok {
			lv = make([]float64, features)
			for j := range lv {
				lv[j] = r.rand.Float64() * 10
			}
			levels[c] = lv
		}
		col := m.Col(i)
		for j := range col {
			col[j] = lv[j] + r.rand.NormFloat64()*noise
		}
	}
	return m
}
