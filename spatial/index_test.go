package spatial

import (
	"math"
	"math/rand"
	"sort"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	v3 "github.com/rmera/condeg/v3"
)

func randomCoords(n int, seed int64) *v3.Matrix {
	rnd := rand.New(rand.NewSource(seed))
	c := v3.Zeros(n)
	for i := 0; i < n; i++ {
		c.SetVec(i, [3]float64{rnd.Float64() * 30, rnd.Float64() * 30, rnd.Float64() * 30})
	}
	return c
}

func brute(c *v3.Matrix, ids []int, p [3]float64, r float64) []int {
	ret := []int{}
	for i := 0; i < c.NVecs(); i++ {
		v := c.Vec(i)
		d := math.Sqrt((v[0]-p[0])*(v[0]-p[0]) + (v[1]-p[1])*(v[1]-p[1]) + (v[2]-p[2])*(v[2]-p[2]))
		if d <= r {
			ret = append(ret, ids[i])
		}
	}
	sort.Ints(ret)
	return ret
}

func TestWithinBruteForce(Te *testing.T) {
	c := randomCoords(500, 1)
	ids := make([]int, 500)
	for i := range ids {
		ids[i] = i / 7 //several points per id, like atoms in a residue
	}
	index := New(c, ids)
	queries := randomCoords(50, 2)
	for _, r := range []float64{0.5, 2, 3, 7.5} {
		for i := 0; i < queries.NVecs(); i++ {
			p := queries.Vec(i)
			got := index.Within(p, r, nil)
			if got == nil {
				got = []int{}
			}
			if diff := cmp.Diff(brute(c, ids, p, r), got); diff != "" {
				Te.Errorf("radius %4.1f point %d (-brute +index):\n%s", r, i, diff)
			}
		}
	}
}

func TestWithinInclusive(Te *testing.T) {
	c, _ := v3.NewMatrix([]float64{0, 0, 0, 3, 0, 0})
	index := New(c, nil)
	if got := index.Within([3]float64{0, 0, 0}, 3, nil); len(got) != 2 {
		Te.Errorf("a point exactly at the radius should be included, got %v", got)
	}
	if got := index.Within([3]float64{0, 0, 0}, 3-1e-9, nil); len(got) != 1 {
		Te.Errorf("only the query point should be within, got %v", got)
	}
	if !index.Any([3]float64{0, 0, 0}, 3, 0) {
		Te.Error("Any should find the point with id 1")
	}
	if index.Any([3]float64{0, 0, 0}, 1, 0) {
		Te.Error("Any should skip the point with id 0")
	}
}

func TestBoundsAndCounter(Te *testing.T) {
	c, _ := v3.NewMatrix([]float64{1, 2, 3, -1, 5, 0, 2, -2, 1})
	index := New(c, nil)
	want := Box{Min: [3]float64{-1, -2, 0}, Max: [3]float64{2, 5, 3}}
	if diff := cmp.Diff(want, index.Bounds()); diff != "" {
		Te.Errorf("bounds (-want +got):\n%s", diff)
	}
	if index.Queries() != 0 {
		Te.Errorf("no queries made yet, counter says %d", index.Queries())
	}
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			index.Within([3]float64{0, 0, 0}, 2, nil)
		}()
	}
	wg.Wait()
	if index.Queries() != 10 {
		Te.Errorf("expected 10 queries, got %d", index.Queries())
	}
	p, id := index.Point(1)
	if p != [3]float64{-1, 5, 0} || id != 1 {
		Te.Errorf("Point(1) returned %v %d", p, id)
	}
}

func TestSeparated(Te *testing.T) {
	a := Box{Min: [3]float64{0, 0, 0}, Max: [3]float64{1, 1, 1}}
	b := Box{Min: [3]float64{4, 0, 0}, Max: [3]float64{5, 1, 1}}
	if !Separated(a, b, 2.9) {
		Te.Error("boxes 3 A apart should be separated for r=2.9")
	}
	if Separated(a, b, 3) {
		Te.Error("boxes 3 A apart should not be separated for r=3")
	}
	empty := New(nil, nil)
	if !Separated(a, empty.Bounds(), 100) {
		Te.Error("an empty box is always separated")
	}
	if len(empty.Within([3]float64{}, 10, nil)) != 0 {
		Te.Error("an empty index has no neighbours")
	}
}
