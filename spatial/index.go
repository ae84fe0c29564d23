/*
 * index.go, part of condeg.
 *
 * Copyright 2024 Raul Mera  <rmeraa{at}academicos(dot)uta(dot)cl>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

// Package spatial provides radius-bounded neighbour queries over sets of 3D points.
package spatial

import (
	"math"
	"sort"
	"sync/atomic"

	v3 "github.com/rmera/condeg/v3"
	"gonum.org/v1/gonum/spatial/kdtree"
)

// Box is an axis-aligned bounding box.
type Box struct {
	Min, Max [3]float64
}

// Empty returns true if the box contains no points.
func (B Box) Empty() bool {
	return B.Min[0] > B.Max[0]
}

// Separated returns true if the boxes a and b are farther apart than r along
// at least one axis, so no point in a can be within r of a point in b.
// Empty boxes are always separated.
func Separated(a, b Box, r float64) bool {
	if a.Empty() || b.Empty() {
		return true
	}
	for i := 0; i < 3; i++ {
		if a.Min[i]-b.Max[i] > r || b.Min[i]-a.Max[i] > r {
			return true
		}
	}
	return false
}

// Index answers "which points are within r of p" queries. Each point
// carries an integer id, which is what queries return. An Index is
// safe for concurrent queries.
type Index struct {
	tree    *kdtree.Tree
	pts     []point //in the original order
	box     Box
	queries atomic.Int64
}

// New builds an index over the vectors in coords, where the ith vector has
// the id ids[i]. If ids is nil, each vector's index is used as its id.
func New(coords *v3.Matrix, ids []int) *Index {
	n := 0
	if coords != nil {
		n = coords.NVecs()
	}
	if ids != nil && len(ids) != n {
		panic("spatial: the number of ids doesn't match the number of points")
	}
	I := &Index{pts: make([]point, n)}
	I.box = Box{Min: [3]float64{math.Inf(1), math.Inf(1), math.Inf(1)}, Max: [3]float64{math.Inf(-1), math.Inf(-1), math.Inf(-1)}}
	for i := range I.pts {
		I.pts[i] = point{x: coords.Vec(i), id: i}
		if ids != nil {
			I.pts[i].id = ids[i]
		}
		for j := 0; j < 3; j++ {
			I.box.Min[j] = math.Min(I.box.Min[j], I.pts[i].x[j])
			I.box.Max[j] = math.Max(I.box.Max[j], I.pts[i].x[j])
		}
	}
	if n > 0 {
		tp := make(points, n)
		copy(tp, I.pts)
		I.tree = kdtree.New(tp, true)
	}
	return I
}

// Len returns the number of points in the index.
func (I *Index) Len() int {
	return len(I.pts)
}

// Point returns the coordinates and id of the ith point given to New.
func (I *Index) Point(i int) ([3]float64, int) {
	return I.pts[i].x, I.pts[i].id
}

// Bounds returns the bounding box of the points in the index.
func (I *Index) Bounds() Box {
	return I.box
}

// Queries returns the number of radius queries answered by the index so far.
func (I *Index) Queries() int64 {
	return I.queries.Load()
}

// Within appends to dst the ids of all points at a distance of r or less from p,
// sorted in ascending order, and returns the resulting slice. Ids
// shared by several points within r appear several times.
func (I *Index) Within(p [3]float64, r float64, dst []int) []int {
	I.queries.Add(1)
	if I.tree == nil || r < 0 {
		return dst
	}
	keep := kdtree.NewDistKeeper(r * r)
	I.tree.NearestSet(keep, point{x: p})
	start := len(dst)
	for _, c := range keep.Heap {
		if c.Comparable == nil {
			continue
		}
		dst = append(dst, c.Comparable.(point).id)
	}
	sort.Ints(dst[start:])
	return dst
}

// Any returns true if there is at least one point within r of p
// whose id is not skip.
func (I *Index) Any(p [3]float64, r float64, skip int) bool {
	for _, id := range I.Within(p, r, nil) {
		if id != skip {
			return true
		}
	}
	return false
}

// point is a kdtree.Comparable that carries an id.
type point struct {
	x  [3]float64
	id int
}

func (p point) Compare(c kdtree.Comparable, d kdtree.Dim) float64 {
	q := c.(point)
	return p.x[d] - q.x[d]
}

func (p point) Dims() int { return 3 }

// Distance returns the squared euclidean distance, as kdtree expects.
func (p point) Distance(c kdtree.Comparable) float64 {
	q := c.(point)
	var sum float64
	for i := 0; i < 3; i++ {
		d := p.x[i] - q.x[i]
		sum += d * d
	}
	return sum
}

// Extend makes point a kdtree.Extender.
func (p point) Extend(b *kdtree.Bounding) *kdtree.Bounding {
	if b == nil {
		b = &kdtree.Bounding{Min: p, Max: p}
	}
	min := b.Min.(point)
	max := b.Max.(point)
	for i := 0; i < 3; i++ {
		min.x[i] = math.Min(min.x[i], p.x[i])
		max.x[i] = math.Max(max.x[i], p.x[i])
	}
	*b = kdtree.Bounding{Min: min, Max: max}
	return b
}

// points implements kdtree.Interface and kdtree.Bounder.
type points []point

func (p points) Index(i int) kdtree.Comparable { return p[i] }
func (p points) Len() int                       { return len(p) }
func (p points) Pivot(d kdtree.Dim) int {
	return plane{points: p, Dim: d}.Pivot()
}
func (p points) Slice(start, end int) kdtree.Interface { return p[start:end] }

func (p points) Bounds() *kdtree.Bounding {
	if len(p) == 0 {
		return nil
	}
	var b *kdtree.Bounding
	for _, v := range p {
		b = v.Extend(b)
	}
	return b
}

// plane sorts points along one dimension.
type plane struct {
	kdtree.Dim
	points
}

func (p plane) Less(i, j int) bool {
	return p.points[i].x[p.Dim] < p.points[j].x[p.Dim]
}
func (p plane) Pivot() int { return kdtree.Partition(p, kdtree.MedianOfMedians(p)) }
func (p plane) Slice(start, end int) kdtree.SortSlicer {
	p.points = p.points[start:end]
	return p
}
func (p plane) Swap(i, j int) {
	p.points[i], p.points[j] = p.points[j], p.points[i]
}
