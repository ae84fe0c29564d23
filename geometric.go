/*
 * geometric.go, part of condeg.
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

package chem

import (
	"fmt"
	"math"

	v3 "github.com/rmera/condeg/v3"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// Dihedral calculate the dihedral between the points a, b, c, d, where the first plane
// is defined by abc and the second by bcd. The result is in radians.
func Dihedral(a, b, c, d *v3.Matrix) float64 {
	all := []*v3.Matrix{a, b, c, d}
	for number, point := range all {
		if point == nil {
			panic(fmt.Sprintf("Vector %d is nil", number))
		}
		pr, pc := point.Dims()
		if pr != 1 || pc != 3 {
			panic(fmt.Sprintf("Vector %d has invalid shape", number))
		}
	}
	return DihedralPoints(a.Vec(0), b.Vec(0), c.Vec(0), d.Vec(0))
}

// DihedralPoints is Dihedral for points given as arrays.
func DihedralPoints(a, b, c, d [3]float64) float64 {
	//bma=b minus a
	bma := sub(b, a)
	cmb := sub(c, b)
	dmc := sub(d, c)
	bmascaled := scale(norm(cmb), bma)
	first := dot(bmascaled, cross(cmb, dmc))
	v1 := cross(bma, cmb)
	v2 := cross(cmb, dmc)
	second := dot(v1, v2)
	return math.Atan2(first, second)
}

// Distance returns the euclidean distance between a and b.
func Distance(a, b [3]float64) float64 {
	return floats.Distance(a[:], b[:], 2)
}

// Centroid returns the geometric center of the vectors in coords.
func Centroid(coords *v3.Matrix) [3]float64 {
	var ret [3]float64
	n := coords.NVecs()
	if n == 0 {
		return ret
	}
	col := make([]float64, n)
	for j := 0; j < 3; j++ {
		mat.Col(col, j, coords.Dense)
		ret[j] = floats.Sum(col) / float64(n)
	}
	return ret
}

// PrincipalAxis returns the direction of largest variance of the points in coords,
// as a unit vector. The sign is chosen so the largest component is positive.
// An error is returned if there are less than 2 points or they all coincide.
func PrincipalAxis(coords *v3.Matrix) ([3]float64, error) {
	xaxis := [3]float64{1, 0, 0}
	if coords == nil || coords.NVecs() < 2 {
		return xaxis, NewError("Not enough points for a principal axis", false, ErrNilData, "PrincipalAxis")
	}
	var pc stat.PC
	if ok := pc.PrincipalComponents(coords.Dense, nil); !ok {
		return xaxis, NewError("Principal component decomposition failed", false, ErrNilData, "PrincipalAxis")
	}
	vars := pc.VarsTo(nil)
	if len(vars) == 0 || vars[0] <= appzero {
		return xaxis, NewError("All points coincide", false, ErrNilData, "PrincipalAxis")
	}
	var vecs mat.Dense
	pc.VectorsTo(&vecs)
	axis := [3]float64{vecs.At(0, 0), vecs.At(1, 0), vecs.At(2, 0)}
	big := floats.MaxIdx(absolutes(axis[:]))
	if axis[big] < 0 {
		axis = scale(-1, axis)
	}
	return scale(1/norm(axis), axis), nil
}

// Project returns the scalar projection of each vector in coords on axis.
func Project(coords *v3.Matrix, axis [3]float64) []float64 {
	ret := make([]float64, coords.NVecs())
	for i := range ret {
		ret[i] = dot(coords.Vec(i), axis)
	}
	return ret
}

// PlaceAtom returns the position of a point d such that the c-d distance is bond,
// the b-c-d angle is angle and the a-b-c-d dihedral is torsion. Angles are in radians.
// It panics if a, b and c are colinear.
func PlaceAtom(a, b, c [3]float64, bond, angle, torsion float64) [3]float64 {
	bc := sub(c, b)
	n := cross(sub(b, a), bc)
	if norm(n) <= appzero || norm(bc) <= appzero {
		panic(ErrColinear)
	}
	bc = scale(1/norm(bc), bc)
	n = scale(1/norm(n), n)
	m := cross(n, bc)
	d0 := -bond * math.Cos(angle)
	d1 := bond * math.Sin(angle) * math.Cos(torsion)
	d2 := bond * math.Sin(angle) * math.Sin(torsion)
	var d [3]float64
	for i := 0; i < 3; i++ {
		d[i] = c[i] + d0*bc[i] + d1*m[i] + d2*n[i]
	}
	return d
}

const appzero = 1e-12

func absolutes(s []float64) []float64 {
	ret := make([]float64, len(s))
	for i, v := range s {
		ret[i] = math.Abs(v)
	}
	return ret
}

func sub(a, b [3]float64) [3]float64 {
	return [3]float64{a[0] - b[0], a[1] - b[1], a[2] - b[2]}
}

func scale(f float64, a [3]float64) [3]float64 {
	return [3]float64{f * a[0], f * a[1], f * a[2]}
}

func dot(a, b [3]float64) float64 {
	return a[0]*b[0] + a[1]*b[1] + a[2]*b[2]
}

func norm(a [3]float64) float64 {
	return math.Sqrt(dot(a, a))
}

func cross(a, b [3]float64) [3]float64 {
	return [3]float64{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}
