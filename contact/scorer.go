/*
 * scorer.go, part of condeg.
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

// Package contact obtains the contact degree between pairs of positions from their rotamers,
// and the freedom of each position.
package contact

import (
	"fmt"
	"io"
	"sort"

	"github.com/rmera/condeg/rotamer"
	"github.com/rmera/condeg/spatial"
)

// Degree returns the contact degree between 2 positions with the rotamers ri and rj: the fraction of rotamer
// pairs, weighted by the product of their weights, in which some heavy side chain atom of one rotamer is within contDist of one of the
// other. It returns 0 if either set is empty.
// If info is not nil, a line is written to it for each pair of rotamers in contact. If massI is not nil, the weight of
// rj[b] is added to massI[a] for each pair (a, b) in contact, and the same with massJ for rj.
func Degree(ri, rj []*rotamer.Rotamer, contDist float64, info io.Writer, massI, massJ []float64) float64 {
	if len(ri) == 0 || len(rj) == 0 {
		return 0
	}
	//The sums don't depend on the order of the arguments, so degree(i,j) == degree(j,i) exactly.
	n := totalWeight(ri) * totalWeight(rj)
	var touched []float64
	for a, r1 := range ri {
		p1 := r1.Weight()
		sc1 := r1.SideChain()
		box1 := sc1.Bounds()
		for b, r2 := range rj {
			p2 := r2.Weight()
			sc2 := r2.SideChain()
			if spatial.Separated(box1, sc2.Bounds(), contDist) {
				continue
			}
			if !touching(sc1, sc2, contDist) {
				continue
			}
			if info != nil {
				fmt.Fprintf(info, "%s %d -- %s %d : %f\n", r1.AA, r1.Index, r2.AA, r2.Index, p1*p2)
			}
			if massI != nil {
				massI[a] += p2
			}
			if massJ != nil {
				massJ[b] += p1
			}
			touched = append(touched, p1*p2)
		}
	}
	if n == 0 {
		return 0
	}
	sort.Float64s(touched)
	var c float64
	for _, v := range touched {
		c += v
	}
	return c / n
}

func totalWeight(r []*rotamer.Rotamer) float64 {
	var ret float64
	for _, v := range r {
		ret += v.Weight()
	}
	return ret
}

// touching returns true if any point in b is within r of a point in a.
func touching(a, b *spatial.Index, r float64) bool {
	for i := 0; i < b.Len(); i++ {
		p, _ := b.Point(i)
		if len(a.Within(p, r, nil)) > 0 {
			return true
		}
	}
	return false
}
