/*
 * engine.go, part of condeg.
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

package contact

import (
	"log"
	"math"
	"runtime"
	"sort"
	"strings"
	"sync"

	chem "github.com/rmera/condeg"
	"github.com/rmera/condeg/rotamer"
	v3 "github.com/rmera/condeg/v3"
)

// Contact is a pair of positions, I<J, with a non-zero contact degree.
type Contact struct {
	I, J   int
	Degree float64
	Info   string //the rotamer pairs in contact, only filled in verbose mode
}

// Ensemble is the set of rotamers that survived at a position.
type Ensemble struct {
	Rotamers       []*rotamer.Rotamer
	Representative [3]float64 //usually, the CA
	TotalRotamers  int        //before pruning
}

// Options contains the parameters for the contact degree engine.
type Options struct {
	cutoff   float64
	contDist float64
	cpus     int
	verbose  bool
}

// DefaultOptions returns an Options with the default values.
func DefaultOptions() *Options {
	ret := new(Options)
	ret.cutoff = 25.0
	ret.contDist = 3.0
	ret.cpus = runtime.NumCPU()
	return ret
}

// Cutoff returns the distance along the principal axis of the protein beyond which pairs of positions
// are not considered for contacts, and sets it, if a valid value is given.
func (r *Options) Cutoff(d ...float64) float64 {
	ret := r.cutoff
	if len(d) > 0 && d[0] > 0 {
		r.cutoff = d[0]
	}
	return ret
}

// ContDist returns the distance, in A, below which two atoms are in contact,
// and sets it, if a valid value is given.
func (r *Options) ContDist(d ...float64) float64 {
	ret := r.contDist
	if len(d) > 0 && d[0] > 0 {
		r.contDist = d[0]
	}
	return ret
}

// Cpus returns the number of gorutines used to score pairs and sets it, if
// a valid value is given.
func (r *Options) Cpus(cpus ...int) int {
	ret := r.cpus
	if len(cpus) > 0 && cpus[0] > 0 {
		r.cpus = cpus[0]
	}
	return ret
}

// Verbose returns whether the rotamer pairs in contact are recorded for each contact,
// and sets it, if a value is given.
func (r *Options) Verbose(v ...bool) bool {
	ret := r.verbose
	if len(v) > 0 {
		r.verbose = v[0]
	}
	return ret
}

// Result contains the contacts and per-position values obtained by Compute.
type Result struct {
	Contacts  []Contact   //sorted by I, then J.
	Freedom   []float64   //per position
	SumDegree []float64   //per position
	Masses    [][]float64 //collision mass of each surviving rotamer of each position
}

// Candidates returns the pairs of points, with the lower index first, whose projections on the principal
// axis of the set of points are within cutoff of each other. Points closer than cutoff in space are always
// included, but not every pair returned needs to be that close.
func Candidates(points [][3]float64, cutoff float64) [][2]int {
	n := len(points)
	if n < 2 {
		return nil
	}
	coords := v3.Zeros(n)
	for i, p := range points {
		coords.SetVec(i, p)
	}
	axis, err := chem.PrincipalAxis(coords)
	if err != nil {
		log.Printf("Warning: %s, the x axis will be used to sort positions", err.Error())
	}
	proj := chem.Project(coords, axis)
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return proj[order[a]] < proj[order[b]]
	})
	var ret [][2]int
	hi := 0
	for i := 0; i < n; i++ {
		if hi < i {
			hi = i
		}
		for hi < n-1 && proj[order[hi+1]]-proj[order[i]] <= cutoff {
			hi++
		}
		for j := i + 1; j <= hi; j++ {
			a, b := order[i], order[j]
			if a > b {
				a, b = b, a
			}
			ret = append(ret, [2]int{a, b})
		}
	}
	return ret
}

// scored is the outcome of scoring one candidate pair.
type scored struct {
	degree       float64
	info         string
	massI, massJ []float64
}

// Compute obtains the contacts between the positions in ens, their freedom and their sum
// of contact degrees. Pairs are scored concurrently, but the result doesn't depend on the
// number of gorutines used.
func Compute(ens []*Ensemble, o *Options) *Result {
	if o == nil {
		o = DefaultOptions()
	}
	reps := make([][3]float64, len(ens))
	for i, e := range ens {
		reps[i] = e.Representative
	}
	cands := Candidates(reps, o.Cutoff())
	results := make([]scored, len(cands))
	jobs := make(chan int)
	var wg sync.WaitGroup
	cpus := o.Cpus()
	if cpus > len(cands) {
		cpus = len(cands)
	}
	for w := 0; w < cpus; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for k := range jobs {
				results[k] = score(ens[cands[k][0]], ens[cands[k][1]], o)
			}
		}()
	}
	for k := range cands {
		jobs <- k
	}
	close(jobs)
	wg.Wait()

	ret := &Result{Masses: make([][]float64, len(ens))}
	for i, e := range ens {
		ret.Masses[i] = make([]float64, len(e.Rotamers))
	}
	//the reduction goes in candidate order, so it's always the same.
	for k, s := range results {
		ii, jj := cands[k][0], cands[k][1]
		for r, m := range s.massI {
			ret.Masses[ii][r] += m
		}
		for r, m := range s.massJ {
			ret.Masses[jj][r] += m
		}
		if s.degree > 0 {
			ret.Contacts = append(ret.Contacts, Contact{I: ii, J: jj, Degree: s.degree, Info: s.info})
		}
	}
	sort.Slice(ret.Contacts, func(a, b int) bool {
		ca, cb := ret.Contacts[a], ret.Contacts[b]
		if ca.I != cb.I {
			return ca.I < cb.I
		}
		return ca.J < cb.J
	})
	ret.Freedom = make([]float64, len(ens))
	for i, e := range ens {
		ret.Freedom[i] = Freedom(ret.Masses[i], e.TotalRotamers)
	}
	ret.SumDegree = SumDegrees(ret.Contacts, len(ens))
	return ret
}

func score(ei, ej *Ensemble, o *Options) scored {
	s := scored{
		massI: make([]float64, len(ei.Rotamers)),
		massJ: make([]float64, len(ej.Rotamers)),
	}
	var info *strings.Builder
	if o.Verbose() {
		info = new(strings.Builder)
		s.degree = Degree(ei.Rotamers, ej.Rotamers, o.ContDist(), info, s.massI, s.massJ)
		s.info = info.String()
	} else {
		s.degree = Degree(ei.Rotamers, ej.Rotamers, o.ContDist(), nil, s.massI, s.massJ)
	}
	return s
}

// Freedom returns the freedom of a position from the collision masses of its surviving rotamers,
// given in propensity percent units, and the number of rotamers it had before the clash filter.
// It is 0 if there were no rotamers.
func Freedom(masses []float64, total int) float64 {
	if total == 0 {
		return 0
	}
	var n1, n2 float64
	for _, m := range masses {
		if m/100 < 0.5 {
			n1++
		}
		if m/100 < 2.0 {
			n2++
		}
	}
	return math.Sqrt((n1*n1+n2*n2)/2) / float64(total)
}

// SumDegrees returns, for each of n positions, the sum of the degrees of the contacts it is part of.
func SumDegrees(contacts []Contact, n int) []float64 {
	ret := make([]float64, n)
	for _, c := range contacts {
		ret[c.I] += c.Degree
		ret[c.J] += c.Degree
	}
	return ret
}
