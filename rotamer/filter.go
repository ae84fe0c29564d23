/*
 * filter.go, part of condeg.
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

package rotamer

import (
	"fmt"
	"io"
	"log"
	"sort"
	"sync"

	chem "github.com/rmera/condeg"
	"github.com/rmera/condeg/rotlib"
	"github.com/rmera/condeg/spatial"
	v3 "github.com/rmera/condeg/v3"
)

// Result is the outcome of the rotamer filter for a structure.
type Result struct {
	Residues  []*chem.Residue //all the residues of the structure
	Positions []*PositionStats
	Selected  []int //the index in Residues of each position
}

// Release drops the spatial indexes of every rotamer.
func (R *Result) Release() {
	for _, p := range R.Positions {
		if p == nil {
			continue
		}
		for _, r := range p.Rotamers {
			r.Release()
		}
	}
}

// WriteRotamers writes the surviving rotamers to w in PDB format, each one preceded by
// a REMARK line identifying it.
func (R *Result) WriteRotamers(w io.Writer) error {
	for _, p := range R.Positions {
		for _, r := range p.Rotamers {
			if r.Residue == nil {
				continue
			}
			if _, err := fmt.Fprintf(w, "REMARK %s %s, rotamer %d\n", p.Residue.PositionID(), r.AA, r.Index+1); err != nil {
				return chem.NewError(err.Error(), true, err, "Result.WriteRotamers")
			}
			if err := chem.PDBWrite(w, r.Residue.Coords, r.Residue, nil); err != nil {
				return chem.ErrDecorate(err, "Result.WriteRotamers")
			}
		}
	}
	return nil
}

// globals are the indexes over the whole structure, shared read-only by all positions.
type globals struct {
	backbone *spatial.Index //heavy backbone atoms, with their residue index as id
	heavy    *spatial.Index //all heavy atoms, with their residue index as id
}

func buildGlobals(residues []*chem.Residue) *globals {
	var bbc, allc []float64
	var bbids, allids []int
	for i, r := range residues {
		for j, at := range r.Atoms {
			if chem.IsHydrogen(at) {
				continue
			}
			v := r.Coords.Vec(j)
			allc = append(allc, v[:]...)
			allids = append(allids, i)
			if chem.IsBackbone(at.Name) {
				bbc = append(bbc, v[:]...)
				bbids = append(bbids, i)
			}
		}
	}
	return &globals{backbone: newIndex(bbc, bbids), heavy: newIndex(allc, allids)}
}

func newIndex(data []float64, ids []int) *spatial.Index {
	if len(data) == 0 {
		return spatial.New(nil, nil)
	}
	m, _ := v3.NewMatrix(data)
	return spatial.New(m, ids)
}

// Filter builds the rotamers of the 18 rotameric amino acids at the positions of residues with indexes
// in selected (all, if selected is nil) and keeps those that don't clash with the backbone of any other residue.
// All the residues are considered when looking for clashes. A table lacking the propensity for any amino
// acid is a critical error. Positions without N, CA and C atoms are skipped with a warning.
func Filter(residues []*chem.Residue, selected []int, lib rotlib.Library, props *chem.Propensities, o *Options) (*Result, error) {
	if o == nil {
		o = DefaultOptions()
	}
	if err := props.Validate(); err != nil {
		return nil, chem.ErrDecorate(err, "rotamer.Filter")
	}
	if selected == nil {
		selected = make([]int, len(residues))
		for i := range selected {
			selected[i] = i
		}
	}
	for _, v := range selected {
		if v < 0 || v >= len(residues) {
			return nil, chem.NewError(fmt.Sprintf("Selected residue %d out of range", v), true, chem.ErrNoSelection, "rotamer.Filter")
		}
	}
	g := buildGlobals(residues)
	angles := chem.BackboneAngles(residues)
	ret := &Result{Residues: residues, Selected: selected, Positions: make([]*PositionStats, len(selected))}
	errs := make([]error, len(selected))
	jobs := make(chan int)
	var wg sync.WaitGroup
	cpus := o.Cpus()
	if cpus > len(selected) {
		cpus = len(selected)
	}
	for w := 0; w < cpus; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for k := range jobs {
				ret.Positions[k], errs[k] = filterPosition(residues, selected[k], angles[selected[k]], g, lib, props, o)
				if o.Verbose() && errs[k] == nil {
					p := ret.Positions[k]
					log.Printf("position %s (%d/%d): %d/%d rotamers remaining", p.Residue.PositionID(), k+1, len(selected), len(p.Rotamers), p.TotalRotamers)
				}
			}
		}()
	}
	for k := range selected {
		jobs <- k
	}
	close(jobs)
	wg.Wait()
	for _, err := range errs {
		if err != nil {
			ret.Release()
			return nil, chem.ErrDecorate(err, "rotamer.Filter")
		}
	}
	return ret, nil
}

// filterPosition does the work of Filter for the residue with index idx.
func filterPosition(residues []*chem.Residue, idx int, angles [3]float64, g *globals, lib rotlib.Library, props *chem.Propensities, o *Options) (*PositionStats, error) {
	res := residues[idx]
	ps := &PositionStats{Residue: res, Angles: angles}
	if !res.HasBackboneFrame() {
		log.Printf("Warning: will not build rotamers at position %s %s, because N-CA-C atoms are not defined. This can affect the contact degree and crowdedness of neighboring positions", res.PositionID(), res.Name)
		ps.Skipped = true
		return ps, nil
	}
	phi, psi := angles[0], angles[1]
	contDist := o.ContDist()
	clashDist := o.ClashDist()
	var occupied, sampled float64
	perm := make(map[int]bool)
	var buf []int
	for _, aa := range chem.AminoAcids() {
		prop, err := props.Of(aa)
		if err != nil {
			return nil, err
		}
		nr := lib.NumRotamers(aa, phi, psi)
		ps.TotalRotamers += nr
		for ri := 0; ri < nr; ri++ {
			cp := res.Copy()
			if err := lib.Place(cp, aa, ri, phi, psi); err != nil {
				if chem.IsCritical(err) {
					return nil, err
				}
				log.Printf("Warning: could not place rotamer %d of %s at %s: %s", ri, aa, res.PositionID(), err.Error())
				continue
			}
			w := prop * lib.Probability(aa, ri, phi, psi)
			sc := cp.SideChain()
			//Free volume is sampled for every rotamer, pruned or not.
			for _, k := range sc {
				if g.heavy.Any(cp.Coords.Vec(k), contDist, idx) {
					occupied += w
				}
				sampled += w
			}
			prune := false
			for _, k := range sc {
				if aa != chem.ALA && cp.Atoms[k].Name == "CB" {
					continue
				}
				buf = g.backbone.Within(cp.Coords.Vec(k), clashDist, buf[:0])
				for _, neigh := range buf {
					if neigh == idx {
						continue
					}
					prune = true
					if aa != chem.ALA {
						break
					}
					perm[neigh] = true
				}
				if prune && aa != chem.ALA {
					break
				}
			}
			if prune {
				continue
			}
			ps.Rotamers = append(ps.Rotamers, New(cp, aa, ri, prop, lib.Probability(aa, ri, phi, psi)))
		}
	}
	for k := range perm {
		ps.PermanentContacts = append(ps.PermanentContacts, k)
	}
	sort.Ints(ps.PermanentContacts)
	if ps.TotalRotamers > 0 {
		ps.Crowdedness = 1 - float64(len(ps.Rotamers))/float64(ps.TotalRotamers)
	}
	if sampled > 0 && len(ps.Rotamers) > 0 {
		ps.FreeVolume = clamp(1 - occupied/sampled)
	}
	return ps, nil
}

func clamp(f float64) float64 {
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}
