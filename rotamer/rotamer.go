/*
 * rotamer.go, part of condeg.
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

// Package rotamer places the rotamers of every rotameric amino acid at each position of a protein,
// discards the ones that clash with the backbone, and obtains the crowdedness and free volume of each position.
package rotamer

import (
	"runtime"

	chem "github.com/rmera/condeg"
	"github.com/rmera/condeg/spatial"
	v3 "github.com/rmera/condeg/v3"
)

// Rotamer is a side chain conformation that survived the clash filter at a position.
type Rotamer struct {
	AA          chem.AminoAcid
	Index       int     //index of the rotamer in the library
	Propensity  float64 //of the amino acid, in percent
	Probability float64 //of the rotamer, given the backbone conformation
	Residue     *chem.Residue
	sidechain   *spatial.Index
	backbone    *spatial.Index
}

// Weight returns the propensity times the probability of the rotamer.
func (R *Rotamer) Weight() float64 {
	return R.Propensity * R.Probability
}

// SideChain returns the index over the heavy side chain atoms of the rotamer. For
// amino acids other than ALA, CB is not included.
func (R *Rotamer) SideChain() *spatial.Index {
	return R.sidechain
}

// Backbone returns the index over the heavy backbone atoms of the rotamer. For
// amino acids other than ALA, it includes CB.
func (R *Rotamer) Backbone() *spatial.Index {
	return R.backbone
}

// Release drops the spatial indexes and coordinates of the rotamer.
// The rotamer can't be used for contact calculations after this.
func (R *Rotamer) Release() {
	R.sidechain = nil
	R.backbone = nil
	R.Residue = nil
}

// New returns a rotamer for the placed residue res, building its side chain and backbone indexes.
// res is not copied.
func New(res *chem.Residue, aa chem.AminoAcid, index int, prop, prob float64) *Rotamer {
	var sc, bb []int
	for i, at := range res.Atoms {
		if chem.IsHydrogen(at) {
			continue
		}
		if chem.IsBackbone(at.Name) || (aa != chem.ALA && at.Name == "CB") {
			bb = append(bb, i)
		} else {
			sc = append(sc, i)
		}
	}
	return &Rotamer{
		AA:          aa,
		Index:       index,
		Propensity:  prop,
		Probability: prob,
		Residue:     res,
		sidechain:   subIndex(res.Coords, sc),
		backbone:    subIndex(res.Coords, bb),
	}
}

func subIndex(coords *v3.Matrix, list []int) *spatial.Index {
	if len(list) == 0 {
		return spatial.New(nil, nil)
	}
	c := v3.Zeros(len(list))
	c.SomeVecs(coords, list)
	return spatial.New(c, nil)
}

// PositionStats contains the rotamers that survived at a position, and the
// statistics obtained from them.
type PositionStats struct {
	Residue           *chem.Residue
	Angles            [3]float64 //phi, psi, omega
	Rotamers          []*Rotamer
	PermanentContacts []int //indexes of the residues ALA can't avoid clashing with, sorted.
	TotalRotamers     int   //before the clash filter
	Crowdedness       float64
	FreeVolume        float64
	Skipped           bool //the position lacks backbone atoms, so no rotamers were built.
}

// Options contains the parameters for the rotamer filter.
type Options struct {
	clashDist float64
	contDist  float64
	cpus      int
	verbose   bool
}

// DefaultOptions returns an Options with the default values.
func DefaultOptions() *Options {
	ret := new(Options)
	ret.clashDist = 2.0
	ret.contDist = 3.0
	ret.cpus = runtime.NumCPU()
	return ret
}

// ClashDist returns the distance, in A, below which a side chain atom clashes with a backbone
// atom, and sets it, if a valid value is given.
func (r *Options) ClashDist(d ...float64) float64 {
	ret := r.clashDist
	if len(d) > 0 && d[0] > 0 {
		r.clashDist = d[0]
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

// Cpus returns the number of gorutines used to process positions, and sets it, if
// a valid value is given.
func (r *Options) Cpus(cpus ...int) int {
	ret := r.cpus
	if len(cpus) > 0 && cpus[0] > 0 {
		r.cpus = cpus[0]
	}
	return ret
}

// Verbose returns whether progress is logged, and sets it, if a value is given.
func (r *Options) Verbose(v ...bool) bool {
	ret := r.verbose
	if len(v) > 0 {
		r.verbose = v[0]
	}
	return ret
}
