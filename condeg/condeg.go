/*
 * condeg.go, part of condeg.
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

// Package condeg runs the whole contact degree analysis of a protein structure: it keeps the
// protein residues, filters the rotamers at each position, and obtains the contacts between
// positions and the per-position statistics.
package condeg

import (
	"fmt"
	"log"

	chem "github.com/rmera/condeg"
	"github.com/rmera/condeg/contact"
	"github.com/rmera/condeg/report"
	"github.com/rmera/condeg/rotamer"
	"github.com/rmera/condeg/rotlib"
)

// Analysis is the outcome of the contact degree analysis of a structure.
// Contacts, Freedom and SumDegree are nil if contacts were not calculated.
type Analysis struct {
	Mol       *chem.Molecule //the post-processed structure
	Residues  []*chem.Residue
	Positions []*rotamer.PositionStats
	Contacts  []contact.Contact //I and J are indexes in Positions
	Freedom   []float64
	SumDegree []float64
}

// Analyze performs the contact degree analysis on the first frame of mol, using the rotamers in lib.
// mol is not modified. The rotamers are released before returning, so they can only be written
// while the analysis runs, with the RotamerOutput option.
func Analyze(mol *chem.Molecule, lib rotlib.Library, o *Options) (*Analysis, error) {
	if o == nil {
		o = DefaultOptions()
	}
	if mol == nil || len(mol.Coords) == 0 {
		return nil, chem.NewError("No structure given", true, chem.ErrNilData, "condeg.Analyze")
	}
	prot, err := chem.ProteinOnly(mol)
	if err != nil {
		return nil, chem.ErrDecorate(err, "condeg.Analyze")
	}
	if o.Renumber() {
		prot.Renumber()
	}
	res := chem.Residues(prot, prot.Coords[0])
	if psel := o.PreSelection(); psel != nil {
		idx := chem.Select(res, psel)
		if len(idx) == 0 {
			return nil, chem.NewError(fmt.Sprintf("Pre-selection %q matches no residue", psel.String()), true, chem.ErrNoSelection, "condeg.Analyze")
		}
		kept := make([]*chem.Residue, len(idx))
		for i, v := range idx {
			kept[i] = res[v]
		}
		if prot, err = chem.Join(kept); err != nil {
			return nil, chem.ErrDecorate(err, "condeg.Analyze")
		}
		res = chem.Residues(prot, prot.Coords[0])
		if o.Verbose() {
			log.Printf("pre-selection resulted in %d residues, %d atoms", len(res), prot.Len())
		}
	}
	var selected []int
	if focus := o.Focus(); focus != nil {
		selected = chem.Select(res, focus)
		if len(selected) == 0 {
			return nil, chem.NewError(fmt.Sprintf("Selection %q matches no residue", focus.String()), true, chem.ErrNoSelection, "condeg.Analyze")
		}
		selected = chem.Expand(res, selected, o.Expand())
		if o.Verbose() {
			log.Printf("focused on %d residues", len(selected))
		}
	}
	fo := rotamer.DefaultOptions()
	fo.ClashDist(o.ClashDist())
	fo.ContDist(o.ContDist())
	fo.Cpus(o.Cpus())
	fo.Verbose(o.Verbose())
	filtered, err := rotamer.Filter(res, selected, lib, o.Propensities(), fo)
	if err != nil {
		return nil, chem.ErrDecorate(err, "condeg.Analyze")
	}
	defer filtered.Release()
	if w := o.RotamerOutput(); w != nil {
		if err := filtered.WriteRotamers(w); err != nil {
			return nil, chem.ErrDecorate(err, "condeg.Analyze")
		}
	}
	ret := &Analysis{Mol: prot, Residues: res, Positions: filtered.Positions}
	if !o.Contacts() {
		return ret, nil
	}
	ens := make([]*contact.Ensemble, len(filtered.Positions))
	for i, p := range filtered.Positions {
		rep, synth := p.Residue.Representative()
		if synth && o.Verbose() {
			log.Printf("position %s has no CA, a pseudo-atom will represent it", p.Residue.PositionID())
		}
		ens[i] = &contact.Ensemble{Rotamers: p.Rotamers, Representative: rep, TotalRotamers: p.TotalRotamers}
	}
	co := contact.DefaultOptions()
	co.Cutoff(o.Cutoff())
	co.ContDist(o.ContDist())
	co.Cpus(o.Cpus())
	co.Verbose(o.Verbose())
	cr := contact.Compute(ens, co)
	ret.Contacts = cr.Contacts
	ret.Freedom = cr.Freedom
	ret.SumDegree = cr.SumDegree
	return ret, nil
}

// Report writes the analysis to w: the contacts, each followed by the rotamer pairs in
// contact if those were recorded, the sum of contact degrees, the freedom, the permanent contacts, the
// crowdedness, the free volume and the sequence of the analyzed positions.
func (A *Analysis) Report(w *report.Writer, c *report.Columns) error {
	pos := func(i int) *chem.Residue { return A.Positions[i].Residue }
	for _, ct := range A.Contacts {
		ri, rj := pos(ct.I), pos(ct.J)
		w.Contact(ri.PositionID(), rj.PositionID(), ct.Degree, ri.Name, rj.Name)
		if ct.Info != "" {
			w.Info(ct.Info)
		}
	}
	if A.SumDegree != nil {
		for i, v := range A.SumDegree {
			A.metric(w, report.SumDegree, i, v, c)
		}
		for i, v := range A.Freedom {
			A.metric(w, report.Freedom, i, v, c)
		}
	}
	for _, p := range A.Positions {
		for _, n := range p.PermanentContacts {
			w.Permanent(p.Residue.PositionID(), A.Residues[n].PositionID(), p.Residue.Name, A.Residues[n].Name)
		}
	}
	for i, p := range A.Positions {
		A.metric(w, report.Crowdedness, i, p.Crowdedness, c)
	}
	for i, p := range A.Positions {
		A.metric(w, report.FreeVolume, i, p.FreeVolume, c)
	}
	names := make([]string, len(A.Positions))
	for i, p := range A.Positions {
		names[i] = p.Residue.Name
	}
	w.Sequence(names)
	return chem.ErrDecorate(w.Err(), "Analysis.Report")
}

func (A *Analysis) metric(w *report.Writer, tag string, i int, v float64, c *report.Columns) {
	p := A.Positions[i]
	w.Metric(tag, p.Residue.PositionID(), v, p.Angles, p.Residue.Name, c)
}

// Profiles returns, for each analyzed position, its ID and its values for each metric,
// keyed by the report tag of the metric.
func (A *Analysis) Profiles() ([]string, map[string][]float64) {
	ids := make([]string, len(A.Positions))
	series := map[string][]float64{
		report.Crowdedness: make([]float64, len(A.Positions)),
		report.FreeVolume:  make([]float64, len(A.Positions)),
	}
	for i, p := range A.Positions {
		ids[i] = p.Residue.PositionID()
		series[report.Crowdedness][i] = p.Crowdedness
		series[report.FreeVolume][i] = p.FreeVolume
	}
	if A.SumDegree != nil {
		series[report.SumDegree] = A.SumDegree
		series[report.Freedom] = A.Freedom
	}
	return ids, series
}
