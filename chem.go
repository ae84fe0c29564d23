/*
 * chem.go, part of condeg.
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

/***Dedicated to the long life of the Ven. Khenpo Phuntzok Tenzin Rinpoche***/

package chem

import (
	"fmt"

	v3 "github.com/rmera/condeg/v3"
)

/**Note: Many funcitons here panic instead of returning errors. This is because they are "fundamental"
 * functions. I considered that if something goes wrong here, the program is way-most likely wrong and should
 * crash. Most panics are related to using the funciton on a nil object or trying to access out-of bounds
 * fields**/

// Atom contains the atoms read except for the coordinates, which will be in a matrix.
type Atom struct {
	Name      string
	ID        int
	MolName   string
	MolName1  byte //the one letter name for residues and nucleotids
	MolID     int
	ICode     byte //PDB insertion code, ' ' if none.
	Chain     string
	AltLoc    byte
	Occupancy float64
	Bfactor   float64
	Symbol    string
	Het       bool // is hetatm in the pdb file?
}

// Copy puts in the receiver a copy of B.
func (A *Atom) Copy(B *Atom) {
	if A == nil || B == nil {
		panic(ErrNilAtom)
	}
	*A = *B
}

/*****Topology type***/

// Topology contains information about a molecule which is not expected to change in time (i.e. everything except for coordinates)
type Topology struct {
	Atoms []*Atom
}

// NewTopology returns an empty topology with room for n atoms.
func NewTopology(n int) *Topology {
	return &Topology{Atoms: make([]*Atom, 0, n)}
}

// Len returns the number of atoms in the topology.
func (T *Topology) Len() int {
	if T == nil {
		return 0
	}
	return len(T.Atoms)
}

// Atom returns the Atom corresponding to the index i
// of the Atom slice in the Topology. Panics if
// out of range.
func (T *Topology) Atom(i int) *Atom {
	if i >= T.Len() {
		panic(ErrAtomOutOfRange)
	}
	return T.Atoms[i]
}

// AppendAtom appends an atom at the end of the reference
func (T *Topology) AppendAtom(at *Atom) {
	T.Atoms = append(T.Atoms, at)
}

// SomeAtoms puts in the receiver copies of the atoms of mol
// with indexes in list.
func (T *Topology) SomeAtoms(mol Atomer, list []int) {
	T.Atoms = make([]*Atom, 0, len(list))
	for _, i := range list {
		at := new(Atom)
		at.Copy(mol.Atom(i))
		T.Atoms = append(T.Atoms, at)
	}
}

// Renumber sets the current order of atoms as ID, and numbers the residues
// of each chain consecutively from 1, clearing the insertion codes.
func (T *Topology) Renumber() {
	chain := ""
	prevkey := ""
	resid := 0
	for key, val := range T.Atoms {
		T.Atoms[key].ID = key + 1
		if val.Chain != chain {
			chain = val.Chain
			resid = 0
			prevkey = ""
		}
		k := fmt.Sprintf("%d%c", val.MolID, val.ICode)
		if k != prevkey {
			resid++
			prevkey = k
		}
		val.MolID = resid
		val.ICode = ' '
	}
}

/**Type Molecule**/

// Molecule contains all the info for a molecule in many states. The info that is expected to change between states,
// Coordinates and b-factors are stored separately from other atomic info.
type Molecule struct {
	*Topology
	Coords   []*v3.Matrix
	Bfactors [][]float64
}

// NewMolecule makes a molecule with ats atoms, coords coordinates and bfactors b-factors,
// and returns it. It returns an error if the number of coordinates doesn't match the
// number of atoms.
func NewMolecule(coords []*v3.Matrix, ats *Topology, bfactors [][]float64) (*Molecule, error) {
	if ats == nil || len(coords) == 0 {
		return nil, NewError("Supplied a nil topology or no coordinates", true, ErrNilData, "NewMolecule")
	}
	for i, c := range coords {
		if c.NVecs() != ats.Len() {
			return nil, NewError(fmt.Sprintf("Frame %d has %d coordinates for %d atoms", i, c.NVecs(), ats.Len()), true, ErrNilData, "NewMolecule")
		}
	}
	return &Molecule{Topology: ats, Coords: coords, Bfactors: bfactors}, nil
}

// Subset returns a new molecule with only the atoms in list, for the first frame.
func (M *Molecule) Subset(list []int) (*Molecule, error) {
	if len(list) == 0 {
		return nil, NewError("Empty atom list", true, ErrNilData, "Molecule.Subset")
	}
	top := NewTopology(len(list))
	top.SomeAtoms(M, list)
	coords := v3.Zeros(len(list))
	coords.SomeVecs(M.Coords[0], list)
	var bfac [][]float64
	if len(M.Bfactors) > 0 {
		b := make([]float64, len(list))
		for i, v := range list {
			b[i] = M.Bfactors[0][v]
		}
		bfac = [][]float64{b}
	}
	return NewMolecule([]*v3.Matrix{coords}, top, bfac)
}
