/*
 * residue.go, part of condeg.
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
	"strconv"
	"strings"

	v3 "github.com/rmera/condeg/v3"
)

// UndefinedAngle is the value given to backbone dihedrals that can't be
// computed, for instance phi for the first residue of a chain.
const UndefinedAngle = 999.0

// PeptideBond is the largest C-N distance, in A, for which two residues
// are considered consecutive.
const PeptideBond = 2.0

// Residue is a sequence position: a residue with its own copy of
// its atoms and coordinates.
type Residue struct {
	Name   string
	ID     int
	ICode  byte
	Chain  string
	Index  int //the position of the residue in the list it was extracted to
	Atoms  []*Atom
	Coords *v3.Matrix
}

// Len returns the number of atoms in the residue.
func (R *Residue) Len() int {
	return len(R.Atoms)
}

// Atom returns the ith atom of the residue.
func (R *Residue) Atom(i int) *Atom {
	if i >= len(R.Atoms) {
		panic(ErrAtomOutOfRange)
	}
	return R.Atoms[i]
}

// Copy returns a deep copy of the residue. Changes to the copy
// don't affect the original.
func (R *Residue) Copy() *Residue {
	ret := *R
	ret.Atoms = make([]*Atom, len(R.Atoms))
	for i, v := range R.Atoms {
		ret.Atoms[i] = new(Atom)
		ret.Atoms[i].Copy(v)
	}
	if R.Coords != nil {
		ret.Coords = v3.Zeros(R.Coords.NVecs())
		ret.Coords.Copy(R.Coords)
	}
	return &ret
}

// AtomIndex returns the index of the first atom called name in the residue, or -1.
func (R *Residue) AtomIndex(name string) int {
	for i, v := range R.Atoms {
		if v.Name == name {
			return i
		}
	}
	return -1
}

// Vec returns the coordinates of the atom called name, and false
// if there is no such atom.
func (R *Residue) Vec(name string) ([3]float64, bool) {
	i := R.AtomIndex(name)
	if i < 0 {
		return [3]float64{}, false
	}
	return R.Coords.Vec(i), true
}

// HasBackboneFrame returns true if the residue has N, CA and C atoms.
func (R *Residue) HasBackboneFrame() bool {
	return R.AtomIndex("N") >= 0 && R.AtomIndex("CA") >= 0 && R.AtomIndex("C") >= 0
}

// PositionID returns the chain and number that identify the
// position, as in "A,12". An insertion code is appended to the number.
func (R *Residue) PositionID() string {
	id := R.Chain + "," + strconv.Itoa(R.ID)
	if R.ICode != ' ' && R.ICode != 0 {
		id += string(R.ICode)
	}
	return id
}

// Representative returns the coordinates of the CA atom of the residue. If there is no CA,
// the centroid of whichever of N, CA, C, O are present is used, and if none is,
// the centroid of the whole residue. The second value is true if the point was synthesized.
func (R *Residue) Representative() ([3]float64, bool) {
	if ca, ok := R.Vec("CA"); ok {
		return ca, false
	}
	bb := make([]int, 0, 4)
	for _, name := range []string{"N", "C", "O"} {
		if i := R.AtomIndex(name); i >= 0 {
			bb = append(bb, i)
		}
	}
	if len(bb) == 0 {
		if R.Len() == 0 {
			return [3]float64{}, true
		}
		return Centroid(R.Coords), true
	}
	c := v3.Zeros(len(bb))
	c.SomeVecs(R.Coords, bb)
	return Centroid(c), true
}

// SideChain returns the indexes of the heavy atoms in the residue that
// are not part of the backbone. CB is included.
func (R *Residue) SideChain() []int {
	ret := make([]int, 0, len(R.Atoms))
	for i, v := range R.Atoms {
		if !IsBackbone(v.Name) && !IsHydrogen(v) {
			ret = append(ret, i)
		}
	}
	return ret
}

// ReplaceSideChain removes every atom from the residue except for the heavy backbone atoms,
// and adds the atoms given, with coordinates coords. The residue is renamed to name.
func (R *Residue) ReplaceSideChain(name string, atoms []*Atom, coords [][3]float64) error {
	if len(atoms) != len(coords) {
		return NewError(fmt.Sprintf("%d side chain atoms for %d coordinates", len(atoms), len(coords)), true, ErrNilData, "Residue.ReplaceSideChain")
	}
	keep := make([]int, 0, 5)
	for i, v := range R.Atoms {
		if IsBackbone(v.Name) && !IsHydrogen(v) {
			keep = append(keep, i)
		}
	}
	if len(keep) == 0 {
		return NewError("No backbone atoms to keep", true, ErrNilData, "Residue.ReplaceSideChain")
	}
	newats := make([]*Atom, 0, len(keep)+len(atoms))
	newcoords := v3.Zeros(len(keep) + len(atoms))
	for i, v := range keep {
		newats = append(newats, R.Atoms[v])
		newcoords.SetVec(i, R.Coords.Vec(v))
	}
	for i, v := range atoms {
		at := new(Atom)
		at.Copy(v)
		at.MolID = R.ID
		at.ICode = R.ICode
		at.Chain = R.Chain
		newats = append(newats, at)
		newcoords.SetVec(len(keep)+i, coords[i])
	}
	R.Name = name
	for _, v := range newats {
		v.MolName = name
		v.MolName1 = three2OneLetter[name]
	}
	R.Atoms = newats
	R.Coords = newcoords
	return nil
}

// Residues splits the atoms of mol, with coordinates coords, into residues. Consecutive
// atoms with the same chain, residue number and insertion code form a residue.
// The residues own copies of the atoms and coordinates.
func Residues(mol Atomer, coords *v3.Matrix) []*Residue {
	ret := make([]*Residue, 0, mol.Len()/8+1)
	start := 0
	for i := 1; i <= mol.Len(); i++ {
		if i < mol.Len() && sameResidue(mol.Atom(i), mol.Atom(start)) {
			continue
		}
		list := make([]int, 0, i-start)
		for j := start; j < i; j++ {
			list = append(list, j)
		}
		top := NewTopology(len(list))
		top.SomeAtoms(mol, list)
		c := v3.Zeros(len(list))
		c.SomeVecs(coords, list)
		first := top.Atoms[0]
		ret = append(ret, &Residue{
			Name:   first.MolName,
			ID:     first.MolID,
			ICode:  first.ICode,
			Chain:  first.Chain,
			Index:  len(ret),
			Atoms:  top.Atoms,
			Coords: c,
		})
		start = i
	}
	return ret
}

// Join returns a one-frame molecule with copies of the atoms and coordinates of
// the residues in res, in order.
func Join(res []*Residue) (*Molecule, error) {
	n := 0
	for _, r := range res {
		n += r.Len()
	}
	if n == 0 {
		return nil, NewError("No atoms to join", true, ErrNilData, "Join")
	}
	top := NewTopology(n)
	coords := v3.Zeros(n)
	i := 0
	for _, r := range res {
		for j, at := range r.Atoms {
			c := new(Atom)
			c.Copy(at)
			top.AppendAtom(c)
			coords.SetVec(i, r.Coords.Vec(j))
			i++
		}
	}
	ret, err := NewMolecule([]*v3.Matrix{coords}, top, nil)
	return ret, ErrDecorate(err, "Join")
}

func sameResidue(a, b *Atom) bool {
	return a.Chain == b.Chain && a.MolID == b.MolID && a.ICode == b.ICode
}

// ProteinOnly returns a molecule with only the atoms that belong to protein residues.
// The first frame of mol is used.
func ProteinOnly(mol *Molecule) (*Molecule, error) {
	list := make([]int, 0, mol.Len())
	for i := 0; i < mol.Len(); i++ {
		if IsProteinResidue(mol.Atom(i).MolName) {
			list = append(list, i)
		}
	}
	if len(list) == 0 {
		return nil, NewError("No protein atoms found", true, ErrNoSelection, "ProteinOnly")
	}
	ret, err := mol.Subset(list)
	return ret, ErrDecorate(err, "ProteinOnly")
}

var backboneNames = []string{"N", "CA", "C", "O", "OXT", "OT1", "OT2", "H", "HN", "HA", "HA2", "HA3", "H1", "H2", "H3"}

// IsBackbone returns true if name is the name of a backbone atom.
func IsBackbone(name string) bool {
	return isInString(backboneNames, name)
}

// IsHydrogen returns true if at is a hydrogen atom.
func IsHydrogen(at *Atom) bool {
	if at.Symbol != "" {
		return !Heavy(at.Symbol)
	}
	name := strings.TrimLeft(at.Name, "0123456789")
	return strings.HasPrefix(name, "H")
}

// Sequence returns the residue names of res, in order.
func Sequence(res []*Residue) []string {
	ret := make([]string, len(res))
	for i, v := range res {
		ret[i] = v.Name
	}
	return ret
}
