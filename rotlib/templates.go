/*
 * templates.go, part of condeg.
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

package rotlib

import (
	"fmt"

	chem "github.com/rmera/condeg"
)

// icAtom defines a side chain atom by internal coordinates: its distance to c,
// the b-c-atom angle and the a-b-c-atom dihedral. If chi is not zero, the dihedral
// is the chi-th side chain dihedral plus torsion. Otherwise it is torsion. Angles in degrees.
type icAtom struct {
	name    string
	a, b, c string
	bond    float64
	angle   float64
	chi     int
	torsion float64
}

var cb = icAtom{"CB", "N", "C", "CA", 1.530, 110.1, 0, 122.7}

// templates holds the heavy side chain atoms of each amino acid, in the order
// they are built. Each atom only refers to atoms built before it.
var templates = [chem.NumAminoAcids][]icAtom{
	chem.ARG: {cb,
		{"CG", "N", "CA", "CB", 1.52, 113.83, 1, 0},
		{"CD", "CA", "CB", "CG", 1.52, 111.79, 2, 0},
		{"NE", "CB", "CG", "CD", 1.46, 111.68, 3, 0},
		{"CZ", "CG", "CD", "NE", 1.33, 124.79, 4, 0},
		{"NH1", "CD", "NE", "CZ", 1.33, 120.64, 0, 0},
		{"NH2", "CD", "NE", "CZ", 1.33, 119.63, 0, 180}},
	chem.ASN: {cb,
		{"CG", "N", "CA", "CB", 1.52, 112.62, 1, 0},
		{"OD1", "CA", "CB", "CG", 1.23, 120.85, 2, 0},
		{"ND2", "CA", "CB", "CG", 1.33, 116.48, 2, 180}},
	chem.ASP: {cb,
		{"CG", "N", "CA", "CB", 1.52, 113.06, 1, 0},
		{"OD1", "CA", "CB", "CG", 1.25, 119.22, 2, 0},
		{"OD2", "CA", "CB", "CG", 1.25, 118.22, 2, 180}},
	chem.CYS: {cb,
		{"SG", "N", "CA", "CB", 1.81, 113.82, 1, 0}},
	chem.GLN: {cb,
		{"CG", "N", "CA", "CB", 1.52, 113.75, 1, 0},
		{"CD", "CA", "CB", "CG", 1.52, 112.78, 2, 0},
		{"OE1", "CB", "CG", "CD", 1.24, 120.86, 3, 0},
		{"NE2", "CB", "CG", "CD", 1.33, 116.50, 3, 180}},
	chem.GLU: {cb,
		{"CG", "N", "CA", "CB", 1.52, 113.82, 1, 0},
		{"CD", "CA", "CB", "CG", 1.52, 113.31, 2, 0},
		{"OE1", "CB", "CG", "CD", 1.25, 119.02, 3, 0},
		{"OE2", "CB", "CG", "CD", 1.25, 118.08, 3, 180}},
	chem.HIS: {cb,
		{"CG", "N", "CA", "CB", 1.49, 113.74, 1, 0},
		{"ND1", "CA", "CB", "CG", 1.38, 122.85, 2, 0},
		{"CD2", "CA", "CB", "CG", 1.36, 130.61, 2, 180},
		{"CE1", "CB", "CG", "ND1", 1.32, 108.50, 0, 180},
		{"NE2", "CB", "CG", "CD2", 1.35, 108.50, 0, 180}},
	chem.ILE: {cb,
		{"CG1", "N", "CA", "CB", 1.527, 110.7, 1, 0},
		{"CG2", "N", "CA", "CB", 1.527, 110.4, 1, -122.5},
		{"CD1", "CA", "CB", "CG1", 1.52, 113.97, 2, 0}},
	chem.LEU: {cb,
		{"CG", "N", "CA", "CB", 1.53, 116.10, 1, 0},
		{"CD1", "CA", "CB", "CG", 1.524, 110.27, 2, 0},
		{"CD2", "CA", "CB", "CG", 1.525, 110.58, 2, -122.5}},
	chem.LYS: {cb,
		{"CG", "N", "CA", "CB", 1.52, 113.83, 1, 0},
		{"CD", "CA", "CB", "CG", 1.52, 111.79, 2, 0},
		{"CE", "CB", "CG", "CD", 1.52, 111.68, 3, 0},
		{"NZ", "CG", "CD", "CE", 1.49, 111.36, 4, 0}},
	chem.MET: {cb,
		{"CG", "N", "CA", "CB", 1.52, 113.68, 1, 0},
		{"SD", "CA", "CB", "CG", 1.81, 112.69, 2, 0},
		{"CE", "CB", "CG", "SD", 1.79, 100.61, 3, 0}},
	chem.PHE: {cb,
		{"CG", "N", "CA", "CB", 1.50, 113.85, 1, 0},
		{"CD1", "CA", "CB", "CG", 1.39, 120.0, 2, 0},
		{"CD2", "CA", "CB", "CG", 1.39, 120.0, 2, 180},
		{"CE1", "CB", "CG", "CD1", 1.39, 120.0, 0, 180},
		{"CE2", "CB", "CG", "CD2", 1.39, 120.0, 0, 180},
		{"CZ", "CG", "CD1", "CE1", 1.39, 120.0, 0, 0}},
	chem.SER: {cb,
		{"OG", "N", "CA", "CB", 1.417, 110.77, 1, 0}},
	chem.THR: {cb,
		{"OG1", "N", "CA", "CB", 1.43, 109.18, 1, 0},
		{"CG2", "N", "CA", "CB", 1.53, 111.13, 1, 120}},
	chem.TRP: {cb,
		{"CG", "N", "CA", "CB", 1.50, 114.10, 1, 0},
		{"CD1", "CA", "CB", "CG", 1.37, 127.07, 2, 0},
		{"CD2", "CA", "CB", "CG", 1.43, 126.66, 2, 180},
		{"NE1", "CB", "CG", "CD1", 1.38, 108.50, 0, 180},
		{"CE2", "CB", "CG", "CD2", 1.40, 108.50, 0, 180},
		{"CE3", "CB", "CG", "CD2", 1.40, 133.83, 0, 0},
		{"CZ2", "CG", "CD2", "CE2", 1.40, 120.0, 0, 180},
		{"CZ3", "CG", "CD2", "CE3", 1.40, 120.0, 0, 180},
		{"CH2", "CD2", "CE2", "CZ2", 1.40, 120.0, 0, 0}},
	chem.TYR: {cb,
		{"CG", "N", "CA", "CB", 1.51, 113.80, 1, 0},
		{"CD1", "CA", "CB", "CG", 1.39, 120.98, 2, 0},
		{"CD2", "CA", "CB", "CG", 1.39, 120.82, 2, 180},
		{"CE1", "CB", "CG", "CD1", 1.39, 120.0, 0, 180},
		{"CE2", "CB", "CG", "CD2", 1.39, 120.0, 0, 180},
		{"CZ", "CG", "CD1", "CE1", 1.39, 120.0, 0, 0},
		{"OH", "CD1", "CE1", "CZ", 1.39, 119.78, 0, 180}},
	chem.VAL: {cb,
		{"CG1", "N", "CA", "CB", 1.527, 110.7, 1, 0},
		{"CG2", "N", "CA", "CB", 1.527, 110.4, 1, -122.5}},
	chem.ALA: {cb},
}

// NumChis returns the number of side chain dihedrals of aa.
func NumChis(aa chem.AminoAcid) int {
	max := 0
	for _, v := range templates[aa] {
		if v.chi > max {
			max = v.chi
		}
	}
	return max
}

// PlaceChis replaces the side chain of res by that of aa, with the side chain dihedrals chis, in degrees.
// The residue needs N, CA and C atoms.
func PlaceChis(res *chem.Residue, aa chem.AminoAcid, chis []float64) (err error) {
	defer func() {
		if r := recover(); r != nil {
			p, ok := r.(chem.PanicMsg)
			if !ok {
				panic(r)
			}
			err = chem.NewError(fmt.Sprintf("%s in residue %s", string(p), res.PositionID()), false, chem.ErrNilData, "PlaceChis")
		}
	}()
	if aa < 0 || int(aa) >= chem.NumAminoAcids {
		return chem.NewError(fmt.Sprintf("Invalid amino acid %d", int(aa)), true, ErrBadLibrary, "PlaceChis")
	}
	if len(chis) != NumChis(aa) {
		return chem.NewError(fmt.Sprintf("%s needs %d chi angles, got %d", aa, NumChis(aa), len(chis)), true, ErrBadLibrary, "PlaceChis")
	}
	pos := make(map[string][3]float64, 16)
	for _, name := range []string{"N", "CA", "C"} {
		v, ok := res.Vec(name)
		if !ok {
			return chem.NewError(fmt.Sprintf("Residue %s lacks a %s atom", res.PositionID(), name), false, chem.ErrNilData, "PlaceChis")
		}
		pos[name] = v
	}
	tmpl := templates[aa]
	atoms := make([]*chem.Atom, len(tmpl))
	coords := make([][3]float64, len(tmpl))
	for i, ic := range tmpl {
		torsion := ic.torsion
		if ic.chi > 0 {
			torsion += chis[ic.chi-1]
		}
		coords[i] = chem.PlaceAtom(pos[ic.a], pos[ic.b], pos[ic.c], ic.bond, chem.Deg2Rad(ic.angle), chem.Deg2Rad(torsion))
		pos[ic.name] = coords[i]
		atoms[i] = &chem.Atom{Name: ic.name, Symbol: ic.name[:1], Occupancy: 1, AltLoc: ' '}
	}
	return chem.ErrDecorate(res.ReplaceSideChain(aa.String(), atoms, coords), "PlaceChis")
}
