/*
 * builder.go, part of condeg.
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

	v3 "github.com/rmera/condeg/v3"
)

// Ideal backbone geometry, from Engh & Huber.
const (
	bondNCA   = 1.458
	bondCAC   = 1.525
	bondCN    = 1.329
	bondCO    = 1.231
	angleNCAC = 111.2
	angleCACN = 116.2
	angleCNCA = 121.7
	angleCACO = 120.5
)

// BuildBackbone builds the heavy backbone atoms (N, CA, C, O) of a chain with the given residue
// names and phi, psi angles (in degrees) for each residue. Omega is always 180.
// The phi of the first residue and the psi of the last are only used to place its O atom.
func BuildBackbone(chain string, names []string, phipsi [][2]float64) (*Molecule, error) {
	if len(names) == 0 || len(names) != len(phipsi) {
		return nil, NewError(fmt.Sprintf("%d residue names and %d angle pairs", len(names), len(phipsi)), true, ErrNilData, "BuildBackbone")
	}
	top := NewTopology(len(names) * 4)
	data := make([]float64, 0, len(names)*12)
	var n, ca, c [3]float64
	for i, name := range names {
		if i == 0 {
			n = [3]float64{0, 0, 0}
			ca = [3]float64{bondNCA, 0, 0}
			c = PlaceAtom([3]float64{0, 1, 0}, n, ca, bondCAC, Deg2Rad(angleNCAC), Deg2Rad(180))
		} else {
			nprev, caprev, cprev := n, ca, c
			n = PlaceAtom(nprev, caprev, cprev, bondCN, Deg2Rad(angleCACN), Deg2Rad(phipsi[i-1][1]))
			ca = PlaceAtom(caprev, cprev, n, bondNCA, Deg2Rad(angleCNCA), Deg2Rad(180))
			c = PlaceAtom(cprev, n, ca, bondCAC, Deg2Rad(angleNCAC), Deg2Rad(phipsi[i][0]))
		}
		o := PlaceAtom(n, ca, c, bondCO, Deg2Rad(angleCACO), Deg2Rad(phipsi[i][1]+180))
		for j, at := range [][3]float64{n, ca, c, o} {
			atname := []string{"N", "CA", "C", "O"}[j]
			top.AppendAtom(&Atom{
				Name:      atname,
				ID:        top.Len() + 1,
				MolName:   name,
				MolName1:  three2OneLetter[name],
				MolID:     i + 1,
				ICode:     ' ',
				Chain:     chain,
				AltLoc:    ' ',
				Occupancy: 1,
				Symbol:    atname[:1],
			})
			data = append(data, at[:]...)
		}
	}
	coords, err := v3.NewMatrix(data)
	if err != nil {
		return nil, ErrDecorate(err, "BuildBackbone")
	}
	return NewMolecule([]*v3.Matrix{coords}, top, nil)
}
