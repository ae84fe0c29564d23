/*
 * ramacalc.go, part of condeg.
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

// BackboneAngles returns, for each residue, its phi, psi and omega dihedrals, in degrees.
// Omega is the CA(i-1), C(i-1), N(i), CA(i) dihedral. Angles that can't be obtained,
// because of missing atoms or because the neighbouring residue is not bonded to the
// residue, are set to UndefinedAngle.
func BackboneAngles(res []*Residue) [][3]float64 {
	ret := make([][3]float64, len(res))
	for i, r := range res {
		ret[i] = [3]float64{UndefinedAngle, UndefinedAngle, UndefinedAngle}
		n, okn := r.Vec("N")
		ca, okca := r.Vec("CA")
		c, okc := r.Vec("C")
		if !okn || !okca || !okc {
			continue
		}
		if i > 0 && bonded(res[i-1], r) {
			cprev, _ := res[i-1].Vec("C")
			ret[i][0] = Rad2Deg(DihedralPoints(cprev, n, ca, c))
			if caprev, ok := res[i-1].Vec("CA"); ok {
				ret[i][2] = Rad2Deg(DihedralPoints(caprev, cprev, n, ca))
			}
		}
		if i < len(res)-1 && bonded(r, res[i+1]) {
			npost, _ := res[i+1].Vec("N")
			ret[i][1] = Rad2Deg(DihedralPoints(n, ca, c, npost))
		}
	}
	return ret
}

// bonded returns true if the C of prev is bonded to the N of next.
func bonded(prev, next *Residue) bool {
	if prev.Chain != next.Chain {
		return false
	}
	c, okc := prev.Vec("C")
	n, okn := next.Vec("N")
	return okc && okn && Distance(c, n) <= PeptideBond
}
