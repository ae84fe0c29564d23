/*
 * doc.go, part of condeg.
 *
 * Copyright 2012 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
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

/*
Package chem is the structural model of condeg. It provides atom, molecule and
residue structures, PDB reading and writing, residue selections and the geometric
functions needed to analyze side chain environments.

	**Capabilities**

	Reads/writes PDB files, plain or compressed with gzip or zstd.

	Splits a protein into residues (sequence positions), each one with its own
	copy of atoms and coordinates, so it can be modified without touching the structure.

	Obtains phi, psi and omega backbone dihedrals.

	Selects residues by chain, number and name, and expands selections to
	the residues around them.

	Builds ideal backbones and places atoms from internal coordinates.

	Keeps the propensity table of the 18 amino acids rotamers are built for.

The sub-packages spatial, rotlib, rotamer and contact build on this one to obtain
contact degrees, crowdedness, free volume and freedom for each position. The
package condeg puts everything together.
*/
package chem
