/*
 * files.go, part of condeg.
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
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	v3 "github.com/rmera/condeg/v3"
)

// three2OneLetter maps the PDB residue names this package knows about to their one-letter code.
var three2OneLetter = map[string]byte{
	"SER": 'S',
	"THR": 'T',
	"ASN": 'N',
	"GLN": 'Q',
	"SEC": 'U', //Selenocysteine!
	"CYS": 'C',
	"GLY": 'G',
	"PRO": 'P',
	"ALA": 'A',
	"VAL": 'V',
	"ILE": 'I',
	"LEU": 'L',
	"MET": 'M',
	"PHE": 'F',
	"TYR": 'Y',
	"TRP": 'W',
	"ARG": 'R',
	"HIS": 'H',
	"LYS": 'K',
	"ASP": 'D',
	"GLU": 'E',
	"HSD": 'H',
	"HSE": 'H',
	"HSC": 'H',
	"HSP": 'H',
	"HIP": 'H',
	"MSE": 'M',
	"CSO": 'C',
	"SEP": 'S',
	"TPO": 'T',
	"PTR": 'Y',
}

// IsProteinResidue returns true if name is one of the residue names considered
// protein residues.
func IsProteinResidue(name string) bool {
	_, ok := three2OneLetter[name]
	return ok
}

// symbolFromName tries to guess a chemical element symbol from a PDB atom name. Mostly based on AMBER names.
// It only deals with some common bio-elements.
func symbolFromName(name string) (string, error) {
	symbol := ""
	if len(name) == 0 {
		return "", fmt.Errorf("empty atom name")
	}
	if name[0] >= '0' && name[0] <= '9' {
		name = name[1:]
		if len(name) == 0 {
			return "", fmt.Errorf("atom name is a number")
		}
	}
	if len(name) == 4 || name[0] == 'H' { //I thiiink only Hs can have 4-char names in amber.
		symbol = "H"
		//it name has more than one character but less than four and does not begin with H
	} else if len(name) > 1 {
		if name[0:2] == "CA" {
			symbol = "C"
		} else if name[0:2] == "CL" {
			symbol = "Cl"
		} else if name[0:2] == "BR" {
			symbol = "Br"
		} else if name[0:2] == "NA" {
			symbol = "Na"
		} else if name[0:2] == "SE" {
			symbol = "Se"
		} else if name[0:2] == "ZN" {
			symbol = "Zn"
		} else if name[0:2] == "FE" {
			symbol = "Fe"
		} else {
			symbol = string(name[0])
		}
	} else {
		symbol = name
	}
	if _, ok := symbolMass[symbol]; !ok {
		return symbol, fmt.Errorf("couldn't guess symbol from PDB name: %s", name)
	}
	return symbol, nil
}

// readFullPDBLine parses a valid ATOM or HETATM line of a PDB file, returns an Atom
// object with the info except for the coordinates, which are returned separately.
func readFullPDBLine(line string, contlines int) (*Atom, []float64, error) {
	if len(line) < 54 {
		return nil, nil, NewError(fmt.Sprintf("line %d too short", contlines), true, ErrFileFormat, "readFullPDBLine")
	}
	atom := new(Atom)
	coords := make([]float64, 3)
	err := make([]error, 6)
	atom.Het = strings.HasPrefix(line, "HETATM")
	atom.ID, err[0] = strconv.Atoi(strings.TrimSpace(line[6:12]))
	atom.Name = strings.TrimSpace(line[12:16])
	atom.AltLoc = line[16]
	atom.MolName = strings.TrimSpace(line[17:20])
	atom.MolName1 = three2OneLetter[atom.MolName]
	atom.Chain = string(line[21])
	atom.MolID, err[1] = strconv.Atoi(strings.TrimSpace(line[22:26]))
	atom.ICode = line[26]
	//Here we shouldn't need TrimSpace, but I keep it just in case someone
	// doesn's use all the fields when writting a PDB*/
	coords[0], err[2] = strconv.ParseFloat(strings.TrimSpace(line[30:38]), 64)
	coords[1], err[3] = strconv.ParseFloat(strings.TrimSpace(line[38:46]), 64)
	coords[2], err[4] = strconv.ParseFloat(strings.TrimSpace(line[46:54]), 64)
	atom.Occupancy = 1
	if len(line) >= 60 && strings.TrimSpace(line[54:60]) != "" {
		atom.Occupancy, err[5] = strconv.ParseFloat(strings.TrimSpace(line[54:60]), 64)
	}
	if len(line) >= 66 {
		//The b-factor is not needed for anything, so a bad one is just ignored.
		atom.Bfactor, _ = strconv.ParseFloat(strings.TrimSpace(line[60:66]), 64)
	}
	if len(line) >= 78 {
		atom.Symbol = strings.TrimSpace(line[76:78])
		if len(atom.Symbol) == 2 {
			atom.Symbol = atom.Symbol[:1] + strings.ToLower(atom.Symbol[1:])
		}
	}
	if atom.Symbol == "" {
		atom.Symbol, _ = symbolFromName(atom.Name) //an unknown symbol is not fatal here.
	}
	for i := range err {
		if err[i] != nil {
			return nil, nil, NewError(fmt.Sprintf("Could not read line %d: %s", contlines, err[i].Error()), true, ErrFileFormat, "readFullPDBLine")
		}
	}
	if atom.ICode == 0 {
		atom.ICode = ' '
	}
	return atom, coords, nil
}

// PDBRead reads the atomic entries of a PDB stream. Only the first alternate location
// of each atom is kept. Several models become several frames of the returned molecule;
// the topology is taken from the first one.
func PDBRead(r io.Reader) (*Molecule, error) {
	molecule := make([]*Atom, 0, 1000)
	frames := make([][]float64, 1)
	frames[0] = make([]float64, 0, 3000)
	bfactors := make([][]float64, 1)
	bfactors[0] = make([]float64, 0, 1000)
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 1024*1024), 1024*1024)
	frame := 0
	contlines := 1
	natoms := 0
	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(line, "END") {
			if !strings.HasPrefix(line, "ENDMDL") {
				break
			}
			if len(frames[frame]) != 0 {
				frame++
				frames = append(frames, make([]float64, 0, len(frames[0])))
				bfactors = append(bfactors, make([]float64, 0, len(bfactors[0])))
			}
			contlines++
			continue
		}
		if !strings.HasPrefix(line, "ATOM") && !strings.HasPrefix(line, "HETATM") {
			contlines++
			continue
		}
		atom, coords, err := readFullPDBLine(line, contlines)
		if err != nil {
			return nil, ErrDecorate(err, "PDBRead")
		}
		contlines++
		if atom.AltLoc != ' ' && atom.AltLoc != 'A' && atom.AltLoc != '1' {
			continue
		}
		if frame == 0 {
			molecule = append(molecule, atom)
			natoms++
		}
		frames[frame] = append(frames[frame], coords...)
		bfactors[frame] = append(bfactors[frame], atom.Bfactor)
	}
	if err := scanner.Err(); err != nil {
		return nil, NewError(err.Error(), true, ErrFileFormat, "PDBRead")
	}
	if len(frames[len(frames)-1]) == 0 {
		frames = frames[:len(frames)-1]
		bfactors = bfactors[:len(bfactors)-1]
	}
	if natoms == 0 {
		return nil, NewError("No atoms read", true, ErrFileFormat, "PDBRead")
	}
	coords := make([]*v3.Matrix, 0, len(frames))
	for i, f := range frames {
		if len(f) != natoms*3 {
			return nil, NewError(fmt.Sprintf("Model %d has %d atoms, the first has %d", i+1, len(f)/3, natoms), true, ErrFileFormat, "PDBRead")
		}
		m, err := v3.NewMatrix(f)
		if err != nil {
			return nil, ErrDecorate(err, "PDBRead")
		}
		coords = append(coords, m)
	}
	top := &Topology{Atoms: molecule}
	mol, err := NewMolecule(coords, top, bfactors)
	if err != nil {
		return nil, ErrDecorate(err, "PDBRead")
	}
	return mol, nil
}

// PDBFileRead reads the PDB file pdbname. Files ending in .gz or .zst are
// decompressed on the fly.
func PDBFileRead(pdbname string) (*Molecule, error) {
	pdbfile, err := OpenFile(pdbname)
	if err != nil {
		return nil, NewError(err.Error(), true, err, "PDBFileRead", pdbname)
	}
	defer pdbfile.Close()
	mol, err := PDBRead(pdbfile)
	if err != nil {
		return nil, ErrDecorate(err, "PDBFileRead "+pdbname)
	}
	return mol, nil
}

// PDBWrite writes the atoms in mol, with coordinates coords, to out in PDB format.
// If bfact is nil, the b-factors stored in the atoms are used.
func PDBWrite(out io.Writer, coords *v3.Matrix, mol Atomer, bfact []float64) error {
	if coords.NVecs() != mol.Len() || (bfact != nil && len(bfact) != mol.Len()) {
		return NewError("Ref and Coords and/or Bfactors dont have the same number of atoms", true, ErrNilData, "PDBWrite")
	}
	iowriter := bufio.NewWriter(out)
	chainprev := ""
	for i := 0; i < mol.Len(); i++ {
		at := mol.Atom(i)
		if chainprev != "" && at.Chain != chainprev {
			if _, err := iowriter.WriteString("TER\n"); err != nil {
				return NewError(err.Error(), true, err, "PDBWrite")
			}
		}
		chainprev = at.Chain
		if _, err := iowriter.WriteString(pdbLine(i, coords, at, bfact)); err != nil {
			return NewError(err.Error(), true, err, "PDBWrite")
		}
	}
	if _, err := iowriter.WriteString("END\n"); err != nil {
		return NewError(err.Error(), true, err, "PDBWrite")
	}
	if err := iowriter.Flush(); err != nil {
		return NewError(err.Error(), true, err, "PDBWrite")
	}
	return nil
}

func pdbLine(i int, coords *v3.Matrix, at *Atom, bfact []float64) string {
	first := "ATOM"
	if at.Het {
		first = "HETATM"
	}
	//4 chars for the atom name are used when hydrogens are included.
	formatstring := "%-6s%5d  %-3s%c%3s %1s%4d%c   %8.3f%8.3f%8.3f%6.2f%6.2f          %2s  \n"
	if len(at.Name) == 4 {
		formatstring = "%-6s%5d %-4s%c%3s %1s%4d%c   %8.3f%8.3f%8.3f%6.2f%6.2f          %2s  \n"
	}
	b := at.Bfactor
	if bfact != nil {
		b = bfact[i]
	}
	alt := at.AltLoc
	if alt == 0 {
		alt = ' '
	}
	icode := at.ICode
	if icode == 0 {
		icode = ' '
	}
	chain := at.Chain
	if chain == "" {
		chain = " "
	}
	c := coords.Vec(i)
	return fmt.Sprintf(formatstring, first, at.ID%100000, at.Name, alt, at.MolName, chain[:1], at.MolID%10000, icode, c[0], c[1], c[2], at.Occupancy, b, strings.ToUpper(at.Symbol))
}

// PDBFileWrite writes a PDB file with name pdbname. Names ending in .gz or
// .zst produce compressed files.
func PDBFileWrite(pdbname string, coords *v3.Matrix, mol Atomer, bfact []float64) error {
	out, err := CreateFile(pdbname)
	if err != nil {
		return NewError(err.Error(), true, err, "PDBFileWrite", pdbname)
	}
	if err := PDBWrite(out, coords, mol, bfact); err != nil {
		out.Close()
		return ErrDecorate(err, "PDBFileWrite "+pdbname)
	}
	if err := out.Close(); err != nil {
		return NewError(err.Error(), true, err, "PDBFileWrite", pdbname)
	}
	return nil
}

/****Compressed files****/

// compressed closes both the (de)compressor and the file under it.
type compressed struct {
	io.Reader
	io.Writer
	closer func() error
	file   *os.File
}

func (c *compressed) Close() error {
	var err error
	if c.closer != nil {
		err = c.closer()
	}
	if err2 := c.file.Close(); err == nil {
		err = err2
	}
	return err
}

// OpenFile opens name for reading. Files with the .gz extension are read through a gzip
// decompressor, and those with the .zst extension, through a zstd one.
func OpenFile(name string) (io.ReadCloser, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	switch {
	case strings.HasSuffix(name, ".gz"):
		gz, err := gzip.NewReader(f)
		if err != nil {
			f.Close()
			return nil, err
		}
		return &compressed{Reader: gz, closer: gz.Close, file: f}, nil
	case strings.HasSuffix(name, ".zst"):
		zs, err := zstd.NewReader(f)
		if err != nil {
			f.Close()
			return nil, err
		}
		return &compressed{Reader: zs, closer: func() error { zs.Close(); return nil }, file: f}, nil
	}
	return f, nil
}

// CreateFile creates name for writing, compressing the content
// if the name ends in .gz or .zst.
func CreateFile(name string) (io.WriteCloser, error) {
	f, err := os.Create(name)
	if err != nil {
		return nil, err
	}
	switch {
	case strings.HasSuffix(name, ".gz"):
		gz := gzip.NewWriter(f)
		return &compressed{Writer: gz, closer: gz.Close, file: f}, nil
	case strings.HasSuffix(name, ".zst"):
		zs, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedBestCompression))
		if err != nil {
			f.Close()
			return nil, err
		}
		return &compressed{Writer: zs, closer: zs.Close, file: f}, nil
	}
	return f, nil
}
