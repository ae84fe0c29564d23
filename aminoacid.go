/*
 * aminoacid.go, part of condeg.
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
	"strconv"
	"strings"
)

// AminoAcid is one of the amino acids rotamers are built for.
// GLY and PRO are not included.
type AminoAcid int

const (
	ARG AminoAcid = iota
	ASN
	ASP
	CYS
	GLN
	GLU
	HIS
	ILE
	LEU
	LYS
	MET
	PHE
	SER
	THR
	TRP
	TYR
	VAL
	ALA
)

// NumAminoAcids is the number of rotameric amino acids.
const NumAminoAcids = 18

var aaNames = [NumAminoAcids]string{"ARG", "ASN", "ASP", "CYS", "GLN", "GLU", "HIS", "ILE", "LEU", "LYS", "MET", "PHE", "SER", "THR", "TRP", "TYR", "VAL", "ALA"}

// AminoAcids returns all the rotameric amino acids, in the order rotamers are built.
func AminoAcids() []AminoAcid {
	ret := make([]AminoAcid, NumAminoAcids)
	for i := range ret {
		ret[i] = AminoAcid(i)
	}
	return ret
}

// String returns the 3-letter name of the amino acid.
func (a AminoAcid) String() string {
	if a < 0 || int(a) >= NumAminoAcids {
		return fmt.Sprintf("AminoAcid(%d)", int(a))
	}
	return aaNames[a]
}

// OneLetter returns the one-letter code for the amino acid.
func (a AminoAcid) OneLetter() byte {
	return three2OneLetter[a.String()]
}

// ParseAminoAcid returns the AminoAcid with the 3-letter name s.
func ParseAminoAcid(s string) (AminoAcid, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	for i, v := range aaNames {
		if v == s {
			return AminoAcid(i), nil
		}
	}
	return -1, fmt.Errorf("%s is not a rotameric amino acid", s)
}

// Propensities is a table of amino acid propensities, in percent.
// It should not be modified after it's created.
type Propensities struct {
	p   [NumAminoAcids]float64
	set [NumAminoAcids]bool
}

// DefaultPropensities returns the natural abundance of each amino acid, in percent.
func DefaultPropensities() *Propensities {
	P := &Propensities{}
	for aa, v := range map[AminoAcid]float64{
		ALA: 7.73, CYS: 1.84, ASP: 5.82, GLU: 6.61, PHE: 4.05,
		HIS: 2.35, ILE: 5.66, LYS: 6.27, LEU: 8.83, MET: 2.08,
		ASN: 4.50, GLN: 3.94, ARG: 5.03, SER: 6.13, THR: 5.53,
		VAL: 6.91, TRP: 1.51, TYR: 3.54,
	} {
		P.p[aa] = v
		P.set[aa] = true
	}
	return P
}

// Of returns the propensity of aa. It returns a critical error wrapping
// ErrMissingPropensity if the table has no value for aa.
func (P *Propensities) Of(aa AminoAcid) (float64, error) {
	if aa < 0 || int(aa) >= NumAminoAcids || !P.set[aa] {
		return 0, NewError(fmt.Sprintf("No propensity for %s", aa), true, ErrMissingPropensity, "Propensities.Of")
	}
	return P.p[aa], nil
}

// Validate returns an error if any of the rotameric amino acids lacks a propensity.
func (P *Propensities) Validate() error {
	missing := make([]string, 0)
	for _, aa := range AminoAcids() {
		if !P.set[aa] {
			missing = append(missing, aa.String())
		}
	}
	if len(missing) > 0 {
		return NewError("No propensity for "+strings.Join(missing, ", "), true, ErrMissingPropensity, "Propensities.Validate")
	}
	return nil
}

// ReadPropensities reads a propensity table from r. Each non-empty line that doesn't start with #
// contains a 3-letter residue name and a non-negative value, separated by spaces. Names that are not
// rotameric amino acids, like GLY, are ignored. The table is not required to be complete here; use Validate.
func ReadPropensities(r io.Reader) (*Propensities, error) {
	P := &Propensities{}
	scanner := bufio.NewScanner(r)
	lineno := 0
	for scanner.Scan() {
		lineno++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			return nil, NewError(fmt.Sprintf("line %d: expected a name and a value", lineno), true, ErrBadPropensity, "ReadPropensities")
		}
		val, err := strconv.ParseFloat(fields[1], 64)
		if err != nil || val < 0 {
			return nil, NewError(fmt.Sprintf("line %d: invalid propensity %q", lineno, fields[1]), true, ErrBadPropensity, "ReadPropensities")
		}
		aa, err := ParseAminoAcid(fields[0])
		if err != nil {
			continue
		}
		P.p[aa] = val
		P.set[aa] = true
	}
	if err := scanner.Err(); err != nil {
		return nil, NewError(err.Error(), true, ErrBadPropensity, "ReadPropensities")
	}
	return P, nil
}

// ReadPropensitiesFile reads a propensity table from the file name.
func ReadPropensitiesFile(name string) (*Propensities, error) {
	f, err := OpenFile(name)
	if err != nil {
		return nil, NewError(err.Error(), true, ErrBadPropensity, "ReadPropensitiesFile", name)
	}
	defer f.Close()
	P, err := ReadPropensities(f)
	return P, ErrDecorate(err, "ReadPropensitiesFile "+name)
}
