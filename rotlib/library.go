/*
 * library.go, part of condeg.
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

// Package rotlib provides the rotamer library service: how many rotamers each amino acid
// has at a given backbone conformation, how likely each one is, and how to build them.
package rotlib

import (
	"bufio"
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/edsrzf/mmap-go"
	chem "github.com/rmera/condeg"
)

// ErrBadLibrary is wrapped by errors from malformed rotamer libraries.
var ErrBadLibrary = errors.New("malformed rotamer library")

// Library is a rotamer library. Implementations must be safe for concurrent use.
type Library interface {
	//NumRotamers returns the number of rotamers of aa for the backbone dihedrals phi and psi, in degrees.
	NumRotamers(aa chem.AminoAcid, phi, psi float64) int
	//Probability returns the probability of the ith rotamer of aa given phi and psi.
	Probability(aa chem.AminoAcid, i int, phi, psi float64) float64
	//Place replaces the side chain of res with the ith rotamer of aa given phi and psi.
	Place(res *chem.Residue, aa chem.AminoAcid, i int, phi, psi float64) error
}

type rot struct {
	prob float64
	chis []float64
}

// bin is the set of rotamers for one amino acid and backbone region.
type bin struct {
	phi, psi    float64
	independent bool
	rots        []rot
}

// ChiLibrary is a rotamer library where each rotamer is a set of side chain dihedrals.
// Rotamers can be backbone-independent or given for (phi, psi) bins. When an amino acid
// has bins, the nearest one to the requested backbone dihedrals is used.
type ChiLibrary struct {
	bins [chem.NumAminoAcids][]*bin
	name string
}

//go:embed default.rotlib
var defaultLib []byte

// Default returns the backbone-independent library embedded in the package.
func Default() *ChiLibrary {
	L, err := Parse(bytes.NewReader(defaultLib))
	if err != nil {
		panic("rotlib: the embedded library is broken: " + err.Error())
	}
	L.name = "default"
	return L
}

// Open reads the library in the file name. The file is memory-mapped while parsing.
func Open(name string) (*ChiLibrary, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, chem.NewError(err.Error(), true, ErrBadLibrary, "rotlib.Open", name)
	}
	defer f.Close()
	info, err := f.Stat()
	if err != nil {
		return nil, chem.NewError(err.Error(), true, ErrBadLibrary, "rotlib.Open", name)
	}
	if info.Size() == 0 {
		return nil, chem.NewError("Empty library file", true, ErrBadLibrary, "rotlib.Open", name)
	}
	m, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		return nil, chem.NewError(err.Error(), true, ErrBadLibrary, "rotlib.Open", name)
	}
	defer m.Unmap()
	L, err := Parse(bytes.NewReader(m))
	if err != nil {
		return nil, chem.ErrDecorate(err, "rotlib.Open "+name)
	}
	L.name = name
	return L, nil
}

// Parse reads a library from r. Each line that is not empty or a comment (starting with #) is a rotamer:
//
//	AA phi psi probability chi1 chi2 ...
//
// where phi and psi are "*" for backbone-independent rotamers. The probabilities
// for each amino acid and bin are normalized to add up to 1.
func Parse(r io.Reader) (*ChiLibrary, error) {
	L := &ChiLibrary{}
	scanner := bufio.NewScanner(r)
	lineno := 0
	nrots := 0
	for scanner.Scan() {
		lineno++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 4 {
			return nil, badLine(lineno, "expected at least 4 fields")
		}
		aa, err := chem.ParseAminoAcid(fields[0])
		if err != nil {
			return nil, badLine(lineno, err.Error())
		}
		b := &bin{}
		if fields[1] == "*" || fields[2] == "*" {
			if fields[1] != fields[2] {
				return nil, badLine(lineno, "phi and psi must both be * or numbers")
			}
			b.independent = true
		} else {
			b.phi, err = strconv.ParseFloat(fields[1], 64)
			if err == nil {
				b.psi, err = strconv.ParseFloat(fields[2], 64)
			}
			if err != nil {
				return nil, badLine(lineno, err.Error())
			}
		}
		var ro rot
		ro.prob, err = strconv.ParseFloat(fields[3], 64)
		if err != nil || ro.prob < 0 || math.IsNaN(ro.prob) {
			return nil, badLine(lineno, "invalid probability "+fields[3])
		}
		if len(fields)-4 != NumChis(aa) {
			return nil, badLine(lineno, fmt.Sprintf("%s needs %d chi angles, got %d", aa, NumChis(aa), len(fields)-4))
		}
		for _, v := range fields[4:] {
			chi, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return nil, badLine(lineno, err.Error())
			}
			ro.chis = append(ro.chis, chi)
		}
		if prev := L.find(aa, b); prev != nil {
			b = prev
		} else {
			L.bins[aa] = append(L.bins[aa], b)
		}
		b.rots = append(b.rots, ro)
		nrots++
	}
	if err := scanner.Err(); err != nil {
		return nil, chem.NewError(err.Error(), true, ErrBadLibrary, "rotlib.Parse")
	}
	if nrots == 0 {
		return nil, chem.NewError("No rotamers in library", true, ErrBadLibrary, "rotlib.Parse")
	}
	for _, bins := range L.bins {
		for _, b := range bins {
			total := 0.0
			for _, r := range b.rots {
				total += r.prob
			}
			if total <= 0 {
				continue
			}
			for i := range b.rots {
				b.rots[i].prob /= total
			}
		}
	}
	return L, nil
}

func badLine(lineno int, msg string) error {
	return chem.NewError(fmt.Sprintf("line %d: %s", lineno, msg), true, ErrBadLibrary, "rotlib.Parse")
}

func (L *ChiLibrary) find(aa chem.AminoAcid, b *bin) *bin {
	for _, v := range L.bins[aa] {
		if v.independent == b.independent && (v.independent || (v.phi == b.phi && v.psi == b.psi)) {
			return v
		}
	}
	return nil
}

// String returns the name of the library.
func (L *ChiLibrary) String() string {
	return L.name
}

// angdiff is the absolute difference between 2 angles in degrees, taking periodicity into account.
func angdiff(a, b float64) float64 {
	d := math.Mod(math.Abs(a-b), 360)
	if d > 180 {
		d = 360 - d
	}
	return d
}

// lookup returns the bin for aa and the given backbone dihedrals. Backbone-dependent bins
// are preferred, and the nearest one is used. Undefined dihedrals are not taken
// into account when looking for the nearest bin, and if there is a backbone-independent set
// it is used instead.
func (L *ChiLibrary) lookup(aa chem.AminoAcid, phi, psi float64) *bin {
	if aa < 0 || int(aa) >= chem.NumAminoAcids {
		return nil
	}
	undefined := phi == chem.UndefinedAngle || psi == chem.UndefinedAngle
	var best, independent *bin
	bestd := math.Inf(1)
	for _, b := range L.bins[aa] {
		if b.independent {
			independent = b
			continue
		}
		var d float64
		if phi != chem.UndefinedAngle {
			d += math.Pow(angdiff(phi, b.phi), 2)
		}
		if psi != chem.UndefinedAngle {
			d += math.Pow(angdiff(psi, b.psi), 2)
		}
		if d < bestd {
			best = b
			bestd = d
		}
	}
	if independent != nil && (best == nil || undefined) {
		return independent
	}
	return best
}

// NumRotamers returns the number of rotamers of aa for the backbone dihedrals phi and psi.
func (L *ChiLibrary) NumRotamers(aa chem.AminoAcid, phi, psi float64) int {
	b := L.lookup(aa, phi, psi)
	if b == nil {
		return 0
	}
	return len(b.rots)
}

// Probability returns the probability of the ith rotamer of aa given phi and psi, or 0 if
// there is no such rotamer.
func (L *ChiLibrary) Probability(aa chem.AminoAcid, i int, phi, psi float64) float64 {
	b := L.lookup(aa, phi, psi)
	if b == nil || i < 0 || i >= len(b.rots) {
		return 0
	}
	return b.rots[i].prob
}

// Chis returns a copy of the side chain dihedrals of the ith rotamer of aa, given phi and psi.
func (L *ChiLibrary) Chis(aa chem.AminoAcid, i int, phi, psi float64) ([]float64, error) {
	b := L.lookup(aa, phi, psi)
	if b == nil || i < 0 || i >= len(b.rots) {
		return nil, chem.NewError(fmt.Sprintf("No rotamer %d for %s", i, aa), true, ErrBadLibrary, "ChiLibrary.Chis")
	}
	return append([]float64(nil), b.rots[i].chis...), nil
}

// Place replaces the side chain of res by the ith rotamer of aa, given phi and psi.
func (L *ChiLibrary) Place(res *chem.Residue, aa chem.AminoAcid, i int, phi, psi float64) error {
	chis, err := L.Chis(aa, i, phi, psi)
	if err != nil {
		return chem.ErrDecorate(err, "ChiLibrary.Place")
	}
	return chem.ErrDecorate(PlaceChis(res, aa, chis), "ChiLibrary.Place")
}
