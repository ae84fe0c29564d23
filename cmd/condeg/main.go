/*
 * main.go, part of condeg.
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

// Condeg identifies inter-positional contacts and environment information
// from input PDB file(s).
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	chem "github.com/rmera/condeg"
	"github.com/rmera/condeg/chemplot"
	"github.com/rmera/condeg/condeg"
	"github.com/rmera/condeg/report"
	"github.com/rmera/condeg/rotlib"
)

type config struct {
	p, pL, o, oL, opdb, opdbL string
	rLib, rout, psel, sel     string
	aaprop, plot, hist        string
	expand, clash, cont, dcut float64
	pp, omg, verb, pf         bool
	ren, nc                   bool
	cpus, bins                int
}

func usage() {
	fmt.Fprintf(os.Stderr, "Identifies inter-positional contacts and environment information from input PDB file(s).\n\n")
	fmt.Fprintf(os.Stderr, "Usage: %s --p file.pdb | --pL list [options]\n\nOptions:\n", filepath.Base(os.Args[0]))
	flag.PrintDefaults()
}

func parseFlags() *config {
	c := new(config)
	flag.StringVar(&c.p, "p", "", "input PDB file. It can be compressed with gzip or zstd (.gz or .zst extension).")
	flag.StringVar(&c.pL, "pL", "", "a file with a list of PDB files. Either --p or --pL must be given.")
	flag.StringVar(&c.o, "o", "", "output file name for writing contacts. If not given, will write to standard output. With several input structures, '.fN' is added to the name for the Nth structure.")
	flag.StringVar(&c.oL, "oL", "", "a file with a list of contact file names (one per input PDB structure).")
	flag.StringVar(&c.opdb, "opdb", "", "optional: output post-processed PDB file (useful for keeping track of how all PDB weirdnesses got parsed).")
	flag.StringVar(&c.opdbL, "opdbL", "", "optional: a file with a list of file names for post-processed PDBs, one per input structure.")
	flag.StringVar(&c.rLib, "rLib", "", "optional: a rotamer library file. If not given, the built-in backbone-independent library is used.")
	flag.StringVar(&c.rout, "rout", "", "optional: name of a file into which to place PDB-formated coordinates of rotamers that ended up surviving at each considered position.")
	flag.StringVar(&c.psel, "psel", "", "optional: pre-selection to apply before doing anything (only the selected part of structure will be considered). E.g., 'chain A and resid 1-120'.")
	flag.StringVar(&c.sel, "sel", "", "optional: selection of the residues to compute properties for. The rest of the structure is still considered for clashes. E.g., 'resid 20-30'.")
	flag.Float64Var(&c.expand, "expand", 0, "optional: residues whose CA is within this distance (A) of a residue in --sel are also analyzed.")
	flag.BoolVar(&c.pp, "pp", false, "optional: print phi/psi angles for each residue (will print next to all positional scores).")
	flag.BoolVar(&c.omg, "omg", false, "optional: print omega angles for each residue (will print next to all positional scores).")
	flag.BoolVar(&c.verb, "verb", false, "optional: generate lots of detailed output (i.e., print the details of which rotamer pairs are in contact).")
	flag.BoolVar(&c.pf, "pf", false, "optional: print the name of the PDB file being analyzed next to all positional scores.")
	flag.BoolVar(&c.ren, "ren", false, "optional: renumber the structure before output.")
	flag.BoolVar(&c.nc, "nc", false, "optional: contact information will not be calculated/printed and only self information will.")
	flag.Float64Var(&c.clash, "clash", 2.0, "distance (A) below which a side chain atom clashes with a backbone atom.")
	flag.Float64Var(&c.cont, "cont", 3.0, "distance (A) below which 2 atoms are in contact.")
	flag.Float64Var(&c.dcut, "dcut", 25.0, "positions farther than this (A) along the principal axis of the protein are not considered for contacts.")
	flag.StringVar(&c.aaprop, "aaprop", "", "optional: a file with the propensity of each amino acid (name and value in each line).")
	flag.IntVar(&c.cpus, "cpus", runtime.NumCPU(), "number of gorutines to use.")
	flag.StringVar(&c.plot, "plot", "", "optional: prefix for PNG plots of the per-position metrics and the Ramachandran plot of each structure.")
	flag.StringVar(&c.hist, "hist", "", "optional: file where the distributions of the contact degrees and per-position metrics of each structure are written, in JSON format.")
	flag.IntVar(&c.bins, "bins", 10, "number of bins for the distributions written with --hist.")
	flag.Usage = usage
	flag.Parse()
	return c
}

func main() {
	c := parseFlags()
	inputs, err := names(c.p, c.pL)
	if err != nil {
		log.Fatal(err)
	}
	if len(inputs) == 0 {
		usage()
		os.Exit(1)
	}
	outputs, err := perInput(c.o, c.oL, len(inputs))
	if err != nil {
		log.Fatal(err)
	}
	pdbouts, err := perInput(c.opdb, c.opdbL, len(inputs))
	if err != nil {
		log.Fatal(err)
	}
	var routs, plots, hists []string
	for _, v := range []struct {
		name string
		dst  *[]string
	}{{c.rout, &routs}, {c.plot, &plots}, {c.hist, &hists}} {
		if *v.dst, err = perInput(v.name, "", len(inputs)); err != nil {
			log.Fatal(err)
		}
	}
	o, lib, err := options(c)
	if err != nil {
		log.Fatal(err)
	}
	for i, in := range inputs {
		if err := process(in, i, c, o, lib, outputs, pdbouts, routs, plots, hists); err != nil {
			log.Fatalf("%s: %s", in, err.Error())
		}
	}
}

// options builds the analysis options and the rotamer library from the command line.
func options(c *config) (*condeg.Options, rotlib.Library, error) {
	o := condeg.DefaultOptions()
	o.ClashDist(c.clash)
	o.ContDist(c.cont)
	o.Cutoff(c.dcut)
	o.Cpus(c.cpus)
	o.Verbose(c.verb)
	o.Contacts(!c.nc)
	o.Renumber(c.ren)
	o.Expand(c.expand)
	if c.psel != "" {
		s, err := chem.ParseSelection(c.psel)
		if err != nil {
			return nil, nil, err
		}
		o.PreSelection(s)
	}
	if c.sel != "" {
		s, err := chem.ParseSelection(c.sel)
		if err != nil {
			return nil, nil, err
		}
		o.Focus(s)
	}
	if c.aaprop != "" {
		props, err := chem.ReadPropensitiesFile(c.aaprop)
		if err != nil {
			return nil, nil, err
		}
		if err := props.Validate(); err != nil {
			return nil, nil, err
		}
		o.Propensities(props)
	}
	if c.rLib == "" {
		return o, rotlib.Default(), nil
	}
	lib, err := rotlib.Open(c.rLib)
	if err != nil {
		return nil, nil, err
	}
	return o, lib, nil
}

// process analyzes the structure in the file in, the index-th in the input.
func process(in string, index int, c *config, o *condeg.Options, lib rotlib.Library, outputs, pdbouts, routs, plots, hists []string) error {
	mol, err := chem.PDBFileRead(in)
	if err != nil {
		return err
	}
	rout := ""
	if routs != nil {
		rout = routs[index]
	}
	a, err := analyze(mol, lib, o, rout)
	if err != nil {
		return err
	}
	var w *report.Writer
	if outputs != nil {
		if w, err = report.Create(outputs[index]); err != nil {
			return err
		}
	} else {
		w = report.New(os.Stdout)
		w.Header(in)
	}
	cols := &report.Columns{PhiPsi: c.pp, Omega: c.omg}
	if c.pf {
		cols.Source = in
	}
	if err := a.Report(w, cols); err != nil {
		w.Close()
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}
	if pdbouts != nil {
		if err := chem.PDBFileWrite(pdbouts[index], a.Mol.Coords[0], a.Mol, nil); err != nil {
			return err
		}
	}
	if hists != nil {
		hf, err := chem.CreateFile(hists[index])
		if err != nil {
			return err
		}
		if err := a.WriteHistograms(hf, c.bins); err != nil {
			hf.Close()
			return err
		}
		if err := hf.Close(); err != nil {
			return err
		}
	}
	if plots != nil {
		ids, series := a.Profiles()
		if err := chemplot.MetricPlot(ids, series, filepath.Base(in), plots[index]+"_metrics"); err != nil {
			return err
		}
		angles := make([][3]float64, len(a.Positions))
		for i, p := range a.Positions {
			angles[i] = p.Angles
		}
		if err := chemplot.RamaPlot(angles, nil, filepath.Base(in), plots[index]+"_rama"); err != nil {
			return err
		}
	}
	return nil
}

// analyze runs the analysis of mol. If rout is not empty, the surviving rotamers are
// written to the file rout, which is closed before returning.
func analyze(mol *chem.Molecule, lib rotlib.Library, o *condeg.Options, rout string) (*condeg.Analysis, error) {
	if rout == "" {
		return condeg.Analyze(mol, lib, o)
	}
	rf, err := chem.CreateFile(rout)
	if err != nil {
		return nil, err
	}
	o.RotamerOutput(rf)
	a, err := condeg.Analyze(mol, lib, o)
	o.RotamerOutput(nil)
	if cerr := rf.Close(); err == nil && cerr != nil {
		err = fmt.Errorf("closing %s: %w", rout, cerr)
	}
	if err != nil {
		return nil, err
	}
	return a, nil
}

// names returns a list with single, if not empty, or the names listed in the file list.
// It is an error to give both.
func names(single, list string) ([]string, error) {
	if single != "" && list != "" {
		return nil, fmt.Errorf("a file and a list of files can't both be given")
	}
	if single != "" {
		return []string{single}, nil
	}
	if list == "" {
		return nil, nil
	}
	f, err := os.Open(list)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return readList(f)
}

func readList(r io.Reader) ([]string, error) {
	var ret []string
	s := bufio.NewScanner(r)
	for s.Scan() {
		if l := strings.TrimSpace(s.Text()); l != "" {
			ret = append(ret, l)
		}
	}
	return ret, s.Err()
}

// perInput returns one output name per input structure, from a single name, or from
// the names listed in the file list. For a single name and more than one structure, the names
// are derived from the given one. It returns nil if no name was given.
func perInput(single, list string, n int) ([]string, error) {
	ret, err := names(single, list)
	if err != nil || ret == nil {
		return nil, err
	}
	if list != "" {
		if len(ret) != n {
			return nil, fmt.Errorf("%d names in %s for %d input structures", len(ret), list, n)
		}
		return ret, nil
	}
	if n == 1 {
		return ret, nil
	}
	ret = make([]string, n)
	for i := range ret {
		ret[i] = derive(single, i+1)
	}
	return ret, nil
}

// derive returns name with .fN inserted before its extension. Compression
// extensions are kept together with the preceding one.
func derive(name string, n int) string {
	ext := filepath.Ext(name)
	base := strings.TrimSuffix(name, ext)
	if ext == ".gz" || ext == ".zst" {
		inner := filepath.Ext(base)
		base = strings.TrimSuffix(base, inner)
		ext = inner + ext
	}
	return fmt.Sprintf("%s.f%d%s", base, n, ext)
}
