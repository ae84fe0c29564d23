/*
 * chem_test.go, part of condeg.
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
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	v3 "github.com/rmera/condeg/v3"
)

// errql is true if a and b are equal within tol.
func errql(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func helix(Te *testing.T, names ...string) *Molecule {
	Te.Helper()
	pp := make([][2]float64, len(names))
	for i := range pp {
		pp[i] = [2]float64{-57, -47}
	}
	mol, err := BuildBackbone("A", names, pp)
	if err != nil {
		Te.Fatal(err)
	}
	return mol
}

func TestBuildBackboneAngles(Te *testing.T) {
	pp := [][2]float64{{-60, -45}, {-120, 130}, {-65, 140}, {60, 40}}
	mol, err := BuildBackbone("A", []string{"ALA", "SER", "LEU", "GLY"}, pp)
	if err != nil {
		Te.Fatal(err)
	}
	res := Residues(mol, mol.Coords[0])
	if len(res) != 4 {
		Te.Fatalf("expected 4 residues, got %d", len(res))
	}
	angles := BackboneAngles(res)
	fmt.Println("angles", angles)
	if angles[0][0] != UndefinedAngle || angles[0][2] != UndefinedAngle || angles[3][1] != UndefinedAngle {
		Te.Errorf("chain ends should have undefined angles: %v", angles)
	}
	for i := 1; i < 4; i++ {
		if !errql(angles[i][0], pp[i][0], 1e-6) {
			Te.Errorf("residue %d phi %f, expected %f", i, angles[i][0], pp[i][0])
		}
		if !errql(math.Abs(angles[i][2]), 180, 1e-6) {
			Te.Errorf("residue %d omega %f, expected 180", i, angles[i][2])
		}
	}
	for i := 0; i < 3; i++ {
		if !errql(angles[i][1], pp[i][1], 1e-6) {
			Te.Errorf("residue %d psi %f, expected %f", i, angles[i][1], pp[i][1])
		}
	}
}

func TestChainBreak(Te *testing.T) {
	mol := helix(Te, "ALA", "ALA", "ALA")
	//move the last residue far away
	for i := 8; i < 12; i++ {
		v := mol.Coords[0].Vec(i)
		v[0] += 20
		mol.Coords[0].SetVec(i, v)
	}
	angles := BackboneAngles(Residues(mol, mol.Coords[0]))
	if angles[1][1] != UndefinedAngle || angles[2][0] != UndefinedAngle {
		Te.Errorf("broken peptide bond should leave psi(1) and phi(2) undefined: %v", angles)
	}
}

func TestDihedralPlace(Te *testing.T) {
	a := [3]float64{0, 1.4, 0.3}
	b := [3]float64{0, 0, 0}
	c := [3]float64{1.5, 0, 0.1}
	for _, t := range []float64{60, -60, 180, -120, 10} {
		d := PlaceAtom(a, b, c, 1.5, Deg2Rad(110), Deg2Rad(t))
		got := Rad2Deg(DihedralPoints(a, b, c, d))
		if !errql(math.Abs(got), math.Abs(t), 1e-9) || (math.Abs(t) != 180 && !errql(got, t, 1e-9)) {
			Te.Errorf("placed with torsion %f, measured %f", t, got)
		}
		if !errql(Distance(c, d), 1.5, 1e-12) {
			Te.Errorf("wrong bond length %f", Distance(c, d))
		}
	}
	A, _ := v3.NewMatrix(a[:])
	B, _ := v3.NewMatrix(b[:])
	C, _ := v3.NewMatrix(c[:])
	d := PlaceAtom(a, b, c, 1.5, Deg2Rad(110), Deg2Rad(-75))
	D, _ := v3.NewMatrix(d[:])
	if !errql(Rad2Deg(Dihedral(A, B, C, D)), -75, 1e-9) {
		Te.Errorf("Dihedral and DihedralPoints disagree")
	}
}

func TestResidues(Te *testing.T) {
	mol := helix(Te, "ALA", "TRP", "GLY")
	mol.Atoms[4].ICode = 'A' //the first atom of the second residue now is another residue.
	res := Residues(mol, mol.Coords[0])
	if len(res) != 4 {
		Te.Fatalf("expected 4 residues, got %d", len(res))
	}
	if res[1].PositionID() != "A,2A" || res[2].PositionID() != "A,2" {
		Te.Errorf("wrong position ids %s %s", res[1].PositionID(), res[2].PositionID())
	}
	if res[1].HasBackboneFrame() || !res[0].HasBackboneFrame() {
		Te.Error("wrong backbone frame detection")
	}
	p, synth := res[1].Representative()
	if !synth || p != res[1].Coords.Vec(0) {
		Te.Errorf("a residue with only N should be represented by its N, got %v %v", p, synth)
	}
	p, synth = res[0].Representative()
	if synth || p != mol.Coords[0].Vec(1) {
		Te.Errorf("the representative should be the CA")
	}
	cp := res[0].Copy()
	cp.Coords.Set(0, 0, 100)
	cp.Atoms[0].Name = "X"
	if res[0].Coords.At(0, 0) == 100 || res[0].Atoms[0].Name == "X" {
		Te.Error("changes in a copy propagated to the original")
	}
	if diff := cmp.Diff([]string{"ALA", "TRP", "TRP", "GLY"}, Sequence(res)); diff != "" {
		Te.Error(diff)
	}
}

func TestReplaceSideChain(Te *testing.T) {
	mol := helix(Te, "GLY", "GLY")
	res := Residues(mol, mol.Coords[0])
	r := res[0].Copy()
	err := r.ReplaceSideChain("ALA", []*Atom{{Name: "CB", Symbol: "C"}}, [][3]float64{{1, 1, 1}})
	if err != nil {
		Te.Fatal(err)
	}
	if r.Len() != 5 || r.Name != "ALA" || r.Atoms[4].MolName != "ALA" || r.Atoms[4].MolID != 1 {
		Te.Errorf("wrong replaced residue %v", r.Atoms)
	}
	if sc := r.SideChain(); len(sc) != 1 || sc[0] != 4 {
		Te.Errorf("wrong side chain %v", sc)
	}
	if res[0].Len() != 4 {
		Te.Error("the original residue was modified")
	}
	err = r.ReplaceSideChain("ALA", []*Atom{{Name: "CB"}}, nil)
	if err == nil {
		Te.Error("mismatched atoms and coordinates should fail")
	}
}

func TestPDBRoundTrip(Te *testing.T) {
	mol := helix(Te, "ALA", "MSE", "LYS")
	mol.Atoms[5].Het = true
	dir := Te.TempDir()
	for _, name := range []string{"pep.pdb", "pep.pdb.gz", "pep.pdb.zst"} {
		fname := filepath.Join(dir, name)
		if err := PDBFileWrite(fname, mol.Coords[0], mol, nil); err != nil {
			Te.Fatal(err)
		}
		mol2, err := PDBFileRead(fname)
		if err != nil {
			Te.Fatal(err)
		}
		if mol2.Len() != mol.Len() {
			Te.Fatalf("%s: read %d atoms, wrote %d", name, mol2.Len(), mol.Len())
		}
		for i := 0; i < mol.Len(); i++ {
			a, b := mol.Atom(i), mol2.Atom(i)
			if a.Name != b.Name || a.MolName != b.MolName || a.MolID != b.MolID || a.Chain != b.Chain || a.Het != b.Het || a.Symbol != b.Symbol {
				Te.Errorf("%s: atom %d differs: %v %v", name, i, a, b)
			}
			for j := 0; j < 3; j++ {
				if !errql(mol.Coords[0].At(i, j), mol2.Coords[0].At(i, j), 1e-3) {
					Te.Errorf("%s: coordinate %d,%d differs", name, i, j)
				}
			}
		}
	}
}

func TestPDBReadAltLocAndModels(Te *testing.T) {
	pdb := `ATOM      1  N   ALA A   1       0.000   0.000   0.000  1.00  0.00           N
ATOM      2  CA AALA A   1       1.458   0.000   0.000  0.50  0.00           C
ATOM      3  CA BALA A   1       1.500   0.100   0.000  0.50  0.00           C
HETATM    4 FE   HEM A   2       5.000   5.000   5.000  1.00  0.00          FE
ENDMDL
ATOM      1  N   ALA A   1       0.100   0.000   0.000  1.00  0.00           N
ATOM      2  CA AALA A   1       1.558   0.000   0.000  0.50  0.00           C
ATOM      3  CA BALA A   1       1.600   0.100   0.000  0.50  0.00           C
HETATM    4 FE   HEM A   2       5.100   5.000   5.000  1.00  0.00          FE
ENDMDL
END
`
	mol, err := PDBRead(strings.NewReader(pdb))
	if err != nil {
		Te.Fatal(err)
	}
	if mol.Len() != 3 || len(mol.Coords) != 2 {
		Te.Fatalf("expected 3 atoms and 2 models, got %d and %d", mol.Len(), len(mol.Coords))
	}
	if mol.Atom(2).Symbol != "Fe" || !mol.Atom(2).Het {
		Te.Errorf("wrong HETATM %v", mol.Atom(2))
	}
	prot, err := ProteinOnly(mol)
	if err != nil {
		Te.Fatal(err)
	}
	if prot.Len() != 2 {
		Te.Errorf("ProteinOnly left %d atoms", prot.Len())
	}
	_, err = PDBRead(strings.NewReader("ATOM      1  N   ALA A   1       0.0x0   0.000   0.000\n"))
	if !errors.Is(err, ErrFileFormat) {
		Te.Errorf("expected a file format error, got %v", err)
	}
	if !IsCritical(err) || !strings.Contains(err.Error(), "PDBRead") {
		Te.Errorf("error should be critical and decorated: %v", err)
	}
}

func TestRenumber(Te *testing.T) {
	mol := helix(Te, "ALA", "ALA", "ALA")
	for i, at := range mol.Atoms {
		at.MolID = 10 + 5*(i/4)
		at.ID = 100 + i
	}
	mol.Atoms[8].ICode = 'B'
	mol.Renumber()
	res := Residues(mol, mol.Coords[0])
	ids := []string{}
	for _, r := range res {
		ids = append(ids, r.PositionID())
	}
	if diff := cmp.Diff([]string{"A,1", "A,2", "A,3", "A,4"}, ids); diff != "" {
		Te.Error(diff)
	}
	if mol.Atom(5).ID != 6 {
		Te.Errorf("atom ids not renumbered")
	}
}

func TestSelection(Te *testing.T) {
	mol := helix(Te, "ALA", "LEU", "ALA", "SER", "TRP", "GLY")
	for i := 12; i < mol.Len(); i++ {
		mol.Atoms[i].Chain = "B"
	}
	res := Residues(mol, mol.Coords[0])
	for _, v := range []struct {
		sel  string
		want []int
	}{
		{"all", []int{0, 1, 2, 3, 4, 5}},
		{"chain A", []int{0, 1, 2}},
		{"chain B and resid 5-6", []int{4, 5}},
		{"resname ALA,GLY", []int{0, 2, 5}},
		{"chain A and not resname ALA or resid 6", []int{1, 5}},
		{"resid 2,4", []int{1, 3}},
	} {
		S, err := ParseSelection(v.sel)
		if err != nil {
			Te.Errorf("%s: %v", v.sel, err)
			continue
		}
		if diff := cmp.Diff(v.want, Select(res, S)); diff != "" {
			Te.Errorf("%s (-want +got):\n%s", v.sel, diff)
		}
	}
	for _, bad := range []string{"", "chain", "resid a-b", "chain A and", "foo A", "chain A chain B"} {
		if _, err := ParseSelection(bad); !errors.Is(err, ErrBadSelection) {
			Te.Errorf("%q should not parse, got %v", bad, err)
		}
	}
}

func TestExpand(Te *testing.T) {
	mol := helix(Te, "ALA", "ALA", "ALA", "ALA", "ALA", "ALA", "ALA", "ALA")
	res := Residues(mol, mol.Coords[0])
	if diff := cmp.Diff([]int{3}, Expand(res, []int{3}, 0)); diff != "" {
		Te.Error(diff)
	}
	//consecutive CAs in a helix are 3.8 A apart, i,i+2 ~5.4 A.
	if diff := cmp.Diff([]int{2, 3, 4}, Expand(res, []int{3}, 4.0)); diff != "" {
		Te.Error(diff)
	}
	got := Expand(res, []int{3}, 100)
	if len(got) != len(res) {
		Te.Errorf("a big radius should select everything, got %v", got)
	}
}

func TestPropensities(Te *testing.T) {
	P := DefaultPropensities()
	if err := P.Validate(); err != nil {
		Te.Error(err)
	}
	if v, _ := P.Of(LEU); v != 8.83 {
		Te.Errorf("LEU propensity %f", v)
	}
	in := "# name value\nALA 10\nGLY 3\nLEU 5.5\n"
	P, err := ReadPropensities(strings.NewReader(in))
	if err != nil {
		Te.Fatal(err)
	}
	if v, err := P.Of(LEU); err != nil || v != 5.5 {
		Te.Errorf("LEU %f %v", v, err)
	}
	if _, err := P.Of(TRP); !errors.Is(err, ErrMissingPropensity) {
		Te.Errorf("missing TRP should give ErrMissingPropensity, got %v", err)
	}
	if err := P.Validate(); !errors.Is(err, ErrMissingPropensity) || !IsCritical(err) {
		Te.Errorf("incomplete table should not validate, got %v", err)
	}
	for _, bad := range []string{"ALA\n", "ALA -1\n", "ALA x\n"} {
		if _, err := ReadPropensities(strings.NewReader(bad)); !errors.Is(err, ErrBadPropensity) {
			Te.Errorf("%q should fail, got %v", bad, err)
		}
	}
	fname := filepath.Join(Te.TempDir(), "prop.txt")
	if err := os.WriteFile(fname, []byte(in), 0644); err != nil {
		Te.Fatal(err)
	}
	if _, err := ReadPropensitiesFile(fname); err != nil {
		Te.Error(err)
	}
	if aa, err := ParseAminoAcid("trp"); err != nil || aa != TRP || aa.OneLetter() != 'W' {
		Te.Errorf("ParseAminoAcid: %v %v", aa, err)
	}
	if _, err := ParseAminoAcid("GLY"); err == nil {
		Te.Error("GLY is not rotameric")
	}
}

func TestPrincipalAxis(Te *testing.T) {
	data := []float64{}
	for i := 0; i < 10; i++ {
		data = append(data, float64(i), 2*float64(i), 0.01*float64(i%2))
	}
	coords, _ := v3.NewMatrix(data)
	axis, err := PrincipalAxis(coords)
	if err != nil {
		Te.Fatal(err)
	}
	want := [3]float64{1 / math.Sqrt(5), 2 / math.Sqrt(5), 0}
	for i := range want {
		if !errql(axis[i], want[i], 1e-3) {
			Te.Errorf("axis %v, expected %v", axis, want)
			break
		}
	}
	proj := Project(coords, axis)
	for i := 1; i < len(proj); i++ {
		if proj[i] <= proj[i-1] {
			Te.Errorf("projections should increase along the line: %v", proj)
		}
	}
	one, _ := v3.NewMatrix([]float64{1, 2, 3})
	if a, err := PrincipalAxis(one); err == nil || a != [3]float64{1, 0, 0} {
		Te.Errorf("a single point should give an error and the x axis, got %v %v", a, err)
	}
	if c := Centroid(coords); !errql(c[0], 4.5, 1e-12) || !errql(c[1], 9, 1e-12) {
		Te.Errorf("wrong centroid %v", c)
	}
}
