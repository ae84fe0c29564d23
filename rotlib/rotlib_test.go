package rotlib

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	chem "github.com/rmera/condeg"
)

func errql(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func glycine(Te *testing.T) *chem.Residue {
	Te.Helper()
	mol, err := chem.BuildBackbone("A", []string{"GLY", "GLY", "GLY"}, [][2]float64{{-60, -40}, {-60, -40}, {-60, -40}})
	if err != nil {
		Te.Fatal(err)
	}
	return chem.Residues(mol, mol.Coords[0])[1]
}

func TestDefault(Te *testing.T) {
	L := Default()
	for _, aa := range chem.AminoAcids() {
		n := L.NumRotamers(aa, -60, -40)
		if n == 0 {
			Te.Errorf("no rotamers for %s", aa)
		}
		total := 0.0
		for i := 0; i < n; i++ {
			total += L.Probability(aa, i, -60, -40)
		}
		if !errql(total, 1, 1e-9) {
			Te.Errorf("%s probabilities add up to %f", aa, total)
		}
	}
	if L.NumRotamers(chem.ALA, chem.UndefinedAngle, chem.UndefinedAngle) != 1 {
		Te.Error("ALA should have exactly one rotamer")
	}
	if L.Probability(chem.LEU, 100, 0, 0) != 0 {
		Te.Error("a rotamer out of range should have probability 0")
	}
}

func TestParseErrors(Te *testing.T) {
	for _, bad := range []string{
		"",
		"# only a comment\n",
		"GLY * * 1\n",
		"LEU * * 1 60\n",
		"SER * * -1 60\n",
		"SER * 10 1 60\n",
		"SER * * 1 x\n",
		"SER\n",
	} {
		_, err := Parse(strings.NewReader(bad))
		if !errors.Is(err, ErrBadLibrary) || !chem.IsCritical(err) {
			Te.Errorf("%q should be a critical library error, got %v", bad, err)
		}
	}
}

func TestBinLookup(Te *testing.T) {
	L, err := Open("testdata/binned.rotlib")
	if err != nil {
		Te.Fatal(err)
	}
	if n := L.NumRotamers(chem.SER, -65, -45); n != 2 {
		Te.Errorf("expected the helical bin with 2 rotamers, got %d", n)
	}
	if p := L.Probability(chem.SER, 0, -65, -45); !errql(p, 0.75, 1e-12) {
		Te.Errorf("probabilities should be normalized within a bin, got %f", p)
	}
	if n := L.NumRotamers(chem.SER, -110, 140); n != 3 {
		Te.Errorf("expected the strand bin with 3 rotamers, got %d", n)
	}
	//-170 is closer to 130 than -40 across the periodic boundary
	if n := L.NumRotamers(chem.SER, -120, -170); n != 3 {
		Te.Errorf("expected the strand bin across the boundary, got %d", n)
	}
	if n := L.NumRotamers(chem.SER, chem.UndefinedAngle, -45); n != 1 {
		Te.Errorf("undefined angles should use the backbone-independent set, got %d", n)
	}
	if n := L.NumRotamers(chem.VAL, chem.UndefinedAngle, chem.UndefinedAngle); n != 1 {
		Te.Errorf("VAL has only one bin, it should be used, got %d", n)
	}
	if n := L.NumRotamers(chem.TRP, -60, -40); n != 0 {
		Te.Errorf("TRP is not in the library, got %d rotamers", n)
	}
	if _, err := L.Chis(chem.TRP, 0, -60, -40); err == nil {
		Te.Error("Chis should fail for an amino acid not in the library")
	}
}

func TestOpenErrors(Te *testing.T) {
	dir := Te.TempDir()
	empty := filepath.Join(dir, "empty.rotlib")
	if err := os.WriteFile(empty, nil, 0644); err != nil {
		Te.Fatal(err)
	}
	if _, err := Open(empty); !errors.Is(err, ErrBadLibrary) {
		Te.Errorf("an empty file should fail, got %v", err)
	}
	if _, err := Open(filepath.Join(dir, "nothere.rotlib")); !errors.Is(err, ErrBadLibrary) {
		Te.Errorf("a missing file should fail, got %v", err)
	}
}

func TestPlace(Te *testing.T) {
	L := Default()
	orig := glycine(Te)
	for _, aa := range chem.AminoAcids() {
		for i := 0; i < L.NumRotamers(aa, -60, -40); i++ {
			res := orig.Copy()
			if err := L.Place(res, aa, i, -60, -40); err != nil {
				Te.Fatalf("%s %d: %v", aa, i, err)
			}
			if res.Name != aa.String() || res.Len() != 4+len(templates[aa]) {
				Te.Fatalf("%s %d: wrong residue %s with %d atoms", aa, i, res.Name, res.Len())
			}
			for _, ic := range templates[aa] {
				p, _ := res.Vec(ic.name)
				c, ok := res.Vec(ic.c)
				if !ok || !errql(chem.Distance(p, c), ic.bond, 1e-9) {
					Te.Errorf("%s %d: wrong %s-%s bond", aa, i, ic.c, ic.name)
				}
			}
			if orig.Len() != 4 {
				Te.Fatal("placing on a copy changed the original")
			}
		}
	}
}

func TestChiAngles(Te *testing.T) {
	res := glycine(Te)
	if err := PlaceChis(res, chem.LEU, []float64{-65, 175}); err != nil {
		Te.Fatal(err)
	}
	get := func(name string) [3]float64 {
		v, ok := res.Vec(name)
		if !ok {
			Te.Fatalf("no atom %s", name)
		}
		return v
	}
	chi1 := chem.Rad2Deg(chem.DihedralPoints(get("N"), get("CA"), get("CB"), get("CG")))
	chi2 := chem.Rad2Deg(chem.DihedralPoints(get("CA"), get("CB"), get("CG"), get("CD1")))
	if !errql(chi1, -65, 1e-6) || !errql(chi2, 175, 1e-6) {
		Te.Errorf("measured chis %f %f", chi1, chi2)
	}
	if err := PlaceChis(res, chem.LEU, []float64{-65}); !errors.Is(err, ErrBadLibrary) {
		Te.Errorf("wrong number of chis should fail, got %v", err)
	}
	noca := glycine(Te)
	noca.Atoms[1].Name = "XX"
	if err := PlaceChis(noca, chem.SER, []float64{60}); err == nil || chem.IsCritical(err) {
		Te.Errorf("a missing CA should be a non-critical error, got %v", err)
	}
}
