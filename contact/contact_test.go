package contact

import (
	"math"
	"math/rand"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	chem "github.com/rmera/condeg"
	"github.com/rmera/condeg/rotamer"
	"github.com/rmera/condeg/rotlib"
	v3 "github.com/rmera/condeg/v3"
)

// synthetic returns a LEU rotamer with weight w whose heavy side chain atoms are in points.
func synthetic(Te *testing.T, index int, w float64, points ...[3]float64) *rotamer.Rotamer {
	Te.Helper()
	c := v3.Zeros(len(points))
	atoms := make([]*chem.Atom, len(points))
	for i, p := range points {
		c.SetVec(i, p)
		atoms[i] = &chem.Atom{Name: "CD1", Symbol: "C", MolName: "LEU"}
	}
	res := &chem.Residue{Name: "LEU", ID: 1, Chain: "A", ICode: ' ', Atoms: atoms, Coords: c}
	return rotamer.New(res, chem.LEU, index, w, 1)
}

func randomPoints(r *rand.Rand, n int, center [3]float64, spread float64) [][3]float64 {
	ret := make([][3]float64, n)
	for i := range ret {
		for j := 0; j < 3; j++ {
			ret[i][j] = center[j] + (r.Float64()-0.5)*spread
		}
	}
	return ret
}

func TestDegreeSymmetry(Te *testing.T) {
	for seed := int64(0); seed < 200; seed++ {
		r := rand.New(rand.NewSource(seed))
		var ri, rj []*rotamer.Rotamer
		for k := 0; k < 7; k++ {
			ri = append(ri, synthetic(Te, k, r.Float64()*10, randomPoints(r, 4, [3]float64{0, 0, 0}, 6)...))
			rj = append(rj, synthetic(Te, k, r.Float64()*10, randomPoints(r, 4, [3]float64{4, 0, 0}, 6)...))
		}
		dij := Degree(ri, rj, 3, nil, nil, nil)
		dji := Degree(rj, ri, 3, nil, nil, nil)
		if dij != dji {
			Te.Fatalf("seed %d: degree is not symmetric: %.17g vs %.17g", seed, dij, dji)
		}
		if dij < 0 || dij > 1 {
			Te.Errorf("seed %d: degree %f out of [0,1]", seed, dij)
		}
	}
}

func TestDegreeContactRadius(Te *testing.T) {
	eps := 1e-6
	a := synthetic(Te, 0, 1, [3]float64{0, 0, 0})
	in := synthetic(Te, 0, 1, [3]float64{3 - eps, 0, 0})
	out := synthetic(Te, 0, 1, [3]float64{3 + eps, 0, 0})
	if d := Degree([]*rotamer.Rotamer{a}, []*rotamer.Rotamer{in}, 3, nil, nil, nil); d != 1 {
		Te.Errorf("atoms at 3-eps should be in contact, degree %f", d)
	}
	if d := Degree([]*rotamer.Rotamer{a}, []*rotamer.Rotamer{out}, 3, nil, nil, nil); d != 0 {
		Te.Errorf("atoms at 3+eps should not be in contact, degree %f", d)
	}
	if d := Degree(nil, []*rotamer.Rotamer{out}, 3, nil, nil, nil); d != 0 {
		Te.Errorf("an empty position should give degree 0, got %f", d)
	}
}

func TestSeparatedBoxesSkipQueries(Te *testing.T) {
	a := synthetic(Te, 0, 1, [3]float64{0, 0, 0}, [3]float64{1, 1, 1})
	b := synthetic(Te, 0, 1, [3]float64{10, 10, 10}, [3]float64{11, 11, 11})
	if d := Degree([]*rotamer.Rotamer{a}, []*rotamer.Rotamer{b}, 3, nil, nil, nil); d != 0 {
		Te.Errorf("degree should be 0, got %f", d)
	}
	if a.SideChain().Queries() != 0 || b.SideChain().Queries() != 0 {
		Te.Errorf("no queries expected for separated boxes, got %d and %d", a.SideChain().Queries(), b.SideChain().Queries())
	}
}

func TestDegreeWeightsAndMasses(Te *testing.T) {
	ri := []*rotamer.Rotamer{
		synthetic(Te, 0, 2, [3]float64{0, 0, 0}),
		synthetic(Te, 1, 6, [3]float64{0, 20, 0}),
	}
	rj := []*rotamer.Rotamer{synthetic(Te, 0, 5, [3]float64{1, 0, 0})}
	massI := make([]float64, 2)
	massJ := make([]float64, 1)
	info := new(strings.Builder)
	d := Degree(ri, rj, 3, info, massI, massJ)
	if math.Abs(d-2.0/8.0) > 1e-12 {
		Te.Errorf("expected degree 0.25, got %f", d)
	}
	if diff := cmp.Diff([]float64{5, 0}, massI); diff != "" {
		Te.Errorf("massI (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]float64{2}, massJ); diff != "" {
		Te.Errorf("massJ (-want +got):\n%s", diff)
	}
	if info.String() != "LEU 0 -- LEU 0 : 10.000000\n" {
		Te.Errorf("unexpected contact info %q", info.String())
	}
}

func TestFreedom(Te *testing.T) {
	f := Freedom([]float64{10, 100, 300}, 5)
	if math.Abs(f-math.Sqrt(2.5)/5) > 1e-12 {
		Te.Errorf("expected %f, got %f", math.Sqrt(2.5)/5, f)
	}
	if f := Freedom(nil, 0); f != 0 {
		Te.Errorf("freedom with no rotamers should be 0, got %f", f)
	}
	if f := Freedom(nil, 7); f != 0 {
		Te.Errorf("freedom with no survivors should be 0, got %f", f)
	}
}

func TestCandidatesBruteForce(Te *testing.T) {
	r := rand.New(rand.NewSource(11))
	points := make([][3]float64, 200)
	for i := range points {
		//an elongated cloud, like a long helix
		points[i] = [3]float64{r.Float64() * 150, r.Float64() * 20, r.Float64() * 20}
	}
	cutoff := 12.0
	cands := Candidates(points, cutoff)
	got := make(map[[2]int]bool)
	for _, c := range cands {
		if c[0] >= c[1] {
			Te.Fatalf("candidate %v not ordered", c)
		}
		if got[c] {
			Te.Fatalf("candidate %v repeated", c)
		}
		got[c] = true
	}
	for i := range points {
		for j := i + 1; j < len(points); j++ {
			if chem.Distance(points[i], points[j]) <= cutoff && !got[[2]int{i, j}] {
				Te.Errorf("pair %d %d is within the cutoff but not a candidate", i, j)
			}
		}
	}
	if len(cands) >= len(points)*(len(points)-1)/2 {
		Te.Errorf("the projection window didn't discard any pair")
	}
	if c := Candidates(points[:1], cutoff); len(c) != 0 {
		Te.Errorf("a single point has no candidates, got %v", c)
	}
	//all points coinciding: every pair is a candidate.
	same := [][3]float64{{1, 1, 1}, {1, 1, 1}, {1, 1, 1}}
	if c := Candidates(same, cutoff); len(c) != 3 {
		Te.Errorf("expected 3 candidates for coinciding points, got %v", c)
	}
}

func helixEnsembles(Te *testing.T, n int) []*Ensemble {
	Te.Helper()
	names := make([]string, n)
	pp := make([][2]float64, n)
	for i := range names {
		names[i] = "ALA"
		pp[i] = [2]float64{-57, -47}
	}
	mol, err := chem.BuildBackbone("A", names, pp)
	if err != nil {
		Te.Fatal(err)
	}
	res := chem.Residues(mol, mol.Coords[0])
	filtered, err := rotamer.Filter(res, nil, rotlib.Default(), chem.DefaultPropensities(), nil)
	if err != nil {
		Te.Fatal(err)
	}
	ret := make([]*Ensemble, len(filtered.Positions))
	for i, p := range filtered.Positions {
		rep, _ := p.Residue.Representative()
		ret[i] = &Ensemble{Rotamers: p.Rotamers, Representative: rep, TotalRotamers: p.TotalRotamers}
	}
	return ret
}

func TestComputeOrderAndDeterminism(Te *testing.T) {
	ens := helixEnsembles(Te, 10)
	seq := DefaultOptions()
	seq.Cpus(1)
	par := DefaultOptions()
	par.Cpus(4)
	r1 := Compute(ens, seq)
	r2 := Compute(ens, par)
	if diff := cmp.Diff(r1, r2); diff != "" {
		Te.Errorf("sequential and parallel results differ (-seq +par):\n%s", diff)
	}
	if len(r1.Contacts) == 0 {
		Te.Fatal("a helix should have contacts between neighboring positions")
	}
	sum := make([]float64, len(ens))
	for k, c := range r1.Contacts {
		if c.Degree <= 0 || c.Degree > 1 {
			Te.Errorf("contact %d-%d with degree %f", c.I, c.J, c.Degree)
		}
		if c.I >= c.J {
			Te.Errorf("contact %d-%d not ordered", c.I, c.J)
		}
		if k > 0 {
			prev := r1.Contacts[k-1]
			if prev.I > c.I || (prev.I == c.I && prev.J >= c.J) {
				Te.Errorf("contacts not sorted: %d-%d before %d-%d", prev.I, prev.J, c.I, c.J)
			}
		}
		sum[c.I] += c.Degree
		sum[c.J] += c.Degree
		if c.Info != "" {
			Te.Errorf("no contact info expected without verbose mode")
		}
	}
	if diff := cmp.Diff(sum, r1.SumDegree, cmpopts.EquateApprox(0, 1e-12)); diff != "" {
		Te.Errorf("sum of degrees (-want +got):\n%s", diff)
	}
	for i, f := range r1.Freedom {
		if f < 0 || f > 1 {
			Te.Errorf("position %d with freedom %f", i, f)
		}
	}
}

func TestComputeVerbose(Te *testing.T) {
	ens := helixEnsembles(Te, 5)
	o := DefaultOptions()
	o.Verbose(true)
	r := Compute(ens, o)
	for _, c := range r.Contacts {
		if !strings.Contains(c.Info, " -- ") {
			Te.Errorf("contact %d-%d should carry the rotamer pairs in verbose mode", c.I, c.J)
		}
	}
}
