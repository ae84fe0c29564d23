/*
 * plot_test.go
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
 *
 */

package chemplot

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	chem "github.com/rmera/condeg"
)

// TestRama builds a short helix and plots its phi and psi angles,
// tagging the third residue.
func TestRama(Te *testing.T) {
	names := []string{"ALA", "GLY", "SER", "LEU", "LYS"}
	pp := [][2]float64{{-57, -47}, {-60, -40}, {-120, 130}, {-57, -47}, {-65, -40}}
	mol, err := chem.BuildBackbone("A", names, pp)
	if err != nil {
		Te.Fatal(err)
	}
	angles := chem.BackboneAngles(chem.Residues(mol, mol.Coords[0]))
	name := filepath.Join(Te.TempDir(), "Rama")
	if err := RamaPlot(angles, []int{2}, "Test Ramachandran", name); err != nil {
		Te.Fatal(err)
	}
	if st, err := os.Stat(name + ".png"); err != nil || st.Size() == 0 {
		Te.Errorf("no plot written: %v", err)
	}
}

func TestMetricPlot(Te *testing.T) {
	ids := []string{"A,1", "A,2", "A,3"}
	series := map[string][]float64{"crwdnes": {0.1, 0.5, 0.9}, "freevol": {0.8, 0.4, 0.2}}
	name := filepath.Join(Te.TempDir(), "metrics")
	if err := MetricPlot(ids, series, "Test", name); err != nil {
		Te.Fatal(err)
	}
	if _, err := os.Stat(name + ".png"); err != nil {
		Te.Error(err)
	}
	long := make([]string, 2*maxNominal)
	vals := make([]float64, len(long))
	for i := range long {
		long[i] = fmt.Sprintf("A,%d", i+1)
		vals[i] = float64(i%7) / 7
	}
	if err := MetricPlot(long, map[string][]float64{"crwdnes": vals}, "Test", name+"_long"); err != nil {
		Te.Fatal(err)
	}
	if st, err := os.Stat(name + "_long.png"); err != nil || st.Size() == 0 {
		Te.Errorf("no plot written for a long profile: %v", err)
	}
	series["bad"] = []float64{1}
	if err := MetricPlot(ids, series, "Test", name); !errors.Is(err, chem.ErrNilData) {
		Te.Errorf("expected an error for a short series, got %v", err)
	}
}

func TestColors(Te *testing.T) {
	r, g, b := colors(0, 10)
	if r != 255 || b != 0 {
		Te.Errorf("the first color should be red, got %d %d %d", r, g, b)
	}
	if _, err := getShape(4); err == nil {
		Te.Error("only 4 points can be tagged")
	}
}
