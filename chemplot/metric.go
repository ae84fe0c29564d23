/*
 * metric.go, part of condeg.
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

package chemplot

import (
	"fmt"
	"image/color"
	"sort"

	chem "github.com/rmera/condeg"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// Above this number of positions, the X axis is labeled with sequential numbers
// instead of position IDs.
const maxNominal = 40

// MetricPlot plots, in PNG format, a profile along the positions with IDs ids for each series in series,
// which must all have one value per position. The series are drawn in the order of their names.
// The .png extension is added to plotname.
func MetricPlot(ids []string, series map[string][]float64, title, plotname string) error {
	if len(series) == 0 || len(ids) == 0 {
		return chem.NewError("Given nil data", true, chem.ErrNilData, "chemplot.MetricPlot")
	}
	names := make([]string, 0, len(series))
	for k, v := range series {
		if len(v) != len(ids) {
			return chem.NewError(fmt.Sprintf("Series %s has %d values for %d positions", k, len(v), len(ids)), true, chem.ErrNilData, "chemplot.MetricPlot")
		}
		names = append(names, k)
	}
	sort.Strings(names)
	p := plot.New()
	p.Title.Padding = 3 * vg.Millimeter
	p.Title.Text = title
	p.X.Label.Text = "Position"
	p.Y.Label.Text = "Value"
	p.Add(plotter.NewGrid())
	if len(ids) <= maxNominal {
		p.NominalX(ids...)
	}
	for key, name := range names {
		pts := make(plotter.XYs, len(ids))
		for i, v := range series[name] {
			pts[i].X = float64(i)
			pts[i].Y = v
		}
		l, err := plotter.NewLine(pts)
		if err != nil {
			return chem.NewError(err.Error(), true, err, "chemplot.MetricPlot")
		}
		r, g, b := colors(key, len(names))
		l.LineStyle.Color = color.RGBA{R: r, G: g, B: b, A: 255}
		l.LineStyle.Width = vg.Points(1)
		p.Add(l)
		p.Legend.Add(name, l)
	}
	p.Legend.Top = true
	width := 6 * vg.Inch
	if len(ids) > maxNominal {
		width = vg.Length(len(ids)) * 1.5 * vg.Millimeter
	}
	if err := p.Save(width, 4*vg.Inch, plotname+".png"); err != nil {
		return chem.NewError(err.Error(), true, err, "chemplot.MetricPlot")
	}
	return nil
}
