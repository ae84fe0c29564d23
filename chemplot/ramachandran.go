/*
 * ramachandran.go, part of condeg
 *
 * Copyright 2012 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
 *
    This program is free software: you can redistribute it and/or modify
    it under the terms of the GNU Lesser General Public License as published by
    the Free Software Foundation, either version 2.1 of the License, or
    (at your option) any later version.

    This program is distributed in the hope that it will be useful,
    but WITHOUT ANY WARRANTY; without even the implied warranty of
    MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
    GNU General Public License for more details.

    You should have received a copy of the GNU Lesser General Public License
    along with this program.  If not, see <http://www.gnu.org/licenses/>.
 *
 *
*/

// Package chemplot produces plots of the backbone conformation and of the per-position
// statistics of a contact degree analysis.
package chemplot

import (
	"fmt"
	"image/color"
	"math"

	chem "github.com/rmera/condeg"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

func basicRamaPlot(title string) *plot.Plot {
	p := plot.New()
	p.Title.Padding = 3 * vg.Millimeter
	p.Title.Text = title //"Ramachandran plot"
	p.X.Label.Text = "Phi"
	p.Y.Label.Text = "Psi"
	//Constant axes
	p.X.Min = -180
	p.X.Max = 180
	p.Y.Min = -180
	p.Y.Max = 180
	p.Add(plotter.NewGrid())
	return p
}

// RamaPlot produces a Ramachandran plot, in PNG format, for the phi and psi angles in angles (each element
// contains phi, psi and omega, in degrees). Positions with undefined angles are not plotted. The points in tag
// (maximun 4) are highlighted. The .png extension is added to plotname.
func RamaPlot(angles [][3]float64, tag []int, title, plotname string) error {
	if angles == nil {
		return chem.NewError("Given nil data", true, chem.ErrNilData, "chemplot.RamaPlot")
	}
	p := basicRamaPlot(title)
	temp := make(plotter.XYs, 1)
	var tagged int //How many residues have been tagged?
	for key, val := range angles {
		if val[0] == chem.UndefinedAngle || val[1] == chem.UndefinedAngle {
			continue
		}
		temp[0].X = val[0]
		temp[0].Y = val[1]
		s, err := plotter.NewScatter(temp)
		if err != nil {
			return chem.NewError(err.Error(), true, err, "chemplot.RamaPlot")
		}
		r, g, b := colors(key, len(angles))
		if isInInt(tag, key) {
			//an error here just means that the point will not be highlighted.
			s.GlyphStyle.Shape, _ = getShape(tagged)
			tagged++
		}
		s.GlyphStyle.Color = color.RGBA{R: r, B: b, G: g, A: 255}
		p.Add(s)
	}
	filename := fmt.Sprintf("%s.png", plotname)
	if err := p.Save(4*vg.Inch, 4*vg.Inch, filename); err != nil {
		return chem.NewError(err.Error(), true, err, "chemplot.RamaPlot")
	}
	return nil
}

// takes hue (0-360), v and s (0-1), returns r,g,b (0-255)
func iHVS2RGB(h, v, s float64) (uint8, uint8, uint8) {
	var i, f, p, q, t float64
	var r, g, b float64
	maxcolor := 255.0
	conversion := maxcolor * v
	if s == 0.0 {
		return uint8(conversion), uint8(conversion), uint8(conversion)
	}
	h = h / 60
	i = math.Floor(h)
	f = h - i
	p = v * (1 - s)
	q = v * (1 - s*f)
	t = v * (1 - s*(1-f))
	switch int(i) {
	case 0:
		r, g, b = v, t, p
	case 1:
		r, g, b = q, v, p
	case 2:
		r, g, b = p, v, t
	case 3:
		r, g, b = p, q, v
	case 4:
		r, g, b = t, p, v
	default: //case 5
		r, g, b = v, p, q
	}
	return uint8(r * conversion), uint8(g * conversion), uint8(b * conversion)
}

// colors returns the color for the element key out of steps, going from red to violet.
func colors(key, steps int) (r, g, b uint8) {
	if steps < 1 {
		steps = 1
	}
	norm := 260.0 / float64(steps)
	hp := float64((float64(key) * norm) + 20.0)
	var h float64
	if hp < 55 {
		h = hp - 20.0
	} else {
		h = hp + 20.0
	}
	return iHVS2RGB(h, 1.0, 1.0)
}

func getShape(tagged int) (draw.GlyphDrawer, error) {
	switch tagged {
	case 0:
		return draw.PyramidGlyph{}, nil
	case 1:
		return draw.CircleGlyph{}, nil
	case 2:
		return draw.SquareGlyph{}, nil
	case 3:
		return draw.CrossGlyph{}, nil
	default:
		return draw.RingGlyph{}, fmt.Errorf("Maximun number of taggable residues is 4") // you can still ignore the error and will get just the regular glyph (your residue will not be tagegd)
	}
}

func isInInt(container []int, test int) bool {
	for _, i := range container {
		if test == i {
			return true
		}
	}
	return false
}
