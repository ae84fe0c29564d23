/*
 * histograms.go, part of condeg.
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

package condeg

import (
	"encoding/json"
	"io"
	"math"

	chem "github.com/rmera/condeg"
	"github.com/rmera/condeg/histo"
	"github.com/rmera/condeg/report"
)

// Histograms returns the distributions, with the given number of bins, of the degrees of the contacts
// and of each per-position statistic. All of them span [0,1], except for the sum of contact degrees,
// which spans from 0 to its maximum value.
func (A *Analysis) Histograms(bins int) []*histo.Data {
	_, series := A.Profiles()
	unit := histo.Dividers(0, 1, bins)
	var ret []*histo.Data
	if A.Contacts != nil {
		degrees := make([]float64, len(A.Contacts))
		for i, c := range A.Contacts {
			degrees[i] = c.Degree
		}
		ret = append(ret, histo.NewData("contact", unit, degrees))
		max := 0.0
		for _, v := range A.SumDegree {
			max = math.Max(max, v)
		}
		if max == 0 {
			max = 1
		}
		ret = append(ret, histo.NewData(report.SumDegree, histo.Dividers(0, max, bins), A.SumDegree))
		ret = append(ret, histo.NewData(report.Freedom, unit, series[report.Freedom]))
	}
	ret = append(ret, histo.NewData(report.Crowdedness, unit, series[report.Crowdedness]))
	ret = append(ret, histo.NewData(report.FreeVolume, unit, series[report.FreeVolume]))
	for _, h := range ret {
		h.Normalize()
	}
	return ret
}

// WriteHistograms writes the histograms of the analysis, with the given number of bins, to w, in JSON format.
func (A *Analysis) WriteHistograms(w io.Writer, bins int) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(A.Histograms(bins)); err != nil {
		return chem.NewError(err.Error(), true, err, "Analysis.WriteHistograms")
	}
	return nil
}
