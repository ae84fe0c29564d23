/*
 * histo.go, part of condeg.
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

// Package histo builds histograms of per-position statistics.
package histo

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strings"

	chem "github.com/rmera/condeg"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Data is a histogram.
type Data struct {
	name       string
	normalized bool
	total      int
	dividers   []float64
	histo      []float64
}

type jsonData struct {
	Name       string    `json:"name"`
	Normalized bool      `json:"normalized"`
	Total      int       `json:"total"`
	Dividers   []float64 `json:"dividers"`
	Histo      []float64 `json:"histo"`
}

func (D *Data) MarshalJSON() ([]byte, error) {
	return json.Marshal(jsonData{
		Name:       D.name,
		Normalized: D.normalized,
		Total:      D.total,
		Dividers:   D.dividers,
		Histo:      D.histo,
	})
}

func (D *Data) UnmarshalJSON(b []byte) error {
	var a jsonData
	if err := json.Unmarshal(b, &a); err != nil {
		return err
	}
	if len(a.Dividers) < 2 || len(a.Histo) != len(a.Dividers)-1 {
		return chem.NewError("Ill-formed histogram", true, chem.ErrFileFormat, "histo.Data.UnmarshalJSON")
	}
	D.name = a.Name
	D.normalized = a.Normalized
	D.total = a.Total
	D.dividers = a.Dividers
	D.histo = a.Histo
	return nil
}

// Name returns the name of the histogram.
func (D *Data) Name() string {
	return D.name
}

// String prints a -hopefully- pretty string representation of
// the histogram. The representation uses 3 lines of text.
func (D *Data) String() string {
	ret := fmt.Sprintf("%s, Normalized: %v, TotalData: %d\n", D.name, D.normalized, D.total)
	d := make([]string, 0, len(D.histo))
	h := make([]string, 0, len(D.histo))
	for i, v := range D.histo {
		d = append(d, fmt.Sprintf("%4.2f-%4.2f", D.dividers[i], D.dividers[i+1]))
		h = append(h, fmt.Sprintf("%9.3f", v))
	}
	return ret + fmt.Sprintf("%s\n%s", strings.Join(d, " "), strings.Join(h, " "))
}

// NewData returns a new histogram with the given name and dividers, filled with rawdata,
// which can be nil. Values out of the range of the dividers are omitted. The upper limit of the
// range is exclusive. rawdata is not modified.
func NewData(name string, dividers []float64, rawdata []float64) *Data {
	if len(dividers) < 2 {
		panic("condeg/histo: a histogram needs at least 2 dividers")
	}
	d := &Data{name: name}
	d.dividers = append([]float64(nil), dividers...)
	d.histo = make([]float64, len(dividers)-1)
	d.ReHisto(rawdata)
	return d
}

// Dividers returns n+1 dividers that split [min,max] into n bins of equal width.
// max is included in the last bin.
func Dividers(min, max float64, n int) []float64 {
	if n < 1 {
		n = 1
	}
	ret := make([]float64, n+1)
	floats.Span(ret, min, max)
	ret[n] = math.Nextafter(max, math.Inf(1))
	return ret
}

// AddData adds the given data point(s) to the histogram
func (D *Data) AddData(point ...float64) {
	norma := D.normalized
	if norma {
		D.UnNormalize()
	}
	for _, v := range point {
		//Values out of range are omitted.
		if v < D.dividers[0] || v >= D.dividers[len(D.dividers)-1] {
			continue
		}
		D.histo[sort.SearchFloat64s(D.dividers, math.Nextafter(v, math.Inf(1)))-1]++
		D.total++
	}
	if norma {
		D.Normalize()
	}
}

// Normalized returns true if the histogram is normalized
func (D *Data) Normalized() bool {
	return D.normalized
}

// Normalize normalizes the histogram
func (D *Data) Normalize() {
	D.normaunnorma(true)
}

// UnNormalize un-normalizes the histogram
func (D *Data) UnNormalize() {
	D.normaunnorma(false)
}

// normalizes or un-normalizes the histogram depending
// on whether normalize is true
func (D *Data) normaunnorma(normalize bool) {
	if D.total <= 0 || D.normalized == normalize {
		return
	}
	n := float64(D.total)
	D.normalized = false
	if normalize {
		n = 1 / float64(D.total)
		D.normalized = true
	}
	floats.Scale(n, D.histo)
}

// Total returns the number of values in the histogram.
func (D *Data) Total() int {
	return D.total
}

// CopyDividers copies the dividers of the histogram
func (D *Data) CopyDividers() []float64 {
	return append([]float64(nil), D.dividers...)
}

// View returns the counts (or frequencies, if normalized) of the histogram, not a copy.
func (D *Data) View() []float64 {
	return D.histo
}

// Add adds the histograms a and b putting the result in the receiver. The dividers
// of a and b must be the same, and neither can be normalized.
func (D *Data) Add(a, b *Data) error {
	if !floats.Equal(a.dividers, b.dividers) {
		return chem.NewError("Dividers must match in added histograms", true, chem.ErrNilData, "histo.Data.Add")
	}
	if a.normalized || b.normalized {
		return chem.NewError("Can't add normalized histograms", true, chem.ErrNilData, "histo.Data.Add")
	}
	h := make([]float64, len(a.histo))
	floats.AddTo(h, a.histo, b.histo)
	D.dividers = a.CopyDividers()
	D.histo = h
	D.total = a.total + b.total
	D.normalized = false
	return nil
}

// Sum returns the sum of the bins.
func (D *Data) Sum() float64 {
	return floats.Sum(D.histo)
}

// ReHisto replaces the contents of the histogram with rawdata.
func (D *Data) ReHisto(rawdata []float64) {
	data := append([]float64(nil), rawdata...)
	sort.Float64s(data)
	//stat.Histogram just panics instead of omitting the values that are off limits
	//so we remove them here before the call.
	maxi := sort.SearchFloat64s(data, D.dividers[len(D.dividers)-1])
	mini := sort.SearchFloat64s(data, D.dividers[0])
	data = data[mini:maxi]
	D.total = len(data)
	D.normalized = false
	if len(data) == 0 {
		D.histo = make([]float64, len(D.dividers)-1)
		return
	}
	D.histo = stat.Histogram(nil, D.dividers, data, nil)
}
