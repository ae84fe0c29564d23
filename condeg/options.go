/*
 * options.go, part of condeg.
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
	"io"
	"runtime"

	chem "github.com/rmera/condeg"
)

// Options contains the parameters for a contact degree analysis.
type Options struct {
	clashDist float64
	contDist  float64
	cutoff    float64
	cpus      int
	verbose   bool
	contacts  bool
	renumber  bool
	presel    *chem.Selection
	focus     *chem.Selection
	expand    float64
	props     *chem.Propensities
	rout      io.Writer
}

// DefaultOptions returns an Options with the default values: 2.0 A clash distance,
// 3.0 A contact distance, 25 A cutoff, contacts calculated, the built-in propensities
// and no selections.
func DefaultOptions() *Options {
	return &Options{
		clashDist: 2.0,
		contDist:  3.0,
		cutoff:    25.0,
		cpus:      runtime.NumCPU(),
		contacts:  true,
		props:     chem.DefaultPropensities(),
	}
}

// ClashDist returns the distance below which a side chain atom clashes with a backbone atom,
// and sets it, if a valid value is given.
func (O *Options) ClashDist(d ...float64) float64 {
	ret := O.clashDist
	if len(d) > 0 && d[0] > 0 {
		O.clashDist = d[0]
	}
	return ret
}

// ContDist returns the distance below which 2 atoms are in contact,
// and sets it, if a valid value is given.
func (O *Options) ContDist(d ...float64) float64 {
	ret := O.contDist
	if len(d) > 0 && d[0] > 0 {
		O.contDist = d[0]
	}
	return ret
}

// Cutoff returns the coarse cutoff used to discard pairs of positions before
// scoring them, and sets it, if a valid value is given.
func (O *Options) Cutoff(d ...float64) float64 {
	ret := O.cutoff
	if len(d) > 0 && d[0] > 0 {
		O.cutoff = d[0]
	}
	return ret
}

// Cpus returns the number of gorutines to be used, and sets it, if a valid value is given.
func (O *Options) Cpus(n ...int) int {
	ret := O.cpus
	if len(n) > 0 && n[0] > 0 {
		O.cpus = n[0]
	}
	return ret
}

// Verbose returns whether progress is logged and the rotamer pairs in contact are reported,
// and sets it, if a value is given.
func (O *Options) Verbose(v ...bool) bool {
	ret := O.verbose
	if len(v) > 0 {
		O.verbose = v[0]
	}
	return ret
}

// Contacts returns whether contacts are calculated, and sets it, if a value is given.
// Without contacts, only crowdedness, free volume and permanent contacts are obtained.
func (O *Options) Contacts(v ...bool) bool {
	ret := O.contacts
	if len(v) > 0 {
		O.contacts = v[0]
	}
	return ret
}

// Renumber returns whether the structure is renumbered before the analysis,
// and sets it, if a value is given.
func (O *Options) Renumber(v ...bool) bool {
	ret := O.renumber
	if len(v) > 0 {
		O.renumber = v[0]
	}
	return ret
}

// PreSelection returns the selection that restricts the structure before anything else is
// done, and sets it, if a value is given. A nil selection keeps the whole structure.
func (O *Options) PreSelection(s ...*chem.Selection) *chem.Selection {
	ret := O.presel
	if len(s) > 0 {
		O.presel = s[0]
	}
	return ret
}

// Focus returns the selection of the positions analyzed, and sets it, if a value is given.
// The rest of the structure is still considered for clashes. A nil selection
// analyzes every position.
func (O *Options) Focus(s ...*chem.Selection) *chem.Selection {
	ret := O.focus
	if len(s) > 0 {
		O.focus = s[0]
	}
	return ret
}

// Expand returns the radius around the focus positions within which positions are also analyzed,
// and sets it, if a valid value is given. 0 means no expansion.
func (O *Options) Expand(r ...float64) float64 {
	ret := O.expand
	if len(r) > 0 && r[0] >= 0 {
		O.expand = r[0]
	}
	return ret
}

// Propensities returns the amino acid propensities used, and sets them, if a non-nil value is given.
func (O *Options) Propensities(p ...*chem.Propensities) *chem.Propensities {
	ret := O.props
	if len(p) > 0 && p[0] != nil {
		O.props = p[0]
	}
	return ret
}

// RotamerOutput returns the writer where the surviving rotamers are written, in PDB format,
// and sets it, if a value is given. nil means the rotamers are not written.
func (O *Options) RotamerOutput(w ...io.Writer) io.Writer {
	ret := O.rout
	if len(w) > 0 {
		O.rout = w[0]
	}
	return ret
}
