/*
 * selection.go, part of condeg.
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
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/rmera/condeg/spatial"
	v3 "github.com/rmera/condeg/v3"
)

// Selection is a residue selection. Selections are written as clauses joined by
// "and" and "or", "and" binding tighter. A clause can be preceded by "not" and is one of:
//
//	all
//	chain A,B
//	resid 10-20,25
//	resname ALA,GLY
//
// For instance "chain A and resid 20-30 or chain B".
type Selection struct {
	groups [][]clause //groups are or-ed, clauses in a group are and-ed
	text   string
}

type clause struct {
	kind   string
	not    bool
	names  []string
	ranges [][2]int
}

// ParseSelection parses the selection s.
func ParseSelection(s string) (*Selection, error) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return nil, NewError("Empty selection", true, ErrBadSelection, "ParseSelection")
	}
	S := &Selection{text: s, groups: [][]clause{{}}}
	expectclause := true
	for i := 0; i < len(fields); i++ {
		word := strings.ToLower(fields[i])
		if !expectclause {
			switch word {
			case "and":
			case "or":
				S.groups = append(S.groups, []clause{})
			default:
				return nil, NewError(fmt.Sprintf("Expected 'and' or 'or', got %q in %q", fields[i], s), true, ErrBadSelection, "ParseSelection")
			}
			expectclause = true
			continue
		}
		c := clause{}
		if word == "not" {
			c.not = true
			i++
			if i >= len(fields) {
				return nil, NewError("Dangling 'not' in "+s, true, ErrBadSelection, "ParseSelection")
			}
			word = strings.ToLower(fields[i])
		}
		c.kind = word
		switch word {
		case "all":
		case "chain", "resname", "resid":
			i++
			if i >= len(fields) {
				return nil, NewError(fmt.Sprintf("No values for %q in %q", word, s), true, ErrBadSelection, "ParseSelection")
			}
			values := strings.Split(fields[i], ",")
			if word == "resid" {
				r, err := parseRanges(values)
				if err != nil {
					return nil, NewError(fmt.Sprintf("%s in %q", err.Error(), s), true, ErrBadSelection, "ParseSelection")
				}
				c.ranges = r
			} else {
				c.names = values
			}
		default:
			return nil, NewError(fmt.Sprintf("Unknown selection keyword %q in %q", fields[i], s), true, ErrBadSelection, "ParseSelection")
		}
		last := len(S.groups) - 1
		S.groups[last] = append(S.groups[last], c)
		expectclause = false
	}
	if expectclause {
		return nil, NewError("Selection ends with an operator: "+s, true, ErrBadSelection, "ParseSelection")
	}
	return S, nil
}

func parseRanges(values []string) ([][2]int, error) {
	ret := make([][2]int, 0, len(values))
	for _, v := range values {
		if v == "" {
			continue
		}
		var err error
		var r [2]int
		//a leading minus sign is a negative residue number, not a range
		if d := strings.Index(v[1:], "-"); d >= 0 {
			r[0], err = strconv.Atoi(v[:d+1])
			if err == nil {
				r[1], err = strconv.Atoi(v[d+2:])
			}
		} else {
			r[0], err = strconv.Atoi(v)
			r[1] = r[0]
		}
		if err != nil {
			return nil, fmt.Errorf("invalid residue range %q", v)
		}
		if r[1] < r[0] {
			r[0], r[1] = r[1], r[0]
		}
		ret = append(ret, r)
	}
	if len(ret) == 0 {
		return nil, fmt.Errorf("empty residue list")
	}
	return ret, nil
}

// String returns the text the selection was parsed from.
func (S *Selection) String() string {
	return S.text
}

// Match returns true if the residue r is selected.
func (S *Selection) Match(r *Residue) bool {
	for _, group := range S.groups {
		ok := true
		for _, c := range group {
			if !c.match(r) {
				ok = false
				break
			}
		}
		if ok {
			return true
		}
	}
	return false
}

func (c clause) match(r *Residue) bool {
	var ret bool
	switch c.kind {
	case "all":
		ret = true
	case "chain":
		ret = isInString(c.names, r.Chain)
	case "resname":
		ret = isInString(c.names, r.Name)
	case "resid":
		for _, v := range c.ranges {
			if r.ID >= v[0] && r.ID <= v[1] {
				ret = true
				break
			}
		}
	}
	return ret != c.not
}

// Select returns the indexes of the residues matched by S.
func Select(res []*Residue, S *Selection) []int {
	ret := make([]int, 0, len(res))
	for i, r := range res {
		if S.Match(r) {
			ret = append(ret, i)
		}
	}
	return ret
}

// Expand returns the indexes in selected, plus those of every residue whose
// representative point is within radius of the representative point of a
// selected residue. The result is sorted.
func Expand(res []*Residue, selected []int, radius float64) []int {
	if radius <= 0 || len(selected) == 0 {
		ret := append([]int(nil), selected...)
		sort.Ints(ret)
		return ret
	}
	coords := v3.Zeros(len(res))
	ids := make([]int, len(res))
	for i, r := range res {
		p, _ := r.Representative()
		coords.SetVec(i, p)
		ids[i] = i
	}
	index := spatial.New(coords, ids)
	in := make(map[int]bool, len(selected))
	for _, v := range selected {
		in[v] = true
	}
	var buf []int
	for _, v := range selected {
		buf = index.Within(coords.Vec(v), radius, buf[:0])
		for _, j := range buf {
			in[j] = true
		}
	}
	ret := make([]int, 0, len(in))
	for k := range in {
		ret = append(ret, k)
	}
	sort.Ints(ret)
	return ret
}
