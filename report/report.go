/*
 * report.go, part of condeg.
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

// Package report writes the tab-separated, tag-prefixed lines of a contact degree analysis.
package report

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	chem "github.com/rmera/condeg"
)

// Line tags
const (
	SumDegree   = "sumcond"
	Freedom     = "freedom"
	Crowdedness = "crwdnes"
	FreeVolume  = "freevol"
)

// Columns sets the optional columns of the per-position lines.
type Columns struct {
	PhiPsi bool
	Omega  bool
	Source string //the name of the analyzed file. Not printed if empty.
}

// Writer writes report lines. After the first write error, all
// writes are no-ops, and the error is returned by Err, Flush and Close.
type Writer struct {
	w   *bufio.Writer
	c   io.Closer
	err error
}

// New returns a Writer over w.
func New(w io.Writer) *Writer {
	return &Writer{w: bufio.NewWriter(w)}
}

// Create creates the file name and returns a Writer for it. The
// report is compressed if name ends in .gz or .zst
func Create(name string) (*Writer, error) {
	f, err := chem.CreateFile(name)
	if err != nil {
		return nil, chem.ErrDecorate(err, "report.Create")
	}
	W := New(f)
	W.c = f
	return W, nil
}

func (W *Writer) printf(format string, a ...interface{}) {
	if W.err != nil {
		return
	}
	_, W.err = fmt.Fprintf(W.w, format, a...)
}

// Header writes the name of the analyzed structure, in its own line.
func (W *Writer) Header(name string) {
	W.printf("%s\n", name)
}

// Contact writes a contact line between the positions with IDs posI and posJ.
func (W *Writer) Contact(posI, posJ string, degree float64, aaI, aaJ string) {
	W.printf("contact\t%s\t%s\t%.6f\t%s\t%s\n", posI, posJ, degree, aaI, aaJ)
}

// Permanent writes a permanent contact line. These have a degree of -1.
func (W *Writer) Permanent(posI, posJ string, aaI, aaJ string) {
	W.printf("percont\t%s\t%s\t%.6f\t%s\t%s\n", posI, posJ, -1.0, aaI, aaJ)
}

// Metric writes a per-position line with the given tag. angles are phi, psi and omega,
// and are printed only if c requests it.
func (W *Writer) Metric(tag, pos string, value float64, angles [3]float64, aa string, c *Columns) {
	if c == nil {
		c = new(Columns)
	}
	W.printf("%s\t%s\t%.6f", tag, pos, value)
	if c.PhiPsi {
		W.printf("\t%.6f\t%.6f", angles[0], angles[1])
	}
	if c.Omega {
		W.printf("\t%.6f", angles[2])
	}
	W.printf("\t%s", aa)
	if c.Source != "" {
		W.printf("\t%s", c.Source)
	}
	W.printf("\n")
}

// Info writes s as is.
func (W *Writer) Info(s string) {
	W.printf("%s", s)
}

// Sequence writes the SEQUENCE line with the given residue names.
func (W *Writer) Sequence(names []string) {
	W.printf("SEQUENCE:")
	if len(names) > 0 {
		W.printf(" %s", strings.Join(names, " "))
	}
	W.printf("\n")
}

// Err returns the first error found while writing, if any.
func (W *Writer) Err() error {
	return W.err
}

// Flush writes any buffered data to the underlying writer.
func (W *Writer) Flush() error {
	if W.err != nil {
		return W.err
	}
	W.err = W.w.Flush()
	return W.err
}

// Close flushes the Writer and, if it was obtained with Create, closes the file.
func (W *Writer) Close() error {
	err := W.Flush()
	if W.c != nil {
		if cerr := W.c.Close(); err == nil {
			err = cerr
		}
		W.c = nil
	}
	return err
}
