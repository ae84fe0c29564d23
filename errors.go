/*
 * errors.go, part of condeg.
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
	"errors"
	"strings"
)

// Sentinel errors. CErrors unwrap to one of these, so they can be
// tested with errors.Is.
var (
	ErrNilData           = errors.New("nil or empty data")
	ErrMissingPropensity = errors.New("no propensity defined for amino acid")
	ErrBadPropensity     = errors.New("malformed propensity table")
	ErrBadSelection      = errors.New("malformed selection")
	ErrNoSelection       = errors.New("selection matched no residues")
	ErrFileFormat        = errors.New("malformed structure file")
)

// CError is the error type of the chem package.
type CError struct {
	msg      string
	deco     []string
	critical bool
	err      error
}

// NewError returns a CError with the message msg, wrapping err, and
// decorated with deco.
func NewError(msg string, critical bool, err error, deco ...string) *CError {
	return &CError{msg: msg, deco: deco, critical: critical, err: err}
}

// Error returns a string with an error message.
func (err *CError) Error() string {
	if len(err.deco) == 0 {
		return err.msg
	}
	return strings.Join(err.deco, ": ") + ": " + err.msg
}

// Decorate will add the dec string to the decoration slice of strings of the error,
// and return the resulting slice.
func (err *CError) Decorate(dec string) []string {
	if dec == "" {
		return err.deco
	}
	err.deco = append([]string{dec}, err.deco...)
	return err.deco
}

// Critical returns whether the error should stop the run.
func (err *CError) Critical() bool { return err.critical }

// Unwrap returns the sentinel error wrapped by err, if any.
func (err *CError) Unwrap() error { return err.err }

// ErrDecorate decorates err with caller if err implements chem.Error,
// and returns it. Other errors are returned unchanged.
func ErrDecorate(err error, caller string) error {
	if err == nil {
		return nil
	}
	var e Error
	if errors.As(err, &e) {
		e.Decorate(caller)
	}
	return err
}

// IsCritical returns true if err, or an error it wraps, is a critical chem error.
func IsCritical(err error) bool {
	var e CriticalError
	if errors.As(err, &e) {
		return e.Critical()
	}
	return false
}

// PanicMsg is a message used for panics, even though it does satisfy the error interface.
// for errors use CError.
type PanicMsg string

func (v PanicMsg) Error() string { return string(v) }

const (
	ErrNilAtom        = PanicMsg("condeg: Attempted to copy from or to a nil Atom")
	ErrAtomOutOfRange = PanicMsg("condeg: Requested/Put atom out of range")
	ErrColinear       = PanicMsg("condeg: Can't place an atom from colinear reference points")
)
