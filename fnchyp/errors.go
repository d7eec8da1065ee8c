// biasedurn - Fisher's noncentral hypergeometric distribution for Go
// Copyright 2017-2021 SIGNAL18 CLOUD SAS
// Authors: Guillaume Lefranc <guillaume@signal18.io>
//          Stephane Varoqui  <svaroqui@gmail.com>
// This source code is licensed under the GNU General Public License, version 3.
// Redistribution/Reuse of this code is permitted under the GNU v3 license, as
// an additional term, ALL code must carry the original Author(s) credit in comment form.
// See LICENSE in this directory for the integral text.

package fnchyp

import (
	"errors"
	"fmt"
)

// ErrorKind classifies the failures an engine can report.
type ErrorKind int

const (
	// InvalidParameter is returned by the constructors for parameter sets
	// that do not describe a distribution.
	InvalidParameter ErrorKind = iota + 1
	// InvalidArgument is returned when a call argument makes the requested
	// value undefined.
	InvalidArgument
	// NoConvergence is returned when the multivariate mean iteration hits
	// its iteration cap.
	NoConvergence
)

func (k ErrorKind) String() string {
	switch k {
	case InvalidParameter:
		return "invalid parameter"
	case InvalidArgument:
		return "invalid argument"
	case NoConvergence:
		return "no convergence"
	}
	return "unknown"
}

// Error is the error type returned by the engines. Out of support queries
// are not errors, they return a zero probability.
type Error struct {
	Kind ErrorKind
	Op   string
	Msg  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s: %s", e.Op, e.Kind, e.Msg)
}

func newError(kind ErrorKind, op string, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Op: op, Msg: fmt.Sprintf(format, args...)}
}

func isKind(err error, kind ErrorKind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}

// IsInvalidParameter reports whether err was caused by an invalid constructor parameter.
func IsInvalidParameter(err error) bool { return isKind(err, InvalidParameter) }

// IsInvalidArgument reports whether err was caused by an invalid call argument.
func IsInvalidArgument(err error) bool { return isKind(err, InvalidArgument) }

// IsNoConvergence reports whether err was caused by a mean iteration that did not converge.
func IsNoConvergence(err error) bool { return isKind(err, NoConvergence) }
