// biasedurn - Fisher's noncentral hypergeometric distribution for Go
// Copyright 2017-2021 SIGNAL18 CLOUD SAS
// Authors: Guillaume Lefranc <guillaume@signal18.io>
//          Stephane Varoqui  <svaroqui@gmail.com>
// This source code is licensed under the GNU General Public License, version 3.
// Redistribution/Reuse of this code is permitted under the GNU v3 license, as
// an additional term, ALL code must carry the original Author(s) credit in comment form.
// See LICENSE in this directory for the integral text.

// Package numeric holds the log factorial and tail length helpers used by
// the noncentral hypergeometric engines.
package numeric

import (
	"math"

	"github.com/aclements/go-moremath/mathx"
	"github.com/aclements/go-moremath/stats"
)

// FacTableLen is the number of log factorials kept in memory. LnFac
// answers from the table below this bound and uses a Stirling series above.
const FacTableLen = 1024

const (
	lnSqrt2Pi = 0.918938533204672722 // ln(sqrt(2*pi))
	stirling1 = 1. / 12.
	stirling3 = -1. / 360.
	stirling5 = 1. / 1260.
	stirling7 = -1. / 1680.
)

var facTable = makeFacTable()

func makeFacTable() [FacTableLen]float64 {
	var t [FacTableLen]float64
	sum := 0.
	for i := 1; i < FacTableLen; i++ {
		sum += math.Log(float64(i))
		t[i] = sum
	}
	return t
}

// LnFac returns the natural logarithm of n!.
func LnFac(n int) float64 {
	if n < FacTableLen {
		if n <= 1 {
			if n < 0 {
				panic("numeric: LnFac of negative number")
			}
			return 0
		}
		return facTable[n]
	}
	n1 := float64(n)
	r := 1. / n1
	return (n1+0.5)*math.Log(n1) - n1 + lnSqrt2Pi + r*(stirling1+r*r*stirling3)
}

// LnFacr returns the natural logarithm of x! for non-integer x >= 0,
// gamma(x+1) in other words.
func LnFacr(x float64) float64 {
	ix := int(x)
	if x == float64(ix) {
		return LnFac(ix)
	}
	d := 1.
	if x < 6. {
		for x < 6 {
			x++
			d *= x
		}
	}
	r := 1. / x
	r2 := r * r
	f := (x+0.5)*math.Log(x) - x + lnSqrt2Pi + r*(stirling1+r2*(stirling3+r2*(stirling5+r2*stirling7)))
	if d != 1. {
		f -= math.Log(d)
	}
	return f
}

// FallingFactorial returns ln(a*(a-1)*(a-2)*...*(a-b+1)).
func FallingFactorial(a, b float64) float64 {
	if b < 30 && float64(int(b)) == b && a < 1e10 {
		// direct product
		f := 1.
		for i := 0; float64(i) < b; i++ {
			f *= a
			a--
		}
		return math.Log(f)
	}
	if a > 100.*b && b > 1. {
		// combine the Stirling series of a and a-b; -log(1-b/a) by Taylor expansion
		ar := 1. / a
		cr := 1. / (a - b)
		s, lasts, n, ba := 0., 0., 1., b*ar
		f := ba
		for {
			lasts = s
			s += f / n
			f *= ba
			n++
			if s == lasts {
				break
			}
		}
		return (a+0.5)*s + b*math.Log(a-b) - b + stirling1*(ar-cr)
	}
	return LnFacr(a) - LnFacr(a-b)
}

// LnChoose returns the natural logarithm of the binomial coefficient
// n over k, or -Inf when k is outside [0,n].
func LnChoose(n, k int) float64 {
	if k < 0 || k > n {
		return math.Inf(-1)
	}
	return mathx.Lchoose(n, k)
}

// NumSD returns how many standard deviations a summation interval must
// span so that the mass left outside is below accuracy. The result is an
// integer between 6 and 16: twice the two-sided normal fractile, rounded
// up.
func NumSD(accuracy float64) float64 {
	if accuracy >= 1 {
		return 6
	}
	if accuracy <= 0 {
		return 16
	}
	z := stats.StdNormal.InvCDF(1 - accuracy/2)
	sd := math.Ceil(2*z - 1e-9)
	if sd < 6 {
		sd = 6
	}
	if sd > 16 {
		sd = 16
	}
	return sd
}
