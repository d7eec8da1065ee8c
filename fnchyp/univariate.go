// biasedurn - Fisher's noncentral hypergeometric distribution for Go
// Copyright 2017-2021 SIGNAL18 CLOUD SAS
// Authors: Guillaume Lefranc <guillaume@signal18.io>
//          Stephane Varoqui  <svaroqui@gmail.com>
// This source code is licensed under the GNU General Public License, version 3.
// Redistribution/Reuse of this code is permitted under the GNU v3 license, as
// an additional term, ALL code must carry the original Author(s) credit in comment form.
// See LICENSE in this directory for the integral text.

// Package fnchyp computes Fisher's noncentral hypergeometric distribution,
// univariate and multivariate.
//
// An engine caches intermediate sums on first use. Distinct engines share
// nothing, but a single engine must not be used from several goroutines
// at once.
package fnchyp

import (
	"math"

	"github.com/signal18/biasedurn/utils/numeric"
)

// Univariate is Fisher's noncentral hypergeometric distribution of the
// number of items of color A drawn when taking n items out of an urn of N
// items, m of them of color A, where an A item has odds times the weight of
// the other items.
type Univariate struct {
	n, m, N  int
	odds     float64
	logodds  float64
	accuracy float64
	xmin     int
	xmax     int

	cursor   lnCursor
	scale    float64
	rsum     float64
	haveRsum bool

	cdf      []float64 // cumulative table, built by the first CDF or Quantile call
	cdfFirst int
}

// NewUnivariate validates the parameters and returns a new engine.
// accuracy is clamped to [0,1]; 1e-8 is a sensible default.
func NewUnivariate(n, m, N int, odds, accuracy float64) (*Univariate, error) {
	if n < 0 || m < 0 || N < 0 || n > N || m > N {
		return nil, newError(InvalidParameter, "NewUnivariate", "n=%d m=%d N=%d out of range", n, m, N)
	}
	if odds < 0 || math.IsNaN(odds) || math.IsInf(odds, 0) {
		return nil, newError(InvalidParameter, "NewUnivariate", "odds=%v out of range", odds)
	}
	if accuracy < 0 || math.IsNaN(accuracy) {
		accuracy = 0
	}
	if accuracy > 1 {
		accuracy = 1
	}
	d := &Univariate{
		n:        n,
		m:        m,
		N:        N,
		odds:     odds,
		logodds:  math.Log(odds),
		accuracy: accuracy,
		xmin:     m + n - N,
		xmax:     n,
	}
	if d.xmin < 0 {
		d.xmin = 0
	}
	if d.xmax > m {
		d.xmax = m
	}
	return d, nil
}

// Support returns the first and last x with nonzero probability.
func (d *Univariate) Support() (xmin, xmax int) {
	return d.xmin, d.xmax
}

// Mode returns the exact mode.
func (d *Univariate) Mode() int {
	// Liao and Rosen, The American Statistician 55(4), 2001, with sgn(b)
	// replaced by -1.
	var x float64
	if d.odds == 1. {
		x = (float64(d.m) + 1.) * (float64(d.n) + 1.) / (float64(d.N) + 2.)
	} else {
		L := float64(d.m + d.n - d.N)
		m1, n1 := float64(d.m+1), float64(d.n+1)
		A := 1. - d.odds
		B := (m1+n1)*d.odds - L
		C := -m1 * n1 * d.odds
		D := B*B - 4*A*C
		if D > 0. {
			D = math.Sqrt(D)
		} else {
			D = 0.
		}
		x = (D - B) / (A + A)
	}
	mode := int(x)
	if mode < d.xmin {
		mode = d.xmin
	}
	if mode > d.xmax {
		mode = d.xmax
	}
	return mode
}

// Mean returns the Cornfield approximation of the mean.
func (d *Univariate) Mean() float64 {
	if d.n == 0 {
		return 0
	}
	n, m, N := float64(d.n), float64(d.m), float64(d.N)
	if d.odds == 1. {
		return m * n / N
	}
	a := (m+n)*d.odds + (N - m - n)
	b := a*a - 4.*d.odds*(d.odds-1.)*m*n
	if b > 0. {
		b = math.Sqrt(b)
	} else {
		b = 0.
	}
	return (a - b) / (2. * (d.odds - 1.))
}

// Variance returns a fast but poor approximation of the variance. Use
// Moments for an exact value.
func (d *Univariate) Variance() float64 {
	my := d.Mean()
	n, m, N := float64(d.n), float64(d.m), float64(d.N)
	r1 := my * (m - my)
	r2 := (n - my) * (my + N - n - m)
	if r1 <= 0. || r2 <= 0. {
		return 0.
	}
	v := N * r1 * r2 / ((N - 1) * (m*r2 + (N-m)*r1))
	if v < 0. {
		v = 0.
	}
	return v
}

// Moments sums the probability function outward from the approximate mean
// and returns the exact mean and variance. sum is the total probability
// visited; it should be close to 1.
func (d *Univariate) Moments() (mean, variance, sum float64, err error) {
	var sxy, sxxy float64
	accur := 0.1 * d.accuracy
	xm := int(d.Mean())
	for x := xm; x <= d.xmax; x++ {
		y, err := d.Probability(x)
		if err != nil {
			return 0, 0, 0, err
		}
		// offsets from xm keep the sums small
		x1 := float64(x - xm)
		sum += y
		sxy += x1 * y
		sxxy += x1 * x1 * y
		if y < accur && x != xm {
			break
		}
	}
	for x := xm - 1; x >= d.xmin; x-- {
		y, err := d.Probability(x)
		if err != nil {
			return 0, 0, 0, err
		}
		x1 := float64(x - xm)
		sum += y
		sxy += x1 * y
		sxxy += x1 * x1 * y
		if y < accur {
			break
		}
	}
	me1 := sxy / sum
	mean = me1 + float64(xm)
	variance = sxxy/sum - me1*me1
	if variance < 0 {
		variance = 0
	}
	return mean, variance, sum, nil
}

// Probability returns the probability of drawing exactly x items of color A.
func (d *Univariate) Probability(x int) (float64, error) {
	if x < d.xmin || x > d.xmax {
		return 0, nil
	}
	if d.n == 0 {
		return 1., nil
	}
	if d.odds == 1. {
		// central hypergeometric
		m, N, n := d.m, d.N, d.n
		return math.Exp(
			numeric.LnFac(m) - numeric.LnFac(x) - numeric.LnFac(m-x) +
				numeric.LnFac(N-m) - numeric.LnFac(n-x) - numeric.LnFac((N-m)-(n-x)) -
				(numeric.LnFac(N) - numeric.LnFac(n) - numeric.LnFac(N-n))), nil
	}
	if d.odds == 0. {
		if d.n > d.N-d.m {
			return 0, newError(InvalidArgument, "Probability", "not enough items with nonzero weight")
		}
		if x == 0 {
			return 1., nil
		}
		return 0., nil
	}
	if !d.haveRsum {
		d.sumAll()
	}
	return math.Exp(d.lng(x)) * d.rsum, nil
}

// sumAll stores the reciprocal of the proportional function summed over
// every x that is not negligible.
func (d *Univariate) sumAll() {
	accur := 0.1 * d.accuracy
	x1 := int(d.Mean())
	if x1 < d.xmin {
		x1 = d.xmin
	}
	x2 := x1 + 1
	d.scale = 0.
	d.scale = d.lng(x1)
	rsum := 1.
	for x1--; x1 >= d.xmin; x1-- {
		y := math.Exp(d.lng(x1))
		rsum += y
		if y < accur {
			break
		}
	}
	for ; x2 <= d.xmax; x2++ {
		y := math.Exp(d.lng(x2))
		rsum += y
		if y < accur {
			break
		}
	}
	d.rsum = 1. / rsum
	d.haveRsum = true
}

// ProbabilityRatio returns f(x)/f(x0) without normalizing, which is much
// cheaper than two Probability calls.
func (d *Univariate) ProbabilityRatio(x, x0 int) (float64, error) {
	if x < d.xmin || x > d.xmax {
		return 0., nil
	}
	if x0 < d.xmin || x0 > d.xmax {
		return 0, newError(InvalidArgument, "ProbabilityRatio", "x0=%d outside support [%d,%d]", x0, d.xmin, d.xmax)
	}
	dx := x - x0
	if dx == 0 {
		return 1., nil
	}
	invert := false
	if dx < 0 {
		invert = true
		dx = -dx
		x, x0 = x0, x
	}
	a1 := float64(d.m - x0)
	a2 := float64(d.n - x0)
	a3 := float64(x)
	a4 := float64(d.N - d.m - d.n + x)
	var f1 float64
	if dx <= 28 && x <= 100000 {
		// direct product, small enough not to overflow
		f1 = 1.
		f2 := 1.
		for y := 0; y < dx; y++ {
			f1 *= a1 * a2
			f2 *= a3 * a4
			a1--
			a2--
			a3--
			a4--
		}
		// odds^dx by squaring
		f3, f4 := 1., d.odds
		for y := uint(dx); y != 0; y >>= 1 {
			if f4 < 1e-100 {
				f3 = 0.
				break
			}
			if y&1 != 0 {
				f3 *= f4
			}
			f4 *= f4
		}
		f1 = f3 * f1 / f2
		if invert {
			f1 = 1. / f1
		}
	} else {
		fdx := float64(dx)
		f1 = numeric.FallingFactorial(a1, fdx) + numeric.FallingFactorial(a2, fdx) -
			numeric.FallingFactorial(a3, fdx) - numeric.FallingFactorial(a4, fdx) +
			fdx*math.Log(d.odds)
		if invert {
			f1 = -f1
		}
		f1 = math.Exp(f1)
	}
	return f1, nil
}

// lng returns the natural log of the proportional function at x, minus
// the current scale.
func (d *Univariate) lng(x int) float64 {
	d.cursor.update(x, d.n, d.m, d.N-d.m)
	return d.cursor.mFac - d.cursor.xFac + float64(x)*d.logodds - d.scale
}
