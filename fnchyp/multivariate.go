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
	"math"

	log "github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/floats"

	"github.com/signal18/biasedurn/utils/numeric"
)

// MaxColors is the largest number of colors a Multivariate accepts.
const MaxColors = 32

const (
	meanTolerance = 1e-5
	meanMaxIter   = 100
)

// Multivariate is the multivariate Fisher's noncentral hypergeometric
// distribution: n items drawn from an urn holding m[i] items of color i,
// each item of color i weighted by odds[i].
//
// Colors with zero items or zero odds are unused: they are never drawn and
// take no part in the sums.
type Multivariate struct {
	n        int
	colors   int
	accuracy float64
	N        int // all items
	Nu       int // items of used colors

	nonzero    []bool // per color
	usedColors int
	m          []int // used colors only from here on
	odds       []float64
	logodds    []float64
	mFac       float64

	fewColors bool // at most one used color
	equalOdds bool // central multivariate hypergeometric

	enumerated bool
	sn         int
	sx, sxx    []float64
	xm         []int
	scale      float64
	rsum       float64
}

// NewMultivariate validates the parameters and returns a new engine.
func NewMultivariate(n int, m []int, odds []float64, accuracy float64) (*Multivariate, error) {
	const op = "NewMultivariate"
	if len(m) != len(odds) {
		return nil, newError(InvalidParameter, op, "%d populations for %d odds", len(m), len(odds))
	}
	if len(m) > MaxColors {
		return nil, newError(InvalidParameter, op, "%d colors, at most %d supported", len(m), MaxColors)
	}
	if n < 0 {
		return nil, newError(InvalidParameter, op, "n=%d negative", n)
	}
	if accuracy < 0 || math.IsNaN(accuracy) {
		accuracy = 0
	}
	if accuracy > 1 {
		accuracy = 1
	}
	d := &Multivariate{
		n:         n,
		colors:    len(m),
		accuracy:  accuracy,
		nonzero:   make([]bool, len(m)),
		equalOdds: true,
	}
	for i := range m {
		if m[i] < 0 {
			return nil, newError(InvalidParameter, op, "m[%d]=%d negative", i, m[i])
		}
		if odds[i] < 0 || math.IsNaN(odds[i]) || math.IsInf(odds[i], 0) {
			return nil, newError(InvalidParameter, op, "odds[%d]=%v out of range", i, odds[i])
		}
		d.N += m[i]
		if m[i] == 0 || odds[i] == 0 {
			continue
		}
		if len(d.odds) > 0 && odds[i] != d.odds[len(d.odds)-1] {
			d.equalOdds = false
		}
		d.nonzero[i] = true
		d.m = append(d.m, m[i])
		d.odds = append(d.odds, odds[i])
		d.Nu += m[i]
	}
	d.usedColors = len(d.m)
	d.fewColors = d.usedColors <= 1
	if d.N < n {
		return nil, newError(InvalidParameter, op, "taking %d items out of %d", n, d.N)
	}
	if d.Nu < n {
		return nil, newError(InvalidParameter, op, "not enough items with nonzero weight: %d < %d", d.Nu, n)
	}
	d.logodds = make([]float64, d.usedColors)
	for i := 0; i < d.usedColors; i++ {
		d.mFac += numeric.LnFac(d.m[i])
		d.logodds[i] = math.Log(d.odds[i])
	}
	return d, nil
}

// Colors returns the number of colors, used or not.
func (d *Multivariate) Colors() int {
	return d.colors
}

// UsedColors returns the number of colors with both items and weight.
func (d *Multivariate) UsedColors() int {
	return d.usedColors
}

// resolve expands a per used color slice to all colors.
func (d *Multivariate) resolve(used []float64) []float64 {
	out := make([]float64, d.colors)
	j := 0
	for i := range out {
		if d.nonzero[i] {
			out[i] = used[j]
			j++
		}
	}
	return out
}

// Mean returns an approximation of the mean of each color. The
// calculation is reasonably fast.
func (d *Multivariate) Mean() ([]float64, error) {
	mu, err := d.mean1()
	if err != nil {
		return nil, err
	}
	return d.resolve(mu), nil
}

// mean1 is Mean over the used colors only.
func (d *Multivariate) mean1() ([]float64, error) {
	mu := make([]float64, d.usedColors)
	n, Nu := float64(d.n), float64(d.Nu)
	switch {
	case d.usedColors < 3:
		if d.usedColors == 1 {
			mu[0] = n
		}
		if d.usedColors == 2 {
			u, err := NewUnivariate(d.n, d.m[0], d.Nu, d.odds[0]/d.odds[1], d.accuracy)
			if err != nil {
				return nil, err
			}
			mu[0] = u.Mean()
			mu[1] = n - mu[0]
		}
	case d.n == d.Nu:
		// taking all items
		for i := range mu {
			mu[i] = float64(d.m[i])
		}
	default:
		mf := make([]float64, d.usedColors)
		for i := range mf {
			mf[i] = float64(d.m[i])
		}
		W := floats.Dot(mf, d.odds)
		r := n * Nu / ((Nu - n) * W)
		iter := 0
		if r > 0. {
			for {
				r1 := r
				q := 0.
				for i := range mf {
					q += mf[i] * r * d.odds[i] / (r*d.odds[i] + 1.)
				}
				r *= n * (Nu - q) / (q * (Nu - n))
				iter++
				if iter > meanMaxIter {
					return nil, newError(NoConvergence, "Mean", "no convergence after %d iterations", meanMaxIter)
				}
				if math.Abs(r-r1) <= meanTolerance {
					break
				}
			}
		}
		log.WithFields(log.Fields{"iterations": iter, "r": r}).Debug("Multivariate mean converged")
		for i := range mu {
			mu[i] = mf[i] * r * d.odds[i] / (r*d.odds[i] + 1.)
		}
	}
	return mu, nil
}

// Variance returns an approximation of the variance of each color, and the
// approximate mean used to compute it. The accuracy is not too good.
func (d *Multivariate) Variance() (variance, mean []float64, err error) {
	mu, err := d.mean1()
	if err != nil {
		return nil, nil, err
	}
	n, Nu := float64(d.n), float64(d.Nu)
	v := make([]float64, d.usedColors)
	for j := range mu {
		m := float64(d.m[j])
		r1 := mu[j] * (m - mu[j])
		r2 := (n - mu[j]) * (mu[j] + Nu - n - m)
		if r1 <= 0. || r2 <= 0. {
			continue
		}
		v[j] = Nu * r1 * r2 / ((Nu - 1) * (m*r2 + (Nu-m)*r1))
	}
	return d.resolve(v), d.resolve(mu), nil
}

// Probability returns the probability of drawing exactly x[i] items of
// each color i. The first call in the general case enumerates every
// combination that is not negligible, which may take a long time.
func (d *Multivariate) Probability(x []int) (float64, error) {
	if len(x) != d.colors {
		return 0, newError(InvalidArgument, "Probability", "%d values for %d colors", len(x), d.colors)
	}
	xu := make([]int, 0, d.usedColors)
	xsum := 0
	for i := range x {
		if d.nonzero[i] {
			xu = append(xu, x[i])
			xsum += x[i]
		} else if x[i] != 0 {
			// drawing items with zero weight
			return 0., nil
		}
	}
	if xsum != d.n {
		return 0., nil
	}
	for i := range xu {
		if xu[i] > d.m[i] || xu[i] < 0 || xu[i] < d.n-d.Nu+d.m[i] {
			return 0., nil
		}
	}

	if d.n == 0 || d.n == d.Nu || d.fewColors {
		return 1., nil
	}
	if d.usedColors == 2 {
		u, err := NewUnivariate(d.n, d.m[0], d.Nu, d.odds[0]/d.odds[1], d.accuracy)
		if err != nil {
			return 0, err
		}
		return u.Probability(xu[0])
	}
	if d.equalOdds {
		// multivariate central hypergeometric, one color at a time
		sx, sm := d.n, d.Nu
		p := 1.
		for i := 0; i < d.usedColors-1; i++ {
			p *= math.Exp(numeric.LnChoose(d.m[i], xu[i]) +
				numeric.LnChoose(sm-d.m[i], sx-xu[i]) -
				numeric.LnChoose(sm, sx))
			sx -= xu[i]
			sm -= d.m[i]
		}
		return p, nil
	}

	if !d.enumerated {
		if err := d.sumOfAll(); err != nil {
			return 0, err
		}
	}
	return math.Exp(d.lng(xu)) * d.rsum, nil
}

// Moments returns the mean and variance of each color, computed exactly
// from every combination that is not negligible, and the number of
// combinations visited.
func (d *Multivariate) Moments() (mean, variance []float64, combinations int, err error) {
	if !d.enumerated {
		if err := d.sumOfAll(); err != nil {
			return nil, nil, 0, err
		}
	}
	return d.resolve(d.sx), d.resolve(d.sxx), d.sn, nil
}

// lng returns the log of the proportional function at the used color
// counts x, minus the current scale.
func (d *Multivariate) lng(x []int) float64 {
	y := 0.
	for i := 0; i < d.usedColors; i++ {
		y += float64(x[i])*d.logodds[i] - numeric.LnFac(x[i]) - numeric.LnFac(d.m[i]-x[i])
	}
	return d.mFac + y - d.scale
}
