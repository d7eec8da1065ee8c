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
)

// enumerator walks every combination of used color counts that is not
// negligible and accumulates the proportional function and its first two
// moments.
type enumerator struct {
	d         *Multivariate
	remaining []int // items in the colors after c
	xi        []int // current combination
	sx, sxx   []float64
	sn        int
}

// sumOfAll sums the proportional function over all combinations with
// probability above accuracy. The mean and variance are by-products.
func (d *Multivariate) sumOfAll() error {
	if d.usedColors == 0 {
		d.rsum = 1.
		d.sn = 1
		d.enumerated = true
		return nil
	}
	mu, err := d.mean1()
	if err != nil {
		return err
	}

	// round the mean to integers summing to n
	xm := make([]int, d.usedColors)
	msum := 0
	for i := range xm {
		xm[i] = int(mu[i] + 0.4999999)
		msum += xm[i]
	}
	msum -= d.n
	for i := 0; msum < 0; i = (i + 1) % d.usedColors {
		if xm[i] < d.m[i] {
			xm[i]++
			msum++
		}
	}
	for i := 0; msum > 0; i = (i + 1) % d.usedColors {
		if xm[i] > 0 {
			xm[i]--
			msum--
		}
	}
	d.xm = xm

	// g(xm) becomes 1 so the sums stay in range
	d.scale = 0.
	d.scale = d.lng(xm)

	e := &enumerator{
		d:         d,
		remaining: make([]int, d.usedColors),
		xi:        make([]int, d.usedColors),
		sx:        make([]float64, d.usedColors),
		sxx:       make([]float64, d.usedColors),
	}
	msum = 0
	for i := d.usedColors - 1; i >= 0; i-- {
		e.remaining[i] = msum
		msum += d.m[i]
	}

	rsum := 1. / e.loop(d.n, 0)
	for i := range e.sx {
		e.sxx[i] = e.sxx[i]*rsum - e.sx[i]*e.sx[i]*rsum*rsum
		e.sx[i] = e.sx[i] * rsum
	}
	d.rsum = rsum
	d.sx, d.sxx, d.sn = e.sx, e.sxx, e.sn
	d.enumerated = true

	log.WithFields(log.Fields{
		"colors":       d.usedColors,
		"combinations": d.sn,
		"rsum":         rsum,
	}).Debug("Enumerated proportional function")
	return nil
}

// loop distributes n items over colors c and up and returns the sum of the
// proportional function over those combinations.
func (e *enumerator) loop(n, c int) float64 {
	d := e.d
	sum := 0.
	if c < d.usedColors-1 {
		// range of x[c] given x[0]..x[c-1]
		xmin := n - e.remaining[c]
		if xmin < 0 {
			xmin = 0
		}
		xmax := d.m[c]
		if xmax > n {
			xmax = n
		}
		x0 := d.xm[c]
		if x0 < xmin {
			x0 = xmin
		}
		if x0 > xmax {
			x0 = xmax
		}
		// s2 is the previous sub-sum; it carries over from the upward to
		// the downward sweep
		s2 := 0.
		for x := x0; x <= xmax; x++ {
			e.xi[c] = x
			s1 := e.loop(n-x, c+1)
			sum += s1
			if s1 < d.accuracy && s1 < s2 {
				break
			}
			s2 = s1
		}
		for x := x0 - 1; x >= xmin; x-- {
			e.xi[c] = x
			s1 := e.loop(n-x, c+1)
			sum += s1
			if s1 < d.accuracy && s1 < s2 {
				break
			}
			s2 = s1
		}
		return sum
	}

	// last color takes the rest
	e.xi[c] = n
	s1 := math.Exp(d.lng(e.xi))
	for i, x := range e.xi {
		fx := float64(x)
		e.sx[i] += s1 * fx
		e.sxx[i] += s1 * fx * fx
	}
	e.sn++
	return s1
}
