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

	"github.com/signal18/biasedurn/utils/numeric"
)

// DefaultCutoff returns the tail cutoff MakeTable uses when given a
// negative cutoff.
func (d *Univariate) DefaultCutoff() float64 {
	return 0.01 * d.accuracy
}

// TableLength returns the number of entries MakeTable needs to hold every
// non-negligible probability: the support width, capped at NumSD(accuracy)
// standard deviations when the support is wider than 200. The cap is never
// below int(NumSD(accuracy)).
func (d *Univariate) TableLength() int {
	if d.xmin == d.xmax || d.odds <= 0. {
		return 1
	}
	length := d.xmax - d.xmin + 1
	if length > 200 {
		// number of standard deviations from the normal approximation
		nsd := numeric.NumSD(d.accuracy)
		i := int(nsd*math.Sqrt(d.Variance()) + 0.5)
		if i < int(nsd) {
			i = int(nsd)
		}
		if length > i {
			length = i
		}
	}
	return length
}

// MakeTable fills table with the probability function around the mode,
// scaled so that the mode has the value 1. The normalized probabilities are
// table[i]/sum for x = xfirst+i, i <= xlast-xfirst. Tails are cut where the
// values drop below cutoff, and also where table runs out of space. A
// negative cutoff selects DefaultCutoff.
//
// With an empty table, MakeTable returns TableLength() as sum.
func (d *Univariate) MakeTable(table []float64, cutoff float64) (sum float64, xfirst, xlast int, err error) {
	if cutoff < 0 {
		cutoff = d.DefaultCutoff()
	}
	maxLength := len(table)
	L := d.n + d.m - d.N
	x1, x2 := d.xmin, d.xmax
	xfirst, xlast = x1, x2

	if x1 != x2 && d.odds <= 0. {
		if d.n > d.N-d.m {
			return 0, 0, 0, newError(InvalidArgument, "MakeTable", "not enough items with nonzero weight")
		}
		x1 = 0
		x2 = 0
	}
	if x1 == x2 {
		if maxLength > 0 {
			table[0] = 1.
		}
		return 1, x1, x1, nil
	}
	if maxLength <= 0 {
		return float64(d.TableLength()), x1, x2, nil
	}

	mode := d.Mode()
	var i0 int
	if mode-x1 <= maxLength/2 {
		// room for the whole left tail
		i0 = mode - x1
	} else if x2-mode <= maxLength/2 {
		// room for the whole right tail
		i0 = maxLength - x2 + mode - 1
		if i0 < 0 {
			i0 = 0
		}
	} else {
		i0 = maxLength / 2
	}
	i1 := i0 - mode + x1
	if i1 < 0 {
		i1 = 0
	}
	i2 := i0 + x2 - mode
	if i2 > maxLength-1 {
		i2 = maxLength - 1
	}

	f := 1.
	table[i0] = f
	sum = f

	// left tail
	x := mode
	a1, a2 := float64(d.m+1-x), float64(d.n+1-x)
	b1, b2 := float64(x), float64(x-L)
	for i := i0 - 1; i >= i1; i-- {
		f *= b1 * b2 / (a1 * a2 * d.odds)
		a1++
		a2++
		b1--
		b2--
		table[i] = f
		sum += f
		if f < cutoff {
			i1 = i
			break
		}
	}
	if i1 > 0 {
		copy(table, table[i1:i0+1])
		i0 -= i1
		i2 -= i1
		i1 = 0
	}

	// right tail
	x = mode + 1
	a1, a2 = float64(d.m+1-x), float64(d.n+1-x)
	b1, b2 = float64(x), float64(x-L)
	f = 1.
	for i := i0 + 1; i <= i2; i++ {
		f *= a1 * a2 * d.odds / (b1 * b2)
		a1--
		a2--
		b1++
		b2++
		table[i] = f
		sum += f
		if f < cutoff {
			i2 = i
			break
		}
	}
	xfirst = mode - (i0 - i1)
	xlast = mode + (i2 - i0)
	return sum, xfirst, xlast, nil
}

func (d *Univariate) buildCDF() error {
	table := make([]float64, d.TableLength())
	_, xfirst, xlast, err := d.MakeTable(table, -1)
	if err != nil {
		return err
	}
	cdf := table[:xlast-xfirst+1]
	acc := 0.
	for i, f := range cdf {
		acc += f
		cdf[i] = acc
	}
	// normalize by the left to right total so the last entry is exactly 1
	for i := range cdf {
		cdf[i] /= acc
	}
	cdf[len(cdf)-1] = 1
	d.cdf = cdf
	d.cdfFirst = xfirst
	return nil
}

// CDF returns the probability of drawing x or fewer items of color A,
// computed from a MakeTable envelope with the default cutoff.
func (d *Univariate) CDF(x int) (float64, error) {
	if x < d.xmin {
		return 0, nil
	}
	if x >= d.xmax {
		return 1, nil
	}
	if d.cdf == nil {
		if err := d.buildCDF(); err != nil {
			return 0, err
		}
	}
	i := x - d.cdfFirst
	if i < 0 {
		return 0, nil
	}
	if i >= len(d.cdf) {
		return 1, nil
	}
	return d.cdf[i], nil
}

// Quantile returns the smallest x for which CDF(x) >= p.
func (d *Univariate) Quantile(p float64) (int, error) {
	if p < 0 || p > 1 || math.IsNaN(p) {
		return 0, newError(InvalidArgument, "Quantile", "p=%v outside [0,1]", p)
	}
	if d.xmin == d.xmax || p == 0 {
		return d.xmin, nil
	}
	if d.cdf == nil {
		if err := d.buildCDF(); err != nil {
			return 0, err
		}
	}
	for i, c := range d.cdf {
		if c >= p {
			return d.cdfFirst + i, nil
		}
	}
	return d.cdfFirst + len(d.cdf) - 1, nil
}
