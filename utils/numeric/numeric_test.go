// biasedurn - Fisher's noncentral hypergeometric distribution for Go
// Copyright 2017-2021 SIGNAL18 CLOUD SAS
// Authors: Guillaume Lefranc <guillaume@signal18.io>
//          Stephane Varoqui  <svaroqui@gmail.com>
// This source code is licensed under the GNU General Public License, version 3.
// Redistribution/Reuse of this code is permitted under the GNU v3 license, as
// an additional term, ALL code must carry the original Author(s) credit in comment form.
// See LICENSE in this directory for the integral text.

package numeric

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLnFac(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(0., LnFac(0))
	assert.Equal(0., LnFac(1))
	assert.InDelta(math.Log(120), LnFac(5), 1e-12)

	// both sides of the table boundary agree with lgamma
	for _, n := range []int{FacTableLen - 2, FacTableLen - 1, FacTableLen, FacTableLen + 1, 5000, 1000000} {
		want, _ := math.Lgamma(float64(n) + 1)
		assert.InEpsilon(want, LnFac(n), 1e-11, "n=%d", n)
	}
	assert.Panics(func() { LnFac(-1) })
}

func TestLnFacr(t *testing.T) {
	assert := assert.New(t)

	for _, x := range []float64{0.5, 2.25, 5.9, 7.5, 123.4, 5000.5} {
		want, _ := math.Lgamma(x + 1)
		assert.InDelta(want, LnFacr(x), 1e-9*math.Max(1, math.Abs(want)), "x=%v", x)
	}
	assert.Equal(LnFac(12), LnFacr(12))
}

func TestFallingFactorial(t *testing.T) {
	assert := assert.New(t)

	var tests = []struct {
		a, b float64
	}{
		{10, 3},      // direct product
		{50, 29},     // direct product, upper bound
		{400, 35},    // lnfac difference
		{1e6, 40},    // stirling with taylor series
		{12.5, 4.5},  // non-integer count
		{123456, 50}, // stirling with taylor series
	}
	for _, tt := range tests {
		want := LnFacr(tt.a) - LnFacr(tt.a-tt.b)
		if tt.b == math.Trunc(tt.b) && tt.a == math.Trunc(tt.a) {
			lg1, _ := math.Lgamma(tt.a + 1)
			lg2, _ := math.Lgamma(tt.a - tt.b + 1)
			want = lg1 - lg2
		}
		assert.InEpsilon(want, FallingFactorial(tt.a, tt.b), 1e-9, "a=%v b=%v", tt.a, tt.b)
	}
	assert.Equal(0., FallingFactorial(7, 0))
}

func TestLnChoose(t *testing.T) {
	assert := assert.New(t)

	assert.InDelta(math.Log(10), LnChoose(5, 2), 1e-12)
	assert.InDelta(LnFac(60)-LnFac(25)-LnFac(35), LnChoose(60, 25), 1e-9)
	assert.True(math.IsInf(LnChoose(5, 6), -1))
	assert.True(math.IsInf(LnChoose(5, -1), -1))
}

func TestNumSD(t *testing.T) {
	assert := assert.New(t)

	var tests = []struct {
		accuracy float64
		sd       float64
	}{
		{1, 6},
		{0.01, 6},
		{1e-3, 7},
		{1e-4, 8},
		{1e-5, 9},
		{1e-6, 10},
		{1e-7, 11},
		{1e-8, 12},
		{1e-10, 13},
		{1e-12, 15},
		{1e-15, 16},
		{0, 16},
	}
	for _, tt := range tests {
		assert.Equal(tt.sd, NumSD(tt.accuracy), "accuracy=%v", tt.accuracy)
	}
}
