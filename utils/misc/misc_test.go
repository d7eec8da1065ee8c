// biasedurn - Fisher's noncentral hypergeometric distribution for Go
// Copyright 2017-2021 SIGNAL18 CLOUD SAS
// Authors: Guillaume Lefranc <guillaume@signal18.io>
//          Stephane Varoqui  <svaroqui@gmail.com>
// This source code is licensed under the GNU General Public License, version 3.
// Redistribution/Reuse of this code is permitted under the GNU v3 license, as
// an additional term, ALL code must carry the original Author(s) credit in comment form.
// See LICENSE in this directory for the integral text.

package misc

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitPair(t *testing.T) {
	assert := assert.New(t)

	a, b := SplitPair("3:12")
	assert.Equal("3", a)
	assert.Equal("12", b)
	a, b = SplitPair("7")
	assert.Equal("7", a)
	assert.Equal("", b)
	a, b = SplitPair("1:2:3")
	assert.Equal("1", a)
	assert.Equal("2:3", b)
}

func TestParseRange(t *testing.T) {
	assert := assert.New(t)

	var tests = []struct {
		in     string
		lo, hi int
		ok     bool
	}{
		{"3:12", 3, 12, true},
		{" 4 : 4 ", 4, 4, true},
		{"9", 9, 9, true},
		{"12:3", 0, 0, false},
		{"a:3", 0, 0, false},
		{"3:b", 0, 0, false},
		{"", 0, 0, false},
	}
	for _, tt := range tests {
		lo, hi, err := ParseRange(tt.in)
		if !tt.ok {
			assert.Error(err, tt.in)
			continue
		}
		assert.NoError(err, tt.in)
		assert.Equal(tt.lo, lo, tt.in)
		assert.Equal(tt.hi, hi, tt.in)
	}
}

func TestParseLists(t *testing.T) {
	assert := assert.New(t)

	ints, err := ParseInts("10, 15,5")
	assert.NoError(err)
	assert.Equal([]int{10, 15, 5}, ints)
	_, err = ParseInts("10,x")
	assert.Error(err)
	ints, err = ParseInts("")
	assert.NoError(err)
	assert.Empty(ints)

	floats, err := ParseFloats("1,2.5, 1e-3")
	assert.NoError(err)
	assert.Equal([]float64{1, 2.5, 1e-3}, floats)
	_, err = ParseFloats("1,,two")
	assert.Error(err)
}
