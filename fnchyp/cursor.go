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

type cursorState int

const (
	cursorUninitialized cursorState = iota
	cursorCachedAt
)

// lnCursor keeps ln(x! (n-x)! (m-x)! (N-m-n+x)!) for the last x it was
// asked about, so that neighbouring x values cost one log instead of four
// LnFac calls.
type lnCursor struct {
	state cursorState
	mFac  float64 // ln(m!) + ln((N-m)!)
	xLast int
	xFac  float64
}

// update moves the cursor to x for draws n, category size m and other size m2.
func (c *lnCursor) update(x, n, m, m2 int) {
	x2 := n - x
	if c.state == cursorUninitialized {
		c.mFac = numeric.LnFac(m) + numeric.LnFac(m2)
	}
	step := 2 // anything outside {-1,0,1}
	if c.state == cursorCachedAt {
		step = x - c.xLast
	}
	if m < numeric.FacTableLen && m2 < numeric.FacTableLen {
		// table lookups are as cheap as the recurrence
		step = 2
	}
	switch step {
	case 0:
	case 1:
		c.xFac += math.Log(float64(x) * float64(m2-x2) / (float64(x2+1) * float64(m-x+1)))
	case -1:
		c.xFac += math.Log(float64(x2) * float64(m-x) / (float64(x+1) * float64(m2-x2+1)))
	default:
		c.xFac = numeric.LnFac(x) + numeric.LnFac(x2) + numeric.LnFac(m-x) + numeric.LnFac(m2-x2)
	}
	c.xLast = x
	c.state = cursorCachedAt
}
