// biasedurn - Fisher's noncentral hypergeometric distribution for Go
// Copyright 2017-2021 SIGNAL18 CLOUD SAS
// Authors: Guillaume Lefranc <guillaume@signal18.io>
//          Stephane Varoqui  <svaroqui@gmail.com>
// This source code is licensed under the GNU General Public License, version 3.
// Redistribution/Reuse of this code is permitted under the GNU v3 license, as
// an additional term, ALL code must carry the original Author(s) credit in comment form.
// See LICENSE in this directory for the integral text.

package main

import (
	"encoding/json"
	"io"

	"github.com/juju/errors"
)

// printResult writes res as indented JSON, or calls text for the plain
// format.
func printResult(w io.Writer, res interface{}, text func(w io.Writer)) error {
	if conf.IsJSON() {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return errors.Trace(enc.Encode(res))
	}
	text(w)
	return nil
}
