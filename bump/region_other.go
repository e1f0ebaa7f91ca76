// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build !(linux || darwin || freebsd || netbsd || openbsd || dragonfly)

package bump

// reserve falls back to a Go byte slice where anonymous mappings are not
// available. Large slices get their own page-aligned span and never move.
func reserve(size int) ([]byte, error) {
	return make([]byte, size), nil
}
