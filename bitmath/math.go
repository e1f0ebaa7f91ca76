// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package bitmath holds address arithmetic for power-of-two alignments.
package bitmath

// AlignUp rounds x up to a multiple of align, which must be a power of two.
func AlignUp(x, align uintptr) uintptr {
	return (x + align - 1) &^ (align - 1)
}

// AlignDown rounds x down to a multiple of align, which must be a power of two.
func AlignDown(x, align uintptr) uintptr {
	return x &^ (align - 1)
}

// IsAligned reports whether x is a multiple of align.
func IsAligned(x, align uintptr) bool {
	return x&(align-1) == 0
}

// Pad returns the number of bytes that must be added to x to make it a
// multiple of align. It is (align - x%align) % align.
func Pad(x, align uintptr) uintptr {
	return -x & (align - 1)
}
