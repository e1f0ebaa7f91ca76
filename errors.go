// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bfalloc

import "errors"

var (
	// ErrRegionReserve indicates that the heap region could not be reserved.
	ErrRegionReserve = errors.New("bfalloc: could not reserve heap region")

	// ErrCorruptFreeList indicates an allocated block was found on the free list.
	ErrCorruptFreeList = errors.New("bfalloc: allocated block on free list")

	// ErrDoubleFree indicates Free was called on a block that is already free.
	ErrDoubleFree = errors.New("bfalloc: double free")
)
