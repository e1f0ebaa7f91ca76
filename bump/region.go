// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package bump manages a single reserved range of virtual memory and hands
// out pieces of it by advancing a cursor that never moves backwards.
package bump

import (
	"errors"
	"fmt"
	"math"
	"unsafe"

	"github.com/mknyszek/bfalloc/bitmath"
)

var (
	// ErrInvalidSize indicates a region size of zero or one too large to map.
	ErrInvalidSize = errors.New("bump: invalid region size")

	// ErrReserve indicates that the operating system refused the mapping.
	ErrReserve = errors.New("bump: could not reserve region")
)

// Region is a contiguous byte range [Start, End) with a bump cursor in
// [Start, End]. A Region is never resized and never released.
//
// Region is not safe for concurrent use.
type Region struct {
	base   unsafe.Pointer
	size   uintptr
	cursor uintptr // offset of the next untouched byte from base
	mem    []byte  // keeps the backing memory reachable
}

// Reserve obtains a private, zero-filled, read/write region of exactly size
// bytes.
func Reserve(size uintptr) (*Region, error) {
	if size == 0 || size > math.MaxInt {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSize, size)
	}
	mem, err := reserve(int(size))
	if err != nil {
		return nil, fmt.Errorf("%w of %d bytes: %w", ErrReserve, size, err)
	}
	return &Region{
		base: unsafe.Pointer(unsafe.SliceData(mem)),
		size: size,
		mem:  mem,
	}, nil
}

// Carve bump-allocates a block made of prefix bytes followed by size bytes,
// padding the cursor first so that the address just past the prefix is a
// multiple of align. It returns the address of the block (where the prefix
// starts).
//
// If the padded block does not fit before End, Carve returns false and the
// cursor is left where it was.
func (r *Region) Carve(prefix, size, align uintptr) (unsafe.Pointer, bool) {
	pad := bitmath.Pad(r.Cursor()+prefix, align)
	avail := r.size - r.cursor
	if pad > avail || prefix > avail-pad || size > avail-pad-prefix {
		return nil, false
	}
	addr := unsafe.Add(r.base, r.cursor+pad)
	r.cursor += pad + prefix + size
	return addr, true
}

// Start returns the lowest address of the region.
func (r *Region) Start() uintptr {
	return uintptr(r.base)
}

// End returns the address one past the last byte of the region.
func (r *Region) End() uintptr {
	return uintptr(r.base) + r.size
}

// Cursor returns the next address available for bumping.
func (r *Region) Cursor() uintptr {
	return uintptr(r.base) + r.cursor
}

// Size returns the size of the region in bytes.
func (r *Region) Size() uintptr {
	return r.size
}

// Contains reports whether p lies in [Start, End).
func (r *Region) Contains(p unsafe.Pointer) bool {
	a := uintptr(p)
	return r.Start() <= a && a < r.End()
}
