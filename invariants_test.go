// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bfalloc

import (
	"cmp"
	"errors"
	"slices"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/require"

	"github.com/mknyszek/bfalloc/bitmath"
)

// newTestHeap returns a heap over a small region so exhaustion is reachable.
func newTestHeap(t testing.TB, size uintptr) *Heap {
	t.Helper()
	h := New(WithRegionSize(size))
	h.init()
	return h
}

// walk returns the headers of l from head to tail, checking link symmetry
// and flag polarity on the way.
func walk(t testing.TB, l *blockList, allocated bool) []*header {
	t.Helper()
	var out []*header
	var prev *header
	for c := l.head; c != nil; c = c.next {
		require.True(t, c.prev == prev, "prev link of %p", c)
		require.Equal(t, allocated, c.allocated, "flag of %p", c)
		out = append(out, c)
		prev = c
		require.LessOrEqual(t, len(out), 1<<20, "list does not terminate")
	}
	return out
}

// checkHeap verifies partition, link symmetry, alignment, containment and
// disjointness over every block the heap has ever carved.
func checkHeap(t testing.TB, h *Heap) (free, allocated []*header) {
	t.Helper()
	free = walk(t, &h.free, false)
	allocated = walk(t, &h.allocated, true)

	all := slices.Concat(free, allocated)
	seen := make(map[*header]bool, len(all))
	for _, b := range all {
		require.False(t, seen[b], "header %p on more than one list", b)
		seen[b] = true

		addr := uintptr(unsafe.Pointer(b))
		require.True(t, bitmath.IsAligned(uintptr(b.payload()), Alignment), "payload of %p misaligned", b)
		require.GreaterOrEqual(t, addr, h.region.Start(), "header %p below region", b)
		require.LessOrEqual(t, addr+headerSize+b.size, h.region.Cursor(), "block %p past cursor", b)
		require.LessOrEqual(t, h.region.Cursor(), h.region.End())
	}

	slices.SortFunc(all, func(a, b *header) int {
		return cmp.Compare(uintptr(unsafe.Pointer(a)), uintptr(unsafe.Pointer(b)))
	})
	for i := 1; i < len(all); i++ {
		prev, next := all[i-1], all[i]
		require.LessOrEqual(t,
			uintptr(unsafe.Pointer(prev))+headerSize+prev.size,
			uintptr(unsafe.Pointer(next)),
			"blocks %p and %p overlap", prev, next)
	}
	return free, allocated
}

func headersOf(ps ...unsafe.Pointer) []*header {
	out := make([]*header, len(ps))
	for i, p := range ps {
		out[i] = headerOf(p)
	}
	return out
}

// requireFatal runs fn and requires that it panics with an error matching
// target.
func requireFatal(t testing.TB, target error, fn func()) error {
	t.Helper()
	var got any
	func() {
		defer func() { got = recover() }()
		fn()
	}()
	require.NotNil(t, got, "expected panic with %v", target)
	err, ok := got.(error)
	require.True(t, ok, "panic value %v is not an error", got)
	require.True(t, errors.Is(err, target), "panic %v does not wrap %v", err, target)
	return err
}
