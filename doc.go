// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package bfalloc is a best-fit heap allocator over a single reserved
// region of virtual memory.
//
// # Overview
//
// Every block carries an in-band header immediately before its payload.
// Headers are threaded onto one of two intrusive doubly-linked lists: the
// free list or the allocated list. Malloc walks the free list for the
// smallest block that fits and takes it whole; when nothing fits, it bumps
// a fresh block off the untouched tail of the region.
//
//	h := bfalloc.New(bfalloc.WithRegionSize(64 << 20))
//	p := h.Malloc(100)
//	buf := bfalloc.Bytes(p, 100)
//	copy(buf, "hello")
//	p = h.Realloc(p, 200)
//	h.Free(p)
//
// The package-level functions use a process-wide heap of DefaultRegionSize
// that is reserved on first use.
//
// # Block reuse
//
// Blocks are never split and never coalesced. A block's size is fixed when
// it is carved from the region, so a 1-byte request that hits a 4 KiB free
// block consumes all 4 KiB, and growing with Realloc always moves. Among
// equally good candidates, the one nearest the head of the free list wins,
// and an exact fit stops the search.
//
// # Alignment
//
// Payloads are aligned to Alignment (16) bytes regardless of header size.
//
// # Failures
//
// Malloc, Calloc and Realloc return nil when the request is zero-sized or
// the region is exhausted. A failed Realloc leaves the original block
// intact.
//
// Freeing a block twice, finding an allocated block on the free list, and
// failing to reserve the region are not recoverable: they panic with an
// error wrapping ErrDoubleFree, ErrCorruptFreeList or ErrRegionReserve.
// Pointers not returned by this package, and headers overwritten by the
// caller, are not detected.
//
// # Thread Safety
//
// A Heap, including the default heap, is not safe for concurrent use.
// Callers must serialize every call.
package bfalloc
