// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bfalloc

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math"
	"math/bits"
	"unsafe"

	"github.com/mknyszek/bfalloc/bump"
)

// DefaultRegionSize is the size of the region a Heap reserves unless told
// otherwise: 2 GiB, or 1 GiB on 32-bit platforms.
const DefaultRegionSize = min(2<<30, math.MaxInt>>1+1)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

// Heap is a best-fit allocator over one reserved region. The zero value is
// ready to use and reserves DefaultRegionSize bytes on first use.
//
// Heap is not safe for concurrent use.
type Heap struct {
	region    *bump.Region
	free      blockList
	allocated blockList

	regionSize uintptr
	log        *slog.Logger
}

// Option configures a Heap.
type Option func(*Heap)

// WithRegionSize sets the number of bytes the heap reserves. Zero means
// DefaultRegionSize.
func WithRegionSize(n uintptr) Option {
	return func(h *Heap) {
		h.regionSize = n
	}
}

// WithLogger sets the logger for the heap's diagnostics. By default they
// are discarded.
func WithLogger(l *slog.Logger) Option {
	return func(h *Heap) {
		h.log = l
	}
}

// New returns a heap configured by opts. The region is not reserved until
// the first call that needs it.
func New(opts ...Option) *Heap {
	h := new(Heap)
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *Heap) logger() *slog.Logger {
	if h.log == nil {
		return discard
	}
	return h.log
}

// init reserves the region on the first call and does nothing afterwards.
func (h *Heap) init() {
	if h.region != nil {
		return
	}
	size := h.regionSize
	if size == 0 {
		size = DefaultRegionSize
	}
	r, err := bump.Reserve(size)
	if err != nil {
		err = fmt.Errorf("%w: %w", ErrRegionReserve, err)
		h.logger().Error("heap reservation failed", "err", err, "size", size)
		panic(err)
	}
	h.region = r
	h.logger().Debug("reserved heap region", "start", hexAddr(r.Start()), "size", r.Size())
}

// fatal reports an unrecoverable condition found at header b.
func (h *Heap) fatal(err error, b *header) {
	addr := hexAddr(uintptr(unsafe.Pointer(b)))
	h.logger().Error("heap corrupted", "err", err, "header", addr)
	panic(fmt.Errorf("%w: header %s", err, addr))
}

// Malloc returns a pointer to at least size bytes, aligned to Alignment.
// The memory is not zeroed. Malloc returns nil if size is zero or the
// region is exhausted.
func (h *Heap) Malloc(size uintptr) unsafe.Pointer {
	h.init()
	if size == 0 {
		return nil
	}
	if b := h.bestFit(size); b != nil {
		move(b, &h.free, &h.allocated, true)
		return b.payload()
	}

	addr, ok := h.region.Carve(headerSize, size, Alignment)
	if !ok {
		if log := h.logger(); log.Enabled(context.Background(), slog.LevelDebug) {
			log.Debug("heap region exhausted", "size", size,
				"cursor", hexAddr(h.region.Cursor()), "end", hexAddr(h.region.End()))
		}
		return nil
	}
	b := (*header)(addr)
	b.size = size
	b.allocated = true
	h.allocated.push(b)
	return b.payload()
}

// bestFit returns the smallest free block that holds size bytes, or nil.
// Ties go to the block nearest the head; an exact fit ends the search.
func (h *Heap) bestFit(size uintptr) *header {
	var best *header
	for c := h.free.head; c != nil; c = c.next {
		if c.allocated {
			h.fatal(ErrCorruptFreeList, c)
		}
		if size <= c.size && (best == nil || c.size < best.size) {
			best = c
			if best.size == size {
				break
			}
		}
	}
	return best
}

// Free returns the block at p to the free list. Free of nil does nothing.
// Freeing a block that is already free panics with ErrDoubleFree.
//
// p must have been returned by this heap. The payload is left as is.
func (h *Heap) Free(p unsafe.Pointer) {
	h.init()
	if p == nil {
		return
	}
	b := headerOf(p)
	if !b.allocated {
		h.fatal(ErrDoubleFree, b)
	}
	move(b, &h.allocated, &h.free, false)
}

// Calloc allocates count*elemSize bytes and zeroes them. It returns nil if
// the product is zero, overflows, or cannot be allocated.
func (h *Heap) Calloc(count, elemSize uintptr) unsafe.Pointer {
	h.init()
	hi, total := bits.Mul(uint(count), uint(elemSize))
	if hi != 0 {
		return nil
	}
	p := h.Malloc(uintptr(total))
	if p != nil {
		memclrNoHeapPointers(p, uintptr(total))
	}
	return p
}

// Realloc resizes the block at p to hold newSize bytes.
//
// A nil p is a Malloc and a zero newSize is a Free that returns nil. If the
// block already holds newSize bytes, p is returned unchanged. Otherwise the
// contents move to a new block and the old one is freed; if no new block
// can be allocated, Realloc returns nil and p remains valid.
func (h *Heap) Realloc(p unsafe.Pointer, newSize uintptr) unsafe.Pointer {
	if p == nil {
		return h.Malloc(newSize)
	}
	if newSize == 0 {
		h.Free(p)
		return nil
	}
	old := headerOf(p)
	if newSize <= old.size {
		return p
	}
	q := h.Malloc(newSize)
	if q == nil {
		return nil
	}
	copy(Bytes(q, old.size), Bytes(p, old.size))
	h.Free(p)
	return q
}

// UsableSize returns the number of payload bytes in the block at p, which
// may exceed the size it was requested with. It returns 0 for nil.
func (h *Heap) UsableSize(p unsafe.Pointer) uintptr {
	if p == nil {
		return 0
	}
	return headerOf(p).size
}

type hexAddr uintptr

func (a hexAddr) String() string {
	return fmt.Sprintf("%#x", uintptr(a))
}

func (a hexAddr) LogValue() slog.Value {
	return slog.StringValue(a.String())
}
