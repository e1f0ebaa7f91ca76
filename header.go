// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bfalloc

import "unsafe"

// Alignment is the alignment of every payload address.
const Alignment = 16

// header sits immediately before each payload. next and prev link it into
// exactly one of the heap's two lists.
type header struct {
	next      *header
	prev      *header
	size      uintptr // payload bytes, fixed when the block is carved
	allocated bool    // true iff on the allocated list
}

const headerSize = unsafe.Sizeof(header{})

func (h *header) payload() unsafe.Pointer {
	return unsafe.Add(unsafe.Pointer(h), headerSize)
}

func headerOf(p unsafe.Pointer) *header {
	return (*header)(unsafe.Add(p, -int(headerSize)))
}

// blockList is an unordered intrusive list of headers.
type blockList struct {
	head *header
}

func (l *blockList) push(h *header) {
	h.next = l.head
	h.prev = nil
	if h.next != nil {
		h.next.prev = h
	}
	l.head = h
}

func (l *blockList) unlink(h *header) {
	if h.prev == nil {
		l.head = h.next
	} else {
		h.prev.next = h.next
	}
	if h.next != nil {
		h.next.prev = h.prev
	}
}

// move splices h out of from, pushes it onto to and sets its allocated
// flag to match.
func move(h *header, from, to *blockList, allocated bool) {
	from.unlink(h)
	to.push(h)
	h.allocated = allocated
}
