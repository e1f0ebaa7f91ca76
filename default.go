// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bfalloc

import (
	"log/slog"
	"unsafe"
)

var std Heap

// Default returns the process-wide heap used by the package-level
// functions.
func Default() *Heap {
	return &std
}

// SetLogger sets the logger of the default heap.
func SetLogger(l *slog.Logger) {
	std.log = l
}

// Malloc allocates from the default heap. See [Heap.Malloc].
func Malloc(size uintptr) unsafe.Pointer {
	return std.Malloc(size)
}

// Free releases a block of the default heap. See [Heap.Free].
func Free(p unsafe.Pointer) {
	std.Free(p)
}

// Calloc allocates zeroed memory from the default heap. See [Heap.Calloc].
func Calloc(count, elemSize uintptr) unsafe.Pointer {
	return std.Calloc(count, elemSize)
}

// Realloc resizes a block of the default heap. See [Heap.Realloc].
func Realloc(p unsafe.Pointer, newSize uintptr) unsafe.Pointer {
	return std.Realloc(p, newSize)
}

// UsableSize reports the payload size of a block of the default heap.
func UsableSize(p unsafe.Pointer) uintptr {
	return std.UsableSize(p)
}
