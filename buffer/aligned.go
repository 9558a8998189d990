// Copyright 2025 The fastntt Authors
//
//  Licensed under the Apache License, Version 2.0 (the "License");
//  you may not use this file except in compliance with the License.
//  You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
//  Unless required by applicable law or agreed to in writing, software
//  distributed under the License is distributed on an "AS IS" BASIS,
//  WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
//  See the License for the specific language governing permissions and
//  limitations under the License.

// Package buffer provides fixed-size element buffers whose storage is
// aligned for vector loads, and the multi-buffer container the
// transform drivers operate on.
package buffer

import (
	"unsafe"

	"github.com/pkg/errors"
	"golang.org/x/exp/constraints"
	"golang.org/x/exp/slices"

	"github.com/fastntt/fastntt/ints"
)

// Alignment is the storage alignment in bytes, sized for the widest
// vector register the dispatch layer may use.
const Alignment = 64

var (
	// ErrInvalidArgument indicates a caller contract violation that is
	// detectable and reportable, such as assigning between buffers of
	// different sizes.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrOutOfRange indicates checked element access past the end of a
	// buffer.
	ErrOutOfRange = errors.New("out of range")
)

// Buffer is a fixed-size sequence of elements backed by heap storage
// aligned to Alignment. The size never changes after construction; the
// backing pointer is stable for the buffer's lifetime.
type Buffer[T any] struct {
	data []T
}

// alignedSlice allocates n elements whose first element sits on an
// Alignment boundary, by over-allocating and sliding the view. If the
// element size cannot reach the boundary (it is not a power of two),
// the natural allocation is used as-is.
func alignedSlice[T any](n int) []T {
	if n == 0 {
		return []T{}
	}
	var zero T
	elem := int(unsafe.Sizeof(zero))
	pad := ints.ChunkCount(uint(Alignment), uint(elem))
	raw := make([]T, n+int(pad))
	off := 0
	for off < int(pad) && uintptr(unsafe.Pointer(&raw[off]))%Alignment != 0 {
		off++
	}
	if uintptr(unsafe.Pointer(&raw[off]))%Alignment != 0 {
		off = 0
	}
	return raw[off : off+n : off+n]
}

// New allocates a buffer of n elements. Contents are zeroed (Go heap
// semantics), not left uninitialized.
func New[T any](n int) *Buffer[T] {
	return &Buffer[T]{data: alignedSlice[T](n)}
}

// NewFilled allocates a buffer of n elements, each set to v.
func NewFilled[T any](n int, v T) *Buffer[T] {
	b := New[T](n)
	b.Fill(v)
	return b
}

// FromSlice allocates a buffer holding a copy of src.
func FromSlice[T any](src []T) *Buffer[T] {
	b := New[T](len(src))
	copy(b.data, src)
	return b
}

// Clone returns a deep copy of b with its own aligned storage.
func (b *Buffer[T]) Clone() *Buffer[T] {
	return FromSlice(b.data)
}

// Len returns the number of elements.
func (b *Buffer[T]) Len() int {
	return len(b.data)
}

// Data returns the element storage for unchecked hot-path access.
// Callers must keep indices below Len.
func (b *Buffer[T]) Data() []T {
	return b.data
}

// At returns the i-th element, or ErrOutOfRange when i is past the end.
func (b *Buffer[T]) At(i int) (T, error) {
	if i < 0 || i >= len(b.data) {
		var zero T
		return zero, errors.Wrapf(ErrOutOfRange, "index %d, size %d", i, len(b.data))
	}
	return b.data[i], nil
}

// Set writes the i-th element. Bounds are the caller's invariant.
func (b *Buffer[T]) Set(i int, v T) {
	b.data[i] = v
}

// Fill sets every element to v.
func (b *Buffer[T]) Fill(v T) {
	for i := range b.data {
		b.data[i] = v
	}
}

// Assign overwrites b's elements with src's. The sizes must match;
// on mismatch ErrInvalidArgument is returned and b is left untouched.
func (b *Buffer[T]) Assign(src *Buffer[T]) error {
	if len(b.data) != len(src.data) {
		return errors.Wrapf(ErrInvalidArgument, "assign size %d to size %d", len(src.data), len(b.data))
	}
	copy(b.data, src.data)
	return nil
}

// Move transfers src's storage into b and hands b's old storage back to
// src, preserving the size invariant of both. The sizes must match; on
// mismatch ErrInvalidArgument is returned and neither buffer changes.
func (b *Buffer[T]) Move(src *Buffer[T]) error {
	if len(b.data) != len(src.data) {
		return errors.Wrapf(ErrInvalidArgument, "move size %d to size %d", len(src.data), len(b.data))
	}
	Swap(b, src)
	return nil
}

// Swap exchanges the storage of a and b. It never fails and never
// copies elements.
func Swap[T any](a, b *Buffer[T]) {
	a.data, b.data = b.data, a.data
}

// Equal reports whether a and b have the same size and elements.
func Equal[T comparable](a, b *Buffer[T]) bool {
	return slices.Equal(a.data, b.data)
}

// Compare orders buffers lexicographically: elements are compared
// pairwise, and at an equal prefix the shorter buffer is less.
func Compare[T constraints.Ordered](a, b *Buffer[T]) int {
	return slices.Compare(a.data, b.data)
}

// Less reports whether a orders strictly before b under Compare.
func Less[T constraints.Ordered](a, b *Buffer[T]) bool {
	return Compare(a, b) < 0
}
