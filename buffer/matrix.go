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

package buffer

import (
	"fmt"

	"github.com/pkg/errors"
)

// Matrix is an ordered collection of equal-length aligned buffers,
// addressed as rows. The row count and row length are fixed at
// construction. A matrix either owns its rows (NewMatrix) or views
// rows owned by the caller (MatrixOf).
type Matrix[T any] struct {
	rows   []*Buffer[T]
	rowLen int
	owned  bool
}

// NewMatrix allocates a matrix of n rows of l elements each.
func NewMatrix[T any](n, l int) *Matrix[T] {
	rows := make([]*Buffer[T], n)
	for i := range rows {
		rows[i] = New[T](l)
	}
	return &Matrix[T]{rows: rows, rowLen: l, owned: true}
}

// MatrixOf builds a non-owning matrix over the given buffers. All
// buffers must have the same length; a mismatch is a programming bug
// and panics.
func MatrixOf[T any](bufs ...*Buffer[T]) *Matrix[T] {
	if len(bufs) == 0 {
		return &Matrix[T]{}
	}
	l := bufs[0].Len()
	for i, b := range bufs {
		if b.Len() != l {
			panic(fmt.Sprintf("buffer: matrix row %d has length %d, want %d", i, b.Len(), l))
		}
	}
	rows := make([]*Buffer[T], len(bufs))
	copy(rows, bufs)
	return &Matrix[T]{rows: rows, rowLen: l}
}

// Rows returns the number of rows.
func (m *Matrix[T]) Rows() int {
	return len(m.rows)
}

// RowLen returns the length of every row.
func (m *Matrix[T]) RowLen() int {
	return m.rowLen
}

// Owned reports whether the matrix owns its row storage.
func (m *Matrix[T]) Owned() bool {
	return m.owned
}

// Row returns the i-th row's element storage for unchecked access.
func (m *Matrix[T]) Row(i int) []T {
	return m.rows[i].Data()
}

// RowBuffer returns the i-th row as a buffer.
func (m *Matrix[T]) RowBuffer(i int) *Buffer[T] {
	return m.rows[i]
}

// CopyRow overwrites row i with src. The lengths must match; on
// mismatch ErrInvalidArgument is returned and the row is untouched.
func (m *Matrix[T]) CopyRow(i int, src []T) error {
	if len(src) != m.rowLen {
		return errors.Wrapf(ErrInvalidArgument, "copy %d elements into row of %d", len(src), m.rowLen)
	}
	copy(m.rows[i].Data(), src)
	return nil
}

// FillRow sets every element of row i to v.
func (m *Matrix[T]) FillRow(i int, v T) {
	m.rows[i].Fill(v)
}

// SwapRows exchanges rows i and j without copying elements.
func (m *Matrix[T]) SwapRows(i, j int) {
	m.rows[i], m.rows[j] = m.rows[j], m.rows[i]
}

// Assign overwrites m's rows with src's. Shapes must match; on
// mismatch ErrInvalidArgument is returned and m is left untouched.
func (m *Matrix[T]) Assign(src *Matrix[T]) error {
	if m.Rows() != src.Rows() || m.rowLen != src.rowLen {
		return errors.Wrapf(ErrInvalidArgument, "assign %dx%d matrix to %dx%d",
			src.Rows(), src.rowLen, m.Rows(), m.rowLen)
	}
	for i := range m.rows {
		copy(m.rows[i].Data(), src.rows[i].Data())
	}
	return nil
}
