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
	"testing"
	"unsafe"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAlignment(t *testing.T) {
	for _, n := range []int{1, 5, 64, 1000} {
		b := New[uint32](n)
		addr := uintptr(unsafe.Pointer(&b.Data()[0]))
		if addr%Alignment != 0 {
			t.Errorf("New[uint32](%d) storage at %#x not %d-byte aligned", n, addr, Alignment)
		}
		b64 := New[uint64](n)
		addr = uintptr(unsafe.Pointer(&b64.Data()[0]))
		if addr%Alignment != 0 {
			t.Errorf("New[uint64](%d) storage at %#x not %d-byte aligned", n, addr, Alignment)
		}
	}
}

func TestStablePointerAcrossSwap(t *testing.T) {
	a := NewFilled(8, uint32(1))
	b := NewFilled(8, uint32(2))
	pa := &a.Data()[0]
	Swap(a, b)
	if &b.Data()[0] != pa {
		t.Fatal("swap must transfer storage, not copy it")
	}
	if a.Data()[0] != 2 || b.Data()[0] != 1 {
		t.Fatal("swap did not exchange contents")
	}
}

func TestEqualAndCompare(t *testing.T) {
	assert.True(t, Equal(NewFilled(5, uint32(0)), FromSlice([]uint32{0, 0, 0, 0, 0})))

	a := FromSlice([]uint32{1, 3, 5, 7})
	longer := FromSlice([]uint32{1, 3, 5, 7, 10})
	bigger := FromSlice([]uint32{1, 3, 8, 7})

	assert.True(t, Less(a, longer), "shorter is less at equal prefix")
	assert.True(t, Less(a, bigger))
	assert.False(t, Less(a, a))
	assert.False(t, Less(longer, a))
	assert.Equal(t, 0, Compare(a, a.Clone()))
	assert.Equal(t, -Compare(bigger, a), Compare(a, bigger))
}

func TestAssignSizeMismatch(t *testing.T) {
	dst := FromSlice([]uint64{9, 9, 9})
	src := FromSlice([]uint64{1, 2, 3, 4})
	err := dst.Assign(src)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidArgument))
	assert.Equal(t, []uint64{9, 9, 9}, dst.Data(), "failed assign must not modify destination")

	require.NoError(t, dst.Assign(FromSlice([]uint64{4, 5, 6})))
	assert.Equal(t, []uint64{4, 5, 6}, dst.Data())
}

func TestMove(t *testing.T) {
	dst := New[uint32](4)
	src := FromSlice([]uint32{1, 2, 3, 4})
	p := &src.Data()[0]
	require.NoError(t, dst.Move(src))
	assert.Equal(t, p, &dst.Data()[0], "move must steal storage")

	err := dst.Move(New[uint32](5))
	assert.True(t, errors.Is(err, ErrInvalidArgument))
}

func TestAt(t *testing.T) {
	b := FromSlice([]uint32{10, 20})
	v, err := b.At(1)
	require.NoError(t, err)
	assert.Equal(t, uint32(20), v)

	_, err = b.At(2)
	assert.True(t, errors.Is(err, ErrOutOfRange))
	_, err = b.At(-1)
	assert.True(t, errors.Is(err, ErrOutOfRange))
}

func TestMatrix(t *testing.T) {
	m := NewMatrix[uint32](3, 4)
	require.Equal(t, 3, m.Rows())
	require.Equal(t, 4, m.RowLen())
	require.True(t, m.Owned())

	require.NoError(t, m.CopyRow(1, []uint32{1, 2, 3, 4}))
	assert.Equal(t, []uint32{1, 2, 3, 4}, m.Row(1))

	err := m.CopyRow(0, []uint32{1})
	assert.True(t, errors.Is(err, ErrInvalidArgument))

	m.FillRow(2, 7)
	assert.Equal(t, []uint32{7, 7, 7, 7}, m.Row(2))

	r1 := m.Row(1)
	m.SwapRows(1, 2)
	assert.Equal(t, []uint32{7, 7, 7, 7}, m.Row(1))
	assert.Equal(t, &r1[0], &m.Row(2)[0], "row swap must move pointers")
}

func TestMatrixOf(t *testing.T) {
	a := FromSlice([]uint64{1, 2})
	b := FromSlice([]uint64{3, 4})
	m := MatrixOf(a, b)
	require.False(t, m.Owned())
	assert.Equal(t, &a.Data()[0], &m.Row(0)[0], "views must share storage")

	assert.Panics(t, func() {
		MatrixOf(a, FromSlice([]uint64{1, 2, 3}))
	})
}

func TestMatrixAssign(t *testing.T) {
	m := NewMatrix[uint32](2, 3)
	src := NewMatrix[uint32](2, 3)
	require.NoError(t, src.CopyRow(0, []uint32{1, 2, 3}))
	require.NoError(t, src.CopyRow(1, []uint32{4, 5, 6}))
	require.NoError(t, m.Assign(src))
	assert.Equal(t, []uint32{4, 5, 6}, m.Row(1))

	err := m.Assign(NewMatrix[uint32](2, 4))
	assert.True(t, errors.Is(err, ErrInvalidArgument))
}
