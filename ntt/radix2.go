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

package ntt

import (
	"github.com/pkg/errors"

	"github.com/fastntt/fastntt/arith"
	"github.com/fastntt/fastntt/buffer"
	"github.com/fastntt/fastntt/ints"
)

// Radix2 is the iterative power-of-two transform driver. It holds the
// ring, the transform length, the omega tables for both directions and
// the precomputed scalar n^-1 mod q.
type Radix2[T comparable] struct {
	r     Arith[T]
	n     int
	omega T
	ws    []T
	invWs []T
	invN  T
}

// NewRadix2 builds a driver of length n over r. The length must be a
// power of two for which the ring has a primitive n-th root of unity
// and an invertible n; otherwise an error wrapping arith.ErrNoSolution
// or the ring's inversion error is returned.
func NewRadix2[T comparable](r Arith[T], n int) (*Radix2[T], error) {
	if n < 2 || !ints.IsPowerOfTwo(uint64(n)) {
		return nil, errors.Wrapf(arith.ErrNoSolution, "transform length %d is not a power of two", n)
	}
	d := &Radix2[T]{r: r, n: n}
	d.omega = r.GetNthRoot(uint64(n))
	d.ws = make([]T, n)
	r.ComputeOmegas(d.ws, d.omega)
	// the returned root has order dividing n; the transform needs the
	// order to be exactly n
	one := r.FromUint64(1)
	if r.Mul(d.ws[n-1], d.omega) != one || (n > 1 && d.ws[n/2] == one) {
		return nil, errors.Wrapf(arith.ErrNoSolution, "ring has no root of unity of order %d", n)
	}
	invOmega, err := r.Inv(d.omega)
	if err != nil {
		return nil, err
	}
	d.invWs = make([]T, n)
	r.ComputeOmegas(d.invWs, invOmega)
	d.invN, err = r.Inv(r.FromUint64(uint64(n)))
	if err != nil {
		return nil, errors.Wrapf(err, "transform length %d is not invertible in the ring", n)
	}
	return d, nil
}

// Len returns the transform length.
func (d *Radix2[T]) Len() int {
	return d.n
}

// Omega returns the n-th root of unity the driver was built with.
func (d *Radix2[T]) Omega() T {
	return d.omega
}

// FFT computes the forward transform of src into dst. dst and src may
// be the same matrix; distinct matrices must have identical shape.
func (d *Radix2[T]) FFT(dst, src *buffer.Matrix[T]) error {
	if err := d.load(dst, src); err != nil {
		return err
	}
	d.stages(dst, d.ws)
	return nil
}

// IFFT computes the inverse transform of src into dst and scales every
// row by n^-1, so that IFFT(FFT(x)) = x.
func (d *Radix2[T]) IFFT(dst, src *buffer.Matrix[T]) error {
	if err := d.FFTInv(dst, src); err != nil {
		return err
	}
	for i := 0; i < d.n; i++ {
		row := dst.Row(i)
		d.r.MulCoefToBuf(d.invN, row, row)
	}
	return nil
}

// FFTInv computes the unscaled inverse transform of src into dst.
func (d *Radix2[T]) FFTInv(dst, src *buffer.Matrix[T]) error {
	if err := d.load(dst, src); err != nil {
		return err
	}
	d.stages(dst, d.invWs)
	return nil
}

// load moves src into dst in bit-reversed row order. Contents are
// copied rather than row pointers swapped so that view matrices keep
// their caller-visible buffer identities.
func (d *Radix2[T]) load(dst, src *buffer.Matrix[T]) error {
	if src.Rows() != d.n || dst.Rows() != d.n {
		return errors.Wrapf(buffer.ErrInvalidArgument, "matrix has %d rows, transform length is %d",
			src.Rows(), d.n)
	}
	if dst.RowLen() != src.RowLen() {
		return errors.Wrapf(buffer.ErrInvalidArgument, "row length %d vs %d", dst.RowLen(), src.RowLen())
	}
	width := ints.Log2(uint64(d.n))
	if dst != src {
		for i := 0; i < d.n; i++ {
			copy(dst.Row(int(ints.Reverse(uint64(i), width))), src.Row(i))
		}
		return nil
	}
	scratch := make([]T, dst.RowLen())
	for i := 0; i < d.n; i++ {
		j := int(ints.Reverse(uint64(i), width))
		if i < j {
			a, b := dst.Row(i), dst.Row(j)
			copy(scratch, a)
			copy(a, b)
			copy(b, scratch)
		}
	}
	return nil
}

// stages runs the in-place butterfly cascade over bit-reversed rows.
func (d *Radix2[T]) stages(m *buffer.Matrix[T], ws []T) {
	for size := 2; size <= d.n; size <<= 1 {
		half := size / 2
		step := d.n / size
		for start := 0; start < d.n; start += size {
			for j := 0; j < half; j++ {
				c := ws[j*step]
				d.r.ButterflyCT(c, m.Row(start+j), m.Row(start+j+half))
			}
		}
	}
}
