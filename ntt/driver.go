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

// Package ntt provides number-theoretic transform drivers over a ring.
// A transform of length n operates on a matrix of n fragment buffers:
// each transform point is an entire buffer, so one butterfly call
// mixes two whole rows under a single twiddle factor.
package ntt

import "github.com/fastntt/fastntt/buffer"

// Arith is the ring surface a driver consumes. It is satisfied by the
// generic, Fermat, NF4 and Wide rings.
type Arith[T any] interface {
	FromUint64(v uint64) T
	Add(a, b T) T
	Sub(a, b T) T
	Mul(a, b T) T
	Inv(a T) (T, error)
	GetNthRoot(n uint64) T
	ComputeOmegas(w []T, omega T)
	MulCoefToBuf(c T, src, dst []T)
	ButterflyCT(c T, x, y []T)
	ButterflyGS(c T, x, y []T)
}

// Transformer is the forward/inverse transform boundary. FFT followed
// by IFFT is the identity on any input. FFTInv applies the inverse
// butterflies without the 1/n scale, for callers that fold the scale
// into a later stage. Drivers never own their inputs.
type Transformer[T any] interface {
	// Len returns the transform length n.
	Len() int
	// FFT computes the forward transform of src into dst.
	FFT(dst, src *buffer.Matrix[T]) error
	// IFFT computes the inverse transform of src into dst, including
	// the 1/n normalization.
	IFFT(dst, src *buffer.Matrix[T]) error
	// FFTInv computes the unscaled inverse transform of src into dst.
	FFTInv(dst, src *buffer.Matrix[T]) error
}
