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

package ring

// Buffer-level primitives. These are the transform hot path: each
// operation walks one or two equal-length element slices with the
// ring's reduction applied per element. The unrolled variants process
// a vector register's worth of elements per iteration so the compiler
// can keep the loop in registers; results are bit-identical to the
// reference loops.

// MulCoefToBuf computes dst[i] = a * src[i] mod q.
func (r *Ring[T]) MulCoefToBuf(a T, src, dst []T) {
	if r.unroll && len(src) >= unrollBlock {
		r.mulCoefToBufUnroll(a, src, dst)
		return
	}
	r.mulCoefToBufRef(a, src, dst)
}

func (r *Ring[T]) mulCoefToBufRef(a T, src, dst []T) {
	for i := range src {
		dst[i] = r.mulFn(a, src[i])
	}
}

// AddTwoBufs computes dst[i] = (dst[i] + src[i]) mod q.
func (r *Ring[T]) AddTwoBufs(src, dst []T) {
	if r.unroll && len(src) >= unrollBlock {
		r.addTwoBufsUnroll(src, dst)
		return
	}
	r.addTwoBufsRef(src, dst)
}

func (r *Ring[T]) addTwoBufsRef(src, dst []T) {
	for i := range src {
		dst[i] = r.Add(dst[i], src[i])
	}
}

// SubTwoBufs computes res[i] = (a[i] - b[i]) mod q.
func (r *Ring[T]) SubTwoBufs(a, b, res []T) {
	if r.unroll && len(a) >= unrollBlock {
		r.subTwoBufsUnroll(a, b, res)
		return
	}
	r.subTwoBufsRef(a, b, res)
}

func (r *Ring[T]) subTwoBufsRef(a, b, res []T) {
	for i := range a {
		res[i] = r.Sub(a[i], b[i])
	}
}

// HadamardMul computes x[i] = x[i] * y[i] mod q for i < n.
func (r *Ring[T]) HadamardMul(n int, x, y []T) {
	if r.unroll && n >= unrollBlock {
		r.hadamardMulUnroll(n, x, y)
		return
	}
	r.hadamardMulRef(n, x, y)
}

func (r *Ring[T]) hadamardMulRef(n int, x, y []T) {
	for i := 0; i < n; i++ {
		x[i] = r.mulFn(x[i], y[i])
	}
}

// HadamardMulDoubled treats x as two halves of length n/2 and
// multiplies y into both halves independently.
func (r *Ring[T]) HadamardMulDoubled(n int, x, y []T) {
	half := n / 2
	r.HadamardMul(half, x[:half], y)
	r.HadamardMul(half, x[half:n], y)
}

// AddDoubled treats x as two halves of length n/2 and adds y into both
// halves independently.
func (r *Ring[T]) AddDoubled(n int, x, y []T) {
	half := n / 2
	r.AddTwoBufs(y[:half], x[:half])
	r.AddTwoBufs(y[:half], x[half:n])
}

// NegBuf negates l elements of x in place.
func (r *Ring[T]) NegBuf(l int, x []T) {
	for i := 0; i < l; i++ {
		x[i] = r.Neg(x[i])
	}
}

// ButterflyCT applies the Cooley-Tukey butterfly across two paired
// buffers: with a = x[i] and b = c*y[i], x[i] becomes a+b and y[i]
// becomes a-b, all mod q. In place.
func (r *Ring[T]) ButterflyCT(c T, x, y []T) {
	if r.unroll && len(x) >= unrollBlock {
		r.butterflyCTUnroll(c, x, y)
		return
	}
	r.butterflyCTRef(c, x, y)
}

func (r *Ring[T]) butterflyCTRef(c T, x, y []T) {
	for i := range x {
		a := x[i]
		b := r.mulFn(c, y[i])
		x[i] = r.Add(a, b)
		y[i] = r.Sub(a, b)
	}
}

// ButterflyGS applies the Gentleman-Sande butterfly across two paired
// buffers: with a = x[i] and b = y[i], x[i] becomes a+b and y[i]
// becomes c*(a-b), all mod q. In place.
func (r *Ring[T]) ButterflyGS(c T, x, y []T) {
	if r.unroll && len(x) >= unrollBlock {
		r.butterflyGSUnroll(c, x, y)
		return
	}
	r.butterflyGSRef(c, x, y)
}

func (r *Ring[T]) butterflyGSRef(c T, x, y []T) {
	for i := range x {
		a := x[i]
		b := y[i]
		x[i] = r.Add(a, b)
		y[i] = r.mulFn(c, r.Sub(a, b))
	}
}
