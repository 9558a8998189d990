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

// Unrolled buffer primitives. Each loop body handles unrollBlock
// elements through full slice expressions so bounds checks hoist out
// of the block. The trailing remainder falls back to the reference
// loop.

func (r *Ring[T]) mulCoefToBufUnroll(a T, src, dst []T) {
	n := len(src) &^ (unrollBlock - 1)
	mul := r.mulFn
	for i := 0; i < n; i += unrollBlock {
		s := src[i : i+unrollBlock : i+unrollBlock]
		d := dst[i : i+unrollBlock : i+unrollBlock]
		d[0] = mul(a, s[0])
		d[1] = mul(a, s[1])
		d[2] = mul(a, s[2])
		d[3] = mul(a, s[3])
		d[4] = mul(a, s[4])
		d[5] = mul(a, s[5])
		d[6] = mul(a, s[6])
		d[7] = mul(a, s[7])
	}
	r.mulCoefToBufRef(a, src[n:], dst[n:])
}

func (r *Ring[T]) addTwoBufsUnroll(src, dst []T) {
	n := len(src) &^ (unrollBlock - 1)
	for i := 0; i < n; i += unrollBlock {
		s := src[i : i+unrollBlock : i+unrollBlock]
		d := dst[i : i+unrollBlock : i+unrollBlock]
		d[0] = r.Add(d[0], s[0])
		d[1] = r.Add(d[1], s[1])
		d[2] = r.Add(d[2], s[2])
		d[3] = r.Add(d[3], s[3])
		d[4] = r.Add(d[4], s[4])
		d[5] = r.Add(d[5], s[5])
		d[6] = r.Add(d[6], s[6])
		d[7] = r.Add(d[7], s[7])
	}
	r.addTwoBufsRef(src[n:], dst[n:])
}

func (r *Ring[T]) subTwoBufsUnroll(a, b, res []T) {
	n := len(a) &^ (unrollBlock - 1)
	for i := 0; i < n; i += unrollBlock {
		x := a[i : i+unrollBlock : i+unrollBlock]
		y := b[i : i+unrollBlock : i+unrollBlock]
		z := res[i : i+unrollBlock : i+unrollBlock]
		z[0] = r.Sub(x[0], y[0])
		z[1] = r.Sub(x[1], y[1])
		z[2] = r.Sub(x[2], y[2])
		z[3] = r.Sub(x[3], y[3])
		z[4] = r.Sub(x[4], y[4])
		z[5] = r.Sub(x[5], y[5])
		z[6] = r.Sub(x[6], y[6])
		z[7] = r.Sub(x[7], y[7])
	}
	r.subTwoBufsRef(a[n:], b[n:], res[n:])
}

func (r *Ring[T]) hadamardMulUnroll(n int, x, y []T) {
	m := n &^ (unrollBlock - 1)
	mul := r.mulFn
	for i := 0; i < m; i += unrollBlock {
		xv := x[i : i+unrollBlock : i+unrollBlock]
		yv := y[i : i+unrollBlock : i+unrollBlock]
		xv[0] = mul(xv[0], yv[0])
		xv[1] = mul(xv[1], yv[1])
		xv[2] = mul(xv[2], yv[2])
		xv[3] = mul(xv[3], yv[3])
		xv[4] = mul(xv[4], yv[4])
		xv[5] = mul(xv[5], yv[5])
		xv[6] = mul(xv[6], yv[6])
		xv[7] = mul(xv[7], yv[7])
	}
	r.hadamardMulRef(n-m, x[m:n], y[m:n])
}

func (r *Ring[T]) butterflyCTUnroll(c T, x, y []T) {
	n := len(x) &^ (unrollBlock - 1)
	mul := r.mulFn
	for i := 0; i < n; i += unrollBlock {
		xv := x[i : i+unrollBlock : i+unrollBlock]
		yv := y[i : i+unrollBlock : i+unrollBlock]
		for j := 0; j < unrollBlock; j++ {
			a := xv[j]
			b := mul(c, yv[j])
			xv[j] = r.Add(a, b)
			yv[j] = r.Sub(a, b)
		}
	}
	r.butterflyCTRef(c, x[n:], y[n:])
}

func (r *Ring[T]) butterflyGSUnroll(c T, x, y []T) {
	n := len(x) &^ (unrollBlock - 1)
	mul := r.mulFn
	for i := 0; i < n; i += unrollBlock {
		xv := x[i : i+unrollBlock : i+unrollBlock]
		yv := y[i : i+unrollBlock : i+unrollBlock]
		for j := 0; j < unrollBlock; j++ {
			a := xv[j]
			b := yv[j]
			xv[j] = r.Add(a, b)
			yv[j] = mul(c, r.Sub(a, b))
		}
	}
	r.butterflyGSRef(c, x[n:], y[n:])
}
