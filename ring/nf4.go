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

import (
	"github.com/pkg/errors"

	"github.com/fastntt/fastntt/ints"
)

const (
	nf4Q     = uint32(65537)
	nf4Lanes = 4
	laneBits = 16
	laneMask = uint64(1)<<laneBits - 1
)

// NF4 is the composite ring packing four GF(65537) sub-elements into
// one 64-bit word. Each lane is a 16-bit slot; the value q-1 = 65536
// does not fit a slot and travels through the GroupedValues sentinel
// mask instead. All lane arithmetic happens in the underlying Fermat
// ring.
type NF4 struct {
	f *Fermat[uint32]
}

// Packed is the NF4 element type: four packed lanes plus the sentinel
// mask.
type Packed = GroupedValues[uint64]

// NewNF4 constructs the packed ring over GF(65537).
func NewNF4() (*NF4, error) {
	f, err := NewFermat(nf4Q)
	if err != nil {
		return nil, err
	}
	return &NF4{f: f}, nil
}

// SubField returns the underlying GF(65537) ring.
func (r *NF4) SubField() *Fermat[uint32] {
	return r.f
}

// Replicate broadcasts a across all four lanes. The sentinel q-1 is
// representable through the mask, so any element of the sub-field is
// accepted.
func (r *NF4) Replicate(a uint32) Packed {
	var lanes [nf4Lanes]uint32
	for i := range lanes {
		lanes[i] = a
	}
	return r.Pack(lanes)
}

// Pack folds four sub-field elements into a packed word, routing the
// sentinel value through the flag mask.
func (r *NF4) Pack(lanes [nf4Lanes]uint32) Packed {
	var g Packed
	for i, v := range lanes {
		if v == nf4Q-1 {
			g.Flag = ints.SetBit(g.Flag, i)
			continue // lane stays zero; the flag carries the value
		}
		g.Values |= uint64(v) << (laneBits * i)
	}
	return g
}

// Unpack expands a packed word back into its four sub-field elements.
func (r *NF4) Unpack(g Packed) [nf4Lanes]uint32 {
	var lanes [nf4Lanes]uint32
	for i := range lanes {
		if ints.TestBit(g.Flag, i) {
			lanes[i] = nf4Q - 1
			continue
		}
		lanes[i] = uint32(g.Values>>(laneBits*i)) & uint32(laneMask)
	}
	return lanes
}

// lanewise applies op to each lane pair of a and b.
func (r *NF4) lanewise(a, b Packed, op func(x, y uint32) uint32) Packed {
	la, lb := r.Unpack(a), r.Unpack(b)
	var out [nf4Lanes]uint32
	for i := range out {
		out[i] = op(la[i], lb[i])
	}
	return r.Pack(out)
}

// Card returns the sub-field cardinality.
func (r *NF4) Card() uint32 {
	return nf4Q
}

// FromUint64 reduces v into the sub-field and broadcasts it.
func (r *NF4) FromUint64(v uint64) Packed {
	return r.Replicate(uint32(v % uint64(nf4Q)))
}

// Add adds lane-wise.
func (r *NF4) Add(a, b Packed) Packed {
	return r.lanewise(a, b, r.f.Add)
}

// Sub subtracts lane-wise.
func (r *NF4) Sub(a, b Packed) Packed {
	return r.lanewise(a, b, r.f.Sub)
}

// Mul multiplies lane-wise.
func (r *NF4) Mul(a, b Packed) Packed {
	return r.lanewise(a, b, r.f.Mul)
}

// Neg negates lane-wise.
func (r *NF4) Neg(a Packed) Packed {
	la := r.Unpack(a)
	var out [nf4Lanes]uint32
	for i := range out {
		out[i] = r.f.Neg(la[i])
	}
	return r.Pack(out)
}

// Inv inverts lane-wise; any zero lane makes the element non-invertible.
func (r *NF4) Inv(a Packed) (Packed, error) {
	la := r.Unpack(a)
	var out [nf4Lanes]uint32
	for i := range out {
		v, err := r.f.Inv(la[i])
		if err != nil {
			return Packed{}, errors.Wrapf(err, "lane %d", i)
		}
		out[i] = v
	}
	return r.Pack(out), nil
}

// Exp raises every lane to the e-th power.
func (r *NF4) Exp(a Packed, e uint64) Packed {
	la := r.Unpack(a)
	var out [nf4Lanes]uint32
	for i := range out {
		out[i] = r.f.ExpUint64(la[i], e)
	}
	return r.Pack(out)
}

// GetNthRoot broadcasts the sub-field's n-th root of unity.
func (r *NF4) GetNthRoot(n uint64) Packed {
	return r.Replicate(r.f.GetNthRoot(n))
}

// ComputeOmegas fills w with consecutive powers of omega.
func (r *NF4) ComputeOmegas(w []Packed, omega Packed) {
	if len(w) == 0 {
		return
	}
	w[0] = r.Replicate(1)
	for i := 1; i < len(w); i++ {
		w[i] = r.Mul(w[i-1], omega)
	}
}

// MulCoefToBuf computes dst[i] = c * src[i] lane-wise.
func (r *NF4) MulCoefToBuf(c Packed, src, dst []Packed) {
	for i := range src {
		dst[i] = r.Mul(c, src[i])
	}
}

// AddTwoBufs computes dst[i] = dst[i] + src[i] lane-wise.
func (r *NF4) AddTwoBufs(src, dst []Packed) {
	for i := range src {
		dst[i] = r.Add(dst[i], src[i])
	}
}

// SubTwoBufs computes res[i] = a[i] - b[i] lane-wise.
func (r *NF4) SubTwoBufs(a, b, res []Packed) {
	for i := range a {
		res[i] = r.Sub(a[i], b[i])
	}
}

// HadamardMul computes x[i] = x[i] * y[i] lane-wise for i < n.
func (r *NF4) HadamardMul(n int, x, y []Packed) {
	for i := 0; i < n; i++ {
		x[i] = r.Mul(x[i], y[i])
	}
}

// ButterflyCT applies the Cooley-Tukey butterfly across two packed
// buffers.
func (r *NF4) ButterflyCT(c Packed, x, y []Packed) {
	for i := range x {
		a := x[i]
		b := r.Mul(c, y[i])
		x[i] = r.Add(a, b)
		y[i] = r.Sub(a, b)
	}
}

// ButterflyGS applies the Gentleman-Sande butterfly across two packed
// buffers.
func (r *NF4) ButterflyGS(c Packed, x, y []Packed) {
	for i := range x {
		a := x[i]
		b := y[i]
		x[i] = r.Add(a, b)
		y[i] = r.Mul(c, r.Sub(a, b))
	}
}
