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

package wideint

import "math/bits"

// Uint256 is an unsigned 256-bit integer stored as four 64-bit limbs,
// least-significant first. No hardware provides it, so it exists purely
// as the accumulator for 128-bit modular multiplication.
type Uint256 [4]uint64

// U256From128 widens x to a Uint256.
func U256From128(x Uint128) Uint256 {
	return Uint256{x.Lo, x.Hi, 0, 0}
}

// Mul128 returns the full 256-bit product of x and y.
func Mul128(x, y Uint128) Uint256 {
	p0hi, p0lo := bits.Mul64(x.Lo, y.Lo)
	p1hi, p1lo := bits.Mul64(x.Lo, y.Hi)
	p2hi, p2lo := bits.Mul64(x.Hi, y.Lo)
	p3hi, p3lo := bits.Mul64(x.Hi, y.Hi)

	var z Uint256
	z[0] = p0lo

	l1, c1 := bits.Add64(p0hi, p1lo, 0)
	l1, c2 := bits.Add64(l1, p2lo, 0)
	z[1] = l1

	l2, c3 := bits.Add64(p1hi, p2hi, c1)
	l2, c4 := bits.Add64(l2, p3lo, c2)
	z[2] = l2

	z[3] = p3hi + c3 + c4
	return z
}

// IsZero reports whether z is zero.
func (z Uint256) IsZero() bool {
	return z[0]|z[1]|z[2]|z[3] == 0
}

// Cmp returns -1, 0 or +1 depending on whether z is
// less than, equal to or greater than y.
func (z Uint256) Cmp(y Uint256) int {
	for i := 3; i >= 0; i-- {
		if z[i] != y[i] {
			if z[i] < y[i] {
				return -1
			}
			return 1
		}
	}
	return 0
}

// Add returns z + y mod 2^256.
func (z Uint256) Add(y Uint256) Uint256 {
	var r Uint256
	var c uint64
	r[0], c = bits.Add64(z[0], y[0], 0)
	r[1], c = bits.Add64(z[1], y[1], c)
	r[2], c = bits.Add64(z[2], y[2], c)
	r[3], _ = bits.Add64(z[3], y[3], c)
	return r
}

// Sub returns z - y mod 2^256.
func (z Uint256) Sub(y Uint256) Uint256 {
	var r Uint256
	var b uint64
	r[0], b = bits.Sub64(z[0], y[0], 0)
	r[1], b = bits.Sub64(z[1], y[1], b)
	r[2], b = bits.Sub64(z[2], y[2], b)
	r[3], _ = bits.Sub64(z[3], y[3], b)
	return r
}

// BitLen returns the number of bits required to represent z.
func (z Uint256) BitLen() int {
	for i := 3; i >= 0; i-- {
		if z[i] != 0 {
			return i*64 + bits.Len64(z[i])
		}
	}
	return 0
}

// Lsh returns z << n; n must be below 256.
func (z Uint256) Lsh(n uint) Uint256 {
	var r Uint256
	limb := n / 64
	off := n % 64
	for i := 3; i >= int(limb); i-- {
		r[i] = z[i-int(limb)] << off
		if off != 0 && i-int(limb)-1 >= 0 {
			r[i] |= z[i-int(limb)-1] >> (64 - off)
		}
	}
	return r
}

// Rsh returns z >> n; n must be below 256.
func (z Uint256) Rsh(n uint) Uint256 {
	var r Uint256
	limb := n / 64
	off := n % 64
	for i := 0; i+int(limb) <= 3; i++ {
		r[i] = z[i+int(limb)] >> off
		if off != 0 && i+int(limb)+1 <= 3 {
			r[i] |= z[i+int(limb)+1] << (64 - off)
		}
	}
	return r
}

// Low128 truncates z to its low 128 bits.
func (z Uint256) Low128() Uint128 {
	return Uint128{Hi: z[1], Lo: z[0]}
}

// Mod128 returns z mod m by shift-subtract long division.
// m must be nonzero.
func (z Uint256) Mod128(m Uint128) Uint128 {
	if m.IsZero() {
		panic("wideint: division by zero")
	}
	if m.Hi == 0 && z[2] == 0 && z[3] == 0 {
		// two-limb dividend, single-limb divisor
		r := z[1] % m.Lo
		_, r = bits.Div64(r, z[0], m.Lo)
		return U128From64(r)
	}
	d := U256From128(m)
	if z.Cmp(d) < 0 {
		return z.Low128()
	}
	shift := z.BitLen() - d.BitLen()
	d = d.Lsh(uint(shift))
	for ; shift >= 0; shift-- {
		if z.Cmp(d) >= 0 {
			z = z.Sub(d)
		}
		d = d.Rsh(1)
	}
	return z.Low128()
}
