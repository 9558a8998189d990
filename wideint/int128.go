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

// Int128 is a signed 128-bit integer in two's-complement form. It is the
// coefficient type for extended GCD over 64-bit operands, where Bezout
// coefficients do not fit a signed machine word.
type Int128 struct {
	u Uint128
}

// I128From64 widens v to an Int128.
func I128From64(v int64) Int128 {
	if v < 0 {
		return Int128{u: Uint128{}.Sub(U128From64(uint64(-v)))}
	}
	return Int128{u: U128From64(uint64(v))}
}

// Sign returns -1, 0 or +1 depending on the sign of x.
func (x Int128) Sign() int {
	if x.u.IsZero() {
		return 0
	}
	if x.u.Hi>>63 != 0 {
		return -1
	}
	return 1
}

// Neg returns -x.
func (x Int128) Neg() Int128 {
	return Int128{u: Uint128{}.Sub(x.u)}
}

// Add returns x + y.
func (x Int128) Add(y Int128) Int128 {
	return Int128{u: x.u.Add(y.u)}
}

// Sub returns x - y.
func (x Int128) Sub(y Int128) Int128 {
	return Int128{u: x.u.Sub(y.u)}
}

// MulUint64 returns x * v. Two's-complement multiplication modulo 2^128
// is sign-correct as long as the true product fits 128 bits, which holds
// for Bezout coefficient updates on 64-bit operands.
func (x Int128) MulUint64(v uint64) Int128 {
	return Int128{u: x.u.MulUint64(v)}
}

// Abs returns the magnitude of x.
func (x Int128) Abs() Uint128 {
	if x.Sign() < 0 {
		return Uint128{}.Sub(x.u)
	}
	return x.u
}

// Cmp returns -1, 0 or +1 depending on whether x is
// less than, equal to or greater than y.
func (x Int128) Cmp(y Int128) int {
	sx, sy := x.Sign(), y.Sign()
	if sx != sy {
		if sx < sy {
			return -1
		}
		return 1
	}
	return x.u.Cmp(y.u) // same sign: raw comparison is order-preserving
}

// Mod64 returns x mod m with the result normalized into [0, m).
// m must be nonzero.
func (x Int128) Mod64(m uint64) uint64 {
	r := x.Abs().Mod64(m)
	if x.Sign() < 0 && r != 0 {
		return m - r
	}
	return r
}

// String returns the decimal representation of x.
func (x Int128) String() string {
	if x.Sign() < 0 {
		return "-" + x.Abs().String()
	}
	return x.u.String()
}
