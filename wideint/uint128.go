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

// Package wideint provides the double-width integer types used as
// accumulators for modular multiplication: a 128-bit unsigned integer,
// its signed companion for extended-GCD coefficients, and a 256-bit
// unsigned integer for the 128-bit element family.
package wideint

import (
	"math/bits"
	"strconv"

	"github.com/pkg/errors"
)

// Uint128 is an unsigned 128-bit integer with Lo holding the
// least-significant 64 bits.
type Uint128 struct {
	Hi, Lo uint64
}

// U128From64 widens v to a Uint128.
func U128From64(v uint64) Uint128 {
	return Uint128{Lo: v}
}

// Mul64 returns the full 128-bit product of a and b.
func Mul64(a, b uint64) Uint128 {
	hi, lo := bits.Mul64(a, b)
	return Uint128{Hi: hi, Lo: lo}
}

// IsZero reports whether x is zero.
func (x Uint128) IsZero() bool {
	return x.Hi == 0 && x.Lo == 0
}

// Cmp returns -1, 0 or +1 depending on whether x is
// less than, equal to or greater than y.
func (x Uint128) Cmp(y Uint128) int {
	switch {
	case x.Hi != y.Hi:
		if x.Hi < y.Hi {
			return -1
		}
		return 1
	case x.Lo != y.Lo:
		if x.Lo < y.Lo {
			return -1
		}
		return 1
	}
	return 0
}

// Add returns x + y mod 2^128.
func (x Uint128) Add(y Uint128) Uint128 {
	lo, carry := bits.Add64(x.Lo, y.Lo, 0)
	hi, _ := bits.Add64(x.Hi, y.Hi, carry)
	return Uint128{Hi: hi, Lo: lo}
}

// AddCarry returns x + y mod 2^128 and the outgoing carry bit.
func (x Uint128) AddCarry(y Uint128) (Uint128, uint64) {
	lo, carry := bits.Add64(x.Lo, y.Lo, 0)
	hi, carry := bits.Add64(x.Hi, y.Hi, carry)
	return Uint128{Hi: hi, Lo: lo}, carry
}

// Sub returns x - y mod 2^128.
func (x Uint128) Sub(y Uint128) Uint128 {
	lo, borrow := bits.Sub64(x.Lo, y.Lo, 0)
	hi, _ := bits.Sub64(x.Hi, y.Hi, borrow)
	return Uint128{Hi: hi, Lo: lo}
}

// Mul returns x * y mod 2^128.
func (x Uint128) Mul(y Uint128) Uint128 {
	hi, lo := bits.Mul64(x.Lo, y.Lo)
	hi += x.Hi*y.Lo + x.Lo*y.Hi
	return Uint128{Hi: hi, Lo: lo}
}

// MulUint64 returns x * v mod 2^128.
func (x Uint128) MulUint64(v uint64) Uint128 {
	hi, lo := bits.Mul64(x.Lo, v)
	hi += x.Hi * v
	return Uint128{Hi: hi, Lo: lo}
}

// BitLen returns the number of bits required to represent x.
func (x Uint128) BitLen() int {
	if x.Hi != 0 {
		return 64 + bits.Len64(x.Hi)
	}
	return bits.Len64(x.Lo)
}

// Lsh returns x << n; n must be below 128.
func (x Uint128) Lsh(n uint) Uint128 {
	switch {
	case n == 0:
		return x
	case n >= 64:
		return Uint128{Hi: x.Lo << (n - 64)}
	}
	return Uint128{Hi: x.Hi<<n | x.Lo>>(64-n), Lo: x.Lo << n}
}

// Rsh returns x >> n; n must be below 128.
func (x Uint128) Rsh(n uint) Uint128 {
	switch {
	case n == 0:
		return x
	case n >= 64:
		return Uint128{Lo: x.Hi >> (n - 64)}
	}
	return Uint128{Hi: x.Hi >> n, Lo: x.Lo>>n | x.Hi<<(64-n)}
}

// QuoRem64 returns the quotient and remainder of x divided by d.
// d must be nonzero.
func (x Uint128) QuoRem64(d uint64) (Uint128, uint64) {
	qhi, r := bits.Div64(0, x.Hi, d)
	qlo, r := bits.Div64(r, x.Lo, d)
	return Uint128{Hi: qhi, Lo: qlo}, r
}

// Mod64 returns x mod d. d must be nonzero.
func (x Uint128) Mod64(d uint64) uint64 {
	_, r := x.QuoRem64(d)
	return r
}

// QuoRem returns the quotient and remainder of x divided by y
// by binary long division. y must be nonzero.
func (x Uint128) QuoRem(y Uint128) (q, r Uint128) {
	if y.IsZero() {
		panic("wideint: division by zero")
	}
	if y.Hi == 0 {
		q, rem := x.QuoRem64(y.Lo)
		return q, U128From64(rem)
	}
	if x.Cmp(y) < 0 {
		return Uint128{}, x
	}
	shift := x.BitLen() - y.BitLen()
	d := y.Lsh(uint(shift))
	for ; shift >= 0; shift-- {
		q = q.Lsh(1)
		if x.Cmp(d) >= 0 {
			x = x.Sub(d)
			q.Lo |= 1
		}
		d = d.Rsh(1)
	}
	return q, x
}

// Mod returns x mod y. y must be nonzero.
func (x Uint128) Mod(y Uint128) Uint128 {
	_, r := x.QuoRem(y)
	return r
}

// String returns the decimal representation of x.
func (x Uint128) String() string {
	if x.Hi == 0 {
		return strconv.FormatUint(x.Lo, 10)
	}
	var buf [39]byte
	i := len(buf)
	for !x.IsZero() {
		var r uint64
		x, r = x.QuoRem64(10)
		i--
		buf[i] = byte('0' + r)
	}
	return string(buf[i:])
}

// maxUint128Div10 is (2^128 - 1) / 10, the largest value that can be
// multiplied by ten without wrapping.
var maxUint128Div10 = Uint128{Hi: 0x1999999999999999, Lo: 0x9999999999999999}

// ParseUint128 parses a decimal string into a Uint128.
func ParseUint128(s string) (Uint128, error) {
	if s == "" {
		return Uint128{}, errors.New("wideint: empty decimal string")
	}
	var z Uint128
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < '0' || c > '9' {
			return Uint128{}, errors.Errorf("wideint: invalid decimal digit %q", c)
		}
		if z.Cmp(maxUint128Div10) > 0 {
			return Uint128{}, errors.Errorf("wideint: decimal %q overflows 128 bits", s)
		}
		var carry uint64
		z, carry = z.MulUint64(10).AddCarry(U128From64(uint64(c - '0')))
		if carry != 0 {
			return Uint128{}, errors.Errorf("wideint: decimal %q overflows 128 bits", s)
		}
	}
	return z, nil
}
