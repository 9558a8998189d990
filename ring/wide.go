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
	"golang.org/x/exp/slices"

	"github.com/fastntt/fastntt/arith"
	"github.com/fastntt/fastntt/omegacache"
	"github.com/fastntt/fastntt/wideint"
)

// Wide is the ring for moduli past 64 bits. Elements are Uint128
// values and the multiplication accumulator is the software 256-bit
// integer. There is no vector specialization at this width; every
// buffer primitive is the scalar loop.
//
// Factoring a 128-bit q-1 by trial division is not practical, so the
// caller supplies the factorization, the same escape hatch lattice
// libraries expose for large NTT moduli.
type Wide struct {
	q         wideint.Uint128
	qm1       wideint.Uint128
	root      wideint.Uint128
	primes    []wideint.Uint128
	exponents []int
	divisors  []wideint.Uint128
}

// NewWide constructs the ring modulo q given the prime factorization
// of q-1 as parallel prime/exponent lists. Each prime must divide q-1;
// the product of the powers must reconstruct q-1 exactly.
func NewWide(q wideint.Uint128, primes []wideint.Uint128, exponents []int) (*Wide, error) {
	two := wideint.U128From64(2)
	if q.Cmp(two) < 0 {
		panic("ring: modulus must be at least 2")
	}
	if len(primes) != len(exponents) {
		return nil, errors.Wrap(ErrInvalidArgument, "prime and exponent lists differ in length")
	}
	qm1 := q.Sub(wideint.U128From64(1))
	product := wideint.U128From64(1)
	for i, p := range primes {
		if p.Cmp(two) < 0 {
			return nil, errors.Wrapf(ErrInvalidArgument, "factor %v is not a prime", p)
		}
		if !qm1.Mod(p).IsZero() {
			return nil, errors.Wrapf(ErrInvalidArgument, "%v does not divide q-1", p)
		}
		for j := 0; j < exponents[i]; j++ {
			product = wideint.Mul128(product, p).Mod128(q) // bounded by q-1 < q
		}
	}
	if product.Cmp(qm1) != 0 {
		return nil, errors.Wrap(ErrInvalidArgument, "factorization does not reconstruct q-1")
	}
	r := &Wide{q: q, qm1: qm1, primes: slices.Clone(primes), exponents: slices.Clone(exponents)}
	r.divisors = make([]wideint.Uint128, len(primes))
	for i, p := range primes {
		d, _ := qm1.QuoRem(p)
		r.divisors[i] = d
	}
	r.root = r.findPrimitiveRoot()
	logger.Debug("wide ring initialized", "q", q.String(), "root", r.root.String())
	return r, nil
}

// Card returns the ring cardinality q.
func (r *Wide) Card() wideint.Uint128 {
	return r.q
}

// Check reports whether a is a valid element, i.e. 0 <= a < q.
func (r *Wide) Check(a wideint.Uint128) bool {
	return a.Cmp(r.q) < 0
}

// FromUint64 reduces v into the ring.
func (r *Wide) FromUint64(v uint64) wideint.Uint128 {
	return wideint.U128From64(v).Mod(r.q)
}

// Neg returns (q - a) mod q.
func (r *Wide) Neg(a wideint.Uint128) wideint.Uint128 {
	if a.IsZero() {
		return a
	}
	return r.q.Sub(a)
}

// Add returns (a + b) mod q. A carry out of the 128-bit sum wraps by
// exactly 2^128, which the conditional subtraction of q reabsorbs.
func (r *Wide) Add(a, b wideint.Uint128) wideint.Uint128 {
	s, carry := a.AddCarry(b)
	if carry != 0 || s.Cmp(r.q) >= 0 {
		return s.Sub(r.q)
	}
	return s
}

// Sub returns (a - b) mod q.
func (r *Wide) Sub(a, b wideint.Uint128) wideint.Uint128 {
	if a.Cmp(b) >= 0 {
		return a.Sub(b)
	}
	return r.q.Sub(b).Add(a)
}

// Mul returns (a * b) mod q through the 256-bit accumulator.
func (r *Wide) Mul(a, b wideint.Uint128) wideint.Uint128 {
	return wideint.Mul128(a, b).Mod128(r.q)
}

// Exp returns a^e mod q by square-and-multiply over the exponent bits.
func (r *Wide) Exp(a, e wideint.Uint128) wideint.Uint128 {
	res := wideint.U128From64(1)
	base := a
	for !e.IsZero() {
		if e.Lo&1 == 1 {
			res = r.Mul(res, base)
		}
		base = r.Mul(base, base)
		e = e.Rsh(1)
	}
	return res
}

// ExpUint64 is Exp for machine-word exponents.
func (r *Wide) ExpUint64(a wideint.Uint128, e uint64) wideint.Uint128 {
	return r.Exp(a, wideint.U128From64(e))
}

// Inv returns the multiplicative inverse of a. The Bezout coefficient
// is tracked modulo q directly, sidestepping a signed 256-bit ladder.
func (r *Wide) Inv(a wideint.Uint128) (wideint.Uint128, error) {
	if a.IsZero() {
		return wideint.Uint128{}, errors.Wrap(ErrInvalidArgument, "zero has no inverse")
	}
	t, newt := wideint.Uint128{}, wideint.U128From64(1)
	rem, newrem := r.q, a
	for !newrem.IsZero() {
		quo, nextrem := rem.QuoRem(newrem)
		t, newt = newt, r.Sub(t, r.Mul(quo.Mod(r.q), newt))
		rem, newrem = newrem, nextrem
	}
	if rem.Cmp(wideint.U128From64(1)) != 0 {
		return wideint.Uint128{}, errors.Wrapf(ErrInvalidArgument, "%v is not a unit modulo %v", a, r.q)
	}
	return t, nil
}

// Div returns a / b, i.e. a * Inv(b).
func (r *Wide) Div(a, b wideint.Uint128) (wideint.Uint128, error) {
	ib, err := r.Inv(b)
	if err != nil {
		return wideint.Uint128{}, err
	}
	return r.Mul(a, ib), nil
}

// Log returns the smallest e in [1, q) with a^e = b. The scan is
// linear in q, usable only for small moduli hosted in this ring.
func (r *Wide) Log(a, b wideint.Uint128) (wideint.Uint128, error) {
	one := wideint.U128From64(1)
	cur := a
	for e := one; e.Cmp(r.q) < 0; e = e.Add(one) {
		if cur.Cmp(b) == 0 {
			return e, nil
		}
		cur = r.Mul(cur, a)
	}
	return wideint.Uint128{}, errors.Wrapf(arith.ErrNoSolution, "no discrete log of %v base %v", b, a)
}

// PrimitiveRoot returns the cached generator of the multiplicative
// group.
func (r *Wide) PrimitiveRoot() wideint.Uint128 {
	return r.root
}

// IsPrimitiveRoot reports whether x generates the full multiplicative
// group, by the proper-divisor test plus the order-divides check.
func (r *Wide) IsPrimitiveRoot(x wideint.Uint128) bool {
	if x.IsZero() {
		return false
	}
	one := wideint.U128From64(1)
	for _, d := range r.divisors {
		if r.Exp(x, d).Cmp(one) == 0 {
			return false
		}
	}
	return r.Exp(x, r.qm1).Cmp(one) == 0
}

func (r *Wide) findPrimitiveRoot() wideint.Uint128 {
	if r.q.Cmp(wideint.U128From64(2)) == 0 {
		return wideint.U128From64(1)
	}
	one := wideint.U128From64(1)
	for x := wideint.U128From64(2); x.Cmp(r.q) < 0; x = x.Add(one) {
		if r.IsPrimitiveRoot(x) {
			return x
		}
	}
	panic("ring: primitive root search exhausted")
}

// Order returns the smallest d >= 1 with x^d = 1.
func (r *Wide) Order(x wideint.Uint128) wideint.Uint128 {
	one := wideint.U128From64(1)
	if x.IsZero() || x.Cmp(one) == 0 {
		return one
	}
	h := r.qm1
	exps := slices.Clone(r.exponents)
	for i := 0; i < len(r.primes); {
		if exps[i] == 0 {
			i++
			continue
		}
		y, _ := h.QuoRem(r.primes[i])
		if r.Exp(x, y).Cmp(one) != 0 {
			i++
			continue
		}
		h = y
		exps[i]--
	}
	return h
}

// GetNthRoot returns g^((q-1)/d) for d = gcd(n, q-1).
func (r *Wide) GetNthRoot(n uint64) wideint.Uint128 {
	d := arith.GCD(r.qm1.Mod64(n), n)
	e, _ := r.qm1.QuoRem64(d)
	return r.Exp(r.root, e)
}

// ComputeOmegas fills w with consecutive powers of omega.
func (r *Wide) ComputeOmegas(w []wideint.Uint128, omega wideint.Uint128) {
	if len(w) == 0 {
		return
	}
	w[0] = wideint.U128From64(1)
	for i := 1; i < len(w); i++ {
		w[i] = r.Mul(w[i-1], omega)
	}
}

// ComputeOmegasCached is ComputeOmegas backed by a store, in the same
// one-decimal-per-line format as the machine-width rings.
func (r *Wide) ComputeOmegasCached(store omegacache.Store, w []wideint.Uint128, omega wideint.Uint128) error {
	key := omegacache.Key(omega.String())
	data, err := store.Get(key)
	switch {
	case err == nil:
		return r.parseOmegas(data, w)
	case !errors.Is(err, omegacache.ErrMiss):
		return err
	}
	r.ComputeOmegas(w, omega)
	out := make([]byte, 0, len(w)*20)
	for _, v := range w {
		out = append(out, v.String()...)
		out = append(out, '\n')
	}
	return store.Put(key, out)
}

func (r *Wide) parseOmegas(data []byte, w []wideint.Uint128) error {
	count := 0
	for len(data) > 0 {
		nl := 0
		for nl < len(data) && data[nl] != '\n' {
			nl++
		}
		line := data[:nl]
		if nl < len(data) {
			data = data[nl+1:]
		} else {
			data = nil
		}
		if len(line) == 0 {
			continue
		}
		if count >= len(w) {
			return errors.Wrapf(omegacache.ErrCorrupt, "cache holds more than %d elements", len(w))
		}
		v, err := wideint.ParseUint128(string(line))
		if err != nil {
			return errors.Wrapf(omegacache.ErrCorrupt, "line %d: %v", count+1, err)
		}
		w[count] = v
		count++
	}
	if count != len(w) {
		return errors.Wrapf(omegacache.ErrCorrupt, "cache holds %d elements, want %d", count, len(w))
	}
	return nil
}

// MulCoefToBuf computes dst[i] = c * src[i] mod q.
func (r *Wide) MulCoefToBuf(c wideint.Uint128, src, dst []wideint.Uint128) {
	for i := range src {
		dst[i] = r.Mul(c, src[i])
	}
}

// AddTwoBufs computes dst[i] = (dst[i] + src[i]) mod q.
func (r *Wide) AddTwoBufs(src, dst []wideint.Uint128) {
	for i := range src {
		dst[i] = r.Add(dst[i], src[i])
	}
}

// SubTwoBufs computes res[i] = (a[i] - b[i]) mod q.
func (r *Wide) SubTwoBufs(a, b, res []wideint.Uint128) {
	for i := range a {
		res[i] = r.Sub(a[i], b[i])
	}
}

// HadamardMul computes x[i] = x[i] * y[i] mod q for i < n.
func (r *Wide) HadamardMul(n int, x, y []wideint.Uint128) {
	for i := 0; i < n; i++ {
		x[i] = r.Mul(x[i], y[i])
	}
}

// ButterflyCT applies the Cooley-Tukey butterfly across two paired
// buffers.
func (r *Wide) ButterflyCT(c wideint.Uint128, x, y []wideint.Uint128) {
	for i := range x {
		a := x[i]
		b := r.Mul(c, y[i])
		x[i] = r.Add(a, b)
		y[i] = r.Sub(a, b)
	}
}

// ButterflyGS applies the Gentleman-Sande butterfly across two paired
// buffers.
func (r *Wide) ButterflyGS(c wideint.Uint128, x, y []wideint.Uint128) {
	for i := range x {
		a := x[i]
		b := y[i]
		x[i] = r.Add(a, b)
		y[i] = r.Mul(c, r.Sub(a, b))
	}
}
