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

// Package arith implements the scalar number-theoretic primitives the
// ring layer is built on: GCDs, prime factorization and the search for
// usable transform lengths.
package arith

import (
	"github.com/pkg/errors"
	"golang.org/x/exp/constraints"

	"github.com/fastntt/fastntt/heap"
	"github.com/fastntt/fastntt/wideint"
)

// ErrNoSolution is returned when a search has no answer in its domain:
// no code length divides the group order, or a discrete logarithm does
// not exist.
var ErrNoSolution = errors.New("no solution")

// GCD returns the greatest common divisor of a and b.
func GCD[T constraints.Unsigned](a, b T) T {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// ExtendedGCD returns g = gcd(a, b) along with Bezout coefficients
// satisfying s*a + t*b = g.
func ExtendedGCD(a, b int64) (g, s, t int64) {
	oldR, r := a, b
	oldS, curS := int64(1), int64(0)
	oldT, curT := int64(0), int64(1)
	for r != 0 {
		q := oldR / r
		oldR, r = r, oldR-q*r
		oldS, curS = curS, oldS-q*curS
		oldT, curT = curT, oldT-q*curT
	}
	if oldR < 0 {
		return -oldR, -oldS, -oldT
	}
	return oldR, oldS, oldT
}

// ExtendedGCD64 is ExtendedGCD for full-range 64-bit operands. Bezout
// coefficients on 64-bit inputs need up to 65 signed bits, so they are
// returned in the 128-bit signed companion width.
func ExtendedGCD64(a, b uint64) (g uint64, s, t wideint.Int128) {
	oldR, r := a, b
	oldS, curS := wideint.I128From64(1), wideint.I128From64(0)
	oldT, curT := wideint.I128From64(0), wideint.I128From64(1)
	for r != 0 {
		q := oldR / r
		oldR, r = r, oldR-q*r
		oldS, curS = curS, oldS.Sub(curS.MulUint64(q))
		oldT, curT = curT, oldT.Sub(curT.MulUint64(q))
	}
	return oldR, oldS, oldT
}

// Factor returns the unique prime factorization of n with primes in
// strictly increasing order and exponents[i] the multiplicity of
// primes[i]. Factor(1) returns empty lists.
func Factor[T constraints.Unsigned](n T) (primes []T, exponents []int, err error) {
	if n == 0 {
		return nil, nil, errors.New("arith: cannot factor zero")
	}
	v := uint64(n)
	for p := uint64(2); p*p <= v; p++ {
		if v%p != 0 {
			continue
		}
		e := 0
		for v%p == 0 {
			v /= p
			e++
		}
		primes = append(primes, T(p))
		exponents = append(exponents, e)
	}
	if v > 1 {
		primes = append(primes, T(v))
		exponents = append(exponents, 1)
	}
	return primes, exponents, nil
}

// FlatFactors expands a factorization into the flat list of prime
// factors with multiplicity, preserving order: each primes[i] repeated
// exponents[i] times.
func FlatFactors[T constraints.Unsigned](primes []T, exponents []int) []T {
	var flat []T
	for i, p := range primes {
		for j := 0; j < exponents[i]; j++ {
			flat = append(flat, p)
		}
	}
	return flat
}

// ProperDivisors returns n/p for each distinct prime divisor p of n.
func ProperDivisors[T constraints.Unsigned](n T, primes []T) []T {
	divisors := make([]T, len(primes))
	for i, p := range primes {
		divisors[i] = n / p
	}
	return divisors
}

// IsPrime reports whether n is prime, by trial division.
func IsPrime[T constraints.Unsigned](n T) bool {
	v := uint64(n)
	if v < 2 {
		return false
	}
	for p := uint64(2); p*p <= v; p++ {
		if v%p == 0 {
			return false
		}
	}
	return true
}

// CodeLength returns the smallest divisor of qMinus1 that is at least
// nMin, or ErrNoSolution if nMin exceeds qMinus1.
func CodeLength[T constraints.Unsigned](qMinus1, nMin T) (T, error) {
	if nMin > qMinus1 || qMinus1 == 0 {
		return 0, errors.Wrapf(ErrNoSolution, "no code length >= %d divides %d", nMin, qMinus1)
	}
	primes, exponents, err := Factor(qMinus1)
	if err != nil {
		return 0, err
	}
	return CodeLengthHighCompo(FlatFactors(primes, exponents), nMin)
}

// CodeLengthHighCompo returns the smallest product of a sub-multiset of
// factors that is at least nMin, or ErrNoSolution if even the full
// product falls short. The products of sub-multisets of a factorization
// are exactly the divisors of the factored value, so candidates are
// enumerated smallest-first through a min-heap.
func CodeLengthHighCompo[T constraints.Unsigned](factors []T, nMin T) (T, error) {
	total := uint64(1)
	for _, f := range factors {
		total *= uint64(f)
	}
	distinct := make([]uint64, 0, len(factors))
	for _, f := range factors {
		v := uint64(f)
		if len(distinct) == 0 || distinct[len(distinct)-1] != v {
			distinct = append(distinct, v)
		}
	}
	less := func(x, y uint64) bool { return x < y }
	seen := map[uint64]struct{}{1: {}}
	candidates := []uint64{1}
	for len(candidates) > 0 {
		v := heap.PopSlice(&candidates, less)
		if v >= uint64(nMin) {
			return T(v), nil
		}
		for _, p := range distinct {
			if p > total/v {
				continue // would overflow past the full product
			}
			next := v * p
			if total%next != 0 {
				continue
			}
			if _, ok := seen[next]; ok {
				continue
			}
			seen[next] = struct{}{}
			heap.PushSlice(&candidates, next, less)
		}
	}
	return 0, errors.Wrapf(ErrNoSolution, "no product of factors reaches %d", nMin)
}
