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

// Package ring implements modular arithmetic over Z/qZ together with
// the group-theoretic operations and vectorized buffer primitives the
// transform drivers are built on. Specializations exist for Fermat
// moduli (q = 2^(2^k) + 1), for a packed composite field (NF4) and for
// 128-bit moduli (Wide).
package ring

import (
	"unsafe"

	"github.com/pkg/errors"

	"github.com/fastntt/fastntt/arith"
	"github.com/fastntt/fastntt/wideint"
)

// Element is the set of machine integer widths a generic ring can be
// instantiated over. Moduli past 64 bits use the Wide ring instead.
type Element interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64
}

// ErrInvalidArgument indicates an out-of-domain input to a ring
// operation that validates, such as inverting zero or a non-unit.
var ErrInvalidArgument = errors.New("invalid argument")

// Ring provides arithmetic modulo q. A ring is immutable once
// constructed and safe for concurrent readers; the primitive root and
// the factorization of q-1 are discovered at construction time.
type Ring[T Element] struct {
	q         T
	qPrime    bool
	root      T
	primes    []T
	exponents []int
	factors   []T
	divisors  []T
	mulFn     func(a, b T) T
	unroll    bool
}

// New constructs the ring of integers modulo q. The factorization of
// q-1 is cached and the smallest primitive root of the multiplicative
// group is located. A modulus below 2 is a programming bug and panics.
func New[T Element](q T) (*Ring[T], error) {
	if q < 2 {
		panic("ring: modulus must be at least 2")
	}
	r := &Ring[T]{q: q, unroll: unrollEnabled}
	r.mulFn = func(a, b T) T { return mulModGeneric(a, b, q) }
	if err := r.init(); err != nil {
		return nil, err
	}
	return r, nil
}

// init populates the factorization caches and locates the primitive
// root. It runs after the multiplication strategy has been chosen so
// that specialized constructors can slot in their own reduction first.
func (r *Ring[T]) init() error {
	r.qPrime = arith.IsPrime(uint64(r.q))
	var err error
	r.primes, r.exponents, err = arith.Factor(r.q - 1)
	if err != nil {
		return err
	}
	r.factors = arith.FlatFactors(r.primes, r.exponents)
	r.divisors = arith.ProperDivisors(r.q-1, r.primes)
	r.root = r.findPrimitiveRoot()
	logger.Debug("ring initialized", "q", uint64(r.q), "root", uint64(r.root))
	return nil
}

// mulModGeneric reduces the double-width product of a and b. Inputs
// must already be reduced below q.
func mulModGeneric[T Element](a, b, q T) T {
	if unsafe.Sizeof(q) == 8 {
		return T(wideint.Mul64(uint64(a), uint64(b)).Mod64(uint64(q)))
	}
	return T(uint64(a) * uint64(b) % uint64(q))
}

// Card returns the ring cardinality q.
func (r *Ring[T]) Card() T {
	return r.q
}

// CardMinusOne returns q-1, the multiplicative group order for prime q.
func (r *Ring[T]) CardMinusOne() T {
	return r.q - 1
}

// Check reports whether a is a valid element, i.e. 0 <= a < q.
func (r *Ring[T]) Check(a T) bool {
	return a < r.q
}

// FromUint64 reduces v into the ring.
func (r *Ring[T]) FromUint64(v uint64) T {
	return T(v % uint64(r.q))
}

// Neg returns (q - a) mod q.
func (r *Ring[T]) Neg(a T) T {
	if a == 0 {
		return 0
	}
	return r.q - a
}

// Add returns (a + b) mod q, with a conditional subtraction instead of
// a division. The computation never wraps the element type.
func (r *Ring[T]) Add(a, b T) T {
	d := r.q - b
	if a >= d {
		return a - d
	}
	return a + b
}

// Sub returns (a - b) mod q by branching on a >= b.
func (r *Ring[T]) Sub(a, b T) T {
	if a >= b {
		return a - b
	}
	return r.q - b + a
}

// Mul returns (a * b) mod q through the ring's reduction strategy.
func (r *Ring[T]) Mul(a, b T) T {
	return r.mulFn(a, b)
}

// Inv returns the multiplicative inverse of a, computed by extended
// GCD. Zero and non-units yield ErrInvalidArgument.
func (r *Ring[T]) Inv(a T) (T, error) {
	if a == 0 {
		return 0, errors.Wrap(ErrInvalidArgument, "zero has no inverse")
	}
	if unsafe.Sizeof(a) == 8 {
		g, s, _ := arith.ExtendedGCD64(uint64(a), uint64(r.q))
		if g != 1 {
			return 0, errors.Wrapf(ErrInvalidArgument, "%d is not a unit modulo %d", uint64(a), uint64(r.q))
		}
		return T(s.Mod64(uint64(r.q))), nil
	}
	g, s, _ := arith.ExtendedGCD(int64(a), int64(r.q))
	if g != 1 {
		return 0, errors.Wrapf(ErrInvalidArgument, "%d is not a unit modulo %d", uint64(a), uint64(r.q))
	}
	s %= int64(r.q)
	if s < 0 {
		s += int64(r.q)
	}
	return T(s), nil
}

// Div returns a / b, i.e. a * Inv(b).
func (r *Ring[T]) Div(a, b T) (T, error) {
	ib, err := r.Inv(b)
	if err != nil {
		return 0, err
	}
	return r.mulFn(a, ib), nil
}

// Exp returns a^e mod q by square-and-multiply.
// Exp(a, 0) is 1 and Exp(a, 1) is a.
func (r *Ring[T]) Exp(a, e T) T {
	res := T(1)
	base := a
	for e > 0 {
		if e&1 == 1 {
			res = r.mulFn(res, base)
		}
		base = r.mulFn(base, base)
		e >>= 1
	}
	return res
}

// ExpUint64 is Exp for exponents wider than the element type.
func (r *Ring[T]) ExpUint64(a T, e uint64) T {
	res := T(1)
	base := a
	for e > 0 {
		if e&1 == 1 {
			res = r.mulFn(res, base)
		}
		base = r.mulFn(base, base)
		e >>= 1
	}
	return res
}

// Log returns the smallest e in [1, q) with a^e = b, or an error
// wrapping arith.ErrNoSolution when no exponent works. The scan is
// linear in q and not meant for hot paths.
func (r *Ring[T]) Log(a, b T) (T, error) {
	cur := a
	for e := T(1); e < r.q; e++ {
		if cur == b {
			return e, nil
		}
		cur = r.mulFn(cur, a)
	}
	return 0, errors.Wrapf(arith.ErrNoSolution, "no discrete log of %d base %d modulo %d",
		uint64(b), uint64(a), uint64(r.q))
}

// IsQuadraticResidue reports whether some x satisfies x^2 = a mod q.
// For prime q the Euler criterion is used; otherwise the element space
// is scanned, which is only viable for tiny moduli.
func (r *Ring[T]) IsQuadraticResidue(a T) bool {
	if r.qPrime {
		e := r.Exp(a, (r.q-1)/2)
		return e == 1 || e == 0
	}
	for x := T(0); x < r.q; x++ {
		if r.mulFn(x, x) == a {
			return true
		}
	}
	return false
}
