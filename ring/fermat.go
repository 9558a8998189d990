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

// Fermat is the ring specialization for a Fermat prime q = 2^(2^k)+1.
// Since 2^s = -1 mod q, the double-width product folds into a single
// subtraction, and both the factorization of q-1 and the primitive
// root are known up front. The behavioral contract is the base ring's.
type Fermat[T Element] struct {
	Ring[T]
	shift uint
}

// fermatRoots maps the five Fermat primes to their smallest primitive
// root.
var fermatRoots = map[uint64]uint64{
	3:     2,
	5:     2,
	17:    3,
	257:   3,
	65537: 3,
}

// NewFermat constructs the ring modulo a Fermat prime. Moduli not of
// the form 2^(2^k)+1, or past 65537 where the Fermat numbers stop
// being prime, are rejected.
func NewFermat[T Element](q T) (*Fermat[T], error) {
	root, ok := fermatRoots[uint64(q)]
	if !ok {
		return nil, errors.Wrapf(ErrInvalidArgument, "%d is not a Fermat prime", uint64(q))
	}
	s := uint(ints.Log2(uint64(q - 1)))
	f := &Fermat[T]{shift: s}
	f.q = q
	f.qPrime = true
	f.unroll = unrollEnabled
	f.mulFn = func(a, b T) T { return fermatMul(a, b, q, s) }
	// q-1 = 2^s, so the factorization and divisor caches are immediate
	f.primes = []T{2}
	f.exponents = []int{int(s)}
	f.factors = make([]T, s)
	for i := range f.factors {
		f.factors[i] = 2
	}
	f.divisors = []T{(q - 1) / 2}
	f.root = T(root)
	logger.Debug("fermat ring initialized", "q", uint64(q), "root", root)
	return f, nil
}

// fermatMul folds the double-width product using 2^s = -1 mod q.
// The sentinel q-1 = 2^s is peeled off first so the remaining product
// fits the 64-bit accumulator for every supported width.
func fermatMul[T Element](a, b, q T, s uint) T {
	if a == q-1 {
		if b == 0 {
			return 0
		}
		return q - b
	}
	if b == q-1 {
		if a == 0 {
			return 0
		}
		return q - a
	}
	p := uint64(a) * uint64(b)
	lo := T(p & (uint64(1)<<s - 1))
	hi := T(p >> s)
	if lo >= hi {
		return lo - hi
	}
	return q - hi + lo
}
