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
	"bytes"
	"strconv"

	"github.com/pkg/errors"
	"golang.org/x/exp/slices"

	"github.com/fastntt/fastntt/arith"
	"github.com/fastntt/fastntt/omegacache"
)

// PrimitiveRoot returns the cached primitive root of the
// multiplicative group, located at construction time.
func (r *Ring[T]) PrimitiveRoot() T {
	return r.root
}

// Primes returns the distinct primes of the factorization of q-1.
func (r *Ring[T]) Primes() []T {
	return slices.Clone(r.primes)
}

// Factors returns the prime factors of q-1 with multiplicity.
func (r *Ring[T]) Factors() []T {
	return slices.Clone(r.factors)
}

// IsPrimitiveRoot reports whether x generates the full multiplicative
// group: x^d must differ from 1 for every proper divisor (q-1)/p of
// the group order. If the order of x were a proper divisor y of q-1,
// then x^((q-1)/p) = 1 for at least one prime p dividing (q-1)/y,
// which the check rejects.
func (r *Ring[T]) IsPrimitiveRoot(x T) bool {
	if x == 0 {
		return false
	}
	if r.q == 2 {
		return x == 1
	}
	for _, d := range r.divisors {
		if r.Exp(x, d) == 1 {
			return false
		}
	}
	// for composite q the order of x need not divide q-1 at all
	return r.Exp(x, r.q-1) == 1
}

// findPrimitiveRoot searches x = 2, 3, ... and returns the first
// generator. Every finite field's multiplicative group is cyclic, so
// for valid moduli the search terminates; exhausting it is a bug.
func (r *Ring[T]) findPrimitiveRoot() T {
	if r.q == 2 {
		return 1
	}
	for x := T(2); x < r.q; x++ {
		if r.IsPrimitiveRoot(x) {
			return x
		}
	}
	panic("ring: primitive root search exhausted")
}

// Order returns the smallest d >= 1 with x^d = 1. The factorization of
// q-1 is consumed prime by prime: whenever x^(h/p) stays 1 the group
// order shrinks by p, otherwise p is dropped from the working set.
func (r *Ring[T]) Order(x T) T {
	if x == 0 || x == 1 {
		return 1
	}
	h := r.q - 1
	exps := slices.Clone(r.exponents)
	for i := 0; i < len(r.primes); {
		if exps[i] == 0 {
			i++
			continue
		}
		y := h / r.primes[i]
		if r.Exp(x, y) != 1 {
			i++
			continue
		}
		h = y
		exps[i]--
	}
	return h
}

// GetNthRoot returns g^((q-1)/d) for d = gcd(n, q-1), an element whose
// order divides n. When n divides q-1 the result is a primitive n-th
// root of unity.
func (r *Ring[T]) GetNthRoot(n uint64) T {
	d := arith.GCD(n, uint64(r.q-1))
	return r.Exp(r.root, (r.q-1)/T(d))
}

// ComputeOmegas fills w with consecutive powers of omega:
// w[i] = omega^i for 0 <= i < len(w).
func (r *Ring[T]) ComputeOmegas(w []T, omega T) {
	if len(w) == 0 {
		return
	}
	w[0] = 1
	for i := 1; i < len(w); i++ {
		w[i] = r.mulFn(w[i-1], omega)
	}
}

// ComputeOmegasCached is ComputeOmegas backed by a store. A present
// entry is read back and validated against len(w); a missing entry is
// computed and written. Single-producer: concurrent writers of the
// same entry must be serialized by the caller.
func (r *Ring[T]) ComputeOmegasCached(store omegacache.Store, w []T, omega T) error {
	key := omegacache.Key(strconv.FormatUint(uint64(omega), 10))
	data, err := store.Get(key)
	switch {
	case err == nil:
		logger.Debug("omega cache hit", "key", key, "n", len(w))
		return parseOmegas(data, w)
	case !errors.Is(err, omegacache.ErrMiss):
		return err
	}
	logger.Debug("omega cache miss", "key", key, "n", len(w))
	r.ComputeOmegas(w, omega)
	return store.Put(key, formatOmegas(w))
}

// formatOmegas renders one decimal element per newline-terminated line.
func formatOmegas[T Element](w []T) []byte {
	var buf bytes.Buffer
	for _, v := range w {
		buf.WriteString(strconv.FormatUint(uint64(v), 10))
		buf.WriteByte('\n')
	}
	return buf.Bytes()
}

// parseOmegas decodes the cache format into w, requiring exactly
// len(w) elements.
func parseOmegas[T Element](data []byte, w []T) error {
	lines := bytes.Split(bytes.TrimRight(data, "\n"), []byte{'\n'})
	if len(data) == 0 {
		lines = nil
	}
	if len(lines) != len(w) {
		return errors.Wrapf(omegacache.ErrCorrupt, "cache holds %d elements, want %d", len(lines), len(w))
	}
	for i, line := range lines {
		v, err := strconv.ParseUint(string(line), 10, 64)
		if err != nil {
			return errors.Wrapf(omegacache.ErrCorrupt, "line %d: %v", i+1, err)
		}
		w[i] = T(v)
	}
	return nil
}
