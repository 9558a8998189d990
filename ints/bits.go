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

package ints

import (
	"math/bits"

	"golang.org/x/exp/constraints"
)

// TestBit checks if the k-th bit is set in v
func TestBit[T constraints.Unsigned](v T, k int) bool {
	return v&(T(1)<<k) != 0
}

// SetBit returns v with the k-th bit set
func SetBit[T constraints.Unsigned](v T, k int) T {
	return v | (T(1) << k)
}

// ClearBit returns v with the k-th bit cleared
func ClearBit[T constraints.Unsigned](v T, k int) T {
	return v &^ (T(1) << k)
}

// FlipBit returns v with the k-th bit inverted
func FlipBit[T constraints.Unsigned](v T, k int) T {
	return v ^ (T(1) << k)
}

// OnesCount returns the number of set bits in v
func OnesCount[T constraints.Unsigned](v T) int {
	return bits.OnesCount64(uint64(v))
}

// Reverse returns the bit-reversal of v restricted to its low width bits.
// The remaining high bits of the result are zero.
func Reverse[T constraints.Unsigned](v T, width int) T {
	var r T
	for i := 0; i < width; i++ {
		r = (r << 1) | (v & 1)
		v >>= 1
	}
	return r
}
