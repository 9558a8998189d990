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

import "testing"

func TestAlignment(t *testing.T) {
	if AlignUp(uint(17), 64) != 64 {
		t.Error("AlignUp(17, 64)")
	}
	if AlignUp(uint(64), 64) != 64 {
		t.Error("AlignUp(64, 64)")
	}
	if AlignDown(uint(65), 64) != 64 {
		t.Error("AlignDown(65, 64)")
	}
	if !IsAligned(uint(128), 64) || IsAligned(uint(65), 64) {
		t.Error("IsAligned")
	}
	if AlignPointer(0x1001, 64) != 0x1040 {
		t.Errorf("AlignPointer(0x1001, 64) = %#x", AlignPointer(0x1001, 64))
	}
	if AlignPointer(0x1000, 64) != 0x1000 {
		t.Error("AlignPointer must keep aligned values")
	}
}

func TestPowerOfTwo(t *testing.T) {
	for _, v := range []uint64{1, 2, 4, 1 << 20, 1 << 62} {
		if !IsPowerOfTwo(v) {
			t.Errorf("IsPowerOfTwo(%d) = false", v)
		}
	}
	for _, v := range []uint64{0, 3, 6, 1<<20 + 1} {
		if IsPowerOfTwo(v) {
			t.Errorf("IsPowerOfTwo(%d) = true", v)
		}
	}
	if Log2(uint64(1)) != 0 || Log2(uint64(8)) != 3 || Log2(uint64(9)) != 3 {
		t.Error("Log2")
	}
}

func TestBits(t *testing.T) {
	var f uint8
	f = SetBit(f, 2)
	if !TestBit(f, 2) || TestBit(f, 1) {
		t.Error("SetBit/TestBit")
	}
	f = FlipBit(f, 0)
	if f != 0b101 {
		t.Errorf("FlipBit: %#b", f)
	}
	f = ClearBit(f, 2)
	if f != 0b001 {
		t.Errorf("ClearBit: %#b", f)
	}
	if OnesCount(uint64(0b1011)) != 3 {
		t.Error("OnesCount")
	}
}

func TestReverse(t *testing.T) {
	if Reverse(uint64(0b001), 3) != 0b100 {
		t.Error("Reverse(1, 3)")
	}
	if Reverse(uint64(0b110), 3) != 0b011 {
		t.Error("Reverse(6, 3)")
	}
	for i := uint64(0); i < 16; i++ {
		if Reverse(Reverse(i, 4), 4) != i {
			t.Errorf("Reverse not an involution at %d", i)
		}
	}
}

func TestRandomFillSliceMod(t *testing.T) {
	out := make([]uint32, 1000)
	if err := RandomFillSliceMod(out, 97); err != nil {
		t.Fatal(err)
	}
	for _, v := range out {
		if v >= 97 {
			t.Fatalf("element %d out of range", v)
		}
	}
}
