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

import "golang.org/x/sys/cpu"

// unrollBlock is the element count processed per iteration by the
// unrolled buffer primitives, matching a vector register's worth of
// 64-bit lanes on the widest targeted ISA.
const unrollBlock = 8

// unrollEnabled selects the unrolled buffer primitives when the host
// has vector units wide enough to profit from them. Both paths produce
// bit-identical results; the choice is performance only.
var unrollEnabled = cpu.X86.HasAVX2 || cpu.X86.HasSSE42 || cpu.ARM64.HasASIMD

// SetUnrolled overrides the dispatch decision. Intended for tests that
// compare the two implementations on the same host.
func (r *Ring[T]) SetUnrolled(on bool) {
	r.unroll = on
}
