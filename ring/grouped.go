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

import "golang.org/x/exp/constraints"

// GroupedValues carries packed sub-elements together with a sentinel
// mask. Bit i of Flag set means logical lane i holds the field's
// maximum value q-1, while the stored lane is zero; every other lane
// stores its value directly. The scheme keeps each lane inside the
// machine sub-word that packed arithmetic can carry without overflow.
type GroupedValues[T constraints.Unsigned] struct {
	Values T
	Flag   uint8
}
