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

package omegacache

import (
	"fmt"

	"github.com/dchest/siphash"
)

// sipK0, sipK1 key the scope digest. The digest only namespaces cache
// files, so fixed keys are fine; they just need to be stable across
// processes.
const (
	sipK0 = 0x66617374_6e747431
	sipK1 = 0x6f6d6567_61636163
)

// KeyedStore namespaces every entry with a digest of a caller-chosen
// scope, so two rings that happen to share an omega value (different
// modulus, different table length) do not collide on one filename.
type KeyedStore struct {
	Inner Store
	scope string
}

// NewKeyedStore derives a namespaced store. Scope conventionally
// encodes the modulus and table length, e.g. "q=257/n=256".
func NewKeyedStore(inner Store, scope string) KeyedStore {
	digest := siphash.Hash(sipK0, sipK1, []byte(scope))
	return KeyedStore{Inner: inner, scope: fmt.Sprintf("%016x-", digest)}
}

func (s KeyedStore) rekey(key string) string {
	return s.scope + key
}

// Get reads the entry for key within the scope.
func (s KeyedStore) Get(key string) ([]byte, error) {
	return s.Inner.Get(s.rekey(key))
}

// Put writes the entry for key within the scope.
func (s KeyedStore) Put(key string, data []byte) error {
	return s.Inner.Put(s.rekey(key), data)
}

// Has reports whether an entry exists within the scope.
func (s KeyedStore) Has(key string) bool {
	return s.Inner.Has(s.rekey(key))
}
