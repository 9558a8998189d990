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
	"golang.org/x/exp/slices"

	"github.com/pkg/errors"
)

// MemStore is a map-backed store for tests and single-process use.
// The zero value is ready to use.
type MemStore struct {
	entries map[string][]byte
}

// Get reads the entry for key.
func (s *MemStore) Get(key string) ([]byte, error) {
	data, ok := s.entries[key]
	if !ok {
		return nil, errors.Wrap(ErrMiss, key)
	}
	return slices.Clone(data), nil
}

// Put writes the entry for key.
func (s *MemStore) Put(key string, data []byte) error {
	if s.entries == nil {
		s.entries = make(map[string][]byte)
	}
	s.entries[key] = slices.Clone(data)
	return nil
}

// Has reports whether an entry exists.
func (s *MemStore) Has(key string) bool {
	_, ok := s.entries[key]
	return ok
}
