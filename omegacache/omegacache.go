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

// Package omegacache persists precomputed root-of-unity tables. The
// ring layer speaks to a Store so that tests can run against memory
// and multi-process deployments can key entries apart. Stores follow
// single-producer discipline: concurrent writers of one entry must be
// serialized by the caller.
package omegacache

import "github.com/pkg/errors"

var (
	// ErrMiss is returned by Get when the entry does not exist.
	ErrMiss = errors.New("cache miss")

	// ErrCorrupt is returned when an entry exists but cannot be decoded
	// back into the requested table.
	ErrCorrupt = errors.New("corrupt cache entry")
)

// Store is the persistence boundary for omega tables.
type Store interface {
	// Get returns the entry for key, or an error wrapping ErrMiss.
	Get(key string) ([]byte, error)
	// Put writes the entry for key, replacing any previous content.
	Put(key string, data []byte) error
	// Has reports whether an entry exists without reading it.
	Has(key string) bool
}

// Key derives the canonical entry name for a table of powers of omega:
// W<omega>.cache, with omega rendered in decimal.
func Key(omega string) string {
	return "W" + omega + ".cache"
}
