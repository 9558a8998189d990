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
	"github.com/klauspost/compress/zstd"
	"github.com/pkg/errors"
)

// ZstdStore compresses entries transparently before handing them to
// the inner store. Decimal omega tables compress well, which matters
// once table lengths reach erasure-coding block counts.
type ZstdStore struct {
	Inner Store

	enc *zstd.Encoder
	dec *zstd.Decoder
}

// NewZstdStore wraps inner with transparent compression.
func NewZstdStore(inner Store) (*ZstdStore, error) {
	enc, err := zstd.NewWriter(nil)
	if err != nil {
		return nil, err
	}
	dec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, err
	}
	return &ZstdStore{Inner: inner, enc: enc, dec: dec}, nil
}

// Get reads and decompresses the entry for key.
func (s *ZstdStore) Get(key string) ([]byte, error) {
	data, err := s.Inner.Get(key)
	if err != nil {
		return nil, err
	}
	out, err := s.dec.DecodeAll(data, nil)
	if err != nil {
		return nil, errors.Wrapf(ErrCorrupt, "decompressing %s: %v", key, err)
	}
	return out, nil
}

// Put compresses and writes the entry for key.
func (s *ZstdStore) Put(key string, data []byte) error {
	return s.Inner.Put(key, s.enc.EncodeAll(data, nil))
}

// Has reports whether an entry exists.
func (s *ZstdStore) Has(key string) bool {
	return s.Inner.Has(key)
}
