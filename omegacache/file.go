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
	"io/fs"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// FileStore keeps each entry as a file named after its key. An empty
// Dir means the process working directory, matching the historical
// cache location.
type FileStore struct {
	Dir string
}

func (s FileStore) path(key string) string {
	if s.Dir == "" {
		return key
	}
	return filepath.Join(s.Dir, key)
}

// Get reads the entry for key.
func (s FileStore) Get(key string) ([]byte, error) {
	data, err := os.ReadFile(s.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, errors.Wrap(ErrMiss, key)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "reading cache entry %s", key)
	}
	return data, nil
}

// Put writes the entry through a uniquely named temporary file renamed
// into place, so a reader never observes a half-written table.
func (s FileStore) Put(key string, data []byte) error {
	target := s.path(key)
	tmp := target + "." + uuid.NewString() + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return errors.Wrapf(err, "writing cache entry %s", key)
	}
	if err := os.Rename(tmp, target); err != nil {
		os.Remove(tmp)
		return errors.Wrapf(err, "publishing cache entry %s", key)
	}
	return nil
}

// Has reports whether an entry exists.
func (s FileStore) Has(key string) bool {
	_, err := os.Stat(s.path(key))
	return err == nil
}
