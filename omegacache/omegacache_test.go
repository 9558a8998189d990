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
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKey(t *testing.T) {
	assert.Equal(t, "W22.cache", Key("22"))
	assert.Equal(t, "W340282366920938463463374607431768211297.cache",
		Key("340282366920938463463374607431768211297"))
}

func checkStore(t *testing.T, s Store) {
	t.Helper()
	key := Key("7")

	_, err := s.Get(key)
	assert.True(t, errors.Is(err, ErrMiss))
	assert.False(t, s.Has(key))

	require.NoError(t, s.Put(key, []byte("1\n7\n49\n")))
	assert.True(t, s.Has(key))
	data, err := s.Get(key)
	require.NoError(t, err)
	assert.Equal(t, []byte("1\n7\n49\n"), data)

	// replacement
	require.NoError(t, s.Put(key, []byte("1\n")))
	data, err = s.Get(key)
	require.NoError(t, err)
	assert.Equal(t, []byte("1\n"), data)
}

func TestMemStore(t *testing.T) {
	checkStore(t, &MemStore{})
}

func TestFileStore(t *testing.T) {
	dir := t.TempDir()
	checkStore(t, FileStore{Dir: dir})

	// no stray temp files after publishing
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	for _, e := range entries {
		assert.NotContains(t, e.Name(), ".tmp")
	}
}

func TestFileStoreDefaultDirIsRelative(t *testing.T) {
	s := FileStore{}
	assert.Equal(t, "W5.cache", s.path(Key("5")))
	d := FileStore{Dir: "/tmp/omegas"}
	assert.Equal(t, filepath.Join("/tmp/omegas", "W5.cache"), d.path(Key("5")))
}

func TestKeyedStore(t *testing.T) {
	inner := &MemStore{}
	a := NewKeyedStore(inner, "q=97/n=8")
	b := NewKeyedStore(inner, "q=257/n=8")

	require.NoError(t, a.Put(Key("22"), []byte("a\n")))
	require.NoError(t, b.Put(Key("22"), []byte("b\n")))

	da, err := a.Get(Key("22"))
	require.NoError(t, err)
	db, err := b.Get(Key("22"))
	require.NoError(t, err)
	assert.NotEqual(t, da, db, "scopes must not collide on a shared omega")

	// same scope resolves to the same entry
	a2 := NewKeyedStore(inner, "q=97/n=8")
	assert.True(t, a2.Has(Key("22")))
}

func TestZstdStore(t *testing.T) {
	inner := &MemStore{}
	s, err := NewZstdStore(inner)
	require.NoError(t, err)
	checkStore(t, s)

	// the inner payload really is compressed
	require.NoError(t, s.Put(Key("9"), []byte("123\n456\n789\n")))
	raw, err := inner.Get(Key("9"))
	require.NoError(t, err)
	assert.NotEqual(t, []byte("123\n456\n789\n"), raw)

	// corrupt inner data surfaces ErrCorrupt
	require.NoError(t, inner.Put(Key("bad"), []byte("not zstd")))
	_, err = s.Get(Key("bad"))
	assert.True(t, errors.Is(err, ErrCorrupt))
}
