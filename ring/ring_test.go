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

import (
	"bytes"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"sigs.k8s.io/yaml"

	"github.com/fastntt/fastntt/arith"
	"github.com/fastntt/fastntt/omegacache"
)

type vectorFile struct {
	Rings []struct {
		Q             uint64   `json:"q"`
		PrimitiveRoot uint64   `json:"primitiveRoot"`
		RootOrder     uint64   `json:"rootOrder"`
		Primes        []uint64 `json:"primes"`
		NthRoots      []struct {
			N    uint64 `json:"n"`
			Root uint64 `json:"root"`
		} `json:"nthRoots"`
		OmegaTables []struct {
			Omega  uint64   `json:"omega"`
			Powers []uint64 `json:"powers"`
		} `json:"omegaTables"`
	} `json:"rings"`
	Logs []struct {
		Q        uint64 `json:"q"`
		Base     uint64 `json:"base"`
		Value    uint64 `json:"value"`
		Exponent uint64 `json:"exponent"`
	} `json:"logs"`
}

func loadVectors(t *testing.T) vectorFile {
	t.Helper()
	data, err := os.ReadFile("testdata/vectors.yaml")
	require.NoError(t, err)
	var v vectorFile
	require.NoError(t, yaml.Unmarshal(data, &v))
	return v
}

func TestRingVectors(t *testing.T) {
	v := loadVectors(t)
	for _, tc := range v.Rings {
		r, err := New(tc.Q)
		require.NoError(t, err, "q=%d", tc.Q)

		assert.Equal(t, tc.PrimitiveRoot, r.PrimitiveRoot(), "q=%d", tc.Q)
		assert.True(t, r.IsPrimitiveRoot(r.PrimitiveRoot()), "q=%d", tc.Q)
		assert.Equal(t, tc.RootOrder, r.Order(r.PrimitiveRoot()), "q=%d", tc.Q)
		if len(tc.Primes) > 0 {
			assert.Equal(t, tc.Primes, r.Primes(), "q=%d", tc.Q)
		}

		for _, nr := range tc.NthRoots {
			got := r.GetNthRoot(nr.N)
			assert.Equal(t, nr.Root, got, "q=%d n=%d", tc.Q, nr.N)
			assert.Equal(t, uint64(1), r.Exp(got, nr.N), "q=%d n=%d: not an n-th root", tc.Q, nr.N)
		}

		for _, ot := range tc.OmegaTables {
			w := make([]uint64, len(ot.Powers))
			r.ComputeOmegas(w, ot.Omega)
			assert.Equal(t, ot.Powers, w, "q=%d omega=%d", tc.Q, ot.Omega)
		}
	}

	for _, tc := range v.Logs {
		r, err := New(tc.Q)
		require.NoError(t, err)
		e, err := r.Log(tc.Base, tc.Value)
		require.NoError(t, err)
		assert.Equal(t, tc.Exponent, e, "log_%d(%d) mod %d", tc.Base, tc.Value, tc.Q)
		assert.Equal(t, tc.Value, r.Exp(tc.Base, e))
	}
}

func TestFermatOmegaPermutation(t *testing.T) {
	// the powers of a primitive root enumerate the full group
	r, err := NewFermat(uint32(257))
	require.NoError(t, err)
	require.Equal(t, uint32(3), r.PrimitiveRoot())

	w := make([]uint32, 256)
	r.ComputeOmegas(w, r.PrimitiveRoot())
	seen := make(map[uint32]bool, 256)
	for _, v := range w {
		require.True(t, v >= 1 && v < 257, "element %d out of range", v)
		require.False(t, seen[v], "element %d repeated", v)
		seen[v] = true
	}
}

func TestSmallModuli(t *testing.T) {
	r2, err := New(uint32(2))
	require.NoError(t, err)
	assert.Equal(t, uint32(1), r2.PrimitiveRoot())
	assert.Equal(t, uint32(1), r2.Add(1, 0))
	assert.Equal(t, uint32(0), r2.Add(1, 1))

	r3, err := New(uint32(3))
	require.NoError(t, err)
	assert.Equal(t, uint32(2), r3.PrimitiveRoot())

	assert.Panics(t, func() { New(uint32(1)) })
	assert.Panics(t, func() { New(uint32(0)) })
}

func TestInvErrors(t *testing.T) {
	r, err := New(uint32(97))
	require.NoError(t, err)
	_, err = r.Inv(0)
	assert.True(t, errors.Is(err, ErrInvalidArgument))

	// composite modulus: 6 shares a factor with 15
	r15, err := New(uint32(15))
	require.NoError(t, err)
	_, err = r15.Inv(6)
	assert.True(t, errors.Is(err, ErrInvalidArgument))
	inv7, err := r15.Inv(7)
	require.NoError(t, err)
	assert.Equal(t, uint32(1), r15.Mul(7, inv7))
}

func TestLogNoSolution(t *testing.T) {
	r, err := New(uint32(97))
	require.NoError(t, err)
	// 2 has order 48, so odd non-residue targets are unreachable
	base := uint32(2)
	reachable := make(map[uint32]bool)
	cur := base
	for i := 0; i < 96; i++ {
		reachable[cur] = true
		cur = r.Mul(cur, base)
	}
	var target uint32
	for x := uint32(1); x < 97; x++ {
		if !reachable[x] {
			target = x
			break
		}
	}
	require.NotZero(t, target, "2 generates a proper subgroup of (Z/97Z)*")
	_, err = r.Log(base, target)
	assert.True(t, errors.Is(err, arith.ErrNoSolution))
}

func TestIsQuadraticResidue(t *testing.T) {
	r, err := New(uint32(97))
	require.NoError(t, err)
	// ground truth by scanning squares
	squares := make(map[uint32]bool)
	for x := uint32(0); x < 97; x++ {
		squares[r.Mul(x, x)] = true
	}
	for a := uint32(0); a < 97; a++ {
		assert.Equal(t, squares[a], r.IsQuadraticResidue(a), "a=%d", a)
	}

	// composite modulus falls back to the scan
	r15, err := New(uint32(15))
	require.NoError(t, err)
	assert.True(t, r15.IsQuadraticResidue(4))
	assert.False(t, r15.IsQuadraticResidue(2))
}

func TestComputeOmegasCached(t *testing.T) {
	r, err := New(uint64(97))
	require.NoError(t, err)

	store := &omegacache.MemStore{}
	w := make([]uint64, 8)
	require.NoError(t, r.ComputeOmegasCached(store, w, 64))

	want := make([]uint64, 8)
	r.ComputeOmegas(want, 64)
	assert.Equal(t, want, w)
	assert.True(t, store.Has(omegacache.Key("64")))

	// second call must read the same table back
	w2 := make([]uint64, 8)
	require.NoError(t, r.ComputeOmegasCached(store, w2, 64))
	assert.Equal(t, want, w2)

	// wrong length is a corrupt entry, not a silent truncation
	short := make([]uint64, 4)
	err = r.ComputeOmegasCached(store, short, 64)
	assert.True(t, errors.Is(err, omegacache.ErrCorrupt))
}

func TestComputeOmegasCachedFileStore(t *testing.T) {
	r, err := New(uint64(257))
	require.NoError(t, err)

	dir := t.TempDir()
	store := omegacache.FileStore{Dir: dir}
	w := make([]uint64, 16)
	omega := r.GetNthRoot(16)
	require.NoError(t, r.ComputeOmegasCached(store, w, omega))

	// the on-disk format is one decimal per line
	name := filepath.Join(dir, omegacache.Key(strconv.FormatUint(omega, 10)))
	data, err := os.ReadFile(name)
	require.NoError(t, err)
	assert.Equal(t, byte('\n'), data[len(data)-1])
	assert.Len(t, bytes.Split(bytes.TrimRight(data, "\n"), []byte{'\n'}), 16)

	w2 := make([]uint64, 16)
	require.NoError(t, r.ComputeOmegasCached(store, w2, omega))
	assert.Equal(t, w, w2)
}
