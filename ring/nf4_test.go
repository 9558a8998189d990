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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func laneGen() *rapid.Generator[[4]uint32] {
	return rapid.Custom(func(t *rapid.T) [4]uint32 {
		var lanes [4]uint32
		for i := range lanes {
			lanes[i] = rapid.Uint32Range(0, 65536).Draw(t, "lane")
		}
		return lanes
	})
}

func TestNF4PackUnpack(t *testing.T) {
	r, err := NewNF4()
	require.NoError(t, err)
	rapid.Check(t, func(t *rapid.T) {
		lanes := laneGen().Draw(t, "lanes")
		g := r.Pack(lanes)
		assert.Equal(t, lanes, r.Unpack(g))
		// sentinel lanes must be stored as zero with the flag set
		for i, v := range lanes {
			if v == 65536 {
				assert.Zero(t, (g.Values>>(16*i))&0xffff, "sentinel lane %d stored nonzero", i)
				assert.NotZero(t, g.Flag&(1<<i), "sentinel lane %d flag unset", i)
			}
		}
	})
}

func TestNF4Replicate(t *testing.T) {
	r, err := NewNF4()
	require.NoError(t, err)

	g := r.Replicate(7)
	assert.Equal(t, [4]uint32{7, 7, 7, 7}, r.Unpack(g))
	assert.Zero(t, g.Flag)

	// the sentinel replicates through the mask
	s := r.Replicate(65536)
	assert.Equal(t, [4]uint32{65536, 65536, 65536, 65536}, r.Unpack(s))
	assert.Equal(t, uint8(0b1111), s.Flag)
	assert.Zero(t, s.Values)
}

func TestNF4LanewiseOps(t *testing.T) {
	r, err := NewNF4()
	require.NoError(t, err)
	f := r.SubField()
	rapid.Check(t, func(t *rapid.T) {
		la := laneGen().Draw(t, "a")
		lb := laneGen().Draw(t, "b")
		a, b := r.Pack(la), r.Pack(lb)

		sum := r.Unpack(r.Add(a, b))
		diff := r.Unpack(r.Sub(a, b))
		prod := r.Unpack(r.Mul(a, b))
		for i := 0; i < 4; i++ {
			assert.Equal(t, f.Add(la[i], lb[i]), sum[i], "add lane %d", i)
			assert.Equal(t, f.Sub(la[i], lb[i]), diff[i], "sub lane %d", i)
			assert.Equal(t, f.Mul(la[i], lb[i]), prod[i], "mul lane %d", i)
		}
	})
}

func TestNF4Inv(t *testing.T) {
	r, err := NewNF4()
	require.NoError(t, err)
	a := r.Pack([4]uint32{1, 2, 65536, 12345})
	inv, err := r.Inv(a)
	require.NoError(t, err)
	assert.Equal(t, r.Replicate(1), r.Mul(a, inv))

	_, err = r.Inv(r.Pack([4]uint32{1, 0, 3, 4}))
	assert.Error(t, err, "zero lane is not invertible")
}

func TestNF4Roots(t *testing.T) {
	r, err := NewNF4()
	require.NoError(t, err)
	w := r.GetNthRoot(64)
	one := r.Replicate(1)
	assert.Equal(t, one, r.Exp(w, 64))
	assert.NotEqual(t, one, r.Exp(w, 32))

	ws := make([]Packed, 8)
	r.ComputeOmegas(ws, r.GetNthRoot(8))
	assert.Equal(t, one, ws[0])
	assert.Equal(t, r.Mul(ws[3], ws[1]), ws[4])
}

func TestNF4Butterfly(t *testing.T) {
	r, err := NewNF4()
	require.NoError(t, err)
	f := r.SubField()
	c := r.Replicate(9)
	x := []Packed{r.Pack([4]uint32{1, 65536, 0, 9})}
	y := []Packed{r.Pack([4]uint32{2, 65536, 5, 0})}

	wantX := make([]uint32, 4)
	wantY := make([]uint32, 4)
	lx, ly := r.Unpack(x[0]), r.Unpack(y[0])
	for i := 0; i < 4; i++ {
		b := f.Mul(9, ly[i])
		wantX[i] = f.Add(lx[i], b)
		wantY[i] = f.Sub(lx[i], b)
	}
	r.ButterflyCT(c, x, y)
	gotX, gotY := r.Unpack(x[0]), r.Unpack(y[0])
	for i := 0; i < 4; i++ {
		assert.Equal(t, wantX[i], gotX[i], "lane %d", i)
		assert.Equal(t, wantY[i], gotY[i], "lane %d", i)
	}
}
