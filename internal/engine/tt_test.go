package engine

import (
	"testing"

	"github.com/matryer/is"
)

func TestTableRoundsUpToPowerOfTwo(t *testing.T) {
	is := is.New(t)
	for _, tc := range []struct{ in, want int }{
		{1, 1}, {2, 2}, {3, 4}, {1000, 1024}, {1 << 16, 1 << 16}, {100_000, 1 << 17},
	} {
		is.Equal(NewTable(tc.in).Capacity(), tc.want)
	}
}

func TestTableZeroCapacityDisablesCaching(t *testing.T) {
	is := is.New(t)
	tt := NewTable(0)
	is.Equal(tt.Capacity(), 0)
	tt.Store(42, 7, Exact)
	_, ok := tt.Probe(42, -scoreInf, scoreInf)
	is.True(!ok)
	is.Equal(tt.Stats(), TableStats{})
}

func TestTableFreeIsIdempotent(t *testing.T) {
	is := is.New(t)
	var tt Table
	tt.Free()
	tt.Free()
	is.Equal(tt.Capacity(), 0)

	tt.Init(64)
	tt.Store(1, 1, Exact)
	tt.Free()
	tt.Free()
	_, ok := tt.Probe(1, -scoreInf, scoreInf)
	is.True(!ok)
}

func TestTableExactEntry(t *testing.T) {
	is := is.New(t)
	tt := NewTable(1024)
	tt.Store(0xdeadbeef, 37, Exact)
	for _, w := range []struct{ alpha, beta int }{
		{-scoreInf, scoreInf}, {36, 38}, {-5, 100}, {50, 60}, {-60, -50},
	} {
		score, ok := tt.Probe(0xdeadbeef, w.alpha, w.beta)
		is.True(ok)
		is.Equal(score, 37)
	}
}

func TestTableLowerBound(t *testing.T) {
	is := is.New(t)
	tt := NewTable(1024)
	tt.Store(99, 10, LowerBound)

	score, ok := tt.Probe(99, -scoreInf, 10)
	is.True(ok)
	is.Equal(score, 10)
	_, ok = tt.Probe(99, -scoreInf, 5)
	is.True(ok)

	_, ok = tt.Probe(99, -scoreInf, 11)
	is.True(!ok)
	_, ok = tt.Probe(99, 20, scoreInf)
	is.True(!ok)
}

func TestTableUpperBound(t *testing.T) {
	is := is.New(t)
	tt := NewTable(1024)
	tt.Store(7, -10, UpperBound)

	score, ok := tt.Probe(7, -10, scoreInf)
	is.True(ok)
	is.Equal(score, -10)
	_, ok = tt.Probe(7, 0, scoreInf)
	is.True(ok)

	_, ok = tt.Probe(7, -11, scoreInf)
	is.True(!ok)
	_, ok = tt.Probe(7, -scoreInf, -20)
	is.True(!ok)
}

func TestTableZeroHashIsStorable(t *testing.T) {
	is := is.New(t)
	tt := NewTable(16)
	_, ok := tt.Probe(0, -scoreInf, scoreInf)
	is.True(!ok)
	tt.Store(0, TieScore, Exact)
	score, ok := tt.Probe(0, -scoreInf, scoreInf)
	is.True(ok)
	is.Equal(score, TieScore)
}

func TestTableCollisionIsMissAndAlwaysReplace(t *testing.T) {
	is := is.New(t)
	tt := NewTable(16)
	a := uint64(0x1_0000_0003)
	b := uint64(0x2_0000_0003) // 同一个槽
	tt.Store(a, WinScore, Exact)

	_, ok := tt.Probe(b, -scoreInf, scoreInf)
	is.True(!ok)
	is.Equal(tt.Stats().Collisions, uint64(1))

	tt.Store(b, LossScore, Exact)
	score, ok := tt.Probe(b, -scoreInf, scoreInf)
	is.True(ok)
	is.Equal(score, LossScore)

	// 旧条目被覆盖，再查变成冲突
	_, ok = tt.Probe(a, -scoreInf, scoreInf)
	is.True(!ok)
	st := tt.Stats()
	is.Equal(st.Collisions, uint64(2))
	is.Equal(st.Hits, uint64(1))
	is.Equal(st.Misses, uint64(2))
	is.Equal(st.Stores, uint64(2))
	is.Equal(st.Capacity, 16)
}

func TestTableAllocationFailureDegrades(t *testing.T) {
	is := is.New(t)
	tt := NewTable(1 << 62)
	is.Equal(tt.Capacity(), 0)
	tt.Store(5, 1, Exact)
	_, ok := tt.Probe(5, -scoreInf, scoreInf)
	is.True(!ok)
}

func TestTableReinitClears(t *testing.T) {
	is := is.New(t)
	tt := NewTable(32)
	tt.Store(3, 1, Exact)
	tt.Init(32)
	_, ok := tt.Probe(3, -scoreInf, scoreInf)
	is.True(!ok)
}

func TestHitRate(t *testing.T) {
	is := is.New(t)
	is.Equal(TableStats{}.HitRate(), 0.0)
	is.Equal(TableStats{Hits: 3, Misses: 1}.HitRate(), 75.0)
}

func TestDefaultCapacity(t *testing.T) {
	is := is.New(t)
	is.Equal(DefaultCapacity(3), 100_000)
	is.Equal(DefaultCapacity(4), 1_500_000)
	is.True(DefaultCapacity(5) > DefaultCapacity(4))
	is.True(DefaultCapacity(6) > DefaultCapacity(5))
	is.Equal(DefaultCapacity(8), maxDefaultCapacity)
}
