package engine

import (
	"math"
	"math/bits"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// Bound 缓存分数相对于当时 αβ 窗口的可信程度
type Bound uint8

const (
	Exact      Bound = iota // alpha < score < beta
	LowerBound              // beta 截断：真实值 >= score
	UpperBound              // 全部 <= alpha：真实值 <= score
)

func (b Bound) String() string {
	switch b {
	case Exact:
		return "exact"
	case LowerBound:
		return "lower"
	case UpperBound:
		return "upper"
	}
	return "unknown"
}

// 胜负分必须装得进 int16，否则编译不过
const (
	_ = uint16(math.MaxInt16 - WinScore)
	_ = uint16(LossScore - math.MinInt16)
)

// ttEntry 单个槽位。Occupied 单独标记，哈希为 0 也是合法局面。
type ttEntry struct {
	Hash     uint64
	Score    int16
	Bound    Bound
	Occupied bool
}

type TableStats struct {
	Hits       uint64 `json:"hits"`
	Misses     uint64 `json:"misses"`
	Collisions uint64 `json:"collisions"`
	Stores     uint64 `json:"stores"`
	Capacity   int    `json:"capacity"`
}

// HitRate 百分比
func (s TableStats) HitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return 100 * float64(s.Hits) / float64(total)
}

// Table 直接寻址、总是覆盖的置换表。容量为 0 时等于关闭缓存。
// 单线程使用，不加锁。
type Table struct {
	entries []ttEntry
	mask    uint64
	stats   TableStats
}

func NewTable(capacity int) *Table {
	t := &Table{}
	t.Init(capacity)
	return t
}

// Init 重新分配，容量向上取 2 的幂；分配失败不致命，降级为关闭缓存。
func (t *Table) Init(capacity int) {
	t.Free()
	if capacity <= 0 {
		return
	}
	size := roundUpPow2(uint64(capacity))
	entries, err := allocEntries(size)
	if err != nil {
		log.Warn().
			Err(err).
			Int("requested", capacity).
			Uint64("rounded", size).
			Msg("transposition table allocation failed, continuing without it")
		return
	}
	t.entries = entries
	t.mask = size - 1
}

func allocEntries(size uint64) (entries []ttEntry, err error) {
	defer func() {
		if r := recover(); r != nil {
			entries, err = nil, errors.Errorf("allocate %d entries: %v", size, r)
		}
	}()
	if size > math.MaxInt {
		return nil, errors.Errorf("allocate %d entries: exceeds addressable range", size)
	}
	return make([]ttEntry, int(size)), nil
}

// Free 可重复调用，未初始化也安全
func (t *Table) Free() {
	t.entries = nil
	t.mask = 0
}

func (t *Table) Capacity() int { return len(t.entries) }

// Probe 命中条件：槽位有数据、完整哈希相同、边界类型允许在当前窗口下复用。
func (t *Table) Probe(hash uint64, alpha, beta int) (int, bool) {
	if len(t.entries) == 0 {
		return 0, false
	}
	e := &t.entries[hash&t.mask]
	if !e.Occupied {
		t.stats.Misses++
		return 0, false
	}
	if e.Hash != hash {
		t.stats.Collisions++
		t.stats.Misses++
		return 0, false
	}

	score := int(e.Score)
	switch {
	case e.Bound == Exact,
		e.Bound == LowerBound && score >= beta,
		e.Bound == UpperBound && score <= alpha:
		t.stats.Hits++
		return score, true
	}
	t.stats.Misses++
	return 0, false
}

// Store 总是覆盖
func (t *Table) Store(hash uint64, score int, bound Bound) {
	if len(t.entries) == 0 {
		return
	}
	e := &t.entries[hash&t.mask]
	e.Hash = hash
	e.Score = int16(score)
	e.Bound = bound
	e.Occupied = true
	t.stats.Stores++
}

func (t *Table) Stats() TableStats {
	s := t.stats
	s.Capacity = len(t.entries)
	return s
}

func (t *Table) ResetStats() { t.stats = TableStats{} }

func roundUpPow2(n uint64) uint64 {
	if n <= 1 {
		return 1
	}
	if n&(n-1) == 0 {
		return n
	}
	if n > 1<<63 {
		return 1 << 63
	}
	return 1 << uint(bits.Len64(n-1))
}

const maxDefaultCapacity = 100_000_000

// DefaultCapacity 按边长估算容量：3x3 十万，4x4 一百五十万，
// 更大的按 (size/4)^9.4 外推，上限一亿。
func DefaultCapacity(size int) int {
	switch {
	case size <= 3:
		return 100_000
	case size == 4:
		return 1_500_000
	}
	n := 1_500_000 * math.Pow(float64(size)/4, 9.4)
	if n > maxDefaultCapacity {
		return maxDefaultCapacity
	}
	return int(n)
}
