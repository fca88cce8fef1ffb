package engine

import (
	"time"

	"github.com/rs/zerolog/log"

	"hyperprune/internal/tictactoe"
)

// Engine 持有 Zobrist 键和置换表。单线程使用；
// 同一个 Engine 连续下多盘时置换表沿用，不清空。
type Engine struct {
	size  int
	keys  *tictactoe.Zobrist
	tt    *Table
	nodes int64
}

// 搜索结果
type SearchResult struct {
	BestMove tictactoe.Move
	Found    bool          // false：局面非法或已经结束
	Score    int           // AI 视角；捷径返回时为 0
	Nodes    int64         // 0 表示没有进入搜索
	TimeUsed time.Duration // 花费时间
}

func NewEngine(cfg Config) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Engine{
		size: cfg.BoardSize,
		keys: tictactoe.NewZobrist(cfg.BoardSize, cfg.Seed),
		tt:   NewTable(cfg.TableCapacity),
	}, nil
}

func (e *Engine) Size() int { return e.size }

// InitZobrist 用新 seed 重新生成全部键。旧表里的条目对应旧键，一并作废。
func (e *Engine) InitZobrist(seed uint64) {
	e.keys.Init(seed)
	e.tt.Init(e.tt.Capacity())
}

func (e *Engine) InitTable(capacity int) { e.tt.Init(capacity) }
func (e *Engine) FreeTable()             { e.tt.Free() }
func (e *Engine) TableStats() TableStats { return e.tt.Stats() }
func (e *Engine) ResetStats()            { e.tt.ResetStats(); e.nodes = 0 }

// Nodes 本 Engine 累计访问的节点数
func (e *Engine) Nodes() int64 { return e.nodes }

// Hash 对外暴露根局面的哈希，调试用
func (e *Engine) Hash(b tictactoe.Board, ai tictactoe.Symbol) uint64 {
	return e.keys.Hash(b, ai)
}

// SelectMove 给 ai 选一步。局面非法（重叠、尺寸不符）或已终局时返回 false。
func (e *Engine) SelectMove(b tictactoe.Board, ai tictactoe.Symbol) (tictactoe.Move, bool) {
	res := e.Search(b, ai)
	return res.BestMove, res.Found
}

func (e *Engine) Search(b tictactoe.Board, ai tictactoe.Symbol) SearchResult {
	start := time.Now()

	if b.Size() != e.size || !ai.Valid() || b.Overlapping() {
		log.Debug().
			Int("size", b.Size()).
			Stringer("ai", ai).
			Bool("overlap", b.Overlapping()).
			Msg("rejecting invalid position")
		return SearchResult{}
	}
	if b.Terminal() {
		return SearchResult{}
	}

	// 空盘直接下中心；偶数边长取中间 2x2 的右下
	if b.IsEmpty() {
		return SearchResult{
			BestMove: tictactoe.Move{Row: e.size / 2, Col: e.size / 2},
			Found:    true,
			TimeUsed: time.Since(start),
		}
	}

	if b.EmptyCount() == 1 {
		return SearchResult{
			BestMove: b.EmptyCells()[0],
			Found:    true,
			TimeUsed: time.Since(start),
		}
	}

	s := newSearcher(e, b, ai)
	mv, score := s.root(b)
	e.nodes += s.nodes

	res := SearchResult{
		BestMove: mv,
		Found:    true,
		Score:    score,
		Nodes:    s.nodes,
		TimeUsed: time.Since(start),
	}
	log.Debug().
		Stringer("ai", ai).
		Stringer("move", mv).
		Int("score", score).
		Int64("nodes", s.nodes).
		Dur("elapsed", res.TimeUsed).
		Msg("search finished")
	return res
}
