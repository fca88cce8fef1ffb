package engine

import (
	"math/bits"

	"hyperprune/internal/tictactoe"
)

// 只在终局打分，不看深度，所以置换表条目与深度无关
const (
	WinScore  = 100
	LossScore = -WinScore
	TieScore  = 0

	// 比任何能出现的分数都大一
	scoreInf = WinScore + 1
)

// searcher 一次 SelectMove 的搜索状态；ai 整个搜索期间不变
type searcher struct {
	tt    *Table
	keys  *tictactoe.Zobrist
	lines *tictactoe.Lines
	size  int
	full  uint64
	ai    tictactoe.Symbol
	opp   tictactoe.Symbol
	nodes int64
}

func newSearcher(e *Engine, b tictactoe.Board, ai tictactoe.Symbol) *searcher {
	return &searcher{
		tt:    e.tt,
		keys:  e.keys,
		lines: tictactoe.LinesFor(b.Size()),
		size:  b.Size(),
		full:  b.ValidMask(),
		ai:    ai,
		opp:   ai.Opponent(),
	}
}

// terminal: AI 连成线 +100，对手连成线 -100，满盘 0
func (s *searcher) terminal(b tictactoe.Board) (int, bool) {
	if s.lines.HasWon(b.Pieces(s.ai)) {
		return WinScore, true
	}
	if s.lines.HasWon(b.Pieces(s.opp)) {
		return LossScore, true
	}
	if b.Occupied() == s.full {
		return TieScore, true
	}
	return 0, false
}

// 极大层：AI 走。hash 不含行棋方键。
func (s *searcher) maximize(b tictactoe.Board, alpha, beta int, hash uint64) int {
	s.nodes++
	if score, ok := s.tt.Probe(hash, alpha, beta); ok {
		return score
	}
	if score, ok := s.terminal(b); ok {
		s.tt.Store(hash, score, Exact)
		return score
	}

	alphaOrig, betaOrig := alpha, beta
	best := -scoreInf
	for empty := b.EmptyMask(); empty != 0; empty &= empty - 1 {
		bit := bits.TrailingZeros64(empty)
		row, col := bit/s.size, bit%s.size

		b.MakeMove(row, col, s.ai)
		child := s.keys.ToggleTurn(s.keys.Toggle(hash, row, col, s.ai))
		score := s.minimize(b, alpha, beta, child)
		b.UnmakeMove(row, col, s.ai)

		if score > best {
			best = score
		}
		if best > alpha {
			alpha = best
		}
		if best == WinScore || beta <= alpha {
			break
		}
	}

	s.tt.Store(hash, best, classify(best, alphaOrig, betaOrig))
	return best
}

// 极小层：对手走。hash 含行棋方键。
func (s *searcher) minimize(b tictactoe.Board, alpha, beta int, hash uint64) int {
	s.nodes++
	if score, ok := s.tt.Probe(hash, alpha, beta); ok {
		return score
	}
	if score, ok := s.terminal(b); ok {
		s.tt.Store(hash, score, Exact)
		return score
	}

	alphaOrig, betaOrig := alpha, beta
	best := scoreInf
	for empty := b.EmptyMask(); empty != 0; empty &= empty - 1 {
		bit := bits.TrailingZeros64(empty)
		row, col := bit/s.size, bit%s.size

		b.MakeMove(row, col, s.opp)
		child := s.keys.ToggleTurn(s.keys.Toggle(hash, row, col, s.opp))
		score := s.maximize(b, alpha, beta, child)
		b.UnmakeMove(row, col, s.opp)

		if score < best {
			best = score
		}
		if best < beta {
			beta = best
		}
		if best == LossScore || beta <= alpha {
			break
		}
	}

	s.tt.Store(hash, best, classify(best, alphaOrig, betaOrig))
	return best
}

// classify 按进入循环前的窗口判断边界类型
func classify(score, alpha, beta int) Bound {
	switch {
	case score >= beta:
		return LowerBound
	case score <= alpha:
		return UpperBound
	}
	return Exact
}

// root 和 maximize 一样展开，但记住哪一步拿到了最好分数。
// 同分取第一个（行优先），保证结果确定。
func (s *searcher) root(b tictactoe.Board) (tictactoe.Move, int) {
	hash := s.keys.Hash(b, s.ai)
	alpha, beta := -scoreInf, scoreInf
	best := -scoreInf
	var bestMove tictactoe.Move

	s.nodes++
	for empty := b.EmptyMask(); empty != 0; empty &= empty - 1 {
		bit := bits.TrailingZeros64(empty)
		row, col := bit/s.size, bit%s.size

		b.MakeMove(row, col, s.ai)
		child := s.keys.ToggleTurn(s.keys.Toggle(hash, row, col, s.ai))
		score := s.minimize(b, alpha, beta, child)
		b.UnmakeMove(row, col, s.ai)

		if score > best {
			best = score
			bestMove = tictactoe.Move{Row: row, Col: col}
		}
		if best > alpha {
			alpha = best
		}
		if best == WinScore {
			break
		}
	}

	s.tt.Store(hash, best, classify(best, -scoreInf, scoreInf))
	return bestMove, best
}
