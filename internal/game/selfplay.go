package game

import (
	"context"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"lukechampine.com/frand"

	"hyperprune/internal/engine"
	"hyperprune/internal/tictactoe"
)

// Opponent 自弈时引擎的对手
type Opponent int

const (
	Perfect Opponent = iota // 双方都是引擎
	Random                  // 一方随机落子
)

func (o Opponent) String() string {
	if o == Random {
		return "random"
	}
	return "perfect"
}

func ParseOpponent(s string) (Opponent, error) {
	switch strings.ToLower(s) {
	case "perfect", "p":
		return Perfect, nil
	case "random", "r":
		return Random, nil
	}
	return Perfect, errors.Errorf("unknown opponent %q", s)
}

type Stats struct {
	Games        int           `json:"games"`
	XWins        int           `json:"x_wins"`
	OWins        int           `json:"o_wins"`
	Ties         int           `json:"ties"`
	EngineLosses int           `json:"engine_losses"`
	Moves        int           `json:"moves"`
	Nodes        int64         `json:"nodes"`
	Elapsed      time.Duration `json:"elapsed"`
}

// Merge 合并两个 worker 的统计。worker 并行跑，耗时取较长的那个。
func (s Stats) Merge(o Stats) Stats {
	return Stats{
		Games:        s.Games + o.Games,
		XWins:        s.XWins + o.XWins,
		OWins:        s.OWins + o.OWins,
		Ties:         s.Ties + o.Ties,
		EngineLosses: s.EngineLosses + o.EngineLosses,
		Moves:        s.Moves + o.Moves,
		Nodes:        s.Nodes + o.Nodes,
		Elapsed:      max(s.Elapsed, o.Elapsed),
	}
}

func MergeAll(all []Stats) Stats {
	return lo.Reduce(all, func(acc Stats, s Stats, _ int) Stats {
		return acc.Merge(s)
	}, Stats{})
}

// Throughput 每秒对局数
func (s Stats) Throughput() float64 {
	if s.Elapsed <= 0 {
		return 0
	}
	return float64(s.Games) / s.Elapsed.Seconds()
}

// SelfPlay 用 e 连下 games 盘，X 先手。置换表在各盘之间沿用。
// Random 模式下引擎偶数盘执 X，奇数盘执 O。
// ctx 在每步之间检查，取消时返回已完成部分的统计。
func SelfPlay(ctx context.Context, e *engine.Engine, size, games int, opp Opponent) (st Stats, err error) {
	if size != e.Size() {
		return Stats{}, errors.Errorf("engine built for %dx%d, asked to play %dx%d", e.Size(), e.Size(), size, size)
	}
	start := time.Now()
	nodes0 := e.Nodes()
	defer func() {
		st.Elapsed = time.Since(start)
		st.Nodes = e.Nodes() - nodes0
	}()

	for g := 0; g < games; g++ {
		engineSide := tictactoe.X
		if opp == Random && g%2 == 1 {
			engineSide = tictactoe.O
		}
		winner, moves, perr := playOne(ctx, e, size, opp, engineSide)
		if perr != nil {
			return st, errors.Wrapf(perr, "game %d", g+1)
		}

		st.Games++
		st.Moves += moves
		switch winner {
		case tictactoe.X:
			st.XWins++
		case tictactoe.O:
			st.OWins++
		default:
			st.Ties++
		}
		// Perfect 模式双方都是引擎，任何一方输都算
		if winner != tictactoe.Empty && (opp == Perfect || winner != engineSide) {
			st.EngineLosses++
		}
		log.Debug().
			Int("game", g+1).
			Stringer("opponent", opp).
			Stringer("engine", engineSide).
			Stringer("winner", winner).
			Int("moves", moves).
			Msg("self-play game finished")
	}
	return st, nil
}

func playOne(ctx context.Context, e *engine.Engine, size int, opp Opponent, engineSide tictactoe.Symbol) (tictactoe.Symbol, int, error) {
	b := tictactoe.MustBoard(size)
	turn := tictactoe.X
	moves := 0
	for {
		if err := ctx.Err(); err != nil {
			return tictactoe.Empty, moves, err
		}

		var mv tictactoe.Move
		if opp == Random && turn != engineSide {
			empty := b.EmptyCells()
			mv = empty[frand.Intn(len(empty))]
		} else {
			var ok bool
			mv, ok = e.SelectMove(b, turn)
			if !ok {
				return tictactoe.Empty, moves, errors.Errorf("engine found no move on live board\n%v", b)
			}
		}

		b.MakeMove(mv.Row, mv.Col, turn)
		moves++
		if b.DidLastMoveWin(turn, mv.Row, mv.Col) {
			return turn, moves, nil
		}
		if b.Full() {
			return tictactoe.Empty, moves, nil
		}
		turn = turn.Opponent()
	}
}
