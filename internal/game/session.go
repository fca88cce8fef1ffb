package game

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/samber/lo"

	"hyperprune/internal/engine"
	"hyperprune/internal/tictactoe"
)

var (
	ErrOccupied   = errors.New("cell already occupied")
	ErrOutOfRange = errors.New("cell out of range")
	ErrGameOver   = errors.New("game is over")
	ErrNotFound   = errors.New("session not found")
)

// Outcome 走完一步之后的局面结论
type Outcome int

const (
	Continue Outcome = iota
	XWins
	OWins
	Tie
)

func (o Outcome) String() string {
	switch o {
	case XWins:
		return "x wins"
	case OWins:
		return "o wins"
	case Tie:
		return "tie"
	}
	return "continue"
}

// Over 是否已分出结果
func (o Outcome) Over() bool { return o != Continue }

func winOutcome(s tictactoe.Symbol) Outcome {
	if s == tictactoe.X {
		return XWins
	}
	return OWins
}

// Session 一盘人机对局。X 永远先走。
type Session struct {
	ID        string
	Board     tictactoe.Board
	ToMove    tictactoe.Symbol
	Human     tictactoe.Symbol
	AI        tictactoe.Symbol
	History   []tictactoe.Move
	Outcome   Outcome
	CreatedAt time.Time
	UpdatedAt time.Time
}

func NewSession(size int, human tictactoe.Symbol) (*Session, error) {
	if err := tictactoe.CheckSize(size); err != nil {
		return nil, err
	}
	if !human.Valid() {
		return nil, errors.Errorf("invalid human symbol %q", human)
	}
	now := time.Now()
	return &Session{
		ID:        uuid.NewString(),
		Board:     tictactoe.MustBoard(size),
		ToMove:    tictactoe.X,
		Human:     human,
		AI:        human.Opponent(),
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// Play 替当前行棋方落子。只检查经过刚落子格子的线，
// 之前的每一步都是这样检查过的，所以不会漏掉胜负。
func (s *Session) Play(mv tictactoe.Move) (Outcome, error) {
	if s.Outcome.Over() {
		return s.Outcome, ErrGameOver
	}
	if !s.Board.InBounds(mv.Row, mv.Col) {
		return Continue, errors.Wrapf(ErrOutOfRange, "move %v on %dx%d", mv, s.Board.Size(), s.Board.Size())
	}
	if !s.Board.IsEmptyCell(mv.Row, mv.Col) {
		return Continue, errors.Wrapf(ErrOccupied, "move %v", mv)
	}

	mover := s.ToMove
	s.Board.MakeMove(mv.Row, mv.Col, mover)
	s.History = append(s.History, mv)
	s.ToMove = mover.Opponent()
	s.UpdatedAt = time.Now()

	switch {
	case s.Board.DidLastMoveWin(mover, mv.Row, mv.Col):
		s.Outcome = winOutcome(mover)
	case s.Board.Full():
		s.Outcome = Tie
	}
	return s.Outcome, nil
}

// PlayEngine 让引擎替 AI 走一步。没轮到 AI 时报错。
func (s *Session) PlayEngine(e *engine.Engine) (tictactoe.Move, Outcome, error) {
	if s.Outcome.Over() {
		return tictactoe.Move{}, s.Outcome, ErrGameOver
	}
	if s.ToMove != s.AI {
		return tictactoe.Move{}, s.Outcome, errors.Errorf("not the engine's turn (%v to move)", s.ToMove)
	}
	mv, ok := e.SelectMove(s.Board, s.AI)
	if !ok {
		return tictactoe.Move{}, s.Outcome, errors.Errorf("engine found no move for session %s", s.ID)
	}
	out, err := s.Play(mv)
	return mv, out, err
}

// HumanToMove 是否轮到人走
func (s *Session) HumanToMove() bool {
	return !s.Outcome.Over() && s.ToMove == s.Human
}

// Restart 清空棋盘，保留 ID 和双方执子
func (s *Session) Restart() {
	s.Board = tictactoe.MustBoard(s.Board.Size())
	s.ToMove = tictactoe.X
	s.History = nil
	s.Outcome = Continue
	s.UpdatedAt = time.Now()
}

// HistoryString 形如 "x(2, 2) o(1, 1) x(3, 1)"
func (s *Session) HistoryString() string {
	steps := lo.Map(s.History, func(mv tictactoe.Move, i int) string {
		mover := tictactoe.X
		if i%2 == 1 {
			mover = tictactoe.O
		}
		return mover.String() + mv.String()
	})
	return strings.Join(steps, " ")
}
