package tictactoe

import (
	"fmt"

	"github.com/pkg/errors"
)

type Symbol int8

const (
	Empty Symbol = -1
	X     Symbol = 0
	O     Symbol = 1
)

// Opponent 返回对手；Empty 的对手仍是 Empty
func (s Symbol) Opponent() Symbol {
	switch s {
	case X:
		return O
	case O:
		return X
	default:
		return Empty
	}
}

func (s Symbol) Valid() bool { return s == X || s == O }

func (s Symbol) String() string {
	switch s {
	case X:
		return "x"
	case O:
		return "o"
	default:
		return " "
	}
}

// ParseSymbol 接受 x/X/o/O
func ParseSymbol(r rune) (Symbol, error) {
	switch r {
	case 'x', 'X':
		return X, nil
	case 'o', 'O':
		return O, nil
	}
	return Empty, errors.Errorf("unknown symbol %q", r)
}

// Move 行列坐标，0 起
type Move struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (m Move) String() string {
	// 对外显示用 1 起的 (列, 行)，和终端输入顺序一致
	return fmt.Sprintf("(%d, %d)", m.Col+1, m.Row+1)
}
