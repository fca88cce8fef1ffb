package tictactoe

import (
	"math/bits"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

const (
	MinSize = 3
	MaxSize = 8 // 8x8 = 64 格，正好一个 uint64
)

var ErrBoardSize = errors.New("board size must be between 3 and 8")

// Board 用两个 bitboard 表示局面，第 row*size+col 位对应 (row, col)。
// 值类型，搜索里按值传递，MakeMove/UnmakeMove 成对使用。
type Board struct {
	size int
	x    uint64
	o    uint64
}

func NewBoard(size int) (Board, error) {
	if err := CheckSize(size); err != nil {
		return Board{}, err
	}
	return Board{size: size}, nil
}

// MustBoard 用于尺寸已经校验过的场合
func MustBoard(size int) Board {
	b, err := NewBoard(size)
	if err != nil {
		panic(err)
	}
	return b
}

func CheckSize(size int) error {
	if size < MinSize || size > MaxSize {
		return errors.Wrapf(ErrBoardSize, "got %d", size)
	}
	return nil
}

func (b Board) Size() int  { return b.size }
func (b Board) Cells() int { return b.size * b.size }

// Bit 返回 (row, col) 的掩码，不做越界检查
func (b Board) Bit(row, col int) uint64 { return 1 << uint(row*b.size+col) }

func (b Board) InBounds(row, col int) bool {
	return row >= 0 && row < b.size && col >= 0 && col < b.size
}

// ValidMask 是 [0, size²) 内所有位；64 格时不能写成 1<<64-1
func (b Board) ValidMask() uint64 {
	n := b.Cells()
	if n == 64 {
		return ^uint64(0)
	}
	return (uint64(1) << uint(n)) - 1
}

// MakeMove 落子。调用方保证该格为空。
func (b *Board) MakeMove(row, col int, s Symbol) {
	mask := b.Bit(row, col)
	if s == X {
		b.x |= mask
	} else {
		b.o |= mask
	}
}

// UnmakeMove 是 MakeMove 的逆操作，参数必须一致
func (b *Board) UnmakeMove(row, col int, s Symbol) {
	mask := b.Bit(row, col)
	if s == X {
		b.x &^= mask
	} else {
		b.o &^= mask
	}
}

func (b Board) Pieces(s Symbol) uint64 {
	switch s {
	case X:
		return b.x
	case O:
		return b.o
	}
	return 0
}

func (b Board) Occupied() uint64  { return b.x | b.o }
func (b Board) EmptyMask() uint64 { return ^b.Occupied() & b.ValidMask() }
func (b Board) EmptyCount() int   { return bits.OnesCount64(b.EmptyMask()) }
func (b Board) IsEmpty() bool     { return b.Occupied()&b.ValidMask() == 0 }
func (b Board) Full() bool        { return b.Occupied()&b.ValidMask() == b.ValidMask() }

// Overlapping 两方占同一格：非法局面
func (b Board) Overlapping() bool { return b.x&b.o != 0 }

func (b Board) IsEmptyCell(row, col int) bool {
	return b.Occupied()&b.Bit(row, col) == 0
}

func (b Board) SymbolAt(row, col int) Symbol {
	mask := b.Bit(row, col)
	if b.x&mask != 0 {
		return X
	}
	if b.o&mask != 0 {
		return O
	}
	return Empty
}

// CellOf 把位序号还原成坐标
func (b Board) CellOf(bit int) Move { return Move{Row: bit / b.size, Col: bit % b.size} }

// EmptyCells 按位序（行优先）列出所有空格
func (b Board) EmptyCells() []Move {
	empty := b.EmptyMask()
	out := make([]Move, 0, bits.OnesCount64(empty))
	for empty != 0 {
		out = append(out, b.CellOf(bits.TrailingZeros64(empty)))
		empty &= empty - 1
	}
	return out
}

func (b Board) HasWon(s Symbol) bool {
	return LinesFor(b.size).HasWon(b.Pieces(s))
}

func (b Board) DidLastMoveWin(s Symbol, row, col int) bool {
	return LinesFor(b.size).DidLastMoveWin(b.Pieces(s), row, col)
}

// Winner 全盘检查，没人连成线返回 Empty
func (b Board) Winner() Symbol {
	switch {
	case b.HasWon(X):
		return X
	case b.HasWon(O):
		return O
	}
	return Empty
}

// Terminal 有人赢或者满盘
func (b Board) Terminal() bool {
	return b.Winner() != Empty || b.Full()
}

// ParseBoard 从 "xo." 形式的行构造局面，'.'、'-'、' ' 都算空
func ParseBoard(size int, rows ...string) (Board, error) {
	b, err := NewBoard(size)
	if err != nil {
		return b, err
	}
	if len(rows) != size {
		return b, errors.Errorf("expected %d rows, got %d", size, len(rows))
	}
	for r, line := range rows {
		cells := []rune(line)
		if len(cells) != size {
			return b, errors.Errorf("row %d: expected %d cells, got %d", r, size, len(cells))
		}
		for c, ch := range cells {
			switch ch {
			case '.', '-', ' ':
				continue
			}
			s, err := ParseSymbol(ch)
			if err != nil {
				return b, errors.Wrapf(err, "row %d col %d", r, c)
			}
			b.MakeMove(r, c, s)
		}
	}
	return b, nil
}

// String 按终端格式打印，行列编号从 1 开始
func (b Board) String() string {
	digits := len(strconv.Itoa(b.size))
	var sb strings.Builder
	sb.WriteByte('\n')
	sb.WriteString(strings.Repeat(" ", digits))
	for c := 1; c <= b.size; c++ {
		sb.WriteByte(' ')
		sb.WriteString(pad(strconv.Itoa(c), digits))
		sb.WriteByte(' ')
	}
	sb.WriteByte('\n')
	for r := 0; r < b.size; r++ {
		sb.WriteString(pad(strconv.Itoa(r+1), digits))
		for c := 0; c < b.size; c++ {
			sb.WriteByte('[')
			sb.WriteString(pad(b.SymbolAt(r, c).String(), digits))
			sb.WriteByte(']')
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func pad(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return strings.Repeat(" ", width-len(s)) + s
}
