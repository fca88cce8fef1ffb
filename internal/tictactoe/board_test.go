package tictactoe

import (
	"math/rand"
	"testing"

	"github.com/matryer/is"
	"github.com/pkg/errors"
)

func TestNewBoardRejectsUnsupportedSizes(t *testing.T) {
	is := is.New(t)
	for _, size := range []int{-1, 0, 1, 2, 9, 16} {
		_, err := NewBoard(size)
		is.True(errors.Is(err, ErrBoardSize))
	}
	for size := MinSize; size <= MaxSize; size++ {
		b, err := NewBoard(size)
		is.NoErr(err)
		is.Equal(b.Size(), size)
		is.True(b.IsEmpty())
		is.Equal(b.EmptyCount(), size*size)
	}
}

func TestMakeUnmakeSymmetry(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for size := MinSize; size <= MaxSize; size++ {
		for trial := 0; trial < 50; trial++ {
			b := randomBoard(rng, size, rng.Intn(size*size))
			for _, mv := range b.EmptyCells() {
				for _, s := range []Symbol{X, O} {
					before := b
					b.MakeMove(mv.Row, mv.Col, s)
					if b.SymbolAt(mv.Row, mv.Col) != s {
						t.Fatalf("size %d: %v not set for %v", size, mv, s)
					}
					b.UnmakeMove(mv.Row, mv.Col, s)
					if b != before {
						t.Fatalf("size %d: make/unmake %v %v changed board", size, mv, s)
					}
				}
			}
		}
	}
}

func TestUnmakeOtherPlayerIsNoop(t *testing.T) {
	is := is.New(t)
	b := MustBoard(3)
	b.MakeMove(1, 1, X)
	before := b
	b.UnmakeMove(1, 1, O)
	is.Equal(b, before)
}

func TestCellQueries(t *testing.T) {
	is := is.New(t)
	b, err := ParseBoard(3,
		"x..",
		".o.",
		"..x",
	)
	is.NoErr(err)
	is.Equal(b.SymbolAt(0, 0), X)
	is.Equal(b.SymbolAt(1, 1), O)
	is.Equal(b.SymbolAt(2, 2), X)
	is.Equal(b.SymbolAt(0, 1), Empty)
	is.True(b.IsEmptyCell(0, 1))
	is.True(!b.IsEmptyCell(1, 1))
	is.Equal(b.EmptyCount(), 6)
	is.Equal(b.EmptyCells()[0], Move{Row: 0, Col: 1})
}

func TestCornersOnLargestBoard(t *testing.T) {
	is := is.New(t)
	b := MustBoard(MaxSize)
	b.MakeMove(0, 0, X)
	b.MakeMove(0, MaxSize-1, O)
	b.MakeMove(MaxSize-1, 0, X)
	b.MakeMove(MaxSize-1, MaxSize-1, O)
	is.Equal(b.SymbolAt(0, 0), X)
	is.Equal(b.SymbolAt(0, MaxSize-1), O)
	is.Equal(b.SymbolAt(MaxSize-1, 0), X)
	is.Equal(b.SymbolAt(MaxSize-1, MaxSize-1), O)
	is.Equal(b.EmptyCount(), 60)
	is.Equal(b.ValidMask(), ^uint64(0))
}

func TestOverlapping(t *testing.T) {
	is := is.New(t)
	b := MustBoard(3)
	b.MakeMove(0, 0, X)
	is.True(!b.Overlapping())
	b.MakeMove(0, 0, O)
	is.True(b.Overlapping())
}

func TestParseBoardErrors(t *testing.T) {
	is := is.New(t)
	_, err := ParseBoard(3, "xxx", "ooo")
	is.True(err != nil)
	_, err = ParseBoard(3, "xx", "...", "...")
	is.True(err != nil)
	_, err = ParseBoard(3, "xq.", "...", "...")
	is.True(err != nil)
	_, err = ParseBoard(2, "..", "..")
	is.True(errors.Is(err, ErrBoardSize))
}

func TestBoardString(t *testing.T) {
	is := is.New(t)
	b, err := ParseBoard(3, "x..", ".o.", "...")
	is.NoErr(err)
	want := "\n  1  2  3 \n1[x][ ][ ]\n2[ ][o][ ]\n3[ ][ ][ ]\n"
	is.Equal(b.String(), want)
}

func randomBoard(rng *rand.Rand, size, pieces int) Board {
	b := MustBoard(size)
	turn := X
	for i := 0; i < pieces; i++ {
		cells := b.EmptyCells()
		if len(cells) == 0 {
			break
		}
		mv := cells[rng.Intn(len(cells))]
		b.MakeMove(mv.Row, mv.Col, turn)
		turn = turn.Opponent()
	}
	return b
}
