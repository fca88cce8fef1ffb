package tictactoe

import (
	"testing"

	"github.com/matryer/is"
)

func TestLineCount(t *testing.T) {
	is := is.New(t)
	for size := MinSize; size <= MaxSize; size++ {
		l := LinesFor(size)
		is.Equal(len(l.Masks()), 2*size+2)
		is.Equal(l.Size(), size)
	}
	is.True(LinesFor(2) == nil)
	is.True(LinesFor(9) == nil)
}

func TestHasWonEveryLine(t *testing.T) {
	for size := MinSize; size <= MaxSize; size++ {
		l := LinesFor(size)
		for i, m := range l.Masks() {
			if !l.HasWon(m) {
				t.Fatalf("size %d: line %d not detected", size, i)
			}
			// 少一子就不算
			partial := m &^ (m & -m)
			if l.HasWon(partial) {
				t.Fatalf("size %d: partial line %d detected as win", size, i)
			}
		}
	}
}

func TestDidLastMoveWin(t *testing.T) {
	tests := []struct {
		name     string
		rows     []string
		s        Symbol
		row, col int
		want     bool
	}{
		{"row end", []string{"xxx", "...", "..."}, X, 0, 2, true},
		{"row start", []string{"xxx", "...", "..."}, X, 0, 0, true},
		{"column", []string{"o..", "o..", "o.."}, O, 2, 0, true},
		{"main diagonal", []string{"x..", ".x.", "..x"}, X, 1, 1, true},
		{"anti diagonal corner", []string{"..x", ".x.", "x.."}, X, 0, 2, true},
		{"anti diagonal center", []string{"..x", ".x.", "x.."}, X, 1, 1, true},
		{"anti diagonal other corner", []string{"..x", ".x.", "x.."}, X, 2, 0, true},
		{"incomplete row", []string{"x.x", "...", "..."}, X, 0, 1, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			is := is.New(t)
			b, err := ParseBoard(3, tc.rows...)
			is.NoErr(err)
			is.Equal(b.DidLastMoveWin(tc.s, tc.row, tc.col), tc.want)
		})
	}
}

func TestDidLastMoveWinIgnoresUnrelatedLines(t *testing.T) {
	is := is.New(t)
	b, err := ParseBoard(3,
		"xxx",
		"oo.",
		"...",
	)
	is.NoErr(err)
	is.True(b.HasWon(X))
	is.Equal(b.Winner(), X)
	// (2,1) 不在第 0 行，也不在对角线上：受限检查看不到这条线
	is.True(!b.DidLastMoveWin(X, 2, 1))
	is.True(!LinesFor(3).DidLastMoveWin(b.Pieces(X), 1, 0))
}

func TestNoWinnerOnFullTie(t *testing.T) {
	is := is.New(t)
	b, err := ParseBoard(3,
		"xxo",
		"oox",
		"xxo",
	)
	is.NoErr(err)
	is.True(!b.HasWon(X))
	is.True(!b.HasWon(O))
	is.True(b.Full())
	is.True(b.Terminal())
	is.Equal(b.Winner(), Empty)
}
