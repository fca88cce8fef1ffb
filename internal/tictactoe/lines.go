package tictactoe

// Lines 是某个边长下所有获胜线的掩码：
// [0,size) 行，[size,2size) 列，2size 主对角线，2size+1 副对角线
type Lines struct {
	size  int
	masks []uint64
}

var lineTable [MaxSize + 1]*Lines

func init() {
	for size := MinSize; size <= MaxSize; size++ {
		lineTable[size] = buildLines(size)
	}
}

func buildLines(size int) *Lines {
	bit := func(r, c int) uint64 { return 1 << uint(r*size+c) }
	l := &Lines{size: size, masks: make([]uint64, 0, 2*size+2)}

	for r := 0; r < size; r++ {
		var m uint64
		for c := 0; c < size; c++ {
			m |= bit(r, c)
		}
		l.masks = append(l.masks, m)
	}
	for c := 0; c < size; c++ {
		var m uint64
		for r := 0; r < size; r++ {
			m |= bit(r, c)
		}
		l.masks = append(l.masks, m)
	}

	var diag, anti uint64
	for i := 0; i < size; i++ {
		diag |= bit(i, i)
		anti |= bit(i, size-1-i)
	}
	l.masks = append(l.masks, diag, anti)
	return l
}

// LinesFor 边长不在 3..8 时返回 nil
func LinesFor(size int) *Lines {
	if size < MinSize || size > MaxSize {
		return nil
	}
	return lineTable[size]
}

func (l *Lines) Size() int        { return l.size }
func (l *Lines) Masks() []uint64  { return l.masks }
func (l *Lines) Row(r int) uint64 { return l.masks[r] }
func (l *Lines) Col(c int) uint64 { return l.masks[l.size+c] }

// HasWon 全部获胜线扫一遍
func (l *Lines) HasWon(mask uint64) bool {
	for _, m := range l.masks {
		if mask&m == m {
			return true
		}
	}
	return false
}

// DidLastMoveWin 只看经过 (row, col) 的行、列和对角线。
// 只有在“刚落的这一子是唯一可能的新胜因”时才成立，
// 不能拿来判断整盘有没有人赢：别的线上已有的胜利它看不到。
func (l *Lines) DidLastMoveWin(mask uint64, row, col int) bool {
	if m := l.masks[row]; mask&m == m {
		return true
	}
	if m := l.masks[l.size+col]; mask&m == m {
		return true
	}
	if row == col {
		if m := l.masks[2*l.size]; mask&m == m {
			return true
		}
	}
	if row+col == l.size-1 {
		if m := l.masks[2*l.size+1]; mask&m == m {
			return true
		}
	}
	return false
}
