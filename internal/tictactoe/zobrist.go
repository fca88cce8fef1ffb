package tictactoe

import "math/bits"

// DefaultSeed 黄金分割常数，和 splitmix64 的步长相同
const DefaultSeed uint64 = 0x9E3779B97F4A7C15

type splitmix64 struct {
	state uint64
}

func (s *splitmix64) next() uint64 {
	s.state += 0x9E3779B97F4A7C15
	z := s.state
	z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
	z = (z ^ (z >> 27)) * 0x94D049BB133111EB
	return z ^ (z >> 31)
}

// Zobrist 一套随机键：每格每方一个，两个“AI 视角”键，一个行棋方键。
// 只能通过 Init 重新生成。
type Zobrist struct {
	size        int
	seed        uint64
	pieces      [][2]uint64 // 下标 row*size+col
	perspective [2]uint64
	turn        uint64
}

func NewZobrist(size int, seed uint64) *Zobrist {
	z := &Zobrist{size: size, pieces: make([][2]uint64, size*size)}
	z.Init(seed)
	return z
}

// Init 用 seed 重新生成全部键，旧键作废。
// 生成顺序固定：格子(行,列,方) → 视角 x、o → 行棋方。
func (z *Zobrist) Init(seed uint64) {
	rng := splitmix64{state: seed}
	for sq := range z.pieces {
		z.pieces[sq][X] = rng.next()
		z.pieces[sq][O] = rng.next()
	}
	z.perspective[X] = rng.next()
	z.perspective[O] = rng.next()
	z.turn = rng.next()
	z.seed = seed
}

func (z *Zobrist) Seed() uint64 { return z.seed }
func (z *Zobrist) Size() int    { return z.size }

// Hash 全量计算。必须带上 maximizer 的视角键：
// 同样的子，谁是 AI 不同，分数就不同。
func (z *Zobrist) Hash(b Board, maximizer Symbol) uint64 {
	h := z.perspective[maximizer]
	for _, s := range [2]Symbol{X, O} {
		p := b.Pieces(s)
		for p != 0 {
			h ^= z.pieces[bits.TrailingZeros64(p)][s]
			p &= p - 1
		}
	}
	return h
}

// Toggle 落子和提子都是同一次 XOR
func (z *Zobrist) Toggle(h uint64, row, col int, s Symbol) uint64 {
	return h ^ z.pieces[row*z.size+col][s]
}

// ToggleTurn 极小层（对手走）时异或进去
func (z *Zobrist) ToggleTurn(h uint64) uint64 {
	return h ^ z.turn
}
