package common

import (
	"math/rand"

	"golang.org/x/sync/errgroup"
)

// Precomputed leaper attacks, indexed by square.
var (
	whitePawnAttacks [64]Bitboard
	blackPawnAttacks [64]Bitboard
	knightAttacks    [64]Bitboard
	kingAttacks      [64]Bitboard
)

// Magic bitboard tables for sliding pieces: bishop attacks fit in 2^9
// entries per square, rook in 2^12.
var (
	bishopMasks      [64]Bitboard
	rookMasks        [64]Bitboard
	bishopRelevant   [64]int
	rookRelevant     [64]int
	bishopMagics     [64]uint64
	rookMagics       [64]uint64
	bishopAttacks    [64][512]Bitboard
	rookAttacks      [64][4096]Bitboard
)

func init() {
	initLeaperAttacks()
	initSliderMasks()
	if err := initMagics(); err != nil {
		panic(err)
	}
	initSliderTables()
}

func initLeaperAttacks() {
	for sq := Square(0); sq < 64; sq++ {
		b := SquareBB(sq)

		whitePawnAttacks[sq] = shiftUpLeft(b) | shiftUpRight(b)
		blackPawnAttacks[sq] = shiftDownLeft(b) | shiftDownRight(b)

		knightAttacks[sq] = shift(b, -17, notHFile) | shift(b, -15, notAFile) |
			shift(b, -10, notGHFile) | shift(b, -6, notABFile) |
			shift(b, 17, notAFile) | shift(b, 15, notHFile) |
			shift(b, 10, notABFile) | shift(b, 6, notGHFile)

		kingAttacks[sq] = shiftUp(b) | shiftDown(b) | shiftLeft(b) | shiftRight(b) |
			shiftUpLeft(b) | shiftUpRight(b) | shiftDownLeft(b) | shiftDownRight(b)
	}
}

// shift moves a single-bit bitboard by delta squares (positive = toward
// higher indices / down the board), then ANDs the result with mask to drop
// targets that wrapped around to the opposite edge of the board.
func shift(b Bitboard, delta int, mask Bitboard) Bitboard {
	if delta > 0 {
		return (b << uint(delta)) & mask
	}
	return (b >> uint(-delta)) & mask
}

func shiftUp(b Bitboard) Bitboard        { return b >> 8 }
func shiftDown(b Bitboard) Bitboard      { return b << 8 }
func shiftLeft(b Bitboard) Bitboard      { return (b & notAFile) >> 1 }
func shiftRight(b Bitboard) Bitboard     { return (b & notHFile) << 1 }
func shiftUpLeft(b Bitboard) Bitboard    { return (b & notAFile) >> 9 }
func shiftUpRight(b Bitboard) Bitboard   { return (b & notHFile) >> 7 }
func shiftDownLeft(b Bitboard) Bitboard  { return (b & notAFile) << 7 }
func shiftDownRight(b Bitboard) Bitboard { return (b & notHFile) << 9 }

// PawnAttacks returns the squares a pawn of the given side attacks from sq.
func PawnAttacks(sq Square, side Side) Bitboard {
	if side == White {
		return whitePawnAttacks[sq]
	}
	return blackPawnAttacks[sq]
}

func KnightAttacksFrom(sq Square) Bitboard { return knightAttacks[sq] }
func KingAttacksFrom(sq Square) Bitboard   { return kingAttacks[sq] }

// relevantRayMask walks the four rays of a slider from sq, stopping one
// short of the board edge in each direction — the set of squares whose
// occupancy can possibly change the slider's attack set.
func relevantRayMask(sq Square, deltas [][2]int, edgeExclusive bool) Bitboard {
	var mask Bitboard
	file, rank := File(sq), Rank(sq)
	for _, d := range deltas {
		f, r := file+d[0], rank+d[1]
		for f >= 0 && f <= 7 && r >= 0 && r <= 7 {
			nf, nr := f+d[0], r+d[1]
			if edgeExclusive && (nf < 0 || nf > 7 || nr < 0 || nr > 7) {
				break
			}
			mask = mask.Set(SquareFromFileRank(f, r))
			f, r = nf, nr
		}
	}
	return mask
}

var bishopDeltas = [][2]int{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}
var rookDeltas = [][2]int{{0, 1}, {0, -1}, {1, 0}, {-1, 0}}

func initSliderMasks() {
	for sq := Square(0); sq < 64; sq++ {
		bishopMasks[sq] = relevantRayMask(sq, bishopDeltas, true)
		rookMasks[sq] = relevantRayMask(sq, rookDeltas, true)
		bishopRelevant[sq] = bishopMasks[sq].PopCount()
		rookRelevant[sq] = rookMasks[sq].PopCount()
	}
}

// onTheFlyAttacks walks the rays from sq against occ, stopping at (and
// including) the first blocker in each direction — used both to build the
// magic tables and as the reference implementation attack lookups must
// match.
func onTheFlyAttacks(sq Square, occ Bitboard, deltas [][2]int) Bitboard {
	var attacks Bitboard
	file, rank := File(sq), Rank(sq)
	for _, d := range deltas {
		f, r := file+d[0], rank+d[1]
		for f >= 0 && f <= 7 && r >= 0 && r <= 7 {
			target := SquareFromFileRank(f, r)
			attacks = attacks.Set(target)
			if occ.Test(target) {
				break
			}
			f, r = f+d[0], r+d[1]
		}
	}
	return attacks
}

func BishopOnTheFlyAttacks(sq Square, occ Bitboard) Bitboard {
	return onTheFlyAttacks(sq, occ, bishopDeltas)
}

func RookOnTheFlyAttacks(sq Square, occ Bitboard) Bitboard {
	return onTheFlyAttacks(sq, occ, rookDeltas)
}

// occupancySubset returns the index-th subset of mask's set bits, used to
// enumerate every possible blocker configuration relevant to a square.
func occupancySubset(index int, mask Bitboard) Bitboard {
	var occ Bitboard
	bits := mask
	for i := 0; bits.Any(); i++ {
		sq, rest := bits.PopLSB()
		bits = rest
		if index&(1<<uint(i)) != 0 {
			occ = occ.Set(sq)
		}
	}
	return occ
}

func magicIndex(occ Bitboard, magic uint64, relevantBits int) int {
	return int((uint64(occ) * magic) >> uint(64-relevantBits))
}

// findMagicNumber performs the classic random-search perfect-hash discovery
// for one square: try sparse random 64-bit candidates until one maps every
// relevant occupancy subset to a collision-free index.
func findMagicNumber(sq Square, relevantBits int, deltas [][2]int, mask Bitboard, r *rand.Rand) uint64 {
	size := 1 << uint(relevantBits)
	occupancies := make([]Bitboard, size)
	attacks := make([]Bitboard, size)
	for i := 0; i < size; i++ {
		occupancies[i] = occupancySubset(i, mask)
		attacks[i] = onTheFlyAttacks(sq, occupancies[i], deltas)
	}

	used := make([]Bitboard, size)
	const seenNever = -1
	seenAt := make([]int, size)

	for attempt := 0; attempt < 1000000; attempt++ {
		magic := sparseRandomUint64(r)
		if Bitboard((uint64(mask)*magic)&0xFF00000000000000).PopCount() < 6 {
			continue
		}

		for i := range seenAt {
			seenAt[i] = seenNever
		}
		ok := true
		for i := 0; i < size; i++ {
			idx := magicIndex(occupancies[i], magic, relevantBits)
			if seenAt[idx] == seenNever {
				seenAt[idx] = i
				used[idx] = attacks[i]
			} else if used[idx] != attacks[i] {
				ok = false
				break
			}
		}
		if ok {
			return magic
		}
	}
	panic("no magic number found")
}

func sparseRandomUint64(r *rand.Rand) uint64 {
	return r.Uint64() & r.Uint64() & r.Uint64()
}

// initMagics discovers the 128 magic numbers (64 bishop + 64 rook) needed
// for O(1) slider attack lookups. Each square's search is independent, so
// the work is split across goroutines with errgroup — the only place in
// corvid where concurrency is used, and it runs once at process start, not
// during search.
func initMagics() error {
	var g errgroup.Group
	for sq := Square(0); sq < 64; sq++ {
		sq := sq
		g.Go(func() error {
			r := rand.New(rand.NewSource(int64(sq) + 1))
			bishopMagics[sq] = findMagicNumber(sq, bishopRelevant[sq], bishopDeltas, bishopMasks[sq], r)
			rookMagics[sq] = findMagicNumber(sq, rookRelevant[sq], rookDeltas, rookMasks[sq], r)
			return nil
		})
	}
	return g.Wait()
}

func initSliderTables() {
	for sq := Square(0); sq < 64; sq++ {
		size := 1 << uint(bishopRelevant[sq])
		for i := 0; i < size; i++ {
			occ := occupancySubset(i, bishopMasks[sq])
			idx := magicIndex(occ, bishopMagics[sq], bishopRelevant[sq])
			bishopAttacks[sq][idx] = onTheFlyAttacks(sq, occ, bishopDeltas)
		}

		size = 1 << uint(rookRelevant[sq])
		for i := 0; i < size; i++ {
			occ := occupancySubset(i, rookMasks[sq])
			idx := magicIndex(occ, rookMagics[sq], rookRelevant[sq])
			rookAttacks[sq][idx] = onTheFlyAttacks(sq, occ, rookDeltas)
		}
	}
}

// BishopAttacks returns bishop attacks from sq given the board occupancy occ.
func BishopAttacks(sq Square, occ Bitboard) Bitboard {
	idx := magicIndex(occ&bishopMasks[sq], bishopMagics[sq], bishopRelevant[sq])
	return bishopAttacks[sq][idx]
}

// RookAttacks returns rook attacks from sq given the board occupancy occ.
func RookAttacks(sq Square, occ Bitboard) Bitboard {
	idx := magicIndex(occ&rookMasks[sq], rookMagics[sq], rookRelevant[sq])
	return rookAttacks[sq][idx]
}

// QueenAttacks is the union of bishop and rook attacks from sq.
func QueenAttacks(sq Square, occ Bitboard) Bitboard {
	return BishopAttacks(sq, occ) | RookAttacks(sq, occ)
}
