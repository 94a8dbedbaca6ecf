package engine

import (
	"github.com/corvidchess/corvid/common"
)

// Material values in centipawns.
var materialValue = [common.NumPieceTypes]int{
	common.Pawn:   100,
	common.Knight: 300,
	common.Bishop: 300,
	common.Rook:   500,
	common.Queen:  900,
	common.King:   20000,
}

const bishopPairBonus = 30
const pawnDoubledPenalty = 10
const pawnIsolatedPenalty = 15

// pawnPassedBonusByRank is indexed by distance-from-promotion (0 = already
// promoted, 6 = still on the second rank), following the classic
// "simplified evaluation function" progression.
var pawnPassedBonusByRank = [8]int{0, 90, 60, 40, 25, 15, 10, 0}

// Piece-square tables, one entry per square in the board's a8=0 layout
// (index 0 = a8, index 63 = h1), scored from White's perspective. Black
// reads the same table mirrored through index 63-square.
var pieceSquareTables = [common.NumPieceTypes][64]int{
	common.Pawn: {
		0, 0, 0, 0, 0, 0, 0, 0,
		50, 50, 50, 50, 50, 50, 50, 50,
		10, 10, 20, 30, 30, 20, 10, 10,
		5, 5, 10, 25, 25, 10, 5, 5,
		0, 0, 0, 20, 20, 0, 0, 0,
		5, -5, -10, 0, 0, -10, -5, 5,
		5, 10, 10, -20, -20, 10, 10, 5,
		0, 0, 0, 0, 0, 0, 0, 0,
	},
	common.Knight: {
		-50, -40, -30, -30, -30, -30, -40, -50,
		-40, -20, 0, 0, 0, 0, -20, -40,
		-30, 0, 10, 15, 15, 10, 0, -30,
		-30, 5, 15, 20, 20, 15, 5, -30,
		-30, 0, 15, 20, 20, 15, 0, -30,
		-30, 5, 10, 15, 15, 10, 5, -30,
		-40, -20, 0, 5, 5, 0, -20, -40,
		-50, -40, -30, -30, -30, -30, -40, -50,
	},
	common.Bishop: {
		-20, -10, -10, -10, -10, -10, -10, -20,
		-10, 0, 0, 0, 0, 0, 0, -10,
		-10, 0, 5, 10, 10, 5, 0, -10,
		-10, 5, 5, 10, 10, 5, 5, -10,
		-10, 0, 10, 10, 10, 10, 0, -10,
		-10, 10, 10, 10, 10, 10, 10, -10,
		-10, 5, 0, 0, 0, 0, 5, -10,
		-20, -10, -10, -10, -10, -10, -10, -20,
	},
	common.Rook: {
		0, 0, 0, 0, 0, 0, 0, 0,
		5, 10, 10, 10, 10, 10, 10, 5,
		-5, 0, 0, 0, 0, 0, 0, -5,
		-5, 0, 0, 0, 0, 0, 0, -5,
		-5, 0, 0, 0, 0, 0, 0, -5,
		-5, 0, 0, 0, 0, 0, 0, -5,
		-5, 0, 0, 0, 0, 0, 0, -5,
		0, 0, 0, 5, 5, 0, 0, 0,
	},
	common.Queen: {
		-20, -10, -10, -5, -5, -10, -10, -20,
		-10, 0, 0, 0, 0, 0, 0, -10,
		-10, 0, 5, 5, 5, 5, 0, -10,
		-5, 0, 5, 5, 5, 5, 0, -5,
		0, 0, 5, 5, 5, 5, 0, -5,
		-10, 5, 5, 5, 5, 5, 0, -10,
		-10, 0, 5, 0, 0, 0, 0, -10,
		-20, -10, -10, -5, -5, -10, -10, -20,
	},
	common.King: {
		-30, -40, -40, -50, -50, -40, -40, -30,
		-30, -40, -40, -50, -50, -40, -40, -30,
		-30, -40, -40, -50, -50, -40, -40, -30,
		-30, -40, -40, -50, -50, -40, -40, -30,
		-20, -30, -30, -40, -40, -30, -30, -20,
		-10, -20, -20, -20, -20, -20, -20, -10,
		20, 20, 0, 0, 0, 0, 20, 20,
		20, 30, 10, 0, 0, 10, 30, 20,
	},
}

func pstValue(piece common.Piece, sq common.Square, side common.Side) int {
	if side == common.White {
		return pieceSquareTables[piece][sq]
	}
	return pieceSquareTables[piece][63-sq]
}

var fileMasks [8]common.Bitboard
var adjacentFileMasks [8]common.Bitboard

func init() {
	var fileA common.Bitboard = 0x0101010101010101
	for f := 0; f < 8; f++ {
		fileMasks[f] = fileA << uint(f)
	}
	for f := 0; f < 8; f++ {
		var m common.Bitboard
		if f > 0 {
			m |= fileMasks[f-1]
		}
		if f < 7 {
			m |= fileMasks[f+1]
		}
		adjacentFileMasks[f] = m
	}
}

// aheadMask returns every square strictly ahead of sq (toward the
// opponent's back rank) on the given file, from side's perspective.
func aheadMask(file, rank int, side common.Side) common.Bitboard {
	var m common.Bitboard
	if side == common.White {
		for r := rank - 1; r >= 0; r-- {
			m = m.Set(common.SquareFromFileRank(file, r))
		}
	} else {
		for r := rank + 1; r <= 7; r++ {
			m = m.Set(common.SquareFromFileRank(file, r))
		}
	}
	return m
}

func pawnStructureScore(pawns common.Bitboard, oppPawns common.Bitboard, side common.Side) int {
	score := 0

	var fileCounts [8]int
	iter := pawns
	for iter.Any() {
		var sq common.Square
		sq, iter = iter.PopLSB()
		fileCounts[common.File(sq)]++
	}
	for f := 0; f < 8; f++ {
		if fileCounts[f] > 1 {
			score -= pawnDoubledPenalty * (fileCounts[f] - 1)
		}
		if fileCounts[f] > 0 && pawns&adjacentFileMasks[f] == 0 {
			score -= pawnIsolatedPenalty * fileCounts[f]
		}
	}

	iter = pawns
	for iter.Any() {
		var sq common.Square
		sq, iter = iter.PopLSB()
		file, rank := common.File(sq), common.Rank(sq)
		front := aheadMask(file, rank, side) | adjacentAheadMask(file, rank, side)
		if front&oppPawns == 0 {
			var distance int
			if side == common.White {
				distance = rank
			} else {
				distance = 7 - rank
			}
			score += pawnPassedBonusByRank[distance]
		}
	}

	return score
}

func adjacentAheadMask(file, rank int, side common.Side) common.Bitboard {
	var m common.Bitboard
	if file > 0 {
		m |= aheadMask(file-1, rank, side)
	}
	if file < 7 {
		m |= aheadMask(file+1, rank, side)
	}
	return m
}

// Evaluate returns the static score of b in centipawns from the side to
// move's perspective (positive = good for the side to move): material plus
// piece-square tables plus a bishop-pair bonus plus a small pawn-structure
// term.
func Evaluate(b *common.Board) int {
	var white, black int

	for piece := common.Pawn; piece <= common.King; piece++ {
		wbb := b.PieceBB(piece, common.White)
		bbb := b.PieceBB(piece, common.Black)

		white += materialValue[piece] * wbb.PopCount()
		black += materialValue[piece] * bbb.PopCount()

		iter := wbb
		for iter.Any() {
			var sq common.Square
			sq, iter = iter.PopLSB()
			white += pstValue(piece, sq, common.White)
		}
		iter = bbb
		for iter.Any() {
			var sq common.Square
			sq, iter = iter.PopLSB()
			black += pstValue(piece, sq, common.Black)
		}
	}

	if b.PieceBB(common.Bishop, common.White).PopCount() >= 2 {
		white += bishopPairBonus
	}
	if b.PieceBB(common.Bishop, common.Black).PopCount() >= 2 {
		black += bishopPairBonus
	}

	white += pawnStructureScore(b.PieceBB(common.Pawn, common.White), b.PieceBB(common.Pawn, common.Black), common.White)
	black += pawnStructureScore(b.PieceBB(common.Pawn, common.Black), b.PieceBB(common.Pawn, common.White), common.Black)

	raw := white - black
	if b.SideToMove == common.Black {
		return -raw
	}
	return raw
}
