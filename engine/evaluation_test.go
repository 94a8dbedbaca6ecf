package engine

import (
	"testing"

	"github.com/corvidchess/corvid/common"
)

func mirrorBitboard(bb common.Bitboard) common.Bitboard {
	var out common.Bitboard
	for bb.Any() {
		var sq common.Square
		sq, bb = bb.PopLSB()
		out = out.Set(common.Square(63 - int(sq)))
	}
	return out
}

// mirrorBoard swaps White and Black, point-mirroring every square, so that
// evaluating the mirror from the (also swapped) side to move must produce
// the identical score: a symmetric evaluation function has no built-in
// preference for either color.
func mirrorBoard(b common.Board) common.Board {
	var m common.Board
	for piece := common.Pawn; piece <= common.King; piece++ {
		white := b.PieceBB(piece, common.White)
		black := b.PieceBB(piece, common.Black)
		m.Bitboards[common.MakePieceWithColor(piece, common.White)] = mirrorBitboard(black)
		m.Bitboards[common.MakePieceWithColor(piece, common.Black)] = mirrorBitboard(white)
	}

	m.SideToMove = b.SideToMove.Opposite()
	if b.EnPassantSquare != common.Invalid {
		m.EnPassantSquare = common.Square(63 - int(b.EnPassantSquare))
	} else {
		m.EnPassantSquare = common.Invalid
	}

	var cr common.CastlingRights
	if b.CastlingRights&common.WhiteShort != 0 {
		cr |= common.BlackShort
	}
	if b.CastlingRights&common.WhiteLong != 0 {
		cr |= common.BlackLong
	}
	if b.CastlingRights&common.BlackShort != 0 {
		cr |= common.WhiteShort
	}
	if b.CastlingRights&common.BlackLong != 0 {
		cr |= common.WhiteLong
	}
	m.CastlingRights = cr
	m.HalfmoveClock = b.HalfmoveClock
	m.FullmoveNumber = b.FullmoveNumber

	var white, black common.Bitboard
	for piece := common.Pawn; piece <= common.King; piece++ {
		white |= m.Bitboards[common.MakePieceWithColor(piece, common.White)]
		black |= m.Bitboards[common.MakePieceWithColor(piece, common.Black)]
	}
	m.Occupancies[common.White] = white
	m.Occupancies[common.Black] = black
	m.Occupancies[common.WhiteAndBlack] = white | black

	return m
}

func TestEvaluateIsColorSymmetric(t *testing.T) {
	fens := []string{
		common.InitialPositionFEN,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
		"rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8",
	}
	for _, fen := range fens {
		b := mustParse(t, fen)
		mirrored := mirrorBoard(b)

		score1 := Evaluate(&b)
		score2 := Evaluate(&mirrored)
		if score1 != score2 {
			t.Errorf("%s: Evaluate(b)=%d, Evaluate(mirror(b))=%d, want equal", fen, score1, score2)
		}
	}
}

func TestEvaluateMaterialDominates(t *testing.T) {
	up := mustParse(t, "4k3/8/8/8/8/8/8/RN2K3 w - - 0 1")
	down := mustParse(t, "4k3/8/8/8/8/8/8/4K3 w - - 0 1")
	if Evaluate(&up) <= Evaluate(&down) {
		t.Errorf("a rook and knight up should evaluate higher than bare kings")
	}
}
