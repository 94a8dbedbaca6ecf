package common

import "testing"

func countMovesFrom(ml []Move, from, to Square) int {
	n := 0
	for _, m := range ml {
		if m.Source == from && m.Target == to {
			n++
		}
	}
	return n
}

func TestPawnPromotionProducesFourMoves(t *testing.T) {
	b, err := ParseFEN("8/P7/8/8/8/8/8/4k2K w - - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	ml := b.GenerateMoves()
	a7 := SquareFromFileRank(FileA, Rank7Row)
	a8 := SquareFromFileRank(FileA, Rank8Row)
	if got := countMovesFrom(ml, a7, a8); got != 4 {
		t.Errorf("pawn push to the eighth rank produced %d moves, want 4", got)
	}
	for _, m := range ml {
		if m.Source == a7 && m.Target == a8 && m.PromotedPiece == InvalidPieceBase {
			t.Errorf("found a non-promotion pawn move onto the last rank: %+v", m)
		}
	}
}

func TestPawnCapturePromotionProducesFourMoves(t *testing.T) {
	b, err := ParseFEN("1n6/P7/8/8/8/8/8/4k2K w - - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	ml := b.GenerateMoves()
	a7 := SquareFromFileRank(FileA, Rank7Row)
	b8 := SquareFromFileRank(FileB, Rank8Row)
	if got := countMovesFrom(ml, a7, b8); got != 4 {
		t.Errorf("capture-promotion onto b8 produced %d moves, want 4", got)
	}
}

func TestEnPassantOnlyWhenSquareSet(t *testing.T) {
	withEP, err := ParseFEN("4k3/8/8/pP6/8/8/8/4K3 w - a6 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	b5 := SquareFromFileRank(FileB, Rank5Row)
	a6 := SquareFromFileRank(FileA, Rank6Row)
	found := false
	for _, m := range withEP.GenerateMoves() {
		if m.Source == b5 && m.Target == a6 {
			found = true
			if !m.IsEnPassant {
				t.Errorf("b5xa6 should be flagged en passant")
			}
		}
	}
	if !found {
		t.Errorf("expected an en passant capture to be generated")
	}

	withoutEP, err := ParseFEN("4k3/8/8/pP6/8/8/8/4K3 w - - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	for _, m := range withoutEP.GenerateMoves() {
		if m.Source == b5 && m.Target == a6 {
			t.Errorf("en passant should not be generated without an en-passant square")
		}
	}
}

func TestCastlingRequiresEmptyAndUnattackedSquares(t *testing.T) {
	clear, err := ParseFEN("4k3/8/8/8/8/8/8/R3K2R w KQ - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	hasCastle := func(ml []Move, target Square) bool {
		for _, m := range ml {
			if m.Source == SquareE1 && m.Target == target && m.IsCastling {
				return true
			}
		}
		return false
	}
	ml := clear.GenerateMoves()
	if !hasCastle(ml, SquareG1) || !hasCastle(ml, SquareC1) {
		t.Errorf("expected both castling moves on an open board")
	}

	blocked, err := ParseFEN("4k3/8/8/8/8/8/8/R2BK2R w KQ - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	if hasCastle(blocked.GenerateMoves(), SquareC1) {
		t.Errorf("queenside castling should be blocked by an occupied intervening square")
	}

	// A rook on f2 attacks f1 (the kingside pass-through square) without
	// attacking e1 itself, isolating the pass-through check from the
	// king's-own-square check.
	throughCheck, err := ParseFEN("4k3/8/8/8/8/8/5r2/R3K2R w KQ - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	if hasCastle(throughCheck.GenerateMoves(), SquareG1) {
		t.Errorf("kingside castling should be illegal while passing through an attacked square")
	}
}

func TestGenerateLegalMovesFiltersSelfCheck(t *testing.T) {
	// A bishop on a5 pins the white pawn on d2 to the king on e1 along the
	// a5-e1 diagonal: any forward push moves the pawn off that diagonal
	// and exposes the king, so it must not appear among legal moves.
	b, err := ParseFEN("4k3/8/8/b7/8/8/3P4/4K3 w - - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	legal := b.GenerateLegalMoves()
	d2 := SquareFromFileRank(FileD, Rank2Row)
	for _, m := range legal {
		if m.Source == d2 {
			t.Errorf("pinned pawn move %v should have been filtered as illegal", m)
		}
	}
}
