package engine

import (
	"testing"

	"github.com/corvidchess/corvid/common"
)

func mustParse(t *testing.T, fen string) common.Board {
	t.Helper()
	b, err := common.ParseFEN(fen)
	if err != nil {
		t.Fatalf("ParseFEN(%q): %v", fen, err)
	}
	return b
}

func TestSearchFindsMateInOne(t *testing.T) {
	// King+rook ladder mate: Rh1-h8 checkmates the black king on a8.
	board := mustParse(t, "k7/8/K7/8/8/8/8/7R w - - 0 1")
	s := NewSearch()
	result := s.Search(board, 2)

	if result.Score != valueInfinity-1 {
		t.Errorf("Score = %d, want %d", result.Score, valueInfinity-1)
	}
	if got := result.BestMove().String(); got != "h1h8" {
		t.Errorf("BestMove() = %s, want h1h8", got)
	}
}

func TestSearchStalemateScoresZero(t *testing.T) {
	board := mustParse(t, "7k/5K2/6Q1/8/8/8/8/8 b - - 0 1")
	if len(board.GenerateLegalMoves()) != 0 {
		t.Fatalf("test position is not actually stalemate")
	}
	if board.IsCheck() {
		t.Fatalf("test position has the side to move in check, not stalemate")
	}

	s := NewSearch()
	result := s.Search(board, 2)
	if result.Score != 0 {
		t.Errorf("Score = %d, want 0", result.Score)
	}
}

func TestSearchDepthZeroFallsThroughToQuiescence(t *testing.T) {
	board := common.NewBoard()
	s := NewSearch()
	result := s.Search(board, 0)
	if result.PV.Length != 0 {
		t.Errorf("depth-0 search should not populate a PV move, got %v", result.PV)
	}
	if result.Score != Evaluate(&board) {
		t.Errorf("depth-0 search from a quiet position should equal the stand-pat eval: got %d, want %d", result.Score, Evaluate(&board))
	}
}

// referenceNegamax is a plain alpha-beta search with no null-move pruning,
// no late-move reduction, no principal-variation search, and no
// killer/history move ordering: only capture-first (MVV-LVA) ordering via
// Move.CalculateScore. It shares Evaluate and quiescence with the full
// search, so any score difference at equal depth must come from the pruning
// and ordering heuristics under test: a correct search must find the same
// score regardless of which pruning and ordering heuristics it applies.
func referenceNegamax(s *Search, alpha, beta int, board common.Board, depth, ply int) int {
	if depth <= 0 {
		return s.quiescence(alpha, beta, board, ply)
	}
	if ply >= common.MaxPly {
		return Evaluate(&board)
	}

	isCheck := board.IsCheck()
	extension := 0
	if isCheck {
		extension = 1
	}

	moves := board.GenerateMoves()
	orderMoves(moves, common.NoMove, false, ply, board.SideToMove, s.killers, s.history)

	hasLegal := false
	for _, move := range moves {
		child, ok := board.MakeMove(move)
		if !ok {
			continue
		}
		hasLegal = true
		score := -referenceNegamax(s, -beta, -alpha, child, depth-1+extension, ply+1)
		if score >= beta {
			return beta
		}
		if score > alpha {
			alpha = score
		}
	}

	if !hasLegal {
		if isCheck {
			return -valueInfinity + ply
		}
		return 0
	}
	return alpha
}

func TestSearchScoreMatchesUnprunedReference(t *testing.T) {
	positions := []string{
		common.InitialPositionFEN,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
	}
	const depth = 3
	for _, fen := range positions {
		board := mustParse(t, fen)

		full := NewSearch()
		fullScore := full.negamax(-valueInfinity, valueInfinity, board, depth, 0)

		ref := NewSearch()
		refScore := referenceNegamax(ref, -valueInfinity, valueInfinity, board, depth, 0)

		if fullScore != refScore {
			t.Errorf("%s: full-search score %d != unpruned reference score %d", fen, fullScore, refScore)
		}
	}
}
