package engine

import (
	"fmt"
	"io"
	"sort"

	"github.com/corvidchess/corvid/common"
)

// valueInfinity stands in for INT_MAX: comfortably above any evaluation or
// mate score, so mate scores can be offset by ply without risking overflow.
const valueInfinity = 1 << 30

const (
	nmpReduction = 2 // null-move pruning: recurse at depth-1-nmpReduction
	lmrReduction = 2 // late-move reduction: probe at depth-lmrReduction
)

// Search owns the scratch state a single call to Search shares across the
// whole tree: killer moves, history scores, per-ply PV lines and the node
// counter. Keeping it on a value rather than package-level globals lets
// multiple independent searches (e.g. in tests) run without interfering.
type Search struct {
	killers *common.KillerTable
	history *common.HistoryTable
	pvTable [common.MaxPly]PVLine
	nodes   int64

	Out io.Writer // where "info ..." lines are written; defaults to io.Discard if nil
}

// NewSearch returns a Search with freshly cleared scratch tables.
func NewSearch() *Search {
	return &Search{
		killers: common.NewKillerTable(),
		history: common.NewHistoryTable(),
	}
}

// reset clears node counter, killers, history and all per-ply PV lines
// before a fresh call to Search begins.
func (s *Search) reset() {
	s.killers.Reset()
	s.history.Reset()
	s.nodes = 0
	for i := range s.pvTable {
		s.pvTable[i].Clear()
	}
}

// Result is what a completed iterative-deepening pass returns.
type Result struct {
	Score int
	Nodes int64
	PV    PVLine
}

// Search runs iterative deepening on board from depth 1 to maxDepth,
// emitting an "info depth D score cp S nodes N pv ..." line after every
// iteration, and returns the outcome of the deepest completed one. depth 0
// is legal: iteration 0 falls straight through to quiescence at the root.
func (s *Search) Search(board common.Board, maxDepth int) Result {
	s.reset()

	var result Result
	start := 1
	if maxDepth == 0 {
		start = 0
	}
	for depth := start; depth <= maxDepth; depth++ {
		score := s.negamax(-valueInfinity, valueInfinity, board, depth, 0)
		result = Result{Score: score, Nodes: s.nodes, PV: s.pvTable[0]}
		s.emitInfo(depth, score)
	}
	return result
}

func (s *Search) emitInfo(depth, score int) {
	if s.Out == nil {
		return
	}
	fmt.Fprintf(s.Out, "info depth %d score cp %d nodes %d pv %s\n",
		depth, score, s.nodes, s.pvTable[0].String())
}

// BestMove returns the head of the last completed iteration's principal
// variation, or common.NoMove if the position has no legal moves.
func (r Result) BestMove() common.Move {
	if r.PV.Length == 0 {
		return common.NoMove
	}
	return r.PV.Moves[0]
}

func canReduce(index int, m common.Move, isCheck bool, depth, extension int) bool {
	return index > 3 && !m.IsCapture && m.PromotedPiece == common.InvalidPieceBase &&
		!isCheck && depth > 2 && extension == 0
}

type scoredMove struct {
	move  common.Move
	score int
}

// orderMoves sorts ml in place, descending by Move.CalculateScore. When
// hasPV is set, a move equal to pvMove is treated as the principal-variation
// move for ordering purposes and searched first.
func orderMoves(ml []common.Move, pvMove common.Move, hasPV bool, ply int, side common.Side, killers *common.KillerTable, history *common.HistoryTable) {
	k1, k2 := killers.First(ply), killers.Second(ply)
	scored := make([]scoredMove, len(ml))
	for i, m := range ml {
		isPV := hasPV && m == pvMove
		scored[i] = scoredMove{m, m.CalculateScore(ply, isPV, side, k1, k2, history)}
	}
	sort.SliceStable(scored, func(i, j int) bool { return scored[i].score > scored[j].score })
	for i, sm := range scored {
		ml[i] = sm.move
	}
}

// negamax is the core alpha-beta recursion: null-move pruning, late-move
// reduction probes, principal-variation search re-search, and killer/history
// move-ordering updates on a beta cutoff or alpha raise. The output PV line
// is not threaded as an explicit parameter: since every recursive call
// already knows its ply, its own output line is simply s.pvTable[ply].
func (s *Search) negamax(alpha, beta int, board common.Board, depth, ply int) int {
	pvOut := &s.pvTable[ply]

	if depth <= 0 {
		pvOut.Clear()
		return s.quiescence(alpha, beta, board, ply)
	}
	if ply >= common.MaxPly {
		return Evaluate(&board)
	}

	s.nodes++
	isCheck := board.IsCheck()
	extension := 0
	if isCheck {
		extension = 1
	}

	// Snapshot whatever line was left in this ply's slot (from the previous
	// iterative-deepening pass, or an earlier sibling's search) before
	// clearing it: null-move gating and move ordering both want to know
	// whether this node sits on a previously discovered principal
	// variation, but the slot itself must start empty for this visit so a
	// stale grandchild line can never be copied into a fresh PV.
	wasOnPV := pvOut.Length > 0
	var pvMove common.Move
	if wasOnPV {
		pvMove = pvOut.Moves[0]
	}

	if !isCheck && depth >= nmpReduction+1 && ply != 0 && !wasOnPV {
		nullBoard := board.MakeNullMove()
		score := -s.negamax(-beta, -beta+1, nullBoard, depth-1-nmpReduction, ply+1)
		if score >= beta {
			return beta
		}
	}

	pvOut.Clear()

	moves := board.GenerateMoves()
	orderMoves(moves, pvMove, wasOnPV, ply, board.SideToMove, s.killers, s.history)

	movesSearched := 0
	hasLegal := false

	for i, move := range moves {
		child, ok := board.MakeMove(move)
		if !ok {
			continue
		}
		hasLegal = true

		var score int
		if movesSearched == 0 {
			score = -s.negamax(-beta, -alpha, child, depth-1+extension, ply+1)
		} else {
			if canReduce(i, move, isCheck, depth, extension) {
				score = -s.negamax(-alpha-1, -alpha, child, depth-lmrReduction+extension, ply+1)
			} else {
				score = alpha + 1
			}
			if score > alpha {
				score = -s.negamax(-alpha-1, -alpha, child, depth-1+extension, ply+1)
				if score > alpha && score < beta {
					score = -s.negamax(-beta, -alpha, child, depth-1+extension, ply+1)
				}
			}
		}
		movesSearched++

		if score >= beta {
			if !move.IsCapture {
				s.killers.Update(ply, move)
			}
			return beta
		}
		if score > alpha {
			alpha = score
			if !move.IsCapture {
				s.history.Add(board.SideToMove, move.Piece, move.Target, depth)
			}
			pvOut.Update(move, &s.pvTable[ply+1])
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

// quiescence extends the search at leaves along capture lines only, to
// avoid misjudging positions with a hanging piece on the board.
func (s *Search) quiescence(alpha, beta int, board common.Board, ply int) int {
	eval := Evaluate(&board)
	if ply >= common.MaxPly {
		return eval
	}
	if eval >= beta {
		return beta
	}
	if eval > alpha {
		alpha = eval
	}

	moves := board.GenerateMoves()
	orderMoves(moves, common.NoMove, false, ply, board.SideToMove, s.killers, s.history)

	for _, move := range moves {
		if !move.IsCapture {
			continue
		}
		child, ok := board.MakeMove(move)
		if !ok {
			continue
		}
		score := -s.quiescence(-beta, -alpha, child, ply+1)
		if score >= beta {
			return beta
		}
		if score > alpha {
			alpha = score
		}
	}
	return alpha
}
