package common

// Move records a single ply of pseudo-legal chess move.
type Move struct {
	Source            Square
	Target            Square
	Piece             Piece
	PromotedPiece     Piece // InvalidPieceBase when there is no promotion
	CapturedPieceBase Piece // meaningful only when IsCapture is true
	IsCapture         bool
	IsPawnDoublePush  bool
	IsEnPassant       bool
	IsCastling        bool
}

// InvalidPieceBase marks the absence of a promotion piece. Piece itself has
// no natural zero-value sentinel (Pawn is 0), so promotions use this
// distinct value the same way PieceWithColor uses InvalidPiece.
const InvalidPieceBase Piece = -1

// NoMove is the sentinel for "no move available": both squares are Invalid,
// so it differs from the zero Move (a8a8).
var NoMove = Move{Source: Invalid, Target: Invalid, PromotedPiece: InvalidPieceBase}

func (m Move) IsNone() bool {
	return m.Source == Invalid && m.Target == Invalid
}

var promotionLetters = map[Piece]byte{
	Knight: 'n',
	Bishop: 'b',
	Rook:   'r',
	Queen:  'q',
}

// String renders the move in UCI long-algebraic form, e.g. "e2e4", "e7e8q".
func (m Move) String() string {
	if m.IsNone() {
		return "0000"
	}
	s := SquareName(m.Source) + SquareName(m.Target)
	if m.PromotedPiece != InvalidPieceBase {
		s += string(promotionLetters[m.PromotedPiece])
	}
	return s
}

// Equal compares moves by their observable fields.
func (m Move) Equal(other Move) bool {
	return m == other
}

const (
	scorePV        = 2000
	scoreCapture   = 1000
	scoreKiller1   = 500
	scoreKiller2   = 400
	scorePromotion = 300
	scoreCastling  = 200
)

// CalculateScore returns the move-ordering key: PV moves first, then
// captures by MVV-LVA, then killers/history for quiet moves, with a flat
// bonus for promotions and castling layered on top (a promoting capture,
// for instance, scores as both).
func (m Move) CalculateScore(ply int, isPV bool, side Side, killer1, killer2 Move, history *HistoryTable) int {
	var s int
	if isPV {
		s += scorePV
	}
	if m.IsCapture {
		coloredIndex := int(MakePieceWithColor(m.Piece, side))
		s += scoreCapture + 10*int(m.CapturedPieceBase) - (coloredIndex % NumPieceTypes)
	} else if m == killer1 {
		s += scoreKiller1
	} else if m == killer2 {
		s += scoreKiller2
	} else {
		s += history.Score(side, m.Piece, m.Target)
	}
	if m.PromotedPiece != InvalidPieceBase {
		s += scorePromotion + int(MakePieceWithColor(m.PromotedPiece, side))
	}
	if m.IsCastling {
		s += scoreCastling
	}
	return s
}
