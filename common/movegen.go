package common

// pawnPlan holds the side-dependent constants pawn move generation needs.
type pawnPlan struct {
	forwardOffset int
	startRow      int // rank row pawns begin on (allows a double push)
	promotionRow  int // rank row pawns sit on the move before promoting
}

func pawnPlanFor(side Side) pawnPlan {
	if side == White {
		return pawnPlan{forwardOffset: -8, startRow: Rank2Row, promotionRow: Rank7Row}
	}
	return pawnPlan{forwardOffset: 8, startRow: Rank7Row, promotionRow: Rank2Row}
}

var promotionPieces = [4]Piece{Queen, Rook, Bishop, Knight}

func appendPawnMoves(ml []Move, m Move, promotionRank bool) []Move {
	if !promotionRank {
		return append(ml, m)
	}
	for _, p := range promotionPieces {
		promoted := m
		promoted.PromotedPiece = p
		ml = append(ml, promoted)
	}
	return ml
}

func (b *Board) generatePawnMoves(ml []Move, side Side) []Move {
	plan := pawnPlanFor(side)
	opp := side.Opposite()
	allOcc := b.Occupancies[WhiteAndBlack]
	oppOcc := b.Occupancies[opp]

	pawns := b.PieceBB(Pawn, side)
	for pawns.Any() {
		var sq Square
		sq, pawns = pawns.PopLSB()

		onPromotionRank := Rank(sq) == plan.promotionRow

		target := sq + Square(plan.forwardOffset)
		if !allOcc.Test(target) {
			ml = appendPawnMoves(ml, Move{Source: sq, Target: target, Piece: Pawn, PromotedPiece: InvalidPieceBase}, onPromotionRank)

			if !onPromotionRank && Rank(sq) == plan.startRow {
				doubleTarget := sq + Square(2*plan.forwardOffset)
				if !allOcc.Test(doubleTarget) {
					ml = append(ml, Move{
						Source: sq, Target: doubleTarget, Piece: Pawn,
						PromotedPiece: InvalidPieceBase, IsPawnDoublePush: true,
					})
				}
			}
		}

		captures := PawnAttacks(sq, side) & oppOcc
		for captures.Any() {
			var to Square
			to, captures = captures.PopLSB()
			captured := b.pieceTypeOn(to, opp)
			ml = appendPawnMoves(ml, Move{
				Source: sq, Target: to, Piece: Pawn, PromotedPiece: InvalidPieceBase,
				IsCapture: true, CapturedPieceBase: captured,
			}, onPromotionRank)
		}

		if b.EnPassantSquare != Invalid && PawnAttacks(sq, side).Test(b.EnPassantSquare) {
			ml = append(ml, Move{
				Source: sq, Target: b.EnPassantSquare, Piece: Pawn, PromotedPiece: InvalidPieceBase,
				IsCapture: true, CapturedPieceBase: Pawn, IsEnPassant: true,
			})
		}
	}
	return ml
}

func (b *Board) generateStepMoves(ml []Move, side Side, piece Piece, attacksFrom func(Square) Bitboard) []Move {
	opp := side.Opposite()
	ownOcc := b.Occupancies[side]
	oppOcc := b.Occupancies[opp]

	pieces := b.PieceBB(piece, side)
	for pieces.Any() {
		var from Square
		from, pieces = pieces.PopLSB()
		targets := attacksFrom(from) &^ ownOcc
		for targets.Any() {
			var to Square
			to, targets = targets.PopLSB()
			mv := Move{Source: from, Target: to, Piece: piece, PromotedPiece: InvalidPieceBase}
			if oppOcc.Test(to) {
				mv.IsCapture = true
				mv.CapturedPieceBase = b.pieceTypeOn(to, opp)
			}
			ml = append(ml, mv)
		}
	}
	return ml
}

func (b *Board) generateSliderMoves(ml []Move, side Side, piece Piece, attacksFrom func(Square, Bitboard) Bitboard) []Move {
	opp := side.Opposite()
	ownOcc := b.Occupancies[side]
	oppOcc := b.Occupancies[opp]
	allOcc := b.Occupancies[WhiteAndBlack]

	pieces := b.PieceBB(piece, side)
	for pieces.Any() {
		var from Square
		from, pieces = pieces.PopLSB()
		targets := attacksFrom(from, allOcc) &^ ownOcc
		for targets.Any() {
			var to Square
			to, targets = targets.PopLSB()
			mv := Move{Source: from, Target: to, Piece: piece, PromotedPiece: InvalidPieceBase}
			if oppOcc.Test(to) {
				mv.IsCapture = true
				mv.CapturedPieceBase = b.pieceTypeOn(to, opp)
			}
			ml = append(ml, mv)
		}
	}
	return ml
}

var (
	f1g1Mask = SquareBB(SquareF1) | SquareBB(SquareG1)
	b1d1Mask = SquareBB(SquareB1) | SquareBB(SquareC1) | SquareBB(SquareD1)
	f8g8Mask = SquareBB(SquareF8) | SquareBB(SquareG8)
	b8d8Mask = SquareBB(SquareB8) | SquareBB(SquareC8) | SquareBB(SquareD8)
)

func (b *Board) generateCastlingMoves(ml []Move, side Side) []Move {
	allOcc := b.Occupancies[WhiteAndBlack]
	opp := side.Opposite()

	if side == White {
		if b.CastlingRights&WhiteShort != 0 &&
			allOcc&f1g1Mask == 0 &&
			!b.IsSquareAttacked(SquareE1, opp) &&
			!b.IsSquareAttacked(SquareF1, opp) &&
			!b.IsSquareAttacked(SquareG1, opp) {
			ml = append(ml, Move{Source: SquareE1, Target: SquareG1, Piece: King, PromotedPiece: InvalidPieceBase, IsCastling: true})
		}
		if b.CastlingRights&WhiteLong != 0 &&
			allOcc&b1d1Mask == 0 &&
			!b.IsSquareAttacked(SquareE1, opp) &&
			!b.IsSquareAttacked(SquareD1, opp) &&
			!b.IsSquareAttacked(SquareC1, opp) {
			ml = append(ml, Move{Source: SquareE1, Target: SquareC1, Piece: King, PromotedPiece: InvalidPieceBase, IsCastling: true})
		}
	} else {
		if b.CastlingRights&BlackShort != 0 &&
			allOcc&f8g8Mask == 0 &&
			!b.IsSquareAttacked(SquareE8, opp) &&
			!b.IsSquareAttacked(SquareF8, opp) &&
			!b.IsSquareAttacked(SquareG8, opp) {
			ml = append(ml, Move{Source: SquareE8, Target: SquareG8, Piece: King, PromotedPiece: InvalidPieceBase, IsCastling: true})
		}
		if b.CastlingRights&BlackLong != 0 &&
			allOcc&b8d8Mask == 0 &&
			!b.IsSquareAttacked(SquareE8, opp) &&
			!b.IsSquareAttacked(SquareD8, opp) &&
			!b.IsSquareAttacked(SquareC8, opp) {
			ml = append(ml, Move{Source: SquareE8, Target: SquareC8, Piece: King, PromotedPiece: InvalidPieceBase, IsCastling: true})
		}
	}
	return ml
}

// GenerateMoves produces every pseudo-legal move for the side to move: it
// may include moves that leave the mover's own king in check, which
// MakeMove is responsible for rejecting.
func (b *Board) GenerateMoves() []Move {
	ml := make([]Move, 0, MaxMoves)
	side := b.SideToMove

	ml = b.generatePawnMoves(ml, side)
	ml = b.generateStepMoves(ml, side, Knight, KnightAttacksFrom)
	ml = b.generateSliderMoves(ml, side, Bishop, BishopAttacks)
	ml = b.generateSliderMoves(ml, side, Rook, RookAttacks)
	ml = b.generateSliderMoves(ml, side, Queen, QueenAttacks)
	ml = b.generateStepMoves(ml, side, King, KingAttacksFrom)
	ml = b.generateCastlingMoves(ml, side)

	return ml
}

// GenerateLegalMoves filters GenerateMoves through MakeMove, for callers
// (tests, the UCI "moves" resolver) that need only legal moves.
func (b *Board) GenerateLegalMoves() []Move {
	pseudo := b.GenerateMoves()
	legal := make([]Move, 0, len(pseudo))
	for _, m := range pseudo {
		if _, ok := b.MakeMove(m); ok {
			legal = append(legal, m)
		}
	}
	return legal
}
