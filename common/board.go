package common

import (
	"fmt"
	"strconv"
	"strings"
)

// InitialPositionFEN is the standard starting position.
const InitialPositionFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// MaxMoves bounds the pseudo-legal move list for a single position.
const MaxMoves = 256

// Board is the full mutable chess position: twelve piece bitboards, the
// three derived occupancies, and the auxiliary state needed to make and
// unmake moves. Every public mutation leaves the piece bitboards disjoint
// and the occupancies in sync with them.
type Board struct {
	Bitboards       [NumPieceWithColor]Bitboard
	Occupancies     [3]Bitboard
	SideToMove      Side
	CastlingRights  CastlingRights
	EnPassantSquare Square
	HalfmoveClock   int
	FullmoveNumber  int
}

// NewBoard returns the standard starting position.
func NewBoard() Board {
	b, err := ParseFEN(InitialPositionFEN)
	if err != nil {
		panic(err)
	}
	return b
}

// PieceBB returns the bitboard for one colored piece type.
func (b *Board) PieceBB(piece Piece, side Side) Bitboard {
	return b.Bitboards[MakePieceWithColor(piece, side)]
}

// PieceAt returns the colored piece occupying sq, or InvalidPiece if empty.
func (b *Board) PieceAt(sq Square) PieceWithColor {
	for pc := PieceWithColor(0); pc < NumPieceWithColor; pc++ {
		if b.Bitboards[pc].Test(sq) {
			return pc
		}
	}
	return InvalidPiece
}

func (b *Board) pieceTypeOn(sq Square, side Side) Piece {
	base := int(side) * NumPieceTypes
	for i := 0; i < NumPieceTypes; i++ {
		if b.Bitboards[base+i].Test(sq) {
			return Piece(i)
		}
	}
	return InvalidPieceBase
}

func (b *Board) recomputeOccupancies() {
	var white, black Bitboard
	for i := 0; i < NumPieceTypes; i++ {
		white |= b.Bitboards[i]
	}
	for i := NumPieceTypes; i < NumPieceWithColor; i++ {
		black |= b.Bitboards[i]
	}
	b.Occupancies[White] = white
	b.Occupancies[Black] = black
	b.Occupancies[WhiteAndBlack] = white | black
}

// IsSquareAttacked reports whether any piece of side `by` attacks sq. It
// works by placing each hypothetical attacker type on sq and intersecting
// its attack set with the real pieces of `by`.
func (b *Board) IsSquareAttacked(sq Square, by Side) bool {
	occ := b.Occupancies[WhiteAndBlack]

	if PawnAttacks(sq, by.Opposite())&b.PieceBB(Pawn, by) != 0 {
		return true
	}
	if KnightAttacksFrom(sq)&b.PieceBB(Knight, by) != 0 {
		return true
	}
	if KingAttacksFrom(sq)&b.PieceBB(King, by) != 0 {
		return true
	}
	bishopsQueens := b.PieceBB(Bishop, by) | b.PieceBB(Queen, by)
	if BishopAttacks(sq, occ)&bishopsQueens != 0 {
		return true
	}
	rooksQueens := b.PieceBB(Rook, by) | b.PieceBB(Queen, by)
	if RookAttacks(sq, occ)&rooksQueens != 0 {
		return true
	}
	return false
}

// IsCheck reports whether the side to move's king is currently attacked.
func (b *Board) IsCheck() bool {
	kingSq := b.PieceBB(King, b.SideToMove).LSBIndex()
	return b.IsSquareAttacked(kingSq, b.SideToMove.Opposite())
}

// castlingRightsMask[sq] is AND-ed into CastlingRights on both the source
// and target square of every move: moving the king or a corner rook, or
// capturing on a corner rook square, permanently clears the relevant
// right(s).
var castlingRightsMask [64]CastlingRights

func init() {
	const all = WhiteShort | WhiteLong | BlackShort | BlackLong
	for sq := range castlingRightsMask {
		castlingRightsMask[sq] = all
	}
	castlingRightsMask[SquareE1] &^= WhiteShort | WhiteLong
	castlingRightsMask[SquareA1] &^= WhiteLong
	castlingRightsMask[SquareH1] &^= WhiteShort
	castlingRightsMask[SquareE8] &^= BlackShort | BlackLong
	castlingRightsMask[SquareA8] &^= BlackLong
	castlingRightsMask[SquareH8] &^= BlackShort
}

func moveRookForCastle(b *Board, side Side, from, to Square) {
	idx := MakePieceWithColor(Rook, side)
	b.Bitboards[idx] = b.Bitboards[idx].Clear(from).Set(to)
}

// MakeMove applies m and returns the resulting board and true, or leaves
// the receiver's value untouched and returns (b, false) if m would leave
// the mover's king in check. Go's value semantics give clone-and-rollback
// behavior for free: the caller's own Board is never mutated by a failed
// MakeMove.
func (b Board) MakeMove(m Move) (Board, bool) {
	result := b
	side := b.SideToMove
	opp := side.Opposite()

	movingIdx := MakePieceWithColor(m.Piece, side)
	result.Bitboards[movingIdx] = result.Bitboards[movingIdx].Clear(m.Source).Set(m.Target)

	if m.IsCapture {
		capIdx := MakePieceWithColor(m.CapturedPieceBase, opp)
		result.Bitboards[capIdx] = result.Bitboards[capIdx].Clear(m.Target)
	}

	if m.PromotedPiece != InvalidPieceBase {
		pawnIdx := MakePieceWithColor(Pawn, side)
		result.Bitboards[pawnIdx] = result.Bitboards[pawnIdx].Clear(m.Target)
		promotedIdx := MakePieceWithColor(m.PromotedPiece, side)
		result.Bitboards[promotedIdx] = result.Bitboards[promotedIdx].Set(m.Target)
	}

	if m.IsEnPassant {
		var capturedSq Square
		if side == White {
			capturedSq = m.Target + 8
		} else {
			capturedSq = m.Target - 8
		}
		capIdx := MakePieceWithColor(Pawn, opp)
		result.Bitboards[capIdx] = result.Bitboards[capIdx].Clear(capturedSq)
	}

	result.EnPassantSquare = Invalid
	if m.IsPawnDoublePush {
		if side == White {
			result.EnPassantSquare = m.Target + 8
		} else {
			result.EnPassantSquare = m.Target - 8
		}
	}

	if m.IsCastling {
		switch m.Target {
		case SquareG1:
			moveRookForCastle(&result, White, SquareH1, SquareF1)
		case SquareC1:
			moveRookForCastle(&result, White, SquareA1, SquareD1)
		case SquareG8:
			moveRookForCastle(&result, Black, SquareH8, SquareF8)
		case SquareC8:
			moveRookForCastle(&result, Black, SquareA8, SquareD8)
		}
	}

	result.CastlingRights &= castlingRightsMask[m.Source] & castlingRightsMask[m.Target]

	result.recomputeOccupancies()
	result.SideToMove = opp

	kingSq := result.PieceBB(King, side).LSBIndex()
	if result.IsSquareAttacked(kingSq, opp) {
		return b, false
	}
	return result, true
}

// MakeNullMove passes the turn without moving a piece: used only by null-
// move pruning in the search package.
func (b Board) MakeNullMove() Board {
	result := b
	result.SideToMove = b.SideToMove.Opposite()
	result.EnPassantSquare = Invalid
	return result
}

// ---- FEN ----

func pieceFromLetter(ch byte) (Piece, Side, bool) {
	side := White
	lower := ch
	if ch >= 'a' && ch <= 'z' {
		side = Black
	} else {
		lower = ch + ('a' - 'A')
	}
	for i, letter := range pieceLetters {
		if letter == lower {
			return Piece(i), side, true
		}
	}
	return 0, White, false
}

// ParseFEN parses a standard six-field FEN string. Malformed input is not
// guaranteed to produce a useful error (the UCI driver is a trusted
// producer), but well-formed FENs round-trip exactly.
func ParseFEN(fen string) (Board, error) {
	fields := strings.Fields(fen)
	if len(fields) < 4 {
		return Board{}, fmt.Errorf("common: invalid fen %q", fen)
	}

	var b Board
	b.EnPassantSquare = Invalid

	ranks := strings.Split(fields[0], "/")
	if len(ranks) != 8 {
		return Board{}, fmt.Errorf("common: invalid fen ranks %q", fen)
	}
	for rankIdx, rankStr := range ranks {
		file := 0
		for _, ch := range []byte(rankStr) {
			if ch >= '1' && ch <= '8' {
				file += int(ch - '0')
				continue
			}
			piece, side, ok := pieceFromLetter(ch)
			if !ok {
				return Board{}, fmt.Errorf("common: invalid fen piece %q", string(ch))
			}
			sq := SquareFromFileRank(file, rankIdx)
			b.Bitboards[MakePieceWithColor(piece, side)] = b.Bitboards[MakePieceWithColor(piece, side)].Set(sq)
			file++
		}
	}

	switch fields[1] {
	case "w":
		b.SideToMove = White
	case "b":
		b.SideToMove = Black
	default:
		return Board{}, fmt.Errorf("common: invalid fen side %q", fields[1])
	}

	if fields[2] != "-" {
		for _, ch := range []byte(fields[2]) {
			switch ch {
			case 'K':
				b.CastlingRights |= WhiteShort
			case 'Q':
				b.CastlingRights |= WhiteLong
			case 'k':
				b.CastlingRights |= BlackShort
			case 'q':
				b.CastlingRights |= BlackLong
			}
		}
	}

	b.EnPassantSquare = ParseSquare(fields[3])

	b.HalfmoveClock = 0
	b.FullmoveNumber = 1
	if len(fields) > 4 {
		if n, err := strconv.Atoi(fields[4]); err == nil {
			b.HalfmoveClock = n
		}
	}
	if len(fields) > 5 {
		if n, err := strconv.Atoi(fields[5]); err == nil {
			b.FullmoveNumber = n
		}
	}

	b.recomputeOccupancies()
	return b, nil
}

// String serializes the board back to FEN.
func (b *Board) String() string {
	var sb strings.Builder
	for rank := 0; rank < 8; rank++ {
		empty := 0
		for file := 0; file < 8; file++ {
			sq := SquareFromFileRank(file, rank)
			pc := b.PieceAt(sq)
			if pc == InvalidPiece {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			sb.WriteByte(pc.Letter())
		}
		if empty > 0 {
			sb.WriteString(strconv.Itoa(empty))
		}
		if rank != 7 {
			sb.WriteByte('/')
		}
	}

	sb.WriteByte(' ')
	if b.SideToMove == White {
		sb.WriteByte('w')
	} else {
		sb.WriteByte('b')
	}

	sb.WriteByte(' ')
	if b.CastlingRights == 0 {
		sb.WriteByte('-')
	} else {
		if b.CastlingRights&WhiteShort != 0 {
			sb.WriteByte('K')
		}
		if b.CastlingRights&WhiteLong != 0 {
			sb.WriteByte('Q')
		}
		if b.CastlingRights&BlackShort != 0 {
			sb.WriteByte('k')
		}
		if b.CastlingRights&BlackLong != 0 {
			sb.WriteByte('q')
		}
	}

	sb.WriteByte(' ')
	sb.WriteString(SquareName(b.EnPassantSquare))

	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(b.HalfmoveClock))
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(b.FullmoveNumber))

	return sb.String()
}

// Print renders an 8x8 ASCII diagram plus side/castling/ep/clock
// information, for interactive debugging.
func (b *Board) Print() string {
	var sb strings.Builder
	for rank := 0; rank < 8; rank++ {
		sb.WriteString(strconv.Itoa(8 - rank))
		sb.WriteString("   ")
		for file := 0; file < 8; file++ {
			sq := SquareFromFileRank(file, rank)
			pc := b.PieceAt(sq)
			if pc == InvalidPiece {
				sb.WriteByte('.')
			} else {
				sb.WriteByte(pc.Letter())
			}
			sb.WriteByte(' ')
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("\n    a b c d e f g h\n\n")

	if b.SideToMove == White {
		sb.WriteString("Side to move:    white\n")
	} else {
		sb.WriteString("Side to move:    black\n")
	}

	sb.WriteString("Castling rights: ")
	if b.CastlingRights == 0 {
		sb.WriteString("-")
	} else {
		if b.CastlingRights&WhiteShort != 0 {
			sb.WriteByte('K')
		}
		if b.CastlingRights&WhiteLong != 0 {
			sb.WriteByte('Q')
		}
		if b.CastlingRights&BlackShort != 0 {
			sb.WriteByte('k')
		}
		if b.CastlingRights&BlackLong != 0 {
			sb.WriteByte('q')
		}
	}
	sb.WriteByte('\n')

	fmt.Fprintf(&sb, "En passant:      %s\n", SquareName(b.EnPassantSquare))
	fmt.Fprintf(&sb, "Halfmove clock:  %d\n", b.HalfmoveClock)
	fmt.Fprintf(&sb, "Fullmove number: %d\n", b.FullmoveNumber)

	return sb.String()
}
