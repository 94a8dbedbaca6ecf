// Package common holds the bitboard primitives, attack tables, board state
// and move representation shared by the engine and the UCI front end.
//
// Squares are numbered a8=0, b8=1, ..., h8=7, a7=8, ..., h1=63: rank index
// increases going down the board, file index increases going right. This
// matches the layout used throughout the original engine this package was
// redesigned from.
package common

// Square is a board square in [0,63], or Invalid.
type Square int

const Invalid Square = -1

// File and Rank extract the 0-based file (a=0..h=7) and rank (rank8=0..rank1=7)
// of a square under the a8=0 layout.
func File(sq Square) int { return int(sq) % 8 }
func Rank(sq Square) int { return int(sq) / 8 }

// SquareFromFileRank builds a square from a 0-based file/rank pair.
func SquareFromFileRank(file, rank int) Square {
	return Square(rank*8 + file)
}

const (
	FileA = iota
	FileB
	FileC
	FileD
	FileE
	FileF
	FileG
	FileH
)

// Rank8Row (row 0) is the top of the board; Rank1Row (row 7) is the bottom.
const (
	Rank8Row = iota
	Rank7Row
	Rank6Row
	Rank5Row
	Rank4Row
	Rank3Row
	Rank2Row
	Rank1Row
)

// Named squares that the castling and pawn logic refer to directly.
const (
	SquareA8 Square = iota
	SquareB8
	SquareC8
	SquareD8
	SquareE8
	SquareF8
	SquareG8
	SquareH8
	SquareA7
	SquareB7
	SquareC7
	SquareD7
	SquareE7
	SquareF7
	SquareG7
	SquareH7
)

const (
	SquareA2 Square = 48 + iota
	SquareB2
	SquareC2
	SquareD2
	SquareE2
	SquareF2
	SquareG2
	SquareH2
	SquareA1
	SquareB1
	SquareC1
	SquareD1
	SquareE1
	SquareF1
	SquareG1
	SquareH1
)

var squareNames = [64]string{}

func init() {
	for sq := Square(0); sq < 64; sq++ {
		file := byte('a' + File(sq))
		rank := byte('8' - Rank(sq))
		squareNames[sq] = string([]byte{file, rank})
	}
}

// SquareName renders a square in algebraic notation ("e4"), or "-" for Invalid.
func SquareName(sq Square) string {
	if sq == Invalid {
		return "-"
	}
	return squareNames[sq]
}

// ParseSquare parses algebraic notation ("e4") or "-" into a Square.
func ParseSquare(s string) Square {
	if len(s) != 2 {
		return Invalid
	}
	file := int(s[0] - 'a')
	rank := int('8' - s[1])
	if file < 0 || file > 7 || rank < 0 || rank > 7 {
		return Invalid
	}
	return SquareFromFileRank(file, rank)
}

// Side identifies white, black, or the union of both (used to index
// Board.Occupancies).
type Side int

const (
	White Side = iota
	Black
	WhiteAndBlack
)

func (s Side) Opposite() Side {
	if s == White {
		return Black
	}
	return White
}

// Piece is a colorless piece type.
type Piece int

const (
	Pawn Piece = iota
	Knight
	Bishop
	Rook
	Queen
	King
)

const NumPieceTypes = 6

var pieceLetters = [NumPieceTypes]byte{'p', 'n', 'b', 'r', 'q', 'k'}

// PieceWithColor enumerates the twelve colored pieces plus a sentinel.
// WhitePawn..WhiteKing occupy indices 0..5, BlackPawn..BlackKing occupy
// 6..11: engine code relies on this layout, e.g. index%6 recovers the base
// Piece and index/6 recovers the Side.
type PieceWithColor int

const (
	WhitePawn PieceWithColor = iota
	WhiteKnight
	WhiteBishop
	WhiteRook
	WhiteQueen
	WhiteKing
	BlackPawn
	BlackKnight
	BlackBishop
	BlackRook
	BlackQueen
	BlackKing
	InvalidPiece
)

const NumPieceWithColor = 12

// MakePieceWithColor combines a base piece and side into the colored index.
func MakePieceWithColor(piece Piece, side Side) PieceWithColor {
	return PieceWithColor(int(side)*NumPieceTypes + int(piece))
}

// Base returns the colorless piece type of a colored piece.
func (pc PieceWithColor) Base() Piece {
	return Piece(int(pc) % NumPieceTypes)
}

// Side returns the owning side of a colored piece.
func (pc PieceWithColor) Side() Side {
	return Side(int(pc) / NumPieceTypes)
}

func (pc PieceWithColor) Letter() byte {
	letter := pieceLetters[pc.Base()]
	if pc.Side() == White {
		letter -= 'a' - 'A'
	}
	return letter
}

// CastlingRights is a bitset of the four standard castling permissions.
type CastlingRights int

const (
	WhiteShort CastlingRights = 1 << iota
	WhiteLong
	BlackShort
	BlackLong
)

const MaxPly = 256
