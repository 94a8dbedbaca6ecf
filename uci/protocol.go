// Package uci drives the search engine from the Universal Chess Interface
// text protocol: whole lines in on standard input, whole lines out on
// standard output.
package uci

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/corvidchess/corvid/common"
	"github.com/corvidchess/corvid/engine"
)

const (
	engineName   = "corvid"
	engineAuthor = "corvidchess"

	defaultDepth = 6
)

// Protocol holds the state a UCI session needs across commands: the current
// position and the search engine that owns killer/history/PV scratch data.
type Protocol struct {
	board  common.Board
	search *engine.Search

	in  *bufio.Scanner
	out io.Writer
}

// NewProtocol builds a Protocol reading from in and writing to out.
func NewProtocol(in io.Reader, out io.Writer) *Protocol {
	return &Protocol{
		board:  common.NewBoard(),
		search: engine.NewSearch(),
		in:     bufio.NewScanner(in),
		out:    out,
	}
}

// Run reads commands until "quit" or EOF.
func (p *Protocol) Run() {
	for p.in.Scan() {
		line := p.in.Text()
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		if fields[0] == "quit" {
			return
		}
		p.handle(fields[0], fields[1:])
	}
}

func (p *Protocol) println(format string, args ...interface{}) {
	fmt.Fprintf(p.out, format+"\n", args...)
}

func (p *Protocol) handle(command string, args []string) {
	switch command {
	case "uci":
		p.handleUci()
	case "isready":
		p.println("readyok")
	case "ucinewgame":
		p.board = common.NewBoard()
	case "position":
		p.handlePosition(args)
	case "go":
		p.handleGo(args)
	default:
		// Unknown tokens are ignored: the driver only ever talks to a
		// well-behaved machine collaborator, not an interactive user.
	}
}

func (p *Protocol) handleUci() {
	p.println("id name %s", engineName)
	p.println("id author %s", engineAuthor)
	p.println("uciok")
}

func findIndex(fields []string, token string) int {
	for i, f := range fields {
		if f == token {
			return i
		}
	}
	return -1
}

// handlePosition implements "position startpos|fen <FEN> [moves m1 m2 ...]".
// Any parse or legality failure along the way leaves the current position
// untouched rather than applying a partial move sequence.
func (p *Protocol) handlePosition(args []string) {
	if len(args) == 0 {
		return
	}

	movesIdx := findIndex(args, "moves")

	var fen string
	switch args[0] {
	case "startpos":
		fen = common.InitialPositionFEN
	case "fen":
		if movesIdx == -1 {
			fen = strings.Join(args[1:], " ")
		} else {
			fen = strings.Join(args[1:movesIdx], " ")
		}
	default:
		return
	}

	board, err := common.ParseFEN(fen)
	if err != nil {
		return
	}

	if movesIdx >= 0 {
		for _, uciMove := range args[movesIdx+1:] {
			move, ok := resolveMove(board, uciMove)
			if !ok {
				return
			}
			next, ok := board.MakeMove(move)
			if !ok {
				return
			}
			board = next
		}
	}

	p.board = board
}

// resolveMove finds the legal move matching a UCI long-algebraic string
// such as "e2e4" or "e7e8q".
func resolveMove(board common.Board, uciMove string) (common.Move, bool) {
	for _, m := range board.GenerateLegalMoves() {
		if m.String() == uciMove {
			return m, true
		}
	}
	return common.NoMove, false
}

// handleGo implements "go [depth N]", defaulting to depth 6.
func (p *Protocol) handleGo(args []string) {
	depth := defaultDepth
	if i := findIndex(args, "depth"); i >= 0 && i+1 < len(args) {
		if n, err := strconv.Atoi(args[i+1]); err == nil {
			depth = n
		}
	}

	p.search.Out = p.out
	result := p.search.Search(p.board, depth)
	p.println("bestmove %s", result.BestMove().String())
}
