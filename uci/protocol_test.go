package uci

import (
	"bytes"
	"strings"
	"testing"
)

func runLines(t *testing.T, lines ...string) string {
	t.Helper()
	var out bytes.Buffer
	p := NewProtocol(strings.NewReader(strings.Join(lines, "\n")+"\n"), &out)
	p.Run()
	return out.String()
}

func TestUciHandshake(t *testing.T) {
	out := runLines(t, "uci", "quit")
	if !strings.Contains(out, "id name corvid") {
		t.Errorf("expected an id name line, got %q", out)
	}
	if !strings.Contains(out, "uciok") {
		t.Errorf("expected uciok, got %q", out)
	}
}

func TestIsReady(t *testing.T) {
	out := runLines(t, "isready", "quit")
	if strings.TrimSpace(out) != "readyok" {
		t.Errorf("got %q, want readyok", out)
	}
}

func TestPositionAndGoProducesBestMove(t *testing.T) {
	out := runLines(t, "position startpos moves e2e4 e7e5", "go depth 1", "quit")
	if !strings.Contains(out, "bestmove ") {
		t.Errorf("expected a bestmove line, got %q", out)
	}
}

func TestPositionRejectsGarbageMoveList(t *testing.T) {
	// An illegal move in the list must leave the position unchanged rather
	// than panicking or applying a partial sequence.
	out := runLines(t, "position startpos moves e2e5", "go depth 1", "quit")
	if !strings.Contains(out, "bestmove ") {
		t.Errorf("expected search to still recover a bestmove, got %q", out)
	}
}

func TestUnknownCommandIsIgnored(t *testing.T) {
	out := runLines(t, "notacommand", "isready", "quit")
	if !strings.Contains(out, "readyok") {
		t.Errorf("an unrecognized token should not stop the driver from handling later commands, got %q", out)
	}
}
