// Command corvid is a UCI-speaking chess engine.
package main

import (
	"os"

	"github.com/corvidchess/corvid/uci"
)

func main() {
	uci.NewProtocol(os.Stdin, os.Stdout).Run()
}
