package engine

import "github.com/corvidchess/corvid/common"

// PVLine is a fixed-capacity principal-variation buffer, sized to the
// deepest ply the search can reach.
type PVLine struct {
	Moves  [common.MaxPly]common.Move
	Length int
}

func (pv *PVLine) Clear() {
	pv.Length = 0
}

// Update makes move the head of pv, followed by child's own line. Called
// whenever a move raises alpha, so the line stays the best one found so far.
func (pv *PVLine) Update(move common.Move, child *PVLine) {
	pv.Moves[0] = move
	copy(pv.Moves[1:1+child.Length], child.Moves[:child.Length])
	pv.Length = child.Length + 1
}

func (pv *PVLine) String() string {
	s := ""
	for i := 0; i < pv.Length; i++ {
		if i > 0 {
			s += " "
		}
		s += pv.Moves[i].String()
	}
	return s
}
