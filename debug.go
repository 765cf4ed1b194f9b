package armature

import (
	"fmt"
	"strings"
)

// Dump renders the undo and redo histories, oldest first, one command per
// line. A '*' marks the command after which the history is clean and '>' marks
// the next command Redo would apply:
//
//	Undo Stack: 2+1 commands:
//	* add animation
//	  change
//	 >rename part
func (s *Stack) Dump() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Undo Stack: %d+%d commands:\n", len(s.undo), len(s.redo))
	mark := func(depth int) byte {
		if s.clean == depth+1 {
			return '*'
		}
		return ' '
	}
	for i, e := range s.undo {
		fmt.Fprintf(&b, "%c %s\n", mark(i), e.cmd.Text())
	}
	for i := len(s.redo) - 1; i >= 0; i-- {
		cursor := byte(' ')
		if i == len(s.redo)-1 {
			cursor = '>'
		}
		depth := len(s.undo) + len(s.redo) - 1 - i
		fmt.Fprintf(&b, "%c%c%s\n", mark(depth), cursor, s.redo[i].Text())
	}
	return b.String()
}

// debugCheckTrack panics if a track is out of order or holds duplicate frames.
// Tests call it after every mutation.
func debugCheckTrack(t *Track) {
	for i := 1; i < len(t.keys); i++ {
		if t.keys[i-1].Frame >= t.keys[i].Frame {
			panic(fmt.Sprintf("armature debug: track unsorted at %d (%d >= %d)",
				i, t.keys[i-1].Frame, t.keys[i].Frame))
		}
	}
}
