package chipcore

// CheatCode is a fixed arrow-key sequence that, entered as consecutive
// resolved move directions, triggers a debug effect. Grounded on spec.md §6.3 and the sequence-detector hooks
// in playerstate.rs.
type CheatCode uint8

const (
	CheatNone CheatCode = iota
	CheatWalkThroughWalls
	CheatGiveAll
	CheatInfiniteTime
	CheatInstantWin
)

// cheatSequences lists each code's trigger sequence, read oldest-first.
var cheatSequences = map[CheatCode][]Compass{
	CheatWalkThroughWalls: {Up, Up, Down, Down, Left, Right, Left, Right},
	CheatGiveAll:          {Up, Down, Up, Down, Left, Left, Right, Right},
	CheatInfiniteTime:     {Left, Right, Left, Right, Up, Up, Down, Down},
	CheatInstantWin:       {Down, Down, Up, Up, Right, Left, Right, Left},
}

// CodeSequenceState tracks recently-entered directions to detect cheat codes
// without requiring a dedicated input mode.
type CodeSequenceState struct {
	history []Compass
}

const codeSequenceMaxLen = 8

// Record appends dir to the rolling history and returns any cheat code whose
// full sequence now matches the trailing history.
func (s *CodeSequenceState) Record(dir Compass) CheatCode {
	s.history = append(s.history, dir)
	if len(s.history) > codeSequenceMaxLen {
		s.history = s.history[len(s.history)-codeSequenceMaxLen:]
	}
	for code, seq := range cheatSequences {
		if sequenceMatches(s.history, seq) {
			s.history = s.history[:0]
			return code
		}
	}
	return CheatNone
}

func sequenceMatches(history, seq []Compass) bool {
	if len(history) < len(seq) {
		return false
	}
	tail := history[len(history)-len(seq):]
	for i, c := range seq {
		if tail[i] != c {
			return false
		}
	}
	return true
}
