package chipcore

// PlayerActivity is the player's current activity/terrain state, grounded on
// original_source/chipcore/src/playerstate.rs's PlayerActivity enum and
// spec.md §3 (the Go names here follow the spec's naming, not the Rust
// crate's slightly different Skating/Sliding/Suction/Win shorthands, since
// spec.md is the authoritative naming source for this port).
type PlayerActivity uint8

const (
	ActivityWalking PlayerActivity = iota
	ActivityPushing
	ActivitySwimming
	ActivityIceSkating
	ActivityIceSliding
	ActivityForceWalking
	ActivityForceSliding
	ActivityDrowned
	ActivityBurned
	ActivityBombed
	ActivityOutOfTime
	ActivityCollided
	ActivityEaten
	ActivityNotOkay
	ActivityLevelComplete
)

var playerActivityNames = map[PlayerActivity]string{
	ActivityWalking:       "Walking",
	ActivityPushing:       "Pushing",
	ActivitySwimming:      "Swimming",
	ActivityIceSkating:    "IceSkating",
	ActivityIceSliding:    "IceSliding",
	ActivityForceWalking:  "ForceWalking",
	ActivityForceSliding:  "ForceSliding",
	ActivityDrowned:       "Drowned",
	ActivityBurned:        "Burned",
	ActivityBombed:        "Bombed",
	ActivityOutOfTime:     "OutOfTime",
	ActivityCollided:      "Collided",
	ActivityEaten:         "Eaten",
	ActivityNotOkay:       "NotOkay",
	ActivityLevelComplete: "LevelComplete",
}

func (a PlayerActivity) String() string {
	if s, ok := playerActivityNames[a]; ok {
		return s
	}
	return "Unknown"
}

// IsGameOver reports whether this activity ends the session; grounded on
// playerstate.rs's is_game_over.
func (a PlayerActivity) IsGameOver() bool {
	switch a {
	case ActivityDrowned, ActivityBurned, ActivityBombed, ActivityOutOfTime,
		ActivityCollided, ActivityEaten, ActivityNotOkay, ActivityLevelComplete:
		return true
	default:
		return false
	}
}

// KeyColor names a lock/key color, used by SwapKeys and key-ring bookkeeping.
type KeyColor uint8

const (
	KeyBlue KeyColor = iota
	KeyRed
	KeyGreen
	KeyYellow
)

// PlayerState tracks the player's keys, boots, chip count, and activity
// across ticks. Grounded on playerstate.rs's PlayerState struct.
type PlayerState struct {
	Keys           map[KeyColor]int // green/yellow keys are boolean in practice but counted for parity with blue/red
	Flippers       bool
	FireBoots      bool
	IceSkates      bool
	SuctionBoots   bool
	ChipsHeld      int
	ChipsRequired  int
	Activity       PlayerActivity
	InputBuf       InputBuffer
	lastCompassSeq []Compass // last two resolved directions, read by trySlap
}

// NewPlayerState returns a fresh, game-start PlayerState.
func NewPlayerState(chipsRequired int) *PlayerState {
	return &PlayerState{
		Keys:          make(map[KeyColor]int),
		ChipsRequired: chipsRequired,
		Activity:      ActivityWalking,
	}
}

// HasKey reports whether the player currently holds at least one key of c.
func (p *PlayerState) HasKey(c KeyColor) bool {
	return p.Keys[c] > 0
}

// TakeKey consumes one key of c if present (blue keys are single-use against
// blue locks; red/green/yellow are infinite-use in the original ruleset, so
// callers only decrement for blue).
func (p *PlayerState) TakeKey(c KeyColor) {
	if c == KeyBlue && p.Keys[c] > 0 {
		p.Keys[c]--
	}
}

// AddKey grants one key of c.
func (p *PlayerState) AddKey(c KeyColor) {
	p.Keys[c]++
}

// PsInput resolves this tick's effective movement direction from live input
// plus the buffered pending direction, grounded on playerstate.rs's
// ps_input: a buffered direction, if any, is taken (and cleared) and used in
// place of the live input; otherwise the live input is read.
func (p *PlayerState) PsInput(in Input) (Compass, bool) {
	if dir, ok := p.InputBuf.Take(); ok {
		return dir, true
	}
	return in.Compass()
}

// PsNextCs appends dir to the two-entry trailing-direction history that
// trySlap reads to detect the same direction resolved twice in a row,
// grounded on playerstate.rs's ps_nextcs.
func (p *PlayerState) PsNextCs(dir Compass) {
	const historyLen = 2
	p.lastCompassSeq = append(p.lastCompassSeq, dir)
	if len(p.lastCompassSeq) > historyLen {
		p.lastCompassSeq = p.lastCompassSeq[len(p.lastCompassSeq)-historyLen:]
	}
}

// PsActivity reports the player's current activity.
func (p *PlayerState) PsActivity() PlayerActivity {
	return p.Activity
}

// setActivity is the real ps_activity: the only place PlayerState.Activity
// changes after level start. Change-gated (re-entering the same activity,
// e.g. standing still on Water, fires nothing), it always announces the
// change, pauses the clock on any game-over activity, and fires the
// terminal GameOver/GameWin plus the matching SoundFx. Grounded exactly on
// playerstate.rs's ps_activity.
func (s *GameState) setActivity(activity PlayerActivity) {
	if activity == s.Player.Activity {
		return
	}
	s.Player.Activity = activity
	s.Events.Push(GameEvent{Tick: s.TickCount, Kind: EventPlayerActivity})

	if activity.IsGameOver() {
		s.TimeState = TimePaused
	}

	switch activity {
	case ActivityDrowned:
		s.fireGameOver(SoundWaterSplash)
	case ActivityBurned:
		s.fireGameOver(SoundFireWalking)
	case ActivityBombed:
		// collectOnEntry already fired EventBombExplode and its sound cue
		// when the bomb itself was triggered.
		s.fireGameOver(soundNone)
	case ActivityOutOfTime:
		s.fireGameOver(SoundGameOver)
	case ActivityCollided:
		s.fireGameOver(SoundGameOver)
	case ActivityEaten, ActivityNotOkay:
		s.fireGameOver(SoundGameOver)
	case ActivityLevelComplete:
		s.Events.Push(GameEvent{Tick: s.TickCount, Kind: EventGameWin})
		s.Events.Push(GameEvent{Tick: s.TickCount, Kind: EventSoundFx, Sound: SoundGameWin})
	}
}

func (s *GameState) fireGameOver(sound SoundFx) {
	s.Events.Push(GameEvent{Tick: s.TickCount, Kind: EventGameOver})
	if sound != soundNone {
		s.Events.Push(GameEvent{Tick: s.TickCount, Kind: EventSoundFx, Sound: sound})
	}
}
