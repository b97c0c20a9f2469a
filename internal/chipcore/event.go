package chipcore

// EventKind enumerates every observable occurrence the simulator reports.
// This is spec.md §4.11's normative exact list of 23 kinds; every GameEvent
// the engine fires uses one of these, matching the teacher's event.go kind
// enumeration style (each kind carries exactly the fields a client needs to
// render or log it, nothing more, via the shared GameEvent payload below).
type EventKind uint8

const (
	EventEntityCreated EventKind = iota
	EventEntityRemoved
	EventEntityStep
	EventEntityTurn
	EventEntityHidden
	EventEntityTeleport
	EventEntityDrown
	EventEntityBurn
	EventEntityTrapped
	EventPlayerActivity
	EventPlayerBump
	EventItemPickup
	EventLockOpened
	EventSocketFilled
	EventBlockPush
	EventTerrainUpdated
	EventFireHidden
	EventWaterSplash
	EventBombExplode
	EventFireworks
	EventGameOver
	EventGameWin
	EventSoundFx
)

var eventKindNames = map[EventKind]string{
	EventEntityCreated:  "EntityCreated",
	EventEntityRemoved:  "EntityRemoved",
	EventEntityStep:     "EntityStep",
	EventEntityTurn:     "EntityTurn",
	EventEntityHidden:   "EntityHidden",
	EventEntityTeleport: "EntityTeleport",
	EventEntityDrown:    "EntityDrown",
	EventEntityBurn:     "EntityBurn",
	EventEntityTrapped:  "EntityTrapped",
	EventPlayerActivity: "PlayerActivity",
	EventPlayerBump:     "PlayerBump",
	EventItemPickup:     "ItemPickup",
	EventLockOpened:     "LockOpened",
	EventSocketFilled:   "SocketFilled",
	EventBlockPush:      "BlockPush",
	EventTerrainUpdated: "TerrainUpdated",
	EventFireHidden:     "FireHidden",
	EventWaterSplash:    "WaterSplash",
	EventBombExplode:    "BombExplode",
	EventFireworks:      "Fireworks",
	EventGameOver:       "GameOver",
	EventGameWin:        "GameWin",
	EventSoundFx:        "SoundFx",
}

func (k EventKind) String() string {
	if s, ok := eventKindNames[k]; ok {
		return s
	}
	return "Unknown"
}

// SoundFx names a sound cue fired alongside an EventSoundFx event. Grounded
// on the SoundFx variants actually referenced across original_source (a
// pragmatic subset: only the cues this engine's mechanics can trigger).
type SoundFx uint8

const (
	soundNone SoundFx = iota
	SoundButtonPressed
	SoundLockOpened
	SoundSocketOpened
	SoundBlockMoving
	SoundKeyCollected
	SoundBootCollected
	SoundChipCollected
	SoundTeleporting
	SoundTrapEntered
	SoundBombExploded
	SoundGameOver
	SoundGameWin
	SoundWaterSplash
	SoundFireWalking
)

var soundFxNames = map[SoundFx]string{
	SoundButtonPressed: "ButtonPressed",
	SoundLockOpened:    "LockOpened",
	SoundSocketOpened:  "SocketOpened",
	SoundBlockMoving:   "BlockMoving",
	SoundKeyCollected:  "KeyCollected",
	SoundBootCollected: "BootCollected",
	SoundChipCollected: "ICCollected",
	SoundTeleporting:   "Teleporting",
	SoundTrapEntered:   "TrapEntered",
	SoundBombExploded:  "BombExplodes",
	SoundGameOver:      "GameOver",
	SoundGameWin:       "GameWin",
	SoundWaterSplash:   "WaterSplash",
	SoundFireWalking:   "FireWalking",
}

func (sfx SoundFx) String() string {
	if s, ok := soundFxNames[sfx]; ok {
		return s
	}
	return "None"
}

// GameEvent is one entry in a tick's drained event log. Only the fields
// relevant to Kind are populated; the rest stay zero. Entity/Pos/Kind2 cover
// the entity-and-tile-keyed kinds, and Old/New/Hidden/Key/Item/Sound cover
// the handful of kinds that need one extra piece of payload.
type GameEvent struct {
	Tick   uint32
	Kind   EventKind
	Pos    Vec2i
	Entity EntityHandle
	Kind2  EntityKind // the kind of Entity at the time of the event; also ItemPickup's item kind

	Old    Terrain  // EventTerrainUpdated: terrain before the change
	New    Terrain  // EventTerrainUpdated: terrain after the change
	Hidden bool     // EventEntityHidden / EventFireHidden
	Key    KeyColor // EventLockOpened
	Sound  SoundFx  // EventSoundFx
}

// EventLog accumulates a tick's events for draining by the presentation
// layer, grounded on the teacher's event_log.go ring-buffer-of-structs
// pattern, simplified here to a growable slice: it holds every event pushed
// since the last Drain, with no size cap.
type EventLog struct {
	events []GameEvent
}

// NewEventLog returns an empty log.
func NewEventLog() *EventLog {
	return &EventLog{}
}

// Push appends ev to the log.
func (l *EventLog) Push(ev GameEvent) {
	l.events = append(l.events, ev)
}

// Drain returns and clears all buffered events, in emission order.
func (l *EventLog) Drain() []GameEvent {
	out := l.events
	l.events = nil
	return out
}

// Len reports the number of buffered, undrained events.
func (l *EventLog) Len() int { return len(l.events) }
