package chipcore

import (
	"fmt"
	"sort"
)

// TimeState is the session-level clock mode, grounded on
// original_source/chipcore/src/gamestate.rs's TimeState enum.
type TimeState uint8

const (
	TimeRunning TimeState = iota
	TimePaused            // clock stopped once the player reaches a game-over activity
	TimeFrozen            // infinite-time cheat or a level with no time limit
)

// cloneSpawn is a deferred clone-machine spawn, queued by a button press and
// realized only after the tick's time increment. Grounded on gamestate.rs's
// spawn_clones, whose ordering relative to the time-increment step is marked
// `// HACK` in the original and is load-bearing for the CC1 replay corpus —
// do not reorder it even though it looks arbitrary.
type cloneSpawn struct {
	machinePos Vec2i
	args       EntityArgs
}

// GameState is the full, serializable simulation state for one level
// session. Grounded on original_source/chipcore/src/gamestate.rs's GameState
// struct.
type GameState struct {
	Field        *Field
	Entities     *EntityMap
	Spatial      *SpatialIndex
	Player       *PlayerState
	PlayerHandle EntityHandle
	Rng          *Random
	Events       *EventLog

	TickCount uint32
	TimeState TimeState
	TimeLeft  int32 // ticks remaining; negative means unlimited
	Steps     int32
	Bonks     int32

	toggleOpen   bool
	pendingClone []cloneSpawn
	codeSeq      CodeSequenceState
	cheatWalk    bool
	cheatTime    bool
}

// NewGameState builds a session from a parsed level. chipsRequired is the
// level's socket requirement (0 for levels with no socket).
func NewGameState(field *Field, chipsRequired int) *GameState {
	s := &GameState{
		Field:    field,
		Entities: NewEntityMap(),
		Spatial:  NewSpatialIndex(field.Width, field.Height),
		Player:   NewPlayerState(chipsRequired),
		Events:   NewEventLog(),
	}
	return s
}

// SpawnEntity allocates ent, indexes it spatially (unless it is a cloner
// template), and records it as the player handle if it is the Player kind.
func (s *GameState) SpawnEntity(args EntityArgs) EntityHandle {
	ent := Entity{
		Kind:    args.Kind,
		Pos:     args.Pos,
		BaseSpd: 1,
		FaceDir: args.FaceDir,
	}
	h := s.Entities.Alloc(ent)
	e := s.Entities.MustGet(h)
	if e.Flags&EFTemplate == 0 {
		s.Spatial.Insert(e.Pos, h)
	}
	if args.Kind == KindPlayer {
		s.PlayerHandle = h
	}
	return h
}

// orderedHandles returns every non-template entity handle sorted by
// sortGroup then handle value, giving deterministic per-tick processing
// order regardless of map internals. Grounded on chipty/src/level.rs's
// sort_entities group key, reused here for think-phase ordering.
func (s *GameState) orderedHandles() []EntityHandle {
	all := s.Entities.Handles()
	out := all[:0:0]
	for _, h := range all {
		e := s.Entities.MustGet(h)
		if e.Flags&EFTemplate != 0 || e.Flags&EFRemove != 0 {
			continue
		}
		out = append(out, h)
	}
	sort.SliceStable(out, func(i, j int) bool {
		ei, ej := s.Entities.MustGet(out[i]), s.Entities.MustGet(out[j])
		gi, gj := ei.Kind.sortGroup(), ej.Kind.sortGroup()
		if gi != gj {
			return gi < gj
		}
		return out[i] < out[j]
	})
	return out
}

// Tick advances the simulation by one frame given this tick's player input.
// The ten-step algorithm below is grounded exactly on gamestate.rs's tick:
// movement, action, and terrain phases run per entity in sortGroup order
// (player first), followed by the button/trap interaction pass, bear-trap
// release processing, the time-limit countdown and game clock increment,
// then deferred clone spawning, hidden-flag refresh, and removal of entities
// flagged EFRemove — in that order. Clone spawning runs AFTER the clock
// increment, not before, matching the `// HACK` ordering in the original;
// reordering it would desync replays.
func (s *GameState) Tick(input Input) {
	if s.Player.Activity.IsGameOver() {
		return
	}

	handles := s.orderedHandles()

	for _, h := range handles {
		e := s.Entities.Get(h)
		if e == nil {
			continue
		}
		if e.Handle == s.PlayerHandle {
			s.applyPlayerInput(e, input)
		}
		vtableFor(e.Kind).MovementPhase(s, e)
	}

	for _, h := range handles {
		e := s.Entities.Get(h)
		if e == nil {
			continue
		}
		vtableFor(e.Kind).ActionPhase(s, e)
	}

	for _, h := range handles {
		e := s.Entities.Get(h)
		if e == nil {
			continue
		}
		vtableFor(e.Kind).TerrainPhase(s, e)
	}

	s.interactTerrainPass()
	s.releaseTrapsPass()

	if s.TimeState == TimeRunning && !s.cheatTime {
		if s.TimeLeft > 0 {
			s.TimeLeft--
			if s.TimeLeft == 0 {
				s.setActivity(ActivityOutOfTime)
			}
		}
	}
	s.TickCount++

	s.spawnPendingClones()
	s.updateHiddenFlags()
	s.pruneRemoved()
}

// applyPlayerInput resolves the player's move for this tick from live input
// plus the input buffer, and records it onto the player entity for the
// movement phase to consume. Grounded on playerstate.rs's ps_input.
func (s *GameState) applyPlayerInput(player *Entity, in Input) {
	dir, ok := s.Player.PsInput(in)
	if !ok {
		player.StepDir = nil
		return
	}
	s.Player.PsNextCs(dir)
	player.FaceDir = &dir
	player.StepDir = &dir
	if code := s.Player.codeSeqRecord(s, dir); code != CheatNone {
		s.applyCheat(code)
	}
}

// codeSeqRecord is a small indirection so applyPlayerInput can feed the
// session-level CodeSequenceState without GameState needing a method on
// PlayerState for something that is really session bookkeeping.
func (p *PlayerState) codeSeqRecord(s *GameState, dir Compass) CheatCode {
	return s.codeSeq.Record(dir)
}

// applyCheat performs the debug/cheat-code side effect. Cheat activation has
// no normative GameEvent kind of its own in spec.md §4.11's exact list, so
// unlike every other side effect here it is silent on the wire — only its
// state change (instant win, frozen clock, ...) is observable, the same way
// the resulting PlayerActivity/TerrainUpdated events would be for any other
// cause.
func (s *GameState) applyCheat(code CheatCode) {
	switch code {
	case CheatWalkThroughWalls:
		s.cheatWalk = true
	case CheatGiveAll:
		s.Player.AddKey(KeyBlue)
		s.Player.AddKey(KeyRed)
		s.Player.AddKey(KeyGreen)
		s.Player.AddKey(KeyYellow)
		s.Player.Flippers = true
		s.Player.FireBoots = true
		s.Player.IceSkates = true
		s.Player.SuctionBoots = true
	case CheatInfiniteTime:
		s.cheatTime = true
		s.TimeState = TimeFrozen
	case CheatInstantWin:
		s.setActivity(ActivityLevelComplete)
	}
}

// getTrapState reports whether the bear trap at pos is currently open.
// Unlike a latched flag, this is recomputed from scratch on every call:
// open iff some valid (non-template) entity currently occupies the
// brown-button tile wired to this trap, closed otherwise — including when
// no button is wired to it at all. Grounded exactly on gamestate.rs's
// get_trap_state.
func (s *GameState) getTrapState(pos Vec2i) bool {
	conn, ok := s.Field.FindConnByDst(pos)
	if !ok {
		return false
	}
	for _, h := range s.Spatial.At(conn.Src) {
		e := s.Entities.Get(h)
		if e != nil && e.Flags&EFTemplate == 0 {
			return true
		}
	}
	return false
}

// setTerrain mutates the field and logs EventTerrainUpdated when the
// terrain actually changes, grounded on gamestate.rs's set_terrain.
func (s *GameState) setTerrain(pos Vec2i, t Terrain) {
	old := s.Field.GetTerrain(pos)
	if old == t {
		return
	}
	s.Field.SetTerrain(pos, t)
	s.Events.Push(GameEvent{Tick: s.TickCount, Kind: EventTerrainUpdated, Pos: pos, Old: old, New: t})
}

// toggleWalls flips every ToggleWall/ToggleFloor tile in the field, grounded
// on gamestate.rs's toggle_walls (fired by a green button press).
func (s *GameState) toggleWalls() {
	s.toggleOpen = !s.toggleOpen
	for y := int32(0); y < s.Field.Height; y++ {
		for x := int32(0); x < s.Field.Width; x++ {
			pos := Vec2i{X: x, Y: y}
			switch s.Field.GetTerrain(pos) {
			case ToggleWall:
				s.setTerrain(pos, ToggleFloor)
			case ToggleFloor:
				s.setTerrain(pos, ToggleWall)
			}
		}
	}
}

// turnAroundTanks reverses every Tank's facing direction in place, grounded
// on gamestate.rs's turn_around_tanks (fired by a blue button press).
func (s *GameState) turnAroundTanks() {
	s.Entities.Iter(func(e *Entity) {
		if e.Kind != KindTank || e.Flags&EFTemplate != 0 {
			return
		}
		if e.FaceDir != nil {
			rev := e.FaceDir.TurnAround()
			e.FaceDir = &rev
		}
	})
}

// isShowHint reports whether the player currently stands on a Hint tile.
func (s *GameState) isShowHint() bool {
	p := s.Entities.Get(s.PlayerHandle)
	if p == nil {
		return false
	}
	return s.Field.GetTerrain(p.Pos) == Hint
}

// updateHiddenFlags recomputes EFHidden for every non-block, non-template
// entity: set while a Block or IceBlock shares its tile, cleared otherwise.
// Fire does not hide entities. Grounded on gamestate.rs's update_hidden_flag.
func (s *GameState) updateHiddenFlags() {
	s.Entities.Iter(func(e *Entity) {
		if e.Kind == KindBlock || e.Kind == KindIceBlock || e.Flags&EFTemplate != 0 {
			return
		}
		hidden := false
		for _, other := range s.Spatial.At(e.Pos) {
			oe := s.Entities.Get(other)
			if oe == nil || oe.Handle == e.Handle {
				continue
			}
			if oe.Kind == KindBlock || oe.Kind == KindIceBlock {
				hidden = true
				break
			}
		}
		if hidden {
			e.Flags |= EFHidden
		} else {
			e.Flags &^= EFHidden
		}
	})
}

func (s *GameState) spawnPendingClones() {
	pending := s.pendingClone
	s.pendingClone = nil
	for _, c := range pending {
		s.SpawnEntity(c.args)
	}
}

// pruneRemoved deletes every entity flagged EFRemove this tick and clears
// the per-tick movement/terrain flags on survivors.
func (s *GameState) pruneRemoved() {
	for _, h := range s.Entities.Handles() {
		e := s.Entities.MustGet(h)
		if e.Flags&EFRemove != 0 {
			s.Spatial.Remove(e.Pos, h)
			s.Entities.Remove(h)
			continue
		}
		e.Flags &^= EFNewPos | EFTerrainMove | EFReleased
	}
}

// MustField is a defensive accessor used by callers that have already
// established a non-nil field (e.g. after ParseLevel succeeds).
func (s *GameState) MustField() *Field {
	if s.Field == nil {
		panic(fmt.Errorf("chipcore: GameState has no field"))
	}
	return s.Field
}
