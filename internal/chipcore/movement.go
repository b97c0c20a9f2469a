package chipcore

// canMove reports whether ent may step from its current tile toward dir,
// checking the exit tile's thin-wall panel, the destination tile's entry
// panel, and the destination terrain's solid-flags against ent's vtable
// flags. Grounded on movement.rs's can_move.
func canMove(s *GameState, ent *Entity, dir Compass) bool {
	if s.cheatWalk && ent.Handle == s.PlayerHandle {
		return true
	}
	srcTerrain := s.Field.GetTerrain(ent.Pos)
	if terrainSolidFlags(srcTerrain, &SolidFlags{})&panelForExit(dir) != 0 {
		if exitPanelBlocks(srcTerrain, dir) {
			return false
		}
	}
	dst := ent.Pos.Add(dir.ToVec())
	if !s.Field.IsPosInside(dst) {
		return false
	}
	dstTerrain := s.Field.GetTerrain(dst)
	if entryPanelBlocks(dstTerrain, dir) {
		return false
	}
	vt := vtableFor(ent.Kind)
	flags := vt.Flags
	solid := terrainSolidFlags(dstTerrain, &flags)
	return solid == 0
}

// exitPanelBlocks reports whether terrain has a thin wall covering dir,
// blocking an entity already on the tile from stepping out that way.
func exitPanelBlocks(t Terrain, dir Compass) bool {
	var flags SolidFlags
	mask := terrainSolidFlags(t, &flags)
	return mask&panelForExit(dir) != 0 && mask != solidWall
}

// entryPanelBlocks reports whether terrain has a thin wall covering the
// opposite face, blocking an entity from stepping onto the tile from dir.
func entryPanelBlocks(t Terrain, dir Compass) bool {
	var flags SolidFlags
	mask := terrainSolidFlags(t, &flags)
	return mask&panelForEntry(dir) != 0 && mask != solidWall
}

// keyColorFor maps a lock terrain to the key color it requires; callers only
// invoke this once tryUnlock has already confirmed t is a lock.
func keyColorFor(t Terrain) KeyColor {
	switch t {
	case BlueLock:
		return KeyBlue
	case RedLock:
		return KeyRed
	case GreenLock:
		return KeyGreen
	default:
		return KeyYellow
	}
}

// tryUnlock consumes the appropriate key and converts a lock terrain to
// floor when ent (the player) steps onto it holding the matching key.
// Grounded on movement.rs's try_unlock.
func tryUnlock(s *GameState, ent *Entity, pos Vec2i, t Terrain) bool {
	if ent.Handle != s.PlayerHandle {
		return t != BlueLock && t != RedLock && t != GreenLock && t != YellowLock
	}
	switch t {
	case BlueLock:
		if !s.Player.HasKey(KeyBlue) {
			return false
		}
		s.Player.TakeKey(KeyBlue)
	case RedLock:
		if !s.Player.HasKey(KeyRed) {
			return false
		}
	case GreenLock:
		if !s.Player.HasKey(KeyGreen) {
			return false
		}
	case YellowLock:
		if !s.Player.HasKey(KeyYellow) {
			return false
		}
	default:
		return true
	}
	s.setTerrain(pos, Floor)
	s.Events.Push(GameEvent{Tick: s.TickCount, Kind: EventLockOpened, Pos: pos, Key: keyColorFor(t)})
	s.Events.Push(GameEvent{Tick: s.TickCount, Kind: EventSoundFx, Pos: pos, Sound: SoundLockOpened})
	return true
}

// creatureAt returns a live, non-template entity other than self occupying
// pos, if any. When self is the player, pickups, thieves and bombs are
// skipped: the player steps onto them and collectOnEntry applies their
// effect once the move commits.
func (s *GameState) creatureAt(pos Vec2i, self EntityHandle) *Entity {
	for _, h := range s.Spatial.At(pos) {
		if h == self {
			continue
		}
		e := s.Entities.Get(h)
		if e == nil || e.Flags&EFTemplate != 0 {
			continue
		}
		if self == s.PlayerHandle {
			switch e.Kind {
			case KindChip, KindBlueKey, KindRedKey, KindGreenKey, KindYellowKey,
				KindFlippers, KindFireBoots, KindIceSkates, KindSuctionBoots, KindThief, KindBomb:
				continue
			}
		}
		return e
	}
	return nil
}

// canFlick reports whether pusherKind may flick (push) an occupant of
// blockKind one tile further. Grounded exactly on movement.rs's flick: only
// a Player may flick a plain Block; a Player, IceBlock, Teeth, or Tank may
// flick an IceBlock.
func canFlick(pusherKind, blockKind EntityKind) bool {
	switch blockKind {
	case KindBlock:
		return pusherKind == KindPlayer
	case KindIceBlock:
		return pusherKind == KindPlayer || pusherKind == KindIceBlock || pusherKind == KindTeeth || pusherKind == KindTank
	default:
		return false
	}
}

// flick pushes every block at pos that pusherKind is allowed to flick one
// tile further in stepDir, firing BlockPush plus its sound cue on each
// success. Reports whether at least one block moved; a false return with a
// block actually present at pos means that block could not be flicked by
// this pusher or had nowhere to go, and the caller's own move is blocked in
// turn. Grounded on movement.rs's flick.
func flick(s *GameState, pusherKind EntityKind, pos Vec2i, stepDir Compass) bool {
	moved := false
	for _, h := range append([]EntityHandle(nil), s.Spatial.At(pos)...) {
		e := s.Entities.Get(h)
		if e == nil || e.Flags&EFTemplate != 0 || !canFlick(pusherKind, e.Kind) {
			continue
		}
		if tryMove(s, e, stepDir) {
			moved = true
			s.Events.Push(GameEvent{Tick: s.TickCount, Kind: EventBlockPush, Pos: e.Pos, Entity: e.Handle})
			s.Events.Push(GameEvent{Tick: s.TickCount, Kind: EventSoundFx, Pos: e.Pos, Sound: SoundBlockMoving})
		}
	}
	return moved
}

// perpendicular returns the two directions at right angles to dir.
func perpendicular(dir Compass) (Compass, Compass) {
	switch dir {
	case Up, Down:
		return Left, Right
	default:
		return Up, Down
	}
}

// trySlap implements the player's slap move: stepping the same direction
// twice in a row while a perpendicular direction sits buffered in the input
// queue reaches out and flicks any block standing at that perpendicular
// tile, without the player actually turning to face it. Grounded on
// movement.rs's slap. Only the block-flicking half is ported: HiddenWall and
// RealBlueWall exist in the terrain set, but slapping never turns them into
// Wall.
func trySlap(s *GameState, ent *Entity, dir Compass) {
	if ent.Handle != s.PlayerHandle {
		return
	}
	seq := s.Player.lastCompassSeq
	if len(seq) < 2 || seq[len(seq)-1] != dir || seq[len(seq)-2] != dir {
		return
	}
	perpA, perpB := perpendicular(dir)
	buffered, ok := s.Player.InputBuf.Peek()
	if !ok || (buffered != perpA && buffered != perpB) {
		return
	}
	flick(s, ent.Kind, ent.Pos.Add(buffered.ToVec()), buffered)
}

// resolveCollision resolves the kill-on-touch half of a collision between
// mover and an occupant already standing on mover's destination tile: a
// player touching a creature (or vice versa) dies, one block touching
// another simply blocks the move.
func resolveCollision(s *GameState, mover, occupant *Entity) (blocked bool) {
	isPlayer := func(e *Entity) bool { return e.Kind == KindPlayer }
	isBlock := func(e *Entity) bool { return e.Kind == KindBlock || e.Kind == KindIceBlock }
	switch {
	case isBlock(mover) || isBlock(occupant):
		return true
	case isPlayer(mover) && !isPlayer(occupant):
		killPlayer(s, mover, ActivityCollided)
		return true
	case isPlayer(occupant) && !isPlayer(mover):
		killPlayer(s, occupant, ActivityCollided)
		return true
	default:
		return true
	}
}

// killPlayer transitions the player to a terminal activity, a no-op if the
// game is already over. All death causes funnel through setActivity so the
// GameOver event and its sound cue fire exactly once.
func killPlayer(s *GameState, player *Entity, activity PlayerActivity) {
	if s.Player.Activity.IsGameOver() {
		return
	}
	s.setActivity(activity)
}

// isIceTerrain reports whether t is any ice variant (plain or cornered).
func isIceTerrain(t Terrain) bool {
	return t == Ice || t == IceNW || t == IceNE || t == IceSW || t == IceSE
}

// isForceTerrain reports whether t is any force-floor variant.
func isForceTerrain(t Terrain) bool {
	return t == ForceN || t == ForceW || t == ForceS || t == ForceE || t == ForceRandom
}

// stepSpeedFor computes how many ticks ent's next step costs, given the
// terrain it just landed on: ice and force floors take max(1, base_spd/2)
// ticks per tile unless the player holds the matching ice skates/suction
// boots, which restore the normal base_spd cost. Grounded on spec.md §4.3's
// tick-based speed mechanism and movement.rs's step_spd handling in
// try_move.
func stepSpeedFor(s *GameState, ent *Entity, t Terrain) int32 {
	base := ent.BaseSpd
	if base <= 0 {
		base = 1
	}
	immune := ent.Handle == s.PlayerHandle && ((isIceTerrain(t) && s.Player.IceSkates) || (isForceTerrain(t) && s.Player.SuctionBoots))
	if immune || (!isIceTerrain(t) && !isForceTerrain(t)) {
		return base
	}
	half := base / 2
	if half < 1 {
		half = 1
	}
	return half
}

// moveEntityTo relocates ent to dst, updating the spatial index and the
// per-tick movement flags. This is the single place an entity's Pos field
// changes, so every mover funnels through it.
func moveEntityTo(s *GameState, ent *Entity, dst Vec2i) {
	src := ent.Pos
	s.Spatial.Move(src, dst, ent.Handle)
	ent.Pos = dst
	ent.Flags |= EFNewPos
}

// tryMove is the single-step move attempt shared by the player and every
// creature's movement phase: panel/solid checks, block pushing, lock
// handling, the socket's chip-count check, and collision resolution, in that
// order, gated throughout by the
// entity's step timer so involuntary ice/force movement cannot be
// interrupted mid-glide. Grounded on movement.rs's try_move (the
// authoritative variant per spec.md's design note; physics.rs's
// near-duplicate lacks the RELEASED/momentum handling folded in here).
func tryMove(s *GameState, ent *Entity, dir Compass) bool {
	if ent.IsTrapped() {
		return false
	}
	if s.TickCount < uint32(ent.StepTime) {
		return false
	}

	if ent.FaceDir == nil || *ent.FaceDir != dir {
		d := dir
		ent.FaceDir = &d
		s.Events.Push(GameEvent{Tick: s.TickCount, Kind: EventEntityTurn, Pos: ent.Pos, Entity: ent.Handle, Kind2: ent.Kind})
	}

	if !canMove(s, ent, dir) {
		if ent.Handle == s.PlayerHandle {
			s.Bonks++
			s.Events.Push(GameEvent{Tick: s.TickCount, Kind: EventPlayerBump, Pos: ent.Pos.Add(dir.ToVec())})
		}
		return false
	}
	dst := ent.Pos.Add(dir.ToVec())
	dstTerrain := s.Field.GetTerrain(dst)

	if block := s.blockAt(dst); block != nil {
		if !flick(s, ent.Kind, dst, dir) {
			return false
		}
	}

	if !tryUnlock(s, ent, dst, dstTerrain) {
		return false
	}
	if ent.Handle == s.PlayerHandle && dstTerrain == Socket && s.Player.ChipsHeld < s.Player.ChipsRequired {
		return false
	}

	if occupant := s.creatureAt(dst, ent.Handle); occupant != nil {
		if blocked := resolveCollision(s, ent, occupant); blocked {
			return false
		}
	}

	moveEntityTo(s, ent, dst)
	ent.Flags &^= EFMomentum
	ent.StepSpd = stepSpeedFor(s, ent, dstTerrain)
	ent.StepTime = int32(s.TickCount) + ent.StepSpd
	if ent.Handle == s.PlayerHandle {
		s.Steps++
	}
	s.Events.Push(GameEvent{Tick: s.TickCount, Kind: EventEntityStep, Pos: dst, Entity: ent.Handle, Kind2: ent.Kind})
	collectOnEntry(s, ent, dst)
	return true
}

// blockAt returns the Block/IceBlock occupying pos, if any.
func (s *GameState) blockAt(pos Vec2i) *Entity {
	for _, h := range s.Spatial.At(pos) {
		e := s.Entities.Get(h)
		if e != nil && (e.Kind == KindBlock || e.Kind == KindIceBlock) {
			return e
		}
	}
	return nil
}

// collectOnEntry applies pickup/door/exit side effects of ent (the player)
// having just stepped onto pos, grounded on movement.rs/physics.rs's
// post-move item handling folded into try_move.
func collectOnEntry(s *GameState, ent *Entity, pos Vec2i) {
	if ent.Handle != s.PlayerHandle {
		return
	}
	for _, h := range append([]EntityHandle(nil), s.Spatial.At(pos)...) {
		e := s.Entities.Get(h)
		if e == nil || e.Handle == ent.Handle || e.Flags&EFTemplate != 0 {
			continue
		}
		switch e.Kind {
		case KindChip:
			s.Player.ChipsHeld++
			e.Flags |= EFRemove
			s.Events.Push(GameEvent{Tick: s.TickCount, Kind: EventItemPickup, Pos: pos, Entity: e.Handle, Kind2: e.Kind})
			s.Events.Push(GameEvent{Tick: s.TickCount, Kind: EventSoundFx, Pos: pos, Sound: SoundChipCollected})
		case KindBlueKey:
			s.Player.AddKey(KeyBlue)
			e.Flags |= EFRemove
			s.Events.Push(GameEvent{Tick: s.TickCount, Kind: EventItemPickup, Pos: pos, Entity: e.Handle, Kind2: e.Kind})
			s.Events.Push(GameEvent{Tick: s.TickCount, Kind: EventSoundFx, Pos: pos, Sound: SoundKeyCollected})
		case KindRedKey:
			s.Player.AddKey(KeyRed)
			e.Flags |= EFRemove
			s.Events.Push(GameEvent{Tick: s.TickCount, Kind: EventItemPickup, Pos: pos, Entity: e.Handle, Kind2: e.Kind})
			s.Events.Push(GameEvent{Tick: s.TickCount, Kind: EventSoundFx, Pos: pos, Sound: SoundKeyCollected})
		case KindGreenKey:
			s.Player.AddKey(KeyGreen)
			e.Flags |= EFRemove
			s.Events.Push(GameEvent{Tick: s.TickCount, Kind: EventItemPickup, Pos: pos, Entity: e.Handle, Kind2: e.Kind})
			s.Events.Push(GameEvent{Tick: s.TickCount, Kind: EventSoundFx, Pos: pos, Sound: SoundKeyCollected})
		case KindYellowKey:
			s.Player.AddKey(KeyYellow)
			e.Flags |= EFRemove
			s.Events.Push(GameEvent{Tick: s.TickCount, Kind: EventItemPickup, Pos: pos, Entity: e.Handle, Kind2: e.Kind})
			s.Events.Push(GameEvent{Tick: s.TickCount, Kind: EventSoundFx, Pos: pos, Sound: SoundKeyCollected})
		case KindFlippers:
			s.Player.Flippers = true
			e.Flags |= EFRemove
			s.Events.Push(GameEvent{Tick: s.TickCount, Kind: EventItemPickup, Pos: pos, Entity: e.Handle, Kind2: e.Kind})
			s.Events.Push(GameEvent{Tick: s.TickCount, Kind: EventSoundFx, Pos: pos, Sound: SoundBootCollected})
		case KindFireBoots:
			s.Player.FireBoots = true
			e.Flags |= EFRemove
			s.Events.Push(GameEvent{Tick: s.TickCount, Kind: EventItemPickup, Pos: pos, Entity: e.Handle, Kind2: e.Kind})
			s.Events.Push(GameEvent{Tick: s.TickCount, Kind: EventSoundFx, Pos: pos, Sound: SoundBootCollected})
		case KindIceSkates:
			s.Player.IceSkates = true
			e.Flags |= EFRemove
			s.Events.Push(GameEvent{Tick: s.TickCount, Kind: EventItemPickup, Pos: pos, Entity: e.Handle, Kind2: e.Kind})
			s.Events.Push(GameEvent{Tick: s.TickCount, Kind: EventSoundFx, Pos: pos, Sound: SoundBootCollected})
		case KindSuctionBoots:
			s.Player.SuctionBoots = true
			e.Flags |= EFRemove
			s.Events.Push(GameEvent{Tick: s.TickCount, Kind: EventItemPickup, Pos: pos, Entity: e.Handle, Kind2: e.Kind})
			s.Events.Push(GameEvent{Tick: s.TickCount, Kind: EventSoundFx, Pos: pos, Sound: SoundBootCollected})
		case KindBomb:
			e.Flags |= EFRemove
			s.Events.Push(GameEvent{Tick: s.TickCount, Kind: EventBombExplode, Pos: pos, Entity: e.Handle})
			s.Events.Push(GameEvent{Tick: s.TickCount, Kind: EventSoundFx, Pos: pos, Sound: SoundBombExploded})
			killPlayer(s, ent, ActivityBombed)
		case KindThief:
			s.Player.Flippers, s.Player.FireBoots = false, false
			s.Player.IceSkates, s.Player.SuctionBoots = false, false
			s.Events.Push(GameEvent{Tick: s.TickCount, Kind: EventPlayerBump, Pos: pos, Entity: e.Handle, Kind2: e.Kind})
		}
	}

	switch s.Field.GetTerrain(pos) {
	case Socket:
		if s.Player.ChipsHeld >= s.Player.ChipsRequired {
			s.setTerrain(pos, Floor)
			s.Events.Push(GameEvent{Tick: s.TickCount, Kind: EventSocketFilled, Pos: pos})
			s.Events.Push(GameEvent{Tick: s.TickCount, Kind: EventSoundFx, Pos: pos, Sound: SoundSocketOpened})
		}
	case Exit:
		s.setActivity(ActivityLevelComplete)
	case Water:
		if !s.Player.Flippers {
			killPlayer(s, ent, ActivityDrowned)
		}
	case Fire:
		if !s.Player.FireBoots {
			killPlayer(s, ent, ActivityBurned)
		}
	}
}
