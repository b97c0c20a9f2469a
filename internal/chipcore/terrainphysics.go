package chipcore

// iceDeflect maps an ice-corner terrain and the incoming travel direction to
// the (primary, fallback) pair of directions try_terrain_move attempts in
// order: the primary is tried first, and only on failure is the fallback
// attempted. Plain Ice never deflects on its own corner geometry, so its
// primary is the incoming direction and its fallback is a full reversal.
// Grounded exactly on movement.rs's try_terrain_move ice-corner match arms.
func iceDeflect(t Terrain, dir Compass) (primary, fallback Compass) {
	switch t {
	case IceNW:
		switch dir {
		case Up:
			return Right, Down
		case Left:
			return Down, Right
		case Down:
			return Down, Right
		case Right:
			return Right, Down
		}
	case IceNE:
		switch dir {
		case Up:
			return Left, Down
		case Left:
			return Left, Down
		case Down:
			return Down, Left
		case Right:
			return Down, Left
		}
	case IceSE:
		switch dir {
		case Up:
			return Up, Left
		case Left:
			return Left, Up
		case Down:
			return Left, Up
		case Right:
			return Up, Left
		}
	case IceSW:
		switch dir {
		case Up:
			return Up, Right
		case Left:
			return Up, Right
		case Down:
			return Right, Up
		case Right:
			return Right, Up
		}
	}
	// Plain Ice (and an unreachable default for the corner switches above).
	return dir, dir.TurnAround()
}

// forceDir resolves a force-floor terrain to its push direction; ForceRandom
// consults the session RNG and is NOT idempotent, so it must be called at
// most once per entity per tick.
func forceDir(s *GameState, t Terrain) (Compass, bool) {
	switch t {
	case ForceN:
		return Up, true
	case ForceW:
		return Left, true
	case ForceS:
		return Down, true
	case ForceE:
		return Right, true
	case ForceRandom:
		return s.Rng.NextCompass(), true
	default:
		return 0, false
	}
}

// tryTerrainMove applies one step of involuntary terrain-driven movement —
// bear-trap momentum release, ice sliding (with corner deflection), and
// force-floor pushing — to ent, based on the terrain of its current tile.
// Grounded on movement.rs's try_terrain_move; mirrors its match arms one for
// one, including which branches fall through to set EFMomentum at the end
// and which return early without touching it.
func tryTerrainMove(s *GameState, ent *Entity) {
	if ent.IsTrapped() {
		return
	}
	t := s.Field.GetTerrain(ent.Pos)

	switch {
	case t == BearTrap:
		// A trapped entity that still carries momentum from before it was
		// caught gets pushed back out in the direction it was moving, per
		// CC1 level 109 "Torturechamber". No momentum means it just sits.
		if ent.Flags&EFMomentum != 0 && ent.StepDir != nil {
			tryMove(s, ent, *ent.StepDir)
		}
		return

	case t == Ice || t == IceNW || t == IceNE || t == IceSW || t == IceSE:
		if ent.Handle == s.PlayerHandle && s.Player.IceSkates {
			return
		}
		dir := ent.StepDir
		if dir == nil {
			dir = ent.FaceDir
		}
		if dir == nil {
			return
		}
		primary, fallback := iceDeflect(t, *dir)
		ent.Flags |= EFTerrainMove
		ent.StepDir = &primary
		if !tryMove(s, ent, primary) {
			ent.StepDir = &fallback
			if !tryMove(s, ent, fallback) {
				return
			}
		}

	case t == ForceN || t == ForceW || t == ForceS || t == ForceE || t == ForceRandom:
		if ent.Handle == s.PlayerHandle && s.Player.SuctionBoots {
			return
		}
		dir, _ := forceDir(s, t)
		ent.Flags |= EFTerrainMove
		ent.StepDir = &dir
		if !tryMove(s, ent, dir) {
			return
		}

	default:
		return
	}

	ent.Flags |= EFMomentum
}

// teleport resolves a teleport-tile landing for ent, using its current
// step/face direction as the travel direction to force it out of the
// destination teleporter. Grounded on movement.rs's teleport.
func teleport(s *GameState, ent *Entity) {
	if s.Field.GetTerrain(ent.Pos) != Teleport {
		return
	}
	dir := ent.StepDir
	if dir == nil {
		dir = ent.FaceDir
	}
	if dir == nil {
		return
	}
	teleportInDir(s, ent, *dir)
}

// teleportInDir walks the teleporter connection chain starting from ent's
// current tile, landing on and then immediately forcing a move out of each
// candidate destination in turn, retrying the next candidate on failure.
// If the chain cycles all the way back to the starting tile with every
// destination (including the source) blocked, a Player gets one reflected
// attempt to move back the way it came before giving up fully softlocked on
// the teleporter. Grounded exactly on movement.rs's teleport.
func teleportInDir(s *GameState, ent *Entity, stepDir Compass) bool {
	oldPos := ent.Pos
	var teleported bool
	for {
		dst, ok := s.Field.FindTeleportDest(ent.Pos)
		if !ok {
			return false
		}
		moveEntityTo(s, ent, dst)
		teleported = ent.Pos != oldPos

		if tryMove(s, ent, stepDir) {
			break
		}
		if ent.Pos == oldPos {
			if ent.Handle == s.PlayerHandle && !tryMove(s, ent, stepDir.TurnAround()) {
				return false
			}
			break
		}
	}

	if teleported {
		s.Events.Push(GameEvent{Tick: s.TickCount, Kind: EventEntityTeleport, Entity: ent.Handle})
	}
	if ent.Handle == s.PlayerHandle {
		s.Events.Push(GameEvent{Tick: s.TickCount, Kind: EventSoundFx, Sound: SoundTeleporting})
	}
	return true
}
