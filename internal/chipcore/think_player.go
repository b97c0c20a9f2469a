package chipcore

// idleTime carries over entities/player.rs's IDLE_TIME constant. Nothing in
// this package reads it: standing still never resets the player's
// trailing-direction history.
const idleTime = 20

func init() {
	vtables[KindPlayer] = &EntityVTable{
		MovementPhase: playerMovementPhase,
		ActionPhase:   playerActionPhase,
		TerrainPhase:  playerTerrainPhase,
		// Exit/Water/Fire are never solid to the player: stepping onto them
		// always succeeds, and death/win resolution happens afterward in
		// collectOnEntry. Only locks and the socket are conditionally solid,
		// gated in tryMove by tryUnlock and the chips-collected count
		// respectively.
		Flags: SolidFlags{},
	}
}

// playerMovementPhase resolves the player's voluntary move for this tick,
// grounded on entities/player.rs's movement_phase: the direction was already
// captured onto the entity by GameState.applyPlayerInput, so this just
// attempts it and buffers it for retry if blocked.
func playerMovementPhase(s *GameState, ent *Entity) {
	if ent.StepDir == nil {
		return
	}
	dir := *ent.StepDir
	if bump(s, ent, dir) {
		trySlap(s, ent, dir)
	} else {
		s.Player.InputBuf.Push(dir)
	}
}

// bump is the player's single-step move attempt with wall-bonk bookkeeping,
// grounded on entities/player.rs's bump helper.
func bump(s *GameState, ent *Entity, dir Compass) bool {
	return tryMove(s, ent, dir)
}

// playerActionPhase derives the player's current PlayerActivity from the
// terrain underfoot, grounded on entities/player.rs's action_phase: item
// pickups, doors, exit, and hazards are all already folded into tryMove's
// collectOnEntry, so this phase only ever reports which kind of ground the
// player is standing on (and whether their boots/skates neutralize it).
func playerActionPhase(s *GameState, ent *Entity) {
	if s.Player.Activity.IsGameOver() {
		return
	}
	switch t := s.Field.GetTerrain(ent.Pos); {
	case t == Water:
		s.setActivity(ActivitySwimming)
	case isIceTerrain(t):
		if s.Player.IceSkates {
			s.setActivity(ActivityIceSkating)
		} else {
			s.setActivity(ActivityIceSliding)
		}
	case isForceTerrain(t):
		if s.Player.SuctionBoots {
			s.setActivity(ActivityForceWalking)
		} else {
			s.setActivity(ActivityForceSliding)
		}
	default:
		s.setActivity(ActivityWalking)
	}
}

// playerTerrainPhase applies involuntary ice/force-floor movement to the
// player, grounded on entities/player.rs's terrain_phase.
func playerTerrainPhase(s *GameState, ent *Entity) {
	tryTerrainMove(s, ent)
	teleport(s, ent)
}
