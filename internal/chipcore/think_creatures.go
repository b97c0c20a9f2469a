package chipcore

func init() {
	creatureFlags := SolidFlags{Creatures: true, Player: false, Keys: true, Chips: true, Exit: true}
	vtables[KindBug] = &EntityVTable{MovementPhase: wallFollowerThink(true), ActionPhase: noAction, TerrainPhase: creatureTerrainPhase, Flags: creatureFlags}
	vtables[KindParamecium] = &EntityVTable{MovementPhase: wallFollowerThink(false), ActionPhase: noAction, TerrainPhase: creatureTerrainPhase, Flags: creatureFlags}
	vtables[KindFireBall] = &EntityVTable{MovementPhase: turnOnBlockedThink(turnRight), ActionPhase: noAction, TerrainPhase: creatureTerrainPhase, Flags: creatureFlags}
	vtables[KindPinkBall] = &EntityVTable{MovementPhase: turnOnBlockedThink(turnRight), ActionPhase: noAction, TerrainPhase: creatureTerrainPhase, Flags: creatureFlags}
	vtables[KindGlider] = &EntityVTable{MovementPhase: turnOnBlockedThink(turnLeft), ActionPhase: noAction, TerrainPhase: creatureTerrainPhase, Flags: creatureFlags}
	vtables[KindTank] = &EntityVTable{MovementPhase: tankThink, ActionPhase: noAction, TerrainPhase: creatureTerrainPhase, Flags: creatureFlags}
	vtables[KindTeeth] = &EntityVTable{MovementPhase: teethThink, ActionPhase: noAction, TerrainPhase: creatureTerrainPhase, Flags: creatureFlags}
	vtables[KindWalker] = &EntityVTable{MovementPhase: walkerThink, ActionPhase: noAction, TerrainPhase: creatureTerrainPhase, Flags: creatureFlags}
	vtables[KindBlob] = &EntityVTable{MovementPhase: blobThink, ActionPhase: noAction, TerrainPhase: creatureTerrainPhase, Flags: creatureFlags}
}

func noAction(s *GameState, ent *Entity) {}

func creatureTerrainPhase(s *GameState, ent *Entity) {
	tryTerrainMove(s, ent)
	teleport(s, ent)
}

func turnLeft(c Compass) Compass {
	switch c {
	case Up:
		return Left
	case Left:
		return Down
	case Down:
		return Right
	default:
		return Up
	}
}

func turnRight(c Compass) Compass {
	switch c {
	case Up:
		return Right
	case Right:
		return Down
	case Down:
		return Left
	default:
		return Up
	}
}

func facing(ent *Entity) Compass {
	if ent.FaceDir != nil {
		return *ent.FaceDir
	}
	return Down
}

func step(s *GameState, ent *Entity, dir Compass) bool {
	ent.StepDir = &dir
	return tryMove(s, ent, dir)
}

// teethThink chases the player along the axis-priority heuristic: prefer
// the axis with the larger absolute offset, ties broken toward vertical
// movement. Grounded exactly on entities/teeth.rs's chase_dirs.
func teethThink(s *GameState, ent *Entity) {
	dir, ok := chaseDirs(s, ent)
	if !ok {
		return
	}
	if !step(s, ent, dir) {
		ent.FaceDir = &dir
	}
}

// chaseDirs returns Teeth's preferred step direction toward the player this
// tick, or false if the player entity no longer exists.
func chaseDirs(s *GameState, ent *Entity) (Compass, bool) {
	player := s.Entities.Get(s.PlayerHandle)
	if player == nil {
		return 0, false
	}
	delta := player.Pos.Sub(ent.Pos)
	dx, dy := delta.X, delta.Y

	var vertical, horizontal Compass
	if dy < 0 {
		vertical = Up
	} else {
		vertical = Down
	}
	if dx < 0 {
		horizontal = Left
	} else {
		horizontal = Right
	}

	absX, absY := dx, dy
	if absX < 0 {
		absX = -absX
	}
	if absY < 0 {
		absY = -absY
	}

	if absX > absY {
		if dx != 0 {
			return horizontal, true
		}
		return vertical, true
	}
	if dy != 0 {
		return vertical, true
	}
	return horizontal, true
}

// tankThink drives straight until blocked, turning only via the blue button
// (gamestate.go's turnAroundTanks, fired from buttons.go's pressButton),
// grounded on the
// common Tank description in spec.md §4.7.
func tankThink(s *GameState, ent *Entity) {
	dir := facing(ent)
	step(s, ent, dir)
}

// turnOnBlockedThink builds the FireBall/Glider/PinkBall movement rule:
// continue straight, and on becoming blocked turn via bias (right for
// FireBall/PinkBall, left for Glider), falling back to reversing if every
// other direction is also blocked.
func turnOnBlockedThink(bias func(Compass) Compass) func(*GameState, *Entity) {
	return func(s *GameState, ent *Entity) {
		dir := facing(ent)
		turn := bias(dir)
		for _, d := range []Compass{dir, turn, turn.TurnAround(), dir.TurnAround()} {
			if step(s, ent, d) {
				return
			}
		}
	}
}

// wallFollowerThink builds the Bug (hugLeft=true) and Paramecium
// (hugLeft=false) movement rule: keep a wall on the preferred side,
// trying that turn first, then straight, then the opposite turn, then
// reverse as a last resort.
func wallFollowerThink(hugLeft bool) func(*GameState, *Entity) {
	return func(s *GameState, ent *Entity) {
		dir := facing(ent)
		var order []Compass
		if hugLeft {
			order = []Compass{turnLeft(dir), dir, turnRight(dir), dir.TurnAround()}
		} else {
			order = []Compass{turnRight(dir), dir, turnLeft(dir), dir.TurnAround()}
		}
		for _, d := range order {
			if step(s, ent, d) {
				return
			}
		}
	}
}

// walkerThink moves straight and, when blocked, picks a uniformly-random
// new direction (excluding straight back the way it came), grounded on the
// Walker description in spec.md §4.7.
func walkerThink(s *GameState, ent *Entity) {
	dir := facing(ent)
	if step(s, ent, dir) {
		return
	}
	choices := []Compass{Up, Left, Down, Right}
	back := dir.TurnAround()
	for tries := 0; tries < 8; tries++ {
		d := choices[s.Rng.NextCompass()]
		if d == back {
			continue
		}
		if step(s, ent, d) {
			return
		}
	}
}

// blobThink picks a fully-random direction every tick, grounded on the Blob
// description in spec.md §4.7 (the only creature with no directional bias
// at all).
func blobThink(s *GameState, ent *Entity) {
	for tries := 0; tries < 8; tries++ {
		d := s.Rng.NextCompass()
		if step(s, ent, d) {
			return
		}
	}
}
