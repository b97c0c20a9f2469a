package chipcore

import "testing"

// TestBearTrapHoldsUntilButtonPressed confirms a bear trap's open/closed
// state is recomputed from brown-button occupancy rather than latched: the
// trap reads closed while nothing stands on the wired button, open once an
// entity occupies it, and still open after a Tick in which that entity
// stays on the button, per spec.md §4.9/§8.
func TestBearTrapHoldsUntilButtonPressed(t *testing.T) {
	s := newTestLevel(t, 6, 4, V2(1, 1))
	trapPos := V2(3, 1)
	buttonPos := V2(1, 2)
	s.Field.SetTerrain(trapPos, BearTrap)
	s.Field.SetTerrain(buttonPos, BrownButton)
	s.Field.Conns = append(s.Field.Conns, FieldConn{Src: buttonPos, Dst: trapPos})

	s.Entities.MustGet(s.SpawnEntity(EntityArgs{Kind: KindBlock, Pos: trapPos}))
	if s.getTrapState(trapPos) {
		t.Fatal("trap must read closed when nothing occupies its wired button yet")
	}

	s.Entities.MustGet(s.SpawnEntity(EntityArgs{Kind: KindIceBlock, Pos: buttonPos}))
	if !s.getTrapState(trapPos) {
		t.Fatal("trap must read open while an entity occupies its wired button")
	}

	s.Tick(Input{}) // the occupant never moves off the button this tick
	if !s.getTrapState(trapPos) {
		t.Fatal("trap must still read open while the button stays occupied")
	}
}

// TestBearTrapReleasesMomentumWhenFreed confirms a trapped entity carrying
// terrain momentum from before it was caught gets pushed the rest of the way
// out once its trap opens, per movement.rs's BearTrap branch of
// try_terrain_move.
func TestBearTrapReleasesMomentumWhenFreed(t *testing.T) {
	s := newTestLevel(t, 6, 4, V2(1, 1))
	trapPos := V2(2, 1)
	s.Field.SetTerrain(trapPos, BearTrap)
	dir := Right
	block := s.Entities.MustGet(s.SpawnEntity(EntityArgs{Kind: KindIceBlock, Pos: trapPos}))
	block.Flags |= EFTrapped
	block.Flags |= EFMomentum
	block.StepDir = &dir

	block.Flags |= EFReleased
	tryTerrainMove(s, block)

	if block.Pos != V2(3, 1) {
		t.Fatalf("released trapped entity with momentum = %v, want pushed to (3,1)", block.Pos)
	}
}

// TestUnlockingDoorFiresLockOpenedEvent confirms tryUnlock reports the
// normative LockOpened event (not a pickup event) when a held key opens a
// lock terrain, per spec.md §4.11.
func TestUnlockingDoorFiresLockOpenedEvent(t *testing.T) {
	s := newTestLevel(t, 5, 4, V2(1, 1))
	s.Field.SetTerrain(V2(2, 1), BlueLock)
	s.Player.AddKey(KeyBlue)

	s.Tick(Input{Right: true})

	var sawLockOpened bool
	for _, ev := range s.Events.Drain() {
		if ev.Kind == EventLockOpened {
			sawLockOpened = true
			if ev.Key != KeyBlue {
				t.Fatalf("LockOpened.Key = %v, want KeyBlue", ev.Key)
			}
		}
	}
	if !sawLockOpened {
		t.Fatal("expected an EventLockOpened after unlocking a blue door")
	}
	if s.Field.GetTerrain(V2(2, 1)) != Floor {
		t.Fatal("lock terrain must convert to Floor once unlocked")
	}
}

// TestSetTerrainFiresTerrainUpdatedEvent confirms a green button's toggle
// sweep reports EventTerrainUpdated with the before/after terrain, per
// spec.md §4.11 (review: setTerrain previously changed the field silently).
func TestSetTerrainFiresTerrainUpdatedEvent(t *testing.T) {
	s := newTestLevel(t, 5, 4, V2(1, 1))
	wallPos := V2(2, 2)
	s.Field.SetTerrain(wallPos, ToggleWall)
	s.Events.Drain()

	s.toggleWalls()

	var found bool
	for _, ev := range s.Events.Drain() {
		if ev.Kind == EventTerrainUpdated && ev.Pos == wallPos {
			found = true
			if ev.Old != ToggleWall || ev.New != ToggleFloor {
				t.Fatalf("TerrainUpdated old/new = %v/%v, want ToggleWall/ToggleFloor", ev.Old, ev.New)
			}
		}
	}
	if !found {
		t.Fatal("expected a TerrainUpdated event for the toggled wall tile")
	}
}

// TestIceCornerFallsBackWhenPrimaryBlocked confirms iceDeflect's fallback
// direction is actually attempted by tryTerrainMove when the primary
// deflection is blocked, per movement.rs's try_terrain_move ice handling.
func TestIceCornerFallsBackWhenPrimaryBlocked(t *testing.T) {
	s := newTestLevel(t, 6, 6, V2(1, 1))
	cornerPos := V2(3, 3)
	s.Field.SetTerrain(cornerPos, IceNW)
	// Entering IceNW while moving Up deflects primarily Right, falling back
	// to Down if Right is blocked.
	s.Field.SetTerrain(cornerPos.Add(Right.ToVec()), Wall)

	up := Up
	ent := s.Entities.MustGet(s.SpawnEntity(EntityArgs{Kind: KindIceBlock, Pos: cornerPos}))
	ent.StepDir = &up

	tryTerrainMove(s, ent)

	if ent.Pos != cornerPos.Add(Down.ToVec()) {
		t.Fatalf("ice corner fallback pos = %v, want %v (deflected Down after Right was blocked)", ent.Pos, cornerPos.Add(Down.ToVec()))
	}
}
