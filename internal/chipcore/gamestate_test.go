package chipcore

import "testing"

// newTestLevel builds a minimal w x h field of Floor tiles with a Wall
// border, placing the player at playerPos. Tests fill in specific tiles
// with SetTerrain/SpawnEntity as needed.
func newTestLevel(t *testing.T, w, h int32, playerPos Vec2i) *GameState {
	t.Helper()
	field := NewField(w, h)
	for y := int32(0); y < h; y++ {
		for x := int32(0); x < w; x++ {
			pos := V2(x, y)
			if x == 0 || y == 0 || x == w-1 || y == h-1 {
				field.SetTerrain(pos, Wall)
			} else {
				field.SetTerrain(pos, Floor)
			}
		}
	}
	s := NewGameState(field, 0)
	s.Rng = NewRandom(1)
	s.TimeLeft = -1
	s.TimeState = TimeFrozen
	s.SpawnEntity(EntityArgs{Kind: KindPlayer, Pos: playerPos})
	return s
}

func TestPlayerWalksIntoOpenFloor(t *testing.T) {
	s := newTestLevel(t, 5, 5, V2(2, 2))
	s.Tick(Input{Right: true})

	p := s.Entities.MustGet(s.PlayerHandle)
	if p.Pos != V2(3, 2) {
		t.Fatalf("player pos = %v, want (3,2)", p.Pos)
	}
	if s.Steps != 1 {
		t.Fatalf("Steps = %d, want 1", s.Steps)
	}
}

func TestPlayerBonksIntoWall(t *testing.T) {
	s := newTestLevel(t, 5, 5, V2(1, 2))
	s.Tick(Input{Left: true})

	p := s.Entities.MustGet(s.PlayerHandle)
	if p.Pos != V2(1, 2) {
		t.Fatalf("player must not move into a wall, got %v", p.Pos)
	}
	if s.Bonks != 1 {
		t.Fatalf("Bonks = %d, want 1", s.Bonks)
	}
}

func TestChipCollectionFillsSocket(t *testing.T) {
	s := newTestLevel(t, 6, 4, V2(1, 1))
	s.Player.ChipsRequired = 1
	s.Field.SetTerrain(V2(4, 1), Socket)
	s.SpawnEntity(EntityArgs{Kind: KindChip, Pos: V2(2, 1)})

	s.Tick(Input{Right: true}) // step onto the chip
	if s.Player.ChipsHeld != 1 {
		t.Fatalf("ChipsHeld = %d, want 1 after stepping on a chip", s.Player.ChipsHeld)
	}

	s.Tick(Input{Right: true})
	s.Tick(Input{Right: true}) // step onto the now-unlocked socket

	if s.Field.GetTerrain(V2(4, 1)) != Floor {
		t.Fatalf("socket must convert to Floor once enough chips are held")
	}
}

func TestExitEndsGameAsWon(t *testing.T) {
	s := newTestLevel(t, 5, 4, V2(1, 1))
	s.Field.SetTerrain(V2(2, 1), Exit)

	s.Tick(Input{Right: true})

	if s.Player.Activity != ActivityLevelComplete {
		t.Fatalf("Activity = %v, want ActivityLevelComplete", s.Player.Activity)
	}
	if !s.Player.Activity.IsGameOver() {
		t.Fatal("ActivityLevelComplete must report IsGameOver() true")
	}
}

func TestTickIsANoOpAfterGameOver(t *testing.T) {
	s := newTestLevel(t, 5, 4, V2(1, 1))
	s.Player.Activity = ActivityLevelComplete
	before := s.Entities.MustGet(s.PlayerHandle).Pos

	s.Tick(Input{Right: true})

	after := s.Entities.MustGet(s.PlayerHandle).Pos
	if before != after {
		t.Fatalf("Tick moved the player after game over: %v -> %v", before, after)
	}
}

func TestBlockedLockRequiresMatchingKey(t *testing.T) {
	s := newTestLevel(t, 5, 4, V2(1, 1))
	s.Field.SetTerrain(V2(2, 1), BlueLock)

	s.Tick(Input{Right: true})
	if p := s.Entities.MustGet(s.PlayerHandle); p.Pos != V2(1, 1) {
		t.Fatalf("player walked through a locked door without a key, pos = %v", p.Pos)
	}

	s.Player.AddKey(KeyBlue)
	s.Tick(Input{Right: true})
	if p := s.Entities.MustGet(s.PlayerHandle); p.Pos != V2(2, 1) {
		t.Fatalf("player failed to pass a locked door while holding the key, pos = %v", p.Pos)
	}
	if s.Player.HasKey(KeyBlue) {
		t.Fatal("blue key must be consumed after opening a blue lock")
	}
}

func TestDeterministicReplayProducesIdenticalTrajectory(t *testing.T) {
	inputs := []Input{{Right: true}, {Right: true}, {Down: true}, {Down: true}}

	run := func() []Vec2i {
		s := newTestLevel(t, 6, 6, V2(1, 1))
		var trace []Vec2i
		for _, in := range inputs {
			s.Tick(in)
			trace = append(trace, s.Entities.MustGet(s.PlayerHandle).Pos)
		}
		return trace
	}

	a, b := run(), run()
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("tick %d diverged between identical runs: %v != %v", i, a[i], b[i])
		}
	}
}
