package chipcore

import "testing"

func TestIceDeflectPassesThroughPlainIce(t *testing.T) {
	for _, dir := range []Compass{Up, Left, Down, Right} {
		primary, fallback := iceDeflect(Ice, dir)
		if primary != dir {
			t.Errorf("iceDeflect(Ice, %v) primary = %v, want unchanged", dir, primary)
		}
		if fallback != dir.TurnAround() {
			t.Errorf("iceDeflect(Ice, %v) fallback = %v, want reversal", dir, fallback)
		}
	}
}

func TestIceCornerDeflectsEveryEnteringDirection(t *testing.T) {
	cases := []struct {
		corner          Terrain
		in              Compass
		primary, backup Compass
	}{
		{IceNW, Up, Right, Down},
		{IceNW, Left, Down, Right},
		{IceNW, Down, Down, Right},
		{IceNW, Right, Right, Down},

		{IceNE, Up, Left, Down},
		{IceNE, Left, Left, Down},
		{IceNE, Down, Down, Left},
		{IceNE, Right, Down, Left},

		{IceSE, Up, Up, Left},
		{IceSE, Left, Left, Up},
		{IceSE, Down, Left, Up},
		{IceSE, Right, Up, Left},

		{IceSW, Up, Up, Right},
		{IceSW, Left, Up, Right},
		{IceSW, Down, Right, Up},
		{IceSW, Right, Right, Up},
	}
	for _, c := range cases {
		primary, backup := iceDeflect(c.corner, c.in)
		if primary != c.primary || backup != c.backup {
			t.Errorf("iceDeflect(%v, %v) = (%v, %v), want (%v, %v)", c.corner, c.in, primary, backup, c.primary, c.backup)
		}
	}
}

func TestChaseDirsPrefersLargerAxis(t *testing.T) {
	s := newTestLevel(t, 10, 10, V2(5, 2))
	teeth := s.Entities.MustGet(s.SpawnEntity(EntityArgs{Kind: KindTeeth, Pos: V2(1, 1)}))

	// Player is far to the right (dx=4) and only one tile down (dy=1):
	// horizontal offset dominates, so Teeth should prefer stepping Right.
	dir, ok := chaseDirs(s, teeth)
	if !ok {
		t.Fatal("chaseDirs returned ok=false with a live player")
	}
	if dir != Right {
		t.Fatalf("chaseDirs = %v, want Right", dir)
	}
}

func TestChaseDirsTieBreaksVertical(t *testing.T) {
	s := newTestLevel(t, 10, 10, V2(5, 5))
	teeth := s.Entities.MustGet(s.SpawnEntity(EntityArgs{Kind: KindTeeth, Pos: V2(1, 1)}))

	// dx == dy == 4 here; ties resolve to the vertical axis.
	dir, ok := chaseDirs(s, teeth)
	if !ok {
		t.Fatal("chaseDirs returned ok=false with a live player")
	}
	if dir != Down {
		t.Fatalf("chaseDirs = %v, want Down on an exact axis tie", dir)
	}
}

func TestTryPushBlockMovesBlockAhead(t *testing.T) {
	s := newTestLevel(t, 6, 4, V2(1, 1))
	block := s.SpawnEntity(EntityArgs{Kind: KindBlock, Pos: V2(2, 1)})

	s.Tick(Input{Right: true})

	if got := s.Entities.MustGet(block).Pos; got != V2(3, 1) {
		t.Fatalf("pushed block pos = %v, want (3,1)", got)
	}
	if got := s.Entities.MustGet(s.PlayerHandle).Pos; got != V2(2, 1) {
		t.Fatalf("player pos after push = %v, want (2,1)", got)
	}
}

func TestTryPushBlockBlockedByWallLeavesBothInPlace(t *testing.T) {
	s := newTestLevel(t, 5, 4, V2(1, 1))
	block := s.SpawnEntity(EntityArgs{Kind: KindBlock, Pos: V2(2, 1)})
	// On a 5-wide field the border wall is at x=4 and x=3 is floor; put a
	// Wall at x=3 so the block at x=2 has nowhere to go.
	s.Field.SetTerrain(V2(3, 1), Wall)

	s.Tick(Input{Right: true})

	if got := s.Entities.MustGet(block).Pos; got != V2(2, 1) {
		t.Fatalf("block pos = %v, want unchanged (2,1)", got)
	}
	if got := s.Entities.MustGet(s.PlayerHandle).Pos; got != V2(1, 1) {
		t.Fatalf("player pos = %v, want unchanged (1,1) since the push failed", got)
	}
}
