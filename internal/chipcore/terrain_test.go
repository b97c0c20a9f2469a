package chipcore

import "testing"

func TestTerrainStringRoundTrip(t *testing.T) {
	cases := map[string]Terrain{
		"Blank": Blank, "Wall": Wall, "IceNW": IceNW, "ForceRandom": ForceRandom,
		"BearTrap": BearTrap, "RecessedWall": RecessedWall,
	}
	for name, want := range cases {
		t.Run(name, func(t *testing.T) {
			got, err := ParseTerrain(name)
			if err != nil {
				t.Fatalf("ParseTerrain(%q): %v", name, err)
			}
			if got != want {
				t.Fatalf("ParseTerrain(%q) = %v, want %v", name, got, want)
			}
			if got.String() != name {
				t.Fatalf("%v.String() = %q, want %q", got, got.String(), name)
			}
		})
	}
}

func TestParseTerrainUnknown(t *testing.T) {
	if _, err := ParseTerrain("NotATerrain"); err == nil {
		t.Fatal("expected an error for an unknown terrain name")
	}
}

func TestIsWall(t *testing.T) {
	wall := []Terrain{Wall, DirtBlock, CloneMachine, RealBlueWall, BlueLock}
	notWall := []Terrain{Blank, Floor, Ice, Water, Exit, Teleport}
	for _, tr := range wall {
		if !tr.IsWall() {
			t.Errorf("%v.IsWall() = false, want true", tr)
		}
	}
	for _, tr := range notWall {
		if tr.IsWall() {
			t.Errorf("%v.IsWall() = true, want false", tr)
		}
	}
}

func TestTerrainSolidFlagsBlankIsPassable(t *testing.T) {
	var flags SolidFlags
	if got := terrainSolidFlags(Blank, &flags); got != 0 {
		t.Fatalf("Blank solid flags = %#x, want 0 (movement.rs treats Blank as passable)", got)
	}
}

func TestPanelHelpersAreInverse(t *testing.T) {
	for _, dir := range []Compass{Up, Left, Down, Right} {
		exit := panelForExit(dir)
		entry := panelForEntry(dir.TurnAround())
		if exit != entry {
			t.Errorf("panelForExit(%v)=%#x, panelForEntry(%v)=%#x, want equal", dir, exit, dir.TurnAround(), entry)
		}
	}
}
