package chipcore

import "fmt"

// Terrain is the static content of a tile. Grounded on
// original_source/chipcore/src/field.rs and chipty/src/terrain.rs.
type Terrain uint8

const (
	Blank Terrain = iota
	Floor
	Wall
	Socket
	BlueLock
	RedLock
	GreenLock
	YellowLock
	Hint
	Exit
	FakeExit
	Water
	WaterHazard
	Fire
	Dirt
	DirtBlock
	Gravel
	Ice
	IceNW
	IceNE
	IceSW
	IceSE
	ForceN
	ForceW
	ForceS
	ForceE
	ForceRandom
	CloneMachine
	CloneBlockN
	CloneBlockW
	CloneBlockS
	CloneBlockE
	ToggleFloor
	ToggleWall
	ThinWallN
	ThinWallW
	ThinWallS
	ThinWallE
	ThinWallSE
	HiddenWall
	InvisibleWall
	RealBlueWall
	FakeBlueWall
	GreenButton
	RedButton
	BrownButton
	BlueButton
	Teleport
	BearTrap
	RecessedWall

	terrainCount
)

var terrainNames = [terrainCount]string{
	Blank: "Blank", Floor: "Floor", Wall: "Wall", Socket: "Socket",
	BlueLock: "BlueLock", RedLock: "RedLock", GreenLock: "GreenLock", YellowLock: "YellowLock",
	Hint: "Hint", Exit: "Exit", FakeExit: "FakeExit",
	Water: "Water", WaterHazard: "WaterHazard", Fire: "Fire", Dirt: "Dirt", DirtBlock: "DirtBlock", Gravel: "Gravel",
	Ice: "Ice", IceNW: "IceNW", IceNE: "IceNE", IceSW: "IceSW", IceSE: "IceSE",
	ForceN: "ForceN", ForceW: "ForceW", ForceS: "ForceS", ForceE: "ForceE", ForceRandom: "ForceRandom",
	CloneMachine: "CloneMachine", CloneBlockN: "CloneBlockN", CloneBlockW: "CloneBlockW", CloneBlockS: "CloneBlockS", CloneBlockE: "CloneBlockE",
	ToggleFloor: "ToggleFloor", ToggleWall: "ToggleWall",
	ThinWallN: "ThinWallN", ThinWallW: "ThinWallW", ThinWallS: "ThinWallS", ThinWallE: "ThinWallE", ThinWallSE: "ThinWallSE",
	HiddenWall: "HiddenWall", InvisibleWall: "InvisibleWall", RealBlueWall: "RealBlueWall", FakeBlueWall: "FakeBlueWall",
	GreenButton: "GreenButton", RedButton: "RedButton", BrownButton: "BrownButton", BlueButton: "BlueButton",
	Teleport: "Teleport", BearTrap: "BearTrap", RecessedWall: "RecessedWall",
}

var terrainByName = func() map[string]Terrain {
	m := make(map[string]Terrain, terrainCount)
	for t, name := range terrainNames {
		m[name] = Terrain(t)
	}
	return m
}()

func (t Terrain) String() string {
	if int(t) < len(terrainNames) {
		return terrainNames[t]
	}
	return "Unknown"
}

// ParseTerrain maps a legend name to a Terrain, as used by the JSON level loader.
func ParseTerrain(s string) (Terrain, error) {
	if t, ok := terrainByName[s]; ok {
		return t, nil
	}
	return Blank, fmt.Errorf("chipcore: unknown terrain type %q", s)
}

// IsWall reports whether the terrain is one of the "wall-family" tiles:
// walls, dirt block, clone machine, blue walls, toggle wall and the four
// locks. cmd/levelpreview draws all of them in the wall color.
func (t Terrain) IsWall() bool {
	switch t {
	case Wall, DirtBlock, CloneMachine, FakeBlueWall, RealBlueWall, ToggleWall,
		RedLock, BlueLock, GreenLock, YellowLock:
		return true
	default:
		return false
	}
}

// solid-flags bitmask, thin-wall-panel bits.
const (
	solidWall  uint8 = 0xF
	thinWallN  uint8 = 0x1
	thinWallE  uint8 = 0x2
	thinWallS  uint8 = 0x4
	thinWallW  uint8 = 0x8
)

// SolidFlags is a per-entity-kind table of which conditionally-solid terrains
// block that entity. Grounded on movement.rs's SolidFlags struct.
type SolidFlags struct {
	Gravel       bool
	Fire         bool
	Dirt         bool
	Water        bool
	Exit         bool
	BlueFake     bool
	RecessedWall bool
	Keys         bool
	SolidKey     bool
	Boots        bool
	Chips        bool
	Creatures    bool
	Player       bool
	Thief        bool
	Hint         bool
}

// terrainSolidFlags returns the solid-flags byte for a terrain given an
// entity's conditional-solidity table. Grounded on movement.rs's
// terrain_solid_flags (the movement.rs variant is authoritative per
// spec.md's design notes; it treats Blank as passable, unlike physics.rs).
func terrainSolidFlags(t Terrain, flags *SolidFlags) uint8 {
	switch t {
	case Blank, Floor:
		return 0
	case Wall:
		return solidWall
	case Socket:
		return boolMask(flags.Chips)
	case BlueLock, RedLock, GreenLock, YellowLock:
		return boolMask(flags.Keys)
	case Hint:
		return 0
	case Exit:
		return boolMask(flags.Exit)
	case FakeExit:
		return 0
	case Water:
		return boolMask(flags.Water)
	case WaterHazard:
		return solidWall
	case Fire:
		return boolMask(flags.Fire)
	case Dirt:
		return boolMask(flags.Dirt)
	case DirtBlock:
		return solidWall
	case Gravel:
		return boolMask(flags.Gravel)
	case Ice:
		return 0
	case IceNW:
		return thinWallN | thinWallW
	case IceNE:
		return thinWallN | thinWallE
	case IceSW:
		return thinWallS | thinWallW
	case IceSE:
		return thinWallS | thinWallE
	case ForceN, ForceW, ForceS, ForceE, ForceRandom:
		return 0
	case CloneMachine, CloneBlockN, CloneBlockW, CloneBlockS, CloneBlockE:
		return solidWall
	case ToggleFloor:
		return 0
	case ToggleWall:
		return solidWall
	case ThinWallN:
		return thinWallN
	case ThinWallW:
		return thinWallW
	case ThinWallS:
		return thinWallS
	case ThinWallE:
		return thinWallE
	case ThinWallSE:
		return thinWallS | thinWallE
	case HiddenWall, InvisibleWall, RealBlueWall:
		return solidWall
	case FakeBlueWall:
		return boolMask(flags.BlueFake)
	case GreenButton, RedButton, BrownButton, BlueButton:
		return 0
	case Teleport, BearTrap:
		return 0
	case RecessedWall:
		return boolMask(flags.RecessedWall)
	default:
		panic(fmt.Errorf("chipcore: unhandled terrain variant %d", t))
	}
}

func boolMask(b bool) uint8 {
	if b {
		return solidWall
	}
	return 0
}

// panelForExit returns the thin-wall bit blocking exit from a tile in the
// given step direction.
func panelForExit(dir Compass) uint8 {
	switch dir {
	case Up:
		return thinWallN
	case Left:
		return thinWallW
	case Down:
		return thinWallS
	case Right:
		return thinWallE
	default:
		panic(fmt.Errorf("chipcore: invalid compass value %d", dir))
	}
}

// panelForEntry returns the thin-wall bit blocking entry into a tile from the
// given step direction (the opposing wall of the destination tile).
func panelForEntry(dir Compass) uint8 {
	switch dir {
	case Up:
		return thinWallS
	case Left:
		return thinWallE
	case Down:
		return thinWallN
	case Right:
		return thinWallW
	default:
		panic(fmt.Errorf("chipcore: invalid compass value %d", dir))
	}
}
