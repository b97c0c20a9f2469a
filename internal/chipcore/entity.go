package chipcore

import "fmt"

// EntityKind is the closed set of dynamic actor kinds. Grounded on
// chipty/src/level.rs's EntityKind ordering (used by sort_entities) and the
// per-kind files under original_source/chipcore/src/entities/.
type EntityKind uint8

const (
	KindPlayer EntityKind = iota
	KindChip
	KindSocket
	KindBlock
	KindIceBlock
	KindFlippers
	KindFireBoots
	KindIceSkates
	KindSuctionBoots
	KindBlueKey
	KindRedKey
	KindGreenKey
	KindYellowKey
	KindThief
	KindBomb
	KindBug
	KindFireBall
	KindPinkBall
	KindTank
	KindGlider
	KindTeeth
	KindWalker
	KindBlob
	KindParamecium

	entityKindCount
)

var entityKindNames = [entityKindCount]string{
	KindPlayer: "Player", KindChip: "Chip", KindSocket: "Socket",
	KindBlock: "Block", KindIceBlock: "IceBlock",
	KindFlippers: "Flippers", KindFireBoots: "FireBoots", KindIceSkates: "IceSkates", KindSuctionBoots: "SuctionBoots",
	KindBlueKey: "BlueKey", KindRedKey: "RedKey", KindGreenKey: "GreenKey", KindYellowKey: "YellowKey",
	KindThief: "Thief", KindBomb: "Bomb",
	KindBug: "Bug", KindFireBall: "FireBall", KindPinkBall: "PinkBall", KindTank: "Tank", KindGlider: "Glider",
	KindTeeth: "Teeth", KindWalker: "Walker", KindBlob: "Blob", KindParamecium: "Paramecium",
}

func (k EntityKind) String() string {
	if int(k) < len(entityKindNames) {
		return entityKindNames[k]
	}
	return "Unknown"
}

var entityKindByName = func() map[string]EntityKind {
	m := make(map[string]EntityKind, entityKindCount)
	for k, name := range entityKindNames {
		m[name] = EntityKind(k)
	}
	return m
}()

// ParseEntityKind maps a JSON entity kind name to an EntityKind.
func ParseEntityKind(s string) (EntityKind, error) {
	if k, ok := entityKindByName[s]; ok {
		return k, nil
	}
	return 0, fmt.Errorf("chipcore: unknown entity kind %q", s)
}

// sortGroup fixes creation order for deterministic handle assignment,
// grounded on chipty/src/level.rs's sort_entities group key.
func (k EntityKind) sortGroup() int {
	switch k {
	case KindPlayer:
		return 1
	case KindBlock, KindIceBlock:
		return 2
	case KindChip, KindFlippers, KindFireBoots, KindIceSkates, KindSuctionBoots,
		KindBlueKey, KindRedKey, KindGreenKey, KindYellowKey:
		return 3
	case KindSocket, KindThief:
		return 4
	default:
		return 5
	}
}

// Entity flag bits, grounded on spec.md §3's flags bitset.
const (
	EFHidden      uint32 = 1 << iota // item/creature concealed under a block or fire
	EFTemplate                       // cloner prototype; never moves, ignored by most interactions
	EFTrapped                        // currently held by a closed bear trap
	EFReleased                       // just released from a bear trap this tick
	EFMomentum                       // carrying terrain-driven momentum across a bear-trap stop
	EFTerrainMove                    // last move was forced by terrain, not player input
	EFNewPos                         // entity moved to its current tile this tick
	EFRemove                         // marked for deletion at the end of this tick
	EFButtonDown                     // latched on a button tile; clears only on leaving it
)

// EntityArgs is the level-file / spawn representation of an entity: enough
// to create it from JSON or from a clone spawn.
type EntityArgs struct {
	Kind    EntityKind
	Pos     Vec2i
	FaceDir *Compass
}

// Entity is the dynamic, owned-by-EntityMap actor value.
type Entity struct {
	Handle   EntityHandle
	Kind     EntityKind
	Pos      Vec2i
	BaseSpd  int32
	FaceDir  *Compass
	StepDir  *Compass
	StepSpd  int32
	StepTime int32
	Flags    uint32
	Data     *EntityVTable
}

// IsTrapped reports whether the entity is currently held by a closed bear trap.
func (e *Entity) IsTrapped() bool {
	return e.Flags&EFTrapped != 0 && e.Flags&EFReleased == 0
}

func (e *Entity) ToEntityArgs() EntityArgs {
	return EntityArgs{Kind: e.Kind, Pos: e.Pos, FaceDir: e.FaceDir}
}

// EntityVTable binds per-kind behaviour: three think phases plus the
// entity's conditional solid-flags table. Grounded on spec.md §3/§4.7's
// EntityVTable and the per-kind `static DATA`/`static FUNCS` tables in
// original_source/chipcore/src/entities/*.rs.
type EntityVTable struct {
	MovementPhase func(s *GameState, ent *Entity)
	ActionPhase   func(s *GameState, ent *Entity)
	TerrainPhase  func(s *GameState, ent *Entity)
	Flags         SolidFlags
}

// vtables is indexed by EntityKind; populated in think_player.go and
// think_creatures.go's init functions.
var vtables [entityKindCount]*EntityVTable

func vtableFor(k EntityKind) *EntityVTable {
	vt := vtables[k]
	if vt == nil {
		panic(fmt.Errorf("chipcore: no vtable registered for entity kind %s", k))
	}
	return vt
}
