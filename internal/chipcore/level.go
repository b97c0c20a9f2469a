package chipcore

import "fmt"

// Level bounds, grounded on chipty/src/level.rs's FIELD_MIN/MAX_WIDTH/HEIGHT
// constants.
const (
	FieldMinWidth  = 3
	FieldMaxWidth  = 255
	FieldMinHeight = 3
	FieldMaxHeight = 255
)

// TrophyValues is a level's named time/step threshold, grounded on
// chipty/src/level.rs's TrophyValues.
type TrophyValues struct {
	Author int32
	Gold   int32
	Silver int32
	Bronze int32
}

// Trophies bundles the tick-count and step-count thresholds for a level,
// round-tripped as optional level metadata.
type Trophies struct {
	Ticks TrophyValues
	Steps TrophyValues
}

// CameraFocusTrigger is inert level metadata describing where a scripted
// camera pan should focus; chipsim has no renderer, so this is carried only
// so level JSON round-trips losslessly.
type CameraFocusTrigger struct {
	PlayerPos  Vec2i
	EntityIdx  int32
	EntityKind EntityKind
}

// FieldConnDto is the wire shape of a FieldConn.
type FieldConnDto struct {
	Src [2]int32 `json:"src"`
	Dst [2]int32 `json:"dst"`
}

// EntityDto is the wire shape of one level entity.
type EntityDto struct {
	Kind string `json:"kind"`
	Pos  [2]int32 `json:"pos"`
	Face string `json:"face,omitempty"`
}

// FieldDto is the wire shape of the static field: a legend mapping
// single-character glyphs to terrain names, and a row-major grid of glyphs.
type FieldDto struct {
	Width   int32             `json:"width"`
	Height  int32             `json:"height"`
	Legend  map[string]string `json:"legend"`
	Rows    []string          `json:"rows"`
	Conns   []FieldConnDto    `json:"conns,omitempty"`
}

// LevelDto is the full on-disk level format, grounded on
// chipty/src/level.rs's LevelDto.
type LevelDto struct {
	Name          string               `json:"name"`
	Author        string               `json:"author,omitempty"`
	ChipsRequired int                  `json:"chips_required"`
	TimeLimit     int32                `json:"time_limit"`
	Field         FieldDto             `json:"field"`
	Entities      []EntityDto          `json:"entities"`
	Trophies      *Trophies            `json:"trophies,omitempty"`
	CameraFocus   []CameraFocusTrigger `json:"camera_focus,omitempty"`
}

// ParseLevel validates and converts a LevelDto into a playable GameState.
// Grounded on chipty/src/level.rs's LevelDto::normalize plus field.rs's
// parse.
func ParseLevel(dto LevelDto) (*GameState, error) {
	w, h := dto.Field.Width, dto.Field.Height
	if w < FieldMinWidth || w > FieldMaxWidth || h < FieldMinHeight || h > FieldMaxHeight {
		return nil, fmt.Errorf("chipcore: level %q field size %dx%d out of bounds [%d-%d]x[%d-%d]",
			dto.Name, w, h, FieldMinWidth, FieldMaxWidth, FieldMinHeight, FieldMaxHeight)
	}
	if int32(len(dto.Field.Rows)) != h {
		return nil, fmt.Errorf("chipcore: level %q declares height %d but has %d rows", dto.Name, h, len(dto.Field.Rows))
	}

	field := NewField(w, h)
	for y, row := range dto.Field.Rows {
		runes := []rune(row)
		if int32(len(runes)) != w {
			return nil, fmt.Errorf("chipcore: level %q row %d has width %d, want %d", dto.Name, y, len(runes), w)
		}
		for x, ch := range runes {
			name, ok := dto.Field.Legend[string(ch)]
			if !ok {
				return nil, fmt.Errorf("chipcore: level %q legend missing glyph %q", dto.Name, string(ch))
			}
			t, err := ParseTerrain(name)
			if err != nil {
				return nil, fmt.Errorf("chipcore: level %q: %w", dto.Name, err)
			}
			field.SetTerrain(Vec2i{X: int32(x), Y: int32(y)}, t)
		}
	}
	for _, c := range dto.Field.Conns {
		field.Conns = append(field.Conns, FieldConn{
			Src: Vec2i{X: c.Src[0], Y: c.Src[1]},
			Dst: Vec2i{X: c.Dst[0], Y: c.Dst[1]},
		})
	}

	s := NewGameState(field, dto.ChipsRequired)
	if dto.TimeLimit > 0 {
		s.TimeLeft = dto.TimeLimit
		s.TimeState = TimeRunning
	} else {
		s.TimeLeft = -1
		s.TimeState = TimeFrozen
	}

	entities := normalizeEntities(dto.Entities)
	for _, ent := range entities {
		kind, err := ParseEntityKind(ent.Kind)
		if err != nil {
			return nil, fmt.Errorf("chipcore: level %q: %w", dto.Name, err)
		}
		args := EntityArgs{Kind: kind, Pos: Vec2i{X: ent.Pos[0], Y: ent.Pos[1]}}
		if ent.Face != "" {
			dir, derr := parseCompassName(ent.Face)
			if derr != nil {
				return nil, fmt.Errorf("chipcore: level %q: %w", dto.Name, derr)
			}
			args.FaceDir = &dir
		}
		s.SpawnEntity(args)
	}
	if s.PlayerHandle == InvalidHandle {
		return nil, fmt.Errorf("chipcore: level %q has no Player entity", dto.Name)
	}
	return s, nil
}

// normalizeEntities sorts the level's entity list by the same group key the
// original uses, ensuring deterministic handle-allocation order regardless
// of the author's authoring order. Grounded on chipty/src/level.rs's
// LevelDto::normalize / sort_entities.
func normalizeEntities(in []EntityDto) []EntityDto {
	out := append([]EntityDto(nil), in...)
	groupOf := func(name string) int {
		k, err := ParseEntityKind(name)
		if err != nil {
			return 99
		}
		return k.sortGroup()
	}
	for i := 1; i < len(out); i++ {
		j := i
		for j > 0 && groupOf(out[j-1].Kind) > groupOf(out[j].Kind) {
			out[j-1], out[j] = out[j], out[j-1]
			j--
		}
	}
	return out
}

func parseCompassName(s string) (Compass, error) {
	switch s {
	case "Up":
		return Up, nil
	case "Left":
		return Left, nil
	case "Down":
		return Down, nil
	case "Right":
		return Right, nil
	default:
		return 0, fmt.Errorf("chipcore: unknown facing direction %q", s)
	}
}
