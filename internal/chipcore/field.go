package chipcore

import "fmt"

// FieldConn is a teleport or trigger wire between two tiles, grounded on
// chipty/src/level.rs's FieldConn and field.rs's connection scan helpers.
type FieldConn struct {
	Src Vec2i
	Dst Vec2i
}

// Field is the static (terrain + connection) layer of a level. Entities live
// in the owning GameState's EntityMap, not here. Grounded on
// original_source/chipcore/src/field.rs.
type Field struct {
	Width, Height int32
	terrain       []Terrain
	Conns         []FieldConn
}

// NewField allocates a blank field of the given size. Width and height must
// already satisfy the FieldMinWidth/MaxWidth/MinHeight/MaxHeight bounds
// (chipty/src/level.rs); NewField does not re-validate them.
func NewField(width, height int32) *Field {
	return &Field{
		Width:   width,
		Height:  height,
		terrain: make([]Terrain, width*height),
	}
}

// IsPosInside reports whether pos lies within the field's bounds. Grounded
// on field.rs's is_pos_inside.
func (f *Field) IsPosInside(pos Vec2i) bool {
	return pos.X >= 0 && pos.Y >= 0 && pos.X < f.Width && pos.Y < f.Height
}

func (f *Field) indexOf(pos Vec2i) (int, bool) {
	if !f.IsPosInside(pos) {
		return 0, false
	}
	return int(pos.Y*f.Width + pos.X), true
}

// GetTerrain returns the terrain at pos. Panics if pos is out of bounds,
// matching field.rs's get_terrain (callers are expected to bounds-check via
// IsPosInside first when pos comes from untrusted input).
func (f *Field) GetTerrain(pos Vec2i) Terrain {
	i, ok := f.indexOf(pos)
	if !ok {
		panic(fmt.Errorf("chipcore: GetTerrain out of bounds at %s", pos))
	}
	return f.terrain[i]
}

// TryGetTerrain is GetTerrain without the panic, for callers that only have
// a candidate position.
func (f *Field) TryGetTerrain(pos Vec2i) (Terrain, bool) {
	i, ok := f.indexOf(pos)
	if !ok {
		return Blank, false
	}
	return f.terrain[i], true
}

// SetTerrain overwrites the terrain at pos. Panics if pos is out of bounds.
func (f *Field) SetTerrain(pos Vec2i, t Terrain) {
	i, ok := f.indexOf(pos)
	if !ok {
		panic(fmt.Errorf("chipcore: SetTerrain out of bounds at %s", pos))
	}
	f.terrain[i] = t
}

// FindConnBySrc returns the connection whose source is pos, if any. Grounded
// on field.rs's find_conn_by_src.
func (f *Field) FindConnBySrc(pos Vec2i) (FieldConn, bool) {
	for _, c := range f.Conns {
		if c.Src == pos {
			return c, true
		}
	}
	return FieldConn{}, false
}

// FindConnByDst returns the connection whose destination is pos, if any —
// the inverse lookup of FindConnBySrc, used to find a bear trap's wired
// button (the trap is a connection's Dst, the button its Src).
func (f *Field) FindConnByDst(pos Vec2i) (FieldConn, bool) {
	for _, c := range f.Conns {
		if c.Dst == pos {
			return c, true
		}
	}
	return FieldConn{}, false
}

// FindTeleportDest resolves the destination tile for a teleport entered at
// src. Teleport tiles with no explicit connection wire to the next teleport
// tile found scanning the field in REVERSE reading order (bottom-to-top,
// right-to-left) from src, wrapping around, skipping src itself — this
// fallback-scan quirk is load-bearing for the CC1 replay corpus and is
// grounded exactly on field.rs's find_teleport_dest.
func (f *Field) FindTeleportDest(src Vec2i) (Vec2i, bool) {
	if c, ok := f.FindConnBySrc(src); ok {
		return c.Dst, true
	}
	total := int(f.Width * f.Height)
	srcIdx, ok := f.indexOf(src)
	if !ok {
		return Vec2i{}, false
	}
	for step := 1; step <= total; step++ {
		i := (srcIdx - step + total*2) % total
		pos := Vec2i{X: int32(i) % f.Width, Y: int32(i) / f.Width}
		if pos == src {
			continue
		}
		if f.terrain[i] == Teleport {
			return pos, true
		}
	}
	return Vec2i{}, false
}
