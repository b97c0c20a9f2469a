package chipcore

// keyTerrainFor and keyEntityFor map a KeyColor to its lock terrain and key
// entity kind, used by SwapKeys.
func keyTerrainFor(c KeyColor) Terrain {
	switch c {
	case KeyBlue:
		return BlueLock
	case KeyRed:
		return RedLock
	case KeyGreen:
		return GreenLock
	default:
		return YellowLock
	}
}

func keyEntityFor(c KeyColor) EntityKind {
	switch c {
	case KeyBlue:
		return KindBlueKey
	case KeyRed:
		return KindRedKey
	case KeyGreen:
		return KindGreenKey
	default:
		return KindYellowKey
	}
}

// SwapKeys exchanges every lock terrain and every key/held-key of color a
// with color b across the whole field, used by level-variant generation
// tooling. Grounded on original_source/chipcore/src/edit.rs's
// GameState::swap_keys.
func (s *GameState) SwapKeys(a, b KeyColor) {
	lockA, lockB := keyTerrainFor(a), keyTerrainFor(b)
	for y := int32(0); y < s.Field.Height; y++ {
		for x := int32(0); x < s.Field.Width; x++ {
			pos := Vec2i{X: x, Y: y}
			switch s.Field.GetTerrain(pos) {
			case lockA:
				s.Field.SetTerrain(pos, lockB)
			case lockB:
				s.Field.SetTerrain(pos, lockA)
			}
		}
	}
	kindA, kindB := keyEntityFor(a), keyEntityFor(b)
	s.Entities.Iter(func(e *Entity) {
		switch e.Kind {
		case kindA:
			e.Kind = kindB
		case kindB:
			e.Kind = kindA
		}
	})
	s.Player.Keys[a], s.Player.Keys[b] = s.Player.Keys[b], s.Player.Keys[a]
}

// LevelBrush is a rectangular patch of terrain, entities, and connections
// that can be stamped elsewhere on the field, grounded on
// original_source/chipcore/src/edit.rs's brush type and
// chipty/src/level.rs's LevelBrush.
type LevelBrush struct {
	Width, Height int32
	Terrain       []Terrain
	Entities      []EntityArgs // positions are brush-local
	Conns         []FieldConn  // src/dst are brush-local
}

// ApplyBrush stamps brush onto the field with its origin at pos, offsetting
// every brush-local coordinate by pos. Tiles and entities that would fall
// outside the field are skipped rather than erroring, matching the
// original's brush_apply permissiveness (a brush dragged to the field edge
// simply clips).
func (s *GameState) ApplyBrush(pos Vec2i, brush LevelBrush) {
	for by := int32(0); by < brush.Height; by++ {
		for bx := int32(0); bx < brush.Width; bx++ {
			dst := Vec2i{X: pos.X + bx, Y: pos.Y + by}
			if !s.Field.IsPosInside(dst) {
				continue
			}
			s.Field.SetTerrain(dst, brush.Terrain[by*brush.Width+bx])
		}
	}
	for _, args := range brush.Entities {
		dst := pos.Add(args.Pos)
		if !s.Field.IsPosInside(dst) {
			continue
		}
		s.SpawnEntity(EntityArgs{Kind: args.Kind, Pos: dst, FaceDir: args.FaceDir})
	}
	for _, c := range brush.Conns {
		s.Field.Conns = append(s.Field.Conns, FieldConn{
			Src: pos.Add(c.Src),
			Dst: pos.Add(c.Dst),
		})
	}
}
