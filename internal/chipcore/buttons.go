package chipcore

// interactTerrainPass scans every entity for a button press and applies the
// corresponding global effect exactly once per press (latched by
// EFButtonDown so that standing on a button does not re-fire every tick).
// Grounded on physics.rs's InteractTerrainState/interact_terrain — this
// logic is not duplicated in the authoritative movement.rs, which covers
// only the move primitives, so physics.rs remains the grounding source here.
func (s *GameState) interactTerrainPass() {
	s.Entities.Iter(func(e *Entity) {
		if e.Flags&EFTemplate != 0 {
			return
		}
		t := s.Field.GetTerrain(e.Pos)
		onButton := t == GreenButton || t == RedButton || t == BrownButton || t == BlueButton
		wasDown := e.Flags&EFButtonDown != 0

		if onButton && !wasDown {
			e.Flags |= EFButtonDown
			s.pressButton(t, e.Pos)
		} else if !onButton && wasDown {
			e.Flags &^= EFButtonDown
			// brown buttons need no "entity left" handling here:
			// getTrapState recomputes from occupancy every tick, so the
			// connected trap closes on its own once nothing stands on the
			// button.
		}

		if t == BrownButton && onButton {
			s.pressOnceBrown(e.Pos)
		}
	})
}

// pressButton applies the one-shot global effect of stepping onto a button
// tile for the first time this visit.
func (s *GameState) pressButton(t Terrain, pos Vec2i) {
	switch t {
	case GreenButton:
		s.toggleWalls()
	case BlueButton:
		s.turnAroundTanks()
	case RedButton:
		s.triggerClonerFor(pos)
	case BrownButton:
		s.pressOnceBrown(pos)
	}
	s.Events.Push(GameEvent{Tick: s.TickCount, Kind: EventSoundFx, Pos: pos, Sound: SoundButtonPressed})
}

// pressOnceBrown releases whatever is trapped on the bear trap wired to the
// brown button at pos for this tick. interactTerrainPass calls it on every
// tick an entity stands on the button (pruneRemoved clears EFReleased again
// at the end of each tick), so the release holds for as long as the button
// stays occupied. The trap's open/closed state itself is never latched
// here — getTrapState recomputes it from button occupancy on demand.
func (s *GameState) pressOnceBrown(pos Vec2i) {
	conn, ok := s.Field.FindConnBySrc(pos)
	if !ok {
		return
	}
	s.releaseEntitiesAt(conn.Dst)
}

// triggerClonerFor fires the cloner wired to the red button at pos (the
// first connection whose source is pos), queuing a clone spawn for
// realization after this tick's time increment.
func (s *GameState) triggerClonerFor(pos Vec2i) {
	conn, ok := s.Field.FindConnBySrc(pos)
	if !ok {
		return
	}
	machine := s.blockAt(conn.Dst)
	if machine == nil {
		for _, h := range s.Spatial.At(conn.Dst) {
			if e := s.Entities.Get(h); e != nil && e.Flags&EFTemplate != 0 {
				machine = e
				break
			}
		}
	}
	if machine == nil {
		return
	}
	s.pendingClone = append(s.pendingClone, cloneSpawn{
		machinePos: conn.Dst,
		args:       machine.ToEntityArgs(),
	})
}

// releaseEntitiesAt sets EFReleased on every trapped entity at pos, letting
// a brown-button-opened bear trap let go this tick; EFTrapped itself is left
// for releaseTrapsPass to clear.
func (s *GameState) releaseEntitiesAt(pos Vec2i) {
	for _, h := range s.Spatial.At(pos) {
		e := s.Entities.Get(h)
		if e != nil && e.Flags&EFTrapped != 0 {
			e.Flags |= EFReleased
		}
	}
}

// releaseTrapsPass clears EFTrapped for every entity that is off a bear trap
// or on an open one, and sets it for every entity on a closed trap.
func (s *GameState) releaseTrapsPass() {
	s.Entities.Iter(func(e *Entity) {
		if e.Flags&EFTemplate != 0 {
			return
		}
		t := s.Field.GetTerrain(e.Pos)
		if t != BearTrap {
			e.Flags &^= EFTrapped
			return
		}
		if s.getTrapState(e.Pos) {
			e.Flags &^= EFTrapped
		} else {
			e.Flags |= EFTrapped
		}
	})
}
