package chipcore

import "testing"

func TestEntityMapAllocGetRemove(t *testing.T) {
	m := NewEntityMap()
	if m.IsValid(InvalidHandle) {
		t.Fatal("InvalidHandle must never be valid")
	}

	h1 := m.Alloc(Entity{Kind: KindPlayer, Pos: V2(1, 1)})
	h2 := m.Alloc(Entity{Kind: KindChip, Pos: V2(2, 2)})

	if !m.IsValid(h1) || !m.IsValid(h2) {
		t.Fatal("freshly allocated handles must be valid")
	}
	if m.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", m.Len())
	}

	removed := m.Remove(h1)
	if removed.Kind != KindPlayer {
		t.Fatalf("Remove returned kind %v, want Player", removed.Kind)
	}
	if m.IsValid(h1) {
		t.Fatal("h1 must be invalid after Remove")
	}
	if m.Get(h2).Pos != V2(2, 2) {
		t.Fatal("unrelated handle must be unaffected by removing another")
	}
}

func TestEntityMapReusesFreedSlots(t *testing.T) {
	m := NewEntityMap()
	h1 := m.Alloc(Entity{Kind: KindBlock})
	m.Remove(h1)
	h2 := m.Alloc(Entity{Kind: KindIceBlock})
	if h1 != h2 {
		t.Fatalf("expected freed slot %d to be reused, got new handle %d", h1, h2)
	}
	if m.Get(h2).Kind != KindIceBlock {
		t.Fatal("reused slot must hold the new entity, not the old one")
	}
}

func TestEntityMapRemoveInvalidPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("Remove of an invalid handle must panic")
		}
	}()
	m := NewEntityMap()
	m.Remove(EntityHandle(42))
}

func TestEntityMapTakePutRoundTrip(t *testing.T) {
	m := NewEntityMap()
	h := m.Alloc(Entity{Kind: KindTank, Pos: V2(3, 3)})

	ent := m.Take(h)
	if m.Get(h) != nil {
		t.Fatal("a taken slot must not be visible via Get")
	}
	ent.Pos = V2(4, 4)
	m.Put(ent)

	if got := m.Get(h); got == nil || got.Pos != V2(4, 4) {
		t.Fatal("Put must restore the (possibly mutated) entity to its slot")
	}
}

func TestEntityMapIterSkipsFreeSlots(t *testing.T) {
	m := NewEntityMap()
	h1 := m.Alloc(Entity{Kind: KindBug})
	_ = m.Alloc(Entity{Kind: KindTeeth})
	m.Remove(h1)

	seen := 0
	m.Iter(func(e *Entity) { seen++ })
	if seen != 1 {
		t.Fatalf("Iter visited %d entities, want 1", seen)
	}
}
