package chipcore

import "fmt"

// EntityHandle is a generational-ish reference into an EntityMap. The zero
// value is never valid. Grounded on original_source/chipcore/src/entitymap.rs's
// EntityHandle newtype.
type EntityHandle uint32

// InvalidHandle is the sentinel "no entity" handle.
const InvalidHandle EntityHandle = 0

// IsValid reports whether h is not the invalid sentinel. It does not prove
// the handle still refers to a live slot in any particular map.
func (h EntityHandle) IsValid() bool { return h != InvalidHandle }

// slotState tags what occupies a map slot.
type slotState uint8

const (
	slotFree slotState = iota
	slotOccupied
	slotTaken
)

// slot is the tagged union backing one EntityMap index: free (with a next-free
// link), occupied (holding a live entity), or taken (temporarily checked out
// via Take, to be returned via Put). Grounded on entitymap.rs's Slot enum.
type slot struct {
	state slotState
	next  uint32 // valid when state == slotFree
	ent   Entity // valid when state == slotOccupied
}

// EntityMap is a slot arena owning every Entity in a GameState, indexed by
// EntityHandle. Grounded on original_source/chipcore/src/entitymap.rs.
type EntityMap struct {
	slots    []slot
	freeHead uint32 // 1-based index of the first free slot, 0 means none
}

// NewEntityMap returns an empty map. Slot 0 is never used so that the zero
// EntityHandle value can serve as "invalid".
func NewEntityMap() *EntityMap {
	return &EntityMap{slots: make([]slot, 1)}
}

func (m *EntityMap) index(h EntityHandle) (uint32, bool) {
	i := uint32(h)
	if i == 0 || int(i) >= len(m.slots) {
		return 0, false
	}
	return i, true
}

// IsValid reports whether h currently refers to an occupied slot.
func (m *EntityMap) IsValid(h EntityHandle) bool {
	i, ok := m.index(h)
	if !ok {
		return false
	}
	return m.slots[i].state == slotOccupied
}

// Alloc inserts ent and returns its handle.
func (m *EntityMap) Alloc(ent Entity) EntityHandle {
	var i uint32
	if m.freeHead != 0 {
		i = m.freeHead
		m.freeHead = m.slots[i].next
	} else {
		m.slots = append(m.slots, slot{})
		i = uint32(len(m.slots) - 1)
	}
	ent.Handle = EntityHandle(i)
	m.slots[i] = slot{state: slotOccupied, ent: ent}
	return ent.Handle
}

// Remove deletes the entity at h, returning it. Panics if h is not occupied.
func (m *EntityMap) Remove(h EntityHandle) Entity {
	i, ok := m.index(h)
	if !ok || m.slots[i].state != slotOccupied {
		panic(fmt.Errorf("chipcore: remove of invalid entity handle %d", h))
	}
	ent := m.slots[i].ent
	m.slots[i] = slot{state: slotFree, next: m.freeHead}
	m.freeHead = i
	return ent
}

// Get returns a pointer to the entity at h, or nil if h is not occupied.
// The pointer is only valid until the next Alloc/Remove/Take/Put call.
func (m *EntityMap) Get(h EntityHandle) *Entity {
	i, ok := m.index(h)
	if !ok || m.slots[i].state != slotOccupied {
		return nil
	}
	return &m.slots[i].ent
}

// MustGet is Get but panics on a dangling handle, for call sites that have
// already established the handle must be live this tick.
func (m *EntityMap) MustGet(h EntityHandle) *Entity {
	ent := m.Get(h)
	if ent == nil {
		panic(fmt.Errorf("chipcore: dereference of invalid entity handle %d", h))
	}
	return ent
}

// Take checks the entity at h out of the map, marking its slot "taken" so
// that reentrant lookups fail loudly instead of aliasing, and returns a copy
// the caller owns until Put. Grounded on entitymap.rs's take/put pair, used
// by think functions that need to hold an owned Entity while also mutating
// other entities in the same map (e.g. a block pushed by a chasing creature).
func (m *EntityMap) Take(h EntityHandle) Entity {
	i, ok := m.index(h)
	if !ok || m.slots[i].state != slotOccupied {
		panic(fmt.Errorf("chipcore: take of invalid entity handle %d", h))
	}
	ent := m.slots[i].ent
	m.slots[i] = slot{state: slotTaken}
	return ent
}

// Put returns an entity previously removed via Take back into its slot.
func (m *EntityMap) Put(ent Entity) {
	i, ok := m.index(ent.Handle)
	if !ok || m.slots[i].state != slotTaken {
		panic(fmt.Errorf("chipcore: put of entity %d into a non-taken slot", ent.Handle))
	}
	m.slots[i] = slot{state: slotOccupied, ent: ent}
}

// Handles returns every currently-occupied handle, in slot order (ascending,
// deterministic creation order for ties broken elsewhere by sortGroup).
func (m *EntityMap) Handles() []EntityHandle {
	out := make([]EntityHandle, 0, len(m.slots))
	for i, s := range m.slots {
		if s.state == slotOccupied {
			out = append(out, EntityHandle(i))
		}
	}
	return out
}

// Iter calls fn for every occupied entity, in slot order. fn must not call
// Alloc or Remove on m.
func (m *EntityMap) Iter(fn func(*Entity)) {
	for i := range m.slots {
		if m.slots[i].state == slotOccupied {
			fn(&m.slots[i].ent)
		}
	}
}

// Len returns the number of occupied slots.
func (m *EntityMap) Len() int {
	n := 0
	for _, s := range m.slots {
		if s.state == slotOccupied {
			n++
		}
	}
	return n
}

// Clear empties the map, keeping its backing storage.
func (m *EntityMap) Clear() {
	m.slots = m.slots[:1]
	m.freeHead = 0
}
