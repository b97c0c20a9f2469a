// Package sessionpool exposes the latest committed GameState as an
// immutable snapshot for HTTP clients polling between ticks, without a lock.
// Adapted from fight-club/internal/game/game_snapshot.go's triple-buffered
// SnapshotPool: spec.md §5 allows the state to be "borrowed immutably"
// between ticks, which is exactly the guarantee that pool gave the
// teacher's renderer.
package sessionpool

import (
	"sync/atomic"
	"time"

	"chipsim/internal/chipcore"
)

// EntitySnapshot is an immutable copy of one entity for presentation.
type EntitySnapshot struct {
	Handle chipcore.EntityHandle
	Kind   chipcore.EntityKind
	X, Y   int32
	Hidden bool
}

// StateSnapshot is a complete immutable simulation state for rendering or
// polling, one per committed tick.
type StateSnapshot struct {
	Sequence  uint64
	Timestamp time.Time
	Tick      uint32
	Steps     int32
	Bonks     int32
	Activity  chipcore.PlayerActivity

	Entities []EntitySnapshot
	Events   []chipcore.GameEvent
}

// Pool pre-allocates snapshots to avoid GC pressure and uses triple
// buffering for a lock-free producer/consumer handoff, grounded directly
// on game_snapshot.go's SnapshotPool.
type Pool struct {
	snapshots [3]StateSnapshot
	maxEnt    int
	writeIdx  uint32
	readIdx   uint32
	sequence  uint64
}

// NewPool creates a pool whose snapshot buffers are pre-sized to maxEntities.
func NewPool(maxEntities int) *Pool {
	p := &Pool{maxEnt: maxEntities}
	for i := range p.snapshots {
		p.snapshots[i] = StateSnapshot{
			Entities: make([]EntitySnapshot, 0, maxEntities),
		}
	}
	return p
}

// AcquireWrite returns the next write slot with slices reset but capacity
// preserved. Producer-only; call once per committed tick.
func (p *Pool) AcquireWrite() *StateSnapshot {
	idx := atomic.AddUint32(&p.writeIdx, 1) % 3
	snap := &p.snapshots[idx]
	snap.Entities = snap.Entities[:0]
	snap.Events = snap.Events[:0]
	snap.Sequence = atomic.AddUint64(&p.sequence, 1)
	snap.Timestamp = time.Now()
	return snap
}

// PublishWrite marks the last AcquireWrite'd snapshot as ready for readers.
func (p *Pool) PublishWrite() {
	atomic.StoreUint32(&p.readIdx, atomic.LoadUint32(&p.writeIdx))
}

// AcquireRead returns the latest published snapshot. Safe to call
// concurrently with AcquireWrite/PublishWrite from any number of readers.
func (p *Pool) AcquireRead() *StateSnapshot {
	idx := atomic.LoadUint32(&p.readIdx) % 3
	return &p.snapshots[idx]
}

// Fill populates snap from the live GameState. Called by the tick driver
// immediately after GameState.Tick, before PublishWrite.
func Fill(snap *StateSnapshot, s *chipcore.GameState, events []chipcore.GameEvent) {
	snap.Tick = s.TickCount
	snap.Steps = s.Steps
	snap.Bonks = s.Bonks
	snap.Activity = s.Player.PsActivity()
	s.Entities.Iter(func(e *chipcore.Entity) {
		snap.Entities = append(snap.Entities, EntitySnapshot{
			Handle: e.Handle,
			Kind:   e.Kind,
			X:      e.Pos.X,
			Y:      e.Pos.Y,
			Hidden: e.Flags&chipcore.EFHidden != 0,
		})
	})
	snap.Events = append(snap.Events, events...)
}
