package replay

import (
	"testing"

	"chipsim/internal/chipcore"
)

// newWalledLevel builds a minimal w x h field of Floor tiles with a Wall
// border, spawning the player at playerPos, mirroring chipcore's own test
// helper since that one is unexported.
func newWalledLevel(w, h int32, playerPos chipcore.Vec2i, seed uint64) *chipcore.GameState {
	field := chipcore.NewField(w, h)
	for y := int32(0); y < h; y++ {
		for x := int32(0); x < w; x++ {
			pos := chipcore.V2(x, y)
			if x == 0 || y == 0 || x == w-1 || y == h-1 {
				field.SetTerrain(pos, chipcore.Wall)
			} else {
				field.SetTerrain(pos, chipcore.Floor)
			}
		}
	}
	s := chipcore.NewGameState(field, 0)
	s.Rng = chipcore.NewRandom(seed)
	s.TimeLeft = -1
	s.TimeState = chipcore.TimeFrozen
	s.SpawnEntity(chipcore.EntityArgs{Kind: chipcore.KindPlayer, Pos: playerPos})
	return s
}

// TestPlaybackReproducesRecordedRun exercises the save/load/Playback round
// trip this package exists for: a recorded run's ReplayDto, fed into a fresh
// GameState, must reach the exact same tick/step/bonk counters as the
// original, the corpus-replay determinism property from spec.md §8.
func TestPlaybackReproducesRecordedRun(t *testing.T) {
	inputs := []chipcore.Input{
		{Right: true}, {Right: true}, {Down: true}, {Left: true}, {Up: true},
	}

	recorded := newWalledLevel(8, 8, chipcore.V2(3, 3), 42)
	for _, in := range inputs {
		recorded.Tick(in)
	}
	dto := recorded.SaveReplay("2026-07-31", inputs)

	dir := t.TempDir()
	store, err := NewStore(dir)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	path, err := store.Save("test-level", dto)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := store.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	fresh := newWalledLevel(8, 8, chipcore.V2(3, 3), 0)
	ok, err := Playback(fresh, loaded)
	if err != nil {
		t.Fatalf("Playback: %v", err)
	}
	if !ok {
		t.Fatalf("Playback did not reproduce the recorded run: ticks=%d/%d steps=%d/%d bonks=%d/%d",
			fresh.TickCount, loaded.Ticks, fresh.Steps, loaded.Steps, fresh.Bonks, loaded.Bonks)
	}
}

// TestPlaybackDetectsDivergence confirms Playback reports a mismatch when the
// ReplayDto's recorded counters don't match what the input stream actually
// produces, so a corrupted or hand-edited replay file is caught rather than
// silently accepted.
func TestPlaybackDetectsDivergence(t *testing.T) {
	inputs := []chipcore.Input{{Right: true}, {Right: true}}

	recorded := newWalledLevel(8, 8, chipcore.V2(3, 3), 7)
	for _, in := range inputs {
		recorded.Tick(in)
	}
	dto := recorded.SaveReplay("2026-07-31", inputs)
	dto.Steps++ // corrupt the recorded outcome

	fresh := newWalledLevel(8, 8, chipcore.V2(3, 3), 0)
	ok, err := Playback(fresh, dto)
	if err != nil {
		t.Fatalf("Playback: %v", err)
	}
	if ok {
		t.Fatal("Playback reported a match against a corrupted replay dto")
	}
}
