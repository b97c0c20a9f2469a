package chipcore

// Input is one tick's worth of player intent, grounded on spec.md §4.2/§6.2.
type Input struct {
	Up, Left, Down, Right bool
	Drop                  bool // release the currently-held item (not yet used by movement, reserved)
}

// AnyArrows reports whether any directional key is held.
func (in Input) AnyArrows() bool {
	return in.Up || in.Left || in.Down || in.Right
}

// Compass resolves the input to a single step direction by fixed priority:
// Up, then Down, then Left, then Right. Input carries no press order, so
// the most recently pressed key does not win over an earlier one.
// dir, ok is (zero, false) when no direction is held.
func (in Input) Compass() (Compass, bool) {
	switch {
	case in.Up:
		return Up, true
	case in.Down:
		return Down, true
	case in.Left:
		return Left, true
	case in.Right:
		return Right, true
	default:
		return 0, false
	}
}

// EncodeInput packs an Input into the single byte used by the replay codec.
func EncodeInput(in Input) byte {
	var b byte
	if in.Up {
		b |= 1 << 0
	}
	if in.Left {
		b |= 1 << 1
	}
	if in.Down {
		b |= 1 << 2
	}
	if in.Right {
		b |= 1 << 3
	}
	if in.Drop {
		b |= 1 << 4
	}
	return b
}

// DecodeInput is the inverse of EncodeInput.
func DecodeInput(b byte) Input {
	return Input{
		Up:    b&(1<<0) != 0,
		Left:  b&(1<<1) != 0,
		Down:  b&(1<<2) != 0,
		Right: b&(1<<3) != 0,
		Drop:  b&(1<<4) != 0,
	}
}

// InputBuffer holds a single pending direction: a direction whose move was
// blocked this tick is buffered and used in place of the live input on the
// next tick. It has one slot only, with no separate horizontal and vertical
// entries.
type InputBuffer struct {
	pending   Compass
	hasPending bool
}

// Push records a desired direction for retry on a later tick.
func (b *InputBuffer) Push(dir Compass) {
	b.pending = dir
	b.hasPending = true
}

// Take returns and clears the buffered direction, if any.
func (b *InputBuffer) Take() (Compass, bool) {
	if !b.hasPending {
		return 0, false
	}
	b.hasPending = false
	return b.pending, true
}

// Peek reports the buffered direction without consuming it, used by slap to
// test for a perpendicular direction queued up behind the current step.
func (b *InputBuffer) Peek() (Compass, bool) {
	if !b.hasPending {
		return 0, false
	}
	return b.pending, true
}

// Clear discards any buffered direction.
func (b *InputBuffer) Clear() {
	b.hasPending = false
}
