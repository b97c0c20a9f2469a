package chipcore

// SpatialIndex is a dense, tile-indexed index of which entities occupy each
// tile, letting movement/collision checks avoid an O(n) scan of every
// entity. Adapted from the teacher's internal/game/spatial/grid.go (a
// radius-bucketed grid over continuous coordinates) re-keyed to exact
// integer tile coordinates, since a Chip's Challenge field is itself a
// fixed, small grid and needs no radius bucketing.
type SpatialIndex struct {
	width, height int32
	buckets       [][]EntityHandle
}

// NewSpatialIndex allocates an index sized to a field of the given
// dimensions.
func NewSpatialIndex(width, height int32) *SpatialIndex {
	return &SpatialIndex{
		width:   width,
		height:  height,
		buckets: make([][]EntityHandle, width*height),
	}
}

func (q *SpatialIndex) bucket(pos Vec2i) int {
	return int(pos.Y*q.width + pos.X)
}

func (q *SpatialIndex) inBounds(pos Vec2i) bool {
	return pos.X >= 0 && pos.Y >= 0 && pos.X < q.width && pos.Y < q.height
}

// Insert records h as occupying pos.
func (q *SpatialIndex) Insert(pos Vec2i, h EntityHandle) {
	if !q.inBounds(pos) {
		return
	}
	b := q.bucket(pos)
	q.buckets[b] = append(q.buckets[b], h)
}

// Remove drops h from pos's bucket, if present.
func (q *SpatialIndex) Remove(pos Vec2i, h EntityHandle) {
	if !q.inBounds(pos) {
		return
	}
	b := q.bucket(pos)
	list := q.buckets[b]
	for i, other := range list {
		if other == h {
			q.buckets[b] = append(list[:i], list[i+1:]...)
			return
		}
	}
}

// Move relocates h from src to dst in one call.
func (q *SpatialIndex) Move(src, dst Vec2i, h EntityHandle) {
	q.Remove(src, h)
	q.Insert(dst, h)
}

// At returns the handles occupying pos. The returned slice aliases internal
// storage and must not be retained across a Insert/Remove/Move call.
func (q *SpatialIndex) At(pos Vec2i) []EntityHandle {
	if !q.inBounds(pos) {
		return nil
	}
	return q.buckets[q.bucket(pos)]
}

// Rebuild clears and repopulates the index from the current entity map.
// Nothing in this repository calls it: SpawnEntity, moveEntityTo and
// pruneRemoved keep the index current incrementally.
func (q *SpatialIndex) Rebuild(entities *EntityMap) {
	for i := range q.buckets {
		q.buckets[i] = q.buckets[i][:0]
	}
	entities.Iter(func(e *Entity) {
		if e.Flags&EFTemplate != 0 {
			return
		}
		q.Insert(e.Pos, e.Handle)
	})
}
