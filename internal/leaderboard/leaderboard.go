// Package leaderboard tracks best (ticks, steps) completions per level.
// Adapted from fight-club/internal/game/leaderboard.go: the same
// skip-list-backed sorted-rank structure, repurposed from
// kills*100-deaths*10 kill-count standings to ticks-ascending standings
// (fewer ticks is a better score), with step count as a tiebreaker folded
// into the stored score rather than the primary ordering.
package leaderboard

import (
	"chipsim/internal/game/spatial"
	"math"
	"sync"
)

// Entry is one player's best completion of a level.
type Entry struct {
	PlayerID string
	Ticks    uint32
	Steps    int32
	Rank     int
}

// score packs ticks into the integer part and steps into a fractional
// tiebreaker so that fewer ticks always outranks more ticks regardless of
// step count, and fewer steps wins only between equal tick counts. The
// skip list orders by descending score, so we negate.
func score(ticks uint32, steps int32) float64 {
	return -(float64(ticks) + float64(steps)/1e6)
}

// Board is a per-level leaderboard.
type Board struct {
	skipList *spatial.SkipList
	mu       sync.RWMutex
}

// NewBoard creates an empty leaderboard for one level.
func NewBoard() *Board {
	return &Board{skipList: spatial.NewSkipList()}
}

// Submit records a completion, keeping only the player's best (lowest
// ticks, then lowest steps) result. Grounded on leaderboard.go's
// UpdatePlayer; chipsim additionally compares against the existing score
// since a player may submit multiple replays for the same level.
func (b *Board) Submit(playerID string, ticks uint32, steps int32) {
	b.mu.Lock()
	defer b.mu.Unlock()

	newScore := score(ticks, steps)
	if existing, ok := b.skipList.GetScore(playerID); ok && existing >= newScore {
		return
	}
	b.skipList.Insert(playerID, newScore)
}

// Rank returns a player's 1-indexed rank, or 0 if they have no recorded run.
func (b *Board) Rank(playerID string) int {
	return b.skipList.GetRank(playerID)
}

// Top returns the best n completions, best first.
func (b *Board) Top(n int) []Entry {
	raw := b.skipList.GetRange(1, n)
	out := make([]Entry, len(raw))
	for i, e := range raw {
		ticks, steps := unscore(e.Score)
		out[i] = Entry{PlayerID: e.Key, Ticks: ticks, Steps: steps, Rank: i + 1}
	}
	return out
}

// unscore recovers the original (ticks, steps) pair, accurate as long as
// steps stays under 1e6 (spec.md's level bounds make that a generous cap).
func unscore(s float64) (uint32, int32) {
	s = -s
	ticks := uint32(s)
	steps := int32(math.Round((s - float64(ticks)) * 1e6))
	return ticks, steps
}

// Length reports how many players have a recorded run.
func (b *Board) Length() int {
	return b.skipList.Length()
}

// MeetsTrophy reports whether ticks clears the given trophy threshold (a
// non-positive threshold always passes); steps are not compared.
func MeetsTrophy(ticks uint32, threshold int32) bool {
	return threshold <= 0 || int32(ticks) <= threshold
}
