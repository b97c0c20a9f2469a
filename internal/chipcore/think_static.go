package chipcore

// Pickups, the socket, the thief, and bombs never move under their own
// power; their only behaviour is the collectOnEntry side effects folded
// into the player's tryMove. Registering no-op vtables for them keeps
// GameState.Tick's per-entity dispatch uniform across every EntityKind
// rather than special-casing "does this kind move" in the tick loop itself.
func init() {
	inert := &EntityVTable{MovementPhase: noAction, ActionPhase: noAction, TerrainPhase: noAction}
	for _, k := range []EntityKind{
		KindChip, KindSocket, KindFlippers, KindFireBoots, KindIceSkates, KindSuctionBoots,
		KindBlueKey, KindRedKey, KindGreenKey, KindYellowKey, KindThief, KindBomb,
		KindBlock, KindIceBlock,
	} {
		vtables[k] = inert
	}
}
