package chipcore

// Error handling in this package follows spec.md §7's split: anything that
// indicates a corrupt in-memory invariant (a dangling EntityHandle, a
// mismatched arena slot state, an out-of-bounds Field access from trusted
// internal callers) panics with a descriptive fmt.Errorf, grounded on the
// `panic!`-based assertions in original_source/chipcore/src/entitymap.rs.
// Anything that can legitimately fail on untrusted input — a malformed
// level JSON document, an out-of-range legend glyph, a corrupt replay seed
// — returns an error wrapped with fmt.Errorf("...: %w", err), matching the
// teacher's error-wrapping convention throughout internal/ipc and
// internal/api. There is no third category: chipcore never retries, logs,
// or swallows an error on its own, leaving that to its callers.
