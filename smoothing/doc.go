// Package smoothing renders continuous motion for a remotely driven agent
// from sparse, jittery position/velocity snapshots.
//
// Each Agent runs on a single tick goroutine. Snapshots and jump commands may
// be pushed from any goroutine; they are staged and applied together at the
// start of the next Tick, so a tick never observes a half-applied snapshot.
//
// Per tick, the time since the last accepted snapshot selects a Regime:
// Fresh runs dead reckoning and error correction, ExtrapolatingOnly runs
// dead reckoning alone, Frozen holds the rendered position. Height is owned
// by a local jump/fall machine that never reads network state.
package smoothing
