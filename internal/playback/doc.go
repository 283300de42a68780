// Package playback follows audio playback against dialogue metadata.
//
// A Timeline answers which utterance is active at a playback offset. A Clock
// publishes the playback position to subscribers at a fixed tick while a
// Player runs the configured external audio player.
package playback
