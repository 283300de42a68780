// Package generator owns a podcast generation session.
//
// Session state is an immutable State value. Every transition goes through
// Reduce, a pure function of the previous state and an Action; Generator
// wraps it with the network calls (voice catalog, submission, status polling,
// metadata) and serializes dispatches behind a mutex.
package generator
