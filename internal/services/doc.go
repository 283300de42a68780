// Package services defines shared utilities consumed by the podcast API client,
// the generator session and the CLI.
//
// Key responsibilities:
//   - Context helpers that stamp podcast IDs, operation names, and correlation
//     identifiers for logging.
//   - Structured error markers plus the Wrap helper so failures can be
//     classified (validation, transport, remote) with errors.Is.
//   - UserMessage, which picks the text shown to the user for a failure and
//     falls back to a generic message when nothing better is available.
//
// Subpackages hold the clients for external HTTP services.
package services
