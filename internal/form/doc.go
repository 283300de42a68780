// Package form holds the podcast request being composed: the active input
// mode with its value, generation options, and the voice chosen for each
// speaker slot.
//
// Form values are edited through methods that return an updated copy, so a
// Form can be embedded in an immutable session snapshot. Validate reports
// every problem at once as a *ValidationError.
package form
