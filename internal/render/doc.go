// Package render turns session state into terminal text: the status
// treatments, the result summary with download links, and the speaker panel.
// Everything here is a pure function of its inputs; callers decide whether
// output is colorized.
package render
