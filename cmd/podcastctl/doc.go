// Package main hosts the podcastctl entrypoint and command graph.
//
// The Cobra command tree drives the podcast generation service: submitting
// jobs by topic, URL or PDF, reading job status and the job list, browsing
// the voice catalog, fetching dialogue metadata and download links, and
// playing finished audio with a live speaker panel. Configuration resolution
// and logging setup live in commandContext so subcommands only deal with
// presentation.
package main
