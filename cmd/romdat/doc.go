// Package main hosts the romdat CLI entrypoint and command graph.
//
// The Cobra command tree resolves configuration and the console profile,
// takes the library lock, and hands the work to the pipeline runner. Each
// pipeline stage is also reachable as its own subcommand, and match,
// consoles, history, and check expose the matcher, the profiles, the
// operation journal, and the preflight checks.
//
// Behavior belongs in the internal packages; commands here only parse flags
// and render results.
package main
