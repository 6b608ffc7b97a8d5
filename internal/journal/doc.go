// Package journal records applied file operations in a SQLite database.
//
// The journal is opt-in and written only by the CLI after each stage
// returns; engine packages never touch it. Entries are append-only and keyed
// by run ID so `romdat history` can show what a run did. Idempotency of the
// pipeline itself never depends on the journal.
package journal
