// Package decision abstracts the questions a pipeline run asks an operator.
//
// Source is the injected interface: Confirm gates a stage, ChooseIndices
// picks which members of a duplicate group survive. Terminal is the
// interactive adapter over a TTY; Auto answers with fixed rules for
// unattended runs; Scripted replays canned answers for tests.
package decision
