// Package sequencer executes an ordered list of idempotent provisioning
// steps against external systems.
//
// Each [Step] pairs a mutating action with an optional guard (an existence
// check that turns the action into a logged no-op) and an optional readiness
// condition polled with a bounded budget. The [Runner] executes steps
// strictly in order and stops at the first unrecoverable failure; there is
// no rollback, the external systems are left as-is for inspection.
//
// Steps marked AllowSkip may bail out with [Skip] when a runtime value they
// depend on could not be discovered. The runner records a warning and keeps
// going, so a missing address degrades the run instead of crashing it.
package sequencer
