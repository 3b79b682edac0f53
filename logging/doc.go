// Package logging provides a small structured-logging wrapper around zap,
// trimmed from the teacher's logging package down to the parts the engine
// core needs: named loggers at info/debug level and a test logger. The
// teacher's network-forwarding appenders and gRPC log-stream plumbing are
// out of scope here (spec §1's "CLI/window glue" exclusion applies equally
// to remote log forwarding).
package logging
