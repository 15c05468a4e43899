// Package log provides structured logging and the fault sink used by the
// hook engine.
//
// Every recovered fault (a failing subscriber, a settings file that needs a
// fallback reader, a malformed version string) is reported through a Sink
// rather than returned or panicked. SlogSink is the production Sink and
// writes through log/slog; Recorder captures faults for tests.
//
// The operator-facing Level is persisted in the settings file and mapped
// onto slog levels, including a "fine" level below debug used for
// per-dispatch tracing.
package log
