package kvlog

import (
	"go.uber.org/atomic"
)

// LoggerHandle is a backend logger resolved for one module. Handles are
// assumed cheap to resolve and cached by the backend, not by this package.
type LoggerHandle interface {
	// Enabled reports whether level is enabled for this handle. It is the
	// single gating point: no record construction happens when it returns
	// false.
	Enabled(level Level) bool
	// Log emits a canonical record.
	Log(level Level, record map[string]any)
	// LogErr emits a canonical record together with its attached error so
	// the backend can render a stack trace alongside the structured fields.
	LogErr(level Level, record map[string]any, err error)
}

// Backend resolves per-module logger handles. The module identifier is the
// handle's name/category, which is how backend routing and filtering by
// namespace applies.
type Backend interface {
	GetLogger(module string) LoggerHandle
}

var backend atomic.Pointer[Backend]

// SetBackend installs the process-wide backend. Passing nil uninstalls it;
// with no backend installed every log call is a no-op.
func SetBackend(b Backend) {
	if b == nil {
		backend.Store(nil)
		return
	}
	backend.Store(&b)
}

// Emit logs one event at an explicit site. It is the entry point for
// callers carrying their own location token; the per-level shims capture
// the site automatically.
func Emit(level Level, site Site, kvs ...any) {
	emit(level, site, kvs)
}

func emit(level Level, site Site, kvs []any) {
	if level < LevelTrace || level >= LevelOff {
		return
	}
	bp := backend.Load()
	if bp == nil {
		return
	}
	h := (*bp).GetLogger(site.Module)
	if h == nil || !h.Enabled(level) {
		return
	}
	record, attached, hasAttached := buildRecord(site, kvs)
	if err, ok := attached.(error); ok && err != nil {
		h.LogErr(level, record, err)
		return
	}
	if hasAttached && attached != nil {
		// A non-error value under the reserved key stays in the record as
		// plain data instead of being misrouted to the stack-trace path.
		record[exceptionField] = Normalize(attached)
	}
	h.Log(level, record)
}

// Trace logs key/value pairs at trace level from the caller's site.
func Trace(kvs ...any) { emit(LevelTrace, callerSite(1), kvs) }

// Debug logs key/value pairs at debug level from the caller's site.
func Debug(kvs ...any) { emit(LevelDebug, callerSite(1), kvs) }

// Info logs key/value pairs at info level from the caller's site.
func Info(kvs ...any) { emit(LevelInfo, callerSite(1), kvs) }

// Warn logs key/value pairs at warn level from the caller's site.
func Warn(kvs ...any) { emit(LevelWarn, callerSite(1), kvs) }

// Error logs key/value pairs at error level from the caller's site.
// Attach the triggering error under KeyException.
func Error(kvs ...any) { emit(LevelError, callerSite(1), kvs) }

// Fatal logs key/value pairs at fatal level from the caller's site. The
// facade itself never terminates the process; exit semantics belong to the
// backend's contract.
func Fatal(kvs ...any) { emit(LevelFatal, callerSite(1), kvs) }
