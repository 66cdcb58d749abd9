package kvlog

import (
	"runtime"
	"strings"
)

// Site identifies where a log call textually occurs: the caller's module
// (package path) and source line. The per-level shims capture it
// automatically; callers carrying their own location token pass it to Emit.
type Site struct {
	Module string
	Line   int
}

const unknownModule = "unknown"

// callerSite captures the caller's package path and line. skip counts stack
// frames above callerSite itself.
func callerSite(skip int) Site {
	pc, _, line, ok := runtime.Caller(skip + 1)
	if !ok {
		return Site{Module: unknownModule}
	}
	return Site{Module: modulePath(runtime.FuncForPC(pc)), Line: line}
}

// modulePath extracts the package path from a function's fully qualified
// name, e.g. "github.com/x/y.(*T).M" -> "github.com/x/y".
func modulePath(fn *runtime.Func) string {
	if fn == nil {
		return unknownModule
	}
	name := fn.Name()
	slash := strings.LastIndexByte(name, '/')
	dot := strings.IndexByte(name[slash+1:], '.')
	if dot < 0 {
		return name
	}
	return name[:slash+1+dot]
}
