// Package kvlog is a thin, concurrency-safe structured logging facade over
// a pluggable backend.
//
// Key features
//   - Level gate before any payload work: disabled events skip record
//     construction entirely, and Valuer arguments are never invoked
//   - Canonical records: arbitrary key/value data, nested maps and symbolic
//     keys normalized into a string-keyed map for structured sinks
//   - Call-site capture: every event carries the originating module path
//     and source line
//   - Attached errors via the reserved "exception" key, with structured
//     error context merged under "ex-data"
//
// Typical usage
//
//	svc := zerobackend.New()
//	if err := svc.Initialize(); err != nil { panic(err) }
//	defer svc.Close()
//	kvlog.SetBackend(svc)
//
//	kvlog.Info(kvlog.Key("port"), 8080, kvlog.Key("env"), "prod")
//	kvlog.Error(kvlog.Key("query"), q, kvlog.KeyException, err)
package kvlog
