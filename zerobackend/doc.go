// Package zerobackend is the zerolog-backed kvlog.Backend: JSON output with
// optional file rotation via lumberjack and configurable console
// formatting, driven by the application's types.LoggingConfig. Emitted
// errors are enriched with their full cause chain (outermost -> root),
// including operation identifiers when the chain carries Station-Manager
// DetailedErrors.
package zerobackend
