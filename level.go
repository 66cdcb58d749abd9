package kvlog

import "strings"

// Level is the ordinal severity of a log event.
type Level int8

const (
	LevelTrace Level = iota
	LevelDebug
	LevelInfo
	LevelWarn
	LevelError
	LevelFatal
	// LevelOff is the sentinel at which nothing is ever enabled. Unknown
	// level names resolve here, so a typo suppresses output instead of
	// silently picking an arbitrary severity.
	LevelOff
)

var levelNames = [...]string{"trace", "debug", "info", "warn", "error", "fatal", "off"}

func (l Level) String() string {
	if l < LevelTrace || l > LevelOff {
		return "off"
	}
	return levelNames[l]
}

// ParseLevel resolves a level name to its ordinal. Matching is
// case-insensitive and tolerates a leading ':' sigil. Unrecognized names
// resolve to LevelOff.
func ParseLevel(name string) Level {
	name = strings.TrimPrefix(strings.ToLower(strings.TrimSpace(name)), ":")
	for i, n := range levelNames {
		if n == name {
			return Level(i)
		}
	}
	return LevelOff
}
