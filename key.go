package kvlog

import (
	"fmt"
	"reflect"
	"strings"
)

// Key is a symbolic map key, optionally namespaced with '/', e.g.
// Key("db/query-failed"). Its canonical record form is the bare name; its
// printed form carries the ':' sigil.
type Key string

// Name returns the bare name without any namespace qualification.
func (k Key) Name() string {
	if i := strings.LastIndexByte(string(k), '/'); i >= 0 {
		return string(k[i+1:])
	}
	return string(k)
}

func (k Key) String() string { return ":" + string(k) }

// keyString renders a map key in its canonical record form. Keys use their
// bare name, strings pass through, Stringers use their printed form and
// anything else falls back to generic formatting.
func keyString(k any) string {
	switch v := k.(type) {
	case Key:
		return v.Name()
	case string:
		return v
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprintf("%v", v)
	}
}

// Normalize converts every map inside v, recursively, into a map[string]any
// with canonical string keys. Non-map values pass through unchanged. It is
// total over any input shape and idempotent on an already-normalized map.
func Normalize(v any) any {
	if v == nil {
		return nil
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Map {
		return v
	}
	out := make(map[string]any, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		out[keyString(iter.Key().Interface())] = Normalize(iter.Value().Interface())
	}
	return out
}
