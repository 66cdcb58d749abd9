package kvlog

// KeyException is the reserved key that attaches an error to an event. Its
// value is always removed from the data payload; a genuine error routes to
// the backend's error-aware call, anything else is kept as plain data under
// the "exception" field.
const KeyException = Key("exception")

const (
	lineField      = "line"
	exDataField    = "ex-data"
	exceptionField = "exception"
)

// Valuer defers a value until the event is actually built. When the level
// gate rejects an event its Valuers are never invoked, so expensive
// arguments cost nothing on disabled levels.
type Valuer func() any

// ExData is implemented by errors (or any attached value) that carry a
// structured context payload. The payload is merged into the record under
// "ex-data" before normalization.
type ExData interface {
	ExData() map[any]any
}

// WithData returns an error carrying a structured context payload. The
// result unwraps to err. Returns nil if err is nil.
func WithData(err error, data map[any]any) error {
	if err == nil {
		return nil
	}
	return &dataError{err: err, data: data}
}

type dataError struct {
	err  error
	data map[any]any
}

func (e *dataError) Error() string       { return e.err.Error() }
func (e *dataError) Unwrap() error       { return e.err }
func (e *dataError) ExData() map[any]any { return e.data }

// buildRecord assembles the canonical record for one event: kvs is scanned
// pairwise into a map (later duplicates win), the reserved exception entry
// is popped, any structured error context is merged under "ex-data", keys
// are normalized and the site line is injected last so it always wins over
// a caller-supplied line.
func buildRecord(site Site, kvs []any) (record map[string]any, attached any, hasAttached bool) {
	if len(kvs)%2 != 0 {
		panic("kvlog: odd number of key/value arguments")
	}
	m := make(map[string]any, len(kvs)/2+2)
	for i := 0; i < len(kvs); i += 2 {
		v := kvs[i+1]
		if fn, ok := v.(Valuer); ok && fn != nil {
			v = fn()
		}
		m[keyString(kvs[i])] = v
	}
	if attached, hasAttached = m[exceptionField]; hasAttached {
		delete(m, exceptionField)
		if d, ok := attached.(ExData); ok {
			if data := d.ExData(); len(data) > 0 {
				m[exDataField] = data
			}
		}
	}
	record = Normalize(m).(map[string]any)
	record[lineField] = site.Line
	return record, attached, hasAttached
}
