package kvlog

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildRecord(t *testing.T) {
	t.Run("pairwise scan with line injection", func(t *testing.T) {
		rec, attached, has := buildRecord(Site{Module: "m", Line: 7}, []any{Key("a"), 1, "b", "two"})
		assert.False(t, has)
		assert.Nil(t, attached)
		assert.Equal(t, map[string]any{"a": 1, "b": "two", "line": 7}, rec)
	})

	t.Run("later duplicate keys win", func(t *testing.T) {
		rec, _, _ := buildRecord(Site{Line: 1}, []any{Key("a"), 1, "a", 2})
		assert.Equal(t, 2, rec["a"])
	})

	t.Run("site line overrides caller-supplied line", func(t *testing.T) {
		rec, _, _ := buildRecord(Site{Line: 42}, []any{Key("line"), 9999})
		assert.Equal(t, 42, rec["line"])
		rec, _, _ = buildRecord(Site{Line: 42}, []any{"line", "nope"})
		assert.Equal(t, 42, rec["line"])
	})

	t.Run("odd argument count panics", func(t *testing.T) {
		require.Panics(t, func() {
			_, _, _ = buildRecord(Site{}, []any{Key("a"), 1, Key("dangling")})
		})
	})

	t.Run("empty kvs yields line-only record", func(t *testing.T) {
		rec, _, has := buildRecord(Site{Line: 3}, nil)
		assert.False(t, has)
		assert.Equal(t, map[string]any{"line": 3}, rec)
	})
}

func TestBuildRecord_Exception(t *testing.T) {
	t.Run("popped from the payload", func(t *testing.T) {
		boom := errors.New("boom")
		rec, attached, has := buildRecord(Site{Line: 1}, []any{Key("a"), 1, KeyException, boom})
		assert.True(t, has)
		assert.Same(t, boom, attached.(error))
		_, present := rec["exception"]
		assert.False(t, present)
		assert.Equal(t, 1, rec["a"])
	})

	t.Run("string form of the reserved key counts", func(t *testing.T) {
		boom := errors.New("boom")
		rec, attached, has := buildRecord(Site{Line: 1}, []any{"exception", boom})
		assert.True(t, has)
		assert.Same(t, boom, attached.(error))
		_, present := rec["exception"]
		assert.False(t, present)
	})

	t.Run("nil attached value still pops", func(t *testing.T) {
		_, attached, has := buildRecord(Site{Line: 1}, []any{KeyException, nil})
		assert.True(t, has)
		assert.Nil(t, attached)
	})
}

func TestBuildRecord_ExData(t *testing.T) {
	t.Run("merged and normalized", func(t *testing.T) {
		err := WithData(errors.New("query failed"), map[any]any{Key("table"): "users"})
		rec, attached, _ := buildRecord(Site{Line: 1}, []any{Key("query"), "SELECT 1", KeyException, err})
		assert.Same(t, err, attached.(error))
		assert.Equal(t, map[string]any{"table": "users"}, rec["ex-data"])
	})

	t.Run("absent entirely when the error has no payload", func(t *testing.T) {
		rec, _, _ := buildRecord(Site{Line: 1}, []any{KeyException, errors.New("plain")})
		_, present := rec["ex-data"]
		assert.False(t, present)
	})

	t.Run("absent entirely when the payload is empty", func(t *testing.T) {
		err := WithData(errors.New("e"), map[any]any{})
		rec, _, _ := buildRecord(Site{Line: 1}, []any{KeyException, err})
		_, present := rec["ex-data"]
		assert.False(t, present)
	})
}

func TestBuildRecord_ValuerResolution(t *testing.T) {
	calls := 0
	rec, _, _ := buildRecord(Site{Line: 1}, []any{
		Key("lazy"), Valuer(func() any { calls++; return "computed" }),
	})
	assert.Equal(t, 1, calls)
	assert.Equal(t, "computed", rec["lazy"])
}

func TestWithData(t *testing.T) {
	t.Run("unwraps to the cause", func(t *testing.T) {
		cause := errors.New("cause")
		err := WithData(cause, map[any]any{Key("k"): 1})
		require.Error(t, err)
		assert.Equal(t, "cause", err.Error())
		assert.True(t, errors.Is(err, cause))
	})

	t.Run("nil error stays nil", func(t *testing.T) {
		assert.Nil(t, WithData(nil, map[any]any{Key("k"): 1}))
	})
}
