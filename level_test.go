package kvlog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	t.Run("known names", func(t *testing.T) {
		assert.Equal(t, LevelTrace, ParseLevel("trace"))
		assert.Equal(t, LevelDebug, ParseLevel("debug"))
		assert.Equal(t, LevelInfo, ParseLevel("info"))
		assert.Equal(t, LevelWarn, ParseLevel("warn"))
		assert.Equal(t, LevelError, ParseLevel("error"))
		assert.Equal(t, LevelFatal, ParseLevel("fatal"))
		assert.Equal(t, LevelOff, ParseLevel("off"))
	})

	t.Run("case insensitive", func(t *testing.T) {
		assert.Equal(t, LevelInfo, ParseLevel("INFO"))
		assert.Equal(t, LevelWarn, ParseLevel("Warn"))
	})

	t.Run("symbol-like tokens", func(t *testing.T) {
		assert.Equal(t, LevelDebug, ParseLevel(":debug"))
		assert.Equal(t, LevelError, ParseLevel(" :ERROR "))
	})

	t.Run("unrecognized names fail safe to off", func(t *testing.T) {
		assert.Equal(t, LevelOff, ParseLevel("verbose"))
		assert.Equal(t, LevelOff, ParseLevel("notalevel"))
		assert.Equal(t, LevelOff, ParseLevel(""))
	})
}

func TestLevelOrdering(t *testing.T) {
	assert.True(t, LevelTrace < LevelDebug)
	assert.True(t, LevelDebug < LevelInfo)
	assert.True(t, LevelInfo < LevelWarn)
	assert.True(t, LevelWarn < LevelError)
	assert.True(t, LevelError < LevelFatal)
	assert.True(t, LevelFatal < LevelOff)
}

func TestLevelString(t *testing.T) {
	assert.Equal(t, "trace", LevelTrace.String())
	assert.Equal(t, "fatal", LevelFatal.String())
	assert.Equal(t, "off", LevelOff.String())
	assert.Equal(t, "off", Level(99).String())
	assert.Equal(t, "off", Level(-1).String())
}
