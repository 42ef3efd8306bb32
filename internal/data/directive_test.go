package data

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDirectives(t *testing.T) {
	ds, err := ParseDirectives(` player() ; character_controller(gravity = 900, epsilon=1.5);ai_character(path=a|b|c,loop=true); marker`)
	require.NoError(t, err)
	require.Len(t, ds, 4)

	assert.Equal(t, "player", ds[0].Name)
	assert.Empty(t, ds[0].Args)

	assert.Equal(t, "character_controller", ds[1].Name)
	assert.Equal(t, Args{"gravity": "900", "epsilon": "1.5"}, ds[1].Args)

	assert.Equal(t, []string{"a", "b", "c"}, ds[2].Args.List("path"))
	assert.Equal(t, "marker", ds[3].Name)
}

func TestParseDirectivesQuotedValues(t *testing.T) {
	ds, err := ParseDirectives(`script(fn="patrol, then (jump);", file=bat.lua)`)
	require.NoError(t, err)
	require.Len(t, ds, 1)
	assert.Equal(t, "patrol, then (jump);", ds[0].Args["fn"])
	assert.Equal(t, "bat.lua", ds[0].Args["file"])
}

func TestParseDirectivesEmpty(t *testing.T) {
	ds, err := ParseDirectives("  ;; ")
	require.NoError(t, err)
	assert.Empty(t, ds)
}

func TestParseDirectivesMalformed(t *testing.T) {
	for _, src := range []string{
		"player(",
		"player(health)",
		"player(=3)",
		"player(x=1) extra",
		"(x=1)",
		`script(fn="open)`,
	} {
		_, err := ParseDirectives(src)
		assert.ErrorIs(t, err, ErrBadDirective, src)
	}
}

func TestParseDirectivesKeepsPrefixOnError(t *testing.T) {
	ds, err := ParseDirectives("player();character(health")
	assert.ErrorIs(t, err, ErrBadDirective)
	require.Len(t, ds, 1)
	assert.Equal(t, "player", ds[0].Name)
}

func TestArgsAccessors(t *testing.T) {
	a := Args{"hp": "3", "speed": "2.5", "loop": "yes", "name": "bat"}

	n, err := a.Int("hp", 1)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	n, err = a.Int("missing", 7)
	require.NoError(t, err)
	assert.Equal(t, 7, n)

	f, err := a.Float("speed", 0)
	require.NoError(t, err)
	assert.Equal(t, 2.5, f)

	_, err = a.Bool("loop", false)
	assert.Error(t, err)

	_, err = a.Float("name", 0)
	assert.Error(t, err)

	assert.Equal(t, "bat", a.String("name", ""))
	assert.Equal(t, "x", a.String("other", "x"))
	assert.Nil(t, a.List("other"))
}
