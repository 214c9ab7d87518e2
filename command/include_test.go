package command

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rubiojr/panini/include"
	"github.com/rubiojr/panini/style"
	"github.com/rubiojr/panini/writer"
)

func TestInclude(t *testing.T) {
	tests := []struct {
		name string
		inc  Include
		want string
	}{
		{"double quotes", Include{Path: "game/design.h", Style: style.DoubleQuotes}, `#include "game/design.h"`},
		{"double quotes empty", Include{Style: style.DoubleQuotes}, `#include ""`},
		{"single quotes", Include{Path: "BringIt.inl", Style: style.SingleQuotes}, `#include 'BringIt.inl'`},
		{"single quotes empty", Include{Style: style.SingleQuotes}, `#include ''`},
		{"angle brackets", Include{Path: "stdint.h", Style: style.AngleBrackets}, `#include <stdint.h>`},
		{"angle brackets empty", Include{Style: style.AngleBrackets}, `#include <>`},
		{"inherit", Include{Path: "a.h"}, `#include "a.h"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, render(t, writer.Config{}, tt.inc))
		})
	}
}

func TestIncludeInheritsWriterStyle(t *testing.T) {
	got := render(t, writer.Config{IncludeStyle: style.AngleBrackets},
		Include{Path: "stdint.h"}, Include{Path: "stdio.h"})
	assert.Equal(t, "#include <stdint.h>#include <stdio.h>", got)
}

func TestIncludeBlock(t *testing.T) {
	var s include.Set
	require.NoError(t, s.Add("game/systems/Audio.h", style.InheritInclude))
	require.NoError(t, s.Add("game/Physics.h", style.InheritInclude))
	require.NoError(t, s.Add("game/systems/Particles.h", style.InheritInclude))
	require.NoError(t, s.Add("stdio.h", style.AngleBrackets))

	got := render(t, writer.Config{}, IncludeBlock{Set: &s})
	assert.Equal(t, `#include <stdio.h>
#include "game/systems/Audio.h"
#include "game/systems/Particles.h"
#include "game/Physics.h"`, got)

	assert.Equal(t, "game/systems/Audio.h", s.Entries()[0].Path, "the set is left untouched")
}

func TestIncludeBlockEmpty(t *testing.T) {
	assert.Equal(t, "", render(t, writer.Config{}, IncludeBlock{Set: &include.Set{}}))
	assert.Equal(t, "", render(t, writer.Config{}, IncludeBlock{}))
}

func TestIncludeBlockQuotedFirst(t *testing.T) {
	s, err := include.NewSet(
		include.Entry{Path: "vector", Style: style.AngleBrackets},
		include.Entry{Path: "Player.h", Style: style.InheritInclude},
	)
	require.NoError(t, err)

	got := render(t, writer.Config{QuotedIncludesFirst: true}, IncludeBlock{Set: s})
	assert.Equal(t, "#include \"Player.h\"\n#include <vector>", got)
}

func TestIncludeBlockOrderIndependent(t *testing.T) {
	a, err := include.NewSet(
		include.Entry{Path: "b.h"},
		include.Entry{Path: "string", Style: style.AngleBrackets},
		include.Entry{Path: "core/a.h"},
	)
	require.NoError(t, err)
	b, err := include.NewSet(
		include.Entry{Path: "core/a.h", Style: style.DoubleQuotes},
		include.Entry{Path: "string", Style: style.AngleBrackets},
		include.Entry{Path: "b.h", Style: style.DoubleQuotes},
	)
	require.NoError(t, err)

	assert.Equal(t,
		render(t, writer.Config{}, IncludeBlock{Set: a}),
		render(t, writer.Config{}, IncludeBlock{Set: b}))
}
