package hierarchy

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rubiojr/panini/style"
	"github.com/rubiojr/panini/writer"
)

func renderString(t *testing.T, d *Description, cfg writer.Config) string {
	t.Helper()
	w := writer.NewString(cfg)
	require.NoError(t, Render(w.Writer, d))
	return w.String()
}

func TestLoadGolden(t *testing.T) {
	want, err := os.ReadFile(filepath.Join("testdata", "game.h"))
	require.NoError(t, err)

	for _, name := range []string{"game.yaml", "game.toml"} {
		t.Run(name, func(t *testing.T) {
			d, err := Load(filepath.Join("testdata", name))
			require.NoError(t, err)
			assert.Equal(t, string(want), renderString(t, d, writer.Config{}))
		})
	}
}

func TestRenderAttach(t *testing.T) {
	d := &Description{Sections: []Section{{
		Name:     "Window",
		Settings: []Setting{{Name: "width", Value: 1280}},
	}}}

	got := renderString(t, d, writer.Config{BraceStyle: style.Attach, Indent: "  "})
	assert.Equal(t, `/* Generated by panini. Do not edit.
 */
#pragma once

#include <cstdint>

class Window {
public:
  int32_t width = 1280;
};

inline constexpr const char* kSectionNames[] = { "Window" };
`, got)
}

func TestRenderEmpty(t *testing.T) {
	got := renderString(t, &Description{}, writer.Config{})
	assert.Equal(t, "/* Generated by panini. Do not edit.\n */\n#pragma once\n", got)
}

func TestRenderDeterministic(t *testing.T) {
	d, err := Load(filepath.Join("testdata", "game.yaml"))
	require.NoError(t, err)
	assert.Equal(t, renderString(t, d, writer.Config{}), renderString(t, d, writer.Config{}))
}

func TestSettingResolve(t *testing.T) {
	tests := []struct {
		name    string
		setting Setting
		want    member
	}{
		{"bool", Setting{Value: false}, member{Type: "bool", Literal: "false"}},
		{"int", Setting{Value: 42}, member{Type: "int32_t", Literal: "42", Header: "cstdint"}},
		{"int64", Setting{Value: int64(-3)}, member{Type: "int32_t", Literal: "-3", Header: "cstdint"}},
		{"large int", Setting{Value: int64(1) << 40}, member{Type: "int64_t", Literal: "1099511627776ll", Header: "cstdint"}},
		{"float", Setting{Value: 0.25}, member{Type: "float", Literal: "0.25f"}},
		{"whole float", Setting{Value: 2.0}, member{Type: "float", Literal: "2.0f"}},
		{"string", Setting{Value: `say "hi"`}, member{Type: "std::string", Literal: `"say \"hi\""`, Header: "string"}},
		{"explicit type", Setting{Type: "uint8_t", Value: 7}, member{Type: "uint8_t", Literal: "7", Header: "cstdint"}},
		{"explicit double", Setting{Type: "double", Value: 1.5}, member{Type: "double", Literal: "1.5f"}},
		{"enumerator", Setting{Type: "Quality", Value: "Quality::High"}, member{Type: "Quality", Literal: "Quality::High"}},
		{"c string", Setting{Type: "const char*", Value: "x"}, member{Type: "const char*", Literal: `"x"`}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.setting.resolve()
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := Setting{Name: "list", Value: []any{1}}.resolve()
	assert.Error(t, err)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name   string
		format Format
		data   string
	}{
		{"unknown yaml key", YAML, "namespaces: x\n"},
		{"unknown toml key", TOML, "namespaces = \"x\"\n"},
		{"bad namespace", YAML, "namespace: \"game engine\"\n"},
		{"bad section", YAML, "sections:\n  - name: 1st\n"},
		{"duplicate section", YAML, "sections:\n  - name: A\n  - name: A\n"},
		{"duplicate setting", YAML, "sections:\n  - name: A\n    settings:\n      - {name: x, value: 1}\n      - {name: x, value: 2}\n"},
		{"missing value", YAML, "sections:\n  - name: A\n    settings:\n      - name: x\n"},
		{"empty include", YAML, "includes:\n  - path: \"\"\n"},
		{"syntax", YAML, "sections: [\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data), tt.format)
			assert.Error(t, err)
		})
	}
}

func TestParseNestedNamespace(t *testing.T) {
	d, err := Parse([]byte("namespace: game::settings\n"), YAML)
	require.NoError(t, err)
	assert.Equal(t, "game::settings", d.Namespace)
}

func TestFormatFromPath(t *testing.T) {
	for path, want := range map[string]Format{"a.yaml": YAML, "b.YML": YAML, "c.toml": TOML} {
		got, err := FormatFromPath(path)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := FormatFromPath("d.json")
	assert.Error(t, err)
}

func TestRequiredIncludes(t *testing.T) {
	d := &Description{
		Includes: []Include{{Path: "vector", System: true}, {Path: "Player.h"}},
		Sections: []Section{{Name: "A", Settings: []Setting{
			{Name: "a", Value: "x"},
			{Name: "b", Value: "y"},
			{Name: "c", Value: 1},
		}}},
	}
	set, err := d.RequiredIncludes()
	require.NoError(t, err)
	assert.Equal(t, 4, set.Len())
}
