package lang

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phyten/codecount/internal/classify"
)

func TestMergeUnionsAndDeduplicates(t *testing.T) {
	base := RuleSet{
		ID: "c",
		Grammar: classify.Grammar{
			LineComments:  []string{"//"},
			BlockComments: []classify.Pair{{Begin: "/*", End: "*/"}},
		},
		Extensions: []string{".c"},
	}
	over := RuleSet{
		Grammar: classify.Grammar{
			LineComments:  []string{"//", "#", ""},
			BlockComments: []classify.Pair{{Begin: "/*", End: "*/"}, {Begin: "", End: "x"}},
			BlockStrings:  []classify.Pair{{Begin: `"`, End: `"`}},
		},
		Extensions: []string{".h", ".c"},
	}

	got := Merge(base, over)
	assert.Equal(t, "c", got.ID)
	assert.Equal(t, []string{"//", "#"}, got.LineComments)
	assert.Equal(t, []classify.Pair{{Begin: "/*", End: "*/"}}, got.BlockComments)
	assert.Equal(t, []classify.Pair{{Begin: `"`, End: `"`}}, got.BlockStrings)
	assert.Equal(t, []string{".c", ".h"}, got.Extensions)

	// inputs untouched
	assert.Equal(t, []string{"//"}, base.LineComments)
	assert.Equal(t, []string{".h", ".c"}, over.Extensions)
}

func TestMergeAllIsLeftFold(t *testing.T) {
	a := RuleSet{ID: "x", Grammar: classify.Grammar{LineComments: []string{"#"}}}
	b := RuleSet{Grammar: classify.Grammar{LineComments: []string{";"}}}
	c := RuleSet{Grammar: classify.Grammar{LineComments: []string{"#", "--"}}}
	assert.Equal(t, Merge(Merge(a, b), c), MergeAll(a, b, c))
	assert.Equal(t, []string{"#", ";", "--"}, MergeAll(a, b, c).LineComments)
}

func testRegistry(t *testing.T) *Registry {
	t.Helper()
	reg, err := NewBuilder().Add(
		RuleSet{ID: "typescript", Aliases: []string{"TypeScript", "ts"}, Extensions: []string{"ts"},
			Grammar: classify.Grammar{LineComments: []string{"//"}}},
		RuleSet{ID: "dts", Extensions: []string{".d.ts"}},
		RuleSet{ID: "makefile", Filenames: []string{"Makefile"}, Extensions: []string{".mk"}},
		RuleSet{ID: "exact", Extensions: []string{"tools/special.cfg"}},
		RuleSet{ID: "ini", Extensions: []string{".cfg"}},
	).Build()
	require.NoError(t, err)
	return reg
}

func TestResolvePathOrder(t *testing.T) {
	reg := testRegistry(t)
	cases := []struct {
		path string
		want string
		ok   bool
	}{
		{"src/app.ts", "typescript", true},
		{"src/types.d.ts", "dts", true},
		{"Makefile", "makefile", true},
		{"sub/dir/Makefile", "makefile", true},
		{"rules.mk", "makefile", true},
		{"tools/special.cfg", "exact", true},
		{"other/special.cfg", "ini", true},
		{"app.TS", "", false},
		{"makefile", "", false},
		{"README", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		t.Run(tc.path, func(t *testing.T) {
			l, ok := reg.ResolvePath(tc.path)
			require.Equal(t, tc.ok, ok)
			if ok {
				assert.Equal(t, tc.want, l.ID)
			}
		})
	}
}

func TestResolvePathRegistersBothExtensionForms(t *testing.T) {
	reg := testRegistry(t)
	l, ok := reg.ResolvePath("ts")
	require.True(t, ok)
	assert.Equal(t, "typescript", l.ID)
	l, ok = reg.ResolvePath("x.ts")
	require.True(t, ok)
	assert.Equal(t, "typescript", l.ID)
}

func TestResolveID(t *testing.T) {
	reg := testRegistry(t)
	for _, id := range []string{"typescript", "TypeScript", "ts", "TYPESCRIPT", "Ts", " typescript "} {
		l, ok := reg.ResolveID(id)
		require.Truef(t, ok, "id %q", id)
		assert.Equal(t, "typescript", l.ID)
	}
	_, ok := reg.ResolveID("cobol")
	assert.False(t, ok)
	_, ok = reg.ResolveID("")
	assert.False(t, ok)
}

func TestResolvePrefersID(t *testing.T) {
	reg := testRegistry(t)
	l, ok := reg.Resolve("makefile", "x.ts")
	require.True(t, ok)
	assert.Equal(t, "makefile", l.ID)

	l, ok = reg.Resolve("unknown", "x.ts")
	require.True(t, ok)
	assert.Equal(t, "typescript", l.ID)
}

func TestBuilderLaterSourceWinsKeyConflict(t *testing.T) {
	reg, err := NewBuilder().
		Add(RuleSet{ID: "c", Extensions: []string{".h"}}).
		Add(RuleSet{ID: "cpp", Extensions: []string{".h"}}).
		Build()
	require.NoError(t, err)
	l, ok := reg.ResolvePath("a.h")
	require.True(t, ok)
	assert.Equal(t, "cpp", l.ID)
}

func TestBuilderMergesSameID(t *testing.T) {
	reg, err := NewBuilder().
		Add(RuleSet{ID: "py", Grammar: classify.Grammar{LineComments: []string{"#"}}, Extensions: []string{".py"}}).
		Add(RuleSet{ID: "py", Grammar: classify.Grammar{BlockStrings: []classify.Pair{{Begin: `"""`, End: `"""`}}}, Extensions: []string{".pyw"}}).
		Build()
	require.NoError(t, err)
	l, ok := reg.ResolvePath("a.pyw")
	require.True(t, ok)
	assert.Equal(t, []string{".py", ".pyw"}, l.Extensions)
	assert.Equal(t, classify.Count{Code: 3, Comment: 1}, l.Classify("x = \"\"\"\n# no\n\"\"\"\n# yes\n"))
}

func TestBuilderOverrideTargets(t *testing.T) {
	patch := RuleSet{Grammar: classify.Grammar{BlockStrings: []classify.Pair{{Begin: "`", End: "`"}}}}
	for _, target := range []string{"typescript", "TypeScript", ".ts", "ts", "src/app.ts"} {
		t.Run(target, func(t *testing.T) {
			reg, err := NewBuilder().
				Add(RuleSet{ID: "typescript", Aliases: []string{"TypeScript"}, Extensions: []string{".ts"},
					Grammar: classify.Grammar{LineComments: []string{"//"}}}).
				Override(target, patch).
				Build()
			require.NoError(t, err)
			l, ok := reg.ResolveID("typescript")
			require.True(t, ok)
			assert.Equal(t, patch.BlockStrings, l.BlockStrings)
			assert.Equal(t, classify.Count{Code: 2}, l.Classify("`a\n// b`\n"))
		})
	}
}

func TestBuilderBuildIsRepeatable(t *testing.T) {
	b := NewBuilder().
		Add(RuleSet{ID: "sh", Extensions: []string{".sh"}, Grammar: classify.Grammar{LineComments: []string{"//"}}}).
		Override(".sh", RuleSet{Grammar: classify.Grammar{LineComments: []string{"#"}}, Extensions: []string{".bash"}})
	bindings := len(b.bindings)

	first, err := b.Build()
	require.NoError(t, err)
	second, err := b.Build()
	require.NoError(t, err)
	assert.Equal(t, bindings, len(b.bindings), "Build で builder の状態が変わってはいけない")
	assert.Equal(t, []string{"//"}, b.sets["sh"].LineComments)

	l1, ok := first.ResolvePath("run.bash")
	require.True(t, ok)
	l2, ok := second.ResolvePath("run.bash")
	require.True(t, ok)
	assert.Equal(t, l1.RuleSet, l2.RuleSet)
	assert.Equal(t, []string{"//", "#"}, l2.LineComments)

	// override は Build のたびに最後に適用される
	third, err := b.Add(RuleSet{ID: "sh", Grammar: classify.Grammar{LineComments: []string{";"}}}).Build()
	require.NoError(t, err)
	l3, ok := third.ResolveID("sh")
	require.True(t, ok)
	assert.Equal(t, []string{"//", ";", "#"}, l3.LineComments)
	assert.Equal(t, []string{"//", "#"}, l1.LineComments)
}

func TestBuilderFailedBuildLeavesBuilderUntouched(t *testing.T) {
	b := NewBuilder().
		Add(RuleSet{ID: "go", Extensions: []string{".go"}}).
		Override("go", RuleSet{Extensions: []string{".gotmpl"}}).
		Override("cobol", RuleSet{})
	_, err := b.Build()
	require.ErrorIs(t, err, ErrUnknownLanguage)
	assert.Equal(t, []string{".go"}, b.sets["go"].Extensions)
	assert.Len(t, b.bindings, 1)
}

func TestBuilderUnknownOverride(t *testing.T) {
	_, err := NewBuilder().
		Add(RuleSet{ID: "go", Extensions: []string{".go"}}).
		Override("cobol", RuleSet{}).
		Build()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownLanguage))
	assert.Contains(t, err.Error(), "cobol")
}

func TestBuilderRejectsEmptyID(t *testing.T) {
	_, err := NewBuilder().Add(RuleSet{Extensions: []string{".x"}}).Build()
	assert.Error(t, err)
}

func TestLanguagesSorted(t *testing.T) {
	reg := testRegistry(t)
	var ids []string
	for _, l := range reg.Languages() {
		ids = append(ids, l.ID)
	}
	assert.Equal(t, []string{"dts", "exact", "ini", "makefile", "typescript"}, ids)
	assert.Equal(t, 5, reg.Len())
}

func TestDefaultRegistry(t *testing.T) {
	reg := Default()
	cases := map[string]string{
		"main.go":          "go",
		"index.d.ts":       "typescript",
		"lib.rs":           "rust",
		"Dockerfile":       "dockerfile",
		"Makefile":         "makefile",
		"CMakeLists.txt":   "cmake",
		"script.py":        "python",
		"a/b/c.hpp":        "cpp",
		"config.yml":       "yaml",
		"notes.md":         "markdown",
		"tsconfig.json":    "jsonc",
		"package.json":     "json",
		"deploy.ps1":       "powershell",
		"query.sql":        "sql",
		"init.lua":         "lua",
		"templates/x.j2":   "jinja",
		"component.svelte": "svelte",
	}
	for p, want := range cases {
		l, ok := reg.ResolvePath(p)
		if assert.Truef(t, ok, "path %s", p) {
			assert.Equalf(t, want, l.ID, "path %s", p)
		}
	}

	goLang, ok := reg.ResolveID("golang")
	require.True(t, ok)
	assert.Equal(t, classify.Count{Code: 2, Comment: 1}, goLang.Classify("s := `a\n// b`\n// c\n"))

	c, ok := reg.ResolveID("c")
	require.True(t, ok)
	assert.Equal(t, classify.Count{Code: 2}, c.Classify("char q = '\"';\nint x;\n"))
}

func TestBuiltinReturnsCopies(t *testing.T) {
	a := Builtin()
	a[0].LineComments[0] = "XX"
	b := Builtin()
	assert.NotEqual(t, "XX", b[0].LineComments[0])
}

func writeFile(t *testing.T, p, body string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
}

func TestHarvestExtensions(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "acme.foo-1.0.0", "package.json"), `{
  // comments are allowed
  "name": "foo",
  "contributes": {
    "languages": [
      {"id": "foo", "aliases": ["Foo"], "extensions": [".foo"], "configuration": "./language-configuration.json"},
      {"id": "foo-lite", "extensions": [".fool"], "filenames": ["Foofile"], "configuration": "./language-configuration.json"},
      {"id": "", "extensions": [".ignored"]},
    ],
  },
}`)
	writeFile(t, filepath.Join(root, "acme.foo-1.0.0", "language-configuration.json"), `{
  "comments": {
    "lineComment": {"comment": "%%"},
    "blockComment": ["%{", "%}"],
  },
}`)
	writeFile(t, filepath.Join(root, "acme.bar-2.0.0", "package.json"), `{"contributes": {"languages": [
  {"id": "bar", "extensions": [".bar"], "configuration": "conf/lang.json"}
]}}`)
	writeFile(t, filepath.Join(root, "acme.bar-2.0.0", "conf", "lang.json"), `{"comments": {"lineComment": "!!"}}`)
	writeFile(t, filepath.Join(root, "not-an-extension.txt"), "x")
	require.NoError(t, os.MkdirAll(filepath.Join(root, "empty-dir"), 0o755))

	sets, err := HarvestExtensions(root, filepath.Join(root, "missing"))
	require.NoError(t, err)
	require.Len(t, sets, 3)

	assert.Equal(t, "bar", sets[0].ID)
	assert.Equal(t, []string{"!!"}, sets[0].LineComments)

	assert.Equal(t, "foo", sets[1].ID)
	assert.Equal(t, []string{"Foo"}, sets[1].Aliases)
	assert.Equal(t, []string{"%%"}, sets[1].LineComments)
	assert.Equal(t, []classify.Pair{{Begin: "%{", End: "%}"}}, sets[1].BlockComments)

	assert.Equal(t, "foo-lite", sets[2].ID)
	assert.Equal(t, []string{"Foofile"}, sets[2].Filenames)
	assert.Equal(t, sets[1].Grammar, sets[2].Grammar)

	reg, err := NewBuilder().Add(Builtin()...).Add(sets...).Build()
	require.NoError(t, err)
	l, ok := reg.ResolvePath("x/Foofile")
	require.True(t, ok)
	assert.Equal(t, "foo-lite", l.ID)
	assert.Equal(t, classify.Count{Code: 1, Comment: 2}, l.Classify("%{\n%}\nx\n"))
}

func TestHarvestExtensionsReportsBrokenManifest(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "broken", "package.json"), `{"contributes": `)
	writeFile(t, filepath.Join(root, "ok", "package.json"), `{"contributes": {"languages": [{"id": "ok", "configuration": "missing.json"}]}}`)

	sets, err := HarvestExtensions(root)
	require.Error(t, err)
	require.Len(t, sets, 1)
	assert.Equal(t, "ok", sets[0].ID)
}
